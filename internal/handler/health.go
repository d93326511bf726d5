package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewHealthRouter builds the liveness endpoint served alongside the worker.
// It shares no state with the pipeline; it exists purely so a supervisor or
// platform probe can confirm the process is alive.
func NewHealthRouter() *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}
