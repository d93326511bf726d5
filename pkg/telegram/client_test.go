package telegram

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
)

const getMeResponse = `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"newsbot","username":"newsbot"}}`
const sendOKResponse = `{"ok":true,"result":{"message_id":7,"chat":{"id":42},"date":1}}`

func newFakeBotServer(t *testing.T, sendStatus int, sendBody string) (*httptest.Server, *[]*http.Request) {
	t.Helper()
	var requests []*http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.HasSuffix(r.URL.Path, "/getMe") {
			fmt.Fprint(w, getMeResponse)
			return
		}
		r.ParseMultipartForm(1 << 20)
		requests = append(requests, r)
		w.WriteHeader(sendStatus)
		fmt.Fprint(w, sendBody)
	}))
	t.Cleanup(srv.Close)
	return srv, &requests
}

func TestPublishTextMessage(t *testing.T) {
	srv, requests := newFakeBotServer(t, http.StatusOK, sendOKResponse)

	client, err := newBotClient("test-token", 42, srv.URL+"/bot%s/%s")
	assert.Equal(t, nil, err)

	ok := client.Publish(nil, `Bitcoin reached a new high.`+"\n\n"+`🔗 <a href="https://x/1">Read more</a>`)
	assert.Equal(t, true, ok)

	assert.Equal(t, 1, len(*requests))
	req := (*requests)[0]
	assert.Equal(t, true, strings.HasSuffix(req.URL.Path, "/sendMessage"))
	assert.Equal(t, "42", req.FormValue("chat_id"))
	assert.Equal(t, "HTML", req.FormValue("parse_mode"))
	assert.Equal(t, true, strings.Contains(req.FormValue("text"), "Read more"))
}

func TestPublishPhotoWithCaption(t *testing.T) {
	srv, requests := newFakeBotServer(t, http.StatusOK, sendOKResponse)

	client, err := newBotClient("test-token", 42, srv.URL+"/bot%s/%s")
	assert.Equal(t, nil, err)

	ok := client.Publish([]byte{0x89, 0x50, 0x4e, 0x47}, "caption text")
	assert.Equal(t, true, ok)

	assert.Equal(t, 1, len(*requests))
	req := (*requests)[0]
	assert.Equal(t, true, strings.HasSuffix(req.URL.Path, "/sendPhoto"))
	assert.Equal(t, "caption text", req.FormValue("caption"))
	assert.Equal(t, "HTML", req.FormValue("parse_mode"))
}

func TestPublishReportsFailure(t *testing.T) {
	srv, _ := newFakeBotServer(t, http.StatusBadRequest, `{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`)

	client, err := newBotClient("test-token", 42, srv.URL+"/bot%s/%s")
	assert.Equal(t, nil, err)

	assert.Equal(t, false, client.Publish(nil, "hello"))
}

func TestNewBotClientRequiresCredentials(t *testing.T) {
	_, err := NewBotClient("", 0)
	assert.NotEqual(t, nil, err)

	_, err = NewBotClient("token-only", 0)
	assert.NotEqual(t, nil, err)
}

func TestDisabledPublisherAlwaysFails(t *testing.T) {
	assert.Equal(t, false, Disabled{}.Publish(nil, "anything"))
}
