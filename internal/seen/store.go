package seen

import (
	"context"
	"log/slog"
)

// Store records which article ids have already been published. Implementations
// must add an id only when told to; the worker calls MarkSeen strictly after a
// successful publish so that failed articles are retried on a later cycle.
type Store interface {
	IsSeen(ctx context.Context, id string) bool
	MarkSeen(ctx context.Context, id string)
}

// New picks the backing store: Redis when a URL is configured and reachable,
// otherwise a local JSON file. The fallback is silent beyond a log line.
func New(redisURL, filePath string) Store {
	if redisURL != "" {
		store, err := NewRedisStore(redisURL)
		if err == nil {
			slog.Info("using redis for seen ids")
			return store
		}
		slog.Error("redis unavailable, falling back to local file", "error", err)
	}
	slog.Info("using local file for seen ids", "path", filePath)
	return NewFileStore(filePath)
}
