package seen

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// setKey matches the set used by earlier deployments so an upgraded worker
// keeps its history.
const setKey = "cryptopanic_seen_ids"

// RedisStore keeps seen ids in a shared Redis set, surviving restarts and
// shared across replicas.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis and verifies reachability with a ping.
// An unreachable server is reported as an error so the caller can fall back.
func NewRedisStore(url string) (*RedisStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func (s *RedisStore) IsSeen(ctx context.Context, id string) bool {
	seen, err := s.client.SIsMember(ctx, setKey, id).Result()
	if err != nil {
		slog.Error("redis membership check failed", "error", err, "id", id)
		return false
	}
	return seen
}

func (s *RedisStore) MarkSeen(ctx context.Context, id string) {
	if err := s.client.SAdd(ctx, setKey, id).Err(); err != nil {
		slog.Error("redis insert failed", "error", err, "id", id)
	}
}

// Close releases the underlying connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
