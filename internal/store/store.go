package store

import (
	"context"
	"fmt"

	"github.com/mgpai22/lyrico/internal/pipeline"
)

type Kind string

const (
	KindMemory Kind = "memory"
	KindRedis  Kind = "redis"
)

// Backend is a pipeline store that also records the save name and owns a
// connection.
type Backend interface {
	pipeline.Store
	SetSaveName(ctx context.Context, name string) error
	Close() error
}

var (
	_ Backend = (*MemoryStore)(nil)
	_ Backend = (*RedisStore)(nil)
)

// Open returns the backend for kind. redisURL and redisKey are only used by
// the redis backend.
func Open(ctx context.Context, kind Kind, redisURL, redisKey string) (Backend, error) {
	switch kind {
	case "", KindMemory:
		return NewMemoryStore(""), nil
	case KindRedis:
		if redisURL == "" {
			return nil, fmt.Errorf("redis store requires a redis url")
		}
		return NewRedisStore(ctx, redisURL, redisKey)
	default:
		return nil, fmt.Errorf("unknown store %q: use memory or redis", kind)
	}
}
