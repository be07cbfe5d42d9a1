package store

import (
	"context"
	"errors"
	"fmt"

	redisClient "github.com/go-redis/redis/v8"

	"github.com/mgpai22/lyrico/internal/lyric"
)

const DefaultRedisKey = "lyrico"

// RedisStore keeps the active document in Redis so separate CLI invocations
// share it. The document lives under "<key>:document" as JSON and the save
// name under "<key>:save_name".
type RedisStore struct {
	client *redisClient.Client
	key    string
}

// NewRedisStore connects to a redis:// or rediss:// URL and checks the
// connection.
func NewRedisStore(ctx context.Context, url, key string) (*RedisStore, error) {
	opt, err := redisClient.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redisClient.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return NewRedisStoreWithClient(client, key), nil
}

func NewRedisStoreWithClient(client *redisClient.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

func (r *RedisStore) documentKey() string { return r.key + ":document" }
func (r *RedisStore) saveNameKey() string { return r.key + ":save_name" }

// Get returns an empty document when nothing has been stored yet.
func (r *RedisStore) Get(ctx context.Context) (*lyric.Document, error) {
	data, err := r.client.Get(ctx, r.documentKey()).Bytes()
	if err != nil {
		if errors.Is(err, redisClient.Nil) {
			return &lyric.Document{}, nil
		}
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	doc := &lyric.Document{}
	if err := doc.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("failed to decode stored document: %w", err)
	}
	return doc, nil
}

func (r *RedisStore) Set(ctx context.Context, doc *lyric.Document) error {
	if doc == nil {
		doc = &lyric.Document{}
	}
	if err := r.client.Set(ctx, r.documentKey(), doc, 0).Err(); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

func (r *RedisStore) SaveName(ctx context.Context) (string, error) {
	name, err := r.client.Get(ctx, r.saveNameKey()).Result()
	if err != nil {
		if errors.Is(err, redisClient.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("failed to load save name: %w", err)
	}
	return name, nil
}

func (r *RedisStore) SetSaveName(ctx context.Context, name string) error {
	if err := r.client.Set(ctx, r.saveNameKey(), name, 0).Err(); err != nil {
		return fmt.Errorf("failed to save name: %w", err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
