package dictionary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisKeyPrefix = "lookword:"

// RedisStore keeps one key per word. SETNX makes PutIfAbsent a single
// server-side operation, so it needs no client-side locking.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
}

type RedisConfig struct {
	URL       string // e.g. redis://localhost:6379/0
	KeyPrefix string // defaults to "lookword:"
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL > %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("client.Ping > %w", err)
	}
	return NewRedisStoreFromClient(client, cfg.KeyPrefix), nil
}

func NewRedisStoreFromClient(client *redis.Client, keyPrefix string) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = defaultRedisKeyPrefix
	}
	return &RedisStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

func (s *RedisStore) key(word string) string {
	return s.keyPrefix + word
}

func (s *RedisStore) Get(ctx context.Context, word string) (Entry, bool, error) {
	value, err := s.client.Get(ctx, s.key(word)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("client.Get(%s) > %w", s.key(word), err)
	}

	var entry Entry
	if err := json.Unmarshal(value, &entry); err != nil {
		return Entry{}, false, fmt.Errorf("%w: json.Unmarshal(%s) > %w", ErrStorageCorrupt, s.key(word), err)
	}
	return entry, true, nil
}

func (s *RedisStore) PutIfAbsent(ctx context.Context, word string, entry Entry) (bool, error) {
	value, err := json.Marshal(entry)
	if err != nil {
		return false, fmt.Errorf("%w: json.Marshal > %w", ErrWriteFailure, err)
	}

	written, err := s.client.SetNX(ctx, s.key(word), string(value), 0).Result()
	if err != nil {
		return false, fmt.Errorf("%w: client.SetNX(%s) > %w", ErrWriteFailure, s.key(word), err)
	}
	return written, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Store = (*RedisStore)(nil)
