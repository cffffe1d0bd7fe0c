package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"engagementAPI/internal/wish"
)

// messagesKey holds the whole collection as one JSON array, newest first.
const messagesKey = "messages"

// RedisStore keeps every wish in a single blob. Mutations are a full
// read-modify-write with no WATCH, so two concurrent writers can drop one
// another's wish.
type RedisStore struct {
	rdb *redis.Client
	key string
	now func() time.Time
}

func NewRedisStore(ctx context.Context, databaseURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return newRedisStoreWithClient(rdb), nil
}

func newRedisStoreWithClient(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb, key: messagesKey, now: time.Now}
}

// EnsureSchema is a no-op; the key springs into existence on first write.
func (s *RedisStore) EnsureSchema(context.Context) error {
	return nil
}

func (s *RedisStore) ListWishes(ctx context.Context) ([]*wish.Wish, error) {
	return s.load(ctx)
}

func (s *RedisStore) CreateWish(ctx context.Context, name, message string) (*wish.Wish, error) {
	wishes, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC().Truncate(time.Millisecond)
	w := &wish.Wish{
		ID:      nextTimestampID(now, wishes),
		Name:    name,
		Message: message,
		Date:    now,
	}

	wishes = append([]*wish.Wish{w}, wishes...)
	if err := s.save(ctx, wishes); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *RedisStore) DeleteWish(ctx context.Context, id string) error {
	wishes, err := s.load(ctx)
	if err != nil {
		return err
	}

	kept := wishes[:0]
	for _, w := range wishes {
		if w.ID != id {
			kept = append(kept, w)
		}
	}

	if len(kept) == len(wishes) {
		return nil
	}
	return s.save(ctx, kept)
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *RedisStore) Close() {
	_ = s.rdb.Close()
}

func (s *RedisStore) load(ctx context.Context) ([]*wish.Wish, error) {
	raw, err := s.rdb.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return make([]*wish.Wish, 0), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.key, err)
	}

	wishes := make([]*wish.Wish, 0)
	if err := json.Unmarshal(raw, &wishes); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", s.key, err)
	}
	if wishes == nil {
		wishes = make([]*wish.Wish, 0)
	}

	wish.SortNewestFirst(wishes)
	return wishes, nil
}

func (s *RedisStore) save(ctx context.Context, wishes []*wish.Wish) error {
	raw, err := json.Marshal(wishes)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", s.key, err)
	}

	if err := s.rdb.Set(ctx, s.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.key, err)
	}
	return nil
}

// nextTimestampID uses the creation millisecond as id, bumped past any
// existing id so two wishes in the same millisecond stay distinct.
func nextTimestampID(now time.Time, wishes []*wish.Wish) string {
	id := now.UnixMilli()
	for _, w := range wishes {
		if existing, err := strconv.ParseInt(w.ID, 10, 64); err == nil && existing >= id {
			id = existing + 1
		}
	}
	return strconv.FormatInt(id, 10)
}
