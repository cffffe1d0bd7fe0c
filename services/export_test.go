package services

import (
	"time"

	"github.com/redis/go-redis/v9"
)

// Export internal symbols for testing.
// This file is only compiled during testing.

// Pool exports the internal pool interface for testing.
type Pool = pool

var ExportNextTimestampID = nextTimestampID

// NewPostgresStoreWithPool builds a store around a mock pool.
func NewPostgresStoreWithPool(p Pool) *PostgresStore {
	return &PostgresStore{db: p}
}

// NewRedisStoreWithClock builds a store with a fixed clock.
func NewRedisStoreWithClock(rdb *redis.Client, now func() time.Time) *RedisStore {
	s := newRedisStoreWithClient(rdb)
	s.now = now
	return s
}
