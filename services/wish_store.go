package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"engagementAPI/internal/wish"
)

// WishStore is a persistence backend for the guestbook. Exactly one
// implementation is in use per deployment, chosen by the DATABASE_URL scheme.
type WishStore interface {
	EnsureSchema(ctx context.Context) error
	ListWishes(ctx context.Context) ([]*wish.Wish, error)
	CreateWish(ctx context.Context, name, message string) (*wish.Wish, error)
	DeleteWish(ctx context.Context, id string) error
	Ping(ctx context.Context) error
	Close()
}

// OpenWishStore connects to the backend named by the URL scheme.
func OpenWishStore(ctx context.Context, databaseURL string) (WishStore, error) {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	switch strings.ToLower(u.Scheme) {
	case "postgres", "postgresql":
		return NewPostgresStore(ctx, databaseURL)
	case "redis", "rediss":
		return NewRedisStore(ctx, databaseURL)
	default:
		return nil, fmt.Errorf("unsupported database URL scheme %q", u.Scheme)
	}
}
