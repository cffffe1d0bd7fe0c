package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"engagementAPI/internal/wish"
)

var (
	ErrNotConfigured = errors.New("DATABASE_URL not configured")
	ErrInvalidWish   = errors.New("name and message are required")
	ErrMissingID     = errors.New("message id is required")
)

// StoreOpener connects to a backend; OpenWishStore in production.
type StoreOpener func(ctx context.Context, databaseURL string) (WishStore, error)

// WishService owns the lazily opened store. The first request that needs the
// datastore connects and creates the schema; later requests reuse both.
type WishService struct {
	databaseURL string
	open        StoreOpener

	mu          sync.Mutex
	store       WishStore
	schemaReady bool
}

func NewWishService(databaseURL string, open StoreOpener) *WishService {
	if open == nil {
		open = OpenWishStore
	}
	return &WishService{databaseURL: databaseURL, open: open}
}

// NewWishServiceWithStore wraps an already connected store.
func NewWishServiceWithStore(store WishStore) *WishService {
	return &WishService{databaseURL: "preconnected", store: store}
}

func (s *WishService) Configured() bool {
	return s.databaseURL != ""
}

func (s *WishService) GetWishes(ctx context.Context) ([]*wish.Wish, error) {
	store, err := s.ready(ctx)
	if err != nil {
		return nil, err
	}

	wishes, err := store.ListWishes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishes: %w", err)
	}
	return wishes, nil
}

func (s *WishService) AddWish(ctx context.Context, req wish.CreateWishRequest) (*wish.Wish, error) {
	req, ok := req.Normalize()
	if !ok {
		return nil, ErrInvalidWish
	}

	store, err := s.ready(ctx)
	if err != nil {
		return nil, err
	}

	created, err := store.CreateWish(ctx, req.Name, req.Message)
	if err != nil {
		return nil, fmt.Errorf("failed to add wish: %w", err)
	}

	log.WithField("id", created.ID).Info("wish added")
	return created, nil
}

// RemoveWish deletes by id. Removing an id that does not exist succeeds.
func (s *WishService) RemoveWish(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrMissingID
	}

	store, err := s.ready(ctx)
	if err != nil {
		return err
	}

	if err := store.DeleteWish(ctx, id); err != nil {
		return fmt.Errorf("failed to remove wish: %w", err)
	}

	log.WithField("id", id).Info("wish removed")
	return nil
}

func (s *WishService) Ping(ctx context.Context) error {
	store, err := s.connected(ctx)
	if err != nil {
		return err
	}
	return store.Ping(ctx)
}

func (s *WishService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store != nil {
		s.store.Close()
		s.store = nil
		s.schemaReady = false
	}
}

func (s *WishService) ready(ctx context.Context) (WishStore, error) {
	store, err := s.connected(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.schemaReady {
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		s.schemaReady = true
	}
	return store, nil
}

func (s *WishService) connected(ctx context.Context) (WishStore, error) {
	if !s.Configured() {
		return nil, ErrNotConfigured
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store != nil {
		return s.store, nil
	}

	store, err := s.open(ctx, s.databaseURL)
	if err != nil {
		return nil, err
	}

	log.Info("connected to wish store")
	s.store = store
	return store, nil
}
