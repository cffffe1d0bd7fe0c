package services_test

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"engagementAPI/internal/wish"
	"engagementAPI/services"
)

type fakeStore struct {
	mu          sync.Mutex
	wishes      []*wish.Wish
	schemaCalls int
	nextID      int
	failList    error
	failSchema  error
	closed      bool
}

func (f *fakeStore) EnsureSchema(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.schemaCalls++
	return f.failSchema
}

func (f *fakeStore) ListWishes(context.Context) ([]*wish.Wish, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failList != nil {
		return nil, f.failList
	}
	out := append([]*wish.Wish(nil), f.wishes...)
	return out, nil
}

func (f *fakeStore) CreateWish(_ context.Context, name, message string) (*wish.Wish, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	w := &wish.Wish{
		ID:      strconv.Itoa(f.nextID),
		Name:    name,
		Message: message,
		Date:    time.Date(2026, 1, 1, 0, 0, f.nextID, 0, time.UTC),
	}
	f.wishes = append([]*wish.Wish{w}, f.wishes...)
	return w, nil
}

func (f *fakeStore) DeleteWish(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.wishes[:0]
	for _, w := range f.wishes {
		if w.ID != id {
			kept = append(kept, w)
		}
	}
	f.wishes = kept
	return nil
}

func (f *fakeStore) Ping(context.Context) error { return nil }

func (f *fakeStore) Close() { f.closed = true }

func TestWishService_NotConfigured(t *testing.T) {
	t.Parallel()

	opened := false
	svc := services.NewWishService("", func(context.Context, string) (services.WishStore, error) {
		opened = true
		return &fakeStore{}, nil
	})

	assert.False(t, svc.Configured())

	_, err := svc.GetWishes(context.Background())
	require.ErrorIs(t, err, services.ErrNotConfigured)
	require.ErrorIs(t, svc.Ping(context.Background()), services.ErrNotConfigured)
	assert.False(t, opened)
}

func TestWishService_OpensLazilyOnce(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	opens := 0
	svc := services.NewWishService("redis://localhost:6379", func(_ context.Context, url string) (services.WishStore, error) {
		opens++
		assert.Equal(t, "redis://localhost:6379", url)
		return store, nil
	})

	assert.Equal(t, 0, opens, "construction must not connect")

	ctx := context.Background()
	for range 3 {
		_, err := svc.GetWishes(ctx)
		require.NoError(t, err)
	}

	assert.Equal(t, 1, opens)
	assert.Equal(t, 1, store.schemaCalls)

	svc.Close()
	assert.True(t, store.closed)
}

func TestWishService_OpenFailureIsRetried(t *testing.T) {
	t.Parallel()

	attempts := 0
	svc := services.NewWishService("postgres://db", func(context.Context, string) (services.WishStore, error) {
		attempts++
		if attempts == 1 {
			return nil, errors.New("dial tcp: refused")
		}
		return &fakeStore{}, nil
	})

	_, err := svc.GetWishes(context.Background())
	require.Error(t, err)

	_, err = svc.GetWishes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestWishService_SchemaFailureIsRetried(t *testing.T) {
	t.Parallel()

	store := &fakeStore{failSchema: errors.New("locked")}
	svc := services.NewWishServiceWithStore(store)

	_, err := svc.GetWishes(context.Background())
	require.Error(t, err)

	store.failSchema = nil
	_, err = svc.GetWishes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, store.schemaCalls)
}

func TestWishService_AddWish(t *testing.T) {
	t.Parallel()

	t.Run("trims and stores", func(t *testing.T) {
		t.Parallel()

		store := &fakeStore{}
		svc := services.NewWishServiceWithStore(store)

		created, err := svc.AddWish(context.Background(), wish.CreateWishRequest{Name: "  Nour ", Message: " Mabrouk  "})

		require.NoError(t, err)
		assert.Equal(t, "Nour", created.Name)
		assert.Equal(t, "Mabrouk", created.Message)
		assert.Len(t, store.wishes, 1)
	})

	t.Run("blank fields never reach the store", func(t *testing.T) {
		t.Parallel()

		store := &fakeStore{}
		svc := services.NewWishServiceWithStore(store)

		for _, req := range []wish.CreateWishRequest{
			{Name: "", Message: "hi"},
			{Name: "Nour", Message: "   "},
			{Name: "\t", Message: "\n"},
		} {
			_, err := svc.AddWish(context.Background(), req)
			require.ErrorIs(t, err, services.ErrInvalidWish)
		}

		assert.Empty(t, store.wishes)
		assert.Equal(t, 0, store.schemaCalls)
	})
}

func TestWishService_RemoveWish(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	svc := services.NewWishServiceWithStore(store)
	ctx := context.Background()

	created, err := svc.AddWish(ctx, wish.CreateWishRequest{Name: "A", Message: "B"})
	require.NoError(t, err)

	require.ErrorIs(t, svc.RemoveWish(ctx, "  "), services.ErrMissingID)
	require.NoError(t, svc.RemoveWish(ctx, created.ID))
	require.NoError(t, svc.RemoveWish(ctx, created.ID))

	wishes, err := svc.GetWishes(ctx)
	require.NoError(t, err)
	assert.Empty(t, wishes)
}

func TestWishService_ListErrorIsWrapped(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset")
	svc := services.NewWishServiceWithStore(&fakeStore{failList: cause})

	_, err := svc.GetWishes(context.Background())

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "failed to list wishes")
}

func TestOpenWishStore_UnsupportedScheme(t *testing.T) {
	t.Parallel()

	_, err := services.OpenWishStore(context.Background(), "mysql://root@localhost/db")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported database URL scheme "mysql"`)
}
