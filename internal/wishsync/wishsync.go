// Package wishsync keeps a device's view of the guestbook. The server is the
// source of truth whenever it answers; otherwise a local cache is used and
// new wishes are kept locally without any later reconciliation.
package wishsync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"engagementAPI/internal/wish"
)

// CacheKey is where the last known list is kept.
const CacheKey = "engagementWishes"

const messagesPath = "/api/messages"

// Cache is the opaque key/value storage the list is serialized into.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Source says where a loaded list came from.
type Source string

const (
	FromServer      Source = "server"
	FromCache       Source = "cache"
	FromPlaceholder Source = "placeholder"
)

type Client struct {
	baseURL string
	http    *http.Client
	cache   Cache
	now     func() time.Time
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.http = c }
}

func WithClock(now func() time.Time) Option {
	return func(cl *Client) { cl.now = now }
}

func New(baseURL string, cache Cache, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		cache:   cache,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Placeholder is shown when there is nothing to show. It is never sent to
// the server and never written to the cache.
func (c *Client) Placeholder() *wish.Wish {
	return &wish.Wish{
		ID:      "sample1",
		Name:    "Family",
		Message: "Wishing you both a lifetime of love and happiness! May Allah bless your union. 💕",
		Date:    c.now().UTC(),
	}
}

// Load fetches the list from the server and refreshes the cache; on any
// failure it falls back to the cache. It never fails: the worst case is the
// placeholder.
func (c *Client) Load(ctx context.Context) ([]*wish.Wish, Source) {
	wishes, err := c.fetch(ctx)
	if err == nil {
		if err := c.writeCache(ctx, wishes); err != nil {
			log.WithError(err).Warn("could not refresh local wish cache")
		}
		if len(wishes) > 0 {
			return wishes, FromServer
		}
		return []*wish.Wish{c.Placeholder()}, FromPlaceholder
	}

	log.WithError(err).Info("API not available, using local cache")

	cached, err := c.readCache(ctx)
	if err != nil {
		log.WithError(err).Warn("could not read local wish cache")
	}
	if len(cached) > 0 {
		wish.SortNewestFirst(cached)
		return cached, FromCache
	}
	return []*wish.Wish{c.Placeholder()}, FromPlaceholder
}

// Submit posts a wish. When the server does not confirm it, the optimistic
// local copy is prepended to the cache instead. The returned wish is the
// server's copy when accepted, otherwise the local one. The only error is
// invalid input.
func (c *Client) Submit(ctx context.Context, name, message string) (*wish.Wish, bool, error) {
	req, ok := wish.CreateWishRequest{Name: name, Message: message}.Normalize()
	if !ok {
		return nil, false, errors.New("name and message are required")
	}

	now := c.now().UTC()
	optimistic := &wish.Wish{
		ID:      strconv.FormatInt(now.UnixMilli(), 10),
		Name:    req.Name,
		Message: req.Message,
		Date:    now,
	}

	created, err := c.create(ctx, req)
	if err == nil {
		return created, true, nil
	}

	log.WithError(err).Info("API not available, saving to local cache")
	if err := c.prependToCache(ctx, optimistic); err != nil {
		log.WithError(err).Warn("could not save wish locally")
	}
	return optimistic, false, nil
}

// Delete removes a wish on the server using the admin password.
func (c *Client) Delete(ctx context.Context, id, password string) error {
	body, err := json.Marshal(map[string]string{"id": id})
	if err != nil {
		return err
	}

	r, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+messagesPath, bytes.NewReader(body))
	if err != nil {
		return err
	}
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("Authorization", "Bearer "+password)

	var resp envelope
	status, err := c.do(r, &resp)
	if err != nil {
		return err
	}
	if status != http.StatusOK || !resp.Success {
		return fmt.Errorf("delete failed (%d): %s", status, resp.Error)
	}
	return nil
}

// envelope is every API response. Message is the created wish on POST and a
// status string on DELETE.
type envelope struct {
	Success  bool            `json:"success"`
	Error    string          `json:"error"`
	Messages []*wish.Wish    `json:"messages"`
	Message  json.RawMessage `json:"message"`
}

func (c *Client) fetch(ctx context.Context) ([]*wish.Wish, error) {
	r, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+messagesPath, nil)
	if err != nil {
		return nil, err
	}

	var resp envelope
	if _, err := c.do(r, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.Messages == nil {
		return nil, fmt.Errorf("server reported failure: %s", resp.Error)
	}
	return resp.Messages, nil
}

func (c *Client) create(ctx context.Context, req wish.CreateWishRequest) (*wish.Wish, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	r, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+messagesPath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	r.Header.Set("Content-Type", "application/json")

	var resp envelope
	if _, err := c.do(r, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || len(resp.Message) == 0 {
		return nil, fmt.Errorf("server reported failure: %s", resp.Error)
	}

	var created wish.Wish
	if err := json.Unmarshal(resp.Message, &created); err != nil {
		return nil, fmt.Errorf("decoding created wish: %w", err)
	}
	return &created, nil
}

// do sends r and decodes the JSON body whatever the status code, as the
// API reports failures in the envelope.
func (c *Client) do(r *http.Request, out *envelope) (int, error) {
	res, err := c.http.Do(r)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return res.StatusCode, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return res.StatusCode, fmt.Errorf("decoding response: %w", err)
	}
	return res.StatusCode, nil
}

func (c *Client) readCache(ctx context.Context) ([]*wish.Wish, error) {
	raw, ok, err := c.cache.Get(ctx, CacheKey)
	if err != nil || !ok {
		return nil, err
	}

	var wishes []*wish.Wish
	if err := json.Unmarshal([]byte(raw), &wishes); err != nil {
		return nil, fmt.Errorf("decoding cached wishes: %w", err)
	}
	return wishes, nil
}

func (c *Client) writeCache(ctx context.Context, wishes []*wish.Wish) error {
	raw, err := json.Marshal(wishes)
	if err != nil {
		return err
	}
	return c.cache.Set(ctx, CacheKey, string(raw))
}

func (c *Client) prependToCache(ctx context.Context, w *wish.Wish) error {
	cached, err := c.readCache(ctx)
	if err != nil {
		log.WithError(err).Warn("discarding unreadable wish cache")
		cached = nil
	}
	return c.writeCache(ctx, append([]*wish.Wish{w}, cached...))
}
