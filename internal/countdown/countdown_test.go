package countdown

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var target = time.Date(2026, 1, 30, 19, 0, 0, 0, time.UTC)

func TestRemaining(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		now  time.Time
		want map[Field]string
	}{
		{
			name: "one day two hours three minutes four seconds before",
			now:  target.Add(-(24*time.Hour + 2*time.Hour + 3*time.Minute + 4*time.Second)),
			want: map[Field]string{Days: "01", Hours: "02", Minutes: "03", Seconds: "04"},
		},
		{
			name: "sub second remainder is floored",
			now:  target.Add(-(4*time.Second + 999*time.Millisecond)),
			want: map[Field]string{Days: "00", Hours: "00", Minutes: "00", Seconds: "04"},
		},
		{
			name: "exactly at target",
			now:  target,
			want: map[Field]string{Days: "00", Hours: "00", Minutes: "00", Seconds: "00"},
		},
		{
			name: "after target clamps to zero",
			now:  target.Add(72 * time.Hour),
			want: map[Field]string{Days: "00", Hours: "00", Minutes: "00", Seconds: "00"},
		},
		{
			name: "more than ninety nine days",
			now:  target.Add(-120 * 24 * time.Hour),
			want: map[Field]string{Days: "120", Hours: "00", Minutes: "00", Seconds: "00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Remaining(tt.now, target).Display())
		})
	}
}

func TestRemaining_TimezoneIndependent(t *testing.T) {
	t.Parallel()

	cairo := time.FixedZone("EET", 2*60*60)
	local := time.Date(2026, 1, 30, 21, 0, 0, 0, cairo)

	assert.True(t, Remaining(local.Add(-time.Hour), target).Hours == 1)
	assert.True(t, Remaining(local, target).Zero())
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestTicker_OnlyChangedFields(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: target.Add(-(time.Hour + 10*time.Second))}
	ticker := NewTicker(target, clock.Now)

	first := ticker.Tick()
	require.Len(t, first, 4)
	assert.Equal(t, Change{Field: Hours, Value: "01", Pulse: true}, first[1])

	clock.Advance(time.Second)
	second := ticker.Tick()
	require.Len(t, second, 1)
	assert.Equal(t, Change{Field: Seconds, Value: "09", Pulse: true}, second[0])

	assert.Empty(t, ticker.Tick(), "same second again changes nothing")

	clock.Advance(10 * time.Second)
	third := ticker.Tick()
	fields := make([]Field, 0, len(third))
	for _, c := range third {
		fields = append(fields, c.Field)
	}
	assert.Equal(t, []Field{Hours, Minutes, Seconds}, fields)
}

func TestTicker_PastTargetStaysZero(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: target.Add(-time.Second)}
	ticker := NewTicker(target, clock.Now)
	ticker.Tick()

	clock.Advance(5 * time.Second)
	changes := ticker.Tick()
	require.Len(t, changes, 1)
	assert.Equal(t, "00", changes[0].Value)

	clock.Advance(time.Hour)
	assert.Empty(t, ticker.Tick())
}

func TestTicker_Run(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: target.Add(-time.Minute)}
	ticker := NewTicker(target, clock.Now)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	batches := make(chan []Change, 8)
	done := make(chan struct{})
	go func() {
		ticker.Run(ctx, 5*time.Millisecond, func(c []Change) { batches <- c })
		close(done)
	}()

	first := <-batches
	assert.Len(t, first, 4)

	clock.Advance(time.Second)
	second := <-batches
	require.NotEmpty(t, second)
	assert.Equal(t, Seconds, second[len(second)-1].Field)

	cancel()
	<-done
}
