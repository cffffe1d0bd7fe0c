// Package countdown computes the days/hours/minutes/seconds left until the
// event and drives a once-a-second display that only touches changed fields.
package countdown

import (
	"context"
	"fmt"
	"time"
)

const (
	msPerSecond = int64(1000)
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
	msPerDay    = 24 * msPerHour
)

// Field names the four display slots, in display order.
type Field string

const (
	Days    Field = "days"
	Hours   Field = "hours"
	Minutes Field = "minutes"
	Seconds Field = "seconds"
)

var Order = []Field{Days, Hours, Minutes, Seconds}

type Fields struct {
	Days    int64
	Hours   int64
	Minutes int64
	Seconds int64
}

// Remaining splits target-now into whole units. Once the target is reached
// every field is zero; there is no negative countdown.
func Remaining(now, target time.Time) Fields {
	distance := target.Sub(now).Milliseconds()
	if distance <= 0 {
		return Fields{}
	}

	return Fields{
		Days:    distance / msPerDay,
		Hours:   (distance % msPerDay) / msPerHour,
		Minutes: (distance % msPerHour) / msPerMinute,
		Seconds: (distance % msPerMinute) / msPerSecond,
	}
}

func (f Fields) Zero() bool {
	return f == Fields{}
}

// Display renders each field zero-padded to two digits. Days above 99 keep
// all their digits.
func (f Fields) Display() map[Field]string {
	return map[Field]string{
		Days:    pad(f.Days),
		Hours:   pad(f.Hours),
		Minutes: pad(f.Minutes),
		Seconds: pad(f.Seconds),
	}
}

func pad(v int64) string {
	return fmt.Sprintf("%02d", v)
}

// Change is one field whose text differs from what was last shown. Pulse is
// set for every change so the renderer can play its brief scale animation.
type Change struct {
	Field Field
	Value string
	Pulse bool
}

// Ticker remembers what is on screen and reports only the differences.
type Ticker struct {
	target time.Time
	now    func() time.Time
	shown  map[Field]string
}

func NewTicker(target time.Time, now func() time.Time) *Ticker {
	if now == nil {
		now = time.Now
	}
	return &Ticker{target: target, now: now, shown: make(map[Field]string, len(Order))}
}

// Tick re-reads the clock and returns the fields that changed, in display
// order. The first tick reports all four.
func (t *Ticker) Tick() []Change {
	display := Remaining(t.now(), t.target).Display()

	var changes []Change
	for _, f := range Order {
		v := display[f]
		if t.shown[f] == v {
			continue
		}
		t.shown[f] = v
		changes = append(changes, Change{Field: f, Value: v, Pulse: true})
	}
	return changes
}

// Run ticks immediately and then every interval until ctx is done, handing
// each non-empty batch of changes to render.
func (t *Ticker) Run(ctx context.Context, interval time.Duration, render func([]Change)) {
	if changes := t.Tick(); len(changes) > 0 {
		render(changes)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if changes := t.Tick(); len(changes) > 0 {
				render(changes)
			}
		}
	}
}
