package wish

import (
	"sort"
	"time"
)

type Wish struct {
	ID      string    `json:"id" db:"id"`
	Name    string    `json:"name" db:"name"`
	Message string    `json:"message" db:"message"`
	Date    time.Time `json:"date" db:"created_at"`
}

// SortNewestFirst orders wishes by creation time, newest first. Ties keep
// their relative order.
func SortNewestFirst(wishes []*Wish) {
	sort.SliceStable(wishes, func(i, j int) bool {
		return wishes[i].Date.After(wishes[j].Date)
	})
}
