// Package audio keeps background music inside a fixed slice of the track.
package audio

import (
	"errors"
	"fmt"
	"sync"
)

// Loop is the half-open playback window [Start, End) in seconds.
type Loop struct {
	Start float64
	End   float64
}

func NewLoop(start, end float64) (Loop, error) {
	if start < 0 || end <= start {
		return Loop{}, fmt.Errorf("invalid loop [%v, %v)", start, end)
	}
	return Loop{Start: start, End: end}, nil
}

// Player is the media element being driven.
type Player interface {
	CurrentTime() float64
	Seek(seconds float64)
	Play() error
	Pause()
	Paused() bool
}

const (
	IconPlaying = "fa-volume-up"
	IconPaused  = "fa-volume-mute"
)

var ErrNotUnlocked = errors.New("playback not yet allowed by the browser")

// Controller enforces the loop on time updates, tries autoplay once on the
// first user gesture and backs the manual toggle button.
type Controller struct {
	loop   Loop
	player Player

	mu        sync.Mutex
	attempted bool
}

func NewController(loop Loop, player Player) *Controller {
	return &Controller{loop: loop, player: player}
}

// OnTimeUpdate is called on every playback-position signal. It seeks back
// to Start when the position reaches End and reports whether it did.
func (c *Controller) OnTimeUpdate() bool {
	if c.player.CurrentTime() >= c.loop.End {
		c.player.Seek(c.loop.Start)
		return true
	}
	return false
}

// OnFirstGesture attempts autoplay exactly once. A refusal is swallowed;
// the listener just needs to know whether to stay subscribed.
func (c *Controller) OnFirstGesture() (played bool) {
	c.mu.Lock()
	if c.attempted {
		c.mu.Unlock()
		return false
	}
	c.attempted = true
	c.mu.Unlock()

	c.seekIntoLoop()
	return c.player.Play() == nil
}

// Toggle flips play/pause and returns the icon class for the new state.
func (c *Controller) Toggle() (string, error) {
	if c.player.Paused() {
		c.seekIntoLoop()
		if err := c.player.Play(); err != nil {
			return IconPaused, err
		}
		return IconPlaying, nil
	}

	c.player.Pause()
	return IconPaused, nil
}

// Icon reports the class for the current state.
func (c *Controller) Icon() string {
	if c.player.Paused() {
		return IconPaused
	}
	return IconPlaying
}

func (c *Controller) seekIntoLoop() {
	pos := c.player.CurrentTime()
	if pos < c.loop.Start || pos >= c.loop.End {
		c.player.Seek(c.loop.Start)
	}
}

// Idle is the media element as the page first loads it: paused at a
// position and not yet allowed to play by the browser.
type Idle struct {
	pos float64
}

func NewIdle(pos float64) *Idle {
	return &Idle{pos: pos}
}

func (p *Idle) CurrentTime() float64 { return p.pos }
func (p *Idle) Seek(seconds float64) { p.pos = seconds }
func (p *Idle) Play() error          { return ErrNotUnlocked }
func (p *Idle) Pause()               {}
func (p *Idle) Paused() bool         { return true }

// View is what the page needs to render the player and its toggle button.
type View struct {
	Start       float64
	End         float64
	Position    float64
	Icon        string
	IconPlaying string
	IconPaused  string
}

// View snapshots the controller for rendering. The position is pulled into
// the loop first so the element never starts outside it.
func (c *Controller) View() View {
	c.seekIntoLoop()
	return View{
		Start:       c.loop.Start,
		End:         c.loop.End,
		Position:    c.player.CurrentTime(),
		Icon:        c.Icon(),
		IconPlaying: IconPlaying,
		IconPaused:  IconPaused,
	}
}
