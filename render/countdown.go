package render

import (
	"strconv"
	"time"
)

// Countdown tracks the pre-match "3, 2, 1, Go!" sequence.
// It is advanced by frame time so front-ends never block while it runs.
type Countdown struct {
	seconds   int
	goLabel   string
	remaining time.Duration
}

// NewCountdown creates an inactive countdown of seconds numbers followed by goLabel.
func NewCountdown(seconds int, goLabel string) *Countdown {
	if seconds < 0 {
		seconds = 0
	}
	if goLabel == "" {
		goLabel = "Go!"
	}
	return &Countdown{seconds: seconds, goLabel: goLabel}
}

// Start (re)starts the sequence. Each number and the final label last one second.
func (c *Countdown) Start() {
	c.remaining = time.Duration(c.seconds+1) * time.Second
}

// Skip ends the sequence immediately.
func (c *Countdown) Skip() {
	c.remaining = 0
}

// Advance consumes dt of frame time.
func (c *Countdown) Advance(dt time.Duration) {
	c.remaining -= dt
	if c.remaining < 0 {
		c.remaining = 0
	}
}

// Active reports whether the sequence is still showing.
func (c *Countdown) Active() bool {
	return c.remaining > 0
}

// Label returns the text to show, or "" when inactive.
func (c *Countdown) Label() string {
	if !c.Active() {
		return ""
	}
	step := int((c.remaining + time.Second - 1) / time.Second)
	if step <= 1 {
		return c.goLabel
	}
	return strconv.Itoa(step - 1)
}
