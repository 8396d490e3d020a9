// Package search implements the debounced search bar and name matching.
package search

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultDelay is the quiet period before typed text is committed.
const DefaultDelay = 600 * time.Millisecond

// FireMsg is delivered when a debounce timer elapses.
type FireMsg struct {
	Gen  uint64
	Text string
}

// Debouncer tracks the latest armed timer with a generation counter. A
// timer whose generation is no longer current is ignored when it fires.
type Debouncer struct {
	delay   time.Duration
	gen     uint64
	pending bool
}

// NewDebouncer creates a debouncer. A non-positive delay uses DefaultDelay.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{delay: delay}
}

// Delay returns the quiet period.
func (d *Debouncer) Delay() time.Duration { return d.delay }

// Pending reports whether an armed timer has not yet fired or been cancelled.
func (d *Debouncer) Pending() bool { return d.pending }

// Arm invalidates any pending timer and starts a new one carrying text.
func (d *Debouncer) Arm(text string) tea.Cmd {
	d.gen++
	d.pending = true
	gen := d.gen
	return tea.Tick(d.delay, func(time.Time) tea.Msg {
		return FireMsg{Gen: gen, Text: text}
	})
}

// Fire accepts an elapsed timer. It returns the text and true only for the
// current, uncancelled timer.
func (d *Debouncer) Fire(msg FireMsg) (string, bool) {
	if !d.pending || msg.Gen != d.gen {
		return "", false
	}
	d.pending = false
	return msg.Text, true
}

// Cancel invalidates any pending timer.
func (d *Debouncer) Cancel() {
	d.gen++
	d.pending = false
}
