// Package host defines the contract with the embedding editor and the
// driver that turns its unreliable "word finished" signals into correction
// attempts.
package host

import (
	"context"
	"time"

	"typofix/internal/engine"
)

// Editor is what the engine needs from the surrounding editor integration.
// The ok results model an unreliable host API: no focused block, no cursor.
type Editor interface {
	// Location identifies the block currently being edited.
	Location() string

	// CurrentText returns the text of the current block.
	CurrentText() (string, bool)

	// CursorOffset returns the byte offset of the cursor in that text.
	CursorOffset() (int, bool)

	// ApplyReplacement installs the corrected text and moves the cursor.
	ApplyReplacement(text string, cursor int)
}

// Driver funnels both trigger paths, event notifications and an optional
// polling ticker, into the engine. Notifications are at-least-once and may
// be delayed or duplicated; the engine's dedup guard makes the double
// delivery harmless, so the driver does no filtering of its own.
type Driver struct {
	editor Editor
	engine *engine.Engine
	events chan struct{}
	poll   time.Duration
}

// NewDriver creates a Driver. poll <= 0 disables the polling fallback.
func NewDriver(editor Editor, eng *engine.Engine, poll time.Duration) *Driver {
	return &Driver{
		editor: editor,
		engine: eng,
		events: make(chan struct{}, 1),
		poll:   poll,
	}
}

// NotifyWordFinished records a "user finished a word" signal. Never blocks;
// a signal arriving while one is already pending coalesces with it.
func (d *Driver) NotifyWordFinished() {
	select {
	case d.events <- struct{}{}:
	default:
	}
}

// Run serves trigger events until ctx is cancelled.
func (d *Driver) Run(ctx context.Context) {
	var tick <-chan time.Time
	if d.poll > 0 {
		t := time.NewTicker(d.poll)
		defer t.Stop()
		tick = t.C
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-d.events:
			d.attempt()
		case <-tick:
			d.attempt()
		}
	}
}

// attempt runs one correction pass. A missing block or cursor aborts
// silently; the next trigger re-attempts naturally.
func (d *Driver) attempt() {
	text, ok := d.editor.CurrentText()
	if !ok {
		return
	}
	cursor, ok := d.editor.CursorOffset()
	if !ok {
		return
	}
	rep, ok := d.engine.Apply(d.editor.Location(), text, cursor)
	if !ok {
		return
	}
	d.editor.ApplyReplacement(rep.Text, rep.Cursor)
}
