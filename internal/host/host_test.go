package host

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typofix/internal/dictionary"
	"typofix/internal/engine"
)

type fakeEditor struct {
	mu       sync.Mutex
	location string
	text     string
	cursor   int
	hasText  bool
	hasCur   bool
	applied  int
}

func (f *fakeEditor) Location() string { return f.location }

func (f *fakeEditor) CurrentText() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.text, f.hasText
}

func (f *fakeEditor) CursorOffset() (int, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cursor, f.hasCur
}

func (f *fakeEditor) ApplyReplacement(text string, cursor int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.text, f.cursor = text, cursor
	f.applied++
}

func (f *fakeEditor) state() (string, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.text, f.applied
}

type table map[string]string

func (t table) Lookup(w string) (string, bool) {
	c, ok := t[w]
	return c, ok
}

func newEditorDriver(ed *fakeEditor) *Driver {
	eng := engine.New(table{"teh": "the"}, dictionary.LoadWordSets(dictionary.DialectBritish))
	return NewDriver(ed, eng, 0)
}

func TestDriverAppliesCorrectionOnEvent(t *testing.T) {
	t.Parallel()

	ed := &fakeEditor{location: "block-1", text: "teh ", cursor: 4, hasText: true, hasCur: true}
	d := newEditorDriver(ed)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Run(ctx)

	d.NotifyWordFinished()
	require.Eventually(t, func() bool {
		text, _ := ed.state()
		return text == "the "
	}, 5*time.Second, 10*time.Millisecond)
}

func TestDriverDuplicateEventsApplyOnce(t *testing.T) {
	t.Parallel()

	ed := &fakeEditor{location: "block-1", text: "teh ", cursor: 4, hasText: true, hasCur: true}
	eng := engine.New(table{"teh": "the"}, dictionary.LoadWordSets(dictionary.DialectBritish))
	d := NewDriver(ed, eng, 0)

	// Drive attempts synchronously: the host delivered the same stale
	// observation twice (event plus poll), but the editor state already
	// changed after the first apply, and even a literal duplicate is
	// caught by the engine's dedup guard.
	d.attempt()
	d.attempt()

	text, applied := ed.state()
	assert.Equal(t, "the ", text)
	assert.Equal(t, 1, applied)
}

func TestDriverMissingCursorAborts(t *testing.T) {
	t.Parallel()

	ed := &fakeEditor{location: "block-1", text: "teh ", cursor: 4, hasText: true, hasCur: false}
	d := newEditorDriver(ed)

	d.attempt()
	_, applied := ed.state()
	assert.Zero(t, applied)
}

func TestDriverMissingTextAborts(t *testing.T) {
	t.Parallel()

	ed := &fakeEditor{location: "block-1", hasText: false, hasCur: true}
	d := newEditorDriver(ed)

	d.attempt()
	_, applied := ed.state()
	assert.Zero(t, applied)
}

func TestDriverPollingPathAlsoCorrects(t *testing.T) {
	t.Parallel()

	ed := &fakeEditor{location: "block-1", text: "teh ", cursor: 4, hasText: true, hasCur: true}
	eng := engine.New(table{"teh": "the"}, dictionary.LoadWordSets(dictionary.DialectBritish))
	d := NewDriver(ed, eng, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Run(ctx)

	// No explicit event; the ticker alone must pick the correction up.
	require.Eventually(t, func() bool {
		text, _ := ed.state()
		return text == "the "
	}, 5*time.Second, 10*time.Millisecond)
}
