package engine

import (
	"hash/fnv"
	"sync"
	"unicode/utf8"

	"typofix/internal/dictionary"
	"typofix/pkg/options"
)

// Lookup is the read side of the composed rule table.
type Lookup interface {
	Lookup(word string) (string, bool)
}

// Engine ties the pipeline together: trigger check, word extraction and
// safety filtering, case-preserving rewrite, and the dedup guard that makes
// duplicated host notifications harmless.
//
// Apart from the guard the engine is a pure function of (text, cursor,
// table); it holds no view of the document between calls.
type Engine struct {
	table Lookup
	sets  *dictionary.WordSets
	opts  options.EngineOptions

	mu      sync.Mutex
	lastLoc string
	lastSig uint64
	applied bool
}

// New builds an Engine over the composed table and protected word sets.
func New(table Lookup, sets *dictionary.WordSets, opts ...options.Options) *Engine {
	o := options.DefaultOptions
	for _, op := range opts {
		op.Apply(&o)
	}
	return &Engine{table: table, sets: sets, opts: o}
}

// Apply runs one correction attempt for the block identified by loc, with
// the host's current text and cursor offset. The rune before cursor must be
// a word boundary (the character whose appearance signalled the end of a
// word); the word under inspection ends just before it.
//
// Event and polling trigger paths may both observe the same edit, and host
// notifications arrive at least once. Apply is therefore idempotent per
// observed state: a second call with the same location and the same text
// content as the most recently applied correction is suppressed. Every
// failure path returns ok=false; nothing in here can interrupt typing.
func (e *Engine) Apply(loc, text string, cursor int) (Replacement, bool) {
	if cursor <= 0 || cursor > len(text) {
		return Replacement{}, false
	}
	boundary, size := utf8.DecodeLastRuneInString(text[:cursor])
	if !IsBoundary(boundary) {
		return Replacement{}, false
	}

	// Propose treats a correction equal to the lowercased word as "no
	// candidate", so a self-map can never reach the rewriter.
	cand, ok := e.Propose(text, cursor-size)
	if !ok {
		return Replacement{}, false
	}

	sig := signature(text, cursor)
	e.mu.Lock()
	if e.applied && loc == e.lastLoc && sig == e.lastSig {
		e.mu.Unlock()
		return Replacement{}, false
	}
	e.lastLoc, e.lastSig, e.applied = loc, sig, true
	e.mu.Unlock()

	return Rewrite(text, cand, cursor), true
}

// shortException reports whether the pair is exempt from the minimum
// length rule.
func (e *Engine) shortException(typo, correction string) bool {
	return dictionary.ShortException(typo, correction)
}

// signature identifies one observed text state. The corrected text differs
// from the observed one, so a genuine re-occurrence of the same typo hashes
// differently and only stale duplicate observations collide.
func signature(text string, cursor int) uint64 {
	h := fnv.New64a()
	h.Write([]byte{byte(cursor), byte(cursor >> 8), byte(cursor >> 16), byte(cursor >> 24)})
	h.Write([]byte(text))
	return h.Sum64()
}
