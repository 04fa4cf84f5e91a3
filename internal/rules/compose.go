package rules

import (
	"sync"
	"sync/atomic"

	"typofix/internal/dictionary"
)

// Composer owns the three rule sources and the current effective table.
//
// Precedence on key collision, lowest to highest: base < remote < personal.
// Every source change rebuilds a fresh Table and publishes it with a single
// atomic store, so concurrent lookups see either the old or the new table,
// never a half-built one. Lookups never block; before the base dictionary
// finishes its deferred load the effective table is simply empty.
type Composer struct {
	sets *dictionary.WordSets

	mu       sync.Mutex // serializes source updates and rebuilds
	base     map[string]string
	remote   map[string]string
	personal map[string]string

	effective atomic.Pointer[Table]
}

// NewComposer returns a Composer with all three sources empty.
func NewComposer(sets *dictionary.WordSets) *Composer {
	c := &Composer{sets: sets}
	empty := Table{}
	c.effective.Store(&empty)
	return c
}

// SetBase replaces the filtered base table and recomposes.
func (c *Composer) SetBase(t map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.base = t
	c.recompose()
}

// SetRemote replaces the remote table and recomposes.
func (c *Composer) SetRemote(t map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remote = t
	c.recompose()
}

// SetPersonal replaces the personal table and recomposes.
func (c *Composer) SetPersonal(t map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.personal = t
	c.recompose()
}

// SetPersonalText parses the user-editable personal rules text and installs
// the result.
func (c *Composer) SetPersonalText(text string) {
	c.SetPersonal(ParsePersonal(text))
}

// Effective returns the current effective table.
func (c *Composer) Effective() Table {
	return *c.effective.Load()
}

// Lookup returns the correction for word from the current effective table.
func (c *Composer) Lookup(word string) (string, bool) {
	return c.Effective().Lookup(word)
}

// recompose merges the three sources in precedence order and swaps in the
// result. Caller holds c.mu.
func (c *Composer) recompose() {
	merged := make(Table, len(c.base)+len(c.remote)+len(c.personal))
	for _, src := range []map[string]string{c.base, c.remote, c.personal} {
		for typo, correction := range src {
			// Protected keys and entries correcting into an ambiguous
			// word are excluded whatever their source; a personal rule
			// does not get to reintroduce them.
			if typo == correction {
				continue
			}
			if c.sets.Protected(typo) || c.sets.Ambiguous(typo) || c.sets.Ambiguous(correction) {
				continue
			}
			merged[typo] = correction
		}
	}
	c.effective.Store(&merged)
}
