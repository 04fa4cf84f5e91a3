// Package rules composes the effective rule table from the filtered base
// dictionary, an optional remotely fetched table and the user's personal
// rules, and keeps it swappable without blocking lookups.
package rules

// Table maps a lowercase typo to its lowercase correction. A Table is
// immutable once published by the composer.
type Table map[string]string

// Lookup returns the correction for word, if any.
func (t Table) Lookup(word string) (string, bool) {
	c, ok := t[word]
	return c, ok
}
