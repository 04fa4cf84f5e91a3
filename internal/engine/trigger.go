// Package engine decides when and how a just-typed word is corrected:
// trigger detection, word extraction with safety filtering, and the
// case-preserving rewrite.
package engine

import "unicode/utf8"

// IsBoundary reports whether r ends a word: whitespace, newline, or one of
// the common punctuation characters. This runs on every keystroke or poll
// tick, before any other work, and must stay allocation-free.
func IsBoundary(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r',
		'.', ',', ';', ':', '!', '?',
		'(', ')', '[', ']', '{', '}',
		'"', '\'':
		return true
	}
	return false
}

// IsTrigger reports whether the last rune of s is a word boundary.
// The empty string is never a trigger.
func IsTrigger(s string) bool {
	if s == "" {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(s)
	return IsBoundary(r)
}
