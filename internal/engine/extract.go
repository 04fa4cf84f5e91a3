package engine

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Candidate is one proposed correction: the word found immediately before
// an offset, its replacement, and the byte span to splice over.
type Candidate struct {
	Word       string
	Correction string
	Start      int
	End        int
}

// Propose extracts the word ending at offset, looks it up in the effective
// table and applies the safety checks. ok is false whenever no correction
// should happen; there is no error case.
//
// The safety checks run regardless of how the table was composed: a
// personal rule can put an unsafe entry into the table, but it cannot make
// the engine act on it.
func (e *Engine) Propose(text string, offset int) (Candidate, bool) {
	if offset <= 0 || offset > len(text) {
		return Candidate{}, false
	}

	// Inside an inline code span nothing is corrected. Parity counting is
	// a heuristic: mismatched delimiters make it miss corrections, never
	// invent them.
	if inCodeSpan(text[:offset], e.opts.CodeDelimiter) {
		return Candidate{}, false
	}

	start := offset
	for start > 0 && !isBoundaryByte(text[start-1]) {
		start--
	}
	word := text[start:offset]
	if word == "" {
		return Candidate{}, false
	}

	length := 0
	for _, r := range word {
		// Digits and underscores mark identifiers, not prose.
		if r == '_' || unicode.IsDigit(r) {
			return Candidate{}, false
		}
		length++
	}
	if length > e.opts.MaxWordLength {
		return Candidate{}, false
	}

	lower := strings.ToLower(word)
	correction, ok := e.table.Lookup(lower)
	if !ok || correction == lower {
		return Candidate{}, false
	}

	if e.sets.Protected(lower) {
		return Candidate{}, false
	}
	if e.sets.Ambiguous(lower) || e.sets.Ambiguous(correction) {
		return Candidate{}, false
	}
	if length < e.opts.MinTypoLength && !e.shortException(lower, correction) {
		return Candidate{}, false
	}

	return Candidate{Word: word, Correction: correction, Start: start, End: offset}, true
}

// isBoundaryByte is the byte-level form of IsBoundary. All boundary runes
// are ASCII, so continuation bytes of multi-byte runes never match and the
// backward scan stays rune-safe.
func isBoundaryByte(b byte) bool {
	return b < utf8.RuneSelf && IsBoundary(rune(b))
}

func inCodeSpan(prefix string, delimiter rune) bool {
	if delimiter == 0 {
		return false
	}
	return strings.Count(prefix, string(delimiter))%2 == 1
}
