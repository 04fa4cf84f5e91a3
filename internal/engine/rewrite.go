package engine

import (
	"strings"
	"unicode"
)

// Replacement is the rewritten text plus the adjusted cursor offset,
// consumed by the host's text-update call and then discarded.
type Replacement struct {
	Text   string
	Cursor int
}

// Rewrite splices the cased correction over the candidate's span. The
// cursor shifts by the length difference so it keeps its position relative
// to the boundary character that triggered the correction. Text before and
// after the span is untouched; the function has no side effects.
func Rewrite(text string, c Candidate, cursor int) Replacement {
	cased := matchCase(c.Word, c.Correction)
	shift := len(cased) - (c.End - c.Start)
	return Replacement{
		Text:   text[:c.Start] + cased + text[c.End:],
		Cursor: cursor + shift,
	}
}

// matchCase maps the original word's casing pattern onto the correction:
// all-uppercase originals uppercase the whole correction, a leading capital
// capitalizes only the first rune, anything else takes the correction
// verbatim (stored corrections are lowercase).
func matchCase(original, correction string) string {
	if isUpper(original) && hasLetter(original) {
		return strings.ToUpper(correction)
	}
	if r := []rune(original); len(r) > 0 && unicode.IsUpper(r[0]) {
		return capitalize(correction)
	}
	return correction
}

func isUpper(s string) bool { return strings.ToUpper(s) == s }

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
