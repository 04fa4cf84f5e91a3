package dictionary

import (
	"bufio"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// Filter turns a raw typo source into a safe rule table. The zero value is
// not usable; construct with NewFilter.
type Filter struct {
	sets       *WordSets
	exceptions map[string]string
}

// NewFilter returns a Filter using the given protected word sets and the
// package short-word exception list.
func NewFilter(sets *WordSets) *Filter {
	return &Filter{sets: sets, exceptions: ShortWordExceptions}
}

// FilterSource parses a line-oriented source of the form
//
//	typo->correction1[,correction2,...]
//
// and returns the surviving typo->correction pairs. Blank lines and lines
// starting with '#' are ignored; malformed lines are skipped, not fatal.
// Entries are merged into dst so that repeated calls implement
// last-parsed-wins across multiple sources; pass nil to start a new table.
func (f *Filter) FilterSource(dst map[string]string, r io.Reader) (map[string]string, error) {
	if dst == nil {
		dst = make(map[string]string)
	}
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		typo, correction, ok := f.filterLine(line)
		if !ok {
			continue
		}
		dst[typo] = correction
	}
	if err := s.Err(); err != nil {
		return dst, err
	}
	return dst, nil
}

// FilterFile runs FilterSource over the named file.
func (f *Filter) FilterFile(dst map[string]string, path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return dst, err
	}
	defer file.Close()
	return f.FilterSource(dst, file)
}

// filterLine applies the per-line policy from the filtering pipeline.
// It returns ok=false for malformed lines and for pairs that fail any
// safety rule.
func (f *Filter) filterLine(line string) (typo, correction string, ok bool) {
	left, right, found := strings.Cut(line, "->")
	if !found {
		return "", "", false
	}
	typo = strings.ToLower(strings.TrimSpace(left))
	if typo == "" {
		return "", "", false
	}

	var candidates []string
	for _, c := range strings.Split(right, ",") {
		c = strings.ToLower(strings.TrimSpace(c))
		if c != "" {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return "", "", false
	}

	// A dialect-correct word is never a typo, whatever the source claims.
	if f.sets.Protected(typo) {
		return "", "", false
	}

	// Prefer the first candidate in the protected set so typos resolve
	// toward the configured dialect; ties and misses take source order.
	correction = candidates[0]
	for _, c := range candidates {
		if f.sets.Protected(c) {
			correction = c
			break
		}
	}

	switch {
	case correction == typo:
		return "", "", false
	case f.sets.Ambiguous(typo) || f.sets.Ambiguous(correction):
		return "", "", false
	}
	if utf8.RuneCountInString(typo) < MinTypoLength && f.exceptions[typo] != correction {
		return "", "", false
	}
	return typo, correction, true
}
