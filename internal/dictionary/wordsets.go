// Package dictionary builds the base rule table used for typo correction.
//
// It turns a noisy line-oriented typo source into a conservative
// typo->correction table, holds the protected word sets that keep the
// corrector away from dialect-sensitive and ambiguous words, and reads and
// writes the generated base-table artifact.
package dictionary

import (
	"bufio"
	"embed"
	"log"
	"strings"
)

//go:embed data
var dataFS embed.FS

// Dialect selects which regional word list is protected from correction.
type Dialect string

const (
	DialectBritish  Dialect = "british"
	DialectAmerican Dialect = "american"
)

// MinTypoLength is the shortest typo accepted without an explicit
// exception. Below five letters the chance that the "typo" is a real word,
// an abbreviation or an identifier is too high to guess.
const MinTypoLength = 5

// ShortWordExceptions lists sub-threshold typos that are unambiguous enough
// to correct anyway. Trusted input; the filter never drops these.
var ShortWordExceptions = map[string]string{
	"adn":  "and",
	"hte":  "the",
	"jsut": "just",
	"liek": "like",
	"nad":  "and",
	"taht": "that",
	"teh":  "the",
	"thsi": "this",
	"tihs": "this",
	"waht": "what",
}

// ShortException reports whether (typo, correction) is an exact entry of
// the short-word exception list.
func ShortException(typo, correction string) bool {
	return ShortWordExceptions[typo] == correction
}

// WordSets holds the two protected word sets. Immutable after LoadWordSets;
// safe for concurrent reads.
type WordSets struct {
	protected map[string]struct{}
	ambiguous map[string]struct{}
}

// LoadWordSets loads the dialect-protected set for d and the ambiguous set
// from the embedded word lists. Unknown dialects fall back to British.
func LoadWordSets(d Dialect) *WordSets {
	name := "data/british.txt"
	if d == DialectAmerican {
		name = "data/american.txt"
	}
	return &WordSets{
		protected: loadWordFile(name),
		ambiguous: loadWordFile("data/ambiguous.txt"),
	}
}

// Protected reports whether word (lowercase) is in the dialect-protected set.
func (ws *WordSets) Protected(word string) bool {
	_, ok := ws.protected[word]
	return ok
}

// Ambiguous reports whether word (lowercase) is in the ambiguous set.
func (ws *WordSets) Ambiguous(word string) bool {
	_, ok := ws.ambiguous[word]
	return ok
}

func loadWordFile(name string) map[string]struct{} {
	set := make(map[string]struct{})
	f, err := dataFS.Open(name)
	if err != nil {
		log.Printf("dictionary: cannot open embedded word list %s: %v", name, err)
		return set
	}
	defer f.Close()

	s := bufio.NewScanner(f)
	for s.Scan() {
		word := strings.TrimSpace(s.Text())
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		set[strings.ToLower(word)] = struct{}{}
	}
	if err := s.Err(); err != nil {
		log.Printf("dictionary: error reading embedded word list %s: %v", name, err)
	}
	return set
}
