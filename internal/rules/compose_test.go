package rules

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typofix/internal/dictionary"
)

func newComposer() *Composer {
	return NewComposer(dictionary.LoadWordSets(dictionary.DialectBritish))
}

func TestComposerEmptyBeforeLoad(t *testing.T) {
	t.Parallel()

	c := newComposer()
	_, ok := c.Lookup("teh")
	assert.False(t, ok, "lookups against a not-yet-loaded table find no match")
	assert.Empty(t, c.Effective())
}

func TestComposerPrecedence(t *testing.T) {
	t.Parallel()

	c := newComposer()
	c.SetBase(map[string]string{"teh": "the", "recieve": "receive", "basecol": "basement"})
	c.SetRemote(map[string]string{"recieve": "recieved", "remotly": "remotely"})
	c.SetPersonal(map[string]string{"recieve": "reception", "mytypo": "mycorrection"})

	want := map[string]string{
		"teh":     "the",
		"recieve": "reception", // personal wins over remote wins over base
		"basecol": "basement",
		"remotly": "remotely",
		"mytypo":  "mycorrection",
	}
	for typo, correction := range want {
		got, ok := c.Lookup(typo)
		require.True(t, ok, "missing %q", typo)
		assert.Equal(t, correction, got, "typo %q", typo)
	}
}

func TestComposerExcludesUnsafeEntries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		personal map[string]string
		absent   string
	}{
		{
			name:     "self-map dropped",
			personal: map[string]string{"receive": "receive"},
			absent:   "receive",
		},
		{
			name:     "dialect-protected key dropped",
			personal: map[string]string{"colour": "color"},
			absent:   "colour",
		},
		{
			name:     "ambiguous key dropped",
			personal: map[string]string{"from": "form"},
			absent:   "from",
		},
		{
			name:     "correction into ambiguous word dropped",
			personal: map[string]string{"thier": "their"},
			absent:   "thier",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newComposer()
			c.SetPersonal(tt.personal)
			_, ok := c.Lookup(tt.absent)
			assert.False(t, ok)
		})
	}
}

func TestComposerRecomposeIsDeterministic(t *testing.T) {
	t.Parallel()

	base := map[string]string{"teh": "the", "recieve": "receive"}
	remote := map[string]string{"remotly": "remotely"}
	personal := map[string]string{"teh": "ten"}

	a, b := newComposer(), newComposer()
	for _, c := range []*Composer{a, b} {
		c.SetBase(base)
		c.SetRemote(remote)
		c.SetPersonal(personal)
	}
	assert.Equal(t, a.Effective(), b.Effective())
}

func TestComposerSetPersonalText(t *testing.T) {
	t.Parallel()

	c := newComposer()
	c.SetPersonalText("acheive achieve")
	got, ok := c.Lookup("acheive")
	require.True(t, ok)
	assert.Equal(t, "achieve", got)
}

// Concurrent lookups during recomposition must see either the old or the
// new table, never a partial one. Run with -race.
func TestComposerConcurrentLookups(t *testing.T) {
	t.Parallel()

	c := newComposer()
	c.SetBase(map[string]string{"recieve": "receive"})

	var wg sync.WaitGroup
	stop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			if got, ok := c.Lookup("recieve"); ok {
				assert.Equal(t, "receive", got)
			}
		}
	}()

	for i := 0; i < 100; i++ {
		c.SetPersonal(map[string]string{
			fmt.Sprintf("typoo%d", i): "correction",
		})
	}
	close(stop)
	wg.Wait()
}
