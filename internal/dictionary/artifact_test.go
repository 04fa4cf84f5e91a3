package dictionary

import (
	"os"
	"path/filepath"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtifactRoundTrip(t *testing.T) {
	t.Parallel()

	table := map[string]string{
		"recieve":  "receive",
		"seperate": "separate",
		"teh":      "the",
	}
	path := filepath.Join(t.TempDir(), "base.json")
	require.NoError(t, WriteArtifact(path, table))

	got, err := LoadArtifact(path)
	require.NoError(t, err)
	assert.Equal(t, table, got)
}

func TestLoadArtifactDropsSelfMaps(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "base.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"recieve":"receive","receive":"receive"}`), 0o644))

	got, err := LoadArtifact(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"recieve": "receive"}, got)
}

func TestLoadArtifactEmptyFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "base.json")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	got, err := LoadArtifact(path)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadArtifactErrors(t *testing.T) {
	t.Parallel()

	_, err := LoadArtifact(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "corrupt.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))
	_, err = LoadArtifact(path)
	assert.Error(t, err)
}

// TestDefaultTableIsSafe checks the shipped artifact against the rules the
// filter enforces: no self-maps, no protected or ambiguous typos, no
// corrections into ambiguous words, no sub-threshold typos outside the
// exception list.
func TestDefaultTableIsSafe(t *testing.T) {
	t.Parallel()

	table, err := DefaultTable()
	require.NoError(t, err)
	require.NotEmpty(t, table)

	ws := LoadWordSets(DialectBritish)
	for typo, correction := range table {
		assert.NotEqual(t, typo, correction, "self-map %q", typo)
		assert.False(t, ws.Protected(typo), "protected typo %q", typo)
		assert.False(t, ws.Ambiguous(typo), "ambiguous typo %q", typo)
		assert.False(t, ws.Ambiguous(correction), "correction %q -> ambiguous %q", typo, correction)
		if utf8.RuneCountInString(typo) < MinTypoLength {
			assert.True(t, ShortException(typo, correction),
				"short typo %q without exception", typo)
		}
	}
}
