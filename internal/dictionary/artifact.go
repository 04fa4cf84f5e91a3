package dictionary

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// The base table is persisted as a JSON object, typo -> correction, all
// lowercase. encoding/json writes map keys sorted, which keeps the artifact
// diffable between dictgen runs.

// WriteArtifact persists table at path, replacing any existing artifact.
func WriteArtifact(path string, table map[string]string) error {
	data, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return fmt.Errorf("encode artifact: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	return nil
}

// LoadArtifact reads a base-table artifact. The file is mapped read-only
// rather than slurped; generated tables run to a few megabytes and the
// mapping is dropped as soon as decoding finishes.
func LoadArtifact(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open artifact: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat artifact: %w", err)
	}
	if info.Size() == 0 {
		return map[string]string{}, nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("map artifact: %w", err)
	}
	defer m.Unmap()

	table, err := decodeTable(m)
	if err != nil {
		return nil, fmt.Errorf("decode artifact %s: %w", path, err)
	}
	return table, nil
}

// DefaultTable returns the base table shipped with the binary, generated by
// dictgen with the British dialect.
func DefaultTable() (map[string]string, error) {
	data, err := dataFS.ReadFile("data/base.json")
	if err != nil {
		return nil, fmt.Errorf("read embedded base table: %w", err)
	}
	return decodeTable(data)
}

func decodeTable(data []byte) (map[string]string, error) {
	var table map[string]string
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, err
	}
	// A no-op rule is meaningless; drop it rather than carry it forward.
	for k, v := range table {
		if k == v {
			delete(table, k)
		}
	}
	return table, nil
}
