package cache

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/renameio"
)

// memoryFormat is the JSON structure a persisted translation memory is
// stored in.
type memoryFormat struct {
	Version  string            `json:"version"`
	SavedAt  string            `json:"saved_at"`
	Pair     string            `json:"pair,omitempty"`
	Entries  []memoryEntry     `json:"entries"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// memoryEntry is a single persisted cache entry.
type memoryEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// FileMemory wraps an InMemoryCache with load/save so a translation
// memory survives across runs of the pipeline.
type FileMemory struct {
	*InMemoryCache
	path string
	pair string
}

// NewFileMemory creates a translation memory backed by the given file.
// If the file exists its entries are loaded; a missing file starts the
// memory empty.
func NewFileMemory(path, pair string) (*FileMemory, error) {
	m := &FileMemory{
		InMemoryCache: NewInMemoryCache(0),
		path:          path,
		pair:          pair,
	}

	f, err := os.Open(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return m, nil
		}
		return nil, fmt.Errorf("opening translation memory: %w", err)
	}
	defer f.Close()

	if _, err := m.load(f); err != nil {
		return nil, err
	}
	return m, nil
}

// load reads persisted entries into the memory.
func (m *FileMemory) load(r io.Reader) (int, error) {
	var stored memoryFormat
	if err := json.NewDecoder(r).Decode(&stored); err != nil {
		return 0, fmt.Errorf("decoding translation memory: %w", err)
	}

	loaded := 0
	for _, entry := range stored.Entries {
		if err := m.InMemoryCache.Set(entry.Key, entry.Value); err != nil {
			continue
		}
		loaded++
	}
	return loaded, nil
}

// Save writes the current entries back to the backing file atomically.
func (m *FileMemory) Save() error {
	data := m.Entries()
	entries := make([]memoryEntry, 0, len(data))
	for key, value := range data {
		entries = append(entries, memoryEntry{Key: key, Value: value})
	}

	stored := memoryFormat{
		Version: "1.0",
		SavedAt: time.Now().UTC().Format(time.RFC3339),
		Pair:    m.pair,
		Entries: entries,
	}

	out, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding translation memory: %w", err)
	}

	if err := renameio.WriteFile(m.path, out, 0o644); err != nil {
		return fmt.Errorf("writing translation memory: %w", err)
	}
	return nil
}

// Path returns the backing file path.
func (m *FileMemory) Path() string {
	return m.path
}

// Verify FileMemory implements TranslationCache
var _ TranslationCache = (*FileMemory)(nil)
