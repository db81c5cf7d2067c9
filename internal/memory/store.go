package memory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Store reads and writes the memory document. A corrupt or missing file
// never fails a request; Load falls back to the default document.
type Store struct {
	path      string
	ownerName string
	log       zerolog.Logger
}

// NewStore builds a store writing to path.
func NewStore(path, ownerName string, log zerolog.Logger) *Store {
	return &Store{
		path:      path,
		ownerName: ownerName,
		log:       log.With().Str("component", "memory").Logger(),
	}
}

// Load reads the document from disk. Missing file, unreadable file and
// invalid JSON all return the default document.
func (s *Store) Load() *Document {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Error().Err(err).Str("path", s.path).Msg("failed to read memory file")
		}
		return NewDocument(s.ownerName)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.log.Error().Err(err).Str("path", s.path).Msg("memory file corrupted, resetting to default")
		return NewDocument(s.ownerName)
	}

	doc.Ensure(s.ownerName)
	return &doc
}

// Save writes the document atomically: temp file in the same directory, then
// rename over the target.
func (s *Store) Save(doc *Document) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create memory dir: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal memory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".memory-*.json")
	if err != nil {
		return fmt.Errorf("create temp memory file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write memory: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close memory file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace memory file: %w", err)
	}
	return nil
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }
