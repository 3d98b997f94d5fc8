package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/example/studynotes/pkg/models"
)

// JSONFile stores the collection as a pretty-printed JSON array.
type JSONFile struct {
	path string
}

// NewJSONFile returns a repository backed by the file at path.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

// Path returns the backing file.
func (f *JSONFile) Path() string {
	return f.path
}

// Load reads the collection. A missing or empty file is an empty collection.
func (f *JSONFile) Load() ([]models.Note, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %w", ErrUnreadable, f.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var notes []models.Note
	if err := json.Unmarshal(data, &notes); err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s: %v", ErrCorrupt, f.path, err)
	}
	if err := validate(notes); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, f.path, err)
	}
	return notes, nil
}

// Save replaces the file with notes. The new content is written to a
// temporary file in the same directory and renamed over the old one.
func (f *JSONFile) Save(notes []models.Note) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	if notes == nil {
		notes = []models.Note{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(notes); err != nil {
		return fmt.Errorf("failed to encode notes: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".study_notes-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // nolint: errcheck

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close() // nolint: errcheck
		return fmt.Errorf("failed to write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close() // nolint: errcheck
		return fmt.Errorf("failed to sync %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", f.path, err)
	}
	return nil
}

// Quarantine renames the current file to <path>.corrupt-<unix>.
func (f *JSONFile) Quarantine(now time.Time) (string, error) {
	dst := fmt.Sprintf("%s.corrupt-%d", f.path, now.Unix())
	if err := os.Rename(f.path, dst); err != nil {
		return "", fmt.Errorf("failed to move %s aside: %w", f.path, err)
	}
	return dst, nil
}

// Close is a no-op, the file is only open during Load and Save.
func (f *JSONFile) Close() error {
	return nil
}
