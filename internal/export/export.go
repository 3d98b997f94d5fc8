// Package export renders the note collection as JSON, CSV, PDF or XLSX
// and writes export files.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/example/studynotes/pkg/models"
)

var (
	// ErrNothingToExport is returned by ToFile for an empty collection.
	ErrNothingToExport = errors.New("no notes to export")
	ErrUnknownFormat   = errors.New("unknown export format")
)

// Format is an export file type, named by its extension.
type Format string

const (
	PDF  Format = "pdf"
	JSON Format = "json"
	CSV  Format = "csv"
	XLSX Format = "xlsx"
)

// Formats lists the supported formats.
var Formats = []Format{PDF, JSON, CSV, XLSX}

// FilePrefix starts every export file name.
const FilePrefix = "study-notes-"

// ParseFormat resolves a format name or extension.
func ParseFormat(s string) (Format, error) {
	s = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".")
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Write renders notes in format f.
func Write(w io.Writer, f Format, notes []models.Note, generatedAt time.Time) error {
	switch f {
	case PDF:
		return WritePDF(w, notes, generatedAt)
	case JSON:
		return WriteJSON(w, notes)
	case CSV:
		return WriteCSV(w, notes)
	case XLSX:
		return WriteXLSX(w, notes, generatedAt)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}

// FileName returns the export file name for a format at now.
func FileName(f Format, now time.Time) string {
	return fmt.Sprintf("%s%d.%s", FilePrefix, now.Unix(), f)
}

// DefaultDir is the user's desktop folder.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Desktop"), nil
}

// ToFile renders notes into dir and returns the written path. Nothing is
// written if rendering fails.
func ToFile(f Format, dir string, notes []models.Note, now time.Time) (string, error) {
	if len(notes) == 0 {
		return "", ErrNothingToExport
	}

	var buf bytes.Buffer
	if err := Write(&buf, f, notes, now); err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	path := filepath.Join(dir, FileName(f, now))
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
