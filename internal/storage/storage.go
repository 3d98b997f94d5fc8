// Package storage persists the whole note collection, either as a JSON
// document (the default) or in a SQLite database.
package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/example/studynotes/pkg/models"
)

var (
	// ErrCorrupt is returned by Load when stored data was read but is not
	// a valid note collection.
	ErrCorrupt = errors.New("corrupt note storage")
	// ErrUnreadable is returned by Load when stored data exists but could
	// not be read, e.g. for lack of permission. The data is left alone.
	ErrUnreadable = errors.New("unreadable note storage")
)

const (
	KindJSON   = "json"
	KindSQLite = "sqlite"

	JSONFileName   = "study_notes.json"
	SQLiteFileName = "study_notes.db"
)

// Repository loads and saves the whole note collection at once.
// Load returns an empty collection and no error when nothing has been
// stored yet.
type Repository interface {
	Load() ([]models.Note, error)
	Save(notes []models.Note) error
	Close() error
}

// Quarantiner is implemented by repositories that can move unreadable
// data out of the way so that a fresh collection can be stored.
type Quarantiner interface {
	Quarantine(now time.Time) (string, error)
}

// Open returns the repository of the given kind inside dir.
func Open(kind, dir string) (Repository, error) {
	switch strings.ToLower(kind) {
	case "", KindJSON:
		return NewJSONFile(filepath.Join(dir, JSONFileName)), nil
	case KindSQLite:
		return OpenSQLite(filepath.Join(dir, SQLiteFileName))
	}
	return nil, fmt.Errorf("unknown storage kind %q", kind)
}

func validate(notes []models.Note) error {
	seen := make(map[int64]bool, len(notes))
	for _, n := range notes {
		if err := n.Validate(); err != nil {
			return err
		}
		if seen[n.ID] {
			return fmt.Errorf("duplicate note id %d", n.ID)
		}
		seen[n.ID] = true
	}
	return nil
}
