package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/studynotes/pkg/models"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// SQLite stores the collection in a single table, one row per note.
type SQLite struct {
	db   *sqlx.DB
	path string
}

type noteRow struct {
	Position       int         `db:"position"`
	ID             int64       `db:"id"`
	SubjectName    string      `db:"subject_name"`
	NoteCode       string      `db:"note_code"`
	CompletionDate models.Date `db:"completion_date"`
	Rev24HDate     models.Date `db:"rev_24h_date"`
	Rev24HDone     bool        `db:"rev_24h_done"`
	Rev3DaysDate   models.Date `db:"rev_3days_date"`
	Rev3DaysDone   bool        `db:"rev_3days_done"`
	Rev1WeekDate   models.Date `db:"rev_1week_date"`
	Rev1WeekDone   bool        `db:"rev_1week_done"`
	Rev1MonthDate  models.Date `db:"rev_1month_date"`
	Rev1MonthDone  bool        `db:"rev_1month_done"`
}

func rowFromNote(pos int, n models.Note) noteRow {
	r := n.Revisions
	return noteRow{
		Position:       pos,
		ID:             n.ID,
		SubjectName:    n.SubjectName,
		NoteCode:       n.NoteCode,
		CompletionDate: n.CompletionDate,
		Rev24HDate:     r.H24.Date,
		Rev24HDone:     r.H24.Completed,
		Rev3DaysDate:   r.Days3.Date,
		Rev3DaysDone:   r.Days3.Completed,
		Rev1WeekDate:   r.Week1.Date,
		Rev1WeekDone:   r.Week1.Completed,
		Rev1MonthDate:  r.Month1.Date,
		Rev1MonthDone:  r.Month1.Completed,
	}
}

func (r noteRow) note() models.Note {
	return models.Note{
		ID:             r.ID,
		SubjectName:    r.SubjectName,
		NoteCode:       r.NoteCode,
		CompletionDate: r.CompletionDate,
		Revisions: models.Revisions{
			H24:    models.Checkpoint{Date: r.Rev24HDate, Completed: r.Rev24HDone},
			Days3:  models.Checkpoint{Date: r.Rev3DaysDate, Completed: r.Rev3DaysDone},
			Week1:  models.Checkpoint{Date: r.Rev1WeekDate, Completed: r.Rev1WeekDone},
			Month1: models.Checkpoint{Date: r.Rev1MonthDate, Completed: r.Rev1MonthDone},
		},
	}
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %v", err)
	}

	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	// SQLite doesn't support multiple writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &SQLite{db: db, path: path}
	if err := s.initializeSchema(); err != nil {
		db.Close() // nolint: errcheck
		return nil, err
	}
	return s, nil
}

func (s *SQLite) initializeSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS notes (
			id INTEGER PRIMARY KEY,
			position INTEGER NOT NULL,
			subject_name TEXT NOT NULL,
			note_code TEXT NOT NULL,
			completion_date TEXT NOT NULL,
			rev_24h_date TEXT NOT NULL,
			rev_24h_done BOOLEAN NOT NULL DEFAULT false,
			rev_3days_date TEXT NOT NULL,
			rev_3days_done BOOLEAN NOT NULL DEFAULT false,
			rev_1week_date TEXT NOT NULL,
			rev_1week_done BOOLEAN NOT NULL DEFAULT false,
			rev_1month_date TEXT NOT NULL,
			rev_1month_done BOOLEAN NOT NULL DEFAULT false
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create notes table: %v", err)
	}
	return nil
}

// Path returns the database file.
func (s *SQLite) Path() string {
	return s.path
}

// Load reads all notes in insertion order.
func (s *SQLite) Load() ([]models.Note, error) {
	var rows []noteRow
	if err := s.db.Select(&rows, `SELECT * FROM notes ORDER BY position ASC`); err != nil {
		return nil, fmt.Errorf("%w: failed to get notes: %v", ErrCorrupt, err)
	}

	notes := make([]models.Note, 0, len(rows))
	for _, r := range rows {
		notes = append(notes, r.note())
	}
	if err := validate(notes); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}
	return notes, nil
}

// Save replaces the table contents with notes in one transaction.
func (s *SQLite) Save(notes []models.Note) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // nolint: errcheck

	if _, err := tx.Exec(`DELETE FROM notes`); err != nil {
		return fmt.Errorf("failed to clear notes: %w", err)
	}

	query := `
		INSERT INTO notes (
			id, position, subject_name, note_code, completion_date,
			rev_24h_date, rev_24h_done, rev_3days_date, rev_3days_done,
			rev_1week_date, rev_1week_done, rev_1month_date, rev_1month_done
		) VALUES (
			:id, :position, :subject_name, :note_code, :completion_date,
			:rev_24h_date, :rev_24h_done, :rev_3days_date, :rev_3days_done,
			:rev_1week_date, :rev_1week_done, :rev_1month_date, :rev_1month_done
		)
	`
	for i, n := range notes {
		if _, err := tx.NamedExec(query, rowFromNote(i, n)); err != nil {
			return fmt.Errorf("failed to insert note %d: %w", n.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit notes: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
