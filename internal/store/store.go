// Package store holds the authoritative in-memory note collection and
// mirrors it to a storage.Repository after every mutation.
package store

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/example/studynotes/internal/logging"
	"github.com/example/studynotes/internal/revision"
	"github.com/example/studynotes/internal/storage"
	"github.com/example/studynotes/pkg/models"
)

var (
	// ErrMissingField is returned by Add when a required field is empty,
	// unknown or unparseable.
	ErrMissingField = errors.New("missing field")
	// ErrPersist wraps repository write failures. The in-memory change
	// is kept when it occurs.
	ErrPersist = errors.New("failed to persist notes")
)

// Store is safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	repo   storage.Repository
	notes  []models.Note
	lastID int64
	now    func() time.Time
	log    *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now, used for ids and "today".
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.log = l }
}

// Open loads the collection from repo. Corrupt data does not fail Open:
// it is logged, moved aside when the repository supports it, and the
// store starts empty. Any other load error, storage.ErrUnreadable
// included, is returned and nothing is moved.
func Open(repo storage.Repository, opts ...Option) (*Store, error) {
	s := &Store{
		repo: repo,
		now:  time.Now,
		log:  logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}

	notes, err := repo.Load()
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrCorrupt):
		s.log.Printf("[WARN] Starting with an empty collection: %v\n", err)
		if q, ok := repo.(storage.Quarantiner); ok {
			if dst, qerr := q.Quarantine(s.now()); qerr != nil {
				s.log.Printf("[ERROR] %v\n", qerr)
			} else {
				s.log.Printf("[WARN] Unreadable notes were moved to %s\n", dst)
			}
		}
		notes = nil
	default:
		return nil, err
	}

	s.notes = notes
	for _, n := range notes {
		if n.ID > s.lastID {
			s.lastID = n.ID
		}
	}
	s.log.Printf("[DEBUG] Loaded %d notes\n", len(notes))
	return s, nil
}

// Close closes the repository.
func (s *Store) Close() error {
	return s.repo.Close()
}

// Today returns the store clock's calendar day.
func (s *Store) Today() models.Date {
	return models.DateOf(s.now())
}

// Add validates the input, schedules the checkpoints and appends a new
// note. subject must name a catalog entry by code or display name.
func (s *Store) Add(subject, code, completionDate string) (models.Note, error) {
	n, err := s.build(subject, code, completionDate)
	if err != nil {
		return models.Note{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n.ID = s.nextID()
	s.notes = append(s.notes, n)
	s.log.Printf("[INFO] Added note %d (%s)\n", n.ID, n.NoteCode)
	return n, s.persist()
}

func (s *Store) build(subject, code, completionDate string) (models.Note, error) {
	if strings.TrimSpace(subject) == "" {
		return models.Note{}, fmt.Errorf("%w: subject", ErrMissingField)
	}
	subj, err := models.LookupSubject(subject)
	if err != nil {
		return models.Note{}, fmt.Errorf("%w: subject: %v", ErrMissingField, err)
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return models.Note{}, fmt.Errorf("%w: note code", ErrMissingField)
	}
	completion, err := models.ParseDate(completionDate)
	if err != nil {
		return models.Note{}, fmt.Errorf("%w: %w: %q", ErrMissingField, revision.ErrInvalidDate, completionDate)
	}

	return models.Note{
		SubjectName:    subj.Name,
		NoteCode:       code,
		CompletionDate: completion,
		Revisions:      revision.ScheduleDate(completion),
	}, nil
}

// nextID derives an id from the clock in milliseconds, bumped past the
// largest id seen so ids stay unique. Caller holds mu.
func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// Toggle flips the completed flag of one checkpoint. An unknown id is
// ignored.
func (s *Store) Toggle(id int64, label models.Label) error {
	if _, err := models.ParseLabel(string(label)); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.index(id)
	if idx < 0 {
		s.log.Printf("[DEBUG] Toggle: no note with id %d\n", id)
		return nil
	}
	cp, err := s.notes[idx].Revisions.Get(label)
	if err != nil {
		return err
	}
	cp.Completed = !cp.Completed
	s.log.Printf("[INFO] Note %d checkpoint %s completed=%t\n", id, label, cp.Completed)
	return s.persist()
}

// Delete removes the note with id. An unknown id is ignored and nothing
// is written.
func (s *Store) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.index(id)
	if idx < 0 {
		s.log.Printf("[DEBUG] Delete: no note with id %d\n", id)
		return nil
	}
	s.notes = append(s.notes[:idx], s.notes[idx+1:]...)
	s.log.Printf("[INFO] Deleted note %d\n", id)
	return s.persist()
}

// Get returns the note with id.
func (s *Store) Get(id int64) (models.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.index(id)
	if idx < 0 {
		return models.Note{}, false
	}
	return s.notes[idx], true
}

// Notes returns a copy of the collection in insertion order.
func (s *Store) Notes() []models.Note {
	return s.filter(func(models.Note) bool { return true })
}

// Pending returns the notes with at least one open checkpoint.
func (s *Store) Pending() []models.Note {
	return s.filter(func(n models.Note) bool { return !AllDone(n) })
}

// Done returns the notes whose checkpoints are all completed.
func (s *Store) Done() []models.Note {
	return s.filter(AllDone)
}

// Stats counts notes and checkpoints.
func (s *Store) Stats() models.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.StatsOf(s.notes)
}

// AllDone reports whether every checkpoint of n is completed.
func AllDone(n models.Note) bool {
	return n.Revisions.AllCompleted()
}

func (s *Store) filter(keep func(models.Note) bool) []models.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Note, 0, len(s.notes))
	for _, n := range s.notes {
		if keep(n) {
			out = append(out, n)
		}
	}
	return out
}

func (s *Store) index(id int64) int {
	for i, n := range s.notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

// persist writes the full collection. Caller holds mu.
func (s *Store) persist() error {
	if err := s.repo.Save(s.notes); err != nil {
		s.log.Printf("[ERROR] Cannot save notes: %v\n", err)
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	return nil
}
