package store

import (
	"fmt"

	"github.com/example/studynotes/pkg/models"
)

// ImportRow is one note to create in bulk.
type ImportRow struct {
	Line           int
	Subject        string
	NoteCode       string
	CompletionDate string
}

// ImportResult reports what Import did.
type ImportResult struct {
	TotalProcessed int
	Created        int
	Skipped        int
	Errors         []string
}

// Import adds every valid row and persists once. Invalid rows are
// skipped and reported, they do not stop the import.
func (s *Store) Import(rows []ImportRow) (*ImportResult, error) {
	result := &ImportResult{Errors: make([]string, 0)}
	var added []models.Note

	for _, row := range rows {
		result.TotalProcessed++
		n, err := s.build(row.Subject, row.NoteCode, row.CompletionDate)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", row.Line, err))
			continue
		}
		added = append(added, n)
	}
	if len(added) == 0 {
		return result, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range added {
		n.ID = s.nextID()
		s.notes = append(s.notes, n)
		result.Created++
	}
	s.log.Printf("[INFO] Imported %d notes\n", result.Created)
	return result, s.persist()
}
