package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/example/studynotes/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleNotes() []models.Note {
	completion := models.MustParseDate("2025-01-10")
	return []models.Note{
		{
			ID:             1736467200000,
			SubjectName:    "Fundamentals of Communications – I",
			NoteCode:       "I64T001M03-01",
			CompletionDate: completion,
			Revisions: models.Revisions{
				H24:    models.Checkpoint{Date: completion.AddDays(1), Completed: true},
				Days3:  models.Checkpoint{Date: completion.AddDays(3)},
				Week1:  models.Checkpoint{Date: completion.AddDays(7)},
				Month1: models.Checkpoint{Date: completion.AddDays(30)},
			},
		},
		{
			ID:             1736467200001,
			SubjectName:    "Occupational Health & Safety",
			NoteCode:       `Test "Quote"`,
			CompletionDate: models.MustParseDate("2025-02-01"),
			Revisions: models.Revisions{
				H24:    models.Checkpoint{Date: models.MustParseDate("2025-02-02")},
				Days3:  models.Checkpoint{Date: models.MustParseDate("2025-02-04")},
				Week1:  models.Checkpoint{Date: models.MustParseDate("2025-02-08")},
				Month1: models.Checkpoint{Date: models.MustParseDate("2025-03-03")},
			},
		},
	}
}

func TestJSONFileMissingIsEmpty(t *testing.T) {
	f := NewJSONFile(filepath.Join(t.TempDir(), JSONFileName))

	notes, err := f.Load()
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestJSONFileReadErrorIsNotCorrupt(t *testing.T) {
	// A directory in place of the file cannot be read but is not bad data.
	path := filepath.Join(t.TempDir(), JSONFileName)
	require.NoError(t, os.Mkdir(path, 0755))

	_, err := NewJSONFile(path).Load()
	assert.ErrorIs(t, err, ErrUnreadable)
	assert.NotErrorIs(t, err, ErrCorrupt)
}

func TestJSONFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", JSONFileName)
	f := NewJSONFile(path)
	want := sampleNotes()

	require.NoError(t, f.Save(want))

	got, err := f.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `"subjectName": "Fundamentals of Communications – I"`)
	assert.Contains(t, text, `"Occupational Health & Safety"`)
	assert.Contains(t, text, `"24H": {`)
	assert.Contains(t, text, `"date": "2025-01-11"`)
}

func TestJSONFileSaveEmptyWritesArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), JSONFileName)
	require.NoError(t, NewJSONFile(path).Save(nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(string(data)))
}

func TestJSONFileCorrupt(t *testing.T) {
	tests := map[string]string{
		"not json":        "{{{",
		"wrong shape":     `{"id": 1}`,
		"missing fields":  `[{"id": 1, "subjectName": "x", "noteCode": "y"}]`,
		"bad date":        `[{"id": 1, "subjectName": "x", "noteCode": "y", "completionDate": "10/01/2025"}]`,
		"duplicate ids":   dupJSON,
		"zero identifier": `[{"id": 0}]`,
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), JSONFileName)
			require.NoError(t, os.WriteFile(path, []byte(content), 0644))

			_, err := NewJSONFile(path).Load()
			assert.ErrorIs(t, err, ErrCorrupt)
		})
	}
}

const dupJSON = `[
 {"id": 5, "subjectName": "s", "noteCode": "c", "completionDate": "2025-01-10",
  "revisions": {"24H": {"date": "2025-01-11"}, "3Days": {"date": "2025-01-13"},
   "1Week": {"date": "2025-01-17"}, "1Month": {"date": "2025-02-09"}}},
 {"id": 5, "subjectName": "s", "noteCode": "c", "completionDate": "2025-01-10",
  "revisions": {"24H": {"date": "2025-01-11"}, "3Days": {"date": "2025-01-13"},
   "1Week": {"date": "2025-01-17"}, "1Month": {"date": "2025-02-09"}}}
]`

func TestJSONFileQuarantine(t *testing.T) {
	path := filepath.Join(t.TempDir(), JSONFileName)
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0644))
	f := NewJSONFile(path)

	dst, err := f.Quarantine(time.Unix(1700000000, 0))
	require.NoError(t, err)
	assert.Equal(t, path+".corrupt-1700000000", dst)
	assert.FileExists(t, dst)
	assert.NoFileExists(t, path)

	notes, err := f.Load()
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestSQLiteRoundTrip(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), SQLiteFileName))
	require.NoError(t, err)
	defer db.Close()

	notes, err := db.Load()
	require.NoError(t, err)
	assert.Empty(t, notes)

	want := sampleNotes()
	require.NoError(t, db.Save(want))
	got, err := db.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// Saving again replaces rather than appends.
	require.NoError(t, db.Save(want[1:]))
	got, err = db.Load()
	require.NoError(t, err)
	assert.Equal(t, want[1:], got)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	repo, err := Open("", dir)
	require.NoError(t, err)
	assert.IsType(t, &JSONFile{}, repo)

	repo, err = Open("SQLite", dir)
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, repo)
	require.NoError(t, repo.Close())

	_, err = Open("postgres", dir)
	assert.Error(t, err)
}
