package export

import (
	"io"
	"strings"

	"github.com/example/studynotes/pkg/models"
)

// CSVHeader names the columns of WriteCSV.
func CSVHeader() []string {
	cols := []string{"Subject", "Note Code", "Completion Date"}
	for _, l := range models.Labels {
		cols = append(cols, string(l)+" Date", string(l)+" Status")
	}
	return cols
}

// CSVRecord returns the fields of one note in CSVHeader order.
func CSVRecord(n models.Note) []string {
	rec := []string{n.SubjectName, n.NoteCode, n.CompletionDate.String()}
	n.Revisions.Each(func(_ models.Label, cp models.Checkpoint) {
		rec = append(rec, cp.Date.String(), boolText(cp.Completed))
	})
	return rec
}

// WriteCSV writes a header line and one line per note. Data fields are
// always quoted with embedded quotes doubled; lines are separated by \n.
func WriteCSV(w io.Writer, notes []models.Note) error {
	lines := make([]string, 0, len(notes)+1)
	lines = append(lines, strings.Join(CSVHeader(), ","))
	for _, n := range notes {
		rec := CSVRecord(n)
		for i, f := range rec {
			rec[i] = quote(f)
		}
		lines = append(lines, strings.Join(rec, ","))
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n"))
	return err
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func boolText(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
