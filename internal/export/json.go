package export

import (
	"encoding/json"
	"io"

	"github.com/example/studynotes/pkg/models"
)

// WriteJSON writes notes as an indented JSON array, in the same shape
// as the data file. Non-ASCII text and HTML characters are written as-is.
func WriteJSON(w io.Writer, notes []models.Note) error {
	if notes == nil {
		notes = []models.Note{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(notes)
}

// ReadJSON decodes a collection written by WriteJSON.
func ReadJSON(r io.Reader) ([]models.Note, error) {
	var notes []models.Note
	if err := json.NewDecoder(r).Decode(&notes); err != nil {
		return nil, err
	}
	return notes, nil
}
