package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownLabel is returned for a checkpoint label outside the fixed set.
var ErrUnknownLabel = errors.New("unknown checkpoint label")

// Label names one of the four revision checkpoints of a note.
type Label string

const (
	Label24H    Label = "24H"
	Label3Days  Label = "3Days"
	Label1Week  Label = "1Week"
	Label1Month Label = "1Month"
)

// Labels lists the checkpoint labels in display order.
var Labels = []Label{Label24H, Label3Days, Label1Week, Label1Month}

// ParseLabel resolves a label case-insensitively.
func ParseLabel(s string) (Label, error) {
	s = strings.TrimSpace(s)
	for _, l := range Labels {
		if strings.EqualFold(string(l), s) {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLabel, s)
}

// Title returns the column heading used in reports.
func (l Label) Title() string {
	switch l {
	case Label24H:
		return "24H"
	case Label3Days:
		return "3 Days"
	case Label1Week:
		return "1 Week"
	case Label1Month:
		return "1 Month"
	}
	return string(l)
}

// Checkpoint is a single scheduled revision. Date is fixed at creation,
// only Completed changes.
type Checkpoint struct {
	Date      Date `json:"date"`
	Completed bool `json:"completed"`
}

// Revisions holds exactly the four checkpoints of a note.
type Revisions struct {
	H24    Checkpoint `json:"24H"`
	Days3  Checkpoint `json:"3Days"`
	Week1  Checkpoint `json:"1Week"`
	Month1 Checkpoint `json:"1Month"`
}

// Get returns a pointer to the checkpoint for label.
func (r *Revisions) Get(label Label) (*Checkpoint, error) {
	switch label {
	case Label24H:
		return &r.H24, nil
	case Label3Days:
		return &r.Days3, nil
	case Label1Week:
		return &r.Week1, nil
	case Label1Month:
		return &r.Month1, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownLabel, string(label))
}

// At returns a copy of the checkpoint for a known label.
func (r Revisions) At(label Label) Checkpoint {
	cp, err := r.Get(label)
	if err != nil {
		return Checkpoint{}
	}
	return *cp
}

// Each calls fn for every checkpoint in label order.
func (r Revisions) Each(fn func(Label, Checkpoint)) {
	for _, l := range Labels {
		fn(l, r.At(l))
	}
}

// CountCompleted returns how many checkpoints are completed.
func (r Revisions) CountCompleted() int {
	n := 0
	r.Each(func(_ Label, cp Checkpoint) {
		if cp.Completed {
			n++
		}
	})
	return n
}

// AllCompleted reports whether every checkpoint is completed.
func (r Revisions) AllCompleted() bool {
	return r.CountCompleted() == len(Labels)
}

// Note is a completed piece of study with its revision schedule.
type Note struct {
	ID             int64     `json:"id"`
	SubjectName    string    `json:"subjectName"`
	NoteCode       string    `json:"noteCode"`
	CompletionDate Date      `json:"completionDate"`
	Revisions      Revisions `json:"revisions"`
}

// Validate checks the fields every stored note must carry.
func (n Note) Validate() error {
	if n.ID == 0 {
		return errors.New("note has no id")
	}
	if strings.TrimSpace(n.SubjectName) == "" {
		return fmt.Errorf("note %d has no subject", n.ID)
	}
	if strings.TrimSpace(n.NoteCode) == "" {
		return fmt.Errorf("note %d has no note code", n.ID)
	}
	if n.CompletionDate.IsZero() {
		return fmt.Errorf("note %d has no completion date", n.ID)
	}
	for _, l := range Labels {
		if n.Revisions.At(l).Date.IsZero() {
			return fmt.Errorf("note %d has no %s checkpoint", n.ID, l)
		}
	}
	return nil
}
