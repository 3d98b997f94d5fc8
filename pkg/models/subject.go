package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownSubject is returned when a subject is not in the catalog.
var ErrUnknownSubject = errors.New("unknown subject")

// Subject is an entry of the fixed subject catalog.
type Subject struct {
	Code string `json:"code" yaml:"code"`
	Name string `json:"name" yaml:"name"`
}

func (s Subject) String() string {
	return fmt.Sprintf("%s (%s)", s.Name, s.Code)
}

// Subjects is the catalog offered when creating a note.
var Subjects = []Subject{
	{Code: "I64T001M01", Name: "Occupational Health & Safety"},
	{Code: "I64T001M02", Name: "Fundamentals of Applied Electricity and Electronics -1"},
	{Code: "I64T001M03", Name: "Fundamentals of Communications – I"},
	{Code: "I64T001M04", Name: "Data Communication and Computer Networking – I"},
	{Code: "I64T001M05", Name: "Computer Structures and Programming Fundamentals"},
	{Code: "I64T001M06", Name: "Advanced Mathematics –I"},
	{Code: "EMPM01", Name: "Workplace Information Management"},
	{Code: "EMPM02", Name: "Workplace Communication Management"},
}

// LookupSubject finds a catalog entry by code or display name,
// ignoring case and surrounding space.
func LookupSubject(s string) (Subject, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Subject{}, fmt.Errorf("%w: empty", ErrUnknownSubject)
	}
	for _, subj := range Subjects {
		if strings.EqualFold(subj.Code, s) || strings.EqualFold(subj.Name, s) {
			return subj, nil
		}
	}
	return Subject{}, fmt.Errorf("%w: %q", ErrUnknownSubject, s)
}
