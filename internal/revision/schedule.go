// Package revision computes revision checkpoints for a note and
// classifies them against the current day.
package revision

import (
	"errors"
	"fmt"

	"github.com/example/studynotes/pkg/models"
)

// ErrInvalidDate is returned when a completion date cannot be parsed.
var ErrInvalidDate = errors.New("invalid completion date")

// Plan holds the day offsets of the checkpoints, in models.Labels order.
type Plan struct {
	Offsets [4]int
}

// DefaultPlan revises one day, three days, one week and one month
// after completion.
var DefaultPlan = Plan{Offsets: [4]int{1, 3, 7, 30}}

// Offset returns the day offset for label.
func (p Plan) Offset(label models.Label) (int, error) {
	for i, l := range models.Labels {
		if l == label {
			return p.Offsets[i], nil
		}
	}
	return 0, fmt.Errorf("%w: %q", models.ErrUnknownLabel, string(label))
}

// Schedule builds the checkpoints for a completion day. All of them
// start incomplete.
func (p Plan) Schedule(completion models.Date) models.Revisions {
	var revs models.Revisions
	for i, l := range models.Labels {
		cp, _ := revs.Get(l)
		cp.Date = completion.AddDays(p.Offsets[i])
	}
	return revs
}

// Schedule parses a YYYY-MM-DD completion date and returns its
// checkpoints under DefaultPlan.
func Schedule(completion string) (models.Revisions, error) {
	d, err := models.ParseDate(completion)
	if err != nil {
		return models.Revisions{}, fmt.Errorf("%w: %q", ErrInvalidDate, completion)
	}
	return DefaultPlan.Schedule(d), nil
}

// ScheduleDate is Schedule for an already parsed day.
func ScheduleDate(completion models.Date) models.Revisions {
	return DefaultPlan.Schedule(completion)
}
