package revision

import "github.com/example/studynotes/pkg/models"

// Status is the display state of a checkpoint on a given day.
type Status int

const (
	Upcoming Status = iota
	DueToday
	Overdue
	Completed
)

func (s Status) String() string {
	switch s {
	case Completed:
		return "Completed"
	case Overdue:
		return "Overdue"
	case DueToday:
		return "Due today"
	default:
		return "Upcoming"
	}
}

// Classify returns the status of cp on today. A completed checkpoint is
// Completed whatever its date.
func Classify(cp models.Checkpoint, today models.Date) Status {
	switch {
	case cp.Completed:
		return Completed
	case cp.Date.Before(today):
		return Overdue
	case cp.Date.Equal(today):
		return DueToday
	default:
		return Upcoming
	}
}
