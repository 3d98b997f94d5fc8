package revision

import (
	"fmt"

	"github.com/example/studynotes/pkg/models"
)

// ReminderTitle is the title of every revision notification.
const ReminderTitle = "Revision Reminder"

// Reminder is one checkpoint that needs a notification.
type Reminder struct {
	NoteID   int64
	NoteCode string
	Label    models.Label
	Date     models.Date
}

// Body is the notification text for r.
func (r Reminder) Body() string {
	return fmt.Sprintf("%s — %s due %s", r.NoteCode, r.Label, r.Date)
}

// IsDue reports whether an incomplete checkpoint falls on today or the
// day after.
func IsDue(cp models.Checkpoint, today models.Date) bool {
	if cp.Completed {
		return false
	}
	days := today.DaysUntil(cp.Date)
	return days == 0 || days == 1
}

// DueReminders scans every checkpoint of notes, in collection and label
// order, and returns those that are due.
func DueReminders(notes []models.Note, today models.Date) []Reminder {
	var due []Reminder
	for _, n := range notes {
		n.Revisions.Each(func(l models.Label, cp models.Checkpoint) {
			if IsDue(cp, today) {
				due = append(due, Reminder{
					NoteID:   n.ID,
					NoteCode: n.NoteCode,
					Label:    l,
					Date:     cp.Date,
				})
			}
		})
	}
	return due
}
