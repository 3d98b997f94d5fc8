package models

// Stats summarises a note collection.
type Stats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
}

// StatsOf counts notes and checkpoints across notes.
func StatsOf(notes []Note) Stats {
	s := Stats{Total: len(notes)}
	for _, n := range notes {
		done := n.Revisions.CountCompleted()
		s.Completed += done
		s.Pending += len(Labels) - done
	}
	return s
}
