// Package notify delivers reminder notifications to the desktop or to
// a Telegram chat.
package notify

import "errors"

// Notifier delivers one notification. Callers treat errors as
// non-fatal.
type Notifier interface {
	Notify(title, body string) error
}

// Multi sends every notification to all of its channels.
type Multi []Notifier

// Notify tries every channel and joins their errors.
func (m Multi) Notify(title, body string) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(title, body); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
