package notify

import (
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"
)

const (
	notifyObj    = "org.freedesktop.Notifications"
	notifyPath   = "/org/freedesktop/Notifications"
	notifyMethod = "org.freedesktop.Notifications.Notify"
)

// Desktop posts notifications through the freedesktop notification
// service on the D-Bus session bus.
type Desktop struct {
	conn    *dbus.Conn
	appName string
	timeout time.Duration
}

// NewDesktop connects to the session bus. It fails on hosts without
// one, in which case the caller runs without desktop notifications.
func NewDesktop(appName string, timeout time.Duration) (*Desktop, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DBus session bus: %w", err)
	}
	return &Desktop{conn: conn, appName: appName, timeout: timeout}, nil
}

// Notify shows a notification bubble.
func (d *Desktop) Notify(title, body string) error {
	obj := d.conn.Object(notifyObj, dbus.ObjectPath(notifyPath))
	call := obj.Call(
		notifyMethod,
		0,
		d.appName,
		uint32(0),
		"",
		title,
		body,
		[]string{},
		map[string]dbus.Variant{},
		int32(d.timeout/time.Millisecond),
	)
	if call.Err != nil {
		return fmt.Errorf("cannot send notification %q: %w", title, call.Err)
	}
	return nil
}

// Close closes the bus connection.
func (d *Desktop) Close() error {
	return d.conn.Close()
}
