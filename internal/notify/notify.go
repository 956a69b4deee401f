// Package notify posts desktop notifications for recoverable failures.
package notify

import (
	"fmt"

	godbus "github.com/godbus/dbus/v5"
)

const (
	busName   = "org.freedesktop.Notifications"
	objPath   = "/org/freedesktop/Notifications"
	ifaceName = "org.freedesktop.Notifications"

	// expireDefault lets the notification server pick the timeout.
	expireDefault = int32(-1)
)

// Notifier shows a short message to the user.
type Notifier interface {
	Notify(summary, body string) error
}

// Discard drops every notification.
type Discard struct{}

// Notify implements Notifier.
func (Discard) Notify(string, string) error { return nil }

// caller is the part of godbus.BusObject used to post notifications.
type caller interface {
	Call(method string, flags godbus.Flags, args ...interface{}) *godbus.Call
}

// Desktop sends notifications over the session bus.
type Desktop struct {
	conn    *godbus.Conn
	obj     caller
	appName string

	// lastID is replaced on every call so repeated failures update a
	// single bubble instead of stacking new ones.
	lastID uint32
}

// NewDesktop opens a private session bus connection.
func NewDesktop(appName string) (*Desktop, error) {
	conn, err := godbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect session bus: %w", err)
	}
	return &Desktop{
		conn:    conn,
		obj:     conn.Object(busName, objPath),
		appName: appName,
	}, nil
}

// Notify implements Notifier.
func (d *Desktop) Notify(summary, body string) error {
	var id uint32
	call := d.obj.Call(ifaceName+".Notify", 0,
		d.appName,
		d.lastID,
		"dialog-error",
		summary,
		body,
		[]string{},
		map[string]godbus.Variant{"urgency": godbus.MakeVariant(byte(1))},
		expireDefault,
	)
	if err := call.Store(&id); err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	d.lastID = id
	return nil
}

// Close closes the bus connection.
func (d *Desktop) Close() error {
	if d.conn == nil {
		return nil
	}
	return d.conn.Close()
}
