// Package notify defines transient user-facing notifications and a host that
// shows them one at a time.
package notify

import "time"

// Duration is how long a notification stays visible.
type Duration int

const (
	Short Duration = iota
	Long
	Indefinite
)

// Timeout returns the display time, or zero for Indefinite.
func (d Duration) Timeout() time.Duration {
	switch d {
	case Short:
		return 4 * time.Second
	case Long:
		return 10 * time.Second
	default:
		return 0
	}
}

// Notification is the payload carried by the notification bus. An intent that
// implements it is posted to that bus when dispatched.
type Notification interface {
	Message() string
	ActionLabel() string
	Duration() Duration
	WithDismissAction() bool
}

// Message is the default Notification.
type Message struct {
	Text        string
	Action      string
	Length      Duration
	Dismissible bool
}

func (m Message) Message() string         { return m.Text }
func (m Message) ActionLabel() string     { return m.Action }
func (m Message) Duration() Duration      { return m.Length }
func (m Message) WithDismissAction() bool { return m.Dismissible }

// Text returns a short notification.
func Text(s string) Message {
	return Message{Text: s, Length: Short}
}
