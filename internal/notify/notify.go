// Package notify sends desktop notifications through the platform's own
// tool: osascript on macOS and notify-send on Linux. Other platforms get a
// notifier that does nothing.
package notify

import "strings"

// Notification is one desktop message. Urgent asks for a sound or a
// critical urgency where the platform supports it.
type Notification struct {
	Title  string
	Body   string
	Urgent bool
}

// Notifier delivers notifications.
type Notifier interface {
	Send(n Notification) error

	// IsSupported reports whether the platform tool is installed.
	IsSupported() bool
}

type noopNotifier struct{}

func (noopNotifier) Send(Notification) error { return nil }
func (noopNotifier) IsSupported() bool       { return false }

// New returns the platform notifier, or a no-op one when the platform tool
// is missing.
func New() Notifier {
	n := newPlatformNotifier()
	if n == nil || !n.IsSupported() {
		return noopNotifier{}
	}
	return n
}

// escapeAppleScript escapes backslashes and quotes for an AppleScript string.
func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}
