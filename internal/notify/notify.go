package notify

import (
	"fmt"
	"log/slog"

	"github.com/gen2brain/beeep"
)

type Notifier interface {
	Notify(title, message string) error
}

// Desktop raises OS notifications through beeep.
type Desktop struct {
	send func(title, message, icon string) error
}

func NewDesktop() *Desktop {
	return &Desktop{send: func(title, message, icon string) error {
		return beeep.Notify(title, message, icon)
	}}
}

func (d *Desktop) Notify(title, message string) error {
	if err := d.send(title, message, ""); err != nil {
		return fmt.Errorf("desktop notify: %w", err)
	}
	return nil
}

type Noop struct{}

func (Noop) Notify(string, string) error { return nil }

// New picks the desktop notifier when enabled.
func New(desktop bool) Notifier {
	if desktop {
		return NewDesktop()
	}
	return Noop{}
}

// Logged wraps n so failures are logged instead of surfacing in the UI.
func Logged(n Notifier, logger *slog.Logger) Notifier {
	return logged{next: n, logger: logger}
}

type logged struct {
	next   Notifier
	logger *slog.Logger
}

func (l logged) Notify(title, message string) error {
	if err := l.next.Notify(title, message); err != nil {
		l.logger.Warn("notification failed", "title", title, "err", err)
	}
	return nil
}

func FocusDone(phase string, minutes int) (string, string) {
	return "Focus", fmt.Sprintf("%s phase finished after %d min", phase, minutes)
}

func AlertDue(title, slot string) (string, string) {
	return "Scheduled todo", fmt.Sprintf("%s (%s)", title, slot)
}
