package notify

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestDesktopSendsThroughBackend(t *testing.T) {
	var gotTitle, gotMessage string
	d := &Desktop{send: func(title, message, icon string) error {
		gotTitle, gotMessage = title, message
		return nil
	}}
	title, msg := FocusDone("Work", 25)
	if err := d.Notify(title, msg); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if gotTitle != "Focus" || gotMessage != "Work phase finished after 25 min" {
		t.Fatalf("unexpected notification %q / %q", gotTitle, gotMessage)
	}
}

func TestLoggedSwallowsFailures(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	failing := &Desktop{send: func(string, string, string) error { return errors.New("no dbus") }}

	n := Logged(failing, logger)
	if err := n.Notify(AlertDue("Standup", "09:30")); err != nil {
		t.Fatalf("expected logged notifier to swallow error, got %v", err)
	}
	if !strings.Contains(buf.String(), "no dbus") {
		t.Fatalf("expected failure in log, got %q", buf.String())
	}
}

func TestNewDisabledIsNoop(t *testing.T) {
	if _, ok := New(false).(Noop); !ok {
		t.Fatal("expected Noop when desktop notifications are off")
	}
}
