package dnd

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidView = errors.New("dnd: invalid view kind")
	ErrInvalidDate = errors.New("dnd: invalid date")
	ErrInvalidTime = errors.New("dnd: invalid time")
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	// allDay stands in for the time component of a key when a target has no time.
	allDay = "all"
)

type ViewKind string

const (
	ViewMonth ViewKind = "month"
	ViewWeek  ViewKind = "week"
	ViewDay   ViewKind = "day"
)

func (v ViewKind) IsValid() bool {
	switch v {
	case ViewMonth, ViewWeek, ViewDay:
		return true
	default:
		return false
	}
}

// Payload is the data carried by a drag. It is a copy taken at drag start.
type Payload struct {
	ID          string
	Title       string
	Description string
}

// Target is a decoded drop location.
type Target struct {
	View ViewKind
	Date string
	Time string
	Key  string
}

func (t Target) HasTime() bool { return t.Time != "" }

// Zone is the attribution a drop-zone region carries. Key may be left empty,
// in which case it is derived from the other fields.
type Zone struct {
	View string
	Date string
	Time string
	Key  string
}

func TargetKey(view ViewKind, date, clock string) string {
	if clock == "" {
		clock = allDay
	}
	return fmt.Sprintf("%s-%s-%s", view, date, clock)
}

// NewTarget validates the parts of a drop location and derives its key.
func NewTarget(view ViewKind, date, clock string) (Target, error) {
	return DecodeZone(Zone{View: string(view), Date: date, Time: clock})
}

func DecodeZone(z Zone) (Target, error) {
	view := ViewKind(strings.ToLower(strings.TrimSpace(z.View)))
	if !view.IsValid() {
		return Target{}, fmt.Errorf("%w: %q", ErrInvalidView, z.View)
	}
	date := strings.TrimSpace(z.Date)
	if _, err := time.Parse(DateLayout, date); err != nil {
		return Target{}, fmt.Errorf("%w: %q", ErrInvalidDate, z.Date)
	}
	clock := strings.TrimSpace(z.Time)
	if clock != "" {
		if _, err := time.Parse(TimeLayout, clock); err != nil {
			return Target{}, fmt.Errorf("%w: %q", ErrInvalidTime, z.Time)
		}
	}
	key := strings.TrimSpace(z.Key)
	if key == "" {
		key = TargetKey(view, date, clock)
	}
	return Target{View: view, Date: date, Time: clock, Key: key}, nil
}

// Zone returns the attribution that decodes back to t.
func (t Target) Zone() Zone {
	return Zone{View: string(t.View), Date: t.Date, Time: t.Time, Key: t.Key}
}
