package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidState    = errors.New("model: invalid todo state")
	ErrInvalidPriority = errors.New("model: invalid todo priority")
	ErrInvalidSchedule = errors.New("model: invalid todo schedule")
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	// AllDayAlertHour is when an untimed schedule fires its alert.
	AllDayAlertHour = 9
)

type TodoState string

const (
	TodoStateOpen      TodoState = "Open"
	TodoStateScheduled TodoState = "Scheduled"
	TodoStateDone      TodoState = "Done"
)

func (s TodoState) IsValid() bool {
	switch s {
	case TodoStateOpen, TodoStateScheduled, TodoStateDone:
		return true
	default:
		return false
	}
}

type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	default:
		return false
	}
}

// Schedule places a todo on a calendar day, optionally at a time of day.
type Schedule struct {
	Date string
	Time string
}

func (s Schedule) IsZero() bool { return s.Date == "" && s.Time == "" }

func (s Schedule) AllDay() bool { return s.Time == "" }

func (s Schedule) Validate() error {
	if _, err := time.Parse(DateLayout, s.Date); err != nil {
		return fmt.Errorf("%w: date %q", ErrInvalidSchedule, s.Date)
	}
	if s.Time != "" {
		if _, err := time.Parse(TimeLayout, s.Time); err != nil {
			return fmt.Errorf("%w: time %q", ErrInvalidSchedule, s.Time)
		}
	}
	return nil
}

// At returns the instant the schedule refers to in loc. All-day schedules
// resolve to AllDayAlertHour.
func (s Schedule) At(loc *time.Location) (time.Time, error) {
	if err := s.Validate(); err != nil {
		return time.Time{}, err
	}
	if loc == nil {
		loc = time.Local
	}
	day, _ := time.ParseInLocation(DateLayout, s.Date, loc)
	if s.AllDay() {
		return day.Add(AllDayAlertHour * time.Hour), nil
	}
	clock, _ := time.Parse(TimeLayout, s.Time)
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, loc), nil
}

type Todo struct {
	ID          string
	Title       string
	Description string
	State       TodoState
	Priority    Priority
	Schedule    Schedule
	CreatedAt   time.Time
	CompletedAt *time.Time
}

func (t Todo) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: todo id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: todo title is required")
	}
	if !t.State.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidState, t.State)
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: todo created_at is required")
	}
	if t.State == TodoStateScheduled {
		if err := t.Schedule.Validate(); err != nil {
			return err
		}
	}
	if t.State == TodoStateDone && t.CompletedAt == nil {
		return errors.New("model: completed_at is required when todo state is Done")
	}
	if t.State != TodoStateDone && t.CompletedAt != nil {
		return errors.New("model: completed_at must be nil when todo state is not Done")
	}
	return nil
}

// OnDate reports whether the todo is scheduled on the given day.
func (t Todo) OnDate(date string) bool {
	return t.Schedule.Date == date
}

type FocusPhase string

const (
	FocusPhaseWork  FocusPhase = "Work"
	FocusPhaseBreak FocusPhase = "Break"
)

func (p FocusPhase) IsValid() bool {
	return p == FocusPhaseWork || p == FocusPhaseBreak
}

// FocusSession is one completed pomodoro phase. TodoID is empty when the
// session was not tied to a todo.
type FocusSession struct {
	ID        string
	TodoID    string
	Phase     FocusPhase
	StartedAt time.Time
	Duration  time.Duration
}

func (s FocusSession) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return errors.New("model: focus session id is required")
	}
	if !s.Phase.IsValid() {
		return fmt.Errorf("model: invalid focus phase %q", s.Phase)
	}
	if s.StartedAt.IsZero() {
		return errors.New("model: focus session started_at is required")
	}
	if s.Duration <= 0 {
		return errors.New("model: focus session duration must be positive")
	}
	return nil
}
