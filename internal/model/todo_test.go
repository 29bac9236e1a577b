package model

import (
	"errors"
	"testing"
	"time"
)

func TestTodoValidateSuccess(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	todo := Todo{
		ID:        "todo-1",
		Title:     "Write the quarterly report",
		State:     TodoStateScheduled,
		Priority:  PriorityHigh,
		Schedule:  Schedule{Date: "2026-02-10", Time: "09:00"},
		CreatedAt: now,
	}
	if err := todo.Validate(); err != nil {
		t.Fatalf("expected valid todo, got error: %v", err)
	}
}

func TestTodoValidateDoneRequiresCompletedAt(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	todo := Todo{
		ID:        "todo-1",
		Title:     "Done todo",
		State:     TodoStateDone,
		Priority:  PriorityMedium,
		CreatedAt: now,
	}
	err := todo.Validate()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "model: completed_at is required when todo state is Done" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTodoValidateInvalidEnums(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	todo := Todo{
		ID:        "todo-1",
		Title:     "Bad state",
		State:     TodoState("Invalid"),
		Priority:  PriorityLow,
		CreatedAt: now,
	}
	err := todo.Validate()
	if err == nil || !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got: %v", err)
	}

	todo.State = TodoStateOpen
	todo.Priority = Priority("Bad")
	err = todo.Validate()
	if err == nil || !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got: %v", err)
	}

	todo.Priority = PriorityMedium
	todo.State = TodoStateScheduled
	todo.Schedule = Schedule{Date: "2026-02-30"}
	err = todo.Validate()
	if err == nil || !errors.Is(err, ErrInvalidSchedule) {
		t.Fatalf("expected ErrInvalidSchedule, got: %v", err)
	}
}

func TestScheduleAt(t *testing.T) {
	loc := time.FixedZone("test", 2*60*60)

	at, err := Schedule{Date: "2026-03-15", Time: "14:30"}.At(loc)
	if err != nil {
		t.Fatalf("timed schedule failed: %v", err)
	}
	if got := at.Format("2006-01-02 15:04 -0700"); got != "2026-03-15 14:30 +0200" {
		t.Fatalf("unexpected timed instant: %s", got)
	}

	at, err = Schedule{Date: "2026-03-15"}.At(loc)
	if err != nil {
		t.Fatalf("all-day schedule failed: %v", err)
	}
	if at.Hour() != AllDayAlertHour || at.Minute() != 0 {
		t.Fatalf("expected all-day alert hour, got %s", at.Format(time.RFC3339))
	}

	if _, err := (Schedule{Date: "2026-03-15", Time: "25:00"}).At(loc); !errors.Is(err, ErrInvalidSchedule) {
		t.Fatalf("expected ErrInvalidSchedule, got %v", err)
	}
}

func TestFocusSessionValidate(t *testing.T) {
	s := FocusSession{
		ID:        "fs-1",
		Phase:     FocusPhaseWork,
		StartedAt: time.Date(2026, 2, 9, 9, 0, 0, 0, time.UTC),
		Duration:  25 * time.Minute,
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("expected valid session, got %v", err)
	}
	s.Duration = 0
	if err := s.Validate(); err == nil {
		t.Fatal("expected error for zero duration")
	}
}
