package scheduler

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestEngineEmitsInTriggerOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC()
	if err := engine.Schedule(Alert{TodoID: "later", TriggerAt: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	if err := engine.Schedule(Alert{TodoID: "sooner", TriggerAt: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitAlert(t, engine.C(), time.Second)
	second := waitAlert(t, engine.C(), time.Second)
	if first.TodoID != "sooner" || second.TodoID != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first.TodoID, second.TodoID)
	}
}

func TestScheduleReplacesPendingAlertForSameTodo(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC()
	if err := engine.Schedule(Alert{TodoID: "todo-1", Title: "old slot", TriggerAt: now.Add(time.Hour)}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if err := engine.Schedule(Alert{TodoID: "todo-1", Title: "new slot", TriggerAt: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if got := engine.Pending(); got != 1 {
		t.Fatalf("expected 1 pending alert after replace, got %d", got)
	}

	got := waitAlert(t, engine.C(), time.Second)
	if got.Title != "new slot" {
		t.Fatalf("expected replaced alert, got %+v", got)
	}
	if engine.Pending() != 0 {
		t.Fatalf("expected no pending alerts after firing, got %d", engine.Pending())
	}
}

func TestCancelRemovesPendingAlert(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC()
	if err := engine.Schedule(Alert{TodoID: "cancel-me", TriggerAt: now.Add(30 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if err := engine.Schedule(Alert{TodoID: "keep", TriggerAt: now.Add(60 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if !engine.Cancel("cancel-me") {
		t.Fatal("expected cancel to find the alert")
	}
	if engine.Cancel("cancel-me") {
		t.Fatal("second cancel must report false")
	}

	got := waitAlert(t, engine.C(), time.Second)
	if got.TodoID != "keep" {
		t.Fatalf("cancelled alert fired: %+v", got)
	}
}

func TestEngineNonBlockingDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC().Add(20 * time.Millisecond)
	for i := 0; i < 25; i++ {
		if err := engine.Schedule(Alert{
			TodoID:    fmt.Sprintf("todo-%d", i),
			TriggerAt: now,
		}); err != nil {
			t.Fatalf("schedule alert: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped alerts > 0, got %d", engine.Dropped())
	}
}

func TestScheduleValidatesAlert(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Schedule(Alert{TodoID: "bad"}); !errors.Is(err, ErrInvalidTriggerTime) {
		t.Fatalf("expected ErrInvalidTriggerTime, got %v", err)
	}
	if err := engine.Schedule(Alert{TriggerAt: time.Now()}); !errors.Is(err, ErrMissingTodo) {
		t.Fatalf("expected ErrMissingTodo, got %v", err)
	}
	engine.Stop()
	if err := engine.Schedule(Alert{TodoID: "late", TriggerAt: time.Now()}); !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
}

func waitAlert(t *testing.T, ch <-chan Alert, timeout time.Duration) Alert {
	t.Helper()
	select {
	case a := <-ch:
		return a
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for alert")
		return Alert{}
	}
}
