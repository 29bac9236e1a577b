package scheduler

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// Repeated drops of the same todo onto different slots must collapse to one
// pending alert per todo, and cancelled todos must never fire.
func TestEngineConcurrentRescheduleKeepsOneAlertPerTodo(t *testing.T) {
	engine := NewEngine(1024)
	engine.Start()
	defer engine.Stop()

	const todos = 100
	const workers = 8
	far := time.Now().Add(time.Hour)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < todos; i++ {
				err := engine.Schedule(Alert{
					TodoID:    fmt.Sprintf("todo-%d", i),
					Title:     fmt.Sprintf("worker-%d", w),
					TriggerAt: far.Add(time.Duration(w*todos+i) * time.Second),
				})
				if err != nil {
					t.Errorf("schedule failed: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	if got := engine.Pending(); got != todos {
		t.Fatalf("expected %d pending alerts after reschedules, got %d", todos, got)
	}

	soon := time.Now().Add(20 * time.Millisecond)
	for i := 0; i < todos; i++ {
		id := fmt.Sprintf("todo-%d", i)
		if i%2 == 1 {
			if !engine.Cancel(id) {
				t.Fatalf("expected pending alert for %s", id)
			}
			continue
		}
		if err := engine.Schedule(Alert{TodoID: id, Title: "final", TriggerAt: soon}); err != nil {
			t.Fatalf("final schedule failed: %v", err)
		}
	}

	seen := make(map[string]bool)
	deadline := time.After(5 * time.Second)
	for len(seen) < todos/2 {
		select {
		case <-deadline:
			t.Fatalf("timeout: received=%d dropped=%d", len(seen), engine.Dropped())
		case a := <-engine.C():
			if a.Title != "final" {
				t.Fatalf("stale alert fired: %+v", a)
			}
			if seen[a.TodoID] {
				t.Fatalf("duplicate alert for %s", a.TodoID)
			}
			var n int
			if _, err := fmt.Sscanf(a.TodoID, "todo-%d", &n); err != nil || n%2 == 1 {
				t.Fatalf("cancelled or unknown todo fired: %s", a.TodoID)
			}
			seen[a.TodoID] = true
		}
	}
	if engine.Pending() != 0 || engine.Dropped() != 0 {
		t.Fatalf("expected drained engine, pending=%d dropped=%d", engine.Pending(), engine.Dropped())
	}
}
