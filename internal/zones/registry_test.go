package zones

import (
	"image"
	"testing"
	"time"

	zone "github.com/lrstanley/bubblezone"

	"github.com/sandeepkv93/focusboard/internal/dnd"
)

type fakeManager struct {
	infos  map[string]*zone.ZoneInfo
	marked []string
}

func newFakeManager() *fakeManager {
	return &fakeManager{infos: make(map[string]*zone.ZoneInfo)}
}

func (f *fakeManager) Mark(id, v string) string {
	f.marked = append(f.marked, id)
	return v
}

func (f *fakeManager) Scan(v string) string { return v }

func (f *fakeManager) Get(id string) *zone.ZoneInfo { return f.infos[id] }

func (f *fakeManager) place(id string, x0, y0, x1, y1 int) {
	f.infos[id] = &zone.ZoneInfo{StartX: x0, StartY: y0, EndX: x1, EndY: y1}
}

func TestDropZoneAtWalksParents(t *testing.T) {
	mgr := newFakeManager()
	reg := New(mgr, "fb:")

	// Children are marked first because they render into the parent's content.
	reg.Element("chip:a", "cell:2024-03-15", "chip")
	reg.DropZone("cell:2024-03-15", "", dnd.Zone{View: "month", Date: "2024-03-15"}, "cell")
	reg.Element("header", "", "header")

	mgr.place("fb:cell:2024-03-15", 10, 5, 19, 8)
	mgr.place("fb:chip:a", 11, 6, 15, 6)
	mgr.place("fb:header", 0, 0, 40, 1)

	z, ok := reg.DropZoneAt(image.Pt(12, 6))
	if !ok || z.Date != "2024-03-15" {
		t.Fatalf("expected cell through chip, got %+v ok=%v", z, ok)
	}
	z, ok = reg.DropZoneAt(image.Pt(19, 8))
	if !ok || z.View != "month" {
		t.Fatalf("expected inclusive end coordinate to hit, got %+v ok=%v", z, ok)
	}
	if _, ok := reg.DropZoneAt(image.Pt(3, 0)); ok {
		t.Fatal("header is not a drop zone")
	}
	if _, ok := reg.DropZoneAt(image.Pt(50, 50)); ok {
		t.Fatal("expected nothing outside every region")
	}
}

func TestElementAtPrefersInnermost(t *testing.T) {
	mgr := newFakeManager()
	reg := New(mgr, "")
	reg.Element("card:1", "list", "card")
	reg.Element("list", "", "list")
	mgr.place("list", 0, 0, 30, 20)
	mgr.place("card:1", 1, 2, 28, 3)

	id, ok := reg.ElementAt(image.Pt(5, 2))
	if !ok || id != "card:1" {
		t.Fatalf("expected card:1, got %q", id)
	}
	id, _ = reg.ElementAt(image.Pt(5, 10))
	if id != "list" {
		t.Fatalf("expected list, got %q", id)
	}

	rect, ok := reg.Bounds("card:1")
	if !ok || rect != image.Rect(1, 2, 29, 4) {
		t.Fatalf("unexpected bounds %v ok=%v", rect, ok)
	}
}

func TestResetForgetsRegions(t *testing.T) {
	mgr := newFakeManager()
	reg := New(mgr, "")
	reg.DropZone("cell", "", dnd.Zone{View: "day", Date: "2024-03-15", Time: "09:00"}, "x")
	mgr.place("cell", 0, 0, 5, 5)
	if _, ok := reg.DropZoneAt(image.Pt(1, 1)); !ok {
		t.Fatal("expected zone before reset")
	}
	reg.Reset()
	if _, ok := reg.DropZoneAt(image.Pt(1, 1)); ok {
		t.Fatal("stale zone must not match after reset")
	}
	if _, ok := reg.Bounds("cell"); ok {
		t.Fatal("expected no bounds after reset")
	}
}

// waitForBounds polls until bubblezone's worker has stored positions for ids.
func waitForBounds(t *testing.T, reg *Registry, ids ...string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		ready := true
		for _, id := range ids {
			if _, ok := reg.Bounds(id); !ok {
				ready = false
				break
			}
		}
		if ready {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("bounds for %v never became available", ids)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestRegistryWithBubblezoneManager(t *testing.T) {
	mgr := NewManager()
	defer mgr.Close()
	reg := New(mgr, "t:")

	chip := reg.Element("chip:x", "cell:a", "ch")
	cell := reg.DropZone("cell:a", "", dnd.Zone{View: "month", Date: "2026-03-18"}, "["+chip+"..]")
	frame := reg.Scan("title\n  " + cell)
	if frame != "title\n  [ch..]" {
		t.Fatalf("expected markers stripped, got %q", frame)
	}

	waitForBounds(t, reg, "cell:a", "chip:x")

	if rect, _ := reg.Bounds("cell:a"); rect != image.Rect(2, 1, 8, 2) {
		t.Fatalf("cell bounds = %v", rect)
	}
	if id, ok := reg.ElementAt(image.Pt(4, 1)); !ok || id != "chip:x" {
		t.Fatalf("expected chip under (4,1), got %q ok=%v", id, ok)
	}
	if z, ok := reg.DropZoneAt(image.Pt(4, 1)); !ok || z.Date != "2026-03-18" {
		t.Fatalf("expected cell through chip, got %+v ok=%v", z, ok)
	}
	if z, ok := reg.DropZoneAt(image.Pt(7, 1)); !ok || z.View != "month" {
		t.Fatalf("expected inclusive right edge to hit, got %+v ok=%v", z, ok)
	}
	if _, ok := reg.DropZoneAt(image.Pt(1, 1)); ok {
		t.Fatal("expected no zone left of the cell")
	}
}
