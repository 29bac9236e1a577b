package views

import (
	"image"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/sandeepkv93/focusboard/internal/dnd"
)

type recordingMarker struct {
	elements map[string]string
	zones    map[string]dnd.Zone
}

func newRecordingMarker() *recordingMarker {
	return &recordingMarker{elements: make(map[string]string), zones: make(map[string]dnd.Zone)}
}

func (r *recordingMarker) Element(id, parent, content string) string {
	r.elements[id] = parent
	return content
}

func (r *recordingMarker) DropZone(id, parent string, z dnd.Zone, content string) string {
	r.elements[id] = parent
	r.zones[id] = z
	return content
}

func TestOverlaySplicesLayer(t *testing.T) {
	base := "abcdefgh\n12345678\nxyz"
	got := ansi.Strip(Overlay(base, "##\n##", 3, 1))
	want := "abcdefgh\n123##678\nxyz##"
	if got != want {
		t.Fatalf("overlay = %q, want %q", got, want)
	}
}

func TestOverlayClipsNegativeOrigin(t *testing.T) {
	got := ansi.Strip(Overlay("abcd\nefgh", "XYZ\nUVW", -1, -1))
	if got != "VWcd\nefgh" {
		t.Fatalf("overlay = %q", got)
	}
}

func TestOverlayPadsShortLines(t *testing.T) {
	got := ansi.Strip(Overlay("ab\n\n", "Z", 4, 2))
	if got != "ab\n\n    Z" {
		t.Fatalf("overlay = %q", got)
	}
}

func TestOverlayNeverGrowsFrame(t *testing.T) {
	base := "aaaa\nbbbb\ncccc"
	got := ansi.Strip(Overlay(base, "XX\nYY\nZZ", 0, 2))
	if n := strings.Count(got, "\n") + 1; n != 3 {
		t.Fatalf("expected 3 rows, got %d: %q", n, got)
	}
	if got != "aaaa\nbbbb\nXXcc" {
		t.Fatalf("overlay = %q", got)
	}
	if got := Overlay(base, "QQ", 0, 7); ansi.Strip(got) != base {
		t.Fatalf("layer fully below the frame changed it: %q", got)
	}
}

func TestClipFitsTerminal(t *testing.T) {
	got := Clip("abcdef\nghijkl\nmnopqr\nstuvwx", 4, 3)
	if got != "abcd\nghij\nmnop" {
		t.Fatalf("clip = %q", got)
	}
	if got := Clip("abc\ndef", 0, 0); got != "abc\ndef" {
		t.Fatalf("zero limits must leave the frame alone: %q", got)
	}
}

func TestRenderPreviewKeepsSourceSize(t *testing.T) {
	out := RenderPreview("a rather long todo title", image.Pt(16, 4))
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), out)
	}
	for _, l := range lines {
		if w := ansi.StringWidth(l); w != 16 {
			t.Fatalf("line width %d, want 16: %q", w, l)
		}
	}
}

func TestRenderCalendarMarksEveryCell(t *testing.T) {
	mk := newRecordingMarker()
	data := CalendarData{
		ElementID:  "calendar",
		Title:      "March 2026",
		Columns:    []string{"Mon", "Tue"},
		CellWidth:  8,
		CellHeight: 2,
		Rows: [][]CellData{{
			{ElementID: "cell:a", Zone: dnd.Zone{View: "month", Date: "2026-03-02"}, Label: "2", InPeriod: true},
			{ElementID: "cell:b", Zone: dnd.Zone{View: "month", Date: "2026-03-03"}, Label: "3", InPeriod: true,
				Chips: []ChipData{{ElementID: "chip:t1", Title: "dentist appointment", Time: "09:00"}}},
		}},
	}
	out := RenderCalendar(mk, data)

	if z := mk.zones["cell:b"]; z.Date != "2026-03-03" {
		t.Fatalf("cell b zone = %+v", z)
	}
	if mk.elements["chip:t1"] != "cell:b" {
		t.Fatalf("chip parent = %q, want cell:b", mk.elements["chip:t1"])
	}
	if _, ok := mk.elements["calendar"]; !ok {
		t.Fatal("calendar region not marked")
	}
	if !strings.Contains(out, "09:00 d…") {
		t.Fatalf("expected truncated chip in output:\n%s", out)
	}
}

func TestRenderCellCollapsesOverflow(t *testing.T) {
	mk := newRecordingMarker()
	cell := CellData{ElementID: "cell:x", Label: "1", InPeriod: true, Chips: []ChipData{
		{ElementID: "chip:1", Title: "one"},
		{ElementID: "chip:2", Title: "two"},
		{ElementID: "chip:3", Title: "three"},
	}}
	out := renderCell(mk, cell, 10, 3)
	if !strings.Contains(out, "+2 more") {
		t.Fatalf("expected overflow marker:\n%s", out)
	}
	if _, ok := mk.elements["chip:1"]; !ok {
		t.Fatal("expected visible chip to be marked")
	}
	if _, ok := mk.elements["chip:3"]; ok {
		t.Fatal("hidden chip must not be marked")
	}
}

func TestRenderCardListGhost(t *testing.T) {
	mk := newRecordingMarker()
	out := RenderCardList(mk, CardListData{
		ElementID: "cards",
		Title:     "Todos",
		Cards: []CardData{
			{ElementID: "card:a", Title: "alpha", Priority: "High"},
			{ElementID: "card:b", Title: "beta", Priority: "Low", Ghost: true},
		},
	})
	if mk.elements["card:b"] != "cards" {
		t.Fatalf("card parent = %q", mk.elements["card:b"])
	}
	if !strings.Contains(out, "alpha") || !strings.Contains(out, "beta") {
		t.Fatalf("cards missing from output:\n%s", out)
	}
}

func TestFitTruncatesWideRunes(t *testing.T) {
	if got := fit("日本語テキスト", 7); got != "日本語…" {
		t.Fatalf("fit = %q", got)
	}
	if got := pad("ab", 4); got != "ab  " {
		t.Fatalf("pad = %q", got)
	}
	if fit("x", 0) != "" {
		t.Fatal("zero width must be empty")
	}
}
