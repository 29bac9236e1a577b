package views

import (
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var previewStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("13")).
	Bold(true)

// RenderPreview draws the floating card that follows the pointer during a
// drag. size is the outer size of the card it stands in for.
func RenderPreview(title string, size image.Point) string {
	w, h := size.X, size.Y
	if w < 4 {
		w = 4
	}
	if h < 3 {
		h = 3
	}
	return previewStyle.Width(w - 2).Height(h - 2).Render(fit(title, w-2))
}

// Overlay draws layer over base with its top-left corner at cell (x, y).
// Parts of the layer outside the frame are clipped.
func Overlay(base, layer string, x, y int) string {
	if layer == "" {
		return base
	}
	lines := strings.Split(base, "\n")
	for i, ll := range strings.Split(layer, "\n") {
		row := y + i
		if row < 0 || row >= len(lines) {
			continue
		}
		lx := x
		if lx < 0 {
			ll = ansi.TruncateLeft(ll, -lx, "")
			lx = 0
		}
		lines[row] = splice(lines[row], ll, lx)
	}
	return strings.Join(lines, "\n")
}

// Clip cuts frame down to a width x height terminal. Rows past the bottom are
// dropped rather than left to the renderer, which would scroll the top off
// screen and shift every hit region. A non-positive limit is ignored.
func Clip(frame string, width, height int) string {
	lines := strings.Split(frame, "\n")
	if height > 0 && len(lines) > height {
		lines = lines[:height]
	}
	if width > 0 {
		for i, l := range lines {
			if ansi.StringWidth(l) > width {
				lines[i] = ansi.Truncate(l, width, "")
			}
		}
	}
	return strings.Join(lines, "\n")
}

func splice(line, insert string, x int) string {
	w := ansi.StringWidth(line)
	left := ansi.Truncate(line, x, "")
	if w < x {
		left += strings.Repeat(" ", x-w)
	}
	right := ""
	if end := x + ansi.StringWidth(insert); end < w {
		right = ansi.TruncateLeft(line, end, "")
	}
	return left + ansi.ResetStyle + insert + ansi.ResetStyle + right
}
