package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sandeepkv93/focusboard/internal/dnd"
)

const CardWidth = 28

type CardData struct {
	ElementID string
	Title     string
	Priority  string
	When      string
	Selected  bool
	Ghost     bool
}

type CardListData struct {
	ElementID string
	Title     string
	Cards     []CardData
}

type ChipData struct {
	ElementID string
	Title     string
	Time      string
	Ghost     bool
}

type CellData struct {
	ElementID string
	Zone      dnd.Zone
	Label     string
	InPeriod  bool
	Today     bool
	Hover     bool
	Chips     []ChipData
}

type CalendarData struct {
	ElementID  string
	Title      string
	Columns    []string
	RowLabels  []string
	Rows       [][]CellData
	CellWidth  int
	CellHeight int
}

type DetailData struct {
	Title    string
	Priority string
	State    string
	When     string
	Markdown string
}

type FocusPanelData struct {
	TodoTitle      string
	Phase          string
	Timer          string
	ProgressView   string
	ProgressPct    int
	CompletedToday int
	Running        bool
	ShowEndPrompt  bool
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

var (
	cardStyle         = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Width(CardWidth - 2)
	selectedCardStyle = cardStyle.BorderForeground(lipgloss.Color("12"))
	ghostCardStyle    = cardStyle.Faint(true).BorderStyle(lipgloss.HiddenBorder())
	priorityStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

	cellStyle      = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, true, true, false).BorderForeground(lipgloss.Color("8"))
	hoverCellStyle = cellStyle.Background(lipgloss.Color("24"))
	outCellStyle   = cellStyle.Faint(true)
	todayStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	chipStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	columnStyle    = lipgloss.NewStyle().Bold(true)
)

func RenderCardList(mk Marker, data CardListData) string {
	var blocks []string
	blocks = append(blocks, columnStyle.Render(data.Title))
	if len(data.Cards) == 0 {
		blocks = append(blocks, dimStyle.Render("(no open todos)"))
	}
	for _, c := range data.Cards {
		style := cardStyle
		switch {
		case c.Ghost:
			style = ghostCardStyle
		case c.Selected:
			style = selectedCardStyle
		}
		body := fit(c.Title, CardWidth-2)
		meta := priorityStyle.Render(fit(c.Priority, 8))
		if c.When != "" {
			meta += " " + fit(c.When, CardWidth-12)
		}
		blocks = append(blocks, mk.Element(c.ElementID, data.ElementID, style.Render(body+"\n"+meta)))
	}
	return mk.Element(data.ElementID, "", lipgloss.JoinVertical(lipgloss.Left, blocks...))
}

func RenderCalendar(mk Marker, data CalendarData) string {
	labelWidth := 0
	for _, l := range data.RowLabels {
		if w := lipgloss.Width(l); w > labelWidth {
			labelWidth = w
		}
	}
	if labelWidth > 0 {
		labelWidth++
	}

	header := make([]string, 0, len(data.Columns)+1)
	if labelWidth > 0 {
		header = append(header, strings.Repeat(" ", labelWidth))
	}
	for _, col := range data.Columns {
		header = append(header, columnStyle.Render(pad(col, data.CellWidth+1)))
	}

	lines := []string{
		columnStyle.Render(data.Title),
		lipgloss.JoinHorizontal(lipgloss.Top, header...),
	}
	for r, row := range data.Rows {
		cells := make([]string, 0, len(row)+1)
		if labelWidth > 0 {
			label := ""
			if r < len(data.RowLabels) {
				label = data.RowLabels[r]
			}
			cells = append(cells, dimStyle.Render(pad(label, labelWidth)))
		}
		for _, cell := range row {
			cells = append(cells, renderCell(mk, cell, data.CellWidth, data.CellHeight))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return mk.Element(data.ElementID, "", lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func renderCell(mk Marker, cell CellData, width, height int) string {
	var rows []string
	if cell.Label != "" {
		label := fit(cell.Label, width)
		if cell.Today {
			label = todayStyle.Render(label)
		}
		rows = append(rows, label)
	}
	room := height - len(rows)
	if height == 1 && len(rows) == 0 {
		room = 1
	}

	visible, more := cell.Chips, 0
	switch {
	case room <= 0:
		visible = nil
	case len(visible) > room:
		more = len(visible) - room + 1
		visible = visible[:room-1]
	}
	for _, chip := range visible {
		text := chip.Title
		if chip.Time != "" {
			text = chip.Time + " " + text
		}
		style := chipStyle
		if chip.Ghost {
			style = dimStyle
		}
		rows = append(rows, mk.Element(chip.ElementID, cell.ElementID, style.Render(fit(text, width))))
	}
	if more > 0 {
		rows = append(rows, dimStyle.Render(fit(fmt.Sprintf("+%d more", more), width)))
	}

	style := cellStyle
	switch {
	case cell.Hover:
		style = hoverCellStyle
	case !cell.InPeriod:
		style = outCellStyle
	}
	rendered := style.Width(width).Height(height).MaxHeight(height + 1).Render(strings.Join(rows, "\n"))
	return mk.DropZone(cell.ElementID, "", cell.Zone, rendered)
}

func RenderDetail(data DetailData) string {
	if data.Title == "" {
		return "details:\n(no selection)"
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("details: %s\n", data.Title))
	b.WriteString(fmt.Sprintf("state: %s | priority: %s\n", data.State, data.Priority))
	if data.When != "" {
		b.WriteString(fmt.Sprintf("when: %s\n", data.When))
	}
	if data.Markdown != "" {
		b.WriteString("\n" + data.Markdown)
	}
	return strings.TrimSpace(b.String())
}

func RenderFocusPanel(data FocusPanelData) string {
	var b strings.Builder
	b.WriteString("focus:\n")
	if data.TodoTitle != "" {
		b.WriteString(fmt.Sprintf("todo: %s\n", data.TodoTitle))
	} else {
		b.WriteString("todo: (none selected)\n")
	}
	state := "paused"
	if data.Running {
		state = "running"
	}
	b.WriteString(fmt.Sprintf("phase: %s (%s)\n", strings.ToUpper(data.Phase), state))
	b.WriteString(fmt.Sprintf("timer: %s\n", data.Timer))
	b.WriteString(fmt.Sprintf("progress: %s %d%%\n", data.ProgressView, data.ProgressPct))
	b.WriteString(fmt.Sprintf("work sessions today: %d\n", data.CompletedToday))
	b.WriteString("actions: [space]start/pause [r]reset [n]next-phase\n")
	if data.ShowEndPrompt {
		b.WriteString("prompt: session ended, press [n] to continue")
	}
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: %s", input)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
