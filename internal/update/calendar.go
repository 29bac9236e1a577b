package update

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/focusboard/internal/dnd"
	"github.com/sandeepkv93/focusboard/internal/model"
	"github.com/sandeepkv93/focusboard/internal/views"
)

const (
	firstSlotHour = 8
	lastSlotHour  = 19
)

// calCell is one drop zone of the current calendar period.
type calCell struct {
	key      string
	view     dnd.ViewKind
	date     string
	clock    string
	label    string
	inPeriod bool
	today    bool
}

func (m Model) handleCalendarKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "d":
		m.Calendar.Mode = dnd.ViewDay
		m.Status = StatusBar{Text: "calendar mode: day"}
	case "w":
		m.Calendar.Mode = dnd.ViewWeek
		m.Status = StatusBar{Text: "calendar mode: week"}
	case "m":
		m.Calendar.Mode = dnd.ViewMonth
		m.Status = StatusBar{Text: "calendar mode: month"}
	case "h", "left":
		m.shiftCalendarFocus(-1)
	case "l", "right":
		m.shiftCalendarFocus(1)
	case "t":
		m.Calendar.FocusDate = startOfDay(m.now())
		m.Status = StatusBar{Text: "calendar focus: today"}
	}
	return m
}

func (m *Model) shiftCalendarFocus(delta int) {
	switch m.Calendar.Mode {
	case dnd.ViewDay:
		m.Calendar.FocusDate = m.Calendar.FocusDate.AddDate(0, 0, delta)
	case dnd.ViewMonth:
		first := time.Date(m.Calendar.FocusDate.Year(), m.Calendar.FocusDate.Month(), 1, 0, 0, 0, 0, m.Calendar.FocusDate.Location())
		m.Calendar.FocusDate = first.AddDate(0, delta, 0)
	default:
		m.Calendar.FocusDate = m.Calendar.FocusDate.AddDate(0, 0, 7*delta)
	}
	m.Status = StatusBar{Text: fmt.Sprintf("calendar focus: %s", m.Calendar.FocusDate.Format(dnd.DateLayout))}
}

// calendarRows lays out the cells of the current period row by row.
func (m Model) calendarRows() [][]calCell {
	focus := startOfDay(m.Calendar.FocusDate)
	today := startOfDay(m.now()).Format(dnd.DateLayout)

	switch m.Calendar.Mode {
	case dnd.ViewWeek:
		return slotRows(dnd.ViewWeek, weekDays(focus), today)
	case dnd.ViewDay:
		return slotRows(dnd.ViewDay, []time.Time{focus}, today)
	default:
		first := time.Date(focus.Year(), focus.Month(), 1, 0, 0, 0, 0, focus.Location())
		start := first.AddDate(0, 0, -mondayOffset(first))
		rows := make([][]calCell, 6)
		for r := range rows {
			rows[r] = make([]calCell, 7)
			for c := range rows[r] {
				day := start.AddDate(0, 0, r*7+c)
				date := day.Format(dnd.DateLayout)
				rows[r][c] = calCell{
					key:      dnd.TargetKey(dnd.ViewMonth, date, ""),
					view:     dnd.ViewMonth,
					date:     date,
					label:    strconv.Itoa(day.Day()),
					inPeriod: day.Month() == focus.Month(),
					today:    date == today,
				}
			}
		}
		return rows
	}
}

// slotRows builds an all-day row followed by one row per hour slot.
func slotRows(view dnd.ViewKind, days []time.Time, today string) [][]calCell {
	rows := make([][]calCell, 0, lastSlotHour-firstSlotHour+2)
	for slot := firstSlotHour - 1; slot <= lastSlotHour; slot++ {
		row := make([]calCell, len(days))
		for i, day := range days {
			date := day.Format(dnd.DateLayout)
			clock := ""
			if slot >= firstSlotHour {
				clock = fmt.Sprintf("%02d:00", slot)
			}
			row[i] = calCell{
				key:      dnd.TargetKey(view, date, clock),
				view:     view,
				date:     date,
				clock:    clock,
				inPeriod: true,
				today:    date == today,
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// monthChrome is the number of frame rows outside the six month rows: app
// header, status, footer, calendar title and weekday header.
const monthChrome = 5

// monthCellHeight sizes month cells so the six-week grid fits the terminal.
// Each row also takes one line of bottom border.
func monthCellHeight(termHeight int) int {
	if termHeight <= 0 {
		return 3
	}
	h := (termHeight-monthChrome)/6 - 1
	switch {
	case h < 1:
		return 1
	case h > 3:
		return 3
	}
	return h
}

func (m Model) calendarData() views.CalendarData {
	rows := m.calendarRows()
	data := views.CalendarData{
		ElementID: calendarID,
		Rows:      make([][]views.CellData, len(rows)),
	}

	focus := startOfDay(m.Calendar.FocusDate)
	switch m.Calendar.Mode {
	case dnd.ViewWeek:
		days := weekDays(focus)
		data.Title = fmt.Sprintf("Week of %s", days[0].Format(dnd.DateLayout))
		for _, d := range days {
			data.Columns = append(data.Columns, d.Format("Mon 02"))
		}
		data.RowLabels = slotLabels()
		data.CellWidth, data.CellHeight = 10, 1
	case dnd.ViewDay:
		data.Title = focus.Format("Monday 2006-01-02")
		data.Columns = []string{focus.Format("Mon 02 Jan")}
		data.RowLabels = slotLabels()
		data.CellWidth, data.CellHeight = 36, 1
	default:
		data.Title = focus.Format("January 2006")
		data.Columns = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
		data.CellWidth, data.CellHeight = 12, monthCellHeight(m.Height)
	}

	for r, row := range rows {
		data.Rows[r] = make([]views.CellData, len(row))
		for c, cell := range row {
			data.Rows[r][c] = views.CellData{
				ElementID: cellElement(cell.key),
				Zone:      dnd.Zone{View: string(cell.view), Date: cell.date, Time: cell.clock, Key: cell.key},
				Label:     cell.label,
				InPeriod:  cell.inPeriod,
				Today:     cell.today,
				Hover:     cell.key == m.board.hoverKey,
				Chips:     m.chipsFor(cell),
			}
		}
	}
	return data
}

func (m Model) chipsFor(cell calCell) []views.ChipData {
	var todos []model.Todo
	for _, t := range m.Todos {
		if t.State != model.TodoStateScheduled || !t.OnDate(cell.date) {
			continue
		}
		if cell.view != dnd.ViewMonth && slotFor(t.Schedule) != cell.clock {
			continue
		}
		todos = append(todos, t)
	}
	sort.SliceStable(todos, func(i, j int) bool {
		return todos[i].Schedule.Time < todos[j].Schedule.Time
	})

	chips := make([]views.ChipData, 0, len(todos))
	for _, t := range todos {
		chip := views.ChipData{
			ElementID: chipPrefix + t.ID,
			Title:     t.Title,
			Ghost:     t.ID == m.board.ghostID,
		}
		if cell.view == dnd.ViewMonth {
			chip.Time = t.Schedule.Time
		}
		chips = append(chips, chip)
	}
	return chips
}

// slotFor maps a schedule onto the hour row it is drawn in. Times outside the
// slot range are clamped to the nearest row.
func slotFor(s model.Schedule) string {
	if s.AllDay() {
		return ""
	}
	clock, err := time.Parse(model.TimeLayout, s.Time)
	if err != nil {
		return ""
	}
	h := clock.Hour()
	if h < firstSlotHour {
		h = firstSlotHour
	}
	if h > lastSlotHour {
		h = lastSlotHour
	}
	return fmt.Sprintf("%02d:00", h)
}

func slotLabels() []string {
	labels := []string{"all-day"}
	for h := firstSlotHour; h <= lastSlotHour; h++ {
		labels = append(labels, fmt.Sprintf("%02d:00", h))
	}
	return labels
}

func weekDays(focus time.Time) []time.Time {
	start := focus.AddDate(0, 0, -mondayOffset(focus))
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

func mondayOffset(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
