package update

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/focusboard/internal/dnd"
	"github.com/sandeepkv93/focusboard/internal/input"
)

// handlePointer routes mouse and focus-loss messages through the event
// router. Events a drag consumed are not handled again here.
func (m Model) handlePointer(msg tea.Msg) (Model, tea.Cmd) {
	ev, ok := m.board.router.FromMsg(msg)
	if !ok {
		return m, nil
	}
	for _, e := range m.board.router.Dispatch(ev) {
		if e.Handled() {
			continue
		}
		m = m.onPointerEvent(e)
	}
	return m, nil
}

func (m Model) onPointerEvent(e *input.Event) Model {
	switch e.Kind {
	case input.PointerDown:
		if m.CurrentView != ViewPlanner {
			return m
		}
		id, ok := todoIDFromElement(e.Target)
		if !ok {
			return m
		}
		todo, ok := m.todoByID(id)
		if !ok {
			return m
		}
		src := cardSource{b: m.board, element: e.Target, todoID: id}
		m.board.drag.BeginDrag(e, src, dnd.Payload{ID: todo.ID, Title: todo.Title, Description: todo.Description})
	case input.Click:
		if id, ok := todoIDFromElement(e.Target); ok {
			m.selectTodo(id)
			return m
		}
		if key, ok := strings.CutPrefix(e.Target, cellPrefix); ok {
			m = m.focusCell(key)
		}
	}
	return m
}

// routeKey gives an active drag the first look at a key. It reports true
// when the key ended the drag.
func (m Model) routeKey(msg tea.KeyMsg) bool {
	ev, ok := m.board.router.FromMsg(msg)
	if !ok {
		return false
	}
	wasActive := m.board.drag.Active()
	m.board.router.Dispatch(ev)
	return wasActive && !m.board.drag.Active()
}

func (m Model) focusCell(key string) Model {
	for _, row := range m.calendarRows() {
		for _, cell := range row {
			if cell.key != key {
				continue
			}
			if d, err := time.ParseInLocation(dnd.DateLayout, cell.date, m.Calendar.FocusDate.Location()); err == nil {
				m.Calendar.FocusDate = d
				m.Status = StatusBar{Text: fmt.Sprintf("calendar focus: %s", cell.date)}
			}
			return m
		}
	}
	return m
}
