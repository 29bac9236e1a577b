package update

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/focusboard/internal/backend"
	"github.com/sandeepkv93/focusboard/internal/model"
	"github.com/sandeepkv93/focusboard/internal/scheduler"
	"github.com/sandeepkv93/focusboard/internal/views"
)

const detailWidth = 40

func loadTodosCmd(ctx context.Context, client backend.Client) tea.Cmd {
	if client == nil {
		return nil
	}
	return func() tea.Msg {
		todos, err := client.ListTodos(ctx, backend.ListQuery{}).Unwrap()
		return TodosLoadedMsg{Todos: todos, Err: err}
	}
}

func waitForDropCmd(ch <-chan DropResultMsg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

func waitForAlertCmd(ch <-chan scheduler.Alert) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		a, ok := <-ch
		if !ok {
			return nil
		}
		return AlertDueMsg{Alert: a}
	}
}

func (m Model) todoByID(id string) (model.Todo, bool) {
	for _, t := range m.Todos {
		if t.ID == id {
			return t, true
		}
	}
	return model.Todo{}, false
}

// visibleTodos are the cards shown in the planner list.
func (m Model) visibleTodos() []model.Todo {
	out := make([]model.Todo, 0, len(m.Todos))
	for _, t := range m.Todos {
		if t.State != model.TodoStateDone {
			out = append(out, t)
		}
	}
	return out
}

func (m *Model) selectTodo(id string) {
	for i, t := range m.visibleTodos() {
		if t.ID == id {
			m.Cursor = i
			m.SelectedID = id
			return
		}
	}
	if _, ok := m.todoByID(id); ok {
		m.SelectedID = id
	}
}

func (m *Model) moveCursor(delta int) {
	visible := m.visibleTodos()
	if len(visible) == 0 {
		m.Cursor = 0
		m.SelectedID = ""
		return
	}
	m.Cursor += delta
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	if m.Cursor >= len(visible) {
		m.Cursor = len(visible) - 1
	}
	m.SelectedID = visible[m.Cursor].ID
}

// upsertTodo stores t in the model's copy of the todo list. The slice is
// copied first so older Model values keep their own list.
func (m *Model) upsertTodo(t model.Todo) {
	next := make([]model.Todo, len(m.Todos), len(m.Todos)+1)
	copy(next, m.Todos)
	for i := range next {
		if next[i].ID == t.ID {
			next[i] = t
			m.Todos = next
			return
		}
	}
	m.Todos = append(next, t)
}

// resolveTodo finds a todo by palette reference: "selected", a full id or a
// unique id prefix.
func (m Model) resolveTodo(ref string) (model.Todo, error) {
	if ref == "" || ref == "selected" {
		if m.SelectedID == "" {
			return model.Todo{}, fmt.Errorf("no todo selected")
		}
		t, ok := m.todoByID(m.SelectedID)
		if !ok {
			return model.Todo{}, fmt.Errorf("selected todo %s is gone", m.SelectedID)
		}
		return t, nil
	}
	var match []model.Todo
	for _, t := range m.Todos {
		if t.ID == ref {
			return t, nil
		}
		if strings.HasPrefix(t.ID, ref) {
			match = append(match, t)
		}
	}
	switch len(match) {
	case 0:
		return model.Todo{}, fmt.Errorf("no todo matches %q", ref)
	case 1:
		return match[0], nil
	default:
		return model.Todo{}, fmt.Errorf("%q matches %d todos", ref, len(match))
	}
}

// armAlert schedules the due alert for a scheduled todo. Todos that are not
// scheduled, or whose slot has passed, have any pending alert cancelled.
func (m Model) armAlert(t model.Todo) {
	if m.engine == nil {
		return
	}
	if t.State != model.TodoStateScheduled {
		m.engine.Cancel(t.ID)
		return
	}
	at, err := t.Schedule.At(m.Calendar.FocusDate.Location())
	if err != nil || !at.After(m.now()) {
		m.engine.Cancel(t.ID)
		return
	}
	if err := m.engine.Schedule(scheduler.Alert{TodoID: t.ID, Title: t.Title, TriggerAt: at}); err != nil {
		m.logger.Warn("arm alert failed", "todo", t.ID, "err", err)
	}
}

func (m Model) cardListData() views.CardListData {
	data := views.CardListData{ElementID: cardListID, Title: "Todos"}
	for _, t := range m.visibleTodos() {
		data.Cards = append(data.Cards, views.CardData{
			ElementID: cardPrefix + t.ID,
			Title:     t.Title,
			Priority:  string(t.Priority),
			When:      scheduleLabel(t.Schedule),
			Selected:  t.ID == m.SelectedID,
			Ghost:     t.ID == m.board.ghostID,
		})
	}
	return data
}

func (m Model) detailData() views.DetailData {
	t, ok := m.todoByID(m.SelectedID)
	if !ok {
		return views.DetailData{}
	}
	return views.DetailData{
		Title:    t.Title,
		Priority: string(t.Priority),
		State:    string(t.State),
		When:     scheduleLabel(t.Schedule),
		Markdown: m.board.renderDetail(t.ID, t.Description),
	}
}

// renderDetail caches the markdown of the selected todo between frames.
func (b *board) renderDetail(id, md string) string {
	key := id + "\x00" + md
	if b.detailKey != key {
		b.detailKey = key
		b.detail = views.RenderMarkdown(md, detailWidth)
	}
	return b.detail
}

func scheduleLabel(s model.Schedule) string {
	if s.Date == "" {
		return ""
	}
	if s.AllDay() {
		return s.Date
	}
	return s.Date + " " + s.Time
}
