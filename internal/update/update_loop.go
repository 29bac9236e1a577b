package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sandeepkv93/focusboard/internal/model"
	"github.com/sandeepkv93/focusboard/internal/notify"
	"github.com/sandeepkv93/focusboard/internal/views"
)

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		loadTodosCmd(m.ctx, m.client),
		countFocusCmd(m.ctx, m.client, startOfDay(m.now())),
		waitForDropCmd(m.board.drops),
	}
	if m.engine != nil {
		cmds = append(cmds, waitForAlertCmd(m.engine.C()))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case tea.MouseMsg, tea.BlurMsg:
		return m.handlePointer(msg)
	case tea.WindowSizeMsg:
		m.Width, m.Height = typed.Width, typed.Height
		return m, nil
	case SwitchViewMsg:
		switch typed.View {
		case ViewPlanner:
			m.CurrentView = ViewPlanner
		case ViewFocus:
			m.CurrentView = ViewFocus
			m.bootstrapFocusTodo()
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	case TodosLoadedMsg:
		if typed.Err != nil {
			m.LastError = typed.Err
			m.Status = StatusBar{Text: fmt.Sprintf("load todos: %v", typed.Err), IsError: true}
			return m, nil
		}
		m.Todos = typed.Todos
		if _, ok := m.todoByID(m.SelectedID); !ok {
			m.Cursor = 0
			m.moveCursor(0)
		}
		for _, t := range m.Todos {
			m.armAlert(t)
		}
		return m, nil
	case DropResultMsg:
		if typed.Err != nil {
			m.LastError = typed.Err
			m.Status = StatusBar{Text: fmt.Sprintf("drop on %s failed: %v", typed.Target.Key, typed.Err), IsError: true}
		} else {
			m.upsertTodo(typed.Todo)
			m.armAlert(typed.Todo)
			m.Status = StatusBar{Text: fmt.Sprintf("scheduled %s for %s", typed.Todo.Title, scheduleLabel(typed.Todo.Schedule))}
		}
		return m, waitForDropCmd(m.board.drops)
	case AlertDueMsg:
		slot := typed.Alert.TriggerAt.Format(model.TimeLayout)
		if t, ok := m.todoByID(typed.Alert.TodoID); ok {
			slot = scheduleLabel(t.Schedule)
		}
		m.Status = StatusBar{Text: fmt.Sprintf("due: %s (%s)", typed.Alert.Title, slot)}
		m.notifyUser(notify.AlertDue(typed.Alert.Title, slot))
		if m.engine != nil {
			return m, waitForAlertCmd(m.engine.C())
		}
		return m, nil
	case FocusTickMsg:
		return m.onFocusTick(typed)
	case FocusRecordedMsg:
		if typed.Err != nil {
			m.LastError = typed.Err
			m.Status = StatusBar{Text: fmt.Sprintf("record focus session: %v", typed.Err), IsError: true}
			return m, nil
		}
		m.Focus.CompletedToday++
		return m, nil
	case FocusCountMsg:
		if typed.Err != nil {
			m.logger.Warn("count focus sessions failed", "err", typed.Err)
			return m, nil
		}
		m.Focus.CompletedToday = typed.Count
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.routeKey(msg) {
		m.Status = StatusBar{Text: "drag cancelled"}
		return m, nil
	}
	if m.Palette.Active {
		return m.handlePaletteKey(msg)
	}

	switch msg.String() {
	case "/":
		return m.openPalette(), nil
	case m.Keys.Planner:
		m.CurrentView = ViewPlanner
		return m, nil
	case m.Keys.Focus:
		m.board.drag.Cancel()
		m.CurrentView = ViewFocus
		m.bootstrapFocusTodo()
		return m, nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		if m.HelpVisible {
			m.Status = StatusBar{Text: "help shown"}
		} else {
			m.Status = StatusBar{Text: "help hidden"}
		}
		return m, nil
	case "ctrl+c", m.Keys.Quit:
		m.board.drag.Cancel()
		m.Quitting = true
		return m, tea.Quit
	}

	if m.CurrentView == ViewFocus {
		return m.handleFocusKey(msg)
	}
	return m.handlePlannerKey(msg), nil
}

func (m Model) handlePlannerKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "f":
		return m.runCommand("focus")
	case "x":
		return m.runCommand("done")
	default:
		return m.handleCalendarKey(msg)
	}
	return m
}

// runCommand executes raw as if it had been typed into the palette.
func (m Model) runCommand(raw string) Model {
	m.Palette.Input = raw
	return m.executePaletteCommand()
}

func (m Model) View() string {
	b := m.board
	b.zones.Reset()

	var main, side string
	switch m.CurrentView {
	case ViewFocus:
		main = m.renderFocusView()
	default:
		main = lipgloss.JoinHorizontal(lipgloss.Top,
			views.RenderCardList(b.zones, m.cardListData()),
			"  ",
			views.RenderCalendar(b.zones, m.calendarData()),
		)
		side = views.RenderDetail(m.detailData())
	}
	if m.HelpVisible {
		side = m.renderHelpView()
	}

	footer := fmt.Sprintf("keys: %s planner | %s focus | / cmd | %s help | %s quit", m.Keys.Planner, m.Keys.Focus, m.Keys.Help, m.Keys.Quit)
	if m.Palette.Active {
		footer = m.renderCommandPalette()
	}

	header := fmt.Sprintf("focusboard | view: %s | calendar: %s", m.CurrentView, m.Calendar.Mode)
	if id := b.drag.DraggedID(); id != "" && b.drag.Dragging() {
		if t, ok := m.todoByID(id); ok {
			header += " | dragging: " + t.Title
		}
		if target, ok := b.drag.CurrentTarget(); ok {
			header += " -> " + target.Key
		}
	}

	frame := views.RenderApp(views.AppData{
		Header:        header,
		Main:          main,
		Side:          side,
		StatusLine:    m.Status.Text,
		StatusIsError: m.Status.IsError,
		Footer:        footer,
	})
	frame = views.Clip(b.zones.Scan(frame), m.Width, m.Height)
	if p := b.preview; p != nil {
		frame = views.Overlay(frame, views.RenderPreview(p.title, p.size), p.at.X, p.at.Y)
	}
	return frame
}
