package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/focusboard/internal/backend"
	"github.com/sandeepkv93/focusboard/internal/commands"
	"github.com/sandeepkv93/focusboard/internal/model"
	"github.com/sandeepkv93/focusboard/internal/views"
)

func (m Model) openPalette() Model {
	m.Palette.Active = true
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Focus()
	m.Status = StatusBar{Text: "command palette active"}
	return m
}

func (m Model) closePalette() Model {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	return m
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m = m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand(), nil
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	m = m.closePalette()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			if m.client == nil {
				return commands.Result{}, errNoBackend
			}
			todo, err := m.client.CreateTodo(m.ctx, backend.NewTodo{Title: a.Title, Priority: model.PriorityMedium}).Unwrap()
			if err != nil {
				return commands.Result{}, err
			}
			m.upsertTodo(todo)
			m.selectTodo(todo.ID)
			return commands.Result{Message: fmt.Sprintf("added todo: %s", todo.Title)}, nil
		},
		Schedule: func(s commands.ScheduleArgs) (commands.Result, error) {
			todo, err := m.resolveTodo(s.Todo)
			if err != nil {
				return commands.Result{}, err
			}
			if m.client == nil {
				return commands.Result{}, errNoBackend
			}
			updated, err := m.client.ScheduleTodo(m.ctx, todo.ID, scheduleFor(s.Target)).Unwrap()
			if err != nil {
				return commands.Result{}, err
			}
			m.upsertTodo(updated)
			m.armAlert(updated)
			return commands.Result{Message: fmt.Sprintf("scheduled %s for %s", updated.Title, scheduleLabel(updated.Schedule))}, nil
		},
		Done: func(d commands.DoneArgs) (commands.Result, error) {
			todo, err := m.resolveTodo(d.Todo)
			if err != nil {
				return commands.Result{}, err
			}
			if m.client == nil {
				return commands.Result{}, errNoBackend
			}
			done, err := m.client.CompleteTodo(m.ctx, todo.ID).Unwrap()
			if err != nil {
				return commands.Result{}, err
			}
			m.upsertTodo(done)
			m.armAlert(done)
			if m.SelectedID == done.ID {
				m.moveCursor(0)
			}
			return commands.Result{Message: fmt.Sprintf("completed: %s", done.Title)}, nil
		},
		Focus: func(f commands.FocusArgs) (commands.Result, error) {
			if f.Todo != "" {
				todo, err := m.resolveTodo(f.Todo)
				if err != nil {
					return commands.Result{}, err
				}
				m.selectTodo(todo.ID)
				m.setFocusTodo(todo.ID)
			} else {
				m.bootstrapFocusTodo()
			}
			m.CurrentView = ViewFocus
			return commands.Result{Message: "focus view"}, nil
		},
		View: func(v commands.ViewArgs) (commands.Result, error) {
			m.CurrentView = ViewPlanner
			m.Calendar.Mode = v.Mode
			return commands.Result{Message: fmt.Sprintf("calendar mode: %s", v.Mode)}, nil
		},
	})
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.Status = StatusBar{Text: res.Message}
	return m
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.commandInput.View())
}
