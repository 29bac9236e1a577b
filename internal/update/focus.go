package update

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/focusboard/internal/backend"
	"github.com/sandeepkv93/focusboard/internal/model"
	"github.com/sandeepkv93/focusboard/internal/notify"
	"github.com/sandeepkv93/focusboard/internal/views"
)

func (m Model) handleFocusKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		if m.Focus.Running {
			m.Focus.Running = false
			m.Status = StatusBar{Text: "focus paused"}
			return m, nil
		}
		if m.Focus.RemainingSec <= 0 {
			m.Focus.RemainingSec = m.currentFocusTotal()
		}
		if m.Focus.RemainingSec == m.currentFocusTotal() {
			m.Focus.StartedAt = m.now()
		}
		m.Focus.Running = true
		m.Focus.tick++
		m.Status = StatusBar{Text: "focus running"}
		return m, focusTickCmd(m.Focus.tick)
	case "r":
		m.Focus.Running = false
		m.Focus.RemainingSec = m.currentFocusTotal()
		m.Status = StatusBar{Text: "focus reset"}
		return m, nil
	case "n":
		m.advanceFocusPhase()
		return m, nil
	}
	return m, nil
}

func (m Model) onFocusTick(msg FocusTickMsg) (Model, tea.Cmd) {
	if !m.Focus.Running || msg.tick != m.Focus.tick {
		return m, nil
	}
	if m.Focus.RemainingSec > 0 {
		m.Focus.RemainingSec--
	}
	if m.Focus.RemainingSec > 0 {
		return m, focusTickCmd(m.Focus.tick)
	}

	m.Focus.Running = false
	phase := m.Focus.Phase
	minutes := m.currentFocusTotal() / 60
	m.notifyUser(notify.FocusDone(string(phase), minutes))
	if phase == model.FocusPhaseBreak {
		m.Status = StatusBar{Text: "break complete; press n for next focus block"}
		return m, nil
	}
	m.Status = StatusBar{Text: "work session complete; press n to start break"}
	session := model.FocusSession{
		TodoID:    m.Focus.TodoID,
		Phase:     phase,
		StartedAt: m.Focus.StartedAt,
		Duration:  time.Duration(m.currentFocusTotal()) * time.Second,
	}
	if session.StartedAt.IsZero() {
		session.StartedAt = m.now().Add(-session.Duration)
	}
	return m, recordFocusCmd(m.ctx, m.client, session)
}

func (m *Model) bootstrapFocusTodo() {
	if m.Focus.TodoID != "" {
		if _, ok := m.todoByID(m.Focus.TodoID); ok {
			return
		}
	}
	m.setFocusTodo(m.SelectedID)
}

func (m *Model) setFocusTodo(id string) {
	m.Focus.TodoID = ""
	m.Focus.TodoTitle = ""
	if t, ok := m.todoByID(id); ok {
		m.Focus.TodoID = t.ID
		m.Focus.TodoTitle = t.Title
	}
}

func (m *Model) advanceFocusPhase() {
	m.Focus.Running = false
	if m.Focus.Phase == model.FocusPhaseWork {
		m.Focus.Phase = model.FocusPhaseBreak
		m.Focus.RemainingSec = m.Focus.BreakDurationSec
		m.Status = StatusBar{Text: "break ready"}
		return
	}
	m.Focus.Phase = model.FocusPhaseWork
	m.Focus.RemainingSec = m.Focus.WorkDurationSec
	m.Status = StatusBar{Text: "focus block ready"}
}

func (m Model) currentFocusTotal() int {
	if m.Focus.Phase == model.FocusPhaseBreak {
		return m.Focus.BreakDurationSec
	}
	return m.Focus.WorkDurationSec
}

func (m Model) renderFocusView() string {
	total := m.currentFocusTotal()
	pct := 0.0
	if total > 0 {
		pct = float64(total-m.Focus.RemainingSec) / float64(total)
	}
	pct = clamp01(pct)
	return views.RenderFocusPanel(views.FocusPanelData{
		TodoTitle:      m.Focus.TodoTitle,
		Phase:          string(m.Focus.Phase),
		Timer:          formatDuration(m.Focus.RemainingSec),
		ProgressView:   m.focusProgress.ViewAs(pct),
		ProgressPct:    int(pct * 100),
		CompletedToday: m.Focus.CompletedToday,
		Running:        m.Focus.Running,
		ShowEndPrompt:  m.Focus.RemainingSec == 0,
	})
}

func focusTickCmd(tick int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return FocusTickMsg{tick: tick} })
}

func recordFocusCmd(ctx context.Context, client backend.Client, s model.FocusSession) tea.Cmd {
	if client == nil {
		return nil
	}
	return func() tea.Msg {
		saved, err := client.RecordFocus(ctx, s).Unwrap()
		return FocusRecordedMsg{Session: saved, Err: err}
	}
}

func countFocusCmd(ctx context.Context, client backend.Client, since time.Time) tea.Cmd {
	if client == nil {
		return nil
	}
	return func() tea.Msg {
		n, err := client.CountFocus(ctx, since).Unwrap()
		return FocusCountMsg{Count: n, Err: err}
	}
}
