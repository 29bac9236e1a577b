package update

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/sandeepkv93/focusboard/internal/backend"
	"github.com/sandeepkv93/focusboard/internal/config"
	"github.com/sandeepkv93/focusboard/internal/dnd"
	"github.com/sandeepkv93/focusboard/internal/logging"
	"github.com/sandeepkv93/focusboard/internal/model"
	"github.com/sandeepkv93/focusboard/internal/notify"
	"github.com/sandeepkv93/focusboard/internal/scheduler"
	"github.com/sandeepkv93/focusboard/internal/zones"
)

type View string

const (
	ViewPlanner View = "Planner"
	ViewFocus   View = "Focus"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Planner string
	Focus   string
	Help    string
	Quit    string
}

type Model struct {
	CurrentView View
	SelectedID  string
	Todos       []model.Todo
	Cursor      int
	Calendar    CalendarState
	Focus       FocusState
	Palette     CommandPaletteState
	HelpVisible bool
	Status      StatusBar
	Keys        GlobalKeyMap
	Quitting    bool
	LastError   error

	// Width and Height are the terminal size; zero until the first
	// tea.WindowSizeMsg arrives.
	Width  int
	Height int

	ctx      context.Context
	client   backend.Client
	engine   *scheduler.Engine
	notifier notify.Notifier
	logger   *slog.Logger
	now      func() time.Time
	board    *board

	commandInput  textinput.Model
	focusProgress progress.Model
	helpModel     help.Model
}

type CalendarState struct {
	Mode      dnd.ViewKind
	FocusDate time.Time
}

type FocusState struct {
	TodoID           string
	TodoTitle        string
	WorkDurationSec  int
	BreakDurationSec int
	RemainingSec     int
	Running          bool
	Phase            model.FocusPhase
	CompletedToday   int
	StartedAt        time.Time

	// tick identifies the live tick loop; ticks from older loops are ignored.
	tick int
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

// Deps are the collaborators a Model is built from.
type Deps struct {
	Client    backend.Client
	Scheduler *scheduler.Engine
	Notifier  notify.Notifier
	Logger    *slog.Logger
	Config    config.Config
	Zones     zones.Manager
	Now       func() time.Time
	Context   context.Context
	// DispatchDrop runs drop handlers. Nil runs each on its own goroutine.
	DispatchDrop func(func())
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type TodosLoadedMsg struct {
	Todos []model.Todo
	Err   error
}

type FocusCountMsg struct {
	Count int
	Err   error
}

// DropResultMsg reports the outcome of scheduling a dropped todo.
type DropResultMsg struct {
	Target dnd.Target
	Todo   model.Todo
	Err    error
}

type AlertDueMsg struct {
	Alert scheduler.Alert
}

type FocusTickMsg struct {
	tick int
}

type FocusRecordedMsg struct {
	Session model.FocusSession
	Err     error
}

func NewModel(deps Deps) Model {
	cfg := deps.Config
	if cfg.Focus.WorkMinutes <= 0 || cfg.Focus.BreakMinutes <= 0 {
		def := config.Default()
		cfg.Focus = def.Focus
	}
	ctx := deps.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	notifier := deps.Notifier
	if notifier == nil {
		notifier = notify.Noop{}
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	mgr := deps.Zones
	if mgr == nil {
		mgr = zones.NewManager()
	}

	m := Model{
		CurrentView: ViewPlanner,
		Calendar: CalendarState{
			Mode:      dnd.ViewMonth,
			FocusDate: startOfDay(now()),
		},
		Focus: FocusState{
			WorkDurationSec:  int(cfg.WorkDuration() / time.Second),
			BreakDurationSec: int(cfg.BreakDuration() / time.Second),
			RemainingSec:     int(cfg.WorkDuration() / time.Second),
			Phase:            model.FocusPhaseWork,
		},
		Keys: GlobalKeyMap{
			Planner: "1",
			Focus:   "2",
			Help:    "?",
			Quit:    "q",
		},
		ctx:      ctx,
		client:   deps.Client,
		engine:   deps.Scheduler,
		notifier: notifier,
		logger:   logger.With("component", "update"),
		now:      now,
	}
	m.board = newBoard(boardDeps{
		zones:    zones.New(mgr, "fb:"),
		client:   deps.Client,
		logger:   logger,
		ctx:      ctx,
		dispatch: deps.DispatchDrop,
		drag:     cfg.Drag,
	})
	m.initBubbleComponents()
	return m
}

func (m *Model) initBubbleComponents() {
	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.focusProgress = progress.New(progress.WithDefaultGradient(), progress.WithWidth(30))
	m.helpModel = help.New()
}

// Close unregisters the drop handler and observers installed by NewModel.
func (m Model) Close() {
	m.board.close()
}
