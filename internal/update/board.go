package update

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"strings"

	"github.com/sandeepkv93/focusboard/internal/backend"
	"github.com/sandeepkv93/focusboard/internal/config"
	"github.com/sandeepkv93/focusboard/internal/dnd"
	"github.com/sandeepkv93/focusboard/internal/input"
	"github.com/sandeepkv93/focusboard/internal/model"
	"github.com/sandeepkv93/focusboard/internal/zones"
)

const (
	cardPrefix = "card:"
	chipPrefix = "chip:"
	cellPrefix = "cell:"

	cardListID = "cards"
	calendarID = "calendar"
)

var errNoBackend = errors.New("update: no backend configured")

// board is the drag state shared by every copy of the Model. Controller
// observers write to it, so it lives behind a pointer.
type board struct {
	zones  *zones.Registry
	router *input.Router
	drag   *dnd.Controller
	drops  chan DropResultMsg

	hoverKey string
	ghostID  string
	preview  *previewCard

	detailKey string
	detail    string

	client  backend.Client
	logger  *slog.Logger
	dropReg *dnd.Registration
	unsub   []func()
}

type boardDeps struct {
	zones    *zones.Registry
	client   backend.Client
	logger   *slog.Logger
	ctx      context.Context
	dispatch func(func())
	drag     config.DragConfig
}

func newBoard(d boardDeps) *board {
	b := &board{
		zones:  d.zones,
		router: input.NewRouter(d.zones),
		drops:  make(chan DropResultMsg, 16),
		client: d.client,
		logger: d.logger,
	}
	cfg := dnd.DefaultConfig()
	if d.drag.Threshold > 0 {
		cfg.Threshold = d.drag.Threshold
	}
	if d.drag.OffsetX != 0 || d.drag.OffsetY != 0 {
		cfg.PresentationOffset = image.Pt(d.drag.OffsetX, d.drag.OffsetY)
	}
	cfg.Logger = d.logger
	cfg.Dispatch = d.dispatch
	cfg.Context = d.ctx

	b.drag = dnd.NewController(b.router, d.zones, previewLayer{b: b}, cfg)
	b.dropReg = b.drag.RegisterDropHandler(b.scheduleDrop)
	b.unsub = append(b.unsub,
		b.drag.OnTargetChange(func(t *dnd.Target) {
			if t == nil {
				b.hoverKey = ""
				return
			}
			b.hoverKey = t.Key
		}),
		b.drag.OnDragEnd(func() {
			b.hoverKey = ""
		}),
	)
	return b
}

func (b *board) close() {
	b.drag.Cancel()
	b.drag.UnregisterDropHandler(b.dropReg)
	for _, fn := range b.unsub {
		fn()
	}
	b.unsub = nil
}

// scheduleDrop runs off the update loop; it only talks to the backend and
// the drops channel.
func (b *board) scheduleDrop(ctx context.Context, p dnd.Payload, t dnd.Target) error {
	msg := DropResultMsg{Target: t}
	if b.client == nil {
		msg.Err = errNoBackend
	} else {
		msg.Todo, msg.Err = b.client.ScheduleTodo(ctx, p.ID, scheduleFor(t)).Unwrap()
	}
	select {
	case b.drops <- msg:
	case <-ctx.Done():
		return ctx.Err()
	}
	if msg.Err != nil {
		return fmt.Errorf("schedule %s: %w", p.ID, msg.Err)
	}
	return nil
}

func scheduleFor(t dnd.Target) model.Schedule {
	return model.Schedule{Date: t.Date, Time: t.Time}
}

// cardSource is a draggable card or calendar chip.
type cardSource struct {
	b       *board
	element string
	todoID  string
}

func (s cardSource) ElementID() string { return s.element }

func (s cardSource) Bounds() image.Rectangle {
	r, _ := s.b.zones.Bounds(s.element)
	return r
}

func (s cardSource) SetGhost(on bool) {
	if on {
		s.b.ghostID = s.todoID
		return
	}
	if s.b.ghostID == s.todoID {
		s.b.ghostID = ""
	}
}

type previewLayer struct {
	b *board
}

func (l previewLayer) NewPreview(p dnd.Payload, size image.Point, at image.Point) dnd.Preview {
	pc := &previewCard{b: l.b, title: p.Title, size: size, at: at}
	l.b.preview = pc
	return pc
}

// previewCard is drawn over the frame after hit regions are scanned, so it
// never shadows the drop zone beneath the pointer.
type previewCard struct {
	b     *board
	title string
	size  image.Point
	at    image.Point
}

func (p *previewCard) MoveTo(at image.Point) { p.at = at }

func (p *previewCard) Remove() {
	if p.b.preview == p {
		p.b.preview = nil
	}
}

func todoIDFromElement(element string) (string, bool) {
	for _, prefix := range []string{cardPrefix, chipPrefix} {
		if id, ok := strings.CutPrefix(element, prefix); ok && id != "" {
			return id, true
		}
	}
	return "", false
}

func cellElement(key string) string { return cellPrefix + key }
