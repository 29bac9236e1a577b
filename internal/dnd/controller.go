// Package dnd drags todo cards onto calendar drop zones. A Controller turns
// pointer events into a press / drag / drop gesture, draws a floating preview
// while dragging and hands the dropped payload to a single registered handler.
package dnd

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"github.com/sandeepkv93/focusboard/internal/input"
)

const DefaultThreshold = 4

// Window is where a drag installs its listeners for the life of a gesture.
type Window interface {
	Listen(kind input.Kind, fn input.Listener) func()
	ListenElement(element string, kind input.Kind, fn input.Listener) func()
	SetPointerCapture(id input.PointerID, element string)
	ReleasePointerCapture(id input.PointerID, element string)
	Defer(fn func())
}

// SpatialIndex finds the topmost attributed drop zone under a point.
type SpatialIndex interface {
	DropZoneAt(p image.Point) (Zone, bool)
}

// Source is the element a drag starts from.
type Source interface {
	ElementID() string
	Bounds() image.Rectangle
	SetGhost(on bool)
}

// Preview is the floating stand-in for the source while a drag is active.
type Preview interface {
	MoveTo(p image.Point)
	Remove()
}

// PreviewRenderer creates a preview of size at its first position.
type PreviewRenderer interface {
	NewPreview(p Payload, size image.Point, at image.Point) Preview
}

// DropHandler receives a completed drop. Its error is logged, not returned.
type DropHandler func(ctx context.Context, p Payload, t Target) error

// Registration identifies one installed drop handler.
type Registration struct {
	handler DropHandler
}

// Config tunes a Controller. A zero PresentationOffset means none; other zero
// fields fall back to defaults.
type Config struct {
	// Threshold is the Manhattan distance a press must travel to become a drag.
	Threshold int
	// PresentationOffset shifts the preview away from the grab point.
	PresentationOffset image.Point

	Logger *slog.Logger
	// Dispatch runs drop handlers. Defaults to a new goroutine per drop.
	Dispatch func(func())
	Context  context.Context
}

// DefaultConfig returns a threshold of 4 cells and a (1,1) preview offset.
func DefaultConfig() Config {
	return Config{
		Threshold:          DefaultThreshold,
		PresentationOffset: image.Pt(1, 1),
	}
}

type session struct {
	pointer  input.PointerID
	payload  Payload
	source   Source
	preview  Preview
	started  bool
	origin   image.Point
	grab     image.Point
	target   *Target
	finished bool

	releaseClick func()
	unlisten     []func()
}

type subscriber[T any] struct {
	id uint64
	fn T
}

// Controller owns the single active drag and the single drop-handler slot.
// All methods must be called from the UI goroutine.
type Controller struct {
	win      Window
	index    SpatialIndex
	previews PreviewRenderer
	cfg      Config
	logger   *slog.Logger

	active  *session
	handler *Registration

	nextSub     uint64
	targetSubs  []subscriber[func(*Target)]
	dragEndSubs []subscriber[func()]
}

func NewController(win Window, index SpatialIndex, previews PreviewRenderer, cfg Config) *Controller {
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultThreshold
	}
	if cfg.Dispatch == nil {
		cfg.Dispatch = func(fn func()) { go fn() }
	}
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{
		win:      win,
		index:    index,
		previews: previews,
		cfg:      cfg,
		logger:   logger.With("component", "dnd"),
	}
}

// RegisterDropHandler installs h, replacing any previous handler.
func (c *Controller) RegisterDropHandler(h DropHandler) *Registration {
	if h == nil {
		return nil
	}
	reg := &Registration{handler: h}
	c.handler = reg
	return reg
}

// UnregisterDropHandler clears the slot only if reg is the installed handler.
func (c *Controller) UnregisterDropHandler(reg *Registration) {
	if reg != nil && c.handler == reg {
		c.handler = nil
	}
}

// OnTargetChange calls fn whenever the hovered drop target changes. A nil
// target means the hover was cleared. The returned func unsubscribes.
func (c *Controller) OnTargetChange(fn func(*Target)) func() {
	c.nextSub++
	id := c.nextSub
	c.targetSubs = append(c.targetSubs, subscriber[func(*Target)]{id: id, fn: fn})
	return func() {
		c.targetSubs = removeSub(c.targetSubs, id)
	}
}

// OnDragEnd calls fn every time a session finishes, whether it dropped,
// was cancelled, or never passed the threshold. The returned func unsubscribes.
func (c *Controller) OnDragEnd(fn func()) func() {
	c.nextSub++
	id := c.nextSub
	c.dragEndSubs = append(c.dragEndSubs, subscriber[func()]{id: id, fn: fn})
	return func() {
		c.dragEndSubs = removeSub(c.dragEndSubs, id)
	}
}

func removeSub[T any](subs []subscriber[T], id uint64) []subscriber[T] {
	out := make([]subscriber[T], 0, len(subs))
	for _, s := range subs {
		if s.id != id {
			out = append(out, s)
		}
	}
	return out
}

// Active reports whether a gesture is in progress, pending or started.
func (c *Controller) Active() bool { return c.active != nil }

// Dragging reports whether the active gesture has crossed the threshold.
func (c *Controller) Dragging() bool { return c.active != nil && c.active.started }

func (c *Controller) DraggedID() string {
	if c.active == nil {
		return ""
	}
	return c.active.payload.ID
}

func (c *Controller) CurrentTarget() (Target, bool) {
	if c.active == nil || c.active.target == nil {
		return Target{}, false
	}
	return *c.active.target, true
}

// BeginDrag starts a pending gesture from a pointer-down on src. Anything but
// a primary-button pointer-down is ignored. A gesture already in progress is
// cancelled first.
func (c *Controller) BeginDrag(ev *input.Event, src Source, p Payload) {
	if ev == nil || src == nil || ev.Kind != input.PointerDown || ev.Button != input.ButtonPrimary {
		return
	}
	if c.active != nil {
		c.finish(false)
	}

	s := &session{
		pointer: ev.PointerID,
		payload: p,
		source:  src,
		origin:  ev.Pos,
		grab:    ev.Pos.Sub(src.Bounds().Min),
	}
	c.active = s
	s.unlisten = []func(){
		c.win.Listen(input.PointerMove, func(e *input.Event) { c.onMove(s, e) }),
		c.win.Listen(input.PointerUp, func(e *input.Event) { c.onUp(s, e) }),
		c.win.Listen(input.PointerCancel, func(e *input.Event) { c.onCancel(s, e) }),
		c.win.Listen(input.KeyDown, func(e *input.Event) { c.onKey(s, e) }),
	}
	c.logger.Debug("drag pending", "todo", p.ID, "pointer", ev.PointerID)
}

// Cancel ends the active gesture without dropping.
func (c *Controller) Cancel() {
	c.finish(false)
}

func (c *Controller) onMove(s *session, ev *input.Event) {
	if c.active != s || ev.PointerID != s.pointer {
		return
	}
	if !s.started {
		if manhattan(ev.Pos.Sub(s.origin)) < c.cfg.Threshold {
			return
		}
		c.start(s, ev.Pos)
	}
	ev.PreventDefault()
	if s.preview != nil {
		s.preview.MoveTo(c.previewPos(s, ev.Pos))
	}
	c.updateTarget(s, ev.Pos)
}

func (c *Controller) start(s *session, at image.Point) {
	s.started = true
	id := s.source.ElementID()
	c.win.SetPointerCapture(s.pointer, id)

	if c.previews != nil {
		s.preview = c.previews.NewPreview(s.payload, s.source.Bounds().Size(), c.previewPos(s, at))
	}
	s.source.SetGhost(true)

	removeSuppressor := c.win.ListenElement(id, input.Click, func(e *input.Event) {
		e.StopPropagation()
		e.PreventDefault()
	})
	// The click follows the pointer-up that finishes the drag, so removal has
	// to wait until that dispatch is over.
	s.releaseClick = func() { c.win.Defer(removeSuppressor) }
	c.logger.Debug("drag started", "todo", s.payload.ID)
}

func (c *Controller) previewPos(s *session, at image.Point) image.Point {
	return at.Sub(s.grab).Add(c.cfg.PresentationOffset)
}

func (c *Controller) updateTarget(s *session, at image.Point) {
	var next *Target
	if c.index != nil {
		if z, ok := c.index.DropZoneAt(at); ok {
			if t, err := DecodeZone(z); err == nil {
				next = &t
			} else {
				c.logger.Debug("drop zone not decodable", "err", err)
			}
		}
	}
	if next == nil {
		if s.target != nil {
			s.target = nil
			c.emitTarget(nil)
		}
		return
	}
	if s.target != nil && s.target.Key == next.Key {
		return
	}
	s.target = next
	c.emitTarget(next)
}

func (c *Controller) onUp(s *session, ev *input.Event) {
	if c.active != s || ev.PointerID != s.pointer {
		return
	}
	if s.started {
		ev.PreventDefault()
	}
	c.finish(true)
}

func (c *Controller) onCancel(s *session, ev *input.Event) {
	if c.active != s || ev.PointerID != s.pointer {
		return
	}
	c.finish(false)
}

func (c *Controller) onKey(s *session, ev *input.Event) {
	if c.active != s || ev.Key != input.KeyEscape {
		return
	}
	c.finish(false)
}

func (c *Controller) finish(shouldAttemptDrop bool) {
	s := c.active
	if s == nil || s.finished {
		return
	}
	s.finished = true

	if s.preview != nil {
		s.preview.Remove()
		s.preview = nil
	}
	if s.started {
		s.source.SetGhost(false)
		c.win.ReleasePointerCapture(s.pointer, s.source.ElementID())
	}
	if s.releaseClick != nil {
		s.releaseClick()
		s.releaseClick = nil
	}
	c.emitTarget(nil)
	c.emitDragEnd()
	for _, remove := range s.unlisten {
		remove()
	}
	s.unlisten = nil
	c.active = nil

	if !shouldAttemptDrop || !s.started || s.target == nil || c.handler == nil {
		c.logger.Debug("drag ended without drop", "todo", s.payload.ID)
		return
	}
	handler := c.handler.handler
	payload, target := s.payload, *s.target
	ctx := c.cfg.Context
	c.cfg.Dispatch(func() { c.runHandler(ctx, handler, payload, target) })
}

func (c *Controller) runHandler(ctx context.Context, h DropHandler, p Payload, t Target) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("drop handler panicked", "todo", p.ID, "target", t.Key, "err", fmt.Errorf("panic: %v", r))
		}
	}()
	if err := h(ctx, p, t); err != nil {
		c.logger.Error("drop handler failed", "todo", p.ID, "target", t.Key, "err", err)
	}
}

func (c *Controller) emitTarget(t *Target) {
	for _, sub := range append([]subscriber[func(*Target)](nil), c.targetSubs...) {
		if t == nil {
			sub.fn(nil)
			continue
		}
		cp := *t
		sub.fn(&cp)
	}
}

func (c *Controller) emitDragEnd() {
	for _, sub := range append([]subscriber[func()](nil), c.dragEndSubs...) {
		sub.fn()
	}
}

func manhattan(d image.Point) int {
	return abs(d.X) + abs(d.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
