package input

import (
	"image"

	tea "github.com/charmbracelet/bubbletea"
)

// HitTester resolves the innermost element under a terminal cell.
type HitTester interface {
	ElementAt(p image.Point) (string, bool)
}

type listenerEntry struct {
	id      uint64
	fn      Listener
	removed bool
}

// Router turns bubbletea messages into pointer/key events and delivers them
// to window-level listeners, element listeners and pointer captures. It is
// not safe for concurrent use; bubbletea's update loop owns it.
type Router struct {
	hit      HitTester
	window   map[Kind][]*listenerEntry
	elements map[string]map[Kind][]*listenerEntry
	captures map[PointerID]string
	pressed  map[PointerID]string
	deferred []func()
	depth    int
	nextID   uint64
	lastPos  image.Point
	buttons  map[PointerID]bool
}

func NewRouter(hit HitTester) *Router {
	return &Router{
		hit:      hit,
		window:   make(map[Kind][]*listenerEntry),
		elements: make(map[string]map[Kind][]*listenerEntry),
		captures: make(map[PointerID]string),
		pressed:  make(map[PointerID]string),
		buttons:  make(map[PointerID]bool),
	}
}

// Listen adds a window-level listener. Window listeners see every event of
// their kind before the view handles it.
func (r *Router) Listen(kind Kind, fn Listener) func() {
	entry := r.newEntry(fn)
	r.window[kind] = append(r.window[kind], entry)
	return func() { r.removeWindow(kind, entry) }
}

// ListenElement adds a listener that only fires for events targeted at
// element. Element listeners run before window listeners for Click.
func (r *Router) ListenElement(element string, kind Kind, fn Listener) func() {
	entry := r.newEntry(fn)
	byKind, ok := r.elements[element]
	if !ok {
		byKind = make(map[Kind][]*listenerEntry)
		r.elements[element] = byKind
	}
	byKind[kind] = append(byKind[kind], entry)
	return func() {
		entry.removed = true
		byKind, ok := r.elements[element]
		if !ok {
			return
		}
		byKind[kind] = pruneEntry(byKind[kind], entry)
		if len(byKind[kind]) == 0 {
			delete(byKind, kind)
		}
		if len(byKind) == 0 {
			delete(r.elements, element)
		}
	}
}

func (r *Router) SetPointerCapture(id PointerID, element string) {
	if element == "" {
		return
	}
	r.captures[id] = element
}

func (r *Router) ReleasePointerCapture(id PointerID, element string) {
	if r.captures[id] == element {
		delete(r.captures, id)
	}
}

func (r *Router) HasPointerCapture(id PointerID, element string) bool {
	return r.captures[id] == element && element != ""
}

// Defer runs fn once the event currently being dispatched, including any
// click synthesized from it, has been fully delivered. Outside a dispatch fn
// runs immediately.
func (r *Router) Defer(fn func()) {
	if fn == nil {
		return
	}
	if r.depth == 0 {
		fn()
		return
	}
	r.deferred = append(r.deferred, fn)
}

// ListenerCount reports the number of live window listeners for kind.
func (r *Router) ListenerCount(kind Kind) int {
	return len(r.window[kind])
}

// ElementListenerCount reports the number of live listeners on element.
func (r *Router) ElementListenerCount(element string, kind Kind) int {
	return len(r.elements[element][kind])
}

// FromMsg converts a bubbletea message into an event. Wheel input and
// messages that are not pointer, focus or key input report false.
func (r *Router) FromMsg(msg tea.Msg) (*Event, bool) {
	switch typed := msg.(type) {
	case tea.MouseMsg:
		pos := image.Pt(typed.X, typed.Y)
		switch typed.Action {
		case tea.MouseActionPress:
			button, ok := buttonFromMouse(typed.Button)
			if !ok {
				return nil, false
			}
			return &Event{Kind: PointerDown, PointerID: MousePointer, Button: button, Pos: pos}, true
		case tea.MouseActionRelease:
			button, _ := buttonFromMouse(typed.Button)
			return &Event{Kind: PointerUp, PointerID: MousePointer, Button: button, Pos: pos}, true
		case tea.MouseActionMotion:
			button, _ := buttonFromMouse(typed.Button)
			return &Event{Kind: PointerMove, PointerID: MousePointer, Button: button, Pos: pos}, true
		}
	case tea.BlurMsg:
		if !r.buttons[MousePointer] {
			return nil, false
		}
		return &Event{Kind: PointerCancel, PointerID: MousePointer, Pos: r.lastPos}, true
	case tea.KeyMsg:
		return &Event{Kind: KeyDown, Key: typed.String()}, true
	}
	return nil, false
}

func buttonFromMouse(b tea.MouseButton) (Button, bool) {
	switch b {
	case tea.MouseButtonLeft:
		return ButtonPrimary, true
	case tea.MouseButtonRight:
		return ButtonSecondary, true
	case tea.MouseButtonMiddle:
		return ButtonAuxiliary, true
	case tea.MouseButtonNone:
		return ButtonNone, true
	default:
		return ButtonNone, false
	}
}

// Dispatch delivers ev and returns every event produced by it, ev first,
// followed by a synthesized Click when a pointer-up lands on the element the
// pointer went down on.
func (r *Router) Dispatch(ev *Event) []*Event {
	r.depth++
	out := []*Event{ev}
	switch ev.Kind {
	case PointerDown, PointerMove, PointerUp, PointerCancel:
		r.lastPos = ev.Pos
		ev.Target = r.targetFor(ev.PointerID, ev.Pos)
	}

	switch ev.Kind {
	case PointerDown:
		r.buttons[ev.PointerID] = true
		r.pressed[ev.PointerID] = ev.Target
		r.deliverWindow(ev)
	case PointerUp:
		pressed, hadPress := r.pressed[ev.PointerID]
		delete(r.pressed, ev.PointerID)
		delete(r.buttons, ev.PointerID)
		r.deliverWindow(ev)
		if hadPress && pressed != "" && pressed == ev.Target {
			click := &Event{
				Kind:      Click,
				PointerID: ev.PointerID,
				Button:    ev.Button,
				Pos:       ev.Pos,
				Target:    ev.Target,
			}
			r.deliverElement(click)
			if !click.Stopped() {
				r.deliverWindow(click)
			}
			out = append(out, click)
		}
	case PointerCancel:
		delete(r.pressed, ev.PointerID)
		delete(r.buttons, ev.PointerID)
		r.deliverWindow(ev)
	default:
		r.deliverWindow(ev)
	}

	r.depth--
	if r.depth == 0 {
		r.flushDeferred()
	}
	return out
}

func (r *Router) targetFor(id PointerID, p image.Point) string {
	if captured, ok := r.captures[id]; ok {
		return captured
	}
	if r.hit == nil {
		return ""
	}
	element, _ := r.hit.ElementAt(p)
	return element
}

func (r *Router) deliverWindow(ev *Event) {
	// Snapshot so listeners added or removed mid-dispatch don't disturb the walk.
	list := append([]*listenerEntry(nil), r.window[ev.Kind]...)
	for _, entry := range list {
		if entry.removed {
			continue
		}
		entry.fn(ev)
		if ev.Stopped() {
			return
		}
	}
}

func (r *Router) deliverElement(ev *Event) {
	if ev.Target == "" {
		return
	}
	list := append([]*listenerEntry(nil), r.elements[ev.Target][ev.Kind]...)
	for _, entry := range list {
		if entry.removed {
			continue
		}
		entry.fn(ev)
		if ev.Stopped() {
			return
		}
	}
}

func (r *Router) flushDeferred() {
	for len(r.deferred) > 0 {
		pending := r.deferred
		r.deferred = nil
		for _, fn := range pending {
			fn()
		}
	}
}

func (r *Router) newEntry(fn Listener) *listenerEntry {
	r.nextID++
	return &listenerEntry{id: r.nextID, fn: fn}
}

func (r *Router) removeWindow(kind Kind, entry *listenerEntry) {
	entry.removed = true
	r.window[kind] = pruneEntry(r.window[kind], entry)
	if len(r.window[kind]) == 0 {
		delete(r.window, kind)
	}
}

func pruneEntry(list []*listenerEntry, entry *listenerEntry) []*listenerEntry {
	out := list[:0:0]
	for _, e := range list {
		if e.id != entry.id {
			out = append(out, e)
		}
	}
	return out
}
