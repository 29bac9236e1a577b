package input

import "image"

type Kind int

const (
	PointerDown Kind = iota + 1
	PointerMove
	PointerUp
	PointerCancel
	KeyDown
	Click
)

func (k Kind) String() string {
	switch k {
	case PointerDown:
		return "pointerdown"
	case PointerMove:
		return "pointermove"
	case PointerUp:
		return "pointerup"
	case PointerCancel:
		return "pointercancel"
	case KeyDown:
		return "keydown"
	case Click:
		return "click"
	default:
		return "unknown"
	}
}

type Button int

const (
	ButtonNone Button = iota
	ButtonPrimary
	ButtonSecondary
	ButtonAuxiliary
)

type PointerID int

// MousePointer is the only pointer a terminal reports.
const MousePointer PointerID = 1

const KeyEscape = "esc"

// Event is a pointer or key event flowing through a Router. Listeners may
// stop it from reaching later listeners, or mark its default handling as
// prevented so the view skips it.
type Event struct {
	Kind      Kind
	PointerID PointerID
	Button    Button
	Pos       image.Point
	Key       string
	// Target is the element the event was delivered to: the capturing element
	// when the pointer is captured, otherwise the innermost element under Pos.
	Target string

	defaultPrevented bool
	stopped          bool
}

func (e *Event) PreventDefault()        { e.defaultPrevented = true }
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }
func (e *Event) StopPropagation()       { e.stopped = true }
func (e *Event) Stopped() bool          { return e.stopped }

// Handled reports whether the view should skip its own handling of e.
func (e *Event) Handled() bool {
	return e.stopped || e.defaultPrevented
}

type Listener func(*Event)
