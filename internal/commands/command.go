package commands

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/focusboard/internal/dnd"
)

type Type string

const (
	TypeAdd      Type = "add"
	TypeSchedule Type = "schedule"
	TypeDone     Type = "done"
	TypeFocus    Type = "focus"
	TypeView     Type = "view"
)

// RefSelected refers to the todo currently selected in the planner.
const RefSelected = "selected"

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Title string
}

// ScheduleArgs places a todo the same way a drop on a calendar cell would.
type ScheduleArgs struct {
	Todo   string
	Target dnd.Target
}

type DoneArgs struct {
	Todo string
}

type FocusArgs struct {
	Todo string
}

type ViewArgs struct {
	Mode dnd.ViewKind
}

type Command struct {
	Type     Type
	Raw      string
	Add      *AddArgs
	Schedule *ScheduleArgs
	Done     *DoneArgs
	Focus    *FocusArgs
	View     *ViewArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeSchedule:
		return parseSchedule(input, args)
	case TypeDone:
		return parseDone(input, args)
	case TypeFocus:
		return parseFocus(input, args)
	case TypeView:
		return parseView(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Title: title}}, nil
}

func parseSchedule(raw string, args []string) (Command, error) {
	if len(args) < 3 || len(args) > 4 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "schedule requires todo, view, date and an optional time"}
	}
	clock := ""
	if len(args) == 4 {
		clock = args[3]
	}
	target, err := dnd.NewTarget(dnd.ViewKind(args[1]), args[2], clock)
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
	}
	if target.View == dnd.ViewMonth && target.HasTime() {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "month cells take no time"}
	}
	return Command{Type: TypeSchedule, Raw: raw, Schedule: &ScheduleArgs{Todo: todoRef(args[0]), Target: target}}, nil
}

func parseDone(raw string, args []string) (Command, error) {
	if len(args) > 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "done takes at most one todo"}
	}
	ref := RefSelected
	if len(args) == 1 {
		ref = todoRef(args[0])
	}
	return Command{Type: TypeDone, Raw: raw, Done: &DoneArgs{Todo: ref}}, nil
}

func parseFocus(raw string, args []string) (Command, error) {
	if len(args) > 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "focus takes at most one todo"}
	}
	ref := ""
	if len(args) == 1 {
		ref = todoRef(args[0])
	}
	return Command{Type: TypeFocus, Raw: raw, Focus: &FocusArgs{Todo: ref}}, nil
}

func parseView(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "view requires month, week or day"}
	}
	mode := dnd.ViewKind(strings.ToLower(args[0]))
	if !mode.IsValid() {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown view: %s", args[0])}
	}
	return Command{Type: TypeView, Raw: raw, View: &ViewArgs{Mode: mode}}, nil
}

func todoRef(arg string) string {
	ref := strings.ToLower(strings.TrimSpace(arg))
	if ref == "." {
		return RefSelected
	}
	return ref
}
