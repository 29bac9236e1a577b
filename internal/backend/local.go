package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sandeepkv93/focusboard/internal/model"
	"github.com/sandeepkv93/focusboard/internal/storage"
)

type NewTodo struct {
	Title       string
	Description string
	Priority    model.Priority
}

type ListQuery struct {
	IncludeDone bool
}

type Client interface {
	ListTodos(ctx context.Context, q ListQuery) Envelope[[]model.Todo]
	CreateTodo(ctx context.Context, in NewTodo) Envelope[model.Todo]
	ScheduleTodo(ctx context.Context, id string, s model.Schedule) Envelope[model.Todo]
	CompleteTodo(ctx context.Context, id string) Envelope[model.Todo]
	RecordFocus(ctx context.Context, s model.FocusSession) Envelope[model.FocusSession]
	CountFocus(ctx context.Context, since time.Time) Envelope[int]
}

// Local serves the Client calls from the on-disk repository.
type Local struct {
	repo  storage.Repository
	now   func() time.Time
	newID func() string
}

var _ Client = (*Local)(nil)

func NewLocal(repo storage.Repository) *Local {
	return &Local{
		repo:  repo,
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
}

func (l *Local) ListTodos(ctx context.Context, q ListQuery) Envelope[[]model.Todo] {
	rows, err := l.repo.ListTodos(ctx, storage.TodoListFilter{})
	if err != nil {
		return Fail[[]model.Todo](fmt.Errorf("list todos: %w", err))
	}
	out := make([]model.Todo, 0, len(rows))
	for _, row := range rows {
		todo := fromRow(row)
		if todo.State == model.TodoStateDone && !q.IncludeDone {
			continue
		}
		out = append(out, todo)
	}
	return OK(out)
}

func (l *Local) CreateTodo(ctx context.Context, in NewTodo) Envelope[model.Todo] {
	priority := in.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	todo := model.Todo{
		ID:          l.newID(),
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		State:       model.TodoStateOpen,
		Priority:    priority,
		CreatedAt:   l.now().UTC(),
	}
	if err := todo.Validate(); err != nil {
		return Fail[model.Todo](err)
	}
	if err := l.repo.CreateTodo(ctx, toRow(todo)); err != nil {
		return Fail[model.Todo](fmt.Errorf("create todo: %w", err))
	}
	return OK(todo)
}

func (l *Local) ScheduleTodo(ctx context.Context, id string, s model.Schedule) Envelope[model.Todo] {
	if err := s.Validate(); err != nil {
		return Fail[model.Todo](err)
	}
	todo, err := l.load(ctx, id)
	if err != nil {
		return Fail[model.Todo](err)
	}
	if todo.State == model.TodoStateDone {
		return Fail[model.Todo](fmt.Errorf("todo %s is already done", id))
	}
	todo.Schedule = s
	todo.State = model.TodoStateScheduled
	if err := l.repo.UpdateTodo(ctx, toRow(todo)); err != nil {
		return Fail[model.Todo](fmt.Errorf("schedule todo: %w", err))
	}
	return OK(todo)
}

func (l *Local) CompleteTodo(ctx context.Context, id string) Envelope[model.Todo] {
	todo, err := l.load(ctx, id)
	if err != nil {
		return Fail[model.Todo](err)
	}
	if todo.State == model.TodoStateDone {
		return OK(todo)
	}
	done := l.now().UTC()
	todo.State = model.TodoStateDone
	todo.CompletedAt = &done
	if err := l.repo.UpdateTodo(ctx, toRow(todo)); err != nil {
		return Fail[model.Todo](fmt.Errorf("complete todo: %w", err))
	}
	return OK(todo)
}

func (l *Local) RecordFocus(ctx context.Context, s model.FocusSession) Envelope[model.FocusSession] {
	if s.ID == "" {
		s.ID = l.newID()
	}
	if err := s.Validate(); err != nil {
		return Fail[model.FocusSession](err)
	}
	err := l.repo.RecordFocusSession(ctx, storage.FocusSession{
		ID:        s.ID,
		TodoID:    s.TodoID,
		Phase:     string(s.Phase),
		StartedAt: s.StartedAt,
		Duration:  s.Duration,
	})
	if err != nil {
		return Fail[model.FocusSession](fmt.Errorf("record focus session: %w", err))
	}
	return OK(s)
}

// CountFocus counts completed work sessions started at or after since.
func (l *Local) CountFocus(ctx context.Context, since time.Time) Envelope[int] {
	n, err := l.repo.CountFocusSessions(ctx, string(model.FocusPhaseWork), since)
	if err != nil {
		return Fail[int](fmt.Errorf("count focus sessions: %w", err))
	}
	return OK(n)
}

func (l *Local) load(ctx context.Context, id string) (model.Todo, error) {
	row, err := l.repo.GetTodo(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return model.Todo{}, fmt.Errorf("todo %s not found", id)
	}
	if err != nil {
		return model.Todo{}, fmt.Errorf("get todo: %w", err)
	}
	return fromRow(row), nil
}

func toRow(t model.Todo) storage.Todo {
	return storage.Todo{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		State:         string(t.State),
		Priority:      string(t.Priority),
		ScheduledDate: t.Schedule.Date,
		ScheduledTime: t.Schedule.Time,
		CreatedAt:     t.CreatedAt,
		CompletedAt:   t.CompletedAt,
	}
}

func fromRow(r storage.Todo) model.Todo {
	return model.Todo{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		State:       model.TodoState(r.State),
		Priority:    model.Priority(r.Priority),
		Schedule:    model.Schedule{Date: r.ScheduledDate, Time: r.ScheduledTime},
		CreatedAt:   r.CreatedAt,
		CompletedAt: r.CompletedAt,
	}
}
