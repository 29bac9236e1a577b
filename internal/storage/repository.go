package storage

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("storage: not found")

type Repository interface {
	CreateTodo(ctx context.Context, in Todo) error
	GetTodo(ctx context.Context, id string) (Todo, error)
	UpdateTodo(ctx context.Context, in Todo) error
	DeleteTodo(ctx context.Context, id string) error
	ListTodos(ctx context.Context, filter TodoListFilter) ([]Todo, error)

	RecordFocusSession(ctx context.Context, in FocusSession) error
	CountFocusSessions(ctx context.Context, phase string, since time.Time) (int, error)
}
