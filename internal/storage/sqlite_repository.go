package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

// OpenSQLite opens the database at path and brings its schema up to date.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", DSN(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// DSN turns a database path into a go-sqlite3 data source name with foreign
// keys enforced on every pooled connection.
func DSN(path string) string {
	return path + "?_foreign_keys=on"
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) CreateTodo(ctx context.Context, in Todo) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO todos (id, title, description, state, priority, scheduled_date, scheduled_time, created_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.Title, in.Description, in.State, in.Priority,
		in.ScheduledDate, in.ScheduledTime, mustTime(in.CreatedAt), nullTime(in.CompletedAt),
	)
	return err
}

func (r *SQLiteRepository) GetTodo(ctx context.Context, id string) (Todo, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, description, state, priority, scheduled_date, scheduled_time, created_at, completed_at
		FROM todos WHERE id = ?`, id)
	todo, err := scanTodo(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Todo{}, ErrNotFound
		}
		return Todo{}, err
	}
	return todo, nil
}

func (r *SQLiteRepository) UpdateTodo(ctx context.Context, in Todo) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE todos
		SET title = ?, description = ?, state = ?, priority = ?, scheduled_date = ?, scheduled_time = ?, completed_at = ?
		WHERE id = ?`,
		in.Title, in.Description, in.State, in.Priority,
		in.ScheduledDate, in.ScheduledTime, nullTime(in.CompletedAt), in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteTodo(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListTodos(ctx context.Context, filter TodoListFilter) ([]Todo, error) {
	query := `SELECT id, title, description, state, priority, scheduled_date, scheduled_time, created_at, completed_at FROM todos`
	clauses := make([]string, 0, 3)
	args := make([]any, 0, 5)
	if filter.State != "" {
		clauses = append(clauses, "state = ?")
		args = append(args, filter.State)
	}
	if filter.DateFrom != "" {
		clauses = append(clauses, "scheduled_date >= ?")
		args = append(args, filter.DateFrom)
	}
	if filter.DateTo != "" {
		clauses = append(clauses, "scheduled_date != '' AND scheduled_date <= ?")
		args = append(args, filter.DateTo)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY created_at ASC, id ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Todo, 0)
	for rows.Next() {
		todo, scanErr := scanTodo(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, todo)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) RecordFocusSession(ctx context.Context, in FocusSession) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO focus_sessions (id, todo_id, phase, started_at, duration_seconds)
		VALUES (?, ?, ?, ?, ?)`,
		in.ID, nullString(in.TodoID), in.Phase, mustTime(in.StartedAt), int64(in.Duration/time.Second),
	)
	return err
}

func (r *SQLiteRepository) CountFocusSessions(ctx context.Context, phase string, since time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM focus_sessions WHERE started_at >= ?`
	args := []any{mustTime(since)}
	if phase != "" {
		query += ` AND phase = ?`
		args = append(args, phase)
	}
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func nullTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return mustTime(*v)
}

func nullString(v string) any {
	if v == "" {
		return nil
	}
	return v
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseNullableTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	tm, err := time.Parse(sqliteTimeLayout, v.String)
	if err != nil {
		return nil, err
	}
	return &tm, nil
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func applyPagination(args *[]any, limit, offset int) string {
	sql := ""
	if limit > 0 {
		sql += " LIMIT ?"
		*args = append(*args, limit)
	}
	if offset > 0 {
		if limit <= 0 {
			sql += " LIMIT -1"
		}
		sql += " OFFSET ?"
		*args = append(*args, offset)
	}
	return sql
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTodo(s scanner) (Todo, error) {
	var out Todo
	var created string
	var completed sql.NullString
	if err := s.Scan(&out.ID, &out.Title, &out.Description, &out.State, &out.Priority,
		&out.ScheduledDate, &out.ScheduledTime, &created, &completed); err != nil {
		return Todo{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Todo{}, err
	}
	completedAt, err := parseNullableTime(completed)
	if err != nil {
		return Todo{}, err
	}
	out.CreatedAt = createdAt
	out.CompletedAt = completedAt
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
