package storage

import "time"

type Todo struct {
	ID            string
	Title         string
	Description   string
	State         string
	Priority      string
	ScheduledDate string
	ScheduledTime string
	CreatedAt     time.Time
	CompletedAt   *time.Time
}

type FocusSession struct {
	ID        string
	TodoID    string
	Phase     string
	StartedAt time.Time
	Duration  time.Duration
}

type TodoListFilter struct {
	State string
	// DateFrom and DateTo bound scheduled_date inclusively (YYYY-MM-DD).
	DateFrom string
	DateTo   string
	Limit    int
	Offset   int
}
