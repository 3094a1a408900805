package domain

import (
	"strings"
	"time"
)

// Task is one to-do item owned by a task list.
type Task struct {
	ID        string
	ListID    string
	Text      string
	Completed bool
	DueAt     *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TaskInput holds write-time values for NewTask.
type TaskInput struct {
	ID     string
	ListID string
	Text   string
	DueAt  *time.Time
}

// NewTask validates input and constructs an incomplete task.
func NewTask(in TaskInput, now time.Time) (Task, error) {
	in.ID = strings.TrimSpace(in.ID)
	in.ListID = strings.TrimSpace(in.ListID)
	in.Text = strings.TrimSpace(in.Text)

	if in.ID == "" || in.ListID == "" {
		return Task{}, ErrInvalidID
	}
	if in.Text == "" {
		return Task{}, ErrInvalidText
	}
	if in.DueAt == nil {
		return Task{}, ErrMissingDueDate
	}

	return Task{
		ID:        in.ID,
		ListID:    in.ListID,
		Text:      in.Text,
		DueAt:     normalizeDueAt(in.DueAt),
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}, nil
}

// Toggle flips the completion flag.
func (t *Task) Toggle(now time.Time) {
	t.Completed = !t.Completed
	t.UpdatedAt = now.UTC()
}

// Clone returns a copy that shares no pointers with t.
func (t Task) Clone() Task {
	t.DueAt = normalizeDueAt(t.DueAt)
	return t
}

// normalizeDueAt copies dueAt into UTC at second precision.
func normalizeDueAt(dueAt *time.Time) *time.Time {
	if dueAt == nil {
		return nil
	}
	ts := dueAt.UTC().Truncate(time.Second)
	return &ts
}
