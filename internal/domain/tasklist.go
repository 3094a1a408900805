package domain

import (
	"strings"
	"time"
)

// TaskList is a named, ordered, filterable collection of tasks.
type TaskList struct {
	ID        string
	Title     string
	Filter    Filter
	Tasks     []Task
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTaskList constructs an empty list with the default filter.
func NewTaskList(id, title string, now time.Time) (TaskList, error) {
	id = strings.TrimSpace(id)
	title = strings.TrimSpace(title)
	if id == "" {
		return TaskList{}, ErrInvalidID
	}
	if title == "" {
		return TaskList{}, ErrInvalidTitle
	}
	return TaskList{
		ID:        id,
		Title:     title,
		Filter:    DefaultFilter,
		Tasks:     []Task{},
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}, nil
}

// SetFilter changes the visible-task filter.
func (l *TaskList) SetFilter(filter Filter, now time.Time) error {
	if !filter.Valid() {
		return ErrInvalidFilter
	}
	l.Filter = filter
	l.UpdatedAt = now.UTC()
	return nil
}

// TaskByID returns the task with id, if the list owns one.
func (l TaskList) TaskByID(id string) (Task, bool) {
	for _, task := range l.Tasks {
		if task.ID == id {
			return task, true
		}
	}
	return Task{}, false
}

// VisibleTasks returns tasks matching the list filter in insertion order.
func (l TaskList) VisibleTasks() []Task {
	out := make([]Task, 0, len(l.Tasks))
	for _, task := range l.Tasks {
		if l.Filter.Matches(task) {
			out = append(out, task)
		}
	}
	return out
}

// Clone returns a deep copy of l.
func (l TaskList) Clone() TaskList {
	tasks := make([]Task, 0, len(l.Tasks))
	for _, task := range l.Tasks {
		tasks = append(tasks, task.Clone())
	}
	l.Tasks = tasks
	return l
}
