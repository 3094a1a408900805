package app

import (
	"context"

	"github.com/hylla/cards/internal/domain"
)

// Repository stores task lists and their tasks in insertion order.
type Repository interface {
	CreateList(context.Context, domain.TaskList) error
	UpdateList(context.Context, domain.TaskList) error
	GetList(context.Context, string) (domain.TaskList, error)
	ListLists(context.Context) ([]domain.TaskList, error)
	DeleteList(context.Context, string) error
	DeleteAllLists(context.Context) error

	CreateTask(context.Context, domain.Task) error
	UpdateTask(context.Context, domain.Task) error
	GetTask(context.Context, string) (domain.Task, error)
	DeleteTask(context.Context, string) error
}
