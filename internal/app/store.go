package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hylla/cards/internal/domain"
)

// Clock returns the current time.
type Clock func() time.Time

// Store owns every task list and task and validates all mutations.
type Store struct {
	repo  Repository
	idGen IDGenerator
	clock Clock
}

// NewStore constructs a store over repo.
func NewStore(repo Repository, idGen IDGenerator, clock Clock) *Store {
	if idGen == nil {
		idGen = func() string { return "" }
	}
	if clock == nil {
		clock = time.Now
	}
	return &Store{
		repo:  repo,
		idGen: idGen,
		clock: clock,
	}
}

// CreateList appends a new, empty list using the active filter.
func (s *Store) CreateList(ctx context.Context, title string) (domain.TaskList, error) {
	list, err := domain.NewTaskList(s.idGen(), title, s.clock())
	if err != nil {
		return domain.TaskList{}, err
	}
	if err := s.repo.CreateList(ctx, list); err != nil {
		return domain.TaskList{}, fmt.Errorf("create list: %w", err)
	}
	return list, nil
}

// CreateTaskInput holds input values for create task operations.
type CreateTaskInput struct {
	ListID string
	Text   string
	DueAt  *time.Time
}

// CreateTask appends an incomplete task to an existing list.
func (s *Store) CreateTask(ctx context.Context, in CreateTaskInput) (domain.Task, error) {
	listID := strings.TrimSpace(in.ListID)
	if _, err := s.repo.GetList(ctx, listID); err != nil {
		return domain.Task{}, err
	}
	task, err := domain.NewTask(domain.TaskInput{
		ID:     s.idGen(),
		ListID: listID,
		Text:   in.Text,
		DueAt:  in.DueAt,
	}, s.clock())
	if err != nil {
		return domain.Task{}, err
	}
	if err := s.repo.CreateTask(ctx, task); err != nil {
		return domain.Task{}, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// ToggleTask flips completion. Stale ids are ignored.
func (s *Store) ToggleTask(ctx context.Context, listID, taskID string) error {
	task, err := s.lookupTask(ctx, listID, taskID)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	task.Toggle(s.clock())
	return ignoreNotFound(s.repo.UpdateTask(ctx, task))
}

// DeleteTask removes one task. Stale ids are ignored.
func (s *Store) DeleteTask(ctx context.Context, listID, taskID string) error {
	if _, err := s.lookupTask(ctx, listID, taskID); err != nil {
		return ignoreNotFound(err)
	}
	return ignoreNotFound(s.repo.DeleteTask(ctx, taskID))
}

// DeleteList removes one list together with its tasks. Stale ids are ignored.
func (s *Store) DeleteList(ctx context.Context, listID string) error {
	return ignoreNotFound(s.repo.DeleteList(ctx, strings.TrimSpace(listID)))
}

// DeleteAllLists clears the store.
func (s *Store) DeleteAllLists(ctx context.Context) error {
	return s.repo.DeleteAllLists(ctx)
}

// SetFilter changes which tasks a list shows. A missing list is ignored.
func (s *Store) SetFilter(ctx context.Context, listID string, filter domain.Filter) error {
	if !filter.Valid() {
		return domain.ErrInvalidFilter
	}
	list, err := s.repo.GetList(ctx, strings.TrimSpace(listID))
	if err != nil {
		return ignoreNotFound(err)
	}
	if err := list.SetFilter(filter, s.clock()); err != nil {
		return err
	}
	return ignoreNotFound(s.repo.UpdateList(ctx, list))
}

// Lists returns a detached snapshot of every list in display order.
func (s *Store) Lists(ctx context.Context) ([]domain.TaskList, error) {
	lists, err := s.repo.ListLists(ctx)
	if err != nil {
		return nil, fmt.Errorf("list task lists: %w", err)
	}
	out := make([]domain.TaskList, 0, len(lists))
	for _, list := range lists {
		out = append(out, list.Clone())
	}
	return out, nil
}

// GetTask resolves one task by its owning list and id.
func (s *Store) GetTask(ctx context.Context, listID, taskID string) (domain.Task, error) {
	task, err := s.lookupTask(ctx, listID, taskID)
	if err != nil {
		return domain.Task{}, err
	}
	return task.Clone(), nil
}

// lookupTask returns ErrNotFound unless taskID belongs to listID.
func (s *Store) lookupTask(ctx context.Context, listID, taskID string) (domain.Task, error) {
	listID = strings.TrimSpace(listID)
	taskID = strings.TrimSpace(taskID)
	if listID == "" || taskID == "" {
		return domain.Task{}, ErrNotFound
	}
	task, err := s.repo.GetTask(ctx, taskID)
	if err != nil {
		return domain.Task{}, err
	}
	if task.ListID != listID {
		return domain.Task{}, ErrNotFound
	}
	return task, nil
}

// ignoreNotFound maps ErrNotFound to nil; stale references are not failures.
func ignoreNotFound(err error) error {
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}
