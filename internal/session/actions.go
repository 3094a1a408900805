package session

import (
	"github.com/hylla/cards/internal/domain"
	"github.com/hylla/cards/internal/modal"
)

// Action is one user gesture.
type Action interface {
	sessionAction()
}

// OpenAddList opens the add-list modal.
type OpenAddList struct{}

// OpenAddTask opens the add-task modal for a list.
type OpenAddTask struct {
	ListID string
}

// OpenViewTask opens the read-only task modal.
type OpenViewTask struct {
	ListID string
	TaskID string
}

// SetInput replaces the value of one modal field.
type SetInput struct {
	Field modal.Field
	Value string
}

// Save confirms the open modal.
type Save struct{}

// Cancel closes the open modal.
type Cancel struct{}

// ToggleTask flips a task's completion.
type ToggleTask struct {
	ListID string
	TaskID string
}

// DeleteTask removes one task.
type DeleteTask struct {
	ListID string
	TaskID string
}

// DeleteList removes one list and its tasks.
type DeleteList struct {
	ListID string
}

// DeleteAllLists clears every list.
type DeleteAllLists struct{}

// SetFilter changes a list's visible tasks.
type SetFilter struct {
	ListID string
	Filter domain.Filter
}

func (OpenAddList) sessionAction()    {}
func (OpenAddTask) sessionAction()    {}
func (OpenViewTask) sessionAction()   {}
func (SetInput) sessionAction()       {}
func (Save) sessionAction()           {}
func (Cancel) sessionAction()         {}
func (ToggleTask) sessionAction()     {}
func (DeleteTask) sessionAction()     {}
func (DeleteList) sessionAction()     {}
func (DeleteAllLists) sessionAction() {}
func (SetFilter) sessionAction()      {}
