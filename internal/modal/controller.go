package modal

import (
	"context"
	"errors"
	"strings"

	"github.com/hylla/cards/internal/app"
	"github.com/hylla/cards/internal/domain"
)

// Default detail layouts.
const (
	DefaultDetailDateLayout = "Monday, January 2, 2006"
	DefaultDetailTimeLayout = "03:04 PM"
)

// Placeholder text for a task without a due date or time.
const (
	NoDueDate = "No due date"
	NoDueTime = "No time specified"
)

// Validation messages raised on a rejected save.
const (
	MsgEmptyTitle  = "Task list title cannot be empty."
	MsgEmptyText   = "Task description cannot be empty."
	MsgEmptyDate   = "Task date cannot be empty."
	MsgInvalidDate = "Task date must be YYYY-MM-DD or YYYY-MM-DDTHH:MM."
)

// Store is the subset of the task store the modal needs.
type Store interface {
	CreateList(context.Context, string) (domain.TaskList, error)
	CreateTask(context.Context, app.CreateTaskInput) (domain.Task, error)
	GetTask(context.Context, string, string) (domain.Task, error)
}

// Outcome reports what Save did.
type Outcome int

// OutcomeNone and related constants enumerate save outcomes.
const (
	// OutcomeNone means nothing to save in the current state.
	OutcomeNone Outcome = iota
	// OutcomeRejected means input failed validation and the modal stayed open.
	OutcomeRejected
	// OutcomeCommitted means the store accepted the input and the modal closed.
	OutcomeCommitted
	// OutcomeDiscarded means the target list vanished and the modal closed.
	OutcomeDiscarded
)

// Options configures detail formatting.
type Options struct {
	DetailDateLayout string
	DetailTimeLayout string
}

// Controller is the modal state machine. It starts Closed.
type Controller struct {
	store    Store
	notifier app.Notifier
	opts     Options

	state  State
	text   string
	due    string
	detail Detail
}

// New constructs a closed controller.
func New(store Store, notifier app.Notifier, opts Options) *Controller {
	if strings.TrimSpace(opts.DetailDateLayout) == "" {
		opts.DetailDateLayout = DefaultDetailDateLayout
	}
	if strings.TrimSpace(opts.DetailTimeLayout) == "" {
		opts.DetailTimeLayout = DefaultDetailTimeLayout
	}
	return &Controller{
		store:    store,
		notifier: notifier,
		opts:     opts,
		state:    Closed{},
	}
}

// State returns the active state.
func (c *Controller) State() State {
	return c.state
}

// Text returns the held text input.
func (c *Controller) Text() string {
	return c.text
}

// DueDate returns the held due-date input.
func (c *Controller) DueDate() string {
	return c.due
}

// OpenAddList replaces the current state with AddingList.
func (c *Controller) OpenAddList() {
	c.reset(AddingList{})
}

// OpenAddTask replaces the current state with AddingTask for listID.
func (c *Controller) OpenAddTask(listID string) {
	c.reset(AddingTask{ListID: strings.TrimSpace(listID)})
}

// OpenViewTask replaces the current state with ViewingTask. A stale reference
// still opens the modal with a placeholder detail.
func (c *Controller) OpenViewTask(ctx context.Context, listID, taskID string) error {
	c.reset(ViewingTask{ListID: strings.TrimSpace(listID), TaskID: strings.TrimSpace(taskID)})
	task, err := c.store.GetTask(ctx, listID, taskID)
	switch {
	case errors.Is(err, app.ErrNotFound):
		return nil
	case err != nil:
		return err
	}
	c.detail = c.describe(task)
	return nil
}

// SetText updates the held text input. Ignored unless an input flow is open.
func (c *Controller) SetText(value string) {
	if c.accepts(FieldText) {
		c.text = value
	}
}

// SetDueDate updates the held due-date input. Ignored unless adding a task.
func (c *Controller) SetDueDate(value string) {
	if c.accepts(FieldDueDate) {
		c.due = value
	}
}

// Save validates held input and commits it. Validation failures notify and
// keep the modal open with input intact.
func (c *Controller) Save(ctx context.Context) (Outcome, error) {
	switch state := c.state.(type) {
	case AddingList:
		if strings.TrimSpace(c.text) == "" {
			return c.reject(MsgEmptyTitle), nil
		}
		if _, err := c.store.CreateList(ctx, c.text); err != nil {
			return c.fail(err)
		}
		c.Cancel()
		return OutcomeCommitted, nil
	case AddingTask:
		if strings.TrimSpace(c.text) == "" {
			return c.reject(MsgEmptyText), nil
		}
		due, err := domain.ParseDueDate(c.due)
		if err != nil {
			return c.fail(err)
		}
		_, err = c.store.CreateTask(ctx, app.CreateTaskInput{
			ListID: state.ListID,
			Text:   c.text,
			DueAt:  due,
		})
		if errors.Is(err, app.ErrNotFound) {
			c.Cancel()
			return OutcomeDiscarded, nil
		}
		if err != nil {
			return c.fail(err)
		}
		c.Cancel()
		return OutcomeCommitted, nil
	default:
		return OutcomeNone, nil
	}
}

// Cancel closes the modal and discards held input. Idempotent.
func (c *Controller) Cancel() {
	c.reset(Closed{})
}

// Layout describes the current state for a view layer.
func (c *Controller) Layout() Layout {
	switch c.state.(type) {
	case AddingList:
		return Layout{
			Open:            true,
			Title:           "Add New Task List",
			TextPlaceholder: "List title",
			ShowText:        true,
			ShowSave:        true,
			CancelLabel:     "Cancel",
		}
	case AddingTask:
		return Layout{
			Open:            true,
			Title:           "Add New Task",
			TextPlaceholder: "Task description",
			DatePlaceholder: "YYYY-MM-DD or YYYY-MM-DDTHH:MM",
			ShowText:        true,
			ShowDate:        true,
			ShowSave:        true,
			CancelLabel:     "Cancel",
		}
	case ViewingTask:
		detail := c.detail
		return Layout{
			Open:        true,
			Title:       "Task Details",
			CancelLabel: "Close",
			Detail:      &detail,
		}
	default:
		return Layout{}
	}
}

func (c *Controller) reset(state State) {
	c.state = state
	c.text = ""
	c.due = ""
	c.detail = Detail{Date: NoDueDate, Time: NoDueTime}
}

func (c *Controller) accepts(field Field) bool {
	switch c.state.(type) {
	case AddingList:
		return field == FieldText
	case AddingTask:
		return true
	default:
		return false
	}
}

func (c *Controller) describe(task domain.Task) Detail {
	out := Detail{
		Found:     true,
		Text:      task.Text,
		Completed: task.Completed,
		Date:      NoDueDate,
		Time:      NoDueTime,
	}
	if task.DueAt == nil {
		return out
	}
	due := *task.DueAt
	out.Date = due.Format(c.opts.DetailDateLayout)
	if due.Hour() != 0 || due.Minute() != 0 {
		out.Time = due.Format(c.opts.DetailTimeLayout)
	}
	return out
}

// reject notifies a validation message and keeps the modal open.
func (c *Controller) reject(message string) Outcome {
	if c.notifier != nil {
		c.notifier.Notify(app.Notification{Severity: app.SeverityError, Message: message})
	}
	return OutcomeRejected
}

// fail maps validation errors to a rejection and passes anything else through.
func (c *Controller) fail(err error) (Outcome, error) {
	if msg, ok := validationMessage(err); ok {
		return c.reject(msg), nil
	}
	return OutcomeNone, err
}

func validationMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, domain.ErrInvalidTitle):
		return MsgEmptyTitle, true
	case errors.Is(err, domain.ErrInvalidText):
		return MsgEmptyText, true
	case errors.Is(err, domain.ErrMissingDueDate):
		return MsgEmptyDate, true
	case errors.Is(err, domain.ErrInvalidDueDate):
		return MsgInvalidDate, true
	case errors.Is(err, domain.ErrValidation):
		return err.Error(), true
	default:
		return "", false
	}
}
