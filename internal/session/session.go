// Package session maps user gestures to store and modal operations and
// re-projects the board after each one.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/hylla/cards/internal/app"
	"github.com/hylla/cards/internal/domain"
	"github.com/hylla/cards/internal/modal"
	"github.com/hylla/cards/internal/view"
)

// Success messages raised by destructive actions.
const (
	MsgListDeleted     = "Task list deleted successfully!"
	MsgAllListsDeleted = "All task lists deleted!"
	MsgInvalidFilter   = "Filter must be all, active, or completed."
)

// Store is the task store surface a session drives.
type Store interface {
	modal.Store
	ToggleTask(context.Context, string, string) error
	DeleteTask(context.Context, string, string) error
	DeleteList(context.Context, string) error
	DeleteAllLists(context.Context) error
	SetFilter(context.Context, string, domain.Filter) error
	Lists(context.Context) ([]domain.TaskList, error)
}

// Result is the state after one dispatched action.
type Result struct {
	Board         view.Board
	Modal         modal.Layout
	State         modal.State
	Notifications []app.Notification
}

// Option configures a Session.
type Option func(*Session)

// WithViewOptions sets board formatting.
func WithViewOptions(opts view.Options) Option {
	return func(s *Session) {
		s.viewOpts = opts
	}
}

// WithModalOptions sets task detail formatting.
func WithModalOptions(opts modal.Options) Option {
	return func(s *Session) {
		s.modalOpts = opts
	}
}

// Session serializes gestures against one store. It is not safe for concurrent use.
type Session struct {
	store     Store
	notifier  app.Notifier
	modal     *modal.Controller
	viewOpts  view.Options
	modalOpts modal.Options
	pending   []app.Notification
}

// New constructs a session. notifier may be nil.
func New(store Store, notifier app.Notifier, opts ...Option) *Session {
	s := &Session{store: store}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.notifier = app.Notifiers(app.NotifierFunc(s.record), notifier)
	s.modal = modal.New(store, s.notifier, s.modalOpts)
	return s
}

// Modal exposes the modal controller.
func (s *Session) Modal() *modal.Controller {
	return s.modal
}

// Board projects the current store without dispatching anything.
func (s *Session) Board(ctx context.Context) (view.Board, error) {
	lists, err := s.store.Lists(ctx)
	if err != nil {
		return view.Board{}, err
	}
	return view.Project(lists, "", s.viewOpts), nil
}

// Dispatch runs one action. Validation failures are notified and reported
// through Result rather than as errors. Stale ids are silent no-ops.
func (s *Session) Dispatch(ctx context.Context, action Action) (Result, error) {
	s.pending = nil
	if err := s.apply(ctx, action); err != nil {
		return s.result(ctx, err)
	}
	return s.result(ctx, nil)
}

func (s *Session) apply(ctx context.Context, action Action) error {
	switch a := action.(type) {
	case OpenAddList:
		s.modal.OpenAddList()
	case OpenAddTask:
		s.modal.OpenAddTask(a.ListID)
	case OpenViewTask:
		return s.modal.OpenViewTask(ctx, a.ListID, a.TaskID)
	case SetInput:
		switch a.Field {
		case modal.FieldDueDate:
			s.modal.SetDueDate(a.Value)
		default:
			s.modal.SetText(a.Value)
		}
	case Save:
		_, err := s.modal.Save(ctx)
		return err
	case Cancel:
		s.modal.Cancel()
	case ToggleTask:
		return s.store.ToggleTask(ctx, a.ListID, a.TaskID)
	case DeleteTask:
		return s.store.DeleteTask(ctx, a.ListID, a.TaskID)
	case DeleteList:
		return s.deleteList(ctx, a.ListID)
	case DeleteAllLists:
		if err := s.store.DeleteAllLists(ctx); err != nil {
			return err
		}
		s.notify(app.SeveritySuccess, MsgAllListsDeleted)
	case SetFilter:
		err := s.store.SetFilter(ctx, a.ListID, a.Filter)
		if errors.Is(err, domain.ErrInvalidFilter) {
			s.notify(app.SeverityError, MsgInvalidFilter)
			return nil
		}
		return err
	case nil:
		return nil
	default:
		return fmt.Errorf("unsupported action %T", action)
	}
	return nil
}

// deleteList notifies only when the list existed.
func (s *Session) deleteList(ctx context.Context, listID string) error {
	lists, err := s.store.Lists(ctx)
	if err != nil {
		return err
	}
	found := false
	for _, list := range lists {
		if list.ID == listID {
			found = true
			break
		}
	}
	if !found {
		return nil
	}
	if err := s.store.DeleteList(ctx, listID); err != nil {
		return err
	}
	s.notify(app.SeveritySuccess, MsgListDeleted)
	return nil
}

func (s *Session) result(ctx context.Context, actionErr error) (Result, error) {
	out := Result{
		Modal:         s.modal.Layout(),
		State:         s.modal.State(),
		Notifications: append([]app.Notification(nil), s.pending...),
	}
	if errors.Is(actionErr, app.ErrNotFound) {
		actionErr = nil
	}
	board, err := s.Board(ctx)
	if err != nil {
		return out, errors.Join(actionErr, err)
	}
	out.Board = board
	return out, actionErr
}

func (s *Session) notify(severity app.Severity, message string) {
	s.notifier.Notify(app.Notification{Severity: severity, Message: message})
}

func (s *Session) record(n app.Notification) {
	s.pending = append(s.pending, n)
}
