package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/hylla/cards/internal/app"
	"github.com/hylla/cards/internal/config"
	"github.com/hylla/cards/internal/domain"
	"github.com/hylla/cards/internal/modal"
	"github.com/hylla/cards/internal/session"
	"github.com/hylla/cards/internal/view"
)

// runDemo walks the groceries scenario and prints the board under each filter.
func runDemo(ctx context.Context, cfg config.Config, stdout io.Writer) error {
	notices := app.NotifierFunc(func(n app.Notification) {
		_, _ = fmt.Fprintf(stdout, "notice (%s): %s\n", n.Severity, n.Message)
	})
	sess, closeRepo, err := newSession(cfg, app.SequenceIDs("demo-"), notices)
	if err != nil {
		return err
	}
	defer func() {
		_ = closeRepo()
	}()

	res, err := dispatchAll(ctx, sess,
		session.OpenAddList{},
		session.SetInput{Field: modal.FieldText, Value: "Groceries"},
		session.Save{},
	)
	if err != nil {
		return err
	}
	if len(res.Board.Lists) == 0 {
		return fmt.Errorf("demo list was not created")
	}
	listID := res.Board.Lists[0].ID

	for _, task := range []struct{ text, due string }{
		{"Buy milk", "2025-01-01"},
		{"Buy eggs", "2025-01-02T09:30"},
	} {
		if _, err := dispatchAll(ctx, sess,
			session.OpenAddTask{ListID: listID},
			session.SetInput{Field: modal.FieldText, Value: task.text},
			session.SetInput{Field: modal.FieldDueDate, Value: task.due},
			session.Save{},
		); err != nil {
			return err
		}
	}

	res, err = dispatchAll(ctx, sess, session.SetFilter{ListID: listID, Filter: domain.FilterAll})
	if err != nil {
		return err
	}
	for _, row := range res.Board.Lists[0].Rows {
		if row.Text == "Buy eggs" {
			if _, err := dispatchAll(ctx, sess, session.ToggleTask{ListID: row.ListID, TaskID: row.TaskID}); err != nil {
				return err
			}
		}
	}

	for _, filter := range domain.Filters() {
		res, err := dispatchAll(ctx, sess, session.SetFilter{ListID: listID, Filter: filter})
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(stdout, "== filter: %s ==\n", filter)
		printBoard(stdout, res.Board)
	}
	return nil
}

func dispatchAll(ctx context.Context, sess *session.Session, actions ...session.Action) (session.Result, error) {
	var res session.Result
	for _, action := range actions {
		var err error
		res, err = sess.Dispatch(ctx, action)
		if err != nil {
			return res, fmt.Errorf("dispatch %T: %w", action, err)
		}
	}
	return res, nil
}

// printBoard writes a plain-text rendering of board.
func printBoard(w io.Writer, board view.Board) {
	if board.Empty {
		_, _ = fmt.Fprintln(w, board.EmptyMessage)
		return
	}
	for _, list := range board.Lists {
		labels := make([]string, 0, len(list.FilterButtons))
		for _, button := range list.FilterButtons {
			if button.Active {
				labels = append(labels, "["+button.Label+"]")
				continue
			}
			labels = append(labels, button.Label)
		}
		_, _ = fmt.Fprintf(w, "%s  %s\n", list.Title, strings.Join(labels, " "))
		if len(list.Rows) == 0 {
			_, _ = fmt.Fprintf(w, "  %s\n", list.Empty)
			continue
		}
		for _, row := range list.Rows {
			check := "[ ]"
			if row.Completed {
				check = "[x]"
			}
			line := "  " + check + " " + row.Text
			if row.DueLabel != "" {
				line += " (" + row.DueLabel + ")"
			}
			_, _ = fmt.Fprintln(w, line)
		}
	}
}
