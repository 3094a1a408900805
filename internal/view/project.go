// Package view projects task lists into display-ready rows.
package view

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/hylla/cards/internal/domain"
)

// DefaultDateLayout is the short due-date form used when Options leaves it blank.
const DefaultDateLayout = "Jan 2, 2006"

// EmptyBoardMessage is shown when no list exists.
const EmptyBoardMessage = "No task lists yet. Create one to get started."

// EmptyListMessage is shown in place of rows when a list's filter hides everything.
const EmptyListMessage = "No tasks to display for this filter."

// Options tunes how dates and labels are formatted.
type Options struct {
	DateLayout string
	Language   string
}

// Board is the full projection of the store.
type Board struct {
	Lists         []ListView
	Empty         bool
	EmptyMessage  string
	ShowDeleteAll bool
}

// ListView is one card.
type ListView struct {
	ID            string
	Title         string
	Filter        domain.Filter
	FilterButtons []FilterButton
	Rows          []Row
	// Empty holds the placeholder text when Rows is empty.
	Empty string
}

// FilterButton describes one filter toggle on a card.
type FilterButton struct {
	Filter domain.Filter
	Label  string
	Active bool
}

// Row is one visible task.
type Row struct {
	ListID    string
	TaskID    string
	Text      string
	Completed bool
	DueLabel  string
}

// Project maps lists to a Board. A non-empty forListID restricts the output to
// that list. Project never mutates lists.
func Project(lists []domain.TaskList, forListID string, opts Options) Board {
	if len(lists) == 0 {
		return Board{Empty: true, EmptyMessage: EmptyBoardMessage}
	}
	opts = opts.withDefaults()
	caser := cases.Title(languageTag(opts.Language))
	forListID = strings.TrimSpace(forListID)

	board := Board{ShowDeleteAll: true, Lists: make([]ListView, 0, len(lists))}
	for _, list := range lists {
		if forListID != "" && list.ID != forListID {
			continue
		}
		board.Lists = append(board.Lists, projectList(list, caser, opts))
	}
	return board
}

// projectList builds one card.
func projectList(list domain.TaskList, caser cases.Caser, opts Options) ListView {
	filter := list.Filter
	if !filter.Valid() {
		filter = domain.DefaultFilter
	}
	out := ListView{
		ID:     list.ID,
		Title:  list.Title,
		Filter: filter,
		Rows:   []Row{},
	}
	for _, f := range domain.Filters() {
		out.FilterButtons = append(out.FilterButtons, FilterButton{
			Filter: f,
			Label:  caser.String(string(f)),
			Active: f == filter,
		})
	}
	for _, task := range list.Tasks {
		if !filter.Matches(task) {
			continue
		}
		out.Rows = append(out.Rows, Row{
			ListID:    list.ID,
			TaskID:    task.ID,
			Text:      task.Text,
			Completed: task.Completed,
			DueLabel:  DueLabel(task, opts.DateLayout),
		})
	}
	if len(out.Rows) == 0 {
		out.Empty = EmptyListMessage
	}
	return out
}

// DueLabel formats a task's due date, or returns "" when none is set.
func DueLabel(task domain.Task, layout string) string {
	if task.DueAt == nil {
		return ""
	}
	if strings.TrimSpace(layout) == "" {
		layout = DefaultDateLayout
	}
	return task.DueAt.Format(layout)
}

// withDefaults fills blank options.
func (o Options) withDefaults() Options {
	if strings.TrimSpace(o.DateLayout) == "" {
		o.DateLayout = DefaultDateLayout
	}
	return o
}

// languageTag parses raw, falling back to English.
func languageTag(raw string) language.Tag {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return language.English
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return language.English
	}
	return tag
}
