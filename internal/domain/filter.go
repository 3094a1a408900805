package domain

import (
	"slices"
	"strings"
)

// Filter selects which tasks of a list are visible.
type Filter string

// FilterAll and related constants enumerate supported filters.
const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// DefaultFilter is applied to newly created lists.
const DefaultFilter = FilterActive

// filters stores supported filters in display order.
var filters = []Filter{FilterAll, FilterActive, FilterCompleted}

// Filters returns supported filters in display order.
func Filters() []Filter {
	return slices.Clone(filters)
}

// ParseFilter normalizes raw input into a supported filter.
func ParseFilter(raw string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(raw)))
	if !f.Valid() {
		return "", ErrInvalidFilter
	}
	return f, nil
}

// Valid reports whether f is one of the supported filters.
func (f Filter) Valid() bool {
	return slices.Contains(filters, f)
}

// Matches reports whether task is visible under f.
func (f Filter) Matches(task Task) bool {
	switch f {
	case FilterActive:
		return !task.Completed
	case FilterCompleted:
		return task.Completed
	default:
		return true
	}
}

// Next returns the filter following f in display order, wrapping around.
func (f Filter) Next() Filter {
	idx := slices.Index(filters, f)
	if idx < 0 {
		return DefaultFilter
	}
	return filters[(idx+1)%len(filters)]
}
