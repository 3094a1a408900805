package domain

import (
	"strings"
	"time"
)

// dueLayouts lists accepted due-date input layouts.
var dueLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// ParseDueDate parses modal date input. Blank input yields ErrMissingDueDate.
func ParseDueDate(raw string) (*time.Time, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, ErrMissingDueDate
	}
	for _, layout := range dueLayouts {
		parsed, err := time.Parse(layout, text)
		if err == nil {
			ts := parsed.UTC()
			return &ts, nil
		}
	}
	return nil, ErrInvalidDueDate
}
