package tui

import "time"

// Option configures a Model.
type Option func(*Model)

// ConfirmConfig selects destructive actions that need a second keypress.
type ConfirmConfig struct {
	DeleteAll  bool
	DeleteList bool
}

// WithConfirm sets confirmation behaviour.
func WithConfirm(cfg ConfirmConfig) Option {
	return func(m *Model) {
		m.confirm = cfg
	}
}

// WithToastDuration sets how long notifications stay visible. Zero keeps each
// one until the next replaces it.
func WithToastDuration(d time.Duration) Option {
	return func(m *Model) {
		if d >= 0 {
			m.toastDuration = d
		}
	}
}

// WithClipboard replaces the clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(m *Model) {
		if write != nil {
			m.writeClipboard = write
		}
	}
}
