package services

import "errors"

var (
	ErrNoPendingReorder  = errors.New("no pending reorder for route")
	ErrReorderInProgress = errors.New("a reorder is already in progress for route")
	ErrUnknownStop       = errors.New("stop is not part of route")
	ErrInvalidStatus     = errors.New("status is not editable")
	ErrInvalidTime       = errors.New("time must be HH:MM in 24-hour format")
	ErrInvalidDuration   = errors.New("duration must not be negative")
)
