package alerting

import "errors"

// Service errors
var (
	ErrAlertNotFound     = errors.New("alert not found")
	ErrInvalidStatus     = errors.New("invalid alert status")
	ErrInvalidTransition = errors.New("invalid alert status transition")
)
