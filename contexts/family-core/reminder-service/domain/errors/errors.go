package errors

import "errors"

var (
	ErrReminderNotFound   = errors.New("reminder not found")
	ErrInvalidReminder    = errors.New("invalid reminder")
	ErrInvalidNagSettings = errors.New("invalid nag settings")
	ErrNagComposeFailed   = errors.New("nag composition failed")
)
