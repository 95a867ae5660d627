package domain

import "errors"

var (
	ErrTransientNetwork    = errors.New("transient network error")
	ErrCredentialExpired   = errors.New("credential expired")
	ErrMalformedDefinition = errors.New("malformed reminder definition")
	ErrNotificationBlocked = errors.New("notification blocked")
	ErrTriggerConflict     = errors.New("trigger already recorded")
	ErrReminderNotFound    = errors.New("reminder not found")
	ErrNoSession           = errors.New("no session credential")
)
