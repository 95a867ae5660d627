package notifycenter

import "errors"

var (
	ErrNotificationNotFound    = errors.New("notification not found")
	ErrInvalidNotificationData = errors.New("invalid notification data")
	ErrInvalidEvent            = errors.New("invalid event")
)
