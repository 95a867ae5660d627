package reminderstore

import "errors"

var (
	ErrUserExists           = errors.New("user already exists")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidRefreshToken  = errors.New("invalid refresh token")
	ErrInvalidAccessToken   = errors.New("invalid access token")
	ErrRegistrationDisabled = errors.New("registration is disabled")
	ErrInvalidWindow        = errors.New("invalid fetch window")
	ErrIDMismatch           = errors.New("reminder id does not match path")
)
