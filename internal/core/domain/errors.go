package domain

import "errors"

var (
	ErrAnalysisNotFound   = errors.New("analysis not found")
	ErrInvalidState       = errors.New("analysis already finished")
	ErrAnalysisInProgress = errors.New("analysis already in progress")
	ErrProviderFailure    = errors.New("scoring provider failure")
	ErrValidation         = errors.New("validation failed")
	ErrUnknownModule      = errors.New("unknown or inactive module")
	ErrAlertNotFound      = errors.New("alert not found")
	ErrForbidden          = errors.New("access forbidden")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
