package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrPhotoTooLarge     = errors.New("photo too large")
	ErrInvalidPhoto      = errors.New("invalid photo")
	ErrNoPhoto           = errors.New("no photo captured")
	ErrInvalidChartType  = errors.New("invalid chart type")
	ErrRosterUnavailable = errors.New("roster unavailable")
)
