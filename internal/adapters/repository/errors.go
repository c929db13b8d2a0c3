package repository

import "errors"

// Sentinel kinds for roster source errors.
var (
	ErrLoadRoster    = errors.New("load roster failed")
	ErrInvalidRoster = errors.New("invalid roster document")
)
