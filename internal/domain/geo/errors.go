package geo

import "errors"

// Sentinel kinds for geo table errors.
var (
	ErrLoadTable    = errors.New("load geo table failed")
	ErrInvalidTable = errors.New("invalid geo table")
)
