// Package repository provides the employee roster handed to a session at login.
package repository

import (
	"context"

	"github.com/okian/roster/internal/domain/model"
)

// Directory supplies the employee snapshot taken at login.
type Directory interface {
	// Snapshot returns a copy of the roster in source order.
	Snapshot(ctx context.Context) ([]model.Employee, error)

	// Count returns the number of records in the roster.
	Count(ctx context.Context) int
}
