// Package repository provides the employee roster handed to a session at login.
package repository

import "github.com/okian/roster/pkg/logger"

// Option applies a configuration option to the MemoryDirectory.
type Option func(*MemoryDirectory)

// WithLogger sets the logger used for load diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(d *MemoryDirectory) {
		if l != nil {
			d.logger = l
		}
	}
}
