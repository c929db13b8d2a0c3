// Package probe drives a running roster server end to end and checks that
// the views it serves match a local recomputation over the same employees.
package probe

import "time"

// Config holds configuration for a probe run.
type Config struct {
	BaseURL  string        // Base URL of the service
	Username string        // Login username
	Password string        // Login password
	Timeout  time.Duration // HTTP request timeout
	Verbose  bool          // Log every check, not just failures
}

// Report summarizes a probe run.
type Report struct {
	Employees       int
	SeriesChecked   int
	ClustersChecked int
	Mismatches      []string
	StartTime       time.Time
	EndTime         time.Time
	Duration        time.Duration
}

// OK reports whether every check passed.
func (r *Report) OK() bool {
	return len(r.Mismatches) == 0
}
