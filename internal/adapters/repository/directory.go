package repository

import (
	"context"
	_ "embed"
	"os"
	"time"

	"github.com/okian/roster/internal/domain/model"
	"github.com/okian/roster/pkg/logger"
	"github.com/okian/roster/pkg/metrics"
	"github.com/rotisserie/eris"
)

//go:embed data/employees.yaml
var sampleRoster []byte

// MemoryDirectory serves a roster decoded once at construction.
// It is read-only afterwards and safe for concurrent use.
type MemoryDirectory struct {
	employees []model.Employee
	logger    logger.Logger
}

// NewMemoryDirectory wraps an in-memory roster. The slice is copied.
func NewMemoryDirectory(employees []model.Employee, opts ...Option) *MemoryDirectory {
	d := &MemoryDirectory{employees: model.CloneAll(employees)}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// LoadFile decodes a YAML or JSON roster from path.
func LoadFile(ctx context.Context, path string, opts ...Option) (*MemoryDirectory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(ErrLoadRoster, "read %s: %v", path, err)
	}
	return load(ctx, path, data, opts...)
}

// Sample returns the roster embedded in the binary.
func Sample(ctx context.Context, opts ...Option) (*MemoryDirectory, error) {
	return load(ctx, "embedded sample", sampleRoster, opts...)
}

func load(ctx context.Context, source string, data []byte, opts ...Option) (*MemoryDirectory, error) {
	start := time.Now()
	employees, err := Decode(data)
	if err != nil {
		metrics.RecordErrorByComponent("repository", "decode")
		return nil, eris.Wrapf(err, "roster %s", source)
	}
	d := NewMemoryDirectory(employees, opts...)
	metrics.UpdateRosterSize(len(employees))
	metrics.RecordRosterLoadLatency(float64(time.Since(start).Milliseconds()))
	if d.logger != nil {
		d.logger.Info(ctx, "roster loaded",
			logger.String("source", source),
			logger.Int("employees", len(employees)),
		)
	}
	return d, nil
}

func (d *MemoryDirectory) Snapshot(_ context.Context) ([]model.Employee, error) {
	return model.CloneAll(d.employees), nil
}

func (d *MemoryDirectory) Count(_ context.Context) int {
	return len(d.employees)
}
