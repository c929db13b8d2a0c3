// Package aggregate derives chart and map views from a flat list of employees.
//
// Every function here is pure: inputs are never modified, outputs depend only
// on the inputs, and absent or malformed fields degrade to defined defaults
// instead of errors.
package aggregate

import (
	"math"

	"github.com/okian/roster/internal/domain/model"
)

// SeriesLimit is the number of leading records charted by the salary view.
const SeriesLimit = 10

// SeriesItem is one bar/point of the salary chart.
type SeriesItem struct {
	Label  string  `json:"label"`
	Salary float64 `json:"salary"`
	ID     string  `json:"id"`
}

// Stats summarizes a salary series.
type Stats struct {
	Avg float64 `json:"avg"`
	Max float64 `json:"max"`
	Min float64 `json:"min"`
}

// BuildSalarySeries takes the first SeriesLimit employees in input order and
// maps each to its first name, salary (0 when absent) and identifier.
func BuildSalarySeries(employees []model.Employee) []SeriesItem {
	n := min(len(employees), SeriesLimit)
	series := make([]SeriesItem, n)
	for i, e := range employees[:n] {
		series[i] = SeriesItem{
			Label:  e.FirstName(),
			Salary: e.SalaryOrZero(),
			ID:     e.ID,
		}
	}
	return series
}

// ComputeStats returns the rounded mean, maximum and minimum salary of the
// series. An empty series yields all zeros.
func ComputeStats(series []SeriesItem) Stats {
	if len(series) == 0 {
		return Stats{}
	}
	sum := 0.0
	hi, lo := series[0].Salary, series[0].Salary
	for _, it := range series {
		sum += it.Salary
		hi = math.Max(hi, it.Salary)
		lo = math.Min(lo, it.Salary)
	}
	return Stats{
		Avg: roundHalfUp(sum / float64(len(series))),
		Max: hi,
		Min: lo,
	}
}

// roundHalfUp rounds to the nearest integer with .5 going towards +Inf.
// Adding 0.5 before flooring would round 0.49999999999999994 up.
func roundHalfUp(x float64) float64 {
	f := math.Floor(x)
	if x-f >= 0.5 {
		return f + 1
	}
	return f
}
