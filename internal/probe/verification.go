package probe

import (
	"fmt"
	"math"

	"github.com/okian/roster/internal/domain/aggregate"
	"github.com/okian/roster/internal/domain/geo"
	"github.com/okian/roster/internal/domain/model"
	"github.com/okian/roster/internal/domain/types"
)

const coordTolerance = 1e-9

// toModel turns fetched summaries back into records. Display sentinels become
// absent values so the local aggregation sees what the server saw.
func toModel(list []types.EmployeeSummary) []model.Employee {
	out := make([]model.Employee, len(list))
	for i, s := range list {
		out[i] = model.Employee{
			ID:          absent(s.ID),
			Name:        absent(s.Name),
			Designation: absent(s.Designation),
			City:        absent(s.City),
			Salary:      model.Float(s.SalaryValue),
		}
	}
	return out
}

func absent(s string) string {
	if s == model.NotAvailable {
		return ""
	}
	return s
}

// verifySalary compares a served salary chart against a local recomputation.
func verifySalary(employees []model.Employee, got types.SalaryChart, report *Report) {
	want := aggregate.BuildSalarySeries(employees)
	stats := aggregate.ComputeStats(want)

	if len(got.Series) != len(want) {
		report.Mismatches = append(report.Mismatches,
			fmt.Sprintf("salary: series length %d, want %d", len(got.Series), len(want)))
		return
	}
	for i, w := range want {
		g := got.Series[i]
		if g.Label != w.Label || g.Salary != w.Salary || g.ID != w.ID {
			report.Mismatches = append(report.Mismatches,
				fmt.Sprintf("salary[%d]: got %+v, want %+v", i, g, w))
		}
		report.SeriesChecked++
	}
	if got.Stats.Avg != stats.Avg || got.Stats.Max != stats.Max || got.Stats.Min != stats.Min {
		report.Mismatches = append(report.Mismatches,
			fmt.Sprintf("salary stats: got %+v, want %+v", got.Stats, stats))
	}
}

// verifyMap compares a served city map against a local recomputation using table.
func verifyMap(employees []model.Employee, table geo.Lookuper, got types.CityMap, report *Report) {
	want := aggregate.ResolveClusters(aggregate.GroupByCity(employees), table)

	if len(got.Clusters) != len(want) {
		report.Mismatches = append(report.Mismatches,
			fmt.Sprintf("map: %d clusters, want %d", len(got.Clusters), len(want)))
		return
	}
	for i, w := range want {
		g := got.Clusters[i]
		if g.City != w.City || g.Count != w.Count || !near(g.Lat, w.Lat) || !near(g.Lng, w.Lng) {
			report.Mismatches = append(report.Mismatches,
				fmt.Sprintf("map[%d]: got %s/%d (%v,%v), want %s/%d (%v,%v)",
					i, g.City, g.Count, g.Lat, g.Lng, w.City, w.Count, w.Lat, w.Lng))
		}
		report.ClustersChecked++
	}

	centroid := aggregate.ComputeCentroid(want)
	if !near(got.Centroid.Lat, centroid.Lat) || !near(got.Centroid.Lng, centroid.Lng) {
		report.Mismatches = append(report.Mismatches,
			fmt.Sprintf("map centroid: got %+v, want %+v", got.Centroid, centroid))
	}
	if mapped := aggregate.MappedCount(want); got.MappedEmployees != mapped {
		report.Mismatches = append(report.Mismatches,
			fmt.Sprintf("map: %d mapped employees, want %d", got.MappedEmployees, mapped))
	}
	if got.TotalEmployees != len(employees) {
		report.Mismatches = append(report.Mismatches,
			fmt.Sprintf("map: %d total employees, want %d", got.TotalEmployees, len(employees)))
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) <= coordTolerance
}
