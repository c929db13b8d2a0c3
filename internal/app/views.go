package service

import (
	"context"
	"time"

	"github.com/okian/roster/internal/domain/aggregate"
	"github.com/okian/roster/internal/domain/model"
	"github.com/okian/roster/internal/domain/types"
	"github.com/okian/roster/pkg/metrics"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"
)

const memberSeparator = " - "

// SalaryChart builds the salary view over the session's employees.
func (s *Service) SalaryChart(ctx context.Context, token, chartType string) (types.SalaryChart, error) {
	ct, ok := types.ParseChartType(chartType)
	if !ok {
		return types.SalaryChart{}, eris.Wrapf(ErrInvalidChartType, "%q", chartType)
	}
	sess, err := s.session(ctx, token)
	if err != nil {
		return types.SalaryChart{}, err
	}

	start := time.Now()
	series := aggregate.BuildSalarySeries(sess.Employees())
	stats := aggregate.ComputeStats(series)
	metrics.RecordAggregationLatency("salary", elapsedMs(start))

	points := make([]types.SeriesPoint, len(series))
	for i, item := range series {
		points[i] = types.SeriesPoint{Label: item.Label, Salary: item.Salary, ID: item.ID}
	}
	return types.SalaryChart{
		Type:   ct,
		Series: points,
		Stats:  types.SalaryStats{Avg: stats.Avg, Max: stats.Max, Min: stats.Min},
	}, nil
}

// CityMap builds the city map view over the session's employees.
func (s *Service) CityMap(ctx context.Context, token string) (types.CityMap, error) {
	sess, err := s.session(ctx, token)
	if err != nil {
		return types.CityMap{}, err
	}
	employees := sess.Employees()
	clusters := s.clusters(employees)

	view := types.CityMap{
		Clusters:        make([]types.MapCluster, len(clusters)),
		CityCount:       len(clusters),
		TotalEmployees:  len(employees),
		MappedEmployees: aggregate.MappedCount(clusters),
	}
	for i, c := range clusters {
		view.Clusters[i] = types.MapCluster{
			City:    c.City,
			Lat:     c.Lat,
			Lng:     c.Lng,
			Count:   c.Count,
			Members: members(c),
		}
	}

	centroid := aggregate.ComputeCentroid(clusters)
	view.Centroid = types.LatLng{Lat: centroid.Lat, Lng: centroid.Lng}
	if b := aggregate.Bounds(clusters); b != nil {
		view.Bounds = &types.BoundingBox{
			SouthWest: types.LatLng{Lat: b.Min(1), Lng: b.Min(0)},
			NorthEast: types.LatLng{Lat: b.Max(1), Lng: b.Max(0)},
		}
	}
	return view, nil
}

// CityMapGeoJSON returns the city map as a FeatureCollection with one point per cluster.
func (s *Service) CityMapGeoJSON(ctx context.Context, token string) (*geojson.FeatureCollection, error) {
	sess, err := s.session(ctx, token)
	if err != nil {
		return nil, err
	}
	clusters := s.clusters(sess.Employees())

	fc := &geojson.FeatureCollection{
		BBox:     aggregate.Bounds(clusters),
		Features: make([]*geojson.Feature, 0, len(clusters)),
	}
	for _, c := range clusters {
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       c.City,
			Geometry: c.Point(),
			Properties: map[string]interface{}{
				"city":    c.City,
				"count":   c.Count,
				"members": members(c),
			},
		})
	}
	return fc, nil
}

func (s *Service) clusters(employees []model.Employee) []aggregate.Cluster {
	start := time.Now()
	clusters := aggregate.ResolveClusters(aggregate.GroupByCity(employees), s.table)
	metrics.RecordAggregationLatency("map", elapsedMs(start))
	metrics.RecordClustersResolved(len(clusters))
	metrics.RecordUnmappedEmployees(len(employees) - aggregate.MappedCount(clusters))
	return clusters
}

func members(c aggregate.Cluster) []string {
	out := make([]string, len(c.Employees))
	for i, e := range c.Employees {
		out[i] = e.DisplayName() + memberSeparator + e.DisplayDesignation()
	}
	return out
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}
