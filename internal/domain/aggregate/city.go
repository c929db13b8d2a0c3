package aggregate

import (
	"github.com/okian/roster/internal/domain/geo"
	"github.com/okian/roster/internal/domain/model"
	"github.com/twpayne/go-geom"
)

// CityGroup is the set of employees sharing a city key, in input order.
type CityGroup struct {
	City      string           `json:"city"`
	Employees []model.Employee `json:"-"`
}

// Cluster is a city group enriched with its looked-up coordinate.
type Cluster struct {
	City      string           `json:"city"`
	Lat       float64          `json:"lat"`
	Lng       float64          `json:"lng"`
	Employees []model.Employee `json:"-"`
	Count     int              `json:"count"`
}

// Coordinate returns the cluster position.
func (c Cluster) Coordinate() geo.Coordinate {
	return geo.Coordinate{Lat: c.Lat, Lng: c.Lng}
}

// Point returns the cluster position as a go-geom point.
func (c Cluster) Point() *geom.Point {
	return c.Coordinate().Point()
}

// GroupByCity partitions employees by city, using model.UnknownCity for
// records without one. Groups appear in first-seen order and members keep
// their relative input order.
func GroupByCity(employees []model.Employee) []CityGroup {
	index := make(map[string]int)
	groups := make([]CityGroup, 0)
	for _, e := range employees {
		key := e.CityKey()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, CityGroup{City: key})
		}
		groups[i].Employees = append(groups[i].Employees, e)
	}
	return groups
}

// ResolveClusters looks up every group's city in table and keeps only the
// groups that resolve. Unresolved groups, including model.UnknownCity unless
// the table names it, are dropped silently. Order follows groups.
func ResolveClusters(groups []CityGroup, table geo.Lookuper) []Cluster {
	clusters := make([]Cluster, 0, len(groups))
	if table == nil {
		return clusters
	}
	for _, g := range groups {
		c, ok := table.Lookup(g.City)
		if !ok {
			continue
		}
		clusters = append(clusters, Cluster{
			City:      g.City,
			Lat:       c.Lat,
			Lng:       c.Lng,
			Employees: g.Employees,
			Count:     len(g.Employees),
		})
	}
	return clusters
}

// MappedCount is the number of employees represented by clusters.
func MappedCount(clusters []Cluster) int {
	n := 0
	for _, c := range clusters {
		n += c.Count
	}
	return n
}
