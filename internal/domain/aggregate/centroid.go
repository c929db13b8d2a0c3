package aggregate

import (
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
)

// Centroid is the point a map view is centered on.
type Centroid struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// FallbackCentroid is returned when there is nothing to center on. It is a
// non-crashing default for an empty map, not a real location.
var FallbackCentroid = Centroid{Lat: 20, Lng: 78}

// ComputeCentroid returns the unweighted mean of cluster coordinates: each
// cluster counts once regardless of its member count.
func ComputeCentroid(clusters []Cluster) Centroid {
	if len(clusters) == 0 {
		return FallbackCentroid
	}
	c := xy.MultiPointCentroid(multiPoint(clusters))
	return Centroid{Lat: c[1], Lng: c[0]}
}

// Bounds returns the bounding box of the clusters, or nil when there are none.
func Bounds(clusters []Cluster) *geom.Bounds {
	if len(clusters) == 0 {
		return nil
	}
	return multiPoint(clusters).Bounds()
}

func multiPoint(clusters []Cluster) *geom.MultiPoint {
	flat := make([]float64, 0, 2*len(clusters))
	for _, c := range clusters {
		flat = append(flat, c.Lng, c.Lat)
	}
	return geom.NewMultiPointFlat(geom.XY, flat)
}
