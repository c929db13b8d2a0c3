// Package geo holds the static city -> coordinate lookup used by the map view.
package geo

import (
	"sort"

	"github.com/twpayne/go-geom"
)

// Coordinate is a latitude/longitude pair in degrees.
type Coordinate struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// Point returns the coordinate as a go-geom point (X = longitude, Y = latitude).
func (c Coordinate) Point() *geom.Point {
	return geom.NewPointFlat(geom.XY, []float64{c.Lng, c.Lat})
}

// Lookuper resolves a city name to its coordinate.
// Matching is exact and case-sensitive.
type Lookuper interface {
	Lookup(city string) (Coordinate, bool)
}

// Table is an immutable city lookup. The zero value is an empty table.
// A Table is safe for concurrent use since nothing mutates it after construction.
type Table struct {
	coords map[string]Coordinate
}

// NewTable builds a table from entries. The input map is copied.
func NewTable(entries map[string]Coordinate) *Table {
	t := &Table{coords: make(map[string]Coordinate, len(entries))}
	for city, c := range entries {
		t.coords[city] = c
	}
	return t
}

// Lookup returns the coordinate for an exact city name.
func (t *Table) Lookup(city string) (Coordinate, bool) {
	if t == nil {
		return Coordinate{}, false
	}
	c, ok := t.coords[city]
	return c, ok
}

// Len reports the number of cities in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.coords)
}

// Cities returns the supported city names in lexical order.
func (t *Table) Cities() []string {
	if t == nil {
		return nil
	}
	out := make([]string, 0, len(t.coords))
	for city := range t.coords {
		out = append(out, city)
	}
	sort.Strings(out)
	return out
}

var defaultTable = NewTable(map[string]Coordinate{
	"New York":      {40.7128, -74.006},
	"San Francisco": {37.7749, -122.4194},
	"Los Angeles":   {34.0522, -118.2437},
	"Chicago":       {41.8781, -87.6298},
	"Houston":       {29.7604, -95.3698},
	"Phoenix":       {33.4484, -112.074},
	"Philadelphia":  {39.9526, -75.1652},
	"San Antonio":   {29.4241, -98.4936},
	"San Diego":     {32.7157, -117.1611},
	"Dallas":        {32.7767, -96.797},
	"Seattle":       {47.6062, -122.3321},
	"Denver":        {39.7392, -104.9903},
	"Boston":        {42.3601, -71.0589},
	"Miami":         {25.7617, -80.1918},
	"Atlanta":       {33.749, -84.388},
	"Mumbai":        {19.076, 72.8777},
	"Delhi":         {28.7041, 77.1025},
	"Bangalore":     {12.9716, 77.5946},
	"Hyderabad":     {17.387, 78.4711},
	"Chennai":       {13.0827, 80.2707},
	"Pune":          {18.5204, 73.8567},
	"Kolkata":       {22.5726, 88.3639},
	"London":        {51.5074, -0.1278},
	"Paris":         {48.8566, 2.3522},
	"Berlin":        {52.52, 13.405},
	"Tokyo":         {35.6762, 139.6503},
	// Reference value; kept as published so every consumer agrees on it.
	"Sydney":    {33.8688, 151.2093},
	"Toronto":   {43.6532, -79.3832},
	"Vancouver": {49.2827, -123.1207},
	"Singapore": {1.3521, 103.8198},
})

// Default returns the built-in reference table shared by all callers.
func Default() *Table { return defaultTable }
