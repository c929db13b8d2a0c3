package geo

import (
	"math"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// LoadFile reads a YAML (or JSON) document mapping city names to [lat, lng]
// pairs and returns it as a Table.
//
//	Mumbai: [19.076, 72.8777]
//	Delhi:  [28.7041, 77.1025]
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(ErrLoadTable, "read %s: %v", path, err)
	}
	return Parse(data)
}

// Parse decodes a city -> [lat, lng] document.
func Parse(data []byte) (*Table, error) {
	var raw map[string][]float64
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, eris.Wrapf(ErrLoadTable, "decode: %v", err)
	}
	entries := make(map[string]Coordinate, len(raw))
	for city, pair := range raw {
		if city == "" {
			return nil, eris.Wrap(ErrInvalidTable, "empty city name")
		}
		if len(pair) != 2 {
			return nil, eris.Wrapf(ErrInvalidTable, "%s: want [lat, lng], got %d values", city, len(pair))
		}
		lat, lng := pair[0], pair[1]
		if math.Abs(lat) > 90 || math.Abs(lng) > 180 || math.IsNaN(lat) || math.IsNaN(lng) {
			return nil, eris.Wrapf(ErrInvalidTable, "%s: coordinate out of range", city)
		}
		entries[city] = Coordinate{Lat: lat, Lng: lng}
	}
	return NewTable(entries), nil
}
