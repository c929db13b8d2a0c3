package geo_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/roster/internal/domain/geo"
	"github.com/smartystreets/goconvey/convey"
)

func TestDefaultTable(t *testing.T) {
	convey.Convey("Given the built-in table", t, func() {
		tbl := geo.Default()

		convey.Convey("Then it carries the thirty reference cities", func() {
			convey.So(tbl.Len(), convey.ShouldEqual, 30)
			convey.So(len(tbl.Cities()), convey.ShouldEqual, 30)
		})

		convey.Convey("Then reference coordinates match exactly", func() {
			cases := map[string]geo.Coordinate{
				"Mumbai":    {Lat: 19.076, Lng: 72.8777},
				"New York":  {Lat: 40.7128, Lng: -74.006},
				"Sydney":    {Lat: 33.8688, Lng: 151.2093},
				"Singapore": {Lat: 1.3521, Lng: 103.8198},
				"London":    {Lat: 51.5074, Lng: -0.1278},
			}
			for city, want := range cases {
				got, ok := tbl.Lookup(city)
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(got, convey.ShouldResemble, want)
			}
		})

		convey.Convey("Then matching is exact and case-sensitive", func() {
			for _, city := range []string{"mumbai", "Mumbai ", "Atlantis", "Unknown", ""} {
				_, ok := tbl.Lookup(city)
				convey.So(ok, convey.ShouldBeFalse)
			}
		})

		convey.Convey("Then points are laid out as lng, lat", func() {
			c, _ := tbl.Lookup("Delhi")
			p := c.Point()
			convey.So(p.X(), convey.ShouldEqual, 77.1025)
			convey.So(p.Y(), convey.ShouldEqual, 28.7041)
		})
	})
}

func TestNewTable(t *testing.T) {
	convey.Convey("Given a table built from a caller map", t, func() {
		src := map[string]geo.Coordinate{"Atlantis": {Lat: 1, Lng: 2}}
		tbl := geo.NewTable(src)

		convey.Convey("When the caller mutates its map afterwards", func() {
			src["Atlantis"] = geo.Coordinate{Lat: 9, Lng: 9}
			src["Lemuria"] = geo.Coordinate{}

			convey.Convey("Then the table is unaffected", func() {
				c, ok := tbl.Lookup("Atlantis")
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(c.Lat, convey.ShouldEqual, 1)
				convey.So(tbl.Len(), convey.ShouldEqual, 1)
			})
		})
	})

	convey.Convey("Given a nil table", t, func() {
		var tbl *geo.Table
		_, ok := tbl.Lookup("Mumbai")
		convey.So(ok, convey.ShouldBeFalse)
		convey.So(tbl.Len(), convey.ShouldEqual, 0)
		convey.So(tbl.Cities(), convey.ShouldBeNil)
	})
}

func TestParse(t *testing.T) {
	convey.Convey("Given table documents", t, func() {
		convey.Convey("When the document is valid YAML", func() {
			tbl, err := geo.Parse([]byte("Atlantis: [10.5, -20.25]\nLemuria: [0, 0]\n"))
			convey.So(err, convey.ShouldBeNil)
			c, ok := tbl.Lookup("Atlantis")
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(c, convey.ShouldResemble, geo.Coordinate{Lat: 10.5, Lng: -20.25})
			convey.So(tbl.Len(), convey.ShouldEqual, 2)
		})

		convey.Convey("When the document is JSON", func() {
			tbl, err := geo.Parse([]byte(`{"Oslo": [59.9139, 10.7522]}`))
			convey.So(err, convey.ShouldBeNil)
			_, ok := tbl.Lookup("Oslo")
			convey.So(ok, convey.ShouldBeTrue)
		})

		convey.Convey("When a pair has the wrong arity", func() {
			_, err := geo.Parse([]byte("Oslo: [59.9]\n"))
			convey.So(errors.Is(err, geo.ErrInvalidTable), convey.ShouldBeTrue)
		})

		convey.Convey("When a coordinate is out of range", func() {
			_, err := geo.Parse([]byte("Oslo: [120, 10]\n"))
			convey.So(errors.Is(err, geo.ErrInvalidTable), convey.ShouldBeTrue)
		})

		convey.Convey("When the document is malformed", func() {
			_, err := geo.Parse([]byte("Oslo: [59.9, "))
			convey.So(errors.Is(err, geo.ErrLoadTable), convey.ShouldBeTrue)
		})
	})
}

func TestLoadFile(t *testing.T) {
	convey.Convey("Given a table file on disk", t, func() {
		path := filepath.Join(t.TempDir(), "cities.yaml")
		convey.So(os.WriteFile(path, []byte("Reykjavik: [64.1466, -21.9426]\n"), 0o600), convey.ShouldBeNil)

		tbl, err := geo.LoadFile(path)
		convey.So(err, convey.ShouldBeNil)
		convey.So(tbl.Cities(), convey.ShouldResemble, []string{"Reykjavik"})
	})

	convey.Convey("Given a missing file", t, func() {
		_, err := geo.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
		convey.So(errors.Is(err, geo.ErrLoadTable), convey.ShouldBeTrue)
	})
}
