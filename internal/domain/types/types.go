// Package types contains the response shapes shared by the service and the HTTP API.
package types

import "time"

// ChartType selects how the salary series is drawn.
type ChartType string

// Supported chart types.
const (
	ChartBar  ChartType = "bar"
	ChartLine ChartType = "line"
)

// ParseChartType returns the chart type named by s, defaulting to bar.
func ParseChartType(s string) (ChartType, bool) {
	switch ChartType(s) {
	case "", ChartBar:
		return ChartBar, true
	case ChartLine:
		return ChartLine, true
	default:
		return ChartBar, false
	}
}

// EmployeeSummary is one row of the employee list with display defaults applied.
type EmployeeSummary struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Designation string  `json:"designation"`
	City        string  `json:"city"`
	Salary      string  `json:"salary"`
	SalaryValue float64 `json:"salary_value"`
}

// EmployeeDetails is the details view of a single employee.
type EmployeeDetails struct {
	EmployeeSummary
	Title    string            `json:"title"`
	Email    string            `json:"email,omitempty"`
	Phone    string            `json:"phone,omitempty"`
	Extra    map[string]string `json:"extra,omitempty"`
	HasPhoto bool              `json:"has_photo"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Token     string            `json:"token"`
	Username  string            `json:"username"`
	Employees []EmployeeSummary `json:"employees"`
}

// SeriesPoint is one bar or point of the salary chart.
type SeriesPoint struct {
	Label  string  `json:"label"`
	Salary float64 `json:"salary"`
	ID     string  `json:"id"`
}

// SalaryStats summarizes a salary series.
type SalaryStats struct {
	Avg float64 `json:"avg"`
	Max float64 `json:"max"`
	Min float64 `json:"min"`
}

// SalaryChart is the salary view.
type SalaryChart struct {
	Type   ChartType     `json:"type"`
	Series []SeriesPoint `json:"series"`
	Stats  SalaryStats   `json:"stats"`
}

// LatLng is a geographic position in degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// BoundingBox encloses every cluster on a map.
type BoundingBox struct {
	SouthWest LatLng `json:"south_west"`
	NorthEast LatLng `json:"north_east"`
}

// MapCluster is one city marker. Members read "name - designation".
type MapCluster struct {
	City    string   `json:"city"`
	Lat     float64  `json:"lat"`
	Lng     float64  `json:"lng"`
	Count   int      `json:"count"`
	Members []string `json:"members"`
}

// CityMap is the city map view. TotalEmployees includes employees whose city
// could not be placed; MappedEmployees counts only those on a marker.
type CityMap struct {
	Clusters        []MapCluster `json:"clusters"`
	Centroid        LatLng       `json:"centroid"`
	Bounds          *BoundingBox `json:"bounds,omitempty"`
	CityCount       int          `json:"city_count"`
	TotalEmployees  int          `json:"total_employees"`
	MappedEmployees int          `json:"mapped_employees"`
}

// PhotoInfo describes a captured photo without its bytes.
type PhotoInfo struct {
	EmployeeID  string    `json:"employee_id"`
	ContentType string    `json:"content_type"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	Size        int       `json:"size"`
	CapturedAt  time.Time `json:"captured_at"`
}

// ServiceStats is reported by GET /stats.
type ServiceStats struct {
	RosterSize     int    `json:"roster_size"`
	ActiveSessions int64  `json:"active_sessions"`
	GeoCities      int    `json:"geo_cities"`
	Uptime         string `json:"uptime"`
}

// PhotoFile is a captured photo ready to be downloaded.
type PhotoFile struct {
	PhotoInfo
	Filename string `json:"filename"`
	Data     []byte `json:"-"`
}
