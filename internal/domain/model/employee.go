// Package model contains domain models passed between layers.
package model

import (
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Display sentinels substituted on read for absent fields.
const (
	NotAvailable       = "N/A"
	UnknownCity        = "Unknown"
	DefaultDesignation = "Employee"
)

// Employee is one directory record as supplied by the roster source.
// Optional fields are left empty (or nil for Salary) when the source omits them;
// defaults are applied by the accessors below and never written back.
type Employee struct {
	ID          string   // unique within a snapshot
	Name        string   // full name, may be empty
	Designation string   // job title, may be empty
	Salary      *float64 // nil when absent or non-numeric
	City        string   // grouping key for the map view
	Email       string
	Phone       string
	// Extra carries any other named fields of the source record untouched.
	Extra map[string]string
}

// SalaryOrZero returns the salary, or 0 when it is absent or not a number.
func (e Employee) SalaryOrZero() float64 {
	if e.Salary == nil || math.IsNaN(*e.Salary) {
		return 0
	}
	return *e.Salary
}

// FirstName returns the first whitespace-delimited token of the name, or N/A.
func (e Employee) FirstName() string {
	fields := strings.Fields(e.Name)
	if len(fields) == 0 {
		return NotAvailable
	}
	return fields[0]
}

// CityKey returns the city used for grouping, substituting UnknownCity when empty.
func (e Employee) CityKey() string {
	if e.City == "" {
		return UnknownCity
	}
	return e.City
}

// DisplayName returns the name, or N/A when empty.
func (e Employee) DisplayName() string { return orNA(e.Name) }

// DisplayDesignation returns the designation, or N/A when empty.
func (e Employee) DisplayDesignation() string { return orNA(e.Designation) }

// DisplayCity returns the city as written, or N/A when empty. Grouping uses CityKey.
func (e Employee) DisplayCity() string { return orNA(e.City) }

// Title is the designation shown under the name on a details view.
func (e Employee) Title() string {
	if e.Designation == "" {
		return DefaultDesignation
	}
	return e.Designation
}

// DisplaySalary formats the salary for presentation, e.g. "$120,000".
func (e Employee) DisplaySalary() string {
	return FormatSalary(e.SalaryOrZero())
}

// Field returns a pass-through field by name.
func (e Employee) Field(name string) (string, bool) {
	v, ok := e.Extra[name]
	return v, ok
}

// Clone returns a deep copy so snapshots never share mutable state with callers.
func (e Employee) Clone() Employee {
	c := e
	if e.Salary != nil {
		s := *e.Salary
		c.Salary = &s
	}
	if e.Extra != nil {
		c.Extra = make(map[string]string, len(e.Extra))
		for k, v := range e.Extra {
			c.Extra[k] = v
		}
	}
	return c
}

// CloneAll deep-copies a list of employees, preserving order.
func CloneAll(in []Employee) []Employee {
	out := make([]Employee, len(in))
	for i, e := range in {
		out[i] = e.Clone()
	}
	return out
}

// FormatSalary renders an amount with English digit grouping and a dollar sign.
func FormatSalary(v float64) string {
	p := message.NewPrinter(language.English)
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return p.Sprintf("$%d", int64(v))
	}
	return p.Sprintf("$%.2f", v)
}

// Float returns a pointer to v, handy for building records in code and tests.
func Float(v float64) *float64 { return &v }

func orNA(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}
