package repository

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/okian/roster/internal/domain/model"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Decode parses a roster document. JSON is accepted as a subset of YAML.
// The document is either a list of records or a mapping whose "data" key
// holds that list. Unknown record keys are kept as pass-through fields;
// malformed optional values are normalized rather than rejected.
func Decode(data []byte) ([]model.Employee, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrapf(ErrInvalidRoster, "decode: %v", err)
	}
	list, err := recordList(doc)
	if err != nil {
		return nil, err
	}
	out := make([]model.Employee, 0, len(list))
	for i, item := range list {
		rec, ok := item.(map[string]any)
		if !ok {
			return nil, eris.Wrapf(ErrInvalidRoster, "record %d is not a mapping", i)
		}
		out = append(out, toEmployee(rec))
	}
	return out, nil
}

func recordList(doc any) ([]any, error) {
	switch v := doc.(type) {
	case nil:
		return nil, nil
	case []any:
		return v, nil
	case map[string]any:
		inner, ok := v["data"]
		if !ok {
			return nil, eris.Wrap(ErrInvalidRoster, "mapping without a data list")
		}
		return recordList(inner)
	default:
		return nil, eris.Wrapf(ErrInvalidRoster, "unexpected top-level %T", doc)
	}
}

func toEmployee(rec map[string]any) model.Employee {
	e := model.Employee{}
	for k, v := range rec {
		switch k {
		case "id":
			e.ID = scalar(v)
		case "name":
			e.Name = scalar(v)
		case "designation":
			e.Designation = scalar(v)
		case "city":
			e.City = scalar(v)
		case "email":
			e.Email = scalar(v)
		case "phone":
			e.Phone = scalar(v)
		case "salary":
			e.Salary = number(v)
		default:
			if e.Extra == nil {
				e.Extra = make(map[string]string)
			}
			e.Extra[k] = scalar(v)
		}
	}
	return e
}

// scalar renders a decoded value as a string; composites are encoded as JSON.
func scalar(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case []any, map[string]any:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	default:
		return fmt.Sprint(t)
	}
}

// number extracts a salary; anything that is not a finite number yields nil.
func number(v any) *float64 {
	var f float64
	switch t := v.(type) {
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case uint64:
		f = float64(t)
	case float64:
		f = t
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
