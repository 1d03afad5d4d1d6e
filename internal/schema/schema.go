// Package schema checks request payloads against an entity's declared
// column set.
package schema

import (
	"reflect"
	"sort"
)

// Column describes one field an entity accepts.
type Column struct {
	Required bool
}

// Columns maps column names to their rules. A Columns value is built once
// per entity and must not be modified afterwards.
type Columns map[string]Column

// Names returns the column names in sorted order.
func (c Columns) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether name is a declared column.
func (c Columns) Has(name string) bool {
	_, ok := c[name]
	return ok
}

// Result lists the problems found in a payload. Both slices are sorted.
type Result struct {
	NotAllowed      []string `json:"not_allowed"`
	MissingRequired []string `json:"missing_required"`
}

// Valid reports whether the payload passed both checks.
func (r Result) Valid() bool {
	return len(r.NotAllowed) == 0 && len(r.MissingRequired) == 0
}

// Validate checks payload against cols. A payload that is not a map with
// string keys, or is an empty map, reports every required column as missing
// and nothing as not allowed. Otherwise keys absent from cols are reported as
// not allowed, and required columns whose value is absent, nil or "" are
// reported as missing.
func Validate(cols Columns, payload any) Result {
	result := Result{NotAllowed: []string{}, MissingRequired: []string{}}

	fields, ok := asFields(payload)
	if !ok || len(fields) == 0 {
		for _, name := range cols.Names() {
			if cols[name].Required {
				result.MissingRequired = append(result.MissingRequired, name)
			}
		}
		return result
	}

	for key := range fields {
		if !cols.Has(key) {
			result.NotAllowed = append(result.NotAllowed, key)
		}
	}
	sort.Strings(result.NotAllowed)

	for _, name := range cols.Names() {
		if !cols[name].Required {
			continue
		}
		if isBlank(fields[name]) {
			result.MissingRequired = append(result.MissingRequired, name)
		}
	}

	return result
}

func asFields(payload any) (map[string]any, bool) {
	if m, ok := payload.(map[string]any); ok {
		return m, true
	}

	v := reflect.ValueOf(payload)
	if v.Kind() != reflect.Map || v.Type().Key().Kind() != reflect.String {
		return nil, false
	}

	fields := make(map[string]any, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		fields[iter.Key().String()] = iter.Value().Interface()
	}
	return fields, true
}

func isBlank(value any) bool {
	if value == nil {
		return true
	}
	s, ok := value.(string)
	return ok && s == ""
}
