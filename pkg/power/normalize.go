package power

import (
	"strconv"
	"strings"
)

// RawRecord is one source row with field values exactly as published.
// The country-statistics source mixes plain numbers, locale-formatted
// strings and empty cells in the same column.
type RawRecord map[string]string

// ParseNumber converts a raw field value to a number. Anything that does
// not parse cleanly (empty cell, placeholder text, thousands separators)
// comes back as nil, meaning "missing for this indicator". It never fails.
func ParseNumber(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// NormalizeRecord coerces the named fields of a raw row to numeric values.
// Every requested field gets an entry in the result; unparseable fields
// map to nil.
func NormalizeRecord(raw RawRecord, fields []string) map[string]*float64 {
	out := make(map[string]*float64, len(fields))
	for _, f := range fields {
		out[f] = ParseNumber(raw[f])
	}
	return out
}
