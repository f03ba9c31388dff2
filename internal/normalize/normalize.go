// Package normalize transforms raw source rows into the uniform
// (category, indicator, geography) keyed model. Normalization is a pure
// function of (raw input, definition): same inputs, identical output.
package normalize

import (
	"fmt"
	"strconv"
	"strings"

	"healthinsights/internal/catalog"
	"healthinsights/internal/types"
)

// DuplicateKeyError reports two raw rows mapping to the same
// (category, indicator, geography) key. Ambiguity is a build-time failure,
// never a silent pick.
type DuplicateKeyError struct {
	Category  string
	Indicator string
	GeoID     string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key: %s / %s / %s", e.Category, e.Indicator, e.GeoID)
}

// Normalize applies the definition's mapping rule to every raw record.
// Invalid values are retained with a validity flag so the resolver can
// report coverage gaps instead of silently omitting counties.
func Normalize(raws []types.RawRecord, def catalog.Definition) ([]types.NormalizedRecord, error) {
	out := make([]types.NormalizedRecord, 0, len(raws))
	seen := make(map[string]bool, len(raws))

	for _, raw := range raws {
		if seen[raw.GeoID] {
			return nil, &DuplicateKeyError{Category: def.Category, Indicator: def.Indicator, GeoID: raw.GeoID}
		}
		seen[raw.GeoID] = true

		value, validity := apply(raw, def)
		out = append(out, types.NormalizedRecord{
			Category:  def.Category,
			Indicator: def.Indicator,
			GeoID:     raw.GeoID,
			Value:     value,
			Validity:  validity,
		})
	}
	return out, nil
}

func apply(raw types.RawRecord, def catalog.Definition) (float64, types.Validity) {
	field := strings.TrimSpace(raw.Values[def.Rule.Field])
	if field == "" {
		return 0, types.Missing
	}

	var v float64
	switch def.Rule.Transform {
	case catalog.Identity, catalog.Scale:
		n, ok := parseNumber(field)
		if !ok {
			return 0, types.ParseFailure
		}
		v = n
		if def.Rule.Transform == catalog.Scale {
			v *= def.Rule.Factor
		}

	case catalog.Rate:
		num, ok := parseNumber(field)
		if !ok {
			return 0, types.ParseFailure
		}
		denomField := strings.TrimSpace(raw.Values[def.Rule.Denominator])
		if denomField == "" {
			return 0, types.Missing
		}
		den, ok := parseNumber(denomField)
		if !ok || den == 0 {
			return 0, types.ParseFailure
		}
		v = num / den * def.Rule.Per

	case catalog.Recode:
		code, ok := def.Rule.Codes[strings.ToLower(field)]
		if !ok {
			return 0, types.ParseFailure
		}
		v = code

	default:
		return 0, types.ParseFailure
	}

	if v < def.Domain.Min || v > def.Domain.Max {
		return 0, types.OutOfRange
	}
	return v, types.Valid
}

// parseNumber parses a numeric field, tolerating the thousands separators,
// dollar signs, and percent suffixes found in the analytic exports.
func parseNumber(s string) (float64, bool) {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}
