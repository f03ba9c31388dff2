// Package types holds the shared data model for the indicator pipeline:
// raw source rows, county geometries, normalized indicator values, and the
// resolved view payload handed to presentation layers.
package types

import "github.com/paulmach/orb"

// Validity classifies a normalized value. Invalid records are kept (not
// dropped) so coverage gaps can be reported instead of silently omitted.
type Validity string

const (
	Valid        Validity = "valid"
	Missing      Validity = "missing"
	ParseFailure Validity = "parse_failure"
	OutOfRange   Validity = "out_of_range"
)

// RawRecord is one row from a source table, keyed by county FIPS code.
// Immutable once loaded; values stay as strings until normalization.
type RawRecord struct {
	GeoID   string
	Values  map[string]string
	Vintage string
	Source  string
}

// GeographyShape is a county boundary keyed by the same geography identifier
// used in RawRecord. Loaded once and shared read-only across all indicators.
type GeographyShape struct {
	ID       string
	Name     string
	Geometry orb.MultiPolygon
	Bound    orb.Bound
}

// NormalizedRecord is the canonical unit: (category, indicator, geography)
// to a typed value plus a validity flag. Value is meaningless unless
// Validity == Valid.
type NormalizedRecord struct {
	Category  string   `json:"category"`
	Indicator string   `json:"indicator"`
	GeoID     string   `json:"geo_id"`
	Value     float64  `json:"value"`
	Validity  Validity `json:"validity"`
}

// SelectionState is the user's current tab + dropdown choice.
type SelectionState struct {
	Category  string `json:"category"`
	Indicator string `json:"indicator"`
}

// ColorScale tells the renderer how to paint the choropleth. NoDataColor is
// a fixed band outside the ramp so missing values never collide with zero.
type ColorScale struct {
	Name        string  `json:"name"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	NoDataColor string  `json:"no_data_color"`
}

// MapSpec carries the initial viewport for the state map.
type MapSpec struct {
	CenterLat float64 `json:"center_lat"`
	CenterLon float64 `json:"center_lon"`
	Zoom      int     `json:"zoom"`
}

// SeriesPoint is one county's value in a chart series.
type SeriesPoint struct {
	GeoID string  `json:"geo_id"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// NoDataEntry names a county that cannot be painted and why.
type NoDataEntry struct {
	GeoID  string `json:"geo_id"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// CoverageSummary reports how much of the state a selection actually covers.
// Problems is the union of invalid and unjoined (a record that is both counts
// once).
type CoverageSummary struct {
	Total    int `json:"total"`
	Valid    int `json:"valid"`
	Invalid  int `json:"invalid"`
	Unjoined int `json:"unjoined"`
	Problems int `json:"problems"`
}

// ViewPayload is the sole contract surface between the core and any
// presentation layer. MapSeries holds only joined valid values; BarSeries
// additionally includes valid values that lack a boundary shape.
type ViewPayload struct {
	Category   string          `json:"category"`
	Indicator  string          `json:"indicator"`
	Title      string          `json:"title"`
	Unit       string          `json:"unit"`
	ColorScale ColorScale      `json:"color_scale"`
	Map        MapSpec         `json:"map"`
	MapSeries  []SeriesPoint   `json:"map_series"`
	BarSeries  []SeriesPoint   `json:"bar_series"`
	Top        []SeriesPoint   `json:"top"`
	Bottom     []SeriesPoint   `json:"bottom"`
	NoData     []NoDataEntry   `json:"no_data"`
	Median     float64         `json:"median"`
	Summary    CoverageSummary `json:"summary"`
}
