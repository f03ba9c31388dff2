// Package resolver turns a (category, indicator) selection into the exact
// chart-ready payload the presentation layer needs. Resolution is stateless
// and pure: the same selection against the same store yields the same
// payload.
package resolver

import (
	"errors"
	"fmt"
	"sort"

	"healthinsights/internal/catalog"
	"healthinsights/internal/store"
	"healthinsights/internal/types"
)

// Initial viewport for the state map, centered on North Carolina.
const (
	mapCenterLat = 35.7596
	mapCenterLon = -79.0193
	mapZoom      = 6
)

// rankCount is how many counties the top/bottom slices carry.
const rankCount = 10

// noDataColor is the fixed band for counties that cannot be painted, kept
// outside the color ramp so missing never looks like zero.
const noDataColor = "#d9d9d9"

// InvalidSelectionError reports a selection whose indicator is not a member
// of the category's set. Caller-facing; never fatal to the process.
type InvalidSelectionError struct {
	Category  string
	Indicator string
	Err       error
}

func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("invalid selection %s / %s: %v", e.Category, e.Indicator, e.Err)
}

func (e *InvalidSelectionError) Unwrap() error { return e.Err }

// Resolver resolves selections against the active store snapshot.
type Resolver struct {
	catalog *catalog.Catalog
	stores  *store.Handle
}

func New(c *catalog.Catalog, h *store.Handle) *Resolver {
	return &Resolver{catalog: c, stores: h}
}

// Resolve validates the selection against the catalog, queries the store,
// joins values with their boundary shapes, and builds the payload. The
// store snapshot is taken once, so an in-flight reload cannot tear the view.
func (r *Resolver) Resolve(sel types.SelectionState) (types.ViewPayload, error) {
	def, err := r.catalog.Resolve(sel.Category, sel.Indicator)
	if err != nil {
		var unknown *catalog.UnknownIndicatorError
		if errors.As(err, &unknown) {
			return types.ViewPayload{}, &InvalidSelectionError{Category: sel.Category, Indicator: sel.Indicator, Err: err}
		}
		return types.ViewPayload{}, err
	}

	st := r.stores.Current()
	records, err := st.Query(sel.Category, sel.Indicator)
	if err != nil {
		return types.ViewPayload{}, err
	}
	return compose(def, st, records), nil
}

func compose(def catalog.Definition, st *store.Store, records []types.NormalizedRecord) types.ViewPayload {
	p := types.ViewPayload{
		Category:  def.Category,
		Indicator: def.Indicator,
		Title:     def.Indicator + " by County",
		Unit:      def.Unit,
		Map:       types.MapSpec{CenterLat: mapCenterLat, CenterLon: mapCenterLon, Zoom: mapZoom},
	}

	var values []float64
	for _, rec := range records {
		p.Summary.Total++

		sh, shapeErr := st.Shape(rec.GeoID)
		joined := shapeErr == nil
		name := rec.GeoID
		if joined && sh.Name != "" {
			name = sh.Name
		}
		if !joined {
			p.Summary.Unjoined++
		}

		if rec.Validity != types.Valid {
			p.Summary.Invalid++
			p.NoData = append(p.NoData, types.NoDataEntry{GeoID: rec.GeoID, Name: name, Reason: string(rec.Validity)})
			continue
		}
		p.Summary.Valid++

		point := types.SeriesPoint{GeoID: rec.GeoID, Name: name, Value: rec.Value}
		p.BarSeries = append(p.BarSeries, point)
		values = append(values, rec.Value)
		if joined {
			p.MapSeries = append(p.MapSeries, point)
		} else {
			// Still charted, but the map has nothing to paint for it.
			p.NoData = append(p.NoData, types.NoDataEntry{GeoID: rec.GeoID, Name: name, Reason: "no geometry"})
		}
	}

	// Problems is the union: a record both invalid and unjoined counts once.
	p.Summary.Problems = p.Summary.Invalid
	for _, rec := range records {
		if rec.Validity == types.Valid {
			if _, err := st.Shape(rec.GeoID); err != nil {
				p.Summary.Problems++
			}
		}
	}

	// Ranking order: value descending, ties broken by county name ascending.
	sort.Slice(p.BarSeries, func(i, j int) bool {
		if p.BarSeries[i].Value == p.BarSeries[j].Value {
			return p.BarSeries[i].Name < p.BarSeries[j].Name
		}
		return p.BarSeries[i].Value > p.BarSeries[j].Value
	})

	p.Top = rankSlice(p.BarSeries, true)
	p.Bottom = rankSlice(p.BarSeries, false)
	p.Median = median(values)
	p.ColorScale = colorScale(def, values)
	return p
}

// rankSlice takes the first or last rankCount entries of the descending bar
// series. The bottom slice is re-ordered ascending, smallest first, matching
// how a bottom-10 chart reads.
func rankSlice(bars []types.SeriesPoint, top bool) []types.SeriesPoint {
	n := rankCount
	if n > len(bars) {
		n = len(bars)
	}
	out := make([]types.SeriesPoint, n)
	if top {
		copy(out, bars[:n])
		return out
	}
	for i := 0; i < n; i++ {
		out[i] = bars[len(bars)-1-i]
	}
	return out
}

// colorScale ranges over the observed valid values, like the original
// choropleth; with no valid values it falls back to the declared domain.
func colorScale(def catalog.Definition, values []float64) types.ColorScale {
	cs := types.ColorScale{
		Name:        def.ScaleHint,
		Min:         def.Domain.Min,
		Max:         def.Domain.Max,
		NoDataColor: noDataColor,
	}
	if len(values) == 0 {
		return cs
	}
	cs.Min, cs.Max = values[0], values[0]
	for _, v := range values[1:] {
		if v < cs.Min {
			cs.Min = v
		}
		if v > cs.Max {
			cs.Max = v
		}
	}
	return cs
}

// median of the valid values, carried as a display hint. Missing values are
// never imputed with it; they stay flagged in NoData.
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
