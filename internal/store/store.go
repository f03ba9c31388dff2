// Package store holds the immutable in-memory index of normalized records
// and county shapes. Built once per ingestion; read-only afterward, so
// concurrent reads need no locking.
package store

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"healthinsights/internal/catalog"
	"healthinsights/internal/types"
)

// UnknownGeographyError reports a shape lookup for an id the store never saw.
type UnknownGeographyError struct {
	GeoID string
}

func (e *UnknownGeographyError) Error() string {
	return fmt.Sprintf("unknown geography %q", e.GeoID)
}

type pairKey struct{ category, indicator string }

// Store indexes normalized records by (category, indicator) and shapes by
// geography id. The per-pair slices are prebuilt and sorted, so Query is a
// map lookup; no additional memoization is needed.
type Store struct {
	records   map[pairKey][]types.NormalizedRecord
	shapes    map[string]types.GeographyShape
	geoIDs    []string
	unmatched int
}

// Build constructs the store. Records whose geography has no boundary shape
// are kept and counted; partial geographic coverage is expected and degrades
// map rendering only, so it logs a warning rather than failing the build.
func Build(records []types.NormalizedRecord, shapes []types.GeographyShape, log zerolog.Logger) (*Store, error) {
	s := &Store{
		records: make(map[pairKey][]types.NormalizedRecord),
		shapes:  make(map[string]types.GeographyShape, len(shapes)),
	}

	for _, sh := range shapes {
		if _, ok := s.shapes[sh.ID]; ok {
			return nil, fmt.Errorf("duplicate geography shape %q", sh.ID)
		}
		s.shapes[sh.ID] = sh
		s.geoIDs = append(s.geoIDs, sh.ID)
	}
	sort.Strings(s.geoIDs)

	for _, rec := range records {
		k := pairKey{rec.Category, rec.Indicator}
		s.records[k] = append(s.records[k], rec)
		if _, ok := s.shapes[rec.GeoID]; !ok {
			s.unmatched++
			log.Warn().
				Str("category", rec.Category).
				Str("indicator", rec.Indicator).
				Str("geo_id", rec.GeoID).
				Msg("no boundary shape for geography")
		}
	}

	for k := range s.records {
		recs := s.records[k]
		sort.Slice(recs, func(i, j int) bool { return recs[i].GeoID < recs[j].GeoID })
	}
	return s, nil
}

// Query returns the records for a (category, indicator) pair, ordered by
// geography id. The returned slice is shared and must not be mutated.
func (s *Store) Query(category, indicator string) ([]types.NormalizedRecord, error) {
	recs, ok := s.records[pairKey{category, indicator}]
	if !ok {
		return nil, &catalog.UnknownIndicatorError{Category: category, Indicator: indicator}
	}
	return recs, nil
}

// Shape returns the boundary for a geography id.
func (s *Store) Shape(geoID string) (types.GeographyShape, error) {
	sh, ok := s.shapes[geoID]
	if !ok {
		return types.GeographyShape{}, &UnknownGeographyError{GeoID: geoID}
	}
	return sh, nil
}

// Geographies returns every known geography id, sorted.
func (s *Store) Geographies() []string {
	out := make([]string, len(s.geoIDs))
	copy(out, s.geoIDs)
	return out
}

// Unmatched reports how many records had no boundary shape at build time.
func (s *Store) Unmatched() int { return s.unmatched }
