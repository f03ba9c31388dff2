package loader

import (
	"fmt"
	"strings"

	shp "github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"

	"healthinsights/internal/types"
)

// LoadShapes reads the county boundary shapefile into GeographyShapes keyed
// by the descriptor's id field. TIGER county layers are already in lon/lat,
// so no reprojection happens here.
func LoadShapes(g GeometryDescriptor) ([]types.GeographyShape, error) {
	r, err := shp.Open(g.Path)
	if err != nil {
		return nil, &LoadError{Source: g.Path, Err: err}
	}
	defer r.Close()

	fields := r.Fields()
	idIdx, nameIdx := -1, -1
	for i, f := range fields {
		switch f.String() {
		case g.IDField:
			idIdx = i
		case g.NameField:
			nameIdx = i
		}
	}
	if idIdx < 0 {
		return nil, &LoadError{Source: g.Path, Err: fmt.Errorf("attribute %q not in shapefile", g.IDField)}
	}
	if nameIdx < 0 {
		return nil, &LoadError{Source: g.Path, Err: fmt.Errorf("attribute %q not in shapefile", g.NameField)}
	}

	var shapes []types.GeographyShape
	for r.Next() {
		idx, shape := r.Shape()
		poly, ok := shape.(*shp.Polygon)
		if !ok {
			// Skip non-polygon geometries (shouldn't exist in a county layer)
			continue
		}

		id := strings.TrimSpace(r.ReadAttribute(idx, idIdx))
		if id == "" {
			return nil, &LoadError{Source: g.Path, Err: fmt.Errorf("feature %d has empty %s", idx, g.IDField)}
		}

		shapes = append(shapes, types.GeographyShape{
			ID:       id,
			Name:     strings.TrimSpace(r.ReadAttribute(idx, nameIdx)),
			Geometry: polygonToMulti(poly),
			Bound: orb.Bound{
				Min: orb.Point{poly.Box.MinX, poly.Box.MinY},
				Max: orb.Point{poly.Box.MaxX, poly.Box.MaxY},
			},
		})
	}
	return shapes, nil
}

// polygonToMulti splits the shapefile's flat points slice into parts and
// re-expresses them as orb geometry. Each part becomes its own single-ring
// polygon, which is how renderers consume county layers.
func polygonToMulti(poly *shp.Polygon) orb.MultiPolygon {
	numParts := len(poly.Parts)
	multi := make(orb.MultiPolygon, 0, numParts)
	for partIdx := 0; partIdx < numParts; partIdx++ {
		start := poly.Parts[partIdx]
		end := int32(len(poly.Points))
		if partIdx+1 < numParts {
			end = poly.Parts[partIdx+1]
		}
		ring := make(orb.Ring, 0, int(end-start))
		for i := start; i < end; i++ {
			pt := poly.Points[i]
			ring = append(ring, orb.Point{pt.X, pt.Y})
		}
		multi = append(multi, orb.Polygon{ring})
	}
	return multi
}
