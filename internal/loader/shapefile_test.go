package loader

import (
	"errors"
	"path/filepath"
	"testing"

	shp "github.com/jonas-p/go-shp"
)

// writeCountyShapefile writes a minimal two-county polygon layer with GEOID
// and NAME attributes.
func writeCountyShapefile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "counties.shp")

	w, err := shp.Create(path, shp.POLYGON)
	if err != nil {
		t.Fatalf("create shapefile: %v", err)
	}
	w.SetFields([]shp.Field{
		shp.StringField("GEOID", 5),
		shp.StringField("NAME", 20),
	})

	square := func(x, y float64) *shp.Polygon {
		ring := []shp.Point{{X: x, Y: y}, {X: x, Y: y + 1}, {X: x + 1, Y: y + 1}, {X: x + 1, Y: y}, {X: x, Y: y}}
		p := shp.Polygon(*shp.NewPolyLine([][]shp.Point{ring}))
		return &p
	}

	counties := []struct {
		geoid, name string
		x, y        float64
	}{
		{"37001", "Alamance", -79.5, 35.9},
		{"37003", "Alexander", -81.2, 35.8},
	}
	for i, c := range counties {
		w.Write(square(c.x, c.y))
		if err := w.WriteAttribute(i, 0, c.geoid); err != nil {
			t.Fatalf("write geoid: %v", err)
		}
		if err := w.WriteAttribute(i, 1, c.name); err != nil {
			t.Fatalf("write name: %v", err)
		}
	}
	w.Close()
	return path
}

func TestLoadShapes(t *testing.T) {
	path := writeCountyShapefile(t)
	shapes, err := LoadShapes(GeometryDescriptor{Path: path, IDField: "GEOID", NameField: "NAME"})
	if err != nil {
		t.Fatalf("load shapes: %v", err)
	}
	if len(shapes) != 2 {
		t.Fatalf("expected 2 shapes, got %d", len(shapes))
	}
	first := shapes[0]
	if first.ID != "37001" || first.Name != "Alamance" {
		t.Fatalf("unexpected first shape %+v", first)
	}
	if len(first.Geometry) != 1 || len(first.Geometry[0][0]) != 5 {
		t.Fatalf("geometry not carried over: %+v", first.Geometry)
	}
	if first.Bound.Min[0] != -79.5 || first.Bound.Max[1] != 36.9 {
		t.Fatalf("bound wrong: %+v", first.Bound)
	}
}

func TestLoadShapesUnknownAttribute(t *testing.T) {
	path := writeCountyShapefile(t)
	_, err := LoadShapes(GeometryDescriptor{Path: path, IDField: "FIPS", NameField: "NAME"})
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected LoadError for unknown id field, got %v", err)
	}
}

func TestLoadShapesMissingFile(t *testing.T) {
	_, err := LoadShapes(GeometryDescriptor{Path: "nope.shp", IDField: "GEOID", NameField: "NAME"})
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected LoadError, got %v", err)
	}
}
