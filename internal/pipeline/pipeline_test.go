package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	shp "github.com/jonas-p/go-shp"
	"github.com/rs/zerolog"

	"healthinsights/internal/catalog"
	"healthinsights/internal/config"
	"healthinsights/internal/loader"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c := catalog.New()
	err := c.Register(catalog.Definition{
		Category:  "Health Care Access and Quality",
		Indicator: "% Uninsured",
		Unit:      "%",
		Domain:    catalog.Domain{Min: 0, Max: 100},
		ScaleHint: "Viridis",
		Rule:      catalog.MappingRule{Source: "chr", Field: "% Uninsured", Transform: catalog.Identity},
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return c
}

func writeFixtures(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "chr.csv")
	err := os.WriteFile(csvPath, []byte(
		"FIPS,% Uninsured\n37001,12.4\n37003,9.1\n37999,8.0\n"), 0644)
	if err != nil {
		t.Fatalf("write csv: %v", err)
	}

	shpPath := filepath.Join(dir, "counties.shp")
	w, err := shp.Create(shpPath, shp.POLYGON)
	if err != nil {
		t.Fatalf("create shapefile: %v", err)
	}
	w.SetFields([]shp.Field{shp.StringField("GEOID", 5), shp.StringField("NAME", 20)})
	for i, c := range []struct{ geoid, name string }{
		{"37001", "Alamance"},
		{"37003", "Alexander"},
	} {
		ring := []shp.Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 0}}
		poly := shp.Polygon(*shp.NewPolyLine([][]shp.Point{ring}))
		w.Write(&poly)
		if err := w.WriteAttribute(i, 0, c.geoid); err != nil {
			t.Fatalf("write attribute: %v", err)
		}
		if err := w.WriteAttribute(i, 1, c.name); err != nil {
			t.Fatalf("write attribute: %v", err)
		}
	}
	w.Close()

	return config.Config{
		Geometry: loader.GeometryDescriptor{Path: shpPath, IDField: "GEOID", NameField: "NAME"},
		Sources: []loader.Descriptor{
			{Name: "chr", Kind: loader.KindTable, Path: csvPath, Delimiter: ",", KeyColumn: "FIPS"},
		},
	}
}

func TestRunBuildsStore(t *testing.T) {
	cfg := writeFixtures(t)
	st, err := Run(context.Background(), cfg, testCatalog(t), zerolog.Nop())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	records, err := st.Query("Health Care Access and Quality", "% Uninsured")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	// 37999 has no boundary; counted but not fatal.
	if st.Unmatched() != 1 {
		t.Fatalf("unmatched = %d, want 1", st.Unmatched())
	}
	if _, err := st.Shape("37001"); err != nil {
		t.Fatalf("shape: %v", err)
	}
}

func TestRunFailsOnMissingSource(t *testing.T) {
	cfg := writeFixtures(t)
	cfg.Sources[0].Path = filepath.Join(t.TempDir(), "missing.csv")
	if _, err := Run(context.Background(), cfg, testCatalog(t), zerolog.Nop()); err == nil {
		t.Fatal("expected run to fail for a missing source")
	}
}

func TestRunFailsOnUnmappedSource(t *testing.T) {
	cfg := writeFixtures(t)
	cfg.Sources[0].Name = "not-in-catalog"
	if _, err := Run(context.Background(), cfg, testCatalog(t), zerolog.Nop()); err == nil {
		t.Fatal("expected run to fail for a source no definition maps to")
	}
}

func TestRunFailsOnDuplicateRows(t *testing.T) {
	cfg := writeFixtures(t)
	err := os.WriteFile(cfg.Sources[0].Path, []byte(
		"FIPS,% Uninsured\n37001,12.4\n37001,9.1\n"), 0644)
	if err != nil {
		t.Fatalf("write csv: %v", err)
	}
	if _, err := Run(context.Background(), cfg, testCatalog(t), zerolog.Nop()); err == nil {
		t.Fatal("expected run to fail on duplicate geography rows")
	}
}
