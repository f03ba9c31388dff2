package catalog

import (
	"errors"
	"testing"
)

func def(category, indicator string) Definition {
	return Definition{
		Category:  category,
		Indicator: indicator,
		Unit:      "%",
		Domain:    Domain{Min: 0, Max: 100},
		ScaleHint: "Viridis",
		Rule:      MappingRule{Source: "chr", Field: indicator, Transform: Identity},
	}
}

func TestRegisterPreservesDeclarationOrder(t *testing.T) {
	c := New()
	for _, d := range []Definition{
		def("Outcomes", "Zeta"),
		def("Outcomes", "Alpha"),
		def("Access", "Beta"),
		def("Outcomes", "Mid"),
	} {
		if err := c.Register(d); err != nil {
			t.Fatalf("register: %v", err)
		}
	}

	cats := c.Categories()
	if len(cats) != 2 || cats[0] != "Outcomes" || cats[1] != "Access" {
		t.Fatalf("unexpected category order %v", cats)
	}

	inds, err := c.Indicators("Outcomes")
	if err != nil {
		t.Fatalf("indicators: %v", err)
	}
	want := []string{"Zeta", "Alpha", "Mid"}
	for i := range want {
		if inds[i] != want[i] {
			t.Fatalf("indicator order %v, want %v", inds, want)
		}
	}
}

func TestRegisterDuplicateFails(t *testing.T) {
	c := New()
	if err := c.Register(def("A", "x")); err != nil {
		t.Fatalf("register: %v", err)
	}
	err := c.Register(def("A", "x"))
	var dup *DuplicateIndicatorError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateIndicatorError, got %v", err)
	}
	// Same indicator name in another category is fine.
	if err := c.Register(def("B", "x")); err != nil {
		t.Fatalf("register in other category: %v", err)
	}
}

func TestResolveUnknown(t *testing.T) {
	c := New()
	_, err := c.Resolve("A", "x")
	var unknown *UnknownIndicatorError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownIndicatorError, got %v", err)
	}
	_, err = c.Indicators("A")
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownIndicatorError for category, got %v", err)
	}
}

func TestFieldsCollectsDenominators(t *testing.T) {
	c := New()
	d := def("A", "rate")
	d.Rule.Transform = Rate
	d.Rule.Field = "# Providers"
	d.Rule.Denominator = "Population"
	d.Rule.Per = 100000
	if err := c.Register(d); err != nil {
		t.Fatalf("register: %v", err)
	}
	fields := c.Fields("chr")
	if len(fields) != 2 || fields[0] != "# Providers" || fields[1] != "Population" {
		t.Fatalf("unexpected fields %v", fields)
	}
	if got := c.Fields("other"); got != nil {
		t.Fatalf("expected no fields for unknown source, got %v", got)
	}
}

func TestDefaultCatalogTabOrder(t *testing.T) {
	c := Default()
	want := []string{
		"Economic Stability",
		"Education Access and Quality",
		"Health Care Access and Quality",
		"Neighborhood and Built Environment",
		"Social and Community Context",
		"Health Outcomes",
		"Behavioral Factors",
	}
	got := c.Categories()
	if len(got) != len(want) {
		t.Fatalf("expected %d categories, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tab %d = %q, want %q", i, got[i], want[i])
		}
	}
	for _, cat := range got {
		inds, err := c.Indicators(cat)
		if err != nil || len(inds) == 0 {
			t.Fatalf("category %q has no indicators (err %v)", cat, err)
		}
		for _, ind := range inds {
			d, err := c.Resolve(cat, ind)
			if err != nil {
				t.Fatalf("resolve %s/%s: %v", cat, ind, err)
			}
			if d.Unit == "" || d.Rule.Field == "" {
				t.Fatalf("%s/%s missing metadata: %+v", cat, ind, d)
			}
		}
	}
}
