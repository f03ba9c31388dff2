// Package catalog is the declarative registry mapping each (category,
// indicator) pair to its source column(s), transform, and display metadata.
// The catalog is built once before normalization and immutable afterward;
// declaration order is the only defined ordering of tabs and dropdowns.
package catalog

import "fmt"

// Transform names the mapping rule applied to the raw field(s).
type Transform string

const (
	Identity Transform = "identity" // parse the field as-is
	Scale    Transform = "scale"    // parsed value * Factor (unit conversion)
	Rate     Transform = "rate"     // Field / Denominator * Per
	Recode   Transform = "recode"   // categorical value -> number via Codes
)

// MappingRule describes which raw field(s) produce the indicator and how.
type MappingRule struct {
	Source      string // source descriptor name, e.g. "chr"
	Field       string
	Transform   Transform
	Factor      float64            // Scale only
	Denominator string             // Rate only
	Per         float64            // Rate only, e.g. 100000
	Codes       map[string]float64 // Recode only, matched case-insensitively
}

// Domain is the expected value range after transformation. Values outside it
// are flagged out-of-range, not clamped.
type Domain struct {
	Min float64
	Max float64
}

// Definition is the static metadata for one indicator.
type Definition struct {
	Category  string
	Indicator string
	Unit      string
	Domain    Domain
	ScaleHint string // color scale name, e.g. "Viridis"
	Rule      MappingRule
}

// DuplicateIndicatorError reports a (category, indicator) registered twice.
type DuplicateIndicatorError struct {
	Category  string
	Indicator string
}

func (e *DuplicateIndicatorError) Error() string {
	return fmt.Sprintf("indicator %q already registered in category %q", e.Indicator, e.Category)
}

// UnknownIndicatorError reports a lookup for a pair the catalog never saw.
type UnknownIndicatorError struct {
	Category  string
	Indicator string
}

func (e *UnknownIndicatorError) Error() string {
	if e.Indicator == "" {
		return fmt.Sprintf("unknown category %q", e.Category)
	}
	return fmt.Sprintf("unknown indicator %q in category %q", e.Indicator, e.Category)
}

type pairKey struct{ category, indicator string }

// Catalog holds definitions in declaration order. Construct with New, fill
// with Register, then treat as read-only.
type Catalog struct {
	categories []string
	byCategory map[string][]string
	defs       map[pairKey]Definition
}

func New() *Catalog {
	return &Catalog{
		byCategory: make(map[string][]string),
		defs:       make(map[pairKey]Definition),
	}
}

// Register adds a definition, preserving declaration order for both the
// category list and the indicator list within the category.
func (c *Catalog) Register(def Definition) error {
	k := pairKey{def.Category, def.Indicator}
	if _, ok := c.defs[k]; ok {
		return &DuplicateIndicatorError{Category: def.Category, Indicator: def.Indicator}
	}
	if _, ok := c.byCategory[def.Category]; !ok {
		c.categories = append(c.categories, def.Category)
	}
	c.byCategory[def.Category] = append(c.byCategory[def.Category], def.Indicator)
	c.defs[k] = def
	return nil
}

// Resolve returns the definition for the pair.
func (c *Catalog) Resolve(category, indicator string) (Definition, error) {
	def, ok := c.defs[pairKey{category, indicator}]
	if !ok {
		return Definition{}, &UnknownIndicatorError{Category: category, Indicator: indicator}
	}
	return def, nil
}

// Categories returns category names in declaration order.
func (c *Catalog) Categories() []string {
	out := make([]string, len(c.categories))
	copy(out, c.categories)
	return out
}

// Indicators returns the indicator names of a category in declaration order.
func (c *Catalog) Indicators(category string) ([]string, error) {
	names, ok := c.byCategory[category]
	if !ok {
		return nil, &UnknownIndicatorError{Category: category}
	}
	out := make([]string, len(names))
	copy(out, names)
	return out, nil
}

// Definitions returns every definition whose rule reads from the named
// source, in declaration order. Used to drive normalization per source.
func (c *Catalog) Definitions(source string) []Definition {
	var out []Definition
	for _, cat := range c.categories {
		for _, ind := range c.byCategory[cat] {
			def := c.defs[pairKey{cat, ind}]
			if def.Rule.Source == source {
				out = append(out, def)
			}
		}
	}
	return out
}

// Fields returns the distinct raw columns the named source must provide.
func (c *Catalog) Fields(source string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(f string) {
		if f != "" && !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	for _, def := range c.Definitions(source) {
		add(def.Rule.Field)
		add(def.Rule.Denominator)
	}
	return out
}
