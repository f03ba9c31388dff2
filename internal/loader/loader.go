// Package loader reads raw source tables and county geometries into memory.
// One loader per raw source kind; each is pure with respect to its
// descriptor, so re-ingestion of unchanged inputs yields identical output.
package loader

import "fmt"

// Source kinds.
const (
	KindTable  = "table"
	KindOracle = "oracle"
)

// Descriptor names a tabular source and how to read it.
type Descriptor struct {
	Name          string `yaml:"name" validate:"required"`
	Kind          string `yaml:"kind" validate:"required,oneof=table oracle"`
	Path          string `yaml:"path"`
	Table         string `yaml:"table"`
	Delimiter     string `yaml:"delimiter"`
	KeyColumn     string `yaml:"key_column" validate:"required"`
	VintageColumn string `yaml:"vintage_column"`
}

// GeometryDescriptor names the county boundary shapefile and the DBF fields
// carrying the join key and display name.
type GeometryDescriptor struct {
	Path      string `yaml:"path" validate:"required"`
	IDField   string `yaml:"id_field" validate:"required"`
	NameField string `yaml:"name_field" validate:"required"`
}

// LoadError wraps any failure to read a source: unreachable, malformed, or
// schema mismatch. Fatal to that source's load.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load source %q: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
