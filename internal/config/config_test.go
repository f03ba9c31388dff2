package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
geometry:
  path: data/nc_counties.shp
  id_field: GEOID
  name_field: NAME
sources:
  - name: chr
    kind: table
    path: data/chr_2024.csv
    key_column: FIPS
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("addr default = %q", cfg.HTTP.Addr)
	}
	if len(cfg.HTTP.CORSOrigins) != 1 || cfg.HTTP.CORSOrigins[0] != "*" {
		t.Fatalf("cors default = %v", cfg.HTTP.CORSOrigins)
	}
	if cfg.Sources[0].Delimiter != "," {
		t.Fatalf("delimiter default = %q", cfg.Sources[0].Delimiter)
	}
}

func TestLoadRejectsMissingGeometry(t *testing.T) {
	path := writeConfig(t, `
sources:
  - name: chr
    kind: table
    path: data/chr_2024.csv
    key_column: FIPS
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation failure for missing geometry")
	}
}

func TestLoadRejectsBadSourceKind(t *testing.T) {
	path := writeConfig(t, `
geometry:
  path: data/nc_counties.shp
  id_field: GEOID
  name_field: NAME
sources:
  - name: chr
    kind: ftp
    path: data/chr_2024.csv
    key_column: FIPS
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation failure for unknown source kind")
	}
}

func TestLoadRejectsTableWithoutPath(t *testing.T) {
	path := writeConfig(t, `
geometry:
  path: data/nc_counties.shp
  id_field: GEOID
  name_field: NAME
sources:
  - name: chr
    kind: table
    key_column: FIPS
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected failure for table source without a path")
	}
}

func TestOracleFromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "dbhost")
	t.Setenv("DB_PORT", "1522")
	t.Setenv("DB_SERVICE", "HEALTH")
	t.Setenv("DB_USERNAME", "reader")
	t.Setenv("DB_PASSWORD", "secret")

	cfg := Oracle()
	if cfg.Host != "dbhost" || cfg.Port != "1522" || cfg.Service != "HEALTH" {
		t.Fatalf("unexpected oracle config %+v", cfg)
	}
	if cfg.Username != "reader" || cfg.Password != "secret" {
		t.Fatalf("credentials not read from env")
	}
}
