// Package config loads the engine configuration: source descriptors, the
// boundary shapefile, and the HTTP surface. Oracle credentials come from the
// environment (or a .env file), never from YAML.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"healthinsights/internal/loader"
)

// HTTP configures the serving surface.
type HTTP struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// Config is the full engine configuration.
type Config struct {
	HTTP     HTTP                      `yaml:"http"`
	Geometry loader.GeometryDescriptor `yaml:"geometry" validate:"required"`
	Sources  []loader.Descriptor       `yaml:"sources" validate:"required,min=1,dive"`
}

// Load reads and validates the YAML config at path, after overlaying a .env
// file (if present) onto the process environment.
func Load(path string) (Config, error) {
	loadEnvFile(".env")

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if len(cfg.HTTP.CORSOrigins) == 0 {
		cfg.HTTP.CORSOrigins = []string{"*"}
	}
	for i := range cfg.Sources {
		if cfg.Sources[i].Delimiter == "" {
			cfg.Sources[i].Delimiter = ","
		}
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	for _, s := range cfg.Sources {
		if s.Kind == loader.KindTable && s.Path == "" {
			return Config{}, fmt.Errorf("validate config: table source %q needs a path", s.Name)
		}
		if s.Kind == loader.KindOracle && s.Table == "" {
			return Config{}, fmt.Errorf("validate config: oracle source %q needs a table", s.Name)
		}
	}
	return cfg, nil
}

// Oracle reads the Oracle connection settings from the environment.
func Oracle() loader.OracleConfig {
	return loader.OracleConfig{
		Host:           getEnvOrDefault("DB_HOST", "localhost"),
		Port:           getEnvOrDefault("DB_PORT", "1521"),
		Service:        getEnvOrDefault("DB_SERVICE", "XE"),
		Username:       getEnvOrDefault("DB_USERNAME", ""),
		Password:       getEnvOrDefault("DB_PASSWORD", ""),
		WalletLocation: getEnvOrDefault("DB_WALLET_LOCATION", ""),
	}
}

// loadEnvFile reads environment variables from a .env file. Missing file is
// fine; existing env vars win.
func loadEnvFile(filename string) {
	file, err := os.Open(filename)
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		idx := strings.Index(line, "=")
		if idx <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		value := strings.TrimSpace(line[idx+1:])
		if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
			value = value[1 : len(value)-1]
		}
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
