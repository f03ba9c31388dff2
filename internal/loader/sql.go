package loader

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/sijms/go-ora/v2"

	"healthinsights/internal/types"
)

// OracleConfig holds connection settings for an Oracle-backed source.
// Credentials come from the environment, never from the YAML config.
type OracleConfig struct {
	Host           string
	Port           string
	Service        string
	Username       string
	Password       string
	WalletLocation string
}

// dsn builds a properly encoded connection string for Oracle Autonomous Database.
func dsn(c OracleConfig) string {
	if c.WalletLocation != "" {
		// Wallet-based mTLS connection
		return fmt.Sprintf(
			"oracle://%s:%s@%s:%s/%s?ssl=true&wallet_location=%s",
			c.Username, c.Password, c.Host, c.Port, c.Service, url.PathEscape(c.WalletLocation))
	}
	return (&url.URL{
		Scheme:   "oracle",
		User:     url.UserPassword(c.Username, c.Password), // escapes automatically
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.Service,
		RawQuery: "ssl=true",
	}).String()
}

// OracleSource is an open connection serving one or more table descriptors.
type OracleSource struct {
	db *sql.DB
}

// OpenOracle connects and pings so a bad DSN fails at startup, not mid-load.
func OpenOracle(cfg OracleConfig) (*OracleSource, error) {
	db, err := sql.Open("oracle", dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("open oracle connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping oracle: %w", err)
	}
	return &OracleSource{db: db}, nil
}

func (o *OracleSource) Close() error { return o.db.Close() }

// Load selects the key column plus every required column from the
// descriptor's table, ordered by key so re-ingestion is deterministic.
func (o *OracleSource) Load(ctx context.Context, d Descriptor, required []string) ([]types.RawRecord, error) {
	cols := append([]string{d.KeyColumn}, required...)
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = fmt.Sprintf("%q", c)
	}
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %q", strings.Join(quoted, ", "), d.Table, d.KeyColumn)

	rows, err := o.db.QueryContext(ctx, query)
	if err != nil {
		return nil, &LoadError{Source: d.Name, Err: fmt.Errorf("query %s: %w", d.Table, err)}
	}
	defer rows.Close()

	var records []types.RawRecord
	for rows.Next() {
		dest := make([]sql.NullString, len(cols))
		scan := make([]any, len(cols))
		for i := range dest {
			scan[i] = &dest[i]
		}
		if err := rows.Scan(scan...); err != nil {
			return nil, &LoadError{Source: d.Name, Err: fmt.Errorf("scan row: %w", err)}
		}
		rec := types.RawRecord{
			GeoID:  strings.TrimSpace(dest[0].String),
			Values: make(map[string]string, len(required)),
			Source: d.Name,
		}
		if rec.GeoID == "" {
			return nil, &LoadError{Source: d.Name, Err: fmt.Errorf("row with empty %s", d.KeyColumn)}
		}
		for i, c := range required {
			rec.Values[c] = strings.TrimSpace(dest[i+1].String)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &LoadError{Source: d.Name, Err: err}
	}
	return records, nil
}
