// Package pipeline runs the one-shot ingestion sequence: load raw sources,
// normalize against the catalog, build the store. A run either returns a
// complete store or an error; callers publish the result only on success, so
// queries never observe a partial build.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"healthinsights/internal/catalog"
	"healthinsights/internal/config"
	"healthinsights/internal/loader"
	"healthinsights/internal/normalize"
	"healthinsights/internal/store"
	"healthinsights/internal/types"
)

const (
	loadAttempts = 3
	loadBackoff  = 500 * time.Millisecond
)

// Run executes the full load -> normalize -> build sequence.
func Run(ctx context.Context, cfg config.Config, cat *catalog.Catalog, log zerolog.Logger) (*store.Store, error) {
	start := time.Now()

	var shapes []types.GeographyShape
	err := withRetry(ctx, log, "geometry", func() error {
		var err error
		shapes, err = loader.LoadShapes(cfg.Geometry)
		return err
	})
	if err != nil {
		return nil, err
	}
	log.Info().Int("shapes", len(shapes)).Str("path", cfg.Geometry.Path).Msg("geometry loaded")

	var records []types.NormalizedRecord
	for _, src := range cfg.Sources {
		defs := cat.Definitions(src.Name)
		if len(defs) == 0 {
			return nil, fmt.Errorf("source %q: no catalog definitions map to it", src.Name)
		}
		required := cat.Fields(src.Name)

		var raws []types.RawRecord
		err := withRetry(ctx, log, src.Name, func() error {
			var err error
			raws, err = loadSource(ctx, src, required)
			return err
		})
		if err != nil {
			return nil, err
		}
		log.Info().Str("source", src.Name).Int("rows", len(raws)).Msg("source loaded")

		for _, def := range defs {
			normed, err := normalize.Normalize(raws, def)
			if err != nil {
				return nil, fmt.Errorf("normalize %s / %s: %w", def.Category, def.Indicator, err)
			}
			records = append(records, normed...)
		}
	}

	st, err := store.Build(records, shapes, log)
	if err != nil {
		return nil, fmt.Errorf("build store: %w", err)
	}
	log.Info().
		Int("records", len(records)).
		Int("unmatched", st.Unmatched()).
		Dur("elapsed", time.Since(start)).
		Msg("store built")
	return st, nil
}

func loadSource(ctx context.Context, src loader.Descriptor, required []string) ([]types.RawRecord, error) {
	switch src.Kind {
	case loader.KindTable:
		return loader.LoadTable(src, required)
	case loader.KindOracle:
		ora, err := loader.OpenOracle(config.Oracle())
		if err != nil {
			return nil, &loader.LoadError{Source: src.Name, Err: err}
		}
		defer ora.Close()
		return ora.Load(ctx, src, required)
	default:
		return nil, &loader.LoadError{Source: src.Name, Err: fmt.Errorf("unknown source kind %q", src.Kind)}
	}
}

// withRetry retries a load with doubling backoff. Loads are the only
// blocking I/O in the core; they never run concurrently with a store swap.
func withRetry(ctx context.Context, log zerolog.Logger, source string, fn func() error) error {
	backoff := loadBackoff
	var err error
	for attempt := 1; attempt <= loadAttempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt == loadAttempts {
			break
		}
		log.Warn().Err(err).Str("source", source).Int("attempt", attempt).Msg("load failed, retrying")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return err
}
