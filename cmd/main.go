package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"healthinsights/internal/catalog"
	"healthinsights/internal/config"
	"healthinsights/internal/logger"
	"healthinsights/internal/pipeline"
	"healthinsights/internal/resolver"
	"healthinsights/internal/store"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to the engine config file")
	flag.Parse()

	log := logger.New()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	cat := catalog.Default()
	ctx := context.Background()

	// Startup ingestion: load -> normalize -> build, sequential and one-shot.
	st, err := pipeline.Run(ctx, cfg, cat, log)
	if err != nil {
		log.Fatal().Err(err).Msg("ingestion failed")
	}

	stores := store.NewHandle(st)
	res := resolver.New(cat, stores)

	args := flag.Args()
	if len(args) == 0 {
		browse(cat, res)
		return
	}
	switch args[0] {
	case "serve":
		runServe(ctx, cfg, cat, stores, res, log)
	case "view":
		if len(args) != 3 {
			fmt.Fprintln(os.Stderr, "usage: healthinsights view <category> <indicator>")
			os.Exit(2)
		}
		runView(res, args[1], args[2])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q (expected serve, view, or no command for the browser)\n", args[0])
		os.Exit(2)
	}
}
