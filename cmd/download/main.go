// Command download mirrors every data dictionary published by the HEAL
// metadata service into paths.dictionaries_dir, one canonical JSON file per
// dictionary. The directory is cleared first.
//
// Flags:
//
//	-env      path to an optional .env file (default ".env")
//	-limit    override mds.limit
//	-workers  override mds.workers
//	-version  print the build version and exit
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/healdata/dd-annotator/internal/adapter/provider/mds"
	"github.com/healdata/dd-annotator/internal/app"
	"github.com/healdata/dd-annotator/internal/app/downloader"
)

func main() {
	envPath := flag.String("env", ".env", "path to an optional .env file")
	limit := flag.Int("limit", 0, "maximum number of dictionaries to list (overrides mds.limit)")
	workers := flag.Int("workers", 0, "concurrent downloads (overrides mds.workers)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(app.BuildVersion())
		return
	}

	env, err := app.Setup("download", *envPath)
	if err != nil {
		slog.Error("setup", slog.String("error", err.Error()))
		os.Exit(1)
	}
	cfg, logger := env.Config, env.Logger

	if *limit > 0 {
		cfg.MDS.Limit = *limit
	}
	if *workers > 0 {
		cfg.MDS.Workers = *workers
	}

	source, err := mds.NewProvider(cfg.MDS.URL, env.HTTP, logger)
	if err != nil {
		logger.Error("create mds provider", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pipeline := downloader.NewPipeline(logger, source, downloader.Config{
		OutputDir: cfg.Paths.DictionariesDir,
		Limit:     cfg.MDS.Limit,
		Workers:   cfg.MDS.Workers,
	})

	result, err := pipeline.Run(ctx)
	if err != nil {
		logger.Error("download failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Printf("Number of data dictionaries: %d\n", result.Dictionaries)
	fmt.Printf("Number of fields: %d\n", result.Fields)
}
