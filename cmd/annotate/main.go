// Command annotate links every field of the downloaded data dictionaries to
// ontology concepts. Each field's name, description and encodings are sent
// to the NemoServe recognizer; every recognized mention is then normalized
// with SAPBERT. Results are written to paths.annotated_dir, one file per
// dictionary plus _summary.json, and the summary is printed to stdout.
//
// Flags:
//
//	-env      path to an optional .env file (default ".env")
//	-in       override paths.dictionaries_dir
//	-out      override paths.annotated_dir
//	-version  print the build version and exit
//
// A failing field never stops the run. Exit codes: 0 = success,
// 1 = setup error, unusable directories or interrupted run.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/healdata/dd-annotator/internal/adapter/provider/nemoserve"
	"github.com/healdata/dd-annotator/internal/adapter/provider/sapbert"
	"github.com/healdata/dd-annotator/internal/app"
	"github.com/healdata/dd-annotator/internal/app/annotator"
	"github.com/healdata/dd-annotator/internal/service/annotation"
	"github.com/healdata/dd-annotator/pkg/jsonx"
)

func main() {
	envPath := flag.String("env", ".env", "path to an optional .env file")
	inDir := flag.String("in", "", "input directory (overrides paths.dictionaries_dir)")
	outDir := flag.String("out", "", "output directory (overrides paths.annotated_dir)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(app.BuildVersion())
		return
	}

	env, err := app.Setup("annotate", *envPath)
	if err != nil {
		slog.Error("setup", slog.String("error", err.Error()))
		os.Exit(1)
	}
	cfg, logger := env.Config, env.Logger

	if *inDir != "" {
		cfg.Paths.DictionariesDir = *inDir
	}
	if *outDir != "" {
		cfg.Paths.AnnotatedDir = *outDir
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	recognizer, err := nemoserve.NewProvider(cfg.NemoServe.URL, env.HTTP, logger)
	if err != nil {
		logger.Error("create recognizer", slog.String("error", err.Error()))
		os.Exit(1)
	}
	normalizer, err := sapbert.NewProvider(cfg.SAPBERT.URL, env.HTTP, logger)
	if err != nil {
		logger.Error("create normalizer", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := annotation.NewService(logger, recognizer, normalizer)
	pipeline := annotator.NewPipeline(logger, svc, annotator.Config{
		InputDir:  cfg.Paths.DictionariesDir,
		OutputDir: cfg.Paths.AnnotatedDir,
	})

	summary, runErr := pipeline.Run(ctx)

	out, err := jsonx.MarshalCanonical(summary)
	if err != nil {
		logger.Error("encode summary", slog.String("error", err.Error()))
		os.Exit(1)
	}
	os.Stdout.Write(out)

	if runErr != nil {
		logger.Error("annotation failed", slog.String("error", runErr.Error()))
		os.Exit(1)
	}
}
