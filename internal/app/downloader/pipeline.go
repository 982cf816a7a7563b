// Package downloader runs the download stage: it mirrors every data
// dictionary published by the metadata service into a local directory.
package downloader

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/healdata/dd-annotator/internal/adapter/filestore"
	"github.com/healdata/dd-annotator/internal/domain"
	"github.com/healdata/dd-annotator/pkg/ctxutil"
)

//go:generate moq -out source_mock_test.go -pkg downloader . dictionarySource

type dictionarySource interface {
	ListDictionaries(ctx context.Context, limit int) ([]string, error)
	GetDictionary(ctx context.Context, id string) (json.RawMessage, error)
}

// Config holds download settings.
type Config struct {
	OutputDir string
	Limit     int
	Workers   int
}

// Result holds download statistics.
type Result struct {
	RunID        string
	Dictionaries int
	Fields       int
	Unparsable   int // written, but not readable as a dictionary
}

// Pipeline fetches dictionaries and writes them as canonical JSON files.
type Pipeline struct {
	log    *slog.Logger
	source dictionarySource
	cfg    Config
}

// NewPipeline creates a new Pipeline. Workers below 1 means sequential.
func NewPipeline(log *slog.Logger, source dictionarySource, cfg Config) *Pipeline {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Pipeline{
		log:    log.With("pipeline", "download"),
		source: source,
		cfg:    cfg,
	}
}

// Run clears OutputDir, lists every dictionary and writes each one to
// <id with non-word characters replaced by "_">.json. Any listing, fetch or
// write failure aborts the run.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	runID := uuid.New()
	ctx = ctxutil.WithRunID(ctx, runID)
	log := p.log.With(slog.String("run_id", runID.String()))
	result := Result{RunID: runID.String()}

	if err := filestore.ResetDir(p.cfg.OutputDir); err != nil {
		return result, fmt.Errorf("downloader: %w", err)
	}

	ids, err := p.source.ListDictionaries(ctx, p.cfg.Limit)
	if err != nil {
		return result, fmt.Errorf("downloader: %w", err)
	}
	log.InfoContext(ctx, "dictionaries listed", slog.Int("count", len(ids)))

	seen := make(map[string]string, len(ids))
	for _, id := range ids {
		name := filestore.DocumentName(id)
		if prev, ok := seen[name]; ok {
			return result, fmt.Errorf("downloader: %q and %q both map to %s", prev, id, name)
		}
		seen[name] = id
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Workers)

	for _, id := range ids {
		g.Go(func() error {
			fields, parsed, err := p.download(gctx, log, id)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			result.Dictionaries++
			result.Fields += fields
			if !parsed {
				result.Unparsable++
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, fmt.Errorf("downloader: %w", err)
	}

	log.InfoContext(ctx, "download complete",
		slog.Int("dictionaries", result.Dictionaries),
		slog.Int("fields", result.Fields),
		slog.Int("unparsable", result.Unparsable),
	)
	return result, nil
}

// download fetches and stores one dictionary and returns its field count.
func (p *Pipeline) download(ctx context.Context, log *slog.Logger, id string) (fields int, parsed bool, err error) {
	ctx = ctxutil.WithSource(ctx, id)

	doc, err := p.source.GetDictionary(ctx, id)
	if err != nil {
		return 0, false, err
	}

	name := filestore.DocumentName(id)
	if err := filestore.WriteRawJSON(filepath.Join(p.cfg.OutputDir, name), doc); err != nil {
		return 0, false, err
	}

	dd, err := domain.ParseDictionary(id, doc)
	if err != nil {
		log.WarnContext(ctx, "downloaded document is not a readable dictionary",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return 0, false, nil
	}

	log.InfoContext(ctx, "dictionary saved",
		slog.String("id", id),
		slog.String("file", name),
		slog.Int("fields", len(dd.Fields)),
	)
	return len(dd.Fields), true, nil
}
