// Package annotator runs the annotation stage over a directory of
// downloaded data dictionaries.
package annotator

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/healdata/dd-annotator/internal/adapter/filestore"
	"github.com/healdata/dd-annotator/internal/domain"
	"github.com/healdata/dd-annotator/pkg/ctxutil"
)

//go:generate moq -out annotator_mock_test.go -pkg annotator . annotator

type annotator interface {
	Annotate(ctx context.Context, text string) ([]domain.Denotation, error)
}

// Config holds the directories the pipeline reads from and writes to.
type Config struct {
	InputDir  string
	OutputDir string
}

// Pipeline annotates every field of every dictionary in InputDir, one field
// at a time. A failing field or file never stops the run.
type Pipeline struct {
	log       *slog.Logger
	annotator annotator
	cfg       Config
}

// NewPipeline creates a new Pipeline.
func NewPipeline(log *slog.Logger, ann annotator, cfg Config) *Pipeline {
	return &Pipeline{
		log:       log.With("pipeline", "annotate"),
		annotator: ann,
		cfg:       cfg,
	}
}

// Run clears OutputDir, annotates every input document and writes one
// artifact per document plus the run summary.
//
// The returned error is non-nil only when the directories cannot be used or
// ctx is cancelled; in the latter case the summary covers the work done so
// far and has already been written.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	runID := uuid.New()
	ctx = ctxutil.WithRunID(ctx, runID)
	log := p.log.With(slog.String("run_id", runID.String()))

	summary := Summary{
		RunID:             runID.String(),
		UnannotatedFields: []string{},
	}

	if err := filestore.ResetDir(p.cfg.OutputDir); err != nil {
		return summary, fmt.Errorf("annotator: %w", err)
	}

	docs, skipped, err := filestore.ListDocuments(p.cfg.InputDir)
	if err != nil {
		return summary, fmt.Errorf("annotator: %w", err)
	}
	for _, name := range skipped {
		log.InfoContext(ctx, "skipping non-dictionary file", slog.String("file", name))
	}
	log.InfoContext(ctx, "annotation started",
		slog.String("input_dir", p.cfg.InputDir),
		slog.Int("files", len(docs)),
	)

	var runErr error
	for _, name := range docs {
		if name == SummaryFile {
			log.InfoContext(ctx, "skipping summary file", slog.String("file", name))
			continue
		}
		if runErr = p.processFile(ctx, log, name, &summary); runErr != nil {
			break
		}
	}

	if err := filestore.WriteJSON(filepath.Join(p.cfg.OutputDir, SummaryFile), summary); err != nil {
		log.ErrorContext(ctx, "write summary", slog.String("error", err.Error()))
		if runErr == nil {
			runErr = fmt.Errorf("annotator: %w", err)
		}
	}

	p.logSummary(ctx, log, summary)
	return summary, runErr
}

// processFile annotates one document. It returns an error only when ctx is
// done; every other failure is logged and counted.
func (p *Pipeline) processFile(ctx context.Context, log *slog.Logger, name string, summary *Summary) error {
	ctx = ctxutil.WithSource(ctx, name)
	log = log.With(slog.String("file", name))

	data, err := os.ReadFile(filepath.Join(p.cfg.InputDir, name))
	if err != nil {
		log.ErrorContext(ctx, "read dictionary", slog.String("error", err.Error()))
		summary.FilesFailed++
		return nil
	}
	dd, err := domain.ParseDictionary(name, data)
	if err != nil {
		log.ErrorContext(ctx, "parse dictionary", slog.String("error", err.Error()))
		summary.FilesFailed++
		return nil
	}

	log.InfoContext(ctx, "annotating dictionary", slog.Int("fields", len(dd.Fields)))
	summary.FilesProcessed++

	artifact := Dictionary{Source: name, Fields: make([]Field, 0, len(dd.Fields))}
	var ctxErr error
	for _, f := range dd.Fields {
		if ctxErr = ctx.Err(); ctxErr != nil {
			break
		}
		artifact.Fields = append(artifact.Fields, p.processField(ctx, log, name, f, summary))
	}

	if err := filestore.WriteJSON(filepath.Join(p.cfg.OutputDir, name), artifact); err != nil {
		log.ErrorContext(ctx, "write artifact", slog.String("error", err.Error()))
	}
	return ctxErr
}

func (p *Pipeline) processField(ctx context.Context, log *slog.Logger, file string, f domain.Field, summary *Summary) Field {
	log.InfoContext(ctx, fmt.Sprintf("%s (%s): %s", f.Name, f.TypeFormat(), f.Description))
	for _, enc := range f.Encodings {
		log.InfoContext(ctx, "  "+enc.Line())
	}

	text := f.AnnotationText()
	out := Field{
		Name:        f.Name,
		Type:        f.TypeFormat(),
		Text:        text,
		Denotations: []domain.Denotation{},
	}
	summary.FieldsProcessed++

	denotations, err := p.annotate(ctx, text)
	if err != nil {
		log.ErrorContext(ctx, "annotate field",
			slog.String("field", f.Name),
			slog.String("text", text),
			slog.String("error", err.Error()),
		)
		summary.FieldsFailed++
		out.Error = err.Error()
	} else if len(denotations) > 0 {
		out.Denotations = denotations
	}

	summary.AnnotationsProduced += len(out.Denotations)
	if len(out.Denotations) == 0 {
		summary.UnannotatedFields = append(summary.UnannotatedFields, file+":"+f.Name)
	}
	return out
}

// annotate isolates a single field: a panic in the annotation stack is
// turned into an error for that field.
func (p *Pipeline) annotate(ctx context.Context, text string) (denotations []domain.Denotation, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("annotator: panic: %v", r)
		}
	}()
	return p.annotator.Annotate(ctx, text)
}

func (p *Pipeline) logSummary(ctx context.Context, log *slog.Logger, s Summary) {
	log.InfoContext(ctx, "annotation complete",
		slog.Int("files", s.FilesProcessed),
		slog.Int("files_failed", s.FilesFailed),
		slog.Int("fields", s.FieldsProcessed),
		slog.Int("fields_failed", s.FieldsFailed),
		slog.Int("annotations", s.AnnotationsProduced),
		slog.Int("unannotated", len(s.UnannotatedFields)),
	)
	for _, id := range s.UnannotatedFields {
		log.InfoContext(ctx, "unannotated field", slog.String("field", id))
	}
}
