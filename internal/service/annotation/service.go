// Package annotation links free text to ontology concepts in two stages:
// entity recognition, then per-mention concept normalization.
package annotation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/healdata/dd-annotator/internal/domain"
	"github.com/healdata/dd-annotator/pkg/ctxutil"
)

//go:generate moq -out recognizer_mock_test.go -pkg annotation . recognizer
//go:generate moq -out normalizer_mock_test.go -pkg annotation . normalizer

type recognizer interface {
	Recognize(ctx context.Context, text string) ([]domain.Token, error)
}

type normalizer interface {
	Normalize(ctx context.Context, text string) ([]domain.Concept, error)
}

// Service runs the recognizer and normalizer for a piece of text.
type Service struct {
	log        *slog.Logger
	recognizer recognizer
	normalizer normalizer
}

// NewService creates a new annotation service.
func NewService(log *slog.Logger, rec recognizer, norm normalizer) *Service {
	return &Service{
		log:        log.With("service", "annotation"),
		recognizer: rec,
		normalizer: norm,
	}
}

// Annotate returns one denotation per recognized mention, in recognizer
// order, each linked to the normalizer's top candidate.
//
// A non-OK status from the recognizer is logged and yields no denotations.
// Any normalizer failure, and any transport or decoding failure from the
// recognizer, aborts the call. A mention with empty text or no candidates is
// an upstream contract violation.
func (s *Service) Annotate(ctx context.Context, text string) ([]domain.Denotation, error) {
	log := s.log.With(slog.String("run_id", ctxutil.RunIDString(ctx)), slog.String("source", ctxutil.SourceFromCtx(ctx)))

	tokens, err := s.recognizer.Recognize(ctx, text)
	if err != nil {
		if errors.Is(err, domain.ErrUpstreamStatus) {
			log.WarnContext(ctx, "recognizer rejected text, skipping",
				slog.String("error", err.Error()),
			)
			return []domain.Denotation{}, nil
		}
		return nil, fmt.Errorf("annotation: recognize: %w", err)
	}

	denotations := make([]domain.Denotation, 0, len(tokens))
	for i, tok := range tokens {
		if tok.Text == "" {
			return nil, fmt.Errorf("annotation: %w", domain.NewContractViolation("recognizer token %d has empty text", i))
		}

		candidates, err := s.normalizer.Normalize(ctx, tok.Text)
		if err != nil {
			return nil, fmt.Errorf("annotation: normalize %q: %w", tok.Text, err)
		}
		if len(candidates) == 0 {
			return nil, fmt.Errorf("annotation: %w", domain.NewContractViolation("normalizer returned no candidates for %q", tok.Text))
		}

		d := domain.NewDenotation(tok, candidates[0])
		log.InfoContext(ctx, fmt.Sprintf("+ %s: %s", d.Text, d.Obj))
		denotations = append(denotations, d)
	}

	return denotations, nil
}
