// Package sapbert is the concept normalizer adapter. It maps a mention to
// ranked ontology concept candidates using a SAPBERT model.
package sapbert

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/healdata/dd-annotator/internal/domain"
	"github.com/healdata/dd-annotator/internal/provider"
	"github.com/healdata/dd-annotator/pkg/jsonx"
)

const (
	// DefaultBaseURL is used when SAPBERT_URL is not configured.
	DefaultBaseURL = "https://med-nemo-sapbert.apps.renci.org/"
	// ModelName selects the SAPBERT linking model.
	ModelName = "sapbert"

	annotatePath = "/annotate/"
	serviceName  = "sapbert"
)

var responseSchema = jsonx.MustCompileSchema("sapbert response", `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["curie", "label", "distance_score"],
		"properties": {
			"curie": {"type": "string"},
			"label": {"type": "string"},
			"distance_score": {"type": "number"}
		}
	}
}`)

type annotateRequest struct {
	Text      string `json:"text"`
	ModelName string `json:"model_name"`
}

// Provider calls the SAPBERT annotate endpoint.
type Provider struct {
	endpoint string
	client   provider.HTTPDoer
	log      *slog.Logger
}

// NewProvider creates a Provider for the SAPBERT instance at baseURL.
func NewProvider(baseURL string, client provider.HTTPDoer, logger *slog.Logger) (*Provider, error) {
	endpoint, err := provider.ResolveURL(baseURL, annotatePath)
	if err != nil {
		return nil, fmt.Errorf("sapbert: %w", err)
	}
	return &Provider{
		endpoint: endpoint.String(),
		client:   client,
		log:      logger.With("adapter", serviceName),
	}, nil
}

// Endpoint returns the resolved annotate URL.
func (p *Provider) Endpoint() string { return p.endpoint }

// Normalize returns concept candidates for text, closest match first.
// An empty list is returned as-is; deciding whether that is acceptable is
// up to the caller.
func (p *Provider) Normalize(ctx context.Context, text string) ([]domain.Concept, error) {
	payload, err := json.Marshal(annotateRequest{Text: text, ModelName: ModelName})
	if err != nil {
		return nil, fmt.Errorf("sapbert: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("sapbert: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	p.log.DebugContext(ctx, "sapbert request", slog.String("text", text))

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sapbert: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := provider.ReadBody(resp, serviceName, text)
	if err != nil {
		return nil, err
	}

	if err := responseSchema.Validate(body); err != nil {
		return nil, fmt.Errorf("sapbert: %w: %v", domain.ErrMalformedResponse, err)
	}

	var candidates []domain.Concept
	if err := json.Unmarshal(body, &candidates); err != nil {
		return nil, fmt.Errorf("sapbert: decode json: %w", err)
	}

	p.log.DebugContext(ctx, "sapbert response",
		slog.String("text", text),
		slog.Int("candidates", len(candidates)),
	)

	return candidates, nil
}
