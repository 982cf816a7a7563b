// Package nemoserve is the token recognizer adapter. It sends free text to a
// NemoServe token-classification model and returns the recognized mentions.
package nemoserve

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
	// DefaultBaseURL is used when NEMOSERVE_URL is not configured.
	DefaultBaseURL = "https://med-nemo.apps.renci.org/"
	// ModelName selects the token classification model.
	ModelName = "token_classification"

	annotatePath = "/annotate/"
	serviceName  = "nemoserve"
)

var responseSchema = jsonx.MustCompileSchema("nemoserve response", `{
	"type": "object",
	"required": ["denotations"],
	"properties": {
		"denotations": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["text"],
				"properties": {"text": {"type": "string"}}
			}
		}
	}
}`)

type annotateRequest struct {
	Text      string `json:"text"`
	ModelName string `json:"model_name"`
}

type annotateResponse struct {
	Denotations []domain.Token `json:"denotations"`
}

// Provider calls the NemoServe annotate endpoint.
type Provider struct {
	endpoint string
	client   provider.HTTPDoer
	log      *slog.Logger
}

// NewProvider creates a Provider for the NemoServe instance at baseURL.
func NewProvider(baseURL string, client provider.HTTPDoer, logger *slog.Logger) (*Provider, error) {
	endpoint, err := provider.ResolveURL(baseURL, annotatePath)
	if err != nil {
		return nil, fmt.Errorf("nemoserve: %w", err)
	}
	return &Provider{
		endpoint: endpoint.String(),
		client:   client,
		log:      logger.With("adapter", serviceName),
	}, nil
}

// Endpoint returns the resolved annotate URL.
func (p *Provider) Endpoint() string { return p.endpoint }

// Recognize returns the mentions found in text, in the order the service
// reports them. A non-success response is returned as *domain.StatusError;
// a body without a denotations list wraps domain.ErrMalformedResponse.
func (p *Provider) Recognize(ctx context.Context, text string) ([]domain.Token, error) {
	payload, err := json.Marshal(annotateRequest{Text: text, ModelName: ModelName})
	if err != nil {
		return nil, fmt.Errorf("nemoserve: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("nemoserve: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	p.log.DebugContext(ctx, "nemoserve request", slog.String("text", text))

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nemoserve: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := provider.ReadBody(resp, serviceName, p.endpoint)
	if err != nil {
		return nil, err
	}

	p.log.DebugContext(ctx, "nemoserve response", slog.String("body", provider.Snippet(body)))

	if err := responseSchema.Validate(body); err != nil {
		return nil, fmt.Errorf("nemoserve: %w: %v", domain.ErrMalformedResponse, err)
	}

	var parsed annotateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("nemoserve: decode json: %w", err)
	}

	return parsed.Denotations, nil
}
