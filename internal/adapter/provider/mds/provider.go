// Package mds reads data dictionaries from the HEAL metadata service.
package mds

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/healdata/dd-annotator/internal/domain"
	"github.com/healdata/dd-annotator/internal/provider"
	"github.com/healdata/dd-annotator/pkg/jsonx"
)

const (
	// DefaultBaseURL is used when MDS_URL is not configured.
	DefaultBaseURL = "https://preprod.healdata.org/mds/"
	// DefaultLimit caps the number of dictionaries listed.
	DefaultLimit = 1000
	// IdentifierPrefix is the GUID prefix every data dictionary carries.
	IdentifierPrefix = "dg.H34L/"

	guidType    = "data_dictionary"
	serviceName = "mds"
)

var (
	listSchema = jsonx.MustCompileSchema("mds list response", `{
		"type": "array",
		"items": {"type": "string"}
	}`)
	documentSchema = jsonx.MustCompileSchema("mds metadata response", `{
		"type": "object"
	}`)
)

// Provider talks to the metadata service.
type Provider struct {
	baseURL string
	client  provider.HTTPDoer
	log     *slog.Logger
}

// NewProvider creates a Provider for the metadata service at baseURL.
func NewProvider(baseURL string, client provider.HTTPDoer, logger *slog.Logger) (*Provider, error) {
	if _, err := provider.ResolveURL(baseURL, "metadata"); err != nil {
		return nil, fmt.Errorf("mds: %w", err)
	}
	return &Provider{
		baseURL: baseURL,
		client:  client,
		log:     logger.With("adapter", serviceName),
	}, nil
}

// ListDictionaries returns up to limit data dictionary identifiers.
func (p *Provider) ListDictionaries(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	u, err := provider.ResolveURL(p.baseURL, "metadata")
	if err != nil {
		return nil, fmt.Errorf("mds: list dictionaries: %w", err)
	}
	q := url.Values{}
	q.Set("_guid_type", guidType)
	q.Set("limit", strconv.Itoa(limit))
	u.RawQuery = q.Encode()

	body, err := p.get(ctx, u.String(), "dictionary list")
	if err != nil {
		return nil, fmt.Errorf("mds: list dictionaries: %w", err)
	}

	if err := listSchema.Validate(body); err != nil {
		return nil, fmt.Errorf("mds: list dictionaries: %w: %v", domain.ErrMalformedResponse, err)
	}

	var ids []string
	if err := json.Unmarshal(body, &ids); err != nil {
		return nil, fmt.Errorf("mds: list dictionaries: decode json: %w", err)
	}

	p.log.DebugContext(ctx, "mds list", slog.Int("count", len(ids)), slog.Int("limit", limit))
	return ids, nil
}

// GetDictionary returns the metadata document for one dictionary. The
// identifier must carry IdentifierPrefix; otherwise no request is made.
func (p *Provider) GetDictionary(ctx context.Context, id string) (json.RawMessage, error) {
	if !strings.HasPrefix(id, IdentifierPrefix) {
		return nil, fmt.Errorf("mds: get dictionary %q: %w: expected prefix %q", id, domain.ErrInvalidIdentifier, IdentifierPrefix)
	}

	u, err := provider.ResolveURL(p.baseURL, "metadata")
	if err != nil {
		return nil, fmt.Errorf("mds: get dictionary %q: %w", id, err)
	}
	u = u.JoinPath(id)

	body, err := p.get(ctx, u.String(), id)
	if err != nil {
		return nil, fmt.Errorf("mds: get dictionary %q: %w", id, err)
	}

	if err := documentSchema.Validate(body); err != nil {
		return nil, fmt.Errorf("mds: get dictionary %q: %w: %v", id, domain.ErrMalformedResponse, err)
	}

	return json.RawMessage(body), nil
}

func (p *Provider) get(ctx context.Context, reqURL, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	p.log.DebugContext(ctx, "mds request", slog.String("url", reqURL))

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return provider.ReadBody(resp, serviceName, target)
}
