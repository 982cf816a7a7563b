// Package provider holds helpers shared by the external service adapters.
package provider

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/healdata/dd-annotator/internal/domain"
)

// maxSnippet bounds how much of a failed response body ends up in errors and logs.
const maxSnippet = 512

// HTTPDoer is satisfied by *http.Client and *httpretry.Client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ResolveURL resolves ref against base the way a browser resolves a link:
// an absolute ref path ("/annotate/") replaces the base path, a relative one
// ("metadata") is appended to the base directory.
func ResolveURL(base, ref string) (*url.URL, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", base, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", base)
	}
	r, err := url.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("parse ref %q: %w", ref, err)
	}
	return u.ResolveReference(r), nil
}

// ReadBody reads the response body and turns a non-2xx status into a
// *domain.StatusError carrying a snippet of the body.
func ReadBody(resp *http.Response, service, target string) ([]byte, error) {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read body: %w", service, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.StatusError{
			Service:    service,
			Target:     target,
			StatusCode: resp.StatusCode,
			Body:       Snippet(data),
		}
	}
	return data, nil
}

// Snippet returns at most maxSnippet bytes of body for logging.
func Snippet(body []byte) string {
	if len(body) <= maxSnippet {
		return string(body)
	}
	return string(body[:maxSnippet]) + "..."
}
