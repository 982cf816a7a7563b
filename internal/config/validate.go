package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.HTTP.validate(); err != nil {
		return fmt.Errorf("http: %w", err)
	}

	for name, raw := range map[string]string{
		"mds.url":       c.MDS.URL,
		"nemoserve.url": c.NemoServe.URL,
		"sapbert.url":   c.SAPBERT.URL,
	} {
		if err := validateURL(raw); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	if c.MDS.Limit <= 0 {
		return fmt.Errorf("mds.limit must be > 0 (got %d)", c.MDS.Limit)
	}
	if c.MDS.Workers < 1 {
		return fmt.Errorf("mds.workers must be >= 1 (got %d)", c.MDS.Workers)
	}

	if err := c.Paths.validate(); err != nil {
		return fmt.Errorf("paths: %w", err)
	}

	return nil
}

func (h *HTTPConfig) validate() error {
	if h.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", h.Timeout)
	}
	if h.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts must be >= 1 (got %d)", h.MaxAttempts)
	}
	if h.BackoffBase <= 0 {
		return fmt.Errorf("backoff_base must be > 0 (got %v)", h.BackoffBase)
	}
	return nil
}

// The annotated dir is wiped on every run, so it must never hold the input.
func (p *PathsConfig) validate() error {
	if strings.TrimSpace(p.DictionariesDir) == "" {
		return fmt.Errorf("dictionaries_dir is required")
	}
	if strings.TrimSpace(p.AnnotatedDir) == "" {
		return fmt.Errorf("annotated_dir is required")
	}

	in, err := filepath.Abs(p.DictionariesDir)
	if err != nil {
		return fmt.Errorf("dictionaries_dir: %w", err)
	}
	out, err := filepath.Abs(p.AnnotatedDir)
	if err != nil {
		return fmt.Errorf("annotated_dir: %w", err)
	}
	if in == out || isWithin(in, out) {
		return fmt.Errorf("annotated_dir %q must not contain dictionaries_dir %q", p.AnnotatedDir, p.DictionariesDir)
	}
	return nil
}

func isWithin(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https (got %q)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("host is required")
	}
	return nil
}
