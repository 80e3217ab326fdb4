// Package fetcher downloads a single page for metadata extraction.
//
// It follows redirects (up to a limit), validates the final status, caps the
// body size and decodes the body to UTF-8 using the declared charset.
// Failures are classified so callers can tell bad input, timeouts and
// upstream rejections apart.
package fetcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dtnitsch/url-metadata-extractor/models"
	"github.com/dtnitsch/url-metadata-extractor/pkg/caching"
	"github.com/dtnitsch/url-metadata-extractor/pkg/document"
	"golang.org/x/net/html/charset"
)

var (
	// ErrInvalidURL is returned for URLs that are not absolute http(s) URLs.
	ErrInvalidURL = errors.New("invalid URL format")
	// ErrTimeout is returned when the remote site does not answer in time.
	ErrTimeout = errors.New("request timed out")
)

// StatusError reports a non-2xx response.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error: %d", e.StatusCode)
}

// Config configures the fetcher.
type Config struct {
	Timeout      time.Duration // Default: 10s.
	UserAgent    string
	MaxBytes     int64 // Default: 5MB.
	MaxRedirects int   // Default: 10.
}

func (c *Config) defaults() {
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.UserAgent == "" {
		c.UserAgent = models.DefaultUserAgent
	}
	if c.MaxBytes <= 0 {
		c.MaxBytes = 5 * 1024 * 1024
	}
	if c.MaxRedirects <= 0 {
		c.MaxRedirects = 10
	}
}

// ConfigFrom maps the service configuration onto a fetcher Config.
func ConfigFrom(cfg models.HTTPConfig) Config {
	return Config{
		Timeout:      cfg.Timeout,
		UserAgent:    cfg.UserAgent,
		MaxBytes:     cfg.MaxBytes,
		MaxRedirects: cfg.MaxRedirects,
	}
}

// Page is a fetched page.
type Page struct {
	// URL is the final URL after redirects.
	URL         string
	StatusCode  int
	ContentType string
	HTML        string
}

// Document parses the page markup.
func (p *Page) Document() (*document.HTML, error) {
	return document.ParseString(p.HTML)
}

type Fetcher struct {
	client *http.Client
	config Config
	cache  *caching.Cache
}

func NewFetcher(cfg Config) *Fetcher {
	cfg.defaults()
	maxRedirects := cfg.MaxRedirects
	return &Fetcher{
		client: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("too many redirects (%d)", len(via))
				}
				return nil
			},
		},
		config: cfg,
	}
}

// WithCache makes f read and populate c.
func (f *Fetcher) WithCache(c *caching.Cache) *Fetcher {
	f.cache = c
	return f
}

// ValidateURL checks that rawURL is an absolute http or https URL with a host.
func ValidateURL(rawURL string) error {
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return ErrInvalidURL
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ErrInvalidURL
	}
	return nil
}

// Fetch downloads rawURL.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	if err := ValidateURL(rawURL); err != nil {
		return nil, err
	}

	if f.cache != nil {
		if e, ok := f.cache.Get(rawURL); ok {
			return pageFromEntry(e)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	req.Header.Set("User-Agent", f.config.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %s", ErrTimeout, rawURL)
		}
		return nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: rawURL}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.config.MaxBytes))
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %s", ErrTimeout, rawURL)
		}
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	entry := &caching.Entry{
		URL:         resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}
	if f.cache != nil {
		// A failed cache write only costs a refetch next time.
		_ = f.cache.Set(rawURL, entry)
	}
	return pageFromEntry(entry)
}

func pageFromEntry(e *caching.Entry) (*Page, error) {
	r, err := charset.NewReader(bytes.NewReader(e.Body), e.ContentType)
	if err != nil {
		return nil, fmt.Errorf("failed to decode body: %w", err)
	}
	decoded, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode body: %w", err)
	}
	return &Page{
		URL:         e.URL,
		StatusCode:  e.StatusCode,
		ContentType: e.ContentType,
		HTML:        string(decoded),
	}, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
