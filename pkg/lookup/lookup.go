// Package lookup turns a URL into a BusinessMetadata record: social-host
// routing, page fetch, parse, reconciliation and an optional history entry.
package lookup

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dtnitsch/url-metadata-extractor/models"
	"github.com/dtnitsch/url-metadata-extractor/pkg/detector"
	"github.com/dtnitsch/url-metadata-extractor/pkg/extractor"
	"github.com/dtnitsch/url-metadata-extractor/pkg/fetcher"
)

// PageFetcher is satisfied by *fetcher.Fetcher.
type PageFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*fetcher.Page, error)
}

// History records produced records. *db.DB satisfies it.
type History interface {
	InsertExtraction(requestedURL, finalURL string, record *models.BusinessMetadata) (int64, error)
}

type Service struct {
	fetcher PageFetcher
	history History
	logger  *slog.Logger
}

type Option func(*Service)

// WithHistory records every produced record in h.
func WithHistory(h History) Option {
	return func(s *Service) { s.history = h }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

func NewService(f PageFetcher, opts ...Option) *Service {
	s := &Service{fetcher: f, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Lookup validates rawURL and builds its record. Social-network URLs are
// answered without a fetch. The record's website and URL-based industry come
// from rawURL even when the fetch was redirected; the final URL is only kept
// in history. Errors come from the fetch layer unchanged, so
// callers can classify them with errors.Is / errors.As.
func (s *Service) Lookup(ctx context.Context, rawURL string) (*models.BusinessMetadata, error) {
	if err := fetcher.ValidateURL(rawURL); err != nil {
		return nil, err
	}

	if platform, ok := detector.DetectSocialPlatform(rawURL); ok {
		s.logger.Debug("social platform URL, skipping fetch", "url", rawURL, "platform", platform.Name)
		record := extractor.SocialRecord(rawURL, platform)
		s.record(rawURL, rawURL, record)
		return record, nil
	}

	page, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	doc, err := page.Document()
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	record := extractor.Extract(doc, rawURL)
	s.logger.Debug("extracted metadata",
		"url", rawURL,
		"final_url", page.URL,
		"business_name", models.Deref(record.BusinessName),
		"industry", models.Deref(record.Industry))

	s.record(rawURL, page.URL, record)
	return record, nil
}

func (s *Service) record(requestedURL, finalURL string, record *models.BusinessMetadata) {
	if s.history == nil {
		return
	}
	if _, err := s.history.InsertExtraction(requestedURL, finalURL, record); err != nil {
		s.logger.Warn("failed to record extraction", "url", requestedURL, "error", err)
	}
}
