package extract

import (
	"context"
	"log/slog"

	"github.com/dtnitsch/url-metadata-extractor/models"
	"golang.org/x/sync/errgroup"
)

// Lookuper is satisfied by *lookup.Service.
type Lookuper interface {
	Lookup(ctx context.Context, rawURL string) (*models.BusinessMetadata, error)
}

// Result is the outcome for one input URL.
type Result struct {
	URL    string                   `json:"url" yaml:"url"`
	Record *models.BusinessMetadata `json:"record,omitempty" yaml:"record,omitempty"`
	Error  string                   `json:"error,omitempty" yaml:"error,omitempty"`
}

// run looks up every URL with at most config.WorkerCount in flight.
// Results keep the input order; a failed URL never cancels the others.
func run(ctx context.Context, logger *slog.Logger, svc Lookuper, config *models.FetchConfig) []Result {
	workers := config.WorkerCount
	if workers <= 0 {
		workers = 4
	}
	logger.Info("Starting extraction", "url_count", len(config.URLs), "workers", workers)

	results := make([]Result, len(config.URLs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, rawURL := range config.URLs {
		g.Go(func() error {
			results[i].URL = rawURL
			record, err := svc.Lookup(gctx, rawURL)
			if err != nil {
				logger.Warn("extraction failed", "url", rawURL, "error", err)
				results[i].Error = err.Error()
				return nil
			}
			logger.Info("extracted", "url", rawURL, "business_name", models.Deref(record.BusinessName))
			results[i].Record = record
			return nil
		})
	}
	_ = g.Wait()

	return results
}
