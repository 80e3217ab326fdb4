package extract

import (
	"fmt"
	"strings"
	"time"

	"github.com/dtnitsch/url-metadata-extractor/internal/common"
	"github.com/dtnitsch/url-metadata-extractor/models"
	"github.com/dtnitsch/url-metadata-extractor/pkg/caching"
	"github.com/dtnitsch/url-metadata-extractor/pkg/db"
	"github.com/dtnitsch/url-metadata-extractor/pkg/fetcher"
	"github.com/dtnitsch/url-metadata-extractor/pkg/lookup"
	"github.com/dtnitsch/url-metadata-extractor/pkg/storage"
	"github.com/urfave/cli/v2"
)

func ExtractAction(c *cli.Context) error {
	logger := common.NewLogger(c.App.ErrWriter, "info", "json", c.Bool("quiet"))
	startTime := time.Now()
	store := &storage.Storage{}

	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to load config: %v", err), 2)
	}

	config := &models.FetchConfig{
		URLs:        []string{},
		WorkerCount: c.Int("workers"),
	}
	if c.IsSet("urls") {
		config.URLs = append(config.URLs, strings.Split(c.String("urls"), ",")...)
	}
	if path := c.String("urls-file"); path != "" {
		lines, err := store.ReadLines(path)
		if err != nil {
			return cli.Exit(fmt.Sprintf("failed to read URL file: %v", err), 2)
		}
		config.URLs = append(config.URLs, lines...)
	}
	if len(config.URLs) == 0 {
		return cli.Exit(`Error: No URLs provided

Usage:
  url-metadata extract --urls "https://example.com,https://example.org"
  url-metadata extract --urls-file urls.txt`, 1)
	}

	// Fail fast on anything that is not a URL even after cleanup.
	sanitizedURLs, invalidURLs := common.SanitizeAndValidateURLs(config.URLs)
	if len(invalidURLs) > 0 {
		var b strings.Builder
		fmt.Fprintf(&b, "Error: %d URL(s) are malformed (even after cleanup):\n", len(invalidURLs))
		for _, badURL := range invalidURLs {
			fmt.Fprintf(&b, "  - %s\n", badURL)
		}
		b.WriteString("\nNote: URLs are auto-cleaned (whitespace trimmed, trailing punctuation removed, markdown links extracted)")
		return cli.Exit(b.String(), 1)
	}
	config.URLs = sanitizedURLs

	f := fetcher.NewFetcher(fetcher.ConfigFrom(cfg.Fetch))
	if dir := c.String("cache-dir"); dir != "" {
		maxAge, err := time.ParseDuration(c.String("max-age"))
		if err != nil {
			return cli.Exit(fmt.Sprintf("invalid max-age duration: %v", err), 2)
		}
		cache, err := caching.NewCache(dir, maxAge)
		if err != nil {
			return cli.Exit(fmt.Sprintf("failed to initialize cache: %v", err), 2)
		}
		f.WithCache(cache)
	}

	opts := []lookup.Option{lookup.WithLogger(logger)}
	if c.Bool("save") {
		dbPath := c.String("db")
		if dbPath == "" {
			dbPath = cfg.History.DBPath
		}
		database, err := db.Open(dbPath)
		if err != nil {
			return cli.Exit(fmt.Sprintf("failed to open database: %v", err), 2)
		}
		defer database.Close()
		opts = append(opts, lookup.WithHistory(database))
	}
	svc := lookup.NewService(f, opts...)

	results := run(c.Context, logger, svc, config)

	data, err := encode(results, c.String("format"), c.String("fields"))
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	if out := c.String("output"); out != "" {
		if err := store.SaveFile(out, data); err != nil {
			return cli.Exit(err.Error(), 2)
		}
		logger.Info("results written", "path", out)
	} else if _, err := c.App.Writer.Write(data); err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	logger.Info("Extraction complete",
		"total", len(results),
		"succeeded", len(results)-failed,
		"failed", failed,
		"elapsed_seconds", time.Since(startTime).Seconds())

	if failed == len(results) {
		return cli.Exit("all extractions failed", 1)
	}
	return nil
}
