package serve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/dtnitsch/url-metadata-extractor/internal/common"
	"github.com/dtnitsch/url-metadata-extractor/internal/server"
	"github.com/dtnitsch/url-metadata-extractor/models"
	"github.com/dtnitsch/url-metadata-extractor/pkg/db"
	"github.com/dtnitsch/url-metadata-extractor/pkg/fetcher"
	"github.com/dtnitsch/url-metadata-extractor/pkg/instagram"
	"github.com/dtnitsch/url-metadata-extractor/pkg/lookup"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

func ServeAction(c *cli.Context) error {
	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to load config: %v", err), 2)
	}
	if c.IsSet("port") {
		cfg.Server.Port = c.Int("port")
	}

	logger := common.NewLogger(c.App.ErrWriter, cfg.Log.Level, cfg.Log.Format, c.Bool("quiet"))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", ":"+strconv.Itoa(cfg.Server.Port))
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to listen: %v", err), 2)
	}
	return run(ctx, logger, cfg, ln)
}

// run serves on ln until ctx is cancelled, then shuts down gracefully.
func run(ctx context.Context, logger *slog.Logger, cfg *models.Config, ln net.Listener) error {
	lookupOpts := []lookup.Option{lookup.WithLogger(logger)}
	serverOpts := []server.Option{server.WithLogger(logger)}

	if cfg.History.DBPath != "" {
		database, err := db.Open(cfg.History.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer database.Close()
		lookupOpts = append(lookupOpts, lookup.WithHistory(database))
		serverOpts = append(serverOpts, server.WithHistory(database))
		logger.Info("extraction history enabled", "path", database.Path())
	}

	svc := lookup.NewService(fetcher.NewFetcher(fetcher.ConfigFrom(cfg.Fetch)), lookupOpts...)
	ig := instagram.NewClient(cfg.Instagram)
	if !ig.Configured() {
		logger.Warn("instagram credentials not configured; OAuth endpoints will return 500")
	}

	srv := &http.Server{
		Handler:      server.New(svc, ig, serverOpts...).Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		logger.Info("server stopped")
		return nil
	})
	return g.Wait()
}
