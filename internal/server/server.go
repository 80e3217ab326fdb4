// Package server exposes the metadata lookup and the Instagram integration
// over HTTP.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dtnitsch/url-metadata-extractor/models"
	"github.com/dtnitsch/url-metadata-extractor/pkg/db"
	"github.com/dtnitsch/url-metadata-extractor/pkg/instagram"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	ServiceName = "URL Metadata Extractor"
	Version     = "1.0.0"
)

// Lookuper is satisfied by *lookup.Service.
type Lookuper interface {
	Lookup(ctx context.Context, rawURL string) (*models.BusinessMetadata, error)
}

// HistoryReader is satisfied by *db.DB.
type HistoryReader interface {
	ListExtractions(limit int) ([]db.Extraction, error)
}

type Server struct {
	lookup    Lookuper
	instagram *instagram.Client
	history   HistoryReader
	logger    *slog.Logger
}

type Option func(*Server)

// WithHistory enables GET /extractions.
func WithHistory(h HistoryReader) Option {
	return func(s *Server) { s.history = h }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

func New(lookup Lookuper, ig *instagram.Client, opts ...Option) *Server {
	s := &Server{lookup: lookup, instagram: ig, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed handler with the middleware stack applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(RequestLogger(s.logger))
	r.Use(Recovery(s.logger))
	r.Use(CORS)

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(middleware.NoCache)

		r.Post("/extract", s.handleExtract)

		r.Get("/auth/instagram/url", s.handleInstagramAuthURL)
		r.Post("/auth/instagram/callback", s.handleInstagramCallback)
		r.Get("/instagram/pages", s.handleInstagramPages)
		r.Post("/instagram/profile", s.handleInstagramProfile)

		r.Get("/extractions", s.handleExtractions)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
