package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dtnitsch/url-metadata-extractor/internal/common"
	"github.com/dtnitsch/url-metadata-extractor/models"
	"github.com/dtnitsch/url-metadata-extractor/pkg/db"
	"github.com/dtnitsch/url-metadata-extractor/pkg/fetcher"
	"github.com/dtnitsch/url-metadata-extractor/pkg/instagram"
)

const notConfiguredDetail = "Instagram credentials not configured. Please set INSTAGRAM_CLIENT_ID and INSTAGRAM_CLIENT_SECRET."

// GET /
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": ServiceName,
		"version": Version,
		"endpoints": map[string]string{
			"extract":            "POST /extract - Extract business metadata from URL",
			"health":             "GET /health - Health check",
			"instagramAuthUrl":   "GET /auth/instagram/url - Instagram OAuth URL",
			"instagramCallback":  "POST /auth/instagram/callback - Exchange OAuth code for a long-lived token",
			"instagramPages":     "GET /instagram/pages?accessToken= - Connected pages and business accounts",
			"instagramProfile":   "POST /instagram/profile - Instagram business profile as metadata",
			"extractionsHistory": "GET /extractions?limit= - Recent extractions",
		},
	})
}

// GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// POST /extract
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req models.ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	record, err := s.lookup.Lookup(r.Context(), req.URL)
	if err != nil {
		status, detail := extractError(err)
		common.LoggerFrom(r.Context(), s.logger).Warn("extraction failed", "url", req.URL, "status", status, "error", err)
		writeDetail(w, status, detail)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// extractError maps lookup failures onto a status and a client-facing message.
func extractError(err error) (int, string) {
	var statusErr *fetcher.StatusError
	switch {
	case errors.Is(err, fetcher.ErrInvalidURL):
		return http.StatusBadRequest, "Invalid URL format"
	case errors.Is(err, fetcher.ErrTimeout):
		return http.StatusRequestTimeout, "Request timed out"
	case errors.As(err, &statusErr):
		return statusErr.StatusCode, fmt.Sprintf("HTTP error: %d", statusErr.StatusCode)
	default:
		return http.StatusInternalServerError, "Extraction failed: " + err.Error()
	}
}

// instagramError maps Instagram client failures. prefix names the operation for
// upstream rejections, fallback for anything else.
func instagramError(err error, prefix, fallback string) (int, string) {
	var apiErr *instagram.APIError
	switch {
	case errors.Is(err, instagram.ErrNotConfigured):
		return http.StatusInternalServerError, notConfiguredDetail
	case errors.As(err, &apiErr):
		return apiErr.StatusCode, prefix + ": " + apiErr.Body
	default:
		return http.StatusInternalServerError, fallback + ": " + err.Error()
	}
}

// GET /auth/instagram/url
func (s *Server) handleInstagramAuthURL(w http.ResponseWriter, r *http.Request) {
	authURL, err := s.instagram.AuthURL()
	if err != nil {
		status, detail := instagramError(err, "Instagram API error", "Failed to build auth URL")
		writeDetail(w, status, detail)
		return
	}
	writeJSON(w, http.StatusOK, authURL)
}

// POST /auth/instagram/callback
func (s *Server) handleInstagramCallback(w http.ResponseWriter, r *http.Request) {
	var req models.InstagramAuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		writeDetail(w, http.StatusBadRequest, "code is required")
		return
	}

	token, err := s.instagram.ExchangeCode(r.Context(), req.Code, req.RedirectURI)
	if err != nil {
		status, detail := instagramError(err, "Token exchange failed", "OAuth callback failed")
		common.LoggerFrom(r.Context(), s.logger).Warn("instagram code exchange failed", "status", status, "error", err)
		writeDetail(w, status, detail)
		return
	}
	writeJSON(w, http.StatusOK, token)
}

// GET /instagram/pages?accessToken=
func (s *Server) handleInstagramPages(w http.ResponseWriter, r *http.Request) {
	accessToken := r.URL.Query().Get("accessToken")
	if accessToken == "" {
		writeDetail(w, http.StatusBadRequest, "accessToken is required")
		return
	}

	raw, err := s.instagram.Pages(r.Context(), accessToken)
	if err != nil {
		status, detail := instagramError(err, "Failed to fetch pages", "Failed to retrieve Instagram accounts")
		writeDetail(w, status, detail)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

// POST /instagram/profile
func (s *Server) handleInstagramProfile(w http.ResponseWriter, r *http.Request) {
	var req models.InstagramProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.AccessToken == "" || req.InstagramBusinessID == "" {
		writeDetail(w, http.StatusBadRequest, "accessToken and instagramBusinessId are required")
		return
	}

	record, err := s.instagram.Profile(r.Context(), req.AccessToken, req.InstagramBusinessID)
	if err != nil {
		status, detail := instagramError(err, "Failed to fetch Instagram profile", "Profile extraction failed")
		writeDetail(w, status, detail)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// GET /extractions?limit=
func (s *Server) handleExtractions(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeDetail(w, http.StatusNotFound, "extraction history is disabled")
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeDetail(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	rows, err := s.history.ListExtractions(limit)
	if err != nil {
		common.LoggerFrom(r.Context(), s.logger).Error("failed to list extractions", "error", err)
		writeDetail(w, http.StatusInternalServerError, "failed to list extractions")
		return
	}
	if rows == nil {
		rows = []db.Extraction{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"extractions": rows})
}
