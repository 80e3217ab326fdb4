package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dtnitsch/url-metadata-extractor/models"
)

// ErrNotFound is returned by GetExtraction for an unknown id.
var ErrNotFound = errors.New("extraction not found")

// Extraction is one history row.
type Extraction struct {
	ID           int64                    `json:"id" yaml:"id"`
	RequestedURL string                   `json:"requestedUrl" yaml:"requested_url"`
	FinalURL     string                   `json:"finalUrl" yaml:"final_url"`
	BusinessName string                   `json:"businessName,omitempty" yaml:"business_name,omitempty"`
	Industry     string                   `json:"industry,omitempty" yaml:"industry,omitempty"`
	CreatedAt    time.Time                `json:"createdAt" yaml:"created_at"`
	Record       *models.BusinessMetadata `json:"record,omitempty" yaml:"record,omitempty"`
}

// InsertExtraction stores record and returns its extraction_id.
func (db *DB) InsertExtraction(requestedURL, finalURL string, record *models.BusinessMetadata) (int64, error) {
	if record == nil {
		return 0, errors.New("record is nil")
	}
	data, err := json.Marshal(record)
	if err != nil {
		return 0, fmt.Errorf("failed to encode record: %w", err)
	}

	result, err := db.Exec(`
		INSERT INTO extractions (requested_url, final_url, business_name, industry, record_json)
		VALUES (?, ?, ?, ?, ?)
	`, requestedURL, finalURL, nullable(record.BusinessName), nullable(record.Industry), string(data))
	if err != nil {
		return 0, fmt.Errorf("failed to insert extraction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get extraction ID: %w", err)
	}
	return id, nil
}

// ListExtractions returns the newest rows first, without the stored record.
func (db *DB) ListExtractions(limit int) ([]Extraction, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.Query(`
		SELECT extraction_id, requested_url, final_url, business_name, industry, created_at
		FROM extractions
		ORDER BY extraction_id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query extractions: %w", err)
	}
	defer rows.Close()

	var out []Extraction
	for rows.Next() {
		var e Extraction
		var name, industry sql.NullString
		if err := rows.Scan(&e.ID, &e.RequestedURL, &e.FinalURL, &name, &industry, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan extraction: %w", err)
		}
		e.BusinessName = name.String
		e.Industry = industry.String
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetExtraction returns one row with its decoded record.
func (db *DB) GetExtraction(id int64) (*Extraction, error) {
	var e Extraction
	var name, industry sql.NullString
	var recordJSON string
	err := db.QueryRow(`
		SELECT extraction_id, requested_url, final_url, business_name, industry, record_json, created_at
		FROM extractions
		WHERE extraction_id = ?
	`, id).Scan(&e.ID, &e.RequestedURL, &e.FinalURL, &name, &industry, &recordJSON, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get extraction: %w", err)
	}
	e.BusinessName = name.String
	e.Industry = industry.String

	var record models.BusinessMetadata
	if err := json.Unmarshal([]byte(recordJSON), &record); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	e.Record = &record
	return &e, nil
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
