// Package caching is a small file-based page cache with a TTL. It sits in
// front of the fetcher for repeated CLI runs; the server never uses it.
package caching

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Entry is one cached fetch.
type Entry struct {
	URL         string    `json:"url"` // final URL after redirects
	StatusCode  int       `json:"status_code"`
	ContentType string    `json:"content_type"`
	Body        []byte    `json:"body"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// Cache stores entries keyed by requested URL.
type Cache struct {
	path string
	ttl  time.Duration
}

// NewCache creates a new Cache instance.
// The cache path will be created if it doesn't exist.
func NewCache(path string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{
		path: path,
		ttl:  ttl,
	}, nil
}

// key generates a SHA256 hash of the URL to use as a filename.
func (c *Cache) key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return fmt.Sprintf("%x.json", hash)
}

// Get returns the entry for url if present and younger than the TTL.
func (c *Cache) Get(url string) (*Entry, bool) {
	data, err := os.ReadFile(filepath.Join(c.path, c.key(url)))
	if err != nil {
		return nil, false
	}

	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, false
	}
	if time.Since(e.FetchedAt) > c.ttl {
		return nil, false
	}
	return &e, true
}

// Set stores e under the requested url.
func (c *Cache) Set(url string, e *Entry) error {
	if e.FetchedAt.IsZero() {
		e.FetchedAt = time.Now()
	}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	if err := os.WriteFile(filepath.Join(c.path, c.key(url)), data, 0644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}
