package common

import (
	"encoding/json"
	"net/url"
	"regexp"
	"strings"
)

var (
	markdownLinkPattern = regexp.MustCompile(`^\[.*?\]\((https?://[^\)]+)\)$`)

	// http(s), a host made of alphanumerics, dots and hyphens, an optional
	// port, then anything without whitespace.
	urlPattern = regexp.MustCompile(`^https?://[a-zA-Z0-9][-a-zA-Z0-9.]*[a-zA-Z0-9](:[0-9]+)?([/?#][^\s]*)?$`)
)

// FilterFields projects record (any JSON-encodable value) onto the
// comma-separated field names in fields. An empty fields keeps everything.
func FilterFields(record any, fields string) map[string]any {
	full := toMap(record)
	if strings.TrimSpace(fields) == "" {
		return full
	}

	include := make(map[string]bool)
	for _, f := range strings.Split(fields, ",") {
		if f = strings.TrimSpace(f); f != "" {
			include[f] = true
		}
	}

	filtered := make(map[string]any)
	for key, value := range full {
		if include[key] {
			filtered[key] = value
		}
	}
	return filtered
}

// toMap converts a struct to map[string]any using JSON marshaling.
func toMap(obj any) map[string]any {
	data, _ := json.Marshal(obj)
	var result map[string]any
	_ = json.Unmarshal(data, &result)
	return result
}

// SanitizeURL performs basic cleanup on URLs to handle common copy-paste issues.
// Removes whitespace, trailing punctuation and markdown artifacts.
func SanitizeURL(rawURL string) string {
	cleaned := strings.TrimSpace(rawURL)

	// "[click here](https://example.com)" -> "https://example.com"
	if matches := markdownLinkPattern.FindStringSubmatch(cleaned); len(matches) > 1 {
		cleaned = matches[1]
	}

	// "https://example.com," -> "https://example.com"
	for _, char := range []string{",", ".", ")", "}", "]", "\"", "'", ">", ";"} {
		cleaned = strings.TrimSuffix(cleaned, char)
	}

	// "(https://example.com)" -> "https://example.com"
	for _, char := range []string{"(", "[", "<", "\"", "'"} {
		cleaned = strings.TrimPrefix(cleaned, char)
	}

	return strings.TrimSpace(cleaned)
}

// SanitizeAndValidateURLs sanitizes all URLs and returns (sanitized URLs, invalid URLs).
// Invalid URLs are those that fail validation even after sanitization.
func SanitizeAndValidateURLs(urls []string) ([]string, []string) {
	sanitized := make([]string, 0, len(urls))
	var invalidURLs []string

	for _, rawURL := range urls {
		cleaned := SanitizeURL(rawURL)
		if !validURL(cleaned) {
			invalidURLs = append(invalidURLs, rawURL)
			continue
		}
		sanitized = append(sanitized, cleaned)
	}

	return sanitized, invalidURLs
}

func validURL(cleaned string) bool {
	// Literal spaces must be pre-encoded as %20.
	if cleaned == "" || strings.Contains(cleaned, " ") {
		return false
	}
	if !urlPattern.MatchString(cleaned) {
		return false
	}

	parsed, err := url.Parse(cleaned)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	if parsed.Host == "" {
		return false
	}
	// "https://example.com{}" should fail
	return !strings.ContainsAny(parsed.Host, "{}[]<>\"'")
}
