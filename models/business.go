package models

// BusinessMetadata is the canonical record describing the business behind a URL.
// Nil fields mean no source supplied a value.
type BusinessMetadata struct {
	BusinessName *string `json:"businessName" yaml:"businessName"`
	Description  *string `json:"description" yaml:"description"`
	Industry     *string `json:"industry" yaml:"industry"`
	Address      *string `json:"address" yaml:"address"`
	Website      *string `json:"website" yaml:"website"`
	Logo         *string `json:"logo" yaml:"logo"`

	// RawMetadata keeps per-source provenance. It is never consulted when merging.
	RawMetadata map[string]any `json:"rawMetadata" yaml:"rawMetadata"`

	// Set only for platforms that need OAuth before they can be read.
	RequiresAuth *bool   `json:"requiresAuth" yaml:"requiresAuth,omitempty"`
	Platform     *string `json:"platform" yaml:"platform,omitempty"`
	AuthURL      *string `json:"authUrl" yaml:"authUrl,omitempty"`
}

// Keys used inside BusinessMetadata.RawMetadata.
const (
	RawSchema           = "schema"
	RawOpenGraph        = "openGraph"
	RawTwitter          = "twitter"
	RawHTML             = "html"
	RawDetectedIndustry = "detectedIndustry"

	RawSource         = "source"
	RawOAuthAvailable = "oauthAvailable"

	RawPlatform       = "platform"
	RawUsername       = "username"
	RawFollowersCount = "followersCount"
	RawMediaCount     = "mediaCount"
	RawIGID           = "igId"
)

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the pointed-to string or "".
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
