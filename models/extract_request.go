package models

// ExtractRequest is the body of POST /extract.
type ExtractRequest struct {
	URL string `json:"url"`
}

// InstagramAuthRequest is the body of POST /auth/instagram/callback.
type InstagramAuthRequest struct {
	Code        string `json:"code"`
	RedirectURI string `json:"redirectUri,omitempty"`
}

// InstagramProfileRequest is the body of POST /instagram/profile.
type InstagramProfileRequest struct {
	AccessToken         string `json:"accessToken"`
	InstagramBusinessID string `json:"instagramBusinessId"`
}

// InstagramAuthURL is returned by GET /auth/instagram/url.
type InstagramAuthURL struct {
	AuthURL  string   `json:"authUrl"`
	Platform string   `json:"platform"`
	Scopes   []string `json:"scopes"`
}

// InstagramToken is returned once an authorization code has been
// exchanged for a long-lived token.
type InstagramToken struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
}
