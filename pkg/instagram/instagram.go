// Package instagram is a thin pass-through to the Facebook/Instagram Graph
// API: the OAuth dialog URL, code exchange for a long-lived token, the list
// of connected pages and a business-account profile lookup.
package instagram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dtnitsch/url-metadata-extractor/models"
	"golang.org/x/oauth2"
)

// ErrNotConfigured is returned when client credentials are missing.
var ErrNotConfigured = errors.New("instagram credentials not configured")

// DefaultExpiresIn is used when the long-lived token response omits expires_in (about 60 days).
const DefaultExpiresIn int64 = 5184000

// Scopes requested by the OAuth dialog.
var Scopes = []string{
	"pages_show_list",
	"instagram_basic",
	"instagram_manage_comments",
	"instagram_manage_insights",
	"instagram_content_publish",
	"instagram_manage_messages",
	"pages_read_engagement",
	"instagram_shopping_tag_products",
	"instagram_branded_content_brand",
	"instagram_branded_content_creator",
	"instagram_branded_content_ads_brand",
	"instagram_manage_upcoming_events",
	"instagram_creator_marketplace_discovery",
	"instagram_manage_contents",
}

const (
	profileFields = "username,name,biography,profile_pic_url,website,followers_count,media_count,ig_id"
	pagesFields   = "instagram_business_account,id,name"
)

// APIError is a non-2xx answer from the Graph API.
type APIError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s failed: %d %s", e.Op, e.StatusCode, strings.TrimSpace(e.Body))
}

type Client struct {
	cfg        models.InstagramConfig
	httpClient *http.Client

	dialogURL    string // https://www.facebook.com
	graphURL     string // https://graph.facebook.com
	instagramURL string // https://graph.instagram.com
}

type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURLs points the client at other hosts, typically test servers.
func WithBaseURLs(dialog, graph, instagram string) Option {
	return func(c *Client) {
		c.dialogURL = strings.TrimRight(dialog, "/")
		c.graphURL = strings.TrimRight(graph, "/")
		c.instagramURL = strings.TrimRight(instagram, "/")
	}
}

func NewClient(cfg models.InstagramConfig, opts ...Option) *Client {
	if cfg.GraphVersion == "" {
		cfg.GraphVersion = "v18.0"
	}
	c := &Client{
		cfg:          cfg,
		httpClient:   &http.Client{Timeout: 15 * time.Second},
		dialogURL:    "https://www.facebook.com",
		graphURL:     "https://graph.facebook.com",
		instagramURL: "https://graph.instagram.com",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether both client id and secret are set.
func (c *Client) Configured() bool {
	return c.cfg.ClientID != "" && c.cfg.ClientSecret != ""
}

func (c *Client) oauthConfig(redirectURI string) *oauth2.Config {
	if redirectURI == "" {
		redirectURI = c.cfg.RedirectURI
	}
	return &oauth2.Config{
		ClientID:     c.cfg.ClientID,
		ClientSecret: c.cfg.ClientSecret,
		RedirectURL:  redirectURI,
		Scopes:       Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   fmt.Sprintf("%s/%s/dialog/oauth", c.dialogURL, c.cfg.GraphVersion),
			TokenURL:  fmt.Sprintf("%s/%s/oauth/access_token", c.graphURL, c.cfg.GraphVersion),
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

// AuthURL returns the OAuth dialog URL the user should open.
func (c *Client) AuthURL() (*models.InstagramAuthURL, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	scopes := make([]string, len(Scopes))
	copy(scopes, Scopes)
	return &models.InstagramAuthURL{
		AuthURL:  c.oauthConfig("").AuthCodeURL(""),
		Platform: "instagram",
		Scopes:   scopes,
	}, nil
}

// ExchangeCode trades an authorization code for a short-lived user token and
// then that token for a long-lived one. An empty redirectURI uses the configured one.
func (c *Client) ExchangeCode(ctx context.Context, code, redirectURI string) (*models.InstagramToken, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	short, err := c.oauthConfig(redirectURI).Exchange(ctx, code)
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) && re.Response != nil {
			return nil, &APIError{Op: "token exchange", StatusCode: re.Response.StatusCode, Body: string(re.Body)}
		}
		return nil, fmt.Errorf("failed to get access token: %w", err)
	}

	q := url.Values{}
	q.Set("grant_type", "ig_exchange_token")
	q.Set("client_secret", c.cfg.ClientSecret)
	q.Set("access_token", short.AccessToken)

	var long struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   *int64 `json:"expires_in"`
	}
	if err := c.getJSON(ctx, "long-lived token exchange", c.instagramURL+"/access_token?"+q.Encode(), &long); err != nil {
		return nil, err
	}
	if long.AccessToken == "" {
		return nil, errors.New("failed to get long-lived token: response missing access_token")
	}

	expiresIn := DefaultExpiresIn
	if long.ExpiresIn != nil {
		expiresIn = *long.ExpiresIn
	}
	return &models.InstagramToken{
		AccessToken: long.AccessToken,
		TokenType:   "long-lived",
		ExpiresIn:   expiresIn,
	}, nil
}

// Pages returns the Graph API answer for the user's pages as-is.
func (c *Client) Pages(ctx context.Context, accessToken string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("fields", pagesFields)
	q.Set("access_token", accessToken)

	var raw json.RawMessage
	if err := c.getJSON(ctx, "fetch pages", fmt.Sprintf("%s/%s/me/accounts?%s", c.graphURL, c.cfg.GraphVersion, q.Encode()), &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

type profile struct {
	Username       *string         `json:"username"`
	Name           *string         `json:"name"`
	Biography      *string         `json:"biography"`
	ProfilePicURL  *string         `json:"profile_pic_url"`
	Website        *string         `json:"website"`
	FollowersCount *int64          `json:"followers_count"`
	MediaCount     *int64          `json:"media_count"`
	IGID           *int64          `json:"ig_id"`
	Error          json.RawMessage `json:"error"`
}

// Profile looks up a business account and maps it onto a record.
func (c *Client) Profile(ctx context.Context, accessToken, businessID string) (*models.BusinessMetadata, error) {
	if businessID == "" {
		return nil, errors.New("instagramBusinessId is required")
	}
	q := url.Values{}
	q.Set("fields", profileFields)
	q.Set("access_token", accessToken)

	var p profile
	u := fmt.Sprintf("%s/%s/%s?%s", c.graphURL, c.cfg.GraphVersion, url.PathEscape(businessID), q.Encode())
	if err := c.getJSON(ctx, "fetch Instagram profile", u, &p); err != nil {
		return nil, err
	}
	if len(p.Error) > 0 && string(p.Error) != "null" {
		return nil, &APIError{Op: "fetch Instagram profile", StatusCode: http.StatusBadRequest, Body: string(p.Error)}
	}

	name := models.Deref(p.Name)
	if name == "" {
		name = models.Deref(p.Username)
	}
	return &models.BusinessMetadata{
		BusinessName: models.StringPtr(name),
		Description:  models.StringPtr(models.Deref(p.Biography)),
		Industry:     models.StringPtr("Social Media"),
		Website:      models.StringPtr(models.Deref(p.Website)),
		Logo:         models.StringPtr(models.Deref(p.ProfilePicURL)),
		RawMetadata: map[string]any{
			models.RawPlatform:       "instagram",
			models.RawUsername:       p.Username,
			models.RawFollowersCount: p.FollowersCount,
			models.RawMediaCount:     p.MediaCount,
			models.RawIGID:           p.IGID,
		},
	}, nil
}

func (c *Client) getJSON(ctx context.Context, op, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%s: failed to read response: %w", op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Op: op, StatusCode: resp.StatusCode, Body: string(body)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: failed to decode response: %w", op, err)
	}
	return nil
}
