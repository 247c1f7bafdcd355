// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package freshbooks is a narrow client for the Freshbooks accounting API.
// It covers OAuth token exchange and refresh plus the three read endpoints
// the portal syncs from (clients, projects, invoices). Responses are
// passed through as raw JSON; the portal does not model Freshbooks types.
package freshbooks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	defaultAPIURL  = "https://api.freshbooks.com"
	defaultAuthURL = "https://auth.freshbooks.com/oauth/authorize"

	// tokenSettingKey is the app_settings key holding the serialized token.
	tokenSettingKey = "freshbooks_token"
)

// ErrNotConnected is returned when no OAuth token has been stored yet.
var ErrNotConnected = errors.New("freshbooks: not connected")

// Config holds the OAuth application credentials.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string

	// BaseURL and AuthURL override the Freshbooks endpoints, used in tests.
	BaseURL string
	AuthURL string
}

// TokenStore persists the OAuth token across restarts.
// Satisfied by store.AppSettingStore.
type TokenStore interface {
	Get(ctx context.Context, key, fallback string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// token is the persisted OAuth state.
type token struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Client talks to the Freshbooks API with a stored OAuth token,
// refreshing it when expired.
type Client struct {
	config Config
	client *http.Client
	tokens TokenStore

	mu  sync.Mutex
	tok *token
}

// New creates a Freshbooks client. The stored token, if any, is loaded
// lazily on first use.
func New(cfg Config, tokens TokenStore) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultAPIURL
	}
	if cfg.AuthURL == "" {
		cfg.AuthURL = defaultAuthURL
	}
	return &Client{
		config: cfg,
		client: &http.Client{Timeout: 30 * time.Second},
		tokens: tokens,
	}
}

// Configured reports whether OAuth application credentials are present.
func (c *Client) Configured() bool {
	return c.config.ClientID != "" && c.config.ClientSecret != ""
}

// AuthorizeURL returns the URL the admin visits to grant access.
func (c *Client) AuthorizeURL() string {
	q := url.Values{}
	q.Set("client_id", c.config.ClientID)
	q.Set("response_type", "code")
	q.Set("redirect_uri", c.config.RedirectURI)
	return c.config.AuthURL + "?" + q.Encode()
}

// Exchange trades an authorization code for tokens and persists them.
func (c *Client) Exchange(ctx context.Context, code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.grant(ctx, map[string]string{
		"grant_type":    "authorization_code",
		"client_id":     c.config.ClientID,
		"client_secret": c.config.ClientSecret,
		"redirect_uri":  c.config.RedirectURI,
		"code":          code,
	})
}

// SyncResult carries the raw payloads of one sync pass.
type SyncResult struct {
	Clients  json.RawMessage `json:"clients"`
	Projects json.RawMessage `json:"projects"`
	Invoices json.RawMessage `json:"invoices"`
}

// Sync fetches clients, projects and invoices in one pass.
func (c *Client) Sync(ctx context.Context) (*SyncResult, error) {
	clients, err := c.Clients(ctx)
	if err != nil {
		return nil, err
	}
	projects, err := c.Projects(ctx)
	if err != nil {
		return nil, err
	}
	invoices, err := c.Invoices(ctx)
	if err != nil {
		return nil, err
	}
	return &SyncResult{Clients: clients, Projects: projects, Invoices: invoices}, nil
}

// Clients fetches the accounting clients list.
func (c *Client) Clients(ctx context.Context) (json.RawMessage, error) {
	return c.request(ctx, http.MethodGet, "/accounting/account/clients")
}

// ClientRecord is one entry from the accounting clients payload.
type ClientRecord struct {
	ID           int64  `json:"id"`
	Organization string `json:"organization"`
	FirstName    string `json:"fname"`
	LastName     string `json:"lname"`
	Email        string `json:"email"`
	Phone        string `json:"home_phone"`
}

// DisplayName prefers the organization name, falling back to the
// contact's personal name.
func (r ClientRecord) DisplayName() string {
	if r.Organization != "" {
		return r.Organization
	}
	return strings.TrimSpace(r.FirstName + " " + r.LastName)
}

// ParseClients extracts client records from the raw accounting clients
// response. Payloads without a clients list yield an empty slice.
func ParseClients(raw json.RawMessage) ([]ClientRecord, error) {
	var envelope struct {
		Response struct {
			Result struct {
				Clients []ClientRecord `json:"clients"`
			} `json:"result"`
		} `json:"response"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("freshbooks parse clients: %w", err)
	}
	return envelope.Response.Result.Clients, nil
}

// ProjectRecord is one entry from the projects payload. The projects API
// returns a flat envelope, unlike the accounting endpoints.
type ProjectRecord struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
	DueDate     string `json:"due_date"`
}

// ParseProjects extracts project records from the raw projects response.
func ParseProjects(raw json.RawMessage) ([]ProjectRecord, error) {
	var envelope struct {
		Projects []ProjectRecord `json:"projects"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("freshbooks parse projects: %w", err)
	}
	return envelope.Projects, nil
}

// Projects fetches the business projects list.
func (c *Client) Projects(ctx context.Context) (json.RawMessage, error) {
	return c.request(ctx, http.MethodGet, "/projects/business/projects")
}

// Invoices fetches the accounting invoices list.
func (c *Client) Invoices(ctx context.Context) (json.RawMessage, error) {
	return c.request(ctx, http.MethodGet, "/accounting/account/invoices")
}

// request performs an authenticated API call, refreshing the token first
// if it has expired.
func (c *Client) request(ctx context.Context, method, endpoint string) (json.RawMessage, error) {
	c.mu.Lock()
	if c.tok == nil {
		if err := c.loadToken(ctx); err != nil {
			c.mu.Unlock()
			return nil, err
		}
	}
	if !c.tok.ExpiresAt.IsZero() && time.Now().After(c.tok.ExpiresAt) {
		if err := c.refresh(ctx); err != nil {
			c.mu.Unlock()
			return nil, err
		}
	}
	accessToken := c.tok.AccessToken
	c.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("freshbooks request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("freshbooks http: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("freshbooks read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("freshbooks API error (status %d): %s", resp.StatusCode, string(body))
	}
	return json.RawMessage(body), nil
}

// refresh exchanges the refresh token for a new access token.
// Callers must hold c.mu.
func (c *Client) refresh(ctx context.Context) error {
	if c.tok == nil || c.tok.RefreshToken == "" {
		return ErrNotConnected
	}
	return c.grant(ctx, map[string]string{
		"grant_type":    "refresh_token",
		"client_id":     c.config.ClientID,
		"client_secret": c.config.ClientSecret,
		"refresh_token": c.tok.RefreshToken,
	})
}

// grant performs a token endpoint call and persists the result.
// Callers must hold c.mu.
func (c *Client) grant(ctx context.Context, params map[string]string) error {
	payload, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("freshbooks marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.config.BaseURL+"/auth/oauth/token", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("freshbooks token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("freshbooks token http: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("freshbooks token read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("freshbooks token error (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("freshbooks token unmarshal: %w", err)
	}

	c.tok = &token{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(result.ExpiresIn) * time.Second),
	}
	return c.saveToken(ctx)
}

// loadToken reads the persisted token. Callers must hold c.mu.
func (c *Client) loadToken(ctx context.Context) error {
	raw, err := c.tokens.Get(ctx, tokenSettingKey, "")
	if err != nil {
		return fmt.Errorf("freshbooks load token: %w", err)
	}
	if raw == "" {
		return ErrNotConnected
	}
	var tok token
	if err := json.Unmarshal([]byte(raw), &tok); err != nil {
		return fmt.Errorf("freshbooks decode token: %w", err)
	}
	c.tok = &tok
	return nil
}

// saveToken persists the current token. Callers must hold c.mu.
func (c *Client) saveToken(ctx context.Context) error {
	payload, err := json.Marshal(c.tok)
	if err != nil {
		return fmt.Errorf("freshbooks encode token: %w", err)
	}
	if err := c.tokens.Set(ctx, tokenSettingKey, string(payload)); err != nil {
		return fmt.Errorf("freshbooks save token: %w", err)
	}
	return nil
}
