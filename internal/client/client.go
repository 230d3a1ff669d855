// ABOUTME: HTTP client for the wardrobe backend API
// ABOUTME: Single chokepoint attaching auth headers and normalizing errors

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// TokenSource supplies the current access token at call time.
// It returns the empty string when no token is held.
type TokenSource func() string

// Client is the API client for the wardrobe backend.
// It is stateless apart from reading the current token through tokens.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// New creates a new API client with the given base URL and token source.
// A nil token source means every call goes out unauthenticated.
func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		tokens: tokens,
	}
}

// RequestError is the single error kind surfaced to callers: a message
// sourced from the server's detail field or synthesized from the status.
type RequestError struct {
	Message    string
	StatusCode int
}

func (e *RequestError) Error() string {
	return e.Message
}

// User is the minimal identity projection returned by /auth/me.
type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Provider  string `json:"provider,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Provider describes one social-login provider's configuration state.
type Provider struct {
	Configured  bool     `json:"configured"`
	DisplayName string   `json:"display_name"`
	LoginFlow   string   `json:"login_flow,omitempty"`
	CallbackURL string   `json:"callback_url,omitempty"`
	RequiredEnv []string `json:"required_env"`
	DocURL      string   `json:"doc_url,omitempty"`
}

// Item is one wardrobe item as returned by the backend.
// Identity is server-assigned; items are immutable once created.
type Item struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Occasion    string   `json:"occasion"`
	ImageBase64 string   `json:"image_base64"`
	ColorHex    string   `json:"color_hex"`
	Hue         float64  `json:"hue"`
	Saturation  float64  `json:"saturation"`
	Lightness   float64  `json:"lightness"`
	Fit         string   `json:"fit"`
	Warmth      int      `json:"warmth"`
	StyleTags   []string `json:"style_tags"`
	CreatedAt   string   `json:"created_at"`
}

// ItemCreate is the payload for POST /items.
type ItemCreate struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Occasion    string   `json:"occasion"`
	ImageBase64 string   `json:"image_base64"`
	Fit         string   `json:"fit"`
	Warmth      int      `json:"warmth"`
	StyleTags   []string `json:"style_tags"`
}

// Analysis is the result of POST /items/analyze.
type Analysis struct {
	ColorHex           string   `json:"color_hex"`
	Hue                float64  `json:"hue"`
	Saturation         float64  `json:"saturation"`
	Lightness          float64  `json:"lightness"`
	SuggestedCategory  string   `json:"suggested_category"`
	SuggestedFit       string   `json:"suggested_fit"`
	SuggestedStyleTags []string `json:"suggested_style_tags"`
}

// SocialLoginStart is the response to GET /auth/{provider}/login.
type SocialLoginStart struct {
	Provider         string `json:"provider"`
	AuthorizationURL string `json:"authorization_url"`
}

// OutfitSlot pairs a garment role with the item filling it.
type OutfitSlot struct {
	Slot string `json:"slot"`
	Item Item   `json:"item"`
}

// Recommendation is the response to GET /recommend.
type Recommendation struct {
	Occasion string       `json:"occasion"`
	Score    float64      `json:"score"`
	Reasons  []string     `json:"reasons"`
	Slots    []OutfitSlot `json:"slots"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// do performs one API call. Every request carries a JSON content type;
// the bearer header is attached unless skipAuth is set. A 204 response
// skips decoding. A malformed 2xx body leaves out untouched rather than
// failing, so the caller sees "no detail" instead of a parse error.
func (c *Client) do(ctx context.Context, method, path string, body any, skipAuth bool, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if !skipAuth && c.tokens != nil {
		if token := c.tokens(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		data = nil
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newRequestError(resp.StatusCode, data)
	}

	if out != nil && len(bytes.TrimSpace(data)) > 0 {
		// Malformed server payloads degrade to an empty result.
		_ = json.Unmarshal(data, out)
	}
	return nil
}

// handleRequestError folds transport failures into the same error
// channel as HTTP-level failures.
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return &RequestError{Message: "request canceled"}
	}
	if ctx.Err() == context.DeadlineExceeded {
		return &RequestError{Message: "request timed out"}
	}
	return &RequestError{Message: fmt.Sprintf("cannot connect to backend at %s: %v", c.baseURL, err)}
}

// newRequestError extracts the detail field from an error body when
// present, else synthesizes a message carrying the status code.
func newRequestError(status int, body []byte) *RequestError {
	message := fmt.Sprintf("request failed (status %d)", status)
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		message = payload.Detail
	}
	return &RequestError{Message: message, StatusCode: status}
}

// Login calls POST /auth/login and returns the access token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", credentials{username, password}, true, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// Register calls POST /auth/register and returns the access token.
func (c *Client) Register(ctx context.Context, username, password string) (string, error) {
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", credentials{username, password}, true, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// Me calls GET /auth/me with the held token.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, false, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ProviderStatus calls GET /auth/providers/status.
func (c *Client) ProviderStatus(ctx context.Context) (map[string]Provider, error) {
	var status map[string]Provider
	if err := c.do(ctx, http.MethodGet, "/auth/providers/status", nil, true, &status); err != nil {
		return nil, err
	}
	return status, nil
}

// StartSocialLogin calls GET /auth/{provider}/login, passing the caller's
// front-end redirect target.
func (c *Client) StartSocialLogin(ctx context.Context, provider, frontRedirect string) (*SocialLoginStart, error) {
	path := fmt.Sprintf("/auth/%s/login?front_redirect=%s", url.PathEscape(provider), url.QueryEscape(frontRedirect))
	var start SocialLoginStart
	if err := c.do(ctx, http.MethodGet, path, nil, true, &start); err != nil {
		return nil, err
	}
	return &start, nil
}

// ListItems calls GET /items.
func (c *Client) ListItems(ctx context.Context) ([]Item, error) {
	var items []Item
	if err := c.do(ctx, http.MethodGet, "/items", nil, false, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateItem calls POST /items.
func (c *Client) CreateItem(ctx context.Context, input *ItemCreate) (*Item, error) {
	var item Item
	if err := c.do(ctx, http.MethodPost, "/items", input, false, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem calls DELETE /items/{id}. The backend answers 204.
func (c *Client) DeleteItem(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/items/%d", id), nil, false, nil)
}

// AnalyzeImage calls POST /items/analyze with an encoded image.
func (c *Client) AnalyzeImage(ctx context.Context, imageBase64 string) (*Analysis, error) {
	payload := struct {
		ImageBase64 string `json:"image_base64"`
	}{imageBase64}
	var analysis Analysis
	if err := c.do(ctx, http.MethodPost, "/items/analyze", payload, false, &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

// Recommend calls GET /recommend for the given occasion.
func (c *Client) Recommend(ctx context.Context, occasion string) (*Recommendation, error) {
	var rec Recommendation
	if err := c.do(ctx, http.MethodGet, "/recommend?occasion="+url.QueryEscape(occasion), nil, false, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
