package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Member is one guild member from the bot's roster endpoint.
type Member struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Avatar *string `json:"avatar"`
}

// CheckResult is the bot's answer to an auth-status probe. Payload keeps the
// upstream body verbatim so callers can pass it through unchanged.
type CheckResult struct {
	Verified bool
	Payload  []byte
}

// Client talks to the Discord bot companion service. The bot owns the
// handshake state; this client is plain request/response with a bounded
// timeout and no retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	secret     []byte
}

func NewClient(baseURL string, timeout time.Duration, serviceSecret string) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
	if serviceSecret != "" {
		c.secret = []byte(serviceSecret)
	}
	return c
}

// RequestAuth forwards an authentication request to the bot and returns its
// response body verbatim.
func (c *Client) RequestAuth(ctx context.Context, userID, userName string) ([]byte, error) {
	payload, err := json.Marshal(map[string]string{
		"userId":   userID,
		"userName": userName,
	})
	if err != nil {
		return nil, fmt.Errorf("discord: marshal auth request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/request", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("discord: build auth request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

// CheckAuth probes the verification status of a pending handshake token.
func (c *Client) CheckAuth(ctx context.Context, token string) (*CheckResult, error) {
	endpoint := c.baseURL + "/auth/check/" + url.PathEscape(token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("discord: build check request: %w", err)
	}

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var status struct {
		Verified bool `json:"verified"`
	}
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, fmt.Errorf("discord: decode check response: %w", err)
	}
	return &CheckResult{Verified: status.Verified, Payload: body}, nil
}

// Members fetches the guild roster. Callers treat failures as best-effort.
func (c *Client) Members(ctx context.Context) ([]Member, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/members", nil)
	if err != nil {
		return nil, fmt.Errorf("discord: build members request: %w", err)
	}

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var roster struct {
		Members []Member `json:"members"`
	}
	if err := json.Unmarshal(body, &roster); err != nil {
		return nil, fmt.Errorf("discord: decode members response: %w", err)
	}
	return roster.Members, nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	if c.secret != nil {
		token, err := c.serviceToken()
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("discord: call bot service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("discord: read bot response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("discord: bot service returned status %d", resp.StatusCode)
	}
	return body, nil
}

// serviceToken signs a short-lived token so the bot can tell backend traffic
// from the open internet when it is deployed outside the compose network.
func (c *Client) serviceToken() (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss": "mineboard",
		"iat": now.Unix(),
		"exp": now.Add(time.Minute).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("discord: sign service token: %w", err)
	}
	return token, nil
}
