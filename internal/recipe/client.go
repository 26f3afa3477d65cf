// Package recipe asks a hosted text-generation model for a baby-food recipe
// scaled to a cube weight and count. It never touches stored records.
package recipe

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
	"time"

	"github.com/chrisdamba/weaning/internal/logger"
)

const (
	DefaultEndpoint    = "https://generativelanguage.googleapis.com/v1beta/models"
	DefaultModel       = "gemini-2.0-flash"
	DefaultTemperature = 0.4
)

// ErrRequestFailed wraps every transport, status and decoding failure.
var ErrRequestFailed = errors.New("recipe request failed")

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature"`
}

type payload struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type apiResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type ClientOption func(*Client)

// WithModel overrides the default model name.
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithEndpoint points the client at another models base URL, e.g. a test server.
func WithEndpoint(endpoint string) ClientOption {
	return func(c *Client) {
		if endpoint != "" {
			c.endpoint = strings.TrimRight(endpoint, "/")
		}
	}
}

func WithTemperature(t float64) ClientOption {
	return func(c *Client) { c.temperature = t }
}

// WithHTTPTimeout sets the HTTP client timeout.
func WithHTTPTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// Client talks to the generateContent endpoint.
type Client struct {
	endpoint    string
	apiKey      string
	model       string
	temperature float64
	http        *http.Client
	log         *logger.Logger
}

func NewClient(apiKey string, log *logger.Logger, opts ...ClientOption) *Client {
	c := &Client{
		endpoint:    DefaultEndpoint,
		apiKey:      apiKey,
		model:       DefaultModel,
		temperature: DefaultTemperature,
		http:        &http.Client{Timeout: 60 * time.Second},
		log:         log,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) url() string {
	return fmt.Sprintf("%s/%s:generateContent?key=%s", c.endpoint, url.PathEscape(c.model), url.QueryEscape(c.apiKey))
}

// Generate sends prompt as a single user turn and returns the text of the
// first candidate. An answer with no text is returned as "" without error.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%w: missing api key", ErrRequestFailed)
	}
	body := payload{
		Contents:         []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{Temperature: c.temperature},
	}
	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("%w: marshal payload: %v", ErrRequestFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(), bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("%w: create request: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug("recipe: POST %s/%s (%d bytes)", c.endpoint, c.model, len(jsonData))

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrRequestFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: API %s: %s", ErrRequestFailed, resp.Status, truncate(string(respBody), 200))
	}

	var result apiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("%w: unmarshal response: %v", ErrRequestFailed, err)
	}
	if len(result.Candidates) == 0 {
		return "", nil
	}
	var sb strings.Builder
	for _, p := range result.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	text := sb.String()
	c.log.Debug("recipe: reply (%d chars): %s", len(text), truncate(text, 120))
	return text, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
