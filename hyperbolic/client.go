// Package hyperbolic talks to the Hyperbolic GPU marketplace: renting and
// releasing instances, running hosted text generation, and reading billing
// history.
package hyperbolic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/carlmjohnson/versioninfo"

	"github.com/hyperfeather/magpie/util"
)

const DefaultHost = "https://api.hyperbolic.xyz"

type Client struct {
	// Client handles idempotent reads; defaults to util.RetryingHTTPClient.
	Client *http.Client
	// WriteClient handles rent/release/generate calls, which must not be
	// replayed blindly; defaults to util.PlainHTTPClient.
	WriteClient *http.Client

	Host      string
	APIKey    string
	UserAgent *string

	// WaitReady polling knobs; zero values select the defaults (5s, 10).
	StatusPollInterval time.Duration
	StatusPollMax      int
}

func NewClient(apiKey string) *Client {
	return &Client{
		Host:   DefaultHost,
		APIKey: apiKey,
	}
}

func (c *Client) getClient() *http.Client {
	if c.Client == nil {
		c.Client = util.RetryingHTTPClient("hyperbolic")
	}
	return c.Client
}

func (c *Client) getWriteClient() *http.Client {
	if c.WriteClient == nil {
		c.WriteClient = util.PlainHTTPClient()
	}
	return c.WriteClient
}

// Error is any non-2xx marketplace response.
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("hyperbolic API HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("hyperbolic API HTTP %d: %s", e.StatusCode, e.Detail)
}

type apiErrorBody struct {
	ErrStr  string `json:"error"`
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

func (b *apiErrorBody) detail() string {
	for _, s := range []string{b.Detail, b.Message, b.ErrStr} {
		if s != "" {
			return s
		}
	}
	return ""
}

func (c *Client) do(ctx context.Context, httpMethod, path string, bodyobj any, out any) error {
	var body io.Reader
	if bodyobj != nil {
		b, err := json.Marshal(bodyobj)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	host := c.Host
	if host == "" {
		host = DefaultHost
	}

	req, err := http.NewRequestWithContext(ctx, httpMethod, host+path, body)
	if err != nil {
		return err
	}
	if bodyobj != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	if c.UserAgent != nil {
		req.Header.Set("User-Agent", *c.UserAgent)
	} else {
		req.Header.Set("User-Agent", "magpie/"+versioninfo.Short())
	}

	client := c.getWriteClient()
	if httpMethod == http.MethodGet {
		client = c.getClient()
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb apiErrorBody
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 65536))
		if err := json.Unmarshal(raw, &eb); err != nil || eb.detail() == "" {
			return &Error{StatusCode: resp.StatusCode, Detail: strings.TrimSpace(string(raw))}
		}
		return &Error{StatusCode: resp.StatusCode, Detail: eb.detail()}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// GenerateRequest configures one inference call. Zero sampling values are
// filled with the service defaults.
type GenerateRequest struct {
	Prompt      string  `json:"prompt"`
	Model       string  `json:"model_id"`
	GPUID       string  `json:"gpu_id,omitempty"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	TopK        int     `json:"top_k"`
}

type generateResponse struct {
	Text string `json:"text"`
}

// Generate runs one text generation and returns the trimmed output.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	if req.Prompt == "" {
		return "", fmt.Errorf("empty prompt")
	}
	if req.MaxTokens == 0 {
		req.MaxTokens = 100
	}
	if req.Temperature == 0 {
		req.Temperature = 0.7
	}
	if req.TopP == 0 {
		req.TopP = 0.9
	}
	if req.TopK == 0 {
		req.TopK = 40
	}

	var out generateResponse
	if err := c.do(ctx, http.MethodPost, "/v1/generate", &req, &out); err != nil {
		return "", err
	}
	text := strings.TrimSpace(out.Text)
	if text == "" {
		return "", fmt.Errorf("generation returned empty text")
	}
	return text, nil
}
