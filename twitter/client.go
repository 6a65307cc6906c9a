// Package twitter is a hand-rolled client for the platform's v2 REST API,
// covering the narrow surface the agent needs: posting, replying,
// retweeting, liking, recent search, mention and DM polling, and timelines.
// Write calls authenticate with OAuth 1.0a user context; read calls prefer
// the app-only bearer token when one is configured.
package twitter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	"github.com/carlmjohnson/versioninfo"
	"golang.org/x/time/rate"

	"github.com/hyperfeather/magpie/util"
)

const DefaultHost = "https://api.twitter.com"

type Client struct {
	// Client handles idempotent reads. If not set, defaults to
	// util.RetryingHTTPClient.
	Client *http.Client
	// WriteClient handles writes, which must not be replayed on ambiguous
	// failures. If not set, defaults to util.PlainHTTPClient.
	WriteClient *http.Client

	Auth      *UserAuth
	Bearer    string
	Host      string
	UserAgent *string
	Headers   map[string]string

	// Limiter paces all outbound requests when set.
	Limiter *rate.Limiter

	selfMu sync.Mutex
	selfID string
}

// NewClient returns a client with the default host and gentle request
// pacing. Either auth or bearer may be empty, restricting the client to
// the endpoints the remaining credential can reach.
func NewClient(auth *UserAuth, bearer string) *Client {
	return &Client{
		Auth:    auth,
		Bearer:  bearer,
		Host:    DefaultHost,
		Limiter: rate.NewLimiter(rate.Limit(1), 5),
	}
}

func (c *Client) getClient() *http.Client {
	if c.Client == nil {
		c.Client = util.RetryingHTTPClient("twitter")
	}
	return c.Client
}

func (c *Client) getWriteClient() *http.Client {
	if c.WriteClient == nil {
		c.WriteClient = util.PlainHTTPClient()
	}
	return c.WriteClient
}

type authLevel int

const (
	// authUser signs with the OAuth 1.0a user context; required for writes.
	authUser = authLevel(iota)
	// authApp sends the app-only bearer token, falling back to user context
	// when no bearer is configured.
	authApp
)

// makeParams converts a map of string keys and any values into a URL-encoded
// string. A slice of strings value is added once per element.
func makeParams(p map[string]any) string {
	params := url.Values{}
	for k, v := range p {
		if s, ok := v.([]string); ok {
			for _, v := range s {
				params.Add(k, v)
			}
		} else {
			params.Add(k, fmt.Sprint(v))
		}
	}

	return params.Encode()
}

func (c *Client) do(ctx context.Context, httpMethod, path string, level authLevel, params map[string]any, bodyobj any, out any) error {
	var body io.Reader
	if bodyobj != nil {
		b, err := json.Marshal(bodyobj)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	var paramStr string
	if len(params) > 0 {
		paramStr = "?" + makeParams(params)
	}

	host := c.Host
	if host == "" {
		host = DefaultHost
	}
	uri := host + path + paramStr

	req, err := http.NewRequest(httpMethod, uri, body)
	if err != nil {
		return err
	}

	if bodyobj != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.UserAgent != nil {
		req.Header.Set("User-Agent", *c.UserAgent)
	} else {
		req.Header.Set("User-Agent", "magpie/"+versioninfo.Short())
	}
	for k, v := range c.Headers {
		req.Header.Set(k, v)
	}

	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return err
		}
	}

	// sign after any limiter wait so the oauth timestamp is fresh
	switch level {
	case authApp:
		if c.Bearer != "" {
			req.Header.Set("Authorization", "Bearer "+c.Bearer)
			break
		}
		fallthrough
	case authUser:
		if c.Auth == nil {
			return fmt.Errorf("endpoint %s requires user credentials", path)
		}
		c.Auth.Authorize(req)
	}

	client := c.getWriteClient()
	if httpMethod == http.MethodGet {
		client = c.getClient()
	}

	resp, err := client.Do(req.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var ae APIError
		if err := json.NewDecoder(io.LimitReader(resp.Body, 65536)).Decode(&ae); err != nil {
			return errorFromHTTPResponse(resp, fmt.Errorf("failed to decode error body: %w", err))
		}
		return errorFromHTTPResponse(resp, &ae)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}

// selfUserID returns the authenticated account's user ID, fetching it once
// and caching for the client's lifetime. Several write endpoints are keyed
// by it.
func (c *Client) selfUserID(ctx context.Context) (string, error) {
	c.selfMu.Lock()
	defer c.selfMu.Unlock()
	if c.selfID != "" {
		return c.selfID, nil
	}
	u, err := c.Me(ctx)
	if err != nil {
		return "", err
	}
	c.selfID = u.ID
	return c.selfID, nil
}
