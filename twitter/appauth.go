package twitter

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

type bearerTokenResponse struct {
	TokenType   string `json:"token_type"`
	AccessToken string `json:"access_token"`
}

// FetchBearerToken exchanges the consumer key pair for an app-only bearer
// token via the client-credentials grant, stores it on the client and
// returns it. Useful when only the OAuth 1.0a keys are configured.
func (c *Client) FetchBearerToken(ctx context.Context) (string, error) {
	if c.Auth == nil || c.Auth.ConsumerKey == "" || c.Auth.ConsumerSecret == "" {
		return "", fmt.Errorf("bearer token fetch requires consumer credentials")
	}

	host := c.Host
	if host == "" {
		host = DefaultHost
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, host+"/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	basic := percentEncode(c.Auth.ConsumerKey) + ":" + percentEncode(c.Auth.ConsumerSecret)
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(basic)))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=UTF-8")

	resp, err := c.getWriteClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var ae APIError
		if err := json.NewDecoder(io.LimitReader(resp.Body, 65536)).Decode(&ae); err != nil {
			return "", errorFromHTTPResponse(resp, fmt.Errorf("failed to decode error body: %w", err))
		}
		return "", errorFromHTTPResponse(resp, &ae)
	}

	var out bearerTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding token response: %w", err)
	}
	if !strings.EqualFold(out.TokenType, "bearer") || out.AccessToken == "" {
		return "", fmt.Errorf("unexpected token response (type %q)", out.TokenType)
	}

	c.Bearer = out.AccessToken
	return c.Bearer, nil
}
