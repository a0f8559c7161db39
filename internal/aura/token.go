package aura

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// tokenExpirySkew is subtracted from the token lifetime so a token is
// refreshed shortly before the server would reject it.
const tokenExpirySkew = 30 * time.Second

// authToken is the cached OAuth2 access token. It lives behind the client
// mutex and is replaced once expired.
type authToken struct {
	accessToken string
	tokenType   string
	expiresAt   time.Time
}

func (t *authToken) expired(now time.Time) bool {
	return !now.Before(t.expiresAt.Add(-tokenExpirySkew))
}

// bearerToken returns the cached access token, fetching a fresh one when
// none is cached or the cached one has expired.
func (c *Client) bearerToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != nil && !c.token.expired(time.Now()) {
		return c.token.accessToken, nil
	}

	c.logger().Debug("refreshing oauth token")
	tok, err := c.fetchToken(ctx)
	if err != nil {
		return "", fmt.Errorf("oauth token exchange: %w", err)
	}
	c.token = tok
	return tok.accessToken, nil
}

func (c *Client) fetchToken(ctx context.Context) (*authToken, error) {
	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.AuthURL+"/oauth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if !isSuccess(resp.StatusCode) {
		return nil, newAPIError(resp)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}
	p, err := decodePayload(raw)
	if err != nil {
		return nil, err
	}

	access, err := p.requireString("access_token")
	if err != nil {
		return nil, err
	}
	tokenType, err := p.requireString("token_type")
	if err != nil {
		return nil, err
	}
	expiresIn, err := p.requireInt64("expires_in")
	if err != nil {
		return nil, err
	}

	return &authToken{
		accessToken: access,
		tokenType:   tokenType,
		expiresAt:   time.Now().Add(time.Duration(expiresIn) * time.Second),
	}, nil
}
