// Package aura provides a client for the Aura instance provisioning API.
// It handles OAuth2 client-credentials authentication, tenant discovery,
// instance lifecycle calls and a polling wait for instance readiness.
package aura

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Default endpoints and tuning. BaseURL can be pointed at a staging
// deployment via AURA_BASE_URL or the CLI config file.
const (
	DefaultBaseURL = "https://api.neo4j.io/v1"
	DefaultAuthURL = "https://api.neo4j.io"

	DefaultPollInterval = 5 * time.Second
	DefaultWaitTimeout  = 600 * time.Second

	defaultHTTPTimeout = 30 * time.Second
)

// Fixed instance configuration used by CreateInstance. The API surface does
// not expose these as caller options.
const (
	createMemory        = "8GB"
	createVersion       = "5"
	createRegion        = "europe-west1"
	createType          = "professional-ds"
	createCloudProvider = "gcp"
)

// Client talks to the provisioning API. The zero value is not usable; use
// NewClient. Exported fields may be adjusted before the first call.
//
// Client is safe for concurrent use: the cached token is the only mutable
// state and is guarded by a mutex.
type Client struct {
	BaseURL    string
	AuthURL    string
	HTTPClient *http.Client

	// PollInterval and WaitTimeout control WaitForInstanceRunning.
	PollInterval time.Duration
	WaitTimeout  time.Duration

	// Logger defaults to a no-op logger. Credentials are never logged.
	Logger *zap.Logger

	clientID     string
	clientSecret string

	mu    sync.Mutex
	token *authToken
}

// NewClient creates a client using the given OAuth client credentials.
func NewClient(clientID, clientSecret string) *Client {
	return &Client{
		BaseURL:      DefaultBaseURL,
		AuthURL:      DefaultAuthURL,
		HTTPClient:   &http.Client{Timeout: defaultHTTPTimeout},
		PollInterval: DefaultPollInterval,
		WaitTimeout:  DefaultWaitTimeout,
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

func (c *Client) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

type createInstanceRequest struct {
	Name          string `json:"name"`
	Memory        string `json:"memory"`
	Version       string `json:"version"`
	Region        string `json:"region"`
	Type          string `json:"type"`
	TenantID      string `json:"tenant_id"`
	CloudProvider string `json:"cloud_provider"`
}

// CreateInstance provisions a new instance with the fixed configuration and
// the given name under the account's sole tenant. The returned record
// contains one-time credentials that cannot be retrieved again.
func (c *Client) CreateInstance(ctx context.Context, name string) (InstanceCreateDetails, error) {
	var details InstanceCreateDetails

	tenantID, err := c.TenantID(ctx)
	if err != nil {
		return details, err
	}

	body := createInstanceRequest{
		Name:          name,
		Memory:        createMemory,
		Version:       createVersion,
		Region:        createRegion,
		Type:          createType,
		TenantID:      tenantID,
		CloudProvider: createCloudProvider,
	}

	resp, err := c.do(ctx, http.MethodPost, "/instances", body)
	if err != nil {
		return details, err
	}
	defer func() { _ = resp.Body.Close() }()

	if !isSuccess(resp.StatusCode) {
		return details, newAPIError(resp)
	}

	p, err := decodeDataObject(resp.Body)
	if err != nil {
		return details, err
	}
	return decodeInstanceCreateDetails(p)
}

// GetInstance fetches an instance by id. It returns (nil, nil) when the
// server responds 404; any other non-2xx response is an error.
func (c *Client) GetInstance(ctx context.Context, instanceID string) (*InstanceSpecificDetails, error) {
	resp, err := c.do(ctx, http.MethodGet, "/instances/"+instanceID, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if !isSuccess(resp.StatusCode) {
		return nil, newAPIError(resp)
	}

	p, err := decodeDataObject(resp.Body)
	if err != nil {
		return nil, err
	}
	details, err := decodeInstanceSpecificDetails(p)
	if err != nil {
		return nil, err
	}
	return &details, nil
}

// ListInstances returns all instances for the account in server order.
func (c *Client) ListInstances(ctx context.Context) ([]InstanceDetails, error) {
	resp, err := c.do(ctx, http.MethodGet, "/instances", nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if !isSuccess(resp.StatusCode) {
		return nil, newAPIError(resp)
	}

	items, err := decodeDataList(resp.Body)
	if err != nil {
		return nil, err
	}

	instances := make([]InstanceDetails, 0, len(items))
	for _, raw := range items {
		p, err := decodePayload(raw)
		if err != nil {
			return nil, err
		}
		details, err := decodeInstanceDetails(p)
		if err != nil {
			return nil, err
		}
		instances = append(instances, details)
	}
	return instances, nil
}

// DeleteInstance deletes an instance and returns its last-known details.
func (c *Client) DeleteInstance(ctx context.Context, instanceID string) (InstanceSpecificDetails, error) {
	var details InstanceSpecificDetails

	resp, err := c.do(ctx, http.MethodDelete, "/instances/"+instanceID, nil)
	if err != nil {
		return details, err
	}
	defer func() { _ = resp.Body.Close() }()

	if !isSuccess(resp.StatusCode) {
		return details, newAPIError(resp)
	}

	p, err := decodeDataObject(resp.Body)
	if err != nil {
		return details, err
	}
	return decodeInstanceSpecificDetails(p)
}

// TenantID returns the id of the account's sole tenant. The API supports
// single-tenant callers only; any other tenant count is a TenantCountError.
func (c *Client) TenantID(ctx context.Context) (string, error) {
	resp, err := c.do(ctx, http.MethodGet, "/tenants", nil)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if !isSuccess(resp.StatusCode) {
		return "", newAPIError(resp)
	}

	items, err := decodeDataList(resp.Body)
	if err != nil {
		return "", err
	}
	if len(items) != 1 {
		return "", &TenantCountError{Count: len(items)}
	}

	p, err := decodePayload(items[0])
	if err != nil {
		return "", err
	}
	return p.requireString("id")
}

// do issues one authenticated request against the API. The bearer token is
// resolved (and refreshed if needed) before every call.
func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	token, err := c.bearerToken(ctx)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.HTTPClient.Do(req)
}

// decodeDataObject decodes the {"data": {...}} envelope into a payload.
func decodeDataObject(r io.Reader) (payload, error) {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if env.Data == nil {
		return nil, fmt.Errorf("missing required field %q", "data")
	}
	return decodePayload(env.Data)
}

// decodeDataList decodes the {"data": [...]} envelope.
func decodeDataList(r io.Reader) ([]json.RawMessage, error) {
	var env struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if env.Data == nil {
		return nil, fmt.Errorf("missing required field %q", "data")
	}
	return env.Data, nil
}
