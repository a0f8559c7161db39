package aura

import (
	"fmt"
	"io"
	"net/http"
)

// APIError is returned for any non-2xx response that is not handled
// explicitly (the 404 on get-by-id maps to a nil result instead). Body
// carries the raw response body for diagnostics.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Body)
}

// TenantCountError reports a violation of the single-tenant invariant:
// the credentials used by this client must map to exactly one tenant.
type TenantCountError struct {
	Count int
}

func (e *TenantCountError) Error() string {
	return fmt.Sprintf("expected exactly one tenant, got %d", e.Count)
}

func newAPIError(resp *http.Response) *APIError {
	body, _ := io.ReadAll(resp.Body)
	return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}
