package aura

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPayload(t *testing.T, raw string) payload {
	t.Helper()
	p, err := decodePayload(json.RawMessage(raw))
	require.NoError(t, err)
	return p
}

func TestDecodeInstanceDetails(t *testing.T) {
	p := mustPayload(t, `{"id":"db-1","name":"mydb","tenant_id":"t-1","cloud_provider":"gcp","status":"RUNNING"}`)

	d, err := decodeInstanceDetails(p)
	require.NoError(t, err)
	assert.Equal(t, InstanceDetails{ID: "db-1", Name: "mydb", TenantID: "t-1", CloudProvider: "gcp"}, d)
}

func TestDecodeInstanceDetails_MissingField(t *testing.T) {
	p := mustPayload(t, `{"id":"db-1","name":"mydb","cloud_provider":"gcp"}`)

	_, err := decodeInstanceDetails(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"tenant_id"`)
}

func TestDecodeInstanceSpecificDetails(t *testing.T) {
	p := mustPayload(t, `{"id":"db-1","name":"mydb","tenant_id":"t-1","cloud_provider":"gcp","status":"CREATING","connection_url":"neo4j+s://x","memory":"8GB"}`)

	d, err := decodeInstanceSpecificDetails(p)
	require.NoError(t, err)
	assert.Equal(t, "CREATING", d.Status)
	assert.Equal(t, "neo4j+s://x", d.ConnectionURL)
	assert.Equal(t, "8GB", d.Memory)
}

func TestDecodeInstanceSpecificDetails_ConnectionURLDefaultsEmpty(t *testing.T) {
	p := mustPayload(t, `{"id":"db-1","name":"mydb","tenant_id":"t-1","cloud_provider":"gcp","status":"CREATING","memory":"8GB"}`)

	d, err := decodeInstanceSpecificDetails(p)
	require.NoError(t, err)
	assert.Equal(t, "", d.ConnectionURL)
}

func TestDecodeInstanceSpecificDetails_MissingStatus(t *testing.T) {
	p := mustPayload(t, `{"id":"db-1","name":"mydb","tenant_id":"t-1","cloud_provider":"gcp","memory":"8GB"}`)

	_, err := decodeInstanceSpecificDetails(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"status"`)
}

func TestDecodeInstanceCreateDetails(t *testing.T) {
	p := mustPayload(t, `{"id":"db-1","name":"mydb","tenant_id":"t-1","cloud_provider":"gcp","username":"neo4j","password":"pw","connection_url":"neo4j+s://x"}`)

	d, err := decodeInstanceCreateDetails(p)
	require.NoError(t, err)
	assert.Equal(t, "neo4j", d.Username)
	assert.Equal(t, "pw", d.Password)
	assert.Equal(t, "neo4j+s://x", d.ConnectionURL)
}

func TestDecodeInstanceCreateDetails_NameOptional(t *testing.T) {
	p := mustPayload(t, `{"id":"db-1","tenant_id":"t-1","cloud_provider":"gcp","username":"neo4j","password":"pw","connection_url":"neo4j+s://x"}`)

	d, err := decodeInstanceCreateDetails(p)
	require.NoError(t, err)
	assert.Equal(t, "", d.Name)
}

func TestDecodeInstanceCreateDetails_MissingPassword(t *testing.T) {
	p := mustPayload(t, `{"id":"db-1","tenant_id":"t-1","cloud_provider":"gcp","username":"neo4j","connection_url":"neo4j+s://x"}`)

	_, err := decodeInstanceCreateDetails(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"password"`)
}

func TestPayloadFieldTypeMismatch(t *testing.T) {
	p := mustPayload(t, `{"id":42}`)

	_, err := p.requireString("id")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"id"`)
}
