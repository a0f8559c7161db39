package aura

import (
	"encoding/json"
	"fmt"
)

// Instance lifecycle statuses reported by the API. Instances move through
// PENDING/CREATING to RUNNING, and through DELETING before disappearing.
const (
	StatusRunning  = "RUNNING"
	StatusDeleting = "DELETING"
)

// InstanceDetails is the base identity record returned by list operations.
type InstanceDetails struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	TenantID      string `json:"tenant_id"`
	CloudProvider string `json:"cloud_provider"`
}

// InstanceSpecificDetails extends InstanceDetails with the fields returned
// by get and delete. ConnectionURL may be empty while an instance is still
// being provisioned.
type InstanceSpecificDetails struct {
	InstanceDetails
	Status        string `json:"status"`
	ConnectionURL string `json:"connection_url"`
	Memory        string `json:"memory"`
}

// InstanceCreateDetails is returned only at creation time. Username and
// Password are one-time credentials that cannot be retrieved later.
type InstanceCreateDetails struct {
	InstanceDetails
	Username      string `json:"username"`
	Password      string `json:"password"`
	ConnectionURL string `json:"connection_url"`
}

// payload is a decoded JSON object with required-field access. The API
// contract treats a missing required key as a hard failure, so decoding
// goes through requireString rather than plain struct tags.
type payload map[string]json.RawMessage

func decodePayload(raw json.RawMessage) (payload, error) {
	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode response object: %w", err)
	}
	return p, nil
}

func (p payload) requireString(key string) (string, error) {
	raw, ok := p[key]
	if !ok {
		return "", fmt.Errorf("missing required field %q", key)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("field %q: %w", key, err)
	}
	return s, nil
}

// optionalString returns the empty string when the key is absent.
func (p payload) optionalString(key string) (string, error) {
	if _, ok := p[key]; !ok {
		return "", nil
	}
	return p.requireString(key)
}

func (p payload) requireInt64(key string) (int64, error) {
	raw, ok := p[key]
	if !ok {
		return 0, fmt.Errorf("missing required field %q", key)
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, fmt.Errorf("field %q: %w", key, err)
	}
	return n, nil
}

func decodeInstanceDetails(p payload) (InstanceDetails, error) {
	var d InstanceDetails
	var err error
	if d.ID, err = p.requireString("id"); err != nil {
		return d, err
	}
	if d.Name, err = p.requireString("name"); err != nil {
		return d, err
	}
	if d.TenantID, err = p.requireString("tenant_id"); err != nil {
		return d, err
	}
	if d.CloudProvider, err = p.requireString("cloud_provider"); err != nil {
		return d, err
	}
	return d, nil
}

func decodeInstanceSpecificDetails(p payload) (InstanceSpecificDetails, error) {
	var d InstanceSpecificDetails
	base, err := decodeInstanceDetails(p)
	if err != nil {
		return d, err
	}
	d.InstanceDetails = base
	if d.Status, err = p.requireString("status"); err != nil {
		return d, err
	}
	if d.ConnectionURL, err = p.optionalString("connection_url"); err != nil {
		return d, err
	}
	if d.Memory, err = p.requireString("memory"); err != nil {
		return d, err
	}
	return d, nil
}

func decodeInstanceCreateDetails(p payload) (InstanceCreateDetails, error) {
	var d InstanceCreateDetails
	var err error
	if d.ID, err = p.requireString("id"); err != nil {
		return d, err
	}
	// The create response may omit the name.
	if d.Name, err = p.optionalString("name"); err != nil {
		return d, err
	}
	if d.TenantID, err = p.requireString("tenant_id"); err != nil {
		return d, err
	}
	if d.CloudProvider, err = p.requireString("cloud_provider"); err != nil {
		return d, err
	}
	if d.Username, err = p.requireString("username"); err != nil {
		return d, err
	}
	if d.Password, err = p.requireString("password"); err != nil {
		return d, err
	}
	if d.ConnectionURL, err = p.requireString("connection_url"); err != nil {
		return d, err
	}
	return d, nil
}
