// Package store holds the small set of key/value state shared between
// checkout screens and the native host: the pending draft, the redirect
// URLs, the last paid order number and the access token.
package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// Keys owned by the checkout flow. Session-scoped keys are cleared by the
// host when the WebView is torn down; lastOrderNumber and accessToken
// outlive the session.
const (
	KeyDraft           = "toss:draft"
	KeySuccessURL      = "toss:successUrl"
	KeyFailURL         = "toss:failUrl"
	KeyLastOrderNumber = "lastOrderNumber"
	KeyAccessToken     = "accessToken"
)

// Store is the persisted key/value state. Get reports found=false for a
// missing key rather than an error.
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// GetJSON reads a key and unmarshals it into dest. Missing keys report
// found=false with dest untouched.
func GetJSON(ctx context.Context, s Store, key string, dest interface{}) (bool, error) {
	raw, found, err := s.Get(ctx, key)
	if err != nil || !found {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal stored value %q: %w", key, err)
	}
	return true, nil
}

// SetJSON marshals value and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for %q: %w", key, err)
	}
	return s.Set(ctx, key, string(data))
}
