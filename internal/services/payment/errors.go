package payment

import "errors"

// Adapter errors
var (
	ErrMissingKey         = errors.New("widget client key is not configured")
	ErrKeyFormat          = errors.New("client key must start with test_ck_, test_gck_, live_ck_ or live_gck_")
	ErrLiveKeyRequired    = errors.New("production only accepts live_ck_/live_gck_ keys")
	ErrWidgetNotReady     = errors.New("payment widget is not initialized")
	ErrInvalidAmount      = errors.New("payment amount must be greater than zero")
	ErrInvalidOrderID     = errors.New("order id must be at least 6 characters")
	ErrMissingRedirectURL = errors.New("success and fail URLs are required")
	ErrRedirectScheme     = errors.New("redirect URLs must use http or https")
)
