// Package payment adapts the third-party payment widget: client-key
// validation, idempotent amount updates and the guarded terminal payment
// request.
package payment

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"sync"

	"skysunny/internal/utils"
	"skysunny/internal/webctx"
)

var (
	keyPattern     = regexp.MustCompile(`^(test|live)_(ck|gck)_`)
	liveKeyPattern = regexp.MustCompile(`^live_(ck|gck)_`)
)

// ValidateClientKey checks the widget key format and, in production, that a
// live key is used. The error names the reason; the failure is never silent.
func ValidateClientKey(clientKey string, production bool) error {
	if clientKey == "" {
		return ErrMissingKey
	}
	if !keyPattern.MatchString(clientKey) {
		return fmt.Errorf("%w: got %s", ErrKeyFormat, utils.Mask(clientKey))
	}
	if production && !liveKeyPattern.MatchString(clientKey) {
		return fmt.Errorf("%w: got %s", ErrLiveKeyRequired, utils.Mask(clientKey))
	}
	return nil
}

// Service initializes widget handles.
type Service struct {
	load       Loader
	production bool
}

func NewService(load Loader, production bool) *Service {
	if load == nil {
		panic("widget loader is required")
	}
	return &Service{load: load, production: production}
}

// Init validates the keys and loads the widget, returning a handle that
// tracks the amount last pushed to the widget.
func (s *Service) Init(clientKey, customerKey string) (*Handle, error) {
	if err := ValidateClientKey(clientKey, s.production); err != nil {
		return nil, err
	}
	w, err := s.load(clientKey, customerKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment widget: %w", err)
	}
	log.Printf("payment: widget loaded for key %s", utils.Mask(clientKey))
	return &Handle{widget: w, lastAmount: -1}, nil
}

// Handle drives one loaded widget instance.
type Handle struct {
	mu         sync.Mutex
	widget     Widget
	lastAmount int
	requested  bool
}

// UpdateAmount pushes a new amount to the widget. Unchanged amounts are
// skipped; once payment has been requested the order is immutable.
func (h *Handle) UpdateAmount(value int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.widget == nil {
		return ErrWidgetNotReady
	}
	if h.requested || value == h.lastAmount {
		return nil
	}
	if err := h.widget.UpdateAmount(value); err != nil {
		return fmt.Errorf("failed to update widget amount: %w", err)
	}
	log.Printf("payment: amount %d -> %d", h.lastAmount, value)
	h.lastAmount = value
	return nil
}

// RequestPayment checks every precondition locally, then hands off to the
// widget. The widget's redirect navigation is the terminal step; no local
// state is observed afterwards.
func (h *Handle) RequestPayment(ctx context.Context, req Request) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.widget == nil {
		return ErrWidgetNotReady
	}
	if req.Amount <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidAmount, req.Amount)
	}
	if len(strings.TrimSpace(req.OrderID)) < 6 {
		return fmt.Errorf("%w: got %q", ErrInvalidOrderID, req.OrderID)
	}
	if req.SuccessURL == "" || req.FailURL == "" {
		return ErrMissingRedirectURL
	}
	if !webctx.IsWebURL(req.SuccessURL) || !webctx.IsWebURL(req.FailURL) {
		return fmt.Errorf("%w: success=%s fail=%s", ErrRedirectScheme, req.SuccessURL, req.FailURL)
	}

	log.Printf("payment: requesting payment for order %s amount %d", req.OrderID, req.Amount)
	if err := h.widget.RequestPayment(ctx, req); err != nil {
		return fmt.Errorf("payment request failed: %w", err)
	}
	h.requested = true
	return nil
}
