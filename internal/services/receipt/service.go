// Package receipt resolves which order just completed and loads its
// authoritative receipt from the order API.
package receipt

import (
	"context"
	"fmt"
	"log"
	"net/url"

	"skysunny/internal/models"
	"skysunny/internal/store"
	"skysunny/internal/webctx"
)

// Query parameter names the payment redirect may carry the order id under.
var orderNumberKeys = []string{"orderNumber", "orderId", "order_id", "paymentKey"}

// OrderAPI is the order endpoint surface this service consumes.
type OrderAPI interface {
	CompletedOrder(ctx context.Context, orderNumber string) (*models.Receipt, error)
	UpdateOrder(ctx context.Context, update models.OrderUpdate) error
}

type Service interface {
	ResolveOrderNumber(ctx context.Context, query url.Values, injected *webctx.Injected) string
	LoadReceipt(ctx context.Context, orderNumber string) (*models.Receipt, error)
}

type service struct {
	api   OrderAPI
	store store.Store
}

func NewService(api OrderAPI, st store.Store) Service {
	if api == nil {
		panic("order api is required")
	}
	if st == nil {
		panic("store is required")
	}
	return &service{api: api, store: st}
}

// ResolveOrderNumber walks the precedence chain: redirect query parameter,
// persisted draft, injected global, long-lived fallback. First non-empty
// wins; sources are never merged.
func (s *service) ResolveOrderNumber(ctx context.Context, query url.Values, injected *webctx.Injected) string {
	resolvers := []func() string{
		func() string { return fromQuery(query) },
		func() string { return s.fromDraft(ctx) },
		func() string { return fromInjected(injected) },
		func() string { return s.fromLastOrder(ctx) },
	}
	for _, r := range resolvers {
		if v := r(); v != "" {
			return v
		}
	}
	return ""
}

func fromQuery(query url.Values) string {
	for _, key := range orderNumberKeys {
		if v := query.Get(key); v != "" {
			return v
		}
	}
	return ""
}

func (s *service) fromDraft(ctx context.Context) string {
	var draft models.Draft
	found, err := store.GetJSON(ctx, s.store, store.KeyDraft, &draft)
	if err != nil {
		log.Printf("receipt: stored draft unreadable: %v", err)
		return ""
	}
	if !found {
		return ""
	}
	return draft.OrderNumber
}

func fromInjected(injected *webctx.Injected) string {
	if injected == nil {
		return ""
	}
	if injected.OrderNumber != "" {
		return injected.OrderNumber
	}
	if injected.LastOrderNumber != "" {
		return injected.LastOrderNumber
	}
	if injected.Order != nil {
		return injected.Order.ID
	}
	return ""
}

func (s *service) fromLastOrder(ctx context.Context) string {
	v, _, err := s.store.Get(ctx, store.KeyLastOrderNumber)
	if err != nil {
		log.Printf("receipt: failed to read last order number: %v", err)
		return ""
	}
	return v
}

// LoadReceipt fetches the receipt and, when local draft metadata exists,
// posts a best-effort reconciliation update. The update failing never blocks
// the already-fetched receipt.
func (s *service) LoadReceipt(ctx context.Context, orderNumber string) (*models.Receipt, error) {
	if orderNumber == "" {
		return nil, ErrNoOrderNumber
	}

	receipt, err := s.api.CompletedOrder(ctx, orderNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to load receipt for %s: %w", orderNumber, err)
	}

	s.reconcile(ctx, orderNumber)

	if err := s.store.Set(ctx, store.KeyLastOrderNumber, orderNumber); err != nil {
		log.Printf("receipt: failed to remember order number %s: %v", orderNumber, err)
	}
	return receipt, nil
}

func (s *service) reconcile(ctx context.Context, orderNumber string) {
	var draft models.Draft
	found, err := store.GetJSON(ctx, s.store, store.KeyDraft, &draft)
	if err != nil || !found {
		return
	}

	update := models.OrderUpdate{
		OrderNumber:   orderNumber,
		CouponID:      draft.CouponID,
		CouponAmount:  draft.CouponAmount,
		PassID:        draft.PassID,
		PassType:      draft.PassType,
		TargetID:      draft.TargetID,
		PaymentMethod: draft.PaymentMethod,
		FinalAmount:   draft.FinalAmount,
	}
	if err := s.api.UpdateOrder(ctx, update); err != nil {
		log.Printf("receipt: best-effort order update for %s failed: %v", orderNumber, err)
	}
}
