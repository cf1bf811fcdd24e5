// Package draft negotiates the server-side order draft with the native host
// before the payment widget is invoked. The returned draft is the canonical
// object the payment and completion steps consume.
package draft

import (
	"context"
	"fmt"
	"log"

	"skysunny/internal/bridge"
	"skysunny/internal/models"
	"skysunny/internal/services/coupon"
	"skysunny/internal/store"
	"skysunny/internal/webctx"
)

type Service interface {
	RequestDraft(ctx context.Context, req Request) (*models.Draft, error)
}

type service struct {
	caller bridge.Caller
	store  store.Store
	origin string
}

// NewService creates a draft negotiator. origin is the page origin used to
// coerce host-supplied redirect URLs to web URLs.
func NewService(caller bridge.Caller, st store.Store, origin string) Service {
	if caller == nil {
		panic("bridge caller is required")
	}
	if st == nil {
		panic("store is required")
	}
	return &service{caller: caller, store: st, origin: origin}
}

// RequestDraft validates the local context, asks the host to create the
// draft, merges the echoed metadata and persists the result for the payment
// and completion steps. Validation failures never reach the bridge.
func (s *service) RequestDraft(ctx context.Context, req Request) (*models.Draft, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	final, err := coupon.Apply(req.Price, req.Coupon)
	if err != nil {
		return nil, fmt.Errorf("coupon cannot be applied: %w", err)
	}

	payload := map[string]interface{}{
		"storeId":       req.StoreID,
		"storeName":     req.StoreName,
		"passId":        req.PassID,
		"passType":      req.PassType,
		"productInfo":   req.ProductInfo,
		"targetId":      req.TargetID,
		"paymentMethod": req.PaymentMethod,
		"amount":        req.Price,
		"finalAmount":   final,
	}
	if req.Coupon != nil {
		payload["couponId"] = req.Coupon.ID
		payload["couponAmount"] = req.Coupon.Amount
	}

	data, err := s.caller.Call(ctx, bridge.ActionRequestDraft, payload)
	if err != nil {
		return nil, fmt.Errorf("draft request failed: %w", err)
	}

	d := s.merge(req, final, data)
	if d.OrderNumber == "" {
		return nil, ErrNoOrderNumber
	}

	if err := s.persist(ctx, d); err != nil {
		// The draft is still usable in-memory; losing persistence only
		// degrades the completion fallback chain.
		log.Printf("draft: failed to persist draft %s: %v", d.OrderNumber, err)
	}
	return d, nil
}

func (s *service) validate(req Request) error {
	if req.PassID <= 0 {
		return ErrMissingProduct
	}
	if models.TargetRequired(req.PassType) && req.TargetID == 0 {
		return fmt.Errorf("%w: pass type %s", ErrMissingTarget, req.PassType)
	}
	return nil
}

// merge builds the canonical draft from the request context and the host's
// echoed metadata. Host values win where present.
func (s *service) merge(req Request, final int, data map[string]interface{}) *models.Draft {
	d := &models.Draft{
		OrderNumber:   stringField(data, "orderNumber"),
		Amount:        final,
		StoreID:       req.StoreID,
		StoreName:     req.StoreName,
		PassID:        req.PassID,
		PassType:      req.PassType,
		ProductInfo:   req.ProductInfo,
		TargetID:      req.TargetID,
		PaymentMethod: req.PaymentMethod,
		FinalAmount:   final,
		TossClientKey: stringField(data, "tossClientKey"),
	}
	if req.Coupon != nil {
		d.CouponID = req.Coupon.ID
		d.CouponAmount = req.Coupon.Amount
	}
	if v, ok := data["amount"]; ok {
		d.Amount = webctx.ParseAmount(v)
	}
	if v := stringField(data, "successUrl"); v != "" {
		d.SuccessURL = webctx.CoerceWebURL(v, s.origin, "/complete-payment")
	}
	if v := stringField(data, "failUrl"); v != "" {
		d.FailURL = webctx.CoerceWebURL(v, s.origin, "/complete-payment?fail=1")
	}
	return d
}

func (s *service) persist(ctx context.Context, d *models.Draft) error {
	if err := store.SetJSON(ctx, s.store, store.KeyDraft, d); err != nil {
		return err
	}
	if d.SuccessURL != "" {
		if err := s.store.Set(ctx, store.KeySuccessURL, d.SuccessURL); err != nil {
			return err
		}
	}
	if d.FailURL != "" {
		if err := s.store.Set(ctx, store.KeyFailURL, d.FailURL); err != nil {
			return err
		}
	}
	return nil
}

func stringField(m map[string]interface{}, key string) string {
	if m == nil {
		return ""
	}
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}
