// Package coupon lists usable store coupons and applies a selected coupon
// to an order amount. At most one coupon is active per checkout session.
package coupon

import (
	"context"
	"fmt"

	"skysunny/internal/models"
)

// API is the coupon endpoint surface this service consumes.
type API interface {
	UsableCoupons(ctx context.Context, storeID, passID int) ([]models.Coupon, error)
}

// Service exposes coupon listing and discount application.
type Service interface {
	ListUsable(ctx context.Context, storeID, passID int) ([]models.Coupon, error)
}

type service struct {
	api API
}

func NewService(api API) Service {
	if api == nil {
		panic("coupon api is required")
	}
	return &service{api: api}
}

// ListUsable returns the coupons that can actually be applied, dropping
// expired and refunded entries the server may still include.
func (s *service) ListUsable(ctx context.Context, storeID, passID int) ([]models.Coupon, error) {
	coupons, err := s.api.UsableCoupons(ctx, storeID, passID)
	if err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}
	usable := make([]models.Coupon, 0, len(coupons))
	for _, c := range coupons {
		c := c
		if c.Usable() {
			usable = append(usable, c)
		}
	}
	return usable, nil
}

// Apply computes the final amount for price with c applied. A nil coupon
// leaves the price unchanged. The discount never drives the result below 0.
func Apply(price int, c *models.Coupon) (int, error) {
	if c == nil {
		return price, nil
	}
	if c.ValidDays <= 0 {
		return 0, ErrExpired
	}
	if !c.Usable() {
		return 0, ErrNotUsable
	}
	if price < c.MinUse {
		return 0, fmt.Errorf("%w: need at least %d, have %d", ErrBelowMinUse, c.MinUse, price)
	}
	final := price - c.Amount
	if final < 0 {
		final = 0
	}
	return final, nil
}
