package coupon

import "errors"

// Service errors
var (
	ErrExpired     = errors.New("coupon is expired")
	ErrNotUsable   = errors.New("coupon is not usable")
	ErrBelowMinUse = errors.New("order amount is below the coupon minimum")
)
