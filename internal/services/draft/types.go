package draft

import "skysunny/internal/models"

// Request is the ticket/coupon context gathered on the purchase-review
// screen before a draft is negotiated with the host.
type Request struct {
	StoreID       int
	StoreName     string
	PassID        int
	PassType      string
	ProductInfo   string
	TargetID      int
	Price         int
	Coupon        *models.Coupon
	PaymentMethod string
}
