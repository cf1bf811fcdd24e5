package models

// Coupon statuses as reported by the coupon API.
const (
	CouponUsable   = "usable"
	CouponExpired  = "expired"
	CouponRefunded = "refunded"
)

// Coupon is a store discount coupon. At most one coupon is active per
// checkout session.
type Coupon struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	Title     string `json:"title"`
	Store     string `json:"store,omitempty"`
	Amount    int    `json:"amount"`
	MinUse    int    `json:"minUse"`
	ValidDays int    `json:"validDays"`
	Type      string `json:"type"`
}

// Usable reports whether the coupon can still be applied.
func (c *Coupon) Usable() bool {
	return c != nil && c.ValidDays > 0 && c.Type == CouponUsable
}
