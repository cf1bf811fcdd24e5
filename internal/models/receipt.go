package models

// Receipt is the authoritative paid-order record fetched from the order API.
type Receipt struct {
	OrderNumber   string `json:"orderNumber"`
	StoreName     string `json:"storeName"`
	PassType      string `json:"passType"`
	ProductInfo   string `json:"productInfo"`
	PaymentAmount int    `json:"paymentAmount"`
	ValidDays     string `json:"validDays,omitempty"`
	UsageInfo     string `json:"usageInfo,omitempty"`
	ExpireText    string `json:"expireText,omitempty"`
	RemainingInfo string `json:"remainingInfo,omitempty"`
	OneDayInfo    string `json:"oneDayInfo,omitempty"`
	PaidAt        string `json:"paidAt,omitempty"`
	CouponAmount  int    `json:"couponAmount,omitempty"`
}

// OrderUpdate is the best-effort reconciliation payload posted after a
// receipt fetch when local draft metadata exists.
type OrderUpdate struct {
	OrderNumber   string `json:"orderNumber"`
	CouponID      string `json:"couponId,omitempty"`
	CouponAmount  int    `json:"couponAmount,omitempty"`
	PassID        int    `json:"passId,omitempty"`
	PassType      string `json:"passType,omitempty"`
	TargetID      int    `json:"targetId,omitempty"`
	PaymentMethod string `json:"paymentMethod,omitempty"`
	FinalAmount   int    `json:"finalAmount,omitempty"`
}
