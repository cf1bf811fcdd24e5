package models

// Order is the checkout order as presented to the payment widget.
// Immutable once payment has been requested.
type Order struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Amount        int    `json:"amount"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
}

// Draft is the server-side order draft created by the native host in reply to
// REQUEST_DRAFT. It is the canonical object consumed by the payment and
// completion steps.
type Draft struct {
	OrderNumber   string `json:"orderNumber"`
	Amount        int    `json:"amount"`
	StoreID       int    `json:"storeId,omitempty"`
	StoreName     string `json:"storeName,omitempty"`
	PassID        int    `json:"passId,omitempty"`
	PassType      string `json:"passType,omitempty"`
	ProductInfo   string `json:"productInfo,omitempty"`
	TargetID      int    `json:"targetId,omitempty"`
	CouponID      string `json:"couponId,omitempty"`
	CouponAmount  int    `json:"couponAmount,omitempty"`
	PaymentMethod string `json:"paymentMethod,omitempty"`
	FinalAmount   int    `json:"finalAmount"`
	TossClientKey string `json:"tossClientKey,omitempty"`
	SuccessURL    string `json:"successUrl,omitempty"`
	FailURL       string `json:"failUrl,omitempty"`
}
