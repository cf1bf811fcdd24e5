package models

// QRData is the entry credential block of a QR session.
type QRData struct {
	UsageSeat        string `json:"usageSeat,omitempty"`
	WifiID           string `json:"wifiId,omitempty"`
	WifiPassword     string `json:"wifiPassword,omitempty"`
	EntrancePassword string `json:"entrancePassword,omitempty"`
	ImageURL         string `json:"imageUrl,omitempty"`
}

// QROrderDetails describes the pass the QR session belongs to.
type QROrderDetails struct {
	StoreName   string `json:"storeName,omitempty"`
	PassType    string `json:"passType,omitempty"`
	ProductInfo string `json:"productInfo,omitempty"`
}

// QRAttachedInfo carries the usage/validity strings shown beside the code.
type QRAttachedInfo struct {
	UsageInfo     string `json:"usageInfo,omitempty"`
	ExpireText    string `json:"expireText,omitempty"`
	RemainingInfo string `json:"remainingInfo,omitempty"`
}

// QRIdentifier identifies the QR session across the order and pass records.
type QRIdentifier struct {
	OrderID     string `json:"orderId,omitempty"`
	PassID      string `json:"passId,omitempty"`
	AggregateID int64  `json:"aggregateId,omitempty"`
	Timestamp   int64  `json:"timestamp,omitempty"`
}

// QRSession is the normalized entry-pass payload. RemainSec is derived once
// at normalization and counted down locally; it is never re-fetched.
type QRSession struct {
	QRData       QRData         `json:"qrData"`
	OrderDetails QROrderDetails `json:"orderDetails"`
	AttachedInfo QRAttachedInfo `json:"attachedInfo"`
	Identifier   QRIdentifier   `json:"qrIdentifier"`
	RemainSec    int            `json:"remainSec"`
}
