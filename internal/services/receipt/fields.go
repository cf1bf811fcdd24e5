package receipt

import (
	"strconv"

	"skysunny/internal/models"
)

// Field describes one receipt line on the completion screen. The mapping per
// pass type is documented data, not computed.
type Field struct {
	Key       string
	Label     string
	Money     bool
	Separator bool
}

var commonFields = []Field{
	{Key: "storeName", Label: "매장명"},
	{Key: "passType", Label: "이용권"},
	{Key: "productInfo", Label: "상품정보"},
	{Key: "paymentAmount", Label: "이용금액", Money: true},
	{Key: "validDays", Label: "이용기간"},
}

var separator = Field{Separator: true}

var closingFields = []Field{
	{Key: "orderNumber", Label: "주문번호"},
	{Key: "paidAt", Label: "결제일시"},
	{Key: "paymentAmount", Label: "결제금액", Money: true},
}

// DisplayFields returns the field set for a pass type. Unknown types fall
// back to the union of all fields.
func DisplayFields(passType string) []Field {
	var additional []Field
	switch passType {
	case models.PassCash, models.PassFix, models.PassOneDay:
		additional = []Field{{Key: "usageInfo", Label: "이용정보"}}
	case models.PassFree:
		additional = []Field{
			{Key: "usageInfo", Label: "이용정보"},
			{Key: "oneDayInfo", Label: "1일 이용정보"},
		}
	case models.PassLocker, models.PassStudyRoom:
		additional = nil
	default:
		additional = []Field{
			{Key: "usageInfo", Label: "이용정보"},
			{Key: "expireText", Label: "만료까지"},
			{Key: "remainingInfo", Label: "잔여정보"},
			{Key: "oneDayInfo", Label: "1일 이용정보"},
		}
	}

	fields := make([]Field, 0, len(commonFields)+1+len(additional)+len(closingFields))
	fields = append(fields, commonFields...)
	fields = append(fields, separator)
	fields = append(fields, additional...)
	fields = append(fields, closingFields...)
	return fields
}

// FieldValue renders a receipt field for display. Empty values show as "-".
func FieldValue(r *models.Receipt, f Field) string {
	if f.Separator {
		return ""
	}
	var v string
	switch f.Key {
	case "storeName":
		v = r.StoreName
	case "passType":
		v = models.PassTypeDisplayName(r.PassType)
	case "productInfo":
		v = r.ProductInfo
	case "paymentAmount":
		return FormatMoney(r.PaymentAmount)
	case "validDays":
		v = r.ValidDays
	case "usageInfo":
		v = r.UsageInfo
	case "expireText":
		v = r.ExpireText
	case "remainingInfo":
		v = r.RemainingInfo
	case "oneDayInfo":
		v = r.OneDayInfo
	case "orderNumber":
		v = r.OrderNumber
	case "paidAt":
		v = r.PaidAt
	}
	if v == "" {
		return "-"
	}
	return v
}

// FormatMoney renders an amount as a grouped won string, e.g. 45000 ->
// "45,000원".
func FormatMoney(amount int) string {
	s := strconv.Itoa(amount)
	neg := false
	if amount < 0 {
		neg = true
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		s = "-" + s
	}
	return s + "원"
}
