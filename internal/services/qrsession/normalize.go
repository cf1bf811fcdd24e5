package qrsession

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"skysunny/internal/models"
)

// Alias tables: every logical field with the external key names it has been
// observed under, in precedence order. A dotted alias addresses a nested
// group. Kept as data so a new server variant is a one-line change.
var (
	usageSeatAliases        = []string{"qrData.usageSeat", "usageSeat", "seat", "seatName", "seat_name", "seat_number"}
	wifiIDAliases           = []string{"qrData.wifiId", "wifiId", "wifi", "wifiSsid", "wifi_ssid"}
	wifiPasswordAliases     = []string{"qrData.wifiPassword", "wifiPassword", "wifiPw", "wifi_pw"}
	entrancePasswordAliases = []string{"qrData.entrancePassword", "entrancePassword", "doorPassword", "entrance"}
	imageURLAliases         = []string{"qrData.imageUrl", "imageUrl", "qrImage", "qr_image_url"}
	storeNameAliases        = []string{"orderDetails.storeName", "storeName", "store_name"}
	passTypeAliases         = []string{"orderDetails.passType", "passType", "pass_type"}
	productInfoAliases      = []string{"orderDetails.productInfo", "productInfo", "productDetail", "product_detail", "product_name", "passName", "pass_name"}
	usageInfoAliases        = []string{"attachedInfo.usageInfo", "usageInfo", "usage_info"}
	expireTextAliases       = []string{"attachedInfo.expireText", "expireText", "expire_text", "expirationText", "expireAt", "expire_at"}
	remainingInfoAliases    = []string{"attachedInfo.remainingInfo", "remainingInfo", "remaining_info", "remainText", "remain_text"}
	orderIDAliases          = []string{"qrIdentifier.orderId", "orderId", "order_id"}
	passIDAliases           = []string{"qrIdentifier.passId", "passId", "pass_id"}
	aggregateIDAliases      = []string{"qrIdentifier.aggregateId", "aggregateId", "aggregate_id", "id"}
	timestampAliases        = []string{"qrIdentifier.timestamp", "timestamp", "ts"}
	remainSecAliases        = []string{"qrIdentifier.remainSec", "qrIdentifier.remain_sec", "remainSec", "remain_sec", "expiresIn", "expires_in"}
)

// Normalize maps any accepted server/host payload variant into the one
// internal session shape. Remaining validity is derived here once: an
// explicit countdown field wins, else an absolute unix-seconds expiry
// timestamp, clamped to >= 0.
func Normalize(raw map[string]interface{}, now time.Time) *models.QRSession {
	r := unwrapResult(raw)

	session := &models.QRSession{
		QRData: models.QRData{
			UsageSeat:        firstString(r, usageSeatAliases),
			WifiID:           firstString(r, wifiIDAliases),
			WifiPassword:     firstString(r, wifiPasswordAliases),
			EntrancePassword: firstString(r, entrancePasswordAliases),
			ImageURL:         firstString(r, imageURLAliases),
		},
		OrderDetails: models.QROrderDetails{
			StoreName:   firstString(r, storeNameAliases),
			PassType:    firstString(r, passTypeAliases),
			ProductInfo: firstString(r, productInfoAliases),
		},
		AttachedInfo: models.QRAttachedInfo{
			UsageInfo:     firstString(r, usageInfoAliases),
			ExpireText:    firstString(r, expireTextAliases),
			RemainingInfo: firstString(r, remainingInfoAliases),
		},
		Identifier: models.QRIdentifier{
			OrderID:     firstString(r, orderIDAliases),
			PassID:      firstString(r, passIDAliases),
			AggregateID: firstInt64(r, aggregateIDAliases),
			Timestamp:   firstInt64(r, timestampAliases),
		},
	}

	if remain, ok := firstNumber(r, remainSecAliases); ok {
		session.RemainSec = clampSeconds(remain)
	} else if ts := session.Identifier.Timestamp; ts > 0 {
		session.RemainSec = clampSeconds(float64(ts) - float64(now.UnixMilli())/1000)
	}
	return session
}

// unwrapResult peels the {code, result} envelope when present; some hosts
// push the session at the top level.
func unwrapResult(raw map[string]interface{}) map[string]interface{} {
	if raw == nil {
		return map[string]interface{}{}
	}
	if nested, ok := raw["result"].(map[string]interface{}); ok {
		return nested
	}
	return raw
}

// lookup resolves a dotted or flat alias against the payload.
func lookup(m map[string]interface{}, alias string) (interface{}, bool) {
	if group, key, found := strings.Cut(alias, "."); found {
		nested, ok := m[group].(map[string]interface{})
		if !ok {
			return nil, false
		}
		v, ok := nested[key]
		return v, ok
	}
	v, ok := m[alias]
	return v, ok
}

// firstString returns the first alias present with a non-empty value.
func firstString(m map[string]interface{}, aliases []string) string {
	for _, alias := range aliases {
		v, ok := lookup(m, alias)
		if !ok || v == nil {
			continue
		}
		switch s := v.(type) {
		case string:
			if s != "" {
				return s
			}
		case float64:
			return strconv.FormatFloat(s, 'f', -1, 64)
		default:
			if str := fmt.Sprintf("%v", v); str != "" {
				return str
			}
		}
	}
	return ""
}

// firstNumber returns the first alias present with a numeric value; numeric
// strings count.
func firstNumber(m map[string]interface{}, aliases []string) (float64, bool) {
	for _, alias := range aliases {
		v, ok := lookup(m, alias)
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n, true
		case int:
			return float64(n), true
		case int64:
			return float64(n), true
		case string:
			if f, err := strconv.ParseFloat(n, 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

func firstInt64(m map[string]interface{}, aliases []string) int64 {
	n, ok := firstNumber(m, aliases)
	if !ok {
		return 0
	}
	return int64(n)
}

// clampSeconds rounds up and floors at zero.
func clampSeconds(f float64) int {
	if f <= 0 {
		return 0
	}
	n := int(f)
	if float64(n) < f {
		n++
	}
	return n
}
