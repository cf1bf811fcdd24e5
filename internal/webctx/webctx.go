// Package webctx resolves the checkout context from the sources a WebView
// screen can be opened with: URL query parameters, the context object the
// native host injects, and persisted storage. Precedence is fixed:
// injected > query > stored > default.
package webctx

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"skysunny/internal/models"

	"github.com/google/uuid"
)

// InjectedOrder is the order block of the host-injected context.
type InjectedOrder struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Amount        interface{} `json:"amount"`
	CustomerName  string      `json:"customerName"`
	CustomerEmail string      `json:"customerEmail"`
}

// Injected is the context object the native host injects into the WebView
// before a checkout screen mounts. Every field is optional.
type Injected struct {
	Order           *InjectedOrder `json:"order,omitempty"`
	TossClientKey   string         `json:"tossClientKey,omitempty"`
	UserID          string         `json:"userId,omitempty"`
	AccessToken     string         `json:"accessToken,omitempty"`
	SuccessURL      string         `json:"successUrl,omitempty"`
	FailURL         string         `json:"failUrl,omitempty"`
	StoreID         int            `json:"storeId,omitempty"`
	StoreName       string         `json:"storeName,omitempty"`
	OrderNumber     string         `json:"orderNumber,omitempty"`
	LastOrderNumber string         `json:"lastOrderNumber,omitempty"`
	AggregateID     int64          `json:"aggregateId,omitempty"`
}

// Stored is the snapshot of persisted identity state read by the caller
// before resolution, keeping Resolve itself a pure function.
type Stored struct {
	UserID      string
	AccessToken string
}

// Context is the merged checkout context.
type Context struct {
	Order       models.Order
	ClientKey   string
	CustomerKey string
	SuccessURL  string
	FailURL     string
}

// Resolve merges the three context sources into one record. origin is the
// page origin used for redirect-URL fallbacks; defaultClientKey is the
// build-time widget key used when no source supplies one.
func Resolve(query url.Values, injected *Injected, stored Stored, origin, defaultClientKey string) Context {
	if injected == nil {
		injected = &Injected{}
	}
	ord := injected.Order
	if ord == nil {
		ord = &InjectedOrder{}
	}

	order := models.Order{
		ID: firstNonEmpty(
			func() string { return ord.ID },
			func() string { return query.Get("orderId") },
			func() string { return fallbackOrderID() },
		),
		Name: firstNonEmpty(
			func() string { return ord.Name },
			func() string { return query.Get("name") },
			func() string { return "상품" },
		),
		CustomerName: firstNonEmpty(
			func() string { return ord.CustomerName },
			func() string { return query.Get("customer") },
			func() string { return query.Get("customerName") },
			func() string { return "고객" },
		),
		CustomerEmail: firstNonEmpty(
			func() string { return ord.CustomerEmail },
			func() string { return query.Get("email") },
			func() string { return query.Get("customerEmail") },
			func() string { return "test@example.com" },
		),
	}
	if ord.Amount != nil {
		order.Amount = ParseAmount(ord.Amount)
	} else {
		order.Amount = ParseAmount(query.Get("amount"))
	}

	clientKey := firstNonEmpty(
		func() string { return injected.TossClientKey },
		func() string { return query.Get("tossClientKey") },
		func() string { return defaultClientKey },
	)

	customerKey := firstNonEmpty(
		func() string { return injected.UserID },
		func() string { return query.Get("userId") },
		func() string { return stored.UserID },
		func() string {
			if stored.AccessToken != "" {
				return "authenticated_user"
			}
			return ""
		},
		func() string { return "guest_" + uuid.NewString() },
	)

	successURL := CoerceWebURL(firstNonEmpty(
		func() string { return injected.SuccessURL },
		func() string { return query.Get("successUrl") },
		func() string { return defaultSuccessURL(origin, order) },
	), origin, "/complete-payment")

	failURL := CoerceWebURL(firstNonEmpty(
		func() string { return injected.FailURL },
		func() string { return query.Get("failUrl") },
		func() string {
			return origin + "/complete-payment?fail=1&orderNumber=" + url.QueryEscape(order.ID)
		},
	), origin, "/complete-payment?fail=1")

	return Context{
		Order:       order,
		ClientKey:   clientKey,
		CustomerKey: customerKey,
		SuccessURL:  successURL,
		FailURL:     failURL,
	}
}

// firstNonEmpty evaluates resolvers in order and returns the first non-empty
// result, making the precedence chain explicit and testable.
func firstNonEmpty(resolvers ...func() string) string {
	for _, r := range resolvers {
		if v := r(); v != "" {
			return v
		}
	}
	return ""
}

func fallbackOrderID() string {
	return "order-" + strconv.FormatInt(time.Now().UnixMilli(), 10)
}

func defaultSuccessURL(origin string, order models.Order) string {
	return fmt.Sprintf("%s/complete-payment?orderNumber=%s&amount=%d&desc=%s",
		origin, url.QueryEscape(order.ID), order.Amount, url.QueryEscape(order.Name))
}
