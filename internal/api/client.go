// Package api is the client for the skysunny order/coupon/QR HTTP API. The
// API is an external collaborator; the bearer token is read from the shared
// store on every request, matching what the host app does.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"skysunny/internal/models"
	"skysunny/internal/store"
	"skysunny/internal/utils"
)

// DefaultBaseURL is the production API host.
const DefaultBaseURL = "https://skysunny-api.mayoube.co.kr"

// successCode is the API's application-level OK code.
const successCode = 100

type Client struct {
	baseURL    string
	httpClient *http.Client
	store      store.Store
}

func NewClient(baseURL string, st store.Store) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		store:      st,
	}
}

// envelope is the common response wrapper: {code, message?, result?}.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
}

// CompletedOrder fetches the authoritative receipt for a paid order.
func (c *Client) CompletedOrder(ctx context.Context, orderNumber string) (*models.Receipt, error) {
	q := url.Values{"orderNumber": {orderNumber}}
	var receipt models.Receipt
	if err := c.do(ctx, http.MethodGet, "/user/order/completed", q, nil, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// UpdateOrder posts the reconciliation payload for an order. Callers treat
// this as best-effort.
func (c *Client) UpdateOrder(ctx context.Context, update models.OrderUpdate) error {
	return c.do(ctx, http.MethodPost, "/user/order/update", nil, update, nil)
}

// UsableCoupons lists the coupons usable for a store/pass combination.
func (c *Client) UsableCoupons(ctx context.Context, storeID, passID int) ([]models.Coupon, error) {
	q := url.Values{
		"storeId": {strconv.Itoa(storeID)},
		"passId":  {strconv.Itoa(passID)},
	}
	var coupons []models.Coupon
	if err := c.do(ctx, http.MethodGet, "/user/usable/coupons", q, nil, &coupons); err != nil {
		return nil, err
	}
	return coupons, nil
}

// QRCode fetches the raw QR session payload for an aggregate id. The result
// is returned undecoded because field naming varies by server version; the
// qrsession service normalizes it.
func (c *Client) QRCode(ctx context.Context, aggregateID int64) (map[string]interface{}, error) {
	var raw map[string]interface{}
	path := fmt.Sprintf("/user/qr-code/%d", aggregateID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, dest interface{}) error {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json; charset=utf-8")
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	c.attachToken(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", fullURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("api: %s %s -> %d", method, fullURL, resp.StatusCode)
		return classify(resp.StatusCode, fullURL)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", fullURL, err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrBadResponse, fullURL, err)
	}
	if env.Code != successCode {
		msg := env.Message
		if msg == "" {
			msg = "no message"
		}
		return fmt.Errorf("%w: code=%d: %s", ErrServer, env.Code, msg)
	}
	if dest == nil || len(env.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Result, dest); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrBadResponse, fullURL, err)
	}
	return nil
}

// attachToken reads the access token from the store and attaches it as a
// bearer header. Expiry is checked only to log; the server stays
// authoritative, so a stale token is still sent and answered with a 401.
func (c *Client) attachToken(ctx context.Context, req *http.Request) {
	if c.store == nil {
		return
	}
	token, found, err := c.store.Get(ctx, store.KeyAccessToken)
	if err != nil {
		log.Printf("api: failed to read access token: %v", err)
		return
	}
	if !found || token == "" {
		return
	}
	if expired, ok := tokenExpired(token, time.Now()); ok && expired {
		log.Printf("api: access token %s looks expired", utils.TokenPreview(token))
	}
	if !strings.HasPrefix(token, "Bearer ") {
		token = "Bearer " + token
	}
	req.Header.Set("Authorization", token)
}
