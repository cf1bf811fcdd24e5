// Package main drives the full checkout flow against a running hostsim:
// context resolution, coupon listing, draft negotiation, payment, receipt
// and the QR entry pass. Useful for exercising the whole pipeline from a
// terminal while the real WebView host is not around.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"skysunny/internal/api"
	"skysunny/internal/bridge"
	"skysunny/internal/config"
	"skysunny/internal/models"
	"skysunny/internal/services/coupon"
	"skysunny/internal/services/draft"
	"skysunny/internal/services/payment"
	"skysunny/internal/services/qrsession"
	"skysunny/internal/services/receipt"
	"skysunny/internal/store"
	"skysunny/internal/webctx"
)

func main() {
	config.LoadEnv()
	ctx := context.Background()

	hostURL := config.GetEnv("HOSTSIM_URL", "http://localhost:3000")
	origin := config.GetEnv("CHECKOUT_ORIGIN", "https://skysunny.mayoube.co.kr")

	st := newStore(ctx)
	apiClient := api.NewClient(hostURL, st)
	bridgeClient := newBridgeClient(hostURL)

	webCtx := webctx.Resolve(url.Values{}, nil, storedSnapshot(ctx, st), origin,
		config.GetEnv("TOSS_CLIENT_KEY", "test_ck_D5GePWvyJnrK0W0k6q8gLzN97Eoq"))
	log.Printf("checkout: resolved context order=%s customer=%s", webCtx.Order.ID, webCtx.CustomerKey)

	coupons, err := coupon.NewService(apiClient).ListUsable(ctx, 7, 3)
	if err != nil {
		log.Fatalf("checkout: coupon listing failed: %v", err)
	}
	var selected *models.Coupon
	if len(coupons) > 0 {
		selected = &coupons[0]
		log.Printf("checkout: applying coupon %s (-%d)", selected.Title, selected.Amount)
	}

	d, err := draft.NewService(bridgeClient, st, origin).RequestDraft(ctx, draft.Request{
		StoreID:       7,
		StoreName:     "시작 스터디카페 인천 송도점",
		PassID:        3,
		PassType:      models.PassCash,
		ProductInfo:   "50,000 캐시권",
		Price:         50000,
		Coupon:        selected,
		PaymentMethod: "카드",
	})
	if err != nil {
		log.Fatalf("checkout: draft failed: %v", err)
	}
	log.Printf("checkout: draft %s final=%d", d.OrderNumber, d.FinalAmount)

	if err := pay(ctx, webCtx, d); err != nil {
		log.Fatalf("checkout: payment failed: %v", err)
	}

	receiptSvc := receipt.NewService(apiClient, st)
	orderNumber := receiptSvc.ResolveOrderNumber(ctx, url.Values{}, nil)
	r, err := receiptSvc.LoadReceipt(ctx, orderNumber)
	if err != nil {
		log.Fatalf("checkout: receipt failed: %v", err)
	}
	printReceipt(r)

	if err := showQRPass(ctx, apiClient, bridgeClient, st); err != nil {
		log.Fatalf("checkout: QR pass failed: %v", err)
	}

	if err := bridge.GoHome(bridgeClient, "홈"); err != nil {
		log.Printf("checkout: go-home notify failed: %v", err)
	}
}

// newStore uses Redis when configured so state survives across runs, the
// memory store otherwise.
func newStore(ctx context.Context) store.Store {
	host := config.GetEnv("REDIS_HOST", "")
	if host == "" {
		return store.NewMemoryStore()
	}
	client := store.NewRedisClient(&store.RedisConfig{
		Host:     host,
		Port:     config.GetEnv("REDIS_PORT", "6379"),
		Password: config.GetEnv("REDIS_PASSWORD", ""),
		DB:       config.GetIntEnv("REDIS_DB", 0),
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("checkout: redis unreachable, using memory store: %v", err)
		return store.NewMemoryStore()
	}
	return store.NewRedisStore(client, config.GetDurationEnv("REDIS_TTL", 24*time.Hour))
}

func storedSnapshot(ctx context.Context, st store.Store) webctx.Stored {
	token, _, err := st.Get(ctx, store.KeyAccessToken)
	if err != nil {
		log.Printf("checkout: failed to read stored token: %v", err)
	}
	return webctx.Stored{AccessToken: token}
}

// newBridgeClient wires a loopback transport that answers through hostsim's
// bridge endpoint, pushing the JSON reply into the window-message feed the
// way the real host does.
func newBridgeClient(hostURL string) *bridge.Client {
	messages := bridge.NewFeed(bridge.SourceMessage)
	transport := bridge.NewLoopback("hostsim", func(req models.BridgeRequest) {
		body, err := json.Marshal(req)
		if err != nil {
			log.Printf("checkout: cannot marshal bridge request: %v", err)
			return
		}
		resp, err := http.Post(hostURL+"/bridge/"+req.Action, "application/json", bytes.NewReader(body))
		if err != nil {
			log.Printf("checkout: bridge request %s failed: %v", req.Action, err)
			return
		}
		defer resp.Body.Close()
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			log.Printf("checkout: cannot read bridge reply: %v", err)
			return
		}
		if err := messages.PushRaw(raw); err != nil {
			log.Printf("checkout: dropping bridge reply for %s: %v", req.Action, err)
		}
	})
	timeout := config.GetDurationEnv("BRIDGE_TIMEOUT", bridge.DefaultTimeout)
	return bridge.NewClient(
		[]bridge.Transport{transport},
		[]bridge.ReplySource{messages},
		bridge.WithTimeout(timeout),
	)
}

func pay(ctx context.Context, webCtx webctx.Context, d *models.Draft) error {
	svc := payment.NewService(loadConsoleWidget, config.IsProduction())
	clientKey := d.TossClientKey
	if clientKey == "" {
		clientKey = webCtx.ClientKey
	}
	handle, err := svc.Init(clientKey, webCtx.CustomerKey)
	if err != nil {
		return err
	}
	if err := handle.UpdateAmount(d.FinalAmount); err != nil {
		return err
	}
	successURL := d.SuccessURL
	if successURL == "" {
		successURL = webCtx.SuccessURL
	}
	failURL := d.FailURL
	if failURL == "" {
		failURL = webCtx.FailURL
	}
	return handle.RequestPayment(ctx, payment.Request{
		OrderID:       d.OrderNumber,
		OrderName:     d.ProductInfo,
		Amount:        d.FinalAmount,
		CustomerName:  webCtx.Order.CustomerName,
		CustomerEmail: webCtx.Order.CustomerEmail,
		SuccessURL:    successURL,
		FailURL:       failURL,
	})
}

// consoleWidget stands in for the Toss widget; the real one ends with the
// browser navigating to the success URL.
type consoleWidget struct{}

func loadConsoleWidget(clientKey, customerKey string) (payment.Widget, error) {
	return consoleWidget{}, nil
}

func (consoleWidget) UpdateAmount(value int) error {
	fmt.Printf("  [widget] amount set to %s\n", receipt.FormatMoney(value))
	return nil
}

func (consoleWidget) RequestPayment(_ context.Context, req payment.Request) error {
	fmt.Printf("  [widget] paying %s for %s -> %s\n",
		receipt.FormatMoney(req.Amount), req.OrderID, req.SuccessURL)
	return nil
}

func printReceipt(r *models.Receipt) {
	fmt.Println("결제 완료")
	for _, f := range receipt.DisplayFields(r.PassType) {
		if f.Separator {
			fmt.Println("  ----------------")
			continue
		}
		fmt.Printf("  %s: %s\n", f.Label, receipt.FieldValue(r, f))
	}
}

func showQRPass(ctx context.Context, apiClient *api.Client, notifier bridge.Notifier, st store.Store) error {
	svc := qrsession.NewService(apiClient, notifier, st)
	if err := svc.Boot(ctx, qrsession.Boot{AggregateID: 1001}); err != nil {
		return err
	}

	select {
	case u := <-svc.Updates():
		if u.Err != nil {
			return u.Err
		}
		s := u.Session
		fmt.Printf("입장권: 좌석 %s / 와이파이 %s / 출입문 %s\n",
			s.QRData.UsageSeat, s.QRData.WifiID, s.QRData.EntrancePassword)
		fmt.Printf("  %s · %s\n", s.OrderDetails.StoreName, models.PassTypeDisplayName(s.OrderDetails.PassType))

		countdown := qrsession.NewCountdown(s.RemainSec, func(remain int) {
			if remain%30 == 0 {
				fmt.Printf("  유효시간 %s\n", qrsession.FormatMMSS(remain))
			}
		})
		countdown.Start()
		defer countdown.Stop()
		fmt.Printf("  유효시간 %s\n", qrsession.FormatMMSS(countdown.Remain()))
		return nil
	case <-time.After(10 * time.Second):
		return fmt.Errorf("no QR session update received")
	}
}
