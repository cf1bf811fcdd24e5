package draft

import (
	"context"
	"testing"

	"skysunny/internal/bridge"
	"skysunny/internal/models"
	"skysunny/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCaller struct {
	calls   []string
	payload map[string]interface{}
	data    map[string]interface{}
	err     error
}

func (f *fakeCaller) Call(_ context.Context, action string, payload map[string]interface{}) (map[string]interface{}, error) {
	f.calls = append(f.calls, action)
	f.payload = payload
	return f.data, f.err
}

func validRequest() Request {
	return Request{
		StoreID:       7,
		StoreName:     "시작 스터디카페 인천 송도점",
		PassID:        3,
		PassType:      models.PassCash,
		ProductInfo:   "50,000 캐시권",
		Price:         50000,
		PaymentMethod: "카드",
	}
}

func TestRequestDraftSuccess(t *testing.T) {
	ctx := context.Background()
	caller := &fakeCaller{data: map[string]interface{}{
		"orderNumber":   "SS-1",
		"amount":        "45,000원",
		"tossClientKey": "test_ck_abc",
		"successUrl":    "https://pay.example.com/done",
		"failUrl":       "skysunny://fail",
	}}
	st := store.NewMemoryStore()
	svc := NewService(caller, st, "https://pay.example.com")

	d, err := svc.RequestDraft(ctx, validRequest())
	require.NoError(t, err)
	assert.Equal(t, []string{bridge.ActionRequestDraft}, caller.calls)
	assert.Equal(t, "SS-1", d.OrderNumber)
	assert.Equal(t, 45000, d.Amount, "host amount wins over local price")
	assert.Equal(t, "test_ck_abc", d.TossClientKey)
	assert.Equal(t, "https://pay.example.com/done", d.SuccessURL)
	assert.Equal(t, "https://pay.example.com/complete-payment?fail=1", d.FailURL,
		"app scheme coerced to web URL")

	var persisted models.Draft
	found, err := store.GetJSON(ctx, st, store.KeyDraft, &persisted)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "SS-1", persisted.OrderNumber)

	successURL, found, err := st.Get(ctx, store.KeySuccessURL)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "https://pay.example.com/done", successURL)
}

func TestRequestDraftAppliesCoupon(t *testing.T) {
	caller := &fakeCaller{data: map[string]interface{}{"orderNumber": "SS-2"}}
	svc := NewService(caller, store.NewMemoryStore(), "https://pay.example.com")

	req := validRequest()
	req.Coupon = &models.Coupon{ID: "1", Amount: 5000, ValidDays: 10, Type: models.CouponUsable}

	d, err := svc.RequestDraft(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 45000, d.FinalAmount)
	assert.Equal(t, "1", d.CouponID)
	assert.Equal(t, 45000, caller.payload["finalAmount"])
	assert.Equal(t, "1", caller.payload["couponId"])
}

func TestRequestDraftRejectsExpiredCoupon(t *testing.T) {
	caller := &fakeCaller{}
	svc := NewService(caller, store.NewMemoryStore(), "https://pay.example.com")

	req := validRequest()
	req.Coupon = &models.Coupon{ID: "2", Amount: 3000, ValidDays: -1, Type: models.CouponExpired}

	_, err := svc.RequestDraft(context.Background(), req)
	require.Error(t, err)
	assert.Empty(t, caller.calls, "invalid coupon never reaches the bridge")
}

func TestRequestDraftValidation(t *testing.T) {
	t.Run("missing product", func(t *testing.T) {
		caller := &fakeCaller{}
		svc := NewService(caller, store.NewMemoryStore(), "https://pay.example.com")

		req := validRequest()
		req.PassID = 0

		_, err := svc.RequestDraft(context.Background(), req)
		assert.ErrorIs(t, err, ErrMissingProduct)
		assert.Empty(t, caller.calls)
	})
	t.Run("seat pass without seat", func(t *testing.T) {
		caller := &fakeCaller{}
		svc := NewService(caller, store.NewMemoryStore(), "https://pay.example.com")

		req := validRequest()
		req.PassType = models.PassFix
		req.TargetID = 0

		_, err := svc.RequestDraft(context.Background(), req)
		assert.ErrorIs(t, err, ErrMissingTarget)
		assert.Empty(t, caller.calls)
	})
	t.Run("seat pass with seat", func(t *testing.T) {
		caller := &fakeCaller{data: map[string]interface{}{"orderNumber": "SS-3"}}
		svc := NewService(caller, store.NewMemoryStore(), "https://pay.example.com")

		req := validRequest()
		req.PassType = models.PassFix
		req.TargetID = 12

		_, err := svc.RequestDraft(context.Background(), req)
		assert.NoError(t, err)
	})
}

func TestRequestDraftRequiresOrderNumber(t *testing.T) {
	caller := &fakeCaller{data: map[string]interface{}{"amount": 45000}}
	svc := NewService(caller, store.NewMemoryStore(), "https://pay.example.com")

	_, err := svc.RequestDraft(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrNoOrderNumber)
}

func TestRequestDraftPropagatesBridgeError(t *testing.T) {
	caller := &fakeCaller{err: bridge.ErrTimeout}
	svc := NewService(caller, store.NewMemoryStore(), "https://pay.example.com")

	_, err := svc.RequestDraft(context.Background(), validRequest())
	assert.ErrorIs(t, err, bridge.ErrTimeout)
}
