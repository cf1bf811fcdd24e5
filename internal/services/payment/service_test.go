package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWidget struct {
	updates  []int
	requests []Request
	err      error
}

func (w *fakeWidget) UpdateAmount(value int) error {
	if w.err != nil {
		return w.err
	}
	w.updates = append(w.updates, value)
	return nil
}

func (w *fakeWidget) RequestPayment(_ context.Context, req Request) error {
	if w.err != nil {
		return w.err
	}
	w.requests = append(w.requests, req)
	return nil
}

func newHandle(t *testing.T) (*Handle, *fakeWidget) {
	t.Helper()
	widget := &fakeWidget{}
	svc := NewService(func(string, string) (Widget, error) { return widget, nil }, false)
	handle, err := svc.Init("test_ck_abc", "guest_1")
	require.NoError(t, err)
	return handle, widget
}

func validRequest() Request {
	return Request{
		OrderID:    "SS-100200",
		OrderName:  "50,000 캐시권",
		Amount:     45000,
		SuccessURL: "https://pay.example.com/complete-payment",
		FailURL:    "https://pay.example.com/complete-payment?fail=1",
	}
}

func TestValidateClientKey(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		production bool
		wantErr    error
	}{
		{"test key outside production", "test_ck_abc", false, nil},
		{"live key outside production", "live_gck_abc", false, nil},
		{"live key in production", "live_ck_abc", true, nil},
		{"empty key", "", false, ErrMissingKey},
		{"wrong format", "foo_bar_abc", false, ErrKeyFormat},
		{"test key in production", "test_ck_abc", true, ErrLiveKeyRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateClientKey(tt.key, tt.production)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestInitRejectsBadKey(t *testing.T) {
	svc := NewService(func(string, string) (Widget, error) { return &fakeWidget{}, nil }, true)
	_, err := svc.Init("test_ck_abc", "guest_1")
	assert.ErrorIs(t, err, ErrLiveKeyRequired)
}

func TestInitWrapsLoaderFailure(t *testing.T) {
	loadErr := errors.New("sdk unreachable")
	svc := NewService(func(string, string) (Widget, error) { return nil, loadErr }, false)
	_, err := svc.Init("test_ck_abc", "guest_1")
	assert.ErrorIs(t, err, loadErr)
}

func TestUpdateAmountSkipsUnchangedValue(t *testing.T) {
	handle, widget := newHandle(t)

	require.NoError(t, handle.UpdateAmount(45000))
	require.NoError(t, handle.UpdateAmount(45000))
	require.NoError(t, handle.UpdateAmount(40000))

	assert.Equal(t, []int{45000, 40000}, widget.updates)
}

func TestUpdateAmountFrozenAfterRequest(t *testing.T) {
	handle, widget := newHandle(t)

	require.NoError(t, handle.UpdateAmount(45000))
	require.NoError(t, handle.RequestPayment(context.Background(), validRequest()))
	require.NoError(t, handle.UpdateAmount(10000))

	assert.Equal(t, []int{45000}, widget.updates, "amount immutable once payment requested")
}

func TestRequestPaymentPreconditions(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr error
	}{
		{"zero amount", func(r *Request) { r.Amount = 0 }, ErrInvalidAmount},
		{"short order id", func(r *Request) { r.OrderID = "ab 12" }, ErrInvalidOrderID},
		{"missing success url", func(r *Request) { r.SuccessURL = "" }, ErrMissingRedirectURL},
		{"missing fail url", func(r *Request) { r.FailURL = "" }, ErrMissingRedirectURL},
		{"app scheme success url", func(r *Request) { r.SuccessURL = "skysunny://done" }, ErrRedirectScheme},
		{"app scheme fail url", func(r *Request) { r.FailURL = "intent://fail" }, ErrRedirectScheme},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handle, widget := newHandle(t)
			req := validRequest()
			tt.mutate(&req)

			err := handle.RequestPayment(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, widget.requests, "failed preconditions never reach the widget")
		})
	}
}

func TestRequestPaymentHandsOffToWidget(t *testing.T) {
	handle, widget := newHandle(t)

	require.NoError(t, handle.RequestPayment(context.Background(), validRequest()))
	require.Len(t, widget.requests, 1)
	assert.Equal(t, "SS-100200", widget.requests[0].OrderID)
}

func TestHandleWithoutWidget(t *testing.T) {
	handle := &Handle{}
	assert.ErrorIs(t, handle.UpdateAmount(1000), ErrWidgetNotReady)
	assert.ErrorIs(t, handle.RequestPayment(context.Background(), validRequest()), ErrWidgetNotReady)
}
