package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"skysunny/internal/models"
	"skysunny/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletedOrderDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user/order/completed", r.URL.Path)
		assert.Equal(t, "SS-100", r.URL.Query().Get("orderNumber"))
		w.Write([]byte(`{"code":100,"result":{"orderNumber":"SS-100","storeName":"시작 스터디카페","paymentAmount":45000}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, store.NewMemoryStore())
	receipt, err := client.CompletedOrder(context.Background(), "SS-100")
	require.NoError(t, err)
	assert.Equal(t, "SS-100", receipt.OrderNumber)
	assert.Equal(t, 45000, receipt.PaymentAmount)
}

func TestNonSuccessCodeIsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":500,"message":"order not paid yet"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, store.NewMemoryStore())
	_, err := client.CompletedOrder(context.Background(), "SS-100")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrServer)
	assert.Contains(t, err.Error(), "order not paid yet")
}

func TestStatusClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"401 means expired session", http.StatusUnauthorized, ErrSessionExpired},
		{"404 means missing record", http.StatusNotFound, ErrNotFound},
		{"502 means server failure", http.StatusBadGateway, ErrServer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			client := NewClient(srv.URL, store.NewMemoryStore())
			_, err := client.CompletedOrder(context.Background(), "SS-100")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var statusErr *StatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, tt.status, statusErr.Status)
		})
	}
}

func TestMalformedBodyIsBadResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, store.NewMemoryStore())
	_, err := client.CompletedOrder(context.Background(), "SS-100")
	assert.ErrorIs(t, err, ErrBadResponse)
}

func TestBearerTokenComesFromStore(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"code":100,"message":"ok"}`))
	}))
	defer srv.Close()

	ctx := context.Background()
	st := store.NewMemoryStore()
	require.NoError(t, st.Set(ctx, store.KeyAccessToken, "tok-123"))

	client := NewClient(srv.URL, st)
	require.NoError(t, client.UpdateOrder(ctx, models.OrderUpdate{OrderNumber: "SS-100"}))
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestNoTokenNoAuthHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"code":100,"result":[]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, store.NewMemoryStore())
	coupons, err := client.UsableCoupons(context.Background(), 7, 3)
	require.NoError(t, err)
	assert.Empty(t, coupons)
	assert.Empty(t, gotAuth)
}

func TestQRCodeReturnsRawPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user/qr-code/1001", r.URL.Path)
		w.Write([]byte(`{"code":100,"result":{"seat_number":"A-12","expires_in":180}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, store.NewMemoryStore())
	raw, err := client.QRCode(context.Background(), 1001)
	require.NoError(t, err)
	assert.Equal(t, "A-12", raw["seat_number"])
}

func TestTokenExpired(t *testing.T) {
	now := time.Now()
	signed := func(exp time.Time) string {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp.Unix()})
		s, err := tok.SignedString([]byte("test-secret"))
		require.NoError(t, err)
		return s
	}

	t.Run("past exp", func(t *testing.T) {
		expired, ok := tokenExpired(signed(now.Add(-time.Hour)), now)
		assert.True(t, ok)
		assert.True(t, expired)
	})
	t.Run("future exp with bearer prefix", func(t *testing.T) {
		expired, ok := tokenExpired("Bearer "+signed(now.Add(time.Hour)), now)
		assert.True(t, ok)
		assert.False(t, expired)
	})
	t.Run("not a jwt", func(t *testing.T) {
		_, ok := tokenExpired("opaque-token", now)
		assert.False(t, ok)
	})
}
