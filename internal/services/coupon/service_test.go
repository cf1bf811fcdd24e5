package coupon

import (
	"context"
	"errors"
	"testing"

	"skysunny/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	coupons []models.Coupon
	err     error
}

func (f *fakeAPI) UsableCoupons(context.Context, int, int) ([]models.Coupon, error) {
	return f.coupons, f.err
}

func TestListUsableFiltersDeadCoupons(t *testing.T) {
	api := &fakeAPI{coupons: []models.Coupon{
		{ID: "1", Title: "수험생 특별 할인 쿠폰", Amount: 5000, ValidDays: 10, Type: models.CouponUsable},
		{ID: "2", Title: "만료된 쿠폰", Amount: 3000, ValidDays: -1, Type: models.CouponExpired},
		{ID: "3", Title: "환불된 쿠폰", Amount: 3000, ValidDays: 5, Type: models.CouponRefunded},
	}}
	svc := NewService(api)

	coupons, err := svc.ListUsable(context.Background(), 7, 3)
	require.NoError(t, err)
	require.Len(t, coupons, 1)
	assert.Equal(t, "1", coupons[0].ID)
}

func TestListUsablePropagatesAPIError(t *testing.T) {
	wantErr := errors.New("boom")
	svc := NewService(&fakeAPI{err: wantErr})

	_, err := svc.ListUsable(context.Background(), 7, 3)
	assert.ErrorIs(t, err, wantErr)
}

func TestApply(t *testing.T) {
	usable := func(amount, minUse int) *models.Coupon {
		return &models.Coupon{Amount: amount, MinUse: minUse, ValidDays: 10, Type: models.CouponUsable}
	}

	tests := []struct {
		name    string
		price   int
		coupon  *models.Coupon
		want    int
		wantErr error
	}{
		{"nil coupon keeps price", 45000, nil, 45000, nil},
		{"discount applied", 45000, usable(5000, 10000), 40000, nil},
		{"floor at zero", 3000, usable(5000, 0), 0, nil},
		{"below minimum use", 5000, usable(5000, 10000), 0, ErrBelowMinUse},
		{"expired", 45000, &models.Coupon{Amount: 5000, ValidDays: 0, Type: models.CouponUsable}, 0, ErrExpired},
		{"refunded", 45000, &models.Coupon{Amount: 5000, ValidDays: 10, Type: models.CouponRefunded}, 0, ErrNotUsable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(tt.price, tt.coupon)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
