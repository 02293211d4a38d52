package service

import (
    "context"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/novakir/storefront/internal/model"
    "github.com/novakir/storefront/internal/repository"
)

type fakeCouponStore struct {
    coupons map[string]model.Coupon
}

func (s *fakeCouponStore) GetByCode(_ context.Context, code string) (model.Coupon, error) {
    c, ok := s.coupons[code]
    if !ok {
        return model.Coupon{}, repository.ErrCouponNotFound
    }
    return c, nil
}

type fakeCouponUsage struct {
    total   int64
    perUser int64
}

func (u *fakeCouponUsage) CountByCoupon(context.Context, uint64) (int64, error) {
    return u.total, nil
}

func (u *fakeCouponUsage) CountByCouponAndUser(context.Context, uint64, uint64) (int64, error) {
    return u.perUser, nil
}

func newValidator(c model.Coupon, usage *fakeCouponUsage) *CouponValidator {
    v := NewCouponValidator(&fakeCouponStore{coupons: map[string]model.Coupon{c.Code: c}}, usage)
    // pin the clock inside the coupon's window
    v.Now = func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) }
    return v
}

func baseCoupon() model.Coupon {
    limit := int64(100)
    return model.Coupon{
        ID:             1,
        Code:           "SAVE10",
        DiscountType:   model.DiscountPercentage,
        DiscountValue:  10,
        MinOrderAmount: 50,
        StartDate:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
        EndDate:        time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
        UsageLimit:     &limit,
        UsagePerUser:   1,
        IsActive:       true,
    }
}

func TestValidatePercentageDiscount(t *testing.T) {
    v := newValidator(baseCoupon(), &fakeCouponUsage{})

    res, err := v.Validate(context.Background(), "SAVE10", 7, 200.0)
    require.NoError(t, err)
    assert.Equal(t, 20.0, res.Discount)
    assert.Equal(t, 180.0, 200.0-res.Discount)
}

func TestValidateUnknownCode(t *testing.T) {
    v := newValidator(baseCoupon(), &fakeCouponUsage{})

    _, err := v.Validate(context.Background(), "NOPE", 7, 200.0)
    assert.ErrorIs(t, err, ErrCouponNotFound)
}

func TestValidateInactiveAndWindow(t *testing.T) {
    inactive := baseCoupon()
    inactive.IsActive = false
    v := newValidator(inactive, &fakeCouponUsage{})
    _, err := v.Validate(context.Background(), "SAVE10", 7, 200.0)
    assert.ErrorIs(t, err, ErrCouponNotValid)

    expired := baseCoupon()
    v = newValidator(expired, &fakeCouponUsage{})
    v.Now = func() time.Time { return time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC) }
    _, err = v.Validate(context.Background(), "SAVE10", 7, 200.0)
    assert.ErrorIs(t, err, ErrCouponNotValid)

    early := baseCoupon()
    v = newValidator(early, &fakeCouponUsage{})
    v.Now = func() time.Time { return time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC) }
    _, err = v.Validate(context.Background(), "SAVE10", 7, 200.0)
    assert.ErrorIs(t, err, ErrCouponNotValid)
}

func TestValidateBelowMinimum(t *testing.T) {
    v := newValidator(baseCoupon(), &fakeCouponUsage{})

    _, err := v.Validate(context.Background(), "SAVE10", 7, 49.99)
    var below BelowMinimumError
    require.ErrorAs(t, err, &below)
    assert.Equal(t, 50.0, below.Minimum)
    assert.Equal(t, "minimum order amount should be 50", below.Error())
}

func TestValidateGlobalLimit(t *testing.T) {
    v := newValidator(baseCoupon(), &fakeCouponUsage{total: 100})

    _, err := v.Validate(context.Background(), "SAVE10", 7, 200.0)
    assert.ErrorIs(t, err, ErrCouponExhausted)
}

func TestValidateNilLimitIsUnlimited(t *testing.T) {
    c := baseCoupon()
    c.UsageLimit = nil
    v := newValidator(c, &fakeCouponUsage{total: 1_000_000})

    _, err := v.Validate(context.Background(), "SAVE10", 7, 200.0)
    assert.NoError(t, err)
}

func TestValidatePerUserLimit(t *testing.T) {
    v := newValidator(baseCoupon(), &fakeCouponUsage{perUser: 1})

    _, err := v.Validate(context.Background(), "SAVE10", 7, 200.0)
    assert.ErrorIs(t, err, ErrCouponUsedByUser)
}

func TestValidateCheckOrder(t *testing.T) {
    // An inactive coupon on a too-small order reports invalidity, not the
    // minimum: checks run in a fixed order and stop at the first failure.
    c := baseCoupon()
    c.IsActive = false
    v := newValidator(c, &fakeCouponUsage{total: 100, perUser: 1})

    _, err := v.Validate(context.Background(), "SAVE10", 7, 1.0)
    assert.ErrorIs(t, err, ErrCouponNotValid)
}

func TestFixedDiscountNotClamped(t *testing.T) {
    // A flat discount larger than the order amount goes through as-is and
    // drives the payable amount negative.
    c := model.Coupon{
        ID:            2,
        Code:          "FLAT50",
        DiscountType:  model.DiscountFixed,
        DiscountValue: 50,
        StartDate:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
        EndDate:       time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
        UsagePerUser:  1,
        IsActive:      true,
    }
    v := newValidator(c, &fakeCouponUsage{})

    res, err := v.Validate(context.Background(), "FLAT50", 7, 30.0)
    require.NoError(t, err)
    assert.Equal(t, 50.0, res.Discount)
    assert.Equal(t, -20.0, 30.0-res.Discount)
}

func TestDiscountTable(t *testing.T) {
    tests := []struct {
        name   string
        dtype  string
        value  float64
        amount float64
        want   float64
    }{
        {"ten percent of 200", model.DiscountPercentage, 10, 200, 20},
        {"zero percent", model.DiscountPercentage, 0, 200, 0},
        {"hundred percent", model.DiscountPercentage, 100, 200, 200},
        {"flat under amount", model.DiscountFixed, 25, 200, 25},
        {"flat over amount", model.DiscountFixed, 50, 30, 50},
        {"unknown type treated as flat", "bogus", 15, 200, 15},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            c := model.Coupon{DiscountType: tt.dtype, DiscountValue: tt.value}
            assert.Equal(t, tt.want, Discount(c, tt.amount))
        })
    }
}
