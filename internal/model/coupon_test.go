package model

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
)

func TestCouponPatchAppliesOnlyProvidedFields(t *testing.T) {
    limit := int64(10)
    c := Coupon{
        ID:             1,
        Code:           "SAVE10",
        DiscountType:   DiscountPercentage,
        DiscountValue:  10,
        MinOrderAmount: 50,
        StartDate:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
        EndDate:        time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
        UsageLimit:     &limit,
        UsagePerUser:   1,
        IsActive:       true,
    }

    newValue := 25.0
    inactive := false
    CouponPatch{DiscountValue: &newValue, IsActive: &inactive}.Apply(&c)

    assert.Equal(t, 25.0, c.DiscountValue)
    assert.False(t, c.IsActive)
    // untouched fields keep their values
    assert.Equal(t, "SAVE10", c.Code)
    assert.Equal(t, DiscountPercentage, c.DiscountType)
    assert.Equal(t, 50.0, c.MinOrderAmount)
    assert.Equal(t, int64(1), c.UsagePerUser)
    assert.Equal(t, &limit, c.UsageLimit)
}

func TestCouponPatchEmptyIsNoop(t *testing.T) {
    c := Coupon{Code: "X", DiscountType: DiscountFixed, DiscountValue: 5, IsActive: true}
    orig := c
    CouponPatch{}.Apply(&c)
    assert.Equal(t, orig, c)
}

func TestCouponPatchSwitchesType(t *testing.T) {
    c := Coupon{DiscountType: DiscountPercentage, DiscountValue: 10}
    fixed := DiscountFixed
    value := 7.5
    CouponPatch{DiscountType: &fixed, DiscountValue: &value}.Apply(&c)
    assert.Equal(t, DiscountFixed, c.DiscountType)
    assert.Equal(t, 7.5, c.DiscountValue)
}
