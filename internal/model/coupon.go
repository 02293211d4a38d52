package model

import "time"

// Discount types stored in coupons.discount_type.  Anything other than
// "percentage" is treated as a fixed amount when computing discounts.
const (
    DiscountPercentage = "percentage"
    DiscountFixed      = "fixed"
)

// Coupon is a row in `coupons`.  Code is immutable identity; the business
// fields are mutable through the admin patch endpoint.
//
// Fields:
//  ID             – primary key identifier.
//  Code           – unique coupon code entered by customers.
//  DiscountType   – "percentage" or "fixed".
//  DiscountValue  – percent points or flat currency amount.
//  MinOrderAmount – minimum order subtotal required to apply.
//  StartDate      – beginning of the activity window.
//  EndDate        – end of the activity window.
//  UsageLimit     – global cap over all orders (null = unlimited).
//  UsagePerUser   – per-user cap, defaults to 1.
//  IsActive       – admin kill switch independent of the date window.
type Coupon struct {
    ID             uint64    // coupons.id
    Code           string    // coupons.code (unique)
    DiscountType   string    // coupons.discount_type
    DiscountValue  float64   // coupons.discount_value
    MinOrderAmount float64   // coupons.min_order_amount
    StartDate      time.Time // coupons.start_date
    EndDate        time.Time // coupons.end_date
    UsageLimit     *int64    // coupons.usage_limit (nullable)
    UsagePerUser   int64     // coupons.usage_per_user
    IsActive       bool      // coupons.is_active
}

// CouponPatch carries the optional fields of an admin coupon update.  Only
// non-nil fields are applied, one by one; there is no reflective
// set-attribute-by-name machinery.  The code itself cannot be patched.
type CouponPatch struct {
    DiscountType   *string    `json:"discount_type"`
    DiscountValue  *float64   `json:"discount_value"`
    MinOrderAmount *float64   `json:"min_order_amount"`
    StartDate      *time.Time `json:"start_date"`
    EndDate        *time.Time `json:"end_date"`
    UsageLimit     *int64     `json:"usage_limit"`
    UsagePerUser   *int64     `json:"usage_per_user"`
    IsActive       *bool      `json:"is_active"`
}

// Apply copies every provided patch field onto the coupon.
func (p CouponPatch) Apply(c *Coupon) {
    if p.DiscountType != nil {
        c.DiscountType = *p.DiscountType
    }
    if p.DiscountValue != nil {
        c.DiscountValue = *p.DiscountValue
    }
    if p.MinOrderAmount != nil {
        c.MinOrderAmount = *p.MinOrderAmount
    }
    if p.StartDate != nil {
        c.StartDate = *p.StartDate
    }
    if p.EndDate != nil {
        c.EndDate = *p.EndDate
    }
    if p.UsageLimit != nil {
        c.UsageLimit = p.UsageLimit
    }
    if p.UsagePerUser != nil {
        c.UsagePerUser = *p.UsagePerUser
    }
    if p.IsActive != nil {
        c.IsActive = *p.IsActive
    }
}
