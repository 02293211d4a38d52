// Package service holds the business rules that sit between handlers and
// repositories: coupon validation and the outbound order event publisher.
package service

import (
    "context"
    "errors"
    "fmt"
    "time"

    "github.com/novakir/storefront/internal/model"
    "github.com/novakir/storefront/internal/repository"
)

// Validation failures, in the order the checks run.  Handlers map
// ErrCouponNotFound to 404 and the rest to 400, passing the error text
// through as the response detail.
var (
    ErrCouponNotFound   = errors.New("coupon not found")
    ErrCouponNotValid   = errors.New("coupon is not valid right now")
    ErrCouponExhausted  = errors.New("coupon usage limit reached")
    ErrCouponUsedByUser = errors.New("you have already used this coupon the maximum allowed times")
)

// BelowMinimumError rejects an order whose subtotal is under the coupon's
// minimum.  It carries the required amount so the message can name it.
type BelowMinimumError struct {
    Minimum float64
}

func (e BelowMinimumError) Error() string {
    return fmt.Sprintf("minimum order amount should be %g", e.Minimum)
}

// CouponStore is the slice of the coupon repository the validator needs.
// Inside an order-creation transaction the tx-bound repo is passed here,
// whose GetByCode locks the coupon row and thereby serializes concurrent
// usage-count checks on the same code.
type CouponStore interface {
    GetByCode(ctx context.Context, code string) (model.Coupon, error)
}

// CouponUsage counts persisted orders referencing a coupon.  Counting
// spans every order regardless of status; hard-deleting an order lowers
// the count, which mirrors the observed behavior and is deliberately not
// "fixed" here.
type CouponUsage interface {
    CountByCoupon(ctx context.Context, couponID uint64) (int64, error)
    CountByCouponAndUser(ctx context.Context, couponID, userID uint64) (int64, error)
}

// CouponValidator applies the full rule chain for one coupon code against
// one order amount.  The clock is injectable for tests.
type CouponValidator struct {
    Coupons CouponStore
    Usage   CouponUsage
    Now     func() time.Time
}

func NewCouponValidator(coupons CouponStore, usage CouponUsage) *CouponValidator {
    return &CouponValidator{Coupons: coupons, Usage: usage, Now: func() time.Time { return time.Now().UTC() }}
}

// CouponResult is a successful validation: the coupon plus the discount
// it yields for the given order amount.
type CouponResult struct {
    Coupon   model.Coupon
    Discount float64
}

// Validate runs the checks in order, short-circuiting on the first
// failure:
//
//  1. the code exists;
//  2. the coupon is active and now lies within [start_date, end_date];
//  3. the order amount meets the minimum;
//  4. the global usage limit (when set) is not reached;
//  5. the caller's personal usage count is below usage_per_user.
//
// The discount for a percentage coupon is value/100 * orderAmount; any
// other discount type is taken as a flat amount.  A flat discount is NOT
// clamped to the order amount, so the final payable amount can go
// negative; current behavior, covered by an explicit test.
func (v *CouponValidator) Validate(ctx context.Context, code string, userID uint64, orderAmount float64) (CouponResult, error) {
    coupon, err := v.Coupons.GetByCode(ctx, code)
    if err != nil {
        if errors.Is(err, repository.ErrCouponNotFound) {
            return CouponResult{}, ErrCouponNotFound
        }
        return CouponResult{}, err
    }

    now := v.Now()
    if !coupon.IsActive || now.Before(coupon.StartDate) || now.After(coupon.EndDate) {
        return CouponResult{}, ErrCouponNotValid
    }

    if orderAmount < coupon.MinOrderAmount {
        return CouponResult{}, BelowMinimumError{Minimum: coupon.MinOrderAmount}
    }

    if coupon.UsageLimit != nil {
        total, err := v.Usage.CountByCoupon(ctx, coupon.ID)
        if err != nil {
            return CouponResult{}, err
        }
        if total >= *coupon.UsageLimit {
            return CouponResult{}, ErrCouponExhausted
        }
    }

    used, err := v.Usage.CountByCouponAndUser(ctx, coupon.ID, userID)
    if err != nil {
        return CouponResult{}, err
    }
    if used >= coupon.UsagePerUser {
        return CouponResult{}, ErrCouponUsedByUser
    }

    return CouponResult{Coupon: coupon, Discount: Discount(coupon, orderAmount)}, nil
}

// Discount computes a coupon's discount for an order amount.  Percentage
// coupons scale with the amount; every other type is flat.
func Discount(c model.Coupon, orderAmount float64) float64 {
    if c.DiscountType == model.DiscountPercentage {
        return c.DiscountValue / 100 * orderAmount
    }
    return c.DiscountValue
}
