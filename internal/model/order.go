package model

import "time"

// StatusPending is the status every new order is created with.  Status
// transitions are not enforced as a state machine: the admin status
// endpoint accepts any string.  Deletion is only allowed while the order
// is still pending.
const StatusPending = "pending"

// Order is a row in `orders`.  TotalAmount is the subtotal computed from
// the cart at creation; DiscountAmount is whatever the coupon produced
// (a fixed discount is not clamped to the subtotal).
type Order struct {
    ID             uint64    // orders.id
    UserID         uint64    // orders.user_id
    CouponID       *uint64   // orders.coupon_id (nullable)
    TotalAmount    float64   // orders.total_amount
    DiscountAmount float64   // orders.discount_amount
    Status         string    // orders.status
    CreatedAt      time.Time // orders.created_at
}

// OrderItem is a row in `order_items`.  Price is the unit price captured
// at order creation and never recomputed from the catalog afterwards.
type OrderItem struct {
    ID        uint64  // order_items.id
    OrderID   uint64  // order_items.order_id
    ProductID uint64  // order_items.product_id
    VariantID *uint64 // order_items.variant_id (nullable)
    Quantity  int64   // order_items.quantity
    Price     float64 // order_items.price (price-at-purchase)
}
