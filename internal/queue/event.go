// Package queue defines message payloads exchanged over the message broker.
package queue

// OrderCreatedEvent is published after an order commits.  It carries
// enough information for downstream consumers to log, notify, or feed
// analytics without querying the primary database.
type OrderCreatedEvent struct {
    OrderID        uint64           `json:"order_id"`
    UserID         uint64           `json:"user_id"`
    CouponCode     string           `json:"coupon_code,omitempty"`
    TotalAmount    float64          `json:"total_amount"`
    DiscountAmount float64          `json:"discount_amount"`
    FinalAmount    float64          `json:"final_amount"`
    Items          []OrderItemEvent `json:"items"`
    CreatedAt      string           `json:"created_at"`
}

// OrderItemEvent is one line of an OrderCreatedEvent.  VariantID is
// nullable to match order_items rows that predate variants.
type OrderItemEvent struct {
    ProductID uint64  `json:"product_id"`
    VariantID *uint64 `json:"variant_id,omitempty"`
    Quantity  int64   `json:"quantity"`
    Price     float64 `json:"price"`
}
