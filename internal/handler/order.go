package handler

import (
    "context"
    "database/sql"
    "errors"
    "log"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/novakir/storefront/internal/model"
    "github.com/novakir/storefront/internal/queue"
    "github.com/novakir/storefront/internal/repository"
    "github.com/novakir/storefront/internal/service"
)

// OrderHandler assembles orders from the user's cart and serves order
// history. Creation runs as a single transaction: coupon lock and
// usage check, order insert, item inserts and cart clearing either all
// land or none do.
type OrderHandler struct {
    DB        *sql.DB
    Cart      *repository.CartRepo
    Orders    *repository.OrderRepo
    Coupons   *repository.CouponRepo
    Publisher *service.OrderPublisher
}

func NewOrderHandler(db *sql.DB, cart *repository.CartRepo, orders *repository.OrderRepo, coupons *repository.CouponRepo, pub *service.OrderPublisher) *OrderHandler {
    return &OrderHandler{DB: db, Cart: cart, Orders: orders, Coupons: coupons, Publisher: pub}
}

type createOrderReq struct {
    CouponCode string `json:"coupon_code"`
}

type applyCouponReq struct {
    CouponCode  string  `json:"coupon_code"`
    OrderAmount float64 `json:"order_amount"`
}

type orderView struct {
    ID             uint64          `json:"id"`
    Status         string          `json:"status"`
    TotalAmount    float64         `json:"total_amount"`
    DiscountAmount float64         `json:"discount_amount"`
    FinalAmount    float64         `json:"final_amount"`
    CouponID       *uint64         `json:"coupon_id,omitempty"`
    CreatedAt      time.Time       `json:"created_at"`
    Items          []orderItemView `json:"items,omitempty"`
}

func toOrderView(o model.Order, items []model.OrderItem) orderView {
    v := orderView{
        ID:             o.ID,
        Status:         o.Status,
        TotalAmount:    o.TotalAmount,
        DiscountAmount: o.DiscountAmount,
        FinalAmount:    o.TotalAmount - o.DiscountAmount,
        CouponID:       o.CouponID,
        CreatedAt:      o.CreatedAt,
    }
    if len(items) > 0 {
        v.Items = toOrderItemViews(items)
    }
    return v
}

// cartSubtotal sums the line subtotals, each priced at the current
// variant price.
func cartSubtotal(lines []repository.CartLine) float64 {
    var total float64
    for _, ln := range lines {
        total += ln.Subtotal
    }
    return total
}

// orderWriter is the slice of OrderRepo that order assembly needs.
type orderWriter interface {
    Create(ctx context.Context, o *model.Order) error
    InsertItems(ctx context.Context, items []model.OrderItem) error
}

// cartClearer empties the cart once its lines became order items.
type cartClearer interface {
    ClearForUser(ctx context.Context, userID uint64) error
}

// assembleOrder runs the checkout sequence against whatever stores it is
// handed: validate the coupon (when a code is given), insert the order,
// snapshot the cart lines as items, clear the cart.  The caller owns the
// surrounding transaction and commits only when this returns nil.
func assembleOrder(ctx context.Context, userID uint64, couponCode string, lines []repository.CartLine, orders orderWriter, cart cartClearer, validator *service.CouponValidator) (model.Order, []model.OrderItem, error) {
    subtotal := cartSubtotal(lines)

    var discount float64
    var couponID *uint64
    if couponCode != "" {
        res, err := validator.Validate(ctx, couponCode, userID, subtotal)
        if err != nil {
            return model.Order{}, nil, err
        }
        discount = res.Discount
        id := res.Coupon.ID
        couponID = &id
    }

    order := model.Order{
        UserID:         userID,
        CouponID:       couponID,
        TotalAmount:    subtotal,
        DiscountAmount: discount,
        Status:         model.StatusPending,
    }
    if err := orders.Create(ctx, &order); err != nil {
        return model.Order{}, nil, err
    }

    items := make([]model.OrderItem, 0, len(lines))
    for _, ln := range lines {
        vid := ln.VariantID
        items = append(items, model.OrderItem{
            OrderID:   order.ID,
            ProductID: ln.ProductID,
            VariantID: &vid,
            Quantity:  ln.Quantity,
            Price:     ln.UnitPrice,
        })
    }
    if err := orders.InsertItems(ctx, items); err != nil {
        return model.Order{}, nil, err
    }
    if err := cart.ClearForUser(ctx, userID); err != nil {
        return model.Order{}, nil, err
    }
    return order, items, nil
}

// isCouponError tells a validation failure apart from a storage failure
// so the handler can pick between couponHTTPError and a plain 500.
func isCouponError(err error) bool {
    var below service.BelowMinimumError
    return errors.Is(err, service.ErrCouponNotFound) ||
        errors.Is(err, service.ErrCouponNotValid) ||
        errors.Is(err, service.ErrCouponExhausted) ||
        errors.Is(err, service.ErrCouponUsedByUser) ||
        errors.As(err, &below)
}

// couponHTTPError maps validator errors onto HTTP responses.
func couponHTTPError(c echo.Context, err error) error {
    var below service.BelowMinimumError
    switch {
    case errors.Is(err, service.ErrCouponNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "coupon not found"})
    case errors.As(err, &below):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": below.Error()})
    case errors.Is(err, service.ErrCouponNotValid),
        errors.Is(err, service.ErrCouponExhausted),
        errors.Is(err, service.ErrCouponUsedByUser):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    default:
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "coupon check failed"})
    }
}

// ApplyCoupon previews a coupon against a hypothetical order amount
// without creating anything.
func (h *OrderHandler) ApplyCoupon(c echo.Context) error {
    userID, ok := currentUserID(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req applyCouponReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.CouponCode = strings.TrimSpace(req.CouponCode)
    if req.CouponCode == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "coupon_code required"})
    }
    if req.OrderAmount < 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "order_amount must not be negative"})
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    validator := service.NewCouponValidator(h.Coupons, h.Orders)
    res, err := validator.Validate(ctx, req.CouponCode, userID, req.OrderAmount)
    if err != nil {
        return couponHTTPError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "coupon_code":     res.Coupon.Code,
        "discount_type":   res.Coupon.DiscountType,
        "order_amount":    req.OrderAmount,
        "discount_amount": res.Discount,
        "final_amount":    req.OrderAmount - res.Discount,
    })
}

// Create turns the caller's cart into a pending order. An optional
// coupon code is validated inside the same transaction that records
// the order, with the coupon row locked so two concurrent checkouts
// cannot both slip under the usage limit.
func (h *OrderHandler) Create(c echo.Context) error {
    userID, ok := currentUserID(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req createOrderReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    couponCode := strings.TrimSpace(req.CouponCode)

    ctx, cancel := reqContext(c)
    defer cancel()

    lines, err := h.Cart.ListDetailed(ctx, userID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if len(lines) == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "cart is empty"})
    }

    tx, err := h.DB.BeginTx(ctx, nil)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    ordersTx := h.Orders.WithTx(tx)
    // The tx-bound coupon repo locks the row it reads, serializing
    // concurrent usage-count checks on the same code.
    validator := service.NewCouponValidator(h.Coupons.WithTx(tx), ordersTx)

    order, items, err := assembleOrder(ctx, userID, couponCode, lines, ordersTx, h.Cart.WithTx(tx), validator)
    if err != nil {
        if isCouponError(err) {
            return couponHTTPError(c, err)
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create order failed"})
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create order failed"})
    }
    committed = true

    h.publishCreated(order, couponCode, items)

    return c.JSON(http.StatusCreated, toOrderView(order, items))
}

// newOrderCreatedEvent maps a committed order and its items onto the
// broker payload.
func newOrderCreatedEvent(order model.Order, couponCode string, items []model.OrderItem) queue.OrderCreatedEvent {
    evt := queue.OrderCreatedEvent{
        OrderID:        order.ID,
        UserID:         order.UserID,
        CouponCode:     couponCode,
        TotalAmount:    order.TotalAmount,
        DiscountAmount: order.DiscountAmount,
        FinalAmount:    order.TotalAmount - order.DiscountAmount,
        CreatedAt:      order.CreatedAt.UTC().Format(time.RFC3339),
    }
    for _, it := range items {
        evt.Items = append(evt.Items, queue.OrderItemEvent{
            ProductID: it.ProductID,
            VariantID: it.VariantID,
            Quantity:  it.Quantity,
            Price:     it.Price,
        })
    }
    return evt
}

// publishCreated emits the order.created event after commit.  Event
// delivery is best-effort and never blocks the HTTP response.
func (h *OrderHandler) publishCreated(order model.Order, couponCode string, items []model.OrderItem) {
    if h.Publisher == nil {
        return
    }
    evt := newOrderCreatedEvent(order, couponCode, items)
    go func() {
        ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
        defer cancel()
        if err := h.Publisher.PublishOrderCreated(ctx, evt); err != nil {
            log.Printf("order event publish failed: order_id=%d err=%v", order.ID, err)
        }
    }()
}

// List returns the caller's orders, newest first.
func (h *OrderHandler) List(c echo.Context) error {
    userID, ok := currentUserID(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    orders, err := h.Orders.ListByUser(ctx, userID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    views := make([]orderView, 0, len(orders))
    for _, o := range orders {
        views = append(views, toOrderView(o, nil))
    }
    return c.JSON(http.StatusOK, echo.Map{"orders": views})
}

// Get returns one of the caller's orders with its line items.
func (h *OrderHandler) Get(c echo.Context) error {
    userID, ok := currentUserID(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    orderID, err := pathID(c, "id")
    if err != nil || orderID == 0 {
        return badID(c, "order id")
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    o, err := h.Orders.GetByIDForUser(ctx, orderID, userID)
    if err != nil {
        if errors.Is(err, repository.ErrOrderNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    items, err := h.Orders.ListItems(ctx, orderID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, toOrderView(o, items))
}

// Delete cancels one of the caller's orders. Only pending orders may
// be removed.
func (h *OrderHandler) Delete(c echo.Context) error {
    userID, ok := currentUserID(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    orderID, err := pathID(c, "id")
    if err != nil || orderID == 0 {
        return badID(c, "order id")
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    tx, err := h.DB.BeginTx(ctx, nil)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    if err := h.Orders.WithTx(tx).DeleteForUser(ctx, orderID, userID); err != nil {
        switch {
        case errors.Is(err, repository.ErrOrderNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
        case errors.Is(err, repository.ErrOrderNotPending):
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "only pending orders can be deleted"})
        default:
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete order failed"})
        }
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete order failed"})
    }
    committed = true

    return c.JSON(http.StatusOK, echo.Map{"message": "order deleted"})
}
