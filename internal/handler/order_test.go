package handler

import (
    "context"
    "errors"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/novakir/storefront/internal/middleware"
    "github.com/novakir/storefront/internal/model"
    "github.com/novakir/storefront/internal/repository"
    "github.com/novakir/storefront/internal/service"
)

func newJSONContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(method, path, strings.NewReader(body))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    return e.NewContext(req, rec), rec
}

func TestOrderViewFinalAmount(t *testing.T) {
    cid := uint64(3)
    o := model.Order{
        ID:             7,
        UserID:         1,
        CouponID:       &cid,
        TotalAmount:    200,
        DiscountAmount: 20,
        Status:         model.StatusPending,
        CreatedAt:      time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
    }
    v := toOrderView(o, nil)
    assert.Equal(t, 180.0, v.FinalAmount)
    assert.Nil(t, v.Items)
}

func TestOrderViewNegativeFinalAmount(t *testing.T) {
    // An oversized flat discount is carried through unchanged.
    o := model.Order{TotalAmount: 30, DiscountAmount: 50}
    v := toOrderView(o, nil)
    assert.Equal(t, -20.0, v.FinalAmount)
}

func TestApplyCouponRequiresAuth(t *testing.T) {
    c, rec := newJSONContext(t, http.MethodPost, "/v1/coupons/apply", `{"coupon_code":"SAVE10","order_amount":100}`)

    h := &OrderHandler{}
    require.NoError(t, h.ApplyCoupon(c))
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestApplyCouponRequiresCode(t *testing.T) {
    c, rec := newJSONContext(t, http.MethodPost, "/v1/coupons/apply", `{"order_amount":100}`)
    c.Set(middleware.CtxUserID, uint64(1))

    h := &OrderHandler{}
    require.NoError(t, h.ApplyCoupon(c))
    assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApplyCouponRejectsNegativeAmount(t *testing.T) {
    c, rec := newJSONContext(t, http.MethodPost, "/v1/coupons/apply", `{"coupon_code":"SAVE10","order_amount":-5}`)
    c.Set(middleware.CtxUserID, uint64(1))

    h := &OrderHandler{}
    require.NoError(t, h.ApplyCoupon(c))
    assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartSubtotal(t *testing.T) {
    // two of item A at 10.0 plus one of item B at 5.0
    lines := []repository.CartLine{
        {ProductID: 1, VariantID: 1, UnitPrice: 10.0, Quantity: 2, Subtotal: 20.0},
        {ProductID: 2, VariantID: 2, UnitPrice: 5.0, Quantity: 1, Subtotal: 5.0},
    }
    assert.Equal(t, 25.0, cartSubtotal(lines))
    assert.Equal(t, 0.0, cartSubtotal(nil))
}

func TestHealth(t *testing.T) {
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
    rec := httptest.NewRecorder()
    require.NoError(t, Health(e.NewContext(req, rec)))
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, "ok", rec.Body.String())
}

// ----- order assembly -----

type fakeOrderWriter struct {
    created   *model.Order
    items     []model.OrderItem
    createErr error
}

func (f *fakeOrderWriter) Create(_ context.Context, o *model.Order) error {
    if f.createErr != nil {
        return f.createErr
    }
    o.ID = 77
    o.CreatedAt = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
    cp := *o
    f.created = &cp
    return nil
}

func (f *fakeOrderWriter) InsertItems(_ context.Context, items []model.OrderItem) error {
    f.items = items
    return nil
}

type fakeCartClearer struct{ cleared []uint64 }

func (f *fakeCartClearer) ClearForUser(_ context.Context, userID uint64) error {
    f.cleared = append(f.cleared, userID)
    return nil
}

type stubCouponStore struct {
    coupon model.Coupon
    err    error
}

func (s stubCouponStore) GetByCode(context.Context, string) (model.Coupon, error) {
    return s.coupon, s.err
}

type stubCouponUsage struct{ total, byUser int64 }

func (s stubCouponUsage) CountByCoupon(context.Context, uint64) (int64, error) {
    return s.total, nil
}

func (s stubCouponUsage) CountByCouponAndUser(context.Context, uint64, uint64) (int64, error) {
    return s.byUser, nil
}

func twoLineCart() []repository.CartLine {
    return []repository.CartLine{
        {ProductID: 1, VariantID: 11, UnitPrice: 10.0, Quantity: 2, Subtotal: 20.0},
        {ProductID: 2, VariantID: 22, UnitPrice: 5.0, Quantity: 1, Subtotal: 5.0},
    }
}

func TestAssembleOrderFromCart(t *testing.T) {
    orders := &fakeOrderWriter{}
    cart := &fakeCartClearer{}

    order, items, err := assembleOrder(context.Background(), 9, "", twoLineCart(), orders, cart, nil)
    require.NoError(t, err)

    assert.Equal(t, 25.0, order.TotalAmount)
    assert.Equal(t, 0.0, order.DiscountAmount)
    assert.Nil(t, order.CouponID)
    assert.Equal(t, model.StatusPending, order.Status)
    assert.Equal(t, uint64(77), order.ID)

    require.Len(t, items, 2)
    for _, it := range items {
        assert.Equal(t, uint64(77), it.OrderID)
    }
    require.NotNil(t, items[0].VariantID)
    assert.Equal(t, uint64(11), *items[0].VariantID)
    assert.Equal(t, 10.0, items[0].Price)
    assert.Equal(t, int64(2), items[0].Quantity)

    assert.Equal(t, []uint64{9}, cart.cleared)
    assert.Equal(t, items, orders.items)
}

func TestAssembleOrderWithCoupon(t *testing.T) {
    limit := int64(100)
    validator := service.NewCouponValidator(
        stubCouponStore{coupon: model.Coupon{
            ID:             5,
            Code:           "SAVE10",
            DiscountType:   "percentage",
            DiscountValue:  10,
            MinOrderAmount: 10,
            StartDate:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
            EndDate:        time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
            UsageLimit:     &limit,
            UsagePerUser:   1,
            IsActive:       true,
        }},
        stubCouponUsage{},
    )
    validator.Now = func() time.Time { return time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC) }

    orders := &fakeOrderWriter{}
    cart := &fakeCartClearer{}

    order, _, err := assembleOrder(context.Background(), 9, "SAVE10", twoLineCart(), orders, cart, validator)
    require.NoError(t, err)

    assert.Equal(t, 25.0, order.TotalAmount)
    assert.Equal(t, 2.5, order.DiscountAmount)
    require.NotNil(t, order.CouponID)
    assert.Equal(t, uint64(5), *order.CouponID)
}

func TestAssembleOrderCouponFailureWritesNothing(t *testing.T) {
    validator := service.NewCouponValidator(
        stubCouponStore{err: repository.ErrCouponNotFound},
        stubCouponUsage{},
    )

    orders := &fakeOrderWriter{}
    cart := &fakeCartClearer{}

    _, _, err := assembleOrder(context.Background(), 9, "NOPE", twoLineCart(), orders, cart, validator)
    require.ErrorIs(t, err, service.ErrCouponNotFound)
    assert.True(t, isCouponError(err))

    assert.Nil(t, orders.created)
    assert.Empty(t, cart.cleared)
}

func TestIsCouponError(t *testing.T) {
    assert.True(t, isCouponError(service.ErrCouponNotValid))
    assert.True(t, isCouponError(service.BelowMinimumError{Minimum: 50}))
    assert.False(t, isCouponError(errors.New("connection reset")))
}

func TestNewOrderCreatedEvent(t *testing.T) {
    vid := uint64(11)
    order := model.Order{
        ID:             77,
        UserID:         9,
        TotalAmount:    30,
        DiscountAmount: 50,
        CreatedAt:      time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
    }
    items := []model.OrderItem{
        {OrderID: 77, ProductID: 1, VariantID: &vid, Quantity: 2, Price: 10},
        {OrderID: 77, ProductID: 2, VariantID: nil, Quantity: 1, Price: 5},
    }

    evt := newOrderCreatedEvent(order, "FLAT50", items)

    assert.Equal(t, uint64(77), evt.OrderID)
    assert.Equal(t, "FLAT50", evt.CouponCode)
    assert.Equal(t, -20.0, evt.FinalAmount)
    assert.Equal(t, "2025-06-15T12:00:00Z", evt.CreatedAt)

    require.Len(t, evt.Items, 2)
    require.NotNil(t, evt.Items[0].VariantID)
    assert.Equal(t, uint64(11), *evt.Items[0].VariantID)
    assert.Nil(t, evt.Items[1].VariantID)
}
