package handler

import (
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/novakir/storefront/internal/model"
    "github.com/novakir/storefront/internal/repository"
)

// AdminCouponHandler manages coupon definitions.  Validation of coupons
// against orders lives in the service layer; this handler is plain CRUD
// plus the partial update.
type AdminCouponHandler struct {
    Coupons *repository.CouponRepo
}

func NewAdminCouponHandler(c *repository.CouponRepo) *AdminCouponHandler {
    return &AdminCouponHandler{Coupons: c}
}

type couponCreateReq struct {
    Code           string    `json:"code"`
    DiscountType   string    `json:"discount_type"`
    DiscountValue  float64   `json:"discount_value"`
    MinOrderAmount float64   `json:"min_order_amount"`
    StartDate      time.Time `json:"start_date"`
    EndDate        time.Time `json:"end_date"`
    UsageLimit     *int64    `json:"usage_limit"`
    UsagePerUser   *int64    `json:"usage_per_user"`
    IsActive       *bool     `json:"is_active"`
}

func (h *AdminCouponHandler) Create(c echo.Context) error {
    var req couponCreateReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Code = strings.TrimSpace(req.Code)
    if req.Code == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "code required"})
    }
    if req.DiscountType != model.DiscountPercentage && req.DiscountType != model.DiscountFixed {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "discount_type must be percentage or fixed"})
    }
    if req.DiscountValue < 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid discount_value"})
    }
    if !req.EndDate.After(req.StartDate) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_date must be after start_date"})
    }

    cp := model.Coupon{
        Code:           req.Code,
        DiscountType:   req.DiscountType,
        DiscountValue:  req.DiscountValue,
        MinOrderAmount: req.MinOrderAmount,
        StartDate:      req.StartDate,
        EndDate:        req.EndDate,
        UsageLimit:     req.UsageLimit,
        UsagePerUser:   1,
        IsActive:       true,
    }
    if req.UsagePerUser != nil {
        cp.UsagePerUser = *req.UsagePerUser
    }
    if req.IsActive != nil {
        cp.IsActive = *req.IsActive
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    id, err := h.Coupons.Create(ctx, cp)
    if err != nil {
        if errors.Is(err, repository.ErrConflict) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "coupon code already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create coupon failed"})
    }
    cp.ID = id
    return c.JSON(http.StatusCreated, toCouponView(cp))
}

func (h *AdminCouponHandler) List(c echo.Context) error {
    ctx, cancel := reqContext(c)
    defer cancel()

    coupons, err := h.Coupons.List(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]couponView, 0, len(coupons))
    for _, cp := range coupons {
        out = append(out, toCouponView(cp))
    }
    return c.JSON(http.StatusOK, echo.Map{"coupons": out})
}

func (h *AdminCouponHandler) Get(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil || id == 0 {
        return badID(c, "coupon id")
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    cp, err := h.Coupons.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrCouponNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "coupon not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, toCouponView(cp))
}

// Patch applies a partial update. Only the fields present in the body
// change; the coupon code itself is immutable.
func (h *AdminCouponHandler) Patch(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil || id == 0 {
        return badID(c, "coupon id")
    }
    var patch model.CouponPatch
    if err := c.Bind(&patch); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if patch.DiscountType != nil &&
        *patch.DiscountType != model.DiscountPercentage && *patch.DiscountType != model.DiscountFixed {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "discount_type must be percentage or fixed"})
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    cp, err := h.Coupons.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrCouponNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "coupon not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    patch.Apply(&cp)
    if !cp.EndDate.After(cp.StartDate) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_date must be after start_date"})
    }
    if err := h.Coupons.Update(ctx, cp); err != nil {
        if errors.Is(err, repository.ErrCouponNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "coupon not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update coupon failed"})
    }
    return c.JSON(http.StatusOK, toCouponView(cp))
}

func (h *AdminCouponHandler) Delete(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil || id == 0 {
        return badID(c, "coupon id")
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    if err := h.Coupons.Delete(ctx, id); err != nil {
        if errors.Is(err, repository.ErrCouponNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "coupon not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete coupon failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "coupon deleted"})
}
