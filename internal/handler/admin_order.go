package handler

import (
    "errors"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/novakir/storefront/internal/repository"
)

// AdminOrderHandler lets admins move orders through their lifecycle.
type AdminOrderHandler struct {
    Orders *repository.OrderRepo
}

func NewAdminOrderHandler(o *repository.OrderRepo) *AdminOrderHandler {
    return &AdminOrderHandler{Orders: o}
}

type statusReq struct {
    Status string `json:"status"`
}

// UpdateStatus sets an order's status.  Any non-empty string is
// accepted; the status value is free-form and only "pending" carries
// behavior (it gates customer deletion).
func (h *AdminOrderHandler) UpdateStatus(c echo.Context) error {
    orderID, err := pathID(c, "id")
    if err != nil || orderID == 0 {
        return badID(c, "order id")
    }
    var req statusReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    status := strings.TrimSpace(req.Status)
    if status == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "status required"})
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    if err := h.Orders.UpdateStatus(ctx, orderID, status); err != nil {
        if errors.Is(err, repository.ErrOrderNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update order failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "order status updated", "status": status})
}
