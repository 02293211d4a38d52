package handler

import (
    "database/sql"
    "errors"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/novakir/storefront/internal/repository"
)

// AddressHandler manages the authenticated user's delivery addresses.
type AddressHandler struct {
    Addresses *repository.AddressRepo
}

func NewAddressHandler(a *repository.AddressRepo) *AddressHandler {
    return &AddressHandler{Addresses: a}
}

type addressReq struct {
    Address string `json:"address"`
}

func (h *AddressHandler) Create(c echo.Context) error {
    userID, ok := currentUserID(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req addressReq
    if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Address) == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "address required"})
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    id, err := h.Addresses.Create(ctx, userID, strings.TrimSpace(req.Address))
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create address failed"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"id": id, "address": req.Address})
}

func (h *AddressHandler) List(c echo.Context) error {
    userID, ok := currentUserID(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    addrs, err := h.Addresses.ListByUser(ctx, userID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"addresses": toAddressViews(addrs)})
}

func (h *AddressHandler) Update(c echo.Context) error {
    userID, ok := currentUserID(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    addressID, err := pathID(c, "id")
    if err != nil || addressID == 0 {
        return badID(c, "address id")
    }
    var req addressReq
    if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Address) == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "address required"})
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    if err := h.Addresses.Update(ctx, addressID, userID, strings.TrimSpace(req.Address)); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "address not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update address failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "address updated"})
}

func (h *AddressHandler) Delete(c echo.Context) error {
    userID, ok := currentUserID(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    addressID, err := pathID(c, "id")
    if err != nil || addressID == 0 {
        return badID(c, "address id")
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    if err := h.Addresses.Delete(ctx, addressID, userID); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "address not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete address failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "address deleted"})
}
