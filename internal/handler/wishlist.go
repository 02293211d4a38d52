package handler

import (
    "database/sql"
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/novakir/storefront/internal/repository"
)

// WishlistHandler serves the authenticated user's wishlist.
type WishlistHandler struct {
    Wishlist *repository.WishlistRepo
    Products *repository.ProductRepo
}

func NewWishlistHandler(w *repository.WishlistRepo, p *repository.ProductRepo) *WishlistHandler {
    return &WishlistHandler{Wishlist: w, Products: p}
}

type wishlistAddReq struct {
    ProductID uint64 `json:"product_id"`
}

// Add places a product on the wishlist. Wishing for the same product
// twice is a conflict, not an increment.
func (h *WishlistHandler) Add(c echo.Context) error {
    userID, ok := currentUserID(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req wishlistAddReq
    if err := c.Bind(&req); err != nil || req.ProductID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "product_id required"})
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    if _, err := h.Products.GetByID(ctx, req.ProductID); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if err := h.Wishlist.Add(ctx, userID, req.ProductID); err != nil {
        if errors.Is(err, repository.ErrConflict) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "already in wishlist"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "add to wishlist failed"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"message": "added to wishlist"})
}

// List returns the wishlist entries with product names resolved.
func (h *WishlistHandler) List(c echo.Context) error {
    userID, ok := currentUserID(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    entries, err := h.Wishlist.List(ctx, userID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": entries})
}

// Remove takes a product off the wishlist.
func (h *WishlistHandler) Remove(c echo.Context) error {
    userID, ok := currentUserID(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    productID, err := pathID(c, "product_id")
    if err != nil || productID == 0 {
        return badID(c, "product id")
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    if err := h.Wishlist.Remove(ctx, userID, productID); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "not in wishlist"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "remove from wishlist failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "removed from wishlist"})
}
