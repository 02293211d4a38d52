package handler

import (
    "database/sql"
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/novakir/storefront/internal/repository"
)

// CartHandler serves the authenticated user's shopping cart.
type CartHandler struct {
    Cart     *repository.CartRepo
    Products *repository.ProductRepo
    Variants *repository.VariantRepo
}

func NewCartHandler(cart *repository.CartRepo, products *repository.ProductRepo, variants *repository.VariantRepo) *CartHandler {
    return &CartHandler{Cart: cart, Products: products, Variants: variants}
}

type cartAddReq struct {
    ProductID uint64 `json:"product_id"`
    VariantID uint64 `json:"variant_id"`
    Quantity  int64  `json:"quantity"`
}

type cartUpdateReq struct {
    Quantity int64 `json:"quantity"`
}

// Add puts a product variant in the cart. Re-adding the same variant
// increments the existing line instead of creating a duplicate.
func (h *CartHandler) Add(c echo.Context) error {
    userID, ok := currentUserID(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req cartAddReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if req.ProductID == 0 || req.VariantID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "product_id and variant_id required"})
    }
    if req.Quantity <= 0 {
        req.Quantity = 1
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    if _, err := h.Products.GetByID(ctx, req.ProductID); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    v, err := h.Variants.GetByID(ctx, req.VariantID)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "variant not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if v.ProductID != req.ProductID {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "variant does not belong to product"})
    }
    // Stock is checked here, not reserved; two carts can both pass and
    // race to checkout.
    if !v.Available || v.Stock < req.Quantity {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "insufficient stock"})
    }

    if err := h.Cart.AddOrIncrement(ctx, userID, req.ProductID, req.VariantID, req.Quantity); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "add to cart failed"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"message": "added to cart"})
}

// List returns the enriched cart lines plus a running total computed
// from the current variant prices.
func (h *CartHandler) List(c echo.Context) error {
    userID, ok := currentUserID(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    lines, err := h.Cart.ListDetailed(ctx, userID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "items": lines,
        "total": cartSubtotal(lines),
    })
}

// UpdateQuantity replaces the quantity of a cart line identified by
// product ID.  A quantity of zero or less removes the line.
func (h *CartHandler) UpdateQuantity(c echo.Context) error {
    userID, ok := currentUserID(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    productID, err := pathID(c, "product_id")
    if err != nil || productID == 0 {
        return badID(c, "product id")
    }
    var req cartUpdateReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    if req.Quantity <= 0 {
        if err := h.Cart.DeleteByProduct(ctx, userID, productID); err != nil {
            if errors.Is(err, sql.ErrNoRows) {
                return c.JSON(http.StatusNotFound, echo.Map{"error": "item not in cart"})
            }
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update cart failed"})
        }
        return c.JSON(http.StatusOK, echo.Map{"message": "removed from cart"})
    }

    if err := h.Cart.SetQuantity(ctx, userID, productID, req.Quantity); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "item not in cart"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update cart failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "cart updated"})
}

// Remove deletes a product's line from the cart.
func (h *CartHandler) Remove(c echo.Context) error {
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

    if err := h.Cart.DeleteByProduct(ctx, userID, productID); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "item not in cart"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "remove from cart failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "removed from cart"})
}
