package handler

import (
    "database/sql"
    "errors"
    "net/http"
    "strconv"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/novakir/storefront/internal/repository"
)

// CatalogHandler serves the public, read-only catalog surface.  None
// of these routes require authentication.
type CatalogHandler struct {
    Products   *repository.ProductRepo
    Variants   *repository.VariantRepo
    Brands     *repository.BrandRepo
    Categories *repository.CategoryRepo
    Attributes *repository.AttributeRepo
}

func NewCatalogHandler(p *repository.ProductRepo, v *repository.VariantRepo, b *repository.BrandRepo, cat *repository.CategoryRepo, a *repository.AttributeRepo) *CatalogHandler {
    return &CatalogHandler{Products: p, Variants: v, Brands: b, Categories: cat, Attributes: a}
}

// ListProducts supports optional filters via query parameters:
// min_price/max_price, category_id, brand_id. Filters are mutually
// exclusive; price wins, then category, then brand.
func (h *CatalogHandler) ListProducts(c echo.Context) error {
    ctx, cancel := reqContext(c)
    defer cancel()

    minRaw := c.QueryParam("min_price")
    maxRaw := c.QueryParam("max_price")
    if minRaw != "" || maxRaw != "" {
        min, err := strconv.ParseFloat(minRaw, 64)
        if err != nil && minRaw != "" {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid min_price"})
        }
        max := 1e12
        if maxRaw != "" {
            max, err = strconv.ParseFloat(maxRaw, 64)
            if err != nil {
                return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid max_price"})
            }
        }
        products, err := h.Products.FilterByPrice(ctx, min, max)
        if err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
        }
        return c.JSON(http.StatusOK, echo.Map{"products": toProductViews(products)})
    }
    if raw := c.QueryParam("category_id"); raw != "" {
        id, err := strconv.ParseUint(raw, 10, 64)
        if err != nil || id == 0 {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category_id"})
        }
        products, err := h.Products.FilterByCategory(ctx, id)
        if err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
        }
        return c.JSON(http.StatusOK, echo.Map{"products": toProductViews(products)})
    }
    if raw := c.QueryParam("brand_id"); raw != "" {
        id, err := strconv.ParseUint(raw, 10, 64)
        if err != nil || id == 0 {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid brand_id"})
        }
        products, err := h.Products.FilterByBrand(ctx, id)
        if err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
        }
        return c.JSON(http.StatusOK, echo.Map{"products": toProductViews(products)})
    }

    products, err := h.Products.List(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"products": toProductViews(products)})
}

// GetProduct returns a single product with its variants and attribute
// assignments.
func (h *CatalogHandler) GetProduct(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil || id == 0 {
        return badID(c, "product id")
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    p, err := h.Products.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    variants, err := h.Variants.ListByProduct(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    assignments, err := h.Attributes.ListAssignmentsByProduct(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "product":    toProductView(p),
        "variants":   toVariantViews(variants),
        "attributes": toAssignmentViews(assignments),
    })
}

// SearchProducts matches the query against product, brand, category
// and subcategory names plus descriptions.
func (h *CatalogHandler) SearchProducts(c echo.Context) error {
    query := strings.TrimSpace(c.QueryParam("q"))
    if query == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "q required"})
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    products, err := h.Products.Search(ctx, query)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"products": toProductViews(products)})
}

func (h *CatalogHandler) ListBrands(c echo.Context) error {
    ctx, cancel := reqContext(c)
    defer cancel()

    brands, err := h.Brands.List(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"brands": toBrandViews(brands)})
}

func (h *CatalogHandler) ListCategories(c echo.Context) error {
    ctx, cancel := reqContext(c)
    defer cancel()

    cats, err := h.Categories.ListCategories(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"categories": toCategoryViews(cats)})
}

func (h *CatalogHandler) ListSubCategories(c echo.Context) error {
    ctx, cancel := reqContext(c)
    defer cancel()

    subs, err := h.Categories.ListSubCategories(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"subcategories": toSubCategoryViews(subs)})
}

// ListVariants returns the purchasable variants for a product.
func (h *CatalogHandler) ListVariants(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil || id == 0 {
        return badID(c, "product id")
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    variants, err := h.Variants.ListByProduct(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"variants": toVariantViews(variants)})
}
