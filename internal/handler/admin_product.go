package handler

import (
    "database/sql"
    "errors"
    "net/http"
    "strconv"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/novakir/storefront/internal/model"
    "github.com/novakir/storefront/internal/repository"
    "github.com/novakir/storefront/internal/storage"
)

// AdminProductHandler manages products and their variants.
type AdminProductHandler struct {
    Products   *repository.ProductRepo
    Variants   *repository.VariantRepo
    Brands     *repository.BrandRepo
    Categories *repository.CategoryRepo
    Images     *storage.ImageStore
}

func NewAdminProductHandler(p *repository.ProductRepo, v *repository.VariantRepo, b *repository.BrandRepo, cat *repository.CategoryRepo, img *storage.ImageStore) *AdminProductHandler {
    return &AdminProductHandler{Products: p, Variants: v, Brands: b, Categories: cat, Images: img}
}

func formUint(c echo.Context, name string) (uint64, error) {
    return strconv.ParseUint(strings.TrimSpace(c.FormValue(name)), 10, 64)
}

// CreateProduct accepts multipart form data: product_name, price,
// description, brand_id, category_id, sub_category_id and an optional
// image file.
func (h *AdminProductHandler) CreateProduct(c echo.Context) error {
    name := strings.TrimSpace(c.FormValue("product_name"))
    if name == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "product_name required"})
    }
    price, err := strconv.ParseFloat(strings.TrimSpace(c.FormValue("price")), 64)
    if err != nil || price < 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid price"})
    }
    brandID, err := formUint(c, "brand_id")
    if err != nil || brandID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid brand_id"})
    }
    categoryID, err := formUint(c, "category_id")
    if err != nil || categoryID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category_id"})
    }
    subCategoryID, err := formUint(c, "sub_category_id")
    if err != nil || subCategoryID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid sub_category_id"})
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    if _, err := h.Brands.GetByID(ctx, brandID); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "brand not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if _, err := h.Categories.GetSubCategoryByID(ctx, subCategoryID); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "subcategory not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    image, err := saveUpload(ctx, c, h.Images, "products", "image")
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "image upload failed"})
    }

    p := model.Product{
        ProductName:   name,
        Price:         price,
        Description:   strings.TrimSpace(c.FormValue("description")),
        BrandID:       brandID,
        CategoryID:    categoryID,
        SubCategoryID: subCategoryID,
    }
    if image != nil {
        p.Image = *image
    }
    id, err := h.Products.Create(ctx, p)
    if err != nil {
        if errors.Is(err, repository.ErrConflict) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "product already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create product failed"})
    }
    p.ID = id
    return c.JSON(http.StatusCreated, toProductView(p))
}

func (h *AdminProductHandler) UpdateProduct(c echo.Context) error {
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

    if name := strings.TrimSpace(c.FormValue("product_name")); name != "" {
        p.ProductName = name
    }
    if raw := strings.TrimSpace(c.FormValue("price")); raw != "" {
        price, err := strconv.ParseFloat(raw, 64)
        if err != nil || price < 0 {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid price"})
        }
        p.Price = price
    }
    if desc := strings.TrimSpace(c.FormValue("description")); desc != "" {
        p.Description = desc
    }
    if raw := strings.TrimSpace(c.FormValue("brand_id")); raw != "" {
        brandID, err := strconv.ParseUint(raw, 10, 64)
        if err != nil || brandID == 0 {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid brand_id"})
        }
        p.BrandID = brandID
    }
    if raw := strings.TrimSpace(c.FormValue("category_id")); raw != "" {
        categoryID, err := strconv.ParseUint(raw, 10, 64)
        if err != nil || categoryID == 0 {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category_id"})
        }
        p.CategoryID = categoryID
    }
    if raw := strings.TrimSpace(c.FormValue("sub_category_id")); raw != "" {
        subID, err := strconv.ParseUint(raw, 10, 64)
        if err != nil || subID == 0 {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid sub_category_id"})
        }
        p.SubCategoryID = subID
    }
    if image, err := saveUpload(ctx, c, h.Images, "products", "image"); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "image upload failed"})
    } else if image != nil {
        p.Image = *image
    }

    if err := h.Products.Update(ctx, p); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update product failed"})
    }
    return c.JSON(http.StatusOK, toProductView(p))
}

func (h *AdminProductHandler) DeleteProduct(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil || id == 0 {
        return badID(c, "product id")
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    if err := h.Products.Delete(ctx, id); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete product failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "product deleted"})
}

// ----- variants -----

type variantReq struct {
    Name      string   `json:"name"`
    SKU       string   `json:"sku"`
    Price     *float64 `json:"price"`
    Stock     *int64   `json:"stock"`
    Available *bool    `json:"available"`
}

func (h *AdminProductHandler) CreateVariant(c echo.Context) error {
    productID, err := pathID(c, "id")
    if err != nil || productID == 0 {
        return badID(c, "product id")
    }
    var req variantReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Name = strings.TrimSpace(req.Name)
    req.SKU = strings.TrimSpace(req.SKU)
    if req.Name == "" || req.SKU == "" || req.Price == nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, sku and price required"})
    }
    if *req.Price < 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid price"})
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    if _, err := h.Products.GetByID(ctx, productID); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    v := model.Variant{
        ProductID: productID,
        Name:      req.Name,
        SKU:       req.SKU,
        Price:     *req.Price,
        Available: true,
    }
    if req.Stock != nil {
        v.Stock = *req.Stock
    }
    if req.Available != nil {
        v.Available = *req.Available
    }
    id, err := h.Variants.Create(ctx, v)
    if err != nil {
        if errors.Is(err, repository.ErrConflict) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "sku already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create variant failed"})
    }
    v.ID = id
    return c.JSON(http.StatusCreated, toVariantView(v))
}

func (h *AdminProductHandler) UpdateVariant(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil || id == 0 {
        return badID(c, "variant id")
    }
    var req variantReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    v, err := h.Variants.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "variant not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if name := strings.TrimSpace(req.Name); name != "" {
        v.Name = name
    }
    if sku := strings.TrimSpace(req.SKU); sku != "" {
        v.SKU = sku
    }
    if req.Price != nil {
        if *req.Price < 0 {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid price"})
        }
        v.Price = *req.Price
    }
    if req.Stock != nil {
        v.Stock = *req.Stock
    }
    if req.Available != nil {
        v.Available = *req.Available
    }
    if err := h.Variants.Update(ctx, v); err != nil {
        if errors.Is(err, repository.ErrConflict) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "sku already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update variant failed"})
    }
    return c.JSON(http.StatusOK, toVariantView(v))
}

func (h *AdminProductHandler) DeleteVariant(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil || id == 0 {
        return badID(c, "variant id")
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    if err := h.Variants.Delete(ctx, id); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "variant not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete variant failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "variant deleted"})
}
