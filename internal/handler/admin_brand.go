package handler

import (
    "database/sql"
    "errors"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/novakir/storefront/internal/model"
    "github.com/novakir/storefront/internal/repository"
    "github.com/novakir/storefront/internal/storage"
)

// AdminBrandHandler manages brands and their category tree.  All routes
// run behind the admin role guard.
type AdminBrandHandler struct {
    Brands     *repository.BrandRepo
    Categories *repository.CategoryRepo
    Images     *storage.ImageStore
}

func NewAdminBrandHandler(b *repository.BrandRepo, c *repository.CategoryRepo, img *storage.ImageStore) *AdminBrandHandler {
    return &AdminBrandHandler{Brands: b, Categories: c, Images: img}
}

// optForm returns a pointer to the trimmed form value, nil when absent.
func optForm(c echo.Context, name string) *string {
    v := strings.TrimSpace(c.FormValue(name))
    if v == "" {
        return nil
    }
    return &v
}

// CreateBrand accepts multipart form data so a logo can be uploaded
// together with the brand fields.
func (h *AdminBrandHandler) CreateBrand(c echo.Context) error {
    name := strings.TrimSpace(c.FormValue("brand_name"))
    if name == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "brand_name required"})
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    image, err := saveUpload(ctx, c, h.Images, "brands", "image")
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "image upload failed"})
    }

    b := model.Brand{
        BrandName:        name,
        ShortName:        optForm(c, "short_name"),
        ShortDescription: optForm(c, "short_description"),
        LongDescription:  optForm(c, "long_description"),
        Image:            image,
    }
    id, err := h.Brands.Create(ctx, b)
    if err != nil {
        if errors.Is(err, repository.ErrConflict) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "brand already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create brand failed"})
    }
    b.ID = id
    return c.JSON(http.StatusCreated, toBrandView(b))
}

func (h *AdminBrandHandler) UpdateBrand(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil || id == 0 {
        return badID(c, "brand id")
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    b, err := h.Brands.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "brand not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    if name := strings.TrimSpace(c.FormValue("brand_name")); name != "" {
        b.BrandName = name
    }
    if v := optForm(c, "short_name"); v != nil {
        b.ShortName = v
    }
    if v := optForm(c, "short_description"); v != nil {
        b.ShortDescription = v
    }
    if v := optForm(c, "long_description"); v != nil {
        b.LongDescription = v
    }
    if image, err := saveUpload(ctx, c, h.Images, "brands", "image"); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "image upload failed"})
    } else if image != nil {
        b.Image = image
    }

    if err := h.Brands.Update(ctx, b); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update brand failed"})
    }
    return c.JSON(http.StatusOK, toBrandView(b))
}

func (h *AdminBrandHandler) DeleteBrand(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil || id == 0 {
        return badID(c, "brand id")
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    if err := h.Brands.Delete(ctx, id); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "brand not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete brand failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "brand deleted"})
}

// ----- categories -----

type categoryReq struct {
    CategoryName string `json:"category_name"`
    BrandID      uint64 `json:"brand_id"`
}

func (h *AdminBrandHandler) CreateCategory(c echo.Context) error {
    var req categoryReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.CategoryName = strings.TrimSpace(req.CategoryName)
    if req.CategoryName == "" || req.BrandID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "category_name and brand_id required"})
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    if _, err := h.Brands.GetByID(ctx, req.BrandID); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "brand not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    cat := model.Category{CategoryName: req.CategoryName, BrandID: req.BrandID}
    id, err := h.Categories.CreateCategory(ctx, cat)
    if err != nil {
        if errors.Is(err, repository.ErrConflict) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "category already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create category failed"})
    }
    cat.ID = id
    return c.JSON(http.StatusCreated, toCategoryView(cat))
}

func (h *AdminBrandHandler) UpdateCategory(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil || id == 0 {
        return badID(c, "category id")
    }
    var req categoryReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    cat, err := h.Categories.GetCategoryByID(ctx, id)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if name := strings.TrimSpace(req.CategoryName); name != "" {
        cat.CategoryName = name
    }
    if req.BrandID != 0 {
        cat.BrandID = req.BrandID
    }
    if err := h.Categories.UpdateCategory(ctx, cat); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update category failed"})
    }
    return c.JSON(http.StatusOK, toCategoryView(cat))
}

func (h *AdminBrandHandler) DeleteCategory(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil || id == 0 {
        return badID(c, "category id")
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    if err := h.Categories.DeleteCategory(ctx, id); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete category failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "category deleted"})
}

// ----- subcategories -----

type subCategoryReq struct {
    SubCategoryName string `json:"sub_category_name"`
    CategoryID      uint64 `json:"category_id"`
}

func (h *AdminBrandHandler) CreateSubCategory(c echo.Context) error {
    var req subCategoryReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.SubCategoryName = strings.TrimSpace(req.SubCategoryName)
    if req.SubCategoryName == "" || req.CategoryID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "sub_category_name and category_id required"})
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    cat, err := h.Categories.GetCategoryByID(ctx, req.CategoryID)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    // brand_id is denormalized onto the subcategories table and always
    // taken from the parent category.
    sc := model.SubCategory{SubCategoryName: req.SubCategoryName, CategoryID: cat.ID, BrandID: cat.BrandID}
    id, err := h.Categories.CreateSubCategory(ctx, sc)
    if err != nil {
        if errors.Is(err, repository.ErrConflict) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "subcategory already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create subcategory failed"})
    }
    sc.ID = id
    return c.JSON(http.StatusCreated, toSubCategoryView(sc))
}

func (h *AdminBrandHandler) UpdateSubCategory(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil || id == 0 {
        return badID(c, "subcategory id")
    }
    var req subCategoryReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    sc, err := h.Categories.GetSubCategoryByID(ctx, id)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "subcategory not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if name := strings.TrimSpace(req.SubCategoryName); name != "" {
        sc.SubCategoryName = name
    }
    if req.CategoryID != 0 && req.CategoryID != sc.CategoryID {
        cat, err := h.Categories.GetCategoryByID(ctx, req.CategoryID)
        if err != nil {
            if errors.Is(err, sql.ErrNoRows) {
                return c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
            }
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
        }
        sc.CategoryID = cat.ID
        sc.BrandID = cat.BrandID
    }
    if err := h.Categories.UpdateSubCategory(ctx, sc); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update subcategory failed"})
    }
    return c.JSON(http.StatusOK, toSubCategoryView(sc))
}

func (h *AdminBrandHandler) DeleteSubCategory(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil || id == 0 {
        return badID(c, "subcategory id")
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    if err := h.Categories.DeleteSubCategory(ctx, id); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "subcategory not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete subcategory failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "subcategory deleted"})
}
