package handler

import (
    "database/sql"
    "errors"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/novakir/storefront/internal/model"
    "github.com/novakir/storefront/internal/repository"
)

// AdminAttributeHandler manages attributes, their terms and the
// product-term assignments.
type AdminAttributeHandler struct {
    Attributes *repository.AttributeRepo
    Products   *repository.ProductRepo
}

func NewAdminAttributeHandler(a *repository.AttributeRepo, p *repository.ProductRepo) *AdminAttributeHandler {
    return &AdminAttributeHandler{Attributes: a, Products: p}
}

type attributeReq struct {
    AttributeName string `json:"attribute_name"`
}

func (h *AdminAttributeHandler) CreateAttribute(c echo.Context) error {
    var req attributeReq
    if err := c.Bind(&req); err != nil || strings.TrimSpace(req.AttributeName) == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "attribute_name required"})
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    a := model.Attribute{AttributeName: strings.TrimSpace(req.AttributeName)}
    id, err := h.Attributes.CreateAttribute(ctx, a)
    if err != nil {
        if errors.Is(err, repository.ErrConflict) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "attribute already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create attribute failed"})
    }
    return c.JSON(http.StatusCreated, attributeView{ID: id, AttributeName: a.AttributeName})
}

func (h *AdminAttributeHandler) ListAttributes(c echo.Context) error {
    ctx, cancel := reqContext(c)
    defer cancel()

    attrs, err := h.Attributes.ListAttributes(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]attributeView, 0, len(attrs))
    for _, a := range attrs {
        out = append(out, attributeView{ID: a.ID, AttributeName: a.AttributeName})
    }
    return c.JSON(http.StatusOK, echo.Map{"attributes": out})
}

func (h *AdminAttributeHandler) DeleteAttribute(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil || id == 0 {
        return badID(c, "attribute id")
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    if err := h.Attributes.DeleteAttribute(ctx, id); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "attribute not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete attribute failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "attribute deleted"})
}

// ----- terms -----

type termReq struct {
    Value string `json:"value"`
}

func (h *AdminAttributeHandler) CreateTerm(c echo.Context) error {
    attributeID, err := pathID(c, "id")
    if err != nil || attributeID == 0 {
        return badID(c, "attribute id")
    }
    var req termReq
    if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Value) == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "value required"})
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    if _, err := h.Attributes.GetAttributeByID(ctx, attributeID); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "attribute not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    t := model.Term{Value: strings.TrimSpace(req.Value), AttributeID: attributeID}
    id, err := h.Attributes.CreateTerm(ctx, t)
    if err != nil {
        if errors.Is(err, repository.ErrConflict) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "term already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create term failed"})
    }
    return c.JSON(http.StatusCreated, termView{ID: id, Value: t.Value, AttributeID: attributeID})
}

func (h *AdminAttributeHandler) ListTerms(c echo.Context) error {
    attributeID, err := pathID(c, "id")
    if err != nil || attributeID == 0 {
        return badID(c, "attribute id")
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    terms, err := h.Attributes.ListTermsByAttribute(ctx, attributeID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]termView, 0, len(terms))
    for _, t := range terms {
        out = append(out, termView{ID: t.ID, Value: t.Value, AttributeID: t.AttributeID})
    }
    return c.JSON(http.StatusOK, echo.Map{"terms": out})
}

func (h *AdminAttributeHandler) DeleteTerm(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil || id == 0 {
        return badID(c, "term id")
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    if err := h.Attributes.DeleteTerm(ctx, id); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "term not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete term failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "term deleted"})
}

// ----- assignments -----

type assignReq struct {
    ProductID uint64 `json:"product_id"`
    TermID    uint64 `json:"term_id"`
}

func (h *AdminAttributeHandler) AssignTerm(c echo.Context) error {
    var req assignReq
    if err := c.Bind(&req); err != nil || req.ProductID == 0 || req.TermID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "product_id and term_id required"})
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    if _, err := h.Products.GetByID(ctx, req.ProductID); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if _, err := h.Attributes.GetTermByID(ctx, req.TermID); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "term not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    id, err := h.Attributes.AssignTerm(ctx, req.ProductID, req.TermID)
    if err != nil {
        if errors.Is(err, repository.ErrConflict) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "term already assigned"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "assign term failed"})
    }
    return c.JSON(http.StatusCreated, assignmentView{ID: id, ProductID: req.ProductID, TermID: req.TermID})
}

func (h *AdminAttributeHandler) DeleteAssignment(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil || id == 0 {
        return badID(c, "assignment id")
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    if err := h.Attributes.DeleteAssignment(ctx, id); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "assignment not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete assignment failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "assignment deleted"})
}
