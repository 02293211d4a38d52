package router

import (
    "github.com/labstack/echo/v4"

    "github.com/novakir/storefront/internal/handler"
)

// RegisterAdmin wires the catalog management and coupon endpoints.
// Every route requires a valid token with the "admin" role.
func RegisterAdmin(e *echo.Echo, jwtAuth echo.MiddlewareFunc,
    brands *handler.AdminBrandHandler, products *handler.AdminProductHandler,
    attrs *handler.AdminAttributeHandler, coupons *handler.AdminCouponHandler,
    orders *handler.AdminOrderHandler) {

    g := e.Group("/v1/admin", RequireAdmin(jwtAuth)...)

    // brands
    g.POST("/brands", brands.CreateBrand)
    g.PUT("/brands/:id", brands.UpdateBrand)
    g.DELETE("/brands/:id", brands.DeleteBrand)

    // categories and subcategories
    g.POST("/categories", brands.CreateCategory)
    g.PUT("/categories/:id", brands.UpdateCategory)
    g.DELETE("/categories/:id", brands.DeleteCategory)
    g.POST("/subcategories", brands.CreateSubCategory)
    g.PUT("/subcategories/:id", brands.UpdateSubCategory)
    g.DELETE("/subcategories/:id", brands.DeleteSubCategory)

    // products and variants
    g.POST("/products", products.CreateProduct)
    g.PUT("/products/:id", products.UpdateProduct)
    g.DELETE("/products/:id", products.DeleteProduct)
    g.POST("/products/:id/variants", products.CreateVariant)
    g.PUT("/variants/:id", products.UpdateVariant)
    g.DELETE("/variants/:id", products.DeleteVariant)

    // attributes, terms and assignments
    g.POST("/attributes", attrs.CreateAttribute)
    g.GET("/attributes", attrs.ListAttributes)
    g.DELETE("/attributes/:id", attrs.DeleteAttribute)
    g.POST("/attributes/:id/terms", attrs.CreateTerm)
    g.GET("/attributes/:id/terms", attrs.ListTerms)
    g.DELETE("/terms/:id", attrs.DeleteTerm)
    g.POST("/assignments", attrs.AssignTerm)
    g.DELETE("/assignments/:id", attrs.DeleteAssignment)

    // coupons
    g.POST("/coupons", coupons.Create)
    g.GET("/coupons", coupons.List)
    g.GET("/coupons/:id", coupons.Get)
    g.PATCH("/coupons/:id", coupons.Patch)
    g.DELETE("/coupons/:id", coupons.Delete)

    // orders
    g.PUT("/orders/:id/status", orders.UpdateStatus)
}
