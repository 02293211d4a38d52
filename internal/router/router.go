package router // route registration for the storefront API

import (
    "github.com/labstack/echo/v4"

    "github.com/novakir/storefront/internal/handler"
    "github.com/novakir/storefront/internal/middleware"
)

// RegisterRoutes registers routes that need no authentication.
// Currently that is only the health check.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
}

// RegisterAuth wires the auth endpoints.  Signup and login are open
// (optionally behind the token-bucket limiter); logout and me run
// behind the JWT middleware so the handler can rely on the resolved
// identity and the raw token in context.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtAuth echo.MiddlewareFunc, limiter echo.MiddlewareFunc) {
    g := e.Group("/v1/auth")
    g.POST("/signup", a.Signup, limiter)
    g.POST("/login", a.Login, limiter)

    auth := e.Group("/v1/auth")
    auth.Use(jwtAuth)
    auth.POST("/logout", a.Logout)
    auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated catalog browse surface.
// Guests can inspect products, variants, brands and the category tree
// without a token.
func RegisterPublic(e *echo.Echo, cat *handler.CatalogHandler) {
    e.GET("/v1/products", cat.ListProducts)
    e.GET("/v1/products/:id", cat.GetProduct)
    e.GET("/v1/products/:id/variants", cat.ListVariants)
    e.GET("/v1/search/products", cat.SearchProducts)
    e.GET("/v1/brands", cat.ListBrands)
    e.GET("/v1/categories", cat.ListCategories)
    e.GET("/v1/subcategories", cat.ListSubCategories)
}

// RequireUser is the middleware chain for customer endpoints: a valid,
// non-blacklisted token whose persisted role is exactly "user".
func RequireUser(jwtAuth echo.MiddlewareFunc) []echo.MiddlewareFunc {
    return []echo.MiddlewareFunc{jwtAuth, middleware.RequireRole("user")}
}

// RequireAdmin is the middleware chain for admin endpoints.
func RequireAdmin(jwtAuth echo.MiddlewareFunc) []echo.MiddlewareFunc {
    return []echo.MiddlewareFunc{jwtAuth, middleware.RequireRole("admin")}
}
