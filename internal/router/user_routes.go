package router

import (
    "github.com/labstack/echo/v4"

    "github.com/novakir/storefront/internal/handler"
)

// RegisterUser wires the customer-facing endpoints: cart, wishlist,
// addresses, coupon preview and orders.  Every route requires a valid
// token with the "user" role; admins are deliberately rejected here,
// the two roles are disjoint.
func RegisterUser(e *echo.Echo, jwtAuth echo.MiddlewareFunc,
    cart *handler.CartHandler, wish *handler.WishlistHandler,
    addr *handler.AddressHandler, orders *handler.OrderHandler) {

    g := e.Group("/v1", RequireUser(jwtAuth)...)

    // cart
    g.POST("/cart", cart.Add)
    g.GET("/cart", cart.List)
    g.PUT("/cart/:product_id", cart.UpdateQuantity)
    g.DELETE("/cart/:product_id", cart.Remove)

    // wishlist
    g.POST("/wishlist", wish.Add)
    g.GET("/wishlist", wish.List)
    g.DELETE("/wishlist/:product_id", wish.Remove)

    // addresses
    g.POST("/addresses", addr.Create)
    g.GET("/addresses", addr.List)
    g.PUT("/addresses/:id", addr.Update)
    g.DELETE("/addresses/:id", addr.Delete)

    // coupons and orders
    g.POST("/apply-coupon", orders.ApplyCoupon)
    g.POST("/orders", orders.Create)
    g.GET("/orders", orders.List)
    g.GET("/orders/:id", orders.Get)
    g.DELETE("/orders/:id", orders.Delete)
}
