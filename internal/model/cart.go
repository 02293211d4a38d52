package model

// CartItem is a row in `carts`.  The (user_id, product_id, variant_id)
// triple is unique: re-adding the same variant increments quantity instead
// of inserting a second row.  Cart rows are deleted on order creation or
// explicit removal.
type CartItem struct {
    ID        uint64 // carts.id
    UserID    uint64 // carts.user_id
    ProductID uint64 // carts.product_id
    VariantID uint64 // carts.variant_id
    Quantity  int64  // carts.quantity
}

// WishlistItem is a row in `wishlist`; one product saved by one user.
type WishlistItem struct {
    ID        uint64 // wishlist.id
    UserID    uint64 // wishlist.user_id
    ProductID uint64 // wishlist.product_id
}

// Address is a row in `user_addresses`.
type Address struct {
    ID      uint64 // user_addresses.id
    UserID  uint64 // user_addresses.user_id
    Address string // user_addresses.address
}
