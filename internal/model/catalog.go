package model

// Catalog entities.  These map one-to-one onto their tables and are plain
// field carriers for the repository layer.  Image fields hold the object
// path returned by the image store, not raw bytes.

// Brand is a row in `brands`.  BrandName is unique.
type Brand struct {
    ID               uint64  // brands.id
    BrandName        string  // brands.brand_name (unique)
    ShortName        *string // brands.short_name (nullable)
    ShortDescription *string // brands.short_description (nullable)
    LongDescription  *string // brands.long_description (nullable)
    Image            *string // brands.image (nullable object path)
}

// Category is a row in `categories`; each category belongs to a brand.
type Category struct {
    ID           uint64 // categories.id
    CategoryName string // categories.category_name
    BrandID      uint64 // categories.brand_id
}

// SubCategory is a row in `subcategories`.  Name is unique and the row
// references both its category and brand, mirroring the denormalized
// source schema.
type SubCategory struct {
    ID              uint64 // subcategories.id
    SubCategoryName string // subcategories.sub_category_name (unique)
    CategoryID      uint64 // subcategories.category_id
    BrandID         uint64 // subcategories.brand_id
}

// Product is a row in `products`.  ProductName is unique.  Price is the
// base catalog price; purchasable stock lives on variants.
type Product struct {
    ID            uint64  // products.id
    ProductName   string  // products.product_name (unique)
    Image         string  // products.prod_image (object path)
    Price         float64 // products.product_price
    Description   string  // products.product_description
    BrandID       uint64  // products.brand_id
    SubCategoryID uint64  // products.sub_category_id
    CategoryID    uint64  // products.category_id
}

// Attribute is a row in `attributes`, e.g. Color or Size.
type Attribute struct {
    ID            uint64 // attributes.id
    AttributeName string // attributes.attribute_name
}

// Term is a row in `terms`, a concrete value of an attribute, e.g. Black.
type Term struct {
    ID          uint64 // terms.id
    Value       string // terms.value
    AttributeID uint64 // terms.attribute_id
}

// ProductAssignment links a product to a term in `product_assignments`.
type ProductAssignment struct {
    ID        uint64 // product_assignments.id
    ProductID uint64 // product_assignments.product_id
    TermID    uint64 // product_assignments.term_id
}

// Variant is a purchasable configuration of a product in `variants`.
// SKU is unique; Stock is checked (not reserved) when items enter a cart.
type Variant struct {
    ID        uint64  // variants.id
    ProductID uint64  // variants.product_id
    Name      string  // variants.name, e.g. "Black Pro 128GB"
    SKU       string  // variants.sku (unique)
    Price     float64 // variants.price
    Stock     int64   // variants.stock
    Available bool    // variants.available
}
