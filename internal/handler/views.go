package handler

import (
    "time"

    "github.com/novakir/storefront/internal/model"
)

// Response view types.  Model structs stay tag-free, so every shape that
// leaves the API is mapped through one of these.

type brandView struct {
    ID               uint64  `json:"id"`
    BrandName        string  `json:"brand_name"`
    ShortName        *string `json:"short_name,omitempty"`
    ShortDescription *string `json:"short_description,omitempty"`
    LongDescription  *string `json:"long_description,omitempty"`
    Image            *string `json:"image,omitempty"`
}

func toBrandView(b model.Brand) brandView {
    return brandView{
        ID:               b.ID,
        BrandName:        b.BrandName,
        ShortName:        b.ShortName,
        ShortDescription: b.ShortDescription,
        LongDescription:  b.LongDescription,
        Image:            b.Image,
    }
}

func toBrandViews(bs []model.Brand) []brandView {
    out := make([]brandView, 0, len(bs))
    for _, b := range bs {
        out = append(out, toBrandView(b))
    }
    return out
}

type categoryView struct {
    ID           uint64 `json:"id"`
    CategoryName string `json:"category_name"`
    BrandID      uint64 `json:"brand_id"`
}

func toCategoryView(c model.Category) categoryView {
    return categoryView{ID: c.ID, CategoryName: c.CategoryName, BrandID: c.BrandID}
}

func toCategoryViews(cs []model.Category) []categoryView {
    out := make([]categoryView, 0, len(cs))
    for _, c := range cs {
        out = append(out, toCategoryView(c))
    }
    return out
}

type subCategoryView struct {
    ID              uint64 `json:"id"`
    SubCategoryName string `json:"sub_category_name"`
    CategoryID      uint64 `json:"category_id"`
    BrandID         uint64 `json:"brand_id"`
}

func toSubCategoryView(sc model.SubCategory) subCategoryView {
    return subCategoryView{ID: sc.ID, SubCategoryName: sc.SubCategoryName, CategoryID: sc.CategoryID, BrandID: sc.BrandID}
}

func toSubCategoryViews(scs []model.SubCategory) []subCategoryView {
    out := make([]subCategoryView, 0, len(scs))
    for _, sc := range scs {
        out = append(out, toSubCategoryView(sc))
    }
    return out
}

type productView struct {
    ID            uint64  `json:"id"`
    ProductName   string  `json:"product_name"`
    Image         string  `json:"image"`
    Price         float64 `json:"price"`
    Description   string  `json:"description"`
    BrandID       uint64  `json:"brand_id"`
    SubCategoryID uint64  `json:"sub_category_id"`
    CategoryID    uint64  `json:"category_id"`
}

func toProductView(p model.Product) productView {
    return productView{
        ID:            p.ID,
        ProductName:   p.ProductName,
        Image:         p.Image,
        Price:         p.Price,
        Description:   p.Description,
        BrandID:       p.BrandID,
        SubCategoryID: p.SubCategoryID,
        CategoryID:    p.CategoryID,
    }
}

func toProductViews(ps []model.Product) []productView {
    out := make([]productView, 0, len(ps))
    for _, p := range ps {
        out = append(out, toProductView(p))
    }
    return out
}

type variantView struct {
    ID        uint64  `json:"id"`
    ProductID uint64  `json:"product_id"`
    Name      string  `json:"name"`
    SKU       string  `json:"sku"`
    Price     float64 `json:"price"`
    Stock     int64   `json:"stock"`
    Available bool    `json:"available"`
}

func toVariantView(v model.Variant) variantView {
    return variantView{ID: v.ID, ProductID: v.ProductID, Name: v.Name, SKU: v.SKU, Price: v.Price, Stock: v.Stock, Available: v.Available}
}

func toVariantViews(vs []model.Variant) []variantView {
    out := make([]variantView, 0, len(vs))
    for _, v := range vs {
        out = append(out, toVariantView(v))
    }
    return out
}

type attributeView struct {
    ID            uint64 `json:"id"`
    AttributeName string `json:"attribute_name"`
}

type termView struct {
    ID          uint64 `json:"id"`
    Value       string `json:"value"`
    AttributeID uint64 `json:"attribute_id"`
}

type assignmentView struct {
    ID        uint64 `json:"id"`
    ProductID uint64 `json:"product_id"`
    TermID    uint64 `json:"term_id"`
}

func toAssignmentViews(as []model.ProductAssignment) []assignmentView {
    out := make([]assignmentView, 0, len(as))
    for _, a := range as {
        out = append(out, assignmentView{ID: a.ID, ProductID: a.ProductID, TermID: a.TermID})
    }
    return out
}

type addressView struct {
    ID      uint64 `json:"id"`
    Address string `json:"address"`
}

func toAddressViews(as []model.Address) []addressView {
    out := make([]addressView, 0, len(as))
    for _, a := range as {
        out = append(out, addressView{ID: a.ID, Address: a.Address})
    }
    return out
}

type couponView struct {
    ID             uint64    `json:"id"`
    Code           string    `json:"code"`
    DiscountType   string    `json:"discount_type"`
    DiscountValue  float64   `json:"discount_value"`
    MinOrderAmount float64   `json:"min_order_amount"`
    StartDate      time.Time `json:"start_date"`
    EndDate        time.Time `json:"end_date"`
    UsageLimit     *int64    `json:"usage_limit"`
    UsagePerUser   int64     `json:"usage_per_user"`
    IsActive       bool      `json:"is_active"`
}

func toCouponView(c model.Coupon) couponView {
    return couponView{
        ID:             c.ID,
        Code:           c.Code,
        DiscountType:   c.DiscountType,
        DiscountValue:  c.DiscountValue,
        MinOrderAmount: c.MinOrderAmount,
        StartDate:      c.StartDate,
        EndDate:        c.EndDate,
        UsageLimit:     c.UsageLimit,
        UsagePerUser:   c.UsagePerUser,
        IsActive:       c.IsActive,
    }
}

type orderItemView struct {
    ID        uint64  `json:"id"`
    ProductID uint64  `json:"product_id"`
    VariantID *uint64 `json:"variant_id,omitempty"`
    Quantity  int64   `json:"quantity"`
    Price     float64 `json:"price"`
}

func toOrderItemViews(items []model.OrderItem) []orderItemView {
    out := make([]orderItemView, 0, len(items))
    for _, it := range items {
        out = append(out, orderItemView{ID: it.ID, ProductID: it.ProductID, VariantID: it.VariantID, Quantity: it.Quantity, Price: it.Price})
    }
    return out
}
