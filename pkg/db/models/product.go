package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the canonical catalog listing carrying the public price, the
// standing discount, and the B2B grid columns.
type Product struct {
	ID               int64            `gorm:"column:id;primaryKey;autoIncrement"`
	SKU              string           `gorm:"column:sku;not null;uniqueIndex"`
	Title            string           `gorm:"column:title;not null"`
	BrandSlug        *string          `gorm:"column:brand_slug"`
	CategoryName     *string          `gorm:"column:category_name"`
	Price            decimal.Decimal  `gorm:"column:price;type:numeric(10,2);not null"`
	DiscountPrice    *decimal.Decimal `gorm:"column:discount_price;type:numeric(10,2)"`
	PriceWholesaler  *decimal.Decimal `gorm:"column:price_wholesaler;type:numeric(10,2)"`
	PriceBigRetail   *decimal.Decimal `gorm:"column:price_big_retail;type:numeric(10,2)"`
	PriceSmallRetail *decimal.Decimal `gorm:"column:price_small_retail;type:numeric(10,2)"`
	IsActive         bool             `gorm:"column:is_active;not null;default:true"`
	CreatedAt        time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
