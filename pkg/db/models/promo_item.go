package models

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// PromoItem is a product-level entry inside a promo catalog. An empty
// allowed_customer_numbers list opens the item to every customer that
// qualifies at the catalog level.
type PromoItem struct {
	ID                     int64           `gorm:"column:id;primaryKey;autoIncrement"`
	CatalogID              int64           `gorm:"column:catalog_id;not null;index"`
	ProductID              int64           `gorm:"column:product_id;not null;index"`
	PromoPrice             decimal.Decimal `gorm:"column:promo_price;type:numeric(10,2);not null"`
	AllowedCustomerNumbers pq.StringArray  `gorm:"column:allowed_customer_numbers;type:text[]"`
	CreatedAt              time.Time       `gorm:"column:created_at;autoCreateTime"`
}
