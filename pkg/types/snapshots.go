package types

import (
	"github.com/shopspring/decimal"

	"github.com/xeroscommerce/pricing-service/pkg/enums"
)

// ProductSnapshot is the immutable view of a priceable item handed to the
// pricing core. It is built once at the repository boundary; the engine never
// reaches back into persistence.
type ProductSnapshot struct {
	ID                  int64
	SKU                 string
	PublicPrice         decimal.Decimal
	SimpleDiscountPrice *decimal.Decimal
	WholesalerPrice     *decimal.Decimal
	BigRetailPrice      *decimal.Decimal
	SmallRetailPrice    *decimal.Decimal
	BrandIdentifier     string
	CategoryName        string
}

// HasValidSimpleDiscount reports whether the standing discount is usable:
// present, positive, and strictly below the public price.
func (p ProductSnapshot) HasValidSimpleDiscount() bool {
	if p.SimpleDiscountPrice == nil {
		return false
	}
	d := *p.SimpleDiscountPrice
	return d.IsPositive() && d.LessThan(p.PublicPrice)
}

// CustomerSnapshot is the immutable view of the purchasing party. A nil
// snapshot means an anonymous visitor and prices like a regular customer.
type CustomerSnapshot struct {
	ID             int64
	ClientType     enums.ClientType
	CustomerNumber string
	IsB2BVerified  bool
}

// EffectiveClientType normalizes absent/unknown types to regular.
func (c *CustomerSnapshot) EffectiveClientType() enums.ClientType {
	if c == nil || !c.ClientType.IsValid() {
		return enums.ClientTypeRegular
	}
	return c.ClientType
}

// PromotionItem is the resolved product-level promotion entry selected by the
// promotion lookup.
type PromotionItem struct {
	ID                     int64
	CatalogID              int64
	ProductID              int64
	PromoPrice             decimal.Decimal
	AllowedCustomerNumbers []string
}

// CartLine is one batch-pricing request entry.
type CartLine struct {
	ProductID int64
	Quantity  int
}

// PricedLine is a cart line after unit-price resolution.
type PricedLine struct {
	ProductID int64           `json:"product_id"`
	SKU       string          `json:"sku"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// CartPricingResult aggregates a fully priced cart.
type CartPricingResult struct {
	Lines []PricedLine    `json:"lines"`
	Total decimal.Decimal `json:"total"`
}
