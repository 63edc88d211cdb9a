package pricing

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/xeroscommerce/pricing-service/pkg/money"
	"github.com/xeroscommerce/pricing-service/pkg/types"
)

// ErrMissingPublicPrice signals a product snapshot without a usable public
// price. Every fallback path terminates at the public price, so resolution
// cannot proceed without one.
var ErrMissingPublicPrice = errors.New("product has no public price")

// Resolution tier names reported alongside each resolved price.
const (
	TierPromotion      = "promotion"
	TierB2BGrid        = "b2b_grid"
	TierSimpleDiscount = "simple_discount"
	TierPublicPrice    = "public_price"
)

// resolver attempts one tier of the resolution order. A nil result means the
// tier does not apply and the next one is consulted.
type resolver struct {
	tier string
	fn   func(product *types.ProductSnapshot, customer *types.CustomerSnapshot, promo *types.PromotionItem) *decimal.Decimal
}

// Engine resolves the unit price for a product/customer pair through a fixed,
// ordered list of tiers: promotion, B2B grid, simple discount, public price.
type Engine struct {
	resolvers []resolver
}

// NewEngine builds the resolver chain. surchargePercent is the markup applied
// to B2B grid prices for unverified accounts (5 means 5%).
func NewEngine(surchargePercent decimal.Decimal) *Engine {
	return &Engine{
		resolvers: []resolver{
			{
				tier: TierPromotion,
				fn: func(_ *types.ProductSnapshot, _ *types.CustomerSnapshot, promo *types.PromotionItem) *decimal.Decimal {
					if promo == nil {
						return nil
					}
					price := money.Quantize(promo.PromoPrice)
					return &price
				},
			},
			{
				tier: TierB2BGrid,
				fn: func(product *types.ProductSnapshot, customer *types.CustomerSnapshot, _ *types.PromotionItem) *decimal.Decimal {
					return ResolveB2BPrice(product, customer, surchargePercent)
				},
			},
			{
				tier: TierSimpleDiscount,
				fn: func(product *types.ProductSnapshot, _ *types.CustomerSnapshot, _ *types.PromotionItem) *decimal.Decimal {
					if !product.HasValidSimpleDiscount() {
						return nil
					}
					price := money.Quantize(*product.SimpleDiscountPrice)
					return &price
				},
			},
			{
				tier: TierPublicPrice,
				fn: func(product *types.ProductSnapshot, _ *types.CustomerSnapshot, _ *types.PromotionItem) *decimal.Decimal {
					price := money.Quantize(product.PublicPrice)
					return &price
				},
			},
		},
	}
}

// DetermineUnitPrice walks the tiers in order and returns the first resolved
// price together with the tier that produced it. Pure function of its inputs.
func (e *Engine) DetermineUnitPrice(product *types.ProductSnapshot, customer *types.CustomerSnapshot, promo *types.PromotionItem) (decimal.Decimal, string, error) {
	if product == nil {
		return decimal.Zero, "", ErrMissingPublicPrice
	}
	if !product.PublicPrice.IsPositive() {
		return decimal.Zero, "", ErrMissingPublicPrice
	}

	for _, r := range e.resolvers {
		if price := r.fn(product, customer, promo); price != nil {
			return *price, r.tier, nil
		}
	}

	// Unreachable: the public price tier always resolves.
	return decimal.Zero, "", ErrMissingPublicPrice
}
