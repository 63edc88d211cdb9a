package pricing

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/xeroscommerce/pricing-service/pkg/money"
	"github.com/xeroscommerce/pricing-service/pkg/types"
)

// QuantityTier grants Percent off once the ordered quantity reaches
// MinQuantity. Tiers do not stack: the highest threshold met wins.
type QuantityTier struct {
	MinQuantity int
	Percent     decimal.Decimal
}

// DiscountConfig holds the quantity, brand, and category discount tables plus
// the price floor. The struct is immutable after construction; tests override
// it wholesale instead of mutating shared state.
type DiscountConfig struct {
	QuantityTiers    []QuantityTier
	BrandPercents    map[string]decimal.Decimal
	CategoryPercents map[string]decimal.Decimal
	FloorPercent     decimal.Decimal
}

// DefaultDiscountConfig returns the stock rule parameters: 20% off at 100
// units, 10% off at 50, no brand or category entries, and a floor at 70% of
// the public price.
func DefaultDiscountConfig(floorPercent decimal.Decimal) DiscountConfig {
	return DiscountConfig{
		QuantityTiers: []QuantityTier{
			{MinQuantity: 100, Percent: decimal.NewFromInt(20)},
			{MinQuantity: 50, Percent: decimal.NewFromInt(10)},
		},
		BrandPercents:    map[string]decimal.Decimal{},
		CategoryPercents: map[string]decimal.Decimal{},
		FloorPercent:     floorPercent,
	}
}

// Apply runs the quantity, brand, and category discounts in order against the
// resolved base price, re-quantizing after every step, then clamps the result
// to the floor. Brand matching is case-insensitive; category matching is
// exact.
func (c DiscountConfig) Apply(base decimal.Decimal, product *types.ProductSnapshot, quantity int) decimal.Decimal {
	price := money.Quantize(base)

	if tier := c.quantityTierFor(quantity); tier != nil {
		price = money.ApplyPercentOff(price, tier.Percent)
	}
	if rate, ok := c.BrandPercents[strings.ToLower(product.BrandIdentifier)]; ok && product.BrandIdentifier != "" {
		price = money.ApplyPercentOff(price, rate)
	}
	if rate, ok := c.CategoryPercents[product.CategoryName]; ok && product.CategoryName != "" {
		price = money.ApplyPercentOff(price, rate)
	}

	floor := money.Multiply(product.PublicPrice, c.FloorPercent)
	if price.LessThan(floor) {
		return floor
	}
	return price
}

// quantityTierFor returns the highest tier the quantity satisfies, or nil.
func (c DiscountConfig) quantityTierFor(quantity int) *QuantityTier {
	tiers := make([]QuantityTier, len(c.QuantityTiers))
	copy(tiers, c.QuantityTiers)
	sort.SliceStable(tiers, func(i, j int) bool {
		return tiers[i].MinQuantity > tiers[j].MinQuantity
	})
	for i := range tiers {
		if quantity >= tiers[i].MinQuantity {
			return &tiers[i]
		}
	}
	return nil
}
