package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/xeroscommerce/pricing-service/pkg/enums"
	"github.com/xeroscommerce/pricing-service/pkg/money"
	"github.com/xeroscommerce/pricing-service/pkg/types"
)

// ResolveB2BPrice returns the grid price for a B2B customer, or nil when the
// customer is anonymous or not on a B2B tier. A missing grid column falls back
// to the public price. Unverified accounts pay the surcharge on top of
// whichever price was resolved.
func ResolveB2BPrice(product *types.ProductSnapshot, customer *types.CustomerSnapshot, surchargePercent decimal.Decimal) *decimal.Decimal {
	if product == nil {
		return nil
	}
	clientType := customer.EffectiveClientType()
	if !clientType.IsB2BTier() {
		return nil
	}

	price := product.PublicPrice
	if grid := gridPriceFor(product, clientType); grid != nil {
		price = *grid
	}

	if !customer.IsB2BVerified {
		price = price.Add(money.PercentageOf(price, surchargePercent))
	}

	resolved := money.Quantize(price)
	return &resolved
}

func gridPriceFor(product *types.ProductSnapshot, clientType enums.ClientType) *decimal.Decimal {
	switch clientType {
	case enums.ClientTypeWholesaler:
		return product.WholesalerPrice
	case enums.ClientTypeBigRetail:
		return product.BigRetailPrice
	case enums.ClientTypeSmallRetail:
		return product.SmallRetailPrice
	default:
		return nil
	}
}
