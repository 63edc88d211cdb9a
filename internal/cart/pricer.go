package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/xeroscommerce/pricing-service/internal/pricing"
	pkgerrors "github.com/xeroscommerce/pricing-service/pkg/errors"
	"github.com/xeroscommerce/pricing-service/pkg/money"
	"github.com/xeroscommerce/pricing-service/pkg/types"
)

// ErrEmptyCart signals batch pricing invoked with zero lines. An empty cart
// is not a zero-total cart.
var ErrEmptyCart = errors.New("cart has no lines")

type unitPricer interface {
	GetUnitPrice(ctx context.Context, productID int64, customerID *int64) (*pricing.Quote, error)
}

// Service prices a whole cart through the unit-price engine.
type Service interface {
	PriceCart(ctx context.Context, lines []types.CartLine, customerID *int64) (*types.CartPricingResult, error)
}

type service struct {
	pricer unitPricer
}

// NewService builds the batch cart pricer.
func NewService(pricer unitPricer) (Service, error) {
	if pricer == nil {
		return nil, fmt.Errorf("unit pricer required")
	}
	return &service{pricer: pricer}, nil
}

// PriceCart resolves every line and aggregates the grand total. Any line
// failure aborts the whole batch; there is no partial cart pricing.
func (s *service) PriceCart(ctx context.Context, lines []types.CartLine, customerID *int64) (*types.CartPricingResult, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	result := &types.CartPricingResult{
		Lines: make([]types.PricedLine, 0, len(lines)),
		Total: decimal.Zero,
	}

	for i, line := range lines {
		if line.Quantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("line %d: quantity must be at least 1", i))
		}

		quote, err := s.pricer.GetUnitPrice(ctx, line.ProductID, customerID)
		if err != nil {
			return nil, err
		}

		lineTotal := money.Multiply(quote.UnitPrice, decimal.NewFromInt(int64(line.Quantity)))
		result.Lines = append(result.Lines, types.PricedLine{
			ProductID: quote.ProductID,
			SKU:       quote.SKU,
			Quantity:  line.Quantity,
			UnitPrice: quote.UnitPrice,
			LineTotal: lineTotal,
		})
		result.Total = money.Quantize(result.Total.Add(lineTotal))
	}

	return result, nil
}
