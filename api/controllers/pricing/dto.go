package pricing

import (
	pricingsvc "github.com/xeroscommerce/pricing-service/internal/pricing"
	"github.com/xeroscommerce/pricing-service/pkg/types"
)

// CartQuoteRequest is the batch pricing payload.
type CartQuoteRequest struct {
	CustomerID *int64          `json:"customer_id,omitempty" validate:"omitempty,gt=0"`
	Lines      []CartQuoteLine `json:"lines" validate:"required,min=1,dive"`
}

// CartQuoteLine describes a requested product/quantity tuple.
type CartQuoteLine struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

func (r CartQuoteRequest) toCartLines() []types.CartLine {
	lines := make([]types.CartLine, 0, len(r.Lines))
	for _, line := range r.Lines {
		lines = append(lines, types.CartLine{ProductID: line.ProductID, Quantity: line.Quantity})
	}
	return lines
}

// UnitPriceResponse reports one resolved unit price.
type UnitPriceResponse struct {
	ProductID int64  `json:"product_id"`
	SKU       string `json:"sku"`
	UnitPrice string `json:"unit_price"`
}

// PreviewResponse reports a quantity-aware preview price.
type PreviewResponse struct {
	ProductID int64  `json:"product_id"`
	SKU       string `json:"sku"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

func newUnitPriceResponse(quote *pricingsvc.Quote) UnitPriceResponse {
	return UnitPriceResponse{
		ProductID: quote.ProductID,
		SKU:       quote.SKU,
		UnitPrice: quote.UnitPrice.StringFixed(2),
	}
}

func newPreviewResponse(quote *pricingsvc.Quote, quantity int) PreviewResponse {
	return PreviewResponse{
		ProductID: quote.ProductID,
		SKU:       quote.SKU,
		Quantity:  quantity,
		UnitPrice: quote.UnitPrice.StringFixed(2),
	}
}

// CartQuoteLineResponse is one priced cart line.
type CartQuoteLineResponse struct {
	ProductID int64  `json:"product_id"`
	SKU       string `json:"sku"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

// CartQuoteResponse aggregates a fully priced cart.
type CartQuoteResponse struct {
	Lines []CartQuoteLineResponse `json:"lines"`
	Total string                  `json:"total"`
}

func newCartQuoteResponse(result *types.CartPricingResult) CartQuoteResponse {
	lines := make([]CartQuoteLineResponse, 0, len(result.Lines))
	for _, line := range result.Lines {
		lines = append(lines, CartQuoteLineResponse{
			ProductID: line.ProductID,
			SKU:       line.SKU,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice.StringFixed(2),
			LineTotal: line.LineTotal.StringFixed(2),
		})
	}
	return CartQuoteResponse{Lines: lines, Total: result.Total.StringFixed(2)}
}
