package pricing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/xeroscommerce/pricing-service/pkg/errors"
	"github.com/xeroscommerce/pricing-service/pkg/logger"
	"github.com/xeroscommerce/pricing-service/pkg/metrics"
	"github.com/xeroscommerce/pricing-service/pkg/types"
)

type productLoader interface {
	GetSnapshot(ctx context.Context, id int64) (*types.ProductSnapshot, error)
}

type customerLoader interface {
	GetSnapshot(ctx context.Context, id int64) (*types.CustomerSnapshot, error)
}

type promotionFinder interface {
	FindApplicable(ctx context.Context, product *types.ProductSnapshot, customer *types.CustomerSnapshot) (*types.PromotionItem, error)
}

type priceCache interface {
	GetOrCompute(ctx context.Context, customerKey string, productID int64, compute func(context.Context) (decimal.Decimal, error)) (decimal.Decimal, error)
}

// Quote is a resolved unit price for a product/customer pair.
type Quote struct {
	ProductID int64           `json:"product_id"`
	SKU       string          `json:"sku"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Service exposes the two pricing entry points. GetUnitPrice is the
// cache-wrapped per-unit resolution including catalog promotions.
// PreviewPrice is the quantity-aware path; it never consults catalog
// promotions and pipes the base resolution through the discount rules.
type Service interface {
	GetUnitPrice(ctx context.Context, productID int64, customerID *int64) (*Quote, error)
	PreviewPrice(ctx context.Context, productID int64, customerID *int64, quantity int) (*Quote, error)
}

type service struct {
	products  productLoader
	customers customerLoader
	promos    promotionFinder
	engine    *Engine
	discounts DiscountConfig
	cache     priceCache
	metrics   *metrics.PricingMetrics
	logg      *logger.Logger
}

// NewService builds the pricing service. The cache and metrics are optional;
// everything else is required.
func NewService(
	products productLoader,
	customers customerLoader,
	promos promotionFinder,
	engine *Engine,
	discounts DiscountConfig,
	cache priceCache,
	m *metrics.PricingMetrics,
	logg *logger.Logger,
) (Service, error) {
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if customers == nil {
		return nil, fmt.Errorf("customer loader required")
	}
	if promos == nil {
		return nil, fmt.Errorf("promotion finder required")
	}
	if engine == nil {
		return nil, fmt.Errorf("engine required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		products:  products,
		customers: customers,
		promos:    promos,
		engine:    engine,
		discounts: discounts,
		cache:     cache,
		metrics:   m,
		logg:      logg,
	}, nil
}

// GetUnitPrice resolves the unit price through the full tier order, wrapped
// by the price cache when one is configured.
func (s *service) GetUnitPrice(ctx context.Context, productID int64, customerID *int64) (*Quote, error) {
	product, customer, err := s.loadSnapshots(ctx, productID, customerID)
	if err != nil {
		return nil, err
	}

	compute := func(ctx context.Context) (decimal.Decimal, error) {
		promo, err := s.promos.FindApplicable(ctx, product, customer)
		if err != nil {
			return decimal.Zero, err
		}
		price, tier, err := s.engine.DetermineUnitPrice(product, customer, promo)
		if err != nil {
			return decimal.Zero, err
		}
		s.metrics.IncResolution(tier)
		return price, nil
	}

	var price decimal.Decimal
	if s.cache != nil {
		price, err = s.cache.GetOrCompute(ctx, CustomerKey(customer), productID, compute)
	} else {
		price, err = compute(ctx)
	}
	if err != nil {
		return nil, err
	}

	return &Quote{ProductID: product.ID, SKU: product.SKU, UnitPrice: price}, nil
}

// PreviewPrice resolves the base unit price without catalog promotions, then
// applies the quantity, brand, and category discount rules. The promo-less
// base is intentional: catalog targeting is not available on this path. Not
// cached, since the result depends on quantity.
func (s *service) PreviewPrice(ctx context.Context, productID int64, customerID *int64, quantity int) (*Quote, error) {
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	product, customer, err := s.loadSnapshots(ctx, productID, customerID)
	if err != nil {
		return nil, err
	}

	base, tier, err := s.engine.DetermineUnitPrice(product, customer, nil)
	if err != nil {
		return nil, err
	}
	s.metrics.IncResolution(tier)

	price := s.discounts.Apply(base, product, quantity)
	return &Quote{ProductID: product.ID, SKU: product.SKU, UnitPrice: price}, nil
}

func (s *service) loadSnapshots(ctx context.Context, productID int64, customerID *int64) (*types.ProductSnapshot, *types.CustomerSnapshot, error) {
	product, err := s.products.GetSnapshot(ctx, productID)
	if err != nil {
		return nil, nil, err
	}

	var customer *types.CustomerSnapshot
	if customerID != nil {
		customer, err = s.customers.GetSnapshot(ctx, *customerID)
		if err != nil {
			return nil, nil, err
		}
	}
	return product, customer, nil
}

// CustomerKey derives the cache key segment for a customer snapshot. Anonymous
// visitors share one marker key.
func CustomerKey(customer *types.CustomerSnapshot) string {
	if customer == nil {
		return "anonymous"
	}
	return fmt.Sprintf("%d", customer.ID)
}
