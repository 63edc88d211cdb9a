package pricing

import (
	"context"
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/xeroscommerce/pricing-service/pkg/enums"
	pkgerrors "github.com/xeroscommerce/pricing-service/pkg/errors"
	"github.com/xeroscommerce/pricing-service/pkg/logger"
	"github.com/xeroscommerce/pricing-service/pkg/money"
	"github.com/xeroscommerce/pricing-service/pkg/types"
)

type stubProducts struct {
	snapshots map[int64]*types.ProductSnapshot
}

func (s *stubProducts) GetSnapshot(_ context.Context, id int64) (*types.ProductSnapshot, error) {
	if snap, ok := s.snapshots[id]; ok {
		return snap, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

type stubCustomers struct {
	snapshots map[int64]*types.CustomerSnapshot
}

func (s *stubCustomers) GetSnapshot(_ context.Context, id int64) (*types.CustomerSnapshot, error) {
	if snap, ok := s.snapshots[id]; ok {
		return snap, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
}

type stubPromos struct {
	item  *types.PromotionItem
	calls int
}

func (s *stubPromos) FindApplicable(_ context.Context, _ *types.ProductSnapshot, _ *types.CustomerSnapshot) (*types.PromotionItem, error) {
	s.calls++
	return s.item, nil
}

type passthroughCache struct {
	computes int
}

func (c *passthroughCache) GetOrCompute(ctx context.Context, _ string, _ int64, compute func(context.Context) (decimal.Decimal, error)) (decimal.Decimal, error) {
	c.computes++
	return compute(ctx)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "pricing-test", Output: io.Discard})
}

func newTestService(t *testing.T, promos *stubPromos, cache priceCache) Service {
	t.Helper()
	number := "CUST1"
	products := &stubProducts{snapshots: map[int64]*types.ProductSnapshot{
		1: gridProduct(),
	}}
	discounted := plainProduct("100.00")
	discounted.ID = 2
	discounted.SimpleDiscountPrice = decPtr("90.00")
	products.snapshots[2] = discounted

	customers := &stubCustomers{snapshots: map[int64]*types.CustomerSnapshot{
		10: {ID: 10, ClientType: enums.ClientTypeWholesaler, CustomerNumber: number, IsB2BVerified: false},
		11: {ID: 11, ClientType: enums.ClientTypeRegular},
	}}

	svc, err := NewService(
		products,
		customers,
		promos,
		testEngine(),
		defaultConfig(),
		cache,
		nil,
		testLogger(),
	)
	require.NoError(t, err)
	return svc
}

func int64Ptr(v int64) *int64 { return &v }

func TestGetUnitPrice_PromotionWins(t *testing.T) {
	promos := &stubPromos{item: &types.PromotionItem{ID: 1, ProductID: 1, PromoPrice: money.MustParse("68.00")}}
	svc := newTestService(t, promos, nil)

	quote, err := svc.GetUnitPrice(context.Background(), 1, int64Ptr(10))
	require.NoError(t, err)
	require.True(t, quote.UnitPrice.Equal(money.MustParse("68.00")))
	require.Equal(t, 1, promos.calls)
}

func TestGetUnitPrice_AnonymousGetsPublicPrice(t *testing.T) {
	svc := newTestService(t, &stubPromos{}, nil)

	quote, err := svc.GetUnitPrice(context.Background(), 2, nil)
	require.NoError(t, err)
	require.Equal(t, "SKU-1", quote.SKU)
	require.True(t, quote.UnitPrice.Equal(money.MustParse("90.00")))
}

func TestGetUnitPrice_CacheTransparency(t *testing.T) {
	promos := &stubPromos{}
	cached := newTestService(t, promos, &passthroughCache{})
	uncached := newTestService(t, promos, nil)

	withCache, err := cached.GetUnitPrice(context.Background(), 1, int64Ptr(10))
	require.NoError(t, err)
	withoutCache, err := uncached.GetUnitPrice(context.Background(), 1, int64Ptr(10))
	require.NoError(t, err)

	require.True(t, withCache.UnitPrice.Equal(withoutCache.UnitPrice))
	require.True(t, withCache.UnitPrice.Equal(money.MustParse("84.00")))
}

func TestGetUnitPrice_UnknownProduct(t *testing.T) {
	svc := newTestService(t, &stubPromos{}, nil)

	_, err := svc.GetUnitPrice(context.Background(), 404, nil)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestPreviewPrice_NeverConsultsPromotions(t *testing.T) {
	promos := &stubPromos{item: &types.PromotionItem{ID: 1, ProductID: 2, PromoPrice: money.MustParse("1.00")}}
	svc := newTestService(t, promos, nil)

	quote, err := svc.PreviewPrice(context.Background(), 2, int64Ptr(11), 1)
	require.NoError(t, err)
	require.True(t, quote.UnitPrice.Equal(money.MustParse("90.00")), "got %s", quote.UnitPrice)
	require.Zero(t, promos.calls)
}

func TestPreviewPrice_AppliesQuantityDiscountAndFloor(t *testing.T) {
	svc := newTestService(t, &stubPromos{}, nil)

	// qty 120: base 90.00, 20% tier -> 72.00, floor 70.00 not hit.
	quote, err := svc.PreviewPrice(context.Background(), 2, int64Ptr(11), 120)
	require.NoError(t, err)
	require.True(t, quote.UnitPrice.Equal(money.MustParse("72.00")), "got %s", quote.UnitPrice)
}

func TestPreviewPrice_RejectsNonPositiveQuantity(t *testing.T) {
	svc := newTestService(t, &stubPromos{}, nil)

	_, err := svc.PreviewPrice(context.Background(), 1, nil, 0)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
}
