package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/xeroscommerce/pricing-service/api/controllers"
	pricingsvc "github.com/xeroscommerce/pricing-service/internal/pricing"
	"github.com/xeroscommerce/pricing-service/pkg/config"
	"github.com/xeroscommerce/pricing-service/pkg/money"
	"github.com/xeroscommerce/pricing-service/pkg/types"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

type stubPricingService struct{}

func (stubPricingService) GetUnitPrice(context.Context, int64, *int64) (*pricingsvc.Quote, error) {
	return &pricingsvc.Quote{ProductID: 1, SKU: "SKU-1", UnitPrice: money.MustParse("84.00")}, nil
}

func (stubPricingService) PreviewPrice(context.Context, int64, *int64, int) (*pricingsvc.Quote, error) {
	return &pricingsvc.Quote{ProductID: 1, SKU: "SKU-1", UnitPrice: money.MustParse("72.00")}, nil
}

type stubCartService struct{}

func (stubCartService) PriceCart(context.Context, []types.CartLine, *int64) (*types.CartPricingResult, error) {
	return &types.CartPricingResult{Total: money.MustParse("0.00")}, nil
}

func testConfig() *config.Config {
	return &config.Config{App: config.AppConfig{Env: "test", Port: "8080"}}
}

func newTestRouter(pingers map[string]controllers.Pinger) http.Handler {
	return NewRouter(testConfig(), nil, prometheus.NewRegistry(), pingers, stubPricingService{}, stubCartService{})
}

func TestRouterHealthLive(t *testing.T) {
	router := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "test", rec.Header().Get("X-Xeros-Env"))
}

func TestRouterHealthReadyReportsDependencyFailure(t *testing.T) {
	router := newTestRouter(map[string]controllers.Pinger{
		"db":    stubPinger{},
		"redis": stubPinger{err: context.DeadlineExceeded},
	})

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRouterServesPricingRoutes(t *testing.T) {
	router := newTestRouter(nil)

	for _, path := range []string{
		"/api/v1/pricing/products/1/unit",
		"/api/v1/pricing/products/1/preview?quantity=2",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestRouterServesMetrics(t *testing.T) {
	router := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}
