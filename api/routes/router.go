package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xeroscommerce/pricing-service/api/controllers"
	pricingcontrollers "github.com/xeroscommerce/pricing-service/api/controllers/pricing"
	"github.com/xeroscommerce/pricing-service/api/middleware"
	cartsvc "github.com/xeroscommerce/pricing-service/internal/cart"
	pricingsvc "github.com/xeroscommerce/pricing-service/internal/pricing"
	"github.com/xeroscommerce/pricing-service/pkg/config"
	"github.com/xeroscommerce/pricing-service/pkg/logger"
)

// NewRouter assembles the HTTP surface: health probes, metrics, and the
// pricing endpoints.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	registry *prometheus.Registry,
	pingers map[string]controllers.Pinger,
	pricingService pricingsvc.Service,
	cartService cartsvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, pingers))
	})

	if registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/pricing", func(r chi.Router) {
		r.Route("/products/{productID}", func(r chi.Router) {
			r.Get("/unit", pricingcontrollers.UnitPrice(pricingService, logg))
			r.Get("/preview", pricingcontrollers.PreviewPrice(pricingService, logg))
		})
		r.Post("/cart/quote", pricingcontrollers.CartQuote(cartService, logg))
	})

	return r
}
