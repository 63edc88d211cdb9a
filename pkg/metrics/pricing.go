package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PricingMetrics records how unit prices get resolved.
type PricingMetrics struct {
	resolutions *prometheus.CounterVec
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter
}

// NewPricingMetrics registers the pricing counters on the provided registerer.
func NewPricingMetrics(reg prometheus.Registerer) *PricingMetrics {
	if reg == nil {
		return &PricingMetrics{}
	}
	resolutions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "price_resolutions_total",
		Help: "Unit price resolutions by winning tier.",
	}, []string{"tier"})
	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "price_cache_hits_total",
		Help: "Price cache hits.",
	})
	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "price_cache_misses_total",
		Help: "Price cache misses.",
	})
	reg.MustRegister(resolutions, cacheHits, cacheMisses)
	return &PricingMetrics{
		resolutions: resolutions,
		cacheHits:   cacheHits,
		cacheMisses: cacheMisses,
	}
}

// IncResolution counts a resolution won by the named tier.
func (p *PricingMetrics) IncResolution(tier string) {
	if p == nil || p.resolutions == nil {
		return
	}
	if tier == "" {
		tier = "unknown"
	}
	p.resolutions.WithLabelValues(tier).Inc()
}

// IncCacheHit counts a price served from cache.
func (p *PricingMetrics) IncCacheHit() {
	if p == nil || p.cacheHits == nil {
		return
	}
	p.cacheHits.Inc()
}

// IncCacheMiss counts a price that had to be computed.
func (p *PricingMetrics) IncCacheMiss() {
	if p == nil || p.cacheMisses == nil {
		return
	}
	p.cacheMisses.Inc()
}
