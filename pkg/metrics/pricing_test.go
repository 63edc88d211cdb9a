package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gather(t *testing.T, reg *prometheus.Registry) map[string]*dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	byName := map[string]*dto.MetricFamily{}
	for _, family := range families {
		byName[family.GetName()] = family
	}
	return byName
}

func TestPricingMetricsCountByTier(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPricingMetrics(reg)

	m.IncResolution("promotion")
	m.IncResolution("promotion")
	m.IncResolution("public_price")
	m.IncResolution("")

	families := gather(t, reg)
	family, ok := families["price_resolutions_total"]
	require.True(t, ok)

	counts := map[string]float64{}
	for _, metric := range family.GetMetric() {
		for _, label := range metric.GetLabel() {
			if label.GetName() == "tier" {
				counts[label.GetValue()] = metric.GetCounter().GetValue()
			}
		}
	}
	assert.Equal(t, 2.0, counts["promotion"])
	assert.Equal(t, 1.0, counts["public_price"])
	assert.Equal(t, 1.0, counts["unknown"])
}

func TestPricingMetricsCacheCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPricingMetrics(reg)

	m.IncCacheHit()
	m.IncCacheMiss()
	m.IncCacheMiss()

	families := gather(t, reg)
	assert.Equal(t, 1.0, families["price_cache_hits_total"].GetMetric()[0].GetCounter().GetValue())
	assert.Equal(t, 2.0, families["price_cache_misses_total"].GetMetric()[0].GetCounter().GetValue())
}

func TestNilReceiverIsSafe(t *testing.T) {
	var m *PricingMetrics
	m.IncResolution("promotion")
	m.IncCacheHit()
	m.IncCacheMiss()

	unregistered := NewPricingMetrics(nil)
	unregistered.IncResolution("b2b_grid")
}
