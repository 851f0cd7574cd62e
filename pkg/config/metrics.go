package config

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// LoadMetrics records how a component's configuration was loaded.
// Metric names are prefixed with the component, e.g. worker_config_fallbacks_total.
// They register with the default registry, so create one per component.
type LoadMetrics struct {
	LoadTimestamp         prometheus.Gauge
	ValidationErrorsTotal *prometheus.CounterVec
	FallbacksTotal        *prometheus.CounterVec
	FallbackActive        prometheus.Gauge
}

// NewLoadMetrics registers the configuration metrics for component.
func NewLoadMetrics(component string) *LoadMetrics {
	return newLoadMetrics(promauto.With(prometheus.DefaultRegisterer), component)
}

func newLoadMetrics(f promauto.Factory, component string) *LoadMetrics {
	return &LoadMetrics{
		LoadTimestamp: f.NewGauge(prometheus.GaugeOpts{
			Name: component + "_config_load_timestamp",
			Help: "Unix timestamp of the last " + component + " configuration load",
		}),
		ValidationErrorsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: component + "_config_validation_errors_total",
			Help: "Rejected " + component + " configuration values by field",
		}, []string{"field"}),
		FallbacksTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: component + "_config_fallbacks_total",
			Help: "Defaults applied to " + component + " configuration by field",
		}, []string{"field"}),
		FallbackActive: f.NewGauge(prometheus.GaugeOpts{
			Name: component + "_config_fallback_active",
			Help: "1 if any " + component + " configuration field is running on a fallback",
		}),
	}
}

// Observe records one field's load result.
func (m *LoadMetrics) Observe(field string, fallback bool) {
	if !fallback {
		return
	}
	m.ValidationErrorsTotal.WithLabelValues(field).Inc()
	m.FallbacksTotal.WithLabelValues(field).Inc()
}

// Loaded stamps the load time and whether any field fell back.
func (m *LoadMetrics) Loaded(anyFallback bool) {
	m.LoadTimestamp.SetToCurrentTime()
	if anyFallback {
		m.FallbackActive.Set(1)
	} else {
		m.FallbackActive.Set(0)
	}
}
