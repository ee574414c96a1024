package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PointingCollector bundles Prometheus metrics for the pointing engine and
// provides a ready-to-serve /metrics handler.
type PointingCollector struct {
	gatherer prometheus.Gatherer

	// Queries counts pointing-engine operations, labeled by operation and
	// outcome ("ok" or a short error kind).
	Queries *prometheus.CounterVec

	// AlignmentResiduals observes the per-point residual separation of
	// each solve, in degrees.
	AlignmentResiduals prometheus.Histogram

	// CatalogObjects tracks the number of catalogued objects available to
	// the session.
	CatalogObjects prometheus.Gauge

	// ModelAligned is 1 while a pointing model is published, 0 otherwise.
	ModelAligned prometheus.Gauge
}

// NewPointingCollector registers the engine metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewPointingCollector(reg prometheus.Registerer) (*PointingCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	queries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pointing_operations_total",
		Help: "Total pointing-engine operations, labeled by operation and outcome.",
	}, []string{"operation", "outcome"})
	queries, err := registerCounterVec(reg, queries, "pointing_operations_total")
	if err != nil {
		return nil, err
	}

	residuals := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "alignment_residual_degrees",
		Help:    "Per-point alignment residual separation in degrees.",
		Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	})
	residuals, err = registerHistogram(reg, residuals, "alignment_residual_degrees")
	if err != nil {
		return nil, err
	}

	catalogObjects, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_objects",
		Help: "Number of catalogued objects available to the session.",
	}), "catalog_objects")
	if err != nil {
		return nil, err
	}

	aligned, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "pointing_model_aligned",
		Help: "1 while a pointing model is published, 0 while unaligned.",
	}), "pointing_model_aligned")
	if err != nil {
		return nil, err
	}

	return &PointingCollector{
		gatherer:           gatherer,
		Queries:            queries,
		AlignmentResiduals: residuals,
		CatalogObjects:     catalogObjects,
		ModelAligned:       aligned,
	}, nil
}

// RecordOperation counts one engine operation with its outcome. The
// collector tolerates a nil receiver so call sites need no guards.
func (c *PointingCollector) RecordOperation(operation, outcome string) {
	if c == nil || c.Queries == nil {
		return
	}
	c.Queries.WithLabelValues(operation, outcome).Inc()
}

// ObserveResidual records one per-point alignment residual.
func (c *PointingCollector) ObserveResidual(separationDeg float64) {
	if c == nil || c.AlignmentResiduals == nil {
		return
	}
	c.AlignmentResiduals.Observe(separationDeg)
}

// SetCatalogObjects updates the catalogue size gauge.
func (c *PointingCollector) SetCatalogObjects(n int) {
	if c == nil || c.CatalogObjects == nil {
		return
	}
	c.CatalogObjects.Set(float64(n))
}

// SetAligned updates the alignment-state gauge.
func (c *PointingCollector) SetAligned(aligned bool) {
	if c == nil || c.ModelAligned == nil {
		return
	}
	if aligned {
		c.ModelAligned.Set(1)
	} else {
		c.ModelAligned.Set(0)
	}
}

// Handler exposes a ready-to-use /metrics handler.
func (c *PointingCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, h prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return h, nil
}

func registerGauge(reg prometheus.Registerer, g prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(g); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return g, nil
}
