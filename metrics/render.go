package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	renderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cartaz",
			Subsystem: "render",
			Name:      "duration_seconds",
			Help:      "Poster render latency in seconds.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2, 5, 10, 15},
		},
		[]string{"template", "outcome"},
	)

	renderTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cartaz",
			Subsystem: "render",
			Name:      "total",
			Help:      "Poster renders by template and outcome.",
		},
		[]string{"template", "outcome"},
	)

	imageFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cartaz",
			Subsystem: "render",
			Name:      "image_fallbacks_total",
			Help:      "Illustrations replaced by the placeholder.",
		},
		[]string{"template", "reason"},
	)

	staleRenders = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "cartaz",
			Subsystem: "render",
			Name:      "superseded_total",
			Help:      "Render results discarded because a newer request arrived.",
		},
	)
)

// RenderObserver feeds engine outcomes into the render metrics.
type RenderObserver struct{}

func (RenderObserver) RenderDone(template string, elapsed time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	renderDuration.WithLabelValues(template, outcome).Observe(elapsed.Seconds())
	renderTotal.WithLabelValues(template, outcome).Inc()
}

func (RenderObserver) ImageFallback(template, reason string) {
	imageFallbacks.WithLabelValues(template, reason).Inc()
}

// Superseded counts one discarded render; pass it as a pipeline hook.
func Superseded() { staleRenders.Inc() }
