package exporter

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/cropadvisor/cropadvisor/pkg/types"
)

const namespace = "cropadvisor"

// Exporter publishes the latest evaluation as Prometheus metrics on a
// private registry. It is safe for concurrent use.
type Exporter struct {
	reg *prometheus.Registry

	// mu serialises Observe so the Reset/Set pairs below are never
	// interleaved by two evaluations.
	mu sync.Mutex

	Suitability    *prometheus.GaugeVec
	Recommended    *prometheus.GaugeVec
	Observed       *prometheus.GaugeVec
	Evaluations    prometheus.Counter
	LastEvaluation prometheus.Gauge
	AlertsFired    *prometheus.CounterVec
}

// New creates an exporter with its own registry and registers every metric.
func New() *Exporter {
	e := &Exporter{
		reg: prometheus.NewRegistry(),
		Suitability: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "suitability_score",
			Help:      "Suitability of the observed conditions for each crop, 0 to 1.",
		}, []string{"crop"}),
		Recommended: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "recommended",
			Help:      "1 for the crop recommended by the latest evaluation.",
		}, []string{"crop"}),
		Observed: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "observed_condition",
			Help:      "Observed value of each scored factor in the latest evaluation.",
		}, []string{"factor"}),
		Evaluations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Total recommendations computed.",
		}),
		LastEvaluation: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_evaluation_timestamp_seconds",
			Help:      "Unix time of the latest evaluation.",
		}),
		AlertsFired: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "alerts",
			Name:      "fired_total",
			Help:      "Total alert transitions to firing, by rule and severity.",
		}, []string{"rule", "severity"}),
	}

	e.reg.MustRegister(
		e.Suitability,
		e.Recommended,
		e.Observed,
		e.Evaluations,
		e.LastEvaluation,
		e.AlertsFired,
	)
	return e
}

// Registry returns the registry the metrics live on.
func (e *Exporter) Registry() *prometheus.Registry {
	return e.reg
}

// Observe records one evaluation. ranking should hold every crop in the
// table (Recommender.Rank); res supplies the recommended crop and the
// observed conditions. Series for crops no longer in the ranking are dropped.
func (e *Exporter) Observe(res *types.Result, ranking []types.Recommendation) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.Suitability.Reset()
	for _, r := range ranking {
		e.Suitability.WithLabelValues(r.Crop).Set(r.Confidence)
	}

	e.Recommended.Reset()
	if res != nil && res.RecommendedCrop != "" {
		e.Recommended.WithLabelValues(res.RecommendedCrop).Set(1)
	}

	if res != nil {
		for _, f := range types.Factors {
			e.Observed.WithLabelValues(string(f)).Set(res.InputConditions.Value(f))
		}
	}

	e.Evaluations.Inc()
	e.LastEvaluation.SetToCurrentTime()
}

// ObserveAlert counts one alert transition to firing.
func (e *Exporter) ObserveAlert(rule, severity string) {
	e.AlertsFired.WithLabelValues(rule, severity).Inc()
}

// WriteTextfile writes every metric to path in the text exposition format,
// for pickup by node_exporter's textfile collector. The file is replaced
// atomically.
func (e *Exporter) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, e.reg); err != nil {
		return fmt.Errorf("exporter: write textfile: %w", err)
	}
	slog.Debug("exporter: textfile written", "path", path)
	return nil
}
