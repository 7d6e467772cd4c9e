package sensor

import (
	"fmt"
	"io"
	"log/slog"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/cropadvisor/cropadvisor/pkg/types"
)

// Metrics maps a factor to the name of the metric family that reports it.
type Metrics map[types.Factor]string

// Default metric names for a field station textfile.
const (
	MetricTemperature = "air_temperature_celsius"
	MetricHumidity    = "relative_humidity_percent"
	MetricRainfall    = "rainfall_centimeters"
	MetricPH          = "soil_ph"
	MetricNitrogen    = "soil_nitrogen_kg_per_hectare"
	MetricPhosphorus  = "soil_phosphorus_kg_per_hectare"
	MetricPotassium   = "soil_potassium_kg_per_hectare"
)

// DefaultMetrics returns a fresh copy of the default factor to metric mapping.
func DefaultMetrics() Metrics {
	return Metrics{
		types.FactorTemperature: MetricTemperature,
		types.FactorHumidity:    MetricHumidity,
		types.FactorRainfall:    MetricRainfall,
		types.FactorPH:          MetricPH,
		types.FactorNitrogen:    MetricNitrogen,
		types.FactorPhosphorus:  MetricPhosphorus,
		types.FactorPotassium:   MetricPotassium,
	}
}

// parseExposition reads a Prometheus text exposition, such as a
// node_exporter textfile written by a weather station or soil probe.
//
// A family with several series (one per probe) contributes the mean of its
// samples.
func parseExposition(r io.Reader, metrics Metrics) (types.Conditions, error) {
	var parser expfmt.TextParser
	mfs, err := parser.TextToMetricFamilies(r)
	if err != nil && len(mfs) == 0 {
		return types.Conditions{}, fmt.Errorf("sensor: parse prometheus text: %w", err)
	}
	if err != nil {
		// Partial parse (trailing garbage, duplicate HELP). Keep what we have.
		slog.Debug("sensor: partial prometheus parse", "err", err)
	}

	var c types.Conditions
	for _, f := range types.Factors {
		name := metrics[f]
		if name == "" {
			return types.Conditions{}, fmt.Errorf("sensor: no metric configured for %s", f)
		}
		v, ok := meanFamily(mfs[name])
		if !ok {
			return types.Conditions{}, fmt.Errorf("%w: %s (metric %s)", ErrMissingFactor, f, name)
		}
		c.Set(f, v)
	}
	return c, nil
}

// meanFamily averages the gauge, counter, or untyped samples of mf.
// It reports false if mf is nil or holds no usable sample.
func meanFamily(mf *dto.MetricFamily) (float64, bool) {
	if mf == nil {
		return 0, false
	}
	var total float64
	var n int
	for _, m := range mf.GetMetric() {
		switch {
		case m.Gauge != nil:
			total += m.Gauge.GetValue()
		case m.Untyped != nil:
			total += m.Untyped.GetValue()
		case m.Counter != nil:
			total += m.Counter.GetValue()
		default:
			continue
		}
		n++
	}
	if n == 0 {
		return 0, false
	}
	return total / float64(n), true
}
