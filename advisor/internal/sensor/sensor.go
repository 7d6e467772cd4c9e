package sensor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cropadvisor/cropadvisor/pkg/types"
)

// Observation file formats.
const (
	FormatYAML       = "yaml"
	FormatJSON       = "json"
	FormatPrometheus = "prometheus"
)

// Formats lists the accepted values for Options.Format.
var Formats = []string{FormatYAML, FormatJSON, FormatPrometheus}

// maxFileSize bounds the observation files Read accepts.
const maxFileSize = 1 << 20

// ErrMissingFactor is returned when an observation omits one of the seven
// factors. A missing factor is never read as zero.
var ErrMissingFactor = errors.New("sensor: missing factor")

// Options control how an observation file is read.
type Options struct {
	// Format is one of Formats. Empty selects by file extension:
	// .json is JSON, .prom and .txt are Prometheus text, anything else YAML.
	Format string

	// Metrics maps each factor to the Prometheus metric that carries it.
	// Only used for FormatPrometheus. Nil means DefaultMetrics.
	Metrics Metrics
}

// Read loads one set of observed conditions from path.
func Read(path string, opts Options) (types.Conditions, error) {
	f, err := os.Open(path)
	if err != nil {
		return types.Conditions{}, fmt.Errorf("sensor: open: %w", err)
	}
	defer f.Close()

	format := opts.Format
	if format == "" {
		format = FormatFor(path)
	}
	c, err := Parse(io.LimitReader(f, maxFileSize), format, opts.Metrics)
	if err != nil {
		return types.Conditions{}, fmt.Errorf("%w (file %s)", err, path)
	}
	return c, nil
}

// FormatFor guesses the observation format from a file name.
func FormatFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".prom", ".txt":
		return FormatPrometheus
	default:
		return FormatYAML
	}
}

// Parse decodes observed conditions from r.
func Parse(r io.Reader, format string, metrics Metrics) (types.Conditions, error) {
	switch format {
	case FormatYAML, FormatJSON:
		return parseDocument(r)
	case FormatPrometheus:
		if metrics == nil {
			metrics = DefaultMetrics()
		}
		return parseExposition(r, metrics)
	default:
		return types.Conditions{}, fmt.Errorf("sensor: unsupported format %q (use %s)",
			format, strings.Join(Formats, ", "))
	}
}

// documentKeys lists the accepted keys per factor. The first key is the one
// the recommendation request uses; the rest are long-form aliases.
var documentKeys = map[types.Factor][]string{
	types.FactorTemperature: {"temperature"},
	types.FactorHumidity:    {"humidity"},
	types.FactorRainfall:    {"rainfall"},
	types.FactorPH:          {"ph"},
	types.FactorNitrogen:    {"N", "nitrogen"},
	types.FactorPhosphorus:  {"P", "phosphorus"},
	types.FactorPotassium:   {"K", "potassium"},
}

// parseDocument decodes a flat YAML or JSON mapping. JSON is valid YAML, so
// one decoder serves both. Keys other than the factors (station ids,
// timestamps, notes) are ignored; factor values must be numbers.
func parseDocument(r io.Reader) (types.Conditions, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return types.Conditions{}, fmt.Errorf("sensor: read: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return types.Conditions{}, fmt.Errorf("%w: empty document", ErrMissingFactor)
	}

	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return types.Conditions{}, fmt.Errorf("sensor: decode: %w", err)
	}

	var c types.Conditions
	for _, f := range types.Factors {
		key, node, ok := lookupKey(raw, documentKeys[f])
		if !ok {
			return types.Conditions{}, fmt.Errorf("%w: %s", ErrMissingFactor, documentKeys[f][0])
		}
		var v float64
		if err := node.Decode(&v); err != nil {
			return types.Conditions{}, fmt.Errorf("sensor: %s: %w", key, err)
		}
		c.Set(f, v)
	}
	return c, nil
}

func lookupKey(raw map[string]yaml.Node, keys []string) (string, yaml.Node, bool) {
	for _, k := range keys {
		if n, ok := raw[k]; ok {
			return k, n, true
		}
	}
	return "", yaml.Node{}, false
}
