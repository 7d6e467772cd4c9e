package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/cropadvisor/cropadvisor/advisor/internal/alerts"
	"github.com/cropadvisor/cropadvisor/advisor/internal/compute"
	"github.com/cropadvisor/cropadvisor/pkg/types"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the accepted output formats.
var Formats = []string{FormatText, FormatJSON, FormatYAML}

// Envelope wraps one evaluation with an id and a timestamp, so that a
// report, its log lines and its exported metrics can be correlated.
type Envelope struct {
	ID          string        `json:"id" yaml:"id"`
	GeneratedAt time.Time     `json:"generated_at" yaml:"generated_at"`
	Rating      string        `json:"rating" yaml:"rating"`
	Result      *types.Result `json:"result" yaml:"result"`

	// Alerts holds the firing and recently resolved alerts at the time of
	// the evaluation. Only long-running modes fill it in.
	Alerts []alerts.Alert `json:"alerts,omitempty" yaml:"alerts,omitempty"`
}

// NewEnvelope stamps res with a fresh random id and now in UTC.
func NewEnvelope(res *types.Result, now time.Time) Envelope {
	env := Envelope{
		ID:          uuid.New().String(),
		GeneratedAt: now.UTC(),
		Result:      res,
	}
	if best, ok := res.Best(); ok {
		env.Rating = compute.Rate(best.Confidence)
	}
	return env
}

// Write renders env to w in the given format.
func Write(w io.Writer, format string, env Envelope) error {
	switch format {
	case FormatText:
		_, err := io.WriteString(w, Text(env.Result)+AlertsText(env.Alerts))
		return err
	case FormatJSON:
		return writeJSON(w, env)
	case FormatYAML:
		return writeYAML(w, env)
	default:
		return unsupported(format)
	}
}

// WriteValue renders any value as JSON or YAML. Text callers format their
// own output.
func WriteValue(w io.Writer, format string, v any) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, v)
	case FormatYAML:
		return writeYAML(w, v)
	default:
		return unsupported(format)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("report: encode json: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("report: encode yaml: %w", err)
	}
	return enc.Close()
}

func unsupported(format string) error {
	return fmt.Errorf("report: unsupported format %q (use %s)", format, strings.Join(Formats, ", "))
}
