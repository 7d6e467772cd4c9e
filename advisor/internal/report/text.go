package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cropadvisor/cropadvisor/advisor/internal/alerts"
	"github.com/cropadvisor/cropadvisor/advisor/internal/compute"
	"github.com/cropadvisor/cropadvisor/pkg/types"
)

// Text renders a recommendation for a terminal: the echoed conditions, the
// recommended crop with its rating, the numbered shortlist with percentage
// confidences, then the crop's optimal ranges and guidance.
func Text(res *types.Result) string {
	if res == nil {
		return ""
	}
	var b strings.Builder
	in := res.InputConditions

	b.WriteString("Based on your soil and climate conditions:\n")
	fmt.Fprintf(&b, "- Nitrogen (N): %g\n", in.N)
	fmt.Fprintf(&b, "- Phosphorus (P): %g\n", in.P)
	fmt.Fprintf(&b, "- Potassium (K): %g\n", in.K)
	fmt.Fprintf(&b, "- Temperature: %g°C\n", in.Temperature)
	fmt.Fprintf(&b, "- Humidity: %g%%\n", in.Humidity)
	fmt.Fprintf(&b, "- pH: %g\n", in.PH)
	fmt.Fprintf(&b, "- Rainfall: %gcm\n", in.Rainfall)

	name := cropName(res.CropDetails.Name, res.RecommendedCrop)
	rating := ""
	if best, ok := res.Best(); ok {
		rating = " (" + strings.ReplaceAll(compute.Rate(best.Confidence), "_", " ") + ")"
	}
	fmt.Fprintf(&b, "\nRecommended Crop: %s%s\n", name, rating)

	fmt.Fprintf(&b, "\nTop %d Recommendations:\n", len(res.TopRecommendations))
	for i, r := range res.TopRecommendations {
		fmt.Fprintf(&b, "%d. %s (Confidence: %.1f%%)\n", i+1, Title(r.Crop), r.Confidence*100)
	}

	o := res.CropDetails.Optimal
	fmt.Fprintf(&b, "\nOptimal conditions for %s:\n", name)
	fmt.Fprintf(&b, "- Temperature range: %.1f-%.1f°C\n", o.Temperature.Min, o.Temperature.Max)
	fmt.Fprintf(&b, "- Humidity range: %.1f-%.1f%%\n", o.Humidity.Min, o.Humidity.Max)
	fmt.Fprintf(&b, "- pH range: %.1f-%.1f\n", o.PH.Min, o.PH.Max)
	fmt.Fprintf(&b, "- Rainfall range: %.1f-%.1fcm\n", o.Rainfall.Min, o.Rainfall.Max)
	fmt.Fprintf(&b, "- N/P/K: %s / %s / %s kg/ha\n", o.Nitrogen, o.Phosphorus, o.Potassium)

	if d := res.CropDetails.Description; d != "" {
		fmt.Fprintf(&b, "\n%s\n", d)
	}

	g := res.DetailedGuidance
	writeGuidance(&b, "Fielding", g.Fielding)
	writeGuidance(&b, "Management", g.Management)
	writeGuidance(&b, "Maintenance", g.Maintenance)

	if res.Note != "" {
		fmt.Fprintf(&b, "\n%s\n", res.Note)
	}
	return b.String()
}

func writeGuidance(b *strings.Builder, heading string, g types.Guidance) {
	if len(g) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s:\n", heading)
	for _, t := range g {
		fmt.Fprintf(b, "- %s: %s\n", TopicLabel(t.Name), t.Text)
	}
}

// WriteGuidance prints one guidance group as a bulleted list.
func WriteGuidance(w io.Writer, heading string, g types.Guidance) error {
	var b strings.Builder
	writeGuidance(&b, heading, g)
	_, err := io.WriteString(w, strings.TrimPrefix(b.String(), "\n"))
	return err
}

// AlertsText lists alerts one per line, firing before resolved. It returns
// "" for no alerts.
func AlertsText(list []alerts.Alert) string {
	if len(list) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\nAlerts:\n")
	for _, state := range []string{alerts.StateFiring, alerts.StateResolved} {
		for _, a := range list {
			if a.State != state {
				continue
			}
			fmt.Fprintf(&b, "- [%s] %s %s (value %.2f, since %s)\n",
				a.Severity, a.RuleName, a.State, a.Value, a.FiredAt.UTC().Format(time.RFC3339))
		}
	}
	return b.String()
}

// WriteBreakdown prints the per-factor contributions to one crop's score.
func WriteBreakdown(w io.Writer, crop string, out compute.Output) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %.1f%% (%s)\n\n", Title(crop), out.Score*100, out.Rating)
	fmt.Fprintf(&b, "%-12s %10s %14s %7s %7s\n", "FACTOR", "OBSERVED", "OPTIMAL", "CREDIT", "WEIGHT")
	for _, fs := range out.Factors {
		mark := ""
		if !fs.InRange {
			mark = "  *"
		}
		fmt.Fprintf(&b, "%-12s %10g %14s %7.3f %7.1f%s\n",
			fs.Factor, fs.Observed, fs.Optimal, fs.Credit, fs.Weight, mark)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Title upper-cases the first letter of an id: "rice" becomes "Rice".
func Title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// TopicLabel turns a guidance key into a label: "land_preparation" becomes
// "Land preparation".
func TopicLabel(s string) string {
	return Title(strings.ReplaceAll(s, "_", " "))
}

func cropName(name, id string) string {
	if name != "" {
		return name
	}
	return Title(id)
}
