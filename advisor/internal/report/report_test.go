package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/cropadvisor/cropadvisor/advisor/internal/alerts"
	"github.com/cropadvisor/cropadvisor/advisor/internal/compute"
	"github.com/cropadvisor/cropadvisor/advisor/internal/croptable"
	"github.com/cropadvisor/cropadvisor/pkg/types"
)

var sample = types.Conditions{Temperature: 22, Humidity: 65, Rainfall: 60, PH: 6.5, N: 110, P: 70, K: 60}

func sampleResult(t *testing.T) *types.Result {
	t.Helper()
	tbl, err := croptable.Default()
	if err != nil {
		t.Fatal(err)
	}
	res, err := compute.NewRecommender(tbl).Recommend(sample)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestText(t *testing.T) {
	out := Text(sampleResult(t))

	for _, want := range []string{
		"- Nitrogen (N): 110\n",
		"- Temperature: 22°C\n",
		"- Rainfall: 60cm\n",
		"Recommended Crop: Maize (highly suitable)\n",
		"Top 3 Recommendations:\n",
		"1. Maize (Confidence: 100.0%)\n",
		"2. Cotton (Confidence: 92.7%)\n",
		"3. Wheat (Confidence: 90.9%)\n",
		"Optimal conditions for Maize:\n",
		"- Temperature range: 21.0-27.0°C\n",
		"- pH range: 6.0-7.5\n",
		"- N/P/K: 100-150 / 60-100 / 40-80 kg/ha\n",
		"Fielding:\n- Land preparation: ",
		"Maintenance:\n",
		compute.Note,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Text() missing %q\n---\n%s", want, out)
		}
	}

	// Guidance keeps table order.
	if strings.Index(out, "Land preparation") > strings.Index(out, "- Planting:") {
		t.Error("fielding topics out of order")
	}
}

func TestText_Nil(t *testing.T) {
	if got := Text(nil); got != "" {
		t.Errorf("Text(nil) = %q", got)
	}
}

func TestNewEnvelope(t *testing.T) {
	res := sampleResult(t)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("EAT", 3*3600))
	env := NewEnvelope(res, now)

	if _, err := uuid.Parse(env.ID); err != nil {
		t.Errorf("ID %q is not a uuid: %v", env.ID, err)
	}
	if !env.GeneratedAt.Equal(now) || env.GeneratedAt.Location() != time.UTC {
		t.Errorf("GeneratedAt = %v, want %v in UTC", env.GeneratedAt, now)
	}
	if env.Rating != compute.RatingHighlySuitable {
		t.Errorf("Rating = %q", env.Rating)
	}
	if other := NewEnvelope(res, now); other.ID == env.ID {
		t.Error("envelope ids should be unique")
	}
}

func TestWrite_JSON(t *testing.T) {
	env := NewEnvelope(sampleResult(t), time.Now())
	var buf bytes.Buffer
	if err := Write(&buf, FormatJSON, env); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	var decoded struct {
		ID     string `json:"id"`
		Result struct {
			RecommendedCrop    string                 `json:"recommended_crop"`
			TopRecommendations []types.Recommendation `json:"top_recommendations"`
			CropDetails        struct {
				ID               string      `json:"id"`
				TemperatureRange types.Range `json:"temperature_range"`
			} `json:"crop_details"`
			OfflineMode bool `json:"offline_mode"`
		} `json:"result"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if decoded.ID != env.ID {
		t.Errorf("id = %q, want %q", decoded.ID, env.ID)
	}
	r := decoded.Result
	if r.RecommendedCrop != "maize" || len(r.TopRecommendations) != 3 || !r.OfflineMode {
		t.Errorf("decoded result = %+v", r)
	}
	if r.CropDetails.ID != "maize" || r.CropDetails.TemperatureRange != (types.Range{Min: 21, Max: 27}) {
		t.Errorf("crop_details = %+v", r.CropDetails)
	}
	if !strings.Contains(buf.String(), `"temperature_range": [`) {
		t.Error("ranges should encode as arrays")
	}
	if strings.Contains(buf.String(), `"alerts"`) {
		t.Error("alerts should be omitted when there are none")
	}

	var full Envelope
	if err := json.Unmarshal(buf.Bytes(), &full); err != nil {
		t.Fatalf("output does not decode into Envelope: %v", err)
	}
	if got := full.Result.DetailedGuidance.Fielding; len(got) == 0 || got[0].Name != env.Result.DetailedGuidance.Fielding[0].Name {
		t.Errorf("fielding guidance after decode = %+v", got)
	}
}

func TestWrite_YAML(t *testing.T) {
	env := NewEnvelope(sampleResult(t), time.Now())
	var buf bytes.Buffer
	if err := Write(&buf, FormatYAML, env); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"recommended_crop: maize", "temperature: [21, 27]", "offline_mode: true"} {
		if !strings.Contains(out, want) {
			t.Errorf("YAML missing %q", want)
		}
	}

	var decoded struct {
		Result types.Result `yaml:"result"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if decoded.Result.CropDetails.Fielding[0].Name != "land_preparation" {
		t.Errorf("guidance order lost: %+v", decoded.Result.CropDetails.Fielding)
	}
}

func TestWrite_Text(t *testing.T) {
	res := sampleResult(t)
	var buf bytes.Buffer
	if err := Write(&buf, FormatText, NewEnvelope(res, time.Now())); err != nil {
		t.Fatal(err)
	}
	if buf.String() != Text(res) {
		t.Error("text output should match Text()")
	}
}

func TestWrite_Alerts(t *testing.T) {
	fired := time.Date(2024, 5, 1, 6, 0, 0, 0, time.UTC)
	resolved := fired.Add(time.Minute)
	env := NewEnvelope(sampleResult(t), fired)
	env.Alerts = []alerts.Alert{
		{RuleName: "wet", Severity: "info", State: alerts.StateResolved, Value: 91, FiredAt: fired, ResolvedAt: &resolved},
		{RuleName: "low-confidence", Severity: "warning", State: alerts.StateFiring, Value: 0.55, FiredAt: fired},
	}

	var buf bytes.Buffer
	if err := Write(&buf, FormatText, env); err != nil {
		t.Fatal(err)
	}
	want := "\nAlerts:\n" +
		"- [warning] low-confidence firing (value 0.55, since 2024-05-01T06:00:00Z)\n" +
		"- [info] wet resolved (value 91.00, since 2024-05-01T06:00:00Z)\n"
	if !strings.HasSuffix(buf.String(), want) {
		t.Errorf("text output should end with the alerts section:\n%s", buf.String())
	}

	buf.Reset()
	if err := Write(&buf, FormatJSON, env); err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		Alerts []alerts.Alert `json:"alerts"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded.Alerts) != 2 || decoded.Alerts[1].RuleName != "low-confidence" {
		t.Errorf("json alerts = %+v", decoded.Alerts)
	}

	if AlertsText(nil) != "" {
		t.Error("AlertsText(nil) should be empty")
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, "xml", Envelope{})
	if err == nil || !strings.Contains(err.Error(), "unsupported format") {
		t.Errorf("err = %v", err)
	}
	if err := WriteValue(&bytes.Buffer{}, FormatText, 1); err == nil {
		t.Error("WriteValue(text) should fail")
	}
}

func TestWriteBreakdown(t *testing.T) {
	tbl, _ := croptable.Default()
	out, ok := compute.NewScorer(tbl).Breakdown("apple", sample)
	if !ok {
		t.Fatal("apple missing")
	}
	var buf bytes.Buffer
	if err := WriteBreakdown(&buf, "apple", out); err != nil {
		t.Fatal(err)
	}
	s := buf.String()
	if !strings.HasPrefix(s, "Apple: 67.3% (suitable)\n") {
		t.Errorf("header = %q", strings.SplitN(s, "\n", 2)[0])
	}
	// rainfall, nitrogen and potassium are out of range for apple.
	if n := strings.Count(s, "  *"); n != 3 {
		t.Errorf("out-of-range marks = %d, want 3\n%s", n, s)
	}
}

func TestWriteGuidance(t *testing.T) {
	var buf bytes.Buffer
	g := types.Guidance{{Name: "pest_control", Text: "Scout weekly."}}
	if err := WriteGuidance(&buf, "Maintenance", g); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "Maintenance:\n- Pest control: Scout weekly.\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLabels(t *testing.T) {
	if got := Title("rice"); got != "Rice" {
		t.Errorf("Title = %q", got)
	}
	if got := Title(""); got != "" {
		t.Errorf("Title(\"\") = %q", got)
	}
	if got := TopicLabel("land_preparation"); got != "Land preparation" {
		t.Errorf("TopicLabel = %q", got)
	}
}
