package types

import (
	"encoding/json"
	"math"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestRange_Contains(t *testing.T) {
	r := Range{Min: 20, Max: 35}
	tests := []struct {
		v    float64
		want bool
	}{
		{20, true},
		{35, true},
		{27.5, true},
		{19.999, false},
		{35.001, false},
	}
	for _, tc := range tests {
		if got := r.Contains(tc.v); got != tc.want {
			t.Errorf("Contains(%v) = %v, want %v", tc.v, got, tc.want)
		}
	}
	if r.Midpoint() != 27.5 {
		t.Errorf("Midpoint() = %v, want 27.5", r.Midpoint())
	}
}

func TestRange_Validate(t *testing.T) {
	tests := []struct {
		name    string
		r       Range
		wantErr bool
	}{
		{"ordered", Range{1, 2}, false},
		{"degenerate", Range{3, 3}, false},
		{"reversed", Range{5, 4}, true},
		{"nan", Range{math.NaN(), 4}, true},
		{"inf", Range{0, math.Inf(1)}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.r.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() err = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestRange_YAML(t *testing.T) {
	var r Range
	if err := yaml.Unmarshal([]byte("[5.5, 7.0]"), &r); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if r.Min != 5.5 || r.Max != 7.0 {
		t.Errorf("got %+v", r)
	}

	if err := yaml.Unmarshal([]byte("[1, 2, 3]"), &r); err == nil {
		t.Error("expected error for three-element range")
	}

	out, err := yaml.Marshal(Range{Min: 20, Max: 35})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if strings.TrimSpace(string(out)) != "[20, 35]" {
		t.Errorf("Marshal = %q, want [20, 35]", out)
	}
}

func TestRange_JSON(t *testing.T) {
	b, err := json.Marshal(Range{Min: 6, Max: 7.5})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "[6,7.5]" {
		t.Errorf("Marshal = %s", b)
	}
	var r Range
	if err := json.Unmarshal([]byte("[80, 90]"), &r); err != nil {
		t.Fatal(err)
	}
	if r != (Range{80, 90}) {
		t.Errorf("Unmarshal = %+v", r)
	}
}

func TestGuidance_KeepsOrder(t *testing.T) {
	src := `
water: "Deep watering weekly."
nutrients: "Balanced NPK."
weeds: "Mulch."
`
	var g Guidance
	if err := yaml.Unmarshal([]byte(src), &g); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(g) != 3 {
		t.Fatalf("len = %d, want 3", len(g))
	}
	wantOrder := []string{"water", "nutrients", "weeds"}
	for i, name := range wantOrder {
		if g[i].Name != name {
			t.Errorf("g[%d].Name = %q, want %q", i, g[i].Name, name)
		}
	}
	if txt, ok := g.Get("nutrients"); !ok || txt != "Balanced NPK." {
		t.Errorf("Get(nutrients) = %q, %v", txt, ok)
	}
	if _, ok := g.Get("pruning"); ok {
		t.Error("Get(pruning) should miss")
	}

	b, err := json.Marshal(g)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"water":"Deep watering weekly.","nutrients":"Balanced NPK.","weeds":"Mulch."}`
	if string(b) != want {
		t.Errorf("JSON = %s, want %s", b, want)
	}
}

func TestGuidance_JSONRoundTrip(t *testing.T) {
	g := Guidance{
		{Name: "water", Text: "Keep 2-5 cm of standing water."},
		{Name: "nutrients", Text: "Split nitrogen into \"three\" doses."},
		{Name: "weeds", Text: "Weed at 20 and 40 days."},
	}
	b, err := json.Marshal(g)
	if err != nil {
		t.Fatal(err)
	}
	var got Guidance
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("Unmarshal(%s): %v", b, err)
	}
	if !reflect.DeepEqual(got, g) {
		t.Errorf("round trip = %+v, want %+v", got, g)
	}

	tests := []struct {
		name    string
		input   string
		wantErr bool
		wantNil bool
	}{
		{"null", `null`, false, true},
		{"empty object", `{}`, false, false},
		{"array", `["water"]`, true, false},
		{"nested topic", `{"water":{"depth":5}}`, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var g Guidance
			err := json.Unmarshal([]byte(tt.input), &g)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && (g == nil) != tt.wantNil {
				t.Errorf("g = %#v, wantNil %v", g, tt.wantNil)
			}
		})
	}
}

func TestResult_JSONRoundTrip(t *testing.T) {
	guide := func(s string) Guidance {
		return Guidance{{Name: "first", Text: s + " one"}, {Name: "second", Text: s + " two"}}
	}
	rec := CropRecord{
		ID:       "rice",
		Name:     "Rice",
		Category: "cereal",
		Optimal: OptimalConditions{
			Temperature: Range{20, 35}, Humidity: Range{80, 90}, Rainfall: Range{150, 300},
			PH: Range{5.5, 7}, Nitrogen: Range{80, 120}, Phosphorus: Range{40, 60}, Potassium: Range{40, 60},
		},
		Description: "Staple cereal.",
		Fielding:    guide("field"),
		Management:  guide("manage"),
		Maintenance: guide("maintain"),
	}
	res := Result{
		InputConditions:    Conditions{Temperature: 27, Humidity: 85, Rainfall: 200, PH: 6.5, N: 90, P: 50, K: 45},
		RecommendedCrop:    "rice",
		TopRecommendations: []Recommendation{{"rice", 1}, {"maize", 0.5}},
		CropDetails:        NewCropDetails(rec),
		DetailedGuidance: DetailedGuidance{
			Fielding:    rec.Fielding,
			Management:  rec.Management,
			Maintenance: rec.Maintenance,
		},
		Note:        "offline",
		OfflineMode: true,
	}

	b, err := json.Marshal(res)
	if err != nil {
		t.Fatal(err)
	}
	var got Result
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(got, res) {
		t.Errorf("round trip mismatch\ngot  %+v\nwant %+v", got, res)
	}
}

func TestGuidance_RejectsNested(t *testing.T) {
	var g Guidance
	err := yaml.Unmarshal([]byte("water:\n  nested: true\n"), &g)
	if err == nil {
		t.Fatal("expected error for nested topic")
	}
}

func TestCropRecord_CloneIsDeep(t *testing.T) {
	rec := CropRecord{ID: "rice", Fielding: Guidance{{Name: "planting", Text: "a"}}}
	cp := rec.Clone()
	cp.Fielding[0].Text = "changed"
	if rec.Fielding[0].Text != "a" {
		t.Error("Clone shares guidance backing array")
	}
}

func TestConditions_ValueAndSet(t *testing.T) {
	var c Conditions
	for i, f := range Factors {
		if !c.Set(f, float64(i+1)) {
			t.Fatalf("Set(%s) returned false", f)
		}
	}
	for i, f := range Factors {
		if got := c.Value(f); got != float64(i+1) {
			t.Errorf("Value(%s) = %v, want %v", f, got, i+1)
		}
	}
	if c.Set("moisture", 1) {
		t.Error("Set(moisture) should report false")
	}
	if !math.IsNaN(c.Value("moisture")) {
		t.Error("Value(moisture) should be NaN")
	}
}

func TestConditions_Validate(t *testing.T) {
	ok := Conditions{Temperature: 22, Humidity: 65, Rainfall: -3, PH: 14.5, N: 0, P: 0, K: 0}
	if err := ok.Validate(); err != nil {
		t.Errorf("finite conditions rejected: %v", err)
	}
	bad := ok
	bad.PH = math.NaN()
	err := bad.Validate()
	if err == nil || !strings.Contains(err.Error(), "ph") {
		t.Errorf("Validate() = %v, want error naming ph", err)
	}
}

func TestNewCropDetails_FlatRanges(t *testing.T) {
	rec := CropRecord{
		ID: "maize",
		Optimal: OptimalConditions{
			Temperature: Range{21, 27},
			Humidity:    Range{60, 70},
			Rainfall:    Range{50, 75},
			PH:          Range{6, 7.5},
		},
	}
	d := NewCropDetails(rec)
	if *d.TemperatureRange != rec.Optimal.Temperature ||
		*d.HumidityRange != rec.Optimal.Humidity ||
		*d.RainfallRange != rec.Optimal.Rainfall ||
		*d.PHRange != rec.Optimal.PH {
		t.Errorf("flat ranges do not match optimal conditions: %+v", d)
	}

	b, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"id", "optimal_conditions", "temperature_range", "ph_range"} {
		if _, ok := m[key]; !ok {
			t.Errorf("JSON missing %q: %s", key, b)
		}
	}
}

func TestResult_Margin(t *testing.T) {
	r := &Result{TopRecommendations: []Recommendation{{"maize", 1}, {"cotton", 0.9}}}
	if m := r.Margin(); math.Abs(m-0.1) > 1e-9 {
		t.Errorf("Margin() = %v, want 0.1", m)
	}
	single := &Result{TopRecommendations: []Recommendation{{"maize", 0.7}}}
	if single.Margin() != 0.7 {
		t.Errorf("single Margin() = %v", single.Margin())
	}
	var empty *Result
	if _, ok := empty.Best(); ok {
		t.Error("Best() on nil result should miss")
	}
}
