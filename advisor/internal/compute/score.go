package compute

import (
	"math"

	"github.com/cropadvisor/cropadvisor/pkg/types"
)

// Calibration for each factor. A value inside the crop's optimal interval
// earns the full weight. Outside it earns
//
//	max(0, weight - |value - midpoint| / decay)
//
// The constants are fixed; existing scores depend on them.
var factorSpecs = []factorSpec{
	{types.FactorTemperature, 1.0, 10},
	{types.FactorHumidity, 1.0, 20},
	{types.FactorRainfall, 1.0, 50},
	{types.FactorPH, 1.0, 2},
	{types.FactorNitrogen, 0.5, 100},
	{types.FactorPhosphorus, 0.5, 50},
	{types.FactorPotassium, 0.5, 50},
}

type factorSpec struct {
	factor types.Factor
	weight float64
	decay  float64
}

// maxWeight is the sum of all factor weights: 4 × 1.0 + 3 × 0.5.
const maxWeight = 5.5

// Rating labels returned by Rate.
const (
	RatingHighlySuitable = "highly_suitable"
	RatingSuitable       = "suitable"
	RatingMarginal       = "marginal"
	RatingUnsuitable     = "unsuitable"
)

// Thresholds that map a score to a rating.
const (
	ThresholdHighlySuitable = 0.85
	ThresholdSuitable       = 0.60
	ThresholdMarginal       = 0.35
)

// FactorScore is the contribution of one factor to a suitability score.
type FactorScore struct {
	Factor   types.Factor `json:"factor" yaml:"factor"`
	Observed float64      `json:"observed" yaml:"observed"`
	Optimal  types.Range  `json:"optimal" yaml:"optimal"`
	Weight   float64      `json:"weight" yaml:"weight"`
	Credit   float64      `json:"credit" yaml:"credit"`
	InRange  bool         `json:"in_range" yaml:"in_range"`
}

// Output is the result of scoring one set of conditions against one crop.
type Output struct {
	// Score is the weighted mean of the factor credits, in [0, 1].
	Score float64 `json:"score" yaml:"score"`

	// Rating is the label derived from Score.
	Rating string `json:"rating" yaml:"rating"`

	// Factors holds the per-factor breakdown in scoring order.
	// Useful for explaining why a crop ranked where it did.
	Factors []FactorScore `json:"factors" yaml:"factors"`
}

// Compute scores observed conditions against one crop's optimal intervals.
//
// Formula:
//
//	score = Σ credit(factor) / 5.5
//
// where temperature, humidity, rainfall and pH carry weight 1.0 and N, P, K
// carry weight 0.5.
//
// Inputs are not validated. A NaN observation yields a NaN score.
func Compute(in types.Conditions, optimal types.OptimalConditions) Output {
	out := Output{Factors: make([]FactorScore, 0, len(factorSpecs))}

	var total float64
	for _, spec := range factorSpecs {
		v := in.Value(spec.factor)
		r := optimal.Range(spec.factor)
		fs := FactorScore{
			Factor:   spec.factor,
			Observed: v,
			Optimal:  r,
			Weight:   spec.weight,
			InRange:  r.Contains(v),
			Credit:   credit(v, r, spec.weight, spec.decay),
		}
		total += fs.Credit
		out.Factors = append(out.Factors, fs)
	}

	out.Score = total / maxWeight
	out.Rating = Rate(out.Score)
	return out
}

// credit awards the full weight inside [r.Min, r.Max] and decays linearly
// with distance from the midpoint outside it. The midpoint, not the nearest
// edge, is the reference, so credit drops sharply just past an edge.
func credit(v float64, r types.Range, weight, decay float64) float64 {
	if r.Contains(v) {
		return weight
	}
	return math.Max(0, weight-math.Abs(v-r.Midpoint())/decay)
}

// Rate maps a suitability score to a rating label.
func Rate(score float64) string {
	switch {
	case score >= ThresholdHighlySuitable:
		return RatingHighlySuitable
	case score >= ThresholdSuitable:
		return RatingSuitable
	case score >= ThresholdMarginal:
		return RatingMarginal
	default:
		return RatingUnsuitable
	}
}
