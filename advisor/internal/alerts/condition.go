package alerts

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cropadvisor/cropadvisor/advisor/internal/compute"
	"github.com/cropadvisor/cropadvisor/pkg/types"
)

// Condition is a parsed rule expression of the form "field operator value".
//
// Supported expressions:
//
//	confidence < 0.6        score of the recommended crop
//	margin < 0.05           gap between the first and second crop
//	humidity > 90           any observed factor (N, P, K or long names)
//	crop != rice            recommended crop id
//	rating == marginal      rating of the recommended crop
type Condition struct {
	Field string
	Op    string
	Value string

	threshold float64
}

var numericOps = map[string]bool{">": true, ">=": true, "<": true, "<=": true, "==": true, "!=": true}

var factorFields = map[string]types.Factor{
	"temperature": types.FactorTemperature,
	"humidity":    types.FactorHumidity,
	"rainfall":    types.FactorRainfall,
	"ph":          types.FactorPH,
	"n":           types.FactorNitrogen,
	"nitrogen":    types.FactorNitrogen,
	"p":           types.FactorPhosphorus,
	"phosphorus":  types.FactorPhosphorus,
	"k":           types.FactorPotassium,
	"potassium":   types.FactorPotassium,
}

// ParseCondition validates and compiles a condition string.
func ParseCondition(s string) (Condition, error) {
	parts := strings.Fields(s)
	if len(parts) != 3 {
		return Condition{}, fmt.Errorf("condition %q: want \"field operator value\"", s)
	}
	c := Condition{Field: strings.ToLower(parts[0]), Op: parts[1], Value: parts[2]}

	switch c.Field {
	case "crop", "rating":
		if c.Op != "==" && c.Op != "!=" {
			return Condition{}, fmt.Errorf("condition %q: %s supports only == and !=", s, c.Field)
		}
		c.Value = strings.ToLower(c.Value)
		return c, nil
	}

	if c.Field != "confidence" && c.Field != "margin" {
		if _, ok := factorFields[c.Field]; !ok {
			return Condition{}, fmt.Errorf("condition %q: unknown field %q", s, parts[0])
		}
	}
	if !numericOps[c.Op] {
		return Condition{}, fmt.Errorf("condition %q: unknown operator %q", s, c.Op)
	}
	v, err := strconv.ParseFloat(c.Value, 64)
	if err != nil {
		return Condition{}, fmt.Errorf("condition %q: threshold: %w", s, err)
	}
	c.threshold = v
	return c, nil
}

// Eval tests the condition against res.
// Returns (fires bool, triggering value float64). String fields report the
// recommended crop's confidence as their value.
func (c Condition) Eval(res *types.Result) (bool, float64) {
	best, ok := res.Best()
	if !ok {
		return false, 0
	}

	switch c.Field {
	case "crop":
		return compareString(best.Crop, c.Op, c.Value), best.Confidence
	case "rating":
		return compareString(compute.Rate(best.Confidence), c.Op, c.Value), best.Confidence
	}

	var v float64
	switch c.Field {
	case "confidence":
		v = best.Confidence
	case "margin":
		v = res.Margin()
	default:
		v = res.InputConditions.Value(factorFields[c.Field])
	}
	return compareFloat(v, c.Op, c.threshold), v
}

func (c Condition) String() string {
	return c.Field + " " + c.Op + " " + c.Value
}

func compareString(v, op, want string) bool {
	switch op {
	case "==":
		return v == want
	case "!=":
		return v != want
	default:
		return false
	}
}

// compareFloat applies a comparison operator to two float64 values.
func compareFloat(v float64, op string, threshold float64) bool {
	switch op {
	case ">":
		return v > threshold
	case ">=":
		return v >= threshold
	case "<":
		return v < threshold
	case "<=":
		return v <= threshold
	case "==":
		return v == threshold
	case "!=":
		return v != threshold
	default:
		return false
	}
}
