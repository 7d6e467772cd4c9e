package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// Factor names one environmental or soil measurement used for scoring.
type Factor string

// The seven scored factors. The string values match the keys used in the
// crop table's optimal_conditions block.
const (
	FactorTemperature Factor = "temperature"
	FactorHumidity    Factor = "humidity"
	FactorRainfall    Factor = "rainfall"
	FactorPH          Factor = "ph"
	FactorNitrogen    Factor = "nitrogen"
	FactorPhosphorus  Factor = "phosphorus"
	FactorPotassium   Factor = "potassium"
)

// Factors lists every factor in scoring order.
var Factors = []Factor{
	FactorTemperature,
	FactorHumidity,
	FactorRainfall,
	FactorPH,
	FactorNitrogen,
	FactorPhosphorus,
	FactorPotassium,
}

// Guidance kinds carried by every crop record.
const (
	GuidanceFielding    = "fielding"
	GuidanceManagement  = "management"
	GuidanceMaintenance = "maintenance"
)

// GuidanceKinds lists the guidance groups in display order.
var GuidanceKinds = []string{GuidanceFielding, GuidanceManagement, GuidanceMaintenance}

// Range is a closed interval [Min, Max]. It encodes as a two-element
// array in both YAML and JSON, e.g. [20, 35].
type Range struct {
	Min float64
	Max float64
}

// Contains reports whether v lies inside the interval, both ends inclusive.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Midpoint returns (Min+Max)/2.
func (r Range) Midpoint() float64 {
	return (r.Min + r.Max) / 2
}

// Validate checks that both bounds are finite and Min <= Max.
func (r Range) Validate() error {
	if math.IsNaN(r.Min) || math.IsInf(r.Min, 0) || math.IsNaN(r.Max) || math.IsInf(r.Max, 0) {
		return fmt.Errorf("range [%v, %v] is not finite", r.Min, r.Max)
	}
	if r.Min > r.Max {
		return fmt.Errorf("range [%v, %v] has min > max", r.Min, r.Max)
	}
	return nil
}

func (r Range) String() string {
	return fmt.Sprintf("%g-%g", r.Min, r.Max)
}

// UnmarshalYAML decodes a [min, max] sequence.
func (r *Range) UnmarshalYAML(value *yaml.Node) error {
	var pair []float64
	if err := value.Decode(&pair); err != nil {
		return fmt.Errorf("line %d: range: %w", value.Line, err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("line %d: range needs exactly 2 values, got %d", value.Line, len(pair))
	}
	r.Min, r.Max = pair[0], pair[1]
	return nil
}

// MarshalYAML encodes the range as a flow sequence.
func (r Range) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range []float64{r.Min, r.Max} {
		var item yaml.Node
		if err := item.Encode(v); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &item)
	}
	return node, nil
}

// MarshalJSON encodes the range as [min, max].
func (r Range) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{r.Min, r.Max})
}

// UnmarshalJSON decodes a [min, max] array.
func (r *Range) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("range needs exactly 2 values, got %d", len(pair))
	}
	r.Min, r.Max = pair[0], pair[1]
	return nil
}

// OptimalConditions holds one crop's ideal interval for every factor.
type OptimalConditions struct {
	Temperature Range `yaml:"temperature" json:"temperature"`
	Humidity    Range `yaml:"humidity" json:"humidity"`
	Rainfall    Range `yaml:"rainfall" json:"rainfall"`
	PH          Range `yaml:"ph" json:"ph"`
	Nitrogen    Range `yaml:"nitrogen" json:"nitrogen"`
	Phosphorus  Range `yaml:"phosphorus" json:"phosphorus"`
	Potassium   Range `yaml:"potassium" json:"potassium"`
}

// Range returns the interval for f. Unknown factors yield the zero Range.
func (o OptimalConditions) Range(f Factor) Range {
	switch f {
	case FactorTemperature:
		return o.Temperature
	case FactorHumidity:
		return o.Humidity
	case FactorRainfall:
		return o.Rainfall
	case FactorPH:
		return o.PH
	case FactorNitrogen:
		return o.Nitrogen
	case FactorPhosphorus:
		return o.Phosphorus
	case FactorPotassium:
		return o.Potassium
	default:
		return Range{}
	}
}

// Validate checks every interval.
func (o OptimalConditions) Validate() error {
	for _, f := range Factors {
		if err := o.Range(f).Validate(); err != nil {
			return fmt.Errorf("%s: %w", f, err)
		}
	}
	return nil
}

// Topic is one named piece of advisory text inside a guidance group.
type Topic struct {
	Name string
	Text string
}

// Guidance is an ordered mapping of topic name to advisory text.
// Order is the order of definition in the crop table and is kept through
// YAML and JSON round trips.
type Guidance []Topic

// Get returns the text for the named topic.
func (g Guidance) Get(name string) (string, bool) {
	for _, t := range g {
		if t.Name == name {
			return t.Text, true
		}
	}
	return "", false
}

// Clone returns a copy that shares no backing array with g.
func (g Guidance) Clone() Guidance {
	if g == nil {
		return nil
	}
	out := make(Guidance, len(g))
	copy(out, g)
	return out
}

// UnmarshalYAML decodes a mapping of topic name to text, keeping key order.
func (g *Guidance) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: guidance must be a mapping", value.Line)
	}
	out := make(Guidance, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: guidance topic %q must be text", val.Line, key.Value)
		}
		out = append(out, Topic{Name: key.Value, Text: val.Value})
	}
	*g = out
	return nil
}

// MarshalYAML encodes the guidance as an ordered mapping.
func (g Guidance) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, t := range g {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: t.Name},
			&yaml.Node{Kind: yaml.ScalarNode, Value: t.Text},
		)
	}
	return node, nil
}

// MarshalJSON encodes the guidance as a JSON object with keys in order.
func (g Guidance) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, t := range g {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(t.Name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(t.Text)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object of topic name to text, keeping key
// order. null leaves the guidance empty.
func (g *Guidance) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*g = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("guidance must be a JSON object")
	}
	out := Guidance{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := tok.(string)
		var text string
		if err := dec.Decode(&text); err != nil {
			return fmt.Errorf("guidance topic %q must be text: %w", name, err)
		}
		out = append(out, Topic{Name: name, Text: text})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*g = out
	return nil
}

// CropRecord describes one crop in the reference table.
type CropRecord struct {
	// ID is the lowercase table key, e.g. "rice".
	ID          string            `yaml:"id" json:"id"`
	Name        string            `yaml:"name" json:"name"`
	Category    string            `yaml:"category" json:"category"`
	Optimal     OptimalConditions `yaml:"optimal_conditions" json:"optimal_conditions"`
	Description string            `yaml:"description" json:"description"`
	Fielding    Guidance          `yaml:"fielding" json:"fielding"`
	Management  Guidance          `yaml:"management" json:"management"`
	Maintenance Guidance          `yaml:"maintenance" json:"maintenance"`
}

// Guidance returns the guidance group of the given kind
// (fielding | management | maintenance).
func (c CropRecord) Guidance(kind string) (Guidance, bool) {
	switch kind {
	case GuidanceFielding:
		return c.Fielding, true
	case GuidanceManagement:
		return c.Management, true
	case GuidanceMaintenance:
		return c.Maintenance, true
	default:
		return nil, false
	}
}

// Clone returns a deep copy of c.
func (c CropRecord) Clone() CropRecord {
	c.Fielding = c.Fielding.Clone()
	c.Management = c.Management.Clone()
	c.Maintenance = c.Maintenance.Clone()
	return c
}
