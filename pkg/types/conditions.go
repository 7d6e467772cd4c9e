package types

import (
	"fmt"
	"math"
)

// Conditions are the observed field measurements supplied by the caller.
// Units follow the crop table: °C, % relative humidity, cm of rainfall,
// soil pH, and N/P/K in kg/ha.
type Conditions struct {
	Temperature float64 `yaml:"temperature" json:"temperature"`
	Humidity    float64 `yaml:"humidity" json:"humidity"`
	Rainfall    float64 `yaml:"rainfall" json:"rainfall"`
	PH          float64 `yaml:"ph" json:"ph"`
	N           float64 `yaml:"N" json:"N"`
	P           float64 `yaml:"P" json:"P"`
	K           float64 `yaml:"K" json:"K"`
}

// Value returns the observation for f. Unknown factors yield NaN.
func (c Conditions) Value(f Factor) float64 {
	switch f {
	case FactorTemperature:
		return c.Temperature
	case FactorHumidity:
		return c.Humidity
	case FactorRainfall:
		return c.Rainfall
	case FactorPH:
		return c.PH
	case FactorNitrogen:
		return c.N
	case FactorPhosphorus:
		return c.P
	case FactorPotassium:
		return c.K
	default:
		return math.NaN()
	}
}

// Set assigns v to factor f. It reports false for unknown factors.
func (c *Conditions) Set(f Factor, v float64) bool {
	switch f {
	case FactorTemperature:
		c.Temperature = v
	case FactorHumidity:
		c.Humidity = v
	case FactorRainfall:
		c.Rainfall = v
	case FactorPH:
		c.PH = v
	case FactorNitrogen:
		c.N = v
	case FactorPhosphorus:
		c.P = v
	case FactorPotassium:
		c.K = v
	default:
		return false
	}
	return true
}

// Validate reports the first factor that is NaN or infinite.
// Physically implausible but finite values (negative rainfall, pH 20)
// are accepted and scored mechanically.
func (c Conditions) Validate() error {
	for _, f := range Factors {
		v := c.Value(f)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s is %v", f, v)
		}
	}
	return nil
}
