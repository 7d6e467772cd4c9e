package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cropadvisor/cropadvisor/advisor/internal/compute"
	"github.com/cropadvisor/cropadvisor/advisor/internal/sensor"
	"github.com/cropadvisor/cropadvisor/pkg/types"
)

// conditionFlags binds one flag per factor plus --file.
type conditionFlags struct {
	values types.Conditions
	file   string
	format string
}

var factorFlags = []struct {
	factor types.Factor
	name   string
	short  string
	usage  string
}{
	{types.FactorTemperature, "temperature", "t", "air temperature, °C"},
	{types.FactorHumidity, "humidity", "u", "relative humidity, %"},
	{types.FactorRainfall, "rainfall", "r", "rainfall, cm"},
	{types.FactorPH, "ph", "", "soil pH"},
	{types.FactorNitrogen, "nitrogen", "N", "soil nitrogen, kg/ha"},
	{types.FactorPhosphorus, "phosphorus", "P", "soil phosphorus, kg/ha"},
	{types.FactorPotassium, "potassium", "K", "soil potassium, kg/ha"},
}

func (f *conditionFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	ptrs := []*float64{
		&f.values.Temperature, &f.values.Humidity, &f.values.Rainfall, &f.values.PH,
		&f.values.N, &f.values.P, &f.values.K,
	}
	for i, ff := range factorFlags {
		fs.Float64VarP(ptrs[i], ff.name, ff.short, 0, ff.usage)
	}
	fs.StringVarP(&f.file, "file", "f", "", "read conditions from a YAML, JSON or Prometheus textfile")
	fs.StringVar(&f.format, "format", "", "format of --file: yaml | json | prometheus (default from extension)")
}

// conditions returns the observed values, either from --file (with
// individual flags overriding file values) or from the flags alone, in which
// case every factor flag is required. NaN and infinite values are rejected
// with compute.ErrInvalidInput.
func (f *conditionFlags) conditions(cmd *cobra.Command, metrics sensor.Metrics) (types.Conditions, error) {
	fs := cmd.Flags()
	var c types.Conditions

	if f.file != "" {
		var err error
		c, err = sensor.Read(f.file, sensor.Options{Format: f.format, Metrics: metrics})
		if err != nil {
			return types.Conditions{}, err
		}
	} else {
		var missing []string
		for _, ff := range factorFlags {
			if !fs.Changed(ff.name) {
				missing = append(missing, "--"+ff.name)
			}
		}
		if len(missing) > 0 {
			return types.Conditions{}, fmt.Errorf("missing required field(s): %s (or use --file)", strings.Join(missing, ", "))
		}
	}

	for _, ff := range factorFlags {
		if fs.Changed(ff.name) {
			c.Set(ff.factor, f.values.Value(ff.factor))
		}
	}
	if err := c.Validate(); err != nil {
		return types.Conditions{}, fmt.Errorf("%w: %v", compute.ErrInvalidInput, err)
	}
	return c, nil
}
