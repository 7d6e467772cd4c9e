package types

// Recommendation pairs a crop id with its suitability score.
type Recommendation struct {
	Crop       string  `yaml:"crop" json:"crop"`
	Confidence float64 `yaml:"confidence" json:"confidence"`
}

// CropDetails is the recommended crop's record plus its four primary
// intervals repeated as flat fields.
type CropDetails struct {
	CropRecord `yaml:",inline"`

	TemperatureRange *Range `yaml:"temperature_range,omitempty" json:"temperature_range,omitempty"`
	HumidityRange    *Range `yaml:"humidity_range,omitempty" json:"humidity_range,omitempty"`
	RainfallRange    *Range `yaml:"rainfall_range,omitempty" json:"rainfall_range,omitempty"`
	PHRange          *Range `yaml:"ph_range,omitempty" json:"ph_range,omitempty"`
}

// NewCropDetails copies rec and fills in the flat range fields.
func NewCropDetails(rec CropRecord) CropDetails {
	rec = rec.Clone()
	temp, hum, rain, ph := rec.Optimal.Temperature, rec.Optimal.Humidity, rec.Optimal.Rainfall, rec.Optimal.PH
	return CropDetails{
		CropRecord:       rec,
		TemperatureRange: &temp,
		HumidityRange:    &hum,
		RainfallRange:    &rain,
		PHRange:          &ph,
	}
}

// DetailedGuidance groups the recommended crop's three guidance blocks.
type DetailedGuidance struct {
	Fielding    Guidance `yaml:"fielding" json:"fielding"`
	Management  Guidance `yaml:"management" json:"management"`
	Maintenance Guidance `yaml:"maintenance" json:"maintenance"`
}

// Result is the full output of one recommendation.
type Result struct {
	InputConditions    Conditions       `yaml:"input_conditions" json:"input_conditions"`
	RecommendedCrop    string           `yaml:"recommended_crop" json:"recommended_crop"`
	TopRecommendations []Recommendation `yaml:"top_recommendations" json:"top_recommendations"`
	CropDetails        CropDetails      `yaml:"crop_details" json:"crop_details"`
	DetailedGuidance   DetailedGuidance `yaml:"detailed_guidance" json:"detailed_guidance"`
	Note               string           `yaml:"note" json:"note"`

	// OfflineMode is always true: no external service is consulted.
	OfflineMode bool `yaml:"offline_mode" json:"offline_mode"`
}

// Best returns the top recommendation, or false when there is none.
func (r *Result) Best() (Recommendation, bool) {
	if r == nil || len(r.TopRecommendations) == 0 {
		return Recommendation{}, false
	}
	return r.TopRecommendations[0], true
}

// Margin is the confidence gap between the first and second recommendation.
// With a single recommendation the margin is its full confidence.
func (r *Result) Margin() float64 {
	switch {
	case r == nil || len(r.TopRecommendations) == 0:
		return 0
	case len(r.TopRecommendations) == 1:
		return r.TopRecommendations[0].Confidence
	default:
		return r.TopRecommendations[0].Confidence - r.TopRecommendations[1].Confidence
	}
}
