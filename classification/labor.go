package classification

// DefaultLaborHours is the estimate for categories without a table entry,
// including "other".
const DefaultLaborHours = 2.0

// LaborEstimator maps a category to a standard labor-hours figure.
type LaborEstimator struct {
	hours map[string]float64
}

// NewDefaultLaborEstimator returns the standard hours table.
func NewDefaultLaborEstimator() *LaborEstimator {
	return &LaborEstimator{hours: map[string]float64{
		"compressor":     6.0,
		"refrigerant":    1.0,
		"motor":          3.0,
		"capacitor":      1.0,
		"contactor":      1.0,
		"thermostat":     1.5,
		"coil":           5.0,
		"blower":         3.0,
		"ignitor":        1.5,
		"board":          2.5,
		"valve":          2.5,
		"filter":         0.5,
		"heat_exchanger": 8.0,
	}}
}

// Estimate returns the standard hours for a category, falling back to
// DefaultLaborHours for unknown categories.
func (e *LaborEstimator) Estimate(category string) float64 {
	if h, ok := e.hours[category]; ok {
		return h
	}
	return DefaultLaborHours
}
