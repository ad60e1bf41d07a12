package impact

import (
	"fmt"
	"math"
)

// InvalidParameterError reports a scenario field outside its physical domain.
type InvalidParameterError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid %s %g: %s", e.Field, e.Value, e.Reason)
}

// Validate checks p against the documented input domain and returns the
// first violation found, in field order. Inputs whose kinetic energy
// overflows or underflows float64 are rejected with Field "energy", since
// every derived effect would be infinite.
func Validate(p Parameters) error {
	checks := []struct {
		field string
		value float64
		ok    bool
		why   string
	}{
		{"diameter", p.Diameter, p.Diameter > 0, "must be positive"},
		{"density", p.Density, p.Density > 0, "must be positive"},
		{"velocity", p.Velocity, p.Velocity > 0, "must be positive"},
		{"angle", p.Angle, p.Angle > 0 && p.Angle <= 90, "must be in (0, 90] degrees"},
		{"latitude", p.Latitude, p.Latitude >= -90 && p.Latitude <= 90, "must be in [-90, 90]"},
		{"longitude", p.Longitude, p.Longitude >= -180 && p.Longitude <= 180, "must be in [-180, 180]"},
	}
	for _, c := range checks {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			return &InvalidParameterError{Field: c.field, Value: c.value, Reason: "must be finite"}
		}
		if !c.ok {
			return &InvalidParameterError{Field: c.field, Value: c.value, Reason: c.why}
		}
	}
	if _, energyJ := kineticEnergy(p); math.IsInf(energyJ, 0) || energyJ <= 0 {
		return &InvalidParameterError{Field: "energy", Value: energyJ, Reason: "must be finite and positive"}
	}
	return nil
}
