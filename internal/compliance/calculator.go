package compliance

import "errors"

// Regulatory constants for the compliance balance formula.
const (
	// TargetIntensity is the GHG intensity target in gCO2e/MJ.
	TargetIntensity = 89.3368

	// EnergyConversionFactor converts fuel mass to energy, in MJ per tonne.
	EnergyConversionFactor = 41000.0
)

// ErrZeroBaseline is returned when a percent comparison is requested
// against a baseline intensity of zero or below.
var ErrZeroBaseline = errors.New("baseline intensity must be positive")

// Balance computes the signed compliance balance in gCO2eq for a route.
// A positive result is surplus (intensity below target), a negative
// result is deficit. Inputs are assumed non-negative; validation is the
// caller's responsibility.
func Balance(ghgIntensity, fuelConsumption float64) float64 {
	energyInScope := fuelConsumption * EnergyConversionFactor
	return (TargetIntensity - ghgIntensity) * energyInScope
}

// PercentDiff returns the percentage difference of a comparison
// intensity relative to a baseline intensity.
func PercentDiff(comparison, baseline float64) (float64, error) {
	if baseline <= 0 {
		return 0, ErrZeroBaseline
	}
	return ((comparison / baseline) - 1) * 100, nil
}

// IsCompliant reports whether a GHG intensity meets the regulatory
// target. The boundary is inclusive.
func IsCompliant(ghgIntensity float64) bool {
	return ghgIntensity <= TargetIntensity
}
