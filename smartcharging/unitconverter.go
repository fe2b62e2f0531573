package smartcharging

import "smartcharge/types"

// LowVoltage and DefaultPhases are the fixed constants the UnitConverter
// uses to translate between amps and watts.
const (
	LowVoltage    = 230.0
	DefaultPhases = 3
)

// ConvertLimit converts limit (in fromUnit, with the given number of
// phases) into toUnit. No rounding policy is imposed: callers get back the
// full floating-point precision of the conversion.
func ConvertLimit(limit float64, numberPhases *int, fromUnit, toUnit types.ChargingRateUnitType) float64 {
	if fromUnit == toUnit {
		return limit
	}
	phases := DefaultPhases
	if numberPhases != nil && *numberPhases > 0 {
		phases = *numberPhases
	}
	switch {
	case fromUnit == types.ChargingRateUnitWatts && toUnit == types.ChargingRateUnitAmperes:
		return limit / (LowVoltage * float64(phases))
	case fromUnit == types.ChargingRateUnitAmperes && toUnit == types.ChargingRateUnitWatts:
		return limit * LowVoltage * float64(phases)
	default:
		return limit
	}
}
