// Package devicemodel provides the smart charging core's read-only view of
// the charging station's device model. The core never mutates these
// variables; it only reads the handful the Validator and TimeCalc need.
package devicemodel

import (
	"strings"

	"smartcharge/types"
)

// View is the read-only device-model lookup the Validator depends on. It is
// the Go analogue of the EVerest DeviceModel's get_value/get_optional_value,
// narrowed to the four variables the smart charging core actually reads.
type View interface {
	// ChargingScheduleChargingRateUnits returns the station's supported
	// charging rate units. An empty slice is a configuration error: the
	// Validator rejects every profile with ChargingScheduleChargingRateUnitUnsupported.
	ChargingScheduleChargingRateUnits() []types.ChargingRateUnitType
	// ChargingStationSupplyPhases returns 0 (DC), 1 or 3 (AC).
	ChargingStationSupplyPhases() int
	// ACPhaseSwitchingSupported reports whether the station supports
	// switching which phase is used mid-session. Absent is false.
	ACPhaseSwitchingSupported() bool
	// TxStartPointHasPowerPathClosed reports whether the station's
	// TxStartPoint configuration includes the PowerPathClosed token.
	TxStartPointHasPowerPathClosed() bool
}

// Static is an in-memory View, the kind a demo harness or test seeds
// directly instead of reading from a persisted device model database.
type Static struct {
	// ChargingScheduleChargingRateUnit is the raw CSV device-model value,
	// e.g. "A,W". Kept as a string (rather than a pre-parsed slice) to
	// mirror the original implementation's CSV-valued configuration
	// variables; ChargingScheduleChargingRateUnits splits it for the
	// Validator (K01.FR.26).
	ChargingScheduleChargingRateUnit string
	// SupplyPhases is 0, 1, or 3.
	SupplyPhases int
	// PhaseSwitchingSupported defaults to false when unset, per spec.
	PhaseSwitchingSupported bool
	// TxStartPoint is the raw CSV device-model value, e.g. "PowerPathClosed".
	TxStartPoint string
}

func (s *Static) ChargingScheduleChargingRateUnits() []types.ChargingRateUnitType {
	var units []types.ChargingRateUnitType
	for _, tok := range splitCSV(s.ChargingScheduleChargingRateUnit) {
		units = append(units, types.ChargingRateUnitType(tok))
	}
	return units
}

func (s *Static) ChargingStationSupplyPhases() int {
	return s.SupplyPhases
}

func (s *Static) ACPhaseSwitchingSupported() bool {
	return s.PhaseSwitchingSupported
}

func (s *Static) TxStartPointHasPowerPathClosed() bool {
	for _, tok := range splitCSV(s.TxStartPoint) {
		if tok == "PowerPathClosed" {
			return true
		}
	}
	return false
}

// SupportsUnit reports whether u is among the station's supported charging
// rate units.
func SupportsUnit(v View, u types.ChargingRateUnitType) bool {
	for _, supported := range v.ChargingScheduleChargingRateUnits() {
		if supported == u {
			return true
		}
	}
	return false
}

func splitCSV(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
