package smartcharging

import core "smartcharge/smartcharging"

// ChargingProfileStatus is SetChargingProfileResponse's status field, per
// OCPP 2.0.1.
type ChargingProfileStatus string

const (
	ChargingProfileStatusAccepted ChargingProfileStatus = "Accepted"
	ChargingProfileStatusRejected ChargingProfileStatus = "Rejected"
)

// GenericStatus is ClearChargingProfileResponse's status field.
type GenericStatus string

const (
	GenericStatusAccepted GenericStatus = "Accepted"
	GenericStatusRejected GenericStatus = "Rejected"
	GenericStatusUnknown  GenericStatus = "Unknown"
)

// StatusForOutcome maps a core Outcome to the wire-level accepted/rejected
// status. Only Valid maps to Accepted; every other outcome is a rejection.
// It returns only the status; it does not fill a response's StatusInfo.
func StatusForOutcome(outcome core.Outcome) ChargingProfileStatus {
	if outcome == core.Valid {
		return ChargingProfileStatusAccepted
	}
	return ChargingProfileStatusRejected
}

// GenericStatusForClearCount maps the number of profiles a Clear call
// removed to ClearChargingProfileResponse's status: Accepted when at least
// one profile matched, Unknown when none did.
func GenericStatusForClearCount(removed int) GenericStatus {
	if removed > 0 {
		return GenericStatusAccepted
	}
	return GenericStatusUnknown
}
