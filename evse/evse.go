// Package evse provides the smart charging core's read-only view of EVSEs
// and their transactions, mirroring the role the teacher repository's
// power.Repository plays for the load balancer: a narrow interface the
// core depends on without knowing about the concrete station firmware or
// persistence behind it.
package evse

import "time"

// PhaseType is the current phase configuration of an EVSE's supply.
type PhaseType string

const (
	PhaseTypeAC      PhaseType = "AC"
	PhaseTypeDC      PhaseType = "DC"
	PhaseTypeUnknown PhaseType = "Unknown"
)

// Transaction is the subset of an active charging transaction's state the
// smart charging core needs to anchor Relative profiles.
type Transaction struct {
	Id                   int
	StartTime            time.Time
	PowerPathClosedTime  *time.Time
}

// View exposes one EVSE's state to the smart charging core.
type View interface {
	// PhaseType reports the EVSE's reported phase type, used to resolve
	// AC/DC-specific validation rules in preference to the device model's
	// station-wide ChargingStationSupplyPhases.
	PhaseType() PhaseType
	HasActiveTransaction() bool
	// Transaction returns the active transaction, or nil if there is none.
	Transaction() *Transaction
}

// Registry is the read-only EVSE lookup the Validator and TimeCalc depend
// on. EVSE id 0 (station-wide) is never present in the registry; the
// Validator special-cases it before calling Get.
type Registry interface {
	Get(evseId int) (View, bool)
}

// Static is an in-memory Registry, built directly by a demo or test instead
// of being backed by a running station's connector state.
type Static map[int]*StaticView

func (s Static) Get(evseId int) (View, bool) {
	v, ok := s[evseId]
	if !ok {
		return nil, false
	}
	return v, true
}

// StaticView is a mutable, in-memory View implementation.
type StaticView struct {
	Phase PhaseType
	Tx    *Transaction
}

func (v *StaticView) PhaseType() PhaseType {
	return v.Phase
}

func (v *StaticView) HasActiveTransaction() bool {
	return v.Tx != nil
}

func (v *StaticView) Transaction() *Transaction {
	return v.Tx
}
