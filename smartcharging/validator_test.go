package smartcharging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartcharge/evse"
	"smartcharge/types"
)

func newProfile(id, stackLevel int, purpose types.ChargingProfilePurposeType, kind types.ChargingProfileKindType, periods ...types.ChargingSchedulePeriod) *types.ChargingProfile {
	return &types.ChargingProfile{
		Id:                     id,
		StackLevel:             stackLevel,
		ChargingProfilePurpose: purpose,
		ChargingProfileKind:    kind,
		ChargingSchedule: []types.ChargingSchedule{{
			ChargingRateUnit:       types.ChargingRateUnitWatts,
			StartSchedule:          types.NewDateTime(mustTime("2024-01-01T00:00:00Z")),
			ChargingSchedulePeriod: periods,
		}},
	}
}

// TestValidateProfile_TxProfileWithoutTransaction covers S5.
func TestValidateProfile_TxProfileWithoutTransaction(t *testing.T) {
	profile := newProfile(1, 0, types.ChargingProfilePurposeTxProfile, types.ChargingProfileKindAbsolute, period(0, 10))
	profile.TransactionId = intPtr(1)

	registry := evse.Static{1: &evse.StaticView{}}
	store := NewProfileStore()

	outcome := ValidateProfile(profile, 1, mustTime("2024-01-01T00:00:00Z"), store, registry, defaultDeviceModel())
	assert.Equal(t, TxProfileEvseHasNoActiveTransaction, outcome)
}

// TestValidateProfile_TxProfileEvseIdCheckedBeforeTransactionId locks in the
// ground-truth evaluation order: the evseId check runs before the
// transactionId check, so a station-wide TxProfile with no transactionId at
// all reports TxProfileEvseIdNotGreaterThanZero, not
// TxProfileMissingTransactionId.
func TestValidateProfile_TxProfileEvseIdCheckedBeforeTransactionId(t *testing.T) {
	profile := newProfile(1, 0, types.ChargingProfilePurposeTxProfile, types.ChargingProfileKindAbsolute, period(0, 10))

	outcome := ValidateProfile(profile, StationWideEvseId, mustTime("2024-01-01T00:00:00Z"), NewProfileStore(), evse.Static{}, defaultDeviceModel())
	assert.Equal(t, TxProfileEvseIdNotGreaterThanZero, outcome)
}

// TestValidateProfile_DuplicateTxDefaultAcrossScope covers S6.
func TestValidateProfile_DuplicateTxDefaultAcrossScope(t *testing.T) {
	existing := newStoredProfile(1, 1, types.ChargingProfilePurposeTxDefaultProfile, types.ChargingProfileKindAbsolute, 3, period(0, 10))
	store := newStore(t, existing)

	candidate := newProfile(2, 3, types.ChargingProfilePurposeTxDefaultProfile, types.ChargingProfileKindAbsolute, period(0, 10))

	outcome := ValidateProfile(candidate, StationWideEvseId, mustTime("2024-01-01T00:00:00Z"), store, evse.Static{}, defaultDeviceModel())
	assert.Equal(t, DuplicateTxDefaultProfileFound, outcome)
}

// TestValidateProfile_RejectsReplacingExternalConstraints covers the
// supplemented ExistingChargingStationExternalConstraints outcome: an id
// collision with an installed ChargingStationExternalConstraints profile is
// rejected outright rather than silently dropped by the store.
func TestValidateProfile_RejectsReplacingExternalConstraints(t *testing.T) {
	existing := newStoredProfile(1, 0, types.ChargingProfilePurposeChargingStationExternalConstraints, types.ChargingProfileKindAbsolute, 0, period(0, 10))
	store := newStore(t, existing)

	candidate := newProfile(1, 0, types.ChargingProfilePurposeChargingStationMaxProfile, types.ChargingProfileKindAbsolute, period(0, 5))

	outcome := ValidateProfile(candidate, StationWideEvseId, mustTime("2024-01-01T00:00:00Z"), store, evse.Static{}, defaultDeviceModel())
	assert.Equal(t, ExistingChargingStationExternalConstraints, outcome)
}

func TestValidateProfile_EvseDoesNotExist(t *testing.T) {
	profile := newProfile(1, 0, types.ChargingProfilePurposeTxDefaultProfile, types.ChargingProfileKindAbsolute, period(0, 10))
	outcome := ValidateProfile(profile, 5, mustTime("2024-01-01T00:00:00Z"), NewProfileStore(), evse.Static{}, defaultDeviceModel())
	assert.Equal(t, EvseDoesNotExist, outcome)
}

// TestValidateProfile_ValidityOverlapPrecedesPurposeSpecificCheck locks in
// the ground-truth evaluation order: the validity-overlap check runs first
// inside a purpose-specific validator, ahead of that purpose's own checks.
// A candidate that violates both should report DuplicateProfileValidityPeriod,
// not the purpose-specific outcome, even though the purpose-specific check
// runs on a strictly narrower condition (evseId > 0).
func TestValidateProfile_ValidityOverlapPrecedesPurposeSpecificCheck(t *testing.T) {
	existing := newStoredProfile(1, 1, types.ChargingProfilePurposeChargingStationMaxProfile, types.ChargingProfileKindAbsolute, 0, period(0, 10))
	store := newStore(t, existing)

	candidate := newProfile(2, 0, types.ChargingProfilePurposeChargingStationMaxProfile, types.ChargingProfileKindAbsolute, period(0, 5))
	registry := evse.Static{1: &evse.StaticView{}}

	outcome := ValidateProfile(candidate, 1, mustTime("2024-01-01T00:00:00Z"), store, registry, defaultDeviceModel())
	assert.Equal(t, DuplicateProfileValidityPeriod, outcome)
}

func TestValidateProfile_ChargingStationMaxProfileRejectsEvseGreaterThanZero(t *testing.T) {
	profile := newProfile(1, 0, types.ChargingProfilePurposeChargingStationMaxProfile, types.ChargingProfileKindAbsolute, period(0, 10))
	registry := evse.Static{1: &evse.StaticView{}}
	outcome := ValidateProfile(profile, 1, mustTime("2024-01-01T00:00:00Z"), NewProfileStore(), registry, defaultDeviceModel())
	assert.Equal(t, ChargingStationMaxProfileEvseIdGreaterThanZero, outcome)
}

func TestValidateProfile_ChargingStationMaxProfileCannotBeRelative(t *testing.T) {
	profile := newProfile(1, 0, types.ChargingProfilePurposeChargingStationMaxProfile, types.ChargingProfileKindRelative)
	profile.ChargingSchedule[0].StartSchedule = nil
	profile.ChargingSchedule[0].ChargingSchedulePeriod = []types.ChargingSchedulePeriod{period(0, 10)}

	outcome := ValidateProfile(profile, StationWideEvseId, mustTime("2024-01-01T00:00:00Z"), NewProfileStore(), evse.Static{}, defaultDeviceModel())
	assert.Equal(t, ChargingStationMaxProfileCannotBeRelative, outcome)
}

func TestValidateProfile_NoChargingSchedulePeriods(t *testing.T) {
	profile := newProfile(1, 0, types.ChargingProfilePurposeChargingStationMaxProfile, types.ChargingProfileKindAbsolute)
	outcome := ValidateProfile(profile, StationWideEvseId, mustTime("2024-01-01T00:00:00Z"), NewProfileStore(), evse.Static{}, defaultDeviceModel())
	assert.Equal(t, ChargingProfileNoChargingSchedulePeriods, outcome)
}

func TestValidateProfile_FirstStartScheduleIsNotZero(t *testing.T) {
	profile := newProfile(1, 0, types.ChargingProfilePurposeChargingStationMaxProfile, types.ChargingProfileKindAbsolute, period(100, 10))
	outcome := ValidateProfile(profile, StationWideEvseId, mustTime("2024-01-01T00:00:00Z"), NewProfileStore(), evse.Static{}, defaultDeviceModel())
	assert.Equal(t, ChargingProfileFirstStartScheduleIsNotZero, outcome)
}

func TestValidateProfile_PeriodsOutOfOrder(t *testing.T) {
	profile := newProfile(1, 0, types.ChargingProfilePurposeChargingStationMaxProfile, types.ChargingProfileKindAbsolute, period(0, 10), period(0, 20))
	outcome := ValidateProfile(profile, StationWideEvseId, mustTime("2024-01-01T00:00:00Z"), NewProfileStore(), evse.Static{}, defaultDeviceModel())
	assert.Equal(t, ChargingSchedulePeriodsOutOfOrder, outcome)
}

func TestValidateProfile_UnsupportedChargingRateUnit(t *testing.T) {
	profile := newProfile(1, 0, types.ChargingProfilePurposeChargingStationMaxProfile, types.ChargingProfileKindAbsolute, period(0, 10))
	dm := &deviceModelStub{units: "W"}
	profile.ChargingSchedule[0].ChargingRateUnit = "K"
	outcome := ValidateProfile(profile, StationWideEvseId, mustTime("2024-01-01T00:00:00Z"), NewProfileStore(), evse.Static{}, dm)
	assert.Equal(t, ChargingScheduleChargingRateUnitUnsupported, outcome)
}

func TestValidateProfile_ExtraneousPhaseValuesOnDC(t *testing.T) {
	profile := newProfile(1, 1, types.ChargingProfilePurposeTxDefaultProfile, types.ChargingProfileKindAbsolute, period(0, 10))
	profile.ChargingSchedule[0].ChargingSchedulePeriod[0].NumberPhases = intPtr(3)

	registry := evse.Static{1: &evse.StaticView{Phase: evse.PhaseTypeDC}}
	outcome := ValidateProfile(profile, 1, mustTime("2024-01-01T00:00:00Z"), NewProfileStore(), registry, defaultDeviceModel())
	assert.Equal(t, ChargingSchedulePeriodExtraneousPhaseValues, outcome)
}

func TestValidateProfile_ConformsNumberPhasesOnAC(t *testing.T) {
	profile := newProfile(1, 1, types.ChargingProfilePurposeTxDefaultProfile, types.ChargingProfileKindAbsolute, period(0, 10))
	registry := evse.Static{1: &evse.StaticView{Phase: evse.PhaseTypeAC, Tx: &evse.Transaction{Id: 9}}}
	profile.TransactionId = intPtr(9)
	profile.ChargingProfilePurpose = types.ChargingProfilePurposeTxProfile

	outcome := ValidateProfile(profile, 1, mustTime("2024-01-01T00:00:00Z"), NewProfileStore(), registry, defaultDeviceModel())
	require.Equal(t, Valid, outcome)
	assert.Equal(t, 3, *profile.ChargingSchedule[0].ChargingSchedulePeriod[0].NumberPhases)
}

func TestValidateProfile_ConformsValidityPeriod(t *testing.T) {
	profile := newProfile(1, 0, types.ChargingProfilePurposeChargingStationMaxProfile, types.ChargingProfileKindAbsolute, period(0, 10))
	now := mustTime("2024-01-01T00:00:00Z")

	outcome := ValidateProfile(profile, StationWideEvseId, now, NewProfileStore(), evse.Static{}, defaultDeviceModel())
	require.Equal(t, Valid, outcome)
	assert.Equal(t, now, profile.ValidFrom.Time)
	assert.Equal(t, EndOfTime, profile.ValidTo.Time)
}

// deviceModelStub lets tests narrow the supported-unit list without pulling
// in devicemodel.Static's CSV parsing.
type deviceModelStub struct {
	units string
}

func (d *deviceModelStub) ChargingScheduleChargingRateUnits() []types.ChargingRateUnitType {
	return []types.ChargingRateUnitType{types.ChargingRateUnitType(d.units)}
}
func (d *deviceModelStub) ChargingStationSupplyPhases() int     { return 3 }
func (d *deviceModelStub) ACPhaseSwitchingSupported() bool      { return false }
func (d *deviceModelStub) TxStartPointHasPowerPathClosed() bool { return false }
