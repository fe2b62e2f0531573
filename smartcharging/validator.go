package smartcharging

import (
	"time"

	"smartcharge/devicemodel"
	"smartcharge/evse"
	"smartcharge/types"
)

// ValidateProfile runs the full rule battery against profile as it would be
// installed under evseId, given the profiles already in store. It conforms
// profile in place (fills validFrom/validTo, defaults numberPhases for AC
// EVSEs) so that on Valid the caller can pass the same value straight to
// Add; the conforming steps run before the checks, so a rejected profile
// may also have been modified.
//
// Evaluation order follows §4.3: conform validity periods, then (if
// evseId != 0) existence, then the id-collision check against an installed
// ChargingStationExternalConstraints profile, then schedule structural checks, then
// purpose-specific checks — the validity-overlap check runs first among
// those, ahead of the rest of that purpose's own checks. The first
// failing check short-circuits.
func ValidateProfile(profile *types.ChargingProfile, evseId int, now time.Time, store *ProfileStore, registry evse.Registry, dm devicemodel.View) Outcome {
	conformValidityPeriod(profile, now)

	var view evse.View
	if evseId != StationWideEvseId {
		v, ok := registry.Get(evseId)
		if !ok {
			return EvseDoesNotExist
		}
		view = v
	}

	if existing, ok := store.Get(evseId, profile.Id); ok &&
		existing.Profile.ChargingProfilePurpose == types.ChargingProfilePurposeChargingStationExternalConstraints {
		return ExistingChargingStationExternalConstraints
	}

	phase := resolvePhaseType(view, dm)
	conformNumberPhases(profile, phase)

	if outcome := validateScheduleStructure(profile, dm); outcome != Valid {
		return outcome
	}
	if outcome := checkPhasePeriods(profile, phase, dm); outcome != Valid {
		return outcome
	}

	// The validity-overlap check runs first inside each purpose-specific
	// validator, ahead of that purpose's own checks, per the original
	// implementation's validate_charging_station_max_profile /
	// validate_tx_default_profile ordering.
	switch profile.ChargingProfilePurpose {
	case types.ChargingProfilePurposeChargingStationMaxProfile:
		if outcome := checkDuplicateValidityPeriod(profile, evseId, store); outcome != Valid {
			return outcome
		}
		if outcome := validateChargingStationMaxProfile(profile, evseId); outcome != Valid {
			return outcome
		}
	case types.ChargingProfilePurposeTxDefaultProfile:
		if outcome := checkDuplicateValidityPeriod(profile, evseId, store); outcome != Valid {
			return outcome
		}
		if outcome := validateTxDefaultProfile(profile, evseId, store); outcome != Valid {
			return outcome
		}
	case types.ChargingProfilePurposeTxProfile:
		if outcome := validateTxProfile(profile, evseId, view, store); outcome != Valid {
			return outcome
		}
	case types.ChargingProfilePurposeChargingStationExternalConstraints:
		if outcome := checkDuplicateValidityPeriod(profile, evseId, store); outcome != Valid {
			return outcome
		}
	default:
		return InvalidProfileType
	}

	return Valid
}

// conformValidityPeriod fills absent validFrom with now and absent validTo
// with the end-of-time sentinel, per §4.3.
func conformValidityPeriod(profile *types.ChargingProfile, now time.Time) {
	if profile.ValidFrom == nil {
		profile.ValidFrom = types.NewDateTime(now)
	}
	if profile.ValidTo == nil {
		profile.ValidTo = types.NewDateTime(EndOfTime)
	}
}

// resolvePhaseType implements §4.3's "Current phase type resolution": prefer
// the EVSE's reported phase type when one is supplied, else fall back to the
// device model's station-wide supply phase count.
func resolvePhaseType(view evse.View, dm devicemodel.View) evse.PhaseType {
	if view != nil {
		return view.PhaseType()
	}
	switch dm.ChargingStationSupplyPhases() {
	case 1, 3:
		return evse.PhaseTypeAC
	case 0:
		return evse.PhaseTypeDC
	default:
		return evse.PhaseTypeUnknown
	}
}

// conformNumberPhases fills absent numberPhases with 3 on every period of
// the profile's first schedule when the resolved phase type is AC.
func conformNumberPhases(profile *types.ChargingProfile, phase evse.PhaseType) {
	if phase != evse.PhaseTypeAC {
		return
	}
	schedule := profile.FirstSchedule()
	if schedule == nil {
		return
	}
	for i := range schedule.ChargingSchedulePeriod {
		if schedule.ChargingSchedulePeriod[i].NumberPhases == nil {
			three := 3
			schedule.ChargingSchedulePeriod[i].NumberPhases = &three
		}
	}
}

func validateScheduleStructure(profile *types.ChargingProfile, dm devicemodel.View) Outcome {
	schedule := profile.FirstSchedule()
	if schedule == nil || len(schedule.ChargingSchedulePeriod) == 0 {
		return ChargingProfileNoChargingSchedulePeriods
	}

	periods := schedule.ChargingSchedulePeriod
	if periods[0].StartPeriod != 0 {
		return ChargingProfileFirstStartScheduleIsNotZero
	}
	for i := 1; i < len(periods); i++ {
		if periods[i].StartPeriod <= periods[i-1].StartPeriod {
			return ChargingSchedulePeriodsOutOfOrder
		}
	}

	if !devicemodel.SupportsUnit(dm, schedule.ChargingRateUnit) {
		return ChargingScheduleChargingRateUnitUnsupported
	}

	switch profile.ChargingProfileKind {
	case types.ChargingProfileKindRelative:
		if schedule.StartSchedule != nil {
			return ChargingProfileExtraneousStartSchedule
		}
	default:
		if schedule.StartSchedule == nil {
			return ChargingProfileMissingRequiredStartSchedule
		}
	}

	return Valid
}

func checkPhasePeriods(profile *types.ChargingProfile, phase evse.PhaseType, dm devicemodel.View) Outcome {
	schedule := profile.FirstSchedule()
	for _, p := range schedule.ChargingSchedulePeriod {
		if p.PhaseToUse != nil {
			if p.NumberPhases == nil || *p.NumberPhases != 1 {
				return ChargingSchedulePeriodInvalidPhaseToUse
			}
			if !dm.ACPhaseSwitchingSupported() {
				return ChargingSchedulePeriodPhaseToUseACPhaseSwitchingUnsupported
			}
		}
		if phase == evse.PhaseTypeDC {
			if p.NumberPhases != nil || p.PhaseToUse != nil {
				return ChargingSchedulePeriodExtraneousPhaseValues
			}
		}
		if phase == evse.PhaseTypeAC && p.NumberPhases != nil && *p.NumberPhases > 3 {
			return ChargingSchedulePeriodUnsupportedNumberPhases
		}
	}
	return Valid
}

func validateChargingStationMaxProfile(profile *types.ChargingProfile, evseId int) Outcome {
	if evseId > StationWideEvseId {
		return ChargingStationMaxProfileEvseIdGreaterThanZero
	}
	if profile.ChargingProfileKind == types.ChargingProfileKindRelative {
		return ChargingStationMaxProfileCannotBeRelative
	}
	return Valid
}

func validateTxDefaultProfile(profile *types.ChargingProfile, evseId int, store *ProfileStore) Outcome {
	// Scope for DuplicateTxDefaultProfileFound: station-wide candidates are
	// compared against per-EVSE profiles and vice versa (§4.3 note).
	compareScope := ScopeEvseSpecific
	if evseId != StationWideEvseId {
		compareScope = ScopeStationWide
	}
	for _, other := range store.ByPurpose(types.ChargingProfilePurposeTxDefaultProfile, compareScope) {
		if other.Profile.Id == profile.Id {
			continue
		}
		if other.Profile.StackLevel == profile.StackLevel {
			return DuplicateTxDefaultProfileFound
		}
	}
	return Valid
}

func validateTxProfile(profile *types.ChargingProfile, evseId int, view evse.View, store *ProfileStore) Outcome {
	if evseId <= StationWideEvseId {
		return TxProfileEvseIdNotGreaterThanZero
	}
	if profile.TransactionId == nil {
		return TxProfileMissingTransactionId
	}
	if view == nil || !view.HasActiveTransaction() {
		return TxProfileEvseHasNoActiveTransaction
	}
	if view.Transaction().Id != *profile.TransactionId {
		return TxProfileTransactionNotOnEvse
	}

	for _, other := range store.ByPurpose(types.ChargingProfilePurposeTxProfile, ScopeBoth) {
		if other.Profile.Id == profile.Id {
			continue
		}
		if other.Profile.TransactionId == nil || *other.Profile.TransactionId != *profile.TransactionId {
			continue
		}
		if other.Profile.StackLevel == profile.StackLevel {
			return TxProfileConflictingStackLevel
		}
	}
	return Valid
}

// checkDuplicateValidityPeriod implements the K01.FR validity-overlap test
// (§4.3): two profiles of the same stackLevel and kind on the same EVSE
// conflict if their [validFrom, validTo] intervals overlap. TxProfiles and
// cross-id comparisons with itself are excluded.
func checkDuplicateValidityPeriod(profile *types.ChargingProfile, evseId int, store *ProfileStore) Outcome {
	if profile.ChargingProfilePurpose == types.ChargingProfilePurposeTxProfile {
		return Valid
	}
	for _, other := range store.GetAllForEvse(evseId) {
		if other.Profile.Id == profile.Id {
			continue
		}
		if other.Profile.ChargingProfilePurpose == types.ChargingProfilePurposeTxProfile {
			continue
		}
		if other.Profile.StackLevel != profile.StackLevel || other.Profile.ChargingProfileKind != profile.ChargingProfileKind {
			continue
		}
		if intervalsOverlap(profile.ValidFrom.Time, profile.ValidTo.Time, other.Profile.ValidFrom.Time, other.Profile.ValidTo.Time) {
			return DuplicateProfileValidityPeriod
		}
	}
	return Valid
}

func intervalsOverlap(aFrom, aTo, bFrom, bTo time.Time) bool {
	return !aFrom.After(bTo) && !aTo.Before(bFrom)
}
