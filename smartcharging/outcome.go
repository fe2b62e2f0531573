package smartcharging

// Outcome is the result of validating a ChargingProfile. Names are stable
// identifiers: callers log them verbatim and may map them to an OCPP
// Rejected reason code.
type Outcome string

const (
	Valid Outcome = "Valid"

	EvseDoesNotExist    Outcome = "EvseDoesNotExist"
	InvalidProfileType  Outcome = "InvalidProfileType"

	ExistingChargingStationExternalConstraints Outcome = "ExistingChargingStationExternalConstraints"

	ChargingStationMaxProfileEvseIdGreaterThanZero Outcome = "ChargingStationMaxProfileEvseIdGreaterThanZero"
	ChargingStationMaxProfileCannotBeRelative      Outcome = "ChargingStationMaxProfileCannotBeRelative"

	TxProfileMissingTransactionId       Outcome = "TxProfileMissingTransactionId"
	TxProfileEvseIdNotGreaterThanZero   Outcome = "TxProfileEvseIdNotGreaterThanZero"
	TxProfileEvseHasNoActiveTransaction Outcome = "TxProfileEvseHasNoActiveTransaction"
	TxProfileTransactionNotOnEvse       Outcome = "TxProfileTransactionNotOnEvse"
	TxProfileConflictingStackLevel      Outcome = "TxProfileConflictingStackLevel"

	DuplicateTxDefaultProfileFound Outcome = "DuplicateTxDefaultProfileFound"
	DuplicateProfileValidityPeriod Outcome = "DuplicateProfileValidityPeriod"

	ChargingProfileNoChargingSchedulePeriods                    Outcome = "ChargingProfileNoChargingSchedulePeriods"
	ChargingProfileFirstStartScheduleIsNotZero                  Outcome = "ChargingProfileFirstStartScheduleIsNotZero"
	ChargingSchedulePeriodsOutOfOrder                           Outcome = "ChargingSchedulePeriodsOutOfOrder"
	ChargingSchedulePeriodInvalidPhaseToUse                     Outcome = "ChargingSchedulePeriodInvalidPhaseToUse"
	ChargingSchedulePeriodPhaseToUseACPhaseSwitchingUnsupported Outcome = "ChargingSchedulePeriodPhaseToUseACPhaseSwitchingUnsupported"
	ChargingSchedulePeriodExtraneousPhaseValues                 Outcome = "ChargingSchedulePeriodExtraneousPhaseValues"
	ChargingSchedulePeriodUnsupportedNumberPhases               Outcome = "ChargingSchedulePeriodUnsupportedNumberPhases"
	ChargingScheduleChargingRateUnitUnsupported                 Outcome = "ChargingScheduleChargingRateUnitUnsupported"
	ChargingProfileMissingRequiredStartSchedule                 Outcome = "ChargingProfileMissingRequiredStartSchedule"
	ChargingProfileExtraneousStartSchedule                      Outcome = "ChargingProfileExtraneousStartSchedule"
)
