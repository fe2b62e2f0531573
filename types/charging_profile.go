package types

// Charging Profiles (OCPP 2.0.1)

type ChargingProfilePurposeType string
type ChargingProfileKindType string
type RecurrencyKindType string
type ChargingRateUnitType string

const (
	ChargingProfilePurposeChargingStationMaxProfile         ChargingProfilePurposeType = "ChargingStationMaxProfile"
	ChargingProfilePurposeChargingStationExternalConstraints ChargingProfilePurposeType = "ChargingStationExternalConstraints"
	ChargingProfilePurposeTxDefaultProfile                  ChargingProfilePurposeType = "TxDefaultProfile"
	ChargingProfilePurposeTxProfile                         ChargingProfilePurposeType = "TxProfile"

	ChargingProfileKindAbsolute  ChargingProfileKindType = "Absolute"
	ChargingProfileKindRecurring ChargingProfileKindType = "Recurring"
	ChargingProfileKindRelative  ChargingProfileKindType = "Relative"

	RecurrencyKindDaily  RecurrencyKindType = "Daily"
	RecurrencyKindWeekly RecurrencyKindType = "Weekly"

	ChargingRateUnitWatts   ChargingRateUnitType = "W"
	ChargingRateUnitAmperes ChargingRateUnitType = "A"
)

// ChargingSchedulePeriod is one constant-limit sub-interval of a ChargingSchedule,
// measured in seconds from the schedule's anchor.
type ChargingSchedulePeriod struct {
	StartPeriod  int     `json:"startPeriod"`
	Limit        float64 `json:"limit"`
	NumberPhases *int    `json:"numberPhases,omitempty"`
	PhaseToUse   *int    `json:"phaseToUse,omitempty"`
}

// ChargingSchedule is the ordered set of periods a ChargingProfile applies,
// anchored either absolutely (StartSchedule) or relative to the profile's
// computed anchor.
type ChargingSchedule struct {
	Duration               *int                     `json:"duration,omitempty"`
	StartSchedule          *DateTime                `json:"startSchedule,omitempty"`
	ChargingRateUnit       ChargingRateUnitType     `json:"chargingRateUnit"`
	ChargingSchedulePeriod []ChargingSchedulePeriod `json:"chargingSchedulePeriod"`
	MinChargingRate        *float64                 `json:"minChargingRate,omitempty"`
}

// ChargingProfile is a prioritized, time-bounded set of charging limit
// instructions, as defined by OCPP 2.0.1's SetChargingProfileRequest.
type ChargingProfile struct {
	Id                     int                        `json:"id"`
	StackLevel             int                        `json:"stackLevel"`
	ChargingProfilePurpose ChargingProfilePurposeType `json:"chargingProfilePurpose"`
	ChargingProfileKind    ChargingProfileKindType    `json:"chargingProfileKind"`
	RecurrencyKind         RecurrencyKindType         `json:"recurrencyKind,omitempty"`
	ValidFrom              *DateTime                  `json:"validFrom,omitempty"`
	ValidTo                *DateTime                  `json:"validTo,omitempty"`
	TransactionId          *int                       `json:"transactionId,omitempty"`
	ChargingSchedule       []ChargingSchedule         `json:"chargingSchedule"`
}

// FirstSchedule returns the profile's first ChargingSchedule. The spec only
// requires implementations to act on the first schedule of a profile and to
// warn about any additional ones (see DESIGN.md, Open Question on multiple
// schedules per profile).
func (p *ChargingProfile) FirstSchedule() *ChargingSchedule {
	if len(p.ChargingSchedule) == 0 {
		return nil
	}
	return &p.ChargingSchedule[0]
}

// CompositeSchedule is the merged, single-valued limit curve produced by
// CalculateCompositeSchedule.
type CompositeSchedule struct {
	EvseId           int                      `json:"evseId"`
	ScheduleStart    DateTime                 `json:"scheduleStart"`
	Duration         int                      `json:"duration"`
	ChargingRateUnit ChargingRateUnitType     `json:"chargingRateUnit"`
	ChargingSchedulePeriod []ChargingSchedulePeriod `json:"chargingSchedulePeriod"`
}
