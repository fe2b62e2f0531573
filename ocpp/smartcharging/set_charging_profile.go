package smartcharging

import "smartcharge/types"

const SetChargingProfileFeatureName = "SetChargingProfile"

// SetChargingProfileRequest is the OCPP 2.0.1 SetChargingProfile.req: an
// evseId of 0 addresses the whole station, following the teacher's
// SetChargingProfileRequest but with evseId replacing the OCPP 1.6
// connectorId and csChargingProfiles trimmed to a single profile.
type SetChargingProfileRequest struct {
	EvseId          int                    `json:"evseId" validate:"gte=0"`
	ChargingProfile *types.ChargingProfile `json:"chargingProfile" validate:"required"`
}

func NewSetChargingProfileRequest(evseId int, profile *types.ChargingProfile) *SetChargingProfileRequest {
	return &SetChargingProfileRequest{EvseId: evseId, ChargingProfile: profile}
}

func (r SetChargingProfileRequest) GetFeatureName() string {
	return SetChargingProfileFeatureName
}

// SetChargingProfileResponse is SetChargingProfile.conf.
type SetChargingProfileResponse struct {
	Status     ChargingProfileStatus `json:"status"`
	StatusInfo string                `json:"statusInfo,omitempty"`
}

func (r SetChargingProfileResponse) GetFeatureName() string {
	return SetChargingProfileFeatureName
}

// NewDefaultChargingProfile builds a station-wide recurring daily
// TxDefaultProfile capping delivered power to limit watts, the demo
// harness's stand-in for the teacher's NewDefaultChargingProfile.
func NewDefaultChargingProfile(id, stackLevel int, startSchedule types.DateTime, limitWatts float64) *types.ChargingProfile {
	duration := 86400
	return &types.ChargingProfile{
		Id:                     id,
		StackLevel:             stackLevel,
		ChargingProfilePurpose: types.ChargingProfilePurposeTxDefaultProfile,
		ChargingProfileKind:    types.ChargingProfileKindRecurring,
		RecurrencyKind:         types.RecurrencyKindDaily,
		ChargingSchedule: []types.ChargingSchedule{{
			StartSchedule:    &startSchedule,
			Duration:         &duration,
			ChargingRateUnit: types.ChargingRateUnitWatts,
			ChargingSchedulePeriod: []types.ChargingSchedulePeriod{
				{StartPeriod: 0, Limit: limitWatts},
			},
		}},
	}
}

// NewTransactionChargingProfile builds a per-transaction TxProfile whose
// anchor is the transaction's own start, following the teacher's
// NewTransactionChargingProfile.
func NewTransactionChargingProfile(id, stackLevel, transactionId int, limitWatts float64) *types.ChargingProfile {
	return &types.ChargingProfile{
		Id:                     id,
		StackLevel:             stackLevel,
		TransactionId:          &transactionId,
		ChargingProfilePurpose: types.ChargingProfilePurposeTxProfile,
		ChargingProfileKind:    types.ChargingProfileKindRelative,
		ChargingSchedule: []types.ChargingSchedule{{
			ChargingRateUnit: types.ChargingRateUnitWatts,
			ChargingSchedulePeriod: []types.ChargingSchedulePeriod{
				{StartPeriod: 0, Limit: limitWatts},
			},
		}},
	}
}
