package smartcharging

import (
	"smartcharge/smartcharging"
	"smartcharge/types"
)

const ClearChargingProfileFeatureName = "ClearChargingProfile"

// ClearChargingProfileRequest is ClearChargingProfile.req, following the
// teacher's ClearChargingProfileRequest. EvseId replaces the OCPP 1.6
// connectorId.
type ClearChargingProfileRequest struct {
	Id                     *int                             `json:"id,omitempty"`
	EvseId                 *int                             `json:"evseId,omitempty" validate:"omitempty,gte=0"`
	ChargingProfilePurpose types.ChargingProfilePurposeType `json:"chargingProfilePurpose,omitempty"`
	StackLevel             *int                             `json:"stackLevel,omitempty" validate:"omitempty,gte=0"`
}

func NewClearChargingProfileRequest() *ClearChargingProfileRequest {
	return &ClearChargingProfileRequest{}
}

// NewClearDefaultChargingProfileRequest clears the station-wide default
// profile the demo seeds at id 1 / stack level 1, mirroring the teacher's
// NewClearDefaultChargingProfileRequest.
func NewClearDefaultChargingProfileRequest() *ClearChargingProfileRequest {
	id, stackLevel := 1, 1
	return &ClearChargingProfileRequest{
		Id:                     &id,
		StackLevel:             &stackLevel,
		ChargingProfilePurpose: types.ChargingProfilePurposeTxDefaultProfile,
	}
}

func (r ClearChargingProfileRequest) GetFeatureName() string {
	return ClearChargingProfileFeatureName
}

// ClearChargingProfileResponse is ClearChargingProfile.conf.
type ClearChargingProfileResponse struct {
	Status GenericStatus `json:"status"`
}

func (r ClearChargingProfileResponse) GetFeatureName() string {
	return ClearChargingProfileFeatureName
}

// ToCriteria converts the wire request into the core's ClearCriteria.
func (r *ClearChargingProfileRequest) ToCriteria() smartcharging.ClearCriteria {
	return smartcharging.ClearCriteria{
		Id:         r.Id,
		EvseId:     r.EvseId,
		Purpose:    r.ChargingProfilePurpose,
		StackLevel: r.StackLevel,
	}
}
