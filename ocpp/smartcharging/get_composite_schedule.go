package smartcharging

import "smartcharge/types"

const GetCompositeScheduleFeatureName = "GetCompositeSchedule"

// GetCompositeScheduleRequest is GetCompositeSchedule.req, following the
// teacher's GetCompositeScheduleRequest with connectorId renamed to evseId
// for OCPP 2.0.1.
type GetCompositeScheduleRequest struct {
	EvseId           int                        `json:"evseId" validate:"gte=0"`
	Duration         int                        `json:"duration" validate:"gte=0"`
	ChargingRateUnit types.ChargingRateUnitType `json:"chargingRateUnit,omitempty"`
}

func NewGetCompositeScheduleRequest(evseId, duration int) *GetCompositeScheduleRequest {
	return &GetCompositeScheduleRequest{EvseId: evseId, Duration: duration}
}

func (r GetCompositeScheduleRequest) GetFeatureName() string {
	return GetCompositeScheduleFeatureName
}

// GetCompositeScheduleResponse is GetCompositeSchedule.conf.
type GetCompositeScheduleResponse struct {
	Status   GenericStatus            `json:"status"`
	Schedule *types.CompositeSchedule `json:"schedule,omitempty"`
}

func (r GetCompositeScheduleResponse) GetFeatureName() string {
	return GetCompositeScheduleFeatureName
}
