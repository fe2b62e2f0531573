package power

import (
	"fmt"

	"smartcharge/internal"
	ocppsc "smartcharge/ocpp/smartcharging"
	"smartcharge/smartcharging"
	"smartcharge/types"
)

const featureName = "SmartChargingController"

// Controller is the outer-system counterpart to the teacher's LoadBalancer:
// it owns no validation or merge logic itself (that lives entirely in
// smartcharging.Core) and instead reacts to station events by calling the
// core and pushing the resulting profile changes out over Handler.
type Controller struct {
	core    *smartcharging.Core
	station Handler
	log     internal.LogHandler
}

func NewController(core *smartcharging.Core, station Handler, log internal.LogHandler) *Controller {
	return &Controller{core: core, station: station, log: log}
}

// OnStationBoot installs (or clears) the station-wide default profile,
// mirroring the teacher's OnChargePointBoot: a zero limitWatts clears the
// default instead of installing a profile capped at zero.
func (c *Controller) OnStationBoot(stationId string, startSchedule types.DateTime, limitWatts float64) error {
	if limitWatts <= 0 {
		req := ocppsc.NewClearDefaultChargingProfileRequest()
		c.ClearProfiles(stationId, req)
		_, err := c.station.SendRequest(stationId, req)
		return err
	}

	profile := ocppsc.NewDefaultChargingProfile(1, 1, startSchedule, limitWatts)
	outcome := c.core.ValidateAndAdd(smartcharging.StationWideEvseId, profile)
	if status := ocppsc.StatusForOutcome(outcome); status != ocppsc.ChargingProfileStatusAccepted {
		c.log.FeatureEvent(featureName, stationId, fmt.Sprintf("default profile %s: %s", status, outcome))
		return fmt.Errorf("default profile rejected: %s", outcome)
	}

	c.log.FeatureEvent(featureName, stationId, fmt.Sprintf("setting default charging profile to %.0fW", limitWatts))
	_, err := c.station.SendRequest(stationId, ocppsc.NewSetChargingProfileRequest(smartcharging.StationWideEvseId, profile))
	return err
}

// OnTransactionStarted installs a per-transaction TxProfile capping evseId
// at limitWatts for the duration of transactionId, mirroring the teacher's
// updateConnectorPower for an active connector.
func (c *Controller) OnTransactionStarted(stationId string, evseId, transactionId, profileId int, limitWatts float64) error {
	profile := ocppsc.NewTransactionChargingProfile(profileId, 10, transactionId, limitWatts)

	outcome := c.core.ValidateAndAdd(evseId, profile)
	if status := ocppsc.StatusForOutcome(outcome); status != ocppsc.ChargingProfileStatusAccepted {
		c.log.FeatureEvent(featureName, stationId, fmt.Sprintf("transaction profile %s: %s", status, outcome))
		return fmt.Errorf("transaction profile rejected: %s", outcome)
	}

	c.log.FeatureEvent(featureName, stationId, fmt.Sprintf("setting power limit to %.0fW for evse %d", limitWatts, evseId))
	_, err := c.station.SendRequest(stationId, ocppsc.NewSetChargingProfileRequest(evseId, profile))
	return err
}

// OnTransactionEnded clears every TxProfile tied to transactionId.
func (c *Controller) OnTransactionEnded(stationId string, transactionId int) {
	removed := c.core.EndTransaction(transactionId)
	if removed > 0 {
		c.log.FeatureEvent(featureName, stationId, fmt.Sprintf("cleared %d profile(s) for ended transaction %d", removed, transactionId))
	}
}

// Schedule computes the current composite schedule for evseId over
// [start, end) and wraps it in a GetCompositeSchedule.conf, the read path
// the demo's "schedule" command exercises.
func (c *Controller) Schedule(stationId string, evseId int, start, end types.DateTime, unit types.ChargingRateUnitType) *ocppsc.GetCompositeScheduleResponse {
	req := ocppsc.NewGetCompositeScheduleRequest(evseId, int(end.Time.Sub(start.Time).Seconds()))
	req.ChargingRateUnit = unit
	c.log.FeatureEvent(req.GetFeatureName(), stationId, fmt.Sprintf("evse %d over %ds", req.EvseId, req.Duration))

	schedule := c.core.CalculateCompositeSchedule(evseId, start.Time, end.Time, unit)
	return &ocppsc.GetCompositeScheduleResponse{
		Status:   ocppsc.GenericStatusAccepted,
		Schedule: schedule,
	}
}

// ClearProfiles removes every stored profile matching request's criteria and
// reports the result as a ClearChargingProfile.conf, mirroring the teacher's
// pattern of turning a core call's outcome into a wire status.
func (c *Controller) ClearProfiles(stationId string, request *ocppsc.ClearChargingProfileRequest) *ocppsc.ClearChargingProfileResponse {
	removed := c.core.ClearProfiles(request.ToCriteria())
	c.log.FeatureEvent(request.GetFeatureName(), stationId, fmt.Sprintf("cleared %d profile(s)", removed))
	return &ocppsc.ClearChargingProfileResponse{Status: ocppsc.GenericStatusForClearCount(removed)}
}
