// Package power wires the smart charging core to the station's OCPP-J
// transport, following the teacher's power.LoadBalancer: a narrow,
// interface-driven layer that reacts to charging-station events by
// installing or clearing charging profiles and pushing the corresponding
// SetChargingProfile / ClearChargingProfile requests to the station.
package power

import "smartcharge/ocpp"

// Handler sends an OCPP request to the charging station identified by
// stationId and returns its response, mirroring the teacher's
// power.Handler.SendRequest.
type Handler interface {
	SendRequest(stationId string, request ocpp.Request) (ocpp.Response, error)
}
