// Package smartcharging implements the charging-station controller's smart
// charging core: profile validation and composite schedule computation,
// following the component split of the teacher's ocpp/smartcharging
// package but replacing its thin OCPP 1.6 wire structs with the full
// OCPP 2.0.1 validation and merge pipeline.
package smartcharging

import (
	"fmt"
	"time"

	"smartcharge/clock"
	"smartcharge/devicemodel"
	"smartcharge/evse"
	"smartcharge/internal"
	"smartcharge/types"
)

const (
	featureName          = "SmartCharging"
	validatorFeatureName = "Validator"
)

// Core is the public facade named in §6: validate_profile, add_profile,
// get_profiles, calculate_composite_schedule, backed by a ProfileStore and
// the read-only device-model and EVSE collaborators.
type Core struct {
	store    *ProfileStore
	registry evse.Registry
	dm       devicemodel.View
	clock    clock.Clock
	log      internal.LogHandler
}

// New wires a Core from its collaborators. log may be nil, in which case
// Core logs nothing.
func New(registry evse.Registry, dm devicemodel.View, c clock.Clock, log internal.LogHandler) *Core {
	return &Core{
		store:    NewProfileStore(),
		registry: registry,
		dm:       dm,
		clock:    c,
		log:      log,
	}
}

// ValidateProfile runs the rule battery against profile as it would be
// installed under evseId. It conforms profile in place, whatever the
// outcome.
func (c *Core) ValidateProfile(profile *types.ChargingProfile, evseId int) Outcome {
	if c.log != nil && len(profile.ChargingSchedule) > 1 {
		c.log.Warn(fmt.Sprintf("profile %d carries %d chargingSchedules; only the first is used", profile.Id, len(profile.ChargingSchedule)))
	}
	outcome := ValidateProfile(profile, evseId, c.clock.Now(), c.store, c.registry, c.dm)
	if c.log != nil && outcome != Valid {
		c.log.FeatureEvent(validatorFeatureName, evseScopeId(evseId), fmt.Sprintf("profile %d rejected: %s", profile.Id, outcome))
	}
	return outcome
}

// AddProfile stores profile under evseId. Callers must call this only after
// ValidateProfile has returned Valid on the same profile.
func (c *Core) AddProfile(evseId int, profile *types.ChargingProfile) {
	c.store.Add(evseId, profile, c.clock.Now())
	if c.log != nil {
		c.log.FeatureEvent(featureName, evseScopeId(evseId), fmt.Sprintf("profile %d installed at stack level %d", profile.Id, profile.StackLevel))
	}
}

// ValidateAndAdd is the common validate-then-store call sequence: validate
// profile for evseId and, if Valid, store it. It returns the outcome either
// way so callers can report rejection without a second call.
func (c *Core) ValidateAndAdd(evseId int, profile *types.ChargingProfile) Outcome {
	outcome := c.ValidateProfile(profile, evseId)
	if outcome == Valid {
		c.AddProfile(evseId, profile)
	}
	return outcome
}

// GetProfiles returns every stored profile, station-wide first then
// per-EVSE in ascending id order.
func (c *Core) GetProfiles() []*types.ChargingProfile {
	stored := c.store.GetAll()
	out := make([]*types.ChargingProfile, len(stored))
	for i, sp := range stored {
		out[i] = sp.Profile
	}
	return out
}

// ClearProfiles removes every stored profile matching criteria and returns
// the count removed.
func (c *Core) ClearProfiles(criteria ClearCriteria) int {
	return c.store.Clear(criteria)
}

// EndTransaction clears every TxProfile associated with transactionId, per
// the Lifecycle note in §3 that TxProfiles are cleared when their
// transaction ends.
func (c *Core) EndTransaction(transactionId int) int {
	return c.store.ClearByTransaction(transactionId)
}

// CalculateCompositeSchedule computes the composite schedule for evseId
// over [start, end) in unit u, from every station-wide and evseId-scoped
// profile currently stored. A negative window (end before start) yields an
// empty, zero-duration schedule per §9.
func (c *Core) CalculateCompositeSchedule(evseId int, start, end time.Time, u types.ChargingRateUnitType) *types.CompositeSchedule {
	if !start.Before(end) {
		return &types.CompositeSchedule{
			EvseId:           evseId,
			ScheduleStart:    *types.NewDateTime(start),
			ChargingRateUnit: u,
		}
	}

	profiles := c.store.GetAllForEvse(StationWideEvseId)
	if evseId != StationWideEvseId {
		profiles = append(profiles, c.store.GetAllForEvse(evseId)...)
	}

	entries := CollectEntries(profiles, start, end, c.registry, c.dm)
	schedule := MergeComposite(evseId, start, end, u, entries)

	if c.log != nil {
		c.log.FeatureEvent(featureName, evseScopeId(evseId), fmt.Sprintf("composite schedule computed: %d periods over %ds", len(schedule.ChargingSchedulePeriod), schedule.Duration))
	}
	return schedule
}

func evseScopeId(evseId int) string {
	if evseId == StationWideEvseId {
		return "station"
	}
	return fmt.Sprintf("evse-%d", evseId)
}
