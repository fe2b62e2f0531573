package smartcharging

import (
	"time"

	"smartcharge/devicemodel"
	"smartcharge/evse"
	"smartcharge/types"
)

// EndOfTime stands in for "no upper bound". It plays the role the original
// implementation's MAX_DATE_TIME constant does: a concrete, comparable
// sentinel rather than a nilable end.
var EndOfTime = time.Date(9999, time.January, 1, 0, 0, 0, 0, time.UTC)

const (
	secondsPerDay  = 86400
	daysPerWeek    = 7
	secondsPerWeek = secondsPerDay * daysPerWeek
)

// ProfileAnchor returns the absolute time from which sp's ChargingSchedule
// period offsets are measured, per spec §4.1. It returns ok=false when no
// anchor can be determined (a Relative profile with no active transaction
// on evseId), in which case the profile contributes nothing to the
// composite schedule.
func ProfileAnchor(sp *StoredProfile, now time.Time, registry evse.Registry, dm devicemodel.View) (time.Time, bool) {
	profile := sp.Profile
	schedule := profile.FirstSchedule()
	if schedule == nil {
		return time.Time{}, false
	}

	switch profile.ChargingProfileKind {
	case types.ChargingProfileKindAbsolute:
		if schedule.StartSchedule == nil {
			return time.Time{}, false
		}
		return schedule.StartSchedule.Time.Truncate(time.Second), true

	case types.ChargingProfileKindRecurring:
		if schedule.StartSchedule == nil {
			return time.Time{}, false
		}
		stride := secondsPerDay
		if profile.RecurrencyKind == types.RecurrencyKindWeekly {
			stride = secondsPerWeek
		}
		return mostRecentOccurrence(schedule.StartSchedule.Time, now, stride), true

	case types.ChargingProfileKindRelative:
		view, ok := registry.Get(sp.EvseId)
		if !ok || !view.HasActiveTransaction() {
			return time.Time{}, false
		}
		tx := view.Transaction()
		txStart := tx.StartTime
		if dm.TxStartPointHasPowerPathClosed() && tx.PowerPathClosedTime != nil {
			txStart = *tx.PowerPathClosedTime
		}
		anchor := sp.InstalledAt
		if txStart.After(anchor) {
			anchor = txStart
		}
		return anchor, true
	}

	return time.Time{}, false
}

// mostRecentOccurrence returns the most recent instant at or before now
// that lies a whole number of strideSeconds strides from startSchedule,
// winding backward by full
// stride steps if now precedes startSchedule so the result may fall
// before startSchedule itself (spec §4.1, B1).
func mostRecentOccurrence(startSchedule, now time.Time, strideSeconds int) time.Time {
	stride := time.Duration(strideSeconds) * time.Second
	diff := now.Sub(startSchedule)
	steps := int64(diff / stride)
	if diff%stride < 0 {
		steps--
	}
	return startSchedule.Add(time.Duration(steps) * stride)
}

// PeriodEnd returns the absolute end of the period at index within
// schedule, anchored at anchor: the next period's startPeriod if one
// exists and lies within the schedule's duration, else the duration
// boundary if the schedule declares one, else EndOfTime.
func PeriodEnd(index int, anchor time.Time, schedule *types.ChargingSchedule) time.Time {
	periods := schedule.ChargingSchedulePeriod
	durationBound := EndOfTime
	if schedule.Duration != nil {
		durationBound = anchor.Add(time.Duration(*schedule.Duration) * time.Second)
	}

	if index+1 < len(periods) {
		next := anchor.Add(time.Duration(periods[index+1].StartPeriod) * time.Second)
		if schedule.Duration == nil || next.Before(durationBound) || next.Equal(durationBound) {
			return next
		}
		return durationBound
	}
	return durationBound
}
