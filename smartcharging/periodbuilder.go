package smartcharging

import (
	"time"

	"smartcharge/devicemodel"
	"smartcharge/evse"
	"smartcharge/types"
)

// PeriodEntry is one flattened, absolutely-timed interval contributed by a
// single stored profile, ready for the CompositeMerger to combine against
// entries from other profiles. Limit is expressed in the schedule's own
// ChargingRateUnit; the merger converts units as needed.
type PeriodEntry struct {
	Profile    *StoredProfile
	Start      time.Time
	End        time.Time
	Limit      float64
	Unit       types.ChargingRateUnitType
	NumberPhases *int
}

// BuildPeriodEntries expands sp's ChargingSchedule into the PeriodEntry
// values that overlap [queryStart, queryEnd), anchored per TimeCalc. For a
// Recurring profile this winds the anchor backward far enough to cover
// queryStart and re-emits the schedule's periods for every occurrence that
// overlaps the query window, per spec §4.3's requirement that recurring
// profiles recur indefinitely across the query window.
func BuildPeriodEntries(sp *StoredProfile, queryStart, queryEnd time.Time, registry evse.Registry, dm devicemodel.View) []PeriodEntry {
	schedule := sp.Profile.FirstSchedule()
	if schedule == nil || len(schedule.ChargingSchedulePeriod) == 0 {
		return nil
	}

	anchor, ok := ProfileAnchor(sp, queryStart, registry, dm)
	if !ok {
		return nil
	}

	// Clip to [max(anchor, validFrom), validTo], per §4.4 step 2.
	validFrom := anchor
	if sp.Profile.ValidFrom != nil && sp.Profile.ValidFrom.Time.After(validFrom) {
		validFrom = sp.Profile.ValidFrom.Time
	}
	validTo := EndOfTime
	if sp.Profile.ValidTo != nil {
		validTo = sp.Profile.ValidTo.Time
	}
	if queryStart.Before(validFrom) {
		queryStart = validFrom
	}
	if queryEnd.After(validTo) {
		queryEnd = validTo
	}
	if !queryStart.Before(queryEnd) {
		return nil
	}

	if sp.Profile.ChargingProfileKind != types.ChargingProfileKindRecurring {
		return entriesForOccurrence(sp, schedule, anchor, queryStart, queryEnd)
	}

	stride := time.Duration(secondsPerDay) * time.Second
	if sp.Profile.RecurrencyKind == types.RecurrencyKindWeekly {
		stride = time.Duration(secondsPerWeek) * time.Second
	}

	var out []PeriodEntry
	occurrence := anchor
	for occurrence.Before(queryEnd) {
		out = append(out, entriesForOccurrence(sp, schedule, occurrence, queryStart, queryEnd)...)
		occurrence = occurrence.Add(stride)
	}
	return out
}

// entriesForOccurrence expands one run of schedule anchored at occurrence,
// clipped to [queryStart, queryEnd), dropping periods that don't overlap.
func entriesForOccurrence(sp *StoredProfile, schedule *types.ChargingSchedule, occurrence, queryStart, queryEnd time.Time) []PeriodEntry {
	var out []PeriodEntry
	for i, period := range schedule.ChargingSchedulePeriod {
		start := occurrence.Add(time.Duration(period.StartPeriod) * time.Second)
		end := PeriodEnd(i, occurrence, schedule)

		if !end.After(queryStart) || !start.Before(queryEnd) {
			continue
		}
		if start.Before(queryStart) {
			start = queryStart
		}
		if end.After(queryEnd) {
			end = queryEnd
		}
		if !start.Before(end) {
			continue
		}

		out = append(out, PeriodEntry{
			Profile:      sp,
			Start:        start,
			End:          end,
			Limit:        period.Limit,
			Unit:         schedule.ChargingRateUnit,
			NumberPhases: period.NumberPhases,
		})
	}
	return out
}
