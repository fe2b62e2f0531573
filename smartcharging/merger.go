package smartcharging

import (
	"sort"
	"time"

	"smartcharge/devicemodel"
	"smartcharge/evse"
	"smartcharge/types"
)

// txSidePurposes lists the purposes considered, in the precedence order
// CompositeMerger applies when selecting which purpose's entry wins a
// sub-interval: TxProfile, when present, always beats TxDefaultProfile for
// the same interval (spec §4.5 step 2b, L3).
var txSidePurposes = []types.ChargingProfilePurposeType{
	types.ChargingProfilePurposeTxProfile,
	types.ChargingProfilePurposeTxDefaultProfile,
}

// MergeComposite builds the CompositeSchedule for evseId over
// [queryStart, queryEnd) in unit u, given every PeriodEntry contributed by
// the in-scope profiles (station-wide plus evseId-specific). Entries from
// out-of-scope EVSEs must be filtered out by the caller before calling this.
func MergeComposite(evseId int, queryStart, queryEnd time.Time, u types.ChargingRateUnitType, entries []PeriodEntry) *types.CompositeSchedule {
	out := &types.CompositeSchedule{
		EvseId:           evseId,
		ScheduleStart:    *types.NewDateTime(queryStart),
		ChargingRateUnit: u,
	}
	if !queryStart.Before(queryEnd) {
		return out
	}

	boundaries := boundaryTimes(entries, queryStart, queryEnd)
	if len(boundaries) < 2 {
		return out
	}

	lastEmittedEnd := queryStart
	haveOpen := false
	var openLimit float64
	var openPhases *int

	for i := 0; i+1 < len(boundaries); i++ {
		t, next := boundaries[i], boundaries[i+1]
		if !t.Before(next) {
			continue
		}

		limit, phases, ok := effectiveLimit(entries, t, next, u)
		if !ok {
			haveOpen = false
			continue
		}

		if haveOpen && limit == openLimit && samePhases(phases, openPhases) {
			lastEmittedEnd = next
			continue
		}

		out.ChargingSchedulePeriod = append(out.ChargingSchedulePeriod, types.ChargingSchedulePeriod{
			StartPeriod:  int(t.Sub(queryStart) / time.Second),
			Limit:        limit,
			NumberPhases: phases,
		})
		openLimit, openPhases, haveOpen = limit, phases, true
		lastEmittedEnd = next
	}

	out.Duration = int(lastEmittedEnd.Sub(queryStart) / time.Second)
	return out
}

func samePhases(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// boundaryTimes returns the sorted, deduplicated set of entry start/end
// times intersected with [queryStart, queryEnd], including the endpoints.
func boundaryTimes(entries []PeriodEntry, queryStart, queryEnd time.Time) []time.Time {
	set := map[int64]time.Time{queryStart.Unix(): queryStart, queryEnd.Unix(): queryEnd}
	for _, e := range entries {
		if !e.Start.Before(queryStart) && !e.Start.After(queryEnd) {
			set[e.Start.Unix()] = e.Start
		}
		if !e.End.Before(queryStart) && !e.End.After(queryEnd) {
			set[e.End.Unix()] = e.End
		}
	}
	out := make([]time.Time, 0, len(set))
	for _, t := range set {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// effectiveLimit computes the combined limit for [t, next), per §4.5 step 2.
func effectiveLimit(entries []PeriodEntry, t, next time.Time, u types.ChargingRateUnitType) (float64, *int, bool) {
	capEntry := highestStack(entries, types.ChargingProfilePurposeChargingStationMaxProfile, t, next)

	var txEntry *PeriodEntry
	for _, purpose := range txSidePurposes {
		if e := highestStack(entries, purpose, t, next); e != nil {
			txEntry = e
			break
		}
	}

	if capEntry == nil && txEntry == nil {
		return 0, nil, false
	}

	var limit float64
	var phases *int
	have := false

	if txEntry != nil {
		limit = ConvertLimit(txEntry.Limit, txEntry.NumberPhases, txEntry.Unit, u)
		phases = txEntry.NumberPhases
		have = true
	}
	if capEntry != nil {
		capLimit := ConvertLimit(capEntry.Limit, capEntry.NumberPhases, capEntry.Unit, u)
		if !have || capLimit < limit {
			limit = capLimit
			phases = capEntry.NumberPhases
		}
		have = true
	}
	return limit, phases, have
}

// highestStack returns the PeriodEntry of purpose covering [t, next) with
// the highest StackLevel, ties broken by later Seq (later addition to the
// store wins, per §4.5 step 2a).
func highestStack(entries []PeriodEntry, purpose types.ChargingProfilePurposeType, t, next time.Time) *PeriodEntry {
	var best *PeriodEntry
	for i := range entries {
		e := &entries[i]
		if e.Profile.Profile.ChargingProfilePurpose != purpose {
			continue
		}
		if e.Start.After(t) || e.End.Before(next) {
			continue
		}
		if best == nil {
			best = e
			continue
		}
		if e.Profile.Profile.StackLevel > best.Profile.Profile.StackLevel {
			best = e
			continue
		}
		if e.Profile.Profile.StackLevel == best.Profile.Profile.StackLevel && e.Profile.Seq > best.Profile.Seq {
			best = e
		}
	}
	return best
}

// CollectEntries gathers the PeriodEntries every profile in profiles
// contributes over [queryStart, queryEnd), in the deterministic order
// spec §4.4 step 5 requires: profile id, then occurrence, then period index.
// BuildPeriodEntries already emits occurrence-then-index order per profile;
// sorting the stored profiles by id beforehand gives the full ordering.
func CollectEntries(profiles []*StoredProfile, queryStart, queryEnd time.Time, registry evse.Registry, dm devicemodel.View) []PeriodEntry {
	sorted := make([]*StoredProfile, len(profiles))
	copy(sorted, profiles)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Profile.Id < sorted[j].Profile.Id })

	var out []PeriodEntry
	for _, sp := range sorted {
		out = append(out, BuildPeriodEntries(sp, queryStart, queryEnd, registry, dm)...)
	}
	return out
}
