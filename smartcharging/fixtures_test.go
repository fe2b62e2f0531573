package smartcharging

import (
	"testing"
	"time"

	"smartcharge/devicemodel"
	"smartcharge/types"
)

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func intPtr(n int) *int { return &n }

func period(startPeriod int, limit float64) types.ChargingSchedulePeriod {
	return types.ChargingSchedulePeriod{StartPeriod: startPeriod, Limit: limit}
}

// newStoredProfile builds a minimal, already-conformed StoredProfile for
// test setup, bypassing the Validator.
func newStoredProfile(id, evseId int, purpose types.ChargingProfilePurposeType, kind types.ChargingProfileKindType, stackLevel int, periods ...types.ChargingSchedulePeriod) *StoredProfile {
	return &StoredProfile{
		EvseId: evseId,
		Profile: &types.ChargingProfile{
			Id:                     id,
			StackLevel:             stackLevel,
			ChargingProfilePurpose: purpose,
			ChargingProfileKind:    kind,
			ValidFrom:              types.NewDateTime(mustTime("2000-01-01T00:00:00Z")),
			ValidTo:                types.NewDateTime(EndOfTime),
			ChargingSchedule: []types.ChargingSchedule{{
				ChargingRateUnit:       types.ChargingRateUnitWatts,
				ChargingSchedulePeriod: periods,
			}},
		},
	}
}

func defaultDeviceModel() devicemodel.View {
	return &devicemodel.Static{
		ChargingScheduleChargingRateUnit: "A,W",
		SupplyPhases:                     3,
		TxStartPoint:                     "PowerPathClosed",
	}
}

// newStore is a convenience for tests that need a populated ProfileStore
// without going through the Validator.
func newStore(t *testing.T, profiles ...*StoredProfile) *ProfileStore {
	t.Helper()
	store := NewProfileStore()
	for _, sp := range profiles {
		store.Add(sp.EvseId, sp.Profile, sp.InstalledAt)
	}
	return store
}
