package smartcharging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartcharge/types"
)

// TestMergeComposite_StackOverride covers S3: two TxDefaultProfiles on the
// same EVSE, overlapping, with different stack levels. The higher stack
// level wins for the whole overlap.
func TestMergeComposite_StackOverride(t *testing.T) {
	low := newStoredProfile(1, 1, types.ChargingProfilePurposeTxDefaultProfile, types.ChargingProfileKindAbsolute, 1, period(0, 20))
	low.Profile.ChargingSchedule[0].StartSchedule = types.NewDateTime(mustTime("2024-01-01T13:00:00Z"))
	low.Profile.ChargingSchedule[0].Duration = intPtr(3600)
	low.Seq = 0

	high := newStoredProfile(2, 1, types.ChargingProfilePurposeTxDefaultProfile, types.ChargingProfileKindAbsolute, 2, period(0, 15))
	high.Profile.ChargingSchedule[0].StartSchedule = types.NewDateTime(mustTime("2024-01-01T13:00:00Z"))
	high.Profile.ChargingSchedule[0].Duration = intPtr(3600)
	high.Seq = 1

	start, end := mustTime("2024-01-01T13:00:00Z"), mustTime("2024-01-01T14:00:00Z")
	entries := CollectEntries([]*StoredProfile{low, high}, start, end, nil, defaultDeviceModel())
	schedule := MergeComposite(1, start, end, types.ChargingRateUnitWatts, entries)

	require.Len(t, schedule.ChargingSchedulePeriod, 1)
	assert.Equal(t, 15.0, schedule.ChargingSchedulePeriod[0].Limit)
	assert.Equal(t, 3600, schedule.Duration)
}

// TestMergeComposite_PurposeOverride covers S4: TxProfile overrides
// TxDefaultProfile, and ChargingStationMaxProfile further caps the result.
func TestMergeComposite_PurposeOverride(t *testing.T) {
	window := func(sp *StoredProfile, limit float64) *StoredProfile {
		sp.Profile.ChargingSchedule[0].StartSchedule = types.NewDateTime(mustTime("2024-01-01T13:00:00Z"))
		sp.Profile.ChargingSchedule[0].Duration = intPtr(3600)
		sp.Profile.ChargingSchedule[0].ChargingSchedulePeriod[0].Limit = limit
		return sp
	}

	maxProfile := window(newStoredProfile(1, 0, types.ChargingProfilePurposeChargingStationMaxProfile, types.ChargingProfileKindAbsolute, 0, period(0, 8)), 8)
	txDefault := window(newStoredProfile(2, 1, types.ChargingProfilePurposeTxDefaultProfile, types.ChargingProfileKindAbsolute, 0, period(0, 20)), 20)
	txProfile := window(newStoredProfile(3, 1, types.ChargingProfilePurposeTxProfile, types.ChargingProfileKindAbsolute, 0, period(0, 10)), 10)

	start, end := mustTime("2024-01-01T13:00:00Z"), mustTime("2024-01-01T14:00:00Z")
	entries := CollectEntries([]*StoredProfile{maxProfile, txDefault, txProfile}, start, end, nil, defaultDeviceModel())
	schedule := MergeComposite(1, start, end, types.ChargingRateUnitWatts, entries)

	require.Len(t, schedule.ChargingSchedulePeriod, 1)
	assert.Equal(t, 8.0, schedule.ChargingSchedulePeriod[0].Limit)
}

func TestMergeComposite_CoalescesEqualConsecutivePeriods(t *testing.T) {
	sp := newStoredProfile(1, 0, types.ChargingProfilePurposeChargingStationMaxProfile, types.ChargingProfileKindAbsolute, 0,
		period(0, 10), period(1800, 10), period(3600, 20))
	sp.Profile.ChargingSchedule[0].StartSchedule = types.NewDateTime(mustTime("2024-01-01T00:00:00Z"))
	sp.Profile.ChargingSchedule[0].Duration = intPtr(5400)

	start, end := mustTime("2024-01-01T00:00:00Z"), mustTime("2024-01-01T01:30:00Z")
	entries := CollectEntries([]*StoredProfile{sp}, start, end, nil, defaultDeviceModel())
	schedule := MergeComposite(0, start, end, types.ChargingRateUnitWatts, entries)

	require.Len(t, schedule.ChargingSchedulePeriod, 2)
	assert.Equal(t, 0, schedule.ChargingSchedulePeriod[0].StartPeriod)
	assert.Equal(t, 10.0, schedule.ChargingSchedulePeriod[0].Limit)
	assert.Equal(t, 3600, schedule.ChargingSchedulePeriod[1].StartPeriod)
	assert.Equal(t, 20.0, schedule.ChargingSchedulePeriod[1].Limit)
}

func TestMergeComposite_NoProfilesLeavesEmptySchedule(t *testing.T) {
	start, end := mustTime("2024-01-01T00:00:00Z"), mustTime("2024-01-01T01:00:00Z")
	schedule := MergeComposite(0, start, end, types.ChargingRateUnitWatts, nil)
	assert.Empty(t, schedule.ChargingSchedulePeriod)
}

func TestMergeComposite_NegativeWindowIsEmpty(t *testing.T) {
	start, end := mustTime("2024-01-01T01:00:00Z"), mustTime("2024-01-01T00:00:00Z")
	schedule := MergeComposite(0, start, end, types.ChargingRateUnitWatts, nil)
	assert.Equal(t, 0, schedule.Duration)
	assert.Empty(t, schedule.ChargingSchedulePeriod)
}

// TestMergeComposite_StartPeriodsStrictlyIncreasingFromZero checks P1.
func TestMergeComposite_StartPeriodsStrictlyIncreasingFromZero(t *testing.T) {
	sp := newStoredProfile(1, 0, types.ChargingProfilePurposeChargingStationMaxProfile, types.ChargingProfileKindAbsolute, 0,
		period(0, 10), period(900, 20), period(1800, 30))
	sp.Profile.ChargingSchedule[0].StartSchedule = types.NewDateTime(mustTime("2024-01-01T00:00:00Z"))
	sp.Profile.ChargingSchedule[0].Duration = intPtr(2700)

	start, end := mustTime("2024-01-01T00:00:00Z"), mustTime("2024-01-01T00:45:00Z")
	entries := CollectEntries([]*StoredProfile{sp}, start, end, nil, defaultDeviceModel())
	schedule := MergeComposite(0, start, end, types.ChargingRateUnitWatts, entries)

	require.NotEmpty(t, schedule.ChargingSchedulePeriod)
	assert.Equal(t, 0, schedule.ChargingSchedulePeriod[0].StartPeriod)
	for i := 1; i < len(schedule.ChargingSchedulePeriod); i++ {
		assert.Greater(t, schedule.ChargingSchedulePeriod[i].StartPeriod, schedule.ChargingSchedulePeriod[i-1].StartPeriod)
	}
}
