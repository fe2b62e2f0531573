package smartcharging

import (
	"sort"
	"sync"
	"time"

	"smartcharge/types"
)

// StationWideEvseId is the sentinel EVSE id denoting "the whole station"
// rather than a specific connector.
const StationWideEvseId = 0

// StoredProfile is a ChargingProfile plus the bookkeeping the store and the
// PeriodEntryBuilder need that is not part of the wire type: which EVSE
// scope it was installed under, when it was added (used as the activation
// time for Relative profiles, see TimeCalc), and a monotonic sequence
// number used to break stack-level ties in the CompositeMerger.
type StoredProfile struct {
	Profile     *types.ChargingProfile
	EvseId      int
	InstalledAt time.Time
	Seq         int
}

// ProfileStore is the indexed collection of profiles keyed by EVSE id (0
// denotes station-wide). It is the only mutable state in the smart
// charging core; CalculateCompositeSchedule reads it but never writes it,
// so callers may run any number of readers concurrently with no writer
// active, per spec's single-writer/multi-reader requirement.
type ProfileStore struct {
	mu      sync.RWMutex
	byEvse  map[int][]*StoredProfile
	nextSeq int
}

// NewProfileStore returns an empty ProfileStore.
func NewProfileStore() *ProfileStore {
	return &ProfileStore{byEvse: make(map[int][]*StoredProfile)}
}

// Add stores profile under evseId, replacing any existing profile with the
// same id in that scope unless the existing profile's purpose is
// ChargingStationExternalConstraints, in which case the existing profile is
// kept and the new one is dropped. This component never rejects; rejection
// is the Validator's job.
func (s *ProfileStore) Add(evseId int, profile *types.ChargingProfile, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket := s.byEvse[evseId]
	for i, existing := range bucket {
		if existing.Profile.Id != profile.Id {
			continue
		}
		if existing.Profile.ChargingProfilePurpose == types.ChargingProfilePurposeChargingStationExternalConstraints {
			return
		}
		bucket[i] = &StoredProfile{Profile: profile, EvseId: evseId, InstalledAt: now, Seq: s.nextSeq}
		s.nextSeq++
		return
	}

	s.byEvse[evseId] = append(bucket, &StoredProfile{Profile: profile, EvseId: evseId, InstalledAt: now, Seq: s.nextSeq})
	s.nextSeq++
}

// Get returns the stored profile with the given id in evseId's scope.
func (s *ProfileStore) Get(evseId, id int) (*StoredProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sp := range s.byEvse[evseId] {
		if sp.Profile.Id == id {
			return sp, true
		}
	}
	return nil, false
}

// GetAllForEvse returns every profile installed under evseId, in insertion
// order.
func (s *ProfileStore) GetAllForEvse(evseId int) []*StoredProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*StoredProfile, len(s.byEvse[evseId]))
	copy(out, s.byEvse[evseId])
	return out
}

// GetAll flattens the station-wide bucket and every per-EVSE bucket,
// station-wide first, then per-EVSE in ascending EVSE id order.
func (s *ProfileStore) GetAll() []*StoredProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*StoredProfile
	out = append(out, s.byEvse[StationWideEvseId]...)

	var evseIds []int
	for evseId := range s.byEvse {
		if evseId != StationWideEvseId {
			evseIds = append(evseIds, evseId)
		}
	}
	sort.Ints(evseIds)
	for _, evseId := range evseIds {
		out = append(out, s.byEvse[evseId]...)
	}
	return out
}

// Scope selects which EVSE buckets ByPurpose searches.
type Scope int

const (
	ScopeStationWide Scope = iota
	ScopeEvseSpecific
	ScopeBoth
)

// ByPurpose returns every stored profile matching purpose within scope.
func (s *ProfileStore) ByPurpose(purpose types.ChargingProfilePurposeType, scope Scope) []*StoredProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*StoredProfile
	for evseId, bucket := range s.byEvse {
		switch scope {
		case ScopeStationWide:
			if evseId != StationWideEvseId {
				continue
			}
		case ScopeEvseSpecific:
			if evseId == StationWideEvseId {
				continue
			}
		case ScopeBoth:
		}
		for _, sp := range bucket {
			if sp.Profile.ChargingProfilePurpose == purpose {
				out = append(out, sp)
			}
		}
	}
	return out
}

// ClearCriteria selects which stored profiles Clear removes. A zero value
// field means "don't filter on this".
type ClearCriteria struct {
	Id             *int
	EvseId         *int
	Purpose        types.ChargingProfilePurposeType
	StackLevel     *int
}

// Clear removes every stored profile matching every non-zero field of
// criteria, mirroring OCPP's ClearChargingProfileRequest semantics. It
// returns the number of profiles removed.
func (s *ProfileStore) Clear(criteria ClearCriteria) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for evseId, bucket := range s.byEvse {
		if criteria.EvseId != nil && evseId != *criteria.EvseId {
			continue
		}
		kept := bucket[:0]
		for _, sp := range bucket {
			if matchesClearCriteria(sp, criteria) {
				removed++
				continue
			}
			kept = append(kept, sp)
		}
		s.byEvse[evseId] = kept
	}
	return removed
}

// ClearByTransaction removes every TxProfile associated with transactionId,
// across all EVSE scopes. The outer system calls this when a transaction
// ends, per spec's Lifecycle note that TxProfiles are cleared when their
// transaction ends.
func (s *ProfileStore) ClearByTransaction(transactionId int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for evseId, bucket := range s.byEvse {
		kept := bucket[:0]
		for _, sp := range bucket {
			if sp.Profile.ChargingProfilePurpose == types.ChargingProfilePurposeTxProfile &&
				sp.Profile.TransactionId != nil && *sp.Profile.TransactionId == transactionId {
				removed++
				continue
			}
			kept = append(kept, sp)
		}
		s.byEvse[evseId] = kept
	}
	return removed
}

func matchesClearCriteria(sp *StoredProfile, c ClearCriteria) bool {
	if c.Id != nil && sp.Profile.Id != *c.Id {
		return false
	}
	if c.Purpose != "" && sp.Profile.ChargingProfilePurpose != c.Purpose {
		return false
	}
	if c.StackLevel != nil && sp.Profile.StackLevel != *c.StackLevel {
		return false
	}
	return true
}
