package snapshot

import (
	"sort"
	"sync"
	"time"
)

// FailKind classifies fetch failures for health reporting.
type FailKind string

const (
	FailNetwork FailKind = "network" // transport error, source possibly unreachable
	FailHTTP    FailKind = "http"    // source answered with a non-OK status
	FailDecode  FailKind = "decode"  // body did not parse as a region snapshot
)

// Health is the externally visible fetch state of one region.
type Health struct {
	Region          string `json:"region"`
	Ready           bool   `json:"ready"`   // a snapshot is available to serve
	Loading         bool   `json:"loading"` // a fetch is in flight
	LastUpdated     string `json:"last_updated,omitempty"`
	FetchedAt       string `json:"fetched_at,omitempty"` // RFC3339, last successful fetch
	LastError       string `json:"last_error,omitempty"`
	LastErrorKind   string `json:"last_error_kind,omitempty"`
	SourceReachable *bool  `json:"source_reachable,omitempty"`
}

type regionState struct {
	snap      *RegionSnapshot
	fetchedAt time.Time

	inFlight int
	lastGen  uint64 // last generation handed out by Begin
	dataGen  uint64 // generation of the last applied success
	failGen  uint64 // generation of the last recorded failure

	lastErr   string
	errKind   FailKind
	reachable *bool
}

// Store holds the latest applied snapshot and fetch state per region.
// Fetch results pass through Begin/Apply/Fail so a snapshot is always
// replaced wholesale and completions arriving out of order cannot
// overwrite fresher state. Aborted fetches go through Forget and leave
// everything untouched.
type Store struct {
	mu      sync.RWMutex
	regions map[string]*regionState
}

// NewStore creates an empty snapshot store.
func NewStore() *Store {
	return &Store{regions: make(map[string]*regionState)}
}

// state returns the mutable entry for region, creating it on first use.
// Callers must hold the write lock.
func (st *Store) state(region string) *regionState {
	rs, ok := st.regions[region]
	if !ok {
		rs = &regionState{}
		st.regions[region] = rs
	}
	return rs
}

// Begin marks a fetch as started and returns its generation. The
// generation travels with the fetch and comes back through Apply, Fail
// or Forget.
func (st *Store) Begin(region string) uint64 {
	st.mu.Lock()
	defer st.mu.Unlock()

	rs := st.state(region)
	rs.lastGen++
	rs.inFlight++
	return rs.lastGen
}

// Apply installs a successfully fetched snapshot and clears any recorded
// error. It reports false when a fresher fetch already applied, in which
// case the stale result is discarded.
func (st *Store) Apply(region string, gen uint64, snap *RegionSnapshot) bool {
	st.mu.Lock()
	defer st.mu.Unlock()

	rs := st.state(region)
	rs.endFetch()
	if gen <= rs.dataGen {
		return false
	}
	rs.dataGen = gen
	rs.snap = snap
	rs.markSuccess()
	return true
}

// Touch records a successful fetch that carried no new data. The held
// snapshot stays as is; error state clears and freshness advances.
func (st *Store) Touch(region string, gen uint64) bool {
	st.mu.Lock()
	defer st.mu.Unlock()

	rs := st.state(region)
	rs.endFetch()
	if gen <= rs.dataGen {
		return false
	}
	rs.dataGen = gen
	rs.markSuccess()
	return true
}

// Fail records a fetch failure. The previously applied snapshot is
// retained. It reports false when the failure is stale: a fresher fetch
// already resolved.
func (st *Store) Fail(region string, gen uint64, kind FailKind, err error) bool {
	st.mu.Lock()
	defer st.mu.Unlock()

	rs := st.state(region)
	rs.endFetch()
	if gen <= rs.dataGen || gen <= rs.failGen {
		return false
	}
	rs.failGen = gen
	rs.lastErr = err.Error()
	rs.errKind = kind
	return true
}

// Forget drops an aborted fetch. Nothing about the region changes apart
// from the in-flight count.
func (st *Store) Forget(region string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.state(region).endFetch()
}

// NoteReachability records the latest source probe verdict for a region.
// The mark clears on the next successful fetch.
func (st *Store) NoteReachability(region string, ok bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.state(region).reachable = &ok
}

func (rs *regionState) endFetch() {
	if rs.inFlight > 0 {
		rs.inFlight--
	}
}

func (rs *regionState) markSuccess() {
	rs.fetchedAt = time.Now()
	rs.lastErr = ""
	rs.errKind = ""
	rs.reachable = nil
}

// Snapshot returns the latest applied snapshot for a region, or nil when
// none has loaded yet.
func (st *Store) Snapshot(region string) *RegionSnapshot {
	st.mu.RLock()
	defer st.mu.RUnlock()

	rs, ok := st.regions[region]
	if !ok {
		return nil
	}
	return rs.snap
}

// Regions returns info about all regions with a loaded snapshot, sorted
// by region ID.
func (st *Store) Regions() []RegionInfo {
	st.mu.RLock()
	defer st.mu.RUnlock()

	result := make([]RegionInfo, 0, len(st.regions))
	for _, rs := range st.regions {
		if rs.snap == nil {
			continue
		}
		result = append(result, RegionInfo{
			RegionID:    rs.snap.RegionID,
			LastUpdated: rs.snap.LastUpdated,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].RegionID < result[j].RegionID
	})
	return result
}

// Health returns the fetch state of one region.
func (st *Store) Health(region string) Health {
	st.mu.RLock()
	defer st.mu.RUnlock()

	rs, ok := st.regions[region]
	if !ok {
		return Health{Region: region}
	}
	return rs.health(region)
}

// HealthAll returns the fetch state of every known region, sorted by
// region key.
func (st *Store) HealthAll() []Health {
	st.mu.RLock()
	defer st.mu.RUnlock()

	keys := make([]string, 0, len(st.regions))
	for region := range st.regions {
		keys = append(keys, region)
	}
	sort.Strings(keys)

	result := make([]Health, 0, len(keys))
	for _, region := range keys {
		result = append(result, st.regions[region].health(region))
	}
	return result
}

func (rs *regionState) health(region string) Health {
	h := Health{
		Region:          region,
		Ready:           rs.snap != nil,
		Loading:         rs.inFlight > 0,
		LastError:       rs.lastErr,
		LastErrorKind:   string(rs.errKind),
		SourceReachable: rs.reachable,
	}
	if rs.snap != nil {
		h.LastUpdated = rs.snap.LastUpdated
	}
	if !rs.fetchedAt.IsZero() {
		h.FetchedAt = rs.fetchedAt.Format(time.RFC3339)
	}
	return h
}
