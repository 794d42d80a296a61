package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

// Cache persists raw snapshot documents across restarts.
type Cache interface {
	PutSnapshot(ctx context.Context, region string, raw []byte) error
	GetSnapshot(ctx context.Context, region string) ([]byte, error)
}

// Notifier receives every snapshot the fetcher applies.
type Notifier interface {
	SnapshotUpdated(region string, snap *RegionSnapshot)
}

// Collector records fetch-loop measurements.
type Collector interface {
	FetchOK(region string)
	FetchFailed(region string, kind string)
	StaleDiscarded(region string)
	SnapshotApplied(region string, at time.Time)
}

// Prober checks raw reachability of a host after a transport failure.
type Prober func(host string) bool

// Fetcher periodically downloads region snapshots from the schedule feed
// and applies them to the store. A fetch aborted by ctx never touches
// the store; every other completion goes through the store's generation
// guard.
type Fetcher struct {
	client   *http.Client
	baseURL  string
	regions  []string
	interval time.Duration
	store    *Store

	cache    Cache
	notifier Notifier
	metrics  Collector
	probe    Prober
}

// NewFetcher creates a Fetcher for the given source and regions.
func NewFetcher(baseURL string, regions []string, intervalSec int, store *Store) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:  baseURL,
		regions:  regions,
		interval: time.Duration(intervalSec) * time.Second,
		store:    store,
	}
}

// SetCache attaches a snapshot cache for write-through and restore.
func (f *Fetcher) SetCache(c Cache) { f.cache = c }

// SetNotifier attaches a notifier called after each applied snapshot.
func (f *Fetcher) SetNotifier(n Notifier) { f.notifier = n }

// SetMetrics attaches a measurement collector.
func (f *Fetcher) SetMetrics(m Collector) { f.metrics = m }

// SetProbe attaches a reachability probe used on transport failures.
func (f *Fetcher) SetProbe(p Prober) { f.probe = p }

// Restore seeds the store from cached snapshots so the API can serve the
// last known day before the first live fetch lands. Unusable cache
// entries are skipped.
func (f *Fetcher) Restore(ctx context.Context) {
	if f.cache == nil {
		return
	}
	for _, region := range f.regions {
		raw, err := f.cache.GetSnapshot(ctx, region)
		if err != nil {
			log.Printf("[snapshot] read cache for %s: %v", region, err)
			continue
		}
		if len(raw) == 0 {
			continue
		}
		var snap RegionSnapshot
		if err := json.Unmarshal(raw, &snap); err != nil {
			log.Printf("[snapshot] cached %s is unusable: %v", region, err)
			continue
		}
		gen := f.store.Begin(region)
		if f.store.Apply(region, gen, &snap) {
			log.Printf("[snapshot] restored %s from cache (lastUpdated: %s)", region, snap.LastUpdated)
		}
	}
}

// Start begins periodic fetching. It performs an initial pass
// immediately, then fetches every interval. Blocks until ctx is
// cancelled.
func (f *Fetcher) Start(ctx context.Context) {
	f.fetchAll(ctx)

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[snapshot] fetcher stopped")
			return
		case <-ticker.C:
			f.fetchAll(ctx)
		}
	}
}

func (f *Fetcher) fetchAll(ctx context.Context) {
	for _, region := range f.regions {
		if err := f.FetchRegion(ctx, region); err != nil {
			log.Printf("[snapshot] failed to fetch %s: %v", region, err)
		}
	}
}

// FetchRegion runs one fetch for a region and resolves it against the
// store. Cancellation through ctx drops the result silently.
func (f *Fetcher) FetchRegion(ctx context.Context, region string) error {
	gen := f.store.Begin(region)

	snap, body, kind, err := f.download(ctx, region)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			f.store.Forget(region)
			return nil
		}
		if f.store.Fail(region, gen, kind, err) {
			if f.metrics != nil {
				f.metrics.FetchFailed(region, string(kind))
			}
			if kind == FailNetwork && f.probe != nil {
				if host := f.sourceHost(); host != "" {
					f.store.NoteReachability(region, f.probe(host))
				}
			}
		} else if f.metrics != nil {
			f.metrics.StaleDiscarded(region)
		}
		return err
	}

	// A fetch that completed right as the loop was torn down still
	// counts as aborted.
	if ctx.Err() != nil {
		f.store.Forget(region)
		return nil
	}

	// Skip if data hasn't changed since the last applied snapshot.
	if cur := f.store.Snapshot(region); cur != nil && cur.LastUpdated == snap.LastUpdated {
		fresh := f.store.Touch(region, gen)
		if f.metrics != nil {
			if fresh {
				f.metrics.FetchOK(region)
			} else {
				f.metrics.StaleDiscarded(region)
			}
		}
		return nil
	}

	if !f.store.Apply(region, gen, snap) {
		if f.metrics != nil {
			f.metrics.StaleDiscarded(region)
		}
		return nil
	}
	log.Printf("[snapshot] updated %s (lastUpdated: %s)", region, snap.LastUpdated)
	if f.metrics != nil {
		f.metrics.FetchOK(region)
		f.metrics.SnapshotApplied(region, time.Now())
	}

	if f.cache != nil {
		if err := f.cache.PutSnapshot(ctx, region, body); err != nil {
			log.Printf("[snapshot] cache %s: %v", region, err)
		}
	}
	if f.notifier != nil {
		f.notifier.SnapshotUpdated(region, snap)
	}
	return nil
}

func (f *Fetcher) download(ctx context.Context, region string) (*RegionSnapshot, []byte, FailKind, error) {
	target := fmt.Sprintf("%s/%s.json", f.baseURL, region)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, nil, FailNetwork, fmt.Errorf("build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, nil, FailNetwork, fmt.Errorf("GET %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, FailHTTP, fmt.Errorf("GET %s: status %d", target, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, FailNetwork, fmt.Errorf("read body: %w", err)
	}

	var snap RegionSnapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return nil, nil, FailDecode, fmt.Errorf("unmarshal %s: %w", region, err)
	}
	return &snap, body, "", nil
}

func (f *Fetcher) sourceHost() string {
	u, err := url.Parse(f.baseURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
