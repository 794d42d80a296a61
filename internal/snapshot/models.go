package snapshot

import "strconv"

// RegionSnapshot is the top-level JSON document published per region by
// the schedule feed.
type RegionSnapshot struct {
	RegionID    string `json:"regionId"`
	LastUpdated string `json:"lastUpdated"`
	Fact        Fact   `json:"fact"`
	Preset      Preset `json:"preset"`
}

// Fact contains the actual daily schedules.
type Fact struct {
	// Data is keyed by unix timestamp string, then group ID, then hour (1-24).
	// Values: "yes" (power on), "no" (power off), "maybe" (uncertain),
	// "first" (off first 30min), "second" (off second 30min).
	Data   map[string]map[string]map[string]string `json:"data"`
	Update string                                  `json:"update"`
	Today  int64                                   `json:"today"`
}

// Preset contains display metadata published alongside the schedules.
type Preset struct {
	SchNames map[string]string `json:"sch_names"` // group ID -> display name
}

// TodayKey returns the Fact.Today pointer as the map key it addresses.
func (s *RegionSnapshot) TodayKey() string {
	return strconv.FormatInt(s.Fact.Today, 10)
}

// TodayData resolves today's per-group hourly schedules. It returns nil
// when the snapshot has no usable entry for today; missing data is an
// empty state, not an error.
func (s *RegionSnapshot) TodayData() map[string]map[string]string {
	if s == nil || s.Fact.Today == 0 {
		return nil
	}
	day, ok := s.Fact.Data[s.TodayKey()]
	if !ok || len(day) == 0 {
		return nil
	}
	return day
}

// GroupName resolves the display name for a group, falling back to the
// group ID itself.
func (s *RegionSnapshot) GroupName(group string) string {
	if s == nil {
		return group
	}
	if name, ok := s.Preset.SchNames[group]; ok && name != "" {
		return name
	}
	return group
}

// RegionInfo is a short summary of a region for the regions list endpoint.
type RegionInfo struct {
	RegionID    string `json:"region_id"`
	LastUpdated string `json:"last_updated"`
}

// GroupInfo is an entry in the groups list with ID and human-readable name.
type GroupInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
