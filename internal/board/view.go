package board

import (
	"sort"

	"svitlo-board/internal/schedule"
	"svitlo-board/internal/snapshot"
)

// GroupDay is the per-group section of a day board.
type GroupDay struct {
	Key        string   `json:"key"`
	Name       string   `json:"name"`
	HasOutages bool     `json:"has_outages"`
	Outages    []string `json:"outages"` // "HH:MM-HH:MM", ascending, maximal runs
}

// BoardPoint is one plottable half-hour slot of the day.
type BoardPoint struct {
	T        float64           `json:"t"`
	Statuses map[string]string `json:"statuses"`
	Levels   map[string]int    `json:"levels"`
	Overlap  bool              `json:"overlap"`
}

// DayBoard is the full derived output for one region-day: outage
// intervals per group, the combined overlap intervals, the plottable
// 48-point timeline and the axis ticks.
type DayBoard struct {
	Region        string       `json:"region"`
	Date          string       `json:"date,omitempty"`
	LastUpdated   string       `json:"last_updated,omitempty"`
	FactUpdate    string       `json:"fact_update,omitempty"`
	HasData       bool         `json:"has_data"`
	Groups        []GroupDay   `json:"groups"`
	OverlapGroups []string     `json:"overlap_groups"`
	Overlap       []string     `json:"overlap"`
	Points        []BoardPoint `json:"points"`
	Ticks         []float64    `json:"ticks"`
}

// GroupSlot is one expanded half-hour of a single group's day.
type GroupSlot struct {
	T      float64 `json:"t"`
	Label  string  `json:"label"`
	Status string  `json:"status"`
	Level  int     `json:"level"`
}

// GroupBoard is the single-group response, with raw hours alongside the
// expanded half-hour slots.
type GroupBoard struct {
	Region      string            `json:"region"`
	Group       string            `json:"group"`
	Name        string            `json:"name"`
	Date        string            `json:"date,omitempty"`
	LastUpdated string            `json:"last_updated,omitempty"`
	FactUpdate  string            `json:"fact_update,omitempty"`
	HasData     bool              `json:"has_data"`
	HasOutages  bool              `json:"has_outages"`
	Hours       map[string]string `json:"hours,omitempty"`
	Slots       []GroupSlot       `json:"slots"`
	Outages     []string          `json:"outages"`
}

// BuildDayBoard derives the complete board from today's data in snap.
// overlapKeys selects the groups whose simultaneous full outage forms
// the overlap signal. A nil snapshot or one without today's data yields
// the empty board: no groups, no intervals, boundary ticks only.
func BuildDayBoard(snap *snapshot.RegionSnapshot, overlapKeys []string) DayBoard {
	b := DayBoard{
		OverlapGroups: overlapKeys,
		Groups:        []GroupDay{},
		Overlap:       []string{},
		Points:        []BoardPoint{},
		Ticks:         []float64{schedule.DayStart, schedule.DayEnd},
	}
	if snap == nil {
		return b
	}
	b.Region = snap.RegionID
	b.LastUpdated = snap.LastUpdated

	day := snap.TodayData()
	if day == nil {
		return b
	}
	b.HasData = true
	b.Date = snap.TodayKey()
	b.FactUpdate = snap.Fact.Update

	groupKeys := make([]string, 0, len(day))
	for g := range day {
		groupKeys = append(groupKeys, g)
	}
	sort.Strings(groupKeys)

	points := schedule.BuildTimeline(day, groupKeys, overlapKeys)

	for _, g := range groupKeys {
		intervals := schedule.ExtractIntervals(points, schedule.GroupOff(g))
		b.Groups = append(b.Groups, GroupDay{
			Key:        g,
			Name:       snap.GroupName(g),
			HasOutages: schedule.HasAnyOutage(day[g]),
			Outages:    schedule.FormatIntervals(intervals),
		})
	}

	b.Overlap = schedule.FormatIntervals(schedule.ExtractIntervals(points, schedule.OverlapOff))
	b.Points = boardPoints(points, groupKeys)
	b.Ticks = schedule.TransitionTicks(points, groupKeys)
	return b
}

// BuildGroupBoard derives the expanded day for a single group. A group
// absent from today's data reports no known outages and uncertain slots,
// never an error.
func BuildGroupBoard(snap *snapshot.RegionSnapshot, group string) GroupBoard {
	g := GroupBoard{
		Group:   group,
		Name:    snap.GroupName(group),
		Slots:   []GroupSlot{},
		Outages: []string{},
	}
	if snap == nil {
		return g
	}
	g.Region = snap.RegionID
	g.LastUpdated = snap.LastUpdated

	day := snap.TodayData()
	if day == nil {
		return g
	}
	g.HasData = true
	g.Date = snap.TodayKey()
	g.FactUpdate = snap.Fact.Update
	g.Hours = day[group]
	g.HasOutages = schedule.HasAnyOutage(day[group])

	points := schedule.BuildTimeline(day, []string{group}, nil)
	g.Slots = make([]GroupSlot, len(points))
	for i, p := range points {
		st := p.Status[group]
		g.Slots[i] = GroupSlot{
			T:      p.T,
			Label:  schedule.SlotLabel(p.T),
			Status: string(st),
			Level:  st.Level(),
		}
	}
	g.Outages = schedule.FormatIntervals(schedule.ExtractIntervals(points, schedule.GroupOff(group)))
	return g
}

func boardPoints(points []schedule.Point, groupKeys []string) []BoardPoint {
	out := make([]BoardPoint, len(points))
	for i, p := range points {
		statuses := make(map[string]string, len(groupKeys))
		levels := make(map[string]int, len(groupKeys))
		for _, g := range groupKeys {
			statuses[g] = string(p.Status[g])
			levels[g] = p.Status[g].Level()
		}
		out[i] = BoardPoint{T: p.T, Statuses: statuses, Levels: levels, Overlap: p.Overlap}
	}
	return out
}
