package schedule

import "strconv"

const (
	// DayStart and DayEnd bound the timeline in fractional hours.
	DayStart = 0.0
	DayEnd   = 24.0

	// PointsPerDay is the number of half-hour slots in one day.
	PointsPerDay = 48
)

// Point is one half-hour slot of a day timeline.
type Point struct {
	T       float64           // slot start in fractional hours: 0, 0.5 ... 23.5
	Status  map[string]Status // expanded status per group key
	Overlap bool              // every overlap group is exactly off
}

// Interval is a half-open [Start, End) range in fractional hours.
type Interval struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// String renders the interval as "HH:MM-HH:MM".
func (iv Interval) String() string {
	return FormatClock(iv.Start) + "-" + FormatClock(iv.End)
}

// ExpandDay converts one group's hour-level raw values ("1".."24") into
// the uniform 48 half-hour statuses. A nil map expands to all maybe.
func ExpandDay(hours map[string]string) []Status {
	out := make([]Status, PointsPerDay)
	for hour := 1; hour <= 24; hour++ {
		first, second := Normalize(hours[strconv.Itoa(hour)]).Halves()
		out[2*(hour-1)] = first
		out[2*(hour-1)+1] = second
	}
	return out
}

// BuildTimeline expands per-hour group schedules into the 48-slot day.
// day maps group key -> hour key ("1".."24") -> raw status; missing
// groups and missing hours come out as StatusMaybe. Each point carries
// the expanded status for every group in groupKeys, plus the overlap
// flag: the conjunction of IsNo over overlapKeys. With no overlapKeys
// the flag stays false.
func BuildTimeline(day map[string]map[string]string, groupKeys, overlapKeys []string) []Point {
	expanded := make(map[string][]Status, len(groupKeys)+len(overlapKeys))
	for _, g := range groupKeys {
		expanded[g] = ExpandDay(day[g])
	}
	for _, g := range overlapKeys {
		if _, ok := expanded[g]; !ok {
			expanded[g] = ExpandDay(day[g])
		}
	}

	points := make([]Point, PointsPerDay)
	for i := range points {
		statuses := make(map[string]Status, len(groupKeys))
		for _, g := range groupKeys {
			statuses[g] = expanded[g][i]
		}
		overlap := len(overlapKeys) > 0
		for _, g := range overlapKeys {
			if !expanded[g][i].IsNo() {
				overlap = false
				break
			}
		}
		points[i] = Point{T: float64(i) / 2, Status: statuses, Overlap: overlap}
	}
	return points
}

// GroupOff builds an interval predicate matching points where the group
// is exactly off.
func GroupOff(group string) func(Point) bool {
	return func(p Point) bool { return p.Status[group].IsNo() }
}

// OverlapOff is the interval predicate for the combined overlap signal.
func OverlapOff(p Point) bool { return p.Overlap }

// ExtractIntervals collects the maximal runs of consecutive points
// matching pred, in a single pass. Runs are half-open: one ends at the
// first point where pred stops holding, or at DayEnd when it reaches
// the last point. Zero-duration runs are never emitted.
func ExtractIntervals(points []Point, pred func(Point) bool) []Interval {
	out := []Interval{}
	open := false
	var start float64
	for _, p := range points {
		switch {
		case pred(p) && !open:
			open = true
			start = p.T
		case !pred(p) && open:
			open = false
			if p.T > start {
				out = append(out, Interval{Start: start, End: p.T})
			}
		}
	}
	if open && DayEnd > start {
		out = append(out, Interval{Start: start, End: DayEnd})
	}
	return out
}

// TransitionTicks returns the axis tick coordinates for a timeline: the
// day bounds plus the start of every point where any tracked group's
// status differs from the previous point. The result is ascending and
// always contains DayStart and DayEnd.
func TransitionTicks(points []Point, groupKeys []string) []float64 {
	ticks := []float64{DayStart}
	for i := 1; i < len(points); i++ {
		for _, g := range groupKeys {
			if points[i].Status[g] != points[i-1].Status[g] {
				ticks = append(ticks, points[i].T)
				break
			}
		}
	}
	return append(ticks, DayEnd)
}

// HasAnyOutage reports whether any hour of a group's raw schedule
// carries outage time. A nil or empty map means no known outages,
// never an error.
func HasAnyOutage(hours map[string]string) bool {
	for _, raw := range hours {
		if Normalize(raw).IsOutage() {
			return true
		}
	}
	return false
}
