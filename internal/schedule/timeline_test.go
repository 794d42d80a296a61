package schedule

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hoursWith builds a full 24-hour schedule of def with per-hour overrides.
func hoursWith(def string, overrides map[int]string) map[string]string {
	h := make(map[string]string, 24)
	for i := 1; i <= 24; i++ {
		h[strconv.Itoa(i)] = def
	}
	for hour, raw := range overrides {
		h[strconv.Itoa(hour)] = raw
	}
	return h
}

// pointsFromPattern builds a synthetic single-group timeline where group
// "g" is off exactly on the flagged slots.
func pointsFromPattern(off [PointsPerDay]bool) []Point {
	pts := make([]Point, PointsPerDay)
	for i, isOff := range off {
		st := StatusYes
		if isOff {
			st = StatusNo
		}
		pts[i] = Point{T: float64(i) / 2, Status: map[string]Status{"g": st}}
	}
	return pts
}

func TestBuildTimelineShape(t *testing.T) {
	day := map[string]map[string]string{
		"home": hoursWith("yes", nil),
	}
	points := BuildTimeline(day, []string{"home"}, nil)

	require.Len(t, points, PointsPerDay)
	for i, p := range points {
		assert.Equal(t, float64(i)/2, p.T)
		assert.Equal(t, StatusYes, p.Status["home"])
		assert.False(t, p.Overlap)
	}
	assert.Equal(t, 23.5, points[PointsPerDay-1].T)
}

func TestBuildTimelineFirstHalfOutage(t *testing.T) {
	day := map[string]map[string]string{
		"home": hoursWith("yes", map[int]string{5: "first"}),
	}
	points := BuildTimeline(day, []string{"home"}, nil)

	// Hour 5 covers 04:00-05:00; "first" means off for its first half.
	assert.Equal(t, StatusNo, points[8].Status["home"])
	assert.Equal(t, StatusYes, points[9].Status["home"])

	intervals := ExtractIntervals(points, GroupOff("home"))
	require.Len(t, intervals, 1)
	assert.Equal(t, "04:00-04:30", intervals[0].String())
}

func TestBuildTimelineSecondHalfOutage(t *testing.T) {
	day := map[string]map[string]string{
		"home": hoursWith("yes", map[int]string{5: "second"}),
	}
	points := BuildTimeline(day, []string{"home"}, nil)

	assert.Equal(t, StatusYes, points[8].Status["home"])
	assert.Equal(t, StatusNo, points[9].Status["home"])

	intervals := ExtractIntervals(points, GroupOff("home"))
	require.Len(t, intervals, 1)
	assert.Equal(t, "04:30-05:00", intervals[0].String())
}

func TestExtractIntervalsMergesContiguousHours(t *testing.T) {
	day := map[string]map[string]string{
		"home": hoursWith("yes", map[int]string{3: "no", 4: "no", 5: "no"}),
	}
	points := BuildTimeline(day, []string{"home"}, nil)

	intervals := ExtractIntervals(points, GroupOff("home"))
	require.Len(t, intervals, 1)
	assert.Equal(t, Interval{Start: 2, End: 5}, intervals[0])
	assert.Equal(t, "02:00-05:00", intervals[0].String())
}

func TestExtractIntervalsClosesAtDayEnd(t *testing.T) {
	day := map[string]map[string]string{
		"home": hoursWith("yes", map[int]string{24: "no"}),
	}
	points := BuildTimeline(day, []string{"home"}, nil)

	intervals := ExtractIntervals(points, GroupOff("home"))
	require.Len(t, intervals, 1)
	assert.Equal(t, Interval{Start: 23, End: 24}, intervals[0])
	assert.Equal(t, "23:00-24:00", intervals[0].String())
}

func TestExtractIntervalsEmptyWhenNeverMatching(t *testing.T) {
	day := map[string]map[string]string{
		"home": hoursWith("yes", nil),
	}
	points := BuildTimeline(day, []string{"home"}, nil)

	assert.Empty(t, ExtractIntervals(points, GroupOff("home")))
	assert.Empty(t, ExtractIntervals(nil, GroupOff("home")))
}

func TestExtractIntervalsPositiveDurations(t *testing.T) {
	var off [PointsPerDay]bool
	for i := 0; i < PointsPerDay; i += 2 {
		off[i] = true
	}
	intervals := ExtractIntervals(pointsFromPattern(off), GroupOff("g"))

	require.Len(t, intervals, 24)
	for _, iv := range intervals {
		assert.Greater(t, iv.End, iv.Start)
		assert.Equal(t, 0.5, iv.End-iv.Start)
	}
}

func TestExtractIntervalsRoundTrip(t *testing.T) {
	patterns := map[string][PointsPerDay]bool{
		"empty":      {},
		"full day":   fullPattern(),
		"first slot": {0: true},
		"last slot":  {PointsPerDay - 1: true},
		"two runs":   {4: true, 5: true, 6: true, 40: true, 41: true},
	}
	for name, off := range patterns {
		intervals := ExtractIntervals(pointsFromPattern(off), GroupOff("g"))

		var covered [PointsPerDay]bool
		for _, iv := range intervals {
			for i := int(iv.Start * 2); i < int(iv.End*2); i++ {
				covered[i] = true
			}
		}
		assert.Equal(t, off, covered, "pattern %q", name)
	}
}

func fullPattern() (off [PointsPerDay]bool) {
	for i := range off {
		off[i] = true
	}
	return off
}

func TestOverlapRequiresEveryGroupOff(t *testing.T) {
	day := map[string]map[string]string{
		"medical": hoursWith("yes", map[int]string{11: "first"}),
		"reserve": hoursWith("yes", map[int]string{11: "no"}),
	}
	overlap := []string{"medical", "reserve"}
	points := BuildTimeline(day, []string{"medical", "reserve"}, overlap)

	// Hour 11 covers 10:00-11:00. Both are off only in its first half.
	assert.True(t, points[20].Overlap)
	assert.False(t, points[21].Overlap)

	intervals := ExtractIntervals(points, OverlapOff)
	require.Len(t, intervals, 1)
	assert.Equal(t, "10:00-10:30", intervals[0].String())
}

func TestOverlapSingleGroupOffIsNotOverlap(t *testing.T) {
	day := map[string]map[string]string{
		"medical": hoursWith("yes", map[int]string{11: "no"}),
		"reserve": hoursWith("yes", nil),
	}
	points := BuildTimeline(day, []string{"medical", "reserve"}, []string{"medical", "reserve"})

	assert.Empty(t, ExtractIntervals(points, OverlapOff))
}

func TestOverlapIgnoresMaybe(t *testing.T) {
	day := map[string]map[string]string{
		"medical": hoursWith("no", nil),
	}
	// reserve has no data at all, so it expands to maybe everywhere.
	points := BuildTimeline(day, []string{"medical"}, []string{"medical", "reserve"})

	for _, p := range points {
		assert.False(t, p.Overlap)
	}
}

func TestOverlapWithoutGroupsStaysFalse(t *testing.T) {
	day := map[string]map[string]string{
		"home": hoursWith("no", nil),
	}
	points := BuildTimeline(day, []string{"home"}, nil)

	for _, p := range points {
		assert.False(t, p.Overlap)
	}
}

func TestBuildTimelineMissingGroupIsMaybe(t *testing.T) {
	points := BuildTimeline(nil, []string{"ghost"}, nil)

	require.Len(t, points, PointsPerDay)
	for _, p := range points {
		assert.Equal(t, StatusMaybe, p.Status["ghost"])
	}
	assert.Empty(t, ExtractIntervals(points, GroupOff("ghost")))
}

func TestTransitionTicksAlwaysBounded(t *testing.T) {
	assert.Equal(t, []float64{0, 24}, TransitionTicks(nil, nil))

	day := map[string]map[string]string{
		"home": hoursWith("yes", nil),
	}
	points := BuildTimeline(day, []string{"home"}, nil)
	assert.Equal(t, []float64{0, 24}, TransitionTicks(points, []string{"home"}))
}

func TestTransitionTicksMarkStatusChanges(t *testing.T) {
	day := map[string]map[string]string{
		"home": hoursWith("yes", map[int]string{3: "no", 5: "first"}),
	}
	points := BuildTimeline(day, []string{"home"}, nil)

	// yes -> no at 02:00, no -> yes at 03:00, yes -> no at 04:00,
	// no -> yes at 04:30.
	ticks := TransitionTicks(points, []string{"home"})
	assert.Equal(t, []float64{0, 2, 3, 4, 4.5, 24}, ticks)
}

func TestTransitionTicksTrackMultipleGroups(t *testing.T) {
	day := map[string]map[string]string{
		"home":    hoursWith("yes", map[int]string{2: "no"}),
		"medical": hoursWith("yes", map[int]string{20: "no"}),
	}
	points := BuildTimeline(day, []string{"home", "medical"}, nil)

	ticks := TransitionTicks(points, []string{"home", "medical"})
	assert.Equal(t, []float64{0, 1, 2, 19, 20, 24}, ticks)
}

func TestHasAnyOutage(t *testing.T) {
	assert.False(t, HasAnyOutage(nil))
	assert.False(t, HasAnyOutage(map[string]string{}))
	assert.False(t, HasAnyOutage(hoursWith("yes", nil)))
	assert.False(t, HasAnyOutage(hoursWith("maybe", nil)))
	assert.True(t, HasAnyOutage(hoursWith("yes", map[int]string{7: "no"})))
	assert.True(t, HasAnyOutage(hoursWith("yes", map[int]string{7: "first"})))
	assert.True(t, HasAnyOutage(hoursWith("yes", map[int]string{7: "second"})))
	assert.False(t, HasAnyOutage(hoursWith("yes", map[int]string{7: "bogus"})))
}

func TestExpandDay(t *testing.T) {
	slots := ExpandDay(nil)
	require.Len(t, slots, PointsPerDay)
	for _, s := range slots {
		assert.Equal(t, StatusMaybe, s)
	}

	slots = ExpandDay(hoursWith("yes", map[int]string{1: "first", 24: "second"}))
	assert.Equal(t, StatusNo, slots[0])
	assert.Equal(t, StatusYes, slots[1])
	assert.Equal(t, StatusYes, slots[46])
	assert.Equal(t, StatusNo, slots[47])
}
