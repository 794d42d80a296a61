package board

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svitlo-board/internal/schedule"
	"svitlo-board/internal/snapshot"
)

func hoursAll(def string) map[string]string {
	h := make(map[string]string, 24)
	for i := 1; i <= 24; i++ {
		h[strconv.Itoa(i)] = def
	}
	return h
}

// boardSnap carries one evening day: home is off 02:00-05:00 and
// 10:00-10:30, medical is off 10:00-10:30, reserve is off 10:00-11:00.
func boardSnap() *snapshot.RegionSnapshot {
	home := hoursAll("yes")
	home["3"], home["4"], home["5"] = "no", "no", "no"
	home["11"] = "first"

	medical := hoursAll("yes")
	medical["11"] = "first"

	reserve := hoursAll("yes")
	reserve["11"] = "no"

	return &snapshot.RegionSnapshot{
		RegionID:    "kyiv",
		LastUpdated: "2026-01-10T08:00:00Z",
		Fact: snapshot.Fact{
			Data: map[string]map[string]map[string]string{
				"1755727200": {"home": home, "medical": medical, "reserve": reserve},
			},
			Update: "2026-01-10 08:00",
			Today:  1755727200,
		},
		Preset: snapshot.Preset{
			SchNames: map[string]string{"home": "Дім", "medical": "Медична", "reserve": "Резервна"},
		},
	}
}

func TestBuildDayBoard(t *testing.T) {
	b := BuildDayBoard(boardSnap(), []string{"medical", "reserve"})

	assert.Equal(t, "kyiv", b.Region)
	assert.Equal(t, "1755727200", b.Date)
	assert.True(t, b.HasData)

	require.Len(t, b.Groups, 3)
	assert.Equal(t, "home", b.Groups[0].Key)
	assert.Equal(t, "Дім", b.Groups[0].Name)
	assert.True(t, b.Groups[0].HasOutages)
	assert.Equal(t, []string{"02:00-05:00", "10:00-10:30"}, b.Groups[0].Outages)

	assert.Equal(t, "medical", b.Groups[1].Key)
	assert.Equal(t, []string{"10:00-10:30"}, b.Groups[1].Outages)

	assert.Equal(t, "reserve", b.Groups[2].Key)
	assert.Equal(t, []string{"10:00-11:00"}, b.Groups[2].Outages)

	// Overlap only where medical and reserve are both fully off.
	assert.Equal(t, []string{"10:00-10:30"}, b.Overlap)

	require.Len(t, b.Points, schedule.PointsPerDay)
	assert.Equal(t, "no", b.Points[4].Statuses["home"])
	assert.Equal(t, 0, b.Points[4].Levels["home"])
	assert.Equal(t, 2, b.Points[4].Levels["medical"])
	assert.True(t, b.Points[20].Overlap)
	assert.False(t, b.Points[21].Overlap)

	assert.Equal(t, []float64{0, 2, 5, 10, 10.5, 11, 24}, b.Ticks)
}

func TestBuildDayBoardWithoutTodayData(t *testing.T) {
	snap := boardSnap()
	snap.Fact.Today = 1755813600 // points at a day the feed has no data for

	b := BuildDayBoard(snap, []string{"medical", "reserve"})

	assert.Equal(t, "kyiv", b.Region)
	assert.False(t, b.HasData)
	assert.Empty(t, b.Groups)
	assert.Empty(t, b.Overlap)
	assert.Empty(t, b.Points)
	assert.Equal(t, []float64{0, 24}, b.Ticks)
}

func TestBuildDayBoardNilSnapshot(t *testing.T) {
	b := BuildDayBoard(nil, []string{"medical", "reserve"})

	assert.False(t, b.HasData)
	assert.Empty(t, b.Region)
	assert.Empty(t, b.Groups)
	assert.Equal(t, []float64{0, 24}, b.Ticks)
}

func TestBuildDayBoardAllMaybeHasNoIntervals(t *testing.T) {
	snap := boardSnap()
	snap.Fact.Data["1755727200"] = map[string]map[string]string{
		"home": hoursAll("maybe"),
	}

	b := BuildDayBoard(snap, []string{"medical", "reserve"})

	require.Len(t, b.Groups, 1)
	assert.False(t, b.Groups[0].HasOutages)
	assert.Empty(t, b.Groups[0].Outages)
	assert.Empty(t, b.Overlap)
	assert.Equal(t, []float64{0, 24}, b.Ticks)
}

func TestBuildGroupBoard(t *testing.T) {
	g := BuildGroupBoard(boardSnap(), "home")

	assert.Equal(t, "kyiv", g.Region)
	assert.Equal(t, "Дім", g.Name)
	assert.True(t, g.HasData)
	assert.True(t, g.HasOutages)
	assert.Equal(t, []string{"02:00-05:00", "10:00-10:30"}, g.Outages)

	require.Len(t, g.Slots, schedule.PointsPerDay)
	assert.Equal(t, "02:00-02:30", g.Slots[4].Label)
	assert.Equal(t, "no", g.Slots[4].Status)
	assert.Equal(t, 0, g.Slots[4].Level)
	assert.Equal(t, "yes", g.Slots[0].Status)
}

func TestBuildGroupBoardUnknownGroup(t *testing.T) {
	g := BuildGroupBoard(boardSnap(), "ghost")

	assert.True(t, g.HasData)
	assert.False(t, g.HasOutages, "a group with no data has no known outages")
	assert.Empty(t, g.Outages)
	assert.Empty(t, g.Hours)
	require.Len(t, g.Slots, schedule.PointsPerDay)
	for _, s := range g.Slots {
		assert.Equal(t, "maybe", s.Status)
		assert.Equal(t, 1, s.Level)
	}
}

func TestBuildGroupBoardWithoutTodayData(t *testing.T) {
	snap := boardSnap()
	snap.Fact.Today = 0

	g := BuildGroupBoard(snap, "home")

	assert.False(t, g.HasData)
	assert.False(t, g.HasOutages)
	assert.Empty(t, g.Slots)
	assert.Empty(t, g.Outages)
}
