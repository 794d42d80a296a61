package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		raw  string
		want Status
	}{
		{"yes", StatusYes},
		{"no", StatusNo},
		{"maybe", StatusMaybe},
		{"first", StatusFirst},
		{"second", StatusSecond},
		{"", StatusMaybe},
		{"unknown", StatusMaybe},
		{"YES", StatusMaybe},
		{"off", StatusMaybe},
		{" no", StatusMaybe},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Normalize(tc.raw), "raw %q", tc.raw)
	}
}

func TestHalves(t *testing.T) {
	cases := []struct {
		status Status
		first  Status
		second Status
	}{
		{StatusFirst, StatusNo, StatusYes},
		{StatusSecond, StatusYes, StatusNo},
		{StatusYes, StatusYes, StatusYes},
		{StatusNo, StatusNo, StatusNo},
		{StatusMaybe, StatusMaybe, StatusMaybe},
		{Status("garbage"), StatusMaybe, StatusMaybe},
	}
	for _, tc := range cases {
		first, second := tc.status.Halves()
		assert.Equal(t, tc.first, first, "first half of %q", tc.status)
		assert.Equal(t, tc.second, second, "second half of %q", tc.status)
	}
}

func TestHalvesNeverTransitional(t *testing.T) {
	for _, raw := range []string{"yes", "no", "maybe", "first", "second", "bogus", ""} {
		first, second := Normalize(raw).Halves()
		for _, half := range []Status{first, second} {
			assert.Contains(t, []Status{StatusYes, StatusNo, StatusMaybe}, half,
				"half of %q must be a plain status", raw)
		}
	}
}

func TestClassifiers(t *testing.T) {
	assert.True(t, StatusNo.IsOutage())
	assert.True(t, StatusFirst.IsOutage())
	assert.True(t, StatusSecond.IsOutage())
	assert.False(t, StatusYes.IsOutage())
	assert.False(t, StatusMaybe.IsOutage())

	assert.True(t, StatusNo.IsNo())
	assert.False(t, StatusFirst.IsNo())
	assert.False(t, StatusSecond.IsNo())
	assert.False(t, StatusMaybe.IsNo())

	assert.True(t, StatusMaybe.IsMaybe())
	assert.False(t, StatusYes.IsMaybe())
	assert.False(t, StatusNo.IsMaybe())
}

func TestLevel(t *testing.T) {
	assert.Equal(t, 0, StatusNo.Level())
	assert.Equal(t, 1, StatusMaybe.Level())
	assert.Equal(t, 2, StatusYes.Level())
	assert.Equal(t, 1, Status("bogus").Level())
	assert.Equal(t, 1, Status("").Level())
}
