package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DefaultSourceURL, cfg.SourceURL)
	assert.Equal(t, []string{"kyiv", "kyiv-region", "odesa", "dnipro"}, cfg.Regions)
	assert.Equal(t, DefaultFetchIntervalSec, cfg.FetchInterval)
	assert.Equal(t, []string{"medical", "reserve"}, cfg.OverlapGroups)
	assert.Empty(t, cfg.MetricsAddr)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("FETCH_INTERVAL", "60")
	t.Setenv("REGIONS", "kyiv, odesa ,")
	t.Setenv("OVERLAP_GROUPS", "home")
	t.Setenv("METRICS_ADDR", ":9091")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 60, cfg.FetchInterval)
	assert.Equal(t, []string{"kyiv", "odesa"}, cfg.Regions)
	assert.Equal(t, []string{"home"}, cfg.OverlapGroups)
	assert.Equal(t, ":9091", cfg.MetricsAddr)
}

func TestLoadIgnoresBadInt(t *testing.T) {
	t.Setenv("FETCH_INTERVAL", "soon")

	cfg := Load()

	assert.Equal(t, DefaultFetchIntervalSec, cfg.FetchInterval)
}
