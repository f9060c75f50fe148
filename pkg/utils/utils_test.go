package utils

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younsl/initcost/internal/models"
)

func TestNewScanWindow(t *testing.T) {
	now := time.Date(2025, 7, 31, 12, 0, 0, 0, time.UTC)

	w, err := NewScanWindow(now, 30)
	require.NoError(t, err)
	assert.Equal(t, now.UnixMilli(), w.EndMillis)
	assert.Equal(t, time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC).UnixMilli(), w.StartMillis)
	assert.True(t, w.Valid())
	assert.Equal(t, 30, WindowDays(w))
	assert.Equal(t, "2025-07-01 12:00 ~ 2025-07-31 12:00 UTC", FormatWindow(w))
}

func TestNewScanWindow_AcrossDaylightSavingChange(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	// 30 days back crosses the 2026-11-01 fall back
	now := time.Date(2026, 11, 15, 12, 0, 0, 0, loc)

	w, err := NewScanWindow(now, 30)
	require.NoError(t, err)
	assert.Equal(t, (30 * 24 * time.Hour).Milliseconds(), w.EndMillis-w.StartMillis)
	assert.Equal(t, 30, WindowDays(w))
}

func TestNewScanWindow_RejectsNonPositiveDays(t *testing.T) {
	_, err := NewScanWindow(time.Now(), 0)
	assert.Error(t, err)

	_, err = NewScanWindow(time.Now(), -3)
	assert.Error(t, err)
}

func TestWindowDays_RoundsUp(t *testing.T) {
	w := models.ScanWindow{StartMillis: 0, EndMillis: (36 * time.Hour).Milliseconds()}
	assert.Equal(t, 2, WindowDays(w))
}

func TestRegionFromEnv(t *testing.T) {
	t.Setenv("AWS_REGION", "")
	t.Setenv("AWS_DEFAULT_REGION", "eu-west-1")
	assert.Equal(t, "eu-west-1", RegionFromEnv())

	t.Setenv("AWS_REGION", "us-west-2")
	assert.Equal(t, "us-west-2", RegionFromEnv())
}

func TestGetRegionDescriptiveName(t *testing.T) {
	name, ok := GetRegionDescriptiveName("ap-northeast-2")
	assert.True(t, ok)
	assert.Equal(t, "Asia Pacific (Seoul)", name)

	_, ok = GetRegionDescriptiveName("xx-nowhere-1")
	assert.False(t, ok)
	assert.False(t, IsKnownRegion("xx-nowhere-1"))
}

func TestGetNestedMapAndFirstValue(t *testing.T) {
	data, err := ParseJSON(`{"terms": {"OnDemand": {"b": 2, "a": 1}}}`)
	require.NoError(t, err)

	onDemand, err := GetNestedMap(data, "terms", "OnDemand")
	require.NoError(t, err)

	first, err := GetFirstMapValue(onDemand)
	require.NoError(t, err)
	assert.Equal(t, float64(1), first)

	_, err = GetNestedMap(data, "terms", "Reserved")
	assert.Error(t, err)

	_, err = GetFirstMapValue(map[string]interface{}{})
	assert.Error(t, err)
}
