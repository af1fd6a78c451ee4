package cache

import (
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUtilizationKey(t *testing.T) {
	key := UtilizationKey("a1b2c3d4-e5f6-4789-a012-345678901234", "confA", 7)
	assert.Equal(t, "utilization:a1b2c3d4-e5f6-4789-a012-345678901234:confA:7d", key)
}

func TestRecommendationsKey(t *testing.T) {
	key := RecommendationsKey("tenant-1", "office-1", 30, 0.5)
	assert.Equal(t, "recommendations:tenant-1:office-1:30d:0.5", key)

	// Integral thresholds render without a trailing decimal point.
	key = RecommendationsKey("tenant-1", "office-1", 30, 1)
	assert.Equal(t, "recommendations:tenant-1:office-1:30d:1", key)
}

func TestUtilizationRoomPattern_MatchesEveryWindow(t *testing.T) {
	pattern := UtilizationRoomPattern("tenant-1", "confA")

	for _, days := range []int{1, 7, 30, 365} {
		key := UtilizationKey("tenant-1", "confA", days)
		ok, err := path.Match(pattern, key)
		assert.NoError(t, err)
		assert.True(t, ok, "pattern should match %s", key)
	}

	ok, _ := path.Match(pattern, UtilizationKey("tenant-1", "confB", 7))
	assert.False(t, ok, "pattern must not match other rooms")
}

func TestTenantPattern_MatchesBothKeyFamilies(t *testing.T) {
	pattern := TenantPattern("tenant-1")

	ok, _ := path.Match(pattern, UtilizationKey("tenant-1", "confA", 7))
	assert.True(t, ok)

	ok, _ = path.Match(pattern, RecommendationsKey("tenant-1", "office-1", 30, 0.5))
	assert.True(t, ok)

	ok, _ = path.Match(pattern, UtilizationKey("tenant-2", "confA", 7))
	assert.False(t, ok)
}
