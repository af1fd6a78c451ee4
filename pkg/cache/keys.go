package cache

import (
	"fmt"
	"strconv"
)

// Cache key layout, shared with external tooling that inspects Redis:
//
//	utilization:{tenant}:{room}:{days}d
//	recommendations:{tenant}:{office}:{days}d:{threshold}

// UtilizationKey is the cache key for a room's utilization snapshot over a
// trailing window.
func UtilizationKey(tenantID, roomID string, days int) string {
	return fmt.Sprintf("utilization:%s:%s:%dd", tenantID, roomID, days)
}

// UtilizationRoomPattern matches every cached utilization window for one
// room. Used for write-around invalidation on event insert.
func UtilizationRoomPattern(tenantID, roomID string) string {
	return fmt.Sprintf("utilization:%s:%s:*", tenantID, roomID)
}

// RecommendationsKey is the cache key for an office's ranked recommendations.
func RecommendationsKey(tenantID, officeID string, days int, threshold float64) string {
	return fmt.Sprintf("recommendations:%s:%s:%dd:%s",
		tenantID, officeID, days, strconv.FormatFloat(threshold, 'g', -1, 64))
}

// TenantPattern matches every cache key containing the tenant's id.
// Deliberately coarse: batch ingestion sweeps it, accepting collateral
// eviction of that tenant's recommendation entries.
func TenantPattern(tenantID string) string {
	return fmt.Sprintf("*%s*", tenantID)
}
