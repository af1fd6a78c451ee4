package services

import (
	"fmt"
	"math"
	"sort"

	"github.com/spacewise-io/occupancy-engine/pkg/models"
)

// costPerSeatPerMonth is the assumed real-estate cost of one seat of room
// capacity, in dollars per month, used for annual savings estimates.
const costPerSeatPerMonth = 50

// classifyRoom classifies a room's utilization rate against the threshold
// and produces guidance. Boundaries are exclusive: a rate exactly at a
// threshold multiple never triggers over/under classification.
//
// Rooms that are optimal and have no recorded events are suppressed
// (returns nil) to avoid noise from rooms that simply have no data.
func classifyRoom(room *models.Room, rate float64, totalEvents int64, threshold float64) *models.Recommendation {
	rec := &models.Recommendation{
		RoomID:             room.RoomID,
		RoomName:           room.Name,
		CurrentUtilization: rate,
		Type:               models.RecommendationOptimal,
		Priority:           models.PriorityLow,
	}

	switch {
	case rate < threshold*0.5:
		rec.Type = models.RecommendationUnderutilized
		if rate < threshold*0.25 {
			rec.Priority = models.PriorityHigh
		} else {
			rec.Priority = models.PriorityMedium
		}

		if room.Type == models.RoomTypeConference {
			rec.Recommendation = fmt.Sprintf(
				"Conference room is severely underutilized (%.1f%%). Consider converting to collaboration space or reducing room size.",
				rate*100)
			savings := estimateAnnualSavings(room.Capacity, rate)
			rec.PotentialSavings = &savings
		} else {
			rec.Recommendation = "Space is underutilized. Consider flexible desk arrangements or consolidating with adjacent areas."
		}

	case rate > threshold*1.5:
		rec.Type = models.RecommendationOverutilized
		if rate > threshold*2 {
			rec.Priority = models.PriorityHigh
		} else {
			rec.Priority = models.PriorityMedium
		}
		rec.Recommendation = fmt.Sprintf(
			"Space is overutilized (%.1f%% of capacity). Consider expanding capacity or improving booking efficiency.",
			rate*100)

	default:
		rec.Recommendation = fmt.Sprintf(
			"Space utilization is optimal (%.1f%% of capacity).", rate*100)
	}

	if rec.Type == models.RecommendationOptimal && totalEvents == 0 {
		return nil
	}
	return rec
}

// estimateAnnualSavings prices the unused share of a room's capacity.
func estimateAnnualSavings(capacity int, rate float64) float64 {
	underutilizedCapacity := float64(capacity) * (1 - rate)
	return underutilizedCapacity * costPerSeatPerMonth * 12
}

// sortRecommendations orders by priority descending (high > medium > low),
// tie-broken by descending absolute deviation of the utilization rate from
// the threshold.
func sortRecommendations(recs []*models.Recommendation, threshold float64) {
	sort.SliceStable(recs, func(i, j int) bool {
		pi, pj := models.PriorityRank(recs[i].Priority), models.PriorityRank(recs[j].Priority)
		if pi != pj {
			return pi > pj
		}
		di := math.Abs(recs[i].CurrentUtilization - threshold)
		dj := math.Abs(recs[j].CurrentUtilization - threshold)
		return di > dj
	})
}
