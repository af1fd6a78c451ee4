package models

// Classification of a room's utilization against the threshold.
const (
	RecommendationUnderutilized = "underutilized"
	RecommendationOverutilized  = "overutilized"
	RecommendationOptimal       = "optimal"
)

// Recommendation priority levels, ordered high > medium > low.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Recommendation is derived per room within an office: a classification
// against the utilization threshold plus human-readable guidance.
// Never persisted; recomputed on demand and cached with an expiry.
type Recommendation struct {
	RoomID             string  `json:"room_id"`
	RoomName           string  `json:"room_name"`
	CurrentUtilization float64 `json:"current_utilization"`
	Type               string  `json:"recommendation_type"`
	Recommendation     string  `json:"recommendation"`
	// PotentialSavings is an estimated annual saving in dollars, only set
	// for underutilized conference rooms.
	PotentialSavings *float64 `json:"potential_savings,omitempty"`
	Priority         string   `json:"priority"`
}

// PriorityRank maps a priority to its sort weight.
func PriorityRank(priority string) int {
	switch priority {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	default:
		return 1
	}
}
