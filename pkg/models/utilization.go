package models

// Utilization is a derived snapshot of a room's occupancy over a trailing
// window. It is never persisted; it is recomputed on demand and cached
// with an expiry.
type Utilization struct {
	RoomID             string  `json:"room_id"`
	RoomName           string  `json:"room_name"`
	AverageUtilization float64 `json:"average_utilization"`
	TotalEvents        int64   `json:"total_events"`
	PeakOccupancy      int     `json:"peak_occupancy"`
	Capacity           int     `json:"capacity"`
	// UtilizationPercentage is average/capacity*100, or 0 when capacity is 0.
	UtilizationPercentage float64 `json:"utilization_percentage"`
}
