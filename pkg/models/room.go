package models

import (
	"time"

	"github.com/google/uuid"
)

// Room is a bookable or observable space within an office. RoomID is the
// external identifier sensors report with; it is unique per tenant and is
// how occupancy events reference the room (not the internal UUID).
// Stored in the rooms table.
type Room struct {
	ID       uuid.UUID `json:"id"`
	TenantID uuid.UUID `json:"tenant_id"`
	OfficeID uuid.UUID `json:"office_id"`
	RoomID   string    `json:"room_id"`
	Name     string    `json:"name"`
	// Type is a free-form category, e.g. "conference", "focus", "open".
	Type      string                 `json:"type"`
	Capacity  int                    `json:"capacity"`
	Floor     string                 `json:"floor,omitempty"`
	Metadata  map[string]interface{} `json:"metadata"`
	Active    bool                   `json:"active"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// RoomTypeConference rooms carry an estimated annual savings figure when
// they are classified as underutilized.
const RoomTypeConference = "conference"
