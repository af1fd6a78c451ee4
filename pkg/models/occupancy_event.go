package models

import (
	"time"

	"github.com/google/uuid"
)

// OccupancyEvent is an immutable sensor observation: how many people were
// in a room at a point in time. Events are never updated or deleted by
// normal operation. Stored in the occupancy_events table.
type OccupancyEvent struct {
	ID          uuid.UUID              `json:"id"`
	TenantID    uuid.UUID              `json:"tenant_id"`
	RoomID      string                 `json:"room_id"`
	Timestamp   time.Time              `json:"timestamp"`
	PeopleCount int                    `json:"people_count"`
	Metadata    map[string]interface{} `json:"metadata"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// EventInput is the normalized form of an ingestion payload after
// validation. Metadata defaults to an empty map, never nil.
type EventInput struct {
	TenantID    uuid.UUID
	RoomID      string
	Timestamp   time.Time
	PeopleCount int
	Metadata    map[string]interface{}
}
