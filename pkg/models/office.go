package models

import (
	"time"

	"github.com/google/uuid"
)

// Office is a physical site belonging to one tenant.
// Stored in the offices table, cascade-deleted with its tenant.
type Office struct {
	ID            uuid.UUID              `json:"id"`
	TenantID      uuid.UUID              `json:"tenant_id"`
	Name          string                 `json:"name"`
	Location      string                 `json:"location"`
	Address       string                 `json:"address,omitempty"`
	Timezone      string                 `json:"timezone"`
	TotalCapacity int                    `json:"total_capacity"`
	Metadata      map[string]interface{} `json:"metadata"`
	Active        bool                   `json:"active"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}
