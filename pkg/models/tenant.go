package models

import (
	"time"

	"github.com/google/uuid"
)

// Tenant is the root of all data scoping. Every other entity references
// exactly one tenant, and an inactive tenant is rejected at authentication.
// Stored in the tenants table.
type Tenant struct {
	ID          uuid.UUID              `json:"id"`
	Name        string                 `json:"name"`
	Slug        string                 `json:"slug"`
	Description string                 `json:"description,omitempty"`
	Settings    map[string]interface{} `json:"settings"`
	Active      bool                   `json:"active"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}
