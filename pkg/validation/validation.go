// Package validation performs pure structural validation of inbound
// payloads and query parameters. It normalizes values (parsed timestamps,
// defaulted windows) before they reach business logic; violations are
// reported as per-field errors, never as panics or partial state.
package validation

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/spacewise-io/occupancy-engine/pkg/apperrors"
	"github.com/spacewise-io/occupancy-engine/pkg/models"
)

// Validation bounds. People counts above MaxPeopleCount are absurd for a
// single room and rejected outright.
const (
	MaxRoomIDLength = 100
	MaxPeopleCount  = 1000
	MinWindowDays   = 1
	MaxWindowDays   = 365

	DefaultUtilizationDays    = 7
	DefaultRecommendationDays = 30
	DefaultThreshold          = 0.5
)

// EventPayload is the wire shape of a single occupancy event submission.
type EventPayload struct {
	TenantID    string                 `json:"tenant_id"`
	RoomID      string                 `json:"room_id"`
	Timestamp   string                 `json:"timestamp"`
	PeopleCount *int                   `json:"people_count"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// UtilizationParams is the normalized form of a utilization query.
type UtilizationParams struct {
	TenantID uuid.UUID
	RoomID   string
	Days     int
}

// RecommendationParams is the normalized form of a recommendation query.
type RecommendationParams struct {
	TenantID  uuid.UUID
	OfficeID  uuid.UUID
	Days      int
	Threshold float64
}

// ValidateEvent checks an event payload and returns its normalized form.
func ValidateEvent(p *EventPayload) (*models.EventInput, *apperrors.ValidationError) {
	verr := &apperrors.ValidationError{}

	tenantID := requireUUID(verr, "tenant_id", p.TenantID)

	if l := len(p.RoomID); l < 1 || l > MaxRoomIDLength {
		verr.Add("room_id", fmt.Sprintf("room_id must be between 1 and %d characters", MaxRoomIDLength))
	}

	var ts time.Time
	if p.Timestamp == "" {
		verr.Add("timestamp", "timestamp is required")
	} else {
		parsed, err := parseISOTimestamp(p.Timestamp)
		if err != nil {
			verr.Add("timestamp", "timestamp must be a valid ISO-8601 date")
		} else {
			ts = parsed
		}
	}

	var count int
	if p.PeopleCount == nil {
		verr.Add("people_count", "people_count is required")
	} else if *p.PeopleCount < 0 || *p.PeopleCount > MaxPeopleCount {
		verr.Add("people_count", fmt.Sprintf("people_count must be between 0 and %d", MaxPeopleCount))
	} else {
		count = *p.PeopleCount
	}

	if verr.HasErrors() {
		return nil, verr
	}

	metadata := p.Metadata
	if metadata == nil {
		metadata = map[string]interface{}{}
	}

	return &models.EventInput{
		TenantID:    tenantID,
		RoomID:      p.RoomID,
		Timestamp:   ts,
		PeopleCount: count,
		Metadata:    metadata,
	}, nil
}

// ValidateUtilizationParams checks and normalizes a utilization query.
// days defaults to 7 when omitted.
func ValidateUtilizationParams(tenantID, roomID, days string) (*UtilizationParams, *apperrors.ValidationError) {
	verr := &apperrors.ValidationError{}

	tid := requireUUID(verr, "tenant_id", tenantID)

	if l := len(roomID); l < 1 || l > MaxRoomIDLength {
		verr.Add("room_id", fmt.Sprintf("room_id must be between 1 and %d characters", MaxRoomIDLength))
	}

	d := parseWindowDays(verr, days, DefaultUtilizationDays)

	if verr.HasErrors() {
		return nil, verr
	}

	return &UtilizationParams{TenantID: tid, RoomID: roomID, Days: d}, nil
}

// ValidateRecommendationParams checks and normalizes a recommendation query.
// days defaults to 30 and threshold to 0.5 when omitted.
func ValidateRecommendationParams(tenantID, officeID, days, threshold string) (*RecommendationParams, *apperrors.ValidationError) {
	verr := &apperrors.ValidationError{}

	tid := requireUUID(verr, "tenant_id", tenantID)
	oid := requireUUID(verr, "office_id", officeID)

	d := parseWindowDays(verr, days, DefaultRecommendationDays)

	t := DefaultThreshold
	if threshold != "" {
		parsed, err := strconv.ParseFloat(threshold, 64)
		if err != nil || parsed < 0 || parsed > 1 {
			verr.Add("threshold", "threshold must be a number between 0 and 1")
		} else {
			t = parsed
		}
	}

	if verr.HasErrors() {
		return nil, verr
	}

	return &RecommendationParams{TenantID: tid, OfficeID: oid, Days: d, Threshold: t}, nil
}

func requireUUID(verr *apperrors.ValidationError, field, value string) uuid.UUID {
	if value == "" {
		verr.Add(field, field+" is required")
		return uuid.Nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		verr.Add(field, field+" must be a valid UUID")
		return uuid.Nil
	}
	return id
}

func parseWindowDays(verr *apperrors.ValidationError, days string, def int) int {
	if days == "" {
		return def
	}
	d, err := strconv.Atoi(days)
	if err != nil || d < MinWindowDays || d > MaxWindowDays {
		verr.Add("days", fmt.Sprintf("days must be an integer between %d and %d", MinWindowDays, MaxWindowDays))
		return def
	}
	return d
}

// parseISOTimestamp accepts RFC 3339 timestamps, with or without a zone
// offset. Zone-less timestamps are interpreted as UTC.
func parseISOTimestamp(value string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts, nil
	}
	return time.Parse("2006-01-02T15:04:05", value)
}
