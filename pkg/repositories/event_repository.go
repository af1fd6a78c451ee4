package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spacewise-io/occupancy-engine/pkg/database"
	"github.com/spacewise-io/occupancy-engine/pkg/models"
)

// RoomStats holds aggregate occupancy figures for one room over a window.
// All values are 0, never null, when no events fall in the window.
type RoomStats struct {
	AverageOccupancy float64
	TotalEvents      int64
	PeakOccupancy    int
}

// EventRepository provides data access for occupancy events, scoped to a
// tenant. Events are insert-only; there are no update or delete operations.
type EventRepository interface {
	// Insert persists one event and fills in its generated id and
	// timestamps.
	Insert(ctx context.Context, event *models.OccupancyEvent) error

	// InsertBatch persists all events in one round trip.
	InsertBatch(ctx context.Context, events []*models.OccupancyEvent) error

	// AggregateStats computes average, count and peak of people_count over
	// events with timestamp >= since.
	AggregateStats(ctx context.Context, tenantID uuid.UUID, roomID string, since time.Time) (*RoomStats, error)
}

type eventRepository struct{}

// NewEventRepository creates a new EventRepository.
func NewEventRepository() EventRepository {
	return &eventRepository{}
}

var _ EventRepository = (*eventRepository)(nil)

const insertEventSQL = `
	INSERT INTO occupancy_events (tenant_id, room_id, timestamp, people_count, metadata)
	VALUES ($1, $2, $3, $4, $5)`

func (r *eventRepository) Insert(ctx context.Context, event *models.OccupancyEvent) error {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return fmt.Errorf("no tenant scope in context")
	}

	query := insertEventSQL + `
	RETURNING id, created_at, updated_at`

	err := scope.Conn.QueryRow(ctx, query,
		event.TenantID,
		event.RoomID,
		event.Timestamp,
		event.PeopleCount,
		jsonbValue(event.Metadata),
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert occupancy event: %w", err)
	}

	return nil
}

func (r *eventRepository) InsertBatch(ctx context.Context, events []*models.OccupancyEvent) error {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return fmt.Errorf("no tenant scope in context")
	}

	batch := &pgx.Batch{}
	for _, event := range events {
		batch.Queue(insertEventSQL,
			event.TenantID,
			event.RoomID,
			event.Timestamp,
			event.PeopleCount,
			jsonbValue(event.Metadata),
		)
	}

	results := scope.Conn.SendBatch(ctx, batch)
	defer func() { _ = results.Close() }()

	for range events {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert occupancy event batch: %w", err)
		}
	}

	return nil
}

func (r *eventRepository) AggregateStats(ctx context.Context, tenantID uuid.UUID, roomID string, since time.Time) (*RoomStats, error) {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no tenant scope in context")
	}

	query := `
		SELECT COALESCE(AVG(people_count), 0)::float8,
		       COUNT(*),
		       COALESCE(MAX(people_count), 0)
		FROM occupancy_events
		WHERE tenant_id = $1 AND room_id = $2 AND timestamp >= $3`

	stats := &RoomStats{}
	err := scope.Conn.QueryRow(ctx, query, tenantID, roomID, since).Scan(
		&stats.AverageOccupancy,
		&stats.TotalEvents,
		&stats.PeakOccupancy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate room stats: %w", err)
	}

	return stats, nil
}

// jsonbValue normalizes a metadata map for a jsonb column: nil maps are
// stored as empty objects, never SQL NULL.
func jsonbValue(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return map[string]interface{}{}
	}
	return m
}
