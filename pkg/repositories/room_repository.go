package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spacewise-io/occupancy-engine/pkg/apperrors"
	"github.com/spacewise-io/occupancy-engine/pkg/database"
	"github.com/spacewise-io/occupancy-engine/pkg/models"
)

// RoomRepository provides data access for rooms, scoped to a tenant.
// Every query filters by tenant_id explicitly; the store-level row filter
// on the scoped connection is defense in depth only.
type RoomRepository interface {
	// FindActiveRoom looks up a room by its external id within a tenant,
	// requiring active = true. Returns apperrors.ErrNotFound when absent.
	FindActiveRoom(ctx context.Context, tenantID uuid.UUID, roomID string) (*models.Room, error)

	// ListActiveRooms returns every active room of an office.
	ListActiveRooms(ctx context.Context, tenantID, officeID uuid.UUID) ([]*models.Room, error)
}

type roomRepository struct{}

// NewRoomRepository creates a new RoomRepository.
func NewRoomRepository() RoomRepository {
	return &roomRepository{}
}

var _ RoomRepository = (*roomRepository)(nil)

const roomColumns = `id, tenant_id, office_id, room_id, name, type, capacity,
	       COALESCE(floor, ''), metadata, active, created_at, updated_at`

func (r *roomRepository) FindActiveRoom(ctx context.Context, tenantID uuid.UUID, roomID string) (*models.Room, error) {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no tenant scope in context")
	}

	query := `
		SELECT ` + roomColumns + `
		FROM rooms
		WHERE tenant_id = $1 AND room_id = $2 AND active = true`

	room, err := scanRoom(scope.Conn.QueryRow(ctx, query, tenantID, roomID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find room %s: %w", roomID, err)
	}

	return room, nil
}

func (r *roomRepository) ListActiveRooms(ctx context.Context, tenantID, officeID uuid.UUID) ([]*models.Room, error) {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no tenant scope in context")
	}

	query := `
		SELECT ` + roomColumns + `
		FROM rooms
		WHERE tenant_id = $1 AND office_id = $2 AND active = true
		ORDER BY room_id`

	rows, err := scope.Conn.Query(ctx, query, tenantID, officeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*models.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rooms: %w", err)
	}

	return rooms, nil
}

func scanRoom(row pgx.Row) (*models.Room, error) {
	room := &models.Room{}
	err := row.Scan(
		&room.ID,
		&room.TenantID,
		&room.OfficeID,
		&room.RoomID,
		&room.Name,
		&room.Type,
		&room.Capacity,
		&room.Floor,
		&room.Metadata,
		&room.Active,
		&room.CreatedAt,
		&room.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return room, nil
}
