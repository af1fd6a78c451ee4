package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spacewise-io/occupancy-engine/pkg/apperrors"
	"github.com/spacewise-io/occupancy-engine/pkg/cache"
	"github.com/spacewise-io/occupancy-engine/pkg/metrics"
	"github.com/spacewise-io/occupancy-engine/pkg/models"
	"github.com/spacewise-io/occupancy-engine/pkg/repositories"
)

// ResultCache is the subset of the aggregate cache the service needs.
// Satisfied by *cache.AggregateCache; abstracted for test doubles.
type ResultCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeletePattern(ctx context.Context, pattern string) error
}

// OccupancyService implements the occupancy pipeline: event ingestion,
// utilization snapshots and space-optimization recommendations, always
// scoped to the authenticated tenant.
type OccupancyService interface {
	// CreateEvent validates the room and persists one occupancy event.
	// Returns apperrors.ErrNotFound when the room does not resolve.
	CreateEvent(ctx context.Context, tenantID uuid.UUID, input *models.EventInput) (*models.OccupancyEvent, error)

	// CreateEventsBatch persists every event whose room resolves, silently
	// dropping the rest, and returns the number persisted. Returns
	// apperrors.ErrNoValidEvents when nothing survives validation.
	CreateEventsBatch(ctx context.Context, tenantID uuid.UUID, inputs []*models.EventInput) (int, error)

	// GetUtilization computes (or serves from cache) a room's utilization
	// snapshot over a trailing window of days.
	GetUtilization(ctx context.Context, tenantID uuid.UUID, roomID string, days int) (*models.Utilization, error)

	// GetRecommendations computes (or serves from cache) ranked
	// space-optimization recommendations for every active room of an office.
	GetRecommendations(ctx context.Context, tenantID, officeID uuid.UUID, days int, threshold float64) ([]*models.Recommendation, error)
}

type occupancyService struct {
	rooms  repositories.RoomRepository
	events repositories.EventRepository
	cache  ResultCache
	logger *zap.Logger
	now    func() time.Time
}

// NewOccupancyService creates a new OccupancyService.
func NewOccupancyService(
	rooms repositories.RoomRepository,
	events repositories.EventRepository,
	resultCache ResultCache,
	logger *zap.Logger,
) OccupancyService {
	return &occupancyService{
		rooms:  rooms,
		events: events,
		cache:  resultCache,
		logger: logger,
		now:    time.Now,
	}
}

var _ OccupancyService = (*occupancyService)(nil)

func (s *occupancyService) CreateEvent(ctx context.Context, tenantID uuid.UUID, input *models.EventInput) (*models.OccupancyEvent, error) {
	if _, err := s.rooms.FindActiveRoom(ctx, tenantID, input.RoomID); err != nil {
		if err == apperrors.ErrNotFound {
			return nil, fmt.Errorf("room %q not found for tenant: %w", input.RoomID, apperrors.ErrNotFound)
		}
		return nil, err
	}

	event := &models.OccupancyEvent{
		TenantID:    tenantID,
		RoomID:      input.RoomID,
		Timestamp:   input.Timestamp,
		PeopleCount: input.PeopleCount,
		Metadata:    input.Metadata,
	}
	if err := s.events.Insert(ctx, event); err != nil {
		return nil, err
	}

	// Write-around invalidation: drop every cached utilization window for
	// this room so the next read recomputes with the new event.
	pattern := cache.UtilizationRoomPattern(tenantID.String(), input.RoomID)
	if err := s.cache.DeletePattern(ctx, pattern); err != nil {
		return nil, err
	}

	metrics.RecordEventsIngested("persisted", 1)
	s.logger.Info("Occupancy event created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("room_id", input.RoomID),
		zap.Int("people_count", input.PeopleCount))

	return event, nil
}

func (s *occupancyService) CreateEventsBatch(ctx context.Context, tenantID uuid.UUID, inputs []*models.EventInput) (int, error) {
	// Validate each distinct room once; N events over R rooms cost R
	// lookups. Events whose room does not resolve are dropped, never
	// failed individually.
	roomValid := make(map[string]bool)
	for _, input := range inputs {
		if _, seen := roomValid[input.RoomID]; seen {
			continue
		}
		_, err := s.rooms.FindActiveRoom(ctx, tenantID, input.RoomID)
		switch err {
		case nil:
			roomValid[input.RoomID] = true
		case apperrors.ErrNotFound:
			roomValid[input.RoomID] = false
		default:
			return 0, err
		}
	}

	var survivors []*models.OccupancyEvent
	for _, input := range inputs {
		if !roomValid[input.RoomID] {
			continue
		}
		survivors = append(survivors, &models.OccupancyEvent{
			TenantID:    tenantID,
			RoomID:      input.RoomID,
			Timestamp:   input.Timestamp,
			PeopleCount: input.PeopleCount,
			Metadata:    input.Metadata,
		})
	}

	metrics.RecordEventsIngested("dropped", len(inputs)-len(survivors))

	if len(survivors) == 0 {
		return 0, apperrors.ErrNoValidEvents
	}

	if err := s.events.InsertBatch(ctx, survivors); err != nil {
		return 0, err
	}

	// Coarse invalidation: sweep every cache key containing the tenant id.
	// This also evicts the tenant's cached recommendations, a
	// correctness-over-precision tradeoff.
	if err := s.cache.DeletePattern(ctx, cache.TenantPattern(tenantID.String())); err != nil {
		return 0, err
	}

	metrics.RecordEventsIngested("persisted", len(survivors))
	s.logger.Info("Batch occupancy events created",
		zap.String("tenant_id", tenantID.String()),
		zap.Int("submitted", len(inputs)),
		zap.Int("persisted", len(survivors)))

	return len(survivors), nil
}

func (s *occupancyService) GetUtilization(ctx context.Context, tenantID uuid.UUID, roomID string, days int) (*models.Utilization, error) {
	key := cache.UtilizationKey(tenantID.String(), roomID, days)

	cached := &models.Utilization{}
	hit, err := s.cache.Get(ctx, key, cached)
	if err != nil {
		return nil, err
	}
	if hit {
		return cached, nil
	}

	room, err := s.rooms.FindActiveRoom(ctx, tenantID, roomID)
	if err != nil {
		return nil, err
	}

	since := s.now().AddDate(0, 0, -days)
	stats, err := s.events.AggregateStats(ctx, tenantID, roomID, since)
	if err != nil {
		return nil, err
	}

	utilization := &models.Utilization{
		RoomID:             roomID,
		RoomName:           room.Name,
		AverageUtilization: stats.AverageOccupancy,
		TotalEvents:        stats.TotalEvents,
		PeakOccupancy:      stats.PeakOccupancy,
		Capacity:           room.Capacity,
	}
	if room.Capacity > 0 {
		utilization.UtilizationPercentage = stats.AverageOccupancy / float64(room.Capacity) * 100
	}

	if err := s.cache.Set(ctx, key, utilization, cache.UtilizationTTL); err != nil {
		return nil, err
	}

	s.logger.Info("Utilization calculated",
		zap.String("tenant_id", tenantID.String()),
		zap.String("room_id", roomID),
		zap.Float64("utilization_percentage", utilization.UtilizationPercentage))

	return utilization, nil
}

func (s *occupancyService) GetRecommendations(ctx context.Context, tenantID, officeID uuid.UUID, days int, threshold float64) ([]*models.Recommendation, error) {
	key := cache.RecommendationsKey(tenantID.String(), officeID.String(), days, threshold)

	var cached []*models.Recommendation
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		return nil, err
	}
	if hit {
		return cached, nil
	}

	rooms, err := s.rooms.ListActiveRooms(ctx, tenantID, officeID)
	if err != nil {
		return nil, err
	}
	if len(rooms) == 0 {
		return []*models.Recommendation{}, nil
	}

	since := s.now().AddDate(0, 0, -days)

	recommendations := make([]*models.Recommendation, 0, len(rooms))
	for _, room := range rooms {
		stats, err := s.events.AggregateStats(ctx, tenantID, room.RoomID, since)
		if err != nil {
			return nil, err
		}

		var rate float64
		if room.Capacity > 0 {
			rate = stats.AverageOccupancy / float64(room.Capacity)
		}

		if rec := classifyRoom(room, rate, stats.TotalEvents, threshold); rec != nil {
			recommendations = append(recommendations, rec)
		}
	}

	sortRecommendations(recommendations, threshold)

	if err := s.cache.Set(ctx, key, recommendations, cache.RecommendationTTL); err != nil {
		return nil, err
	}

	s.logger.Info("Recommendations generated",
		zap.String("tenant_id", tenantID.String()),
		zap.String("office_id", officeID.String()),
		zap.Int("count", len(recommendations)))

	return recommendations, nil
}
