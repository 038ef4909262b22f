package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "tripplanner/internal/models/db_models"
)

// TripStats aggregates the destinations of one trip.
type TripStats struct {
	TripID           uuid.UUID
	DestinationCount int
	TotalDays        int
}

type TripRepository interface {
	Insert(ctx context.Context, trip *dbm.Trip) error
	FindByID(ctx context.Context, id uuid.UUID) (*dbm.Trip, error)
	FindOwned(ctx context.Context, id, ownerID uuid.UUID) (*dbm.Trip, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]dbm.Trip, error)
	Update(ctx context.Context, id uuid.UUID, changes map[string]any) (*dbm.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DestinationStats(ctx context.Context, tripIDs []uuid.UUID) (map[uuid.UUID]TripStats, error)
}

type tripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) TripRepository {
	return &tripRepository{db: db}
}

func (r *tripRepository) Insert(ctx context.Context, trip *dbm.Trip) error {
	return mapError(r.db.WithContext(ctx).Omit("Destinations").Create(trip).Error)
}

func (r *tripRepository) FindByID(ctx context.Context, id uuid.UUID) (*dbm.Trip, error) {
	return first[dbm.Trip](r.db.WithContext(ctx), "id = ?", id)
}

func (r *tripRepository) FindOwned(ctx context.Context, id, ownerID uuid.UUID) (*dbm.Trip, error) {
	return first[dbm.Trip](r.db.WithContext(ctx).Where("owner_id = ?", ownerID), "id = ?", id)
}

func (r *tripRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]dbm.Trip, error) {
	var trips []dbm.Trip
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Order("id").
		Find(&trips).Error
	return trips, err
}

func (r *tripRepository) Update(ctx context.Context, id uuid.UUID, changes map[string]any) (*dbm.Trip, error) {
	if len(changes) > 0 {
		err := r.db.WithContext(ctx).
			Model(&dbm.Trip{}).
			Where("id = ?", id).
			Updates(changes).Error
		if err != nil {
			return nil, mapError(err)
		}
	}
	return r.FindByID(ctx, id)
}

// Delete soft-deletes the trip together with its destinations and their
// details, and switches off every share link of the trip.
func (r *tripRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		destinationIDs := tx.Model(&dbm.Destination{}).Select("id").Where("trip_id = ?", id)

		if err := tx.Where("trip_id = ? OR destination_id IN (?)", id, destinationIDs).
			Delete(&dbm.Transport{}).Error; err != nil {
			return err
		}
		if err := tx.Where("destination_id IN (?)", destinationIDs).
			Delete(&dbm.Accommodation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("trip_id = ?", id).Delete(&dbm.Destination{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&dbm.ShareLink{}).
			Where("trip_id = ?", id).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&dbm.Trip{}).Error
	})
}

func (r *tripRepository) DestinationStats(ctx context.Context, tripIDs []uuid.UUID) (map[uuid.UUID]TripStats, error) {
	stats := make(map[uuid.UUID]TripStats, len(tripIDs))
	if len(tripIDs) == 0 {
		return stats, nil
	}
	for _, id := range tripIDs {
		stats[id] = TripStats{TripID: id}
	}

	var rows []TripStats
	err := r.db.WithContext(ctx).
		Model(&dbm.Destination{}).
		Select("trip_id, COUNT(*) AS destination_count, COALESCE(SUM(duration), 0) AS total_days").
		Where("trip_id IN ?", tripIDs).
		Group("trip_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		stats[row.TripID] = row
	}
	return stats, nil
}
