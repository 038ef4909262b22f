package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "tripplanner/internal/models/db_models"
)

// ErrReorderStale is returned when a destination vanished between validation
// and the positional update. The transaction is rolled back.
var ErrReorderStale = fmt.Errorf("destination set changed during reorder")

type DestinationRepository interface {
	Insert(ctx context.Context, destination *dbm.Destination) error
	FindByID(ctx context.Context, id uuid.UUID) (*dbm.Destination, error)
	FindInTrip(ctx context.Context, tripID, id uuid.UUID) (*dbm.Destination, error)
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]dbm.Destination, error)
	HighestPositions(ctx context.Context, tripID uuid.UUID) ([]int, error)
	Update(ctx context.Context, tripID, id uuid.UUID, changes map[string]any) (*dbm.Destination, error)
	Delete(ctx context.Context, tripID, id uuid.UUID) (bool, error)
	Reorder(ctx context.Context, tripID uuid.UUID, orderedIDs []uuid.UUID) error
}

type destinationRepository struct {
	db *gorm.DB
}

func NewDestinationRepository(db *gorm.DB) DestinationRepository {
	return &destinationRepository{db: db}
}

func (r *destinationRepository) Insert(ctx context.Context, destination *dbm.Destination) error {
	return mapError(r.db.WithContext(ctx).Omit("Transport", "Accommodation").Create(destination).Error)
}

func (r *destinationRepository) FindByID(ctx context.Context, id uuid.UUID) (*dbm.Destination, error) {
	return first[dbm.Destination](r.db.WithContext(ctx), "id = ?", id)
}

func (r *destinationRepository) FindInTrip(ctx context.Context, tripID, id uuid.UUID) (*dbm.Destination, error) {
	return first[dbm.Destination](r.db.WithContext(ctx).Where("trip_id = ?", tripID), "id = ?", id)
}

// ListByTrip returns destinations by position, then insertion order.
func (r *destinationRepository) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]dbm.Destination, error) {
	var destinations []dbm.Destination
	err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("position ASC").
		Order("created_at ASC").
		Order("id ASC").
		Find(&destinations).Error
	return destinations, err
}

// HighestPositions returns at most one element: the current maximum.
func (r *destinationRepository) HighestPositions(ctx context.Context, tripID uuid.UUID) ([]int, error) {
	var positions []int
	err := r.db.WithContext(ctx).
		Model(&dbm.Destination{}).
		Where("trip_id = ?", tripID).
		Order("position DESC").
		Limit(1).
		Pluck("position", &positions).Error
	return positions, err
}

func (r *destinationRepository) Update(ctx context.Context, tripID, id uuid.UUID, changes map[string]any) (*dbm.Destination, error) {
	if len(changes) > 0 {
		err := r.db.WithContext(ctx).
			Model(&dbm.Destination{}).
			Where("trip_id = ? AND id = ?", tripID, id).
			Updates(changes).Error
		if err != nil {
			return nil, mapError(err)
		}
	}
	return r.FindInTrip(ctx, tripID, id)
}

// Delete removes the destination and its transport and accommodation.
// Remaining positions are left as they are.
func (r *destinationRepository) Delete(ctx context.Context, tripID, id uuid.UUID) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("trip_id = ? AND id = ?", tripID, id).Delete(&dbm.Destination{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		deleted = true

		if err := tx.Where("destination_id = ?", id).Delete(&dbm.Transport{}).Error; err != nil {
			return err
		}
		return tx.Where("destination_id = ?", id).Delete(&dbm.Accommodation{}).Error
	})
	return deleted, err
}

// Reorder writes position = index for every id in one transaction.
func (r *destinationRepository) Reorder(ctx context.Context, tripID uuid.UUID, orderedIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for position, id := range orderedIDs {
			res := tx.Model(&dbm.Destination{}).
				Where("trip_id = ? AND id = ?", tripID, id).
				Update("position", position)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: %s", ErrReorderStale, id)
			}
		}
		return nil
	})
}
