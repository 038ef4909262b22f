package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "tripplanner/internal/models/db_models"
)

type AccommodationRepository interface {
	FindByDestination(ctx context.Context, destinationID uuid.UUID) (*dbm.Accommodation, error)
	ListByDestinations(ctx context.Context, destinationIDs []uuid.UUID) ([]dbm.Accommodation, error)
	Insert(ctx context.Context, accommodation *dbm.Accommodation) error
	Update(ctx context.Context, id uuid.UUID, changes map[string]any) (*dbm.Accommodation, error)
}

type accommodationRepository struct {
	db *gorm.DB
}

func NewAccommodationRepository(db *gorm.DB) AccommodationRepository {
	return &accommodationRepository{db: db}
}

func (r *accommodationRepository) FindByDestination(ctx context.Context, destinationID uuid.UUID) (*dbm.Accommodation, error) {
	return first[dbm.Accommodation](r.db.WithContext(ctx), "destination_id = ?", destinationID)
}

func (r *accommodationRepository) ListByDestinations(ctx context.Context, destinationIDs []uuid.UUID) ([]dbm.Accommodation, error) {
	var accommodations []dbm.Accommodation
	if len(destinationIDs) == 0 {
		return accommodations, nil
	}
	err := r.db.WithContext(ctx).
		Where("destination_id IN ?", destinationIDs).
		Find(&accommodations).Error
	return accommodations, err
}

func (r *accommodationRepository) Insert(ctx context.Context, accommodation *dbm.Accommodation) error {
	return mapError(r.db.WithContext(ctx).Create(accommodation).Error)
}

func (r *accommodationRepository) Update(ctx context.Context, id uuid.UUID, changes map[string]any) (*dbm.Accommodation, error) {
	if len(changes) > 0 {
		err := r.db.WithContext(ctx).
			Model(&dbm.Accommodation{}).
			Where("id = ?", id).
			Updates(changes).Error
		if err != nil {
			return nil, mapError(err)
		}
	}
	return first[dbm.Accommodation](r.db.WithContext(ctx), "id = ?", id)
}
