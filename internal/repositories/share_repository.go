package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "tripplanner/internal/models/db_models"
)

type ShareRepository interface {
	// Insert reports a token collision as utils.ErrConflict.
	Insert(ctx context.Context, link *dbm.ShareLink) error
	FindByToken(ctx context.Context, token string) (*dbm.ShareLink, error)
	FindByID(ctx context.Context, id uuid.UUID) (*dbm.ShareLink, error)
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]dbm.ShareLink, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type shareRepository struct {
	db *gorm.DB
}

func NewShareRepository(db *gorm.DB) ShareRepository {
	return &shareRepository{db: db}
}

func (r *shareRepository) Insert(ctx context.Context, link *dbm.ShareLink) error {
	return mapError(r.db.WithContext(ctx).Create(link).Error)
}

func (r *shareRepository) FindByToken(ctx context.Context, token string) (*dbm.ShareLink, error) {
	return first[dbm.ShareLink](r.db.WithContext(ctx), "token = ?", token)
}

func (r *shareRepository) FindByID(ctx context.Context, id uuid.UUID) (*dbm.ShareLink, error) {
	return first[dbm.ShareLink](r.db.WithContext(ctx), "id = ?", id)
}

func (r *shareRepository) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]dbm.ShareLink, error) {
	var links []dbm.ShareLink
	err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("created_at DESC").
		Find(&links).Error
	return links, err
}

func (r *shareRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&dbm.ShareLink{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}
