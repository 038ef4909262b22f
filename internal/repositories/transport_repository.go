package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tripplanner/internal/itinerary"
	dbm "tripplanner/internal/models/db_models"
)

type TransportRepository interface {
	FindByParent(ctx context.Context, parent itinerary.TransportParent) (*dbm.Transport, error)
	ListByDestinations(ctx context.Context, destinationIDs []uuid.UUID) ([]dbm.Transport, error)
	ListTripLegs(ctx context.Context, tripID uuid.UUID) ([]dbm.Transport, error)
	Insert(ctx context.Context, transport *dbm.Transport) error
	Update(ctx context.Context, id uuid.UUID, changes map[string]any) (*dbm.Transport, error)
}

type transportRepository struct {
	db *gorm.DB
}

func NewTransportRepository(db *gorm.DB) TransportRepository {
	return &transportRepository{db: db}
}

func (r *transportRepository) FindByParent(ctx context.Context, parent itinerary.TransportParent) (*dbm.Transport, error) {
	q := r.db.WithContext(ctx).Where("role = ?", string(parent.Role()))
	if id, ok := parent.DestinationID(); ok {
		return first[dbm.Transport](q.Where("destination_id = ?", id))
	}
	tripID, _ := parent.TripID()
	return first[dbm.Transport](q.Where("trip_id = ?", tripID))
}

func (r *transportRepository) ListByDestinations(ctx context.Context, destinationIDs []uuid.UUID) ([]dbm.Transport, error) {
	var transports []dbm.Transport
	if len(destinationIDs) == 0 {
		return transports, nil
	}
	err := r.db.WithContext(ctx).
		Where("destination_id IN ? AND role = ?", destinationIDs, string(itinerary.RoleDestination)).
		Find(&transports).Error
	return transports, err
}

func (r *transportRepository) ListTripLegs(ctx context.Context, tripID uuid.UUID) ([]dbm.Transport, error) {
	var transports []dbm.Transport
	err := r.db.WithContext(ctx).
		Where("trip_id = ? AND role IN ?", tripID,
			[]string{string(itinerary.RoleDeparture), string(itinerary.RoleReturn)}).
		Find(&transports).Error
	return transports, err
}

func (r *transportRepository) Insert(ctx context.Context, transport *dbm.Transport) error {
	return mapError(r.db.WithContext(ctx).Create(transport).Error)
}

func (r *transportRepository) Update(ctx context.Context, id uuid.UUID, changes map[string]any) (*dbm.Transport, error) {
	if len(changes) > 0 {
		err := r.db.WithContext(ctx).
			Model(&dbm.Transport{}).
			Where("id = ?", id).
			Updates(changes).Error
		if err != nil {
			return nil, mapError(err)
		}
	}
	return first[dbm.Transport](r.db.WithContext(ctx), "id = ?", id)
}
