package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tripplanner/internal/itinerary"
	dbm "tripplanner/internal/models/db_models"
	"tripplanner/internal/models/request_models"
	resp "tripplanner/internal/models/response_models"
	"tripplanner/internal/repositories"
	"tripplanner/pkg/utils"
)

type DestinationServiceInterface interface {
	CreateDestination(ctx context.Context, ownerID, tripID uuid.UUID, req request_models.CreateDestinationRequest) (*resp.DestinationResponse, error)
	UpdateDestination(ctx context.Context, ownerID, tripID, destinationID uuid.UUID, req request_models.UpdateDestinationRequest) (*resp.DestinationResponse, error)
	DeleteDestination(ctx context.Context, ownerID, tripID, destinationID uuid.UUID) error
	ReorderDestinations(ctx context.Context, ownerID, tripID uuid.UUID, orderedIDs []uuid.UUID) ([]resp.DestinationResponse, error)
	SaveDestinationDetails(ctx context.Context, ownerID, tripID, destinationID uuid.UUID, req request_models.SaveDestinationDetailsRequest) (*resp.DestinationResponse, error)
}

type DestinationService struct {
	tripRepo          repositories.TripRepository
	destinationRepo   repositories.DestinationRepository
	transportRepo     repositories.TransportRepository
	accommodationRepo repositories.AccommodationRepository
	log               *zap.Logger
}

func NewDestinationService(
	tripRepo repositories.TripRepository,
	destinationRepo repositories.DestinationRepository,
	transportRepo repositories.TransportRepository,
	accommodationRepo repositories.AccommodationRepository,
	log *zap.Logger,
) DestinationServiceInterface {
	return &DestinationService{
		tripRepo:          tripRepo,
		destinationRepo:   destinationRepo,
		transportRepo:     transportRepo,
		accommodationRepo: accommodationRepo,
		log:               log.Named("destinations"),
	}
}

func (s *DestinationService) CreateDestination(ctx context.Context, ownerID, tripID uuid.UUID, req request_models.CreateDestinationRequest) (*resp.DestinationResponse, error) {
	trip, err := ownedTrip(ctx, s.tripRepo, ownerID, tripID)
	if err != nil {
		return nil, err
	}

	d, err := newDestination(ctx, s.destinationRepo, trip.ID, req.City, req.Duration, req.Position)
	if err != nil {
		return nil, err
	}
	out := toDestinationResponse(d)
	return &out, nil
}

func (s *DestinationService) destination(ctx context.Context, tripID, destinationID uuid.UUID) (*dbm.Destination, error) {
	if destinationID == uuid.Nil {
		return nil, utils.Validationf("destination id is required")
	}
	d, err := s.destinationRepo.FindInTrip(ctx, tripID, destinationID)
	if err != nil {
		return nil, utils.Storage("find destination", err)
	}
	if d == nil {
		return nil, utils.NotFoundf("destination %s", destinationID)
	}
	return d, nil
}

func (s *DestinationService) UpdateDestination(ctx context.Context, ownerID, tripID, destinationID uuid.UUID, req request_models.UpdateDestinationRequest) (*resp.DestinationResponse, error) {
	trip, err := ownedTrip(ctx, s.tripRepo, ownerID, tripID)
	if err != nil {
		return nil, err
	}
	d, err := s.updateDestination(ctx, trip.ID, destinationID, req)
	if err != nil {
		return nil, err
	}
	out := toDestinationResponse(d)
	return &out, nil
}

func (s *DestinationService) updateDestination(ctx context.Context, tripID, destinationID uuid.UUID, req request_models.UpdateDestinationRequest) (*dbm.Destination, error) {
	current, err := s.destination(ctx, tripID, destinationID)
	if err != nil {
		return nil, err
	}
	if req.IsEmpty() {
		return current, nil
	}

	changes := map[string]any{}
	if req.City != nil {
		city, err := itinerary.NormalizeCity(*req.City)
		if err != nil {
			return nil, utils.Validationf("%s", err.Error())
		}
		changes["city"] = city
	}
	if req.Duration != nil {
		changes["duration"] = itinerary.NormalizeDuration(*req.Duration)
	}
	if req.Position != nil {
		if p, ok := itinerary.NormalizePosition(*req.Position); ok {
			changes["position"] = p
		}
	}
	if req.Notes.Set {
		if notes := trimmedOrNil(req.Notes.Value); notes != nil {
			changes["notes"] = *notes
		} else {
			changes["notes"] = nil
		}
	}
	if req.Budget.Set {
		if err := itinerary.ValidateBudget(req.Budget.Value); err != nil {
			return nil, utils.Validationf("%s", err.Error())
		}
		if req.Budget.Value == nil {
			changes["budget"] = nil
		} else {
			changes["budget"] = *req.Budget.Value
		}
	}

	updated, err := s.destinationRepo.Update(ctx, tripID, current.ID, changes)
	if err != nil {
		return nil, utils.Storage("update destination", err)
	}
	if updated == nil {
		return nil, utils.NotFoundf("destination %s", destinationID)
	}
	return updated, nil
}

func (s *DestinationService) DeleteDestination(ctx context.Context, ownerID, tripID, destinationID uuid.UUID) error {
	trip, err := ownedTrip(ctx, s.tripRepo, ownerID, tripID)
	if err != nil {
		return err
	}
	if destinationID == uuid.Nil {
		return utils.Validationf("destination id is required")
	}

	deleted, err := s.destinationRepo.Delete(ctx, trip.ID, destinationID)
	if err != nil {
		return utils.Storage("delete destination", err)
	}
	if !deleted {
		return utils.NotFoundf("destination %s", destinationID)
	}
	return nil
}

// ReorderDestinations assigns position = index. The ids must be exactly the
// trip's current destinations; anything else is rejected before any write.
func (s *DestinationService) ReorderDestinations(ctx context.Context, ownerID, tripID uuid.UUID, orderedIDs []uuid.UUID) ([]resp.DestinationResponse, error) {
	trip, err := ownedTrip(ctx, s.tripRepo, ownerID, tripID)
	if err != nil {
		return nil, err
	}

	current, err := s.destinationRepo.ListByTrip(ctx, trip.ID)
	if err != nil {
		return nil, utils.Storage("list destinations", err)
	}
	currentIDs := make([]uuid.UUID, 0, len(current))
	for _, d := range current {
		currentIDs = append(currentIDs, d.ID)
	}

	if err := itinerary.ValidatePermutation(orderedIDs, currentIDs); err != nil {
		return nil, utils.Validationf("%s", err.Error())
	}

	if len(orderedIDs) > 0 {
		if err := s.destinationRepo.Reorder(ctx, trip.ID, orderedIDs); err != nil {
			if errors.Is(err, repositories.ErrReorderStale) {
				s.log.Warn("reorder raced with a concurrent change", zap.Stringer("trip_id", trip.ID), zap.Error(err))
			}
			return nil, utils.Storage("reorder destinations", err)
		}
	}

	reordered, err := s.destinationRepo.ListByTrip(ctx, trip.ID)
	if err != nil {
		return nil, utils.Storage("list destinations", err)
	}
	itinerary.SortByPosition(reordered)

	out := make([]resp.DestinationResponse, 0, len(reordered))
	for i := range reordered {
		out = append(out, toDestinationResponse(&reordered[i]))
	}
	return out, nil
}

// SaveDestinationDetails writes the destination, then its transport, then its
// accommodation. The steps are independent: a failure leaves the earlier
// ones committed.
func (s *DestinationService) SaveDestinationDetails(ctx context.Context, ownerID, tripID, destinationID uuid.UUID, req request_models.SaveDestinationDetailsRequest) (*resp.DestinationResponse, error) {
	trip, err := ownedTrip(ctx, s.tripRepo, ownerID, tripID)
	if err != nil {
		return nil, err
	}

	transport := req.Transport.Details()
	if err := transport.Validate(); err != nil {
		return nil, utils.Validationf("%s", err.Error())
	}

	d, err := s.updateDestination(ctx, trip.ID, destinationID, req.Destination)
	if err != nil {
		return nil, err
	}

	d.Transport, err = upsertTransport(ctx, s.transportRepo, itinerary.DestinationParent(d.ID), transport)
	if err != nil {
		s.log.Warn("destination saved without transport", zap.Stringer("destination_id", d.ID), zap.Error(err))
		return nil, err
	}
	d.Accommodation, err = upsertAccommodation(ctx, s.accommodationRepo, d.ID, req.Accommodation.Details())
	if err != nil {
		s.log.Warn("destination saved without accommodation", zap.Stringer("destination_id", d.ID), zap.Error(err))
		return nil, err
	}

	out := toDestinationResponse(d)
	return &out, nil
}
