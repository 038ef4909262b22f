package services

import (
	"context"

	"github.com/google/uuid"

	"tripplanner/internal/itinerary"
	resp "tripplanner/internal/models/response_models"
	"tripplanner/internal/repositories"
	"tripplanner/pkg/utils"
)

// TransportUpsert names the parent loosely, the way HTTP callers supply it.
// Exactly one of DestinationID and TripID must be set, and Role must agree.
type TransportUpsert struct {
	DestinationID *uuid.UUID
	TripID        *uuid.UUID
	Role          itinerary.TransportRole
	Details       itinerary.TransportDetails
}

type SubEntityServiceInterface interface {
	UpsertTransport(ctx context.Context, ownerID uuid.UUID, in TransportUpsert) (*resp.TransportResponse, error)
	UpsertAccommodation(ctx context.Context, ownerID, destinationID uuid.UUID, details itinerary.AccommodationDetails) (*resp.AccommodationResponse, error)
	GetTripTransports(ctx context.Context, ownerID, tripID uuid.UUID) (*resp.TripTransportsResponse, error)
	GetTransportByDestination(ctx context.Context, ownerID, destinationID uuid.UUID) (*resp.TransportResponse, error)
	GetAccommodationByDestination(ctx context.Context, ownerID, destinationID uuid.UUID) (*resp.AccommodationResponse, error)
}

type SubEntityService struct {
	tripRepo          repositories.TripRepository
	destinationRepo   repositories.DestinationRepository
	transportRepo     repositories.TransportRepository
	accommodationRepo repositories.AccommodationRepository
}

func NewSubEntityService(
	tripRepo repositories.TripRepository,
	destinationRepo repositories.DestinationRepository,
	transportRepo repositories.TransportRepository,
	accommodationRepo repositories.AccommodationRepository,
) SubEntityServiceInterface {
	return &SubEntityService{
		tripRepo:          tripRepo,
		destinationRepo:   destinationRepo,
		transportRepo:     transportRepo,
		accommodationRepo: accommodationRepo,
	}
}

// authorizeDestination checks that the destination exists and its trip
// belongs to the owner.
func (s *SubEntityService) authorizeDestination(ctx context.Context, ownerID, destinationID uuid.UUID) error {
	if destinationID == uuid.Nil {
		return utils.Validationf("destination id is required")
	}
	d, err := s.destinationRepo.FindByID(ctx, destinationID)
	if err != nil {
		return utils.Storage("find destination", err)
	}
	if d == nil {
		return utils.NotFoundf("destination %s", destinationID)
	}
	_, err = ownedTrip(ctx, s.tripRepo, ownerID, d.TripID)
	return err
}

func (s *SubEntityService) authorizeParent(ctx context.Context, ownerID uuid.UUID, parent itinerary.TransportParent) error {
	if id, ok := parent.DestinationID(); ok {
		return s.authorizeDestination(ctx, ownerID, id)
	}
	tripID, _ := parent.TripID()
	_, err := ownedTrip(ctx, s.tripRepo, ownerID, tripID)
	return err
}

// UpsertTransport returns nil, nil when the candidate is empty and nothing
// was stored before.
func (s *SubEntityService) UpsertTransport(ctx context.Context, ownerID uuid.UUID, in TransportUpsert) (*resp.TransportResponse, error) {
	parent, err := itinerary.ResolveTransportParent(in.DestinationID, in.TripID, in.Role)
	if err != nil {
		return nil, utils.Validationf("%s", err.Error())
	}
	if err := in.Details.Validate(); err != nil {
		return nil, utils.Validationf("%s", err.Error())
	}
	if err := s.authorizeParent(ctx, ownerID, parent); err != nil {
		return nil, err
	}

	row, err := upsertTransport(ctx, s.transportRepo, parent, in.Details)
	if err != nil {
		return nil, err
	}
	return toTransportResponse(row), nil
}

func (s *SubEntityService) UpsertAccommodation(ctx context.Context, ownerID, destinationID uuid.UUID, details itinerary.AccommodationDetails) (*resp.AccommodationResponse, error) {
	if err := s.authorizeDestination(ctx, ownerID, destinationID); err != nil {
		return nil, err
	}
	row, err := upsertAccommodation(ctx, s.accommodationRepo, destinationID, details)
	if err != nil {
		return nil, err
	}
	return toAccommodationResponse(row), nil
}

func (s *SubEntityService) GetTripTransports(ctx context.Context, ownerID, tripID uuid.UUID) (*resp.TripTransportsResponse, error) {
	trip, err := ownedTrip(ctx, s.tripRepo, ownerID, tripID)
	if err != nil {
		return nil, err
	}
	legs, err := s.transportRepo.ListTripLegs(ctx, trip.ID)
	if err != nil {
		return nil, utils.Storage("list trip transports", err)
	}

	out := &resp.TripTransportsResponse{}
	for i := range legs {
		switch itinerary.TransportRole(legs[i].Role) {
		case itinerary.RoleDeparture:
			out.Departure = toTransportResponse(&legs[i])
		case itinerary.RoleReturn:
			out.Return = toTransportResponse(&legs[i])
		}
	}
	return out, nil
}

func (s *SubEntityService) GetTransportByDestination(ctx context.Context, ownerID, destinationID uuid.UUID) (*resp.TransportResponse, error) {
	if err := s.authorizeDestination(ctx, ownerID, destinationID); err != nil {
		return nil, err
	}
	row, err := s.transportRepo.FindByParent(ctx, itinerary.DestinationParent(destinationID))
	if err != nil {
		return nil, utils.Storage("find transport", err)
	}
	return toTransportResponse(row), nil
}

func (s *SubEntityService) GetAccommodationByDestination(ctx context.Context, ownerID, destinationID uuid.UUID) (*resp.AccommodationResponse, error) {
	if err := s.authorizeDestination(ctx, ownerID, destinationID); err != nil {
		return nil, err
	}
	row, err := s.accommodationRepo.FindByDestination(ctx, destinationID)
	if err != nil {
		return nil, utils.Storage("find accommodation", err)
	}
	return toAccommodationResponse(row), nil
}
