package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tripplanner/internal/config"
	"tripplanner/internal/itinerary"
	dbm "tripplanner/internal/models/db_models"
	"tripplanner/internal/models/request_models"
	resp "tripplanner/internal/models/response_models"
	"tripplanner/internal/repositories"
	"tripplanner/pkg/utils"
)

type TripServiceInterface interface {
	CreateTrip(ctx context.Context, ownerID uuid.UUID, req request_models.CreateTripRequest) (*resp.TripDetailResponse, error)
	UpdateTrip(ctx context.Context, ownerID, tripID uuid.UUID, req request_models.UpdateTripRequest) (*resp.TripDetailResponse, error)
	DeleteTrip(ctx context.Context, ownerID, tripID uuid.UUID) error
	ListTrips(ctx context.Context, ownerID uuid.UUID) ([]resp.TripSummaryResponse, error)
	GetTrip(ctx context.Context, ownerID, tripID uuid.UUID) (*resp.TripDetailResponse, error)
	// GetSnapshot assembles a trip without an ownership check. Callers must
	// have authorized access some other way, e.g. through a share link.
	GetSnapshot(ctx context.Context, tripID uuid.UUID) (*resp.TripDetailResponse, error)
	AdjustEndDate(ctx context.Context, ownerID, tripID uuid.UUID, req request_models.AdjustEndDateRequest) (*resp.EndDateAdjustmentResponse, error)
}

type TripService struct {
	tripRepo          repositories.TripRepository
	destinationRepo   repositories.DestinationRepository
	transportRepo     repositories.TransportRepository
	accommodationRepo repositories.AccommodationRepository
	cfg               *config.Config
	log               *zap.Logger
}

func NewTripService(
	tripRepo repositories.TripRepository,
	destinationRepo repositories.DestinationRepository,
	transportRepo repositories.TransportRepository,
	accommodationRepo repositories.AccommodationRepository,
	cfg *config.Config,
	log *zap.Logger,
) TripServiceInterface {
	return &TripService{
		tripRepo:          tripRepo,
		destinationRepo:   destinationRepo,
		transportRepo:     transportRepo,
		accommodationRepo: accommodationRepo,
		cfg:               cfg,
		log:               log.Named("trips"),
	}
}

func (s *TripService) titleOrDefault(title string) string {
	if t := strings.TrimSpace(title); t != "" {
		return t
	}
	return s.cfg.DefaultTripTitle
}

func (s *TripService) CreateTrip(ctx context.Context, ownerID uuid.UUID, req request_models.CreateTripRequest) (*resp.TripDetailResponse, error) {
	if ownerID == uuid.Nil {
		return nil, utils.ErrUnauthorized
	}

	trip := &dbm.Trip{
		OwnerID:       ownerID,
		Title:         s.titleOrDefault(req.Title),
		DepartureCity: s.cfg.HomeCity,
	}
	if err := s.tripRepo.Insert(ctx, trip); err != nil {
		return nil, utils.Storage("insert trip", err)
	}

	s.log.Info("trip created", zap.Stringer("trip_id", trip.ID), zap.Stringer("owner_id", ownerID))
	return s.assemble(ctx, trip)
}

func (s *TripService) UpdateTrip(ctx context.Context, ownerID, tripID uuid.UUID, req request_models.UpdateTripRequest) (*resp.TripDetailResponse, error) {
	trip, err := ownedTrip(ctx, s.tripRepo, ownerID, tripID)
	if err != nil {
		return nil, err
	}
	if req.IsEmpty() {
		return s.assemble(ctx, trip)
	}

	changes := map[string]any{}
	if req.Title != nil {
		changes["title"] = s.titleOrDefault(*req.Title)
	}
	if req.StartDate.Set {
		if req.StartDate.Value == nil || strings.TrimSpace(*req.StartDate.Value) == "" {
			changes["start_date"] = nil
		} else {
			start, err := itinerary.ParseDate(*req.StartDate.Value)
			if err != nil {
				return nil, utils.Validationf("%s", err.Error())
			}
			changes["start_date"] = start
		}
	}
	if req.DepartureCity != nil {
		city := strings.TrimSpace(*req.DepartureCity)
		if city == "" {
			city = s.cfg.HomeCity
		}
		changes["departure_city"] = city
	}
	if req.ReturnCity.Set {
		changes["return_city"] = trimmedOrNil(req.ReturnCity.Value)
	}

	updated, err := s.tripRepo.Update(ctx, trip.ID, changes)
	if err != nil {
		return nil, utils.Storage("update trip", err)
	}
	if updated == nil {
		return nil, utils.NotFoundf("trip %s", tripID)
	}
	return s.assemble(ctx, updated)
}

func (s *TripService) DeleteTrip(ctx context.Context, ownerID, tripID uuid.UUID) error {
	trip, err := ownedTrip(ctx, s.tripRepo, ownerID, tripID)
	if err != nil {
		return err
	}
	if err := s.tripRepo.Delete(ctx, trip.ID); err != nil {
		return utils.Storage("delete trip", err)
	}
	s.log.Info("trip deleted", zap.Stringer("trip_id", trip.ID))
	return nil
}

func (s *TripService) ListTrips(ctx context.Context, ownerID uuid.UUID) ([]resp.TripSummaryResponse, error) {
	if ownerID == uuid.Nil {
		return nil, utils.ErrUnauthorized
	}

	trips, err := s.tripRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, utils.Storage("list trips", err)
	}

	ids := make([]uuid.UUID, 0, len(trips))
	for _, t := range trips {
		ids = append(ids, t.ID)
	}
	stats, err := s.tripRepo.DestinationStats(ctx, ids)
	if err != nil {
		return nil, utils.Storage("trip stats", err)
	}

	out := make([]resp.TripSummaryResponse, 0, len(trips))
	for _, t := range trips {
		st := stats[t.ID]
		out = append(out, resp.TripSummaryResponse{
			ID:               t.ID,
			Title:            t.Title,
			StartDate:        itinerary.FormatOptionalDate(t.StartDate),
			DepartureCity:    t.DepartureCity,
			ReturnCity:       t.ReturnCity,
			DestinationCount: st.DestinationCount,
			TotalDays:        st.TotalDays,
			CreatedAt:        t.CreatedAt,
		})
	}
	return out, nil
}

func (s *TripService) GetTrip(ctx context.Context, ownerID, tripID uuid.UUID) (*resp.TripDetailResponse, error) {
	trip, err := ownedTrip(ctx, s.tripRepo, ownerID, tripID)
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, trip)
}

func (s *TripService) GetSnapshot(ctx context.Context, tripID uuid.UUID) (*resp.TripDetailResponse, error) {
	trip, err := s.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return nil, utils.Storage("find trip", err)
	}
	if trip == nil {
		return nil, utils.NotFoundf("trip %s", tripID)
	}
	return s.assemble(ctx, trip)
}

// assemble builds the read model: destinations in itinerary order with their
// details, the trip legs, and every derived date.
func (s *TripService) assemble(ctx context.Context, trip *dbm.Trip) (*resp.TripDetailResponse, error) {
	destinations, err := s.destinationRepo.ListByTrip(ctx, trip.ID)
	if err != nil {
		return nil, utils.Storage("list destinations", err)
	}
	itinerary.SortByPosition(destinations)

	ids := make([]uuid.UUID, 0, len(destinations))
	durations := make([]int, 0, len(destinations))
	for _, d := range destinations {
		ids = append(ids, d.ID)
		durations = append(durations, d.Duration)
	}

	transports, err := s.transportRepo.ListByDestinations(ctx, ids)
	if err != nil {
		return nil, utils.Storage("list transports", err)
	}
	accommodations, err := s.accommodationRepo.ListByDestinations(ctx, ids)
	if err != nil {
		return nil, utils.Storage("list accommodations", err)
	}
	legs, err := s.transportRepo.ListTripLegs(ctx, trip.ID)
	if err != nil {
		return nil, utils.Storage("list trip transports", err)
	}

	transportBy := make(map[uuid.UUID]*dbm.Transport, len(transports))
	for i := range transports {
		if id := transports[i].DestinationID; id != nil {
			transportBy[*id] = &transports[i]
		}
	}
	accommodationBy := make(map[uuid.UUID]*dbm.Accommodation, len(accommodations))
	for i := range accommodations {
		accommodationBy[accommodations[i].DestinationID] = &accommodations[i]
	}

	ranges := itinerary.DeriveDateRanges(trip.StartDate, durations)
	out := &resp.TripDetailResponse{
		ID:            trip.ID,
		Title:         trip.Title,
		StartDate:     itinerary.FormatOptionalDate(trip.StartDate),
		EndDate:       itinerary.FormatOptionalDate(itinerary.TripEndDate(trip.StartDate, durations)),
		DepartureCity: trip.DepartureCity,
		ReturnCity:    trip.ReturnCity,
		TotalDays:     itinerary.TotalDays(durations),
		CreatedAt:     trip.CreatedAt,
		UpdatedAt:     trip.UpdatedAt,
		Destinations:  make([]resp.DestinationResponse, 0, len(destinations)),
	}

	for i := range destinations {
		d := &destinations[i]
		d.Transport = transportBy[d.ID]
		d.Accommodation = accommodationBy[d.ID]

		dr := toDestinationResponse(d)
		dr.StartDate = itinerary.FormatOptionalDate(ranges[i].Start)
		dr.EndDate = itinerary.FormatOptionalDate(ranges[i].End)
		out.Destinations = append(out.Destinations, dr)
	}

	for i := range legs {
		switch itinerary.TransportRole(legs[i].Role) {
		case itinerary.RoleDeparture:
			out.DepartureTransport = toTransportResponse(&legs[i])
		case itinerary.RoleReturn:
			out.ReturnTransport = toTransportResponse(&legs[i])
		}
	}
	return out, nil
}

// AdjustEndDate validates a proposed trip end and, when it leaves spare days,
// spends them according to the requested policy. An invalid proposal is
// reported in the response, not as an error, so callers can show the
// difference.
func (s *TripService) AdjustEndDate(ctx context.Context, ownerID, tripID uuid.UUID, req request_models.AdjustEndDateRequest) (*resp.EndDateAdjustmentResponse, error) {
	trip, err := ownedTrip(ctx, s.tripRepo, ownerID, tripID)
	if err != nil {
		return nil, err
	}
	if trip.StartDate == nil {
		return nil, utils.Validationf("trip has no start date")
	}

	end, err := itinerary.ParseDate(req.EndDate)
	if err != nil {
		return nil, utils.Validationf("%s", err.Error())
	}
	policy, err := itinerary.ParseEndDatePolicy(req.Policy)
	if err != nil {
		return nil, utils.Validationf("%s", err.Error())
	}

	destinations, err := s.destinationRepo.ListByTrip(ctx, trip.ID)
	if err != nil {
		return nil, utils.Storage("list destinations", err)
	}
	itinerary.SortByPosition(destinations)

	durations := make([]int, 0, len(destinations))
	positions := make([]int, 0, len(destinations))
	for _, d := range destinations {
		durations = append(durations, d.Duration)
		positions = append(positions, d.Position)
	}

	check := itinerary.ValidateEndDate(*trip.StartDate, end, itinerary.TotalDays(durations))
	out := &resp.EndDateAdjustmentResponse{
		Valid:      check.Valid,
		Error:      string(check.Error),
		Difference: check.Difference,
	}
	if !check.Valid {
		return out, nil
	}

	if surplus := *check.Difference; surplus > 0 {
		if policy == itinerary.EndDatePolicyExtend && len(destinations) > 0 {
			last := destinations[len(destinations)-1]
			if _, err := s.destinationRepo.Update(ctx, trip.ID, last.ID, map[string]any{
				"duration": last.Duration + surplus,
			}); err != nil {
				return nil, utils.Storage("extend destination", err)
			}
		} else {
			d := &dbm.Destination{
				TripID:   trip.ID,
				City:     s.surplusCity(trip, req.City),
				Duration: surplus,
				Position: itinerary.NextPosition(positions),
			}
			if err := s.destinationRepo.Insert(ctx, d); err != nil {
				return nil, utils.Storage("insert destination", err)
			}
		}
		s.log.Info("trip end date adjusted",
			zap.Stringer("trip_id", trip.ID),
			zap.String("policy", string(policy)),
			zap.Int("surplus_days", surplus),
			zap.String("end_date", itinerary.FormatDate(end)))
	}

	out.Trip, err = s.assemble(ctx, trip)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *TripService) surplusCity(trip *dbm.Trip, requested string) string {
	if c := strings.TrimSpace(requested); c != "" {
		return c
	}
	if trip.ReturnCity != nil && strings.TrimSpace(*trip.ReturnCity) != "" {
		return *trip.ReturnCity
	}
	return trip.DepartureCity
}
