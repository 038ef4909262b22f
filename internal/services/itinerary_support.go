package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"tripplanner/internal/itinerary"
	dbm "tripplanner/internal/models/db_models"
	resp "tripplanner/internal/models/response_models"
	"tripplanner/internal/repositories"
	"tripplanner/pkg/utils"
)

// ownedTrip loads a trip scoped to its owner. Trips of other accounts are
// reported as not found.
func ownedTrip(ctx context.Context, trips repositories.TripRepository, ownerID, tripID uuid.UUID) (*dbm.Trip, error) {
	if ownerID == uuid.Nil {
		return nil, utils.ErrUnauthorized
	}
	if tripID == uuid.Nil {
		return nil, utils.Validationf("trip id is required")
	}
	trip, err := trips.FindOwned(ctx, tripID, ownerID)
	if err != nil {
		return nil, utils.Storage("find trip", err)
	}
	if trip == nil {
		return nil, utils.NotFoundf("trip %s", tripID)
	}
	return trip, nil
}

func trimmedOrNil(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return nil
	}
	return &s
}

// newDestination applies the create rules: trimmed city, duration floored at
// one day, explicit position clamped at zero or else appended after the
// current maximum.
func newDestination(ctx context.Context, repo repositories.DestinationRepository, tripID uuid.UUID, city string, duration float64, position *float64) (*dbm.Destination, error) {
	normalizedCity, err := itinerary.NormalizeCity(city)
	if err != nil {
		return nil, utils.Validationf("%s", err.Error())
	}

	d := &dbm.Destination{
		TripID:   tripID,
		City:     normalizedCity,
		Duration: itinerary.NormalizeDuration(duration),
	}

	explicit := false
	if position != nil {
		d.Position, explicit = itinerary.NormalizePosition(*position)
	}
	if !explicit {
		highest, err := repo.HighestPositions(ctx, tripID)
		if err != nil {
			return nil, utils.Storage("read destination positions", err)
		}
		d.Position = itinerary.NextPosition(highest)
	}

	if err := repo.Insert(ctx, d); err != nil {
		return nil, utils.Storage("insert destination", err)
	}
	return d, nil
}

// upsertTransport persists the candidate when it has values or a row already
// exists for the parent, and does nothing otherwise. It never deletes.
func upsertTransport(ctx context.Context, repo repositories.TransportRepository, parent itinerary.TransportParent, details itinerary.TransportDetails) (*dbm.Transport, error) {
	if err := details.Validate(); err != nil {
		return nil, utils.Validationf("%s", err.Error())
	}

	existing, err := repo.FindByParent(ctx, parent)
	if err != nil {
		return nil, utils.Storage("find transport", err)
	}

	switch itinerary.DecideUpsert(details.HasValues(), existing != nil) {
	case itinerary.DecisionSkip:
		return nil, nil
	case itinerary.DecisionUpdate:
		changes := details.Changes()
		if len(changes) == 0 {
			return existing, nil
		}
		updated, err := repo.Update(ctx, existing.ID, changes)
		if err != nil {
			return nil, utils.Storage("update transport", err)
		}
		return updated, nil
	}

	row := &dbm.Transport{
		Role:                   string(parent.Role()),
		Type:                   string(itinerary.TransportPlane),
		LeaveAccommodationTime: trimmedOrNil(details.LeaveAccommodationTime),
		Terminal:               trimmedOrNil(details.Terminal),
		Company:                trimmedOrNil(details.Company),
		BookingNumber:          trimmedOrNil(details.BookingNumber),
		BookingCode:            trimmedOrNil(details.BookingCode),
		DepartureTime:          trimmedOrNil(details.DepartureTime),
	}
	if details.Type != nil {
		row.Type = string(*details.Type)
	}
	if id, ok := parent.DestinationID(); ok {
		row.DestinationID = &id
	} else if id, ok := parent.TripID(); ok {
		row.TripID = &id
	}

	if err := repo.Insert(ctx, row); err != nil {
		return nil, utils.Storage("insert transport", err)
	}
	return row, nil
}

func upsertAccommodation(ctx context.Context, repo repositories.AccommodationRepository, destinationID uuid.UUID, details itinerary.AccommodationDetails) (*dbm.Accommodation, error) {
	existing, err := repo.FindByDestination(ctx, destinationID)
	if err != nil {
		return nil, utils.Storage("find accommodation", err)
	}

	switch itinerary.DecideUpsert(details.HasValues(), existing != nil) {
	case itinerary.DecisionSkip:
		return nil, nil
	case itinerary.DecisionUpdate:
		changes := details.Changes()
		if len(changes) == 0 {
			return existing, nil
		}
		updated, err := repo.Update(ctx, existing.ID, changes)
		if err != nil {
			return nil, utils.Storage("update accommodation", err)
		}
		return updated, nil
	}

	row := &dbm.Accommodation{
		DestinationID: destinationID,
		CheckIn:       trimmedOrNil(details.CheckIn),
		CheckOut:      trimmedOrNil(details.CheckOut),
		Name:          trimmedOrNil(details.Name),
		BookingLink:   trimmedOrNil(details.BookingLink),
		BookingCode:   trimmedOrNil(details.BookingCode),
		Address:       trimmedOrNil(details.Address),
	}
	if err := repo.Insert(ctx, row); err != nil {
		return nil, utils.Storage("insert accommodation", err)
	}
	return row, nil
}

func toTransportResponse(t *dbm.Transport) *resp.TransportResponse {
	if t == nil {
		return nil
	}
	return &resp.TransportResponse{
		ID:                     t.ID,
		Role:                   t.Role,
		Type:                   t.Type,
		LeaveAccommodationTime: t.LeaveAccommodationTime,
		Terminal:               t.Terminal,
		Company:                t.Company,
		BookingNumber:          t.BookingNumber,
		BookingCode:            t.BookingCode,
		DepartureTime:          t.DepartureTime,
	}
}

func toAccommodationResponse(a *dbm.Accommodation) *resp.AccommodationResponse {
	if a == nil {
		return nil
	}
	return &resp.AccommodationResponse{
		ID:          a.ID,
		CheckIn:     a.CheckIn,
		CheckOut:    a.CheckOut,
		Name:        a.Name,
		BookingLink: a.BookingLink,
		BookingCode: a.BookingCode,
		Address:     a.Address,
	}
}

func toDestinationResponse(d *dbm.Destination) resp.DestinationResponse {
	return resp.DestinationResponse{
		ID:            d.ID,
		City:          d.City,
		Duration:      d.Duration,
		Position:      d.Position,
		Notes:         d.Notes,
		Budget:        d.Budget,
		Transport:     toTransportResponse(d.Transport),
		Accommodation: toAccommodationResponse(d.Accommodation),
	}
}
