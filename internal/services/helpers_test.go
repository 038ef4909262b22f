package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tripplanner/internal/config"
	"tripplanner/internal/models/request_models"
)

type fixture struct {
	ctx   context.Context
	store *fakeStore
	cfg   *config.Config
	owner uuid.UUID

	trips        TripServiceInterface
	destinations DestinationServiceInterface
	subentities  SubEntityServiceInterface
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return cfg
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newFakeStore()
	cfg := testConfig()
	trips, destinations, transports, accommodations := store.repos()
	log := zap.NewNop()

	return &fixture{
		ctx:          context.Background(),
		store:        store,
		cfg:          cfg,
		owner:        uuid.New(),
		trips:        NewTripService(trips, destinations, transports, accommodations, cfg, log),
		destinations: NewDestinationService(trips, destinations, transports, accommodations, log),
		subentities:  NewSubEntityService(trips, destinations, transports, accommodations),
	}
}

type stop struct {
	city string
	days float64
}

// newTrip creates a trip owned by fx.owner with the given start date ("" for
// none) and destinations appended in order.
func (fx *fixture) newTrip(t *testing.T, start string, stops ...stop) (uuid.UUID, []uuid.UUID) {
	t.Helper()
	trip, err := fx.trips.CreateTrip(fx.ctx, fx.owner, request_models.CreateTripRequest{Title: "Europa"})
	require.NoError(t, err)

	if start != "" {
		_, err = fx.trips.UpdateTrip(fx.ctx, fx.owner, trip.ID, request_models.UpdateTripRequest{
			StartDate: request_models.Present(start),
		})
		require.NoError(t, err)
	}

	ids := make([]uuid.UUID, 0, len(stops))
	for _, s := range stops {
		d, err := fx.destinations.CreateDestination(fx.ctx, fx.owner, trip.ID, request_models.CreateDestinationRequest{
			City:     s.city,
			Duration: s.days,
		})
		require.NoError(t, err)
		ids = append(ids, d.ID)
	}
	return trip.ID, ids
}

func ptr[T any](v T) *T { return &v }
