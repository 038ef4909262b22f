package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tripplanner/internal/infra"
	"tripplanner/internal/itinerary"
	"tripplanner/pkg/utils"
)

type fakeObjectStore struct {
	puts map[string][]byte
	err  error
}

func (s *fakeObjectStore) Put(_ context.Context, key string, body []byte, contentType string) error {
	if s.err != nil {
		return s.err
	}
	if s.puts == nil {
		s.puts = map[string][]byte{}
	}
	s.puts[key] = body
	return nil
}

func (s *fakeObjectStore) PresignGet(_ context.Context, key string, ttl time.Duration) (string, error) {
	return fmt.Sprintf("https://bucket.example.com/%s?ttl=%d", key, int(ttl.Seconds())), nil
}

func newTransferService(fx *fixture, store infra.ObjectStore) TransferServiceInterface {
	trips, destinations, transports, accommodations := fx.store.repos()
	return NewTransferService(fx.trips, trips, destinations, transports, accommodations, store, fx.cfg, zap.NewNop())
}

func TestExportImport_RoundTrip(t *testing.T) {
	fx := newFixture(t)
	svc := newTransferService(fx, nil)
	tripID, ids := fx.newTrip(t, "2024-07-01", stop{"Roma", 3}, stop{"Firenze", 2}, stop{"Milano", 1})

	_, err := fx.subentities.UpsertTransport(fx.ctx, fx.owner, TransportUpsert{
		TripID: &tripID,
		Role:   itinerary.RoleDeparture,
		Details: itinerary.TransportDetails{
			Type:    ptr(itinerary.TransportTrain),
			Company: ptr("Trenitalia"),
		},
	})
	require.NoError(t, err)
	_, err = fx.subentities.UpsertTransport(fx.ctx, fx.owner, TransportUpsert{
		DestinationID: &ids[1],
		Role:          itinerary.RoleDestination,
		Details:       itinerary.TransportDetails{Type: ptr(itinerary.TransportBus), Terminal: ptr("Tiburtina")},
	})
	require.NoError(t, err)
	_, err = fx.subentities.UpsertAccommodation(fx.ctx, fx.owner, ids[0], itinerary.AccommodationDetails{Name: ptr("Hotel Artemide")})
	require.NoError(t, err)
	_, err = fx.destinations.ReorderDestinations(fx.ctx, fx.owner, tripID, []uuid.UUID{ids[2], ids[0], ids[1]})
	require.NoError(t, err)

	doc, filename, err := svc.ExportTrip(fx.ctx, fx.owner, tripID)
	require.NoError(t, err)
	assert.Equal(t, "europa.json", filename)

	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	importedID, err := svc.ApplyImport(fx.ctx, fx.owner, raw)
	require.NoError(t, err)
	assert.NotEqual(t, tripID, importedID)

	original, err := fx.trips.GetTrip(fx.ctx, fx.owner, tripID)
	require.NoError(t, err)
	imported, err := fx.trips.GetTrip(fx.ctx, fx.owner, importedID)
	require.NoError(t, err)

	assert.Equal(t, original.Title, imported.Title)
	assert.Equal(t, original.StartDate, imported.StartDate)
	assert.Equal(t, original.EndDate, imported.EndDate)
	assert.Equal(t, original.DepartureCity, imported.DepartureCity)
	require.Len(t, imported.Destinations, 3)
	for i, d := range imported.Destinations {
		assert.Equal(t, original.Destinations[i].City, d.City)
		assert.Equal(t, original.Destinations[i].Duration, d.Duration)
		assert.Equal(t, i, d.Position)
	}

	require.NotNil(t, imported.DepartureTransport)
	assert.Equal(t, "train", imported.DepartureTransport.Type)
	assert.Equal(t, "Trenitalia", *imported.DepartureTransport.Company)

	firenze := imported.Destinations[2]
	require.NotNil(t, firenze.Transport)
	assert.Equal(t, "bus", firenze.Transport.Type)
	assert.Equal(t, "Tiburtina", *firenze.Transport.Terminal)

	roma := imported.Destinations[1]
	require.NotNil(t, roma.Accommodation)
	assert.Equal(t, "Hotel Artemide", *roma.Accommodation.Name)
	assert.Nil(t, imported.Destinations[0].Transport)
	assert.Nil(t, imported.Destinations[0].Accommodation)
}

func destinationsJSON(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf(`{"id":%d,"city":"City %d","duration":1}`, i, i)
	}
	return strings.Join(parts, ",")
}

func TestApplyImport_TooManyDestinations(t *testing.T) {
	fx := newFixture(t)
	svc := newTransferService(fx, nil)

	raw := []byte(`{"title":"Grand tour","destinations":[` + destinationsJSON(201) + `]}`)
	_, err := svc.ApplyImport(fx.ctx, fx.owner, raw)
	assert.ErrorIs(t, err, utils.ErrValidation)
	assert.Zero(t, fx.store.writeCount())

	trips, err := fx.trips.ListTrips(fx.ctx, fx.owner)
	require.NoError(t, err)
	assert.Empty(t, trips)

	raw = []byte(`{"title":"Grand tour","destinations":[` + destinationsJSON(200) + `]}`)
	id, err := svc.ApplyImport(fx.ctx, fx.owner, raw)
	require.NoError(t, err)
	trip, err := fx.trips.GetTrip(fx.ctx, fx.owner, id)
	require.NoError(t, err)
	assert.Len(t, trip.Destinations, 200)
	assert.Equal(t, 200, trip.TotalDays)
}

func TestApplyImport_InvalidDocumentWritesNothing(t *testing.T) {
	fx := newFixture(t)
	svc := newTransferService(fx, nil)

	docs := []string{
		`not json`,
		`{"title":"Roma","destinations":[{"city":"Roma","duration":2}]}`,
		`{"title":"Roma","destinations":[{"id":"a","city":"Roma","duration":2},{"id":"b","city":"","duration":1}]}`,
		`{"title":"Roma","destinations":[],"departure":{"type":"return","city":"Rosario"}}`,
	}
	for _, doc := range docs {
		_, err := svc.ApplyImport(fx.ctx, fx.owner, []byte(doc))
		assert.ErrorIs(t, err, utils.ErrValidation, doc)
	}
	assert.Zero(t, fx.store.writeCount())
}

func TestApplyImport_Defaults(t *testing.T) {
	fx := newFixture(t)
	svc := newTransferService(fx, nil)

	t.Run("start date and city from departure", func(t *testing.T) {
		raw := []byte(`{
			"title": "  Norte  ",
			"startDate": null,
			"departure": {"type": "departure", "city": "Rosario", "date": "2024-05-01", "transport": {}},
			"destinations": [{"id": "x", "city": " Salta ", "duration": 2.7, "notes": "Empanadas", "budget": 120.5}],
			"return": {"type": "return", "city": "Córdoba", "transport": null}
		}`)
		id, err := svc.ApplyImport(fx.ctx, fx.owner, raw)
		require.NoError(t, err)

		trip, err := fx.trips.GetTrip(fx.ctx, fx.owner, id)
		require.NoError(t, err)
		assert.Equal(t, "Norte", trip.Title)
		assert.Equal(t, "2024-05-01", *trip.StartDate)
		assert.Equal(t, "2024-05-03", *trip.EndDate)
		assert.Equal(t, "Rosario", trip.DepartureCity)
		assert.Equal(t, "Córdoba", *trip.ReturnCity)
		assert.Nil(t, trip.DepartureTransport)
		assert.Nil(t, trip.ReturnTransport)

		require.Len(t, trip.Destinations, 1)
		d := trip.Destinations[0]
		assert.Equal(t, "Salta", d.City)
		assert.Equal(t, 2, d.Duration)
		assert.Equal(t, "Empanadas", *d.Notes)
		assert.Equal(t, 120.5, *d.Budget)
	})

	t.Run("bare document", func(t *testing.T) {
		id, err := svc.ApplyImport(fx.ctx, fx.owner, []byte(`{"title":"","destinations":[]}`))
		require.NoError(t, err)

		trip, err := fx.trips.GetTrip(fx.ctx, fx.owner, id)
		require.NoError(t, err)
		assert.Equal(t, "Mi Viaje", trip.Title)
		assert.Equal(t, "Buenos Aires", trip.DepartureCity)
		assert.Nil(t, trip.StartDate)
		assert.Nil(t, trip.EndDate)
		assert.Nil(t, trip.ReturnCity)
		assert.Empty(t, trip.Destinations)
	})

	t.Run("blank start date falls back to departure", func(t *testing.T) {
		raw := []byte(`{"title":"x","startDate":"  ",
			"departure":{"type":"departure","city":"Rosario","date":"2024-05-01","transport":{}},
			"destinations":[]}`)
		id, err := svc.ApplyImport(fx.ctx, fx.owner, raw)
		require.NoError(t, err)

		trip, err := fx.trips.GetTrip(fx.ctx, fx.owner, id)
		require.NoError(t, err)
		require.NotNil(t, trip.StartDate)
		assert.Equal(t, "2024-05-01", *trip.StartDate)
	})

	t.Run("unparsable start date becomes null", func(t *testing.T) {
		id, err := svc.ApplyImport(fx.ctx, fx.owner, []byte(`{"title":"x","startDate":"soon","destinations":[]}`))
		require.NoError(t, err)
		trip, err := fx.trips.GetTrip(fx.ctx, fx.owner, id)
		require.NoError(t, err)
		assert.Nil(t, trip.StartDate)
	})
}

func TestApplyImport_SkipsEmptyDetails(t *testing.T) {
	fx := newFixture(t)
	svc := newTransferService(fx, nil)

	raw := []byte(`{"title":"Sur","destinations":[
		{"id":1,"city":"Bariloche","duration":3,"transport":{"type":"plane","company":"  "},"accommodation":{"name":""}},
		{"id":2,"city":"El Bolsón","duration":1,"transport":{"type":"bus"},"accommodation":null}
	]}`)
	id, err := svc.ApplyImport(fx.ctx, fx.owner, raw)
	require.NoError(t, err)

	trip, err := fx.trips.GetTrip(fx.ctx, fx.owner, id)
	require.NoError(t, err)
	require.Len(t, trip.Destinations, 2)
	assert.Nil(t, trip.Destinations[0].Transport)
	assert.Nil(t, trip.Destinations[0].Accommodation)
	require.NotNil(t, trip.Destinations[1].Transport)
	assert.Equal(t, "bus", trip.Destinations[1].Transport.Type)
	assert.Nil(t, trip.Destinations[1].Accommodation)

	assert.Len(t, fx.store.transports, 1)
	assert.Empty(t, fx.store.accommodations)
}

func TestArchiveExport(t *testing.T) {
	t.Run("disabled without a store", func(t *testing.T) {
		fx := newFixture(t)
		tripID, _ := fx.newTrip(t, "")
		_, err := newTransferService(fx, nil).ArchiveExport(fx.ctx, fx.owner, tripID)
		assert.ErrorIs(t, err, utils.ErrFeatureDisabled)
	})

	t.Run("uploads and presigns", func(t *testing.T) {
		fx := newFixture(t)
		store := &fakeObjectStore{}
		svc := newTransferService(fx, store).(*TransferService)
		svc.now = func() time.Time { return time.Unix(1717243200, 0).UTC() }
		tripID, _ := fx.newTrip(t, "2024-07-01", stop{"Roma", 2})

		out, err := svc.ArchiveExport(fx.ctx, fx.owner, tripID)
		require.NoError(t, err)

		wantKey := fmt.Sprintf("exports/%s/%s/1717243200-europa.json", fx.owner, tripID)
		assert.Equal(t, wantKey, out.Key)
		assert.Equal(t, "https://bucket.example.com/"+wantKey+"?ttl=900", out.URL)
		assert.Equal(t, time.Unix(1717243200, 0).UTC().Add(15*time.Minute), out.ExpiresAt)

		body, ok := store.puts[wantKey]
		require.True(t, ok)
		_, err = svc.ApplyImport(fx.ctx, fx.owner, body)
		assert.NoError(t, err)
	})

	t.Run("upload failure", func(t *testing.T) {
		fx := newFixture(t)
		tripID, _ := fx.newTrip(t, "")
		_, err := newTransferService(fx, &fakeObjectStore{err: assert.AnError}).ArchiveExport(fx.ctx, fx.owner, tripID)
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("foreign trip", func(t *testing.T) {
		fx := newFixture(t)
		store := &fakeObjectStore{}
		tripID, _ := fx.newTrip(t, "")
		_, err := newTransferService(fx, store).ArchiveExport(fx.ctx, uuid.New(), tripID)
		assert.ErrorIs(t, err, utils.ErrNotFound)
		assert.Empty(t, store.puts)
	})
}
