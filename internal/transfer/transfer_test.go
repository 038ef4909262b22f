package transfer

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	resp "tripplanner/internal/models/response_models"
)

func str(s string) *string { return &s }

func sampleTrip() *resp.TripDetailResponse {
	budget := 800.0
	return &resp.TripDetailResponse{
		ID:            uuid.New(),
		Title:         "Test Trip",
		StartDate:     str("2026-02-10"),
		DepartureCity: "Buenos Aires",
		DepartureTransport: &resp.TransportResponse{
			ID:                     uuid.New(),
			Role:                   "departure",
			Type:                   "plane",
			LeaveAccommodationTime: str("08:00"),
			Terminal:               str("A"),
			Company:                str("Aerolineas"),
			BookingNumber:          str("AB123"),
			BookingCode:            str("XYZ"),
			DepartureTime:          str("10:00"),
		},
		Destinations: []resp.DestinationResponse{
			{ID: uuid.New(), City: "Madrid", Duration: 5, Position: 0, Notes: str("Museum day"), Budget: &budget},
			{
				ID: uuid.New(), City: "Lisboa", Duration: 2, Position: 1,
				Transport:     &resp.TransportResponse{ID: uuid.New(), Role: "destination", Type: "train", Company: str("CP")},
				Accommodation: &resp.AccommodationResponse{ID: uuid.New(), Name: str("Casa")},
			},
		},
	}
}

func TestExport_Shape(t *testing.T) {
	trip := sampleTrip()
	doc := Export(trip)

	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	out := gjson.ParseBytes(raw)

	assert.Equal(t, "Test Trip", out.Get("title").Str)
	assert.Equal(t, "2026-02-10", out.Get("startDate").Str)
	assert.Equal(t, "departure", out.Get("departure.type").Str)
	assert.Equal(t, "Buenos Aires", out.Get("departure.city").Str)
	assert.Equal(t, "2026-02-10", out.Get("departure.date").Str)
	assert.Equal(t, "AB123", out.Get("departure.transport.bookingNumber").Str)
	assert.Equal(t, gjson.Null, out.Get("return").Type)

	first := out.Get("destinations.0")
	assert.Equal(t, trip.Destinations[0].ID.String(), first.Get("id").Str)
	assert.Equal(t, "Museum day", first.Get("notes").Str)
	assert.Equal(t, 800.0, first.Get("budget").Num)
	assert.JSONEq(t, `{}`, first.Get("transport").Raw)
	assert.JSONEq(t, `{}`, first.Get("accommodation").Raw)

	second := out.Get("destinations.1")
	assert.Equal(t, "", second.Get("notes").Str)
	assert.True(t, second.Get("notes").Exists())
	assert.Equal(t, gjson.Null, second.Get("budget").Type)
	assert.Equal(t, "train", second.Get("transport.type").Str)
	assert.Equal(t, gjson.Null, second.Get("transport.terminal").Type)
	assert.Equal(t, "Casa", second.Get("accommodation.name").Str)
	assert.True(t, second.Get("accommodation.address").Exists())
}

func TestExport_ReturnCityFallsBackToDeparture(t *testing.T) {
	trip := sampleTrip()
	trip.ReturnTransport = &resp.TransportResponse{ID: uuid.New(), Role: "return", Type: "bus"}

	doc := Export(trip)
	require.NotNil(t, doc.Return)
	assert.Equal(t, "Buenos Aires", doc.Return.City)

	trip.ReturnCity = str("Rosario")
	assert.Equal(t, "Rosario", Export(trip).Return.City)
}

func TestRoundTrip(t *testing.T) {
	trip := sampleTrip()
	raw, err := json.Marshal(Export(trip))
	require.NoError(t, err)

	require.True(t, ValidateImportData(raw))

	doc, err := Decode(raw)
	require.NoError(t, err)
	require.Len(t, doc.Destinations, len(trip.Destinations))
	for i, d := range trip.Destinations {
		assert.Equal(t, d.City, doc.Destinations[i].City)
		assert.Equal(t, float64(d.Duration), doc.Destinations[i].Duration)
	}

	assert.False(t, doc.Destinations[0].Transport.Present)
	assert.True(t, doc.Destinations[1].Transport.Present)
	assert.True(t, doc.Destinations[1].Transport.Details().HasValues())
	require.NotNil(t, doc.Departure)
	assert.Equal(t, "2026-02-10", *doc.Departure.Date)
	assert.Nil(t, doc.Return)
}

func TestDecode_EmptyObjectIsAbsent(t *testing.T) {
	raw := []byte(`{"title":"t","destinations":[
		{"id":"a","city":"Lima","duration":2,"transport":{},"accommodation":{}},
		{"id":"b","city":"Cusco","duration":1,"transport":{"terminal":null},"accommodation":{"name":"Casa"}}]}`)

	doc, err := Decode(raw)
	require.NoError(t, err)
	require.Len(t, doc.Destinations, 2)

	first := doc.Destinations[0]
	assert.False(t, first.Transport.Present)
	assert.False(t, first.Accommodation.Present)
	out, err := json.Marshal(first.Transport)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(out))

	second := doc.Destinations[1]
	assert.True(t, second.Transport.Present)
	assert.False(t, second.Transport.Details().HasValues())
	assert.True(t, second.Accommodation.Present)
	assert.Equal(t, "Casa", *second.Accommodation.Name)
}

func TestValidateImportData_AcceptsMinimalDocuments(t *testing.T) {
	accepted := []string{
		`{"title":"Mi Viaje","destinations":[]}`,
		`{"title":"","startDate":null,"departure":null,"return":null,"destinations":[]}`,
		`{"title":"Mi Viaje","startDate":"2026-03-01",
		  "departure":{"type":"departure","city":"Buenos Aires","date":"2026-03-01","transport":{}},
		  "destinations":[{"id":"dest-1","city":"Lima","duration":3,"transport":{},"accommodation":{},"notes":"","budget":null}],
		  "return":{"type":"return","city":"Buenos Aires","transport":{}}}`,
		`{"title":"t","destinations":[{"id":7,"city":"Lima","duration":2.5,"transport":null}]}`,
	}
	for _, doc := range accepted {
		assert.True(t, ValidateImportData([]byte(doc)), doc)
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{"title":`},
		{"null root", `null`},
		{"array root", `[]`},
		{"numeric title", `{"title":123,"destinations":[]}`},
		{"missing destinations", `{"title":"t"}`},
		{"numeric start date", `{"title":"t","startDate":20260301,"destinations":[]}`},
		{"blank city", `{"title":"t","destinations":[{"id":"a","city":"  ","duration":2}]}`},
		{"missing id", `{"title":"t","destinations":[{"city":"Lima","duration":2}]}`},
		{"string duration", `{"title":"t","destinations":[{"id":"a","city":"Lima","duration":"2"}]}`},
		{"null notes", `{"title":"t","destinations":[{"id":"a","city":"Lima","duration":2,"notes":null}]}`},
		{"string budget", `{"title":"t","destinations":[{"id":"a","city":"Lima","duration":2,"budget":"10"}]}`},
		{"unknown transport type", `{"title":"t","destinations":[{"id":"a","city":"Lima","duration":2,"transport":{"type":"boat"}}]}`},
		{"null transport type", `{"title":"t","destinations":[{"id":"a","city":"Lima","duration":2,"transport":{"type":null}}]}`},
		{"numeric terminal", `{"title":"t","destinations":[{"id":"a","city":"Lima","duration":2,"transport":{"terminal":4}}]}`},
		{"array accommodation", `{"title":"t","destinations":[{"id":"a","city":"Lima","duration":2,"accommodation":[]}]}`},
		{"wrong departure tag", `{"title":"t","destinations":[],"departure":{"type":"return","city":"BA"}}`},
		{"departure without city", `{"title":"t","destinations":[],"departure":{"type":"departure"}}`},
		{"numeric departure date", `{"title":"t","destinations":[],"departure":{"type":"departure","city":"BA","date":1}}`},
		{"bad return transport", `{"title":"t","destinations":[],"return":{"type":"return","city":"BA","transport":"plane"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate([]byte(tt.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidDocument)

			_, err = Decode([]byte(tt.doc))
			assert.ErrorIs(t, err, ErrInvalidDocument)
		})
	}
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "viaje-a-espana.json", Filename("  Viaje a España "))
	assert.Equal(t, "trip.json", Filename("   "))
}
