package itinerary

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTransportParent(t *testing.T) {
	dest, trip := uuid.New(), uuid.New()
	nilID := uuid.Nil

	p, err := ResolveTransportParent(&dest, nil, RoleDestination)
	require.NoError(t, err)
	id, ok := p.DestinationID()
	assert.True(t, ok)
	assert.Equal(t, dest, id)
	_, ok = p.TripID()
	assert.False(t, ok)

	p, err = ResolveTransportParent(nil, &trip, RoleReturn)
	require.NoError(t, err)
	assert.Equal(t, RoleReturn, p.Role())
	id, ok = p.TripID()
	assert.True(t, ok)
	assert.Equal(t, trip, id)

	_, err = ResolveTransportParent(&dest, &trip, RoleDestination)
	assert.ErrorIs(t, err, ErrTransportParent)

	_, err = ResolveTransportParent(nil, nil, RoleDeparture)
	assert.ErrorIs(t, err, ErrTransportParent)

	_, err = ResolveTransportParent(&nilID, nil, RoleDestination)
	assert.ErrorIs(t, err, ErrTransportParent)

	_, err = ResolveTransportParent(&dest, nil, RoleDeparture)
	assert.ErrorIs(t, err, ErrTransportRole)

	_, err = ResolveTransportParent(nil, &trip, RoleDestination)
	assert.ErrorIs(t, err, ErrTransportRole)

	_, err = ResolveTransportParent(nil, &trip, TransportRole("layover"))
	assert.ErrorIs(t, err, ErrUnknownTransportRole)
}

func TestTransportDetails_HasValues(t *testing.T) {
	plane, train := TransportPlane, TransportTrain

	assert.False(t, TransportDetails{}.HasValues())
	assert.False(t, TransportDetails{Type: &plane}.HasValues())
	assert.False(t, TransportDetails{Type: &plane, Company: ptr("   ")}.HasValues())
	assert.True(t, TransportDetails{Type: &train}.HasValues())
	assert.True(t, TransportDetails{Type: &plane, Terminal: ptr("T2")}.HasValues())
	assert.True(t, TransportDetails{DepartureTime: ptr("08:15")}.HasValues())
}

func TestTransportDetails_Changes(t *testing.T) {
	bus := TransportBus
	changes := TransportDetails{
		Type:        &bus,
		Company:     ptr("  Flecha Bus "),
		BookingCode: ptr(""),
	}.Changes()

	assert.Equal(t, map[string]any{
		"type":         "bus",
		"company":      "Flecha Bus",
		"booking_code": nil,
	}, changes)
	assert.Empty(t, TransportDetails{}.Changes())
}

func TestTransportDetails_Validate(t *testing.T) {
	boat := TransportType("boat")
	assert.Error(t, TransportDetails{Type: &boat}.Validate())
	assert.NoError(t, TransportDetails{}.Validate())

	_, err := ParseTransportType("Ferry")
	assert.Error(t, err)
	tt, err := ParseTransportType(" Train ")
	require.NoError(t, err)
	assert.Equal(t, TransportTrain, tt)
}

func TestAccommodationDetails(t *testing.T) {
	assert.False(t, AccommodationDetails{Name: ptr(" ")}.HasValues())
	assert.True(t, AccommodationDetails{Address: ptr("Rua Augusta 1")}.HasValues())

	assert.Equal(t, map[string]any{"name": "Hostel", "check_in": nil},
		AccommodationDetails{Name: ptr(" Hostel"), CheckIn: ptr("  ")}.Changes())
}

func TestDecideUpsert(t *testing.T) {
	assert.Equal(t, DecisionSkip, DecideUpsert(false, false))
	assert.Equal(t, DecisionInsert, DecideUpsert(true, false))
	assert.Equal(t, DecisionUpdate, DecideUpsert(false, true))
	assert.Equal(t, DecisionUpdate, DecideUpsert(true, true))
}
