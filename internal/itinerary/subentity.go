package itinerary

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type TransportType string

const (
	TransportPlane TransportType = "plane"
	TransportTrain TransportType = "train"
	TransportBus   TransportType = "bus"
)

func (t TransportType) Valid() bool {
	switch t {
	case TransportPlane, TransportTrain, TransportBus:
		return true
	}
	return false
}

func ParseTransportType(s string) (TransportType, error) {
	t := TransportType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown transport type %q", s)
	}
	return t, nil
}

type TransportRole string

const (
	RoleDestination TransportRole = "destination"
	RoleDeparture   TransportRole = "departure"
	RoleReturn      TransportRole = "return"
)

func (r TransportRole) Valid() bool {
	switch r {
	case RoleDestination, RoleDeparture, RoleReturn:
		return true
	}
	return false
}

var (
	ErrTransportParent      = errors.New("transport must include exactly one parent: destination or trip")
	ErrTransportRole        = errors.New("transport role does not match its parent")
	ErrUnknownTransportRole = errors.New("unknown transport role")
)

// TransportParent says what a transport leg belongs to: the arrival leg of a
// destination, or the departure/return leg of a trip. The zero value is not
// a valid parent; use the constructors.
type TransportParent struct {
	role          TransportRole
	destinationID uuid.UUID
	tripID        uuid.UUID
}

func DestinationParent(destinationID uuid.UUID) TransportParent {
	return TransportParent{role: RoleDestination, destinationID: destinationID}
}

func DepartureParent(tripID uuid.UUID) TransportParent {
	return TransportParent{role: RoleDeparture, tripID: tripID}
}

func ReturnParent(tripID uuid.UUID) TransportParent {
	return TransportParent{role: RoleReturn, tripID: tripID}
}

func (p TransportParent) Role() TransportRole { return p.role }

// DestinationID is set only for RoleDestination.
func (p TransportParent) DestinationID() (uuid.UUID, bool) {
	return p.destinationID, p.role == RoleDestination
}

// TripID is set only for the departure and return roles.
func (p TransportParent) TripID() (uuid.UUID, bool) {
	return p.tripID, p.role == RoleDeparture || p.role == RoleReturn
}

func (p TransportParent) String() string {
	if id, ok := p.DestinationID(); ok {
		return fmt.Sprintf("destination %s", id)
	}
	return fmt.Sprintf("trip %s (%s)", p.tripID, p.role)
}

// ResolveTransportParent turns loosely typed input into a parent. Exactly one
// of destinationID and tripID must be a usable id and the role must agree
// with it.
func ResolveTransportParent(destinationID, tripID *uuid.UUID, role TransportRole) (TransportParent, error) {
	hasDestination := destinationID != nil && *destinationID != uuid.Nil
	hasTrip := tripID != nil && *tripID != uuid.Nil

	if hasDestination == hasTrip {
		return TransportParent{}, ErrTransportParent
	}
	if !role.Valid() {
		return TransportParent{}, fmt.Errorf("%w %q", ErrUnknownTransportRole, role)
	}

	if hasDestination {
		if role != RoleDestination {
			return TransportParent{}, fmt.Errorf("%w: destination transports must use the destination role", ErrTransportRole)
		}
		return DestinationParent(*destinationID), nil
	}

	switch role {
	case RoleDeparture:
		return DepartureParent(*tripID), nil
	case RoleReturn:
		return ReturnParent(*tripID), nil
	default:
		return TransportParent{}, fmt.Errorf("%w: destination role requires a destination", ErrTransportRole)
	}
}

// normalizeOptionalText maps an omitted value to (nil, false), and a supplied
// one to its trimmed form, with empty becoming NULL.
func normalizeOptionalText(v *string) (any, bool) {
	if v == nil {
		return nil, false
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return nil, true
	}
	return s, true
}

func hasText(v *string) bool {
	return v != nil && strings.TrimSpace(*v) != ""
}

// TransportDetails is a candidate transport. A nil field was not supplied.
type TransportDetails struct {
	Type                   *TransportType `json:"type,omitempty"`
	LeaveAccommodationTime *string        `json:"leaveAccommodationTime,omitempty"`
	Terminal               *string        `json:"terminal,omitempty"`
	Company                *string        `json:"company,omitempty"`
	BookingNumber          *string        `json:"bookingNumber,omitempty"`
	BookingCode            *string        `json:"bookingCode,omitempty"`
	DepartureTime          *string        `json:"departureTime,omitempty"`
}

// HasValues reports whether the candidate says anything beyond the default:
// a non-plane type or any non-blank text field.
func (d TransportDetails) HasValues() bool {
	if d.Type != nil && *d.Type != TransportPlane {
		return true
	}
	return hasText(d.LeaveAccommodationTime) ||
		hasText(d.Terminal) ||
		hasText(d.Company) ||
		hasText(d.BookingNumber) ||
		hasText(d.BookingCode) ||
		hasText(d.DepartureTime)
}

// Validate rejects an unknown transport type.
func (d TransportDetails) Validate() error {
	if d.Type != nil && !d.Type.Valid() {
		return fmt.Errorf("unknown transport type %q", *d.Type)
	}
	return nil
}

// Changes returns the column updates for the supplied fields only.
func (d TransportDetails) Changes() map[string]any {
	changes := map[string]any{}
	if d.Type != nil {
		changes["type"] = string(*d.Type)
	}
	text := []struct {
		column string
		value  *string
	}{
		{"leave_accommodation_time", d.LeaveAccommodationTime},
		{"terminal", d.Terminal},
		{"company", d.Company},
		{"booking_number", d.BookingNumber},
		{"booking_code", d.BookingCode},
		{"departure_time", d.DepartureTime},
	}
	for _, f := range text {
		if v, ok := normalizeOptionalText(f.value); ok {
			changes[f.column] = v
		}
	}
	return changes
}

// AccommodationDetails is a candidate accommodation. A nil field was not supplied.
type AccommodationDetails struct {
	CheckIn     *string `json:"checkIn,omitempty"`
	CheckOut    *string `json:"checkOut,omitempty"`
	Name        *string `json:"name,omitempty"`
	BookingLink *string `json:"bookingLink,omitempty"`
	BookingCode *string `json:"bookingCode,omitempty"`
	Address     *string `json:"address,omitempty"`
}

func (d AccommodationDetails) HasValues() bool {
	return hasText(d.CheckIn) ||
		hasText(d.CheckOut) ||
		hasText(d.Name) ||
		hasText(d.BookingLink) ||
		hasText(d.BookingCode) ||
		hasText(d.Address)
}

func (d AccommodationDetails) Changes() map[string]any {
	changes := map[string]any{}
	text := []struct {
		column string
		value  *string
	}{
		{"check_in", d.CheckIn},
		{"check_out", d.CheckOut},
		{"name", d.Name},
		{"booking_link", d.BookingLink},
		{"booking_code", d.BookingCode},
		{"address", d.Address},
	}
	for _, f := range text {
		if v, ok := normalizeOptionalText(f.value); ok {
			changes[f.column] = v
		}
	}
	return changes
}

// UpsertDecision is the persist-or-skip outcome for an optional sub-entity.
type UpsertDecision int

const (
	// DecisionSkip leaves storage untouched: nothing to say and nothing stored.
	DecisionSkip UpsertDecision = iota
	// DecisionInsert creates the record.
	DecisionInsert
	// DecisionUpdate patches the existing record, possibly clearing fields.
	DecisionUpdate
)

// DecideUpsert applies the rule: persist when the candidate has values or a
// record already exists. An existing record is never deleted.
func DecideUpsert(hasValues, exists bool) UpsertDecision {
	switch {
	case exists:
		return DecisionUpdate
	case hasValues:
		return DecisionInsert
	default:
		return DecisionSkip
	}
}
