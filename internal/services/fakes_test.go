package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"tripplanner/internal/itinerary"
	dbm "tripplanner/internal/models/db_models"
	"tripplanner/internal/repositories"
	"tripplanner/pkg/utils"
)

// fakeStore is an in-memory stand-in for the relational store. Every table
// keeps copies so callers cannot alias stored rows.
type fakeStore struct {
	mu  sync.Mutex
	seq int64

	trips          map[uuid.UUID]dbm.Trip
	destinations   map[uuid.UUID]dbm.Destination
	transports     map[uuid.UUID]dbm.Transport
	accommodations map[uuid.UUID]dbm.Accommodation
	shares         map[uuid.UUID]dbm.ShareLink

	writes int

	reorderErr       error
	destinationErrAt int // fail the n-th destination insert (1-based), 0 = never
	destinationAdds  int
	forceShareErr    error
	shareInserts     int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		trips:          map[uuid.UUID]dbm.Trip{},
		destinations:   map[uuid.UUID]dbm.Destination{},
		transports:     map[uuid.UUID]dbm.Transport{},
		accommodations: map[uuid.UUID]dbm.Accommodation{},
		shares:         map[uuid.UUID]dbm.ShareLink{},
	}
}

func (f *fakeStore) stamp(b *dbm.BaseModel) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	f.seq++
	b.CreatedAt = f.seq
	b.UpdatedAt = f.seq
}

func (f *fakeStore) repos() (repositories.TripRepository, repositories.DestinationRepository, repositories.TransportRepository, repositories.AccommodationRepository) {
	return fakeTrips{f}, fakeDestinations{f}, fakeTransports{f}, fakeAccommodations{f}
}

func (f *fakeStore) positions(tripID uuid.UUID) []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []int
	for _, d := range sortedDestinations(f.destinations, tripID) {
		out = append(out, d.Position)
	}
	return out
}

func sortedDestinations(all map[uuid.UUID]dbm.Destination, tripID uuid.UUID) []dbm.Destination {
	var out []dbm.Destination
	for _, d := range all {
		if d.TripID == tripID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt < out[j].CreatedAt
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

func asStringPtr(v any) *string {
	switch x := v.(type) {
	case string:
		return &x
	case *string:
		return x
	default:
		return nil
	}
}

func asFloatPtr(v any) *float64 {
	switch x := v.(type) {
	case float64:
		return &x
	case *float64:
		return x
	default:
		return nil
	}
}

func applyText(changes map[string]any, fields map[string]**string) error {
	for col, v := range changes {
		target, ok := fields[col]
		if !ok {
			return fmt.Errorf("unknown column %q", col)
		}
		*target = asStringPtr(v)
	}
	return nil
}

type fakeTrips struct{ *fakeStore }

func (f fakeTrips) Insert(_ context.Context, trip *dbm.Trip) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stamp(&trip.BaseModel)
	f.writes++
	f.trips[trip.ID] = *trip
	return nil
}

func (f fakeTrips) FindByID(_ context.Context, id uuid.UUID) (*dbm.Trip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.trips[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (f fakeTrips) FindOwned(ctx context.Context, id, ownerID uuid.UUID) (*dbm.Trip, error) {
	t, err := f.FindByID(ctx, id)
	if t == nil || err != nil || t.OwnerID != ownerID {
		return nil, err
	}
	return t, nil
}

func (f fakeTrips) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]dbm.Trip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []dbm.Trip
	for _, t := range f.trips {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

func (f fakeTrips) Update(ctx context.Context, id uuid.UUID, changes map[string]any) (*dbm.Trip, error) {
	f.mu.Lock()
	t, ok := f.trips[id]
	if ok && len(changes) > 0 {
		f.writes++
		for col, v := range changes {
			switch col {
			case "title":
				t.Title = v.(string)
			case "departure_city":
				t.DepartureCity = v.(string)
			case "return_city":
				t.ReturnCity = asStringPtr(v)
			case "start_date":
				if d, isTime := v.(time.Time); isTime {
					t.StartDate = &d
				} else {
					t.StartDate = nil
				}
			default:
				f.mu.Unlock()
				return nil, fmt.Errorf("unknown column %q", col)
			}
		}
		f.trips[id] = t
	}
	f.mu.Unlock()
	return f.FindByID(ctx, id)
}

func (f fakeTrips) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	delete(f.trips, id)
	for did, d := range f.destinations {
		if d.TripID == id {
			delete(f.destinations, did)
		}
	}
	for sid, s := range f.shares {
		if s.TripID == id {
			s.IsActive = false
			f.shares[sid] = s
		}
	}
	return nil
}

func (f fakeTrips) DestinationStats(_ context.Context, tripIDs []uuid.UUID) (map[uuid.UUID]repositories.TripStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[uuid.UUID]repositories.TripStats{}
	for _, id := range tripIDs {
		st := repositories.TripStats{TripID: id}
		for _, d := range f.destinations {
			if d.TripID == id {
				st.DestinationCount++
				st.TotalDays += d.Duration
			}
		}
		out[id] = st
	}
	return out, nil
}

type fakeDestinations struct{ *fakeStore }

func (f fakeDestinations) Insert(_ context.Context, d *dbm.Destination) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destinationAdds++
	if f.destinationErrAt > 0 && f.destinationAdds == f.destinationErrAt {
		return errors.New("connection reset")
	}
	f.stamp(&d.BaseModel)
	f.writes++
	f.destinations[d.ID] = *d
	return nil
}

func (f fakeDestinations) FindByID(_ context.Context, id uuid.UUID) (*dbm.Destination, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.destinations[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (f fakeDestinations) FindInTrip(ctx context.Context, tripID, id uuid.UUID) (*dbm.Destination, error) {
	d, err := f.FindByID(ctx, id)
	if d == nil || err != nil || d.TripID != tripID {
		return nil, err
	}
	return d, nil
}

func (f fakeDestinations) ListByTrip(_ context.Context, tripID uuid.UUID) ([]dbm.Destination, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return sortedDestinations(f.destinations, tripID), nil
}

func (f fakeDestinations) HighestPositions(_ context.Context, tripID uuid.UUID) ([]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []int
	for _, d := range f.destinations {
		if d.TripID == tripID && (len(out) == 0 || d.Position > out[0]) {
			out = []int{d.Position}
		}
	}
	return out, nil
}

func (f fakeDestinations) Update(ctx context.Context, tripID, id uuid.UUID, changes map[string]any) (*dbm.Destination, error) {
	f.mu.Lock()
	d, ok := f.destinations[id]
	if ok && d.TripID == tripID && len(changes) > 0 {
		f.writes++
		for col, v := range changes {
			switch col {
			case "city":
				d.City = v.(string)
			case "duration":
				d.Duration = v.(int)
			case "position":
				d.Position = v.(int)
			case "notes":
				d.Notes = asStringPtr(v)
			case "budget":
				d.Budget = asFloatPtr(v)
			default:
				f.mu.Unlock()
				return nil, fmt.Errorf("unknown column %q", col)
			}
		}
		f.destinations[id] = d
	}
	f.mu.Unlock()
	return f.FindInTrip(ctx, tripID, id)
}

func (f fakeDestinations) Delete(_ context.Context, tripID, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.destinations[id]
	if !ok || d.TripID != tripID {
		return false, nil
	}
	f.writes++
	delete(f.destinations, id)
	for tid, t := range f.transports {
		if t.DestinationID != nil && *t.DestinationID == id {
			delete(f.transports, tid)
		}
	}
	for aid, a := range f.accommodations {
		if a.DestinationID == id {
			delete(f.accommodations, aid)
		}
	}
	return true, nil
}

func (f fakeDestinations) Reorder(_ context.Context, tripID uuid.UUID, orderedIDs []uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.reorderErr != nil {
		return f.reorderErr
	}
	for _, id := range orderedIDs {
		if d, ok := f.destinations[id]; !ok || d.TripID != tripID {
			return fmt.Errorf("%w: %s", repositories.ErrReorderStale, id)
		}
	}
	for position, id := range orderedIDs {
		d := f.destinations[id]
		d.Position = position
		f.destinations[id] = d
		f.writes++
	}
	return nil
}

type fakeTransports struct{ *fakeStore }

func (f fakeTransports) FindByParent(_ context.Context, parent itinerary.TransportParent) (*dbm.Transport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.transports {
		if t.Role != string(parent.Role()) {
			continue
		}
		if id, ok := parent.DestinationID(); ok && t.DestinationID != nil && *t.DestinationID == id {
			return &t, nil
		}
		if id, ok := parent.TripID(); ok && t.TripID != nil && *t.TripID == id {
			return &t, nil
		}
	}
	return nil, nil
}

func (f fakeTransports) ListByDestinations(_ context.Context, destinationIDs []uuid.UUID) ([]dbm.Transport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	want := map[uuid.UUID]bool{}
	for _, id := range destinationIDs {
		want[id] = true
	}
	var out []dbm.Transport
	for _, t := range f.transports {
		if t.DestinationID != nil && want[*t.DestinationID] {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f fakeTransports) ListTripLegs(_ context.Context, tripID uuid.UUID) ([]dbm.Transport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []dbm.Transport
	for _, t := range f.transports {
		if t.TripID != nil && *t.TripID == tripID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f fakeTransports) Insert(_ context.Context, t *dbm.Transport) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stamp(&t.BaseModel)
	f.writes++
	f.transports[t.ID] = *t
	return nil
}

func (f fakeTransports) Update(_ context.Context, id uuid.UUID, changes map[string]any) (*dbm.Transport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.transports[id]
	if !ok {
		return nil, nil
	}
	if kind, has := changes["type"]; has {
		t.Type = kind.(string)
		delete(changes, "type")
	}
	if err := applyText(changes, map[string]**string{
		"leave_accommodation_time": &t.LeaveAccommodationTime,
		"terminal":                 &t.Terminal,
		"company":                  &t.Company,
		"booking_number":           &t.BookingNumber,
		"booking_code":             &t.BookingCode,
		"departure_time":           &t.DepartureTime,
	}); err != nil {
		return nil, err
	}
	f.writes++
	f.transports[id] = t
	return &t, nil
}

type fakeAccommodations struct{ *fakeStore }

func (f fakeAccommodations) FindByDestination(_ context.Context, destinationID uuid.UUID) (*dbm.Accommodation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accommodations {
		if a.DestinationID == destinationID {
			return &a, nil
		}
	}
	return nil, nil
}

func (f fakeAccommodations) ListByDestinations(_ context.Context, destinationIDs []uuid.UUID) ([]dbm.Accommodation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	want := map[uuid.UUID]bool{}
	for _, id := range destinationIDs {
		want[id] = true
	}
	var out []dbm.Accommodation
	for _, a := range f.accommodations {
		if want[a.DestinationID] {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f fakeAccommodations) Insert(_ context.Context, a *dbm.Accommodation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stamp(&a.BaseModel)
	f.writes++
	f.accommodations[a.ID] = *a
	return nil
}

func (f fakeAccommodations) Update(_ context.Context, id uuid.UUID, changes map[string]any) (*dbm.Accommodation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accommodations[id]
	if !ok {
		return nil, nil
	}
	if err := applyText(changes, map[string]**string{
		"check_in":     &a.CheckIn,
		"check_out":    &a.CheckOut,
		"name":         &a.Name,
		"booking_link": &a.BookingLink,
		"booking_code": &a.BookingCode,
		"address":      &a.Address,
	}); err != nil {
		return nil, err
	}
	f.writes++
	f.accommodations[id] = a
	return &a, nil
}

type fakeShares struct{ *fakeStore }

func (f fakeShares) Insert(_ context.Context, link *dbm.ShareLink) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shareInserts++
	if f.forceShareErr != nil {
		return f.forceShareErr
	}
	for _, s := range f.shares {
		if s.Token == link.Token {
			return fmt.Errorf("%w: share_links_token_key", utils.ErrConflict)
		}
	}
	f.stamp(&link.BaseModel)
	f.writes++
	f.shares[link.ID] = *link
	return nil
}

func (f fakeShares) FindByToken(_ context.Context, token string) (*dbm.ShareLink, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.shares {
		if s.Token == token {
			return &s, nil
		}
	}
	return nil, nil
}

func (f fakeShares) FindByID(_ context.Context, id uuid.UUID) (*dbm.ShareLink, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.shares[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (f fakeShares) ListByTrip(_ context.Context, tripID uuid.UUID) ([]dbm.ShareLink, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []dbm.ShareLink
	for _, s := range f.shares {
		if s.TripID == tripID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

func (f fakeShares) Deactivate(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.shares[id]; ok {
		s.IsActive = false
		f.shares[id] = s
		f.writes++
	}
	return nil
}

func (f *fakeStore) writeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes
}
