package transfer

import (
	"tripplanner/internal/itinerary"
	resp "tripplanner/internal/models/response_models"
)

// Export maps a trip read model to the portable document. The departure and
// return blocks appear only when the matching transport exists.
func Export(trip *resp.TripDetailResponse) Document {
	doc := Document{
		Title:        trip.Title,
		StartDate:    trip.StartDate,
		Destinations: make([]Destination, 0, len(trip.Destinations)),
	}

	if trip.DepartureTransport != nil {
		doc.Departure = &Departure{
			Type:      kindDeparture,
			City:      trip.DepartureCity,
			Date:      trip.StartDate,
			Transport: exportTransport(trip.DepartureTransport),
		}
	}

	for _, d := range trip.Destinations {
		notes := ""
		if d.Notes != nil {
			notes = *d.Notes
		}
		doc.Destinations = append(doc.Destinations, Destination{
			ID:            d.ID.String(),
			City:          d.City,
			Duration:      float64(d.Duration),
			Transport:     exportTransport(d.Transport),
			Accommodation: exportAccommodation(d.Accommodation),
			Notes:         &notes,
			Budget:        d.Budget,
		})
	}

	if trip.ReturnTransport != nil {
		city := trip.DepartureCity
		if trip.ReturnCity != nil {
			city = *trip.ReturnCity
		}
		doc.Return = &Return{
			Type:      kindReturn,
			City:      city,
			Transport: exportTransport(trip.ReturnTransport),
		}
	}

	return doc
}

func exportTransport(t *resp.TransportResponse) Transport {
	if t == nil {
		return Transport{}
	}
	kind := itinerary.TransportType(t.Type)
	return Transport{
		Present:                true,
		Type:                   &kind,
		LeaveAccommodationTime: t.LeaveAccommodationTime,
		Terminal:               t.Terminal,
		Company:                t.Company,
		BookingNumber:          t.BookingNumber,
		BookingCode:            t.BookingCode,
		DepartureTime:          t.DepartureTime,
	}
}

func exportAccommodation(a *resp.AccommodationResponse) Accommodation {
	if a == nil {
		return Accommodation{}
	}
	return Accommodation{
		Present:     true,
		CheckIn:     a.CheckIn,
		CheckOut:    a.CheckOut,
		Name:        a.Name,
		BookingLink: a.BookingLink,
		BookingCode: a.BookingCode,
		Address:     a.Address,
	}
}
