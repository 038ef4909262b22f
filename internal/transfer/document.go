// Package transfer converts trips to and from the portable JSON document
// users download and import. Field names are part of the file format.
package transfer

import (
	"encoding/json"
	"strings"

	"github.com/gosimple/slug"

	"tripplanner/internal/itinerary"
)

const (
	kindDeparture = "departure"
	kindReturn    = "return"
)

type Document struct {
	Title        string        `json:"title"`
	StartDate    *string       `json:"startDate"`
	Departure    *Departure    `json:"departure"`
	Destinations []Destination `json:"destinations"`
	Return       *Return       `json:"return"`
}

type Departure struct {
	Type      string    `json:"type"`
	City      string    `json:"city"`
	Date      *string   `json:"date"`
	Transport Transport `json:"transport"`
}

type Return struct {
	Type      string    `json:"type"`
	City      string    `json:"city"`
	Transport Transport `json:"transport"`
}

type Destination struct {
	ID            string        `json:"id"`
	City          string        `json:"city"`
	Duration      float64       `json:"duration"`
	Transport     Transport     `json:"transport"`
	Accommodation Accommodation `json:"accommodation"`
	Notes         *string       `json:"notes"`
	Budget        *float64      `json:"budget"`
}

// Transport encodes as {} when Present is false, otherwise with every key
// spelled out and nulls kept.
type Transport struct {
	Present bool `json:"-"`

	Type                   *itinerary.TransportType `json:"type"`
	LeaveAccommodationTime *string                  `json:"leaveAccommodationTime"`
	Terminal               *string                  `json:"terminal"`
	Company                *string                  `json:"company"`
	BookingNumber          *string                  `json:"bookingNumber"`
	BookingCode            *string                  `json:"bookingCode"`
	DepartureTime          *string                  `json:"departureTime"`
}

func (t Transport) MarshalJSON() ([]byte, error) {
	if !t.Present {
		return []byte("{}"), nil
	}
	type plain Transport
	return json.Marshal(plain(t))
}

// Details converts the document form into an upsert candidate.
func (t Transport) Details() itinerary.TransportDetails {
	return itinerary.TransportDetails{
		Type:                   t.Type,
		LeaveAccommodationTime: t.LeaveAccommodationTime,
		Terminal:               t.Terminal,
		Company:                t.Company,
		BookingNumber:          t.BookingNumber,
		BookingCode:            t.BookingCode,
		DepartureTime:          t.DepartureTime,
	}
}

type Accommodation struct {
	Present bool `json:"-"`

	CheckIn     *string `json:"checkIn"`
	CheckOut    *string `json:"checkOut"`
	Name        *string `json:"name"`
	BookingLink *string `json:"bookingLink"`
	BookingCode *string `json:"bookingCode"`
	Address     *string `json:"address"`
}

func (a Accommodation) MarshalJSON() ([]byte, error) {
	if !a.Present {
		return []byte("{}"), nil
	}
	type plain Accommodation
	return json.Marshal(plain(a))
}

func (a Accommodation) Details() itinerary.AccommodationDetails {
	return itinerary.AccommodationDetails{
		CheckIn:     a.CheckIn,
		CheckOut:    a.CheckOut,
		Name:        a.Name,
		BookingLink: a.BookingLink,
		BookingCode: a.BookingCode,
		Address:     a.Address,
	}
}

// Filename derives a download name from the trip title.
func Filename(title string) string {
	name := slug.Make(strings.TrimSpace(title))
	if name == "" {
		name = "trip"
	}
	return name + ".json"
}
