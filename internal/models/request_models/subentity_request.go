package request_models

import (
	"tripplanner/internal/itinerary"
)

// TransportRequest carries the editable transport fields. A nil field is left
// untouched on update.
type TransportRequest struct {
	Type                   *string `json:"type" binding:"omitempty,transporttype"`
	LeaveAccommodationTime *string `json:"leave_accommodation_time" binding:"omitempty,max=64"`
	Terminal               *string `json:"terminal" binding:"omitempty,max=120"`
	Company                *string `json:"company" binding:"omitempty,max=120"`
	BookingNumber          *string `json:"booking_number" binding:"omitempty,max=120"`
	BookingCode            *string `json:"booking_code" binding:"omitempty,max=120"`
	DepartureTime          *string `json:"departure_time" binding:"omitempty,max=64"`
}

func (r TransportRequest) Details() itinerary.TransportDetails {
	d := itinerary.TransportDetails{
		LeaveAccommodationTime: r.LeaveAccommodationTime,
		Terminal:               r.Terminal,
		Company:                r.Company,
		BookingNumber:          r.BookingNumber,
		BookingCode:            r.BookingCode,
		DepartureTime:          r.DepartureTime,
	}
	if r.Type != nil {
		t := itinerary.TransportType(*r.Type)
		d.Type = &t
	}
	return d
}

type AccommodationRequest struct {
	CheckIn     *string `json:"check_in" binding:"omitempty,max=64"`
	CheckOut    *string `json:"check_out" binding:"omitempty,max=64"`
	Name        *string `json:"name" binding:"omitempty,max=200"`
	BookingLink *string `json:"booking_link" binding:"omitempty,max=2048"`
	BookingCode *string `json:"booking_code" binding:"omitempty,max=120"`
	Address     *string `json:"address" binding:"omitempty,max=300"`
}

func (r AccommodationRequest) Details() itinerary.AccommodationDetails {
	return itinerary.AccommodationDetails{
		CheckIn:     r.CheckIn,
		CheckOut:    r.CheckOut,
		Name:        r.Name,
		BookingLink: r.BookingLink,
		BookingCode: r.BookingCode,
		Address:     r.Address,
	}
}

type TripLegURI struct {
	TripID string `uri:"tripId" binding:"required,uuid"`
	Role   string `uri:"role" binding:"required,transportrole"`
}
