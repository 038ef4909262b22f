package response_models

import (
	"github.com/google/uuid"
)

// Top-level read model of a trip, shared by the owner view, public shares
// and export.
type TripDetailResponse struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	StartDate     *string   `json:"start_date"` // YYYY-MM-DD
	EndDate       *string   `json:"end_date"`   // derived, start + total days
	DepartureCity string    `json:"departure_city"`
	ReturnCity    *string   `json:"return_city"`
	TotalDays     int       `json:"total_days"`
	CreatedAt     int64     `json:"created_at"`
	UpdatedAt     int64     `json:"updated_at"`

	Destinations       []DestinationResponse `json:"destinations"`
	DepartureTransport *TransportResponse    `json:"departure_transport"`
	ReturnTransport    *TransportResponse    `json:"return_transport"`
}

type DestinationResponse struct {
	ID       uuid.UUID `json:"id"`
	City     string    `json:"city"`
	Duration int       `json:"duration"`
	Position int       `json:"position"`
	Notes    *string   `json:"notes"`
	Budget   *float64  `json:"budget"`

	// Derived, never stored.
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`

	Transport     *TransportResponse     `json:"transport"`
	Accommodation *AccommodationResponse `json:"accommodation"`
}

type TransportResponse struct {
	ID                     uuid.UUID `json:"id"`
	Role                   string    `json:"role"`
	Type                   string    `json:"type"`
	LeaveAccommodationTime *string   `json:"leave_accommodation_time"`
	Terminal               *string   `json:"terminal"`
	Company                *string   `json:"company"`
	BookingNumber          *string   `json:"booking_number"`
	BookingCode            *string   `json:"booking_code"`
	DepartureTime          *string   `json:"departure_time"`
}

type AccommodationResponse struct {
	ID          uuid.UUID `json:"id"`
	CheckIn     *string   `json:"check_in"`
	CheckOut    *string   `json:"check_out"`
	Name        *string   `json:"name"`
	BookingLink *string   `json:"booking_link"`
	BookingCode *string   `json:"booking_code"`
	Address     *string   `json:"address"`
}

type TripSummaryResponse struct {
	ID               uuid.UUID `json:"id"`
	Title            string    `json:"title"`
	StartDate        *string   `json:"start_date"`
	DepartureCity    string    `json:"departure_city"`
	ReturnCity       *string   `json:"return_city"`
	DestinationCount int       `json:"destination_count"`
	TotalDays        int       `json:"total_days"`
	CreatedAt        int64     `json:"created_at"`
}

type TripTransportsResponse struct {
	Departure *TransportResponse `json:"departure"`
	Return    *TransportResponse `json:"return"`
}

type EndDateAdjustmentResponse struct {
	Valid      bool                `json:"valid"`
	Error      string              `json:"error,omitempty"`
	Difference *int                `json:"difference,omitempty"`
	Trip       *TripDetailResponse `json:"trip,omitempty"`
}
