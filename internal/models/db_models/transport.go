package db_models

import (
	"github.com/google/uuid"
)

// Transport is either the arrival leg of a destination (Role "destination",
// DestinationID set) or a departure/return leg of a trip (TripID set).
type Transport struct {
	BaseModel
	DestinationID *uuid.UUID `gorm:"type:uuid;index"`
	TripID        *uuid.UUID `gorm:"type:uuid;index"`
	Role          string     `gorm:"not null"`
	Type          string     `gorm:"not null"`

	LeaveAccommodationTime *string
	Terminal               *string
	Company                *string
	BookingNumber          *string
	BookingCode            *string
	DepartureTime          *string
}
