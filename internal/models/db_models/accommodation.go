package db_models

import (
	"github.com/google/uuid"
)

type Accommodation struct {
	BaseModel
	DestinationID uuid.UUID `gorm:"type:uuid;not null"`

	CheckIn     *string
	CheckOut    *string
	Name        *string
	BookingLink *string
	BookingCode *string
	Address     *string
}
