package db_models

import (
	"time"

	"github.com/google/uuid"
)

type Trip struct {
	BaseModel
	OwnerID       uuid.UUID  `gorm:"type:uuid;index;not null"`
	Title         string     `gorm:"not null"`
	StartDate     *time.Time `gorm:"type:date"`
	DepartureCity string     `gorm:"not null"`
	ReturnCity    *string

	Destinations []Destination `gorm:"foreignKey:TripID"`
}
