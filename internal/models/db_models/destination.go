package db_models

import (
	"github.com/google/uuid"
)

type Destination struct {
	BaseModel
	TripID   uuid.UUID `gorm:"type:uuid;index;not null"`
	City     string    `gorm:"not null"`
	Duration int       `gorm:"not null"`
	Position int       `gorm:"not null;index"`
	Notes    *string
	Budget   *float64

	Transport     *Transport     `gorm:"foreignKey:DestinationID"`
	Accommodation *Accommodation `gorm:"foreignKey:DestinationID"`
}

func (d Destination) SortPosition() int    { return d.Position }
func (d Destination) SortCreatedAt() int64 { return d.CreatedAt }
func (d Destination) SortID() uuid.UUID    { return d.ID }
