package db_models

import (
	"time"

	"github.com/google/uuid"
)

// ShareLink grants read-only access to a trip snapshot. Rows are never
// removed; deactivation flips IsActive.
type ShareLink struct {
	BaseModel
	TripID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Token     string    `gorm:"uniqueIndex;not null"`
	Locale    string    `gorm:"not null"`
	IsActive  bool      `gorm:"not null"`
	ExpiresAt *time.Time
}
