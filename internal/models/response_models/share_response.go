package response_models

import (
	"time"

	"github.com/google/uuid"
)

type ShareLinkResponse struct {
	ShareID    uuid.UUID  `json:"share_id"`
	ShareToken string     `json:"share_token"`
	ShareURL   string     `json:"share_url"`
	Locale     string     `json:"locale"`
	IsActive   bool       `json:"is_active"`
	ExpiresAt  *time.Time `json:"expires_at"`
	CreatedAt  int64      `json:"created_at"`
}

type ExportArchiveResponse struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
