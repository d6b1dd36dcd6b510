package models

import (
	"time"
)

// Suggestion is a visitor-submitted game request. Write-only from the
// client side; only admins ever read these back.
type Suggestion struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Platform  string    `json:"platform,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
