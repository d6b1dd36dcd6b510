package models

import (
	"time"
)

// Game represents one catalog entry. Guide holds the HTML body produced
// by the rich-text editor; Cover and Platform may be empty.
type Game struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Genre     string    `json:"genre,omitempty"`
	Platform  string    `json:"platform,omitempty"`
	Cover     string    `json:"cover,omitempty"` // public URL of the cover object
	Guide     string    `json:"guide,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
