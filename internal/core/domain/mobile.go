package domain

import "time"

// Mobile is a catalogue entry. Mobiles are shared by every Client.
type Mobile struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Price       Price     `json:"price"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
