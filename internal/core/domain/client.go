package domain

import "time"

// Client is a BileMo customer account. Clients authenticate against the API
// and own the Users they register.
type Client struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (c *Client) Principal() Principal {
	return Principal{ClientID: c.ID, Email: c.Email, Role: c.Role}
}
