package domain

import "time"

// AuditEntry records a mutation performed through the API.
type AuditEntry struct {
	ActorID  uint
	Actor    string
	Action   string
	Entity   string
	EntityID uint
	At       time.Time
}

// AccountNotification is sent once when a Client or User account is created.
// Password holds the plaintext credential and is never persisted.
type AccountNotification struct {
	Kind     string
	Name     string
	Email    string
	Password string
}
