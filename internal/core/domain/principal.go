package domain

const (
	RoleAdmin  = "admin"
	RoleClient = "client"
	RoleUser   = "user"
)

// Principal is the authenticated Client a request acts on behalf of.
type Principal struct {
	ClientID uint
	Email    string
	Role     string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanAccess reports whether the principal may read or mutate a resource owned by ownerID.
func (p Principal) CanAccess(ownerID uint) bool {
	return p.IsAdmin() || (p.ClientID != 0 && p.ClientID == ownerID)
}
