package shared

import "github.com/google/uuid"

// Principal identifies the user performing a mutating operation.
// It is supplied explicitly by the transport layer on every call;
// the domain never resolves an ambient security context on its own.
type Principal struct {
	UserID   uuid.UUID
	TenantID uuid.UUID
	Email    string
}

// NewPrincipal creates a principal from its parts
func NewPrincipal(userID, tenantID uuid.UUID, email string) Principal {
	return Principal{
		UserID:   userID,
		TenantID: tenantID,
		Email:    email,
	}
}

// Editor returns the identity recorded on closed record versions.
// The email is preferred because it stays readable in history queries.
func (p Principal) Editor() string {
	if p.Email != "" {
		return p.Email
	}
	return p.UserID.String()
}

// IsZero reports whether the principal carries no identity
func (p Principal) IsZero() bool {
	return p.UserID == uuid.Nil && p.Email == ""
}
