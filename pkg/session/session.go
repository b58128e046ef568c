package session

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the authorization level of an authenticated principal.
// The role is fixed at session creation and never recomputed from mutable
// account state during verification.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

// Valid reports whether the role is a member of the closed enumeration.
// A role outside the set read back from storage is an integrity error,
// not a silent pass-through.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleClient
}

// Transport identifies the channel a session token travels over. Web
// sessions ride an HTTP-only cookie; mobile sessions ride an Authorization
// bearer header. The two are logically independent session families
// sharing one store and one expiry policy.
type Transport string

const (
	TransportWeb    Transport = "web"
	TransportMobile Transport = "mobile"
)

func (t Transport) Valid() bool {
	return t == TransportWeb || t == TransportMobile
}

// Session identifies an authenticated principal. The token is the primary
// lookup key and maps to exactly one record until deleted.
type Session struct {
	Token     string    `bson:"_id" json:"token"`
	UserID    uuid.UUID `bson:"user_id" json:"user_id"`
	Role      Role      `bson:"role" json:"role"`
	Transport Transport `bson:"transport" json:"transport"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
}

// IsExpiredAt reports whether the session has expired relative to the
// given instant. Expiry is fixed at issuance; verification never extends it.
func (s *Session) IsExpiredAt(now time.Time) bool {
	return s != nil && !now.Before(s.ExpiresAt)
}

// Identity is the outcome of session verification. The zero value means
// unauthenticated.
type Identity struct {
	Authenticated bool      `json:"authenticated"`
	UserID        uuid.UUID `json:"user_id,omitzero"`
	Role          Role      `json:"role,omitempty"`
}
