package push

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/studiohq/portal/pkg/session"
)

// ErrNotConfigured indicates no registry backend is wired; callers map it
// to a service-unavailable response rather than dropping registrations
// silently.
var ErrNotConfigured = errors.New("push.not_configured")

// Registration is a device token handed in by a client for notification
// delivery. Delivery itself happens elsewhere; this layer only records who
// owns which token.
type Registration struct {
	UserID   uuid.UUID    `bson:"user_id" json:"user_id"`
	Role     session.Role `bson:"role" json:"role"`
	Token    string       `bson:"token" json:"token"`
	Platform string       `bson:"platform" json:"platform"`
}

// Registry is the write-only contract for push token registration.
type Registry interface {
	Register(ctx context.Context, reg Registration) error
}

// Disabled is the stub wired when no push backend is configured.
type Disabled struct{}

func (Disabled) Register(ctx context.Context, reg Registration) error {
	return ErrNotConfigured
}

var _ Registry = Disabled{}
