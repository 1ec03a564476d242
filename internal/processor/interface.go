package processor

import (
	"context"

	"github.com/mauv0809/league-hub/internal/identity"
)

// Resolver defines the identity resolution required by the processor.
type Resolver interface {
	Resolve(ctx context.Context, current *identity.Session, email, password string) (*identity.Resolution, error)
}

var _ Resolver = (*identity.Resolver)(nil)
