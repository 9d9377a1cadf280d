package services

import (
	"context"

	"github.com/vagamatch/vagamatch/internal/domain/models"
)

// Identity is the authentication collaborator. Implementations resolve the
// session behind the current request and return models.ErrUnauthenticated when
// there is none. Core operations never call this themselves; the transport
// layer resolves the actor once and passes it in explicitly.
type Identity interface {
	CurrentActor(ctx context.Context) (models.Actor, error)
}
