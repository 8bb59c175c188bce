package app

import (
	"context"

	"github.com/brg8607/lsm-frontend/internal/domain"
)

// SessionStore persists the credential trio across process restarts
// (in-memory, file, Redis, etc). Save overwrites all fields atomically;
// Read returns the current snapshot, with an empty token when logged out.
type SessionStore interface {
	Save(ctx context.Context, session domain.Session) error
	Clear(ctx context.Context) error
	Read(ctx context.Context) (domain.Session, error)
}
