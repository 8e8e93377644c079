package userctx

import (
	"context"
	"errors"
)

// ErrStorage marks a storage backend failure. Save failures always wrap it;
// Load failures wrap it only for transport errors, since a missing or corrupt
// document degrades to Default() instead.
var ErrStorage = errors.New("context storage failure")

// Store persists one UserContext document per user identity. The userID is an
// opaque key supplied by the caller; the store does no identity validation.
//
// Load returns (Default(), nil) when no document exists or the stored bytes do
// not parse. When the backend itself is unreachable it still returns Default()
// so callers can proceed, alongside an ErrStorage-wrapped error for logging.
// Save replaces the whole document; there are no partial updates.
type Store interface {
	Load(ctx context.Context, userID string) (UserContext, error)
	Save(ctx context.Context, userID string, uc UserContext) error
}
