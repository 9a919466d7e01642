package ports

import (
	"context"
	"errors"
)

// ErrNoSession is returned by SessionStore.Load when no record is stored.
var ErrNoSession = errors.New("no persisted session")

// SessionStore holds the single serialized CurrentUser record under a
// well-known key.
type SessionStore interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, record []byte) error
	Clear(ctx context.Context) error
}
