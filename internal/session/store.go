// Package session holds the authenticated session for each browser: the
// bearer token for the remote reservation API plus the role it belongs
// to.  Sessions live server-side, keyed by an opaque cookie id; login
// creates one, logout (or an expired token) destroys it.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/restaurant-reservation-web/internal/model"
)

// ErrNoSession is returned by Get when no session exists for the id.
// It is the "absent" sentinel: callers redirect to the login page, they
// never treat it as a fault.
var ErrNoSession = errors.New("session: not found")

// ErrInvalidSession is returned by Create when the session does not
// carry both a token and a role.  The two are set and cleared together.
var ErrInvalidSession = errors.New("session: token and role must be set together")

// Store persists sessions between requests.  Implementations must keep
// Create and Delete atomic per id: a reader observes either the full
// {token, role} pair or nothing.
type Store interface {
	// Create stores the session and returns its opaque id.
	Create(ctx context.Context, sess model.Session) (string, error)
	// Get returns the session for id, or ErrNoSession.
	Get(ctx context.Context, id string) (model.Session, error)
	// Delete removes the session.  Deleting an absent id is not an error.
	Delete(ctx context.Context, id string) error
}

// newID generates an opaque session id.  The id carries no meaning; all
// session state lives in the store.
func newID() string { return uuid.NewString() }

// clock abstracts time for the in-memory store so expiry is testable.
type clock func() time.Time
