package feed

import "errors"

// sentinel errors, wrapped with context at call sites and matched with
// errors.Is at the loop and HTTP boundaries
var (
	// ErrInvalidDate reports an entry whose start or end does not resolve to
	// a point in time; such an entry never becomes an Item.
	ErrInvalidDate = errors.New("invalid event date")

	// ErrNotFound reports an operation against an identity (or feed name)
	// that is not present.
	ErrNotFound = errors.New("not found")

	// ErrInconsistent reports index corruption: an item reachable from the
	// identity index but missing from its start-time bucket. It is fatal for
	// the cycle and never swallowed.
	ErrInconsistent = errors.New("feed indices inconsistent")

	// ErrNotReady reports a feed that has not been built by a successful
	// poll yet.
	ErrNotReady = errors.New("feed not built yet")
)
