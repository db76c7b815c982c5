package engine

import "errors"

// Domain errors for engine operations.
var (
	// ErrUnknownUpgrade indicates an upgrade identifier outside the fixed set.
	ErrUnknownUpgrade = errors.New("engine: unknown upgrade")

	// ErrInvalidSpec indicates spec constants that cannot form a runnable engine.
	ErrInvalidSpec = errors.New("engine: invalid spec (non-positive dimension or rpm bound)")
)
