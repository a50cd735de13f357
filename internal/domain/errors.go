package domain

import "errors"

// ErrInvalidArgument is wrapped by every input validation failure
// raised by the rate converter and the projection engine
var ErrInvalidArgument = errors.New("invalid argument")

// ErrNotFound is returned when a projection run is not in the session history
var ErrNotFound = errors.New("not found")
