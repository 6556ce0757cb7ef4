package collage

import "errors"

// ErrInvalidArgument is returned for malformed grid or style parameters.
// Compose never returns a canvas together with it.
var ErrInvalidArgument = errors.New("collage: invalid argument")
