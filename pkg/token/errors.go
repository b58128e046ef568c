package token

import "errors"

// ErrGeneration indicates the system randomness source failed.
var ErrGeneration = errors.New("token.generation_failed")
