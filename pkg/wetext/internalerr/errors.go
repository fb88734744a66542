package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrMalformedGrammar = errors.New("malformed grammar")
	ErrWrongGrammarKind = errors.New("wrong grammar kind")
	ErrSessionClosed    = errors.New("session closed")
	ErrInvalidInput     = errors.New("invalid input")
)
