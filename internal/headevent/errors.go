package headevent

import "errors"

// Domain-specific errors for the headevent package.
var (
	ErrDecodePayload       = errors.New("payload could not be decoded")
	ErrUnsupportedKind     = errors.New("unsupported notification kind")
	ErrUnsupportedSource   = errors.New("unsupported notification source")
	ErrMissingRepository   = errors.New("payload has no repository")
	ErrMalformedRepository = errors.New("repository url does not match the expected pattern")
)
