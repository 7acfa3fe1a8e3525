package source

import "errors"

var (
	ErrMissingID      = errors.New("source id is required")
	ErrMissingOwner   = errors.New("owner is required")
	ErrMissingRepo    = errors.New("repository is required")
	ErrInvalidFilter  = errors.New("invalid filter")
	ErrSourceNotFound = errors.New("source not found")
)
