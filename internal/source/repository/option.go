package repository

import "time"

// Options are shared by every Store implementation.
type Options struct {
	// Now feeds time based prefilters. Nil means time.Now.
	Now func() time.Time
}
