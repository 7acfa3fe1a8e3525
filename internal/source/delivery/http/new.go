package http

import (
	"scm-event-dispatcher/internal/source/repository"
	"scm-event-dispatcher/pkg/log"
)

type handler struct {
	l     log.Logger
	store repository.Store
}

// New creates the HTTP handler for the source registry.
func New(l log.Logger, store repository.Store) *handler {
	return &handler{
		l:     l,
		store: store,
	}
}
