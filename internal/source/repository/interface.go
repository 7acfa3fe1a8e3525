package repository

import (
	"context"

	"scm-event-dispatcher/internal/model"
	"scm-event-dispatcher/internal/source"
)

// Repository is read at delivery time, so a source removed after a
// notification was scheduled no longer receives it.
type Repository interface {
	ListSources(ctx context.Context) ([]model.SourceConfig, error)
	ListNavigators(ctx context.Context) ([]model.NavigatorConfig, error)
}

// Store is a Repository that can also be written to.
type Store interface {
	Repository
	SaveSource(ctx context.Context, spec source.SourceSpec) error
	SaveNavigator(ctx context.Context, spec source.NavigatorSpec) error
	DeleteSource(ctx context.Context, id string) error
}
