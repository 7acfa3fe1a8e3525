// Package memory is a Store kept in process memory, seeded from configuration.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"scm-event-dispatcher/internal/model"
	"scm-event-dispatcher/internal/source"
	"scm-event-dispatcher/internal/source/repository"
)

type implRepository struct {
	opt repository.Options

	mu         sync.RWMutex
	sources    map[string]model.SourceConfig
	navigators map[string]model.NavigatorConfig
}

// New creates a memory store holding the given specs.
func New(opt repository.Options, sources []source.SourceSpec, navigators []source.NavigatorSpec) (repository.Store, error) {
	r := &implRepository{
		opt:        opt,
		sources:    make(map[string]model.SourceConfig, len(sources)),
		navigators: make(map[string]model.NavigatorConfig, len(navigators)),
	}
	ctx := context.Background()
	for _, s := range sources {
		if err := r.SaveSource(ctx, s); err != nil {
			return nil, err
		}
	}
	for _, n := range navigators {
		if err := r.SaveNavigator(ctx, n); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *implRepository) ListSources(ctx context.Context) ([]model.SourceConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.SourceConfig, 0, len(r.sources))
	for _, s := range r.sources {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *implRepository) ListNavigators(ctx context.Context) ([]model.NavigatorConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.NavigatorConfig, 0, len(r.navigators))
	for _, n := range r.navigators {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *implRepository) SaveSource(ctx context.Context, spec source.SourceSpec) error {
	cfg, err := source.ToConfig(spec, r.opt.Now)
	if err != nil {
		return fmt.Errorf("memory: save source: %w", err)
	}
	r.mu.Lock()
	r.sources[cfg.ID] = cfg
	r.mu.Unlock()
	return nil
}

func (r *implRepository) SaveNavigator(ctx context.Context, spec source.NavigatorSpec) error {
	cfg, err := source.ToNavigatorConfig(spec)
	if err != nil {
		return fmt.Errorf("memory: save navigator: %w", err)
	}
	r.mu.Lock()
	r.navigators[cfg.ID] = cfg
	r.mu.Unlock()
	return nil
}

func (r *implRepository) DeleteSource(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sources[id]; !ok {
		return source.ErrSourceNotFound
	}
	delete(r.sources, id)
	return nil
}
