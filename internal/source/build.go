// Package source holds the registry of watched repositories and owners, and
// turns their stored form into the configurations the dispatcher matches on.
package source

import (
	"fmt"
	"strings"
	"time"

	"scm-event-dispatcher/internal/model"
	"scm-event-dispatcher/internal/scm"
)

// Validate checks the fields every source needs.
func (s SourceSpec) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return ErrMissingID
	}
	if strings.TrimSpace(s.Owner) == "" {
		return ErrMissingOwner
	}
	if strings.TrimSpace(s.Repository) == "" {
		return ErrMissingRepo
	}
	return nil
}

// Validate checks the fields every navigator needs.
func (n NavigatorSpec) Validate() error {
	if strings.TrimSpace(n.ID) == "" {
		return ErrMissingID
	}
	if strings.TrimSpace(n.Owner) == "" {
		return ErrMissingOwner
	}
	return nil
}

// BuildPrefilters compiles a filter into a chain. Order is cheapest first.
// now is used by the tag age check; nil means time.Now.
func BuildPrefilters(f FilterSpec, now func() time.Time) ([]model.Prefilter, error) {
	var chain []model.Prefilter
	if f.Includes != "" || f.Excludes != "" {
		chain = append(chain, scm.NewWildcardPrefilter(f.Includes, f.Excludes))
	}
	if f.Regex != "" {
		re, err := scm.NewRegexPrefilter(f.Regex)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
		}
		chain = append(chain, re)
	}
	if f.MaxTagAge > 0 {
		chain = append(chain, scm.TagAgePrefilter{MaxAge: f.MaxTagAge, Now: now})
	}
	return chain, nil
}

// ToConfig validates a spec and builds the matchable configuration.
func ToConfig(s SourceSpec, now func() time.Time) (model.SourceConfig, error) {
	if err := s.Validate(); err != nil {
		return model.SourceConfig{}, err
	}
	chain, err := BuildPrefilters(s.Filter, now)
	if err != nil {
		return model.SourceConfig{}, fmt.Errorf("source %s: %w", s.ID, err)
	}
	return model.SourceConfig{
		ID:           s.ID,
		APIURI:       s.APIURI,
		Owner:        s.Owner,
		Repository:   s.Repository,
		WantBranches: s.WantBranches,
		WantTags:     s.WantTags,
		Prefilters:   chain,
	}, nil
}

// ToNavigatorConfig validates a spec and builds the matchable configuration.
func ToNavigatorConfig(n NavigatorSpec) (model.NavigatorConfig, error) {
	if err := n.Validate(); err != nil {
		return model.NavigatorConfig{}, err
	}
	return model.NavigatorConfig{ID: n.ID, APIURI: n.APIURI, Owner: n.Owner}, nil
}
