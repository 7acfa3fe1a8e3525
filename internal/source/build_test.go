package source_test

import (
	"errors"
	"testing"
	"time"

	"scm-event-dispatcher/internal/model"
	"scm-event-dispatcher/internal/source"
)

func TestToConfig(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	tests := []struct {
		name    string
		spec    source.SourceSpec
		wantErr error
		wantLen int
	}{
		{
			name:    "no filter",
			spec:    source.SourceSpec{ID: "s", Owner: "acme", Repository: "widgets"},
			wantLen: 0,
		},
		{
			name: "every filter",
			spec: source.SourceSpec{ID: "s", Owner: "acme", Repository: "widgets", Filter: source.FilterSpec{
				Includes: "main", Regex: "ma.*", MaxTagAge: time.Hour,
			}},
			wantLen: 3,
		},
		{
			name:    "missing id",
			spec:    source.SourceSpec{Owner: "acme", Repository: "widgets"},
			wantErr: source.ErrMissingID,
		},
		{
			name:    "missing owner",
			spec:    source.SourceSpec{ID: "s", Repository: "widgets"},
			wantErr: source.ErrMissingOwner,
		},
		{
			name:    "bad regex",
			spec:    source.SourceSpec{ID: "s", Owner: "acme", Repository: "widgets", Filter: source.FilterSpec{Regex: "[a-"}},
			wantErr: source.ErrInvalidFilter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := source.ToConfig(tt.spec, clock)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(cfg.Prefilters) != tt.wantLen {
				t.Errorf("expected %d prefilters, got %d", tt.wantLen, len(cfg.Prefilters))
			}
		})
	}
}

func TestBuildPrefiltersTagAgeUsesClock(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	chain, err := source.BuildPrefilters(source.FilterSpec{MaxTagAge: time.Hour}, func() time.Time { return now })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	src := model.SourceConfig{ID: "s"}

	if chain[0].IsExcluded(src, model.Tag{Name: "v1", Timestamp: now.Add(-30 * time.Minute)}) {
		t.Error("recent tag should be kept")
	}
	if !chain[0].IsExcluded(src, model.Tag{Name: "v0", Timestamp: now.Add(-2 * time.Hour)}) {
		t.Error("old tag should be excluded")
	}
	if chain[0].IsExcluded(src, model.Branch{Name: "main"}) {
		t.Error("branches are never aged out")
	}
}
