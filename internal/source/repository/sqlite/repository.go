// Package sqlite is a Store persisted with GORM on SQLite.
package sqlite

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"scm-event-dispatcher/internal/model"
	"scm-event-dispatcher/internal/source"
	"scm-event-dispatcher/internal/source/repository"
	pkgLog "scm-event-dispatcher/pkg/log"
)

type implRepository struct {
	db  *gorm.DB
	opt repository.Options
	l   pkgLog.Logger
}

// Open connects to the SQLite database at dsn.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %s: %w", dsn, err)
	}
	return db, nil
}

// New migrates the schema and returns the store.
func New(db *gorm.DB, opt repository.Options, l pkgLog.Logger) (repository.Store, error) {
	if err := db.AutoMigrate(&SourceRecord{}, &NavigatorRecord{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate: %w", err)
	}
	return &implRepository{db: db, opt: opt, l: l}, nil
}

func (r *implRepository) ListSources(ctx context.Context) ([]model.SourceConfig, error) {
	var records []SourceRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("sqlite: list sources: %w", err)
	}

	out := make([]model.SourceConfig, 0, len(records))
	for _, rec := range records {
		cfg, err := source.ToConfig(rec.toSpec(), r.opt.Now)
		if err != nil {
			// Skip the bad row, keep the rest.
			r.l.Errorf(ctx, "sqlite repository: skipping source %s: %v", rec.ID, err)
			continue
		}
		out = append(out, cfg)
	}
	return out, nil
}

func (r *implRepository) ListNavigators(ctx context.Context) ([]model.NavigatorConfig, error) {
	var records []NavigatorRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("sqlite: list navigators: %w", err)
	}

	out := make([]model.NavigatorConfig, 0, len(records))
	for _, rec := range records {
		out = append(out, model.NavigatorConfig{ID: rec.ID, APIURI: rec.APIURI, Owner: rec.Owner})
	}
	return out, nil
}

func (r *implRepository) SaveSource(ctx context.Context, spec source.SourceSpec) error {
	if _, err := source.ToConfig(spec, r.opt.Now); err != nil {
		return fmt.Errorf("sqlite: save source: %w", err)
	}
	rec := sourceRecordOf(spec)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&rec).Error
	if err != nil {
		return fmt.Errorf("sqlite: save source %s: %w", spec.ID, err)
	}
	return nil
}

func (r *implRepository) SaveNavigator(ctx context.Context, spec source.NavigatorSpec) error {
	if err := spec.Validate(); err != nil {
		return fmt.Errorf("sqlite: save navigator: %w", err)
	}
	rec := NavigatorRecord{ID: spec.ID, APIURI: spec.APIURI, Owner: spec.Owner}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&rec).Error
	if err != nil {
		return fmt.Errorf("sqlite: save navigator %s: %w", spec.ID, err)
	}
	return nil
}

func (r *implRepository) DeleteSource(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&SourceRecord{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("sqlite: delete source %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return source.ErrSourceNotFound
	}
	return nil
}

func sourceRecordOf(s source.SourceSpec) SourceRecord {
	return SourceRecord{
		ID:           s.ID,
		APIURI:       s.APIURI,
		Owner:        s.Owner,
		Repository:   s.Repository,
		WantBranches: s.WantBranches,
		WantTags:     s.WantTags,
		Includes:     s.Filter.Includes,
		Excludes:     s.Filter.Excludes,
		Regex:        s.Filter.Regex,
		MaxTagAgeSec: int64(s.Filter.MaxTagAge / time.Second),
	}
}

func (rec SourceRecord) toSpec() source.SourceSpec {
	return source.SourceSpec{
		ID:           rec.ID,
		APIURI:       rec.APIURI,
		Owner:        rec.Owner,
		Repository:   rec.Repository,
		WantBranches: rec.WantBranches,
		WantTags:     rec.WantTags,
		Filter: source.FilterSpec{
			Includes:  rec.Includes,
			Excludes:  rec.Excludes,
			Regex:     rec.Regex,
			MaxTagAge: time.Duration(rec.MaxTagAgeSec) * time.Second,
		},
	}
}
