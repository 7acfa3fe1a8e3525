package sqlite

import "time"

// SourceRecord is the persisted form of a source.
type SourceRecord struct {
	ID           string `gorm:"primaryKey"`
	APIURI       string
	Owner        string `gorm:"index;not null"`
	Repository   string `gorm:"not null"`
	WantBranches bool
	WantTags     bool
	Includes     string
	Excludes     string
	Regex        string
	MaxTagAgeSec int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (SourceRecord) TableName() string {
	return "scm_sources"
}

// NavigatorRecord is the persisted form of a navigator.
type NavigatorRecord struct {
	ID        string `gorm:"primaryKey"`
	APIURI    string
	Owner     string `gorm:"index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (NavigatorRecord) TableName() string {
	return "scm_navigators"
}
