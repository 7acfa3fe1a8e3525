package model

// SourceConfig is a registered repository being watched.
type SourceConfig struct {
	ID           string
	APIURI       string // Empty means the public API
	Owner        string
	Repository   string
	WantBranches bool
	WantTags     bool
	Prefilters   []Prefilter
}

// NavigatorConfig watches every repository of an owner.
type NavigatorConfig struct {
	ID     string
	APIURI string
	Owner  string
}

// Prefilter can veto a candidate head for a given source.
type Prefilter interface {
	IsExcluded(source SourceConfig, head ChangeHead) bool
}
