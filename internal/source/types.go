package source

import "time"

// FilterSpec is the declarative form of a source's prefilter chain.
type FilterSpec struct {
	// Space separated wildcards, e.g. "main release/*".
	Includes string `mapstructure:"includes" json:"includes,omitempty"`
	Excludes string `mapstructure:"excludes" json:"excludes,omitempty"`
	// Heads must fully match to be kept.
	Regex string `mapstructure:"regex" json:"regex,omitempty"`
	// Zero disables the age check.
	MaxTagAge time.Duration `mapstructure:"max_tag_age" json:"max_tag_age,omitempty"`
}

// SourceSpec is a registered repository as stored or configured.
type SourceSpec struct {
	ID           string     `mapstructure:"id" json:"id"`
	APIURI       string     `mapstructure:"api_uri" json:"api_uri,omitempty"`
	Owner        string     `mapstructure:"owner" json:"owner"`
	Repository   string     `mapstructure:"repository" json:"repository"`
	WantBranches bool       `mapstructure:"want_branches" json:"want_branches"`
	WantTags     bool       `mapstructure:"want_tags" json:"want_tags"`
	Filter       FilterSpec `mapstructure:"filter" json:"filter"`
}

// NavigatorSpec is a registered owner as stored or configured.
type NavigatorSpec struct {
	ID     string `mapstructure:"id" json:"id"`
	APIURI string `mapstructure:"api_uri" json:"api_uri,omitempty"`
	Owner  string `mapstructure:"owner" json:"owner"`
}
