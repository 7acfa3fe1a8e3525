package scm

import (
	"regexp"
	"strings"
	"time"

	"scm-event-dispatcher/internal/model"
)

// Excluded reports whether any prefilter in chain vetoes head. An empty chain
// excludes nothing.
func Excluded(chain []model.Prefilter, src model.SourceConfig, head model.ChangeHead) bool {
	for _, p := range chain {
		if p != nil && p.IsExcluded(src, head) {
			return true
		}
	}
	return false
}

// PrefilterFunc adapts a plain function to model.Prefilter.
type PrefilterFunc func(src model.SourceConfig, head model.ChangeHead) bool

func (f PrefilterFunc) IsExcluded(src model.SourceConfig, head model.ChangeHead) bool {
	return f(src, head)
}

// WildcardPrefilter keeps heads matching one of the include patterns and none
// of the exclude patterns. Patterns are space separated, "*" matches any run
// of characters.
type WildcardPrefilter struct {
	includes []*regexp.Regexp
	excludes []*regexp.Regexp
}

func NewWildcardPrefilter(includes, excludes string) WildcardPrefilter {
	if strings.TrimSpace(includes) == "" {
		includes = "*"
	}
	return WildcardPrefilter{
		includes: compileWildcards(includes),
		excludes: compileWildcards(excludes),
	}
}

func (w WildcardPrefilter) IsExcluded(_ model.SourceConfig, head model.ChangeHead) bool {
	name := head.HeadName()
	return !matchAny(w.includes, name) || matchAny(w.excludes, name)
}

func compileWildcards(patterns string) []*regexp.Regexp {
	var out []*regexp.Regexp
	for _, p := range strings.Fields(patterns) {
		parts := strings.Split(p, "*")
		for i := range parts {
			parts[i] = regexp.QuoteMeta(parts[i])
		}
		out = append(out, regexp.MustCompile("^"+strings.Join(parts, ".*")+"$"))
	}
	return out
}

func matchAny(res []*regexp.Regexp, s string) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// RegexPrefilter keeps only heads whose name matches the pattern.
type RegexPrefilter struct {
	re *regexp.Regexp
}

func NewRegexPrefilter(pattern string) (RegexPrefilter, error) {
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return RegexPrefilter{}, err
	}
	return RegexPrefilter{re: re}, nil
}

func (r RegexPrefilter) IsExcluded(_ model.SourceConfig, head model.ChangeHead) bool {
	return !r.re.MatchString(head.HeadName())
}

// TagAgePrefilter excludes tags older than MaxAge. Branches are never
// excluded. Event-sourced tags carry their receipt time, so they only age
// out once the full scan supplies the real tag time.
type TagAgePrefilter struct {
	MaxAge time.Duration
	Now    func() time.Time
}

func (t TagAgePrefilter) IsExcluded(_ model.SourceConfig, head model.ChangeHead) bool {
	tag, ok := head.(model.Tag)
	if !ok || t.MaxAge <= 0 {
		return false
	}
	now := time.Now
	if t.Now != nil {
		now = t.Now
	}
	return now().Sub(tag.Timestamp) > t.MaxAge
}
