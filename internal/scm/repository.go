package scm

import (
	"regexp"
	"strings"

	"scm-event-dispatcher/internal/model"
)

var repositoryURLRegex = regexp.MustCompile(`^https?://([^/]+)/([^/]+)/([^/]+)$`)

// ParseRepositoryURL extracts host, owner and name from a repository HTML URL.
func ParseRepositoryURL(rawURL string) (model.RepositoryIdentity, bool) {
	m := repositoryURLRegex.FindStringSubmatch(rawURL)
	if m == nil {
		return model.RepositoryIdentity{}, false
	}
	return model.RepositoryIdentity{Host: m[1], Owner: m[2], Name: m[3]}, true
}

// Matcher decides whether a registered configuration is the intended
// recipient of a notification.
type Matcher struct {
	hosts HostResolver
}

func NewMatcher(hosts HostResolver) Matcher {
	return Matcher{hosts: hosts}
}

// Matches compares host, owner and name case-insensitively. No globbing.
func (m Matcher) Matches(id model.RepositoryIdentity, src model.SourceConfig) bool {
	host := m.hosts.HostnameFromAPIURI(src.APIURI)
	return host != "" &&
		strings.EqualFold(id.Host, host) &&
		strings.EqualFold(id.Owner, src.Owner) &&
		strings.EqualFold(id.Name, src.Repository)
}

// MatchesNavigator compares the owner only.
func (m Matcher) MatchesNavigator(id model.RepositoryIdentity, nav model.NavigatorConfig) bool {
	return id.Owner != "" && strings.EqualFold(id.Owner, nav.Owner)
}
