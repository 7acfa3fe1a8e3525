package scm

import (
	"net/url"
	"strings"
)

// PublicAPIURI is assumed when a source does not declare an API endpoint.
const PublicAPIURI = "https://api.github.com"

// DefaultAPIHosts maps API hosts to the host their repositories live on.
var DefaultAPIHosts = map[string]string{
	"api.github.com": "github.com",
}

// HostResolver turns an API endpoint into the canonical repository host.
type HostResolver struct {
	apiHosts map[string]string
}

// NewHostResolver builds a resolver from the defaults plus extra mappings.
// Keys and values are compared case-insensitively.
func NewHostResolver(extra map[string]string) HostResolver {
	hosts := make(map[string]string, len(DefaultAPIHosts)+len(extra))
	for k, v := range DefaultAPIHosts {
		hosts[strings.ToLower(k)] = strings.ToLower(v)
	}
	for k, v := range extra {
		hosts[strings.ToLower(k)] = strings.ToLower(v)
	}
	return HostResolver{apiHosts: hosts}
}

// HostnameFromAPIURI returns the repository host for apiURI, or "" when the
// URI cannot be parsed. Enterprise endpoints such as
// https://ghe.example.com/api/v3 resolve to their own host.
func (r HostResolver) HostnameFromAPIURI(apiURI string) string {
	if apiURI == "" {
		apiURI = PublicAPIURI
	}
	u, err := url.Parse(apiURI)
	if err != nil || u.Host == "" {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	if mapped, ok := r.apiHosts[host]; ok {
		return mapped
	}
	return host
}
