package http

import (
	"time"

	"scm-event-dispatcher/internal/model"
	"scm-event-dispatcher/internal/source"
)

// --- Request DTOs ---

type filterReq struct {
	Includes  string `json:"includes"`
	Excludes  string `json:"excludes"`
	Regex     string `json:"regex"`
	MaxTagAge string `json:"max_tag_age"` // Go duration, e.g. "72h"
}

type saveSourceReq struct {
	ID           string    `json:"-"` // populated from URI param
	APIURI       string    `json:"api_uri"`
	Owner        string    `json:"owner"      binding:"required"`
	Repository   string    `json:"repository" binding:"required"`
	WantBranches bool      `json:"want_branches"`
	WantTags     bool      `json:"want_tags"`
	Filter       filterReq `json:"filter"`
}

func (r saveSourceReq) toSpec() (source.SourceSpec, error) {
	var maxAge time.Duration
	if r.Filter.MaxTagAge != "" {
		d, err := time.ParseDuration(r.Filter.MaxTagAge)
		if err != nil {
			return source.SourceSpec{}, errInvalidMaxTagAge
		}
		maxAge = d
	}
	return source.SourceSpec{
		ID:           r.ID,
		APIURI:       r.APIURI,
		Owner:        r.Owner,
		Repository:   r.Repository,
		WantBranches: r.WantBranches,
		WantTags:     r.WantTags,
		Filter: source.FilterSpec{
			Includes:  r.Filter.Includes,
			Excludes:  r.Filter.Excludes,
			Regex:     r.Filter.Regex,
			MaxTagAge: maxAge,
		},
	}, nil
}

type saveNavigatorReq struct {
	ID     string `json:"-"` // populated from URI param
	APIURI string `json:"api_uri"`
	Owner  string `json:"owner" binding:"required"`
}

func (r saveNavigatorReq) toSpec() source.NavigatorSpec {
	return source.NavigatorSpec{ID: r.ID, APIURI: r.APIURI, Owner: r.Owner}
}

// --- Response DTOs ---

type sourceResp struct {
	ID           string `json:"id"`
	APIURI       string `json:"api_uri,omitempty"`
	Owner        string `json:"owner"`
	Repository   string `json:"repository"`
	WantBranches bool   `json:"want_branches"`
	WantTags     bool   `json:"want_tags"`
	Prefilters   int    `json:"prefilters"`
}

func newSourceResp(s model.SourceConfig) sourceResp {
	return sourceResp{
		ID:           s.ID,
		APIURI:       s.APIURI,
		Owner:        s.Owner,
		Repository:   s.Repository,
		WantBranches: s.WantBranches,
		WantTags:     s.WantTags,
		Prefilters:   len(s.Prefilters),
	}
}

type listSourcesResp struct {
	Sources []sourceResp `json:"sources"`
	Total   int          `json:"total"`
}

func (h *handler) newListSourcesResp(srcs []model.SourceConfig) listSourcesResp {
	out := make([]sourceResp, len(srcs))
	for i, s := range srcs {
		out[i] = newSourceResp(s)
	}
	return listSourcesResp{Sources: out, Total: len(out)}
}

type navigatorResp struct {
	ID     string `json:"id"`
	APIURI string `json:"api_uri,omitempty"`
	Owner  string `json:"owner"`
}

type listNavigatorsResp struct {
	Navigators []navigatorResp `json:"navigators"`
	Total      int             `json:"total"`
}

func (h *handler) newListNavigatorsResp(navs []model.NavigatorConfig) listNavigatorsResp {
	out := make([]navigatorResp, len(navs))
	for i, n := range navs {
		out[i] = navigatorResp{ID: n.ID, APIURI: n.APIURI, Owner: n.Owner}
	}
	return listNavigatorsResp{Navigators: out, Total: len(out)}
}
