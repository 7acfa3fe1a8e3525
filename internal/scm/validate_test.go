package scm_test

import (
	"strings"
	"testing"

	"scm-event-dispatcher/internal/scm"
)

func TestIsValidRepoName(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"repo", true},
		{"my-repo_2.go", true},
		{".github", true},
		{"", false},
		{"repo name", false},
		{"repo/other", false},
		{"<script>", false},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			if got := scm.IsValidRepoName(tc.in); got != tc.want {
				t.Errorf("IsValidRepoName(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestIsValidUserName(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"octocat", true},
		{"my-org", true},
		{"a", true},
		{strings.Repeat("a", 39), true},
		{strings.Repeat("a", 40), false},
		{"", false},
		{"-leading", false},
		{"trailing-", false},
		{"double--hyphen", false},
		{"under_score", false},
		{"dot.name", false},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			if got := scm.IsValidUserName(tc.in); got != tc.want {
				t.Errorf("IsValidUserName(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestIsValidCommitHash(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{strings.Repeat("a", 40), true},
		{"0123456789ABCDEFabcdef0123456789abcdef01", true},
		{strings.Repeat("0", 40), true},
		{"not-a-sha", false},
		{strings.Repeat("a", 39), false},
		{strings.Repeat("a", 41), false},
		{strings.Repeat("g", 40), false},
		{"", false},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			if got := scm.IsValidCommitHash(tc.in); got != tc.want {
				t.Errorf("IsValidCommitHash(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}
