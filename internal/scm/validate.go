// Package scm holds the pure rules used to interpret untrusted webhook data:
// identity validation, ref classification, repository matching and
// prefilter evaluation.
package scm

import "regexp"

const maxUserNameLength = 39

var (
	repoNameRegex   = regexp.MustCompile(`^[0-9A-Za-z._-]+$`)
	userNameRegex   = regexp.MustCompile(`^[A-Za-z0-9]+(?:-[A-Za-z0-9]+)*$`)
	commitHashRegex = regexp.MustCompile(`^[a-fA-F0-9]{40}$`)
)

// IsValidRepoName reports whether s is a permissible repository name.
func IsValidRepoName(s string) bool {
	return s != "" && repoNameRegex.MatchString(s)
}

// IsValidUserName reports whether s is a valid account name: alphanumerics
// and single inner hyphens, at most 39 characters.
func IsValidUserName(s string) bool {
	return s != "" && len(s) <= maxUserNameLength && userNameRegex.MatchString(s)
}

// IsValidCommitHash reports whether s looks like a full SHA-1 commit id.
func IsValidCommitHash(s string) bool {
	return commitHashRegex.MatchString(s)
}
