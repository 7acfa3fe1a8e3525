package usecase

import (
	"fmt"

	"scm-event-dispatcher/internal/scm"
)

// describeRef renders "<Action> event to branch X" or "<Action> event for
// tag X", optionally followed by the repository.
func describeRef(action, ref, repository string) string {
	var text string
	if scm.IsTagRef(ref) {
		text = fmt.Sprintf("%s event for tag %s", action, scm.ShortRef(ref))
	} else {
		text = fmt.Sprintf("%s event to branch %s", action, scm.ShortRef(ref))
	}
	if repository != "" {
		text += " in repository " + repository
	}
	return text
}
