package usecase

import (
	"time"

	"scm-event-dispatcher/internal/headevent"
	"scm-event-dispatcher/internal/model"
	"scm-event-dispatcher/internal/scm"
)

// deleteHeads classifies by prefix only. Unprefixed refs are branches.
func deleteHeads(p headevent.DeletePayload, src model.SourceConfig, ts time.Time) model.Heads {
	heads := model.Heads{}

	desc := scm.ClassifyRef(p.Ref, nil)
	switch {
	case desc.Kind == model.HeadBranch && src.WantBranches:
	case desc.Kind == model.HeadTag && src.WantTags:
	default:
		return heads
	}

	head := scm.HeadOf(desc, ts)

	if scm.Excluded(src.Prefilters, src, head) {
		return heads
	}
	heads[head] = model.Unresolved{Head: head}
	return heads
}
