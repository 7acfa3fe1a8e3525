package usecase

import (
	"time"

	"scm-event-dispatcher/internal/headevent"
	"scm-event-dispatcher/internal/model"
	"scm-event-dispatcher/internal/scm"
)

// pushHeads pins the head to the pushed commit. A push without a well formed
// commit id resolves to nothing.
func pushHeads(p headevent.PushPayload, src model.SourceConfig, ts time.Time) model.Heads {
	heads := model.Heads{}
	if !scm.IsValidCommitHash(p.HeadSHA) {
		return heads
	}

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
	heads[head] = model.ShaPinned{Head: head, SHA: p.HeadSHA}
	return heads
}
