package usecase

import (
	"fmt"
	"time"

	"scm-event-dispatcher/internal/headevent"
	"scm-event-dispatcher/internal/model"
	"scm-event-dispatcher/internal/scm"
)

// createHeads trusts the reported ref type. A ref type the source does not
// want, or an unknown one, resolves to nothing.
func createHeads(p headevent.CreatePayload, src model.SourceConfig, ts time.Time) model.Heads {
	heads := model.Heads{}

	var head model.ChangeHead
	switch {
	case src.WantBranches && p.RefType == headevent.RefTypeBranch:
		head = scm.BranchHeadOf(p.Ref)
	case src.WantTags && p.RefType == headevent.RefTypeTag:
		head = scm.TagHeadOf(p.Ref, ts)
	default:
		return heads
	}

	if scm.Excluded(src.Prefilters, src, head) {
		return heads
	}
	heads[head] = model.Unresolved{Head: head}
	return heads
}

// NOTE: labels are swapped, a branch is described as a tag and vice versa.
func describeCreate(p headevent.CreatePayload, id model.RepositoryIdentity) string {
	switch p.RefType {
	case headevent.RefTypeBranch:
		return fmt.Sprintf("Create event for tag %s in repository %s", p.Ref, id.FullName())
	case headevent.RefTypeTag:
		return fmt.Sprintf("Create event for branch %s in repository %s", p.Ref, id.FullName())
	}
	return fmt.Sprintf("Create event for %s, with unknown ref type %s in repository %s", p.Ref, p.RefType, id.FullName())
}
