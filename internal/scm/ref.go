package scm

import (
	"strings"
	"time"

	"scm-event-dispatcher/internal/model"
)

const (
	RefHeadsPrefix = "refs/heads/"
	RefTagsPrefix  = "refs/tags/"
)

// ClassifyRef strips a well-known prefix from ref. Unprefixed refs keep the
// raw string as name and take the explicit kind, or branch when none is given.
func ClassifyRef(ref string, explicit *model.HeadKind) model.RefDescriptor {
	if name, ok := strings.CutPrefix(ref, RefHeadsPrefix); ok {
		return model.RefDescriptor{Kind: model.HeadBranch, Name: name}
	}
	if name, ok := strings.CutPrefix(ref, RefTagsPrefix); ok {
		return model.RefDescriptor{Kind: model.HeadTag, Name: name}
	}
	if explicit != nil {
		return model.RefDescriptor{Kind: *explicit, Name: ref}
	}
	return model.RefDescriptor{Kind: model.HeadBranch, Name: ref}
}

// IsTagRef reports whether ref carries the tag prefix.
func IsTagRef(ref string) bool {
	return strings.HasPrefix(ref, RefTagsPrefix)
}

// BranchHeadOf builds a branch head, stripping only the branch prefix.
func BranchHeadOf(ref string) model.Branch {
	return model.Branch{Name: strings.TrimPrefix(ref, RefHeadsPrefix)}
}

// TagHeadOf builds a tag head, stripping only the tag prefix.
func TagHeadOf(ref string, ts time.Time) model.Tag {
	return model.Tag{Name: strings.TrimPrefix(ref, RefTagsPrefix), Timestamp: ts}
}

// HeadOf builds the head for a classified descriptor.
func HeadOf(desc model.RefDescriptor, ts time.Time) model.ChangeHead {
	if desc.Kind == model.HeadTag {
		return model.Tag{Name: desc.Name, Timestamp: ts}
	}
	return model.Branch{Name: desc.Name}
}

// ShortRef strips either well-known prefix.
func ShortRef(ref string) string {
	if name, ok := strings.CutPrefix(ref, RefHeadsPrefix); ok {
		return name
	}
	return strings.TrimPrefix(ref, RefTagsPrefix)
}
