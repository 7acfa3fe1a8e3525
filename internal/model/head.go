package model

import "time"

// HeadKind is either a branch or a tag.
type HeadKind string

const (
	HeadBranch HeadKind = "branch"
	HeadTag    HeadKind = "tag"
)

// RefDescriptor is a ref with its well-known prefix stripped.
type RefDescriptor struct {
	Kind HeadKind
	Name string
}

// ChangeHead is a named line of history. Implementations are comparable so
// they can key a Heads map.
type ChangeHead interface {
	HeadName() string
	HeadKind() HeadKind
}

// Branch is a branch head. Its identity is the name only.
type Branch struct {
	Name string
}

func (b Branch) HeadName() string   { return b.Name }
func (b Branch) HeadKind() HeadKind { return HeadBranch }

// Tag is a tag head. Timestamp is the notification receipt time, which is
// only a hint: consumers re-derive the real tag time on full resolution.
type Tag struct {
	Name      string
	Timestamp time.Time
}

func (t Tag) HeadName() string   { return t.Name }
func (t Tag) HeadKind() HeadKind { return HeadTag }

// RevisionMarker pins a head to a commit, or leaves it unresolved.
type RevisionMarker interface {
	MarkerHead() ChangeHead
	// Hash returns the pinned commit, or "" when unresolved.
	Hash() string
}

// Unresolved carries the head identity only. Two Unresolved values are equal
// when their heads are equal.
type Unresolved struct {
	Head ChangeHead
}

func (u Unresolved) MarkerHead() ChangeHead { return u.Head }
func (u Unresolved) Hash() string           { return "" }

// ShaPinned pins a head to a commit id taken from the notification.
type ShaPinned struct {
	Head ChangeHead
	SHA  string
}

func (s ShaPinned) MarkerHead() ChangeHead { return s.Head }
func (s ShaPinned) Hash() string           { return s.SHA }

// Heads maps every surviving head of a notification to its revision marker.
type Heads map[ChangeHead]RevisionMarker
