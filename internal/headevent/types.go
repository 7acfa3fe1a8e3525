package headevent

import (
	"time"

	"scm-event-dispatcher/internal/model"
)

// Repository is the repository block embedded in every payload.
type Repository struct {
	HTMLURL string
	Owner   string
	Name    string
}

// Payload is one of CreatePayload, DeletePayload or PushPayload.
type Payload interface {
	Kind() model.NotificationKind
	Repo() Repository
}

// CreatePayload is a ref creation. RefType is "branch" or "tag" as reported
// by the origin.
type CreatePayload struct {
	Ref        string
	RefType    string
	Repository Repository
}

func (p CreatePayload) Kind() model.NotificationKind { return model.KindCreate }
func (p CreatePayload) Repo() Repository             { return p.Repository }

// DeletePayload is a ref deletion. The ref type is not trusted; the prefix decides.
type DeletePayload struct {
	Ref        string
	Repository Repository
}

func (p DeletePayload) Kind() model.NotificationKind { return model.KindDelete }
func (p DeletePayload) Repo() Repository             { return p.Repository }

// PushPayload is a push to a ref.
type PushPayload struct {
	Ref        string
	HeadSHA    string
	Created    bool
	Deleted    bool
	Repository Repository
}

func (p PushPayload) Kind() model.NotificationKind { return model.KindPush }
func (p PushPayload) Repo() Repository             { return p.Repository }

// Config holds dispatcher settings.
type Config struct {
	Delay     time.Duration
	Workers   int
	QueueSize int
}

// DefaultDelay absorbs bursts such as a push plus a branch create for the same ref.
const DefaultDelay = 5 * time.Second

// Ref types reported by create events.
const (
	RefTypeBranch = "branch"
	RefTypeTag    = "tag"
)
