package usecase

import (
	"fmt"
	"time"

	"scm-event-dispatcher/internal/headevent"
	"scm-event-dispatcher/internal/model"
	"scm-event-dispatcher/internal/scm"
)

type headEvent struct {
	kind       model.NotificationKind
	changeType model.ChangeType
	timestamp  time.Time
	origin     string
	deliveryID string
	identity   model.RepositoryIdentity
	payload    headevent.Payload
	matcher    scm.Matcher
}

// newHeadEvent builds an immutable event. Heads are resolved lazily per source.
func (uc *implUseCase) newHeadEvent(n model.Notification) (*headEvent, error) {
	if n.Source != model.SourceGitHub {
		return nil, fmt.Errorf("%w: %q", headevent.ErrUnsupportedSource, n.Source)
	}
	payload, err := decodePayload(n.Kind, n.Payload)
	if err != nil {
		return nil, err
	}

	repo := payload.Repo()
	parsed, ok := scm.ParseRepositoryURL(repo.HTMLURL)
	if !ok {
		return nil, fmt.Errorf("%w: %q", headevent.ErrMalformedRepository, repo.HTMLURL)
	}
	// The URL only contributes the host. Owner and name come from the
	// payload fields, which are validated before any head is emitted.
	identity := model.RepositoryIdentity{Host: parsed.Host, Owner: repo.Owner, Name: repo.Name}
	if identity.Owner == "" {
		identity.Owner = parsed.Owner
	}
	if identity.Name == "" {
		identity.Name = parsed.Name
	}

	ts := n.ReceivedAt
	if ts.IsZero() {
		ts = uc.clock.Now()
	}

	return &headEvent{
		kind:       n.Kind,
		changeType: changeTypeOf(payload),
		timestamp:  ts,
		origin:     n.Origin,
		deliveryID: n.DeliveryID,
		identity:   identity,
		payload:    payload,
		matcher:    uc.matcher,
	}, nil
}

func changeTypeOf(p headevent.Payload) model.ChangeType {
	switch v := p.(type) {
	case headevent.CreatePayload:
		return model.ChangeCreated
	case headevent.DeletePayload:
		return model.ChangeRemoved
	case headevent.PushPayload:
		switch {
		case v.Created:
			return model.ChangeCreated
		case v.Deleted:
			return model.ChangeRemoved
		}
	}
	return model.ChangeUpdated
}

func (e *headEvent) Type() model.ChangeType             { return e.changeType }
func (e *headEvent) Kind() model.NotificationKind       { return e.kind }
func (e *headEvent) Timestamp() time.Time               { return e.timestamp }
func (e *headEvent) Origin() string                     { return e.origin }
func (e *headEvent) DeliveryID() string                 { return e.deliveryID }
func (e *headEvent) Identity() model.RepositoryIdentity { return e.identity }
func (e *headEvent) SourceName() string                 { return e.identity.Name }

func (e *headEvent) IsMatchSource(src model.SourceConfig) bool {
	return e.matcher.Matches(e.identity, src)
}

func (e *headEvent) IsMatchNavigator(nav model.NavigatorConfig) bool {
	return e.matcher.MatchesNavigator(e.identity, nav)
}

// Heads resolves the heads this event announces to src. Anything that fails
// matching or identity validation resolves to an empty map.
func (e *headEvent) Heads(src model.SourceConfig) model.Heads {
	if !e.IsMatchSource(src) {
		return model.Heads{}
	}
	if !scm.IsValidRepoName(e.identity.Name) || !scm.IsValidUserName(e.identity.Owner) {
		return model.Heads{}
	}

	switch p := e.payload.(type) {
	case headevent.CreatePayload:
		return createHeads(p, src, e.timestamp)
	case headevent.DeletePayload:
		return deleteHeads(p, src, e.timestamp)
	case headevent.PushPayload:
		return pushHeads(p, src, e.timestamp)
	}
	return model.Heads{}
}

func (e *headEvent) Description() string {
	switch p := e.payload.(type) {
	case headevent.CreatePayload:
		return describeCreate(p, e.identity)
	case headevent.DeletePayload:
		return describeRef("Delete", p.Ref, e.identity.FullName())
	case headevent.PushPayload:
		return describeRef("Push", p.Ref, e.identity.FullName())
	}
	return ""
}

func (e *headEvent) DescriptionForNavigator(_ model.NavigatorConfig) string {
	switch p := e.payload.(type) {
	case headevent.DeletePayload:
		return describeRef("Delete", p.Ref, e.identity.Name)
	case headevent.PushPayload:
		return describeRef("Push", p.Ref, e.identity.Name)
	}
	return e.Description()
}

func (e *headEvent) DescriptionForSource(_ model.SourceConfig) string {
	switch p := e.payload.(type) {
	case headevent.DeletePayload:
		return describeRef("Delete", p.Ref, "")
	case headevent.PushPayload:
		return describeRef("Push", p.Ref, "")
	}
	return e.Description()
}
