package headevent

import (
	"context"
	"time"

	"scm-event-dispatcher/internal/model"
)

// UseCase classifies inbound notifications and fans resolved heads out to
// listeners after the debounce delay.
type UseCase interface {
	// Dispatch decodes a notification and schedules it for delayed delivery.
	// A notification that cannot be decoded is dropped and the error returned.
	Dispatch(ctx context.Context, n model.Notification) error

	// Deliver resolves a scheduled event against every registered
	// configuration that still matches and notifies listeners.
	Deliver(ctx context.Context, ev HeadEvent)

	Start()
	Stop(ctx context.Context) error
}

// HeadEvent is a decoded, scheduled notification. Heads are resolved per
// source configuration, never ahead of time.
type HeadEvent interface {
	Type() model.ChangeType
	Kind() model.NotificationKind
	Timestamp() time.Time
	Origin() string
	DeliveryID() string
	Identity() model.RepositoryIdentity
	// SourceName is the repository name the event refers to.
	SourceName() string

	Heads(src model.SourceConfig) model.Heads

	// Description texts are for audit logs only.
	Description() string
	DescriptionForNavigator(nav model.NavigatorConfig) string
	DescriptionForSource(src model.SourceConfig) string

	IsMatchNavigator(nav model.NavigatorConfig) bool
	IsMatchSource(src model.SourceConfig) bool
}

// Listener consumes delivered events, typically to trigger a re-scan.
type Listener interface {
	OnSourceEvent(ctx context.Context, src model.SourceConfig, ev HeadEvent, heads model.Heads) error
	OnNavigatorEvent(ctx context.Context, nav model.NavigatorConfig, ev HeadEvent) error
}
