package model

import "time"

// WebhookSource represents the platform a notification came from.
type WebhookSource string

const (
	SourceGitHub WebhookSource = "github"
)

// NotificationKind is the webhook event kind as reported by the origin.
type NotificationKind string

const (
	KindCreate NotificationKind = "create"
	KindDelete NotificationKind = "delete"
	KindPush   NotificationKind = "push"
)

// Notification is a raw inbound webhook delivery. It is immutable and consumed once.
type Notification struct {
	Source     WebhookSource
	Kind       NotificationKind
	Origin     string // Opaque delivery origin, only used in descriptions and logs
	DeliveryID string
	ReceivedAt time.Time
	Payload    []byte
}

// ChangeType is the kind of change a scheduled notification announces.
type ChangeType string

const (
	ChangeCreated ChangeType = "CREATED"
	ChangeUpdated ChangeType = "UPDATED"
	ChangeRemoved ChangeType = "REMOVED"
)

// RepositoryIdentity identifies the repository a notification refers to.
type RepositoryIdentity struct {
	Host  string
	Owner string
	Name  string
}

// FullName returns "owner/name".
func (r RepositoryIdentity) FullName() string {
	return r.Owner + "/" + r.Name
}

// Environment names the deployment environment.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)
