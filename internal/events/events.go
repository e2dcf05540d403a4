package events

import "github.com/google/uuid"

// ProjectChanged is published after a project (or its walls) is created,
// updated or deleted. Consumers should treat it as "aggregate counts may be
// stale", not as a granular change feed.
type ProjectChanged struct {
	BaseEvent
	ProjectID uuid.UUID `json:"projectId"`
}

// EventName returns the unique event identifier.
func (ProjectChanged) EventName() string { return "project.changed" }

// ClientChanged is published after a client is created, updated or deleted.
// A client delete cascades to its projects, so consumers of project counts
// subscribe to this as well.
type ClientChanged struct {
	BaseEvent
	ClientID uuid.UUID `json:"clientId"`
}

// EventName returns the unique event identifier.
func (ClientChanged) EventName() string { return "client.changed" }

// CertificationIssued is published when an official certification record is
// created for a project.
type CertificationIssued struct {
	BaseEvent
	ProjectID uuid.UUID `json:"projectId"`
	Grade     string    `json:"grade"`
}

// EventName returns the unique event identifier.
func (CertificationIssued) EventName() string { return "certification.issued" }

// CertificationRevoked is published when a certification record is deleted,
// returning the project to its estimated rating.
type CertificationRevoked struct {
	BaseEvent
	ProjectID uuid.UUID `json:"projectId"`
}

// EventName returns the unique event identifier.
func (CertificationRevoked) EventName() string { return "certification.revoked" }
