package models

import (
	"time"
)

// MutationState tracks an optimistic change against server confirmation
type MutationState string

const (
	// MutationStateClean indicates no local change is outstanding
	MutationStateClean MutationState = "clean"

	// MutationStatePending indicates the change is shown locally but unconfirmed
	MutationStatePending MutationState = "optimistic_pending"

	// MutationStateConfirmed indicates the server accepted the change
	MutationStateConfirmed MutationState = "confirmed"

	// MutationStateReverted indicates the server rejected the change and it was rolled back
	MutationStateReverted MutationState = "reverted"
)

// MutationKind identifies what an optimistic mutation changes
type MutationKind string

const (
	// MutationKindFixtureResult sets a fixture's result
	MutationKindFixtureResult MutationKind = "fixture_result"
)

// Mutation records an optimistic change made before the server confirmed it
type Mutation struct {
	// ID is the unique identifier for the mutation
	ID string `json:"id"`

	// CompetitionID is the competition the change applies to
	CompetitionID string `json:"competition_id"`

	// TargetID is the changed resource, e.g. the fixture ID
	TargetID string `json:"target_id"`

	// Kind is what the mutation changes
	Kind MutationKind `json:"kind"`

	// UserID is who made the change
	UserID string `json:"user_id"`

	// Previous is the value shown before the change
	Previous string `json:"previous"`

	// Proposed is the value shown optimistically
	Proposed string `json:"proposed"`

	// State is the mutation's current state
	State MutationState `json:"state"`

	// Reason describes why a mutation was reverted
	Reason string `json:"reason,omitempty"`

	// CreatedAt is when the change was made locally
	CreatedAt time.Time `json:"created_at"`

	// ResolvedAt is when the change was confirmed or reverted
	ResolvedAt time.Time `json:"resolved_at,omitempty"`
}
