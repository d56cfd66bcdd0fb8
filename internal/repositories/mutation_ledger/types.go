package mutation_ledger

import (
	"time"

	"github.com/KirkDiggler/lastman/internal/models"
)

// AddMutationInput contains the mutation to record
type AddMutationInput struct {
	Mutation *models.Mutation
}

// GetMutationInput contains parameters for retrieving a mutation
type GetMutationInput struct {
	MutationID string
}

// ResolveMutationInput contains parameters for resolving a pending mutation
type ResolveMutationInput struct {
	MutationID string

	// State must be confirmed or reverted
	State models.MutationState

	// Reason is kept for reverted mutations
	Reason string

	ResolvedAt time.Time
}

// GetPendingMutationsInput contains parameters for listing pending mutations
type GetPendingMutationsInput struct {
	CompetitionID string

	// Mutations created more than MaxAge before Now are reverted as abandoned
	// instead of listed. A zero MaxAge keeps every pending mutation.
	MaxAge time.Duration
	Now    time.Time
}

// GetPendingMutationsOutput contains the pending mutations, oldest first
type GetPendingMutationsOutput struct {
	Mutations []*models.Mutation

	// Expired are the mutations this call reverted as abandoned
	Expired []*models.Mutation
}

// GetMutationsForCompetitionInput contains parameters for listing a competition's mutations
type GetMutationsForCompetitionInput struct {
	CompetitionID string
}

// GetMutationsForCompetitionOutput contains the competition's mutations
type GetMutationsForCompetitionOutput struct {
	Mutations []*models.Mutation
}
