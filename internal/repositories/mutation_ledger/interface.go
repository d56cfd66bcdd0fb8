package mutation_ledger

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/lastman/internal/repositories/mutation_ledger Repository

import (
	"context"

	"github.com/KirkDiggler/lastman/internal/models"
)

// Repository records optimistic changes until the API confirms or rejects them
type Repository interface {
	// AddMutation records a new pending mutation
	AddMutation(ctx context.Context, input *AddMutationInput) error

	// GetMutation retrieves a mutation by ID
	GetMutation(ctx context.Context, input *GetMutationInput) (*models.Mutation, error)

	// ResolveMutation moves a pending mutation to confirmed or reverted
	ResolveMutation(ctx context.Context, input *ResolveMutationInput) (*models.Mutation, error)

	// GetPendingMutations lists the unresolved mutations of a competition
	GetPendingMutations(ctx context.Context, input *GetPendingMutationsInput) (*GetPendingMutationsOutput, error)

	// GetMutationsForCompetition lists every mutation of a competition, oldest first
	GetMutationsForCompetition(ctx context.Context, input *GetMutationsForCompetitionInput) (*GetMutationsForCompetitionOutput, error)
}
