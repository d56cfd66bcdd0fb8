package mutation_ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/lastman/internal/models"
)

const (
	// Key prefixes for Redis
	mutationKeyPrefix          = "mutation:"
	competitionMutationsPrefix = "competition_mutations:"
	pendingMutationsPrefix     = "pending_mutations:"
)

// ErrMutationNotFound is returned when a mutation is not found
var ErrMutationNotFound = errors.New("mutation not found")

// ErrMutationResolved is returned when resolving a mutation that is no longer pending
var ErrMutationResolved = errors.New("mutation already resolved")

// ReasonAbandoned marks a mutation nobody resolved within the allowed age
const ReasonAbandoned = "abandoned before the API answered"

// Config holds configuration for the Redis mutation ledger repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed mutation ledger repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// AddMutation records a pending mutation
func (r *redisRepository) AddMutation(ctx context.Context, input *AddMutationInput) error {
	if input == nil || input.Mutation == nil {
		return errors.New("input and mutation cannot be nil")
	}

	mutation := input.Mutation
	if mutation.ID == "" || mutation.CompetitionID == "" {
		return errors.New("mutation ID and competition ID cannot be empty")
	}
	if mutation.State != models.MutationStatePending {
		return fmt.Errorf("new mutations must be %s, got %s", models.MutationStatePending, mutation.State)
	}

	mutationJSON, err := json.Marshal(mutation)
	if err != nil {
		return fmt.Errorf("failed to marshal mutation: %w", err)
	}

	pipe := r.client.Pipeline()

	mutationKey := fmt.Sprintf("%s%s", mutationKeyPrefix, mutation.ID)
	pipe.Set(ctx, mutationKey, mutationJSON, 0)

	competitionKey := fmt.Sprintf("%s%s", competitionMutationsPrefix, mutation.CompetitionID)
	pipe.ZAdd(ctx, competitionKey, redis.Z{
		Score:  float64(mutation.CreatedAt.UnixNano()),
		Member: mutation.ID,
	})

	pendingKey := fmt.Sprintf("%s%s", pendingMutationsPrefix, mutation.CompetitionID)
	pipe.ZAdd(ctx, pendingKey, redis.Z{
		Score:  float64(mutation.CreatedAt.UnixNano()),
		Member: mutation.ID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to add mutation: %w", err)
	}

	return nil
}

// GetMutation retrieves a mutation by ID
func (r *redisRepository) GetMutation(ctx context.Context, input *GetMutationInput) (*models.Mutation, error) {
	if input == nil || input.MutationID == "" {
		return nil, errors.New("input and mutation ID cannot be empty")
	}

	mutationKey := fmt.Sprintf("%s%s", mutationKeyPrefix, input.MutationID)
	mutationJSON, err := r.client.Get(ctx, mutationKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrMutationNotFound
		}
		return nil, fmt.Errorf("failed to get mutation: %w", err)
	}

	var mutation models.Mutation
	if err := json.Unmarshal([]byte(mutationJSON), &mutation); err != nil {
		return nil, fmt.Errorf("failed to unmarshal mutation: %w", err)
	}

	return &mutation, nil
}

// ResolveMutation confirms or reverts a pending mutation
func (r *redisRepository) ResolveMutation(ctx context.Context, input *ResolveMutationInput) (*models.Mutation, error) {
	if input == nil || input.MutationID == "" {
		return nil, errors.New("input and mutation ID cannot be empty")
	}
	if input.State != models.MutationStateConfirmed && input.State != models.MutationStateReverted {
		return nil, fmt.Errorf("cannot resolve mutation to %s", input.State)
	}

	mutation, err := r.GetMutation(ctx, &GetMutationInput{MutationID: input.MutationID})
	if err != nil {
		return nil, err
	}
	if mutation.State != models.MutationStatePending {
		return nil, ErrMutationResolved
	}

	mutation.State = input.State
	mutation.Reason = input.Reason
	mutation.ResolvedAt = input.ResolvedAt

	mutationJSON, err := json.Marshal(mutation)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal mutation: %w", err)
	}

	pipe := r.client.Pipeline()

	mutationKey := fmt.Sprintf("%s%s", mutationKeyPrefix, mutation.ID)
	pipe.Set(ctx, mutationKey, mutationJSON, 0)

	pendingKey := fmt.Sprintf("%s%s", pendingMutationsPrefix, mutation.CompetitionID)
	pipe.ZRem(ctx, pendingKey, mutation.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to resolve mutation: %w", err)
	}

	return mutation, nil
}

// GetPendingMutations lists unresolved mutations of a competition
func (r *redisRepository) GetPendingMutations(ctx context.Context, input *GetPendingMutationsInput) (*GetPendingMutationsOutput, error) {
	if input == nil || input.CompetitionID == "" {
		return nil, errors.New("input and competition ID cannot be empty")
	}

	pendingKey := fmt.Sprintf("%s%s", pendingMutationsPrefix, input.CompetitionID)
	mutations, err := r.loadIndex(ctx, pendingKey)
	if err != nil {
		return nil, err
	}

	out := &GetPendingMutationsOutput{
		Mutations: make([]*models.Mutation, 0, len(mutations)),
		Expired:   []*models.Mutation{},
	}
	for _, mutation := range mutations {
		if input.MaxAge <= 0 || input.Now.Sub(mutation.CreatedAt) <= input.MaxAge {
			out.Mutations = append(out.Mutations, mutation)
			continue
		}

		expired, err := r.ResolveMutation(ctx, &ResolveMutationInput{
			MutationID: mutation.ID,
			State:      models.MutationStateReverted,
			Reason:     ReasonAbandoned,
			ResolvedAt: input.Now,
		})
		if errors.Is(err, ErrMutationResolved) {
			// Resolved by its owner between the listing and now
			continue
		}
		if err != nil {
			return nil, err
		}
		out.Expired = append(out.Expired, expired)
	}

	return out, nil
}

// GetMutationsForCompetition lists every mutation of a competition
func (r *redisRepository) GetMutationsForCompetition(ctx context.Context, input *GetMutationsForCompetitionInput) (*GetMutationsForCompetitionOutput, error) {
	if input == nil || input.CompetitionID == "" {
		return nil, errors.New("input and competition ID cannot be empty")
	}

	competitionKey := fmt.Sprintf("%s%s", competitionMutationsPrefix, input.CompetitionID)
	mutations, err := r.loadIndex(ctx, competitionKey)
	if err != nil {
		return nil, err
	}

	return &GetMutationsForCompetitionOutput{
		Mutations: mutations,
	}, nil
}

func (r *redisRepository) loadIndex(ctx context.Context, indexKey string) ([]*models.Mutation, error) {
	mutationIDs, err := r.client.ZRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list mutations: %w", err)
	}

	if len(mutationIDs) == 0 {
		return []*models.Mutation{}, nil
	}

	keys := make([]string, len(mutationIDs))
	for i, id := range mutationIDs {
		keys[i] = fmt.Sprintf("%s%s", mutationKeyPrefix, id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get mutations: %w", err)
	}

	mutations := make([]*models.Mutation, 0, len(values))
	for _, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}
		var mutation models.Mutation
		if err := json.Unmarshal([]byte(raw), &mutation); err != nil {
			return nil, fmt.Errorf("failed to unmarshal mutation: %w", err)
		}
		mutations = append(mutations, &mutation)
	}

	return mutations, nil
}
