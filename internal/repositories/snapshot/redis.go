package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/lastman/internal/models"
)

const (
	// Key prefixes for Redis
	snapshotKeyPrefix    = "snapshot:"
	snapshotIndexPrefix  = "snapshot_users:"
	watchKeyPrefix       = "watch:"
	channelWatchesPrefix = "channel_watches:"
	allWatchesKey        = "watches"
)

// ErrSnapshotNotFound is returned when no cached snapshot exists
var ErrSnapshotNotFound = errors.New("snapshot not found")

// ErrWatchNotFound is returned when a watch does not exist
var ErrWatchNotFound = errors.New("watch not found")

// Config holds configuration for the Redis snapshot repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed snapshot repository
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

func snapshotKey(competitionID, userID string) string {
	return fmt.Sprintf("%s%s:%s", snapshotKeyPrefix, competitionID, userID)
}

func watchMember(channelID, competitionID string) string {
	return fmt.Sprintf("%s:%s", channelID, competitionID)
}

// SaveSnapshot caches a snapshot
func (r *redisRepository) SaveSnapshot(ctx context.Context, input *SaveSnapshotInput) error {
	if input == nil || input.Snapshot == nil || input.Snapshot.Competition == nil {
		return errors.New("input and snapshot cannot be nil")
	}
	if input.UserID == "" || input.Snapshot.Competition.ID == "" {
		return errors.New("user ID and competition ID cannot be empty")
	}

	snapshotJSON, err := json.Marshal(input.Snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	competitionID := input.Snapshot.Competition.ID

	pipe := r.client.Pipeline()
	pipe.Set(ctx, snapshotKey(competitionID, input.UserID), snapshotJSON, input.TTL)

	// Remember which users hold a copy so a write can drop them all
	pipe.SAdd(ctx, snapshotIndexPrefix+competitionID, input.UserID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

// GetSnapshot returns a cached snapshot
func (r *redisRepository) GetSnapshot(ctx context.Context, input *GetSnapshotInput) (*models.CompetitionSnapshot, error) {
	if input == nil || input.UserID == "" || input.CompetitionID == "" {
		return nil, errors.New("user ID and competition ID cannot be empty")
	}

	snapshotJSON, err := r.client.Get(ctx, snapshotKey(input.CompetitionID, input.UserID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var snapshot models.CompetitionSnapshot
	if err := json.Unmarshal([]byte(snapshotJSON), &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return &snapshot, nil
}

// InvalidateSnapshots drops all cached copies of a competition
func (r *redisRepository) InvalidateSnapshots(ctx context.Context, input *InvalidateSnapshotsInput) error {
	if input == nil || input.CompetitionID == "" {
		return errors.New("competition ID cannot be empty")
	}

	indexKey := snapshotIndexPrefix + input.CompetitionID
	userIDs, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return fmt.Errorf("failed to list snapshot holders: %w", err)
	}

	keys := make([]string, 0, len(userIDs)+1)
	for _, userID := range userIDs {
		keys = append(keys, snapshotKey(input.CompetitionID, userID))
	}
	keys = append(keys, indexKey)

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate snapshots: %w", err)
	}

	return nil
}

// SaveWatch creates or updates a watch
func (r *redisRepository) SaveWatch(ctx context.Context, input *SaveWatchInput) error {
	if input == nil || input.Watch == nil {
		return errors.New("input and watch cannot be nil")
	}
	watch := input.Watch
	if watch.ChannelID == "" || watch.CompetitionID == "" {
		return errors.New("channel ID and competition ID cannot be empty")
	}

	watchJSON, err := json.Marshal(watch)
	if err != nil {
		return fmt.Errorf("failed to marshal watch: %w", err)
	}

	member := watchMember(watch.ChannelID, watch.CompetitionID)

	pipe := r.client.Pipeline()
	pipe.Set(ctx, watchKeyPrefix+member, watchJSON, 0)
	pipe.SAdd(ctx, allWatchesKey, member)
	pipe.SAdd(ctx, channelWatchesPrefix+watch.ChannelID, watch.CompetitionID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save watch: %w", err)
	}

	return nil
}

// GetWatch returns a single watch
func (r *redisRepository) GetWatch(ctx context.Context, input *GetWatchInput) (*models.Watch, error) {
	if input == nil || input.ChannelID == "" || input.CompetitionID == "" {
		return nil, errors.New("channel ID and competition ID cannot be empty")
	}

	return r.getWatch(ctx, watchMember(input.ChannelID, input.CompetitionID))
}

func (r *redisRepository) getWatch(ctx context.Context, member string) (*models.Watch, error) {
	watchJSON, err := r.client.Get(ctx, watchKeyPrefix+member).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrWatchNotFound
		}
		return nil, fmt.Errorf("failed to get watch: %w", err)
	}

	var watch models.Watch
	if err := json.Unmarshal([]byte(watchJSON), &watch); err != nil {
		return nil, fmt.Errorf("failed to unmarshal watch: %w", err)
	}

	return &watch, nil
}

// DeleteWatch removes a watch
func (r *redisRepository) DeleteWatch(ctx context.Context, input *DeleteWatchInput) error {
	if input == nil || input.ChannelID == "" || input.CompetitionID == "" {
		return errors.New("channel ID and competition ID cannot be empty")
	}

	member := watchMember(input.ChannelID, input.CompetitionID)

	pipe := r.client.Pipeline()
	pipe.Del(ctx, watchKeyPrefix+member)
	pipe.SRem(ctx, allWatchesKey, member)
	pipe.SRem(ctx, channelWatchesPrefix+input.ChannelID, input.CompetitionID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete watch: %w", err)
	}

	return nil
}

// ListWatches returns watches sorted by channel then competition
func (r *redisRepository) ListWatches(ctx context.Context, input *ListWatchesInput) (*ListWatchesOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var members []string
	if input.ChannelID != "" {
		competitionIDs, err := r.client.SMembers(ctx, channelWatchesPrefix+input.ChannelID).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to list channel watches: %w", err)
		}
		for _, competitionID := range competitionIDs {
			members = append(members, watchMember(input.ChannelID, competitionID))
		}
	} else {
		var err error
		members, err = r.client.SMembers(ctx, allWatchesKey).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to list watches: %w", err)
		}
	}
	sort.Strings(members)

	watches := make([]*models.Watch, 0, len(members))
	for _, member := range members {
		watch, err := r.getWatch(ctx, member)
		if err != nil {
			if errors.Is(err, ErrWatchNotFound) {
				// Stale index entry
				continue
			}
			return nil, err
		}
		watches = append(watches, watch)
	}

	return &ListWatchesOutput{
		Watches: watches,
	}, nil
}
