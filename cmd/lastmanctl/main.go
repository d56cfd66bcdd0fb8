package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"

	"github.com/KirkDiggler/lastman/internal/api"
	"github.com/KirkDiggler/lastman/internal/common/clock"
	"github.com/KirkDiggler/lastman/internal/common/uuid"
	"github.com/KirkDiggler/lastman/internal/export"
	mutationRepo "github.com/KirkDiggler/lastman/internal/repositories/mutation_ledger"
	sessionRepo "github.com/KirkDiggler/lastman/internal/repositories/session"
	snapshotRepo "github.com/KirkDiggler/lastman/internal/repositories/snapshot"
	"github.com/KirkDiggler/lastman/internal/services/competition"
)

func main() {
	app := newApp(os.Stdout, buildServices)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildServices(c *cli.Context) (*services, error) {
	apiURL := strings.TrimRight(c.String("api-url"), "/")
	if apiURL == "" {
		return nil, errors.New("--api-url or LASTMAN_API_URL is required")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	clk := &clock.DefaultClock{}
	uuidGenerator := uuid.New()

	redisClient := redis.NewClient(&redis.Options{Addr: c.String("redis-addr")})
	if err := redisClient.Ping(c.Context).Err(); err != nil {
		redisClient.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	snapshots, err := snapshotRepo.NewRedis(&snapshotRepo.Config{RedisClient: redisClient})
	if err != nil {
		redisClient.Close()
		return nil, err
	}
	sessions, err := sessionRepo.NewRedis(&sessionRepo.Config{RedisClient: redisClient})
	if err != nil {
		redisClient.Close()
		return nil, err
	}
	mutations, err := mutationRepo.NewRedis(&mutationRepo.Config{RedisClient: redisClient})
	if err != nil {
		redisClient.Close()
		return nil, err
	}

	apiClient, err := api.New(&api.Config{
		BaseURL:       apiURL,
		HTTPClient:    &http.Client{Timeout: c.Duration("timeout")},
		Logger:        logger,
		UUIDGenerator: uuidGenerator,
		Clock:         clk,
	})
	if err != nil {
		redisClient.Close()
		return nil, err
	}

	competitionSvc, err := competition.New(&competition.Config{
		APIClient:          apiClient,
		SnapshotRepo:       snapshots,
		SessionRepo:        sessions,
		MutationLedgerRepo: mutations,
		Clock:              clk,
		UUIDGenerator:      uuidGenerator,
		Logger:             logger,
	})
	if err != nil {
		redisClient.Close()
		return nil, err
	}

	exporter, err := export.New(&export.Config{
		CompetitionService: competitionSvc,
		Clock:              clk,
		Logger:             logger,
	})
	if err != nil {
		redisClient.Close()
		return nil, err
	}

	return &services{
		Competition: competitionSvc,
		Exporter:    exporter,
		Clock:       clk,
		Close:       redisClient.Close,
	}, nil
}
