package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron/v2"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/lastman/internal/api"
	"github.com/KirkDiggler/lastman/internal/live"
	"github.com/KirkDiggler/lastman/internal/models"
	"github.com/KirkDiggler/lastman/internal/rules"
	"github.com/KirkDiggler/lastman/internal/services/competition"
)

// SchedulerError is a custom error type for scheduler errors
type SchedulerError string

// Error implements the error interface
func (e SchedulerError) Error() string {
	return string(e)
}

const (
	ErrNilConfig             SchedulerError = "config cannot be nil"
	ErrNilCompetitionService SchedulerError = "competition service cannot be nil"
	ErrNilNotifier           SchedulerError = "notifier cannot be nil"
)

const (
	defaultInterval    = time.Minute
	defaultConcurrency = 4

	// MessageTypeSnapshot is sent to live subscribers after every check
	MessageTypeSnapshot = "snapshot"
)

// Config holds configuration for the watch scheduler
type Config struct {
	CompetitionService competition.Service
	Notifier           Notifier

	// Broadcaster is optional
	Broadcaster Broadcaster

	// Interval between checks of every watch
	Interval time.Duration

	// Concurrency bounds how many watches are checked at once
	Concurrency int

	Logger *slog.Logger
}

// Scheduler periodically checks watched competitions and announces changes
type Scheduler struct {
	competitionService competition.Service
	notifier           Notifier
	broadcaster        Broadcaster
	interval           time.Duration
	concurrency        int
	logger             *slog.Logger

	cron   gocron.Scheduler
	ctx    context.Context
	cancel context.CancelFunc
}

// RunResult summarises one pass over the watches
type RunResult struct {
	Checked int
	Events  int
	Failed  int
}

// SnapshotPayload is the live feed summary of a competition
type SnapshotPayload struct {
	CompetitionID string    `json:"competition_id"`
	Status        string    `json:"status"`
	RoundNumber   int       `json:"round_number"`
	Locked        bool      `json:"locked"`
	Completed     bool      `json:"completed"`
	ActivePlayers int       `json:"active_players"`
	Fingerprint   string    `json:"fingerprint"`
	FetchedAt     time.Time `json:"fetched_at"`
}

// EventPayload is the live feed form of a watch event
type EventPayload struct {
	CompetitionID string   `json:"competition_id"`
	RoundNumber   int      `json:"round_number,omitempty"`
	Survivors     []string `json:"survivors,omitempty"`
	Error         string   `json:"error,omitempty"`
}

// New creates a scheduler. Start must be called to begin checking.
func New(cfg *Config) (*Scheduler, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.CompetitionService == nil {
		return nil, ErrNilCompetitionService
	}
	if cfg.Notifier == nil {
		return nil, ErrNilNotifier
	}

	interval := cfg.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Scheduler{
		competitionService: cfg.CompetitionService,
		notifier:           cfg.Notifier,
		broadcaster:        cfg.Broadcaster,
		interval:           interval,
		concurrency:        concurrency,
		logger:             logger.With("component", "scheduler"),
	}, nil
}

// Start schedules the periodic check
func (s *Scheduler) Start() error {
	cron, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	s.ctx, s.cancel = context.WithCancel(context.Background())

	_, err = cron.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(func() {
			result := s.RunOnce(s.ctx)
			if result.Checked > 0 {
				s.logger.Debug("watches checked",
					"checked", result.Checked,
					"events", result.Events,
					"failed", result.Failed,
				)
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithName("check-watches"),
	)
	if err != nil {
		s.cancel()
		return fmt.Errorf("failed to schedule watch check: %w", err)
	}

	s.cron = cron
	cron.Start()
	s.logger.Info("scheduler started", "interval", s.interval)
	return nil
}

// Stop cancels any running check and waits for the scheduler to stop
func (s *Scheduler) Stop() error {
	if s.cron == nil {
		return nil
	}
	s.cancel()
	return s.cron.Shutdown()
}

// RunOnce checks every watch once
func (s *Scheduler) RunOnce(ctx context.Context) RunResult {
	out, err := s.competitionService.ListWatches(ctx, &competition.ListWatchesInput{})
	if err != nil {
		s.logger.Error("failed to list watches", "error", err)
		return RunResult{Failed: 1}
	}

	var events, failed int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, watch := range out.Watches {
		g.Go(func() error {
			n, err := s.check(gctx, watch)
			if err != nil {
				atomic.AddInt64(&failed, 1)
				return nil
			}
			atomic.AddInt64(&events, int64(n))
			return nil
		})
	}
	_ = g.Wait()

	return RunResult{
		Checked: len(out.Watches),
		Events:  int(events),
		Failed:  int(failed),
	}
}

func (s *Scheduler) check(ctx context.Context, watch *models.Watch) (int, error) {
	logger := s.logger.With("channel_id", watch.ChannelID, "competition_id", watch.CompetitionID)

	out, err := s.competitionService.CheckWatch(ctx, &competition.CheckWatchInput{Watch: watch})
	if err != nil {
		switch {
		case errors.Is(err, competition.ErrStatusRegression):
			logger.Warn("watch check refused server snapshot, retrying next run", "error", err)
		case errors.Is(err, competition.ErrNotLinked), api.IsAuth(err):
			logger.Warn("watch owner must link again", "user_id", watch.UserID, "error", err)
		default:
			logger.Error("watch check failed", "error", err)
		}
		return 0, err
	}

	s.broadcastSnapshot(watch.CompetitionID, out)

	if len(out.Events) == 0 {
		return 0, nil
	}

	if err := s.notifier.Announce(ctx, &AnnounceInput{
		ChannelID: watch.ChannelID,
		Events:    out.Events,
	}); err != nil {
		logger.Error("failed to announce watch events", "events", len(out.Events), "error", err)
	}
	for _, e := range out.Events {
		s.broadcastEvent(watch.CompetitionID, e)
	}

	return len(out.Events), nil
}

func (s *Scheduler) broadcastSnapshot(competitionID string, out *competition.CheckWatchOutput) {
	if s.broadcaster == nil || out.Snapshot == nil {
		return
	}
	snapshot := out.Snapshot
	payload := &SnapshotPayload{
		CompetitionID: competitionID,
		RoundNumber:   out.Watch.RoundNumber,
		Locked:        out.Watch.Locked,
		Completed:     out.Watch.Completed,
		ActivePlayers: rules.CountActive(snapshot.Players),
		Fingerprint:   snapshot.Fingerprint,
		FetchedAt:     snapshot.FetchedAt,
	}
	if snapshot.Competition != nil {
		payload.Status = string(snapshot.Competition.Status)
	}
	s.broadcaster.BroadcastToRoom(live.CompetitionRoom(competitionID), &live.Message{
		Type:    MessageTypeSnapshot,
		Payload: payload,
	})
}

func (s *Scheduler) broadcastEvent(competitionID string, e *competition.WatchEvent) {
	if s.broadcaster == nil {
		return
	}
	payload := &EventPayload{CompetitionID: competitionID}
	if e.Round != nil {
		payload.RoundNumber = e.Round.RoundNumber
	}
	for _, p := range e.Survivors {
		payload.Survivors = append(payload.Survivors, p.DisplayName)
	}
	if e.Err != nil {
		payload.Error = e.Err.Error()
	}
	s.broadcaster.BroadcastToRoom(live.CompetitionRoom(competitionID), &live.Message{
		Type:    string(e.Kind),
		Payload: payload,
	})
}
