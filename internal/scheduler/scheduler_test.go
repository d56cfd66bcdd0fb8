package scheduler_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/lastman/internal/live"
	"github.com/KirkDiggler/lastman/internal/models"
	"github.com/KirkDiggler/lastman/internal/scheduler"
	schedulerMocks "github.com/KirkDiggler/lastman/internal/scheduler/mocks"
	"github.com/KirkDiggler/lastman/internal/services/competition"
	competitionMocks "github.com/KirkDiggler/lastman/internal/services/competition/mocks"
)

type recordingBroadcaster struct {
	mu       sync.Mutex
	messages map[string][]*live.Message
}

func (b *recordingBroadcaster) BroadcastToRoom(room string, msg *live.Message) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.messages == nil {
		b.messages = make(map[string][]*live.Message)
	}
	b.messages[room] = append(b.messages[room], msg)
	return 1
}

func (b *recordingBroadcaster) types(room string) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []string
	for _, m := range b.messages[room] {
		out = append(out, m.Type)
	}
	return out
}

type SchedulerTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	mockService  *competitionMocks.MockService
	mockNotifier *schedulerMocks.MockNotifier
	broadcaster  *recordingBroadcaster
	scheduler    *scheduler.Scheduler
	ctx          context.Context
}

func (s *SchedulerTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockService = competitionMocks.NewMockService(s.mockCtrl)
	s.mockNotifier = schedulerMocks.NewMockNotifier(s.mockCtrl)
	s.broadcaster = &recordingBroadcaster{}
	s.ctx = context.Background()

	sched, err := scheduler.New(&scheduler.Config{
		CompetitionService: s.mockService,
		Notifier:           s.mockNotifier,
		Broadcaster:        s.broadcaster,
		Concurrency:        2,
		Logger:             slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	s.Require().NoError(err)
	s.scheduler = sched
}

func (s *SchedulerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSchedulerSuite(t *testing.T) {
	suite.Run(t, new(SchedulerTestSuite))
}

func snapshotFor(id string) *models.CompetitionSnapshot {
	return &models.CompetitionSnapshot{
		Competition: &models.Competition{ID: id, Name: "Office LMS", Status: models.CompetitionStatusActive},
		Players: []*models.Player{
			{ID: "p1", DisplayName: "Alice", Status: models.PlayerStatusActive},
			{ID: "p2", DisplayName: "Bob", Status: models.PlayerStatusEliminated},
		},
		Fingerprint: "abc123",
		FetchedAt:   time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC),
	}
}

func (s *SchedulerTestSuite) TestNewValidation() {
	_, err := scheduler.New(nil)
	s.ErrorIs(err, scheduler.ErrNilConfig)

	_, err = scheduler.New(&scheduler.Config{Notifier: s.mockNotifier})
	s.ErrorIs(err, scheduler.ErrNilCompetitionService)

	_, err = scheduler.New(&scheduler.Config{CompetitionService: s.mockService})
	s.ErrorIs(err, scheduler.ErrNilNotifier)
}

func (s *SchedulerTestSuite) TestRunOnceAnnouncesEvents() {
	watch := &models.Watch{ChannelID: "chan-1", CompetitionID: "comp-1", UserID: "u1"}
	updated := &models.Watch{ChannelID: "chan-1", CompetitionID: "comp-1", UserID: "u1", RoundNumber: 3, Locked: true}
	events := []*competition.WatchEvent{
		{Kind: competition.WatchEventRoundLocked, ChannelID: "chan-1", Round: &models.Round{RoundNumber: 3}},
	}

	s.mockService.EXPECT().ListWatches(gomock.Any(), &competition.ListWatchesInput{}).
		Return(&competition.ListWatchesOutput{Watches: []*models.Watch{watch}}, nil)
	s.mockService.EXPECT().CheckWatch(gomock.Any(), &competition.CheckWatchInput{Watch: watch}).
		Return(&competition.CheckWatchOutput{Watch: updated, Snapshot: snapshotFor("comp-1"), Events: events}, nil)
	s.mockNotifier.EXPECT().Announce(gomock.Any(), &scheduler.AnnounceInput{ChannelID: "chan-1", Events: events}).
		Return(nil)

	result := s.scheduler.RunOnce(s.ctx)
	s.Equal(scheduler.RunResult{Checked: 1, Events: 1}, result)

	room := live.CompetitionRoom("comp-1")
	s.Equal([]string{scheduler.MessageTypeSnapshot, string(competition.WatchEventRoundLocked)}, s.broadcaster.types(room))

	payload, ok := s.broadcaster.messages[room][0].Payload.(*scheduler.SnapshotPayload)
	s.Require().True(ok)
	s.Equal(3, payload.RoundNumber)
	s.True(payload.Locked)
	s.Equal(1, payload.ActivePlayers)
	s.Equal("ACTIVE", payload.Status)
	s.Equal("abc123", payload.Fingerprint)

	event, ok := s.broadcaster.messages[room][1].Payload.(*scheduler.EventPayload)
	s.Require().True(ok)
	s.Equal(3, event.RoundNumber)
}

func (s *SchedulerTestSuite) TestRunOnceWithoutEventsOnlyBroadcastsSnapshot() {
	watch := &models.Watch{ChannelID: "chan-1", CompetitionID: "comp-1", UserID: "u1"}

	s.mockService.EXPECT().ListWatches(gomock.Any(), gomock.Any()).
		Return(&competition.ListWatchesOutput{Watches: []*models.Watch{watch}}, nil)
	s.mockService.EXPECT().CheckWatch(gomock.Any(), gomock.Any()).
		Return(&competition.CheckWatchOutput{Watch: watch, Snapshot: snapshotFor("comp-1")}, nil)

	result := s.scheduler.RunOnce(s.ctx)
	s.Equal(scheduler.RunResult{Checked: 1}, result)
	s.Equal([]string{scheduler.MessageTypeSnapshot}, s.broadcaster.types(live.CompetitionRoom("comp-1")))
}

func (s *SchedulerTestSuite) TestRunOnceKeepsGoingAfterFailures() {
	broken := &models.Watch{ChannelID: "chan-1", CompetitionID: "comp-1", UserID: "u1"}
	regressed := &models.Watch{ChannelID: "chan-2", CompetitionID: "comp-2", UserID: "u2"}
	healthy := &models.Watch{ChannelID: "chan-3", CompetitionID: "comp-3", UserID: "u3"}
	done := []*competition.WatchEvent{
		{
			Kind:      competition.WatchEventCompetitionComplete,
			ChannelID: "chan-3",
			Survivors: []*models.Player{{DisplayName: "Bob"}},
		},
	}

	s.mockService.EXPECT().ListWatches(gomock.Any(), gomock.Any()).
		Return(&competition.ListWatchesOutput{Watches: []*models.Watch{broken, regressed, healthy}}, nil)
	s.mockService.EXPECT().CheckWatch(gomock.Any(), &competition.CheckWatchInput{Watch: broken}).
		Return(nil, competition.ErrNotLinked)
	s.mockService.EXPECT().CheckWatch(gomock.Any(), &competition.CheckWatchInput{Watch: regressed}).
		Return(nil, fmt.Errorf("%w: player p1 regressed", competition.ErrStatusRegression))
	s.mockService.EXPECT().CheckWatch(gomock.Any(), &competition.CheckWatchInput{Watch: healthy}).
		Return(&competition.CheckWatchOutput{Watch: healthy, Snapshot: snapshotFor("comp-3"), Events: done}, nil)
	s.mockNotifier.EXPECT().Announce(gomock.Any(), gomock.Any()).Return(errors.New("discord unavailable"))

	result := s.scheduler.RunOnce(s.ctx)
	s.Equal(scheduler.RunResult{Checked: 3, Events: 1, Failed: 2}, result)

	s.Empty(s.broadcaster.types(live.CompetitionRoom("comp-1")))
	s.Equal(
		[]string{scheduler.MessageTypeSnapshot, string(competition.WatchEventCompetitionComplete)},
		s.broadcaster.types(live.CompetitionRoom("comp-3")),
	)
	event := s.broadcaster.messages[live.CompetitionRoom("comp-3")][1].Payload.(*scheduler.EventPayload)
	s.Equal([]string{"Bob"}, event.Survivors)
}

func (s *SchedulerTestSuite) TestRunOnceListFailure() {
	s.mockService.EXPECT().ListWatches(gomock.Any(), gomock.Any()).Return(nil, errors.New("redis down"))

	s.Equal(scheduler.RunResult{Failed: 1}, s.scheduler.RunOnce(s.ctx))
}

func (s *SchedulerTestSuite) TestStartRunsOnInterval() {
	sched, err := scheduler.New(&scheduler.Config{
		CompetitionService: s.mockService,
		Notifier:           s.mockNotifier,
		Interval:           20 * time.Millisecond,
		Logger:             slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	s.Require().NoError(err)

	called := make(chan struct{}, 1)
	s.mockService.EXPECT().ListWatches(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *competition.ListWatchesInput) (*competition.ListWatchesOutput, error) {
			select {
			case called <- struct{}{}:
			default:
			}
			return &competition.ListWatchesOutput{}, nil
		}).MinTimes(1)

	s.Require().NoError(sched.Start())
	select {
	case <-called:
	case <-time.After(2 * time.Second):
		s.Fail("scheduled check never ran")
	}
	s.NoError(sched.Stop())
}
