package competition

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/lastman/internal/api"
	apiMocks "github.com/KirkDiggler/lastman/internal/api/mocks"
	"github.com/KirkDiggler/lastman/internal/common/clock/mocks"
	uuidMocks "github.com/KirkDiggler/lastman/internal/common/uuid/mocks"
	"github.com/KirkDiggler/lastman/internal/models"
	mutationRepo "github.com/KirkDiggler/lastman/internal/repositories/mutation_ledger"
	mutationMocks "github.com/KirkDiggler/lastman/internal/repositories/mutation_ledger/mocks"
	sessionRepo "github.com/KirkDiggler/lastman/internal/repositories/session"
	sessionMocks "github.com/KirkDiggler/lastman/internal/repositories/session/mocks"
	snapshotRepo "github.com/KirkDiggler/lastman/internal/repositories/snapshot"
	snapshotMocks "github.com/KirkDiggler/lastman/internal/repositories/snapshot/mocks"
)

type CompetitionServiceTestSuite struct {
	suite.Suite
	mockCtrl         *gomock.Controller
	mockAPI          *apiMocks.MockClient
	mockSnapshotRepo *snapshotMocks.MockRepository
	mockSessionRepo  *sessionMocks.MockRepository
	mockMutationRepo *mutationMocks.MockRepository
	mockClock        *mocks.MockClock
	mockUUID         *uuidMocks.MockUUID
	service          Service
	ctx              context.Context

	// Test data
	testTime          time.Time
	testUserID        string
	testCompetitionID string
	testChannelID     string

	// Reusable test fixtures
	session  *models.Session
	snapshot *models.CompetitionSnapshot
	caller   Caller
}

func (s *CompetitionServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockAPI = apiMocks.NewMockClient(s.mockCtrl)
	s.mockSnapshotRepo = snapshotMocks.NewMockRepository(s.mockCtrl)
	s.mockSessionRepo = sessionMocks.NewMockRepository(s.mockCtrl)
	s.mockMutationRepo = mutationMocks.NewMockRepository(s.mockCtrl)
	s.mockClock = mocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)
	s.ctx = context.Background()

	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.testUserID = "discord-alice"
	s.testCompetitionID = "comp-1"
	s.testChannelID = "chan-1"

	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()

	svc, err := New(&Config{
		SnapshotTTL:        time.Minute,
		APIClient:          s.mockAPI,
		SnapshotRepo:       s.mockSnapshotRepo,
		SessionRepo:        s.mockSessionRepo,
		MutationLedgerRepo: s.mockMutationRepo,
		Clock:              s.mockClock,
		UUIDGenerator:      s.mockUUID,
		Logger:             slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	s.Require().NoError(err)
	s.service = svc

	s.session = &models.Session{
		UserID:      s.testUserID,
		APIUserID:   "alice",
		DisplayName: "Alice",
		Token:       "tok",
		CreatedAt:   s.testTime.Add(-time.Hour),
		ExpiresAt:   s.testTime.Add(24 * time.Hour),
	}
	s.caller = Caller{UserID: s.testUserID}

	lock := s.testTime.Add(2 * time.Hour)
	s.snapshot = &models.CompetitionSnapshot{
		Competition: &models.Competition{
			ID:           s.testCompetitionID,
			Name:         "Office LMS",
			Status:       models.CompetitionStatusActive,
			CurrentRound: 3,
			IsOrganiser:  true,
		},
		Round: &models.Round{ID: "round-3", CompetitionID: s.testCompetitionID, RoundNumber: 3, LockTime: &lock},
		Fixtures: []*models.Fixture{
			{ID: "fx-1", RoundID: "round-3", HomeTeamShort: "AVL", AwayTeamShort: "ARS"},
			{ID: "fx-2", RoundID: "round-3", HomeTeamShort: "LIV", AwayTeamShort: "CHE"},
		},
		RoundInfo: &models.RoundInfo{},
		Players: []*models.Player{
			{ID: "carol", DisplayName: "Carol", LivesRemaining: 1, Status: models.PlayerStatusActive, CurrentPick: "LIV"},
			{ID: "alice", DisplayName: "Alice", LivesRemaining: 2, Status: models.PlayerStatusActive, CurrentPick: "ARS"},
			{ID: "bob", DisplayName: "Bob", LivesRemaining: 1, Status: models.PlayerStatusActive, CurrentPick: "CHE"},
			{ID: "dave", DisplayName: "Dave", LivesRemaining: 0, Status: models.PlayerStatusEliminated},
		},
		FetchedAt:   s.testTime.Add(-30 * time.Second),
		Fingerprint: "fp-1",
	}
}

func (s *CompetitionServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCompetitionServiceSuite(t *testing.T) {
	suite.Run(t, new(CompetitionServiceTestSuite))
}

func (s *CompetitionServiceTestSuite) expectSession() {
	s.mockSessionRepo.EXPECT().
		GetSession(gomock.Any(), &sessionRepo.GetSessionInput{UserID: s.testUserID}).
		Return(s.session, nil)
}

func (s *CompetitionServiceTestSuite) expectCached(snapshot *models.CompetitionSnapshot) {
	s.mockSnapshotRepo.EXPECT().
		GetSnapshot(gomock.Any(), &snapshotRepo.GetSnapshotInput{UserID: s.testUserID, CompetitionID: s.testCompetitionID}).
		Return(snapshot.Clone(), nil)
}

func (s *CompetitionServiceTestSuite) expectCacheMiss() {
	s.mockSnapshotRepo.EXPECT().
		GetSnapshot(gomock.Any(), &snapshotRepo.GetSnapshotInput{UserID: s.testUserID, CompetitionID: s.testCompetitionID}).
		Return(nil, snapshotRepo.ErrSnapshotNotFound)
}

func (s *CompetitionServiceTestSuite) expectNoPending() {
	s.mockMutationRepo.EXPECT().
		GetPendingMutations(gomock.Any(), &mutationRepo.GetPendingMutationsInput{
			CompetitionID: s.testCompetitionID,
			MaxAge:        defaultPendingMutationMaxAge,
			Now:           s.testTime,
		}).
		Return(&mutationRepo.GetPendingMutationsOutput{Mutations: []*models.Mutation{}}, nil)
}

// expectFetch sets up the three API reads and the cache write of one load
func (s *CompetitionServiceTestSuite) expectFetch(snapshot *models.CompetitionSnapshot) {
	fresh := snapshot.Clone()
	s.mockAPI.EXPECT().GetCompetition(gomock.Any(), gomock.Any()).
		Return(&api.GetCompetitionOutput{Competition: fresh.Competition}, nil)
	if fresh.Round == nil {
		s.mockAPI.EXPECT().GetCurrentRound(gomock.Any(), gomock.Any()).
			Return(&api.GetCurrentRoundOutput{NoRounds: true}, nil)
	} else {
		s.mockAPI.EXPECT().GetCurrentRound(gomock.Any(), gomock.Any()).
			Return(&api.GetCurrentRoundOutput{Round: fresh.Round, Fixtures: fresh.Fixtures, RoundInfo: fresh.RoundInfo}, nil)
	}
	s.mockAPI.EXPECT().GetStandings(gomock.Any(), gomock.Any()).
		Return(&api.GetStandingsOutput{Players: fresh.Players}, nil)
	s.expectNoPending()
	s.mockSnapshotRepo.EXPECT().SaveSnapshot(gomock.Any(), gomock.Any()).Return(nil)
}

func (s *CompetitionServiceTestSuite) expectInvalidate() {
	s.mockSnapshotRepo.EXPECT().
		InvalidateSnapshots(gomock.Any(), &snapshotRepo.InvalidateSnapshotsInput{CompetitionID: s.testCompetitionID}).
		Return(nil)
}

func (s *CompetitionServiceTestSuite) lockRound(snapshot *models.CompetitionSnapshot) {
	lock := s.testTime.Add(-2 * time.Hour)
	snapshot.Round.LockTime = &lock
}

func (s *CompetitionServiceTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{})
	s.ErrorIs(err, ErrNilAPIClient)

	_, err = New(&Config{APIClient: s.mockAPI, SnapshotRepo: s.mockSnapshotRepo, SessionRepo: s.mockSessionRepo, MutationLedgerRepo: s.mockMutationRepo})
	s.ErrorIs(err, ErrNilClock)
}

func (s *CompetitionServiceTestSuite) TestLinkWithCredentials() {
	expires := s.testTime.Add(6 * time.Hour)
	s.mockAPI.EXPECT().
		Login(gomock.Any(), &api.LoginInput{Email: "alice@example.com", Password: "pw"}).
		Return(&api.LoginOutput{Token: "tok", UserID: "alice", DisplayName: "Alice", ExpiresAt: expires}, nil)

	s.mockSessionRepo.EXPECT().
		SaveSession(gomock.Any(), &sessionRepo.SaveSessionInput{
			Session: &models.Session{
				UserID:      s.testUserID,
				APIUserID:   "alice",
				DisplayName: "Alice",
				Token:       "tok",
				CreatedAt:   s.testTime,
				ExpiresAt:   expires,
			},
			TTL: 6 * time.Hour,
		}).
		Return(nil)

	out, err := s.service.Link(s.ctx, &LinkInput{UserID: s.testUserID, Email: "alice@example.com", Password: "pw"})
	s.Require().NoError(err)
	s.Equal("alice", out.Session.APIUserID)
}

func (s *CompetitionServiceTestSuite) TestLinkRejectedTokenIsNotStored() {
	s.mockAPI.EXPECT().GetCompetitions(gomock.Any(), gomock.Any()).
		Return(nil, &api.Error{Code: api.CodeUnauthorized, Category: api.CategoryAuth})

	_, err := s.service.Link(s.ctx, &LinkInput{UserID: s.testUserID, Token: "opaque"})
	s.True(api.IsAuth(err))
}

func (s *CompetitionServiceTestSuite) TestLinkRequiresCredentials() {
	_, err := s.service.Link(s.ctx, &LinkInput{UserID: s.testUserID})
	s.ErrorIs(err, ErrInvalidInput)
}

func (s *CompetitionServiceTestSuite) TestNotLinked() {
	s.mockSessionRepo.EXPECT().GetSession(gomock.Any(), gomock.Any()).Return(nil, sessionRepo.ErrSessionNotFound)

	_, err := s.service.ListCompetitions(s.ctx, &ListCompetitionsInput{Caller: s.caller})
	s.ErrorIs(err, ErrNotLinked)
}

func (s *CompetitionServiceTestSuite) TestExpiredSessionIsDropped() {
	expired := *s.session
	expired.ExpiresAt = s.testTime
	s.mockSessionRepo.EXPECT().GetSession(gomock.Any(), gomock.Any()).Return(&expired, nil)
	s.mockSessionRepo.EXPECT().DeleteSession(gomock.Any(), &sessionRepo.DeleteSessionInput{UserID: s.testUserID}).Return(nil)

	_, err := s.service.ListCompetitions(s.ctx, &ListCompetitionsInput{Caller: s.caller})
	s.True(api.IsAuth(err))
}

func (s *CompetitionServiceTestSuite) TestUnauthorizedResponseDropsSession() {
	s.expectSession()
	s.mockAPI.EXPECT().GetCompetitions(gomock.Any(), &api.GetCompetitionsInput{Session: s.session}).
		Return(nil, &api.Error{Code: api.CodeUnauthorized, Category: api.CategoryAuth})
	s.mockSessionRepo.EXPECT().DeleteSession(gomock.Any(), &sessionRepo.DeleteSessionInput{UserID: s.testUserID}).Return(nil)

	_, err := s.service.ListCompetitions(s.ctx, &ListCompetitionsInput{Caller: s.caller})
	s.True(api.IsAuth(err))
}

func (s *CompetitionServiceTestSuite) TestExplicitSessionIsNeverDropped() {
	explicit := &models.Session{UserID: "http:abc", Token: "tok"}
	s.mockAPI.EXPECT().GetCompetitions(gomock.Any(), &api.GetCompetitionsInput{Session: explicit}).
		Return(nil, &api.Error{Code: api.CodeUnauthorized, Category: api.CategoryAuth})

	_, err := s.service.ListCompetitions(s.ctx, &ListCompetitionsInput{Caller: Caller{Session: explicit}})
	s.True(api.IsAuth(err))
}

func (s *CompetitionServiceTestSuite) TestGetRoundViewServedFromCache() {
	s.expectSession()
	s.expectCached(s.snapshot)

	out, err := s.service.GetRoundView(s.ctx, &GetRoundViewInput{Caller: s.caller, CompetitionID: s.testCompetitionID})
	s.Require().NoError(err)
	s.False(out.NoRounds)
	s.False(out.Locked)
	s.False(out.Completed)
	s.Equal(models.PickResultPending, out.MyOutcome)
	s.Require().NotNil(out.Me)
	s.Equal("ARS", out.Me.CurrentPick)
	s.Equal(3, out.ActivePlayers)
}

func (s *CompetitionServiceTestSuite) TestGetRoundViewFetchesOnMiss() {
	s.lockRound(s.snapshot)
	s.snapshot.Fixtures[0].Result = "ARS"

	s.expectSession()
	s.expectCacheMiss()
	s.expectFetch(s.snapshot)

	out, err := s.service.GetRoundView(s.ctx, &GetRoundViewInput{Caller: s.caller, CompetitionID: s.testCompetitionID})
	s.Require().NoError(err)
	s.True(out.Locked)
	s.Equal(models.PickResultWin, out.MyOutcome)
	s.Equal(s.testTime, out.FetchedAt)
}

func (s *CompetitionServiceTestSuite) TestGetRoundViewNoRounds() {
	s.snapshot.Round = nil
	s.snapshot.Fixtures = nil
	s.snapshot.RoundInfo = nil
	s.snapshot.Competition.Status = models.CompetitionStatusSetup

	s.expectSession()
	s.expectCacheMiss()
	s.expectFetch(s.snapshot)

	out, err := s.service.GetRoundView(s.ctx, &GetRoundViewInput{Caller: s.caller, CompetitionID: s.testCompetitionID})
	s.Require().NoError(err)
	s.True(out.NoRounds)
	s.False(out.Locked)
}

func (s *CompetitionServiceTestSuite) TestGetStandingsHidesOtherPicksBeforeLock() {
	s.expectSession()
	s.expectCached(s.snapshot)

	out, err := s.service.GetStandings(s.ctx, &GetStandingsInput{Caller: s.caller, CompetitionID: s.testCompetitionID})
	s.Require().NoError(err)
	s.Equal(3, out.ActiveCount)
	s.Equal(1, out.EliminatedCount)
	s.False(out.Page.Paginated)

	items := out.Page.Items
	s.Require().Len(items, 4)
	s.Equal("alice", items[0].Player.ID)
	s.True(items[0].PickVisible)
	s.Equal("ARS", items[0].Player.CurrentPick)

	// Three active players: everyone else's pick stays hidden
	s.Equal("bob", items[1].Player.ID)
	s.False(items[1].PickVisible)
	s.Empty(items[1].Player.CurrentPick)
	s.Equal("carol", items[2].Player.ID)
	s.Empty(items[2].Player.CurrentPick)
	s.Equal("dave", items[3].Player.ID)
}

func (s *CompetitionServiceTestSuite) TestGetStandingsShowsPicksAfterLock() {
	s.lockRound(s.snapshot)
	s.expectSession()
	s.expectCached(s.snapshot)

	out, err := s.service.GetStandings(s.ctx, &GetStandingsInput{Caller: s.caller, CompetitionID: s.testCompetitionID})
	s.Require().NoError(err)
	s.True(out.Locked)
	for _, item := range out.Page.Items[:3] {
		s.True(item.PickVisible, item.Player.ID)
		s.NotEmpty(item.Player.CurrentPick, item.Player.ID)
	}
}

func (s *CompetitionServiceTestSuite) TestGetStandingsPageResetsWhenPlayersChange() {
	for i := 0; i < 60; i++ {
		s.snapshot.Players = append(s.snapshot.Players, &models.Player{
			ID:             "p" + string(rune('A'+i%26)) + string(rune('a'+i/26)),
			DisplayName:    "Player " + string(rune('A'+i%26)) + string(rune('a'+i/26)),
			LivesRemaining: 1,
			Status:         models.PlayerStatusActive,
		})
	}

	s.expectSession()
	s.expectCached(s.snapshot)
	out, err := s.service.GetStandings(s.ctx, &GetStandingsInput{Caller: s.caller, CompetitionID: s.testCompetitionID, ViewID: "msg-1", Page: 2})
	s.Require().NoError(err)
	s.True(out.Page.Paginated)
	s.Equal(2, out.Page.Page)
	s.Equal(3, out.Page.TotalPages)

	changed := s.snapshot.Clone()
	changed.Fingerprint = "fp-2"
	s.expectSession()
	s.expectCached(changed)
	out, err = s.service.GetStandings(s.ctx, &GetStandingsInput{Caller: s.caller, CompetitionID: s.testCompetitionID, ViewID: "msg-1", Page: 3})
	s.Require().NoError(err)
	s.Equal(1, out.Page.Page)
}

func (s *CompetitionServiceTestSuite) TestForgetViewDropsPageCursor() {
	for i := 0; i < 60; i++ {
		s.snapshot.Players = append(s.snapshot.Players, &models.Player{
			ID:             fmt.Sprintf("p%02d", i),
			DisplayName:    fmt.Sprintf("Player %02d", i),
			LivesRemaining: 1,
			Status:         models.PlayerStatusActive,
		})
	}

	s.expectSession()
	s.expectCached(s.snapshot)
	_, err := s.service.GetStandings(s.ctx, &GetStandingsInput{Caller: s.caller, CompetitionID: s.testCompetitionID, ViewID: "msg-1", Page: 2})
	s.Require().NoError(err)

	_, err = s.service.ForgetView(s.ctx, &ForgetViewInput{ViewID: "msg-1"})
	s.Require().NoError(err)

	// With the cursor gone a changed table no longer resets the page
	changed := s.snapshot.Clone()
	changed.Fingerprint = "fp-2"
	s.expectSession()
	s.expectCached(changed)
	out, err := s.service.GetStandings(s.ctx, &GetStandingsInput{Caller: s.caller, CompetitionID: s.testCompetitionID, ViewID: "msg-1", Page: 3})
	s.Require().NoError(err)
	s.Equal(3, out.Page.Page)

	_, err = s.service.ForgetView(s.ctx, &ForgetViewInput{})
	s.ErrorIs(err, ErrInvalidInput)
}

func (s *CompetitionServiceTestSuite) TestGetPlayerResultsHidesCurrentRoundPick() {
	s.snapshot.Players[2].History = []*models.RoundHistoryEntry{
		{RoundID: "round-1", RoundNumber: 1, PickTeam: "LIV", FixtureResult: "LIV", PickResult: models.PickResultWin},
		{RoundID: "round-2", RoundNumber: 2, PickTeam: "AVL", FixtureResult: models.ResultDraw, PickResult: models.PickResultDraw},
		{RoundID: "round-3", RoundNumber: 3, PickTeam: "CHE", PickResult: models.PickResultPending},
	}

	s.expectSession()
	s.expectCached(s.snapshot)

	out, err := s.service.GetPlayerResults(s.ctx, &GetPlayerResultsInput{Caller: s.caller, CompetitionID: s.testCompetitionID, PlayerID: "bob"})
	s.Require().NoError(err)
	s.Require().Len(out.Results, 3)
	s.Equal(models.PickResultWin, out.Results[0].Outcome)
	s.Equal(models.PickResultLoss, out.Results[1].Outcome)
	s.True(out.Results[2].Hidden)
	s.Empty(out.Results[2].Entry.PickTeam)
	s.Empty(out.Player.CurrentPick)
	s.Equal(33, out.Stats.WinRate)
}

func (s *CompetitionServiceTestSuite) TestGetPlayerResultsUnknownPlayer() {
	s.expectSession()
	s.expectCached(s.snapshot)

	_, err := s.service.GetPlayerResults(s.ctx, &GetPlayerResultsInput{Caller: s.caller, CompetitionID: s.testCompetitionID, PlayerID: "zed"})
	s.ErrorIs(err, ErrPlayerNotFound)
}

func (s *CompetitionServiceTestSuite) TestSubmitPick() {
	s.expectSession()
	s.expectCached(s.snapshot)
	s.mockAPI.EXPECT().
		SubmitPick(gomock.Any(), &api.SubmitPickInput{Session: s.session, CompetitionID: s.testCompetitionID, RoundID: "round-3", Team: "AVL"}).
		Return(&api.SubmitPickOutput{Message: "Pick saved"}, nil)
	s.expectInvalidate()

	out, err := s.service.SubmitPick(s.ctx, &SubmitPickInput{Caller: s.caller, CompetitionID: s.testCompetitionID, Team: " avl "})
	s.Require().NoError(err)
	s.Equal("AVL", out.Team)
	s.Equal("fx-1", out.Fixture.ID)
}

func (s *CompetitionServiceTestSuite) TestSubmitPickAfterLockNeverCallsAPI() {
	s.lockRound(s.snapshot)
	s.expectSession()
	s.expectCached(s.snapshot)

	_, err := s.service.SubmitPick(s.ctx, &SubmitPickInput{Caller: s.caller, CompetitionID: s.testCompetitionID, Team: "AVL"})
	s.ErrorIs(err, ErrRoundLocked)
}

func (s *CompetitionServiceTestSuite) TestSubmitPickServerSaysLocked() {
	s.expectSession()
	s.expectCached(s.snapshot)
	s.mockAPI.EXPECT().SubmitPick(gomock.Any(), gomock.Any()).
		Return(nil, &api.Error{Code: api.CodeRoundLocked, Message: "round locked", Category: api.CategoryFailure})
	s.expectInvalidate()

	_, err := s.service.SubmitPick(s.ctx, &SubmitPickInput{Caller: s.caller, CompetitionID: s.testCompetitionID, Team: "AVL"})
	s.ErrorIs(err, ErrRoundLocked)
	s.Equal(api.CodeRoundLocked, api.CodeOf(err))
}

func (s *CompetitionServiceTestSuite) TestSubmitPickTeamNotInRound() {
	s.expectSession()
	s.expectCached(s.snapshot)

	_, err := s.service.SubmitPick(s.ctx, &SubmitPickInput{Caller: s.caller, CompetitionID: s.testCompetitionID, Team: "TOT"})
	s.ErrorIs(err, ErrTeamNotInRound)
}

func (s *CompetitionServiceTestSuite) TestSubmitPickEliminated() {
	s.snapshot.Players[1].Status = models.PlayerStatusEliminated
	s.expectSession()
	s.expectCached(s.snapshot)

	_, err := s.service.SubmitPick(s.ctx, &SubmitPickInput{Caller: s.caller, CompetitionID: s.testCompetitionID, Team: "AVL"})
	s.ErrorIs(err, ErrPlayerEliminated)
}

func (s *CompetitionServiceTestSuite) TestSetFixtureResultConfirmed() {
	s.expectSession()
	s.expectCached(s.snapshot)
	s.expectNoPending()
	s.mockUUID.EXPECT().NewUUID().Return("mut-1")

	s.mockMutationRepo.EXPECT().AddMutation(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in *mutationRepo.AddMutationInput) error {
			s.Equal(models.MutationStatePending, in.Mutation.State)
			s.Equal("", in.Mutation.Previous)
			s.Equal("ARS", in.Mutation.Proposed)
			s.Equal("fx-1", in.Mutation.TargetID)
			return nil
		})

	var shown []string
	s.mockSnapshotRepo.EXPECT().SaveSnapshot(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in *snapshotRepo.SaveSnapshotInput) error {
			shown = append(shown, in.Snapshot.Fixture("fx-1").Result)
			return nil
		})

	s.mockAPI.EXPECT().
		SetFixtureResult(gomock.Any(), &api.SetFixtureResultInput{Session: s.session, FixtureID: "fx-1", Result: "ARS"}).
		Return(&api.SetFixtureResultOutput{}, nil)

	s.mockMutationRepo.EXPECT().
		ResolveMutation(gomock.Any(), &mutationRepo.ResolveMutationInput{MutationID: "mut-1", State: models.MutationStateConfirmed, ResolvedAt: s.testTime}).
		Return(&models.Mutation{ID: "mut-1", State: models.MutationStateConfirmed}, nil)
	s.expectInvalidate()

	out, err := s.service.SetFixtureResult(s.ctx, &SetFixtureResultInput{Caller: s.caller, CompetitionID: s.testCompetitionID, FixtureID: "fx-1", Result: "ars"})
	s.Require().NoError(err)
	s.Equal("ARS", out.Fixture.Result)
	s.Equal(models.MutationStateConfirmed, out.Mutation.State)
	s.Equal([]string{"ARS"}, shown)
}

func (s *CompetitionServiceTestSuite) TestSetFixtureResultRollsBackExactly() {
	s.snapshot.Fixtures[0].Result = "AVL"

	s.expectSession()
	s.expectCached(s.snapshot)
	s.expectNoPending()
	s.mockUUID.EXPECT().NewUUID().Return("mut-1")
	s.mockMutationRepo.EXPECT().AddMutation(gomock.Any(), gomock.Any()).Return(nil)

	var shown []string
	s.mockSnapshotRepo.EXPECT().SaveSnapshot(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in *snapshotRepo.SaveSnapshotInput) error {
			shown = append(shown, in.Snapshot.Fixture("fx-1").Result)
			return nil
		}).Times(2)

	s.mockAPI.EXPECT().SetFixtureResult(gomock.Any(), gomock.Any()).
		Return(nil, &api.Error{Code: api.CodeValidationError, Message: "fixture already processed", Category: api.CategoryFailure})

	s.mockMutationRepo.EXPECT().ResolveMutation(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in *mutationRepo.ResolveMutationInput) (*models.Mutation, error) {
			s.Equal(models.MutationStateReverted, in.State)
			s.Contains(in.Reason, "fixture already processed")
			return &models.Mutation{ID: "mut-1", State: in.State}, nil
		})

	_, err := s.service.SetFixtureResult(s.ctx, &SetFixtureResultInput{Caller: s.caller, CompetitionID: s.testCompetitionID, FixtureID: "fx-1", Result: models.ResultDraw})
	s.Require().Error(err)
	s.Equal(api.CategoryRollback, api.CategoryOf(err))
	s.Equal([]string{models.ResultDraw, "AVL"}, shown)
}

func (s *CompetitionServiceTestSuite) TestSetFixtureResultGuards() {
	s.Run("not organiser", func() {
		notOrganiser := s.snapshot.Clone()
		notOrganiser.Competition.IsOrganiser = false
		s.expectSession()
		s.expectCached(notOrganiser)

		_, err := s.service.SetFixtureResult(s.ctx, &SetFixtureResultInput{Caller: s.caller, CompetitionID: s.testCompetitionID, FixtureID: "fx-1", Result: "ARS"})
		s.ErrorIs(err, ErrNotOrganiser)
	})

	s.Run("invalid result", func() {
		s.expectSession()
		s.expectCached(s.snapshot)

		_, err := s.service.SetFixtureResult(s.ctx, &SetFixtureResultInput{Caller: s.caller, CompetitionID: s.testCompetitionID, FixtureID: "fx-1", Result: "LIV"})
		s.ErrorIs(err, ErrInvalidResult)
	})

	s.Run("change already in flight", func() {
		s.expectSession()
		s.expectCached(s.snapshot)
		s.mockMutationRepo.EXPECT().GetPendingMutations(gomock.Any(), gomock.Any()).
			Return(&mutationRepo.GetPendingMutationsOutput{Mutations: []*models.Mutation{{ID: "mut-0", TargetID: "fx-1"}}}, nil)

		_, err := s.service.SetFixtureResult(s.ctx, &SetFixtureResultInput{Caller: s.caller, CompetitionID: s.testCompetitionID, FixtureID: "fx-1", Result: "ARS"})
		s.ErrorIs(err, ErrMutationPending)
	})
}

func (s *CompetitionServiceTestSuite) TestProcessResultsOutcomes() {
	for _, code := range []api.ReturnCode{api.CodeNewRoundCreated, api.CodeCompetitionComplete} {
		s.expectSession()
		s.expectCached(s.snapshot)
		s.expectNoPending()
		s.mockAPI.EXPECT().ProcessResults(gomock.Any(), gomock.Any()).
			Return(&api.ProcessResultsOutput{Code: code, Processed: 2, Eliminated: 1, NewRoundNumber: 4}, nil)
		s.expectInvalidate()

		out, err := s.service.ProcessResults(s.ctx, &ProcessResultsInput{Caller: s.caller, CompetitionID: s.testCompetitionID})
		s.Require().NoError(err)
		s.Equal(code, out.Code)
		s.NoError(out.Divergence)
	}

	s.expectSession()
	s.expectCached(s.snapshot)
	s.expectNoPending()
	s.mockAPI.EXPECT().ProcessResults(gomock.Any(), gomock.Any()).
		Return(&api.ProcessResultsOutput{Code: api.CodeNoResultsToProcess}, nil)

	out, err := s.service.ProcessResults(s.ctx, &ProcessResultsInput{Caller: s.caller, CompetitionID: s.testCompetitionID})
	s.Require().NoError(err)
	s.Equal(api.CodeNoResultsToProcess, out.Code)
}

func (s *CompetitionServiceTestSuite) TestProcessResultsDetectsDivergence() {
	s.lockRound(s.snapshot)
	s.snapshot.Fixtures[0].Result = "ARS"
	s.snapshot.Fixtures[1].Result = models.ResultDraw
	s.snapshot.RoundInfo = &models.RoundInfo{IsLocked: true}

	s.expectSession()
	s.expectCached(s.snapshot)
	s.expectNoPending()
	s.mockAPI.EXPECT().ProcessResults(gomock.Any(), gomock.Any()).
		Return(&api.ProcessResultsOutput{Code: api.CodeSuccess, Processed: 2}, nil)
	s.expectInvalidate()

	// Server still reports the round unprocessed after the reload
	s.expectCacheMiss()
	s.expectFetch(s.snapshot)

	out, err := s.service.ProcessResults(s.ctx, &ProcessResultsInput{Caller: s.caller, CompetitionID: s.testCompetitionID})
	s.Require().NoError(err)
	s.ErrorIs(out.Divergence, ErrProcessingDivergence)
}

func (s *CompetitionServiceTestSuite) TestProcessResultsWaitsForPendingChanges() {
	s.expectSession()
	s.expectCached(s.snapshot)
	s.mockMutationRepo.EXPECT().GetPendingMutations(gomock.Any(), gomock.Any()).
		Return(&mutationRepo.GetPendingMutationsOutput{Mutations: []*models.Mutation{{ID: "mut-1"}}}, nil)

	_, err := s.service.ProcessResults(s.ctx, &ProcessResultsInput{Caller: s.caller, CompetitionID: s.testCompetitionID})
	s.ErrorIs(err, ErrMutationPending)
}

func (s *CompetitionServiceTestSuite) TestCreateRound() {
	lock := s.testTime.Add(72 * time.Hour)

	s.expectSession()
	s.expectCached(s.snapshot)
	s.mockAPI.EXPECT().
		CreateRound(gomock.Any(), &api.CreateRoundInput{Session: s.session, CompetitionID: s.testCompetitionID, LockTime: lock}).
		Return(&api.CreateRoundOutput{Round: &models.Round{ID: "round-4", RoundNumber: 4, LockTime: &lock}}, nil)
	s.expectInvalidate()

	out, err := s.service.CreateRound(s.ctx, &CreateRoundInput{Caller: s.caller, CompetitionID: s.testCompetitionID, LockTime: lock})
	s.Require().NoError(err)
	s.Equal(4, out.Round.RoundNumber)

	_, err = s.service.CreateRound(s.ctx, &CreateRoundInput{Caller: s.caller, CompetitionID: s.testCompetitionID, LockTime: s.testTime})
	s.ErrorIs(err, ErrLockTimeInPast)
}

func (s *CompetitionServiceTestSuite) TestRefreshRefusesStatusRegression() {
	cached := s.snapshot.Clone()
	cached.Players[2].Status = models.PlayerStatusEliminated
	cached.Players[2].LivesRemaining = 0

	s.expectSession()
	s.expectCached(cached)
	s.mockAPI.EXPECT().GetCompetition(gomock.Any(), gomock.Any()).Return(&api.GetCompetitionOutput{Competition: s.snapshot.Competition}, nil)
	s.mockAPI.EXPECT().GetCurrentRound(gomock.Any(), gomock.Any()).
		Return(&api.GetCurrentRoundOutput{Round: s.snapshot.Round, Fixtures: s.snapshot.Fixtures, RoundInfo: s.snapshot.RoundInfo}, nil)
	s.mockAPI.EXPECT().GetStandings(gomock.Any(), gomock.Any()).Return(&api.GetStandingsOutput{Players: s.snapshot.Players}, nil)
	s.expectNoPending()
	s.expectInvalidate()

	_, err := s.service.Refresh(s.ctx, &RefreshInput{Caller: s.caller, CompetitionID: s.testCompetitionID})
	s.ErrorIs(err, ErrStatusRegression)
}

func (s *CompetitionServiceTestSuite) TestRefreshOverlaysPendingResults() {
	s.expectSession()
	s.expectCacheMiss()
	s.mockAPI.EXPECT().GetCompetition(gomock.Any(), gomock.Any()).Return(&api.GetCompetitionOutput{Competition: s.snapshot.Competition}, nil)
	s.mockAPI.EXPECT().GetCurrentRound(gomock.Any(), gomock.Any()).
		Return(&api.GetCurrentRoundOutput{Round: s.snapshot.Round, Fixtures: s.snapshot.Fixtures, RoundInfo: s.snapshot.RoundInfo}, nil)
	s.mockAPI.EXPECT().GetStandings(gomock.Any(), gomock.Any()).Return(&api.GetStandingsOutput{Players: s.snapshot.Players}, nil)
	s.mockMutationRepo.EXPECT().GetPendingMutations(gomock.Any(), gomock.Any()).
		Return(&mutationRepo.GetPendingMutationsOutput{Mutations: []*models.Mutation{
			{ID: "mut-1", TargetID: "fx-2", Kind: models.MutationKindFixtureResult, Proposed: "LIV", State: models.MutationStatePending},
		}}, nil)
	s.mockSnapshotRepo.EXPECT().SaveSnapshot(gomock.Any(), gomock.Any()).Return(nil)

	out, err := s.service.Refresh(s.ctx, &RefreshInput{Caller: s.caller, CompetitionID: s.testCompetitionID})
	s.Require().NoError(err)
	s.Equal("LIV", out.Snapshot.Fixture("fx-2").Result)
	s.NotEmpty(out.Snapshot.Fingerprint)
}

func (s *CompetitionServiceTestSuite) TestRefreshCompetitionNotFound() {
	s.expectSession()
	s.expectCacheMiss()
	notFound := &api.Error{Code: api.CodeNotFound, Category: api.CategoryFailure}
	s.mockAPI.EXPECT().GetCompetition(gomock.Any(), gomock.Any()).Return(nil, notFound)
	s.mockAPI.EXPECT().GetCurrentRound(gomock.Any(), gomock.Any()).Return(nil, notFound)
	s.mockAPI.EXPECT().GetStandings(gomock.Any(), gomock.Any()).Return(nil, notFound)

	_, err := s.service.Refresh(s.ctx, &RefreshInput{Caller: s.caller, CompetitionID: s.testCompetitionID})
	s.ErrorIs(err, ErrCompetitionNotFound)
}

func (s *CompetitionServiceTestSuite) TestWatchStartsFromCurrentState() {
	s.lockRound(s.snapshot)
	s.expectSession()
	s.expectCached(s.snapshot)
	s.mockSnapshotRepo.EXPECT().SaveWatch(gomock.Any(), &snapshotRepo.SaveWatchInput{Watch: &models.Watch{
		ChannelID:     s.testChannelID,
		CompetitionID: s.testCompetitionID,
		UserID:        s.testUserID,
		RoundNumber:   3,
		Locked:        true,
		CreatedAt:     s.testTime,
	}}).Return(nil)

	out, err := s.service.Watch(s.ctx, &WatchInput{UserID: s.testUserID, ChannelID: s.testChannelID, CompetitionID: s.testCompetitionID})
	s.Require().NoError(err)
	s.True(out.Watch.Locked)
}

func (s *CompetitionServiceTestSuite) TestCheckWatchAnnouncesLock() {
	watch := &models.Watch{ChannelID: s.testChannelID, CompetitionID: s.testCompetitionID, UserID: s.testUserID, RoundNumber: 3}
	s.lockRound(s.snapshot)

	s.expectSession()
	s.expectCacheMiss()
	s.expectFetch(s.snapshot)
	s.mockSnapshotRepo.EXPECT().SaveWatch(gomock.Any(), gomock.Any()).Return(nil)

	out, err := s.service.CheckWatch(s.ctx, &CheckWatchInput{Watch: watch})
	s.Require().NoError(err)
	s.Require().Len(out.Events, 1)
	s.Equal(WatchEventRoundLocked, out.Events[0].Kind)
	s.True(out.Watch.Locked)
	s.False(watch.Locked, "input watch is not modified")
}

func (s *CompetitionServiceTestSuite) TestCheckWatchNewRoundAndCompletion() {
	watch := &models.Watch{ChannelID: s.testChannelID, CompetitionID: s.testCompetitionID, UserID: s.testUserID, RoundNumber: 2, Locked: true}

	s.expectSession()
	s.expectCacheMiss()
	s.expectFetch(s.snapshot)
	s.mockSnapshotRepo.EXPECT().SaveWatch(gomock.Any(), gomock.Any()).Return(nil)

	out, err := s.service.CheckWatch(s.ctx, &CheckWatchInput{Watch: watch})
	s.Require().NoError(err)
	s.Require().Len(out.Events, 1)
	s.Equal(WatchEventNewRound, out.Events[0].Kind)

	// The competition finishes with one survivor
	finished := s.snapshot.Clone()
	finished.Competition.Status = models.CompetitionStatusComplete
	for _, p := range finished.Players[:2] {
		p.Status = models.PlayerStatusEliminated
	}
	s.expectSession()
	s.expectCached(s.snapshot)
	s.expectFetch(finished)
	s.mockSnapshotRepo.EXPECT().SaveWatch(gomock.Any(), gomock.Any()).Return(nil)

	out, err = s.service.CheckWatch(s.ctx, &CheckWatchInput{Watch: out.Watch})
	s.Require().NoError(err)
	s.Require().Len(out.Events, 1)
	s.Equal(WatchEventCompetitionComplete, out.Events[0].Kind)
	s.Require().Len(out.Events[0].Survivors, 1)
	s.Equal("bob", out.Events[0].Survivors[0].ID)
}

func (s *CompetitionServiceTestSuite) TestCheckWatchDivergence() {
	watch := &models.Watch{ChannelID: s.testChannelID, CompetitionID: s.testCompetitionID, UserID: s.testUserID, RoundNumber: 3, Locked: true}
	processed := s.testTime.Add(-time.Hour)
	s.lockRound(s.snapshot)
	for _, f := range s.snapshot.Fixtures {
		f.Result = models.ResultDraw
		f.Processed = &processed
	}
	s.snapshot.RoundInfo = &models.RoundInfo{IsLocked: true, AllProcessed: false}

	s.expectSession()
	s.expectCacheMiss()
	s.expectFetch(s.snapshot)
	s.mockSnapshotRepo.EXPECT().SaveWatch(gomock.Any(), gomock.Any()).Return(nil)

	out, err := s.service.CheckWatch(s.ctx, &CheckWatchInput{Watch: watch})
	s.Require().NoError(err)

	kinds := make([]WatchEventKind, 0, len(out.Events))
	for _, e := range out.Events {
		kinds = append(kinds, e.Kind)
		if e.Kind == WatchEventDivergence {
			s.ErrorIs(e.Err, ErrProcessingDivergence)
		}
	}
	s.Equal([]WatchEventKind{WatchEventDivergence, WatchEventRoundCompleted}, kinds)
}

func (s *CompetitionServiceTestSuite) TestCheckWatchNothingChanged() {
	watch := &models.Watch{ChannelID: s.testChannelID, CompetitionID: s.testCompetitionID, UserID: s.testUserID, RoundNumber: 3}

	s.expectSession()
	s.expectCacheMiss()
	s.expectFetch(s.snapshot)

	out, err := s.service.CheckWatch(s.ctx, &CheckWatchInput{Watch: watch})
	s.Require().NoError(err)
	s.Empty(out.Events)
}

func (s *CompetitionServiceTestSuite) TestUnwatch() {
	s.mockSnapshotRepo.EXPECT().GetWatch(gomock.Any(), gomock.Any()).Return(nil, snapshotRepo.ErrWatchNotFound)

	_, err := s.service.Unwatch(s.ctx, &UnwatchInput{ChannelID: s.testChannelID, CompetitionID: s.testCompetitionID})
	s.ErrorIs(err, ErrWatchNotFound)

	s.mockSnapshotRepo.EXPECT().GetWatch(gomock.Any(), gomock.Any()).Return(&models.Watch{}, nil)
	s.mockSnapshotRepo.EXPECT().
		DeleteWatch(gomock.Any(), &snapshotRepo.DeleteWatchInput{ChannelID: s.testChannelID, CompetitionID: s.testCompetitionID}).
		Return(nil)

	_, err = s.service.Unwatch(s.ctx, &UnwatchInput{ChannelID: s.testChannelID, CompetitionID: s.testCompetitionID})
	s.NoError(err)
}

func (s *CompetitionServiceTestSuite) TestJoinCompetition() {
	s.expectSession()
	s.mockAPI.EXPECT().
		JoinCompetition(gomock.Any(), &api.JoinCompetitionInput{Session: s.session, InviteCode: "ab12"}).
		Return(&api.JoinCompetitionOutput{Competition: &models.Competition{ID: s.testCompetitionID, Name: "Office LMS"}}, nil)
	s.expectInvalidate()

	out, err := s.service.JoinCompetition(s.ctx, &JoinCompetitionInput{Caller: s.caller, InviteCode: "ab12"})
	s.Require().NoError(err)
	s.Equal("Office LMS", out.Competition.Name)
}

func (s *CompetitionServiceTestSuite) TestTransportErrorKeepsSession() {
	s.expectSession()
	s.mockAPI.EXPECT().GetCompetitions(gomock.Any(), gomock.Any()).
		Return(nil, &api.Error{Category: api.CategoryTransport, Err: errors.New("connection refused")})

	_, err := s.service.ListCompetitions(s.ctx, &ListCompetitionsInput{Caller: s.caller})
	s.Equal(api.CategoryTransport, api.CategoryOf(err))
}

func (s *CompetitionServiceTestSuite) TestSetFixtureResultPreviewsLives() {
	s.lockRound(s.snapshot)
	s.expectSession()
	s.expectCached(s.snapshot)
	s.expectNoPending()
	s.mockUUID.EXPECT().NewUUID().Return("mut-1")
	s.mockMutationRepo.EXPECT().AddMutation(gomock.Any(), gomock.Any()).Return(nil)
	s.mockSnapshotRepo.EXPECT().SaveSnapshot(gomock.Any(), gomock.Any()).Return(nil)
	s.mockAPI.EXPECT().SetFixtureResult(gomock.Any(), gomock.Any()).Return(&api.SetFixtureResultOutput{}, nil)
	s.mockMutationRepo.EXPECT().ResolveMutation(gomock.Any(), gomock.Any()).
		Return(&models.Mutation{ID: "mut-1", State: models.MutationStateConfirmed}, nil)
	s.expectInvalidate()

	out, err := s.service.SetFixtureResult(s.ctx, &SetFixtureResultInput{Caller: s.caller, CompetitionID: s.testCompetitionID, FixtureID: "fx-2", Result: models.ResultDraw})
	s.Require().NoError(err)

	// Carol picked LIV and Bob picked CHE; both are on their last life
	s.Require().Len(out.Preview, 2)
	for _, p := range out.Preview {
		s.Equal(models.PickResultLoss, p.Outcome, p.Before.ID)
		s.Equal(1, p.Before.LivesRemaining, p.Before.ID)
		s.Equal(0, p.After.LivesRemaining, p.Before.ID)
		s.Equal(models.PlayerStatusEliminated, p.After.Status, p.Before.ID)
	}
	s.Equal("carol", out.Preview[0].Before.ID)
	s.Equal("bob", out.Preview[1].Before.ID)
}

func (s *CompetitionServiceTestSuite) TestSetFixtureResultResolvesAfterCallerCancels() {
	mr := miniredis.RunT(s.T())
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	ledger, err := mutationRepo.NewRedis(&mutationRepo.Config{RedisClient: client})
	s.Require().NoError(err)

	svc, err := New(&Config{
		APIClient:          s.mockAPI,
		SnapshotRepo:       s.mockSnapshotRepo,
		SessionRepo:        s.mockSessionRepo,
		MutationLedgerRepo: ledger,
		Clock:              s.mockClock,
		UUIDGenerator:      s.mockUUID,
		Logger:             slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	s.Require().NoError(err)

	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	s.expectSession()
	s.expectCached(s.snapshot)
	s.mockUUID.EXPECT().NewUUID().Return("mut-1")

	var saveErrs []error
	s.mockSnapshotRepo.EXPECT().SaveSnapshot(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ *snapshotRepo.SaveSnapshotInput) error {
			saveErrs = append(saveErrs, ctx.Err())
			return ctx.Err()
		}).Times(2)

	// The chat interaction times out while the API call is in flight
	s.mockAPI.EXPECT().SetFixtureResult(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *api.SetFixtureResultInput) (*api.SetFixtureResultOutput, error) {
			cancel()
			return nil, &api.Error{Code: "TRANSPORT_ERROR", Category: api.CategoryTransport, Err: context.Canceled}
		})

	_, err = svc.SetFixtureResult(ctx, &SetFixtureResultInput{Caller: s.caller, CompetitionID: s.testCompetitionID, FixtureID: "fx-1", Result: "ARS"})
	s.Require().Error(err)
	s.Equal(api.CategoryRollback, api.CategoryOf(err))
	s.Equal([]error{nil, nil}, saveErrs, "the rollback is written even though the caller is gone")

	pending, err := ledger.GetPendingMutations(context.Background(), &mutationRepo.GetPendingMutationsInput{CompetitionID: s.testCompetitionID})
	s.Require().NoError(err)
	s.Empty(pending.Mutations)

	mutation, err := ledger.GetMutation(context.Background(), &mutationRepo.GetMutationInput{MutationID: "mut-1"})
	s.Require().NoError(err)
	s.Equal(models.MutationStateReverted, mutation.State)
}

func (s *CompetitionServiceTestSuite) TestSetFixtureResultReloadsAfterAbandonedChange() {
	// The organiser's cache still shows a change whose API call never answered
	stale := s.snapshot.Clone()
	stale.Fixtures[0].Result = "AVL"

	s.expectSession()
	s.expectCached(stale)
	s.mockMutationRepo.EXPECT().GetPendingMutations(gomock.Any(), gomock.Any()).
		Return(&mutationRepo.GetPendingMutationsOutput{
			Mutations: []*models.Mutation{},
			Expired:   []*models.Mutation{{ID: "mut-0", TargetID: "fx-1", Proposed: "AVL", State: models.MutationStateReverted}},
		}, nil)
	s.expectInvalidate()
	s.expectCached(stale)
	s.expectFetch(s.snapshot)

	s.mockUUID.EXPECT().NewUUID().Return("mut-1")
	s.mockMutationRepo.EXPECT().AddMutation(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in *mutationRepo.AddMutationInput) error {
			s.Equal("", in.Mutation.Previous, "previous comes from the server, not the abandoned change")
			return nil
		})
	s.mockSnapshotRepo.EXPECT().SaveSnapshot(gomock.Any(), gomock.Any()).Return(nil)
	s.mockAPI.EXPECT().SetFixtureResult(gomock.Any(), gomock.Any()).Return(&api.SetFixtureResultOutput{}, nil)
	s.mockMutationRepo.EXPECT().ResolveMutation(gomock.Any(), gomock.Any()).
		Return(&models.Mutation{ID: "mut-1", State: models.MutationStateConfirmed}, nil)
	s.expectInvalidate()

	out, err := s.service.SetFixtureResult(s.ctx, &SetFixtureResultInput{Caller: s.caller, CompetitionID: s.testCompetitionID, FixtureID: "fx-1", Result: "ARS"})
	s.Require().NoError(err)
	s.Equal("ARS", out.Fixture.Result)
}

func (s *CompetitionServiceTestSuite) TestConcurrentRefreshesShareOneFetch() {
	started := make(chan struct{})
	release := make(chan struct{})

	s.mockSessionRepo.EXPECT().
		GetSession(gomock.Any(), &sessionRepo.GetSessionInput{UserID: s.testUserID}).
		Return(s.session, nil).Times(2)
	s.mockSnapshotRepo.EXPECT().GetSnapshot(gomock.Any(), gomock.Any()).
		Return(s.snapshot.Clone(), nil).Times(2)

	s.mockAPI.EXPECT().GetCompetition(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *api.GetCompetitionInput) (*api.GetCompetitionOutput, error) {
			close(started)
			<-release
			return &api.GetCompetitionOutput{Competition: s.snapshot.Clone().Competition}, nil
		})
	s.mockAPI.EXPECT().GetCurrentRound(gomock.Any(), gomock.Any()).
		Return(&api.GetCurrentRoundOutput{Round: s.snapshot.Round, Fixtures: s.snapshot.Fixtures, RoundInfo: s.snapshot.RoundInfo}, nil)
	s.mockAPI.EXPECT().GetStandings(gomock.Any(), gomock.Any()).
		Return(&api.GetStandingsOutput{Players: s.snapshot.Clone().Players}, nil)
	s.expectNoPending()
	s.mockSnapshotRepo.EXPECT().SaveSnapshot(gomock.Any(), gomock.Any()).Return(nil)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	outs := make([]*RefreshOutput, 2)
	refresh := func(i int) {
		defer wg.Done()
		outs[i], errs[i] = s.service.Refresh(s.ctx, &RefreshInput{Caller: s.caller, CompetitionID: s.testCompetitionID})
	}

	wg.Add(1)
	go refresh(0)
	<-started

	wg.Add(1)
	go refresh(1)
	// Let the second caller join the in-flight fetch
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for i := range errs {
		s.Require().NoError(errs[i], "caller %d", i)
		s.Equal("Office LMS", outs[i].Snapshot.Competition.Name)
	}
	s.NotSame(outs[0].Snapshot, outs[1].Snapshot)
}

func (s *CompetitionServiceTestSuite) TestGetStandingsOnlyNewestRequestPerMessage() {
	started := make(chan struct{})
	release := make(chan struct{})
	defer func() {
		select {
		case <-release:
		default:
			close(release)
		}
	}()

	s.mockSessionRepo.EXPECT().GetSession(gomock.Any(), gomock.Any()).Return(s.session, nil).Times(2)
	s.mockSnapshotRepo.EXPECT().GetSnapshot(gomock.Any(), gomock.Any()).Return(nil, snapshotRepo.ErrSnapshotNotFound)
	s.mockAPI.EXPECT().GetCompetition(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *api.GetCompetitionInput) (*api.GetCompetitionOutput, error) {
			close(started)
			<-release
			return &api.GetCompetitionOutput{Competition: s.snapshot.Clone().Competition}, nil
		})
	s.mockAPI.EXPECT().GetCurrentRound(gomock.Any(), gomock.Any()).
		Return(&api.GetCurrentRoundOutput{Round: s.snapshot.Round, Fixtures: s.snapshot.Fixtures, RoundInfo: s.snapshot.RoundInfo}, nil)
	s.mockAPI.EXPECT().GetStandings(gomock.Any(), gomock.Any()).
		Return(&api.GetStandingsOutput{Players: s.snapshot.Clone().Players}, nil)
	s.expectNoPending()

	saved := make(chan struct{})
	s.mockSnapshotRepo.EXPECT().SaveSnapshot(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *snapshotRepo.SaveSnapshotInput) error {
			close(saved)
			return nil
		})

	firstErr := make(chan error, 1)
	go func() {
		_, err := s.service.GetStandings(s.ctx, &GetStandingsInput{Caller: s.caller, CompetitionID: s.testCompetitionID, ViewID: "msg-1", Page: 2})
		firstErr <- err
	}()
	<-started

	// A second click on the same message is served from the newer cache entry
	s.mockSnapshotRepo.EXPECT().GetSnapshot(gomock.Any(), gomock.Any()).Return(s.snapshot.Clone(), nil)
	out, err := s.service.GetStandings(s.ctx, &GetStandingsInput{Caller: s.caller, CompetitionID: s.testCompetitionID, ViewID: "msg-1", Page: 1})
	s.Require().NoError(err)
	s.Equal(1, out.Page.Page)

	s.ErrorIs(<-firstErr, ErrSuperseded)

	// The abandoned fetch still completes for the cache
	close(release)
	<-saved
}

func (s *CompetitionServiceTestSuite) TestRefreshLabelsMissingStatus() {
	unlabelled := s.snapshot.Clone()
	unlabelled.Competition.Status = ""

	s.expectSession()
	s.expectCacheMiss()
	s.expectFetch(unlabelled)

	out, err := s.service.Refresh(s.ctx, &RefreshInput{Caller: s.caller, CompetitionID: s.testCompetitionID})
	s.Require().NoError(err)
	s.Equal(models.CompetitionStatusActive, out.Snapshot.Competition.Status)

	noRounds := s.snapshot.Clone()
	noRounds.Competition.Status = "PAUSED"
	noRounds.Round = nil

	s.expectSession()
	s.expectCacheMiss()
	s.expectFetch(noRounds)

	out, err = s.service.Refresh(s.ctx, &RefreshInput{Caller: s.caller, CompetitionID: s.testCompetitionID})
	s.Require().NoError(err)
	s.Equal(models.CompetitionStatusSetup, out.Snapshot.Competition.Status)

	// A status the server does know about is never overridden
	s.expectSession()
	s.expectCacheMiss()
	s.expectFetch(s.snapshot)

	out, err = s.service.Refresh(s.ctx, &RefreshInput{Caller: s.caller, CompetitionID: s.testCompetitionID})
	s.Require().NoError(err)
	s.Equal(models.CompetitionStatusActive, out.Snapshot.Competition.Status)
}
