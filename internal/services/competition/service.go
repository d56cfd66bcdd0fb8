package competition

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/KirkDiggler/lastman/internal/api"
	"github.com/KirkDiggler/lastman/internal/common/clock"
	"github.com/KirkDiggler/lastman/internal/common/uuid"
	"github.com/KirkDiggler/lastman/internal/models"
	mutationRepo "github.com/KirkDiggler/lastman/internal/repositories/mutation_ledger"
	sessionRepo "github.com/KirkDiggler/lastman/internal/repositories/session"
	snapshotRepo "github.com/KirkDiggler/lastman/internal/repositories/snapshot"
	"github.com/KirkDiggler/lastman/internal/rules"
	"github.com/KirkDiggler/lastman/internal/view"
)

const (
	defaultSnapshotTTL           = 2 * time.Minute
	defaultPendingMutationMaxAge = 2 * time.Minute
)

// service implements the Service interface
type service struct {
	snapshotTTL   time.Duration
	pendingMaxAge time.Duration
	pageOptions   rules.PageOptions

	apiClient    api.Client
	snapshotRepo snapshotRepo.Repository
	sessionRepo  sessionRepo.Repository
	mutationRepo mutationRepo.Repository

	clock         clock.Clock
	uuidGenerator uuid.UUID
	logger        *slog.Logger

	guard   *view.Guard
	tracker *view.Tracker
	pager   *view.Pager
}

// New creates a new competition service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.APIClient == nil {
		return nil, ErrNilAPIClient
	}
	if cfg.SnapshotRepo == nil {
		return nil, ErrNilSnapshotRepo
	}
	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}
	if cfg.MutationLedgerRepo == nil {
		return nil, ErrNilMutationRepo
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	ttl := cfg.SnapshotTTL
	if ttl <= 0 {
		ttl = defaultSnapshotTTL
	}
	pendingMaxAge := cfg.PendingMutationMaxAge
	if pendingMaxAge <= 0 {
		pendingMaxAge = defaultPendingMutationMaxAge
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &service{
		snapshotTTL:   ttl,
		pendingMaxAge: pendingMaxAge,
		pageOptions:   cfg.PageOptions,
		apiClient:     cfg.APIClient,
		snapshotRepo:  cfg.SnapshotRepo,
		sessionRepo:   cfg.SessionRepo,
		mutationRepo:  cfg.MutationLedgerRepo,
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
		logger:        logger.With("component", "competition"),
		guard:         view.NewGuard(),
		tracker:       view.NewTracker(),
		pager:         view.NewPager(cfg.PagerCapacity),
	}, nil
}

// Link stores an API session for a chat user
func (s *service) Link(ctx context.Context, input *LinkInput) (*LinkOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, ErrInvalidInput
	}

	now := s.clock.Now()

	var session *models.Session
	if input.Token != "" {
		session = api.SessionFromToken(input.UserID, input.Token, now)
		if session.Expired(now) {
			return nil, api.ErrSessionExpired
		}

		// Prove the token works before storing it
		if _, err := s.apiClient.GetCompetitions(ctx, &api.GetCompetitionsInput{Session: session}); err != nil {
			return nil, err
		}
	} else {
		if input.Email == "" || input.Password == "" {
			return nil, ErrInvalidInput
		}
		out, err := s.apiClient.Login(ctx, &api.LoginInput{
			Email:    input.Email,
			Password: input.Password,
		})
		if err != nil {
			return nil, err
		}
		session = &models.Session{
			UserID:      input.UserID,
			APIUserID:   out.UserID,
			DisplayName: out.DisplayName,
			Token:       out.Token,
			CreatedAt:   now,
			ExpiresAt:   out.ExpiresAt,
		}
		if session.Expired(now) {
			return nil, api.ErrSessionExpired
		}
	}

	var ttl time.Duration
	if !session.ExpiresAt.IsZero() {
		ttl = session.ExpiresAt.Sub(now)
	}

	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{
		Session: session,
		TTL:     ttl,
	}); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.logger.Info("user linked", "user_id", input.UserID, "api_user_id", session.APIUserID)

	return &LinkOutput{
		Session: session,
	}, nil
}

// Unlink forgets a chat user's session
func (s *service) Unlink(ctx context.Context, input *UnlinkInput) (*UnlinkOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, ErrInvalidInput
	}

	if err := s.sessionRepo.DeleteSession(ctx, &sessionRepo.DeleteSessionInput{
		UserID: input.UserID,
	}); err != nil {
		return nil, fmt.Errorf("failed to delete session: %w", err)
	}

	return &UnlinkOutput{}, nil
}

// ListCompetitions lists the caller's competitions
func (s *service) ListCompetitions(ctx context.Context, input *ListCompetitionsInput) (*ListCompetitionsOutput, error) {
	if input == nil {
		return nil, ErrInvalidInput
	}

	session, err := s.resolveSession(ctx, input.Caller)
	if err != nil {
		return nil, err
	}

	out, err := s.apiClient.GetCompetitions(ctx, &api.GetCompetitionsInput{Session: session})
	if err != nil {
		return nil, s.checkAuth(ctx, input.Caller, err)
	}

	return &ListCompetitionsOutput{
		Competitions: out.Competitions,
	}, nil
}

// Refresh reloads a competition from the API
func (s *service) Refresh(ctx context.Context, input *RefreshInput) (*RefreshOutput, error) {
	if input == nil || input.CompetitionID == "" {
		return nil, ErrInvalidInput
	}

	session, err := s.resolveSession(ctx, input.Caller)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.loadSnapshot(ctx, input.Caller, session, input.CompetitionID, true)
	if err != nil {
		return nil, err
	}

	return &RefreshOutput{
		Snapshot: snapshot,
	}, nil
}

// GetRoundView returns the current round as the caller sees it
func (s *service) GetRoundView(ctx context.Context, input *GetRoundViewInput) (*GetRoundViewOutput, error) {
	if input == nil || input.CompetitionID == "" {
		return nil, ErrInvalidInput
	}

	session, err := s.resolveSession(ctx, input.Caller)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.loadSnapshot(ctx, input.Caller, session, input.CompetitionID, input.Refresh)
	if err != nil {
		return nil, err
	}

	out := &GetRoundViewOutput{
		Competition:   snapshot.Competition,
		NoRounds:      snapshot.Round == nil,
		Round:         snapshot.Round,
		Fixtures:      snapshot.Fixtures,
		ActivePlayers: rules.CountActive(snapshot.Players),
		FetchedAt:     snapshot.FetchedAt,
	}
	if out.NoRounds {
		return out, nil
	}

	out.Locked = s.isLocked(snapshot)
	out.Completed = rules.IsRoundCompleted(snapshot.Competition.Status, snapshot.Fixtures, out.Locked, snapshot.RoundInfo)

	if me := snapshot.Player(session.APIUserID); me != nil {
		out.Me = me
		out.MyOutcome = rules.ClassifyPick(snapshot.Fixtures, me.CurrentPick, out.Locked)
	}

	return out, nil
}

// GetStandings returns one page of the standings table
func (s *service) GetStandings(ctx context.Context, input *GetStandingsInput) (*GetStandingsOutput, error) {
	if input == nil || input.CompetitionID == "" {
		return nil, ErrInvalidInput
	}

	session, err := s.resolveSession(ctx, input.Caller)
	if err != nil {
		return nil, err
	}

	// A paged message only shows the newest request made against it
	loadCtx := ctx
	var ticket *view.Ticket
	if input.ViewID != "" {
		ticket = s.tracker.Begin(ctx, view.Key{Resource: "standings-view", ID: input.ViewID})
		defer ticket.Done()
		loadCtx = ticket.Context()
	}

	snapshot, err := s.loadSnapshot(loadCtx, input.Caller, session, input.CompetitionID, input.Refresh)
	if err != nil {
		if ticket != nil && ctx.Err() == nil && loadCtx.Err() != nil {
			return nil, ErrSuperseded
		}
		return nil, err
	}

	locked := s.isLocked(snapshot)
	standings := rules.BuildStandings(snapshot.Players, session.APIUserID)
	rules.ApplyVisibility(standings, locked, session.APIUserID)

	all := make([]*models.PlayerStanding, 0, len(standings.Active)+len(standings.Eliminated))
	all = append(all, standings.Active...)
	all = append(all, standings.Eliminated...)
	for _, standing := range all {
		if !standing.PickVisible {
			standing.Player.CurrentPick = ""
		}
	}

	page := input.Page
	if ticket != nil && !s.tracker.Commit(ticket, func() {
		page = s.pager.Resolve(input.ViewID, snapshot.Fingerprint, page)
	}) {
		return nil, ErrSuperseded
	}

	return &GetStandingsOutput{
		Competition:     snapshot.Competition,
		Locked:          locked,
		Page:            rules.Paginate(all, page, s.pageOptions),
		ActiveCount:     len(standings.Active),
		EliminatedCount: len(standings.Eliminated),
		Fingerprint:     snapshot.Fingerprint,
		FetchedAt:       snapshot.FetchedAt,
	}, nil
}

// ForgetView drops the page cursor of a standings message that went away
func (s *service) ForgetView(_ context.Context, input *ForgetViewInput) (*ForgetViewOutput, error) {
	if input == nil || input.ViewID == "" {
		return nil, ErrInvalidInput
	}

	s.tracker.Cancel(view.Key{Resource: "standings-view", ID: input.ViewID})
	s.pager.Forget(input.ViewID)

	return &ForgetViewOutput{}, nil
}

// GetPlayerResults returns a player's round-by-round history
func (s *service) GetPlayerResults(ctx context.Context, input *GetPlayerResultsInput) (*GetPlayerResultsOutput, error) {
	if input == nil || input.CompetitionID == "" {
		return nil, ErrInvalidInput
	}

	session, err := s.resolveSession(ctx, input.Caller)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.loadSnapshot(ctx, input.Caller, session, input.CompetitionID, false)
	if err != nil {
		return nil, err
	}

	playerID := input.PlayerID
	if playerID == "" {
		playerID = session.APIUserID
	}
	player := snapshot.Player(playerID)
	if player == nil {
		return nil, ErrPlayerNotFound
	}

	locked := s.isLocked(snapshot)
	active := rules.CountActive(snapshot.Players)
	currentRound := 0
	if snapshot.Round != nil {
		currentRound = snapshot.Round.RoundNumber
	}

	results := make([]*PlayerResult, 0, len(player.History))
	for _, entry := range player.History {
		result := &PlayerResult{
			Entry:   entry,
			Outcome: rules.NormalizeEntry(entry),
		}
		if entry.RoundNumber == currentRound && !rules.IsPickVisible(locked, session.APIUserID, player.ID, active) {
			hidden := *entry
			hidden.PickTeam = ""
			hidden.Fixture = ""
			result.Entry = &hidden
			result.Hidden = true
		}
		results = append(results, result)
	}

	if !rules.IsPickVisible(locked, session.APIUserID, player.ID, active) {
		player.CurrentPick = ""
	}

	return &GetPlayerResultsOutput{
		Player:  player,
		Results: results,
		Stats:   rules.ComputeStats(player),
	}, nil
}

// SubmitPick picks a team for the current round
func (s *service) SubmitPick(ctx context.Context, input *SubmitPickInput) (*SubmitPickOutput, error) {
	if input == nil || input.CompetitionID == "" {
		return nil, ErrInvalidInput
	}
	team := strings.ToUpper(strings.TrimSpace(input.Team))
	if team == "" {
		return nil, ErrInvalidInput
	}

	session, err := s.resolveSession(ctx, input.Caller)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.loadSnapshot(ctx, input.Caller, session, input.CompetitionID, false)
	if err != nil {
		return nil, err
	}

	if snapshot.Competition.Status.IsComplete() {
		return nil, ErrCompetitionComplete
	}
	if snapshot.Round == nil {
		return nil, ErrNoRounds
	}
	// Picks are immutable once the round locks
	if s.isLocked(snapshot) {
		return nil, ErrRoundLocked
	}

	fixture := rules.FixtureForTeam(snapshot.Fixtures, team)
	if fixture == nil {
		return nil, ErrTeamNotInRound
	}
	if me := snapshot.Player(session.APIUserID); me != nil && !me.IsActive() {
		return nil, ErrPlayerEliminated
	}

	out, err := s.apiClient.SubmitPick(ctx, &api.SubmitPickInput{
		Session:       session,
		CompetitionID: input.CompetitionID,
		RoundID:       snapshot.Round.ID,
		Team:          team,
	})
	if err != nil {
		if api.CodeOf(err) == api.CodeRoundLocked {
			// Our lock time was stale
			s.invalidate(ctx, input.CompetitionID)
			return nil, fmt.Errorf("%w: %w", ErrRoundLocked, err)
		}
		return nil, s.checkAuth(ctx, input.Caller, err)
	}

	s.invalidate(ctx, input.CompetitionID)

	s.logger.Info("pick submitted",
		"competition_id", input.CompetitionID,
		"round", snapshot.Round.RoundNumber,
		"user_id", session.UserID,
	)

	return &SubmitPickOutput{
		Round:   snapshot.Round,
		Fixture: fixture,
		Team:    team,
		Message: out.Message,
	}, nil
}

// SetFixtureResult shows the new result immediately and rolls it back exactly
// if the API rejects it.
func (s *service) SetFixtureResult(ctx context.Context, input *SetFixtureResultInput) (*SetFixtureResultOutput, error) {
	if input == nil || input.CompetitionID == "" || input.FixtureID == "" {
		return nil, ErrInvalidInput
	}
	result := strings.ToUpper(strings.TrimSpace(input.Result))

	session, err := s.resolveSession(ctx, input.Caller)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.loadSnapshot(ctx, input.Caller, session, input.CompetitionID, false)
	if err != nil {
		return nil, err
	}
	if !snapshot.Competition.IsOrganiser {
		return nil, ErrNotOrganiser
	}

	fixture := snapshot.Fixture(input.FixtureID)
	if fixture == nil {
		return nil, ErrFixtureNotFound
	}
	if !fixture.ValidResult(result) {
		return nil, ErrInvalidResult
	}

	pending, err := s.pendingMutations(ctx, input.CompetitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending mutations: %w", err)
	}
	for _, m := range pending.Mutations {
		if m.TargetID == fixture.ID {
			return nil, ErrMutationPending
		}
	}
	if len(pending.Expired) > 0 {
		// The cached copy may still show an abandoned result
		s.invalidate(ctx, input.CompetitionID)
		if snapshot, err = s.loadSnapshot(ctx, input.Caller, session, input.CompetitionID, true); err != nil {
			return nil, err
		}
		if fixture = snapshot.Fixture(input.FixtureID); fixture == nil {
			return nil, ErrFixtureNotFound
		}
	}

	value := view.NewOptimistic(fixture.Result)
	if err := value.Apply(result); err != nil {
		return nil, err
	}

	mutation := &models.Mutation{
		ID:            s.uuidGenerator.NewUUID(),
		CompetitionID: input.CompetitionID,
		TargetID:      fixture.ID,
		Kind:          models.MutationKindFixtureResult,
		UserID:        session.UserID,
		Previous:      fixture.Result,
		Proposed:      result,
		State:         models.MutationStatePending,
		CreatedAt:     s.clock.Now(),
	}
	if err := s.mutationRepo.AddMutation(ctx, &mutationRepo.AddMutationInput{Mutation: mutation}); err != nil {
		return nil, fmt.Errorf("failed to record mutation: %w", err)
	}

	fixture.Result = value.Value()
	s.saveSnapshot(ctx, session.UserID, snapshot)

	// Once the mutation is recorded it must be resolved even if the caller goes away
	detached := context.WithoutCancel(ctx)

	_, apiErr := s.apiClient.SetFixtureResult(ctx, &api.SetFixtureResultInput{
		Session:   session,
		FixtureID: fixture.ID,
		Result:    result,
	})
	if apiErr != nil {
		prior, err := value.Revert()
		if err != nil {
			return nil, err
		}
		fixture.Result = prior
		s.saveSnapshot(detached, session.UserID, snapshot)

		if _, err := s.mutationRepo.ResolveMutation(detached, &mutationRepo.ResolveMutationInput{
			MutationID: mutation.ID,
			State:      models.MutationStateReverted,
			Reason:     apiErr.Error(),
			ResolvedAt: s.clock.Now(),
		}); err != nil {
			s.logger.Error("failed to mark mutation reverted", "mutation_id", mutation.ID, "error", err)
		}

		s.logger.Warn("fixture result rolled back",
			"competition_id", input.CompetitionID,
			"fixture_id", fixture.ID,
			"error", apiErr,
		)
		return nil, api.Rollback(s.checkAuth(detached, input.Caller, apiErr))
	}

	if err := value.Confirm(); err != nil {
		return nil, err
	}
	confirmed, err := s.mutationRepo.ResolveMutation(detached, &mutationRepo.ResolveMutationInput{
		MutationID: mutation.ID,
		State:      models.MutationStateConfirmed,
		ResolvedAt: s.clock.Now(),
	})
	if err != nil {
		s.logger.Error("failed to mark mutation confirmed", "mutation_id", mutation.ID, "error", err)
		confirmed = mutation
		confirmed.State = models.MutationStateConfirmed
	}

	// Other viewers still hold the old result
	s.invalidate(detached, input.CompetitionID)

	return &SetFixtureResultOutput{
		Fixture:  fixture,
		Mutation: confirmed,
		Preview:  previewResult(fixture, snapshot.Players),
	}, nil
}

// previewResult applies the fixture's result to every active player who
// picked one of its teams
func previewResult(fixture *models.Fixture, players []*models.Player) []*ResultPreview {
	preview := []*ResultPreview{}
	for _, p := range players {
		if !p.IsActive() || !fixture.Involves(p.CurrentPick) {
			continue
		}
		outcome := rules.Classify(fixture.Result, p.CurrentPick, true)
		preview = append(preview, &ResultPreview{
			Before:  p,
			After:   rules.ApplyOutcome(p, outcome),
			Outcome: outcome,
		})
	}
	return preview
}

// ProcessResults applies entered results to players' lives
func (s *service) ProcessResults(ctx context.Context, input *ProcessResultsInput) (*ProcessResultsOutput, error) {
	if input == nil || input.CompetitionID == "" {
		return nil, ErrInvalidInput
	}

	session, err := s.resolveSession(ctx, input.Caller)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.loadSnapshot(ctx, input.Caller, session, input.CompetitionID, false)
	if err != nil {
		return nil, err
	}
	if !snapshot.Competition.IsOrganiser {
		return nil, ErrNotOrganiser
	}

	pending, err := s.pendingMutations(ctx, input.CompetitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending mutations: %w", err)
	}
	if len(pending.Mutations) > 0 {
		return nil, ErrMutationPending
	}
	if len(pending.Expired) > 0 {
		s.invalidate(ctx, input.CompetitionID)
	}

	// If every fixture has a result, processing should finish the round
	expectComplete := snapshot.Round != nil && s.isLocked(snapshot) && allResulted(snapshot.Fixtures)

	result, err := s.apiClient.ProcessResults(ctx, &api.ProcessResultsInput{
		Session:       session,
		CompetitionID: input.CompetitionID,
	})
	if err != nil {
		return nil, s.checkAuth(ctx, input.Caller, err)
	}

	out := &ProcessResultsOutput{
		Code:           result.Code,
		Message:        result.Message,
		Processed:      result.Processed,
		Eliminated:     result.Eliminated,
		NewRoundNumber: result.NewRoundNumber,
	}

	if result.Code == api.CodeNoResultsToProcess {
		return out, nil
	}

	s.invalidate(ctx, input.CompetitionID)

	if result.Code == api.CodeSuccess && expectComplete {
		fresh, err := s.loadSnapshot(ctx, input.Caller, session, input.CompetitionID, true)
		if err != nil {
			s.logger.Warn("failed to reload after processing", "competition_id", input.CompetitionID, "error", err)
		} else if !fresh.Competition.Status.IsComplete() && rules.DetectDivergence(true, fresh.RoundInfo) {
			out.Divergence = ErrProcessingDivergence
		}
	}

	s.logger.Info("results processed",
		"competition_id", input.CompetitionID,
		"return_code", result.Code,
		"processed", result.Processed,
		"eliminated", result.Eliminated,
	)

	return out, nil
}

// CreateRound opens the next round
func (s *service) CreateRound(ctx context.Context, input *CreateRoundInput) (*CreateRoundOutput, error) {
	if input == nil || input.CompetitionID == "" || input.LockTime.IsZero() {
		return nil, ErrInvalidInput
	}
	if !input.LockTime.After(s.clock.Now()) {
		return nil, ErrLockTimeInPast
	}

	session, err := s.resolveSession(ctx, input.Caller)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.loadSnapshot(ctx, input.Caller, session, input.CompetitionID, false)
	if err != nil {
		return nil, err
	}
	if !snapshot.Competition.IsOrganiser {
		return nil, ErrNotOrganiser
	}
	if snapshot.Competition.Status.IsComplete() {
		return nil, ErrCompetitionComplete
	}

	out, err := s.apiClient.CreateRound(ctx, &api.CreateRoundInput{
		Session:       session,
		CompetitionID: input.CompetitionID,
		LockTime:      input.LockTime,
	})
	if err != nil {
		return nil, s.checkAuth(ctx, input.Caller, err)
	}

	s.invalidate(ctx, input.CompetitionID)

	return &CreateRoundOutput{
		Round: out.Round,
	}, nil
}

// JoinCompetition joins by invite code
func (s *service) JoinCompetition(ctx context.Context, input *JoinCompetitionInput) (*JoinCompetitionOutput, error) {
	if input == nil || strings.TrimSpace(input.InviteCode) == "" {
		return nil, ErrInvalidInput
	}

	session, err := s.resolveSession(ctx, input.Caller)
	if err != nil {
		return nil, err
	}

	out, err := s.apiClient.JoinCompetition(ctx, &api.JoinCompetitionInput{
		Session:    session,
		InviteCode: input.InviteCode,
	})
	if err != nil {
		return nil, s.checkAuth(ctx, input.Caller, err)
	}

	if out.Competition != nil {
		s.invalidate(ctx, out.Competition.ID)
	}

	return &JoinCompetitionOutput{
		Competition: out.Competition,
		Message:     out.Message,
	}, nil
}

// resolveSession returns the session to call the API with
func (s *service) resolveSession(ctx context.Context, caller Caller) (*models.Session, error) {
	now := s.clock.Now()

	if caller.Session != nil {
		if caller.Session.Token == "" {
			return nil, ErrNotLinked
		}
		if caller.Session.Expired(now) {
			return nil, api.ErrSessionExpired
		}
		return caller.Session, nil
	}

	if caller.UserID == "" {
		return nil, ErrInvalidInput
	}

	session, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{
		UserID: caller.UserID,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrNotLinked
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if session.Expired(now) {
		s.dropSession(ctx, caller.UserID, "expired")
		return nil, api.ErrSessionExpired
	}

	return session, nil
}

// checkAuth discards a stored session the API has rejected
func (s *service) checkAuth(ctx context.Context, caller Caller, err error) error {
	if err != nil && caller.Session == nil && caller.UserID != "" && api.IsAuth(err) {
		s.dropSession(ctx, caller.UserID, "rejected")
	}
	return err
}

func (s *service) dropSession(ctx context.Context, userID, reason string) {
	if err := s.sessionRepo.DeleteSession(ctx, &sessionRepo.DeleteSessionInput{UserID: userID}); err != nil {
		s.logger.Error("failed to drop session", "user_id", userID, "error", err)
		return
	}
	s.logger.Info("session dropped", "user_id", userID, "reason", reason)
}

func (s *service) isLocked(snapshot *models.CompetitionSnapshot) bool {
	if snapshot.Round == nil {
		return false
	}
	if snapshot.RoundInfo != nil && snapshot.RoundInfo.IsLocked {
		return true
	}
	return rules.IsLocked(snapshot.Round.LockTime, s.clock.Now())
}

func allResulted(fixtures []*models.Fixture) bool {
	if len(fixtures) == 0 {
		return false
	}
	for _, f := range fixtures {
		if !f.HasResult() {
			return false
		}
	}
	return true
}
