package competition

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/lastman/internal/api"
	"github.com/KirkDiggler/lastman/internal/models"
	mutationRepo "github.com/KirkDiggler/lastman/internal/repositories/mutation_ledger"
	snapshotRepo "github.com/KirkDiggler/lastman/internal/repositories/snapshot"
	"github.com/KirkDiggler/lastman/internal/rules"
	"github.com/KirkDiggler/lastman/internal/view"
)

// loadSnapshot returns a private copy of the competition as the session sees
// it. Concurrent loads of the same view share one fetch and every waiter gets
// its result. A fetch overtaken by an invalidation is never written to the
// cache.
func (s *service) loadSnapshot(ctx context.Context, caller Caller, session *models.Session, competitionID string, force bool) (*models.CompetitionSnapshot, error) {
	cached, err := s.snapshotRepo.GetSnapshot(ctx, &snapshotRepo.GetSnapshotInput{
		UserID:        session.UserID,
		CompetitionID: competitionID,
	})
	if err != nil && !errors.Is(err, snapshotRepo.ErrSnapshotNotFound) {
		s.logger.Warn("snapshot cache read failed", "competition_id", competitionID, "error", err)
	}
	if cached != nil && !force {
		return cached, nil
	}

	key := snapshotKey(competitionID, session.UserID)
	// The shared fetch outlives any single waiter
	detached := context.WithoutCancel(ctx)
	v, _, err := s.guard.Do(ctx, key, func() (interface{}, error) {
		return s.refreshSnapshot(detached, key, session, competitionID, cached)
	})
	if err != nil {
		return nil, s.checkAuth(ctx, caller, err)
	}
	return v.(*models.CompetitionSnapshot).Clone(), nil
}

// refreshSnapshot fetches the competition once on behalf of every waiter and
// caches it unless an invalidation cancelled the ticket meanwhile
func (s *service) refreshSnapshot(ctx context.Context, key view.Key, session *models.Session, competitionID string, cached *models.CompetitionSnapshot) (*models.CompetitionSnapshot, error) {
	ticket := s.tracker.Begin(ctx, key)
	defer ticket.Done()

	fresh, err := s.fetchSnapshot(ctx, session, competitionID)
	if err != nil {
		return nil, err
	}

	if cached != nil {
		if err := rules.CheckNoRegression(cached.Players, fresh.Players); err != nil {
			s.logger.Error("refused refreshed snapshot",
				"competition_id", competitionID,
				"error", err,
			)
			// Drop the cache so the next load starts from the server's view
			s.invalidate(ctx, competitionID)
			return nil, fmt.Errorf("%w: %v", ErrStatusRegression, err)
		}
	}

	if !s.tracker.Commit(ticket, func() {
		s.saveSnapshot(ctx, session.UserID, fresh)
	}) {
		s.logger.Debug("skipped cache write for invalidated fetch", "competition_id", competitionID)
	}
	return fresh, nil
}

func snapshotKey(competitionID, userID string) view.Key {
	return view.Key{Resource: "snapshot", ID: competitionID + ":" + userID}
}

func (s *service) fetchSnapshot(ctx context.Context, session *models.Session, competitionID string) (*models.CompetitionSnapshot, error) {
	var (
		competitionOut *api.GetCompetitionOutput
		roundOut       *api.GetCurrentRoundOutput
		standingsOut   *api.GetStandingsOutput
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		competitionOut, err = s.apiClient.GetCompetition(gctx, &api.GetCompetitionInput{
			Session:       session,
			CompetitionID: competitionID,
		})
		return err
	})
	g.Go(func() error {
		var err error
		roundOut, err = s.apiClient.GetCurrentRound(gctx, &api.GetCurrentRoundInput{
			Session:       session,
			CompetitionID: competitionID,
		})
		return err
	})
	g.Go(func() error {
		var err error
		standingsOut, err = s.apiClient.GetStandings(gctx, &api.GetStandingsInput{
			Session:       session,
			CompetitionID: competitionID,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		if api.CodeOf(err) == api.CodeNotFound {
			return nil, fmt.Errorf("%w: %w", ErrCompetitionNotFound, err)
		}
		return nil, err
	}

	snapshot := &models.CompetitionSnapshot{
		Competition: competitionOut.Competition,
		Players:     standingsOut.Players,
		Fixtures:    []*models.Fixture{},
		FetchedAt:   s.clock.Now(),
	}
	if !roundOut.NoRounds && roundOut.Round != nil {
		snapshot.Round = roundOut.Round
		snapshot.Fixtures = roundOut.Fixtures
		snapshot.RoundInfo = roundOut.RoundInfo
	}

	s.labelStatus(snapshot)
	s.overlayPending(ctx, snapshot)
	snapshot.Fingerprint = fingerprint(snapshot.Players)

	return snapshot, nil
}

// overlayPending keeps optimistic results visible while their API call is
// still in flight
func (s *service) overlayPending(ctx context.Context, snapshot *models.CompetitionSnapshot) {
	pending, err := s.pendingMutations(ctx, snapshot.Competition.ID)
	if err != nil {
		s.logger.Warn("failed to read pending mutations", "competition_id", snapshot.Competition.ID, "error", err)
		return
	}
	for _, m := range pending.Mutations {
		if m.Kind != models.MutationKindFixtureResult {
			continue
		}
		if f := snapshot.Fixture(m.TargetID); f != nil {
			f.Result = m.Proposed
		}
	}
}

// pendingMutations lists a competition's unresolved changes, reverting any
// that outlived the API call that should have resolved them
func (s *service) pendingMutations(ctx context.Context, competitionID string) (*mutationRepo.GetPendingMutationsOutput, error) {
	pending, err := s.mutationRepo.GetPendingMutations(ctx, &mutationRepo.GetPendingMutationsInput{
		CompetitionID: competitionID,
		MaxAge:        s.pendingMaxAge,
		Now:           s.clock.Now(),
	})
	if err != nil {
		return nil, err
	}
	for _, m := range pending.Expired {
		s.logger.Warn("reverted abandoned mutation",
			"competition_id", competitionID,
			"mutation_id", m.ID,
			"fixture_id", m.TargetID,
		)
	}
	return pending, nil
}

func (s *service) saveSnapshot(ctx context.Context, userID string, snapshot *models.CompetitionSnapshot) {
	if err := s.snapshotRepo.SaveSnapshot(ctx, &snapshotRepo.SaveSnapshotInput{
		UserID:   userID,
		Snapshot: snapshot,
		TTL:      s.snapshotTTL,
	}); err != nil {
		s.logger.Warn("snapshot cache write failed", "competition_id", snapshot.Competition.ID, "error", err)
	}
}

// labelStatus fills in a status the server left blank or sent in a form we
// do not know, using the lifecycle the players and rounds imply
func (s *service) labelStatus(snapshot *models.CompetitionSnapshot) {
	roundCount := 0
	if snapshot.Round != nil {
		roundCount = snapshot.Round.RoundNumber
	}
	reported := snapshot.Competition.Status
	derived := rules.DeriveCompetitionStatus(reported, roundCount, rules.CountActive(snapshot.Players))

	switch {
	case !reported.IsSetup() && !reported.IsActive() && !reported.IsComplete():
		s.logger.Debug("labelled competition status",
			"competition_id", snapshot.Competition.ID,
			"reported", reported,
			"status", derived,
		)
		snapshot.Competition.Status = derived
	case derived != reported:
		s.logger.Debug("server status differs from lifecycle",
			"competition_id", snapshot.Competition.ID,
			"reported", reported,
			"derived", derived,
		)
	}
}

// invalidate drops every cached copy of the competition and stops in-flight
// fetches of it from writing back
func (s *service) invalidate(ctx context.Context, competitionID string) {
	prefix := competitionID + ":"
	for _, key := range s.tracker.CancelWhere(func(k view.Key) bool {
		return k.Resource == "snapshot" && strings.HasPrefix(k.ID, prefix)
	}) {
		s.guard.Forget(key)
	}

	if err := s.snapshotRepo.InvalidateSnapshots(ctx, &snapshotRepo.InvalidateSnapshotsInput{
		CompetitionID: competitionID,
	}); err != nil {
		s.logger.Warn("snapshot invalidation failed", "competition_id", competitionID, "error", err)
	}
}

// fingerprint identifies the player set and each player's status, so page
// cursors can tell when the table they point into has changed
func fingerprint(players []*models.Player) string {
	keys := make([]string, 0, len(players))
	for _, p := range players {
		keys = append(keys, p.ID+"|"+string(p.Status))
	}
	sort.Strings(keys)

	h := fnv.New64a()
	for _, k := range keys {
		h.Write([]byte(k))
		h.Write([]byte{0})
	}
	return strconv.FormatUint(h.Sum64(), 16)
}
