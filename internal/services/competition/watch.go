package competition

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/lastman/internal/models"
	snapshotRepo "github.com/KirkDiggler/lastman/internal/repositories/snapshot"
	"github.com/KirkDiggler/lastman/internal/rules"
)

// Watch subscribes a channel to round announcements. The watch starts from the
// competition's current state so nothing already true is announced.
func (s *service) Watch(ctx context.Context, input *WatchInput) (*WatchOutput, error) {
	if input == nil || input.UserID == "" || input.ChannelID == "" || input.CompetitionID == "" {
		return nil, ErrInvalidInput
	}

	caller := Caller{UserID: input.UserID}
	session, err := s.resolveSession(ctx, caller)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.loadSnapshot(ctx, caller, session, input.CompetitionID, false)
	if err != nil {
		return nil, err
	}

	watch := &models.Watch{
		ChannelID:     input.ChannelID,
		CompetitionID: input.CompetitionID,
		UserID:        input.UserID,
		CreatedAt:     s.clock.Now(),
	}
	s.observe(watch, snapshot)

	if err := s.snapshotRepo.SaveWatch(ctx, &snapshotRepo.SaveWatchInput{Watch: watch}); err != nil {
		return nil, fmt.Errorf("failed to save watch: %w", err)
	}

	return &WatchOutput{
		Watch: watch,
	}, nil
}

// Unwatch removes a channel subscription
func (s *service) Unwatch(ctx context.Context, input *UnwatchInput) (*UnwatchOutput, error) {
	if input == nil || input.ChannelID == "" || input.CompetitionID == "" {
		return nil, ErrInvalidInput
	}

	if _, err := s.snapshotRepo.GetWatch(ctx, &snapshotRepo.GetWatchInput{
		ChannelID:     input.ChannelID,
		CompetitionID: input.CompetitionID,
	}); err != nil {
		if errors.Is(err, snapshotRepo.ErrWatchNotFound) {
			return nil, ErrWatchNotFound
		}
		return nil, fmt.Errorf("failed to get watch: %w", err)
	}

	if err := s.snapshotRepo.DeleteWatch(ctx, &snapshotRepo.DeleteWatchInput{
		ChannelID:     input.ChannelID,
		CompetitionID: input.CompetitionID,
	}); err != nil {
		return nil, fmt.Errorf("failed to delete watch: %w", err)
	}

	return &UnwatchOutput{}, nil
}

// ListWatches lists channel subscriptions
func (s *service) ListWatches(ctx context.Context, input *ListWatchesInput) (*ListWatchesOutput, error) {
	if input == nil {
		return nil, ErrInvalidInput
	}

	out, err := s.snapshotRepo.ListWatches(ctx, &snapshotRepo.ListWatchesInput{
		ChannelID: input.ChannelID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list watches: %w", err)
	}

	return &ListWatchesOutput{
		Watches: out.Watches,
	}, nil
}

// CheckWatch reloads a watched competition and reports transitions since the
// last check
func (s *service) CheckWatch(ctx context.Context, input *CheckWatchInput) (*CheckWatchOutput, error) {
	if input == nil || input.Watch == nil {
		return nil, ErrInvalidInput
	}

	prev := *input.Watch
	caller := Caller{UserID: prev.UserID}

	session, err := s.resolveSession(ctx, caller)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.loadSnapshot(ctx, caller, session, prev.CompetitionID, true)
	if err != nil {
		return nil, err
	}

	next := prev
	s.observe(&next, snapshot)

	event := func(kind WatchEventKind) *WatchEvent {
		return &WatchEvent{
			Kind:        kind,
			ChannelID:   prev.ChannelID,
			Competition: snapshot.Competition,
			Round:       snapshot.Round,
		}
	}

	var events []*WatchEvent
	if next.RoundNumber > prev.RoundNumber {
		events = append(events, event(WatchEventNewRound))
		// Flags of the old round no longer apply
		prev.Locked, prev.Completed, prev.Diverged = false, false, false
	}
	if next.Locked && !prev.Locked {
		events = append(events, event(WatchEventRoundLocked))
	}
	if next.Diverged && !prev.Diverged {
		e := event(WatchEventDivergence)
		e.Err = ErrProcessingDivergence
		events = append(events, e)
	}
	if next.Finished && !prev.Finished {
		e := event(WatchEventCompetitionComplete)
		for _, p := range snapshot.Players {
			if p.IsActive() {
				e.Survivors = append(e.Survivors, p)
			}
		}
		events = append(events, e)
	} else if next.Completed && !prev.Completed {
		events = append(events, event(WatchEventRoundCompleted))
	}

	if next != *input.Watch {
		if err := s.snapshotRepo.SaveWatch(ctx, &snapshotRepo.SaveWatchInput{Watch: &next}); err != nil {
			return nil, fmt.Errorf("failed to save watch: %w", err)
		}
	}

	for _, e := range events {
		s.logger.Info("watch event",
			"kind", e.Kind,
			"channel_id", prev.ChannelID,
			"competition_id", prev.CompetitionID,
			"round", next.RoundNumber,
		)
	}

	return &CheckWatchOutput{
		Watch:    &next,
		Snapshot: snapshot,
		Events:   events,
	}, nil
}

// observe copies the competition's current state onto a watch
func (s *service) observe(watch *models.Watch, snapshot *models.CompetitionSnapshot) {
	watch.Finished = snapshot.Competition.Status.IsComplete()
	if snapshot.Round == nil {
		watch.RoundNumber = 0
		watch.Locked = false
		watch.Completed = false
		watch.Diverged = false
		return
	}

	locked := s.isLocked(snapshot)
	watch.RoundNumber = snapshot.Round.RoundNumber
	watch.Locked = locked
	watch.Completed = rules.IsRoundCompleted(snapshot.Competition.Status, snapshot.Fixtures, locked, snapshot.RoundInfo)

	// Fixtures say the round is done but the server has not caught up
	fixturesDone := locked && rules.FixturesSettled(snapshot.Fixtures)
	watch.Diverged = !watch.Finished && rules.DetectDivergence(fixturesDone, snapshot.RoundInfo)
}
