package messaging

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/KirkDiggler/lastman/internal/api"
	"github.com/KirkDiggler/lastman/internal/models"
	"github.com/KirkDiggler/lastman/internal/services/competition"
)

// service implements the Service interface
type service struct {
	// Random number generator for selecting random messages
	rand *rand.Rand
}

// NewService creates a new messaging service
func NewService(config *ServiceConfig) (Service, error) {
	var r *rand.Rand
	if config != nil {
		r = config.Rand
	}
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &service{
		rand: r,
	}, nil
}

func (s *service) pick(options []string) string {
	return options[s.rand.Intn(len(options))]
}

// GetOutcomeMessage returns a message describing a player's pick outcome
func (s *service) GetOutcomeMessage(ctx context.Context, input *GetOutcomeMessageInput) (*GetOutcomeMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	name := input.PlayerName
	if input.IsPersonalMessage {
		name = "You"
	}

	var titles, messages []string
	tone := ToneNeutral

	switch input.Outcome {
	case models.PickResultWin:
		tone = ToneCelebration
		titles = []string{"Through!", "Safe!", "Another round survived"}
		messages = []string{
			fmt.Sprintf("%s backed %s and %s delivered.", name, input.Team, input.Team),
			fmt.Sprintf("%s picked %s. Job done, on to the next round.", name, input.Team),
			fmt.Sprintf("%s went with %s and survived another week.", name, input.Team),
		}
	case models.PickResultLoss, models.PickResultDraw:
		tone = ToneCommiseration
		titles = []string{"Ouch", "Life lost", "Not this time"}
		messages = []string{
			fmt.Sprintf("%s went with %s and it didn't come off.", name, input.Team),
			fmt.Sprintf("%s picked %s. A draw is as good as a defeat here.", name, input.Team),
			fmt.Sprintf("%s picked %s and paid for it.", name, input.Team),
		}
	case models.PickResultNoPick:
		tone = ToneCommiseration
		titles = []string{"No pick", "Asleep at the wheel"}
		messages = []string{
			fmt.Sprintf("%s didn't pick before the deadline. That costs a life.", name),
			fmt.Sprintf("%s missed the deadline, and no pick means a lost life.", name),
		}
	default:
		titles = []string{"Waiting on the result", "Fingers crossed"}
		if input.Team == "" {
			messages = []string{fmt.Sprintf("%s hasn't picked yet.", name)}
			if input.IsPersonalMessage {
				messages = []string{"You haven't picked yet."}
			}
		} else {
			messages = []string{
				fmt.Sprintf("%s picked %s. Result to follow.", name, input.Team),
				fmt.Sprintf("%s picked %s. Now we wait.", name, input.Team),
			}
		}
	}

	message := s.pick(messages)
	if tone == ToneCommiseration {
		switch {
		case input.LivesRemaining <= 0:
			message += " That's the last life gone."
		case input.LivesRemaining == 1:
			message += " One life left."
		default:
			message += fmt.Sprintf(" %d lives left.", input.LivesRemaining)
		}
	}

	return &GetOutcomeMessageOutput{
		Title:   s.pick(titles),
		Message: message,
		Tone:    tone,
	}, nil
}

// GetPickMessage returns a confirmation for a submitted pick
func (s *service) GetPickMessage(ctx context.Context, input *GetPickMessageInput) (*GetPickMessageOutput, error) {
	if input == nil || input.Team == "" {
		return nil, errors.New("team cannot be empty")
	}

	messages := []string{
		fmt.Sprintf("%s is on %s.", input.PlayerName, input.Team),
		fmt.Sprintf("Locked in: %s for %s.", input.Team, input.PlayerName),
		fmt.Sprintf("%s it is. Good luck, %s.", input.Team, input.PlayerName),
	}

	var details []string
	if input.Fixture != nil {
		details = append(details, "Fixture: "+input.Fixture.Descriptor())
	}
	if input.LockTime != nil {
		details = append(details, "You can change your pick until "+input.LockTime.UTC().Format("Mon 2 Jan 15:04 MST")+".")
	}

	message := s.pick(messages)
	if len(details) > 0 {
		message += "\n" + strings.Join(details, "\n")
	}

	return &GetPickMessageOutput{
		Title:   "Pick saved",
		Message: message,
	}, nil
}

// GetRoundStatusMessage returns a dynamic message based on the round status
func (s *service) GetRoundStatusMessage(ctx context.Context, input *GetRoundStatusMessageInput) (*GetRoundStatusMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var messages []string
	switch {
	case input.Finished:
		messages = []string{
			"It's all over. Only the last one standing gets the bragging rights.",
			"The competition is complete.",
		}
	case input.NoRounds:
		messages = []string{
			"No rounds yet. The organiser still has to set the first one up.",
			"Nothing to pick yet. Waiting for round one.",
		}
	case input.Completed:
		messages = []string{
			fmt.Sprintf("Round %d is done and dusted.", input.RoundNumber),
			fmt.Sprintf("All results are in for round %d.", input.RoundNumber),
		}
	case input.Locked:
		messages = []string{
			fmt.Sprintf("Round %d is locked. No more changes, just nerves.", input.RoundNumber),
			fmt.Sprintf("Picks are in for round %d. Over to the footballers.", input.RoundNumber),
		}
	default:
		messages = []string{
			fmt.Sprintf("Round %d is open. Get your pick in before the deadline.", input.RoundNumber),
			fmt.Sprintf("Round %d: %d players still standing, picks wanted.", input.RoundNumber, input.ActivePlayers),
		}
	}

	return &GetRoundStatusMessageOutput{
		Message: s.pick(messages),
	}, nil
}

// GetProcessResultsMessage describes what processing results did
func (s *service) GetProcessResultsMessage(ctx context.Context, input *GetProcessResultsMessageInput) (*GetProcessResultsMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	out := &GetProcessResultsMessageOutput{}
	switch input.Code {
	case api.CodeNoResultsToProcess:
		out.Title = "Nothing to process"
		out.Message = "There are no new results to process. Enter fixture results first."
	case api.CodeNewRoundCreated:
		out.Title = "Round processed"
		out.Message = fmt.Sprintf("%s Round %d has been created.", summary(input.Processed, input.Eliminated), input.NewRoundNumber)
	case api.CodeCompetitionComplete:
		out.Title = "Competition complete"
		out.Message = summary(input.Processed, input.Eliminated) + " " + s.pick([]string{
			"We have a winner.",
			"That's the end of the road for everyone but one.",
		})
	default:
		out.Title = "Results processed"
		out.Message = summary(input.Processed, input.Eliminated)
	}

	if input.Diverged {
		out.Message += "\nThe server still reports this round as unprocessed. Try refreshing in a moment."
	}

	return out, nil
}

func summary(processed, eliminated int) string {
	fixtures := "fixtures"
	if processed == 1 {
		fixtures = "fixture"
	}
	players := "players"
	if eliminated == 1 {
		players = "player"
	}
	return fmt.Sprintf("Processed %d %s, %d %s eliminated.", processed, fixtures, eliminated, players)
}

// GetWatchEventMessage returns the announcement for a watched competition change
func (s *service) GetWatchEventMessage(ctx context.Context, input *GetWatchEventMessageInput) (*GetWatchEventMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	name := input.CompetitionName
	out := &GetWatchEventMessageOutput{Tone: ToneNeutral}

	switch input.Kind {
	case competition.WatchEventNewRound:
		out.Title = fmt.Sprintf("%s: round %d is open", name, input.RoundNumber)
		out.Message = s.pick([]string{
			"A new round is up. Get your picks in.",
			"Fresh round, fresh fixtures. Who are you backing?",
		})
		out.Tone = ToneEncouraging
	case competition.WatchEventRoundLocked:
		out.Title = fmt.Sprintf("%s: round %d locked", name, input.RoundNumber)
		out.Message = s.pick([]string{
			"Picks are closed. Everyone's choices are now visible.",
			"No more changes. Let's see who got it right.",
		})
	case competition.WatchEventRoundCompleted:
		out.Title = fmt.Sprintf("%s: round %d complete", name, input.RoundNumber)
		out.Message = "All results are processed. Check the standings to see who survived."
	case competition.WatchEventCompetitionComplete:
		out.Title = fmt.Sprintf("%s is complete", name)
		out.Tone = ToneCelebration
		switch len(input.Survivors) {
		case 0:
			out.Message = "Nobody survived. Everyone went out together."
		case 1:
			out.Message = fmt.Sprintf("%s is the last one standing!", input.Survivors[0])
		default:
			out.Message = "Survivors: " + strings.Join(input.Survivors, ", ")
		}
	case competition.WatchEventDivergence:
		out.Title = fmt.Sprintf("%s: results out of sync", name)
		out.Message = fmt.Sprintf("Every fixture in round %d has a result but the server has not finished processing it.", input.RoundNumber)
	default:
		return nil, fmt.Errorf("unknown watch event %q", input.Kind)
	}

	return out, nil
}

// GetErrorMessage returns a user-friendly error message
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	if input == nil || input.Err == nil {
		return nil, errors.New("error cannot be nil")
	}
	err := input.Err

	out := &GetErrorMessageOutput{
		Title:    "Something went wrong",
		Category: api.CategoryOf(err),
	}

	// Domain errors first, they carry more specific advice than their category
	switch {
	case errors.Is(err, competition.ErrNotLinked):
		out.Title = "Not linked"
		out.Message = "Link your account first with /lms link."
		out.Category = api.CategoryAuth
		return out, nil
	case errors.Is(err, competition.ErrNoRounds):
		out.Title = "No rounds yet"
		out.Message = "This competition hasn't started. The organiser needs to create a round."
		out.Category = api.CategoryEmpty
		return out, nil
	case errors.Is(err, competition.ErrRoundLocked):
		out.Title = "Round locked"
		out.Message = s.pick([]string{
			"Too late, the round has locked. Your pick can't be changed now.",
			"The deadline has passed for this round.",
		})
		return out, nil
	case errors.Is(err, competition.ErrMutationPending):
		out.Title = "Hold on"
		out.Message = "A previous change is still being saved. Try again in a moment."
		out.Retry = true
		return out, nil
	}

	var domainErr competition.CompetitionError
	if out.Category != api.CategoryRollback && errors.As(err, &domainErr) {
		out.Message = capitalise(string(domainErr)) + "."
		return out, nil
	}

	switch out.Category {
	case api.CategoryAuth:
		out.Title = "Session expired"
		out.Message = s.pick([]string{
			"Your login has expired. Run /lms link to sign in again.",
			"The server didn't accept your login. Please link your account again.",
		})
	case api.CategoryEmpty:
		out.Title = "Nothing here yet"
		out.Message = "There's nothing to show yet."
	case api.CategoryTransport:
		out.Title = "Connection problem"
		out.Message = "Couldn't reach the competition server. Please try again."
		out.Retry = true
	case api.CategoryRollback:
		out.Title = "Change reverted"
		out.Message = "The server rejected the change, so it has been undone."
		if reason := serverMessage(err); reason != "" {
			out.Message += " Reason: " + reason
		}
	default:
		if reason := serverMessage(err); reason != "" {
			out.Message = reason
		} else {
			out.Message = s.pick([]string{
				"That didn't work. Please try again.",
				"Something went wrong on our side.",
			})
		}
	}

	return out, nil
}

func serverMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

func capitalise(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
