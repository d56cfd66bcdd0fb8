package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/lastman/internal/export"
	"github.com/KirkDiggler/lastman/internal/services/competition"
	"github.com/KirkDiggler/lastman/internal/services/messaging"
)

// CommandError is returned for input the bot can reject without calling a service
type CommandError string

// Error implements the error interface
func (e CommandError) Error() string {
	return string(e)
}

const (
	ErrUnknownSubcommand  CommandError = "unknown subcommand"
	ErrChooseCompetition  CommandError = "you're in more than one competition, choose one with the competition option"
	ErrNoCompetitions     CommandError = "you're not in any competitions yet, join one with /lms join"
	ErrInvalidLockTime    CommandError = "lock time must look like 2025-04-19 11:00 (UTC) or RFC 3339"
	ErrMissingInteraction CommandError = "interaction has no user"
)

const commandTimeout = 30 * time.Second

var lockTimeLayouts = []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02T15:04"}

// Subcommands answered only to the person who ran them
var ephemeralSubcommands = map[string]bool{
	"link":         true,
	"unlink":       true,
	"competitions": true,
	"results":      true,
	"pick":         true,
	"join":         true,
}

// LMSCommandConfig holds the dependencies of the /lms command
type LMSCommandConfig struct {
	CompetitionService competition.Service
	MessagingService   messaging.Service
	Exporter           export.Exporter
	Logger             *slog.Logger
}

// LMSCommand handles the /lms command
type LMSCommand struct {
	BaseCommand
	competitionService competition.Service
	messagingService   messaging.Service
	exporter           export.Exporter
	logger             *slog.Logger
}

// reply is what a subcommand answers with
type reply struct {
	embed      *discordgo.MessageEmbed
	components []discordgo.MessageComponent

	// file is attached when set
	file *export.ExportStandingsOutput
}

// invocation is one run of a subcommand
type invocation struct {
	subcommand string
	options    map[string]*discordgo.ApplicationCommandInteractionDataOption
	user       *discordgo.User
	channelID  string
}

func (inv *invocation) caller() competition.Caller {
	return competition.Caller{UserID: inv.user.ID}
}

func competitionOption(required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "competition",
		Description: "Competition ID (optional when you're only in one)",
		Required:    required,
	}
}

func subcommand(name, description string, options ...*discordgo.ApplicationCommandOption) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionSubCommand,
		Name:        name,
		Description: description,
		Options:     options,
	}
}

// NewLMSCommand creates a new /lms command handler
func NewLMSCommand(cfg *LMSCommandConfig) *LMSCommand {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &LMSCommand{
		BaseCommand: BaseCommand{
			Name:        "lms",
			Description: "Last Man Standing football predictions",
			Options: []*discordgo.ApplicationCommandOption{
				subcommand("link", "Link your LMS account",
					&discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionString, Name: "email", Description: "Account email"},
					&discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionString, Name: "password", Description: "Account password"},
					&discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionString, Name: "token", Description: "API token instead of email and password"},
				),
				subcommand("unlink", "Forget your linked LMS account"),
				subcommand("competitions", "List your competitions"),
				subcommand("round", "Show the current round",
					competitionOption(false),
					&discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionBoolean, Name: "refresh", Description: "Skip the cache"},
				),
				subcommand("standings", "Show the standings table",
					competitionOption(false),
					&discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionInteger, Name: "page", Description: "Page number", MinValue: floatPtr(1)},
					&discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionBoolean, Name: "refresh", Description: "Skip the cache"},
				),
				subcommand("results", "Show a player's round by round results",
					competitionOption(false),
					&discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionString, Name: "player", Description: "Player ID (defaults to you)"},
				),
				subcommand("pick", "Pick a team for the current round",
					&discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionString, Name: "team", Description: "Team short code, e.g. ARS", Required: true},
					competitionOption(false),
				),
				subcommand("join", "Join a competition",
					&discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionString, Name: "code", Description: "Invite code", Required: true},
				),
				subcommand("result", "Record a fixture result (organiser)",
					&discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionString, Name: "fixture", Description: "Fixture ID", Required: true},
					&discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionString, Name: "result", Description: "Winning team short code or DRAW", Required: true},
					competitionOption(false),
				),
				subcommand("process", "Process entered results (organiser)", competitionOption(false)),
				subcommand("newround", "Open the next round (organiser)",
					&discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionString, Name: "lock", Description: "Lock time in UTC, e.g. 2025-04-19 11:00", Required: true},
					competitionOption(false),
				),
				subcommand("watch", "Announce round changes in this channel", competitionOption(false)),
				subcommand("unwatch", "Stop announcing round changes in this channel", competitionOption(false)),
				subcommand("export", "Download the standings as a spreadsheet", competitionOption(false)),
			},
		},
		competitionService: cfg.CompetitionService,
		messagingService:   cfg.MessagingService,
		exporter:           cfg.Exporter,
		logger:             logger.With("component", "lms_command"),
	}
}

func floatPtr(f float64) *float64 {
	return &f
}

// Handle processes a Discord interaction for the lms command
func (c *LMSCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name || len(data.Options) == 0 {
		return nil
	}

	user := interactionUser(i)
	if user == nil {
		return ErrMissingInteraction
	}

	sub := data.Options[0]
	inv := &invocation{
		subcommand: sub.Name,
		options:    optionMap(sub.Options),
		user:       user,
		channelID:  i.ChannelID,
	}

	if err := Defer(s, i, ephemeralSubcommands[sub.Name]); err != nil {
		return fmt.Errorf("failed to defer %s: %w", sub.Name, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	logger := c.logger.With("subcommand", sub.Name, "user_id", user.ID, "channel_id", i.ChannelID)
	start := time.Now()

	r, err := c.run(ctx, inv)
	if err != nil {
		logger.Warn("subcommand failed", "error", err, "duration", time.Since(start))
		return EditWithEmbed(s, i, c.errorEmbed(ctx, err), nil)
	}
	logger.Debug("subcommand handled", "duration", time.Since(start))

	if r.file != nil {
		return EditWithFile(s, i, r.embed, r.file.FileName, export.ContentType, r.file.Data)
	}
	return EditWithEmbed(s, i, r.embed, r.components)
}

func (c *LMSCommand) run(ctx context.Context, inv *invocation) (*reply, error) {
	switch inv.subcommand {
	case "link":
		return c.handleLink(ctx, inv)
	case "unlink":
		return c.handleUnlink(ctx, inv)
	case "competitions":
		return c.handleCompetitions(ctx, inv)
	case "round":
		return c.handleRound(ctx, inv)
	case "standings":
		return c.handleStandings(ctx, inv)
	case "results":
		return c.handleResults(ctx, inv)
	case "pick":
		return c.handlePick(ctx, inv)
	case "join":
		return c.handleJoin(ctx, inv)
	case "result":
		return c.handleResult(ctx, inv)
	case "process":
		return c.handleProcess(ctx, inv)
	case "newround":
		return c.handleNewRound(ctx, inv)
	case "watch":
		return c.handleWatch(ctx, inv)
	case "unwatch":
		return c.handleUnwatch(ctx, inv)
	case "export":
		return c.handleExport(ctx, inv)
	default:
		return nil, ErrUnknownSubcommand
	}
}

// errorEmbed turns any failure into something a player can act on
func (c *LMSCommand) errorEmbed(ctx context.Context, err error) *discordgo.MessageEmbed {
	var cmdErr CommandError
	if errors.As(err, &cmdErr) {
		return &discordgo.MessageEmbed{
			Title:       "Can't do that",
			Description: capitalise(string(cmdErr)) + ".",
			Color:       ColorError,
		}
	}

	out, msgErr := c.messagingService.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{Err: err})
	if msgErr != nil {
		c.logger.Error("failed to build error message", "error", msgErr)
		return &discordgo.MessageEmbed{Title: "Something went wrong", Description: err.Error(), Color: ColorError}
	}
	return renderError(out)
}

// resolveCompetition picks the competition option, or the caller's only competition
func (c *LMSCommand) resolveCompetition(ctx context.Context, inv *invocation) (string, error) {
	if id := strings.TrimSpace(stringOption(inv.options, "competition")); id != "" {
		return id, nil
	}

	out, err := c.competitionService.ListCompetitions(ctx, &competition.ListCompetitionsInput{Caller: inv.caller()})
	if err != nil {
		return "", err
	}
	switch len(out.Competitions) {
	case 0:
		return "", ErrNoCompetitions
	case 1:
		return out.Competitions[0].ID, nil
	default:
		return "", ErrChooseCompetition
	}
}

func (c *LMSCommand) handleLink(ctx context.Context, inv *invocation) (*reply, error) {
	out, err := c.competitionService.Link(ctx, &competition.LinkInput{
		UserID:   inv.user.ID,
		Email:    strings.TrimSpace(stringOption(inv.options, "email")),
		Password: stringOption(inv.options, "password"),
		Token:    strings.TrimSpace(stringOption(inv.options, "token")),
	})
	if err != nil {
		return nil, err
	}

	message := "Your LMS account is linked."
	if out.Session.DisplayName != "" {
		message = fmt.Sprintf("Linked as **%s**.", out.Session.DisplayName)
	}
	if !out.Session.ExpiresAt.IsZero() {
		message += fmt.Sprintf(" The login lasts until <t:%d:f>.", out.Session.ExpiresAt.Unix())
	}
	return &reply{embed: renderMessage("Account linked", message, messaging.ToneEncouraging)}, nil
}

func (c *LMSCommand) handleUnlink(ctx context.Context, inv *invocation) (*reply, error) {
	if _, err := c.competitionService.Unlink(ctx, &competition.UnlinkInput{UserID: inv.user.ID}); err != nil {
		return nil, err
	}
	return &reply{embed: renderMessage("Account unlinked", "Your LMS login has been forgotten.", messaging.ToneNeutral)}, nil
}

func (c *LMSCommand) handleCompetitions(ctx context.Context, inv *invocation) (*reply, error) {
	out, err := c.competitionService.ListCompetitions(ctx, &competition.ListCompetitionsInput{Caller: inv.caller()})
	if err != nil {
		return nil, err
	}
	return &reply{embed: renderCompetitions(out.Competitions)}, nil
}

func (c *LMSCommand) handleRound(ctx context.Context, inv *invocation) (*reply, error) {
	id, err := c.resolveCompetition(ctx, inv)
	if err != nil {
		return nil, err
	}

	out, err := c.competitionService.GetRoundView(ctx, &competition.GetRoundViewInput{
		Caller:        inv.caller(),
		CompetitionID: id,
		Refresh:       boolOption(inv.options, "refresh"),
	})
	if err != nil {
		return nil, err
	}

	statusIn := &messaging.GetRoundStatusMessageInput{
		NoRounds:      out.NoRounds,
		Locked:        out.Locked,
		Completed:     out.Completed,
		ActivePlayers: out.ActivePlayers,
	}
	if out.Round != nil {
		statusIn.RoundNumber = out.Round.RoundNumber
	}
	if out.Competition != nil {
		statusIn.Finished = out.Competition.Status.IsComplete()
	}
	status, err := c.messagingService.GetRoundStatusMessage(ctx, statusIn)
	if err != nil {
		return nil, err
	}

	return &reply{embed: renderRound(out, status.Message)}, nil
}

func (c *LMSCommand) handleStandings(ctx context.Context, inv *invocation) (*reply, error) {
	id, err := c.resolveCompetition(ctx, inv)
	if err != nil {
		return nil, err
	}

	page := intOption(inv.options, "page")
	if page < 1 {
		page = 1
	}
	out, err := c.competitionService.GetStandings(ctx, &competition.GetStandingsInput{
		Caller:        inv.caller(),
		CompetitionID: id,
		Page:          page,
		Refresh:       boolOption(inv.options, "refresh"),
	})
	if err != nil {
		return nil, err
	}

	embed, components := renderStandings(out)
	return &reply{embed: embed, components: components}, nil
}

func (c *LMSCommand) handleResults(ctx context.Context, inv *invocation) (*reply, error) {
	id, err := c.resolveCompetition(ctx, inv)
	if err != nil {
		return nil, err
	}

	out, err := c.competitionService.GetPlayerResults(ctx, &competition.GetPlayerResultsInput{
		Caller:        inv.caller(),
		CompetitionID: id,
		PlayerID:      strings.TrimSpace(stringOption(inv.options, "player")),
	})
	if err != nil {
		return nil, err
	}
	return &reply{embed: renderResults(out)}, nil
}

func (c *LMSCommand) handlePick(ctx context.Context, inv *invocation) (*reply, error) {
	id, err := c.resolveCompetition(ctx, inv)
	if err != nil {
		return nil, err
	}

	out, err := c.competitionService.SubmitPick(ctx, &competition.SubmitPickInput{
		Caller:        inv.caller(),
		CompetitionID: id,
		Team:          strings.ToUpper(strings.TrimSpace(stringOption(inv.options, "team"))),
	})
	if err != nil {
		return nil, err
	}

	msgIn := &messaging.GetPickMessageInput{
		PlayerName: displayName(inv.user),
		Team:       out.Team,
		Fixture:    out.Fixture,
	}
	if out.Round != nil {
		msgIn.LockTime = out.Round.LockTime
	}
	msg, err := c.messagingService.GetPickMessage(ctx, msgIn)
	if err != nil {
		return nil, err
	}
	return &reply{embed: renderMessage(msg.Title, msg.Message, messaging.ToneEncouraging)}, nil
}

func (c *LMSCommand) handleJoin(ctx context.Context, inv *invocation) (*reply, error) {
	out, err := c.competitionService.JoinCompetition(ctx, &competition.JoinCompetitionInput{
		Caller:     inv.caller(),
		InviteCode: strings.TrimSpace(stringOption(inv.options, "code")),
	})
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("You're in **%s**. Good luck!", competitionName(out.Competition))
	if out.Message != "" {
		message += "\n" + out.Message
	}
	return &reply{embed: renderMessage("Joined", message, messaging.ToneCelebration)}, nil
}

func (c *LMSCommand) handleResult(ctx context.Context, inv *invocation) (*reply, error) {
	id, err := c.resolveCompetition(ctx, inv)
	if err != nil {
		return nil, err
	}

	out, err := c.competitionService.SetFixtureResult(ctx, &competition.SetFixtureResultInput{
		Caller:        inv.caller(),
		CompetitionID: id,
		FixtureID:     strings.TrimSpace(stringOption(inv.options, "fixture")),
		Result:        strings.ToUpper(strings.TrimSpace(stringOption(inv.options, "result"))),
	})
	if err != nil {
		return nil, err
	}
	return &reply{embed: renderResultSet(out)}, nil
}

func (c *LMSCommand) handleProcess(ctx context.Context, inv *invocation) (*reply, error) {
	id, err := c.resolveCompetition(ctx, inv)
	if err != nil {
		return nil, err
	}

	out, err := c.competitionService.ProcessResults(ctx, &competition.ProcessResultsInput{
		Caller:        inv.caller(),
		CompetitionID: id,
	})
	if err != nil {
		return nil, err
	}

	msg, err := c.messagingService.GetProcessResultsMessage(ctx, &messaging.GetProcessResultsMessageInput{
		Code:           out.Code,
		Processed:      out.Processed,
		Eliminated:     out.Eliminated,
		NewRoundNumber: out.NewRoundNumber,
		Diverged:       out.Divergence != nil,
	})
	if err != nil {
		return nil, err
	}

	tone := messaging.ToneNeutral
	if out.Divergence != nil {
		tone = messaging.ToneCommiseration
	}
	return &reply{embed: renderMessage(msg.Title, msg.Message, tone)}, nil
}

func (c *LMSCommand) handleNewRound(ctx context.Context, inv *invocation) (*reply, error) {
	lock, err := parseLockInput(stringOption(inv.options, "lock"))
	if err != nil {
		return nil, err
	}
	id, err := c.resolveCompetition(ctx, inv)
	if err != nil {
		return nil, err
	}

	out, err := c.competitionService.CreateRound(ctx, &competition.CreateRoundInput{
		Caller:        inv.caller(),
		CompetitionID: id,
		LockTime:      lock,
	})
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Picks lock <t:%d:f>.", lock.Unix())
	return &reply{embed: renderMessage(fmt.Sprintf("Round %d is open", out.Round.RoundNumber), message, messaging.ToneEncouraging)}, nil
}

func (c *LMSCommand) handleWatch(ctx context.Context, inv *invocation) (*reply, error) {
	id, err := c.resolveCompetition(ctx, inv)
	if err != nil {
		return nil, err
	}

	if _, err := c.competitionService.Watch(ctx, &competition.WatchInput{
		UserID:        inv.user.ID,
		ChannelID:     inv.channelID,
		CompetitionID: id,
	}); err != nil {
		return nil, err
	}
	return &reply{embed: renderMessage("Watching", fmt.Sprintf("This channel will hear about new rounds, locks and results for `%s`.", id), messaging.ToneNeutral)}, nil
}

func (c *LMSCommand) handleUnwatch(ctx context.Context, inv *invocation) (*reply, error) {
	id, err := c.resolveCompetition(ctx, inv)
	if err != nil {
		return nil, err
	}

	if _, err := c.competitionService.Unwatch(ctx, &competition.UnwatchInput{
		ChannelID:     inv.channelID,
		CompetitionID: id,
	}); err != nil {
		return nil, err
	}
	return &reply{embed: renderMessage("Stopped watching", fmt.Sprintf("No more announcements for `%s` here.", id), messaging.ToneNeutral)}, nil
}

func (c *LMSCommand) handleExport(ctx context.Context, inv *invocation) (*reply, error) {
	id, err := c.resolveCompetition(ctx, inv)
	if err != nil {
		return nil, err
	}

	out, err := c.exporter.ExportStandings(ctx, &export.ExportStandingsInput{
		Caller:        inv.caller(),
		CompetitionID: id,
	})
	if err != nil {
		return nil, err
	}
	return &reply{
		embed: renderMessage("Standings export", fmt.Sprintf("%s in `%s`.", plural(out.Players, "player", "players"), out.FileName), messaging.ToneNeutral),
		file:  out,
	}, nil
}

// parseLockInput reads an organiser-entered lock time, UTC unless an offset is given
func parseLockInput(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range lockTimeLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidLockTime
}

func displayName(u *discordgo.User) string {
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}

func capitalise(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
