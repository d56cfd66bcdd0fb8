package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/lastman/internal/export"
	"github.com/KirkDiggler/lastman/internal/scheduler"
	"github.com/KirkDiggler/lastman/internal/services/competition"
	"github.com/KirkDiggler/lastman/internal/services/messaging"
)

// Bot represents the Discord bot instance
type Bot struct {
	session            *discordgo.Session
	commands           map[string]CommandHandler
	commandIDs         map[string]string // Maps command name to command ID
	competitionService competition.Service
	messagingService   messaging.Service
	exporter           export.Exporter
	config             *Config
	logger             *slog.Logger
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	CompetitionService competition.Service
	MessagingService   messaging.Service
	Exporter           export.Exporter

	Logger *slog.Logger
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	if cfg.CompetitionService == nil {
		return nil, errors.New("competition service cannot be nil")
	}

	if cfg.MessagingService == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	if cfg.Exporter == nil {
		return nil, errors.New("exporter cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// Create a new Discord session
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	bot := &Bot{
		session:            session,
		commands:           make(map[string]CommandHandler),
		commandIDs:         make(map[string]string),
		competitionService: cfg.CompetitionService,
		messagingService:   cfg.MessagingService,
		exporter:           cfg.Exporter,
		config:             cfg,
		logger:             logger.With("component", "discord"),
	}

	session.AddHandler(bot.handleInteraction)
	session.AddHandler(bot.handleMessageDelete)

	return bot, nil
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	lmsCmd := NewLMSCommand(&LMSCommandConfig{
		CompetitionService: b.competitionService,
		MessagingService:   b.messagingService,
		Exporter:           b.exporter,
		Logger:             b.logger,
	})
	if err := b.RegisterCommand(lmsCmd); err != nil {
		return fmt.Errorf("failed to register lms command: %w", err)
	}

	b.logger.Info("bot is running")
	return nil
}

// Stop removes registered commands and closes the Discord connection
func (b *Bot) Stop() error {
	appID := b.appID()
	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			b.logger.Warn("failed to delete command", "command", cmdName, "command_id", cmdID, "error", err)
		} else {
			b.logger.Info("deleted command", "command", cmdName, "command_id", cmdID)
		}
	}

	return b.session.Close()
}

func (b *Bot) appID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	// Fall back to session user ID if application ID is not provided
	return b.session.State.User.ID
}

// RegisterCommand registers a command with Discord, for the configured guild
// when one is set and globally otherwise
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	b.logger.Info("registering command", "command", cmd.GetName(), "guild_id", b.config.GuildID)

	createdCmd, err := b.session.ApplicationCommandCreate(b.appID(), b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	b.logger.Info("registered command", "command", cmd.GetName(), "command_id", createdCmd.ID)

	return nil
}

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		if h, ok := b.commands[name]; ok {
			if err := h.Handle(s, i); err != nil {
				b.logger.Error("failed to handle command", "command", name, "error", err)
			}
		}
	case discordgo.InteractionMessageComponent:
		if err := b.handleComponentInteraction(s, i); err != nil {
			b.logger.Error("failed to handle component interaction",
				"custom_id", i.MessageComponentData().CustomID,
				"error", err,
			)
		}
	}
}

// handleComponentInteraction handles button clicks
func (b *Bot) handleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	customID := i.MessageComponentData().CustomID

	action, competitionID, page, ok := parseStandingsButton(customID)
	if !ok {
		return RespondWithEphemeralMessage(s, i, "That button no longer does anything.")
	}

	user := interactionUser(i)
	if user == nil {
		return ErrMissingInteraction
	}

	if err := DeferUpdate(s, i); err != nil {
		return fmt.Errorf("failed to defer update: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	out, err := b.competitionService.GetStandings(ctx, b.standingsInput(user.ID, i.Message, competitionID, action, page))
	if errors.Is(err, competition.ErrSuperseded) {
		// A later click on the same message renders instead
		b.logger.Debug("standings click superseded", "competition_id", competitionID)
		return nil
	}
	if err != nil {
		b.logger.Warn("standings button failed", "competition_id", competitionID, "error", err)
		embed, buildErr := b.errorEmbed(ctx, err)
		if buildErr != nil {
			return buildErr
		}
		_, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		})
		return err
	}

	embed, components := renderStandings(out)
	return EditWithEmbed(s, i, embed, components)
}

// handleMessageDelete releases the page cursor of a deleted standings message
func (b *Bot) handleMessageDelete(_ *discordgo.Session, m *discordgo.MessageDelete) {
	if m == nil || m.Message == nil || m.ID == "" {
		return
	}

	if _, err := b.competitionService.ForgetView(context.Background(), &competition.ForgetViewInput{ViewID: m.ID}); err != nil {
		b.logger.Warn("failed to forget standings view", "message_id", m.ID, "error", err)
	}
}

// standingsInput ties the page to the message showing it, so the pager can
// reset when the player set changes underneath it
func (b *Bot) standingsInput(userID string, msg *discordgo.Message, competitionID string, action standingsAction, page int) *competition.GetStandingsInput {
	input := &competition.GetStandingsInput{
		Caller:        competition.Caller{UserID: userID},
		CompetitionID: competitionID,
		Page:          page,
		Refresh:       action == standingsRefresh,
	}
	if msg != nil {
		input.ViewID = msg.ID
	}
	return input
}

func (b *Bot) errorEmbed(ctx context.Context, err error) (*discordgo.MessageEmbed, error) {
	out, err := b.messagingService.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{Err: err})
	if err != nil {
		return nil, err
	}
	return renderError(out), nil
}

// Announce posts watch events to a channel
func (b *Bot) Announce(ctx context.Context, input *scheduler.AnnounceInput) error {
	embeds, err := b.announcementEmbeds(ctx, input.Events)
	if err != nil {
		return err
	}

	var errs []error
	for _, embed := range embeds {
		if _, err := b.session.ChannelMessageSendEmbed(input.ChannelID, embed, discordgo.WithContext(ctx)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (b *Bot) announcementEmbeds(ctx context.Context, events []*competition.WatchEvent) ([]*discordgo.MessageEmbed, error) {
	embeds := make([]*discordgo.MessageEmbed, 0, len(events))
	for _, e := range events {
		in := &messaging.GetWatchEventMessageInput{
			Kind:            e.Kind,
			CompetitionName: competitionName(e.Competition),
		}
		if e.Round != nil {
			in.RoundNumber = e.Round.RoundNumber
		}
		for _, p := range e.Survivors {
			in.Survivors = append(in.Survivors, p.DisplayName)
		}

		msg, err := b.messagingService.GetWatchEventMessage(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("failed to build %s announcement: %w", e.Kind, err)
		}
		embed := renderMessage(msg.Title, msg.Message, msg.Tone)
		if e.Kind == competition.WatchEventRoundLocked && e.Round != nil && e.Round.LockTime != nil {
			embed.Timestamp = e.Round.LockTime.UTC().Format("2006-01-02T15:04:05Z07:00")
		}
		embeds = append(embeds, embed)
	}
	return embeds, nil
}
