package discord

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/lastman/internal/api"
	"github.com/KirkDiggler/lastman/internal/export"
	exportMocks "github.com/KirkDiggler/lastman/internal/export/mocks"
	"github.com/KirkDiggler/lastman/internal/models"
	"github.com/KirkDiggler/lastman/internal/services/competition"
	competitionMocks "github.com/KirkDiggler/lastman/internal/services/competition/mocks"
	"github.com/KirkDiggler/lastman/internal/services/messaging"
	messagingMocks "github.com/KirkDiggler/lastman/internal/services/messaging/mocks"
)

type LMSCommandTestSuite struct {
	suite.Suite
	mockCtrl        *gomock.Controller
	mockCompetition *competitionMocks.MockService
	mockMessaging   *messagingMocks.MockService
	mockExporter    *exportMocks.MockExporter
	cmd             *LMSCommand
	ctx             context.Context
	user            *discordgo.User
	caller          competition.Caller
}

func (s *LMSCommandTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockCompetition = competitionMocks.NewMockService(s.mockCtrl)
	s.mockMessaging = messagingMocks.NewMockService(s.mockCtrl)
	s.mockExporter = exportMocks.NewMockExporter(s.mockCtrl)
	s.ctx = context.Background()
	s.user = &discordgo.User{ID: "discord-alice", Username: "alice", GlobalName: "Alice"}
	s.caller = competition.Caller{UserID: "discord-alice"}

	s.cmd = NewLMSCommand(&LMSCommandConfig{
		CompetitionService: s.mockCompetition,
		MessagingService:   s.mockMessaging,
		Exporter:           s.mockExporter,
		Logger:             slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func (s *LMSCommandTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestLMSCommandSuite(t *testing.T) {
	suite.Run(t, new(LMSCommandTestSuite))
}

func stringOpt(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionString, Value: value}
}

func intOpt(name string, value int) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionInteger, Value: float64(value)}
}

func (s *LMSCommandTestSuite) invoke(sub string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *invocation {
	return &invocation{
		subcommand: sub,
		options:    optionMap(opts),
		user:       s.user,
		channelID:  "chan-1",
	}
}

func (s *LMSCommandTestSuite) TestCommandDefinition() {
	def := s.cmd.GetCommand()
	s.Equal("lms", def.Name)

	var names []string
	for _, opt := range def.Options {
		s.Equal(discordgo.ApplicationCommandOptionSubCommand, opt.Type)
		names = append(names, opt.Name)
	}
	s.Equal([]string{
		"link", "unlink", "competitions", "round", "standings", "results", "pick",
		"join", "result", "process", "newround", "watch", "unwatch", "export",
	}, names)
}

func (s *LMSCommandTestSuite) TestUnknownSubcommand() {
	_, err := s.cmd.run(s.ctx, s.invoke("roll"))
	s.ErrorIs(err, ErrUnknownSubcommand)
}

func (s *LMSCommandTestSuite) TestLink() {
	expires := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	s.mockCompetition.EXPECT().
		Link(gomock.Any(), &competition.LinkInput{UserID: "discord-alice", Token: "tok"}).
		Return(&competition.LinkOutput{Session: &models.Session{DisplayName: "Alice A", ExpiresAt: expires}}, nil)

	r, err := s.cmd.run(s.ctx, s.invoke("link", stringOpt("token", " tok ")))
	s.Require().NoError(err)
	s.Equal("Account linked", r.embed.Title)
	s.Contains(r.embed.Description, "Alice A")
	s.Contains(r.embed.Description, "<t:1746057600:f>")
}

func (s *LMSCommandTestSuite) TestResolveCompetitionFromSingleMembership() {
	s.mockCompetition.EXPECT().ListCompetitions(gomock.Any(), &competition.ListCompetitionsInput{Caller: s.caller}).
		Return(&competition.ListCompetitionsOutput{Competitions: []*models.Competition{{ID: "comp-1"}}}, nil)
	s.mockCompetition.EXPECT().
		SubmitPick(gomock.Any(), &competition.SubmitPickInput{Caller: s.caller, CompetitionID: "comp-1", Team: "ARS"}).
		Return(&competition.SubmitPickOutput{
			Round:   &models.Round{RoundNumber: 3},
			Fixture: &models.Fixture{HomeTeamShort: "AVL", AwayTeamShort: "ARS"},
			Team:    "ARS",
		}, nil)
	s.mockMessaging.EXPECT().GetPickMessage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in *messaging.GetPickMessageInput) (*messaging.GetPickMessageOutput, error) {
			s.Equal("Alice", in.PlayerName)
			s.Equal("ARS", in.Team)
			return &messaging.GetPickMessageOutput{Title: "Pick locked in", Message: "Alice is backing ARS."}, nil
		})

	r, err := s.cmd.run(s.ctx, s.invoke("pick", stringOpt("team", " ars ")))
	s.Require().NoError(err)
	s.Equal("Pick locked in", r.embed.Title)
}

func (s *LMSCommandTestSuite) TestResolveCompetitionNeedsChoice() {
	s.mockCompetition.EXPECT().ListCompetitions(gomock.Any(), gomock.Any()).
		Return(&competition.ListCompetitionsOutput{Competitions: []*models.Competition{{ID: "a"}, {ID: "b"}}}, nil)

	_, err := s.cmd.run(s.ctx, s.invoke("round"))
	s.ErrorIs(err, ErrChooseCompetition)

	s.mockCompetition.EXPECT().ListCompetitions(gomock.Any(), gomock.Any()).
		Return(&competition.ListCompetitionsOutput{}, nil)

	_, err = s.cmd.run(s.ctx, s.invoke("round"))
	s.ErrorIs(err, ErrNoCompetitions)
}

func (s *LMSCommandTestSuite) TestRound() {
	s.mockCompetition.EXPECT().
		GetRoundView(gomock.Any(), &competition.GetRoundViewInput{Caller: s.caller, CompetitionID: "comp-1"}).
		Return(&competition.GetRoundViewOutput{
			Competition:   &models.Competition{ID: "comp-1", Name: "Office LMS", Status: models.CompetitionStatusActive},
			Round:         &models.Round{RoundNumber: 3},
			Locked:        true,
			ActivePlayers: 5,
		}, nil)
	s.mockMessaging.EXPECT().
		GetRoundStatusMessage(gomock.Any(), &messaging.GetRoundStatusMessageInput{RoundNumber: 3, Locked: true, ActivePlayers: 5}).
		Return(&messaging.GetRoundStatusMessageOutput{Message: "Round 3 is locked."}, nil)

	r, err := s.cmd.run(s.ctx, s.invoke("round", stringOpt("competition", "comp-1")))
	s.Require().NoError(err)
	s.Equal("Office LMS: round 3", r.embed.Title)
	s.Equal("Round 3 is locked.", r.embed.Description)
}

func (s *LMSCommandTestSuite) TestStandingsPageDefaultsToOne() {
	s.mockCompetition.EXPECT().
		GetStandings(gomock.Any(), &competition.GetStandingsInput{Caller: s.caller, CompetitionID: "comp-1", Page: 1}).
		Return(&competition.GetStandingsOutput{Competition: &models.Competition{ID: "comp-1", Name: "Office LMS"}}, nil)

	r, err := s.cmd.run(s.ctx, s.invoke("standings", stringOpt("competition", "comp-1"), intOpt("page", 0)))
	s.Require().NoError(err)
	s.Equal("Office LMS standings", r.embed.Title)
	s.Len(r.components, 1)
}

func (s *LMSCommandTestSuite) TestProcessWithDivergence() {
	s.mockCompetition.EXPECT().ProcessResults(gomock.Any(), gomock.Any()).
		Return(&competition.ProcessResultsOutput{
			Code:       api.CodeSuccess,
			Processed:  2,
			Divergence: competition.ErrProcessingDivergence,
		}, nil)
	s.mockMessaging.EXPECT().
		GetProcessResultsMessage(gomock.Any(), &messaging.GetProcessResultsMessageInput{Code: api.CodeSuccess, Processed: 2, Diverged: true}).
		Return(&messaging.GetProcessResultsMessageOutput{Title: "Results processed", Message: "Processed 2 fixtures."}, nil)

	r, err := s.cmd.run(s.ctx, s.invoke("process", stringOpt("competition", "comp-1")))
	s.Require().NoError(err)
	s.Equal(ColorWarning, r.embed.Color)
}

func (s *LMSCommandTestSuite) TestNewRoundParsesLockTime() {
	lock := time.Date(2025, 4, 26, 11, 0, 0, 0, time.UTC)
	s.mockCompetition.EXPECT().
		CreateRound(gomock.Any(), &competition.CreateRoundInput{Caller: s.caller, CompetitionID: "comp-1", LockTime: lock}).
		Return(&competition.CreateRoundOutput{Round: &models.Round{RoundNumber: 4, LockTime: &lock}}, nil)

	r, err := s.cmd.run(s.ctx, s.invoke("newround", stringOpt("competition", "comp-1"), stringOpt("lock", "2025-04-26 11:00")))
	s.Require().NoError(err)
	s.Equal("Round 4 is open", r.embed.Title)

	_, err = s.cmd.run(s.ctx, s.invoke("newround", stringOpt("competition", "comp-1"), stringOpt("lock", "next saturday")))
	s.ErrorIs(err, ErrInvalidLockTime)
}

func (s *LMSCommandTestSuite) TestWatchUsesChannel() {
	s.mockCompetition.EXPECT().
		Watch(gomock.Any(), &competition.WatchInput{UserID: "discord-alice", ChannelID: "chan-1", CompetitionID: "comp-1"}).
		Return(&competition.WatchOutput{Watch: &models.Watch{}}, nil)

	r, err := s.cmd.run(s.ctx, s.invoke("watch", stringOpt("competition", "comp-1")))
	s.Require().NoError(err)
	s.Equal("Watching", r.embed.Title)
}

func (s *LMSCommandTestSuite) TestExportAttachesWorkbook() {
	s.mockExporter.EXPECT().
		ExportStandings(gomock.Any(), &export.ExportStandingsInput{Caller: s.caller, CompetitionID: "comp-1"}).
		Return(&export.ExportStandingsOutput{FileName: "office-lms-2025-04-19.xlsx", Data: []byte("xlsx"), Players: 12}, nil)

	r, err := s.cmd.run(s.ctx, s.invoke("export", stringOpt("competition", "comp-1")))
	s.Require().NoError(err)
	s.Require().NotNil(r.file)
	s.Equal("office-lms-2025-04-19.xlsx", r.file.FileName)
	s.Contains(r.embed.Description, "12 players")
}

func (s *LMSCommandTestSuite) TestErrorEmbed() {
	embed := s.cmd.errorEmbed(s.ctx, ErrChooseCompetition)
	s.Equal("Can't do that", embed.Title)
	s.Equal("You're in more than one competition, choose one with the competition option.", embed.Description)

	s.mockMessaging.EXPECT().GetErrorMessage(gomock.Any(), &messaging.GetErrorMessageInput{Err: competition.ErrRoundLocked}).
		Return(&messaging.GetErrorMessageOutput{Title: "Round locked", Message: "Too late."}, nil)

	embed = s.cmd.errorEmbed(s.ctx, competition.ErrRoundLocked)
	s.Equal("Round locked", embed.Title)
	s.Equal(ColorError, embed.Color)
}

func (s *LMSCommandTestSuite) TestAnnouncementEmbeds() {
	bot := &Bot{messagingService: s.mockMessaging, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	lock := time.Date(2025, 4, 19, 11, 0, 0, 0, time.UTC)

	s.mockMessaging.EXPECT().
		GetWatchEventMessage(gomock.Any(), &messaging.GetWatchEventMessageInput{
			Kind:            competition.WatchEventRoundLocked,
			CompetitionName: "Office LMS",
			RoundNumber:     3,
		}).
		Return(&messaging.GetWatchEventMessageOutput{Title: "Office LMS: round 3 locked", Message: "No more changes.", Tone: messaging.ToneNeutral}, nil)
	s.mockMessaging.EXPECT().
		GetWatchEventMessage(gomock.Any(), &messaging.GetWatchEventMessageInput{
			Kind:            competition.WatchEventCompetitionComplete,
			CompetitionName: "Office LMS",
			Survivors:       []string{"Bob"},
		}).
		Return(&messaging.GetWatchEventMessageOutput{Title: "Office LMS is complete", Message: "Bob is the last one standing!", Tone: messaging.ToneCelebration}, nil)

	comp := &models.Competition{Name: "Office LMS"}
	embeds, err := bot.announcementEmbeds(s.ctx, []*competition.WatchEvent{
		{Kind: competition.WatchEventRoundLocked, Competition: comp, Round: &models.Round{RoundNumber: 3, LockTime: &lock}},
		{Kind: competition.WatchEventCompetitionComplete, Competition: comp, Survivors: []*models.Player{{DisplayName: "Bob"}}},
	})
	s.Require().NoError(err)
	s.Require().Len(embeds, 2)
	s.Equal("2025-04-19T11:00:00Z", embeds[0].Timestamp)
	s.Equal(ColorSuccess, embeds[1].Color)
}

func (s *LMSCommandTestSuite) TestStandingsInputTracksMessage() {
	bot := &Bot{}
	in := bot.standingsInput("discord-alice", &discordgo.Message{ID: "msg-1"}, "comp-1", standingsRefresh, 2)
	s.Equal(&competition.GetStandingsInput{
		Caller:        s.caller,
		CompetitionID: "comp-1",
		ViewID:        "msg-1",
		Page:          2,
		Refresh:       true,
	}, in)
}
