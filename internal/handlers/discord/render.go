package discord

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/lastman/internal/models"
	"github.com/KirkDiggler/lastman/internal/services/competition"
	"github.com/KirkDiggler/lastman/internal/services/messaging"
)

const (
	standingsButtonPrefix = "lms_standings"

	// Discord rejects embed descriptions longer than this
	maxDescription = 4096
)

type standingsAction string

const (
	standingsPrev    standingsAction = "prev"
	standingsNext    standingsAction = "next"
	standingsRefresh standingsAction = "refresh"
)

// standingsButtonID encodes a standings button. The competition ID goes last
// so it may contain the separator.
func standingsButtonID(action standingsAction, competitionID string, page int) string {
	return fmt.Sprintf("%s:%s:%d:%s", standingsButtonPrefix, action, page, competitionID)
}

func parseStandingsButton(customID string) (action standingsAction, competitionID string, page int, ok bool) {
	parts := strings.SplitN(customID, ":", 4)
	if len(parts) != 4 || parts[0] != standingsButtonPrefix || parts[3] == "" {
		return "", "", 0, false
	}
	page, err := strconv.Atoi(parts[2])
	if err != nil || page < 1 {
		return "", "", 0, false
	}
	switch standingsAction(parts[1]) {
	case standingsPrev, standingsNext, standingsRefresh:
		return standingsAction(parts[1]), parts[3], page, true
	}
	return "", "", 0, false
}

func toneColor(tone messaging.MessageTone) int {
	switch tone {
	case messaging.ToneCelebration, messaging.ToneEncouraging:
		return ColorSuccess
	case messaging.ToneCommiseration:
		return ColorWarning
	default:
		return ColorNeutral
	}
}

func renderMessage(title, message string, tone messaging.MessageTone) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: truncate(message),
		Color:       toneColor(tone),
	}
}

func renderError(out *messaging.GetErrorMessageOutput) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       out.Title,
		Description: out.Message,
		Color:       ColorError,
	}
	if out.Retry {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: "Try again in a moment."}
	}
	return embed
}

func renderCompetitions(comps []*models.Competition) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "Your competitions",
		Color: ColorNeutral,
	}
	if len(comps) == 0 {
		embed.Description = "You're not in any competitions yet. Join one with `/lms join`."
		return embed
	}

	lines := make([]string, 0, len(comps))
	for _, c := range comps {
		parts := []string{fmt.Sprintf("**%s** (`%s`)", c.Name, c.ID), strings.ToLower(string(c.Status))}
		if c.CurrentRound > 0 {
			parts = append(parts, fmt.Sprintf("round %d", c.CurrentRound))
		}
		parts = append(parts, plural(c.PlayerCount, "player", "players"))
		if c.IsOrganiser {
			parts = append(parts, "organiser")
		}
		lines = append(lines, strings.Join(parts, " · "))
	}
	embed.Description = truncate(strings.Join(lines, "\n"))
	return embed
}

func renderRound(out *competition.GetRoundViewOutput, status string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       competitionName(out.Competition),
		Description: status,
		Color:       ColorNeutral,
	}
	if out.NoRounds || out.Round == nil {
		return embed
	}

	embed.Title = fmt.Sprintf("%s: round %d", competitionName(out.Competition), out.Round.RoundNumber)
	switch {
	case out.Completed:
		embed.Color = ColorSuccess
	case out.Locked:
		embed.Color = ColorWarning
	}

	lock := "Not set"
	if out.Round.LockTime != nil {
		unix := out.Round.LockTime.Unix()
		lock = fmt.Sprintf("<t:%d:f> (<t:%d:R>)", unix, unix)
	}
	embed.Fields = append(embed.Fields,
		&discordgo.MessageEmbedField{Name: "Lock", Value: lock, Inline: true},
		&discordgo.MessageEmbedField{Name: "Players left", Value: strconv.Itoa(out.ActivePlayers), Inline: true},
	)

	if out.Me != nil {
		pick := "None yet"
		if out.Me.CurrentPick != "" {
			pick = out.Me.CurrentPick
		}
		if out.Me.CurrentPick != "" || out.Locked {
			pick += " · " + outcomeLabel(out.MyOutcome)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Your pick", Value: pick, Inline: true})
	}

	showIDs := out.Competition != nil && out.Competition.IsOrganiser
	lines := make([]string, 0, len(out.Fixtures))
	for _, fx := range out.Fixtures {
		lines = append(lines, fixtureLine(fx, showIDs))
	}
	if len(lines) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Fixtures",
			Value: truncateField(strings.Join(lines, "\n")),
		})
	}

	if !out.FetchedAt.IsZero() {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: "Updated " + out.FetchedAt.UTC().Format("15:04:05 MST")}
	}
	return embed
}

func fixtureLine(fx *models.Fixture, showID bool) string {
	line := fx.Descriptor()
	switch {
	case fx.Result == models.ResultDraw:
		line += ": draw"
	case fx.HasResult():
		line += ": " + fx.Result + " won"
	}
	if fx.IsProcessed() {
		line += " ✓"
	}
	if showID {
		line = fmt.Sprintf("`%s` %s", fx.ID, line)
	}
	return line
}

func renderStandings(out *competition.GetStandingsOutput) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	embed := &discordgo.MessageEmbed{
		Title: competitionName(out.Competition) + " standings",
		Color: ColorNeutral,
	}

	header := fmt.Sprintf("**%d still standing, %d eliminated**", out.ActiveCount, out.EliminatedCount)
	if out.Page.Paginated {
		header += fmt.Sprintf(" · page %d of %d", out.Page.Page, out.Page.TotalPages)
	}

	lines := []string{header}
	hidden := false
	for _, st := range out.Page.Items {
		if !st.PickVisible {
			hidden = true
		}
		lines = append(lines, standingLine(st))
	}
	if hidden {
		lines = append(lines, "", "_Picks stay hidden until the round locks._")
	}
	embed.Description = truncate(strings.Join(lines, "\n"))

	if !out.FetchedAt.IsZero() {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: "Updated " + out.FetchedAt.UTC().Format("15:04:05 MST")}
	}

	id := ""
	if out.Competition != nil {
		id = out.Competition.ID
	}
	buttons := []discordgo.MessageComponent{}
	if out.Page.Paginated {
		buttons = append(buttons,
			discordgo.Button{
				Label:    "Previous",
				Style:    discordgo.SecondaryButton,
				CustomID: standingsButtonID(standingsPrev, id, max(out.Page.Page-1, 1)),
				Disabled: !out.Page.HasPrev(),
			},
			discordgo.Button{
				Label:    "Next",
				Style:    discordgo.SecondaryButton,
				CustomID: standingsButtonID(standingsNext, id, min(out.Page.Page+1, out.Page.TotalPages)),
				Disabled: !out.Page.HasNext(),
			},
		)
	}
	buttons = append(buttons, discordgo.Button{
		Label:    "Refresh",
		Style:    discordgo.PrimaryButton,
		CustomID: standingsButtonID(standingsRefresh, id, max(out.Page.Page, 1)),
	})

	return embed, []discordgo.MessageComponent{discordgo.ActionsRow{Components: buttons}}
}

func standingLine(st *models.PlayerStanding) string {
	p := st.Player
	name := p.DisplayName
	if st.IsCurrentUser {
		name += " (you)"
	}

	if !p.IsActive() {
		line := "~~" + name + "~~"
		if st.EliminationPick != nil {
			line += fmt.Sprintf(" · out in round %d", st.EliminationPick.RoundNumber)
			if st.EliminationPick.PickTeam != "" {
				line += " with " + st.EliminationPick.PickTeam
			}
		}
		return line
	}

	parts := []string{"**" + name + "**", plural(p.LivesRemaining, "life", "lives")}
	switch {
	case !st.PickVisible:
		parts = append(parts, "pick hidden")
	case p.CurrentPick != "":
		parts = append(parts, p.CurrentPick)
	default:
		parts = append(parts, "no pick")
	}
	if st.StreakType == models.PickResultWin && st.CurrentStreak > 1 {
		parts = append(parts, fmt.Sprintf("%d wins running", st.CurrentStreak))
	}
	if len(st.RecentForm) > 0 {
		parts = append(parts, fmt.Sprintf("%d%%", st.WinRate), formDots(st.RecentForm))
	}
	return strings.Join(parts, " · ")
}

// renderResultSet confirms a recorded result and previews what processing
// will cost the players who picked from the fixture
func renderResultSet(out *competition.SetFixtureResultOutput) *discordgo.MessageEmbed {
	embed := renderMessage("Result recorded", fixtureLine(out.Fixture, false), messaging.ToneNeutral)
	if len(out.Preview) == 0 {
		return embed
	}

	lines := make([]string, 0, len(out.Preview))
	for _, p := range out.Preview {
		line := fmt.Sprintf("%s (%s) · %s", p.Before.DisplayName, p.Before.CurrentPick, outcomeLabel(p.Outcome))
		switch {
		case p.After.Status == models.PlayerStatusEliminated:
			line += " · eliminated"
		case p.After.LivesRemaining != p.Before.LivesRemaining:
			line += " · " + plural(p.After.LivesRemaining, "life", "lives") + " left"
		}
		lines = append(lines, line)
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "When processed",
		Value: truncateField(strings.Join(lines, "\n")),
	})
	return embed
}

func renderResults(out *competition.GetPlayerResultsOutput) *discordgo.MessageEmbed {
	p := out.Player
	embed := &discordgo.MessageEmbed{
		Title: "Results: " + p.DisplayName,
		Color: ColorNeutral,
	}
	if p.IsActive() {
		embed.Description = plural(p.LivesRemaining, "life", "lives") + " left"
	} else {
		embed.Description = "Eliminated"
		embed.Color = ColorWarning
	}

	if len(out.Results) == 0 {
		embed.Description += "\nNo rounds played yet."
		return embed
	}

	lines := make([]string, 0, len(out.Results))
	for _, r := range out.Results {
		if r.Hidden {
			lines = append(lines, fmt.Sprintf("Round %d: pick hidden until the round locks", r.Entry.RoundNumber))
			continue
		}
		pick := r.Entry.PickTeam
		if pick == "" {
			pick = "no pick"
		}
		line := fmt.Sprintf("Round %d: %s", r.Entry.RoundNumber, pick)
		if r.Entry.Fixture != "" {
			line += " (" + r.Entry.Fixture + ")"
		}
		lines = append(lines, line+" · "+outcomeLabel(r.Outcome))
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "History",
		Value: truncateField(strings.Join(lines, "\n")),
	})

	stats := []string{fmt.Sprintf("Win rate %d%%", out.Stats.WinRate)}
	if out.Stats.CurrentStreak > 0 {
		stats = append(stats, fmt.Sprintf("streak %d %s", out.Stats.CurrentStreak, out.Stats.StreakType))
	}
	if len(out.Stats.RecentForm) > 0 {
		stats = append(stats, "form "+formDots(out.Stats.RecentForm))
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "Recent",
		Value: strings.Join(stats, " · "),
	})
	return embed
}

func outcomeLabel(r models.PickResult) string {
	switch r {
	case models.PickResultWin:
		return "✅ won"
	case models.PickResultLoss:
		return "❌ lost"
	case models.PickResultDraw:
		return "➖ drew"
	case models.PickResultNoPick:
		return "⛔ no pick"
	default:
		return "⏳ pending"
	}
}

func formDots(form []models.PickResult) string {
	dots := make([]string, 0, len(form))
	for _, r := range form {
		switch r {
		case models.PickResultWin:
			dots = append(dots, "🟢")
		case models.PickResultPending:
			dots = append(dots, "⚪")
		default:
			dots = append(dots, "🔴")
		}
	}
	return strings.Join(dots, "")
}

func competitionName(c *models.Competition) string {
	if c == nil || c.Name == "" {
		return "Competition"
	}
	return c.Name
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}

func truncate(s string) string {
	return truncateTo(s, maxDescription)
}

// Field values are limited to 1024 characters
func truncateField(s string) string {
	return truncateTo(s, 1024)
}

func truncateTo(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}
