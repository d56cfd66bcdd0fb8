package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/KirkDiggler/lastman/internal/api"
	"github.com/KirkDiggler/lastman/internal/common/clock"
	"github.com/KirkDiggler/lastman/internal/export"
	"github.com/KirkDiggler/lastman/internal/models"
	"github.com/KirkDiggler/lastman/internal/services/competition"
)

// cliUserID is the chat-side identity every CLI call runs as. The token flag
// carries the real LMS identity.
const cliUserID = "cli"

// services are the collaborators a command needs
type services struct {
	Competition competition.Service
	Exporter    export.Exporter
	Clock       clock.Clock

	// Close releases whatever the factory opened
	Close func() error
}

// serviceFactory builds services from the parsed global flags
type serviceFactory func(c *cli.Context) (*services, error)

func newApp(out io.Writer, factory serviceFactory) *cli.App {
	return &cli.App{
		Name:      "lastmanctl",
		Usage:     "inspect Last Man Standing competitions from the terminal",
		Writer:    out,
		ErrWriter: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api-url",
				Usage:   "base URL of the LMS API",
				EnvVars: []string{"LASTMAN_API_URL"},
			},
			&cli.StringFlag{
				Name:     "token",
				Usage:    "LMS API token",
				EnvVars:  []string{"LASTMAN_TOKEN"},
				Required: true,
			},
			&cli.StringFlag{
				Name:    "redis-addr",
				Usage:   "redis used for the competition cache",
				Value:   "localhost:6379",
				EnvVars: []string{"REDIS_ADDR"},
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "API request timeout",
				Value: 10 * time.Second,
			},
		},
		Commands: []*cli.Command{
			standingsCommand(factory),
			roundCommand(factory),
			exportCommand(factory),
		},
	}
}

// withServices runs fn with freshly built services and the caller identity
func withServices(factory serviceFactory, fn func(c *cli.Context, svc *services, caller competition.Caller) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		if c.Args().Len() != 1 {
			return errors.New("expected exactly one competition ID")
		}

		svc, err := factory(c)
		if err != nil {
			return err
		}
		if svc.Close != nil {
			defer svc.Close()
		}

		caller := competition.Caller{
			UserID:  cliUserID,
			Session: api.SessionFromToken(cliUserID, c.String("token"), svc.Clock.Now()),
		}
		return fn(c, svc, caller)
	}
}

func standingsCommand(factory serviceFactory) *cli.Command {
	return &cli.Command{
		Name:      "standings",
		Usage:     "print one page of a competition's standings",
		ArgsUsage: "<competition-id>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "page", Value: 1, Usage: "1-based page"},
		},
		Action: withServices(factory, func(c *cli.Context, svc *services, caller competition.Caller) error {
			out, err := svc.Competition.GetStandings(c.Context, &competition.GetStandingsInput{
				Caller:        caller,
				CompetitionID: c.Args().First(),
				Page:          c.Int("page"),
				Refresh:       true,
			})
			if err != nil {
				return fmt.Errorf("failed to get standings: %w", err)
			}
			return printStandings(c.App.Writer, out)
		}),
	}
}

func roundCommand(factory serviceFactory) *cli.Command {
	return &cli.Command{
		Name:      "round",
		Usage:     "print the current round and its fixtures",
		ArgsUsage: "<competition-id>",
		Action: withServices(factory, func(c *cli.Context, svc *services, caller competition.Caller) error {
			out, err := svc.Competition.GetRoundView(c.Context, &competition.GetRoundViewInput{
				Caller:        caller,
				CompetitionID: c.Args().First(),
				Refresh:       true,
			})
			if err != nil {
				return fmt.Errorf("failed to get round: %w", err)
			}
			return printRound(c.App.Writer, out)
		}),
	}
}

func exportCommand(factory serviceFactory) *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "write the standings workbook to disk",
		ArgsUsage: "<competition-id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Usage: "output path, defaults to the generated file name"},
		},
		Action: withServices(factory, func(c *cli.Context, svc *services, caller competition.Caller) error {
			out, err := svc.Exporter.ExportStandings(c.Context, &export.ExportStandingsInput{
				Caller:        caller,
				CompetitionID: c.Args().First(),
				Refresh:       true,
			})
			if err != nil {
				return fmt.Errorf("failed to export standings: %w", err)
			}

			path := c.String("out")
			if path == "" {
				path = out.FileName
			} else if info, err := os.Stat(path); err == nil && info.IsDir() {
				path = filepath.Join(path, out.FileName)
			}
			if err := os.WriteFile(path, out.Data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}

			fmt.Fprintf(c.App.Writer, "wrote %d players to %s\n", out.Players, path)
			return nil
		}),
	}
}

func printStandings(w io.Writer, out *competition.GetStandingsOutput) error {
	fmt.Fprintf(w, "%s: %d still standing, %d eliminated",
		out.Competition.Name, out.ActiveCount, out.EliminatedCount)
	if out.Page.Paginated {
		fmt.Fprintf(w, " (page %d of %d)", out.Page.Page, out.Page.TotalPages)
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PLAYER\tSTATUS\tLIVES\tWIN%\tFORM\tPICK")
	for _, st := range out.Page.Items {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\n",
			st.Player.DisplayName,
			st.Player.Status,
			st.Player.LivesRemaining,
			st.WinRate,
			formLetters(st.RecentForm),
			pickColumn(st),
		)
	}
	return tw.Flush()
}

func printRound(w io.Writer, out *competition.GetRoundViewOutput) error {
	if out.NoRounds {
		fmt.Fprintf(w, "%s has no rounds yet\n", out.Competition.Name)
		return nil
	}

	fmt.Fprintf(w, "%s, round %d\n", out.Competition.Name, out.Round.RoundNumber)
	switch {
	case out.Completed:
		fmt.Fprintln(w, "Status: completed")
	case out.Locked:
		fmt.Fprintln(w, "Status: locked")
	default:
		fmt.Fprintln(w, "Status: open")
	}
	if out.Round.LockTime != nil {
		fmt.Fprintf(w, "Locks: %s\n", out.Round.LockTime.UTC().Format(time.RFC1123))
	}
	fmt.Fprintf(w, "Players left: %d\n", out.ActivePlayers)
	if out.Me != nil {
		pick := out.Me.CurrentPick
		if pick == "" {
			pick = "none"
		}
		fmt.Fprintf(w, "Your pick: %s (%s)\n", pick, out.MyOutcome)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFIXTURE\tKICKOFF\tRESULT")
	for _, f := range out.Fixtures {
		result := f.Result
		if result == "" {
			result = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f.ID, f.Descriptor(), f.KickoffTime.UTC().Format("Mon 02 Jan 15:04"), result)
	}
	return tw.Flush()
}

func pickColumn(st *models.PlayerStanding) string {
	switch {
	case !st.PickVisible:
		return "hidden"
	case st.Player.CurrentPick == "":
		return "-"
	default:
		return st.Player.CurrentPick
	}
}

func formLetters(form []models.PickResult) string {
	var b strings.Builder
	for _, r := range form {
		switch r {
		case models.PickResultWin:
			b.WriteByte('W')
		case models.PickResultPending:
			b.WriteByte('?')
		default:
			b.WriteByte('L')
		}
	}
	if b.Len() == 0 {
		return "-"
	}
	return b.String()
}
