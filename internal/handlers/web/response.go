package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/KirkDiggler/lastman/internal/api"
	"github.com/KirkDiggler/lastman/internal/models"
	"github.com/KirkDiggler/lastman/internal/services/competition"
)

type jsonResponse map[string]interface{}

// roundResponse is the JSON form of the current round
type roundResponse struct {
	Competition   *models.Competition `json:"competition"`
	NoRounds      bool                `json:"no_rounds"`
	Round         *models.Round       `json:"round,omitempty"`
	Fixtures      []*models.Fixture   `json:"fixtures"`
	Locked        bool                `json:"locked"`
	Completed     bool                `json:"completed"`
	MyPick        string              `json:"my_pick,omitempty"`
	MyOutcome     models.PickResult   `json:"my_outcome,omitempty"`
	ActivePlayers int                 `json:"active_players"`
	FetchedAt     time.Time           `json:"fetched_at"`
}

func newRoundResponse(out *competition.GetRoundViewOutput) *roundResponse {
	resp := &roundResponse{
		Competition:   out.Competition,
		NoRounds:      out.NoRounds,
		Round:         out.Round,
		Fixtures:      out.Fixtures,
		Locked:        out.Locked,
		Completed:     out.Completed,
		ActivePlayers: out.ActivePlayers,
		FetchedAt:     out.FetchedAt,
	}
	if resp.Fixtures == nil {
		resp.Fixtures = []*models.Fixture{}
	}
	if out.Me != nil {
		resp.MyPick = out.Me.CurrentPick
		resp.MyOutcome = out.MyOutcome
	}
	return resp
}

// standingResponse is one row of the standings table. Player history is left
// out so the current round's picks cannot leak through it.
type standingResponse struct {
	PlayerID        string              `json:"player_id"`
	DisplayName     string              `json:"display_name"`
	Status          models.PlayerStatus `json:"status"`
	LivesRemaining  int                 `json:"lives_remaining"`
	CurrentPick     string              `json:"current_pick,omitempty"`
	PickVisible     bool                `json:"pick_visible"`
	IsCurrentUser   bool                `json:"is_current_user"`
	CurrentStreak   int                 `json:"current_streak"`
	StreakType      models.PickResult   `json:"streak_type,omitempty"`
	WinRate         int                 `json:"win_rate"`
	RecentForm      []models.PickResult `json:"recent_form"`
	EliminatedRound int                 `json:"eliminated_round,omitempty"`
	EliminatedWith  string              `json:"eliminated_with,omitempty"`
}

type standingsResponse struct {
	Competition     *models.Competition `json:"competition"`
	Locked          bool                `json:"locked"`
	Page            int                 `json:"page"`
	TotalPages      int                 `json:"total_pages"`
	TotalPlayers    int                 `json:"total_players"`
	Paginated       bool                `json:"paginated"`
	ActiveCount     int                 `json:"active_count"`
	EliminatedCount int                 `json:"eliminated_count"`
	Fingerprint     string              `json:"fingerprint"`
	Players         []*standingResponse `json:"players"`
	FetchedAt       time.Time           `json:"fetched_at"`
}

func newStandingsResponse(out *competition.GetStandingsOutput) *standingsResponse {
	resp := &standingsResponse{
		Competition:     out.Competition,
		Locked:          out.Locked,
		Page:            out.Page.Page,
		TotalPages:      out.Page.TotalPages,
		TotalPlayers:    out.Page.TotalItems,
		Paginated:       out.Page.Paginated,
		ActiveCount:     out.ActiveCount,
		EliminatedCount: out.EliminatedCount,
		Fingerprint:     out.Fingerprint,
		Players:         make([]*standingResponse, 0, len(out.Page.Items)),
		FetchedAt:       out.FetchedAt,
	}

	for _, st := range out.Page.Items {
		row := &standingResponse{
			PlayerID:       st.Player.ID,
			DisplayName:    st.Player.DisplayName,
			Status:         st.Player.Status,
			LivesRemaining: st.Player.LivesRemaining,
			PickVisible:    st.PickVisible,
			IsCurrentUser:  st.IsCurrentUser,
			CurrentStreak:  st.CurrentStreak,
			StreakType:     st.StreakType,
			WinRate:        st.WinRate,
			RecentForm:     st.RecentForm,
		}
		if st.PickVisible {
			row.CurrentPick = st.Player.CurrentPick
		}
		if row.RecentForm == nil {
			row.RecentForm = []models.PickResult{}
		}
		if st.EliminationPick != nil {
			row.EliminatedRound = st.EliminationPick.RoundNumber
			row.EliminatedWith = st.EliminationPick.PickTeam
		}
		resp.Players = append(resp.Players, row)
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}
	js = append(js, '\n')

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

// errorStatus maps service errors onto HTTP statuses
func errorStatus(err error) int {
	switch {
	case errors.Is(err, competition.ErrNotLinked):
		return http.StatusUnauthorized
	case errors.Is(err, competition.ErrCompetitionNotFound),
		errors.Is(err, competition.ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.Is(err, competition.ErrNotOrganiser):
		return http.StatusForbidden
	case errors.Is(err, competition.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, competition.ErrSuperseded):
		return http.StatusConflict
	}

	switch api.CategoryOf(err) {
	case api.CategoryAuth:
		return http.StatusUnauthorized
	case api.CategoryEmpty:
		return http.StatusNotFound
	case api.CategoryTransport:
		return http.StatusBadGateway
	}

	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == api.CodeNotFound {
			return http.StatusNotFound
		}
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
