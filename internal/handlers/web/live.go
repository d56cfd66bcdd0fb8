package web

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/KirkDiggler/lastman/internal/live"
)

func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || len(h.allowedOrigins) == 0 {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	for _, allowed := range h.allowedOrigins {
		if allowed == "*" || allowed == origin || allowed == u.Host {
			return true
		}
	}
	return false
}

// serveLive subscribes a websocket to a competition's live feed
func (h *Handler) serveLive(w http.ResponseWriter, r *http.Request) {
	competitionID := chi.URLParam(r, "id")
	if competitionID == "" {
		h.errorResponse(w, http.StatusBadRequest, "missing competition ID")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied
		h.logger.Warn("failed to upgrade live connection", "competition_id", competitionID, "error", err)
		return
	}

	client := live.NewClient(h.hub, conn, live.CompetitionRoom(competitionID))
	if !h.hub.Join(client) {
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()

	h.logger.Debug("live client connected", "competition_id", competitionID)
}
