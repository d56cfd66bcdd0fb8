package web

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/KirkDiggler/lastman/internal/api"
	"github.com/KirkDiggler/lastman/internal/common/clock"
	"github.com/KirkDiggler/lastman/internal/live"
	"github.com/KirkDiggler/lastman/internal/services/competition"
)

// HandlerError is a custom error type for handler construction errors
type HandlerError string

// Error implements the error interface
func (e HandlerError) Error() string {
	return string(e)
}

const (
	ErrNilConfig             HandlerError = "config cannot be nil"
	ErrNilCompetitionService HandlerError = "competition service cannot be nil"
	ErrNilHub                HandlerError = "hub cannot be nil"
	ErrNilClock              HandlerError = "clock cannot be nil"
)

const requestTimeout = 20 * time.Second

type contextKey string

const callerContextKey contextKey = "caller"

// Config holds configuration for the HTTP handler
type Config struct {
	CompetitionService competition.Service
	Hub                *live.Hub
	Clock              clock.Clock

	// Gatherer serves /metrics, prometheus.DefaultGatherer when nil
	Gatherer prometheus.Gatherer

	// AllowedOrigins for CORS and the live feed, every origin when empty
	AllowedOrigins []string

	Logger *slog.Logger
}

// Handler serves the JSON API, the live feed and operational endpoints
type Handler struct {
	competitionService competition.Service
	hub                *live.Hub
	clock              clock.Clock
	gatherer           prometheus.Gatherer
	allowedOrigins     []string
	upgrader           websocket.Upgrader
	logger             *slog.Logger
}

// New creates a new HTTP handler
func New(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.CompetitionService == nil {
		return nil, ErrNilCompetitionService
	}
	if cfg.Hub == nil {
		return nil, ErrNilHub
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	h := &Handler{
		competitionService: cfg.CompetitionService,
		hub:                cfg.Hub,
		clock:              cfg.Clock,
		gatherer:           gatherer,
		allowedOrigins:     cfg.AllowedOrigins,
		logger:             logger.With("component", "http"),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h, nil
}

// Routes builds the router
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.logRequests)
	r.Use(middleware.Recoverer)

	origins := h.allowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", h.healthz)
	r.Handle("/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/competitions/{id}", func(r chi.Router) {
		r.Use(h.authenticate)
		r.Use(middleware.Timeout(requestTimeout))

		r.Get("/round", h.getRound)
		r.Get("/standings", h.getStandings)
	})

	r.Get("/ws/competitions/{id}", h.serveLive)

	return r
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, jsonResponse{"status": "ok"}); err != nil {
		h.logger.Error("failed to write health response", "error", err)
	}
}

// authenticate turns a bearer token into a caller. The session is used for
// this request only and never stored.
func (h *Handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			h.errorResponse(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		userID := tokenUserID(token)
		caller := competition.Caller{
			UserID:  userID,
			Session: api.SessionFromToken(userID, token, h.clock.Now()),
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), callerContextKey, caller)))
	})
}

// tokenUserID derives a stable pseudonymous user ID so pager state is kept per token
func tokenUserID(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "http:" + hex.EncodeToString(sum[:8])
}

func callerFrom(r *http.Request) competition.Caller {
	caller, _ := r.Context().Value(callerContextKey).(competition.Caller)
	return caller
}

func (h *Handler) getRound(w http.ResponseWriter, r *http.Request) {
	out, err := h.competitionService.GetRoundView(r.Context(), &competition.GetRoundViewInput{
		Caller:        callerFrom(r),
		CompetitionID: chi.URLParam(r, "id"),
		Refresh:       queryBool(r, "refresh"),
	})
	if err != nil {
		h.serviceErrorResponse(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, newRoundResponse(out)); err != nil {
		h.logger.Error("failed to write round response", "error", err)
	}
}

func (h *Handler) getStandings(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p < 1 {
			h.errorResponse(w, http.StatusBadRequest, "page must be a positive integer")
			return
		}
		page = p
	}

	out, err := h.competitionService.GetStandings(r.Context(), &competition.GetStandingsInput{
		Caller:        callerFrom(r),
		CompetitionID: chi.URLParam(r, "id"),
		ViewID:        r.URL.Query().Get("view"),
		Page:          page,
		Refresh:       queryBool(r, "refresh"),
	})
	if err != nil {
		h.serviceErrorResponse(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, newStandingsResponse(out)); err != nil {
		h.logger.Error("failed to write standings response", "error", err)
	}
}

func queryBool(r *http.Request, name string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(name))
	return err == nil && v
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, message string) {
	if err := writeJSON(w, status, jsonResponse{"error": message}); err != nil {
		h.logger.Error("failed to write error response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (h *Handler) serviceErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	status := errorStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", "path", r.URL.Path, "error", err)
		message = "the server encountered a problem and could not process your request"
	}

	body := jsonResponse{"error": message, "category": string(api.CategoryOf(err))}
	if code := api.CodeOf(err); code != "" {
		body["code"] = string(code)
	}
	if werr := writeJSON(w, status, body); werr != nil {
		h.logger.Error("failed to write error response", "error", werr)
	}
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
