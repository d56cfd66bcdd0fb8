package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/KirkDiggler/lastman/internal/common/clock"
	"github.com/KirkDiggler/lastman/internal/common/uuid"
	"github.com/KirkDiggler/lastman/internal/models"
	"github.com/KirkDiggler/lastman/internal/rules"
)

const (
	endpointLogin            = "login"
	endpointGetCompetitions  = "get-competitions"
	endpointGetCompetition   = "get-competition"
	endpointGetStandings     = "get-standings"
	endpointGetCurrentRound  = "get-current-round"
	endpointSetPick          = "set-pick"
	endpointSetFixtureResult = "set-fixture-result"
	endpointProcessResults   = "process-results"
	endpointCreateRound      = "create-round"
	endpointJoinCompetition  = "join-competition"

	maxResponseBytes = 4 << 20
)

// Config holds configuration for the HTTP API client
type Config struct {
	// BaseURL is the API root, e.g. https://api.example.com
	BaseURL string

	// HTTPClient is used for every request; its Timeout bounds each call
	HTTPClient *http.Client

	// Logger receives request logs
	Logger *slog.Logger

	// Metrics is optional
	Metrics *Metrics

	// UUIDGenerator produces request IDs
	UUIDGenerator uuid.UUID

	// Clock is used to check session expiry
	Clock clock.Clock
}

type httpClient struct {
	baseURL       string
	http          *http.Client
	logger        *slog.Logger
	metrics       *Metrics
	uuidGenerator uuid.UUID
	clock         clock.Clock
}

// New creates an API client
func New(cfg *Config) (*httpClient, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("base URL cannot be empty")
	}

	c := &httpClient{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		http:          cfg.HTTPClient,
		logger:        cfg.Logger,
		metrics:       cfg.Metrics,
		uuidGenerator: cfg.UUIDGenerator,
		clock:         cfg.Clock,
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 15 * time.Second}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.uuidGenerator == nil {
		c.uuidGenerator = &uuid.DefaultUUID{}
	}
	if c.clock == nil {
		c.clock = &clock.DefaultClock{}
	}
	return c, nil
}

type envelope struct {
	ReturnCode ReturnCode `json:"return_code"`
	Message    string     `json:"message,omitempty"`
}

type roundWire struct {
	ID            string `json:"id"`
	CompetitionID string `json:"competition_id"`
	RoundNumber   int    `json:"round_number"`
	LockTime      string `json:"lock_time"`
	Status        string `json:"status"`
	FixtureCount  int    `json:"fixture_count"`
}

func (c *httpClient) toRound(w *roundWire) *models.Round {
	if w == nil {
		return nil
	}
	lockTime, err := rules.ParseLockTime(w.LockTime)
	if err != nil {
		// An unreadable lock time leaves the round open.
		c.logger.Warn("ignoring malformed lock time", "round_id", w.ID, "lock_time", w.LockTime, "error", err)
	}
	return &models.Round{
		ID:            w.ID,
		CompetitionID: w.CompetitionID,
		RoundNumber:   w.RoundNumber,
		LockTime:      lockTime,
		Status:        w.Status,
		FixtureCount:  w.FixtureCount,
	}
}

type fixtureWire struct {
	ID            string `json:"id"`
	RoundID       string `json:"round_id"`
	HomeTeam      string `json:"home_team"`
	HomeTeamShort string `json:"home_team_short"`
	AwayTeam      string `json:"away_team"`
	AwayTeamShort string `json:"away_team_short"`
	KickoffTime   string `json:"kickoff_time"`
	Result        string `json:"result"`
	Processed     string `json:"processed"`
}

// toFixtures reads fixture timestamps with the same layouts as lock times
func (c *httpClient) toFixtures(wires []*fixtureWire) []*models.Fixture {
	fixtures := make([]*models.Fixture, 0, len(wires))
	for _, w := range wires {
		if w == nil {
			continue
		}
		f := &models.Fixture{
			ID:            w.ID,
			RoundID:       w.RoundID,
			HomeTeam:      w.HomeTeam,
			HomeTeamShort: w.HomeTeamShort,
			AwayTeam:      w.AwayTeam,
			AwayTeamShort: w.AwayTeamShort,
			Result:        w.Result,
		}

		kickoff, err := rules.ParseLockTime(w.KickoffTime)
		if err != nil {
			c.logger.Warn("ignoring malformed kickoff time", "fixture_id", w.ID, "kickoff_time", w.KickoffTime, "error", err)
		} else if kickoff != nil {
			f.KickoffTime = *kickoff
		}

		processed, err := rules.ParseLockTime(w.Processed)
		if err != nil {
			// The server did stamp it, so it has been processed; only the time is unknown.
			c.logger.Warn("malformed processed time", "fixture_id", w.ID, "processed", w.Processed, "error", err)
			now := c.clock.Now()
			processed = &now
		}
		f.Processed = processed

		fixtures = append(fixtures, f)
	}
	return fixtures
}

// call posts body to endpoint and decodes the response into out when the
// envelope's return code is one of accepted. Any other code becomes an *Error.
func (c *httpClient) call(ctx context.Context, endpoint string, session *models.Session, body, out interface{}, accepted ...ReturnCode) (*envelope, error) {
	if endpoint != endpointLogin {
		if session == nil || session.Token == "" {
			return nil, withEndpoint(ErrNoSession, endpoint)
		}
		if session.Expired(c.clock.Now()) {
			return nil, withEndpoint(ErrSessionExpired, endpoint)
		}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s request: %w", endpoint, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", endpoint, err)
	}
	requestID := c.uuidGenerator.NewUUID()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if session != nil && session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+session.Token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.observe(endpoint, codeTransport, time.Since(start).Seconds())
		c.logger.Warn("api request failed", "endpoint", endpoint, "request_id", requestID, "error", err)
		return nil, &Error{Endpoint: endpoint, Code: codeTransport, Message: "request failed", Category: CategoryTransport, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		c.metrics.observe(endpoint, codeTransport, time.Since(start).Seconds())
		return nil, &Error{Endpoint: endpoint, Code: codeTransport, Message: "failed to read response", Category: CategoryTransport, Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.metrics.observe(endpoint, CodeUnauthorized, time.Since(start).Seconds())
		return nil, &Error{Endpoint: endpoint, Code: CodeUnauthorized, Message: "unauthorized", Category: CategoryAuth}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil || env.ReturnCode == "" {
		c.metrics.observe(endpoint, codeTransport, time.Since(start).Seconds())
		if err == nil {
			err = fmt.Errorf("missing return_code (HTTP %d)", resp.StatusCode)
		}
		return nil, &Error{Endpoint: endpoint, Code: codeTransport, Message: "unreadable response", Category: CategoryTransport, Err: err}
	}

	c.metrics.observe(endpoint, env.ReturnCode, time.Since(start).Seconds())
	c.logger.Debug("api response",
		"endpoint", endpoint,
		"request_id", requestID,
		"return_code", env.ReturnCode,
		"status", resp.StatusCode,
	)

	for _, code := range accepted {
		if env.ReturnCode != code {
			continue
		}
		if out != nil {
			if err := json.Unmarshal(raw, out); err != nil {
				return nil, &Error{Endpoint: endpoint, Code: env.ReturnCode, Message: "unreadable payload", Category: CategoryTransport, Err: err}
			}
		}
		return &env, nil
	}

	msg := env.Message
	if msg == "" {
		msg = "unexpected response"
	}
	return nil, &Error{Endpoint: endpoint, Code: env.ReturnCode, Message: msg, Category: CategoryFor(env.ReturnCode)}
}

func withEndpoint(e *Error, endpoint string) *Error {
	cp := *e
	cp.Endpoint = endpoint
	return &cp
}

// Login exchanges credentials for a session token
func (c *httpClient) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	if input == nil || input.Email == "" || input.Password == "" {
		return nil, errors.New("email and password are required")
	}

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID          string `json:"id"`
			DisplayName string `json:"display_name"`
		} `json:"user"`
	}
	body := map[string]string{"email": input.Email, "password": input.Password}
	if _, err := c.call(ctx, endpointLogin, nil, body, &resp, CodeSuccess); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, &Error{Endpoint: endpointLogin, Code: CodeSuccess, Message: "no token in login response", Category: CategoryTransport}
	}

	expiresAt, err := TokenExpiry(resp.Token)
	if err != nil {
		c.logger.Debug("token has no readable expiry", "error", err)
	}

	return &LoginOutput{
		Token:       resp.Token,
		UserID:      resp.User.ID,
		DisplayName: resp.User.DisplayName,
		ExpiresAt:   expiresAt,
	}, nil
}

// GetCompetitions lists the user's competitions
func (c *httpClient) GetCompetitions(ctx context.Context, input *GetCompetitionsInput) (*GetCompetitionsOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var resp struct {
		Competitions []*models.Competition `json:"competitions"`
	}
	if _, err := c.call(ctx, endpointGetCompetitions, input.Session, struct{}{}, &resp, CodeSuccess); err != nil {
		return nil, err
	}
	return &GetCompetitionsOutput{Competitions: resp.Competitions}, nil
}

// GetCompetition fetches one competition
func (c *httpClient) GetCompetition(ctx context.Context, input *GetCompetitionInput) (*GetCompetitionOutput, error) {
	if input == nil || input.CompetitionID == "" {
		return nil, errors.New("competition ID is required")
	}

	var resp struct {
		Competition *models.Competition `json:"competition"`
	}
	body := map[string]string{"competition_id": input.CompetitionID}
	if _, err := c.call(ctx, endpointGetCompetition, input.Session, body, &resp, CodeSuccess); err != nil {
		return nil, err
	}
	if resp.Competition == nil {
		return nil, &Error{Endpoint: endpointGetCompetition, Code: CodeNotFound, Message: "competition missing from response", Category: CategoryFailure}
	}
	return &GetCompetitionOutput{Competition: resp.Competition}, nil
}

// GetStandings fetches the players of a competition
func (c *httpClient) GetStandings(ctx context.Context, input *GetStandingsInput) (*GetStandingsOutput, error) {
	if input == nil || input.CompetitionID == "" {
		return nil, errors.New("competition ID is required")
	}

	var resp struct {
		Players []*models.Player `json:"players"`
	}
	body := map[string]string{"competition_id": input.CompetitionID}
	if _, err := c.call(ctx, endpointGetStandings, input.Session, body, &resp, CodeSuccess); err != nil {
		return nil, err
	}
	return &GetStandingsOutput{Players: resp.Players}, nil
}

// GetCurrentRound fetches the current round; NO_ROUNDS is an empty state, not an error
func (c *httpClient) GetCurrentRound(ctx context.Context, input *GetCurrentRoundInput) (*GetCurrentRoundOutput, error) {
	if input == nil || input.CompetitionID == "" {
		return nil, errors.New("competition ID is required")
	}

	var resp struct {
		Round     *roundWire        `json:"round"`
		Fixtures  []*fixtureWire    `json:"fixtures"`
		RoundInfo *models.RoundInfo `json:"round_info"`
	}
	body := map[string]string{"competition_id": input.CompetitionID}
	env, err := c.call(ctx, endpointGetCurrentRound, input.Session, body, &resp, CodeSuccess, CodeNoRounds)
	if err != nil {
		return nil, err
	}
	if env.ReturnCode == CodeNoRounds {
		return &GetCurrentRoundOutput{NoRounds: true, Message: env.Message}, nil
	}

	return &GetCurrentRoundOutput{
		Message:   env.Message,
		Round:     c.toRound(resp.Round),
		Fixtures:  c.toFixtures(resp.Fixtures),
		RoundInfo: resp.RoundInfo,
	}, nil
}

// SubmitPick sets the user's pick
func (c *httpClient) SubmitPick(ctx context.Context, input *SubmitPickInput) (*SubmitPickOutput, error) {
	if input == nil || input.CompetitionID == "" || input.Team == "" {
		return nil, errors.New("competition ID and team are required")
	}

	body := map[string]string{
		"competition_id": input.CompetitionID,
		"round_id":       input.RoundID,
		"team":           input.Team,
	}
	env, err := c.call(ctx, endpointSetPick, input.Session, body, nil, CodeSuccess)
	if err != nil {
		return nil, err
	}
	return &SubmitPickOutput{Message: env.Message}, nil
}

// SetFixtureResult records a fixture result
func (c *httpClient) SetFixtureResult(ctx context.Context, input *SetFixtureResultInput) (*SetFixtureResultOutput, error) {
	if input == nil || input.FixtureID == "" {
		return nil, errors.New("fixture ID is required")
	}

	body := map[string]string{"fixture_id": input.FixtureID, "result": input.Result}
	env, err := c.call(ctx, endpointSetFixtureResult, input.Session, body, nil, CodeSuccess)
	if err != nil {
		return nil, err
	}
	return &SetFixtureResultOutput{Message: env.Message}, nil
}

// ProcessResults applies results; the explicit processing outcomes are not errors
func (c *httpClient) ProcessResults(ctx context.Context, input *ProcessResultsInput) (*ProcessResultsOutput, error) {
	if input == nil || input.CompetitionID == "" {
		return nil, errors.New("competition ID is required")
	}

	var resp struct {
		Processed      int `json:"processed"`
		Eliminated     int `json:"eliminated"`
		NewRoundNumber int `json:"new_round_number"`
	}
	body := map[string]string{"competition_id": input.CompetitionID}
	env, err := c.call(ctx, endpointProcessResults, input.Session, body, &resp,
		CodeSuccess, CodeNewRoundCreated, CodeCompetitionComplete, CodeNoResultsToProcess)
	if err != nil {
		return nil, err
	}

	return &ProcessResultsOutput{
		Code:           env.ReturnCode,
		Message:        env.Message,
		Processed:      resp.Processed,
		Eliminated:     resp.Eliminated,
		NewRoundNumber: resp.NewRoundNumber,
	}, nil
}

// CreateRound opens a new round locking at LockTime
func (c *httpClient) CreateRound(ctx context.Context, input *CreateRoundInput) (*CreateRoundOutput, error) {
	if input == nil || input.CompetitionID == "" {
		return nil, errors.New("competition ID is required")
	}
	if input.LockTime.IsZero() {
		return nil, errors.New("lock time is required")
	}

	var resp struct {
		Round *roundWire `json:"round"`
	}
	body := map[string]string{
		"competition_id": input.CompetitionID,
		"lock_time":      input.LockTime.UTC().Format(time.RFC3339),
	}
	if _, err := c.call(ctx, endpointCreateRound, input.Session, body, &resp, CodeSuccess); err != nil {
		return nil, err
	}
	return &CreateRoundOutput{Round: c.toRound(resp.Round)}, nil
}

// JoinCompetition joins by invite code
func (c *httpClient) JoinCompetition(ctx context.Context, input *JoinCompetitionInput) (*JoinCompetitionOutput, error) {
	if input == nil || input.InviteCode == "" {
		return nil, errors.New("invite code is required")
	}

	var resp struct {
		Competition *models.Competition `json:"competition"`
	}
	body := map[string]string{"invite_code": strings.ToUpper(strings.TrimSpace(input.InviteCode))}
	env, err := c.call(ctx, endpointJoinCompetition, input.Session, body, &resp, CodeSuccess)
	if err != nil {
		return nil, err
	}
	return &JoinCompetitionOutput{Competition: resp.Competition, Message: env.Message}, nil
}
