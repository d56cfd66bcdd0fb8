package competition

// CompetitionError is a custom error type for competition-related errors
type CompetitionError string

// Error implements the error interface
func (e CompetitionError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNotLinked            CompetitionError = "no LMS account linked"
	ErrCompetitionNotFound  CompetitionError = "competition not found"
	ErrNoRounds             CompetitionError = "competition has no rounds yet"
	ErrRoundLocked          CompetitionError = "round is locked"
	ErrNotOrganiser         CompetitionError = "only the organiser can do that"
	ErrCompetitionComplete  CompetitionError = "competition is complete"
	ErrPlayerNotFound       CompetitionError = "player not found"
	ErrPlayerEliminated     CompetitionError = "player has been eliminated"
	ErrTeamNotInRound       CompetitionError = "team does not play in this round"
	ErrFixtureNotFound      CompetitionError = "fixture not found"
	ErrInvalidResult        CompetitionError = "result must be the home team, the away team or DRAW"
	ErrMutationPending      CompetitionError = "a result change is still waiting for the server"
	ErrLockTimeInPast       CompetitionError = "lock time must be in the future"
	ErrWatchNotFound        CompetitionError = "channel is not watching this competition"
	ErrSuperseded           CompetitionError = "a newer load replaced this one"
	ErrStatusRegression     CompetitionError = "server reported an eliminated player as active"
	ErrProcessingDivergence CompetitionError = "round looked complete locally but the server has not finished processing"
	ErrInvalidInput         CompetitionError = "invalid input"
	ErrNilConfig            CompetitionError = "config cannot be nil"
	ErrNilAPIClient         CompetitionError = "API client cannot be nil"
	ErrNilSnapshotRepo      CompetitionError = "snapshot repository cannot be nil"
	ErrNilSessionRepo       CompetitionError = "session repository cannot be nil"
	ErrNilMutationRepo      CompetitionError = "mutation ledger repository cannot be nil"
	ErrNilClock             CompetitionError = "clock cannot be nil"
	ErrNilUUIDGenerator     CompetitionError = "UUID generator cannot be nil"
)
