package services

import "errors"

// Shared errors used across services and the HTTP error mapping.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed        = errors.New("validation failed")
	ErrPasswordTooShort        = errors.New("password is too short")
	ErrInvalidCredentials      = errors.New("invalid email or password")
	ErrPlayerNameRequired      = errors.New("player name is required")
	ErrTournamentNameRequired  = errors.New("tournament name is required")
	ErrInvalidPairingFormat    = errors.New("unknown pairing format")
	ErrInvalidRoundsCount      = errors.New("tournament total rounds must be positive")
	ErrTournamentNotActive     = errors.New("tournament is not active")
	ErrRoundAlreadyPaired      = errors.New("pairings already exist for this round")
	ErrAllRoundsCompleted      = errors.New("all scheduled rounds have been paired")
	ErrNoPlayersRegistered     = errors.New("no players registered for this tournament")
	ErrManualFormatNoGenerate  = errors.New("manual format does not generate pairings")
	ErrScoreEntryForBye        = errors.New("cannot record a score for a bye pairing")
	ErrInsufficientTeams       = errors.New("at least two teams are required for team pairing")
	ErrTeamScheduleExhausted   = errors.New("team round robin schedule is exhausted")
	ErrTournamentInvalidDates  = errors.New("tournament end date must be after start date")
	ErrTournamentInvalidStatus = errors.New("invalid tournament status transition")

	// Conflicts
	ErrUserEmailConflict      = errors.New("email address is already in use")
	ErrPlayerNameConflict     = errors.New("player name is already registered in this tournament")
	ErrTournamentNameConflict = errors.New("tournament name already exists")

	// Authentication and authorization
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")
	ErrDirectorOnly         = errors.New("only the tournament director can perform this action")

	// Entity-specific not-found errors
	ErrUserNotFound       = errors.New("user not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrPairingNotFound    = errors.New("pairing not found")
	ErrResultNotFound     = errors.New("result not found")
)
