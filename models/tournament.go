package models

import "time"

// TournamentStatus mirrors the tournament_status ENUM in the database.
type TournamentStatus string

const (
	StatusSoon         TournamentStatus = "soon"
	StatusRegistration TournamentStatus = "registration"
	StatusActive       TournamentStatus = "active"
	StatusCompleted    TournamentStatus = "completed"
	StatusCanceled     TournamentStatus = "canceled"
)

func ValidTournamentStatus(s TournamentStatus) bool {
	switch s {
	case StatusSoon, StatusRegistration, StatusActive, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}

type Tournament struct {
	ID             int              `json:"id" db:"id"`
	Name           string           `json:"name" db:"name"`
	Description    *string          `json:"description,omitempty" db:"description"`
	DirectorID     int              `json:"director_id" db:"director_id"`
	Status         TournamentStatus `json:"status" db:"status"`
	Format         PairingFormat    `json:"format" db:"format"`
	AvoidRematches bool             `json:"avoid_rematches" db:"avoid_rematches"`
	CurrentRound   int              `json:"current_round" db:"current_round"`
	TotalRounds    int              `json:"total_rounds" db:"total_rounds"`
	StartDate      time.Time        `json:"start_date" db:"start_date"`
	EndDate        time.Time        `json:"end_date" db:"end_date"`
	CreatedAt      time.Time        `json:"created_at" db:"created_at"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logo_url,omitempty" db:"-"`

	// Optional linked entities, populated by the service layer.
	Director *User    `json:"director,omitempty" db:"-"`
	Players  []Player `json:"players,omitempty" db:"-"`
}
