package models

import "time"

// PairingFormat selects the algorithm used to generate a round, matching the
// formats offered in the pairing settings UI.
type PairingFormat string

const (
	FormatSwiss          PairingFormat = "swiss"
	FormatFonteSwiss     PairingFormat = "fonte_swiss"
	FormatKingOfTheHill  PairingFormat = "king_of_the_hill"
	FormatRoundRobin     PairingFormat = "round_robin"
	FormatQuartile       PairingFormat = "quartile"
	FormatTeamRoundRobin PairingFormat = "team_round_robin"
	FormatManual         PairingFormat = "manual"
)

// ValidPairingFormat reports whether f is one of the known formats.
func ValidPairingFormat(f PairingFormat) bool {
	switch f {
	case FormatSwiss, FormatFonteSwiss, FormatKingOfTheHill,
		FormatRoundRobin, FormatQuartile, FormatTeamRoundRobin, FormatManual:
		return true
	}
	return false
}

type Pairing struct {
	ID           int    `json:"id" db:"id"`
	TournamentID int    `json:"tournament_id" db:"tournament_id"`
	Round        int    `json:"round" db:"round"`
	BatchID      string `json:"batch_id" db:"batch_id"`
	TableNumber  int    `json:"table_number" db:"table_number"`

	Player1ID int `json:"player1_id" db:"player1_id"`
	Player2ID int `json:"player2_id" db:"player2_id"`

	FirstMovePlayerID int  `json:"first_move_player_id" db:"first_move_player_id"`
	Player1Clinched   bool `json:"player1_clinched" db:"player1_clinched"`
	Player2Clinched   bool `json:"player2_clinched" db:"player2_clinched"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// Optional linked entities, populated by the service layer.
	Player1 *Player `json:"player1,omitempty" db:"-"`
	Player2 *Player `json:"player2,omitempty" db:"-"`
}

// HasBye reports whether one seat of the pairing is the synthetic BYE.
func (p *Pairing) HasBye() bool {
	return p.Player1ID == ByePlayerID || p.Player2ID == ByePlayerID
}

// Involves reports whether the given player sits at this pairing.
func (p *Pairing) Involves(playerID int) bool {
	return p.Player1ID == playerID || p.Player2ID == playerID
}

// Opponent returns the other seat of the pairing, or false if the player is
// not part of it.
func (p *Pairing) Opponent(playerID int) (int, bool) {
	switch playerID {
	case p.Player1ID:
		return p.Player2ID, true
	case p.Player2ID:
		return p.Player1ID, true
	}
	return 0, false
}
