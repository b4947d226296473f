package models

import "time"

// ByePlayerID is the synthetic opponent used when an odd pool leaves one
// player without a real opponent for the round.
const ByePlayerID = -1

// ByePlayerName is the display name rendered for BYE pairings.
const ByePlayerName = "BYE"

type Player struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	Name         string    `json:"name" db:"name"`
	Rating       int       `json:"rating" db:"rating"`
	Team         *string   `json:"team,omitempty" db:"team"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	PhotoKey *string `json:"-" db:"photo_key"`
	PhotoURL *string `json:"photo_url,omitempty" db:"-"`
}

// Bye reports whether this player is the synthetic BYE placeholder.
func (p *Player) Bye() bool {
	return p.ID == ByePlayerID
}

// PlayerStanding is the per-round projection of a player over the result
// history. It is recomputed from scratch on every pairing generation and is
// never authoritative on its own.
type PlayerStanding struct {
	Player

	Wins           int     `json:"wins"`
	Losses         int     `json:"losses"`
	Draws          int     `json:"draws"`
	Points         float64 `json:"points"`
	Spread         int     `json:"spread"`
	Rank           int     `json:"rank"`
	PreviousStarts int     `json:"previous_starts"`
	IsClinched     bool    `json:"is_clinched"`
}
