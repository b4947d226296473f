package models

import "time"

type Result struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	PairingID    int       `json:"pairing_id" db:"pairing_id"`
	Score1       int       `json:"score1" db:"score1"`
	Score2       int       `json:"score2" db:"score2"`
	WinnerID     *int      `json:"winner_id,omitempty" db:"winner_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	// Optional linked pairing, populated by the service layer.
	Pairing *Pairing `json:"pairing,omitempty" db:"-"`
}

// Draw reports whether both seats scored the same.
func (r *Result) Draw() bool {
	return r.Score1 == r.Score2
}

// DeriveWinner returns the id of the higher-scoring seat of the given
// pairing, or nil for a draw. The stored WinnerID is always derived, never
// entered directly.
func DeriveWinner(p *Pairing, score1, score2 int) *int {
	if p == nil || score1 == score2 {
		return nil
	}
	id := p.Player1ID
	if score2 > score1 {
		id = p.Player2ID
	}
	return &id
}
