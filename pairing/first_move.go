package pairing

import "github.com/tilerack/scrabble-system/models"

// ResolveFirstMove decides who draws first tiles at the table: the player
// with strictly fewer previous starts. On equal counts the table parity
// alternates the privilege, odd tables favoring seat one, even tables seat
// two. The lone real player of a BYE pairing always moves first.
func ResolveFirstMove(p1, p2 *models.PlayerStanding, tableNumber int) int {
	if p2 == nil || p2.ID == models.ByePlayerID {
		return p1.ID
	}
	if p1 == nil || p1.ID == models.ByePlayerID {
		return p2.ID
	}
	if p1.PreviousStarts < p2.PreviousStarts {
		return p1.ID
	}
	if p2.PreviousStarts < p1.PreviousStarts {
		return p2.ID
	}
	if tableNumber%2 == 1 {
		return p1.ID
	}
	return p2.ID
}
