package pairing

import (
	"testing"

	"github.com/tilerack/scrabble-system/models"
)

func standingWithStarts(id, starts int) *models.PlayerStanding {
	return &models.PlayerStanding{
		Player:         models.Player{ID: id},
		PreviousStarts: starts,
	}
}

func TestResolveFirstMove(t *testing.T) {
	tests := []struct {
		name     string
		p1starts int
		p2starts int
		table    int
		want     int // winning seat's id; p1 is 1, p2 is 2
	}{
		{"fewer starts wins seat one", 2, 5, 1, 1},
		{"fewer starts wins seat two", 5, 2, 1, 2},
		{"fewer starts ignores table parity", 2, 5, 2, 1},
		{"equal starts odd table favors seat one", 3, 3, 1, 1},
		{"equal starts even table favors seat two", 3, 3, 2, 2},
		{"equal starts table three favors seat one", 0, 0, 3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveFirstMove(standingWithStarts(1, tt.p1starts), standingWithStarts(2, tt.p2starts), tt.table)
			if got != tt.want {
				t.Errorf("ResolveFirstMove = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestResolveFirstMoveAgainstBye(t *testing.T) {
	real := standingWithStarts(7, 10)
	if got := ResolveFirstMove(real, nil, 4); got != 7 {
		t.Errorf("nil opponent: first move = %d, want 7", got)
	}
	bye := standingWithStarts(models.ByePlayerID, 0)
	if got := ResolveFirstMove(real, bye, 4); got != 7 {
		t.Errorf("bye opponent: first move = %d, want 7", got)
	}
	if got := ResolveFirstMove(bye, real, 4); got != 7 {
		t.Errorf("bye in seat one: first move = %d, want 7", got)
	}
}
