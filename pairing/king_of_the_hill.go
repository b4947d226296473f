package pairing

import "github.com/tilerack/scrabble-system/models"

// kingOfTheHillStrategy pairs the extremes of the field: highest remaining
// seed against lowest remaining seed, second-highest against second-lowest,
// and so on.
type kingOfTheHillStrategy struct{}

func (s *kingOfTheHillStrategy) name() string { return "King-of-the-Hill" }

func (s *kingOfTheHillStrategy) pair(rc *roundContext) []seatPair {
	seats, rest := pairClinchedPool(rc)

	half := (len(rest) + 1) / 2
	top, bottom := rest[:half], rest[half:]

	// Reverse the bottom half so position i of the top half faces the
	// i-th lowest ranked player.
	reversed := make([]*models.PlayerStanding, len(bottom))
	for i, p := range bottom {
		reversed[len(bottom)-1-i] = p
	}

	for i, p := range top {
		if i >= len(reversed) {
			seats = append(seats, seatPair{p1: p})
			break
		}
		if rc.avoidRematches && rc.history.Played(p.ID, reversed[i].ID) {
			// Swap in the nearest unplayed alternative from the rest of
			// the bottom half, keeping the designated opponent if every
			// alternative is also a rematch.
			for j := i + 1; j < len(reversed); j++ {
				if !rc.history.Played(p.ID, reversed[j].ID) {
					reversed[i], reversed[j] = reversed[j], reversed[i]
					break
				}
			}
		}
		seats = append(seats, seatPair{p1: p, p2: reversed[i]})
	}
	return seats
}
