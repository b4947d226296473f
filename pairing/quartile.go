package pairing

import (
	"math"

	"github.com/tilerack/scrabble-system/models"
)

// quartileStrategy splits the ranked field into four contiguous quartiles
// and pairs the first against the second, the third against the fourth.
// The first three quartiles hold ceil(N/4) players each, the fourth takes
// the remainder.
type quartileStrategy struct{}

func (s *quartileStrategy) name() string { return "Quartile" }

func (s *quartileStrategy) pair(rc *roundContext) []seatPair {
	seats, rest := pairClinchedPool(rc)

	size := int(math.Ceil(float64(len(rest)) / 4.0))
	quartiles := make([][]*models.PlayerStanding, 4)
	for i := 0; i < 4; i++ {
		lo := i * size
		hi := lo + size
		if i == 3 || hi > len(rest) {
			hi = len(rest)
		}
		if lo > len(rest) {
			lo = len(rest)
		}
		quartiles[i] = rest[lo:hi]
	}

	leftovers := make([]*models.PlayerStanding, 0)
	leftovers = append(leftovers, s.pairAcross(quartiles[0], quartiles[1], rc, &seats)...)
	leftovers = append(leftovers, s.pairAcross(quartiles[2], quartiles[3], rc, &seats)...)

	more, left := pairConsecutive(leftovers, rc.avoidRematches, rc.history)
	seats = append(seats, more...)
	if left != nil {
		seats = append(seats, seatPair{p1: left})
	}
	return seats
}

// pairAcross extracts opponents for the upper quartile from the lower one
// in order, with the usual rematch scan, and returns whoever neither
// quartile could place.
func (s *quartileStrategy) pairAcross(upper, lower []*models.PlayerStanding, rc *roundContext, seats *[]seatPair) []*models.PlayerStanding {
	leftovers := make([]*models.PlayerStanding, 0)
	for _, p := range upper {
		if len(lower) == 0 {
			leftovers = append(leftovers, p)
			continue
		}
		var opp *models.PlayerStanding
		opp, lower = takeOpponent(p, lower, rc.avoidRematches, rc.history)
		*seats = append(*seats, seatPair{p1: p, p2: opp})
	}
	return append(leftovers, lower...)
}
