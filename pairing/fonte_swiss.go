package pairing

import (
	"sort"

	"github.com/tilerack/scrabble-system/models"
)

// fonteSwissStrategy groups players by whole points and pairs the top half
// of each score group against its bottom half, highest group first. Players
// a group cannot place (odd sizes, exhausted rematch-free options) are
// paired off consecutively regardless of half; a single remainder drops
// into the next group down.
type fonteSwissStrategy struct{}

func (s *fonteSwissStrategy) name() string { return "Fonte-Swiss" }

func (s *fonteSwissStrategy) pair(rc *roundContext) []seatPair {
	seats, rest := pairClinchedPool(rc)

	groups := make(map[int][]*models.PlayerStanding)
	keys := make([]int, 0)
	for _, p := range rest {
		k := int(p.Points)
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], p)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(keys)))

	var carry *models.PlayerStanding
	for _, k := range keys {
		group := groups[k]
		if carry != nil {
			group = append([]*models.PlayerStanding{carry}, group...)
			carry = nil
		}

		sort.SliceStable(group, func(i, j int) bool {
			if group[i].Spread != group[j].Spread {
				return group[i].Spread > group[j].Spread
			}
			return group[i].Rating > group[j].Rating
		})

		half := (len(group) + 1) / 2
		top, bottom := group[:half], group[half:]

		leftovers := make([]*models.PlayerStanding, 0)
		for _, p := range top {
			if len(bottom) == 0 {
				leftovers = append(leftovers, p)
				continue
			}
			var opp *models.PlayerStanding
			opp, bottom = takeOpponent(p, bottom, rc.avoidRematches, rc.history)
			seats = append(seats, seatPair{p1: p, p2: opp})
		}
		leftovers = append(leftovers, bottom...)

		more, left := pairConsecutive(leftovers, rc.avoidRematches, rc.history)
		seats = append(seats, more...)
		carry = left
	}

	if carry != nil {
		seats = append(seats, seatPair{p1: carry})
	}
	return seats
}
