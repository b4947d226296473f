package pairing

import "github.com/tilerack/scrabble-system/models"

// swissStrategy pairs consecutive entries of the ranked list, skipping
// forward past previous opponents when rematch avoidance is on. It also
// backs the round-robin format, which is Swiss with avoidance forced.
type swissStrategy struct{}

func (s *swissStrategy) name() string { return "Swiss" }

func (s *swissStrategy) pair(rc *roundContext) []seatPair {
	seats, rest := pairClinchedPool(rc)

	more, leftover := pairConsecutive(rest, rc.avoidRematches, rc.history)
	seats = append(seats, more...)
	if leftover != nil {
		seats = append(seats, seatPair{p1: leftover})
	}
	return seats
}

// pairClinchedPool implements the segregation shared by every format:
// clinched players meet each other first, in clinch-sorted order, and are
// removed from the general pool before the format's own logic runs. An odd
// clinched remainder is paired against the lowest-ranked available
// non-clinched player.
func pairClinchedPool(rc *roundContext) ([]seatPair, []*models.PlayerStanding) {
	clinched := make([]*models.PlayerStanding, 0)
	rest := make([]*models.PlayerStanding, 0, len(rc.pool))
	for _, p := range rc.pool {
		if p.IsClinched {
			clinched = append(clinched, p)
		} else {
			rest = append(rest, p)
		}
	}

	seats, leftover := pairConsecutive(clinched, rc.avoidRematches, rc.history)
	if leftover != nil && len(rest) > 0 {
		opp, remaining := takeFromBottom(leftover, rest, rc.avoidRematches, rc.history)
		seats = append(seats, seatPair{p1: leftover, p2: opp})
		rest = remaining
	} else if leftover != nil {
		seats = append(seats, seatPair{p1: leftover})
	}
	return seats, rest
}

// pairConsecutive walks the pool in order: the current head plays the first
// later entry it has not met (when avoiding rematches), defaulting to the
// very next entry when every candidate is a rematch. Returns the unpaired
// remainder of an odd pool.
func pairConsecutive(pool []*models.PlayerStanding, avoid bool, history MatchHistory) ([]seatPair, *models.PlayerStanding) {
	seats := make([]seatPair, 0, len(pool)/2)
	for len(pool) >= 2 {
		p := pool[0]
		pool = pool[1:]
		var opp *models.PlayerStanding
		opp, pool = takeOpponent(p, pool, avoid, history)
		seats = append(seats, seatPair{p1: p, p2: opp})
	}
	if len(pool) == 1 {
		return seats, pool[0]
	}
	return seats, nil
}

// takeOpponent removes and returns the opponent for p: the first rematch-free
// candidate in list order, or the head of the list if none exists. Never
// fails on an unavoidable rematch.
func takeOpponent(p *models.PlayerStanding, pool []*models.PlayerStanding, avoid bool, history MatchHistory) (*models.PlayerStanding, []*models.PlayerStanding) {
	idx := 0
	if avoid {
		for i, cand := range pool {
			if !history.Played(p.ID, cand.ID) {
				idx = i
				break
			}
		}
	}
	opp := pool[idx]
	return opp, append(pool[:idx:idx], pool[idx+1:]...)
}

// takeFromBottom picks an opponent scanning from the low end of the ranked
// pool, preferring a rematch-free candidate, defaulting to the lowest-ranked
// player outright.
func takeFromBottom(p *models.PlayerStanding, pool []*models.PlayerStanding, avoid bool, history MatchHistory) (*models.PlayerStanding, []*models.PlayerStanding) {
	idx := len(pool) - 1
	if avoid {
		for i := len(pool) - 1; i >= 0; i-- {
			if !history.Played(p.ID, pool[i].ID) {
				idx = i
				break
			}
		}
	}
	opp := pool[idx]
	return opp, append(pool[:idx:idx], pool[idx+1:]...)
}
