package pairing

import (
	"sort"

	"github.com/tilerack/scrabble-system/models"
)

// ComputeStandings projects the raw result history onto the player pool:
// win/loss/draw counts, points (wins + 0.5 per draw), cumulative spread,
// previous first-move counts and the competition rank after the mandatory
// (points, spread, rating) descending sort: rank is one more than the
// number of players with a strictly better tuple, so full ties share it.
//
// Results whose pairing is missing, or whose pairing references players no
// longer in the pool, contribute nothing. That tolerance is deliberate: a
// withdrawn player must not make standings computation fail.
func ComputeStandings(players []models.Player, results []models.Result, pairings []models.Pairing) []models.PlayerStanding {
	byID := make(map[int]*models.PlayerStanding, len(players))
	standings := make([]models.PlayerStanding, len(players))
	for i, p := range players {
		standings[i] = models.PlayerStanding{Player: p}
		byID[p.ID] = &standings[i]
	}

	pairingByID := make(map[int]*models.Pairing, len(pairings))
	for i := range pairings {
		pairingByID[pairings[i].ID] = &pairings[i]
		if ps, ok := byID[pairings[i].FirstMovePlayerID]; ok {
			ps.PreviousStarts++
		}
	}

	for _, r := range results {
		pairing := r.Pairing
		if pairing == nil {
			pairing = pairingByID[r.PairingID]
		}
		if pairing == nil {
			continue // dangling result, skip
		}
		p1 := byID[pairing.Player1ID]
		p2 := byID[pairing.Player2ID]
		if p1 != nil {
			applyResult(p1, r.Score1, r.Score2)
		}
		if p2 != nil {
			applyResult(p2, r.Score2, r.Score1)
		}
	}

	for i := range standings {
		s := &standings[i]
		s.Points = float64(s.Wins) + 0.5*float64(s.Draws)
	}

	SortStandings(standings)
	// Competition ranking: players tied on the full (points, spread,
	// rating) tuple share a rank, and the next distinct tuple resumes at
	// its 1-based position.
	for i := range standings {
		if i > 0 && !standingLess(&standings[i], &standings[i-1]) {
			standings[i].Rank = standings[i-1].Rank
			continue
		}
		standings[i].Rank = i + 1
	}
	return standings
}

func applyResult(s *models.PlayerStanding, own, opp int) {
	switch {
	case own > opp:
		s.Wins++
	case own < opp:
		s.Losses++
	default:
		s.Draws++
	}
	s.Spread += own - opp
}

// SortStandings orders players descending by the (points, spread, rating)
// tuple. The sort is stable: players tied on all three keys keep their
// incoming order, which keeps repeated generations byte-identical.
func SortStandings(standings []models.PlayerStanding) {
	sort.SliceStable(standings, func(i, j int) bool {
		return standingLess(&standings[j], &standings[i])
	})
}

// standingLess reports whether a ranks strictly below b.
func standingLess(a, b *models.PlayerStanding) bool {
	if a.Points != b.Points {
		return a.Points < b.Points
	}
	if a.Spread != b.Spread {
		return a.Spread < b.Spread
	}
	return a.Rating < b.Rating
}
