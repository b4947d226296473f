package pairing

import "github.com/tilerack/scrabble-system/models"

type pairKey struct {
	lo, hi int
}

func keyFor(a, b int) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// MatchHistory is the set of unordered player pairs that have already met.
// It is built from prior pairings only and is never score-aware: its single
// job is rematch avoidance.
type MatchHistory map[pairKey]struct{}

// NewMatchHistory collects every unordered pair from the given pairings.
func NewMatchHistory(pairings []models.Pairing) MatchHistory {
	h := make(MatchHistory, len(pairings))
	for _, p := range pairings {
		h[keyFor(p.Player1ID, p.Player2ID)] = struct{}{}
	}
	return h
}

// Played reports whether the two players have met before.
func (h MatchHistory) Played(a, b int) bool {
	_, ok := h[keyFor(a, b)]
	return ok
}
