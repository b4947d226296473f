package pairing

import (
	"fmt"

	"github.com/tilerack/scrabble-system/models"
)

// GenerateInput carries everything one round generation depends on. The
// engine is a pure function over this input: no I/O, no retained state, and
// identical inputs always produce identical output.
type GenerateInput struct {
	Players        []models.Player
	Results        []models.Result
	Previous       []models.Pairing
	Format         models.PairingFormat
	AvoidRematches bool
	CurrentRound   int
	TotalRounds    int
	Clinch         ClinchConfig
}

// GeneratePairings computes the table assignments for the next round.
//
// Standings are recomputed from the raw result history, clinched players are
// annotated, and the selected format strategy consumes the ranked pool. The
// manual format returns no pairings; an unknown format is an error.
func GeneratePairings(in GenerateInput) ([]models.Pairing, error) {
	if in.Format == models.FormatManual {
		return []models.Pairing{}, nil
	}

	strat, err := strategyFor(in.Format)
	if err != nil {
		return nil, err
	}

	standings := ComputeStandings(in.Players, in.Results, in.Previous)
	DetectClinches(standings, in.CurrentRound, in.TotalRounds, in.Clinch)

	avoid := in.AvoidRematches
	if in.Format == models.FormatRoundRobin {
		// Round-robin is only meaningful with strict rematch avoidance.
		avoid = true
	}

	rc := &roundContext{
		pool:           refs(standings),
		avoidRematches: avoid,
		history:        NewMatchHistory(in.Previous),
	}
	seats := strat.pair(rc)

	return assemble(seats, in.CurrentRound), nil
}

// strategy computes the seat order for one round from the ranked,
// clinch-annotated pool. Implementations must cover every pool member
// exactly once, with a trailing nil seat for an odd pool.
type strategy interface {
	name() string
	pair(rc *roundContext) []seatPair
}

// seatPair is one table before numbering. A nil second seat becomes a BYE.
type seatPair struct {
	p1 *models.PlayerStanding
	p2 *models.PlayerStanding
}

type roundContext struct {
	pool           []*models.PlayerStanding
	avoidRematches bool
	history        MatchHistory
}

func strategyFor(format models.PairingFormat) (strategy, error) {
	switch format {
	case models.FormatSwiss, models.FormatRoundRobin:
		return &swissStrategy{}, nil
	case models.FormatFonteSwiss:
		return &fonteSwissStrategy{}, nil
	case models.FormatKingOfTheHill:
		return &kingOfTheHillStrategy{}, nil
	case models.FormatQuartile:
		return &quartileStrategy{}, nil
	}
	return nil, fmt.Errorf("unsupported pairing format %q", format)
}

// assemble turns seat pairs into numbered pairings with first-move and
// clinch flags stamped. Table numbers are a contiguous 1..N sequence in
// generation order.
func assemble(seats []seatPair, round int) []models.Pairing {
	pairings := make([]models.Pairing, 0, len(seats))
	for i, s := range seats {
		table := i + 1
		p := models.Pairing{
			Round:           round,
			TableNumber:     table,
			Player1ID:       s.p1.ID,
			Player1Clinched: s.p1.IsClinched,
		}
		if s.p2 == nil {
			p.Player2ID = models.ByePlayerID
			p.FirstMovePlayerID = s.p1.ID
		} else {
			p.Player2ID = s.p2.ID
			p.Player2Clinched = s.p2.IsClinched
			p.FirstMovePlayerID = ResolveFirstMove(s.p1, s.p2, table)
		}
		pairings = append(pairings, p)
	}
	return pairings
}

func refs(standings []models.PlayerStanding) []*models.PlayerStanding {
	out := make([]*models.PlayerStanding, len(standings))
	for i := range standings {
		out[i] = &standings[i]
	}
	return out
}
