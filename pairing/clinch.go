package pairing

import (
	"math"

	"github.com/tilerack/scrabble-system/models"
)

// ClinchConfig sets the placement tiers checked by the clinch detector as
// fractions of the field size. The 25%/50% defaults reproduce the classic
// first-tier/podium split; directors running a different prize structure
// can override them per tournament.
type ClinchConfig struct {
	FirstTierPct float64
	PodiumPct    float64
}

// DefaultClinchConfig returns the stock 25%/50% tier split.
func DefaultClinchConfig() ClinchConfig {
	return ClinchConfig{FirstTierPct: 0.25, PodiumPct: 0.5}
}

func (c ClinchConfig) orDefault() ClinchConfig {
	if c.FirstTierPct <= 0 || c.PodiumPct <= 0 {
		return DefaultClinchConfig()
	}
	return c
}

// DetectClinches marks players whose placement within a tier can no longer
// be affected by the remaining rounds (Gibsonization). A player inside a
// tier is clinched when their current points strictly exceed the best
// possible final points of every player outside that tier, assuming those
// players win out.
//
// The comparison is strict: a competitor who can still tie prevents the
// clinch. Flags are written fresh on every call; nothing carries over from
// earlier rounds.
//
// The standings slice must already be in (points, spread, rating) order, as
// produced by ComputeStandings.
func DetectClinches(standings []models.PlayerStanding, currentRound, totalRounds int, cfg ClinchConfig) {
	cfg = cfg.orDefault()
	n := len(standings)
	if n == 0 {
		return
	}

	remaining := totalRounds - currentRound + 1
	if remaining < 0 {
		remaining = 0
	}

	firstTier := int(math.Ceil(float64(n) * cfg.FirstTierPct))
	podiumTier := int(math.Ceil(float64(n) * cfg.PodiumPct))

	for i := range standings {
		s := &standings[i]
		pos := i + 1
		s.IsClinched = false
		if pos <= firstTier && clinchedAgainst(standings, firstTier, s.Points, remaining) {
			s.IsClinched = true
			continue
		}
		if pos <= podiumTier && clinchedAgainst(standings, podiumTier, s.Points, remaining) {
			s.IsClinched = true
		}
	}
}

// clinchedAgainst checks the player's points against the maximum reachable
// points of everyone ranked below the tier boundary.
func clinchedAgainst(standings []models.PlayerStanding, tier int, points float64, remaining int) bool {
	for i := tier; i < len(standings); i++ {
		if !(points > standings[i].Points+float64(remaining)) {
			return false
		}
	}
	return true
}
