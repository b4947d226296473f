package pairing

import (
	"errors"
	"sort"

	"github.com/tilerack/scrabble-system/models"
)

var (
	// ErrInsufficientTeams is returned when fewer than two teams have
	// registered players.
	ErrInsufficientTeams = errors.New("team round robin requires at least two teams")

	// ErrScheduleExhausted is returned for a round number outside the
	// round-robin schedule. Unlike data-quality edge cases this surfaces to
	// the caller: it signals misuse, not tolerable input noise.
	ErrScheduleExhausted = errors.New("team round robin schedule exhausted")
)

// TeamRound is the output of one team round-robin round: the individual
// pairings in table order plus the team matchups that produced them.
type TeamRound struct {
	Pairings []models.Pairing            `json:"pairings"`
	Matchups []models.TeamMatchupSummary `json:"team_matchups"`
}

// GenerateTeamRoundRobin schedules the requested round of an all-play-all
// team competition using the circle method: the first team stays fixed and
// the rest rotate each round. Every matchup expands to the full cross
// product of the two rosters, so each player faces every member of the
// opposing team. Players without a team affiliation are ignored.
//
// With T teams (counting the synthetic BYE team added for an odd count)
// exactly T-1 rounds exist; asking for more returns ErrScheduleExhausted.
func GenerateTeamRoundRobin(players []models.Player, currentRound int, previousPairings []models.Pairing) (*TeamRound, error) {
	rosters := make(map[string][]models.Player)
	names := make([]string, 0)
	for _, p := range players {
		if p.Team == nil || *p.Team == "" {
			continue
		}
		if _, ok := rosters[*p.Team]; !ok {
			names = append(names, *p.Team)
		}
		rosters[*p.Team] = append(rosters[*p.Team], p)
	}
	if len(names) < 2 {
		return nil, ErrInsufficientTeams
	}
	sort.Strings(names)

	if len(names)%2 == 1 {
		names = append(names, models.ByeTeamName)
	}
	totalRounds := len(names) - 1
	if currentRound < 1 || currentRound > totalRounds {
		return nil, ErrScheduleExhausted
	}

	// Circle method: fix the first team, rotate the rest by one position
	// per round, then fold the ring so position i meets position len-1-i.
	rotating := names[1:]
	ring := make([]string, 0, len(names))
	ring = append(ring, names[0])
	for i := range rotating {
		ring = append(ring, rotating[(i+currentRound-1)%len(rotating)])
	}

	starts := previousStartCounts(previousPairings)

	round := &TeamRound{
		Pairings: make([]models.Pairing, 0),
		Matchups: make([]models.TeamMatchupSummary, 0, len(ring)/2),
	}
	table := 0
	for i := 0; i < len(ring)/2; i++ {
		teamA, teamB := ring[i], ring[len(ring)-1-i]
		if teamA == models.ByeTeamName || teamB == models.ByeTeamName {
			continue
		}
		round.Matchups = append(round.Matchups, models.TeamMatchupSummary{
			Round:    currentRound,
			TeamA:    teamA,
			TeamB:    teamB,
			PlayersA: rosters[teamA],
			PlayersB: rosters[teamB],
		})
		for _, pa := range rosters[teamA] {
			for _, pb := range rosters[teamB] {
				table++
				s1 := &models.PlayerStanding{Player: pa, PreviousStarts: starts[pa.ID]}
				s2 := &models.PlayerStanding{Player: pb, PreviousStarts: starts[pb.ID]}
				round.Pairings = append(round.Pairings, models.Pairing{
					Round:             currentRound,
					TableNumber:       table,
					Player1ID:         pa.ID,
					Player2ID:         pb.ID,
					FirstMovePlayerID: ResolveFirstMove(s1, s2, table),
				})
			}
		}
	}
	return round, nil
}

func previousStartCounts(pairings []models.Pairing) map[int]int {
	starts := make(map[int]int, len(pairings))
	for _, p := range pairings {
		starts[p.FirstMovePlayerID]++
	}
	return starts
}

// ComputeTeamStandings aggregates individual games into team records. Each
// head-to-head encounter (one team matchup within one round) is decided by
// comparing the games won by either roster: majority wins the match, equal
// counts draw it. Results that cannot be resolved to two distinct teams are
// skipped, mirroring the individual standings tolerance.
func ComputeTeamStandings(players []models.Player, pairings []models.Pairing, results []models.Result) []models.TeamStanding {
	teamOf := make(map[int]string, len(players))
	names := make([]string, 0)
	byTeam := make(map[string]*models.TeamStanding)
	for _, p := range players {
		if p.Team == nil || *p.Team == "" {
			continue
		}
		teamOf[p.ID] = *p.Team
		if _, ok := byTeam[*p.Team]; !ok {
			names = append(names, *p.Team)
			byTeam[*p.Team] = &models.TeamStanding{Team: *p.Team}
		}
	}
	sort.Strings(names)

	pairingByID := make(map[int]*models.Pairing, len(pairings))
	for i := range pairings {
		pairingByID[pairings[i].ID] = &pairings[i]
	}

	type encounterKey struct {
		round  int
		lo, hi string
	}
	type encounterTally struct {
		loWins, hiWins int
	}
	encounters := make(map[encounterKey]*encounterTally)

	for _, r := range results {
		pairing := r.Pairing
		if pairing == nil {
			pairing = pairingByID[r.PairingID]
		}
		if pairing == nil {
			continue
		}
		t1, ok1 := teamOf[pairing.Player1ID]
		t2, ok2 := teamOf[pairing.Player2ID]
		if !ok1 || !ok2 || t1 == t2 {
			continue
		}

		s1, s2 := byTeam[t1], byTeam[t2]
		switch {
		case r.Score1 > r.Score2:
			s1.GamesWon++
			s2.GamesLost++
		case r.Score2 > r.Score1:
			s2.GamesWon++
			s1.GamesLost++
		}
		s1.Spread += r.Score1 - r.Score2
		s2.Spread += r.Score2 - r.Score1

		key := encounterKey{round: pairing.Round, lo: t1, hi: t2}
		if key.lo > key.hi {
			key.lo, key.hi = key.hi, key.lo
		}
		tally, ok := encounters[key]
		if !ok {
			tally = &encounterTally{}
			encounters[key] = tally
		}
		if r.Score1 != r.Score2 {
			winner := t1
			if r.Score2 > r.Score1 {
				winner = t2
			}
			if winner == key.lo {
				tally.loWins++
			} else {
				tally.hiWins++
			}
		}
	}

	for key, tally := range encounters {
		lo, hi := byTeam[key.lo], byTeam[key.hi]
		switch {
		case tally.loWins > tally.hiWins:
			lo.MatchesWon++
			hi.MatchesLost++
		case tally.hiWins > tally.loWins:
			hi.MatchesWon++
			lo.MatchesLost++
		default:
			lo.MatchesDrawn++
			hi.MatchesDrawn++
		}
	}

	standings := make([]models.TeamStanding, 0, len(names))
	for _, name := range names {
		standings = append(standings, *byTeam[name])
	}
	sort.SliceStable(standings, func(i, j int) bool {
		a, b := &standings[i], &standings[j]
		if a.MatchesWon != b.MatchesWon {
			return a.MatchesWon > b.MatchesWon
		}
		if a.Spread != b.Spread {
			return a.Spread > b.Spread
		}
		return a.GamesWon > b.GamesWon
	})
	for i := range standings {
		standings[i].Rank = i + 1
	}
	return standings
}
