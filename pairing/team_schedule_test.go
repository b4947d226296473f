package pairing

import (
	"testing"

	"github.com/tilerack/scrabble-system/models"
)

func teamPlayers(teams map[string]int) []models.Player {
	players := make([]models.Player, 0)
	id := 0
	for _, team := range []string{"Alpha", "Bravo", "Charlie", "Delta", "Echo"} {
		n, ok := teams[team]
		if !ok {
			continue
		}
		for i := 0; i < n; i++ {
			id++
			name := team
			players = append(players, models.Player{
				ID:     id,
				Name:   name,
				Rating: 1500,
				Team:   &name,
			})
		}
	}
	return players
}

func TestTeamRoundRobinCompleteness(t *testing.T) {
	players := teamPlayers(map[string]int{"Alpha": 2, "Bravo": 2, "Charlie": 2, "Delta": 2})

	seen := make(map[[2]string]int)
	for round := 1; round <= 3; round++ {
		tr, err := GenerateTeamRoundRobin(players, round, nil)
		if err != nil {
			t.Fatalf("round %d: %v", round, err)
		}
		if len(tr.Matchups) != 2 {
			t.Fatalf("round %d: %d matchups, want 2", round, len(tr.Matchups))
		}
		for _, m := range tr.Matchups {
			key := [2]string{m.TeamA, m.TeamB}
			if key[0] > key[1] {
				key[0], key[1] = key[1], key[0]
			}
			seen[key]++
		}
	}

	if len(seen) != 6 {
		t.Fatalf("saw %d distinct matchups across 3 rounds, want 6", len(seen))
	}
	for key, count := range seen {
		if count != 1 {
			t.Errorf("matchup %v scheduled %d times", key, count)
		}
	}

	if _, err := GenerateTeamRoundRobin(players, 4, nil); err != ErrScheduleExhausted {
		t.Errorf("round 4 error = %v, want ErrScheduleExhausted", err)
	}
}

func TestTeamRoundRobinCrossProduct(t *testing.T) {
	players := teamPlayers(map[string]int{"Alpha": 3, "Bravo": 2})

	tr, err := GenerateTeamRoundRobin(players, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(tr.Matchups) != 1 {
		t.Fatalf("%d matchups, want 1", len(tr.Matchups))
	}
	// Every Alpha member plays every Bravo member.
	if len(tr.Pairings) != 6 {
		t.Fatalf("%d pairings, want 3x2=6", len(tr.Pairings))
	}
	for i, p := range tr.Pairings {
		if p.TableNumber != i+1 {
			t.Errorf("table %d at position %d", p.TableNumber, i)
		}
		if p.FirstMovePlayerID != p.Player1ID && p.FirstMovePlayerID != p.Player2ID {
			t.Errorf("table %d: first mover %d is not seated", p.TableNumber, p.FirstMovePlayerID)
		}
	}
}

func TestTeamRoundRobinOddTeamCountGetsByeRound(t *testing.T) {
	players := teamPlayers(map[string]int{"Alpha": 1, "Bravo": 1, "Charlie": 1})

	rested := make(map[string]bool)
	// Three real teams plus the synthetic bye: three rounds, one matchup
	// each, and a different team resting every round.
	for round := 1; round <= 3; round++ {
		tr, err := GenerateTeamRoundRobin(players, round, nil)
		if err != nil {
			t.Fatalf("round %d: %v", round, err)
		}
		if len(tr.Matchups) != 1 {
			t.Fatalf("round %d: %d matchups, want 1", round, len(tr.Matchups))
		}
		playing := map[string]bool{tr.Matchups[0].TeamA: true, tr.Matchups[0].TeamB: true}
		for _, team := range []string{"Alpha", "Bravo", "Charlie"} {
			if !playing[team] {
				rested[team] = true
			}
		}
	}
	if len(rested) != 3 {
		t.Errorf("expected every team to rest exactly one round, rested: %v", rested)
	}
}

func TestTeamRoundRobinRequiresTwoTeams(t *testing.T) {
	players := teamPlayers(map[string]int{"Alpha": 4})
	if _, err := GenerateTeamRoundRobin(players, 1, nil); err != ErrInsufficientTeams {
		t.Errorf("error = %v, want ErrInsufficientTeams", err)
	}
}

func TestTeamRoundRobinFirstMoveUsesHistory(t *testing.T) {
	players := teamPlayers(map[string]int{"Alpha": 1, "Bravo": 1})
	// Player 1 already started twice; player 2 never has.
	previous := []models.Pairing{
		{ID: 1, Player1ID: 1, Player2ID: 2, FirstMovePlayerID: 1},
		{ID: 2, Player1ID: 1, Player2ID: 2, FirstMovePlayerID: 1},
	}

	tr, err := GenerateTeamRoundRobin(players, 1, previous)
	if err != nil {
		t.Fatal(err)
	}
	if len(tr.Pairings) != 1 {
		t.Fatalf("%d pairings, want 1", len(tr.Pairings))
	}
	if tr.Pairings[0].FirstMovePlayerID != 2 {
		t.Errorf("first move = %d, want the player with fewer starts (2)", tr.Pairings[0].FirstMovePlayerID)
	}
}

func TestComputeTeamStandings(t *testing.T) {
	players := teamPlayers(map[string]int{"Alpha": 2, "Bravo": 2})
	// Alpha: players 1,2. Bravo: players 3,4.
	pairings := []models.Pairing{
		{ID: 1, Round: 1, Player1ID: 1, Player2ID: 3},
		{ID: 2, Round: 1, Player1ID: 1, Player2ID: 4},
		{ID: 3, Round: 1, Player1ID: 2, Player2ID: 3},
		{ID: 4, Round: 1, Player1ID: 2, Player2ID: 4},
	}
	// Alpha takes three of four games.
	results := []models.Result{
		{PairingID: 1, Score1: 420, Score2: 380},
		{PairingID: 2, Score1: 390, Score2: 410},
		{PairingID: 3, Score1: 450, Score2: 300},
		{PairingID: 4, Score1: 405, Score2: 395},
	}

	standings := ComputeTeamStandings(players, pairings, results)
	if len(standings) != 2 {
		t.Fatalf("%d team standings, want 2", len(standings))
	}

	alpha := standings[0]
	if alpha.Team != "Alpha" || alpha.Rank != 1 {
		t.Fatalf("expected Alpha ranked first, got %+v", alpha)
	}
	if alpha.MatchesWon != 1 || alpha.MatchesLost != 0 {
		t.Errorf("Alpha matches = %d won %d lost, want 1 and 0", alpha.MatchesWon, alpha.MatchesLost)
	}
	if alpha.GamesWon != 3 || alpha.GamesLost != 1 {
		t.Errorf("Alpha games = %d won %d lost, want 3 and 1", alpha.GamesWon, alpha.GamesLost)
	}
	wantSpread := (420 - 380) + (390 - 410) + (450 - 300) + (405 - 395)
	if alpha.Spread != wantSpread {
		t.Errorf("Alpha spread = %d, want %d", alpha.Spread, wantSpread)
	}

	bravo := standings[1]
	if bravo.MatchesLost != 1 || bravo.GamesWon != 1 {
		t.Errorf("Bravo = %+v, want 1 match lost and 1 game won", bravo)
	}
}

func TestComputeTeamStandingsDrawnMatch(t *testing.T) {
	players := teamPlayers(map[string]int{"Alpha": 2, "Bravo": 2})
	pairings := []models.Pairing{
		{ID: 1, Round: 1, Player1ID: 1, Player2ID: 3},
		{ID: 2, Round: 1, Player1ID: 2, Player2ID: 4},
	}
	// One game each: the encounter is drawn.
	results := []models.Result{
		{PairingID: 1, Score1: 420, Score2: 380},
		{PairingID: 2, Score1: 300, Score2: 450},
	}

	standings := ComputeTeamStandings(players, pairings, results)
	for _, s := range standings {
		if s.MatchesDrawn != 1 || s.MatchesWon != 0 || s.MatchesLost != 0 {
			t.Errorf("team %s = %+v, want one drawn match", s.Team, s)
		}
	}
}
