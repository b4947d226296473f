package pairing

import (
	"reflect"
	"testing"

	"github.com/tilerack/scrabble-system/models"
)

// ratedPlayers returns n players whose ratings descend with their ids, so
// the ranked order with no results is 1..n.
func ratedPlayers(n int) []models.Player {
	players := make([]models.Player, n)
	for i := range players {
		players[i] = models.Player{ID: i + 1, Name: "Player", Rating: 2000 - i*25}
	}
	return players
}

func TestGeneratePairingsCoversEveryPlayer(t *testing.T) {
	formats := []models.PairingFormat{
		models.FormatSwiss,
		models.FormatFonteSwiss,
		models.FormatKingOfTheHill,
		models.FormatRoundRobin,
		models.FormatQuartile,
	}
	for _, format := range formats {
		for _, n := range []int{4, 7, 8, 13} {
			pairings, err := GeneratePairings(GenerateInput{
				Players:      ratedPlayers(n),
				Format:       format,
				CurrentRound: 1,
				TotalRounds:  7,
			})
			if err != nil {
				t.Fatalf("%s n=%d: %v", format, n, err)
			}

			wantTables := (n + 1) / 2
			if len(pairings) != wantTables {
				t.Fatalf("%s n=%d: %d pairings, want %d", format, n, len(pairings), wantTables)
			}

			seen := make(map[int]int)
			byes := 0
			for i, p := range pairings {
				if p.TableNumber != i+1 {
					t.Errorf("%s n=%d: table %d at position %d", format, n, p.TableNumber, i)
				}
				seen[p.Player1ID]++
				if p.Player2ID == models.ByePlayerID {
					byes++
				} else {
					seen[p.Player2ID]++
				}
			}
			for id := 1; id <= n; id++ {
				if seen[id] != 1 {
					t.Errorf("%s n=%d: player %d appears %d times", format, n, id, seen[id])
				}
			}
			wantByes := n % 2
			if byes != wantByes {
				t.Errorf("%s n=%d: %d byes, want %d", format, n, byes, wantByes)
			}
		}
	}
}

func TestGeneratePairingsAvoidsRematch(t *testing.T) {
	// Players rank 1..4; players 1 and 2 already met, so 1 must skip
	// forward to 3 rather than repeat the match.
	previous := []models.Pairing{
		{ID: 1, Round: 1, Player1ID: 1, Player2ID: 2, FirstMovePlayerID: 1},
	}
	pairings, err := GeneratePairings(GenerateInput{
		Players:        ratedPlayers(4),
		Format:         models.FormatSwiss,
		AvoidRematches: true,
		Previous:       previous,
		CurrentRound:   2,
		TotalRounds:    3,
	})
	if err != nil {
		t.Fatal(err)
	}
	if pairings[0].Player1ID != 1 || pairings[0].Player2ID != 3 {
		t.Errorf("table 1 = %d vs %d, want 1 vs 3", pairings[0].Player1ID, pairings[0].Player2ID)
	}
	if pairings[1].Player1ID != 2 || pairings[1].Player2ID != 4 {
		t.Errorf("table 2 = %d vs %d, want 2 vs 4", pairings[1].Player1ID, pairings[1].Player2ID)
	}
}

func TestGeneratePairingsUnavoidableRematchDegrades(t *testing.T) {
	// Both candidates are rematches; the engine pairs the next in order
	// instead of failing.
	previous := []models.Pairing{
		{ID: 1, Player1ID: 1, Player2ID: 2},
		{ID: 2, Player1ID: 1, Player2ID: 3},
		{ID: 3, Player1ID: 1, Player2ID: 4},
	}
	pairings, err := GeneratePairings(GenerateInput{
		Players:        ratedPlayers(4),
		Format:         models.FormatSwiss,
		AvoidRematches: true,
		Previous:       previous,
		CurrentRound:   4,
		TotalRounds:    5,
	})
	if err != nil {
		t.Fatal(err)
	}
	if pairings[0].Player1ID != 1 || pairings[0].Player2ID != 2 {
		t.Errorf("table 1 = %d vs %d, want the default 1 vs 2", pairings[0].Player1ID, pairings[0].Player2ID)
	}
}

func TestRoundRobinForcesRematchAvoidance(t *testing.T) {
	previous := []models.Pairing{
		{ID: 1, Player1ID: 1, Player2ID: 2},
	}
	// avoidRematches deliberately false: round-robin overrides it.
	pairings, err := GeneratePairings(GenerateInput{
		Players:        ratedPlayers(4),
		Format:         models.FormatRoundRobin,
		AvoidRematches: false,
		Previous:       previous,
		CurrentRound:   2,
		TotalRounds:    3,
	})
	if err != nil {
		t.Fatal(err)
	}
	if pairings[0].Player2ID == 2 {
		t.Errorf("round-robin repeated the 1 vs 2 match")
	}
}

func TestGeneratePairingsManualIsEmpty(t *testing.T) {
	pairings, err := GeneratePairings(GenerateInput{
		Players:      ratedPlayers(6),
		Format:       models.FormatManual,
		CurrentRound: 1,
		TotalRounds:  5,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(pairings) != 0 {
		t.Errorf("manual format produced %d pairings, want none", len(pairings))
	}
}

func TestGeneratePairingsUnknownFormat(t *testing.T) {
	_, err := GeneratePairings(GenerateInput{
		Players: ratedPlayers(4),
		Format:  models.PairingFormat("ladder"),
	})
	if err == nil {
		t.Fatal("expected an error for an unknown format")
	}
}

func TestGeneratePairingsIdempotent(t *testing.T) {
	players := ratedPlayers(9)
	previous := []models.Pairing{
		{ID: 1, Round: 1, Player1ID: 1, Player2ID: 2, FirstMovePlayerID: 1},
		{ID: 2, Round: 1, Player1ID: 3, Player2ID: 4, FirstMovePlayerID: 4},
		{ID: 3, Round: 1, Player1ID: 5, Player2ID: 6, FirstMovePlayerID: 5},
	}
	results := []models.Result{
		{ID: 1, PairingID: 1, Score1: 405, Score2: 350},
		{ID: 2, PairingID: 2, Score1: 333, Score2: 333},
		{ID: 3, PairingID: 3, Score1: 280, Score2: 512},
	}
	in := GenerateInput{
		Players:        players,
		Results:        results,
		Previous:       previous,
		Format:         models.FormatSwiss,
		AvoidRematches: true,
		CurrentRound:   2,
		TotalRounds:    6,
	}

	first, err := GeneratePairings(in)
	if err != nil {
		t.Fatal(err)
	}
	second, err := GeneratePairings(in)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical inputs produced different pairings:\n%v\n%v", first, second)
	}
}

func TestGeneratePairingsByeGetsFirstMove(t *testing.T) {
	pairings, err := GeneratePairings(GenerateInput{
		Players:      ratedPlayers(5),
		Format:       models.FormatSwiss,
		CurrentRound: 1,
		TotalRounds:  4,
	})
	if err != nil {
		t.Fatal(err)
	}
	last := pairings[len(pairings)-1]
	if last.Player2ID != models.ByePlayerID {
		t.Fatalf("expected the final table to hold the bye, got %+v", last)
	}
	if last.FirstMovePlayerID != last.Player1ID {
		t.Errorf("bye pairing first move = %d, want the real player %d", last.FirstMovePlayerID, last.Player1ID)
	}
}
