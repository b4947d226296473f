package pairing

import (
	"testing"

	"github.com/tilerack/scrabble-system/models"
)

func player(id, rating int) models.Player {
	return models.Player{ID: id, Name: "Player", Rating: rating}
}

func TestComputeStandingsRecords(t *testing.T) {
	players := []models.Player{player(1, 1500), player(2, 1600), player(3, 1400), player(4, 1450)}
	pairings := []models.Pairing{
		{ID: 10, Round: 1, TableNumber: 1, Player1ID: 1, Player2ID: 2, FirstMovePlayerID: 1},
		{ID: 11, Round: 1, TableNumber: 2, Player1ID: 3, Player2ID: 4, FirstMovePlayerID: 3},
		{ID: 12, Round: 2, TableNumber: 1, Player1ID: 1, Player2ID: 3, FirstMovePlayerID: 3},
		{ID: 13, Round: 2, TableNumber: 2, Player1ID: 2, Player2ID: 4, FirstMovePlayerID: 2},
	}
	results := []models.Result{
		{ID: 1, PairingID: 10, Score1: 420, Score2: 380},
		{ID: 2, PairingID: 11, Score1: 400, Score2: 400},
		{ID: 3, PairingID: 12, Score1: 390, Score2: 410},
	}

	standings := ComputeStandings(players, results, pairings)

	byID := make(map[int]models.PlayerStanding)
	for _, s := range standings {
		byID[s.ID] = s
	}

	p1 := byID[1]
	if p1.Wins != 1 || p1.Losses != 1 || p1.Draws != 0 {
		t.Errorf("player 1 record = %d/%d/%d, want 1/1/0", p1.Wins, p1.Losses, p1.Draws)
	}
	if p1.Points != 1.0 {
		t.Errorf("player 1 points = %v, want 1.0", p1.Points)
	}
	if p1.Spread != 20 {
		t.Errorf("player 1 spread = %d, want 20", p1.Spread)
	}
	if p1.PreviousStarts != 1 {
		t.Errorf("player 1 previous starts = %d, want 1", p1.PreviousStarts)
	}

	p3 := byID[3]
	if p3.Wins != 1 || p3.Draws != 1 {
		t.Errorf("player 3 record = %d wins %d draws, want 1 and 1", p3.Wins, p3.Draws)
	}
	if p3.Points != 1.5 {
		t.Errorf("player 3 points = %v, want 1.5", p3.Points)
	}
	if p3.PreviousStarts != 2 {
		t.Errorf("player 3 previous starts = %d, want 2", p3.PreviousStarts)
	}
}

func TestComputeStandingsSortOrder(t *testing.T) {
	// Rating breaks the tie only when points and spread both match.
	players := []models.Player{
		{ID: 1, Rating: 1500},
		{ID: 2, Rating: 1600},
		{ID: 3, Rating: 1200},
		{ID: 4, Rating: 2000},
	}
	pairings := []models.Pairing{
		{ID: 1, Player1ID: 1, Player2ID: 3},
		{ID: 2, Player1ID: 2, Player2ID: 4},
	}
	results := []models.Result{
		{PairingID: 1, Score1: 410, Score2: 400}, // 1 wins by 10
		{PairingID: 2, Score1: 420, Score2: 410}, // 2 wins by 10
	}

	standings := ComputeStandings(players, results, pairings)

	wantOrder := []int{2, 1, 4, 3}
	for i, want := range wantOrder {
		if standings[i].ID != want {
			t.Fatalf("position %d = player %d, want %d", i+1, standings[i].ID, want)
		}
		if standings[i].Rank != i+1 {
			t.Errorf("player %d rank = %d, want %d", standings[i].ID, standings[i].Rank, i+1)
		}
	}
	// Players 4 and 3 both lost by 10; 4 outranks 3 on rating alone.
	if standings[2].ID != 4 {
		t.Errorf("expected rating to break the loser tie in favor of player 4")
	}
}

func TestComputeStandingsTiedPlayersShareRank(t *testing.T) {
	players := []models.Player{
		{ID: 1, Rating: 1500},
		{ID: 2, Rating: 1500},
		{ID: 3, Rating: 1300},
		{ID: 4, Rating: 1400},
	}
	pairings := []models.Pairing{
		{ID: 1, Player1ID: 1, Player2ID: 3},
		{ID: 2, Player1ID: 2, Player2ID: 4},
	}
	results := []models.Result{
		{PairingID: 1, Score1: 420, Score2: 400}, // 1 wins by 20
		{PairingID: 2, Score1: 430, Score2: 410}, // 2 wins by 20
	}

	standings := ComputeStandings(players, results, pairings)

	// Players 1 and 2 are tied on points, spread and rating: same rank.
	if standings[0].Rank != 1 || standings[1].Rank != 1 {
		t.Errorf("fully tied winners ranked %d and %d, want 1 and 1",
			standings[0].Rank, standings[1].Rank)
	}
	// The next distinct tuple resumes at position 3, not 2.
	if standings[2].ID != 4 || standings[2].Rank != 3 {
		t.Errorf("position 3 = player %d rank %d, want player 4 rank 3",
			standings[2].ID, standings[2].Rank)
	}
	if standings[3].ID != 3 || standings[3].Rank != 4 {
		t.Errorf("position 4 = player %d rank %d, want player 3 rank 4",
			standings[3].ID, standings[3].Rank)
	}
}

func TestComputeStandingsSpreadBeatsRating(t *testing.T) {
	players := []models.Player{
		{ID: 3, Rating: 1200},
		{ID: 4, Rating: 2000},
	}
	pairings := []models.Pairing{
		{ID: 1, Player1ID: 3, Player2ID: 99},
		{ID: 2, Player1ID: 4, Player2ID: 98},
	}
	results := []models.Result{
		{PairingID: 1, Score1: 420, Score2: 400}, // +20 for low rated player
		{PairingID: 2, Score1: 415, Score2: 410}, // +5 for high rated player
	}

	standings := ComputeStandings(players, results, pairings)
	if standings[0].ID != 3 {
		t.Errorf("spread +20 must outrank spread +5 regardless of rating, got player %d first", standings[0].ID)
	}
}

func TestComputeStandingsSkipsDanglingResults(t *testing.T) {
	players := []models.Player{player(1, 1500), player(2, 1400)}
	pairings := []models.Pairing{
		{ID: 1, Player1ID: 1, Player2ID: 2},
		{ID: 2, Player1ID: 1, Player2ID: 77}, // opponent withdrew
	}
	results := []models.Result{
		{PairingID: 1, Score1: 450, Score2: 300},
		{PairingID: 999, Score1: 500, Score2: 100}, // pairing gone entirely
		{PairingID: 2, Score1: 380, Score2: 430},   // counts for player 1 only
	}

	standings := ComputeStandings(players, results, pairings)

	byID := make(map[int]models.PlayerStanding)
	for _, s := range standings {
		byID[s.ID] = s
	}
	p1 := byID[1]
	if p1.Wins != 1 || p1.Losses != 1 {
		t.Errorf("player 1 record = %d/%d, want 1 win 1 loss", p1.Wins, p1.Losses)
	}
	p2 := byID[2]
	if p2.Wins != 0 || p2.Losses != 1 {
		t.Errorf("player 2 record = %d/%d, want 0 wins 1 loss", p2.Wins, p2.Losses)
	}
}
