package pairing

import (
	"testing"

	"github.com/tilerack/scrabble-system/models"
)

func pool(standings []models.PlayerStanding) *roundContext {
	return &roundContext{
		pool:    refs(standings),
		history: NewMatchHistory(nil),
	}
}

func pairIDs(seats []seatPair) [][2]int {
	out := make([][2]int, 0, len(seats))
	for _, s := range seats {
		pair := [2]int{s.p1.ID, models.ByePlayerID}
		if s.p2 != nil {
			pair[1] = s.p2.ID
		}
		out = append(out, pair)
	}
	return out
}

func assertPairs(t *testing.T, got [][2]int, want [][2]int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d pairs %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pair %d = %v, want %v", i+1, got[i], want[i])
		}
	}
}

func TestKingOfTheHillFoldsTheField(t *testing.T) {
	standings := standingsWithPoints(8, 7, 6, 5, 4, 3, 2, 1)
	seats := (&kingOfTheHillStrategy{}).pair(pool(standings))

	assertPairs(t, pairIDs(seats), [][2]int{
		{1, 8}, {2, 7}, {3, 6}, {4, 5},
	})
}

func TestKingOfTheHillSwapsRematch(t *testing.T) {
	standings := standingsWithPoints(8, 7, 6, 5, 4, 3, 2, 1)
	rc := pool(standings)
	rc.avoidRematches = true
	rc.history = NewMatchHistory([]models.Pairing{
		{Player1ID: 1, Player2ID: 8},
	})

	seats := (&kingOfTheHillStrategy{}).pair(rc)

	// Player 8 is swapped out for the next lowest unplayed opponent and
	// takes 8's slot further down.
	assertPairs(t, pairIDs(seats), [][2]int{
		{1, 7}, {2, 8}, {3, 6}, {4, 5},
	})
}

func TestQuartilePairsFirstAgainstSecond(t *testing.T) {
	standings := standingsWithPoints(8, 7, 6, 5, 4, 3, 2, 1)
	seats := (&quartileStrategy{}).pair(pool(standings))

	// ceil(8/4) = 2 per quartile: Q1={1,2} Q2={3,4} Q3={5,6} Q4={7,8}.
	assertPairs(t, pairIDs(seats), [][2]int{
		{1, 3}, {2, 4}, {5, 7}, {6, 8},
	})
}

func TestFonteSwissPairsHalvesWithinScoreGroups(t *testing.T) {
	standings := standingsWithPoints(2, 2, 2, 2, 1, 1, 1, 1)
	// Spreads keep each group in id order after the (spread, rating)
	// group sort.
	for i := range standings {
		standings[i].Spread = 100 - i*10
	}
	seats := (&fonteSwissStrategy{}).pair(pool(standings))

	// Group on 2 points: top {1,2} vs bottom {3,4}; group on 1 likewise.
	assertPairs(t, pairIDs(seats), [][2]int{
		{1, 3}, {2, 4}, {5, 7}, {6, 8},
	})
}

func TestFonteSwissDropsOddPlayerToNextGroup(t *testing.T) {
	standings := standingsWithPoints(2, 2, 2, 1, 1, 1)
	for i := range standings {
		standings[i].Spread = 100 - i*10
	}
	seats := (&fonteSwissStrategy{}).pair(pool(standings))

	// Top group of three: top {1,2} vs bottom {3}; 2 is left over and
	// drops into the 1-point group as its highest entry, where the halves
	// become {2,4} and {5,6}.
	assertPairs(t, pairIDs(seats), [][2]int{
		{1, 3}, {2, 5}, {4, 6},
	})
}

func TestClinchedPlayersPairTogetherFirst(t *testing.T) {
	standings := standingsWithPoints(9, 8, 7, 6, 5, 4)
	standings[0].IsClinched = true
	standings[3].IsClinched = true

	seats := (&swissStrategy{}).pair(pool(standings))

	// Clinched 1 and 4 meet at table one; the rest pair consecutively.
	assertPairs(t, pairIDs(seats), [][2]int{
		{1, 4}, {2, 3}, {5, 6},
	})
}

func TestOddClinchedPoolBorrowsLowestRanked(t *testing.T) {
	standings := standingsWithPoints(9, 8, 7, 6, 5)
	standings[0].IsClinched = true

	seats := (&swissStrategy{}).pair(pool(standings))

	// The lone clinched player faces the lowest-ranked available player,
	// keeping exhibition games away from the contenders.
	assertPairs(t, pairIDs(seats), [][2]int{
		{1, 5}, {2, 3}, {4, models.ByePlayerID},
	})
}
