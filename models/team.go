package models

// ByeTeamName is the synthetic team inserted into the round-robin circle
// when the tournament has an odd number of teams. Matchups against it are
// skipped, giving one real team a rest round.
const ByeTeamName = "BYE"

// TeamMatchup records one team-vs-team encounter of a team round-robin
// round. Individual pairings reference it through the shared batch id.
type TeamMatchup struct {
	ID           int    `json:"id" db:"id"`
	TournamentID int    `json:"tournament_id" db:"tournament_id"`
	Round        int    `json:"round" db:"round"`
	TeamA        string `json:"team_a" db:"team_a"`
	TeamB        string `json:"team_b" db:"team_b"`
}

// TeamMatchupSummary is the per-matchup view returned alongside the
// generated pairings: which teams meet and which players sit on each side.
type TeamMatchupSummary struct {
	Round    int      `json:"round"`
	TeamA    string   `json:"team_a"`
	TeamB    string   `json:"team_b"`
	PlayersA []Player `json:"players_a"`
	PlayersB []Player `json:"players_b"`
}

// TeamStanding aggregates individual games into team-level records. Match
// outcomes compare aggregate games won per head-to-head encounter; ranking
// order is (matches won, total spread, total games won) descending.
type TeamStanding struct {
	Team string `json:"team"`

	MatchesWon   int `json:"matches_won"`
	MatchesDrawn int `json:"matches_drawn"`
	MatchesLost  int `json:"matches_lost"`

	GamesWon  int `json:"games_won"`
	GamesLost int `json:"games_lost"`
	Spread    int `json:"spread"`

	Rank int `json:"rank"`
}
