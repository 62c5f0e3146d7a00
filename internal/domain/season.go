package domain

import "time"

type Season struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Current   bool      `json:"current"`
}

// SeasonParticipation is the per-season aggregate for one account.
// At most one row exists per (account, season); the merge workflow
// preserves this by summing stats instead of duplicating rows.
type SeasonParticipation struct {
	ID            uint `json:"id"`
	AccountID     uint `json:"account_id"`
	SeasonID      uint `json:"season_id"`
	GamesPlayed   int  `json:"games_played"`
	GamesWon      int  `json:"games_won"`
	MatchesPlayed int  `json:"matches_played"`
	MatchesWon    int  `json:"matches_won"`
	Rank          int  `json:"rank"`
}

// Absorb folds another participation row for the same season into this
// one. Rank and history stay untouched.
func (p *SeasonParticipation) Absorb(other SeasonParticipation) {
	p.GamesPlayed += other.GamesPlayed
	p.GamesWon += other.GamesWon
	p.MatchesPlayed += other.MatchesPlayed
	p.MatchesWon += other.MatchesWon
}

// StandingsMode selects the ordering rule applied to participation
// stats. The three ranking modes share the same underlying rows.
type StandingsMode string

const (
	StandingsLadder       StandingsMode = "ladder"
	StandingsLeague       StandingsMode = "league"
	StandingsChampionship StandingsMode = "championship"
)

// StandingsEntry is one ranked line of a season table.
type StandingsEntry struct {
	Position      int    `json:"position"`
	AccountID     uint   `json:"account_id"`
	Name          string `json:"name"`
	GamesPlayed   int    `json:"games_played"`
	GamesWon      int    `json:"games_won"`
	MatchesPlayed int    `json:"matches_played"`
	MatchesWon    int    `json:"matches_won"`
}

// WinRatio is the ladder ordering key: games won over games played.
func (e StandingsEntry) WinRatio() float64 {
	if e.GamesPlayed == 0 {
		return 0
	}

	return float64(e.GamesWon) / float64(e.GamesPlayed)
}
