package domain

import "time"

// GamesPerRubber is the fixed match format: each rubber's two side
// totals must sum to this. Checked at data entry, not by the database.
const GamesPerRubber = 12

type MatchFixture struct {
	ID       uint       `json:"id"`
	SeasonID uint       `json:"season_id"`
	Date     time.Time  `json:"date"`
	Players  [8]*uint   `json:"players"`
	Sitting  *uint      `json:"sitting_player_id"`
}

type LeagueRubber struct {
	ID           uint  `json:"id"`
	FixtureID    uint  `json:"fixture_id"`
	RubberNumber int   `json:"rubber_number"`
	HomePlayerID *uint `json:"home_player_id"`
	AwayPlayerID *uint `json:"away_player_id"`
	HomeGames    int   `json:"home_games"`
	AwayGames    int   `json:"away_games"`
}

type AvailabilityEntry struct {
	ID        uint      `json:"id"`
	AccountID uint      `json:"account_id"`
	Date      time.Time `json:"date"`
	Available bool      `json:"available"`
}

type ScoreChallenge struct {
	ID           uint   `json:"id"`
	FixtureID    uint   `json:"fixture_id"`
	ChallengerID uint   `json:"challenger_id"`
	ResolvedBy   *uint  `json:"resolved_by,omitempty"`
	Reason       string `json:"reason"`
	Resolved     bool   `json:"resolved"`
}
