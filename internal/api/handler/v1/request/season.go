package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
)

var (
	errBadGameTotal       = errors.New("home and away games must sum to 12")
	errMoreWinsThanPlayed = errors.New("wins cannot exceed games or matches played")
)

type CreateSeasonRequest struct {
	Name      string `json:"name"`
	StartDate string `json:"start_date" format:"YYYY-MM-DD"`
	EndDate   string `json:"end_date" format:"YYYY-MM-DD"`
}

func (req *CreateSeasonRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 50)),
		validation.Field(&req.StartDate, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&req.EndDate, validation.Required, validation.Date("2006-01-02")),
	)
}

type RecordParticipationRequest struct {
	AccountID     uint `json:"account_id"`
	GamesPlayed   int  `json:"games_played"`
	GamesWon      int  `json:"games_won"`
	MatchesPlayed int  `json:"matches_played"`
	MatchesWon    int  `json:"matches_won"`
}

func (req *RecordParticipationRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.AccountID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.GamesPlayed, validation.Min(0)),
		validation.Field(&req.GamesWon, validation.Min(0)),
		validation.Field(&req.MatchesPlayed, validation.Min(0)),
		validation.Field(&req.MatchesWon, validation.Min(0)),
	)
	if err != nil {
		return err
	}

	if req.GamesWon > req.GamesPlayed || req.MatchesWon > req.MatchesPlayed {
		return errMoreWinsThanPlayed
	}

	return nil
}

type CreateFixtureRequest struct {
	SeasonID        uint    `json:"season_id"`
	Date            string  `json:"date" format:"YYYY-MM-DD"`
	PlayerIDs       []*uint `json:"player_ids"`
	SittingPlayerID *uint   `json:"sitting_player_id"`
}

func (req *CreateFixtureRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.SeasonID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Date, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&req.PlayerIDs, validation.Length(0, 8)),
	)
}

type CreateRubberRequest struct {
	RubberNumber int   `json:"rubber_number"`
	HomePlayerID *uint `json:"home_player_id"`
	AwayPlayerID *uint `json:"away_player_id"`
}

func (req *CreateRubberRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.RubberNumber, validation.Required, validation.Min(1), validation.Max(9)),
	)
}

type RubberResultRequest struct {
	HomeGames int `json:"home_games"`
	AwayGames int `json:"away_games"`
}

// The per-rubber game totals must sum to twelve. The database never
// checks this, so it is enforced here and again in the service.
func (req *RubberResultRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.HomeGames, validation.Min(0), validation.Max(12)),
		validation.Field(&req.AwayGames, validation.Min(0), validation.Max(12)),
	)
	if err != nil {
		return err
	}

	if req.HomeGames+req.AwayGames != 12 {
		return errBadGameTotal
	}

	return nil
}

type AvailabilityRequest struct {
	Date      string `json:"date" format:"YYYY-MM-DD"`
	Available bool   `json:"available"`
}

func (req *AvailabilityRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Date, validation.Required, validation.Date("2006-01-02")),
	)
}

type ChallengeRequest struct {
	FixtureID uint   `json:"fixture_id"`
	Reason    string `json:"reason"`
}

func (req *ChallengeRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.FixtureID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Reason, validation.Required, validation.Length(5, 500)),
	)
}
