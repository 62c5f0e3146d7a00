package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeasonParticipationAbsorb(t *testing.T) {
	target := SeasonParticipation{
		AccountID:     2,
		SeasonID:      7,
		GamesPlayed:   10,
		GamesWon:      6,
		MatchesPlayed: 3,
		MatchesWon:    2,
		Rank:          4,
	}
	source := SeasonParticipation{
		AccountID:     1,
		SeasonID:      7,
		GamesPlayed:   6,
		GamesWon:      1,
		MatchesPlayed: 2,
		MatchesWon:    0,
		Rank:          9,
	}

	target.Absorb(source)

	assert.Equal(t, 16, target.GamesPlayed)
	assert.Equal(t, 7, target.GamesWon)
	assert.Equal(t, 5, target.MatchesPlayed)
	assert.Equal(t, 2, target.MatchesWon)
	assert.Equal(t, 4, target.Rank, "rank must not change when absorbing")
	assert.Equal(t, uint(2), target.AccountID)
}

func TestStandingsEntryWinRatio(t *testing.T) {
	assert.Equal(t, 0.75, StandingsEntry{GamesPlayed: 4, GamesWon: 3}.WinRatio())
	assert.Equal(t, 0.0, StandingsEntry{GamesPlayed: 0, GamesWon: 0}.WinRatio())
}

func TestReferenceFields(t *testing.T) {
	fields := ReferenceFields()

	assert.Len(t, fields, 17)

	perTable := make(map[string]int)
	for _, f := range fields {
		perTable[f.Table]++
	}

	assert.Equal(t, 9, perTable["match_fixtures"], "eight player slots plus the sitting player")
	assert.Equal(t, 1, perTable["match_results"])
	assert.Equal(t, 1, perTable["availability_entries"])
	assert.Equal(t, 2, perTable["score_challenges"])
	assert.Equal(t, 2, perTable["league_rubbers"])
	assert.Equal(t, 2, perTable["cached_matches"])
}
