package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riversidetc/club-api/internal/domain"
)

type fakeStandingsSeasons struct {
	participation []domain.SeasonParticipation
	created       []domain.SeasonParticipation
}

func (f *fakeStandingsSeasons) FindAll(_ context.Context) ([]domain.Season, error) {
	return nil, nil
}

func (f *fakeStandingsSeasons) FindCurrent(_ context.Context) (domain.Season, error) {
	return domain.Season{}, nil
}

func (f *fakeStandingsSeasons) Create(_ context.Context, season domain.Season) (domain.Season, error) {
	return season, nil
}

func (f *fakeStandingsSeasons) CreateParticipation(_ context.Context, row domain.SeasonParticipation) (domain.SeasonParticipation, error) {
	row.ID = uint(len(f.created) + 1)
	f.created = append(f.created, row)

	return row, nil
}

func (f *fakeStandingsSeasons) FindParticipationBySeason(_ context.Context, _ uint) ([]domain.SeasonParticipation, error) {
	return f.participation, nil
}

func standingsFixture() *StandingsService {
	seasons := &fakeStandingsSeasons{
		participation: []domain.SeasonParticipation{
			{AccountID: 1, GamesPlayed: 20, GamesWon: 15, MatchesPlayed: 5, MatchesWon: 3},
			{AccountID: 2, GamesPlayed: 10, GamesWon: 8, MatchesPlayed: 3, MatchesWon: 3},
			{AccountID: 3, GamesPlayed: 30, GamesWon: 12, MatchesPlayed: 8, MatchesWon: 2},
		},
	}
	accounts := &fakeAccounts{accounts: map[uint]domain.Account{
		1: {ID: 1, Name: "Alice"},
		2: {ID: 2, Name: "Bob"},
		3: {ID: 3, Name: "Cara"},
	}}

	return NewStandingsService(seasons, accounts)
}

func accountOrder(entries []domain.StandingsEntry) []uint {
	out := make([]uint, len(entries))
	for i, e := range entries {
		out[i] = e.AccountID
	}

	return out
}

func TestStandings_Ladder(t *testing.T) {
	svc := standingsFixture()

	// Win ratios: 2 -> 0.8, 1 -> 0.75, 3 -> 0.4.
	entries, err := svc.Standings(context.Background(), 1, domain.StandingsLadder)

	require.NoError(t, err)
	assert.Equal(t, []uint{2, 1, 3}, accountOrder(entries))
	assert.Equal(t, 1, entries[0].Position)
	assert.Equal(t, "Bob", entries[0].Name)
}

func TestStandings_League(t *testing.T) {
	svc := standingsFixture()

	// Accounts 1 and 2 tie on match wins; games won breaks the tie.
	entries, err := svc.Standings(context.Background(), 1, domain.StandingsLeague)

	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2, 3}, accountOrder(entries))
}

func TestStandings_Championship(t *testing.T) {
	svc := standingsFixture()

	// Raw games won: 1 -> 15, 3 -> 12, 2 -> 8.
	entries, err := svc.Standings(context.Background(), 1, domain.StandingsChampionship)

	require.NoError(t, err)
	assert.Equal(t, []uint{1, 3, 2}, accountOrder(entries))
}

func TestStandings_UnknownMode(t *testing.T) {
	svc := standingsFixture()

	_, err := svc.Standings(context.Background(), 1, "elo")

	assert.ErrorIs(t, err, ErrUnknownStandingsMode)
}

func TestRecordParticipation(t *testing.T) {
	svc := standingsFixture()

	created, err := svc.RecordParticipation(context.Background(), domain.SeasonParticipation{
		AccountID:   1,
		SeasonID:    1,
		GamesPlayed: 12,
		GamesWon:    7,
	})

	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, 12, created.GamesPlayed)
}

func TestRecordParticipation_UnknownAccount(t *testing.T) {
	svc := standingsFixture()

	_, err := svc.RecordParticipation(context.Background(), domain.SeasonParticipation{
		AccountID: 99,
		SeasonID:  1,
	})

	assert.ErrorIs(t, err, ErrAccountNotFound)
}
