package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riversidetc/club-api/internal/domain"
	"github.com/riversidetc/club-api/internal/repository"
)

type fakeFixtureRepo struct {
	fixtures map[uint]domain.MatchFixture
	results  map[uint][2]int
}

func newFakeFixtureRepo() *fakeFixtureRepo {
	return &fakeFixtureRepo{
		fixtures: make(map[uint]domain.MatchFixture),
		results:  make(map[uint][2]int),
	}
}

func (f *fakeFixtureRepo) CreateFixture(_ context.Context, fixture domain.MatchFixture) (domain.MatchFixture, error) {
	fixture.ID = uint(len(f.fixtures) + 1)
	f.fixtures[fixture.ID] = fixture

	return fixture, nil
}

func (f *fakeFixtureRepo) FindFixtureByID(_ context.Context, id uint) (domain.MatchFixture, error) {
	fixture, ok := f.fixtures[id]
	if !ok {
		return domain.MatchFixture{}, repository.ErrFixtureNotFound
	}

	return fixture, nil
}

func (f *fakeFixtureRepo) CreateRubber(_ context.Context, rubber domain.LeagueRubber) (domain.LeagueRubber, error) {
	rubber.ID = 1

	return rubber, nil
}

func (f *fakeFixtureRepo) RecordRubberResult(_ context.Context, rubberID uint, homeGames, awayGames int) error {
	f.results[rubberID] = [2]int{homeGames, awayGames}

	return nil
}

func (f *fakeFixtureRepo) CreateAvailability(_ context.Context, entry domain.AvailabilityEntry) (domain.AvailabilityEntry, error) {
	return entry, nil
}

func (f *fakeFixtureRepo) CreateChallenge(_ context.Context, challenge domain.ScoreChallenge) (domain.ScoreChallenge, error) {
	return challenge, nil
}

func (f *fakeFixtureRepo) ResolveChallenge(_ context.Context, _, _ uint) error {
	return nil
}

func TestRecordRubberResult_GameTotalMustSumToFormat(t *testing.T) {
	repo := newFakeFixtureRepo()
	svc := NewFixtureService(repo)

	tests := []struct {
		name       string
		home, away int
		wantErr    bool
	}{
		{name: "valid 7-5", home: 7, away: 5},
		{name: "valid 12-0", home: 12, away: 0},
		{name: "short total", home: 6, away: 5, wantErr: true},
		{name: "long total", home: 7, away: 6, wantErr: true},
		{name: "negative games", home: 13, away: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.RecordRubberResult(context.Background(), 1, tt.home, tt.away)

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrBadGameTotal)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateRubber_RequiresExistingFixture(t *testing.T) {
	repo := newFakeFixtureRepo()
	svc := NewFixtureService(repo)

	_, err := svc.CreateRubber(context.Background(), domain.LeagueRubber{FixtureID: 99, RubberNumber: 1})
	assert.ErrorIs(t, err, ErrFixtureNotFound)

	fixture, err := svc.CreateFixture(context.Background(), domain.MatchFixture{SeasonID: 1})
	require.NoError(t, err)

	rubber, err := svc.CreateRubber(context.Background(), domain.LeagueRubber{FixtureID: fixture.ID, RubberNumber: 1})
	require.NoError(t, err)
	assert.Equal(t, fixture.ID, rubber.FixtureID)
}
