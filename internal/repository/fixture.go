package repository

import (
	"context"
	"fmt"

	"github.com/riversidetc/club-api/internal/domain"
	"github.com/riversidetc/club-api/internal/repository/dao"
)

var (
	ErrFixtureNotFound   = dao.ErrFixtureNotFound
	ErrRubberNotFound    = dao.ErrRubberNotFound
	ErrChallengeNotFound = dao.ErrChallengeNotFound
)

type FixtureDAO interface {
	InsertFixture(ctx context.Context, fixture dao.MatchFixture) (dao.MatchFixture, error)
	FindFixtureByID(ctx context.Context, id uint) (dao.MatchFixture, error)
	InsertRubber(ctx context.Context, rubber dao.LeagueRubber) (dao.LeagueRubber, error)
	UpdateRubberResult(ctx context.Context, rubberID uint, homeGames, awayGames int) error
	InsertAvailability(ctx context.Context, entry dao.AvailabilityEntry) (dao.AvailabilityEntry, error)
	InsertChallenge(ctx context.Context, challenge dao.ScoreChallenge) (dao.ScoreChallenge, error)
	ResolveChallenge(ctx context.Context, challengeID, resolverID uint) error
}

type FixtureRepository struct {
	dao FixtureDAO
}

func NewFixtureRepository(dao FixtureDAO) *FixtureRepository {
	return &FixtureRepository{
		dao: dao,
	}
}

func (r *FixtureRepository) CreateFixture(ctx context.Context, fixture domain.MatchFixture) (domain.MatchFixture, error) {
	created, err := r.dao.InsertFixture(ctx, fixtureDomainToDao(fixture))
	if err != nil {
		return domain.MatchFixture{}, fmt.Errorf("r.dao.InsertFixture -> %w", err)
	}

	return fixtureDaoToDomain(created), nil
}

func (r *FixtureRepository) FindFixtureByID(ctx context.Context, id uint) (domain.MatchFixture, error) {
	found, err := r.dao.FindFixtureByID(ctx, id)
	if err != nil {
		return domain.MatchFixture{}, fmt.Errorf("r.dao.FindFixtureByID -> %w", err)
	}

	return fixtureDaoToDomain(found), nil
}

func (r *FixtureRepository) CreateRubber(ctx context.Context, rubber domain.LeagueRubber) (domain.LeagueRubber, error) {
	created, err := r.dao.InsertRubber(ctx, dao.LeagueRubber{
		FixtureID:    rubber.FixtureID,
		RubberNumber: rubber.RubberNumber,
		HomePlayerID: rubber.HomePlayerID,
		AwayPlayerID: rubber.AwayPlayerID,
		HomeGames:    rubber.HomeGames,
		AwayGames:    rubber.AwayGames,
	})
	if err != nil {
		return domain.LeagueRubber{}, fmt.Errorf("r.dao.InsertRubber -> %w", err)
	}

	rubber.ID = created.ID

	return rubber, nil
}

func (r *FixtureRepository) RecordRubberResult(ctx context.Context, rubberID uint, homeGames, awayGames int) error {
	if err := r.dao.UpdateRubberResult(ctx, rubberID, homeGames, awayGames); err != nil {
		return fmt.Errorf("r.dao.UpdateRubberResult -> %w", err)
	}

	return nil
}

func (r *FixtureRepository) CreateAvailability(ctx context.Context, entry domain.AvailabilityEntry) (domain.AvailabilityEntry, error) {
	created, err := r.dao.InsertAvailability(ctx, dao.AvailabilityEntry{
		AccountID: entry.AccountID,
		Date:      entry.Date,
		Available: entry.Available,
	})
	if err != nil {
		return domain.AvailabilityEntry{}, fmt.Errorf("r.dao.InsertAvailability -> %w", err)
	}

	entry.ID = created.ID

	return entry, nil
}

func (r *FixtureRepository) CreateChallenge(ctx context.Context, challenge domain.ScoreChallenge) (domain.ScoreChallenge, error) {
	created, err := r.dao.InsertChallenge(ctx, dao.ScoreChallenge{
		FixtureID:    challenge.FixtureID,
		ChallengerID: challenge.ChallengerID,
		Reason:       challenge.Reason,
	})
	if err != nil {
		return domain.ScoreChallenge{}, fmt.Errorf("r.dao.InsertChallenge -> %w", err)
	}

	challenge.ID = created.ID

	return challenge, nil
}

func (r *FixtureRepository) ResolveChallenge(ctx context.Context, challengeID, resolverID uint) error {
	if err := r.dao.ResolveChallenge(ctx, challengeID, resolverID); err != nil {
		return fmt.Errorf("r.dao.ResolveChallenge -> %w", err)
	}

	return nil
}

func fixtureDomainToDao(fixture domain.MatchFixture) dao.MatchFixture {
	return dao.MatchFixture{
		ID:              fixture.ID,
		SeasonID:        fixture.SeasonID,
		Date:            fixture.Date,
		Player1ID:       fixture.Players[0],
		Player2ID:       fixture.Players[1],
		Player3ID:       fixture.Players[2],
		Player4ID:       fixture.Players[3],
		Player5ID:       fixture.Players[4],
		Player6ID:       fixture.Players[5],
		Player7ID:       fixture.Players[6],
		Player8ID:       fixture.Players[7],
		SittingPlayerID: fixture.Sitting,
	}
}

func fixtureDaoToDomain(fixture dao.MatchFixture) domain.MatchFixture {
	return domain.MatchFixture{
		ID:       fixture.ID,
		SeasonID: fixture.SeasonID,
		Date:     fixture.Date,
		Players: [8]*uint{
			fixture.Player1ID,
			fixture.Player2ID,
			fixture.Player3ID,
			fixture.Player4ID,
			fixture.Player5ID,
			fixture.Player6ID,
			fixture.Player7ID,
			fixture.Player8ID,
		},
		Sitting: fixture.SittingPlayerID,
	}
}
