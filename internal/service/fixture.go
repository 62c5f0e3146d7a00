package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/riversidetc/club-api/internal/domain"
	"github.com/riversidetc/club-api/internal/repository"
)

var (
	ErrFixtureNotFound   = repository.ErrFixtureNotFound
	ErrRubberNotFound    = repository.ErrRubberNotFound
	ErrChallengeNotFound = repository.ErrChallengeNotFound
	ErrBadGameTotal      = errors.New("rubber game totals must sum to the match format")
)

type FixtureRepository interface {
	CreateFixture(ctx context.Context, fixture domain.MatchFixture) (domain.MatchFixture, error)
	FindFixtureByID(ctx context.Context, id uint) (domain.MatchFixture, error)
	CreateRubber(ctx context.Context, rubber domain.LeagueRubber) (domain.LeagueRubber, error)
	RecordRubberResult(ctx context.Context, rubberID uint, homeGames, awayGames int) error
	CreateAvailability(ctx context.Context, entry domain.AvailabilityEntry) (domain.AvailabilityEntry, error)
	CreateChallenge(ctx context.Context, challenge domain.ScoreChallenge) (domain.ScoreChallenge, error)
	ResolveChallenge(ctx context.Context, challengeID, resolverID uint) error
}

type FixtureService struct {
	repo FixtureRepository
}

func NewFixtureService(repo FixtureRepository) *FixtureService {
	return &FixtureService{
		repo: repo,
	}
}

func (s *FixtureService) CreateFixture(ctx context.Context, fixture domain.MatchFixture) (domain.MatchFixture, error) {
	created, err := s.repo.CreateFixture(ctx, fixture)
	if err != nil {
		return domain.MatchFixture{}, fmt.Errorf("s.repo.CreateFixture -> %w", err)
	}

	return created, nil
}

func (s *FixtureService) GetFixture(ctx context.Context, id uint) (domain.MatchFixture, error) {
	fixture, err := s.repo.FindFixtureByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrFixtureNotFound) {
			return domain.MatchFixture{}, ErrFixtureNotFound
		}

		return domain.MatchFixture{}, fmt.Errorf("s.repo.FindFixtureByID -> %w", err)
	}

	return fixture, nil
}

func (s *FixtureService) CreateRubber(ctx context.Context, rubber domain.LeagueRubber) (domain.LeagueRubber, error) {
	if _, err := s.GetFixture(ctx, rubber.FixtureID); err != nil {
		return domain.LeagueRubber{}, err
	}

	created, err := s.repo.CreateRubber(ctx, rubber)
	if err != nil {
		return domain.LeagueRubber{}, fmt.Errorf("s.repo.CreateRubber -> %w", err)
	}

	return created, nil
}

// RecordRubberResult stores a rubber score. The two side totals must sum
// to domain.GamesPerRubber; nothing below the handler re-checks this, so
// the service is the last gate before the row is written.
func (s *FixtureService) RecordRubberResult(ctx context.Context, rubberID uint, homeGames, awayGames int) error {
	if homeGames < 0 || awayGames < 0 || homeGames+awayGames != domain.GamesPerRubber {
		return ErrBadGameTotal
	}

	if err := s.repo.RecordRubberResult(ctx, rubberID, homeGames, awayGames); err != nil {
		if errors.Is(err, repository.ErrRubberNotFound) {
			return ErrRubberNotFound
		}

		return fmt.Errorf("s.repo.RecordRubberResult -> %w", err)
	}

	return nil
}

func (s *FixtureService) SubmitAvailability(ctx context.Context, entry domain.AvailabilityEntry) (domain.AvailabilityEntry, error) {
	created, err := s.repo.CreateAvailability(ctx, entry)
	if err != nil {
		return domain.AvailabilityEntry{}, fmt.Errorf("s.repo.CreateAvailability -> %w", err)
	}

	return created, nil
}

func (s *FixtureService) SubmitChallenge(ctx context.Context, challenge domain.ScoreChallenge) (domain.ScoreChallenge, error) {
	if _, err := s.GetFixture(ctx, challenge.FixtureID); err != nil {
		return domain.ScoreChallenge{}, err
	}

	created, err := s.repo.CreateChallenge(ctx, challenge)
	if err != nil {
		return domain.ScoreChallenge{}, fmt.Errorf("s.repo.CreateChallenge -> %w", err)
	}

	return created, nil
}

func (s *FixtureService) ResolveChallenge(ctx context.Context, challengeID, resolverID uint) error {
	if err := s.repo.ResolveChallenge(ctx, challengeID, resolverID); err != nil {
		if errors.Is(err, repository.ErrChallengeNotFound) {
			return ErrChallengeNotFound
		}

		return fmt.Errorf("s.repo.ResolveChallenge -> %w", err)
	}

	return nil
}
