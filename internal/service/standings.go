package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/riversidetc/club-api/internal/domain"
	"github.com/riversidetc/club-api/internal/repository"
)

var (
	ErrSeasonNotFound       = repository.ErrSeasonNotFound
	ErrUnknownStandingsMode = errors.New("unknown standings mode")
)

type StandingsSeasonRepository interface {
	FindAll(ctx context.Context) ([]domain.Season, error)
	FindCurrent(ctx context.Context) (domain.Season, error)
	Create(ctx context.Context, season domain.Season) (domain.Season, error)
	CreateParticipation(ctx context.Context, row domain.SeasonParticipation) (domain.SeasonParticipation, error)
	FindParticipationBySeason(ctx context.Context, seasonID uint) ([]domain.SeasonParticipation, error)
}

type StandingsAccountRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Account, error)
}

// StandingsService produces the three ranking views. Ladder, league and
// singles championship all read the same participation rows and differ
// only in the ordering rule.
type StandingsService struct {
	seasons  StandingsSeasonRepository
	accounts StandingsAccountRepository
}

func NewStandingsService(seasons StandingsSeasonRepository, accounts StandingsAccountRepository) *StandingsService {
	return &StandingsService{
		seasons:  seasons,
		accounts: accounts,
	}
}

func (s *StandingsService) ListSeasons(ctx context.Context) ([]domain.Season, error) {
	seasons, err := s.seasons.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.seasons.FindAll -> %w", err)
	}

	return seasons, nil
}

func (s *StandingsService) CurrentSeason(ctx context.Context) (domain.Season, error) {
	season, err := s.seasons.FindCurrent(ctx)
	if err != nil {
		return domain.Season{}, fmt.Errorf("s.seasons.FindCurrent -> %w", err)
	}

	return season, nil
}

func (s *StandingsService) CreateSeason(ctx context.Context, season domain.Season) (domain.Season, error) {
	created, err := s.seasons.Create(ctx, season)
	if err != nil {
		return domain.Season{}, fmt.Errorf("s.seasons.Create -> %w", err)
	}

	return created, nil
}

// RecordParticipation stores one account's aggregate stats for a
// season. The unique (account, season) index rejects duplicates.
func (s *StandingsService) RecordParticipation(ctx context.Context, row domain.SeasonParticipation) (domain.SeasonParticipation, error) {
	if _, err := s.accounts.FindByID(ctx, row.AccountID); err != nil {
		return domain.SeasonParticipation{}, fmt.Errorf("s.accounts.FindByID -> %w", err)
	}

	created, err := s.seasons.CreateParticipation(ctx, row)
	if err != nil {
		return domain.SeasonParticipation{}, fmt.Errorf("s.seasons.CreateParticipation -> %w", err)
	}

	return created, nil
}

func (s *StandingsService) Standings(ctx context.Context, seasonID uint, mode domain.StandingsMode) ([]domain.StandingsEntry, error) {
	switch mode {
	case domain.StandingsLadder, domain.StandingsLeague, domain.StandingsChampionship:
	default:
		return nil, ErrUnknownStandingsMode
	}

	rows, err := s.seasons.FindParticipationBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("s.seasons.FindParticipationBySeason -> %w", err)
	}

	entries := make([]domain.StandingsEntry, 0, len(rows))
	for _, row := range rows {
		entry := domain.StandingsEntry{
			AccountID:     row.AccountID,
			GamesPlayed:   row.GamesPlayed,
			GamesWon:      row.GamesWon,
			MatchesPlayed: row.MatchesPlayed,
			MatchesWon:    row.MatchesWon,
		}
		if account, err := s.accounts.FindByID(ctx, row.AccountID); err == nil {
			entry.Name = account.Name
		}
		entries = append(entries, entry)
	}

	sortStandings(entries, mode)
	for i := range entries {
		entries[i].Position = i + 1
	}

	return entries, nil
}

func sortStandings(entries []domain.StandingsEntry, mode domain.StandingsMode) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		switch mode {
		case domain.StandingsLeague:
			// League: match wins first, games won as tie break.
			if a.MatchesWon != b.MatchesWon {
				return a.MatchesWon > b.MatchesWon
			}
			return a.GamesWon > b.GamesWon
		case domain.StandingsChampionship:
			// Championship: raw games won, games played as tie break.
			if a.GamesWon != b.GamesWon {
				return a.GamesWon > b.GamesWon
			}
			return a.GamesPlayed < b.GamesPlayed
		default:
			// Ladder: win ratio, more games played breaks ties.
			if a.WinRatio() != b.WinRatio() {
				return a.WinRatio() > b.WinRatio()
			}
			return a.GamesPlayed > b.GamesPlayed
		}
	})
}
