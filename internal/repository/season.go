package repository

import (
	"context"
	"fmt"

	"github.com/riversidetc/club-api/internal/domain"
	"github.com/riversidetc/club-api/internal/repository/dao"
)

var (
	ErrSeasonNotFound        = dao.ErrSeasonNotFound
	ErrParticipationNotFound = dao.ErrParticipationNotFound
)

type SeasonDAO interface {
	FindAll(ctx context.Context) ([]dao.Season, error)
	FindCurrent(ctx context.Context) (dao.Season, error)
	Insert(ctx context.Context, season dao.Season) (dao.Season, error)
	FindParticipationByAccount(ctx context.Context, accountID uint) ([]dao.SeasonParticipation, error)
	FindParticipationBySeason(ctx context.Context, seasonID uint) ([]dao.SeasonParticipation, error)
	InsertParticipation(ctx context.Context, row dao.SeasonParticipation) (dao.SeasonParticipation, error)
	UpdateParticipation(ctx context.Context, row dao.SeasonParticipation) (dao.SeasonParticipation, error)
	ReassignParticipation(ctx context.Context, id, newAccountID uint) error
	DeleteParticipation(ctx context.Context, id uint) error
}

type SeasonRepository struct {
	dao SeasonDAO
}

func NewSeasonRepository(dao SeasonDAO) *SeasonRepository {
	return &SeasonRepository{
		dao: dao,
	}
}

func (r *SeasonRepository) FindAll(ctx context.Context) ([]domain.Season, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	seasons := make([]domain.Season, len(found))
	for i, s := range found {
		seasons[i] = r.seasonDaoToDomain(s)
	}

	return seasons, nil
}

func (r *SeasonRepository) FindCurrent(ctx context.Context) (domain.Season, error) {
	found, err := r.dao.FindCurrent(ctx)
	if err != nil {
		return domain.Season{}, fmt.Errorf("r.dao.FindCurrent -> %w", err)
	}

	return r.seasonDaoToDomain(found), nil
}

func (r *SeasonRepository) Create(ctx context.Context, season domain.Season) (domain.Season, error) {
	created, err := r.dao.Insert(ctx, dao.Season{
		Name:      season.Name,
		StartDate: season.StartDate,
		EndDate:   season.EndDate,
		Current:   season.Current,
	})
	if err != nil {
		return domain.Season{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.seasonDaoToDomain(created), nil
}

func (r *SeasonRepository) FindParticipationByAccount(ctx context.Context, accountID uint) ([]domain.SeasonParticipation, error) {
	found, err := r.dao.FindParticipationByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindParticipationByAccount -> %w", err)
	}

	return r.participationsDaoToDomain(found), nil
}

func (r *SeasonRepository) FindParticipationBySeason(ctx context.Context, seasonID uint) ([]domain.SeasonParticipation, error) {
	found, err := r.dao.FindParticipationBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindParticipationBySeason -> %w", err)
	}

	return r.participationsDaoToDomain(found), nil
}

func (r *SeasonRepository) CreateParticipation(ctx context.Context, row domain.SeasonParticipation) (domain.SeasonParticipation, error) {
	created, err := r.dao.InsertParticipation(ctx, r.participationDomainToDao(row))
	if err != nil {
		return domain.SeasonParticipation{}, fmt.Errorf("r.dao.InsertParticipation -> %w", err)
	}

	return r.participationDaoToDomain(created), nil
}

func (r *SeasonRepository) UpdateParticipation(ctx context.Context, row domain.SeasonParticipation) (domain.SeasonParticipation, error) {
	updated, err := r.dao.UpdateParticipation(ctx, r.participationDomainToDao(row))
	if err != nil {
		return domain.SeasonParticipation{}, fmt.Errorf("r.dao.UpdateParticipation -> %w", err)
	}

	return r.participationDaoToDomain(updated), nil
}

func (r *SeasonRepository) ReassignParticipation(ctx context.Context, id, newAccountID uint) error {
	if err := r.dao.ReassignParticipation(ctx, id, newAccountID); err != nil {
		return fmt.Errorf("r.dao.ReassignParticipation -> %w", err)
	}

	return nil
}

func (r *SeasonRepository) DeleteParticipation(ctx context.Context, id uint) error {
	if err := r.dao.DeleteParticipation(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteParticipation -> %w", err)
	}

	return nil
}

func (r *SeasonRepository) seasonDaoToDomain(s dao.Season) domain.Season {
	return domain.Season{
		ID:        s.ID,
		Name:      s.Name,
		StartDate: s.StartDate,
		EndDate:   s.EndDate,
		Current:   s.Current,
	}
}

func (r *SeasonRepository) participationDaoToDomain(p dao.SeasonParticipation) domain.SeasonParticipation {
	return domain.SeasonParticipation{
		ID:            p.ID,
		AccountID:     p.AccountID,
		SeasonID:      p.SeasonID,
		GamesPlayed:   p.GamesPlayed,
		GamesWon:      p.GamesWon,
		MatchesPlayed: p.MatchesPlayed,
		MatchesWon:    p.MatchesWon,
		Rank:          p.Rank,
	}
}

func (r *SeasonRepository) participationDomainToDao(p domain.SeasonParticipation) dao.SeasonParticipation {
	return dao.SeasonParticipation{
		ID:            p.ID,
		AccountID:     p.AccountID,
		SeasonID:      p.SeasonID,
		GamesPlayed:   p.GamesPlayed,
		GamesWon:      p.GamesWon,
		MatchesPlayed: p.MatchesPlayed,
		MatchesWon:    p.MatchesWon,
		Rank:          p.Rank,
	}
}

func (r *SeasonRepository) participationsDaoToDomain(rows []dao.SeasonParticipation) []domain.SeasonParticipation {
	out := make([]domain.SeasonParticipation, len(rows))
	for i, p := range rows {
		out[i] = r.participationDaoToDomain(p)
	}

	return out
}
