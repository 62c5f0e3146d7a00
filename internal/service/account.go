package service

import (
	"context"
	"fmt"
	"time"

	"github.com/riversidetc/club-api/internal/domain"
)

type AccountRepository interface {
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	FindByID(ctx context.Context, id uint) (domain.Account, error)
	FindAll(ctx context.Context) ([]domain.Account, error)
	Update(ctx context.Context, account domain.Account) (domain.Account, error)
}

type AccountService struct {
	repo AccountRepository
}

func NewAccountService(repo AccountRepository) *AccountService {
	return &AccountService{
		repo: repo,
	}
}

func (s *AccountService) GetAccount(ctx context.Context, id uint) (domain.Account, error) {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Account{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return account, nil
}

func (s *AccountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return accounts, nil
}

// CreateSkeleton adds a minimal placeholder account for someone turning
// up at a session before registering. The generated email keeps the
// unique constraint satisfied until the player signs up properly and
// the accounts are merged.
func (s *AccountService) CreateSkeleton(ctx context.Context, name string) (domain.Account, error) {
	account := domain.Account{
		Email:    fmt.Sprintf("skeleton+%d@club.invalid", time.Now().UnixNano()),
		Name:     name,
		Role:     domain.RolePlayer,
		Skeleton: true,
	}

	created, err := s.repo.Create(ctx, account)
	if err != nil {
		return domain.Account{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *AccountService) ApproveAccount(ctx context.Context, id uint) (domain.Account, error) {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Account{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	account.Approved = true
	updated, err := s.repo.Update(ctx, account)
	if err != nil {
		return domain.Account{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}
