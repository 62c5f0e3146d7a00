package repository

import (
	"context"
	"fmt"

	"github.com/riversidetc/club-api/internal/domain"
	"github.com/riversidetc/club-api/internal/repository/dao"
)

var (
	ErrAccountEmailExists = dao.ErrAccountEmailExists
	ErrAccountNotFound    = dao.ErrAccountNotFound
	ErrAccountConstrained = dao.ErrAccountConstrained
)

type AccountDAO interface {
	Insert(ctx context.Context, account dao.Account) (dao.Account, error)
	FindByID(ctx context.Context, id uint) (dao.Account, error)
	FindByEmail(ctx context.Context, email string) (dao.Account, error)
	FindAll(ctx context.Context) ([]dao.Account, error)
	Update(ctx context.Context, account dao.Account) (dao.Account, error)
	Delete(ctx context.Context, id uint) error
}

type AccountRepository struct {
	dao AccountDAO
}

func NewAccountRepository(dao AccountDAO) *AccountRepository {
	return &AccountRepository{
		dao: dao,
	}
}

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(account))
	if err != nil {
		return domain.Account{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id uint) (domain.Account, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Account{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (domain.Account, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.Account{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *AccountRepository) FindAll(ctx context.Context) ([]domain.Account, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	accounts := make([]domain.Account, len(found))
	for i, a := range found {
		accounts[i] = r.daoToDomain(a)
	}

	return accounts, nil
}

func (r *AccountRepository) Update(ctx context.Context, account domain.Account) (domain.Account, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(account))
	if err != nil {
		return domain.Account{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *AccountRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *AccountRepository) daoToDomain(a dao.Account) domain.Account {
	return domain.Account{
		ID:        a.ID,
		Email:     a.Email,
		Password:  a.Password,
		Name:      a.Name,
		Role:      domain.AccountRole(a.Role),
		Approved:  a.Approved,
		Skeleton:  a.Skeleton,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func (r *AccountRepository) domainToDao(a domain.Account) dao.Account {
	return dao.Account{
		ID:        a.ID,
		Email:     a.Email,
		Password:  a.Password,
		Name:      a.Name,
		Role:      string(a.Role),
		Approved:  a.Approved,
		Skeleton:  a.Skeleton,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
