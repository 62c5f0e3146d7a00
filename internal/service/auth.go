package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/riversidetc/club-api/internal/domain"
	"github.com/riversidetc/club-api/internal/repository"
)

var (
	ErrAccountEmailExists = repository.ErrAccountEmailExists
	ErrAccountNotFound    = repository.ErrAccountNotFound
	ErrWrongPassword      = errors.New("wrong password")
	ErrAccountNotApproved = errors.New("account is awaiting approval")
)

type AuthAccountRepository interface {
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	FindByEmail(ctx context.Context, email string) (domain.Account, error)
}

type AuthService struct {
	repo AuthAccountRepository
}

func NewAuthService(repo AuthAccountRepository) *AuthService {
	return &AuthService{
		repo: repo,
	}
}

func (s *AuthService) Signup(ctx context.Context, account domain.Account) (domain.Account, error) {
	if err := s.checkEmailExists(ctx, account.Email); err != nil {
		return domain.Account{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(account.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Account{}, err
	}
	account.Password = string(hash)
	account.Role = domain.RolePlayer

	created, err := s.repo.Create(ctx, account)
	if err != nil {
		return domain.Account{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Account, error) {
	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return domain.Account{}, ErrAccountNotFound
		}

		return domain.Account{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return domain.Account{}, ErrWrongPassword
	}

	if !account.Approved {
		return domain.Account{}, ErrAccountNotApproved
	}

	return account, nil
}

func (s *AuthService) checkEmailExists(ctx context.Context, email string) error {
	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return ErrAccountEmailExists
	}
	if !errors.Is(err, repository.ErrAccountNotFound) {
		return err
	}

	return nil
}
