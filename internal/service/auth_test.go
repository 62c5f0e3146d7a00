package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/riversidetc/club-api/internal/domain"
	"github.com/riversidetc/club-api/internal/repository"
)

type fakeAuthRepo struct {
	byEmail map[string]domain.Account
}

func (f *fakeAuthRepo) Create(_ context.Context, account domain.Account) (domain.Account, error) {
	account.ID = uint(len(f.byEmail) + 1)
	f.byEmail[account.Email] = account

	return account, nil
}

func (f *fakeAuthRepo) FindByEmail(_ context.Context, email string) (domain.Account, error) {
	account, ok := f.byEmail[email]
	if !ok {
		return domain.Account{}, repository.ErrAccountNotFound
	}

	return account, nil
}

func TestSignup(t *testing.T) {
	repo := &fakeAuthRepo{byEmail: make(map[string]domain.Account)}
	svc := NewAuthService(repo)

	created, err := svc.Signup(context.Background(), domain.Account{
		Email:    "new@example.com",
		Password: "secret123",
		Name:     "New Player",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RolePlayer, created.Role)
	assert.False(t, created.Approved, "new accounts start unapproved")

	stored := repo.byEmail["new@example.com"]
	assert.NotEqual(t, "secret123", stored.Password, "password must be hashed")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret123")))

	_, err = svc.Signup(context.Background(), domain.Account{Email: "new@example.com", Password: "other1234"})
	assert.ErrorIs(t, err, ErrAccountEmailExists)
}

func TestLogin(t *testing.T) {
	repo := &fakeAuthRepo{byEmail: make(map[string]domain.Account)}
	svc := NewAuthService(repo)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	repo.byEmail["a@example.com"] = domain.Account{ID: 1, Email: "a@example.com", Password: string(hash), Approved: true}
	repo.byEmail["pending@example.com"] = domain.Account{ID: 2, Email: "pending@example.com", Password: string(hash)}

	account, err := svc.Login(context.Background(), "a@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, uint(1), account.ID)

	_, err = svc.Login(context.Background(), "a@example.com", "wrong")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = svc.Login(context.Background(), "missing@example.com", "secret123")
	assert.ErrorIs(t, err, ErrAccountNotFound)

	_, err = svc.Login(context.Background(), "pending@example.com", "secret123")
	assert.ErrorIs(t, err, ErrAccountNotApproved)
}
