package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrAccountEmailExists = errors.New("account already exists")
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountConstrained = errors.New("account still referenced by other records")
)

type Account struct {
	ID uint `gorm:"primaryKey"`

	Email    string `gorm:"unique;not null"`
	Password string

	Name     string `gorm:"not null"`
	Role     string `gorm:"not null"` // "player", "coach", or "admin"
	Approved bool   `gorm:"not null;default:false"`
	Skeleton bool   `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Account) TableName() string {
	return "accounts"
}

type AccountDAO struct {
	db *gorm.DB
}

func NewAccountDAO(db *gorm.DB) *AccountDAO {
	return &AccountDAO{
		db: db,
	}
}

func (d *AccountDAO) Insert(ctx context.Context, account Account) (Account, error) {
	result := d.db.WithContext(ctx).Create(&account)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, `unique constraint "uni_accounts_email"`) {
			return Account{}, ErrAccountEmailExists
		}

		return Account{}, result.Error
	}

	return account, nil
}

func (d *AccountDAO) FindByID(ctx context.Context, id uint) (Account, error) {
	var account Account

	result := d.db.WithContext(ctx).First(&account, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Account{}, ErrAccountNotFound
		}

		return Account{}, result.Error
	}

	return account, nil
}

func (d *AccountDAO) FindByEmail(ctx context.Context, email string) (Account, error) {
	var account Account

	result := d.db.WithContext(ctx).First(&account, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Account{}, ErrAccountNotFound
		}

		return Account{}, result.Error
	}

	return account, nil
}

func (d *AccountDAO) FindAll(ctx context.Context) ([]Account, error) {
	var accounts []Account

	result := d.db.WithContext(ctx).Order("name ASC").Find(&accounts)
	if result.Error != nil {
		return nil, result.Error
	}

	return accounts, nil
}

func (d *AccountDAO) Update(ctx context.Context, account Account) (Account, error) {
	result := d.db.WithContext(ctx).Save(&account)
	if result.Error != nil {
		return Account{}, result.Error
	}

	return account, nil
}

// Delete removes an account row. A remaining foreign-key constraint is
// reported as ErrAccountConstrained so callers can treat it as an
// expected outcome rather than a failure.
func (d *AccountDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Account{}, id)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.ForeignKeyViolation {
			return ErrAccountConstrained
		}

		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}

	return nil
}
