package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrSeasonNotFound        = errors.New("season not found")
	ErrParticipationNotFound = errors.New("season participation not found")
)

type Season struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"unique;not null"`
	StartDate time.Time `gorm:"not null"`
	EndDate   time.Time `gorm:"not null"`
	Current   bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type SeasonParticipation struct {
	ID        uint `gorm:"primaryKey"`
	AccountID uint `gorm:"not null;uniqueIndex:idx_participation_account_season"`
	SeasonID  uint `gorm:"not null;uniqueIndex:idx_participation_account_season"`

	Account Account `gorm:"foreignKey:AccountID"`
	Season  Season  `gorm:"foreignKey:SeasonID"`

	GamesPlayed   int `gorm:"not null;default:0"`
	GamesWon      int `gorm:"not null;default:0"`
	MatchesPlayed int `gorm:"not null;default:0"`
	MatchesWon    int `gorm:"not null;default:0"`
	Rank          int `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SeasonParticipation) TableName() string {
	return "season_participations"
}

type SeasonDAO struct {
	db *gorm.DB
}

func NewSeasonDAO(db *gorm.DB) *SeasonDAO {
	return &SeasonDAO{
		db: db,
	}
}

func (d *SeasonDAO) FindAll(ctx context.Context) ([]Season, error) {
	var seasons []Season

	result := d.db.WithContext(ctx).Order("start_date DESC").Find(&seasons)
	if result.Error != nil {
		return nil, result.Error
	}

	return seasons, nil
}

func (d *SeasonDAO) FindCurrent(ctx context.Context) (Season, error) {
	var season Season

	result := d.db.WithContext(ctx).First(&season, "current = ?", true)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Season{}, ErrSeasonNotFound
		}

		return Season{}, result.Error
	}

	return season, nil
}

func (d *SeasonDAO) Insert(ctx context.Context, season Season) (Season, error) {
	result := d.db.WithContext(ctx).Create(&season)
	if result.Error != nil {
		return Season{}, result.Error
	}

	return season, nil
}

func (d *SeasonDAO) FindParticipationByAccount(ctx context.Context, accountID uint) ([]SeasonParticipation, error) {
	var rows []SeasonParticipation

	result := d.db.WithContext(ctx).Where("account_id = ?", accountID).Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

func (d *SeasonDAO) FindParticipationBySeason(ctx context.Context, seasonID uint) ([]SeasonParticipation, error) {
	var rows []SeasonParticipation

	result := d.db.WithContext(ctx).Where("season_id = ?", seasonID).Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

func (d *SeasonDAO) InsertParticipation(ctx context.Context, row SeasonParticipation) (SeasonParticipation, error) {
	result := d.db.WithContext(ctx).Create(&row)
	if result.Error != nil {
		return SeasonParticipation{}, result.Error
	}

	return row, nil
}

func (d *SeasonDAO) UpdateParticipation(ctx context.Context, row SeasonParticipation) (SeasonParticipation, error) {
	result := d.db.WithContext(ctx).Save(&row)
	if result.Error != nil {
		return SeasonParticipation{}, result.Error
	}

	return row, nil
}

// ReassignParticipation moves one participation row to a new owner
// without touching its stats or rank.
func (d *SeasonDAO) ReassignParticipation(ctx context.Context, id, newAccountID uint) error {
	result := d.db.WithContext(ctx).
		Model(&SeasonParticipation{}).
		Where("id = ?", id).
		Update("account_id", newAccountID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrParticipationNotFound
	}

	return nil
}

func (d *SeasonDAO) DeleteParticipation(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&SeasonParticipation{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrParticipationNotFound
	}

	return nil
}
