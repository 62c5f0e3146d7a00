package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrFixtureNotFound   = errors.New("fixture not found")
	ErrRubberNotFound    = errors.New("rubber not found")
	ErrChallengeNotFound = errors.New("challenge not found")
)

type FixtureDAO struct {
	db *gorm.DB
}

func NewFixtureDAO(db *gorm.DB) *FixtureDAO {
	return &FixtureDAO{
		db: db,
	}
}

func (d *FixtureDAO) InsertFixture(ctx context.Context, fixture MatchFixture) (MatchFixture, error) {
	result := d.db.WithContext(ctx).Create(&fixture)
	if result.Error != nil {
		return MatchFixture{}, result.Error
	}

	return fixture, nil
}

func (d *FixtureDAO) FindFixtureByID(ctx context.Context, id uint) (MatchFixture, error) {
	var fixture MatchFixture

	result := d.db.WithContext(ctx).First(&fixture, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return MatchFixture{}, ErrFixtureNotFound
		}

		return MatchFixture{}, result.Error
	}

	return fixture, nil
}

func (d *FixtureDAO) InsertRubber(ctx context.Context, rubber LeagueRubber) (LeagueRubber, error) {
	result := d.db.WithContext(ctx).Create(&rubber)
	if result.Error != nil {
		return LeagueRubber{}, result.Error
	}

	return rubber, nil
}

func (d *FixtureDAO) UpdateRubberResult(ctx context.Context, rubberID uint, homeGames, awayGames int) error {
	result := d.db.WithContext(ctx).
		Model(&LeagueRubber{}).
		Where("id = ?", rubberID).
		Updates(map[string]interface{}{
			"home_games": homeGames,
			"away_games": awayGames,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRubberNotFound
	}

	return nil
}

func (d *FixtureDAO) InsertAvailability(ctx context.Context, entry AvailabilityEntry) (AvailabilityEntry, error) {
	result := d.db.WithContext(ctx).Create(&entry)
	if result.Error != nil {
		return AvailabilityEntry{}, result.Error
	}

	return entry, nil
}

func (d *FixtureDAO) InsertChallenge(ctx context.Context, challenge ScoreChallenge) (ScoreChallenge, error) {
	result := d.db.WithContext(ctx).Create(&challenge)
	if result.Error != nil {
		return ScoreChallenge{}, result.Error
	}

	return challenge, nil
}

func (d *FixtureDAO) ResolveChallenge(ctx context.Context, challengeID, resolverID uint) error {
	result := d.db.WithContext(ctx).
		Model(&ScoreChallenge{}).
		Where("id = ?", challengeID).
		Updates(map[string]interface{}{
			"resolved":    true,
			"resolved_by": resolverID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrChallengeNotFound
	}

	return nil
}
