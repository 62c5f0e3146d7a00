package dao

import (
	"time"
)

// Match fixtures carry nine player slots: four home pairs' players plus
// the sitting player. Every slot is an independent foreign key into
// accounts and is rewritten individually during a merge.
type MatchFixture struct {
	ID       uint `gorm:"primaryKey"`
	SeasonID uint `gorm:"not null;index"`
	Date     time.Time

	Player1ID       *uint `gorm:"index"`
	Player2ID       *uint `gorm:"index"`
	Player3ID       *uint `gorm:"index"`
	Player4ID       *uint `gorm:"index"`
	Player5ID       *uint `gorm:"index"`
	Player6ID       *uint `gorm:"index"`
	Player7ID       *uint `gorm:"index"`
	Player8ID       *uint `gorm:"index"`
	SittingPlayerID *uint `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type MatchResult struct {
	ID          uint `gorm:"primaryKey"`
	FixtureID   uint `gorm:"not null;index"`
	HomeGames   int  `gorm:"not null;default:0"`
	AwayGames   int  `gorm:"not null;default:0"`
	SubmittedBy uint `gorm:"not null;index"`
	CreatedAt   time.Time
}

type AvailabilityEntry struct {
	ID        uint      `gorm:"primaryKey"`
	AccountID uint      `gorm:"not null;index"`
	Account   Account   `gorm:"foreignKey:AccountID"`
	Date      time.Time `gorm:"not null"`
	Available bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (AvailabilityEntry) TableName() string {
	return "availability_entries"
}

type ScoreChallenge struct {
	ID           uint   `gorm:"primaryKey"`
	FixtureID    uint   `gorm:"not null;index"`
	ChallengerID uint   `gorm:"not null;index"`
	ResolvedBy   *uint  `gorm:"index"`
	Reason       string `gorm:"not null"`
	Resolved     bool   `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LeagueRubber is one doubles sub-match within a league fixture; a full
// league match comprises nine rubbers and each side's game totals must
// sum to twelve, checked at data entry.
type LeagueRubber struct {
	ID           uint  `gorm:"primaryKey"`
	FixtureID    uint  `gorm:"not null;index"`
	RubberNumber int   `gorm:"not null"`
	HomePlayerID *uint `gorm:"index"`
	AwayPlayerID *uint `gorm:"index"`
	HomeGames    int   `gorm:"not null;default:0"`
	AwayGames    int   `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CachedMatch mirrors a match pulled from the league website, with both
// sides' confirmer fields.
type CachedMatch struct {
	ID              uint   `gorm:"primaryKey"`
	ExternalRef     string `gorm:"index"`
	HomeConfirmedBy *uint  `gorm:"index"`
	AwayConfirmedBy *uint  `gorm:"index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (CachedMatch) TableName() string {
	return "cached_matches"
}
