package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&Account{},
		&Season{},
		&SeasonParticipation{},
		&MatchFixture{},
		&MatchResult{},
		&AvailabilityEntry{},
		&ScoreChallenge{},
		&LeagueRubber{},
		&CachedMatch{},
		&CoachingSession{},
		&SessionAttendance{},
		&CoachPayment{},
		&CoachRate{},
	)
}
