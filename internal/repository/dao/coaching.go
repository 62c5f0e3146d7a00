package dao

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrSessionNotFound    = errors.New("coaching session not found")
	ErrAttendanceNotFound = errors.New("attendance not found")
)

type CoachingSession struct {
	ID       uint      `gorm:"primaryKey"`
	Date     time.Time `gorm:"not null;index"`
	Type     string    `gorm:"not null"` // "junior", "adult", or "squad"
	Billable bool      `gorm:"not null;default:true"`
	Notes    string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type SessionAttendance struct {
	ID        uint `gorm:"primaryKey"`
	SessionID uint `gorm:"not null;uniqueIndex:idx_attendance_session_account"`
	AccountID uint `gorm:"not null;uniqueIndex:idx_attendance_session_account"`

	Session CoachingSession `gorm:"foreignKey:SessionID"`
	Account Account         `gorm:"foreignKey:AccountID"`

	Status     string          `gorm:"not null;default:unpaid"` // "unpaid", "pending_confirmation", or "paid"
	Charge     decimal.Decimal `gorm:"type:numeric(8,2);not null"`
	PaymentRef string
	PaidAt     *time.Time
	Note       string

	// Populated from the joined session row on ordered reads.
	SessionDate time.Time `gorm:"->;-:migration"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SessionAttendance) TableName() string {
	return "session_attendances"
}

type CoachPayment struct {
	ID      uint            `gorm:"primaryKey"`
	CoachID uint            `gorm:"not null;index"`
	Coach   Account         `gorm:"foreignKey:CoachID"`
	Type    string          `gorm:"not null"` // "regular", "advance", or "goodwill"
	Amount  decimal.Decimal `gorm:"type:numeric(8,2);not null"`
	PaidOn  time.Time       `gorm:"not null"`

	CreatedAt time.Time
}

type CoachRate struct {
	ID            uint            `gorm:"primaryKey"`
	SessionType   string          `gorm:"not null;index"`
	Rate          decimal.Decimal `gorm:"type:numeric(8,2);not null"`
	EffectiveFrom time.Time       `gorm:"not null;index"`

	CreatedAt time.Time
}

type CoachingDAO struct {
	db *gorm.DB
}

func NewCoachingDAO(db *gorm.DB) *CoachingDAO {
	return &CoachingDAO{
		db: db,
	}
}

func (d *CoachingDAO) InsertSession(ctx context.Context, session CoachingSession) (CoachingSession, error) {
	result := d.db.WithContext(ctx).Create(&session)
	if result.Error != nil {
		return CoachingSession{}, result.Error
	}

	return session, nil
}

func (d *CoachingDAO) FindSessionByID(ctx context.Context, id uint) (CoachingSession, error) {
	var session CoachingSession

	result := d.db.WithContext(ctx).First(&session, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return CoachingSession{}, ErrSessionNotFound
		}

		return CoachingSession{}, result.Error
	}

	return session, nil
}

func (d *CoachingDAO) FindBillableSessions(ctx context.Context, until time.Time) ([]CoachingSession, error) {
	var sessions []CoachingSession

	result := d.db.WithContext(ctx).
		Where("billable = ? AND date <= ?", true, until).
		Order("date ASC").
		Find(&sessions)
	if result.Error != nil {
		return nil, result.Error
	}

	return sessions, nil
}

func (d *CoachingDAO) InsertAttendance(ctx context.Context, attendance SessionAttendance) (SessionAttendance, error) {
	result := d.db.WithContext(ctx).Create(&attendance)
	if result.Error != nil {
		return SessionAttendance{}, result.Error
	}

	return attendance, nil
}

// FindUnpaidByAccount returns the account's unpaid attendance rows,
// oldest session date first. The order drives the greedy allocation.
func (d *CoachingDAO) FindUnpaidByAccount(ctx context.Context, accountID uint) ([]SessionAttendance, error) {
	var rows []SessionAttendance

	result := d.db.WithContext(ctx).
		Select("session_attendances.*, coaching_sessions.date AS session_date").
		Joins("JOIN coaching_sessions ON coaching_sessions.id = session_attendances.session_id").
		Where("session_attendances.account_id = ? AND session_attendances.status = ?", accountID, "unpaid").
		Order("coaching_sessions.date ASC").
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

func (d *CoachingDAO) FindAttendanceByAccount(ctx context.Context, accountID uint) ([]SessionAttendance, error) {
	var rows []SessionAttendance

	result := d.db.WithContext(ctx).
		Select("session_attendances.*, coaching_sessions.date AS session_date").
		Joins("JOIN coaching_sessions ON coaching_sessions.id = session_attendances.session_id").
		Where("session_attendances.account_id = ?", accountID).
		Order("coaching_sessions.date DESC").
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

func (d *CoachingDAO) FindAttendanceByIDs(ctx context.Context, ids []uint) ([]SessionAttendance, error) {
	var rows []SessionAttendance

	result := d.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

func (d *CoachingDAO) MarkPaid(ctx context.Context, ids []uint, reference string, paidAt time.Time) error {
	result := d.db.WithContext(ctx).
		Model(&SessionAttendance{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"status":      "paid",
			"payment_ref": reference,
			"paid_at":     paidAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAttendanceNotFound
	}

	return nil
}

func (d *CoachingDAO) MarkPendingConfirmation(ctx context.Context, ids []uint, note string) error {
	result := d.db.WithContext(ctx).
		Model(&SessionAttendance{}).
		Where("id IN ? AND status = ?", ids, "unpaid").
		Updates(map[string]interface{}{
			"status": "pending_confirmation",
			"note":   note,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAttendanceNotFound
	}

	return nil
}

func (d *CoachingDAO) InsertCoachPayment(ctx context.Context, payment CoachPayment) (CoachPayment, error) {
	result := d.db.WithContext(ctx).Create(&payment)
	if result.Error != nil {
		return CoachPayment{}, result.Error
	}

	return payment, nil
}

func (d *CoachingDAO) SumCoachPayments(ctx context.Context, coachID uint) (decimal.Decimal, error) {
	var total decimal.NullDecimal

	result := d.db.WithContext(ctx).
		Model(&CoachPayment{}).
		Select("SUM(amount)").
		Where("coach_id = ?", coachID).
		Scan(&total)
	if result.Error != nil {
		return decimal.Zero, result.Error
	}
	if !total.Valid {
		return decimal.Zero, nil
	}

	return total.Decimal, nil
}

func (d *CoachingDAO) InsertRate(ctx context.Context, rate CoachRate) (CoachRate, error) {
	result := d.db.WithContext(ctx).Create(&rate)
	if result.Error != nil {
		return CoachRate{}, result.Error
	}

	return rate, nil
}

func (d *CoachingDAO) FindRates(ctx context.Context) ([]CoachRate, error) {
	var rates []CoachRate

	result := d.db.WithContext(ctx).Order("effective_from ASC").Find(&rates)
	if result.Error != nil {
		return nil, result.Error
	}

	return rates, nil
}
