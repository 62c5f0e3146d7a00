package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/riversidetc/club-api/internal/domain"
	"github.com/riversidetc/club-api/internal/repository/dao"
)

var (
	ErrSessionNotFound    = dao.ErrSessionNotFound
	ErrAttendanceNotFound = dao.ErrAttendanceNotFound
)

type CoachingDAO interface {
	InsertSession(ctx context.Context, session dao.CoachingSession) (dao.CoachingSession, error)
	FindSessionByID(ctx context.Context, id uint) (dao.CoachingSession, error)
	FindBillableSessions(ctx context.Context, until time.Time) ([]dao.CoachingSession, error)
	InsertAttendance(ctx context.Context, attendance dao.SessionAttendance) (dao.SessionAttendance, error)
	FindUnpaidByAccount(ctx context.Context, accountID uint) ([]dao.SessionAttendance, error)
	FindAttendanceByAccount(ctx context.Context, accountID uint) ([]dao.SessionAttendance, error)
	FindAttendanceByIDs(ctx context.Context, ids []uint) ([]dao.SessionAttendance, error)
	MarkPaid(ctx context.Context, ids []uint, reference string, paidAt time.Time) error
	MarkPendingConfirmation(ctx context.Context, ids []uint, note string) error
	InsertCoachPayment(ctx context.Context, payment dao.CoachPayment) (dao.CoachPayment, error)
	SumCoachPayments(ctx context.Context, coachID uint) (decimal.Decimal, error)
	InsertRate(ctx context.Context, rate dao.CoachRate) (dao.CoachRate, error)
	FindRates(ctx context.Context) ([]dao.CoachRate, error)
}

type CoachingRepository struct {
	dao CoachingDAO
}

func NewCoachingRepository(dao CoachingDAO) *CoachingRepository {
	return &CoachingRepository{
		dao: dao,
	}
}

func (r *CoachingRepository) CreateSession(ctx context.Context, session domain.CoachingSession) (domain.CoachingSession, error) {
	created, err := r.dao.InsertSession(ctx, dao.CoachingSession{
		Date:     session.Date,
		Type:     string(session.Type),
		Billable: session.Billable,
		Notes:    session.Notes,
	})
	if err != nil {
		return domain.CoachingSession{}, fmt.Errorf("r.dao.InsertSession -> %w", err)
	}

	return r.sessionDaoToDomain(created), nil
}

func (r *CoachingRepository) FindSessionByID(ctx context.Context, id uint) (domain.CoachingSession, error) {
	found, err := r.dao.FindSessionByID(ctx, id)
	if err != nil {
		return domain.CoachingSession{}, fmt.Errorf("r.dao.FindSessionByID -> %w", err)
	}

	return r.sessionDaoToDomain(found), nil
}

func (r *CoachingRepository) FindBillableSessions(ctx context.Context, until time.Time) ([]domain.CoachingSession, error) {
	found, err := r.dao.FindBillableSessions(ctx, until)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindBillableSessions -> %w", err)
	}

	sessions := make([]domain.CoachingSession, len(found))
	for i, s := range found {
		sessions[i] = r.sessionDaoToDomain(s)
	}

	return sessions, nil
}

func (r *CoachingRepository) CreateAttendance(ctx context.Context, attendance domain.SessionAttendance) (domain.SessionAttendance, error) {
	created, err := r.dao.InsertAttendance(ctx, dao.SessionAttendance{
		SessionID: attendance.SessionID,
		AccountID: attendance.AccountID,
		Status:    string(attendance.Status),
		Charge:    attendance.Charge,
		Note:      attendance.Note,
	})
	if err != nil {
		return domain.SessionAttendance{}, fmt.Errorf("r.dao.InsertAttendance -> %w", err)
	}

	return r.attendanceDaoToDomain(created), nil
}

func (r *CoachingRepository) FindUnpaidByAccount(ctx context.Context, accountID uint) ([]domain.SessionAttendance, error) {
	found, err := r.dao.FindUnpaidByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindUnpaidByAccount -> %w", err)
	}

	return r.attendancesDaoToDomain(found), nil
}

func (r *CoachingRepository) FindAttendanceByAccount(ctx context.Context, accountID uint) ([]domain.SessionAttendance, error) {
	found, err := r.dao.FindAttendanceByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAttendanceByAccount -> %w", err)
	}

	return r.attendancesDaoToDomain(found), nil
}

func (r *CoachingRepository) FindAttendanceByIDs(ctx context.Context, ids []uint) ([]domain.SessionAttendance, error) {
	found, err := r.dao.FindAttendanceByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAttendanceByIDs -> %w", err)
	}

	return r.attendancesDaoToDomain(found), nil
}

func (r *CoachingRepository) MarkPaid(ctx context.Context, ids []uint, reference string, paidAt time.Time) error {
	if err := r.dao.MarkPaid(ctx, ids, reference, paidAt); err != nil {
		return fmt.Errorf("r.dao.MarkPaid -> %w", err)
	}

	return nil
}

func (r *CoachingRepository) MarkPendingConfirmation(ctx context.Context, ids []uint, note string) error {
	if err := r.dao.MarkPendingConfirmation(ctx, ids, note); err != nil {
		return fmt.Errorf("r.dao.MarkPendingConfirmation -> %w", err)
	}

	return nil
}

func (r *CoachingRepository) CreateCoachPayment(ctx context.Context, payment domain.CoachPayment) (domain.CoachPayment, error) {
	created, err := r.dao.InsertCoachPayment(ctx, dao.CoachPayment{
		CoachID: payment.CoachID,
		Type:    string(payment.Type),
		Amount:  payment.Amount,
		PaidOn:  payment.PaidOn,
	})
	if err != nil {
		return domain.CoachPayment{}, fmt.Errorf("r.dao.InsertCoachPayment -> %w", err)
	}

	return domain.CoachPayment{
		ID:       created.ID,
		CoachID:  created.CoachID,
		Type:     domain.CoachPaymentType(created.Type),
		Amount:   created.Amount,
		PaidOn:   created.PaidOn,
		Recorded: created.CreatedAt,
	}, nil
}

func (r *CoachingRepository) SumCoachPayments(ctx context.Context, coachID uint) (decimal.Decimal, error) {
	total, err := r.dao.SumCoachPayments(ctx, coachID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("r.dao.SumCoachPayments -> %w", err)
	}

	return total, nil
}

func (r *CoachingRepository) CreateRate(ctx context.Context, rate domain.CoachRate) (domain.CoachRate, error) {
	created, err := r.dao.InsertRate(ctx, dao.CoachRate{
		SessionType:   string(rate.SessionType),
		Rate:          rate.Rate,
		EffectiveFrom: rate.EffectiveFrom,
	})
	if err != nil {
		return domain.CoachRate{}, fmt.Errorf("r.dao.InsertRate -> %w", err)
	}

	return r.rateDaoToDomain(created), nil
}

func (r *CoachingRepository) FindRates(ctx context.Context) ([]domain.CoachRate, error) {
	found, err := r.dao.FindRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindRates -> %w", err)
	}

	rates := make([]domain.CoachRate, len(found))
	for i, rate := range found {
		rates[i] = r.rateDaoToDomain(rate)
	}

	return rates, nil
}

func (r *CoachingRepository) sessionDaoToDomain(s dao.CoachingSession) domain.CoachingSession {
	return domain.CoachingSession{
		ID:       s.ID,
		Date:     s.Date,
		Type:     domain.SessionType(s.Type),
		Billable: s.Billable,
		Notes:    s.Notes,
	}
}

func (r *CoachingRepository) attendanceDaoToDomain(a dao.SessionAttendance) domain.SessionAttendance {
	return domain.SessionAttendance{
		ID:          a.ID,
		SessionID:   a.SessionID,
		SessionDate: a.SessionDate,
		AccountID:   a.AccountID,
		Status:      domain.PaymentStatus(a.Status),
		Charge:      a.Charge,
		PaymentRef:  a.PaymentRef,
		PaidAt:      a.PaidAt,
		Note:        a.Note,
	}
}

func (r *CoachingRepository) attendancesDaoToDomain(rows []dao.SessionAttendance) []domain.SessionAttendance {
	out := make([]domain.SessionAttendance, len(rows))
	for i, a := range rows {
		out[i] = r.attendanceDaoToDomain(a)
	}

	return out
}

func (r *CoachingRepository) rateDaoToDomain(rate dao.CoachRate) domain.CoachRate {
	return domain.CoachRate{
		ID:            rate.ID,
		SessionType:   domain.SessionType(rate.SessionType),
		Rate:          rate.Rate,
		EffectiveFrom: rate.EffectiveFrom,
	}
}
