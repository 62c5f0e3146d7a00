package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/paymentintent"

	"github.com/riversidetc/club-api/internal/config"
	"github.com/riversidetc/club-api/internal/domain"
	"github.com/riversidetc/club-api/internal/repository"
)

var (
	ErrSessionNotFound     = repository.ErrSessionNotFound
	ErrAttendanceNotFound  = repository.ErrAttendanceNotFound
	ErrAttendanceNotOwned  = errors.New("attendance does not belong to this account")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrNothingOutstanding  = errors.New("no outstanding fees for this account")
	ErrStripeNotConfigured = errors.New("stripe is not configured")
)

type CoachingRepository interface {
	CreateSession(ctx context.Context, session domain.CoachingSession) (domain.CoachingSession, error)
	FindSessionByID(ctx context.Context, id uint) (domain.CoachingSession, error)
	FindBillableSessions(ctx context.Context, until time.Time) ([]domain.CoachingSession, error)
	CreateAttendance(ctx context.Context, attendance domain.SessionAttendance) (domain.SessionAttendance, error)
	FindUnpaidByAccount(ctx context.Context, accountID uint) ([]domain.SessionAttendance, error)
	FindAttendanceByAccount(ctx context.Context, accountID uint) ([]domain.SessionAttendance, error)
	FindAttendanceByIDs(ctx context.Context, ids []uint) ([]domain.SessionAttendance, error)
	MarkPaid(ctx context.Context, ids []uint, reference string, paidAt time.Time) error
	MarkPendingConfirmation(ctx context.Context, ids []uint, note string) error
	CreateCoachPayment(ctx context.Context, payment domain.CoachPayment) (domain.CoachPayment, error)
	SumCoachPayments(ctx context.Context, coachID uint) (decimal.Decimal, error)
	CreateRate(ctx context.Context, rate domain.CoachRate) (domain.CoachRate, error)
	FindRates(ctx context.Context) ([]domain.CoachRate, error)
}

type CoachingAccountRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Account, error)
}

type CoachingNotifier interface {
	Send(to, subject, body string)
}

type CoachingService struct {
	repo     CoachingRepository
	accounts CoachingAccountRepository
	notifier CoachingNotifier

	sessionFee decimal.Decimal
	currency   string
	stripeKey  string
}

func NewCoachingService(repo CoachingRepository, accounts CoachingAccountRepository, notifier CoachingNotifier, coachingConf *config.CoachingConfig, stripeConf *config.StripeConfig) (*CoachingService, error) {
	fee, err := decimal.NewFromString(coachingConf.SessionFee)
	if err != nil {
		return nil, fmt.Errorf("invalid session fee %q -> %w", coachingConf.SessionFee, err)
	}

	return &CoachingService{
		repo:       repo,
		accounts:   accounts,
		notifier:   notifier,
		sessionFee: fee,
		currency:   coachingConf.Currency,
		stripeKey:  stripeConf.SecretKey,
	}, nil
}

func (s *CoachingService) RecordSession(ctx context.Context, session domain.CoachingSession) (domain.CoachingSession, error) {
	created, err := s.repo.CreateSession(ctx, session)
	if err != nil {
		return domain.CoachingSession{}, fmt.Errorf("s.repo.CreateSession -> %w", err)
	}

	return created, nil
}

// RecordAttendance marks an account as present at a session, creating
// an unpaid charge at the configured fee.
func (s *CoachingService) RecordAttendance(ctx context.Context, sessionID, accountID uint) (domain.SessionAttendance, error) {
	if _, err := s.repo.FindSessionByID(ctx, sessionID); err != nil {
		return domain.SessionAttendance{}, fmt.Errorf("s.repo.FindSessionByID -> %w", err)
	}
	if _, err := s.accounts.FindByID(ctx, accountID); err != nil {
		return domain.SessionAttendance{}, fmt.Errorf("s.accounts.FindByID -> %w", err)
	}

	created, err := s.repo.CreateAttendance(ctx, domain.SessionAttendance{
		SessionID: sessionID,
		AccountID: accountID,
		Status:    domain.PaymentUnpaid,
		Charge:    s.sessionFee,
	})
	if err != nil {
		return domain.SessionAttendance{}, fmt.Errorf("s.repo.CreateAttendance -> %w", err)
	}

	return created, nil
}

func (s *CoachingService) ListAttendance(ctx context.Context, accountID uint) ([]domain.SessionAttendance, error) {
	rows, err := s.repo.FindAttendanceByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAttendanceByAccount -> %w", err)
	}

	return rows, nil
}

// OutstandingTotal sums the account's unpaid session charges.
func (s *CoachingService) OutstandingTotal(ctx context.Context, accountID uint) (decimal.Decimal, error) {
	rows, err := s.repo.FindUnpaidByAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("s.repo.FindUnpaidByAccount -> %w", err)
	}

	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Charge)
	}

	return total, nil
}

// ConfirmPayment allocates a received amount across the payer's oldest
// unpaid sessions, whole sessions only, each priced at the charge
// recorded on its attendance row. The leftover that cannot cover
// another full session is returned as the remainder.
func (s *CoachingService) ConfirmPayment(ctx context.Context, accountID uint, amount decimal.Decimal, reference string) (domain.PaymentAllocation, error) {
	if amount.Sign() <= 0 {
		return domain.PaymentAllocation{}, ErrInvalidAmount
	}

	unpaid, err := s.repo.FindUnpaidByAccount(ctx, accountID)
	if err != nil {
		return domain.PaymentAllocation{}, fmt.Errorf("s.repo.FindUnpaidByAccount -> %w", err)
	}

	charges := make([]decimal.Decimal, len(unpaid))
	for i, row := range unpaid {
		charges[i] = row.Charge
	}

	allocation := domain.AllocatePayment(amount, charges)
	if allocation.SessionsConfirmed == 0 {
		return allocation, nil
	}

	ids := make([]uint, allocation.SessionsConfirmed)
	for i := 0; i < allocation.SessionsConfirmed; i++ {
		ids[i] = unpaid[i].ID
	}

	if err := s.repo.MarkPaid(ctx, ids, reference, time.Now()); err != nil {
		return domain.PaymentAllocation{}, fmt.Errorf("s.repo.MarkPaid -> %w", err)
	}

	return allocation, nil
}

// ConfirmSessions marks an explicit set of attendance rows as paid,
// regardless of session order. Used for manual reconciliation.
func (s *CoachingService) ConfirmSessions(ctx context.Context, attendanceIDs []uint, reference string) error {
	if len(attendanceIDs) == 0 {
		return ErrAttendanceNotFound
	}

	if err := s.repo.MarkPaid(ctx, attendanceIDs, reference, time.Now()); err != nil {
		return fmt.Errorf("s.repo.MarkPaid -> %w", err)
	}

	return nil
}

// SelfReportPaid lets a player flag their own unpaid sessions as paid,
// pending administrator review. The rows move to pending_confirmation,
// never straight to paid.
func (s *CoachingService) SelfReportPaid(ctx context.Context, accountID uint, attendanceIDs []uint, note string) error {
	if len(attendanceIDs) == 0 {
		return ErrAttendanceNotFound
	}

	rows, err := s.repo.FindAttendanceByIDs(ctx, attendanceIDs)
	if err != nil {
		return fmt.Errorf("s.repo.FindAttendanceByIDs -> %w", err)
	}
	if len(rows) != len(attendanceIDs) {
		return ErrAttendanceNotFound
	}
	for _, row := range rows {
		if row.AccountID != accountID {
			return ErrAttendanceNotOwned
		}
	}

	if err := s.repo.MarkPendingConfirmation(ctx, attendanceIDs, note); err != nil {
		return fmt.Errorf("s.repo.MarkPendingConfirmation -> %w", err)
	}

	return nil
}

func (s *CoachingService) RecordCoachPayment(ctx context.Context, payment domain.CoachPayment) (domain.CoachPayment, error) {
	if payment.Amount.Sign() == 0 {
		return domain.CoachPayment{}, ErrInvalidAmount
	}

	created, err := s.repo.CreateCoachPayment(ctx, payment)
	if err != nil {
		return domain.CoachPayment{}, fmt.Errorf("s.repo.CreateCoachPayment -> %w", err)
	}

	return created, nil
}

func (s *CoachingService) SetRate(ctx context.Context, rate domain.CoachRate) (domain.CoachRate, error) {
	if rate.Rate.Sign() <= 0 {
		return domain.CoachRate{}, ErrInvalidAmount
	}

	created, err := s.repo.CreateRate(ctx, rate)
	if err != nil {
		return domain.CoachRate{}, fmt.Errorf("s.repo.CreateRate -> %w", err)
	}

	return created, nil
}

// CoachBalance derives the coach's credit balance: total payments minus
// the value of delivered billable sessions, each priced at the rate in
// effect on its date. Rate changes are never applied retroactively.
func (s *CoachingService) CoachBalance(ctx context.Context, coachID uint) (domain.CoachBalanceSummary, error) {
	totalPaid, err := s.repo.SumCoachPayments(ctx, coachID)
	if err != nil {
		return domain.CoachBalanceSummary{}, fmt.Errorf("s.repo.SumCoachPayments -> %w", err)
	}

	sessions, err := s.repo.FindBillableSessions(ctx, time.Now())
	if err != nil {
		return domain.CoachBalanceSummary{}, fmt.Errorf("s.repo.FindBillableSessions -> %w", err)
	}

	rates, err := s.repo.FindRates(ctx)
	if err != nil {
		return domain.CoachBalanceSummary{}, fmt.Errorf("s.repo.FindRates -> %w", err)
	}

	totalOwed := decimal.Zero
	for _, session := range sessions {
		totalOwed = totalOwed.Add(s.rateFor(rates, session.Type, session.Date))
	}

	balance := domain.ComputeBalance(totalPaid, totalOwed)
	currentRate := s.rateFor(rates, domain.SessionJunior, time.Now())

	return domain.CoachBalanceSummary{
		CoachID:           coachID,
		TotalPaid:         totalPaid,
		TotalOwed:         totalOwed,
		Balance:           balance,
		CoveredSessions:   domain.CoveredSessions(balance, currentRate),
		SessionsToInvoice: domain.SessionsToInvoice(balance, currentRate),
		InvoiceDue:        balance.Sign() < 0,
	}, nil
}

// rateFor picks the rate with the latest effective date on or before
// the given date for the session type, falling back to the configured
// session fee. The rate slice may come back in any order.
func (s *CoachingService) rateFor(rates []domain.CoachRate, sessionType domain.SessionType, date time.Time) decimal.Decimal {
	rate := s.sessionFee

	var effective time.Time
	matched := false
	for _, r := range rates {
		if r.SessionType != sessionType || r.EffectiveFrom.After(date) {
			continue
		}
		if !matched || r.EffectiveFrom.After(effective) {
			rate = r.Rate
			effective = r.EffectiveFrom
			matched = true
		}
	}

	return rate
}

// CreateTopUpIntent creates a Stripe PaymentIntent covering the
// account's outstanding fees. The resulting pending card payment is
// confirmed later through the reconciliation flow, like any other.
func (s *CoachingService) CreateTopUpIntent(ctx context.Context, accountID uint) (string, decimal.Decimal, error) {
	if s.stripeKey == "" {
		return "", decimal.Zero, ErrStripeNotConfigured
	}

	outstanding, err := s.OutstandingTotal(ctx, accountID)
	if err != nil {
		return "", decimal.Zero, fmt.Errorf("s.OutstandingTotal -> %w", err)
	}
	if outstanding.Sign() <= 0 {
		return "", decimal.Zero, ErrNothingOutstanding
	}

	stripe.Key = s.stripeKey
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(outstanding.Mul(decimal.NewFromInt(100)).IntPart()),
		Currency: stripe.String(s.currency),
	}
	params.AddMetadata("account_id", fmt.Sprintf("%d", accountID))

	intent, err := paymentintent.New(params)
	if err != nil {
		return "", decimal.Zero, fmt.Errorf("paymentintent.New -> %w", err)
	}

	return intent.ClientSecret, outstanding, nil
}

// SendPaymentReminder emails an account its outstanding total. The send
// itself is fire-and-forget.
func (s *CoachingService) SendPaymentReminder(ctx context.Context, accountID uint) error {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("s.accounts.FindByID -> %w", err)
	}

	outstanding, err := s.OutstandingTotal(ctx, accountID)
	if err != nil {
		return fmt.Errorf("s.OutstandingTotal -> %w", err)
	}
	if outstanding.Sign() <= 0 {
		return ErrNothingOutstanding
	}

	s.notifier.Send(account.Email, "Coaching fees outstanding",
		fmt.Sprintf("Hi %s, you currently owe %s for coaching sessions.", account.Name, outstanding.StringFixed(2)))

	return nil
}
