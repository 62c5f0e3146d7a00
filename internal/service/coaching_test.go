package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riversidetc/club-api/internal/config"
	"github.com/riversidetc/club-api/internal/domain"
	"github.com/riversidetc/club-api/internal/repository"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	require.NoError(t, err)

	return d
}

type fakeCoachingRepo struct {
	sessions    map[uint]domain.CoachingSession
	attendances []domain.SessionAttendance

	paidIDs    []uint
	paidRef    string
	pendingIDs []uint

	coachPayments decimal.Decimal
	rates         []domain.CoachRate
}

func newFakeCoachingRepo() *fakeCoachingRepo {
	return &fakeCoachingRepo{
		sessions:      make(map[uint]domain.CoachingSession),
		coachPayments: decimal.Zero,
	}
}

func (f *fakeCoachingRepo) CreateSession(_ context.Context, session domain.CoachingSession) (domain.CoachingSession, error) {
	session.ID = uint(len(f.sessions) + 1)
	f.sessions[session.ID] = session

	return session, nil
}

func (f *fakeCoachingRepo) FindSessionByID(_ context.Context, id uint) (domain.CoachingSession, error) {
	session, ok := f.sessions[id]
	if !ok {
		return domain.CoachingSession{}, repository.ErrSessionNotFound
	}

	return session, nil
}

func (f *fakeCoachingRepo) FindBillableSessions(_ context.Context, until time.Time) ([]domain.CoachingSession, error) {
	var out []domain.CoachingSession
	for _, s := range f.sessions {
		if s.Billable && !s.Date.After(until) {
			out = append(out, s)
		}
	}

	return out, nil
}

func (f *fakeCoachingRepo) CreateAttendance(_ context.Context, attendance domain.SessionAttendance) (domain.SessionAttendance, error) {
	attendance.ID = uint(len(f.attendances) + 1)
	f.attendances = append(f.attendances, attendance)

	return attendance, nil
}

func (f *fakeCoachingRepo) FindUnpaidByAccount(_ context.Context, accountID uint) ([]domain.SessionAttendance, error) {
	var out []domain.SessionAttendance
	for _, a := range f.attendances {
		if a.AccountID == accountID && a.Status == domain.PaymentUnpaid {
			out = append(out, a)
		}
	}

	return out, nil
}

func (f *fakeCoachingRepo) FindAttendanceByAccount(_ context.Context, accountID uint) ([]domain.SessionAttendance, error) {
	var out []domain.SessionAttendance
	for _, a := range f.attendances {
		if a.AccountID == accountID {
			out = append(out, a)
		}
	}

	return out, nil
}

func (f *fakeCoachingRepo) FindAttendanceByIDs(_ context.Context, ids []uint) ([]domain.SessionAttendance, error) {
	var out []domain.SessionAttendance
	for _, a := range f.attendances {
		for _, id := range ids {
			if a.ID == id {
				out = append(out, a)
			}
		}
	}

	return out, nil
}

func (f *fakeCoachingRepo) MarkPaid(_ context.Context, ids []uint, reference string, _ time.Time) error {
	f.paidIDs = append(f.paidIDs, ids...)
	f.paidRef = reference
	for i := range f.attendances {
		for _, id := range ids {
			if f.attendances[i].ID == id {
				f.attendances[i].Status = domain.PaymentPaid
			}
		}
	}

	return nil
}

func (f *fakeCoachingRepo) MarkPendingConfirmation(_ context.Context, ids []uint, note string) error {
	f.pendingIDs = append(f.pendingIDs, ids...)
	for i := range f.attendances {
		for _, id := range ids {
			if f.attendances[i].ID == id && f.attendances[i].Status == domain.PaymentUnpaid {
				f.attendances[i].Status = domain.PaymentPendingConfirmation
				f.attendances[i].Note = note
			}
		}
	}

	return nil
}

func (f *fakeCoachingRepo) CreateCoachPayment(_ context.Context, payment domain.CoachPayment) (domain.CoachPayment, error) {
	f.coachPayments = f.coachPayments.Add(payment.Amount)

	return payment, nil
}

func (f *fakeCoachingRepo) SumCoachPayments(_ context.Context, _ uint) (decimal.Decimal, error) {
	return f.coachPayments, nil
}

func (f *fakeCoachingRepo) CreateRate(_ context.Context, rate domain.CoachRate) (domain.CoachRate, error) {
	f.rates = append(f.rates, rate)

	return rate, nil
}

func (f *fakeCoachingRepo) FindRates(_ context.Context) ([]domain.CoachRate, error) {
	return f.rates, nil
}

type fakeAccounts struct {
	accounts map[uint]domain.Account
}

func (f *fakeAccounts) FindByID(_ context.Context, id uint) (domain.Account, error) {
	account, ok := f.accounts[id]
	if !ok {
		return domain.Account{}, repository.ErrAccountNotFound
	}

	return account, nil
}

func newCoachingFixture(t *testing.T) (*fakeCoachingRepo, *fakeNotifier, *CoachingService) {
	t.Helper()

	repo := newFakeCoachingRepo()
	accounts := &fakeAccounts{accounts: map[uint]domain.Account{
		1: {ID: 1, Email: "player@example.com", Name: "Alex"},
	}}
	notifier := &fakeNotifier{}

	svc, err := NewCoachingService(repo, accounts, notifier,
		&config.CoachingConfig{SessionFee: "4.00", Currency: "gbp"},
		&config.StripeConfig{})
	require.NoError(t, err)

	return repo, notifier, svc
}

func seedUnpaid(repo *fakeCoachingRepo, accountID uint, count int, fee string) {
	for i := 0; i < count; i++ {
		repo.attendances = append(repo.attendances, domain.SessionAttendance{
			ID:          uint(len(repo.attendances) + 1),
			SessionID:   uint(i + 1),
			AccountID:   accountID,
			Status:      domain.PaymentUnpaid,
			Charge:      decimal.RequireFromString(fee),
			SessionDate: time.Date(2026, 1, 1+i, 18, 0, 0, 0, time.UTC),
		})
	}
}

func TestConfirmPayment_ExactMultipleConfirmsAll(t *testing.T) {
	repo, _, svc := newCoachingFixture(t)
	seedUnpaid(repo, 1, 5, "4.00")

	allocation, err := svc.ConfirmPayment(context.Background(), 1, dec(t, "20.00"), "BACS-77")

	require.NoError(t, err)
	assert.Equal(t, 5, allocation.SessionsConfirmed)
	assert.True(t, allocation.RemainingAmount.IsZero())
	assert.Equal(t, []uint{1, 2, 3, 4, 5}, repo.paidIDs)
	assert.Equal(t, "BACS-77", repo.paidRef)
}

func TestConfirmPayment_OldestFirstWithRemainder(t *testing.T) {
	repo, _, svc := newCoachingFixture(t)
	seedUnpaid(repo, 1, 5, "4.00")

	allocation, err := svc.ConfirmPayment(context.Background(), 1, dec(t, "18.00"), "")

	require.NoError(t, err)
	assert.Equal(t, 4, allocation.SessionsConfirmed)
	assert.True(t, allocation.RemainingAmount.Equal(dec(t, "2.00")))
	assert.Equal(t, []uint{1, 2, 3, 4}, repo.paidIDs, "the four oldest sessions get paid")
}

func TestConfirmPayment_BelowOneFee(t *testing.T) {
	repo, _, svc := newCoachingFixture(t)
	seedUnpaid(repo, 1, 3, "4.00")

	allocation, err := svc.ConfirmPayment(context.Background(), 1, dec(t, "3.99"), "")

	require.NoError(t, err)
	assert.Equal(t, 0, allocation.SessionsConfirmed)
	assert.True(t, allocation.RemainingAmount.Equal(dec(t, "3.99")))
	assert.Empty(t, repo.paidIDs)
}

func TestConfirmPayment_UsesRecordedChargeAfterFeeChange(t *testing.T) {
	// The fixture's configured fee is 4.00, but these rows were
	// recorded before a fee change at 3.50 each. A payment matching
	// the outstanding total must settle all of them.
	repo, _, svc := newCoachingFixture(t)
	seedUnpaid(repo, 1, 3, "3.50")

	allocation, err := svc.ConfirmPayment(context.Background(), 1, dec(t, "10.50"), "BACS-12")

	require.NoError(t, err)
	assert.Equal(t, 3, allocation.SessionsConfirmed)
	assert.True(t, allocation.AmountAllocated.Equal(dec(t, "10.50")))
	assert.True(t, allocation.RemainingAmount.IsZero())
	assert.Equal(t, []uint{1, 2, 3}, repo.paidIDs)
}

func TestConfirmPayment_RejectsNonPositiveAmount(t *testing.T) {
	_, _, svc := newCoachingFixture(t)

	_, err := svc.ConfirmPayment(context.Background(), 1, decimal.Zero, "")

	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestSelfReportPaid_SetsPendingNotPaid(t *testing.T) {
	repo, _, svc := newCoachingFixture(t)
	seedUnpaid(repo, 1, 2, "4.00")

	err := svc.SelfReportPaid(context.Background(), 1, []uint{1, 2}, "paid by bank transfer")

	require.NoError(t, err)
	for _, a := range repo.attendances {
		assert.Equal(t, domain.PaymentPendingConfirmation, a.Status)
		assert.Equal(t, "paid by bank transfer", a.Note)
	}
	assert.Empty(t, repo.paidIDs, "self reporting must never mark rows paid directly")
}

func TestSelfReportPaid_RejectsForeignRows(t *testing.T) {
	repo, _, svc := newCoachingFixture(t)
	seedUnpaid(repo, 1, 1, "4.00")
	seedUnpaid(repo, 2, 1, "4.00")

	err := svc.SelfReportPaid(context.Background(), 1, []uint{2}, "")

	assert.ErrorIs(t, err, ErrAttendanceNotOwned)
}

func TestSelfReportPaid_RejectsUnknownRows(t *testing.T) {
	_, _, svc := newCoachingFixture(t)

	err := svc.SelfReportPaid(context.Background(), 1, []uint{42}, "")

	assert.ErrorIs(t, err, ErrAttendanceNotFound)
}

func TestRecordAttendance_ChargesConfiguredFee(t *testing.T) {
	repo, _, svc := newCoachingFixture(t)
	session, err := svc.RecordSession(context.Background(), domain.CoachingSession{
		Date:     time.Date(2026, 2, 3, 18, 0, 0, 0, time.UTC),
		Type:     domain.SessionJunior,
		Billable: true,
	})
	require.NoError(t, err)

	attendance, err := svc.RecordAttendance(context.Background(), session.ID, 1)

	require.NoError(t, err)
	assert.Equal(t, domain.PaymentUnpaid, attendance.Status)
	assert.True(t, attendance.Charge.Equal(dec(t, "4.00")))
	assert.Len(t, repo.attendances, 1)
}

func TestOutstandingTotal(t *testing.T) {
	repo, _, svc := newCoachingFixture(t)
	seedUnpaid(repo, 1, 3, "4.00")

	total, err := svc.OutstandingTotal(context.Background(), 1)

	require.NoError(t, err)
	assert.True(t, total.Equal(dec(t, "12.00")))
}

func TestCoachBalance_VersionedRates(t *testing.T) {
	repo, _, svc := newCoachingFixture(t)

	// Two delivered junior sessions straddling a rate change; the old
	// session keeps the old rate.
	repo.sessions[1] = domain.CoachingSession{
		ID: 1, Type: domain.SessionJunior, Billable: true,
		Date: time.Date(2026, 1, 5, 18, 0, 0, 0, time.UTC),
	}
	repo.sessions[2] = domain.CoachingSession{
		ID: 2, Type: domain.SessionJunior, Billable: true,
		Date: time.Date(2026, 3, 5, 18, 0, 0, 0, time.UTC),
	}
	repo.rates = []domain.CoachRate{
		{SessionType: domain.SessionJunior, Rate: dec(t, "30.00"), EffectiveFrom: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)},
		{SessionType: domain.SessionJunior, Rate: dec(t, "35.00"), EffectiveFrom: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
	}
	repo.coachPayments = dec(t, "100.00")

	summary, err := svc.CoachBalance(context.Background(), 9)

	require.NoError(t, err)
	assert.True(t, summary.TotalOwed.Equal(dec(t, "65.00")), "owed = %s", summary.TotalOwed)
	assert.True(t, summary.Balance.Equal(dec(t, "35.00")))
	assert.False(t, summary.InvoiceDue)
	assert.Equal(t, 1, summary.CoveredSessions)
	assert.Equal(t, 0, summary.SessionsToInvoice)
}

func TestCoachBalance_RateOrderDoesNotMatter(t *testing.T) {
	repo, _, svc := newCoachingFixture(t)

	repo.sessions[1] = domain.CoachingSession{
		ID: 1, Type: domain.SessionJunior, Billable: true,
		Date: time.Date(2026, 3, 5, 18, 0, 0, 0, time.UTC),
	}
	// Newest rate listed first; the effective date still decides.
	repo.rates = []domain.CoachRate{
		{SessionType: domain.SessionJunior, Rate: dec(t, "35.00"), EffectiveFrom: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
		{SessionType: domain.SessionJunior, Rate: dec(t, "30.00"), EffectiveFrom: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)},
	}

	summary, err := svc.CoachBalance(context.Background(), 9)

	require.NoError(t, err)
	assert.True(t, summary.TotalOwed.Equal(dec(t, "35.00")), "owed = %s", summary.TotalOwed)
}

func TestCoachBalance_InvoiceDue(t *testing.T) {
	repo, _, svc := newCoachingFixture(t)

	repo.sessions[1] = domain.CoachingSession{
		ID: 1, Type: domain.SessionAdult, Billable: true,
		Date: time.Date(2026, 1, 5, 19, 0, 0, 0, time.UTC),
	}
	repo.rates = []domain.CoachRate{
		{SessionType: domain.SessionAdult, Rate: dec(t, "30.00"), EffectiveFrom: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)},
	}

	summary, err := svc.CoachBalance(context.Background(), 9)

	require.NoError(t, err)
	assert.True(t, summary.Balance.Equal(dec(t, "-30.00")))
	assert.True(t, summary.InvoiceDue)
}

func TestCreateTopUpIntent_RequiresStripeKey(t *testing.T) {
	repo, _, svc := newCoachingFixture(t)
	seedUnpaid(repo, 1, 1, "4.00")

	_, _, err := svc.CreateTopUpIntent(context.Background(), 1)

	assert.ErrorIs(t, err, ErrStripeNotConfigured)
}

func TestSendPaymentReminder(t *testing.T) {
	repo, notifier, svc := newCoachingFixture(t)
	seedUnpaid(repo, 1, 2, "4.00")

	err := svc.SendPaymentReminder(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, []string{"player@example.com"}, notifier.sent)
}

func TestSendPaymentReminder_NothingOutstanding(t *testing.T) {
	_, notifier, svc := newCoachingFixture(t)

	err := svc.SendPaymentReminder(context.Background(), 1)

	assert.ErrorIs(t, err, ErrNothingOutstanding)
	assert.Empty(t, notifier.sent)
}
