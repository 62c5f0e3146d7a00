package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentUnpaid              PaymentStatus = "unpaid"
	PaymentPendingConfirmation PaymentStatus = "pending_confirmation"
	PaymentPaid                PaymentStatus = "paid"
)

type SessionType string

const (
	SessionJunior SessionType = "junior"
	SessionAdult  SessionType = "adult"
	SessionSquad  SessionType = "squad"
)

type CoachingSession struct {
	ID       uint        `json:"id"`
	Date     time.Time   `json:"date"`
	Type     SessionType `json:"type"`
	Billable bool        `json:"billable"`
	Notes    string      `json:"notes"`
}

// SessionAttendance marks one account as present at one session and
// carries the per-session charge and its payment state.
type SessionAttendance struct {
	ID          uint            `json:"id"`
	SessionID   uint            `json:"session_id"`
	SessionDate time.Time       `json:"session_date"`
	AccountID   uint            `json:"account_id"`
	Status      PaymentStatus   `json:"status"`
	Charge      decimal.Decimal `json:"charge"`
	PaymentRef  string          `json:"payment_ref,omitempty"`
	PaidAt      *time.Time      `json:"paid_at,omitempty"`
	Note        string          `json:"note,omitempty"`
}

type CoachPaymentType string

const (
	CoachPaymentRegular  CoachPaymentType = "regular"
	CoachPaymentAdvance  CoachPaymentType = "advance"
	CoachPaymentGoodwill CoachPaymentType = "goodwill"
)

// CoachPayment records money transferred to (or, negative, from) the
// coach. The running balance against delivered sessions is derived from
// these rows.
type CoachPayment struct {
	ID       uint             `json:"id"`
	CoachID  uint             `json:"coach_id"`
	Type     CoachPaymentType `json:"type"`
	Amount   decimal.Decimal  `json:"amount"`
	PaidOn   time.Time        `json:"paid_on"`
	Recorded time.Time        `json:"recorded"`
}

// CoachRate is a versioned per-session rate. Rate changes take effect
// from EffectiveFrom and are never retroactive.
type CoachRate struct {
	ID            uint            `json:"id"`
	SessionType   SessionType     `json:"session_type"`
	Rate          decimal.Decimal `json:"rate"`
	EffectiveFrom time.Time       `json:"effective_from"`
}

// PaymentAllocation is the outcome of reconciling a received amount
// against a player's oldest unpaid sessions.
type PaymentAllocation struct {
	SessionsConfirmed int             `json:"sessions_confirmed"`
	AmountAllocated   decimal.Decimal `json:"amount_allocated"`
	RemainingAmount   decimal.Decimal `json:"remaining_amount"`
}

// AllocatePayment walks the given charges in order, oldest session
// first, covering whole sessions until the amount runs out. It never
// allocates a partial session; whatever cannot cover the next full
// charge is reported as the remainder. Allocating against each row's
// recorded charge keeps the result consistent with the outstanding
// total even when the configured fee has changed since a row was
// created.
func AllocatePayment(amount decimal.Decimal, charges []decimal.Decimal) PaymentAllocation {
	confirmed := 0
	allocated := decimal.Zero
	remaining := amount

	for _, charge := range charges {
		if charge.Sign() <= 0 || remaining.LessThan(charge) {
			break
		}
		remaining = remaining.Sub(charge)
		allocated = allocated.Add(charge)
		confirmed++
	}

	return PaymentAllocation{
		SessionsConfirmed: confirmed,
		AmountAllocated:   allocated,
		RemainingAmount:   remaining,
	}
}
