package domain

import "github.com/shopspring/decimal"

// CoachBalanceSummary reports the coach's running credit balance:
// payments received minus the value of delivered billable sessions.
type CoachBalanceSummary struct {
	CoachID           uint            `json:"coach_id"`
	TotalPaid         decimal.Decimal `json:"total_paid"`
	TotalOwed         decimal.Decimal `json:"total_owed"`
	Balance           decimal.Decimal `json:"balance"`
	CoveredSessions   int             `json:"covered_sessions"`
	SessionsToInvoice int             `json:"sessions_to_invoice"`
	InvoiceDue        bool            `json:"invoice_due"`
}

// ComputeBalance returns totalPaid minus totalOwed. A non-negative
// result means delivered sessions remain covered by prepayment; a
// negative result means an invoice is due.
func ComputeBalance(totalPaid, totalOwed decimal.Decimal) decimal.Decimal {
	return totalPaid.Sub(totalOwed)
}

// CoveredSessions returns how many further sessions a non-negative
// balance covers at the given unit rate. Zero for a negative balance
// or a non-positive rate.
func CoveredSessions(balance, unitRate decimal.Decimal) int {
	if balance.Sign() < 0 || unitRate.Sign() <= 0 {
		return 0
	}

	return int(balance.Div(unitRate).IntPart())
}

// SessionsToInvoice returns the minimum number of sessions to invoice
// for a negative balance: ceil(|balance| / unitRate). Zero when the
// balance is non-negative or the rate is non-positive.
func SessionsToInvoice(balance, unitRate decimal.Decimal) int {
	if balance.Sign() >= 0 || unitRate.Sign() <= 0 {
		return 0
	}

	owed := balance.Neg()
	whole := owed.Div(unitRate).IntPart()
	if unitRate.Mul(decimal.NewFromInt(whole)).Equal(owed) {
		return int(whole)
	}

	return int(whole + 1)
}
