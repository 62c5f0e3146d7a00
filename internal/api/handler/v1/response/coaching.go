package response

import "github.com/shopspring/decimal"

type PaymentConfirmationResponse struct {
	Message           string          `json:"message"`
	SessionsConfirmed int             `json:"sessions_confirmed"`
	AmountAllocated   decimal.Decimal `json:"amount_allocated"`
	RemainingAmount   decimal.Decimal `json:"remaining_amount"`
}

type TopUpResponse struct {
	ClientSecret string          `json:"client_secret"`
	Amount       decimal.Decimal `json:"amount"`
}

type OutstandingResponse struct {
	AccountID   uint            `json:"account_id"`
	Outstanding decimal.Decimal `json:"outstanding"`
}
