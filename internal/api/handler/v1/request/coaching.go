package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"
)

var (
	errInvalidAmount = errors.New("amount must be a positive decimal")
	errNoAttendances = errors.New("at least one attendance id is required")
)

func validateAmount(value interface{}) error {
	raw, ok := value.(string)
	if !ok {
		return errInvalidAmount
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil || !amount.IsPositive() {
		return errInvalidAmount
	}

	return nil
}

type RecordSessionRequest struct {
	Date     string `json:"date" format:"YYYY-MM-DD"`
	Type     string `json:"type"`
	Billable bool   `json:"billable"`
	Notes    string `json:"notes"`
}

func (req *RecordSessionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Date, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&req.Type, validation.Required, validation.In("junior", "adult", "squad")),
		validation.Field(&req.Notes, validation.Length(0, 500)),
	)
}

type RecordAttendanceRequest struct {
	SessionID uint `json:"session_id"`
	AccountID uint `json:"account_id"`
}

func (req *RecordAttendanceRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.SessionID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.AccountID, validation.Required, validation.Min(uint(1))),
	)
}

// ConfirmPaymentRequest carries the amount as a decimal string so no
// precision is lost on the way in.
type ConfirmPaymentRequest struct {
	AccountID uint   `json:"account_id"`
	Amount    string `json:"amount"`
	Reference string `json:"reference"`
}

func (req *ConfirmPaymentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.AccountID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Amount, validation.Required, validation.By(validateAmount)),
		validation.Field(&req.Reference, validation.Length(0, 100)),
	)
}

type ConfirmSessionsRequest struct {
	AttendanceIDs []uint `json:"attendance_ids"`
	Reference     string `json:"reference"`
}

func (req *ConfirmSessionsRequest) Validate() error {
	if len(req.AttendanceIDs) == 0 {
		return errNoAttendances
	}

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Reference, validation.Length(0, 100)),
	)
}

type SelfReportPaidRequest struct {
	AttendanceIDs []uint `json:"attendance_ids"`
	Note          string `json:"note"`
}

func (req *SelfReportPaidRequest) Validate() error {
	if len(req.AttendanceIDs) == 0 {
		return errNoAttendances
	}

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Note, validation.Length(0, 200)),
	)
}

type CoachPaymentRequest struct {
	CoachID uint   `json:"coach_id"`
	Type    string `json:"type"`
	Amount  string `json:"amount"`
	PaidOn  string `json:"paid_on" format:"YYYY-MM-DD"`
}

func (req *CoachPaymentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.CoachID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Type, validation.Required, validation.In("regular", "advance", "goodwill")),
		validation.Field(&req.Amount, validation.Required, validation.By(validateAmount)),
		validation.Field(&req.PaidOn, validation.Required, validation.Date("2006-01-02")),
	)
}

type CoachRateRequest struct {
	SessionType   string `json:"session_type"`
	Rate          string `json:"rate"`
	EffectiveFrom string `json:"effective_from" format:"YYYY-MM-DD"`
}

func (req *CoachRateRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.SessionType, validation.Required, validation.In("junior", "adult", "squad")),
		validation.Field(&req.Rate, validation.Required, validation.By(validateAmount)),
		validation.Field(&req.EffectiveFrom, validation.Required, validation.Date("2006-01-02")),
	)
}
