package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/riversidetc/club-api/internal/api/handler/v1/request"
	"github.com/riversidetc/club-api/internal/api/handler/v1/response"
	"github.com/riversidetc/club-api/internal/domain"
	"github.com/riversidetc/club-api/internal/service"
)

type CoachingService interface {
	RecordSession(ctx context.Context, session domain.CoachingSession) (domain.CoachingSession, error)
	RecordAttendance(ctx context.Context, sessionID, accountID uint) (domain.SessionAttendance, error)
	ListAttendance(ctx context.Context, accountID uint) ([]domain.SessionAttendance, error)
	OutstandingTotal(ctx context.Context, accountID uint) (decimal.Decimal, error)
	ConfirmPayment(ctx context.Context, accountID uint, amount decimal.Decimal, reference string) (domain.PaymentAllocation, error)
	ConfirmSessions(ctx context.Context, attendanceIDs []uint, reference string) error
	SelfReportPaid(ctx context.Context, accountID uint, attendanceIDs []uint, note string) error
	RecordCoachPayment(ctx context.Context, payment domain.CoachPayment) (domain.CoachPayment, error)
	SetRate(ctx context.Context, rate domain.CoachRate) (domain.CoachRate, error)
	CoachBalance(ctx context.Context, coachID uint) (domain.CoachBalanceSummary, error)
	CreateTopUpIntent(ctx context.Context, accountID uint) (string, decimal.Decimal, error)
	SendPaymentReminder(ctx context.Context, accountID uint) error
}

type CoachingHandler struct {
	svc      CoachingService
	accounts AccountService
}

func NewCoachingHandler(svc CoachingService, accounts AccountService) *CoachingHandler {
	return &CoachingHandler{
		svc:      svc,
		accounts: accounts,
	}
}

// HandleRecordSession godoc
// @Summary      Record a coaching session
// @Tags         coaching
// @Produce      json
// @Param        request   body      request.RecordSessionRequest true "request body"
// @Success      201      {object}   domain.CoachingSession
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /coaching/sessions [post]
func (h *CoachingHandler) HandleRecordSession(ctx *gin.Context) {
	if !requireAdmin(ctx, h.accounts) {
		return
	}

	var req request.RecordSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	session, err := h.svc.RecordSession(ctx.Request.Context(), domain.CoachingSession{
		Date:     date,
		Type:     domain.SessionType(req.Type),
		Billable: req.Billable,
		Notes:    req.Notes,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleRecordSession -> h.svc.RecordSession -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, session)
}

// HandleRecordAttendance godoc
// @Summary      Record attendance at a session
// @Tags         coaching
// @Produce      json
// @Param        request   body      request.RecordAttendanceRequest true "request body"
// @Success      201      {object}   domain.SessionAttendance
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /coaching/attendance [post]
func (h *CoachingHandler) HandleRecordAttendance(ctx *gin.Context) {
	if !requireAdmin(ctx, h.accounts) {
		return
	}

	var req request.RecordAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	attendance, err := h.svc.RecordAttendance(ctx.Request.Context(), req.SessionID, req.AccountID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) || errors.Is(err, service.ErrAccountNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(err))

			return
		}

		err = fmt.Errorf("v1.HandleRecordAttendance -> h.svc.RecordAttendance -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, attendance)
}

// HandleListAttendance godoc
// @Summary      List an account's session attendance
// @Tags         coaching
// @Produce      json
// @Param        id        path      int  true "account ID"
// @Success      200      {object}   []domain.SessionAttendance
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /coaching/attendance/{id} [get]
func (h *CoachingHandler) HandleListAttendance(ctx *gin.Context) {
	accountID, err := pathID(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if !h.selfOrAdmin(ctx, accountID) {
		return
	}

	rows, err := h.svc.ListAttendance(ctx.Request.Context(), accountID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListAttendance -> h.svc.ListAttendance -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, rows)
}

// HandleOutstanding godoc
// @Summary      Get an account's outstanding coaching fees
// @Tags         coaching
// @Produce      json
// @Param        id        path      int  true "account ID"
// @Success      200      {object}   response.OutstandingResponse
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /coaching/outstanding/{id} [get]
func (h *CoachingHandler) HandleOutstanding(ctx *gin.Context) {
	accountID, err := pathID(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if !h.selfOrAdmin(ctx, accountID) {
		return
	}

	total, err := h.svc.OutstandingTotal(ctx.Request.Context(), accountID)
	if err != nil {
		err = fmt.Errorf("v1.HandleOutstanding -> h.svc.OutstandingTotal -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.OutstandingResponse{
		AccountID:   accountID,
		Outstanding: total,
	})
}

// HandleConfirmPayment godoc
// @Summary      Confirm a received payment against oldest unpaid sessions
// @Description  Allocates the amount to as many whole sessions as it covers, oldest first. Any remainder is reported back, not stored.
// @Tags         coaching
// @Produce      json
// @Param        request   body      request.ConfirmPaymentRequest true "request body"
// @Success      200      {object}   response.PaymentConfirmationResponse
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /coaching/payments/confirm [post]
func (h *CoachingHandler) HandleConfirmPayment(ctx *gin.Context) {
	if !requireAdmin(ctx, h.accounts) {
		return
	}

	var req request.ConfirmPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	allocation, err := h.svc.ConfirmPayment(ctx.Request.Context(), req.AccountID, amount, req.Reference)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAmount) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidAmount))

			return
		}

		err = fmt.Errorf("v1.HandleConfirmPayment -> h.svc.ConfirmPayment -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.PaymentConfirmationResponse{
		Message:           fmt.Sprintf("%d session(s) confirmed as paid", allocation.SessionsConfirmed),
		SessionsConfirmed: allocation.SessionsConfirmed,
		AmountAllocated:   allocation.AmountAllocated,
		RemainingAmount:   allocation.RemainingAmount,
	})
}

// HandleConfirmSessions godoc
// @Summary      Mark specific attendance rows as paid
// @Tags         coaching
// @Produce      json
// @Param        request   body      request.ConfirmSessionsRequest true "request body"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /coaching/sessions/confirm [post]
func (h *CoachingHandler) HandleConfirmSessions(ctx *gin.Context) {
	if !requireAdmin(ctx, h.accounts) {
		return
	}

	var req request.ConfirmSessionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.ConfirmSessions(ctx.Request.Context(), req.AttendanceIDs, req.Reference); err != nil {
		err = fmt.Errorf("v1.HandleConfirmSessions -> h.svc.ConfirmSessions -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleSelfReportPaid godoc
// @Summary      Self-report sessions as paid, pending confirmation
// @Tags         coaching
// @Produce      json
// @Param        request   body      request.SelfReportPaidRequest true "request body"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /coaching/payments/self-report [post]
func (h *CoachingHandler) HandleSelfReportPaid(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrWrongCredentials(errMissingToken))

		return
	}

	var req request.SelfReportPaidRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.SelfReportPaid(ctx.Request.Context(), userID, req.AttendanceIDs, req.Note); err != nil {
		if errors.Is(err, service.ErrAttendanceNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrAttendanceNotFound))

			return
		}
		if errors.Is(err, service.ErrAttendanceNotOwned) {
			response.RenderErr(ctx, response.ErrForbidden(service.ErrAttendanceNotOwned))

			return
		}

		err = fmt.Errorf("v1.HandleSelfReportPaid -> h.svc.SelfReportPaid -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleRecordCoachPayment godoc
// @Summary      Record a payment made to a coach
// @Tags         coaching
// @Produce      json
// @Param        request   body      request.CoachPaymentRequest true "request body"
// @Success      201      {object}   domain.CoachPayment
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /coaching/coach-payments [post]
func (h *CoachingHandler) HandleRecordCoachPayment(ctx *gin.Context) {
	if !requireAdmin(ctx, h.accounts) {
		return
	}

	var req request.CoachPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}
	paidOn, err := time.Parse("2006-01-02", req.PaidOn)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	payment, err := h.svc.RecordCoachPayment(ctx.Request.Context(), domain.CoachPayment{
		CoachID: req.CoachID,
		Type:    domain.CoachPaymentType(req.Type),
		Amount:  amount,
		PaidOn:  paidOn,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidAmount) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidAmount))

			return
		}

		err = fmt.Errorf("v1.HandleRecordCoachPayment -> h.svc.RecordCoachPayment -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, payment)
}

// HandleSetCoachRate godoc
// @Summary      Set a coach rate effective from a date
// @Description  Rates are versioned; sessions keep the rate in effect on their date.
// @Tags         coaching
// @Produce      json
// @Param        request   body      request.CoachRateRequest true "request body"
// @Success      201      {object}   domain.CoachRate
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /coaching/rates [post]
func (h *CoachingHandler) HandleSetCoachRate(ctx *gin.Context) {
	if !requireAdmin(ctx, h.accounts) {
		return
	}

	var req request.CoachRateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	rate, err := decimal.NewFromString(req.Rate)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}
	effectiveFrom, err := time.Parse("2006-01-02", req.EffectiveFrom)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	created, err := h.svc.SetRate(ctx.Request.Context(), domain.CoachRate{
		SessionType:   domain.SessionType(req.SessionType),
		Rate:          rate,
		EffectiveFrom: effectiveFrom,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidAmount) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidAmount))

			return
		}

		err = fmt.Errorf("v1.HandleSetCoachRate -> h.svc.SetRate -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleCoachBalance godoc
// @Summary      Get a coach's credit balance
// @Tags         coaching
// @Produce      json
// @Param        id        path      int  true "coach account ID"
// @Success      200      {object}   domain.CoachBalanceSummary
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /coaching/balance/{id} [get]
func (h *CoachingHandler) HandleCoachBalance(ctx *gin.Context) {
	if !requireAdmin(ctx, h.accounts) {
		return
	}

	coachID, err := pathID(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	summary, err := h.svc.CoachBalance(ctx.Request.Context(), coachID)
	if err != nil {
		err = fmt.Errorf("v1.HandleCoachBalance -> h.svc.CoachBalance -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, summary)
}

// HandleTopUp godoc
// @Summary      Create a card payment intent for the caller's outstanding fees
// @Tags         coaching
// @Produce      json
// @Success      200      {object}   response.TopUpResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /coaching/payments/top-up [post]
func (h *CoachingHandler) HandleTopUp(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrWrongCredentials(errMissingToken))

		return
	}

	clientSecret, amount, err := h.svc.CreateTopUpIntent(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNothingOutstanding) || errors.Is(err, service.ErrStripeNotConfigured) {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}

		err = fmt.Errorf("v1.HandleTopUp -> h.svc.CreateTopUpIntent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.TopUpResponse{
		ClientSecret: clientSecret,
		Amount:       amount,
	})
}

// HandleSendReminder godoc
// @Summary      Email an account its outstanding fees
// @Tags         coaching
// @Produce      json
// @Param        id        path      int  true "account ID"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /coaching/reminders/{id} [post]
func (h *CoachingHandler) HandleSendReminder(ctx *gin.Context) {
	if !requireAdmin(ctx, h.accounts) {
		return
	}

	accountID, err := pathID(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.SendPaymentReminder(ctx.Request.Context(), accountID); err != nil {
		if errors.Is(err, service.ErrNothingOutstanding) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrNothingOutstanding))

			return
		}

		err = fmt.Errorf("v1.HandleSendReminder -> h.svc.SendPaymentReminder -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

// selfOrAdmin allows the account owner through directly and defers to
// the admin check for anyone else.
func (h *CoachingHandler) selfOrAdmin(ctx *gin.Context, accountID uint) bool {
	if userID, ok := currentUserID(ctx); ok && userID == accountID {
		return true
	}

	return requireAdmin(ctx, h.accounts)
}
