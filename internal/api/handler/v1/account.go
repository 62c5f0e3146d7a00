package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/riversidetc/club-api/internal/api/handler/v1/request"
	"github.com/riversidetc/club-api/internal/api/handler/v1/response"
	"github.com/riversidetc/club-api/internal/api/middleware"
	"github.com/riversidetc/club-api/internal/domain"
	"github.com/riversidetc/club-api/internal/service"
)

var (
	errInvalidID    = errors.New("invalid id in path")
	errMissingToken = errors.New("authentication required")
	errNotAdmin     = errors.New("administrator role required")
)

type AccountService interface {
	GetAccount(ctx context.Context, id uint) (domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	CreateSkeleton(ctx context.Context, name string) (domain.Account, error)
	ApproveAccount(ctx context.Context, id uint) (domain.Account, error)
}

type AccountHandler struct {
	svc AccountService
}

func NewAccountHandler(svc AccountService) *AccountHandler {
	return &AccountHandler{
		svc: svc,
	}
}

func currentUserID(ctx *gin.Context) (uint, bool) {
	raw, exists := ctx.Get(middleware.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	id, ok := raw.(uint)

	return id, ok
}

// requireAdmin loads the calling account and rejects non-admins. Role
// checks live in the handlers; the middleware only verifies the token.
func requireAdmin(ctx *gin.Context, svc AccountService) bool {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrWrongCredentials(errMissingToken))

		return false
	}

	account, err := svc.GetAccount(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.requireAdmin -> svc.GetAccount -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return false
	}

	if !account.IsAdmin() {
		response.RenderErr(ctx, response.ErrForbidden(errNotAdmin))

		return false
	}

	return true
}

func pathID(ctx *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errInvalidID
	}

	return uint(id), nil
}

// HandleGetAccount godoc
// @Summary      Get an account by ID
// @Tags         accounts
// @Produce      json
// @Param        id        path      int  true "account ID"
// @Success      200      {object}   domain.Account
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /accounts/{id} [get]
func (h *AccountHandler) HandleGetAccount(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	account, err := h.svc.GetAccount(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrAccountNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleGetAccount -> h.svc.GetAccount -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, account)
}

// HandleListAccounts godoc
// @Summary      List all accounts
// @Tags         accounts
// @Produce      json
// @Success      200      {object}   []domain.Account
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /accounts [get]
func (h *AccountHandler) HandleListAccounts(ctx *gin.Context) {
	if !requireAdmin(ctx, h.svc) {
		return
	}

	accounts, err := h.svc.ListAccounts(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListAccounts -> h.svc.ListAccounts -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, accounts)
}

// HandleCreateSkeleton godoc
// @Summary      Create a skeleton account for an unregistered attendee
// @Tags         accounts
// @Produce      json
// @Param        request   body      request.CreateSkeletonRequest true "request body"
// @Success      201      {object}   domain.Account
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /accounts/skeleton [post]
func (h *AccountHandler) HandleCreateSkeleton(ctx *gin.Context) {
	if !requireAdmin(ctx, h.svc) {
		return
	}

	var req request.CreateSkeletonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	account, err := h.svc.CreateSkeleton(ctx.Request.Context(), req.Name)
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateSkeleton -> h.svc.CreateSkeleton -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, account)
}

// HandleApproveAccount godoc
// @Summary      Approve a pending account
// @Tags         accounts
// @Produce      json
// @Param        id        path      int  true "account ID"
// @Success      200      {object}   domain.Account
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /accounts/{id}/approve [post]
func (h *AccountHandler) HandleApproveAccount(ctx *gin.Context) {
	if !requireAdmin(ctx, h.svc) {
		return
	}

	id, err := pathID(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	account, err := h.svc.ApproveAccount(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrAccountNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleApproveAccount -> h.svc.ApproveAccount -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, account)
}
