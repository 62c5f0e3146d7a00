package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/riversidetc/club-api/internal/api/handler/v1/request"
	"github.com/riversidetc/club-api/internal/api/handler/v1/response"
	"github.com/riversidetc/club-api/internal/domain"
	"github.com/riversidetc/club-api/internal/service"
)

type MergeService interface {
	Merge(ctx context.Context, sourceID, targetID uint) (domain.MergeReport, error)
}

type MergeHandler struct {
	svc      MergeService
	accounts AccountService
}

func NewMergeHandler(svc MergeService, accounts AccountService) *MergeHandler {
	return &MergeHandler{
		svc:      svc,
		accounts: accounts,
	}
}

// HandleMergeAccounts godoc
// @Summary      Merge one account into another
// @Description  Moves season stats and all match references from the source account to the target, then deletes the source if nothing still points at it.
// @Tags         accounts
// @Produce      json
// @Param        request   body      request.MergeAccountsRequest true "request body"
// @Success      200      {object}   domain.MergeReport
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /accounts/merge [post]
func (h *MergeHandler) HandleMergeAccounts(ctx *gin.Context) {
	if !requireAdmin(ctx, h.accounts) {
		return
	}

	var req request.MergeAccountsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	report, err := h.svc.Merge(ctx.Request.Context(), req.SourceID, req.TargetID)
	if err != nil {
		if errors.Is(err, service.ErrSameAccount) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrSameAccount))

			return
		}
		if errors.Is(err, service.ErrAccountNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrAccountNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleMergeAccounts -> h.svc.Merge -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, report)
}
