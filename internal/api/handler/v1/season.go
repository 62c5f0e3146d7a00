package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/riversidetc/club-api/internal/api/handler/v1/request"
	"github.com/riversidetc/club-api/internal/api/handler/v1/response"
	"github.com/riversidetc/club-api/internal/domain"
	"github.com/riversidetc/club-api/internal/service"
)

type StandingsService interface {
	ListSeasons(ctx context.Context) ([]domain.Season, error)
	CurrentSeason(ctx context.Context) (domain.Season, error)
	CreateSeason(ctx context.Context, season domain.Season) (domain.Season, error)
	RecordParticipation(ctx context.Context, row domain.SeasonParticipation) (domain.SeasonParticipation, error)
	Standings(ctx context.Context, seasonID uint, mode domain.StandingsMode) ([]domain.StandingsEntry, error)
}

type SeasonHandler struct {
	svc      StandingsService
	accounts AccountService
}

func NewSeasonHandler(svc StandingsService, accounts AccountService) *SeasonHandler {
	return &SeasonHandler{
		svc:      svc,
		accounts: accounts,
	}
}

// HandleListSeasons godoc
// @Summary      List all seasons
// @Tags         seasons
// @Produce      json
// @Success      200      {object}   []domain.Season
// @Failure      500      {object}   response.Err
// @Router       /seasons [get]
func (h *SeasonHandler) HandleListSeasons(ctx *gin.Context) {
	seasons, err := h.svc.ListSeasons(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListSeasons -> h.svc.ListSeasons -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, seasons)
}

// HandleCurrentSeason godoc
// @Summary      Get the current season
// @Tags         seasons
// @Produce      json
// @Success      200      {object}   domain.Season
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /seasons/current [get]
func (h *SeasonHandler) HandleCurrentSeason(ctx *gin.Context) {
	season, err := h.svc.CurrentSeason(ctx.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrSeasonNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrSeasonNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleCurrentSeason -> h.svc.CurrentSeason -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, season)
}

// HandleCreateSeason godoc
// @Summary      Create a season
// @Tags         seasons
// @Produce      json
// @Param        request   body      request.CreateSeasonRequest true "request body"
// @Success      201      {object}   domain.Season
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /seasons [post]
func (h *SeasonHandler) HandleCreateSeason(ctx *gin.Context) {
	if !requireAdmin(ctx, h.accounts) {
		return
	}

	var req request.CreateSeasonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	season, err := h.svc.CreateSeason(ctx.Request.Context(), domain.Season{
		Name:      req.Name,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateSeason -> h.svc.CreateSeason -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, season)
}

// HandleRecordParticipation godoc
// @Summary      Record an account's stats for a season
// @Tags         seasons
// @Produce      json
// @Param        id        path      int  true "season ID"
// @Param        request   body      request.RecordParticipationRequest true "request body"
// @Success      201      {object}   domain.SeasonParticipation
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /seasons/{id}/participation [post]
func (h *SeasonHandler) HandleRecordParticipation(ctx *gin.Context) {
	if !requireAdmin(ctx, h.accounts) {
		return
	}

	seasonID, err := pathID(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.RecordParticipationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	created, err := h.svc.RecordParticipation(ctx.Request.Context(), domain.SeasonParticipation{
		AccountID:     req.AccountID,
		SeasonID:      seasonID,
		GamesPlayed:   req.GamesPlayed,
		GamesWon:      req.GamesWon,
		MatchesPlayed: req.MatchesPlayed,
		MatchesWon:    req.MatchesWon,
	})
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrAccountNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleRecordParticipation -> h.svc.RecordParticipation -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleStandings godoc
// @Summary      Get standings for a season
// @Description  Mode selects the ranking rule: ladder, league or championship.
// @Tags         seasons
// @Produce      json
// @Param        id        path      int     true  "season ID"
// @Param        mode      query     string  false "standings mode" Enums(ladder, league, championship) default(ladder)
// @Success      200      {object}   []domain.StandingsEntry
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /seasons/{id}/standings [get]
func (h *SeasonHandler) HandleStandings(ctx *gin.Context) {
	seasonID, err := pathID(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	mode := domain.StandingsMode(ctx.DefaultQuery("mode", string(domain.StandingsLadder)))

	entries, err := h.svc.Standings(ctx.Request.Context(), seasonID, mode)
	if err != nil {
		if errors.Is(err, service.ErrUnknownStandingsMode) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrUnknownStandingsMode))

			return
		}

		err = fmt.Errorf("v1.HandleStandings -> h.svc.Standings -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, entries)
}
