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

type FixtureService interface {
	CreateFixture(ctx context.Context, fixture domain.MatchFixture) (domain.MatchFixture, error)
	GetFixture(ctx context.Context, id uint) (domain.MatchFixture, error)
	CreateRubber(ctx context.Context, rubber domain.LeagueRubber) (domain.LeagueRubber, error)
	RecordRubberResult(ctx context.Context, rubberID uint, homeGames, awayGames int) error
	SubmitAvailability(ctx context.Context, entry domain.AvailabilityEntry) (domain.AvailabilityEntry, error)
	SubmitChallenge(ctx context.Context, challenge domain.ScoreChallenge) (domain.ScoreChallenge, error)
	ResolveChallenge(ctx context.Context, challengeID, resolverID uint) error
}

type FixtureHandler struct {
	svc      FixtureService
	accounts AccountService
}

func NewFixtureHandler(svc FixtureService, accounts AccountService) *FixtureHandler {
	return &FixtureHandler{
		svc:      svc,
		accounts: accounts,
	}
}

// HandleCreateFixture godoc
// @Summary      Create a match fixture
// @Tags         fixtures
// @Produce      json
// @Param        request   body      request.CreateFixtureRequest true "request body"
// @Success      201      {object}   domain.MatchFixture
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /fixtures [post]
func (h *FixtureHandler) HandleCreateFixture(ctx *gin.Context) {
	if !requireAdmin(ctx, h.accounts) {
		return
	}

	var req request.CreateFixtureRequest
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

	fixture := domain.MatchFixture{
		SeasonID: req.SeasonID,
		Date:     date,
		Sitting:  req.SittingPlayerID,
	}
	for i, id := range req.PlayerIDs {
		if i >= len(fixture.Players) {
			break
		}
		fixture.Players[i] = id
	}

	created, err := h.svc.CreateFixture(ctx.Request.Context(), fixture)
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateFixture -> h.svc.CreateFixture -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleCreateRubber godoc
// @Summary      Add a rubber to a fixture
// @Tags         fixtures
// @Produce      json
// @Param        id        path      int  true "fixture ID"
// @Param        request   body      request.CreateRubberRequest true "request body"
// @Success      201      {object}   domain.LeagueRubber
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /fixtures/{id}/rubbers [post]
func (h *FixtureHandler) HandleCreateRubber(ctx *gin.Context) {
	if !requireAdmin(ctx, h.accounts) {
		return
	}

	fixtureID, err := pathID(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.CreateRubberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	rubber, err := h.svc.CreateRubber(ctx.Request.Context(), domain.LeagueRubber{
		FixtureID:    fixtureID,
		RubberNumber: req.RubberNumber,
		HomePlayerID: req.HomePlayerID,
		AwayPlayerID: req.AwayPlayerID,
	})
	if err != nil {
		if errors.Is(err, service.ErrFixtureNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrFixtureNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleCreateRubber -> h.svc.CreateRubber -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, rubber)
}

// HandleRecordRubberResult godoc
// @Summary      Record a rubber score
// @Description  The two game totals must sum to 12.
// @Tags         fixtures
// @Produce      json
// @Param        id        path      int  true "rubber ID"
// @Param        request   body      request.RubberResultRequest true "request body"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /rubbers/{id}/result [post]
func (h *FixtureHandler) HandleRecordRubberResult(ctx *gin.Context) {
	rubberID, err := pathID(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.RubberResultRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.RecordRubberResult(ctx.Request.Context(), rubberID, req.HomeGames, req.AwayGames); err != nil {
		if errors.Is(err, service.ErrBadGameTotal) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrBadGameTotal))

			return
		}
		if errors.Is(err, service.ErrRubberNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrRubberNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleRecordRubberResult -> h.svc.RecordRubberResult -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleSubmitAvailability godoc
// @Summary      Submit availability for a match date
// @Tags         fixtures
// @Produce      json
// @Param        request   body      request.AvailabilityRequest true "request body"
// @Success      201      {object}   domain.AvailabilityEntry
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /availability [post]
func (h *FixtureHandler) HandleSubmitAvailability(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrWrongCredentials(errMissingToken))

		return
	}

	var req request.AvailabilityRequest
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

	entry, err := h.svc.SubmitAvailability(ctx.Request.Context(), domain.AvailabilityEntry{
		AccountID: userID,
		Date:      date,
		Available: req.Available,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleSubmitAvailability -> h.svc.SubmitAvailability -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, entry)
}

// HandleSubmitChallenge godoc
// @Summary      Challenge a recorded score
// @Tags         fixtures
// @Produce      json
// @Param        request   body      request.ChallengeRequest true "request body"
// @Success      201      {object}   domain.ScoreChallenge
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /challenges [post]
func (h *FixtureHandler) HandleSubmitChallenge(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrWrongCredentials(errMissingToken))

		return
	}

	var req request.ChallengeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	challenge, err := h.svc.SubmitChallenge(ctx.Request.Context(), domain.ScoreChallenge{
		FixtureID:    req.FixtureID,
		ChallengerID: userID,
		Reason:       req.Reason,
	})
	if err != nil {
		if errors.Is(err, service.ErrFixtureNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrFixtureNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleSubmitChallenge -> h.svc.SubmitChallenge -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, challenge)
}

// HandleResolveChallenge godoc
// @Summary      Resolve a score challenge
// @Tags         fixtures
// @Produce      json
// @Param        id        path      int  true "challenge ID"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /challenges/{id}/resolve [post]
func (h *FixtureHandler) HandleResolveChallenge(ctx *gin.Context) {
	if !requireAdmin(ctx, h.accounts) {
		return
	}

	challengeID, err := pathID(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	userID, _ := currentUserID(ctx)

	if err := h.svc.ResolveChallenge(ctx.Request.Context(), challengeID, userID); err != nil {
		if errors.Is(err, service.ErrChallengeNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrChallengeNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleResolveChallenge -> h.svc.ResolveChallenge -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}
