package api

import (
	"fmt"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/riversidetc/club-api/docs"
	v1 "github.com/riversidetc/club-api/internal/api/handler/v1"
	"github.com/riversidetc/club-api/internal/api/middleware"
	"github.com/riversidetc/club-api/internal/config"
	"github.com/riversidetc/club-api/internal/mailer"
	"github.com/riversidetc/club-api/internal/repository"
	"github.com/riversidetc/club-api/internal/repository/dao"
	"github.com/riversidetc/club-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) (*Server, error) {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	notifier := mailer.New(conf.Mailer)

	authHandler := s.initAuthHandler(db)
	accountHandler := s.initAccountHandler(db)
	mergeHandler := s.initMergeHandler(db, notifier)
	coachingHandler, err := s.initCoachingHandler(db, notifier)
	if err != nil {
		return nil, fmt.Errorf("api.NewServer -> %w", err)
	}
	seasonHandler := s.initSeasonHandler(db)
	fixtureHandler := s.initFixtureHandler(db)

	s.MountHandlers(authHandler, accountHandler, mergeHandler, coachingHandler, seasonHandler, fixtureHandler)

	return s, nil
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	accountDAO := dao.NewAccountDAO(db)
	repo := repository.NewAccountRepository(accountDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initAccountHandler(db *gorm.DB) *v1.AccountHandler {
	accountDAO := dao.NewAccountDAO(db)
	repo := repository.NewAccountRepository(accountDAO)
	svc := service.NewAccountService(repo)
	handler := v1.NewAccountHandler(svc)

	return handler
}

func (s *Server) initMergeHandler(db *gorm.DB, notifier *mailer.Mailer) *v1.MergeHandler {
	accountRepo := repository.NewAccountRepository(dao.NewAccountDAO(db))
	seasonRepo := repository.NewSeasonRepository(dao.NewSeasonDAO(db))
	mergeRepo := repository.NewMergeRepository(dao.NewMergeDAO(db))
	svc := service.NewMergeService(accountRepo, seasonRepo, mergeRepo, notifier)
	accountSvc := service.NewAccountService(repository.NewAccountRepository(dao.NewAccountDAO(db)))
	handler := v1.NewMergeHandler(svc, accountSvc)

	return handler
}

func (s *Server) initCoachingHandler(db *gorm.DB, notifier *mailer.Mailer) (*v1.CoachingHandler, error) {
	coachingRepo := repository.NewCoachingRepository(dao.NewCoachingDAO(db))
	accountRepo := repository.NewAccountRepository(dao.NewAccountDAO(db))
	svc, err := service.NewCoachingService(coachingRepo, accountRepo, notifier, s.Config.Coaching, s.Config.Stripe)
	if err != nil {
		return nil, err
	}
	accountSvc := service.NewAccountService(repository.NewAccountRepository(dao.NewAccountDAO(db)))
	handler := v1.NewCoachingHandler(svc, accountSvc)

	return handler, nil
}

func (s *Server) initSeasonHandler(db *gorm.DB) *v1.SeasonHandler {
	seasonRepo := repository.NewSeasonRepository(dao.NewSeasonDAO(db))
	accountRepo := repository.NewAccountRepository(dao.NewAccountDAO(db))
	svc := service.NewStandingsService(seasonRepo, accountRepo)
	accountSvc := service.NewAccountService(repository.NewAccountRepository(dao.NewAccountDAO(db)))
	handler := v1.NewSeasonHandler(svc, accountSvc)

	return handler
}

func (s *Server) initFixtureHandler(db *gorm.DB) *v1.FixtureHandler {
	fixtureRepo := repository.NewFixtureRepository(dao.NewFixtureDAO(db))
	svc := service.NewFixtureService(fixtureRepo)
	accountSvc := service.NewAccountService(repository.NewAccountRepository(dao.NewAccountDAO(db)))
	handler := v1.NewFixtureHandler(svc, accountSvc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	accountHandler *v1.AccountHandler,
	mergeHandler *v1.MergeHandler,
	coachingHandler *v1.CoachingHandler,
	seasonHandler *v1.SeasonHandler,
	fixtureHandler *v1.FixtureHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	protected := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		protected.GET("/accounts", accountHandler.HandleListAccounts)
		protected.GET("/accounts/:id", accountHandler.HandleGetAccount)
		protected.POST("/accounts/skeleton", accountHandler.HandleCreateSkeleton)
		protected.POST("/accounts/:id/approve", accountHandler.HandleApproveAccount)
		protected.POST("/accounts/merge", mergeHandler.HandleMergeAccounts)

		protected.POST("/coaching/sessions", coachingHandler.HandleRecordSession)
		protected.POST("/coaching/sessions/confirm", coachingHandler.HandleConfirmSessions)
		protected.POST("/coaching/attendance", coachingHandler.HandleRecordAttendance)
		protected.GET("/coaching/attendance/:id", coachingHandler.HandleListAttendance)
		protected.GET("/coaching/outstanding/:id", coachingHandler.HandleOutstanding)
		protected.POST("/coaching/payments/confirm", coachingHandler.HandleConfirmPayment)
		protected.POST("/coaching/payments/self-report", coachingHandler.HandleSelfReportPaid)
		protected.POST("/coaching/payments/top-up", coachingHandler.HandleTopUp)
		protected.POST("/coaching/coach-payments", coachingHandler.HandleRecordCoachPayment)
		protected.POST("/coaching/rates", coachingHandler.HandleSetCoachRate)
		protected.GET("/coaching/balance/:id", coachingHandler.HandleCoachBalance)
		protected.POST("/coaching/reminders/:id", coachingHandler.HandleSendReminder)

		protected.GET("/seasons", seasonHandler.HandleListSeasons)
		protected.POST("/seasons", seasonHandler.HandleCreateSeason)
		protected.GET("/seasons/current", seasonHandler.HandleCurrentSeason)
		protected.POST("/seasons/:id/participation", seasonHandler.HandleRecordParticipation)
		protected.GET("/seasons/:id/standings", seasonHandler.HandleStandings)

		protected.POST("/fixtures", fixtureHandler.HandleCreateFixture)
		protected.POST("/fixtures/:id/rubbers", fixtureHandler.HandleCreateRubber)
		protected.POST("/rubbers/:id/result", fixtureHandler.HandleRecordRubberResult)
		protected.POST("/availability", fixtureHandler.HandleSubmitAvailability)
		protected.POST("/challenges", fixtureHandler.HandleSubmitChallenge)
		protected.POST("/challenges/:id/resolve", fixtureHandler.HandleResolveChallenge)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Club API"
	docs.SwaggerInfo.Description = "Membership, coaching payments and league management for a table tennis club."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
