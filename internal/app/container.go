package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/nekogravitycat/focus-planner-backend/internal/api"
	"github.com/nekogravitycat/focus-planner-backend/internal/auth"
	"github.com/nekogravitycat/focus-planner-backend/internal/project"
	"github.com/nekogravitycat/focus-planner-backend/internal/session"
	"github.com/nekogravitycat/focus-planner-backend/internal/timeline"
	"github.com/nekogravitycat/focus-planner-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	Logger       *zap.Logger
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int

	RateLimitPerMinute int
	RateLimitBurst     int

	Timeline        timeline.Config
	SlotScanMaxDays int
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router         *gin.Engine
	JWTManager     *auth.JWTManager
	SessionService session.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Project Module
	projectRepo := project.NewPgxRepository(cfg.DBPool)
	projectService := project.NewService(projectRepo)

	// Session Module
	sessionRepo := session.NewPgxRepository(cfg.DBPool)
	sessionService := session.NewService(sessionRepo, projectService, session.Options{
		MaxScanDays: cfg.SlotScanMaxDays,
	})

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:       cfg.IsProduction,
		ProdOrigins:        cfg.ProdOrigins,
		Logger:             cfg.Logger,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		RateLimitBurst:     cfg.RateLimitBurst,
		UserService:        userService,
		ProjectService:     projectService,
		SessionService:     sessionService,
		TimelineDefault:    cfg.Timeline,
		JWTManager:         jwtManager,
	})

	return &Container{
		Router:         router,
		JWTManager:     jwtManager,
		SessionService: sessionService,
	}
}
