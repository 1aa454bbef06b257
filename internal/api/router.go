package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nekogravitycat/focus-planner-backend/internal/auth"
	"github.com/nekogravitycat/focus-planner-backend/internal/pkg/logger"
	"github.com/nekogravitycat/focus-planner-backend/internal/project"
	projectHttp "github.com/nekogravitycat/focus-planner-backend/internal/project/http"
	"github.com/nekogravitycat/focus-planner-backend/internal/session"
	sessionHttp "github.com/nekogravitycat/focus-planner-backend/internal/session/http"
	"github.com/nekogravitycat/focus-planner-backend/internal/timeline"
	timelineHttp "github.com/nekogravitycat/focus-planner-backend/internal/timeline/http"
	"github.com/nekogravitycat/focus-planner-backend/internal/user"
	userHttp "github.com/nekogravitycat/focus-planner-backend/internal/user/http"
)

// Config holds everything NewRouter needs.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	Logger       *zap.Logger

	RateLimitPerMinute int
	RateLimitBurst     int

	UserService     user.Service
	ProjectService  project.Service
	SessionService  session.Service
	TimelineDefault timeline.Config
	JWTManager      *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It assembles middleware (logging, recovery, CORS, rate limiting) and
// registers routes for every module.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	l := cfg.Logger
	if l == nil {
		l = zap.L()
	}

	r := gin.New()

	// Global Middleware:
	// - Logger: one structured line per request.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(logger.GinMiddleware(l), gin.Recovery())

	r.Use(cors.New(corsConfig(cfg.IsProduction, cfg.ProdOrigins)))
	r.Use(RateLimit(cfg.RateLimitPerMinute, cfg.RateLimitBurst))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	projectHandler := projectHttp.NewHandler(cfg.ProjectService)
	sessionHandler := sessionHttp.NewHandler(cfg.SessionService)
	timelineHandler := timelineHttp.NewHandler(cfg.SessionService, cfg.TimelineDefault)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware)
		projectHttp.RegisterRoutes(v1, projectHandler, authMiddleware)
		sessionHttp.RegisterRoutes(v1, sessionHandler, authMiddleware)
		timelineHttp.RegisterRoutes(v1, timelineHandler, authMiddleware)
	}

	return r
}

// corsConfig allows the local dev frontends outside production and the
// comma-separated PROD_ORIGINS in production.
func corsConfig(isProduction bool, prodOrigins string) cors.Config {
	config := cors.DefaultConfig()
	if isProduction {
		config.AllowOrigins = splitOrigins(prodOrigins)
		if len(config.AllowOrigins) == 0 {
			// Same-origin only.
			config.AllowOriginFunc = func(string) bool { return false }
		}
	} else {
		config.AllowOrigins = []string{
			"http://localhost:3000", // Web app
			"http://localhost:5173", // Vite dev server
			"http://localhost:8081", // Swagger
		}
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	return config
}

func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
