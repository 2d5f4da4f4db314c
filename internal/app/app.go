package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vinayramesh7/matlab-ai-tutor/internal/config"
	"github.com/vinayramesh7/matlab-ai-tutor/internal/controller"
	"github.com/vinayramesh7/matlab-ai-tutor/internal/repository"
	"github.com/vinayramesh7/matlab-ai-tutor/internal/service"
	"github.com/vinayramesh7/matlab-ai-tutor/pkg/database"
	"github.com/vinayramesh7/matlab-ai-tutor/pkg/logger"
	"github.com/vinayramesh7/matlab-ai-tutor/pkg/monitoring"
	"github.com/vinayramesh7/matlab-ai-tutor/pkg/security"
	"github.com/vinayramesh7/matlab-ai-tutor/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services
}

// ApplyConfig hot-applies the tunable parts of a reloaded config.
// Connection settings and route wiring still need a restart.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.services.mastery.SetCurve(cfg.Mastery)
	logger.Log.Info("Config reloaded, mastery tuning applied")
}

type repositories struct {
	user      *repository.UserRepository
	course    *repository.CourseRepository
	document  *repository.DocumentRepository
	mastery   *repository.MasteryRepository
	analytics *repository.AnalyticsRepository
	chat      *repository.ChatRepository
}

type services struct {
	auth      *service.AuthService
	storage   *service.StorageService
	corpus    *service.CorpusService
	ingest    *service.IngestService
	course    *service.CourseService
	mastery   *service.MasteryService
	ai        *service.AIService
	tutor     *service.TutorService
	dashboard *service.DashboardService
}

type controllers struct {
	auth      *controller.AuthController
	course    *controller.CourseController
	document  *controller.DocumentController
	chat      *controller.ChatController
	dashboard *controller.DashboardController
	health    *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:      repository.NewUserRepository(db),
		course:    repository.NewCourseRepository(db),
		document:  repository.NewDocumentRepository(db),
		mastery:   repository.NewMasteryRepository(db),
		analytics: repository.NewAnalyticsRepository(db),
		chat:      repository.NewChatRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.corpus = service.NewCorpusService(repos.document, rdb)
	s.ingest = service.NewIngestService(repos.document, s.storage, s.corpus, cfg.Retrieval)
	s.course = service.NewCourseService(repos.course, s.corpus)
	s.mastery = service.NewMasteryService(repos.mastery, cfg.Mastery)
	s.ai = service.NewAIService(cfg.AI)
	s.tutor = service.NewTutorService(repos.chat, repos.analytics, s.corpus, s.mastery, s.ai, cfg.Retrieval)
	s.dashboard = service.NewDashboardService(s.mastery, repos.analytics, s.tutor.Engine.Classifier())

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		course:    controller.NewCourseController(s.course),
		document:  controller.NewDocumentController(s.ingest, s.course),
		chat:      controller.NewChatController(s.tutor, s.course),
		dashboard: controller.NewDashboardController(s.dashboard, s.course),
		health:    controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 600
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// Retrieval falls back to the database when Redis is down.
		logger.Log.Warn("Redis unavailable, corpus caching disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("matlab-ai-tutor", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
