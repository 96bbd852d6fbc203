package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"mindclass_backend/internal/config"
	"mindclass_backend/internal/controller"
	"mindclass_backend/internal/generation"
	"mindclass_backend/internal/repository"
	"mindclass_backend/internal/repository/memstore"
	"mindclass_backend/internal/service"
	"mindclass_backend/internal/util"
	"mindclass_backend/pkg/configwatcher"
	"mindclass_backend/pkg/database"
	"mindclass_backend/pkg/logger"
	"mindclass_backend/pkg/monitoring"
	"mindclass_backend/pkg/security"
	"mindclass_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	Stores          repository.Stores
	services        *services
	limiter         *security.RateLimiter
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type services struct {
	generator     *generation.Instrumented
	storage       *service.StorageService
	auth          *service.AuthService
	user          *service.UserService
	tests         *service.TestService
	sessions      *service.SessionService
	classrooms    *service.ClassroomService
	friendship    *service.FriendshipService
	library       *service.LibraryService
	assignments   *service.AssignmentService
	paths         *service.LearningPathService
	content       *service.ContentService
	analytics     *service.AnalyticsService
	dashboard     *service.DashboardService
	notifications *service.NotificationService
}

type controllers struct {
	auth         *controller.AuthController
	user         *controller.UserController
	test         *controller.TestController
	attempt      *controller.AttemptController
	classroom    *controller.ClassroomController
	social       *controller.SocialController
	library      *controller.LibraryController
	assignment   *controller.AssignmentController
	learningPath *controller.LearningPathController
	content      *controller.ContentController
	analytics    *controller.AnalyticsController
	dashboard    *controller.DashboardController
	health       *controller.HealthController
	notification *controller.NotificationController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// initStores opens the configured backend. The memory driver needs no
// database or Redis.
func (a *App) initStores(cfg *config.Config) error {
	if cfg.Database.Driver == "" || cfg.Database.Driver == "memory" {
		a.Stores = memstore.New()
		logger.Log.Info("Using in-memory store")
		return nil
	}

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode == gin.DebugMode)
	if err != nil {
		return err
	}
	a.DB = db

	if cfg.Redis.Enabled {
		rdb, err := database.InitRedis(&cfg.Redis)
		if err != nil {
			return err
		}
		a.Redis = rdb
	}
	a.Stores = repository.NewGormStores(a.DB, a.Redis)
	return nil
}

func newGenerator(cfg *config.Config) (generation.Generator, error) {
	switch cfg.AI.Provider {
	case "gemini":
		g, err := generation.NewGeminiGenerator(context.Background(), cfg.AI.APIKey, cfg.AI.Model)
		if err != nil {
			return nil, errors.Wrap(err, "create gemini client")
		}
		g.SetVideoModel(cfg.AI.VideoModel)
		return g, nil
	case "", "static":
		return generation.NewStaticGenerator(), nil
	}
	return nil, errors.Errorf("unknown ai provider %q", cfg.AI.Provider)
}

func (a *App) initServices(cfg *config.Config) (*services, error) {
	gen, err := newGenerator(cfg)
	if err != nil {
		return nil, err
	}

	s := &services{}
	st := a.Stores
	s.generator = generation.Instrument(gen, cfg.AI.Timeout()).WithVideoTimeout(cfg.AI.VideoTimeout())
	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(st.Users, cfg)
	s.user = service.NewUserService(st.Users)
	s.notifications = service.NewNotificationService(st.Notifications)
	s.tests = service.NewTestService(st.Tests, s.generator, s.storage)
	s.tests.Notifier = s.notifications
	s.sessions = service.NewSessionService(st.Tests, st.Results, cfg.Session.TickInterval())
	s.sessions.Notifier = s.notifications
	s.classrooms = service.NewClassroomService(st.Classrooms)
	s.classrooms.Notifier = s.notifications
	s.friendship = service.NewFriendshipService(st.Requests, st.Users)
	s.friendship.Notifier = s.notifications
	s.library = service.NewLibraryService(st.Library)
	s.library.Notifier = s.notifications
	s.assignments = service.NewAssignmentService(st.Assignments, s.classrooms, s.tests)
	s.paths = service.NewLearningPathService(st.Paths, s.generator)
	s.content = service.NewContentService(s.generator, s.library, s.storage)
	s.analytics = service.NewAnalyticsService(st.Tests, st.Results, st.Users)
	s.dashboard = service.NewDashboardService(st.Tests, st.Results, s.classrooms, s.assignments, st.Paths)

	if cfg.Seed.Demo {
		if err := s.tests.SeedDemo(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		user:         controller.NewUserController(s.user),
		test:         controller.NewTestController(s.tests),
		attempt:      controller.NewAttemptController(s.sessions),
		classroom:    controller.NewClassroomController(s.classrooms, s.assignments),
		social:       controller.NewSocialController(s.friendship),
		library:      controller.NewLibraryController(s.library),
		notification: controller.NewNotificationController(s.notifications),
		assignment:   controller.NewAssignmentController(s.assignments),
		learningPath: controller.NewLearningPathController(s.paths),
		content:      controller.NewContentController(s.content),
		analytics:    controller.NewAnalyticsController(s.analytics),
		dashboard:    controller.NewDashboardController(s.dashboard, s.auth),
		health:       controller.NewHealthController(a.DB, a.Redis),
	}
}

func rateWindow(cfg *config.Config) time.Duration {
	if cfg.RateLimit.WindowMinutes <= 0 {
		return time.Minute
	}
	return time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	a.limiter = security.NewRateLimiter(cfg.RateLimit.MaxRequests, rateWindow(cfg))
	router.Use(a.limiter.Middleware())

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// applyConfig hot-swaps the settings that are safe to change at runtime.
func (a *App) applyConfig(cfg *config.Config) {
	a.limiter.Update(cfg.RateLimit.MaxRequests, rateWindow(cfg))
	if cfg.AI.Model != "" && cfg.AI.Model != a.Config.AI.Model {
		a.services.generator.SetModel(cfg.AI.Model)
		a.services.generator.SetVideoModel(cfg.AI.VideoModel)
		logger.Log.Info("AI model switched", zap.String("model", cfg.AI.Model))
	}
	a.Config.RateLimit = cfg.RateLimit
	a.Config.AI.Model = cfg.AI.Model
}

func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	app := &App{Config: cfg}
	if err := app.initStores(cfg); err != nil {
		return nil, err
	}

	services, err := app.initServices(cfg)
	if err != nil {
		return nil, err
	}
	app.services = services
	controllers := app.initControllers(services)

	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("mindclass", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			return nil, errors.Wrap(err, "init tracing")
		}
		app.tracer = tp
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	app.Router = router
	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.RegisterConfigCallback(app.applyConfig)
	return app, nil
}

// watchConfig feeds reloaded configs to every registered callback.
func (a *App) watchConfig(ctx context.Context, configDir string) {
	file := filepath.Join(configDir, "config.yaml")
	if _, err := os.Stat(file); err != nil {
		return
	}
	go func() {
		err := configwatcher.WatchConfig(ctx, file, func(cfg *config.Config) {
			for _, cb := range a.configCallbacks {
				cb(cfg)
			}
		})
		if err != nil {
			logger.Log.Warn("Config watcher stopped", zap.Error(err))
		}
	}()
}

// Close releases background resources: countdown timers, the rate limiter
// sweeper and the tracer.
func (a *App) Close() {
	a.services.sessions.Shutdown()
	a.limiter.Stop()
	if a.tracer != nil {
		if err := a.tracer.Shutdown(context.Background()); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
}

func (a *App) Run(configDir string) {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	a.watchConfig(ctx, configDir)

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}
	a.Close()

	logger.Log.Info("Server exiting")
}
