package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pygely_backend/internal/config"
	"pygely_backend/internal/controller"
	"pygely_backend/internal/game"
	"pygely_backend/internal/repository"
	"pygely_backend/internal/service"
	"pygely_backend/pkg/cache"
	"pygely_backend/pkg/configwatcher"
	"pygely_backend/pkg/database"
	"pygely_backend/pkg/events"
	"pygely_backend/pkg/logger"
	"pygely_backend/pkg/monitoring"
	"pygely_backend/pkg/security"
	"pygely_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config  *config.Config
	Router  *gin.Engine
	DB      *gorm.DB
	Redis   *redis.Client
	Events  events.Publisher
	limiter *security.Limiter
	tracer  *sdktrace.TracerProvider

	configCallbacks []configwatcher.Reloader
}

// Options carries pre-built infrastructure. Nil fields are opened from the config.
type Options struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Events events.Publisher
}

type repositories struct {
	user      *repository.UserRepository
	world     *repository.WorldRepository
	challenge *repository.ChallengeRepository
	attempt   *repository.AttemptRepository
	progress  *repository.ProgressRepository
	reward    *repository.RewardRepository
	hint      *repository.HintRepository
	practice  *repository.PracticeRepository
	stats     *repository.StatsRepository
}

type services struct {
	auth         *service.AuthService
	storage      *service.StorageService
	world        *service.WorldService
	gamification *service.GamificationService
	progression  *service.ProgressionService
	hint         *service.HintService
	stats        *service.StatsService
	report       *service.ReportService
	practice     *service.PracticeService
}

type controllers struct {
	auth         *controller.AuthController
	world        *controller.WorldController
	progress     *controller.ProgressController
	attempt      *controller.AttemptController
	gamification *controller.GamificationController
	hint         *controller.HintController
	stats        *controller.StatsController
	practice     *controller.PracticeController
	health       *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback configwatcher.Reloader) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) (*repositories, error) {
	challenges, err := repository.NewChallengeRepository(db, a.Config.Game.CatalogCacheSize)
	if err != nil {
		return nil, err
	}
	return &repositories{
		user:      repository.NewUserRepository(db),
		world:     repository.NewWorldRepository(db),
		challenge: challenges,
		attempt:   repository.NewAttemptRepository(db),
		progress:  repository.NewProgressRepository(db),
		reward:    repository.NewRewardRepository(db),
		hint:      repository.NewHintRepository(db),
		practice:  repository.NewPracticeRepository(db),
		stats:     repository.NewStatsRepository(db),
	}, nil
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.storage = service.NewStorageService(&cfg.Storage)
	s.auth = service.NewAuthService(repos.user, &cfg.JWT)
	s.world = service.NewWorldService(repos.world, repos.challenge, repos.progress)
	s.gamification = service.NewGamificationService(
		repos.reward,
		cache.NewHelper(a.Redis, "pygely:"),
		cfg.Game.GamificationCacheTTL(),
	)
	s.progression = service.NewProgressionService(
		a.DB,
		repos.challenge,
		repos.attempt,
		repos.progress,
		repos.reward,
		game.NewEvaluator(logger.Log),
		s.gamification,
		a.Events,
	)
	s.hint = service.NewHintService(repos.attempt, repos.challenge, repos.hint)
	s.stats = service.NewStatsService(repos.stats)
	s.report = service.NewReportService(s.stats, s.storage)
	s.practice = service.NewPracticeService(repos.practice)

	return s
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		world:        controller.NewWorldController(s.world),
		progress:     controller.NewProgressController(s.world),
		attempt:      controller.NewAttemptController(s.progression),
		gamification: controller.NewGamificationController(s.gamification),
		hint:         controller.NewHintController(s.hint),
		stats:        controller.NewStatsController(s.stats, s.report),
		practice:     controller.NewPracticeController(s.practice),
		health:       controller.NewHealthController(a.DB),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(a.limiter.Middleware())

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware("/metrics", "/api/health"))
	}

	router.Use(monitoring.MetricsMiddleware())
}

// NewApp opens every backing service named in cfg and wires the HTTP stack.
func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Warn("Redis unavailable, continuing without cache", zap.Error(err))
			rdb = nil
		}
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.Events.Enabled {
		amqpPub, err := events.NewAMQPPublisher(cfg.Events.AMQPURL, cfg.Events.Queue)
		if err != nil {
			logger.Log.Warn("Event broker unavailable, events disabled", zap.Error(err))
		} else {
			publisher = amqpPub
		}
	}

	return New(cfg, Options{DB: db, Redis: rdb, Events: publisher})
}

// New wires the application around already opened infrastructure.
func New(cfg *config.Config, opts Options) (*App, error) {
	if opts.DB == nil {
		return nil, errors.New("app: database is required")
	}
	if opts.Events == nil {
		opts.Events = events.NopPublisher{}
	}

	app := &App{
		Config:  cfg,
		DB:      opts.DB,
		Redis:   opts.Redis,
		Events:  opts.Events,
		limiter: security.NewLimiter(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window()),
	}

	if cfg.ForceMigrate || cfg.Server.Mode != gin.ReleaseMode {
		if err := database.Migrate(app.DB); err != nil {
			return nil, err
		}
	}
	if cfg.SeedCatalog {
		catalog, err := database.DefaultCatalog()
		if err != nil {
			return nil, err
		}
		if err := database.SeedCatalog(app.DB, catalog); err != nil {
			return nil, fmt.Errorf("seed catalog: %w", err)
		}
		logger.Log.Info("Catalog seeded", zap.Int("worlds", len(catalog.Worlds)))
	}

	if err := controller.RegisterValidators(); err != nil {
		return nil, err
	}

	repos, err := app.initRepositories(app.DB)
	if err != nil {
		return nil, err
	}
	controllers := app.initControllers(app.initServices(repos, cfg))

	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("pygely_backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Error("Failed to initialize tracing", zap.Error(err))
		} else {
			app.tracer = tp
		}
	}

	switch cfg.Server.Mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.Server.Mode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.RegisterConfigCallback(func(next *config.Config) {
		logger.SetLevel(next.Server.Mode)
		app.limiter.Update(next.RateLimit.MaxRequests, next.RateLimit.Window())
		logger.Log.Info("Configuration reloaded",
			zap.String("mode", next.Server.Mode),
			zap.Int("rate_limit", next.RateLimit.MaxRequests))
	})

	return app, nil
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go a.limiter.Run(ctx.Done())
	if a.Config.Path != "" {
		go func() {
			if err := configwatcher.Watch(ctx, a.Config.Path, a.configCallbacks...); err != nil {
				logger.Log.Error("Config watcher stopped", zap.Error(err))
			}
		}()
	}

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}
	a.Close(shutdownCtx)

	logger.Log.Info("Server exiting")
}

// Close releases the broker, tracer and redis connections.
func (a *App) Close(ctx context.Context) {
	if err := a.Events.Close(); err != nil {
		logger.Log.Warn("Failed to close event publisher", zap.Error(err))
	}
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
}
