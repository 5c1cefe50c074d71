package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"company-site.backend/internal/config"
	"company-site.backend/internal/domain/entities"
	"company-site.backend/internal/infrastructure/datasources/postgres"
	"company-site.backend/internal/infrastructure/jobs"
	"company-site.backend/internal/infrastructure/repositories"
	"company-site.backend/internal/infrastructure/revalidate"
	"company-site.backend/internal/infrastructure/search"
	"company-site.backend/internal/infrastructure/storage"
	"company-site.backend/internal/interfaces/http/handlers"
	"company-site.backend/internal/interfaces/http/middleware"
	"company-site.backend/internal/usecases"
	"company-site.backend/pkg/content"
	"company-site.backend/pkg/jwt"
	"company-site.backend/pkg/logger"
	"company-site.backend/pkg/redis"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const shutdownTimeout = 15 * time.Second

var (
	loadDotenv      = godotenv.Load
	loadCfg         = config.Load
	initLog         = logger.Init
	initRedis       = redis.Init
	openDB          = postgres.NewConnection
	migrateDB       = postgres.Migrate
	newSessionStore = redis.NewSessionStore
	newUploader     = storage.New
	newSearchIndex  = connectSearchIndex
	runServer       = func(srv *http.Server) error { return srv.ListenAndServe() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

// app holds the wired usecases the handlers and background jobs share.
type app struct {
	jwt          *jwt.JWTService
	sessions     *redis.SessionStore
	auth         *usecases.AuthUsecase
	posts        *usecases.BlogPostUsecase
	jobs         *usecases.ResourceUsecase[*entities.Job]
	ventures     *usecases.ResourceUsecase[*entities.Venture]
	team         *usecases.ResourceUsecase[*entities.TeamMember]
	messages     *usecases.ResourceUsecase[*entities.Message]
	media        *usecases.ResourceUsecase[*entities.MediaAsset]
	applications *usecases.ApplicationUsecase
	uploads      *usecases.UploadUsecase
	analytics    *usecases.AnalyticsUsecase
	search       *usecases.SearchUsecase
	revalidation *usecases.RevalidationUsecase
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(ctx, "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	defer redis.Close()
	logger.Info(ctx, "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if cfg.Server.AutoMigrate {
		if err := migrateDB(db); err != nil {
			return err
		}
		logger.Info(ctx, "Database schema migrated")
	}

	files, err := newUploader(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	a, err := buildApp(ctx, cfg, db, files)
	if err != nil {
		return err
	}

	publishJob := jobs.NewScheduledPublishJob(a.posts, cfg.Scheduler.PublishInterval)
	go publishJob.Start(ctx)
	analyticsJob, err := jobs.NewAnalyticsRefreshJob(a.analytics, cfg.Scheduler.AnalyticsSchedule)
	if err != nil {
		publishJob.Stop()
		return fmt.Errorf("failed to schedule analytics refresh: %w", err)
	}
	analyticsJob.Start(ctx)

	registry := prometheus.NewRegistry()
	r := newRouter(cfg, a, registry)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info(ctx, "Company site backend starting",
		zap.String("port", cfg.Server.Port),
		zap.Int("routes", len(r.Routes())),
	)

	serveErr := make(chan error, 1)
	go func() { serveErr <- runServer(srv) }()

	select {
	case err = <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
	case <-ctx.Done():
		logger.Info(context.Background(), "Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		err = srv.Shutdown(shutdownCtx)
		cancel()
	}

	publishJob.Stop()
	analyticsJob.Stop()
	a.wait()

	if err != nil {
		return fmt.Errorf("failed to run server: %w", err)
	}
	return nil
}

// buildApp wires repositories into usecases.
func buildApp(ctx context.Context, cfg *config.Config, db *gorm.DB, files storage.Uploader) (*app, error) {
	sessionStore, err := newSessionStore(cfg.Security.SessionEncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session store: %w", err)
	}

	cache := redis.NewQueryCache("cache", cfg.Redis.CacheTTL)
	a := &app{
		jwt:          jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry),
		sessions:     sessionStore,
		revalidation: usecases.NewRevalidationUsecase(cfg.Revalidate.Secret, cache),
	}

	var revalidator usecases.Revalidator = usecases.RevalidatorFunc(a.revalidation.Revalidate)
	if cfg.Revalidate.URL != "" {
		revalidator = revalidate.NewHTTPRevalidator(cfg.Revalidate.URL, cfg.Revalidate.Secret, cfg.Revalidate.Timeout)
	}

	deps := usecases.ResourceDeps{
		UnitOfWork:        repositories.NewUnitOfWork(db),
		Cache:             cache,
		Sanitizer:         content.NewSanitizer(),
		Index:             newSearchIndex(ctx, cfg.Search),
		Revalidator:       revalidator,
		RevalidateTimeout: cfg.Revalidate.Timeout,
		Files:             files,
	}

	jobRepo := repositories.NewJobRepository(db)
	postRepo := repositories.NewBlogPostRepository(db)
	ventureRepo := repositories.NewVentureRepository(db)
	teamRepo := repositories.NewTeamMemberRepository(db)
	messageRepo := repositories.NewMessageRepository(db)
	mediaRepo := repositories.NewMediaAssetRepository(db)
	applicationRepo := repositories.NewJobApplicationRepository(db)

	a.auth = usecases.NewAuthUsecase(repositories.NewAdminUserRepository(db), a.jwt, sessionStore, cfg.Security.SessionExpiry)
	a.posts = usecases.NewBlogPostUsecase(postRepo, deps)
	a.jobs = usecases.NewResourceUsecase[*entities.Job](jobRepo, func() *entities.Job { return &entities.Job{} }, deps)
	a.ventures = usecases.NewResourceUsecase[*entities.Venture](ventureRepo, func() *entities.Venture { return &entities.Venture{} }, deps)
	a.team = usecases.NewResourceUsecase[*entities.TeamMember](teamRepo, func() *entities.TeamMember { return &entities.TeamMember{} }, deps)
	a.messages = usecases.NewResourceUsecase[*entities.Message](messageRepo, func() *entities.Message { return &entities.Message{} }, deps)
	a.media = usecases.NewResourceUsecase[*entities.MediaAsset](mediaRepo, func() *entities.MediaAsset { return &entities.MediaAsset{} }, deps)
	a.applications = usecases.NewApplicationUsecase(applicationRepo, jobRepo, deps)
	a.uploads = usecases.NewUploadUsecase(files, a.media, cfg.Storage.MaxUploadBytes)
	a.analytics = usecases.NewAnalyticsUsecase(map[entities.Kind]usecases.StatusCounter{
		entities.KindBlogPost:    postRepo,
		entities.KindJob:         jobRepo,
		entities.KindVenture:     ventureRepo,
		entities.KindTeamMember:  teamRepo,
		entities.KindMessage:     messageRepo,
		entities.KindMedia:       mediaRepo,
		entities.KindApplication: applicationRepo,
	}, cfg.Redis.CacheTTL)
	a.search = usecases.NewSearchUsecase(deps.Index, map[entities.Kind]usecases.SearchFallback{
		entities.KindBlogPost:   usecases.ListFallback(a.posts.ResourceUsecase),
		entities.KindJob:        usecases.ListFallback(a.jobs),
		entities.KindVenture:    usecases.ListFallback(a.ventures),
		entities.KindTeamMember: usecases.ListFallback(a.team),
	})
	return a, nil
}

// wait blocks until detached revalidations of every resource have finished.
func (a *app) wait() {
	a.posts.Wait()
	a.jobs.Wait()
	a.ventures.Wait()
	a.team.Wait()
	a.messages.Wait()
	a.media.Wait()
	a.applications.Wait()
}

func newRouter(cfg *config.Config, a *app, registry *prometheus.Registry) *gin.Engine {
	r := gin.New()
	applyMiddleware(r, cfg.Server.CORSOrigins, middleware.NewMetrics(registry))

	registerHealthRoute(r)
	registerMetricsRoute(r, registry)
	if cfg.Storage.Driver == "" || cfg.Storage.Driver == "local" {
		registerUploadsRoute(r, cfg.Storage.PublicBaseURL, cfg.Storage.LocalDir)
	}

	registerAPIRoutes(r, routeDeps{
		authHandler:       handlers.NewAuthHandler(a.auth, cfg.Server.Env == "production"),
		adminHandler:      handlers.NewAdminHandler(a.uploads, a.analytics),
		contentHandler:    handlers.NewContentHandler(a.applications, a.messages, a.uploads, a.search),
		revalidateHandler: handlers.NewRevalidateHandler(a.revalidation),
		resources: []resourceRoute{
			{kind: entities.KindBlogPost, handler: handlers.NewResourceHandler(a.posts.ResourceUsecase), creatable: true, public: true},
			{kind: entities.KindJob, handler: handlers.NewResourceHandler(a.jobs), creatable: true, public: true},
			{kind: entities.KindVenture, handler: handlers.NewResourceHandler(a.ventures), creatable: true, public: true},
			{kind: entities.KindTeamMember, handler: handlers.NewResourceHandler(a.team), creatable: true, public: true},
			{kind: entities.KindMessage, handler: handlers.NewResourceHandler(a.messages)},
			{kind: entities.KindMedia, handler: handlers.NewResourceHandler(a.media)},
			{kind: entities.KindApplication, handler: handlers.NewResourceHandler(a.applications.ResourceUsecase)},
		},
		authMiddleware: middleware.AuthMiddleware(a.jwt, a.sessions),
		idempotency:    middleware.IdempotencyMiddleware(),
	})
	return r
}

// connectSearchIndex returns the Elasticsearch index, or a no-op index when
// none is configured or the cluster cannot be reached.
func connectSearchIndex(ctx context.Context, cfg config.SearchConfig) usecases.SearchIndex {
	if len(cfg.ElasticsearchURLs) == 0 {
		return search.NoopIndex{}
	}
	index, err := search.NewElasticsearchIndex(search.Config{
		Addresses: cfg.ElasticsearchURLs,
		Username:  cfg.Username,
		Password:  cfg.Password,
		Index:     cfg.Index,
	})
	if err == nil {
		err = index.EnsureIndex(ctx)
	}
	if err != nil {
		logger.Warn(ctx, "Search index unavailable, falling back to database search", zap.Error(err))
		return search.NoopIndex{}
	}
	return index
}
