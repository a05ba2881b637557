package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/studybuddy-api/api/swagger"
	"github.com/noah-isme/studybuddy-api/internal/handler"
	"github.com/noah-isme/studybuddy-api/internal/middleware"
	"github.com/noah-isme/studybuddy-api/internal/repository"
	"github.com/noah-isme/studybuddy-api/internal/service"
	"github.com/noah-isme/studybuddy-api/pkg/cache"
	"github.com/noah-isme/studybuddy-api/pkg/config"
	"github.com/noah-isme/studybuddy-api/pkg/database"
	"github.com/noah-isme/studybuddy-api/pkg/events"
	"github.com/noah-isme/studybuddy-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/studybuddy-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/studybuddy-api/pkg/middleware/requestid"
	"github.com/noah-isme/studybuddy-api/pkg/storage"
)

// @title StudyBuddy API
// @version 1.0.0
// @description Study partner matching, groups and the admin console backend.
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @securityDefinitions.apikey InternalKey
// @in header
// @name X-Internal-Key

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.Sentry.DSN,
			Environment:      cfg.Sentry.Environment,
			EnableTracing:    cfg.Sentry.TracesSampleRate > 0,
			TracesSampleRate: cfg.Sentry.TracesSampleRate,
		}); err != nil {
			logr.Warn("sentry init failed", zap.Error(err))
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	var redisClient *redis.Client
	if cfg.Analytics.Enabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, analytics cache disabled", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close() //nolint:errcheck
		}
	}

	metrics := service.NewMetricsService()
	publisher := service.NewInstrumentedPublisher(events.NewPublisher(cfg.Events, logr), metrics)
	defer publisher.Close() //nolint:errcheck

	app, err := build(cfg, db, redisClient, metrics, publisher, logr)
	if err != nil {
		logr.Fatal("failed to build application", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	usageQueue := app.aiUsage.NewIngestQueue(cfg.AIUsage.Workers, cfg.AIUsage.BufferSize, cfg.AIUsage.MaxRetries)
	usageQueue.Start(context.Background())
	go runExportCleanup(ctx, app.exports, cfg.Exports.CleanupInterval, logr)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           app.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("server shutdown error", zap.Error(err))
	}
	usageQueue.Stop(10 * time.Second)
	logr.Info("server stopped")
}

type application struct {
	router  *gin.Engine
	aiUsage *service.AIUsageService
	exports *service.ExportService
}

func build(cfg *config.Config, db *sqlx.DB, redisClient *redis.Client, metrics *service.MetricsService, publisher events.Publisher, logr *zap.Logger) (*application, error) {
	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	announcementRepo := repository.NewAnnouncementRepository(db)
	reportRepo := repository.NewReportRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	flagRepo := repository.NewFlaggedContentRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	aiUsageRepo := repository.NewAIUsageRepository(db)
	aiMemoryRepo := repository.NewAIMemoryRepository(db)
	partnerRepo := repository.NewPartnerRepository(db)
	groupRepo := repository.NewGroupRepository(db)

	var cacheRepo service.CacheRepository
	if redisClient != nil {
		cacheRepo = repository.NewCacheRepository(redisClient, "studybuddy:", logr)
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Analytics.CacheTTL, logr, cfg.Analytics.Enabled && cacheRepo != nil)

	authSvc := service.NewAuthService(userRepo, logr, service.AuthConfig{
		JWTSecret: cfg.Supabase.JWTSecret,
		Audience:  cfg.Supabase.JWTAudience,
	})
	auditSvc := service.NewAuditService(auditRepo, logr)
	announcementSvc := service.NewAnnouncementService(announcementRepo, auditSvc, publisher, validate, logr)
	reportSvc := service.NewReportService(reportRepo, feedbackRepo, auditSvc, publisher, validate, logr)
	moderationSvc := service.NewModerationService(flagRepo, service.NewContentFilter(), auditSvc, publisher, validate, logr)
	analyticsSvc := service.NewAnalyticsService(analyticsRepo, cacheSvc, metrics, logr)
	aiUsageSvc := service.NewAIUsageService(aiUsageRepo, service.DefaultPriceTable(), cacheSvc, metrics, validate, logr)
	aiMemorySvc := service.NewAIMemoryService(aiMemoryRepo, auditSvc, logr)
	partnerSvc := service.NewPartnerService(partnerRepo, logr, cfg.Partners.MaxPageSize)
	groupSvc := service.NewGroupService(groupRepo, userRepo, moderationSvc, publisher, validate, logr, service.GroupServiceConfig{
		MinMembers:        cfg.Groups.MinMembers,
		MaxMembers:        cfg.Groups.MaxMembers,
		DefaultMaxMembers: cfg.Groups.DefaultMaxMembers,
		InviteTTL:         cfg.Groups.InviteTTL,
		MaxInvitesPerCall: cfg.Groups.MaxInvitesPerCall,
	})

	exportStore, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		return nil, fmt.Errorf("init export storage: %w", err)
	}
	exportSvc := service.NewExportService(service.ExportSources{
		AuditLogs: auditRepo,
		Reports:   reportRepo,
		Feedback:  feedbackRepo,
		AIUsage:   aiUsageRepo,
	}, exportStore, storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL), auditSvc, validate, logr, service.ExportConfig{
		APIPrefix: cfg.APIPrefix,
		ResultTTL: cfg.Exports.SignedURLTTL,
	})

	checks := map[string]handler.Pinger{"database": db}
	if redisClient != nil {
		checks["redis"] = handler.PingerFunc(func(ctx context.Context) error { return redisClient.Ping(ctx).Err() })
	}

	authHandler := handler.NewAuthHandler()
	metricsHandler := handler.NewMetricsHandler(metrics, checks)
	announcementHandler := handler.NewAnnouncementHandler(announcementSvc)
	auditHandler := handler.NewAuditHandler(auditSvc)
	reportHandler := handler.NewReportHandler(reportSvc)
	moderationHandler := handler.NewModerationHandler(moderationSvc)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsSvc)
	aiHandler := handler.NewAIHandler(aiUsageSvc, aiMemorySvc)
	partnerHandler := handler.NewPartnerHandler(partnerSvc)
	groupHandler := handler.NewGroupHandler(groupSvc)
	exportHandler := handler.NewExportHandler(exportSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	prefix := "/" + strings.Trim(cfg.APIPrefix, "/")
	api := r.Group(prefix)

	api.GET("/exports/:token", exportHandler.Download)

	internal := api.Group("/internal", middleware.InternalKey(cfg.Internal.APIKey))
	internal.POST("/moderation/flags", moderationHandler.Flag)
	internal.POST("/ai/usage", aiHandler.IngestUsage)

	protected := api.Group("", middleware.Auth(authSvc, cfg.Supabase.CookieName))
	protected.GET("/me", authHandler.Me)
	protected.GET("/announcements/active", announcementHandler.Active)
	protected.POST("/announcements/:id/dismiss", announcementHandler.Dismiss)
	protected.POST("/reports", reportHandler.Submit)
	protected.POST("/feedback", reportHandler.SubmitFeedback)
	protected.GET("/partners/search", partnerHandler.Search)

	groups := protected.Group("/groups")
	groups.POST("", groupHandler.Create)
	groups.GET("", groupHandler.ListMine)
	groups.GET("/discover", groupHandler.Discover)
	groups.GET("/invites", groupHandler.ListInvites)
	groups.POST("/invites/:inviteId/respond", groupHandler.RespondInvite)
	groups.DELETE("/invites/:inviteId", groupHandler.CancelInvite)
	groups.GET("/:id", groupHandler.Get)
	groups.PATCH("/:id", groupHandler.Update)
	groups.DELETE("/:id", groupHandler.Delete)
	groups.POST("/:id/join", groupHandler.Join)
	groups.POST("/:id/leave", groupHandler.Leave)
	groups.POST("/:id/invites", groupHandler.Invite)
	groups.POST("/:id/transfer", groupHandler.TransferOwnership)
	groups.PATCH("/:id/members/:userId", groupHandler.UpdateMemberRole)
	groups.DELETE("/:id/members/:userId", groupHandler.RemoveMember)

	admin := protected.Group("/admin", middleware.RequireAdmin())
	admin.GET("/announcements", announcementHandler.List)
	admin.POST("/announcements", announcementHandler.Create)
	admin.PUT("/announcements/:id", announcementHandler.Update)
	admin.DELETE("/announcements/:id", announcementHandler.Delete)

	admin.GET("/analytics", analyticsHandler.Overview)
	admin.GET("/analytics/system", analyticsHandler.System)

	admin.GET("/reports", reportHandler.List)
	admin.GET("/reports/summary", reportHandler.Summary)
	admin.GET("/reports/:id", reportHandler.Get)
	admin.PATCH("/reports/:id", reportHandler.Review)
	admin.GET("/feedback", reportHandler.ListFeedback)
	admin.PATCH("/feedback/:id", reportHandler.RespondFeedback)

	admin.GET("/flagged", moderationHandler.List)
	admin.GET("/flagged/stats", moderationHandler.Stats)
	admin.GET("/flagged/:id", moderationHandler.Get)
	admin.POST("/flagged/:id/review", moderationHandler.Review)

	admin.GET("/audit-logs", auditHandler.List)
	admin.DELETE("/audit-logs", middleware.RequireSuperAdmin(), auditHandler.Purge)
	admin.DELETE("/audit-logs/:id", middleware.RequireSuperAdmin(), auditHandler.Delete)

	admin.GET("/ai/usage", aiHandler.ListUsage)
	admin.GET("/ai/usage/summary", aiHandler.UsageSummary)
	admin.GET("/ai/memory", aiHandler.ListMemory)
	admin.GET("/ai/memory/stats", aiHandler.MemoryStats)
	admin.DELETE("/ai/memory/users/:userId", aiHandler.ClearUserMemory)
	admin.DELETE("/ai/memory/:id", aiHandler.DeleteMemory)

	admin.POST("/exports", exportHandler.Create)

	return &application{router: r, aiUsage: aiUsageSvc, exports: exportSvc}, nil
}

func runExportCleanup(ctx context.Context, exports *service.ExportService, interval time.Duration, logr *zap.Logger) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := exports.Cleanup(); err != nil {
				logr.Warn("export cleanup failed", zap.Error(err))
			}
		}
	}
}
