package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	rd "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"dealboard/internal/cart"
	"dealboard/internal/config"
	cronrunner "dealboard/internal/cron"
	"dealboard/internal/db"
	"dealboard/internal/handler"
	"dealboard/internal/logger"
	"dealboard/internal/middleware"
	"dealboard/internal/models"
	"dealboard/internal/repository"
	gormrepository "dealboard/internal/repository/gorm"
	"dealboard/internal/service"
	"dealboard/internal/submission"

	_ "dealboard/docs"
)

func main() {
	cfgPath := os.Getenv("DEALBOARD_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if raw := os.Getenv("DEALBOARD_ENV_ONLY"); raw != "" {
		envOnly = strings.EqualFold(raw, "true") || raw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	if err := db.AutoMigrate(dbConn); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	var redisClient *rd.Client
	if cfg.Redis.Addr != "" {
		redisClient = rd.NewClient(&rd.Options{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		defer redisClient.Close()
	}

	var cartStore cart.Store
	if redisClient != nil {
		cartStore = cart.NewRedisStore(redisClient, cfg.Cart.TTL)
	} else {
		logger.Warn("redis not configured, carts are in-memory only")
		cartStore = cart.NewMemoryStore()
	}

	store := gormrepository.New(dbConn.Gorm)
	if err := seedCategories(context.Background(), store); err != nil {
		logger.Warn("category seed failed", zap.Error(err))
	}
	querySvc := &service.DealQueryService{Repo: store}
	submitSvc := &service.DealSubmitService{
		Repo:      store,
		Validator: submission.New(),
		Logger:    logger,
	}
	voteSvc := &service.VoteService{Repo: store}
	commentSvc := &service.CommentService{Repo: store}
	rescoreSvc := &service.RescoreService{Repo: store, Logger: logger}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	var write []gin.HandlerFunc
	if cfg.RateLimit.Enabled && redisClient != nil {
		write = append(write, middleware.RedisRateLimit(redisClient, cfg.RateLimit.Limit, cfg.RateLimit.Window))
	}

	healthHandler := &handler.HealthHandler{DB: dbConn.Gorm}
	healthHandler.Register(engine)
	dealHandler := &handler.DealHandler{
		Query:           querySvc,
		Submit:          submitSvc,
		Vote:            voteSvc,
		Logger:          logger,
		DefaultPageSize: cfg.Deals.DefaultPageSize,
		MaxPageSize:     cfg.Deals.MaxPageSize,
	}
	dealHandler.Register(engine, write...)
	commentHandler := &handler.CommentHandler{Service: commentSvc, Logger: logger}
	commentHandler.Register(engine, write...)
	cartHandler := &handler.CartHandler{Ledger: cart.NewLedger(cartStore), Logger: logger}
	cartHandler.Register(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cronRunner := cronrunner.New(logger, ctx)
	if cfg.Cron.Enabled {
		_, err = cronRunner.Add(cfg.Cron.Rescore, func(ctx context.Context) {
			updated, err := rescoreSvc.RescoreAll(ctx)
			if err != nil {
				logger.Warn("cron rescore failed", zap.Error(err))
				return
			}
			if updated > 0 {
				logger.Info("cron rescore ok", zap.Int("updated", updated))
			}
		})
		if err != nil {
			logger.Warn("cron register rescore failed", zap.Error(err))
		}
		cronRunner.Start()
		defer cronRunner.Stop()
	}

	errCh := make(chan error, 1)

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

// seedCategories makes sure the stock category set exists so submissions can
// resolve their category on a fresh database.
func seedCategories(ctx context.Context, repo repository.DealRepository) error {
	seeds := []models.Category{
		{Slug: "gaming", Name: "Gaming"},
		{Slug: "computers", Name: "Computers"},
		{Slug: "networking", Name: "Networking"},
		{Slug: "accessories", Name: "Accessories"},
	}
	for i := range seeds {
		seeds[i].ID = uuid.New().String()
		if err := repo.EnsureCategory(ctx, &seeds[i]); err != nil {
			return err
		}
	}
	return nil
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization,X-Cart-Session")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
