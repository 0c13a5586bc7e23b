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

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dev-mohitbeniwal/offerwall/approval/cache"
	"github.com/dev-mohitbeniwal/offerwall/approval/dao"
	"github.com/dev-mohitbeniwal/offerwall/approval/poller"
	"github.com/dev-mohitbeniwal/offerwall/approval/source"
	"github.com/dev-mohitbeniwal/offerwall/audit"
	"github.com/dev-mohitbeniwal/offerwall/config"
	"github.com/dev-mohitbeniwal/offerwall/controller"
	"github.com/dev-mohitbeniwal/offerwall/db"
	ow_errors "github.com/dev-mohitbeniwal/offerwall/errors"
	logger "github.com/dev-mohitbeniwal/offerwall/logging"
	"github.com/dev-mohitbeniwal/offerwall/router"
	"github.com/dev-mohitbeniwal/offerwall/service"
	"github.com/dev-mohitbeniwal/offerwall/util"
)

func main() {
	if err := config.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}
	cfg := config.GetConfig()

	if err := logger.InitLogger(cfg.Log.Dir); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := db.InitRedis(); err != nil {
		logger.Warn("Redis unavailable, rate limiting disabled until it recovers", zap.Error(err))
	}
	defer db.CloseRedis()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	eventBus := util.NewEventBus()
	eventBus.Start(ctx)

	validationUtil := util.NewValidationUtil()
	notificationService := util.NewNotificationService()

	fetcher, err := newPlacementFetcher(cfg, validationUtil)
	if err != nil {
		logger.Fatal("Failed to initialize status source", zap.Error(err))
	}
	defer db.CloseNeo4j()

	var auditService audit.Service
	if cfg.Audit.Enabled {
		auditRepository, err := audit.NewElasticsearchRepository(cfg.Elasticsearch.URL, cfg.Elasticsearch.Index)
		if err != nil {
			logger.Fatal("Failed to initialize audit repository", zap.Error(err))
		}
		auditService = audit.NewService(auditRepository)
		audit.Subscribe(eventBus, auditService)
	}

	services := service.InitializeServices(
		fetcher,
		sessionKeyfunc(cfg.Session),
		validationUtil,
		notificationService,
		eventBus,
		cache.WithTTL(cfg.Approval.TTL),
	)
	controllers := controller.InitializeControllers(services, auditService)

	gin.SetMode(gin.ReleaseMode)
	engine := router.SetupRouter(controllers, cfg.RateLimit.Requests, cfg.RateLimit.Duration)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: engine,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return poller.New(cfg.Approval.PollInterval, func(ctx context.Context) {
			services.Approval.Refetch(ctx)
		}).Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server exited with error", zap.Error(err))
	}
	eventBus.Wait()
	logger.Info("Server exiting")
}

// sessionKeyfunc prefers the JWKS key set when both verification modes are configured.
func sessionKeyfunc(cfg config.SessionConfiguration) jwt.Keyfunc {
	if cfg.JWKSURL != "" {
		return service.NewJWKSKeySet(cfg.JWKSURL, cfg.JWKSTimeout).Keyfunc
	}
	return service.HMACKeyfunc([]byte(cfg.SigningSecret))
}

func newPlacementFetcher(cfg *config.Configuration, validationUtil *util.ValidationUtil) (service.PlacementFetcher, error) {
	switch cfg.Source.Kind {
	case "http":
		return source.NewHTTPSource(cfg.Source.BaseURL, cfg.Source.Timeout, validationUtil), nil
	case "neo4j":
		if err := db.InitNeo4j(); err != nil {
			return nil, err
		}
		return dao.NewPlacementRetrievalDAO(db.Neo4jDriver), nil
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ow_errors.ErrSourceMisconfigured, cfg.Source.Kind)
	}
}
