package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"benefitscout/internal/benefits/formula"
	"benefitscout/internal/eligibility"
	"benefitscout/internal/eligibility/adapters"
	eligibilityHandler "benefitscout/internal/eligibility/handler"
	eligibilityMetrics "benefitscout/internal/eligibility/metrics"
	eligibilityService "benefitscout/internal/eligibility/service"
	jwttoken "benefitscout/internal/jwt_token"
	"benefitscout/internal/platform/config"
	"benefitscout/internal/platform/httpserver"
	"benefitscout/internal/platform/logger"
	"benefitscout/internal/platform/metrics"
	"benefitscout/internal/platform/postgres"
	redisclient "benefitscout/internal/platform/redis"
	profileHandler "benefitscout/internal/profile/handler"
	profileService "benefitscout/internal/profile/service"
	profileStore "benefitscout/internal/profile/store"
	ratelimitMetrics "benefitscout/internal/ratelimit/metrics"
	ratelimitmw "benefitscout/internal/ratelimit/middleware"
	"benefitscout/internal/ratelimit/service/requestlimit"
	"benefitscout/internal/ratelimit/store/bucket"
	httptransport "benefitscout/internal/transport/http"
	audit "benefitscout/pkg/platform/audit"
	"benefitscout/pkg/platform/audit/publishers/compliance"
	auditkafka "benefitscout/pkg/platform/audit/store/kafka"
	auditmemory "benefitscout/pkg/platform/audit/store/memory"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("benefitscout stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	if cfg.UsesDevSigningKey() {
		log.Warn("JWT_SIGNING_KEY not set, using development key")
	}

	params := formula.Default2024()
	if cfg.BenefitYearFile != "" {
		loaded, err := formula.LoadFile(cfg.BenefitYearFile)
		if err != nil {
			return fmt.Errorf("load benefit year: %w", err)
		}
		params = loaded
	}
	evaluator, err := eligibility.NewEvaluator(params)
	if err != nil {
		return fmt.Errorf("build evaluator: %w", err)
	}

	health := httptransport.NewHealth(3 * time.Second)
	var closers []func() error
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				log.Warn("failed to close resource", "error", err)
			}
		}
	}()

	// Audit sink
	var auditStore audit.Store = auditmemory.NewInMemoryStore(auditmemory.WithCapacity(cfg.Kafka.MemoryCapacity))
	if cfg.Kafka.Brokers != "" {
		ks, err := auditkafka.New(cfg.Kafka.Brokers, cfg.Kafka.AuditTopic)
		if err != nil {
			return fmt.Errorf("kafka audit store: %w", err)
		}
		closers = append(closers, ks.Close)
		health.Add("kafka", ks.Health)
		auditStore = ks
		log.Info("audit events published to kafka", "topic", cfg.Kafka.AuditTopic)
	}
	auditPublisher := compliance.New(auditStore,
		compliance.WithLogger(log),
		compliance.WithMetrics(compliance.NewMetrics()))

	// Household profiles
	var profiles profileService.Store = profileStore.NewInMemory()
	db, err := postgres.Open(ctx, cfg.Postgres)
	if err != nil {
		return err
	}
	if db != nil {
		closers = append(closers, db.Close)
		health.Add("postgres", db.PingContext)
		profiles = profileStore.NewPostgres(db)
		log.Info("household profiles stored in postgres")
	}
	profileSvc := profileService.New(profiles,
		profileService.WithLogger(log),
		profileService.WithAuditPublisher(auditPublisher))

	eligibilitySvc := eligibilityService.New(evaluator, adapters.NewProfileAdapter(profileSvc),
		eligibilityService.WithLogger(log),
		eligibilityService.WithAuditor(auditPublisher),
		eligibilityService.WithMetrics(eligibilityMetrics.New()))

	// Rate limiting
	var buckets requestlimit.BucketStore = bucket.NewInMemoryBucketStore()
	rc, err := redisclient.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if rc != nil {
		closers = append(closers, rc.Close)
		health.Add("redis", rc.Health)
		buckets = bucket.NewRedisStore(rc.Client)
		log.Info("rate limit counters stored in redis")
	}
	limiter, err := requestlimit.New(buckets,
		requestlimit.WithLogger(log),
		requestlimit.WithAuditPublisher(auditPublisher),
		requestlimit.WithLimits(requestlimit.DefaultLimits(cfg.RateLimit.RequestsPerMinute)),
		requestlimit.WithMetrics(ratelimitMetrics.New()))
	if err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	eligibilityHTTP := eligibilityHandler.New(eligibilitySvc, log)
	router := httptransport.NewRouter(httptransport.Config{
		Logger:         log,
		Tokens:         jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience),
		RateLimiter:    ratelimitmw.New(limiter, log, ratelimitmw.WithDisabled(cfg.RateLimit.Disabled)),
		Metrics:        metrics.NewHTTP(),
		MetricsHandler: metrics.Handler(),
		Health:         health,
		RequestTimeout: cfg.RequestTimeout,
		TrustedProxies: cfg.TrustedProxies,
		Protected:      []httptransport.Registrar{profileHandler.New(profileSvc, log), eligibilityHTTP},
		Public:         []httptransport.PublicRegistrar{eligibilityHTTP},
	})
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting benefitscout", "addr", cfg.Addr, "benefit_year", evaluator.BenefitYear())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})
	return g.Wait()
}
