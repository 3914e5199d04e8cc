package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketplace-wallet/config"
	httpHandler "marketplace-wallet/internal/adapter/http/handler"
	"marketplace-wallet/internal/adapter/http/middleware"
	"marketplace-wallet/internal/adapter/metrics"
	"marketplace-wallet/internal/adapter/notify"
	"marketplace-wallet/internal/adapter/provider"
	"marketplace-wallet/internal/adapter/queue"
	"marketplace-wallet/internal/adapter/storage/memory"
	pgStorage "marketplace-wallet/internal/adapter/storage/postgres"
	redisStorage "marketplace-wallet/internal/adapter/storage/redis"
	"marketplace-wallet/internal/core/domain"
	"marketplace-wallet/internal/core/ports"
	"marketplace-wallet/internal/service"
	"marketplace-wallet/pkg/logger"

	"github.com/rs/zerolog"
)

// repositories is the storage driver chosen at startup.
type repositories struct {
	ledger      ports.LedgerRepository
	withdrawals ports.WithdrawalRepository
	otps        ports.OtpRepository
	audit       ports.AuditRepository
	health      ports.HealthChecker
	close       func()
}

func main() {
	// Load configuration
	cfg, err := config.Load(os.Getenv("MWL_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Str("storage", cfg.Storage.Driver).
		Str("provider", cfg.Provider.Kind).
		Msg("Starting Marketplace Wallet")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Storage
	repos, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open storage")
	}
	defer repos.close()
	checkers := []ports.HealthChecker{repos.health}

	// Redis backs rate windows, webhook dedup and risk signals. Every one of
	// those degrades open, so a missing Redis is not fatal.
	var (
		limiter ports.RateLimitStore
		dedup   ports.DedupStore
		signals ports.RiskSignalStore
	)
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Error().Err(err).Msg("Redis unavailable, running without rate limits, dedup and risk signals")
	} else {
		defer rdb.Close()
		limiter = redisStorage.NewRateLimitStore(rdb)
		dedup = redisStorage.NewDedupStore(rdb)
		signals = redisStorage.NewRiskSignalStore(rdb, cfg.Risk.ObservationTTL, cfg.Risk.ConcurrentWindow)
		checkers = append(checkers, redisStorage.NewHealthCheck(rdb))
		log.Info().Msg("Redis connected")
	}

	// Metrics
	var (
		recorder ports.MetricsRecorder
		observer middleware.HTTPObserver
		scrape   http.Handler
	)
	if cfg.Metrics.Enabled {
		m := metrics.New()
		recorder, observer, scrape = m, m, m.Handler()
	}

	// Background tasks
	tasks, err := openQueue(ctx, cfg, logger.Component(log, "queue"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open task queue")
	}
	defer tasks.Close()
	if hc, ok := tasks.(ports.HealthChecker); ok {
		checkers = append(checkers, hc)
	}

	encSvc, err := service.NewAESEncryptionService(cfg.AES.Key)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize encryption service")
	}

	var sender ports.NotificationSender = notify.NewLogSender(log)
	if cfg.Notification.GatewayURL != "" {
		sender = notify.NewHTTPSender(cfg.Notification.GatewayURL, &http.Client{Timeout: cfg.Notification.Timeout}, log)
	}

	// Payment processor
	transfers, charges := openProvider(cfg, recorder, log)

	// Initialize core services
	sigSvc := service.NewHMACSignatureService()
	hasher := service.NewArgon2CodeHasher(cfg.OTP.HashMemoryKiB, cfg.OTP.HashIterations)
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)

	// Initialize business services
	notificationSvc := service.NewNotificationService(tasks, sender, encSvc, recorder, log)
	ledgerSvc := service.NewLedgerService(repos.ledger, cfg.Wallet.Currency, recorder, log)
	otpSvc := service.NewOtpService(repos.otps, hasher, service.OtpPolicy{
		Length:      cfg.OTP.Length,
		MaxAttempts: cfg.OTP.MaxAttempts,
		Lockout:     cfg.OTP.LockoutWindow,
	}, recorder, log)
	withdrawalSvc := service.NewWithdrawalService(
		repos.withdrawals,
		ledgerSvc,
		otpSvc,
		transfers,
		encSvc,
		notificationSvc,
		service.WithdrawalPolicy{
			MinAmount:       cfg.Wallet.MinPayout,
			OtpTTL:          cfg.OTP.TTL,
			MaxStatusChecks: cfg.Withdrawal.MaxStatusChecks,
			StaleAfter:      cfg.Withdrawal.StaleAfter,
			SweepBatch:      cfg.Withdrawal.SweepBatch,
		},
		recorder,
		log,
	)
	walletSvc := service.NewWalletService(ledgerSvc, charges, service.TopupPolicy{
		Currency: cfg.Wallet.Currency,
		Min:      cfg.Wallet.MinTopup,
		Max:      cfg.Wallet.MaxTopup,
	}, recorder, log)
	webhookSvc := service.NewWebhookService(cfg.Webhook.Secret, sigSvc, dedup, cfg.Webhook.DedupTTL, ledgerSvc, withdrawalSvc, recorder, log)
	stepUpSvc := service.NewStepUpService(otpSvc, repos.otps, notificationSvc, cfg.OTP.TTL, log)
	riskSvc := service.NewRiskService(limiter, rateRules(cfg.RateLimit), signals, recorder, log)
	auditSvc := service.NewAuditService(repos.audit, log)

	// Workers
	go func() {
		if err := tasks.Consume(ctx, notificationSvc.Deliver); err != nil {
			log.Error().Err(err).Msg("Task consumer stopped")
		}
	}()
	go runSweeper(ctx, withdrawalSvc, cfg.Withdrawal.SweepInterval, logger.Component(log, "sweeper"))

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Tokens:          tokenSvc,
		Ledger:          ledgerSvc,
		Wallet:          walletSvc,
		Withdrawals:     withdrawalSvc,
		Webhooks:        webhookSvc,
		StepUp:          stepUpSvc,
		Risk:            riskSvc,
		Audit:           auditSvc,
		RiskThreshold:   domain.RiskLevel(cfg.Risk.Threshold),
		SignatureHeader: cfg.Webhook.SignatureHeader,
		HealthCheckers:  checkers,
		Observer:        observer,
		MetricsHandler:  scrape,
		MetricsPath:     cfg.Metrics.Path,
		Logger:          log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*repositories, error) {
	if cfg.Storage.Driver == "memory" {
		log.Warn().Msg("Using in-memory storage, balances are lost on restart")
		store := memory.NewStore()
		return &repositories{
			ledger:      store.Ledger,
			withdrawals: store.Withdrawals,
			otps:        store.Otps,
			audit:       store.Audit,
			health:      store,
			close:       func() {},
		}, nil
	}

	if cfg.Database.AutoMigrate {
		if err := pgStorage.Migrate(cfg.Database.MigrateURL(), log); err != nil {
			return nil, err
		}
	}

	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		return nil, err
	}
	log.Info().Msg("PostgreSQL connected")

	store := pgStorage.NewStore(pool)
	return &repositories{
		ledger:      store.Ledger,
		withdrawals: store.Withdrawals,
		otps:        store.Otps,
		audit:       store.Audit,
		health:      store.Health,
		close:       pool.Close,
	}, nil
}

func openQueue(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.TaskQueue, error) {
	if cfg.NATS.URL == "" {
		log.Info().Int("workers", cfg.Notification.Workers).Msg("Using in-process task queue")
		return queue.NewMemoryQueue(256, cfg.Notification.Workers, cfg.NATS.MaxDeliver, log), nil
	}
	q, err := queue.NewNATSQueue(ctx, cfg.NATS, log)
	if err != nil {
		return nil, err
	}
	return q, nil
}

func openProvider(cfg *config.Config, recorder ports.MetricsRecorder, log zerolog.Logger) (ports.TransferProvider, ports.ChargeGateway) {
	if cfg.Provider.Kind == "sandbox" {
		log.Warn().Msg("Using sandbox payment rail, no real money moves")
		sandbox := provider.NewSandbox(fmt.Sprintf("http://localhost:%d", cfg.Server.Port), 5*time.Second)
		return sandbox, sandbox
	}

	client := provider.NewClient(
		cfg.Provider.BaseURL,
		cfg.Provider.SecretKey,
		cfg.Provider.CallbackURL,
		&http.Client{Timeout: cfg.Provider.Timeout},
		recorder,
		log,
	)
	retrying := provider.NewRetrying(client, client, provider.RetryPolicy{
		MaxAttempts:    cfg.Provider.MaxAttempts,
		InitialBackoff: cfg.Provider.InitialBackoff,
		MaxBackoff:     cfg.Provider.MaxBackoff,
	}, log)
	return retrying, retrying
}

func rateRules(cfg config.RateLimitConfig) map[string]service.RateRule {
	if !cfg.Enabled {
		return nil
	}
	rules := make(map[string]service.RateRule, len(cfg.Rules))
	for action, r := range cfg.Rules {
		rules[action] = service.RateRule{Limit: r.Limit, Window: r.Window}
	}
	return rules
}

// runSweeper repairs payouts left in flight by crashes or lost webhooks.
func runSweeper(ctx context.Context, withdrawals ports.WithdrawalService, interval time.Duration, log zerolog.Logger) {
	if interval <= 0 {
		log.Warn().Msg("Withdrawal sweeper disabled")
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := withdrawals.Sweep(ctx)
			if err != nil {
				log.Error().Err(err).Msg("Withdrawal sweep failed")
				continue
			}
			if n > 0 {
				log.Info().Int("repaired", n).Msg("Withdrawal sweep finished")
			}
		}
	}
}
