package app

import (
	"fmt"

	"library-cms/internal/audit"
	"library-cms/internal/auth"
	"library-cms/internal/config"
	"library-cms/internal/events"
	apphttp "library-cms/internal/http"
	"library-cms/internal/http/handler"
	"library-cms/internal/infra/cache"
	"library-cms/internal/policy"
	"library-cms/internal/repository/postgres"
	"library-cms/internal/service"
	"library-cms/internal/storage/s3"
	"library-cms/pkg/mailer"
	"library-cms/pkg/mailer/providers"
	"library-cms/pkg/metrics"
	"library-cms/pkg/password"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"
)

// Build wires every dependency for cfg. The caller owns the returned App
// and must Close it.
func Build(cfg *config.Config, log zerolog.Logger) (*App, error) {
	a := &App{config: cfg, log: log}

	db, err := postgres.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	a.closers = append(a.closers, func() error { db.Close(); return nil })
	log.Info().Msg("database connection established")

	storage, err := s3.NewClient(&cfg.AWS)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}

	maintenanceStore, redisPinger, closeRedis, err := newMaintenanceStore(cfg.Redis, log)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.closers = append(a.closers, closeRedis)

	publisher, err := events.New(events.KafkaConfig{Brokers: cfg.Kafka.Brokers, Topic: cfg.Kafka.Topic})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create event publisher: %w", err)
	}
	a.closers = append(a.closers, publisher.Close)

	mail, err := mailer.New(mailer.Config{
		From:           cfg.Mail.From,
		Strategy:       cfg.Mail.Strategy,
		ResendAPIKey:   cfg.Mail.ResendAPIKey,
		SendGridAPIKey: cfg.Mail.SendGridAPIKey,
		SMTP: providers.SMTPConfig{
			Host:     cfg.Mail.SMTPHost,
			Port:     cfg.Mail.SMTPPort,
			Username: cfg.Mail.SMTPUsername,
			Password: cfg.Mail.SMTPPassword,
		},
	}, log)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create mailer: %w", err)
	}

	clk := clock.New()
	pol := policy.Default()
	opts := service.Options{Logger: log, Publisher: publisher, Clock: clk}

	libraryRepo := postgres.NewLibraryRepository(db)
	storyRepo := postgres.NewStoryRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	mediaRepo := postgres.NewMediaRepository(db)
	messageRepo := postgres.NewMessageRepository(db)
	analyticsRepo := postgres.NewAnalyticsRepository(db)
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpiryDuration)
	maintenanceService := service.NewMaintenanceService(maintenanceStore, pol, opts)

	a.Backups = service.NewBackupService(postgres.NewBackupSource(db), storage, pol, opts)
	a.Users = service.NewAuthService(postgres.NewUserRepository(db), password.NewHasher(password.DefaultCost), jwtService, opts)

	a.Server = apphttp.NewServer(&apphttp.ServerDependencies{
		Config:         cfg,
		Policy:         pol,
		AuthMiddleware: auth.NewMiddleware(jwtService),
		Metrics:        metrics.New(),
		AuditLogger:    audit.NewLogger(db.Pool, log),
		Clock:          clk,

		Auth:        a.Users,
		Libraries:   service.NewLibraryService(libraryRepo, storage, pol, opts),
		Stories:     service.NewStoryService(storyRepo, storage, pol, opts),
		Events:      service.NewEventService(eventRepo, storage, pol, opts),
		Media:       service.NewMediaService(mediaRepo, storage, pol, opts),
		Messages:    service.NewMessageService(messageRepo, libraryRepo, mail, pol, opts),
		Dashboard:   service.NewDashboardService(storyRepo, mediaRepo, eventRepo, messageRepo, analyticsRepo, nil, opts),
		Analytics:   service.NewAnalyticsService(analyticsRepo, opts),
		Maintenance: maintenanceService,
		Backups:     a.Backups,

		HealthChecks: map[string]handler.Pinger{
			"database": db,
			"redis":    redisPinger,
		},
	})

	return a, nil
}

// newMaintenanceStore shares the flag through Redis when configured and keeps
// it in process memory otherwise. The pinger is nil without Redis.
func newMaintenanceStore(cfg config.RedisConfig, log zerolog.Logger) (service.MaintenanceStore, handler.Pinger, func() error, error) {
	if cfg.Addr == "" {
		log.Warn().Msg("REDIS_ADDR not set, maintenance mode is local to this instance")
		return cache.NewMemoryStore(), nil, func() error { return nil }, nil
	}
	client, err := cache.NewRedisClient(cache.RedisConfig{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	store := cache.NewRedisStore(client)
	log.Info().Str("addr", cfg.Addr).Msg("redis connection established")
	return store, store, client.Close, nil
}
