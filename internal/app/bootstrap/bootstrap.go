package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	billingservice "kinkeep/contexts/commerce/billing-service"
	billingmemory "kinkeep/contexts/commerce/billing-service/adapters/memory"
	billingpostgres "kinkeep/contexts/commerce/billing-service/adapters/postgres"
	householdservice "kinkeep/contexts/family-core/household-service"
	householdpostgres "kinkeep/contexts/family-core/household-service/adapters/postgres"
	reminderservice "kinkeep/contexts/family-core/reminder-service"
	"kinkeep/contexts/family-core/reminder-service/adapters/llm"
	reminderpostgres "kinkeep/contexts/family-core/reminder-service/adapters/postgres"
	reminderworkers "kinkeep/contexts/family-core/reminder-service/application/workers"
	authservice "kinkeep/contexts/identity-access/auth-service"
	identityadapter "kinkeep/contexts/identity-access/auth-service/adapters/identity"
	jwtadapter "kinkeep/contexts/identity-access/auth-service/adapters/jwt"
	authmemory "kinkeep/contexts/identity-access/auth-service/adapters/memory"
	authworkers "kinkeep/contexts/identity-access/auth-service/application/workers"
	authorizationservice "kinkeep/contexts/identity-access/authorization-service"
	identityservice "kinkeep/contexts/identity-access/identity-service"
	"kinkeep/contexts/identity-access/identity-service/adapters/crypto"
	identitypostgres "kinkeep/contexts/identity-access/identity-service/adapters/postgres"
	"kinkeep/internal/platform/config"
	"kinkeep/internal/platform/db"
	"kinkeep/internal/platform/httpserver"
	"kinkeep/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	sweeper  authworkers.PendingLoginSweeper
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres   *db.Postgres
	dispatcher reminderworkers.DueReminderDispatcher
	logger     *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}
	if strings.TrimSpace(cfg.SessionTokenSecret) == "" {
		return nil, errors.New("SESSION_TOKEN_SECRET is required")
	}

	pg, err := connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	bus := messaging.NewBus(logger)

	identityRepo := identitypostgres.NewRepository(pg.DB, logger)
	identityModule := identityservice.NewModule(identityservice.Dependencies{
		Principals: identityRepo,
		Tenants:    identityRepo,
		Hasher:     crypto.NewBcryptHasher(bcrypt.DefaultCost),
		Events:     bus,
		Clock:      identitypostgres.SystemClock{},
		IDGen:      identitypostgres.UUIDGenerator{},
		Logger:     logger,
	})

	// Sessions are stateless tokens; only the pending external-login
	// round trips live in process memory.
	pending := authmemory.NewPendingLoginStore()
	authModule := authservice.NewModule(authservice.Dependencies{
		Codec:            jwtadapter.NewCodec(cfg.SessionTokenSecret, pending),
		Directory:        identityadapter.Directory{Identity: identityModule.Service},
		Pending:          pending,
		Clock:            pending,
		IDGen:            pending,
		Logger:           logger,
		SessionTTL:       cfg.SessionTokenTTL,
		PendingLoginTTL:  cfg.PendingLoginTTL,
		SweepInterval:    cfg.PendingLoginSweepGap,
		BootstrapEnabled: cfg.AuthBootstrapTokenEnabled,
		BootstrapToken:   cfg.AuthBootstrapToken,
	})

	authorizationModule := authorizationservice.NewModule(authorizationservice.Dependencies{
		AssumeAdultWhenBirthDateUnknown: cfg.AssumeAdultWhenBirthDateUnknown,
		Logger:                          logger,
	})

	householdRepo := householdpostgres.NewRepository(pg.DB)
	householdModule := householdservice.NewModule(householdservice.Dependencies{
		Chores:   householdRepo,
		KeyDates: householdRepo,
		Wishlist: householdRepo,
		Guard:    authorizationModule.Guard,
		Clock:    householdpostgres.SystemClock{},
		IDGen:    householdpostgres.UUIDGenerator{},
		Logger:   logger,
	})

	reminderRepo := reminderpostgres.NewRepository(pg.DB)
	reminderModule := reminderservice.NewModule(reminderservice.Dependencies{
		Reminders:         reminderRepo,
		Settings:          reminderRepo,
		Generator:         llm.CannedGenerator{},
		Publisher:         bus,
		Guard:             authorizationModule.Guard,
		Clock:             reminderpostgres.SystemClock{},
		IDGen:             reminderpostgres.UUIDGenerator{},
		Logger:            logger,
		DispatchBatchSize: cfg.ReminderBatchSize,
		DispatchInterval:  cfg.ReminderPollInterval,
	})

	billingRepo := billingpostgres.NewRepository(pg.DB)
	billingModule := billingservice.NewModule(billingservice.Dependencies{
		Orders:     billingRepo,
		Promotions: billingRepo,
		Gateway:    billingmemory.NewGateway(),
		Guard:      authorizationModule.Guard,
		Clock:      billingpostgres.SystemClock{},
		IDGen:      billingpostgres.UUIDGenerator{},
		Logger:     logger,
	})

	server := httpserver.New(
		authModule,
		identityModule,
		authorizationModule,
		householdModule,
		reminderModule,
		billingModule,
		logger,
		normalizeAddr(cfg.HTTPPort),
	)
	return &APIApp{
		server:   server,
		sweeper:  authModule.Sweeper,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	bus := messaging.NewBus(logger)
	reminderRepo := reminderpostgres.NewRepository(pg.DB)

	return &WorkerApp{
		postgres: pg,
		dispatcher: reminderworkers.DueReminderDispatcher{
			Reminders: reminderRepo,
			Settings:  reminderRepo,
			Composer:  llm.Composer{Generator: llm.CannedGenerator{}},
			Publisher: bus,
			Clock:     reminderpostgres.SystemClock{},
			IDGen:     reminderpostgres.UUIDGenerator{},
			BatchSize: cfg.ReminderBatchSize,
			Interval:  cfg.ReminderPollInterval,
			Logger:    logger,
		},
		logger: logger,
	}, nil
}

func connect(dsn string) (*db.Postgres, error) {
	pg, err := db.Connect(dsn)
	if err != nil {
		return nil, err
	}

	models := identitypostgres.Models()
	models = append(models, householdpostgres.Models()...)
	models = append(models, reminderpostgres.Models()...)
	models = append(models, billingpostgres.Models()...)
	if err := pg.Migrate(models...); err != nil {
		_ = pg.Close()
		return nil, err
	}
	return pg, nil
}

func (a *APIApp) Run(ctx context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}

	// The pending-login store lives in this process, so its sweeper
	// runs here too.
	go func() { _ = a.sweeper.Run(ctx) }()

	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
	)

	err := w.dispatcher.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
