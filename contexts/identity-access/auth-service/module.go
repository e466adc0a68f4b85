package authservice

import (
	"log/slog"
	"time"

	httpadapter "kinkeep/contexts/identity-access/auth-service/adapters/http"
	identityadapter "kinkeep/contexts/identity-access/auth-service/adapters/identity"
	jwtadapter "kinkeep/contexts/identity-access/auth-service/adapters/jwt"
	"kinkeep/contexts/identity-access/auth-service/adapters/memory"
	"kinkeep/contexts/identity-access/auth-service/application"
	"kinkeep/contexts/identity-access/auth-service/application/workers"
	"kinkeep/contexts/identity-access/auth-service/ports"
	identityservice "kinkeep/contexts/identity-access/identity-service"
)

// Module is the auth-service composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Sweeper workers.PendingLoginSweeper
}

// Dependencies captures all runtime ports required by NewModule.
type Dependencies struct {
	Codec     ports.TokenCodec
	Directory ports.Directory
	Pending   ports.PendingLoginStore
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger

	SessionTTL       time.Duration
	PendingLoginTTL  time.Duration
	SweepInterval    time.Duration
	BootstrapEnabled bool
	BootstrapToken   string
}

// NewModule wires the authentication application, transport handler and
// background sweeper.
func NewModule(deps Dependencies) Module {
	service := application.Service{
		Codec:            deps.Codec,
		Directory:        deps.Directory,
		Pending:          deps.Pending,
		Clock:            deps.Clock,
		IDGen:            deps.IDGen,
		Logger:           deps.Logger,
		SessionTTL:       deps.SessionTTL,
		PendingLoginTTL:  deps.PendingLoginTTL,
		BootstrapEnabled: deps.BootstrapEnabled,
		BootstrapToken:   deps.BootstrapToken,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Service: service,
		Sweeper: workers.PendingLoginSweeper{
			Store:    deps.Pending,
			Clock:    deps.Clock,
			Interval: deps.SweepInterval,
			Logger:   deps.Logger,
		},
	}
}

// NewInMemoryModule builds a development/testing module backed by the
// given identity module and an in-memory pending login store.
func NewInMemoryModule(identity identityservice.Module, secret string, logger *slog.Logger) Module {
	pending := memory.NewPendingLoginStore()
	return NewModule(Dependencies{
		Codec:            jwtadapter.NewCodec(secret, pending),
		Directory:        identityadapter.Directory{Identity: identity.Service},
		Pending:          pending,
		Clock:            pending,
		IDGen:            pending,
		Logger:           logger,
		SessionTTL:       12 * time.Hour,
		PendingLoginTTL:  5 * time.Minute,
		SweepInterval:    time.Minute,
		BootstrapEnabled: false,
	})
}
