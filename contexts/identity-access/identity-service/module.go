package identityservice

import (
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"kinkeep/contexts/identity-access/identity-service/adapters/crypto"
	httpadapter "kinkeep/contexts/identity-access/identity-service/adapters/http"
	"kinkeep/contexts/identity-access/identity-service/adapters/memory"
	"kinkeep/contexts/identity-access/identity-service/application"
	"kinkeep/contexts/identity-access/identity-service/ports"
)

// Module is the identity-service composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

// Dependencies captures all runtime ports required by NewModule.
type Dependencies struct {
	Principals ports.PrincipalRepository
	Tenants    ports.TenantRepository
	Hasher     ports.PasswordHasher
	Events     ports.EventPublisher
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

// NewModule wires the identity application and transport handler.
func NewModule(deps Dependencies) Module {
	service := application.Service{
		Principals: deps.Principals,
		Tenants:    deps.Tenants,
		Hasher:     deps.Hasher,
		Events:     deps.Events,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Logger:     deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Service: service,
	}
}

// NewInMemoryModule builds a development/testing module with in-memory
// adapters and cheap password hashing.
func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Principals: store,
		Tenants:    store,
		Hasher:     crypto.NewBcryptHasher(bcrypt.MinCost),
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
