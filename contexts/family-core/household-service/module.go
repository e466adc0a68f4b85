package householdservice

import (
	"log/slog"

	httpadapter "kinkeep/contexts/family-core/household-service/adapters/http"
	"kinkeep/contexts/family-core/household-service/adapters/memory"
	"kinkeep/contexts/family-core/household-service/application"
	"kinkeep/contexts/family-core/household-service/ports"
)

// Module is the household-service composition root.
type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

// Dependencies captures all runtime ports required by NewModule.
type Dependencies struct {
	Chores   ports.ChoreRepository
	KeyDates ports.KeyDateRepository
	Wishlist ports.WishlistRepository
	Guard    ports.AccessGuard
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

// NewModule wires the household application and transport handler.
func NewModule(deps Dependencies) Module {
	service := application.Service{
		Chores:   deps.Chores,
		KeyDates: deps.KeyDates,
		Wishlist: deps.Wishlist,
		Guard:    deps.Guard,
		Clock:    deps.Clock,
		IDGen:    deps.IDGen,
		Logger:   deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service, Logger: deps.Logger},
		Service: service,
	}
}

// NewInMemoryModule builds a development/testing module with the
// in-memory store.
func NewInMemoryModule(guard ports.AccessGuard, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Chores:   store,
		KeyDates: store,
		Wishlist: store,
		Guard:    guard,
		Clock:    store,
		IDGen:    store,
		Logger:   logger,
	})
	module.Store = store
	return module
}
