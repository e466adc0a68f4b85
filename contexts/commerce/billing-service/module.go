package billingservice

import (
	"log/slog"

	httpadapter "kinkeep/contexts/commerce/billing-service/adapters/http"
	"kinkeep/contexts/commerce/billing-service/adapters/memory"
	"kinkeep/contexts/commerce/billing-service/application"
	"kinkeep/contexts/commerce/billing-service/ports"
)

// Module is the billing-service composition root.
type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
	Gateway *memory.Gateway
}

// Dependencies captures all runtime ports required by NewModule.
type Dependencies struct {
	Orders     ports.OrderRepository
	Promotions ports.PromotionRepository
	Gateway    ports.PaymentGateway
	Guard      ports.AccessGuard
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

// NewModule wires the billing application and transport handler.
func NewModule(deps Dependencies) Module {
	service := application.Service{
		Orders:     deps.Orders,
		Promotions: deps.Promotions,
		Gateway:    deps.Gateway,
		Guard:      deps.Guard,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Logger:     deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service, Logger: deps.Logger},
		Service: service,
	}
}

// NewInMemoryModule builds a development/testing module with the
// in-memory store and gateway fake.
func NewInMemoryModule(guard ports.AccessGuard, logger *slog.Logger) Module {
	store := memory.NewStore()
	gateway := memory.NewGateway()
	module := NewModule(Dependencies{
		Orders:     store,
		Promotions: store,
		Gateway:    gateway,
		Guard:      guard,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	module.Gateway = gateway
	return module
}
