package reminderservice

import (
	"log/slog"
	"time"

	httpadapter "kinkeep/contexts/family-core/reminder-service/adapters/http"
	"kinkeep/contexts/family-core/reminder-service/adapters/llm"
	"kinkeep/contexts/family-core/reminder-service/adapters/memory"
	"kinkeep/contexts/family-core/reminder-service/application"
	"kinkeep/contexts/family-core/reminder-service/application/workers"
	"kinkeep/contexts/family-core/reminder-service/ports"
)

// Module is the reminder-service composition root.
type Module struct {
	Handler    httpadapter.Handler
	Service    application.Service
	Dispatcher workers.DueReminderDispatcher
	Store      *memory.Store
}

// Dependencies captures all runtime ports required by NewModule.
type Dependencies struct {
	Reminders ports.ReminderRepository
	Settings  ports.NagSettingsRepository
	Generator ports.TextGenerator
	Publisher ports.EventPublisher
	Guard     ports.AccessGuard
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger

	DispatchBatchSize int
	DispatchInterval  time.Duration
}

// NewModule wires the reminder application, transport handler and the
// due-reminder dispatcher.
func NewModule(deps Dependencies) Module {
	composer := llm.Composer{Generator: deps.Generator}
	service := application.Service{
		Reminders: deps.Reminders,
		Settings:  deps.Settings,
		Composer:  composer,
		Guard:     deps.Guard,
		Clock:     deps.Clock,
		IDGen:     deps.IDGen,
		Logger:    deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service, Logger: deps.Logger},
		Service: service,
		Dispatcher: workers.DueReminderDispatcher{
			Reminders: deps.Reminders,
			Settings:  deps.Settings,
			Composer:  composer,
			Publisher: deps.Publisher,
			Clock:     deps.Clock,
			IDGen:     deps.IDGen,
			BatchSize: deps.DispatchBatchSize,
			Interval:  deps.DispatchInterval,
			Logger:    deps.Logger,
		},
	}
}

// NewInMemoryModule builds a development/testing module with the
// in-memory store.
func NewInMemoryModule(guard ports.AccessGuard, generator ports.TextGenerator, publisher ports.EventPublisher, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Reminders: store,
		Settings:  store,
		Generator: generator,
		Publisher: publisher,
		Guard:     guard,
		Clock:     store,
		IDGen:     store,
		Logger:    logger,
	})
	module.Store = store
	return module
}
