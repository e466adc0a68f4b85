package authorizationservice

import (
	"log/slog"

	httpadapter "kinkeep/contexts/identity-access/authorization-service/adapters/http"
	"kinkeep/contexts/identity-access/authorization-service/application"
	"kinkeep/contexts/identity-access/authorization-service/application/queries"
)

// Module is the authorization-service composition root.
type Module struct {
	Handler httpadapter.Handler
	Guard   application.Guard
}

// Dependencies captures the runtime knobs of the decision engine.
type Dependencies struct {
	Clock                           application.Clock
	AssumeAdultWhenBirthDateUnknown bool
	Logger                          *slog.Logger
}

// NewModule wires the decision engine and its transport handler.
func NewModule(deps Dependencies) Module {
	guard := application.Guard{
		Clock:  deps.Clock,
		Policy: queries.Policy{AssumeAdultWhenBirthDateUnknown: deps.AssumeAdultWhenBirthDateUnknown},
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Guard: guard, Logger: deps.Logger},
		Guard:   guard,
	}
}
