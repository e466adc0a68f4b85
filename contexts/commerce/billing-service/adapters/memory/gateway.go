package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"kinkeep/contexts/commerce/billing-service/ports"
)

// Gateway is an in-memory payment gateway. It records every charge so
// tests can assert whether checkout reached it at all.
type Gateway struct {
	mu      sync.Mutex
	charges []ports.ChargeRequest

	// Fail, when set, makes every charge return this error.
	Fail error
}

func NewGateway() *Gateway {
	return &Gateway{}
}

func (g *Gateway) Charge(_ context.Context, request ports.ChargeRequest) (ports.Receipt, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Fail != nil {
		return ports.Receipt{}, g.Fail
	}
	g.charges = append(g.charges, request)
	return ports.Receipt{
		ReceiptID:   uuid.NewString(),
		AmountCents: request.AmountCents,
		ChargedAt:   time.Now().UTC(),
	}, nil
}

// Charges returns a copy of every recorded charge.
func (g *Gateway) Charges() []ports.ChargeRequest {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]ports.ChargeRequest, len(g.charges))
	copy(out, g.charges)
	return out
}
