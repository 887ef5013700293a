package application

import (
	"context"
	"sync"
	"time"

	"github.com/oksasatya/microservices-console/internal/domain/entity"
)

// Services is the fixed set of monitored collaborators, in display order.
var Services = []entity.Service{entity.UserService, entity.ProductService}

// SnapshotStore persists the latest indicators so another process can start from them.
type SnapshotStore interface {
	Save(ctx context.Context, indicators []entity.Indicator) error
	Load(ctx context.Context) ([]entity.Indicator, error)
}

// StatusBoard holds one indicator per service. It is shared by every page session.
type StatusBoard struct {
	mu         sync.RWMutex
	indicators map[entity.Service]entity.Indicator
}

func NewStatusBoard() *StatusBoard {
	b := &StatusBoard{indicators: make(map[entity.Service]entity.Indicator, len(Services))}
	for _, s := range Services {
		b.indicators[s] = entity.Indicator{Service: s, Status: entity.StatusUnknown}
	}
	return b
}

// Set records the status of one service and returns the previous one.
func (b *StatusBoard) Set(svc entity.Service, status entity.ServiceStatus, at time.Time) entity.ServiceStatus {
	b.mu.Lock()
	defer b.mu.Unlock()
	prev := b.indicators[svc].Status
	b.indicators[svc] = entity.Indicator{Service: svc, Status: status, CheckedAt: at}
	return prev
}

// Get returns the indicator for svc.
func (b *StatusBoard) Get(svc entity.Service) entity.Indicator {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.indicators[svc]
}

// Snapshot returns all indicators in display order.
func (b *StatusBoard) Snapshot() []entity.Indicator {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]entity.Indicator, 0, len(Services))
	for _, s := range Services {
		out = append(out, b.indicators[s])
	}
	return out
}

// Restore seeds indicators that are still unknown from a previous snapshot.
// Indicators already checked by this process win.
func (b *StatusBoard) Restore(indicators []entity.Indicator) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, in := range indicators {
		cur, ok := b.indicators[in.Service]
		if !ok || cur.Status != entity.StatusUnknown {
			continue
		}
		b.indicators[in.Service] = in
	}
}
