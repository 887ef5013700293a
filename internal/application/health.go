package application

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/microservices-console/internal/domain/entity"
	"github.com/oksasatya/microservices-console/internal/domain/repository"
)

// HealthChecker probes every service and writes the outcome to the board.
type HealthChecker struct {
	Probes    map[entity.Service]repository.HealthProbe
	Board     *StatusBoard
	Snapshots SnapshotStore
	Logger    *logrus.Logger
	now       func() time.Time
}

func NewHealthChecker(probes map[entity.Service]repository.HealthProbe, board *StatusBoard, snapshots SnapshotStore, logger *logrus.Logger) *HealthChecker {
	return &HealthChecker{
		Probes:    probes,
		Board:     board,
		Snapshots: snapshots,
		Logger:    orDiscard(logger),
		now:       time.Now,
	}
}

// CheckServiceHealth probes each service independently. One service failing, or
// answering slowly, never delays or changes the other's indicator.
func (h *HealthChecker) CheckServiceHealth(ctx context.Context) {
	var wg sync.WaitGroup
	for _, svc := range Services {
		probe, ok := h.Probes[svc]
		if !ok {
			continue
		}
		wg.Add(1)
		go func(svc entity.Service, probe repository.HealthProbe) {
			defer wg.Done()
			h.checkOne(ctx, svc, probe)
		}(svc, probe)
	}
	wg.Wait()

	if h.Snapshots != nil {
		if err := h.Snapshots.Save(ctx, h.Board.Snapshot()); err != nil {
			h.Logger.WithError(err).Debug("status snapshot not saved")
		}
	}
}

func (h *HealthChecker) checkOne(ctx context.Context, svc entity.Service, probe repository.HealthProbe) {
	metrics.Add(mHealthChecks, 1)
	status := entity.StatusHealthy
	err := probe.Probe(ctx)
	if err != nil {
		status = entity.StatusDown
		metrics.Add(mHealthDown, 1)
	}
	prev := h.Board.Set(svc, status, h.now().UTC())
	if prev == status {
		return
	}
	entry := h.Logger.WithFields(logrus.Fields{"service": svc, "from": prev, "to": status})
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Info("service status changed")
}

// RestoreSnapshot seeds the board from the snapshot store, if any.
func (h *HealthChecker) RestoreSnapshot(ctx context.Context) {
	if h.Snapshots == nil {
		return
	}
	indicators, err := h.Snapshots.Load(ctx)
	if err != nil {
		h.Logger.WithError(err).Debug("status snapshot not restored")
		return
	}
	h.Board.Restore(indicators)
}
