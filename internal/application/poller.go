package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// HealthPoller re-runs the health check on a fixed interval.
type HealthPoller struct {
	Checker  *HealthChecker
	Interval time.Duration
	Logger   *logrus.Logger
}

func NewHealthPoller(checker *HealthChecker, interval time.Duration, logger *logrus.Logger) *HealthPoller {
	return &HealthPoller{Checker: checker, Interval: interval, Logger: orDiscard(logger)}
}

// Run checks once immediately and then every Interval until ctx is done.
// Each tick gets its own deadline of one interval so a hung probe cannot pile up ticks.
func (p *HealthPoller) Run(ctx context.Context) {
	p.Logger.WithField("interval", p.Interval.String()).Info("health poller started")
	p.tick(ctx)

	t := time.NewTicker(p.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			p.Logger.Info("health poller stopped")
			return
		case <-t.C:
			p.tick(ctx)
		}
	}
}

func (p *HealthPoller) tick(ctx context.Context) {
	c, cancel := context.WithTimeout(ctx, p.Interval)
	defer cancel()
	p.Checker.CheckServiceHealth(c)
}
