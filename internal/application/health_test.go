package application

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/microservices-console/internal/domain/entity"
	"github.com/oksasatya/microservices-console/internal/domain/repository"
)

func TestHealthChecker_CheckServiceHealth(t *testing.T) {
	tests := []struct {
		name        string
		userErr     error
		productErr  error
		wantUser    entity.ServiceStatus
		wantProduct entity.ServiceStatus
	}{
		{name: "both healthy", wantUser: entity.StatusHealthy, wantProduct: entity.StatusHealthy},
		{name: "user-service offline", userErr: errOffline, wantUser: entity.StatusDown, wantProduct: entity.StatusHealthy},
		{name: "product-service rejects", productErr: errors.New("status 503"), wantUser: entity.StatusHealthy, wantProduct: entity.StatusDown},
		{name: "both down", userErr: errOffline, productErr: errOffline, wantUser: entity.StatusDown, wantProduct: entity.StatusDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up, pp := new(MockProbe), new(MockProbe)
			up.On("Probe", mock.Anything).Return(tt.userErr).Once()
			pp.On("Probe", mock.Anything).Return(tt.productErr).Once()
			board := NewStatusBoard()
			h := NewHealthChecker(map[entity.Service]repository.HealthProbe{
				entity.UserService:    up,
				entity.ProductService: pp,
			}, board, nil, nil)

			h.CheckServiceHealth(context.Background())

			assert.Equal(t, tt.wantUser, board.Get(entity.UserService).Status)
			assert.Equal(t, tt.wantProduct, board.Get(entity.ProductService).Status)
			assert.False(t, board.Get(entity.UserService).CheckedAt.IsZero())
			up.AssertExpectations(t)
			pp.AssertExpectations(t)
		})
	}
}

// slowProbe answers only when released, so the other service must not wait for it.
type slowProbe struct{ release chan struct{} }

func (s slowProbe) Probe(ctx context.Context) error {
	<-s.release
	return nil
}

func TestHealthChecker_IndependentIndicators(t *testing.T) {
	board := NewStatusBoard()
	fast := new(MockProbe)
	fast.On("Probe", mock.Anything).Return(errOffline)
	slow := slowProbe{release: make(chan struct{})}
	h := NewHealthChecker(map[entity.Service]repository.HealthProbe{
		entity.UserService:    fast,
		entity.ProductService: slow,
	}, board, nil, nil)

	done := make(chan struct{})
	go func() {
		h.CheckServiceHealth(context.Background())
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return board.Get(entity.UserService).Status == entity.StatusDown
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, entity.StatusUnknown, board.Get(entity.ProductService).Status)

	close(slow.release)
	<-done
	assert.Equal(t, entity.StatusHealthy, board.Get(entity.ProductService).Status)
}

func TestHealthChecker_SnapshotRoundTrip(t *testing.T) {
	store := new(MockSnapshotStore)
	probe := new(MockProbe)
	probe.On("Probe", mock.Anything).Return(nil)
	store.On("Save", mock.Anything, mock.MatchedBy(func(in []entity.Indicator) bool {
		return len(in) == 2 && in[0].Status == entity.StatusHealthy
	})).Return(nil).Once()
	h := NewHealthChecker(map[entity.Service]repository.HealthProbe{entity.UserService: probe}, NewStatusBoard(), store, nil)

	h.CheckServiceHealth(context.Background())
	store.AssertExpectations(t)
}

func TestHealthChecker_RestoreSnapshot(t *testing.T) {
	store := new(MockSnapshotStore)
	store.On("Load", mock.Anything).Return([]entity.Indicator{
		{Service: entity.UserService, Status: entity.StatusDown},
		{Service: entity.ProductService, Status: entity.StatusHealthy},
	}, nil)
	board := NewStatusBoard()
	board.Set(entity.UserService, entity.StatusHealthy, time.Now())
	h := NewHealthChecker(nil, board, store, nil)

	h.RestoreSnapshot(context.Background())

	assert.Equal(t, entity.StatusHealthy, board.Get(entity.UserService).Status, "a fresh check wins over the snapshot")
	assert.Equal(t, entity.StatusHealthy, board.Get(entity.ProductService).Status)
}

type countingProbe struct{ n atomic.Int32 }

func (c *countingProbe) Probe(ctx context.Context) error {
	c.n.Add(1)
	return nil
}

func TestHealthPoller_Run(t *testing.T) {
	probe := &countingProbe{}
	h := NewHealthChecker(map[entity.Service]repository.HealthProbe{entity.UserService: probe}, NewStatusBoard(), nil, nil)
	p := NewHealthPoller(h, 10*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return probe.n.Load() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		require.Fail(t, "poller did not stop")
	}
}
