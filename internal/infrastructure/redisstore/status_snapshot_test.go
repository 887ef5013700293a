package redisstore

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/microservices-console/internal/domain/entity"
)

func TestNewStatusSnapshot_NilClient(t *testing.T) {
	assert.Nil(t, NewStatusSnapshot(nil, time.Minute))
}

func TestStatusSnapshot_NilReceiver(t *testing.T) {
	var s *StatusSnapshot
	assert.ErrorIs(t, s.Save(context.Background(), nil), errNoClient)
	_, err := s.Load(context.Background())
	assert.ErrorIs(t, err, errNoClient)
}

func TestStatusSnapshot_UnreachableRedis(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	defer func() { _ = rdb.Close() }()
	s := NewStatusSnapshot(rdb, time.Minute)

	err := s.Save(context.Background(), []entity.Indicator{{Service: entity.UserService, Status: entity.StatusDown}})
	assert.Error(t, err)

	_, err = s.Load(context.Background())
	assert.Error(t, err)
}
