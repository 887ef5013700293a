package redisstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/microservices-console/internal/domain/entity"
	"github.com/oksasatya/microservices-console/pkg/helpers"
)

const statusSnapshotKey = "ui:status:snapshot"

var errNoClient = errors.New("redis not configured")

// StatusSnapshot keeps the latest status indicators in Redis so a replica that
// just started can show them before its own first check completes.
type StatusSnapshot struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStatusSnapshot returns nil when rdb is nil, which callers treat as "no store".
func NewStatusSnapshot(rdb *redis.Client, ttl time.Duration) *StatusSnapshot {
	if rdb == nil {
		return nil
	}
	return &StatusSnapshot{rdb: rdb, ttl: ttl}
}

func (s *StatusSnapshot) Save(ctx context.Context, indicators []entity.Indicator) error {
	if s == nil || s.rdb == nil {
		return errNoClient
	}
	return helpers.RedisSetJSON(ctx, s.rdb, statusSnapshotKey, indicators, s.ttl)
}

func (s *StatusSnapshot) Load(ctx context.Context) ([]entity.Indicator, error) {
	if s == nil || s.rdb == nil {
		return nil, errNoClient
	}
	var out []entity.Indicator
	ok, err := helpers.RedisGetJSON(ctx, s.rdb, statusSnapshotKey, &out)
	if err != nil || !ok {
		return nil, err
	}
	return out, nil
}
