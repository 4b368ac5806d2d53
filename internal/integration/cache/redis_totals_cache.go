// Package cache implements the totals cache on Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/smartbiz/backend/internal/application/adapter"
	"github.com/smartbiz/backend/internal/domain/entity"
)

const totalsKeyPrefix = "smartbiz:totals:"

// setIfVersionScript writes KEYS[1] only when the counter at KEYS[2] (absent = 0)
// equals ARGV[1]. ARGV[3] is the TTL in milliseconds, 0 for none.
var setIfVersionScript = redis.NewScript(`
local current = redis.call('GET', KEYS[2]) or '0'
if current ~= ARGV[1] then
	return 0
end
local ttl = tonumber(ARGV[3])
if ttl > 0 then
	redis.call('SET', KEYS[1], ARGV[2], 'PX', ttl)
else
	redis.call('SET', KEYS[1], ARGV[2])
end
return 1
`)

type cachedTotals struct {
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	TotalProfit  decimal.Decimal `json:"totalProfit"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// RedisTotalsCache implements adapter.TotalsCache with one JSON string key per owner.
type RedisTotalsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisTotalsCache creates a totals cache whose entries expire after ttl.
func NewRedisTotalsCache(client *redis.Client, ttl time.Duration) *RedisTotalsCache {
	return &RedisTotalsCache{client: client, ttl: ttl}
}

var _ adapter.TotalsCache = (*RedisTotalsCache)(nil)

func totalsKey(ownerID uuid.UUID) string {
	return totalsKeyPrefix + ownerID.String()
}

func versionKey(ownerID uuid.UUID) string {
	return totalsKeyPrefix + ownerID.String() + ":version"
}

// Get returns the cached aggregate or (nil, nil) on a miss.
func (c *RedisTotalsCache) Get(ctx context.Context, ownerID uuid.UUID) (*entity.ProfitAggregate, error) {
	raw, err := c.client.Get(ctx, totalsKey(ownerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var v cachedTotals
	if err := json.Unmarshal(raw, &v); err != nil {
		// A corrupt entry behaves like a miss and is overwritten on the next Set
		return nil, nil
	}

	return &entity.ProfitAggregate{
		OwnerID:      ownerID,
		TotalIncome:  v.TotalIncome,
		TotalExpense: v.TotalExpense,
		TotalProfit:  v.TotalProfit,
		UpdatedAt:    v.UpdatedAt,
	}, nil
}

// Version returns the owner's invalidation counter, 0 when it was never bumped.
func (c *RedisTotalsCache) Version(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	v, err := c.client.Get(ctx, versionKey(ownerID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// SetIfVersion stores the aggregate with the configured TTL unless the owner was
// invalidated after version was read. It reports whether the entry was written.
func (c *RedisTotalsCache) SetIfVersion(ctx context.Context, aggregate *entity.ProfitAggregate, version int64) (bool, error) {
	raw, err := json.Marshal(cachedTotals{
		TotalIncome:  aggregate.TotalIncome,
		TotalExpense: aggregate.TotalExpense,
		TotalProfit:  aggregate.TotalProfit,
		UpdatedAt:    aggregate.UpdatedAt,
	})
	if err != nil {
		return false, fmt.Errorf("failed to encode totals: %w", err)
	}

	written, err := setIfVersionScript.Run(ctx, c.client,
		[]string{totalsKey(aggregate.OwnerID), versionKey(aggregate.OwnerID)},
		strconv.FormatInt(version, 10), raw, c.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, err
	}
	return written == 1, nil
}

// Invalidate removes the owner's entry and bumps the counter in one transaction.
// The counter has no TTL so an in-flight reader can never see it reset.
func (c *RedisTotalsCache) Invalidate(ctx context.Context, ownerID uuid.UUID) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, versionKey(ownerID))
		pipe.Del(ctx, totalsKey(ownerID))
		return nil
	})
	return err
}

// Ping checks the connection to Redis.
func (c *RedisTotalsCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
