// Package cache holds the redis key layout and small JSON helpers shared by the
// read-through caches of the employee and department modules.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	employeeOptionsPrefix = "employees:options:"
	departmentsAllPrefix  = "departments:all:"
)

func EmployeeOptionsKey(orgID string) string {
	return employeeOptionsPrefix + orgID
}

func DepartmentsKey(orgID string) string {
	return departmentsAllPrefix + orgID
}

// GetJSON reports whether key was present and decoded into dst. A nil client,
// a miss and a decode failure are all treated as a miss.
func GetJSON(ctx context.Context, rdb *redis.Client, key string, dst any) bool {
	if rdb == nil {
		return false
	}
	raw, err := rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			zap.L().Named("cache").Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

func SetJSON(ctx context.Context, rdb *redis.Client, key string, v any, ttl time.Duration) {
	if rdb == nil {
		return
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := rdb.Set(ctx, key, payload, ttl).Err(); err != nil {
		zap.L().Named("cache").Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate deletes keys after a committed mutation. Failures are logged only.
func Invalidate(ctx context.Context, rdb *redis.Client, keys ...string) {
	if rdb == nil || len(keys) == 0 {
		return
	}
	if err := rdb.Del(ctx, keys...).Err(); err != nil {
		zap.L().Named("cache").Error("failed to invalidate cache",
			zap.Strings("keys", keys),
			zap.Error(err),
		)
	}
}
