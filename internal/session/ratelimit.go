package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CheckAndSetRateLimit takes the rate-limit slot for the given subject and
// action. It returns true when the caller may proceed; a nil client disables
// limiting.
func CheckAndSetRateLimit(ctx context.Context, rdb *redis.Client, subject, action string, limit time.Duration) (bool, error) {
	if rdb == nil {
		return true, nil
	}

	key := fmt.Sprintf("rate_limit:%s:%s", action, subject)

	wasSet, err := rdb.SetNX(ctx, key, "locked", limit).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit in redis: %w", err)
	}

	return wasSet, nil
}

// GetRateLimitTTL reports how long the subject remains limited for an action.
func GetRateLimitTTL(ctx context.Context, rdb *redis.Client, subject, action string) (time.Duration, error) {
	if rdb == nil {
		return 0, nil
	}
	key := fmt.Sprintf("rate_limit:%s:%s", action, subject)
	return rdb.TTL(ctx, key).Result()
}
