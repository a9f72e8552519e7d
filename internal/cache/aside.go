package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/RubenLpc/BucovinaStay-backend/internal/middleware"
	"github.com/RubenLpc/BucovinaStay-backend/internal/observability"

	"github.com/redis/go-redis/v9"
)

const (
	userKeyPrefix        = "user:%d"
	hostProfileKeyPrefix = "host:profile:%d"
	listingKeyPrefix     = "listing:%d"

	// ModerationPolicyKey holds the JSON-encoded admin settings.
	ModerationPolicyKey = "settings:moderation"
)

const (
	UserTTL        = time.Minute
	HostProfileTTL = 5 * time.Minute
	ListingTTL     = 2 * time.Minute
	SettingsTTL    = 10 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(userKeyPrefix, userID)
}

func HostProfileKey(userID uint) string {
	return fmt.Sprintf(hostProfileKeyPrefix, userID)
}

func ListingKey(listingID uint) string {
	return fmt.Sprintf(listingKeyPrefix, listingID)
}

// keyFamily drops trailing numeric segments so "host:profile:12" counts as "host:profile".
func keyFamily(key string) string {
	parts := strings.Split(key, ":")
	for len(parts) > 1 {
		if _, err := strconv.ParseUint(parts[len(parts)-1], 10, 64); err != nil {
			break
		}
		parts = parts[:len(parts)-1]
	}
	return strings.Join(parts, ":")
}

// GetJSON reads key into dest. It reports false on a miss or when Redis is not configured.
func GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if client == nil {
		return false, nil
	}
	raw, err := client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and stores it under key with ttl.
func SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if client == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return client.Set(ctx, key, b, ttl).Err()
}

// Aside serves dest from Redis, or calls fetch to fill it and caches the result.
// Redis failures degrade to fetch; only fetch errors are returned.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	found, err := GetJSON(ctx, key, dest)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	if found {
		observability.CacheLookups.WithLabelValues(keyFamily(key), "hit").Inc()
		return nil
	}
	observability.CacheLookups.WithLabelValues(keyFamily(key), "miss").Inc()

	if err := fetch(); err != nil {
		return err
	}

	if err := SetJSON(ctx, key, dest, ttl); err != nil {
		middleware.Logger.WarnContext(ctx, "cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	return nil
}

// Invalidate deletes keys, ignoring errors.
func Invalidate(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateHostProfile(ctx context.Context, userID uint) {
	Invalidate(ctx, HostProfileKey(userID))
}

func InvalidateListing(ctx context.Context, listingID uint) {
	Invalidate(ctx, ListingKey(listingID))
}
