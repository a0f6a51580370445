package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yamboly/tutor-dashboard-service/internal/utils"
)

// Read-through TTLs. Chat messages churn fastest, catalog data slowest.
const (
	TTLMessages      = 5 * time.Second
	TTLSessions      = 10 * time.Second
	TTLSubscriptions = 10 * time.Second
	TTLStudents      = 20 * time.Second
	TTLCourses       = 20 * time.Second
)

// ErrCacheMiss is returned by Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache: key not found")

type CacheService interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, key string) error
	DeletePattern(ctx context.Context, pattern string) error
}

type redisCache struct {
	client *redis.Client
	logger utils.Logger
}

func NewRedisCache(client *redis.Client, logger utils.Logger) CacheService {
	return &redisCache{
		client: client,
		logger: logger,
	}
}

func (r redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: marshal %s: %w", key, err)
	}

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		r.logger.WarnContext(ctx, "cache set failed", "key", key, "error", err)
		return err
	}

	return nil
}

func (r redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		r.logger.WarnContext(ctx, "cache get failed", "key", key, "error", err)
		return err
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("cache: unmarshal %s: %w", key, err)
	}

	return nil
}

func (r redisCache) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r redisCache) DeletePattern(ctx context.Context, pattern string) error {
	iter := r.client.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}

	return r.client.Del(ctx, keys...).Err()
}

// Key builders keep the naming scheme in one place.

func StudentsKey() string { return "dashboard:students" }

func CoursesKey() string { return "dashboard:courses" }

func SubscriptionsKey(userID string) string {
	return fmt.Sprintf("dashboard:subscriptions:%s", userID)
}

func SessionsKey(userID string) string {
	return fmt.Sprintf("dashboard:sessions:%s", userID)
}

func MessagesKey(sessionID string) string {
	return fmt.Sprintf("dashboard:messages:%s", sessionID)
}
