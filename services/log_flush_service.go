package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"schoolgrid_go/database"
	"schoolgrid_go/models"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// LogFlushService drains Redis-cached activity logs into the database.
// Writes go to Redis first for latency; this service moves aged entries
// to their durable home.
type LogFlushService struct {
	redisClient *redis.Client
}

// NewLogFlushService creates a new service instance
func NewLogFlushService() *LogFlushService {
	return &LogFlushService{
		redisClient: database.GetRedisClient(),
	}
}

// FlushCachedLogs moves logs older than maxAge from the Redis queue to
// the database and removes them from the cache.
func (ls *LogFlushService) FlushCachedLogs(maxAge time.Duration) error {
	if ls.redisClient == nil {
		return fmt.Errorf("redis client not available")
	}

	ctx := context.Background()
	cutoff := time.Now().Add(-maxAge)

	expired, err := ls.redisClient.ZRangeByScore(ctx, "logs:queue", &redis.ZRangeBy{
		Min: "0",
		Max: fmt.Sprintf("%d", cutoff.Unix()),
	}).Result()
	if err != nil {
		return fmt.Errorf("failed to get expired logs: %v", err)
	}

	var processed, failed int
	for _, logKey := range expired {
		logData, err := ls.redisClient.Get(ctx, logKey).Result()
		if err != nil {
			if err != redis.Nil {
				logrus.WithError(err).Errorf("Failed to get log data for key: %s", logKey)
				failed++
			}
			continue
		}

		var activityLog models.ActivityLog
		if err := json.Unmarshal([]byte(logData), &activityLog); err != nil {
			logrus.WithError(err).Errorf("Failed to unmarshal log data for key: %s", logKey)
			failed++
			continue
		}

		if err := database.DB.Create(&activityLog).Error; err != nil {
			logrus.WithError(err).Error("Failed to save activity log to database")
			failed++
			continue
		}

		pipeline := ls.redisClient.Pipeline()
		pipeline.Del(ctx, logKey)
		pipeline.ZRem(ctx, "logs:queue", logKey)
		if _, err := pipeline.Exec(ctx); err != nil {
			logrus.WithError(err).Errorf("Failed to remove log from cache: %s", logKey)
		}

		processed++
	}

	if processed > 0 || failed > 0 {
		logrus.Infof("Flushed %d logs to database, %d errors", processed, failed)
	}
	return nil
}

// StartScheduler runs the flush loop in the background.
func (ls *LogFlushService) StartScheduler() {
	go func() {
		if err := ls.FlushCachedLogs(24 * time.Hour); err != nil {
			logrus.WithError(err).Warn("initial log flush failed")
		}

		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := ls.FlushCachedLogs(24 * time.Hour); err != nil {
				logrus.WithError(err).Warn("periodic log flush failed")
			}
		}
	}()
}
