package data

import (
	"github.com/go-redis/redis/v8"

	"snipstash/internal/config"
)

// NewRedisClient creates and returns a new Redis client using environment configuration.
func NewRedisClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: config.Conf.RedisAddr,
	})
}
