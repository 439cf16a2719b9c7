package database

import (
	"context"

	"github.com/go-redis/redis/v8"
)

// InitRedis initializes the Redis connection used for response caching.
func InitRedis(redisURI string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURI)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	// Test connection
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return client, nil
}
