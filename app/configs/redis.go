package configs

import (
	"log"

	"github.com/redis/go-redis/v9"
)

// OpenRedis returns a client when REDIS_ADDR is configured, nil otherwise.
// The cache layer treats a nil client as "caching disabled".
func OpenRedis() *redis.Client {
	if LoadENV.RedisAddr == "" {
		log.Println("REDIS_ADDR not set, product cache disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr: LoadENV.RedisAddr,
	})

	log.Printf("✅ Redis client initialized for %s", LoadENV.RedisAddr)
	return client
}
