package deps

import (
	"context"

	"github.com/go-redis/redis/v8"
)

func IgniteCache(container Deps) (Deps, error) {
	address := container.Config().UString("cache.redis")
	if address == "" {
		log.Notice("cache.redis is not configured, story cache disabled")
		return container, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: container.Config().UString("cache.password"),
		DB:       container.Config().UInt("cache.db", 0),
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return container, err
	}

	container.CacheProvider = client
	return container, nil
}
