package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var redisOnce sync.Once
var redisMock *Redis

// Redis is a miniredis server with a client connected to it.
type Redis struct {
	Client *redis.Client
	server *miniredis.Miniredis
}

// NewRedis starts the shared miniredis server on first use.
func NewRedis() *Redis {
	redisOnce.Do(func() {
		server, err := miniredis.Run()
		if err != nil {
			panic(err)
		}
		redisMock = &Redis{
			Client: redis.NewClient(&redis.Options{Addr: server.Addr()}),
			server: server,
		}
	})
	return redisMock
}

// Clear flushes every key and lifts any injected failure.
func (r *Redis) Clear() error {
	r.server.SetError("")
	return r.Client.FlushAll(context.TODO()).Err()
}

// Fail makes every subsequent command return msg as an error.
func (r *Redis) Fail(msg string) {
	r.server.SetError(msg)
}

// Exists reports whether key is currently stored.
func (r *Redis) Exists(key string) bool {
	return r.server.Exists(key)
}
