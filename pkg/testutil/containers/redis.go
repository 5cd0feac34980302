//go:build integration

// Package containers starts throwaway backing services for integration tests.
package containers

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

const redisImage = "redis:7-alpine"

// RedisContainer is a running Redis plus a connected client.
type RedisContainer struct {
	Container testcontainers.Container
	Client    *redis.Client
	url       string
}

// NewRedisContainer starts Redis for one suite and fails t if it is not
// reachable. Callers stop it with Terminate in TearDownSuite.
func NewRedisContainer(t *testing.T) *RedisContainer {
	t.Helper()
	ctx := context.Background()

	container, err := tcredis.Run(ctx, redisImage)
	if err != nil {
		t.Fatalf("start redis container: %v", err)
	}
	rc := &RedisContainer{Container: container}

	fail := func(format string, args ...any) {
		rc.Terminate(ctx)
		t.Fatalf(format, args...)
	}

	if rc.url, err = container.ConnectionString(ctx); err != nil {
		fail("redis connection string: %v", err)
	}
	opts, err := redis.ParseURL(rc.url)
	if err != nil {
		fail("parse redis url %q: %v", rc.url, err)
	}
	rc.Client = redis.NewClient(opts)
	if err := rc.Client.Ping(ctx).Err(); err != nil {
		fail("ping redis: %v", err)
	}
	return rc
}

// URL is the redis:// connection string, usable as REDIS_URL.
func (r *RedisContainer) URL() string {
	return r.url
}

// FlushAll empties the database between tests.
func (r *RedisContainer) FlushAll(ctx context.Context) error {
	return r.Client.FlushAll(ctx).Err()
}

// Terminate closes the client and stops the container.
func (r *RedisContainer) Terminate(ctx context.Context) {
	if r.Client != nil {
		_ = r.Client.Close()
	}
	_ = r.Container.Terminate(ctx)
}
