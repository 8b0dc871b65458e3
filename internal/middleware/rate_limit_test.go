package middleware

import (
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func TestRedisRateLimiterStore_FailsOpen(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	logger := zerolog.Nop()
	store := NewRedisRateLimiterStore(client, 1, time.Minute, &logger)

	for i := 0; i < 3; i++ {
		allowed, err := store.Allow("192.0.2.1")
		if err != nil {
			t.Fatalf("Allow returned %v", err)
		}
		if !allowed {
			t.Fatalf("expected requests to be allowed while redis is unreachable")
		}
	}
}
