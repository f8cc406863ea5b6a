package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestManagerEnforcesMemoryLimit(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	manager := NewManager(func() SettingsConfig {
		return SettingsConfig{Limit: 2, Window: 15 * time.Minute}
	}, func() time.Time {
		return now
	}, nil)

	for i := 0; i < 2; i++ {
		result, errAllow := manager.Allow(context.Background(), "client-a")
		if errAllow != nil {
			t.Fatalf("expected no error, got %v", errAllow)
		}
		if !result.Allowed {
			t.Fatalf("request %d: expected allowed", i+1)
		}
	}

	result, errAllow := manager.Allow(context.Background(), "client-a")
	if errAllow != nil {
		t.Fatalf("expected no error, got %v", errAllow)
	}
	if result.Allowed {
		t.Fatalf("expected third request denied")
	}
}

func TestManagerAllowsWhenLimitDisabled(t *testing.T) {
	manager := NewManager(func() SettingsConfig {
		return SettingsConfig{Limit: 0, Window: 15 * time.Minute}
	}, nil, nil)

	result, errAllow := manager.Allow(context.Background(), "client-a")
	if errAllow != nil {
		t.Fatalf("expected no error, got %v", errAllow)
	}
	if !result.Allowed {
		t.Fatalf("expected allowed when limit is disabled")
	}
}

func TestManagerFallsBackToMemoryWhenRedisUnreachable(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	factoryCalls := 0
	manager := NewManager(func() SettingsConfig {
		return SettingsConfig{
			Limit:        1,
			Window:       15 * time.Minute,
			RedisEnabled: true,
			RedisAddr:    "127.0.0.1:1",
		}
	}, func() time.Time {
		return now
	}, func(options *redis.Options) *redis.Client {
		factoryCalls++
		return redis.NewClient(options)
	})

	result, errAllow := manager.Allow(context.Background(), "client-a")
	if errAllow != nil {
		t.Fatalf("expected fallback, got error %v", errAllow)
	}
	if !result.Allowed {
		t.Fatalf("expected first request allowed via memory fallback")
	}
	if factoryCalls != 1 {
		t.Fatalf("expected one redis client attempt, got %d", factoryCalls)
	}

	// The breaker is tripped; the next check goes straight to memory.
	result, errAllow = manager.Allow(context.Background(), "client-a")
	if errAllow != nil {
		t.Fatalf("expected no error, got %v", errAllow)
	}
	if result.Allowed {
		t.Fatalf("expected memory backend to deny past the limit")
	}
	if factoryCalls != 1 {
		t.Fatalf("expected breaker to skip redis, got %d attempts", factoryCalls)
	}
}
