package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// unreachable returns a client pointed at a closed port.
func unreachable(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestTokenDenylist_Key(t *testing.T) {
	d := NewTokenDenylist(nil)
	if got := d.key("0190a1b2"); got != "revoked:0190a1b2" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestTokenDenylist_ExpiredTokenIsNotStored(t *testing.T) {
	d := NewTokenDenylist(unreachable(t))

	if err := d.Revoke(context.Background(), "jti", 0); err != nil {
		t.Fatalf("expected no-op for expired token, got %v", err)
	}
}

func TestTokenDenylist_BackendErrors(t *testing.T) {
	d := NewTokenDenylist(unreachable(t))
	ctx := context.Background()

	if err := d.Revoke(ctx, "jti", time.Minute); err == nil {
		t.Fatal("expected revoke error")
	}
	if revoked, err := d.IsRevoked(ctx, "jti"); err == nil || revoked {
		t.Fatalf("expected error and not revoked, got %v %v", revoked, err)
	}
	if err := d.Ping(ctx); err == nil {
		t.Fatal("expected ping error")
	}
}
