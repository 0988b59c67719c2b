package middleware

import (
	"strings"
	"testing"
)

func TestTokenBlacklistKeyMatchesLogoutWrites(t *testing.T) {
	token := "eyJhbGciOiJIUzI1NiJ9.payload.sig"
	key := TokenBlacklistKey(token)

	if !strings.HasPrefix(key, "blacklist:jwt:") {
		t.Fatalf("key = %q, want blacklist:jwt: prefix", key)
	}
	if !strings.HasSuffix(key, token) {
		t.Errorf("key = %q does not carry the token", key)
	}
}

func TestTokenBlacklistedWithoutRedis(t *testing.T) {
	// Redis is optional; with no client configured a token is never
	// treated as revoked.
	if tokenBlacklisted("any-token") {
		t.Error("token reported revoked with no Redis client configured")
	}
}
