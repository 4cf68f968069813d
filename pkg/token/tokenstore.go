package tokenstore

import (
	"time"

	"agentchat/pkg/cache"
)

// Revoked JTIs live in the process-wide TTL cache until the token they belong
// to would have expired anyway. For multi-instance deployments use Redis or DB.

const keyPrefix = "revoked_jti:"

// Revoke marks a token id as revoked for ttl. ttl<=0 revokes without expiry.
func Revoke(jti string, ttl time.Duration) {
	if jti == "" {
		return
	}
	cache.Default().Set(keyPrefix+jti, struct{}{}, ttl)
}

// IsRevoked reports whether a token id has been revoked and is still within
// its revocation window.
func IsRevoked(jti string) bool {
	if jti == "" {
		return false
	}
	_, ok := cache.Default().Get(keyPrefix + jti)
	return ok
}
