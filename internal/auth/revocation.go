package auth

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// RevocationStore remembers revoked token ids until the tokens expire.
type RevocationStore interface {
	// IsRevoked reports whether the token id jti was revoked.
	IsRevoked(jti string) bool
	// Revoke rejects jti until exp.
	Revoke(jti string, exp time.Time)
}

// MemoryRevocations keeps revoked ids in process memory. Expired entries
// are purged every cleanup interval.
type MemoryRevocations struct {
	revoked *gocache.Cache
}

func NewMemoryRevocations(cleanup time.Duration) *MemoryRevocations {
	return &MemoryRevocations{revoked: gocache.New(gocache.NoExpiration, cleanup)}
}

func (r *MemoryRevocations) IsRevoked(jti string) bool {
	_, found := r.revoked.Get(jti)
	return found
}

func (r *MemoryRevocations) Revoke(jti string, exp time.Time) {
	ttl := time.Until(exp)
	if ttl <= 0 {
		// Already unusable.
		return
	}
	r.revoked.Set(jti, struct{}{}, ttl)
}
