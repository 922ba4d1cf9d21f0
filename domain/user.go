package domain

import "context"

// DisplayInfo is best-effort presentation data about a user.
// The zero value is the placeholder used when the identity provider fails.
type DisplayInfo struct {
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// IdentityClient resolves display info. It never fails; on any problem it
// returns the zero DisplayInfo.
type IdentityClient interface {
	Lookup(ctx context.Context, userID string) DisplayInfo
	// LookupMany deduplicates ids and looks each one up once.
	LookupMany(ctx context.Context, userIDs []string) map[string]DisplayInfo
}

// DisplayInfoCache stores lookups for a while. Entries outlive their ttl so a
// stale value can still be served while the identity provider is down.
type DisplayInfoCache interface {
	// Get returns ErrCacheMiss when nothing is cached for the id.
	// expired reports whether the entry is past its logical ttl.
	Get(ctx context.Context, userID string) (info DisplayInfo, expired bool, err error)
	Set(ctx context.Context, userID string, info DisplayInfo) error
	Delete(ctx context.Context, userID string) error
}
