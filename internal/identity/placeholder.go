package identity

import (
	"context"

	"github.com/Guyuepp/blog-threads/domain"
)

// placeholder is used when no identity provider is configured.
type placeholder struct{}

var _ domain.IdentityClient = placeholder{}

func NewPlaceholder() domain.IdentityClient { return placeholder{} }

func (placeholder) Lookup(context.Context, string) domain.DisplayInfo { return domain.DisplayInfo{} }

func (placeholder) LookupMany(_ context.Context, userIDs []string) map[string]domain.DisplayInfo {
	res := make(map[string]domain.DisplayInfo, len(userIDs))
	for _, id := range userIDs {
		res[id] = domain.DisplayInfo{}
	}
	return res
}
