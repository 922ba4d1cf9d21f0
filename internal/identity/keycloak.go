package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/Guyuepp/blog-threads/domain"
)

// maxConcurrentLookups bounds the fan-out of LookupMany.
const maxConcurrentLookups = 8

type Config struct {
	BaseURL      string
	Realm        string
	ClientID     string
	ClientSecret string

	// Timeout bounds a single lookup and every token fetch.
	Timeout time.Duration
	// RPS limits calls to the provider; zero or less disables the limiter.
	RPS   float64
	Burst int
}

// keycloakUser is the subset of the admin API user representation we read.
type keycloakUser struct {
	ID         string              `json:"id"`
	Username   string              `json:"username"`
	FirstName  string              `json:"firstName"`
	LastName   string              `json:"lastName"`
	Attributes map[string][]string `json:"attributes"`
}

func (u keycloakUser) toDomain() domain.DisplayInfo {
	info := domain.DisplayInfo{
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
	if pics := u.Attributes["profilePicUrl"]; len(pics) > 0 {
		info.AvatarURL = pics[0]
	}
	return info
}

// rateLimitedTransport waits for the limiter before every request.
type rateLimitedTransport struct {
	base    http.RoundTripper
	limiter *rate.Limiter
}

func (t *rateLimitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.base.RoundTrip(req)
}

type keycloakClient struct {
	usersURL string
	timeout  time.Duration
	http     *http.Client
	// creds and tokenHTTP fetch uncached tokens bound to a caller context
	creds     *clientcredentials.Config
	tokenHTTP *http.Client
	cache     domain.DisplayInfoCache
	group     singleflight.Group
}

var _ domain.IdentityClient = (*keycloakClient)(nil)

// NewKeycloakClient builds a client for the Keycloak admin API. cache may be nil.
func NewKeycloakClient(cfg Config, cache domain.DisplayInfoCache) *keycloakClient {
	base := strings.TrimRight(cfg.BaseURL, "/")
	realm := url.PathEscape(cfg.Realm)

	var transport http.RoundTripper = http.DefaultTransport
	if cfg.RPS > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		transport = &rateLimitedTransport{base: transport, limiter: rate.NewLimiter(rate.Limit(cfg.RPS), burst)}
	}

	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     fmt.Sprintf("%s/realms/%s/protocol/openid-connect/token", base, realm),
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	// the token source outlives any request and oauth2.Transport fetches
	// tokens without the request context, so the client carries the timeout
	tokenHTTP := &http.Client{Transport: transport, Timeout: cfg.Timeout}
	tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, tokenHTTP)
	tokens := cc.TokenSource(tokenCtx)

	return &keycloakClient{
		usersURL: fmt.Sprintf("%s/admin/realms/%s/users/", base, realm),
		timeout:  cfg.Timeout,
		http: &http.Client{Transport: &oauth2.Transport{
			Source: tokens,
			Base:   transport,
		}},
		creds:     cc,
		tokenHTTP: tokenHTTP,
		cache:     cache,
	}
}

// Lookup never fails. A fresh cache hit is returned as is; otherwise the
// provider is asked, and if that fails a stale entry or the placeholder is used.
func (c *keycloakClient) Lookup(ctx context.Context, userID string) domain.DisplayInfo {
	if userID == "" {
		return domain.DisplayInfo{}
	}

	var fallback domain.DisplayInfo
	if c.cache != nil {
		info, expired, err := c.cache.Get(ctx, userID)
		switch {
		case err == nil && !expired:
			return info
		case err == nil:
			fallback = info
		case !errors.Is(err, domain.ErrCacheMiss):
			logrus.Warnf("identity cache get failed, user: %s, err: %v", userID, err)
		}
	}

	v, err, _ := c.group.Do(userID, func() (any, error) {
		info, err := c.fetch(ctx, userID)
		if err != nil {
			return nil, err
		}
		if c.cache != nil {
			if err := c.cache.Set(context.WithoutCancel(ctx), userID, info); err != nil {
				logrus.Warnf("identity cache set failed, user: %s, err: %v", userID, err)
			}
		}
		return info, nil
	})
	if err != nil {
		logrus.Warnf("identity lookup degraded, user: %s, err: %v", userID, err)
		return fallback
	}
	return v.(domain.DisplayInfo)
}

func (c *keycloakClient) LookupMany(ctx context.Context, userIDs []string) map[string]domain.DisplayInfo {
	res := make(map[string]domain.DisplayInfo, len(userIDs))
	for _, id := range userIDs {
		res[id] = domain.DisplayInfo{}
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)
	for id := range res {
		g.Go(func() error {
			info := c.Lookup(ctx, id)
			mu.Lock()
			res[id] = info
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return res
}

// Ping checks that a client token can be obtained. It always asks the
// token endpoint and gives up when ctx is done.
func (c *keycloakClient) Ping(ctx context.Context) error {
	_, err := c.creds.Token(context.WithValue(ctx, oauth2.HTTPClient, c.tokenHTTP))
	return err
}

func (c *keycloakClient) fetch(ctx context.Context, userID string) (domain.DisplayInfo, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.usersURL+url.PathEscape(userID), nil)
	if err != nil {
		return domain.DisplayInfo{}, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return domain.DisplayInfo{}, &domain.Error{Kind: domain.ErrUpstreamDegraded, Entity: domain.EntityUser, ID: userID, Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return domain.DisplayInfo{}, domain.NotFound(domain.EntityUser, userID)
	default:
		return domain.DisplayInfo{}, &domain.Error{
			Kind:   domain.ErrUpstreamDegraded,
			Entity: domain.EntityUser,
			ID:     userID,
			Err:    fmt.Errorf("keycloak responded %s", resp.Status),
		}
	}

	var u keycloakUser
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return domain.DisplayInfo{}, &domain.Error{Kind: domain.ErrUpstreamDegraded, Entity: domain.EntityUser, ID: userID, Err: err}
	}
	return u.toDomain(), nil
}
