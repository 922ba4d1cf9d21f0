package identity_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Guyuepp/blog-threads/domain"
	"github.com/Guyuepp/blog-threads/internal/identity"
)

type fakeKeycloak struct {
	*httptest.Server
	tokenCalls atomic.Int32
	userCalls  atomic.Int32
	status     atomic.Int32
	delay      time.Duration
	tokenDelay time.Duration
}

func newFakeKeycloak(t *testing.T) *fakeKeycloak {
	t.Helper()
	f := &fakeKeycloak{}
	f.status.Store(http.StatusOK)

	mux := http.NewServeMux()
	mux.HandleFunc("/realms/blog/protocol/openid-connect/token", func(w http.ResponseWriter, r *http.Request) {
		f.tokenCalls.Add(1)
		if f.tokenDelay > 0 {
			select {
			case <-time.After(f.tokenDelay):
			case <-r.Context().Done():
				return
			}
		}
		_ = r.ParseForm()
		if r.PostForm.Get("grant_type") != "client_credentials" || r.PostForm.Get("client_id") != "blog-svc" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok",
			"token_type":   "bearer",
			"expires_in":   300,
		})
	})
	mux.HandleFunc("/admin/realms/blog/users/", func(w http.ResponseWriter, r *http.Request) {
		f.userCalls.Add(1)
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if f.delay > 0 {
			select {
			case <-time.After(f.delay):
			case <-r.Context().Done():
				return
			}
		}
		if code := int(f.status.Load()); code != http.StatusOK {
			w.WriteHeader(code)
			return
		}
		id := strings.TrimPrefix(r.URL.Path, "/admin/realms/blog/users/")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":         id,
			"username":   "user-" + id,
			"firstName":  "First",
			"lastName":   "Last",
			"attributes": map[string][]string{"profilePicUrl": {"http://img/" + id + ".png"}},
		})
	})
	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

func (f *fakeKeycloak) config() identity.Config {
	return identity.Config{
		BaseURL:      f.URL + "/",
		Realm:        "blog",
		ClientID:     "blog-svc",
		ClientSecret: "secret",
		Timeout:      time.Second,
	}
}

type memCache struct {
	mu      sync.Mutex
	entries map[string]domain.DisplayInfo
	expired map[string]bool
}

func newMemCache() *memCache {
	return &memCache{entries: map[string]domain.DisplayInfo{}, expired: map[string]bool{}}
}

func (m *memCache) Get(_ context.Context, id string) (domain.DisplayInfo, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	info, ok := m.entries[id]
	if !ok {
		return domain.DisplayInfo{}, false, domain.ErrCacheMiss
	}
	return info, m.expired[id], nil
}

func (m *memCache) Set(_ context.Context, id string, info domain.DisplayInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[id] = info
	delete(m.expired, id)
	return nil
}

func (m *memCache) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

func TestLookup(t *testing.T) {
	t.Run("maps the user representation", func(t *testing.T) {
		kc := newFakeKeycloak(t)
		c := identity.NewKeycloakClient(kc.config(), nil)

		info := c.Lookup(context.TODO(), "u1")
		assert.Equal(t, domain.DisplayInfo{
			Username:  "user-u1",
			AvatarURL: "http://img/u1.png",
			FirstName: "First",
			LastName:  "Last",
		}, info)

		c.Lookup(context.TODO(), "u2")
		assert.Equal(t, int32(1), kc.tokenCalls.Load(), "token is reused")
	})

	t.Run("empty id makes no call", func(t *testing.T) {
		kc := newFakeKeycloak(t)
		c := identity.NewKeycloakClient(kc.config(), nil)

		assert.Equal(t, domain.DisplayInfo{}, c.Lookup(context.TODO(), ""))
		assert.Zero(t, kc.userCalls.Load())
	})

	t.Run("unknown user gives placeholder", func(t *testing.T) {
		kc := newFakeKeycloak(t)
		kc.status.Store(http.StatusNotFound)
		c := identity.NewKeycloakClient(kc.config(), nil)

		assert.Equal(t, domain.DisplayInfo{}, c.Lookup(context.TODO(), "ghost"))
	})

	t.Run("provider error gives placeholder", func(t *testing.T) {
		kc := newFakeKeycloak(t)
		kc.status.Store(http.StatusInternalServerError)
		c := identity.NewKeycloakClient(kc.config(), nil)

		assert.Equal(t, domain.DisplayInfo{}, c.Lookup(context.TODO(), "u1"))
	})

	t.Run("bad credentials give placeholder", func(t *testing.T) {
		kc := newFakeKeycloak(t)
		cfg := kc.config()
		cfg.ClientID = "someone-else"
		c := identity.NewKeycloakClient(cfg, nil)

		assert.Equal(t, domain.DisplayInfo{}, c.Lookup(context.TODO(), "u1"))
		assert.Zero(t, kc.userCalls.Load())
	})

	t.Run("slow provider is cut off", func(t *testing.T) {
		kc := newFakeKeycloak(t)
		kc.delay = 500 * time.Millisecond
		cfg := kc.config()
		cfg.Timeout = 50 * time.Millisecond
		c := identity.NewKeycloakClient(cfg, nil)

		start := time.Now()
		assert.Equal(t, domain.DisplayInfo{}, c.Lookup(context.TODO(), "u1"))
		assert.Less(t, time.Since(start), 400*time.Millisecond)
	})
}

func TestLookupCache(t *testing.T) {
	t.Run("fresh hit skips the provider", func(t *testing.T) {
		kc := newFakeKeycloak(t)
		cache := newMemCache()
		cache.entries["u1"] = domain.DisplayInfo{Username: "cached"}
		c := identity.NewKeycloakClient(kc.config(), cache)

		assert.Equal(t, "cached", c.Lookup(context.TODO(), "u1").Username)
		assert.Zero(t, kc.userCalls.Load())
	})

	t.Run("miss is filled", func(t *testing.T) {
		kc := newFakeKeycloak(t)
		cache := newMemCache()
		c := identity.NewKeycloakClient(kc.config(), cache)

		c.Lookup(context.TODO(), "u1")
		info, _, err := cache.Get(context.TODO(), "u1")
		require.NoError(t, err)
		assert.Equal(t, "user-u1", info.Username)
	})

	t.Run("expired entry is refreshed", func(t *testing.T) {
		kc := newFakeKeycloak(t)
		cache := newMemCache()
		cache.entries["u1"] = domain.DisplayInfo{Username: "old"}
		cache.expired["u1"] = true
		c := identity.NewKeycloakClient(kc.config(), cache)

		assert.Equal(t, "user-u1", c.Lookup(context.TODO(), "u1").Username)
	})

	t.Run("expired entry is served while provider is down", func(t *testing.T) {
		kc := newFakeKeycloak(t)
		kc.status.Store(http.StatusServiceUnavailable)
		cache := newMemCache()
		cache.entries["u1"] = domain.DisplayInfo{Username: "old"}
		cache.expired["u1"] = true
		c := identity.NewKeycloakClient(kc.config(), cache)

		assert.Equal(t, "old", c.Lookup(context.TODO(), "u1").Username)
	})
}

func TestLookupMany(t *testing.T) {
	kc := newFakeKeycloak(t)
	c := identity.NewKeycloakClient(kc.config(), nil)

	res := c.LookupMany(context.TODO(), []string{"a", "b", "a", "c", "b"})
	require.Len(t, res, 3)
	assert.Equal(t, "user-a", res["a"].Username)
	assert.Equal(t, "user-b", res["b"].Username)
	assert.Equal(t, "user-c", res["c"].Username)
	assert.Equal(t, int32(3), kc.userCalls.Load())
}

func TestPing(t *testing.T) {
	kc := newFakeKeycloak(t)
	assert.NoError(t, identity.NewKeycloakClient(kc.config(), nil).Ping(context.TODO()))

	cfg := kc.config()
	cfg.ClientSecret = ""
	cfg.ClientID = "nobody"
	assert.Error(t, identity.NewKeycloakClient(cfg, nil).Ping(context.TODO()))
}

func TestPlaceholder(t *testing.T) {
	p := identity.NewPlaceholder()

	assert.Equal(t, domain.DisplayInfo{}, p.Lookup(context.Background(), "u1"))
	assert.Equal(t, map[string]domain.DisplayInfo{"u1": {}, "u2": {}},
		p.LookupMany(context.Background(), []string{"u1", "u2", "u1"}))
}

func TestSlowTokenEndpoint(t *testing.T) {
	kc := newFakeKeycloak(t)
	kc.tokenDelay = 3 * time.Second
	cfg := kc.config()
	cfg.Timeout = 100 * time.Millisecond
	c := identity.NewKeycloakClient(cfg, nil)

	t.Run("lookup falls back to the placeholder in time", func(t *testing.T) {
		start := time.Now()
		info := c.Lookup(context.Background(), "u1")

		assert.Equal(t, domain.DisplayInfo{}, info)
		assert.Less(t, time.Since(start), time.Second)
		assert.Zero(t, kc.userCalls.Load())
	})

	t.Run("ping gives up with the context", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		start := time.Now()
		assert.Error(t, c.Ping(ctx))
		assert.Less(t, time.Since(start), time.Second)
	})
}
