package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Guyuepp/blog-threads/internal/repository/cache"
)

func TestEntryLogicalExpire(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	e := cache.NewEntry("alice", time.Minute, now)

	assert.Equal(t, "alice", e.Data)
	assert.False(t, e.IsLogicalExpired(now.Add(30*time.Second)))
	assert.True(t, e.IsLogicalExpired(now.Add(2*time.Minute)))
}
