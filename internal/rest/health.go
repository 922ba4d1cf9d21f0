package rest

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Guyuepp/blog-threads/domain"
)

const (
	statusHealthy   = "healthy"
	statusDegraded  = "degraded"
	statusUnhealthy = "unhealthy"

	defaultProbeTimeout = 2 * time.Second
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// Probe names a dependency checked by the health endpoint.
type Probe struct {
	Name   string
	Pinger Pinger
}

type probeResult struct {
	Service        string   `json:"service"`
	Status         string   `json:"status"`
	ResponseTimeMs *float64 `json:"response_time_ms"`
	Error          string   `json:"error,omitempty"`
}

type healthResponse struct {
	Service          string       `json:"service"`
	Status           string       `json:"status"`
	Timestamp        time.Time    `json:"timestamp"`
	ServiceStartTime time.Time    `json:"service_start_time"`
	UptimeSeconds    float64      `json:"uptime_seconds"`
	UptimeFormatted  string       `json:"uptime_formatted"`
	Database         probeResult  `json:"database"`
	Identity         *probeResult `json:"identity,omitempty"`
}

// HealthHandler reports uptime and the state of the store and the identity
// provider. The store is critical: when it is down the service answers 503.
// An unreachable identity provider only degrades the service, reads still
// work with placeholder display info.
type HealthHandler struct {
	Info     domain.ServiceInfo
	Database Probe
	Identity *Probe
	Timeout  time.Duration
	now      func() time.Time
}

func NewHealthHandler(info domain.ServiceInfo, database Probe, identity *Probe) *HealthHandler {
	return &HealthHandler{
		Info:     info,
		Database: database,
		Identity: identity,
		Timeout:  defaultProbeTimeout,
		now:      time.Now,
	}
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		g        errgroup.Group
		database probeResult
		identity *probeResult
	)
	g.Go(func() error {
		database = h.probe(ctx, h.Database)
		return nil
	})
	if h.Identity != nil {
		g.Go(func() error {
			res := h.probe(ctx, *h.Identity)
			identity = &res
			return nil
		})
	}
	_ = g.Wait()

	status, code := statusHealthy, http.StatusOK
	switch {
	case database.Status != statusHealthy:
		status, code = statusUnhealthy, http.StatusServiceUnavailable
	case identity != nil && identity.Status != statusHealthy:
		status = statusDegraded
	}

	now := h.now()
	uptime := h.Info.Uptime(now)
	c.JSON(code, healthResponse{
		Service:          h.Info.Name,
		Status:           status,
		Timestamp:        now.UTC(),
		ServiceStartTime: h.Info.StartedAt,
		UptimeSeconds:    math.Round(uptime.Seconds()*100) / 100,
		UptimeFormatted:  formatUptime(uptime),
		Database:         database,
		Identity:         identity,
	})
}

func (h *HealthHandler) probe(ctx context.Context, p Probe) probeResult {
	ctx, cancel := context.WithTimeout(ctx, h.Timeout)
	defer cancel()

	start := time.Now()
	if err := p.Pinger.Ping(ctx); err != nil {
		logrus.Warnf("health probe %s failed: %v", p.Name, err)
		return probeResult{Service: p.Name, Status: statusUnhealthy, Error: err.Error()}
	}
	ms := math.Round(float64(time.Since(start).Microseconds())/10) / 100
	return probeResult{Service: p.Name, Status: statusHealthy, ResponseTimeMs: &ms}
}

// formatUptime renders d as "6h 0m 0s".
func formatUptime(d time.Duration) string {
	d = d.Truncate(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	return fmt.Sprintf("%dh %dm %ds", h, m, d/time.Second)
}
