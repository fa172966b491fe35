package httptransport

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"benefitscout/pkg/platform/httputil"
)

// HealthCheck reports whether one dependency is reachable.
type HealthCheck func(ctx context.Context) error

// Health runs the registered dependency checks concurrently.
type Health struct {
	mu      sync.RWMutex
	checks  map[string]HealthCheck
	timeout time.Duration
}

func NewHealth(timeout time.Duration) *Health {
	return &Health{checks: make(map[string]HealthCheck), timeout: timeout}
}

// Add registers a named check. Re-adding a name replaces the check.
func (h *Health) Add(name string, check HealthCheck) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks[name] = check
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Check returns the per-dependency status and whether everything is up.
func (h *Health) Check(ctx context.Context) (map[string]string, bool) {
	h.mu.RLock()
	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)
	checks := make([]HealthCheck, len(names))
	for i, name := range names {
		checks[i] = h.checks[name]
	}
	h.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	results := make([]error, len(checks))
	var g errgroup.Group
	for i, check := range checks {
		i, check := i, check
		g.Go(func() error {
			results[i] = check(ctx)
			return nil
		})
	}
	_ = g.Wait()

	statuses := make(map[string]string, len(names))
	healthy := true
	for i, name := range names {
		if results[i] != nil {
			statuses[name] = results[i].Error()
			healthy = false
			continue
		}
		statuses[name] = "ok"
	}
	return statuses, healthy
}

func (h *Health) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	statuses, healthy := h.Check(r.Context())
	resp := healthResponse{Status: "ok", Checks: statuses}
	status := http.StatusOK
	if !healthy {
		resp.Status = "degraded"
		status = http.StatusServiceUnavailable
	}
	httputil.WriteJSON(w, status, resp)
}
