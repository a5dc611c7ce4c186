package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// HealthStatus represents the overall health status
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusDegraded  HealthStatus = "degraded"
	StatusUnhealthy HealthStatus = "unhealthy"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    HealthStatus           `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Checks    map[string]CheckResult `json:"checks"`
}

// CheckResult represents the result of an individual health check
type CheckResult struct {
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
	Latency string       `json:"latency,omitempty"`
}

// CheckFunc is a function that performs a health check
type CheckFunc func(ctx context.Context) CheckResult

// HealthChecker runs registered checks concurrently and caches the
// combined result for a short while.
type HealthChecker struct {
	version        string
	checks         map[string]CheckFunc
	mu             sync.RWMutex
	checkTimeout   time.Duration
	cacheTimeout   time.Duration
	cachedResponse *HealthResponse
	lastCheck      time.Time
}

// NewHealthChecker creates a new health checker
func NewHealthChecker(version string) *HealthChecker {
	return &HealthChecker{
		version:      version,
		checks:       make(map[string]CheckFunc),
		checkTimeout: 5 * time.Second,
		cacheTimeout: 10 * time.Second,
	}
}

// RegisterCheck registers a new health check and drops any cached result
func (hc *HealthChecker) RegisterCheck(name string, check CheckFunc) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.checks[name] = check
	hc.cachedResponse = nil
}

// PerformChecks runs all registered health checks
func (hc *HealthChecker) PerformChecks(ctx context.Context) *HealthResponse {
	hc.mu.RLock()
	if hc.cachedResponse != nil && time.Since(hc.lastCheck) < hc.cacheTimeout {
		cached := hc.cachedResponse
		hc.mu.RUnlock()
		return cached
	}
	checks := make(map[string]CheckFunc, len(hc.checks))
	for name, check := range hc.checks {
		checks[name] = check
	}
	hc.mu.RUnlock()

	results := make(map[string]CheckResult, len(checks))
	var wg sync.WaitGroup
	var mu sync.Mutex

	for name, check := range checks {
		wg.Add(1)
		go func(n string, c CheckFunc) {
			defer wg.Done()

			checkCtx, cancel := context.WithTimeout(ctx, hc.checkTimeout)
			defer cancel()

			result := c(checkCtx)

			mu.Lock()
			results[n] = result
			mu.Unlock()
		}(name, check)
	}

	wg.Wait()

	overallStatus := StatusHealthy
	for _, result := range results {
		if result.Status == StatusUnhealthy {
			overallStatus = StatusUnhealthy
			break
		}
		if result.Status == StatusDegraded {
			overallStatus = StatusDegraded
		}
	}

	response := &HealthResponse{
		Status:    overallStatus,
		Timestamp: time.Now(),
		Version:   hc.version,
		Checks:    results,
	}

	hc.mu.Lock()
	hc.cachedResponse = response
	hc.lastCheck = time.Now()
	hc.mu.Unlock()

	return response
}

// HealthHandler returns overall health status
func (hc *HealthChecker) HealthHandler(w http.ResponseWriter, r *http.Request) {
	response := hc.PerformChecks(r.Context())

	statusCode := http.StatusOK
	if response.Status == StatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}
	writeJSON(w, statusCode, response)
}

// LivenessHandler is a simple liveness probe
func (hc *HealthChecker) LivenessHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "alive",
		"timestamp": time.Now(),
	})
}

// ReadinessHandler checks if the service is ready to quote
func (hc *HealthChecker) ReadinessHandler(w http.ResponseWriter, r *http.Request) {
	response := hc.PerformChecks(r.Context())

	if response.Status == StatusHealthy {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":    "ready",
			"timestamp": time.Now(),
		})
		return
	}
	writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
		"status":    "not_ready",
		"reason":    response.Status,
		"timestamp": time.Now(),
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// ProbeCheck wraps a probe that fails with an error. A failing probe makes
// the service unhealthy.
func ProbeCheck(component string, probe func(context.Context) error) CheckFunc {
	return func(ctx context.Context) CheckResult {
		start := time.Now()
		err := probe(ctx)
		latency := time.Since(start)

		if err != nil {
			return CheckResult{
				Status:  StatusUnhealthy,
				Message: component + " failed: " + err.Error(),
				Latency: latency.String(),
			}
		}
		return CheckResult{
			Status:  StatusHealthy,
			Message: component + " OK",
			Latency: latency.String(),
		}
	}
}

// OptionalCheck is like ProbeCheck but only degrades the service, for
// components quoting can run without.
func OptionalCheck(component string, probe func(context.Context) error) CheckFunc {
	check := ProbeCheck(component, probe)
	return func(ctx context.Context) CheckResult {
		result := check(ctx)
		if result.Status == StatusUnhealthy {
			result.Status = StatusDegraded
		}
		return result
	}
}
