package health

import (
	"context"
	"sync"
	"time"
)

const defaultProbeTimeout = 2 * time.Second

type State string

const (
	StatusHealthy   State = "healthy"
	StatusUnhealthy State = "unhealthy"
)

// Probe reports whether one dependency is usable.
type Probe func(ctx context.Context) error

type CheckResult struct {
	Status State  `json:"status"`
	Error  string `json:"error,omitempty"`
}

type Status struct {
	Status  State                  `json:"status"`
	Version string                 `json:"version,omitempty"`
	Checks  map[string]CheckResult `json:"checks"`
}

type Checker struct {
	version string
	timeout time.Duration
	mu      sync.RWMutex
	probes  map[string]Probe
}

func NewChecker(version string) *Checker {
	return &Checker{
		version: version,
		timeout: defaultProbeTimeout,
		probes:  map[string]Probe{},
	}
}

// Register adds or replaces the probe named name.
func (c *Checker) Register(name string, probe Probe) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.probes[name] = probe
}

// Check runs every probe concurrently, each bounded by the probe timeout.
func (c *Checker) Check(ctx context.Context) Status {
	c.mu.RLock()
	probes := make(map[string]Probe, len(c.probes))
	for name, probe := range c.probes {
		probes[name] = probe
	}
	c.mu.RUnlock()

	status := Status{
		Status:  StatusHealthy,
		Version: c.version,
		Checks:  make(map[string]CheckResult, len(probes)),
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	for name, probe := range probes {
		wg.Add(1)

		go func(name string, probe Probe) {
			defer wg.Done()

			probeCtx, cancel := context.WithTimeout(ctx, c.timeout)
			defer cancel()

			result := CheckResult{Status: StatusHealthy}
			if err := probe(probeCtx); err != nil {
				result = CheckResult{Status: StatusUnhealthy, Error: err.Error()}
			}

			mu.Lock()
			defer mu.Unlock()

			status.Checks[name] = result
			if result.Status != StatusHealthy {
				status.Status = StatusUnhealthy
			}
		}(name, probe)
	}

	wg.Wait()

	return status
}
