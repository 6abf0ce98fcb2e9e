// Package health runs self-checks over the configured library.
package health

import (
	"context"
	"sort"
	"time"
)

// Status represents the health status
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// CheckFunc reports the status of one dependency
type CheckFunc func(ctx context.Context) (Status, error)

// Report represents the outcome of all checks
type Report struct {
	Status    Status        `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
	Checks    []CheckResult `json:"checks,omitempty"`
	Version   string        `json:"version,omitempty"`
}

// CheckResult represents the result of a single health check
type CheckResult struct {
	Name   string `json:"name"`
	Status Status `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Checker manages health checks
type Checker struct {
	checks  map[string]CheckFunc
	timeout time.Duration
	version string
}

// NewChecker creates a checker that gives every check at most timeout
func NewChecker(version string, timeout time.Duration) *Checker {
	return &Checker{
		checks:  make(map[string]CheckFunc),
		timeout: timeout,
		version: version,
	}
}

// Register adds a health check, replacing any check with the same name
func (c *Checker) Register(name string, check CheckFunc) {
	c.checks[name] = check
}

// Run executes all registered checks in name order
func (c *Checker) Run(ctx context.Context) Report {
	names := make([]string, 0, len(c.checks))
	for name := range c.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	report := Report{
		Status:    StatusHealthy,
		Timestamp: time.Now(),
		Checks:    make([]CheckResult, 0, len(names)),
		Version:   c.version,
	}

	for _, name := range names {
		status, err := c.runOne(ctx, c.checks[name])
		result := CheckResult{Name: name, Status: status}
		if err != nil {
			result.Error = err.Error()
		}
		report.Checks = append(report.Checks, result)

		if status == StatusUnhealthy {
			report.Status = StatusUnhealthy
		} else if status == StatusDegraded && report.Status == StatusHealthy {
			report.Status = StatusDegraded
		}
	}

	return report
}

func (c *Checker) runOne(ctx context.Context, check CheckFunc) (Status, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	status, err := check(ctx)
	if err != nil && status == StatusHealthy {
		status = StatusUnhealthy
	}
	return status, err
}
