// Package health implements the backend health-check surface, in
// teacher's Checker-interface style (a HealthChecker aggregating
// independent per-backend Checkers into one report), adapted from the
// flight-domain Postgres/Neo4j/Redis/queue/worker checkers to the
// search stack's own backends: the full-text index, the Postgres
// enricher, the Neo4j association graph, and the optional Redis cache.
package health

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/redis/go-redis/v9"
)

// Status represents the health status of a component.
type Status string

const (
	StatusUp   Status = "up"
	StatusDown Status = "down"
)

// Check represents a single health check.
type Check struct {
	Name      string            `json:"name"`
	Status    Status            `json:"status"`
	Message   string            `json:"message,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
	Duration  time.Duration     `json:"duration"`
	Timestamp time.Time         `json:"timestamp"`
}

// Report represents the overall health of the application.
type Report struct {
	Status    Status           `json:"status"`
	Version   string           `json:"version"`
	Timestamp time.Time        `json:"timestamp"`
	Checks    map[string]Check `json:"checks"`
	Uptime    time.Duration    `json:"uptime"`
}

// Checker defines the interface for a single health check.
type Checker interface {
	Check(ctx context.Context) Check
}

func newCheck(name string) Check {
	return Check{Name: name, Timestamp: time.Now(), Details: make(map[string]string)}
}

func (c *Check) finish(started time.Time, err error, okMessage string) {
	c.Duration = time.Since(started)
	if err != nil {
		c.Status = StatusDown
		c.Message = err.Error()
		c.Details["error"] = err.Error()
		return
	}
	c.Status = StatusUp
	c.Message = okMessage
	c.Details["response_time"] = c.Duration.String()
}

// IndexSizer is the narrow porindex.Index surface IndexChecker needs.
type IndexSizer interface {
	Size() (uint64, error)
}

// IndexChecker checks the full-text index's reachability by requesting its
// document count.
type IndexChecker struct {
	Index IndexSizer
	Name  string
}

func (c *IndexChecker) Check(ctx context.Context) Check {
	started := time.Now()
	check := newCheck(c.Name)
	count, err := c.Index.Size()
	check.finish(started, err, "index reachable")
	if err == nil {
		check.Details["documents"] = fmt.Sprintf("%d", count)
	}
	return check
}

// PostgresChecker checks the Postgres-backed enricher's connectivity.
type PostgresChecker struct {
	Pool *pgxpool.Pool
	Name string
}

func (c *PostgresChecker) Check(ctx context.Context) Check {
	started := time.Now()
	check := newCheck(c.Name)
	err := c.Pool.Ping(ctx)
	check.finish(started, err, "enricher connection successful")
	return check
}

// Neo4jChecker checks the city⇄POR association graph's connectivity.
type Neo4jChecker struct {
	Driver neo4j.Driver
	Name   string
}

func (c *Neo4jChecker) Check(ctx context.Context) Check {
	started := time.Now()
	check := newCheck(c.Name)
	err := c.Driver.VerifyConnectivity()
	check.finish(started, err, "graph connection successful")
	return check
}

// RedisChecker checks the optional result cache's connectivity.
type RedisChecker struct {
	Client *redis.Client
	Name   string
}

func (c *RedisChecker) Check(ctx context.Context) Check {
	started := time.Now()
	check := newCheck(c.Name)
	pong, err := c.Client.Ping(ctx).Result()
	check.finish(started, err, "cache connection successful")
	if err == nil {
		check.Details["ping_response"] = pong
	}
	return check
}

// HealthChecker orchestrates multiple health checks.
type HealthChecker struct {
	checkers  []Checker
	version   string
	startTime time.Time
}

// NewHealthChecker creates a new health checker.
func NewHealthChecker(version string) *HealthChecker {
	return &HealthChecker{checkers: make([]Checker, 0), version: version, startTime: time.Now()}
}

// AddChecker adds a health checker.
func (h *HealthChecker) AddChecker(checker Checker) {
	h.checkers = append(h.checkers, checker)
}

func (h *HealthChecker) runAll(ctx context.Context, checkers []Checker) Report {
	checks := make(map[string]Check, len(checkers))
	overall := StatusUp
	for _, checker := range checkers {
		check := checker.Check(ctx)
		checks[check.Name] = check
		if check.Status == StatusDown {
			overall = StatusDown
		}
	}
	return Report{
		Status:    overall,
		Version:   h.version,
		Timestamp: time.Now(),
		Checks:    checks,
		Uptime:    time.Since(h.startTime),
	}
}

// CheckHealth runs every registered checker.
func (h *HealthChecker) CheckHealth(ctx context.Context) Report {
	return h.runAll(ctx, h.checkers)
}

// CheckReadiness runs only the checkers a load balancer should gate traffic
// on: the index must be reachable, since without it every search fails.
func (h *HealthChecker) CheckReadiness(ctx context.Context) Report {
	var readiness []Checker
	for _, checker := range h.checkers {
		if _, ok := checker.(*IndexChecker); ok {
			readiness = append(readiness, checker)
		}
	}
	return h.runAll(ctx, readiness)
}

// CheckLiveness performs the most basic "is the application running" check.
func (h *HealthChecker) CheckLiveness(ctx context.Context) Report {
	return Report{
		Status:    StatusUp,
		Version:   h.version,
		Timestamp: time.Now(),
		Checks: map[string]Check{
			"application": {
				Name:      "application",
				Status:    StatusUp,
				Message:   "application is running",
				Timestamp: time.Now(),
			},
		},
		Uptime: time.Since(h.startTime),
	}
}
