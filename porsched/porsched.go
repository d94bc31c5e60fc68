// Package porsched implements the optional periodic-reindex job, teacher's
// worker/scheduler.go (robfig/cron, one cron.Cron plus a jobs map) reduced
// to the single job this service has: rebuild the index from the catalog
// on a fixed schedule. Distributed deployments elect a leader via a Redis
// SetNX lock, the same primitive teacher's main.go describes using the
// Redis client for leader election before starting its worker pool.
package porsched

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/gilby125/por-search/pkg/logger"
)

// Reindexer is the narrow surface the scheduler drives: rebuild the index
// from catalogPath and report how many documents were written. Satisfied
// by porapi.IndexService.Reindex.
type Reindexer interface {
	Reindex(ctx context.Context, catalogPath string) (int, error)
}

// Scheduler runs Reindexer.Reindex on a cron schedule, electing a single
// leader across replicas via a Redis lock so a periodic reindex doesn't run
// once per process in a horizontally-scaled deployment.
type Scheduler struct {
	cron        *cron.Cron
	reindexer   Reindexer
	catalogPath string
	redis       *redis.Client
	lockKey     string
	lockTTL     time.Duration
	log         *logger.Logger
}

// New builds a Scheduler. redisClient may be nil, in which case every
// replica runs the job unconditionally (single-instance deployments).
func New(reindexer Reindexer, catalogPath string, redisClient *redis.Client, lockKey string, lockTTL time.Duration, log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:        cron.New(),
		reindexer:   reindexer,
		catalogPath: catalogPath,
		redis:       redisClient,
		lockKey:     lockKey,
		lockTTL:     lockTTL,
		log:         log,
	}
}

// Start schedules the reindex job at cronExpr and starts the underlying
// cron.Cron. An empty cronExpr is rejected rather than defaulted, since a
// silently-wrong schedule is worse than a startup error.
func (s *Scheduler) Start(cronExpr string) error {
	_, err := s.cron.AddFunc(cronExpr, s.runOnce)
	if err != nil {
		return err
	}
	s.cron.Start()
	if s.log != nil {
		s.log.Info("reindex scheduler started", "schedule", cronExpr)
	}
	return nil
}

// Stop drains any in-flight job and stops the cron scheduler.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	if s.log != nil {
		s.log.Info("reindex scheduler stopped")
	}
}

func (s *Scheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	if s.redis != nil {
		acquired, err := s.acquireLock(ctx)
		if err != nil {
			if s.log != nil {
				s.log.Error(err, "reindex lock acquisition failed")
			}
			return
		}
		if !acquired {
			if s.log != nil {
				s.log.Debug("reindex skipped, another replica holds the lock")
			}
			return
		}
		defer s.releaseLock(ctx)
	}

	if s.log != nil {
		s.log.Info("scheduled reindex starting", "catalog", s.catalogPath)
	}

	count, err := s.reindexer.Reindex(ctx, s.catalogPath)
	if err != nil {
		if s.log != nil {
			s.log.Error(err, "scheduled reindex failed")
		}
		return
	}

	if s.log != nil {
		s.log.Info("scheduled reindex complete", "documents", count)
	}
}

// acquireLock attempts to claim the distributed reindex lock with SET NX,
// the standard go-redis single-instance lock pattern.
func (s *Scheduler) acquireLock(ctx context.Context) (bool, error) {
	return s.redis.SetNX(ctx, s.lockKey, "1", s.lockTTL).Result()
}

func (s *Scheduler) releaseLock(ctx context.Context) {
	s.redis.Del(ctx, s.lockKey)
}
