package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/gilby125/por-search/config"
	"github.com/gilby125/por-search/enricher"
	"github.com/gilby125/por-search/interpreter"
	"github.com/gilby125/por-search/pkg/health"
	"github.com/gilby125/por-search/pkg/logger"
	"github.com/gilby125/por-search/porapi"
	"github.com/gilby125/por-search/porcache"
	"github.com/gilby125/por-search/porgraph"
	"github.com/gilby125/por-search/porindex"
	"github.com/gilby125/por-search/porsched"
	"github.com/gilby125/por-search/tokenize"
	"github.com/gilby125/por-search/transliterate"
)

func main() {
	for _, arg := range os.Args[1:] {
		if arg == "-health-check" {
			resp, err := http.Get("http://localhost:8080/health/ready")
			if err != nil || resp.StatusCode != http.StatusOK {
				os.Exit(1)
			}
			os.Exit(0)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err) // logger isn't initialized yet
	}

	logger.Init(logger.Config{Level: cfg.LoggingConfig.Level, Format: cfg.LoggingConfig.Format})
	log := logger.WithField("component", "por-search")

	logger.Info("starting POR search service",
		"version", "1.0.0",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"api_enabled", cfg.APIEnabled,
		"postgres_enabled", cfg.PostgresEnabled,
		"neo4j_enabled", cfg.Neo4jEnabled,
		"cache_enabled", cfg.CacheEnabled)

	index, err := porindex.Open(cfg.IndexConfig.Path, porindex.WithMatchExistsFloor(cfg.MatcherConfig.CoMatchFloor))
	if err != nil {
		logger.Fatal(err, "failed to open full-text index")
	}
	defer index.Close()

	tr, err := transliterate.New()
	if err != nil {
		logger.Fatal(err, "failed to initialize transliterator")
	}
	filter := tokenize.NewFilter(cfg.MatcherConfig.MinWordLength)

	var pgPool *pgxpool.Pool
	var enr *enricher.Enricher
	if cfg.PostgresEnabled {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		pgPool, err = enricher.Open(ctx, cfg.PostgresConfig)
		cancel()
		if err != nil {
			logger.Fatal(err, "failed to connect to enricher postgres")
		}
		defer pgPool.Close()
		enr = enricher.New(pgPool)
	}

	var graph *porgraph.Graph
	if cfg.Neo4jEnabled {
		graph, err = porgraph.New(cfg.Neo4jConfig)
		if err != nil {
			logger.Fatal(err, "failed to connect to neo4j association graph")
		}
		defer graph.Close()
	}

	var redisClient *redis.Client
	if cfg.CacheEnabled || cfg.SchedulerConfig.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisConfig.Host + ":" + cfg.RedisConfig.Port,
			Password: cfg.RedisConfig.Password,
			DB:       cfg.RedisConfig.DB,
		})
		defer redisClient.Close()
	}

	var searcher interpreter.Index = index
	if cfg.CacheEnabled {
		cache := porcache.NewManager(porcache.NewRedisCache(redisClient, "por"))
		searcher = porcache.NewCachedIndex(index, cache, porcache.ShortTTL, porcache.ShortTTL)
	}

	interp := interpreter.New(searcher, enr, tr, filter, interpreter.WithLogger(log))
	svc := porapi.NewIndexService(interp, index, cfg.IndexConfig.Path, filter, tr, log)

	healthChecker := health.NewHealthChecker("1.0.0")
	healthChecker.AddChecker(&health.IndexChecker{Index: index, Name: "index"})
	if pgPool != nil {
		healthChecker.AddChecker(&health.PostgresChecker{Pool: pgPool, Name: "enricher_postgres"})
	}
	if graph != nil {
		healthChecker.AddChecker(&health.Neo4jChecker{Driver: graph.Driver(), Name: "porgraph_neo4j"})
	}
	if redisClient != nil {
		healthChecker.AddChecker(&health.RedisChecker{Client: redisClient, Name: "redis_cache"})
	}

	var sched *porsched.Scheduler
	if cfg.SchedulerConfig.Enabled {
		sched = porsched.New(svc, cfg.CatalogConfig.Path, redisClient, cfg.SchedulerConfig.LockKey, cfg.SchedulerConfig.LockTTL, log)
		if err := sched.Start(cfg.SchedulerConfig.CronExpression); err != nil {
			logger.Fatal(err, "failed to start reindex scheduler")
		}
		defer sched.Stop()
	}

	var srv *http.Server
	if cfg.APIEnabled {
		router := gin.New()
		router.Use(gin.Recovery())
		porapi.RegisterRoutes(router, svc, healthChecker)

		addr := ":" + cfg.Port
		if cfg.HTTPBindAddr != "" {
			addr = cfg.HTTPBindAddr + ":" + cfg.Port
		}

		srv = &http.Server{Addr: addr, Handler: router}
		go func() {
			logger.Info("HTTP server starting", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Fatal(err, "failed to start HTTP server")
			}
		}()
	} else {
		logger.Info("API server disabled", "api_enabled", cfg.APIEnabled)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown signal received, starting graceful shutdown")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if srv != nil {
		if err := srv.Shutdown(ctx); err != nil {
			logger.Fatal(err, "server forced to shutdown")
		}
	}

	logger.Info("process exited gracefully")
}
