// Package config loads the search service's configuration from environment
// variables, in teacher's flat-struct-per-concern style (godotenv + manual
// os.Getenv/strconv parsing, one sub-struct per backend).
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Environment  string
	HTTPBindAddr string
	Port         string
	APIEnabled   bool

	LoggingConfig  LoggingConfig
	MatcherConfig  MatcherConfig
	IndexConfig    IndexConfig
	CatalogConfig  CatalogConfig
	PostgresConfig PostgresConfig
	Neo4jConfig    Neo4jConfig
	RedisConfig    RedisConfig
	SchedulerConfig SchedulerConfig

	PostgresEnabled bool
	Neo4jEnabled    bool
	CacheEnabled    bool
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string
	Format string
}

// MatcherConfig holds the search stack's tunables: the minimum indexable
// word length (spec.md §4.2) and the QuerySlices co-match floor (spec.md
// §4.5/§9 Open Question, resolved empirically — see DESIGN.md).
type MatcherConfig struct {
	MinWordLength  int
	CoMatchFloor   float64
	CandidateCap   int
}

// IndexConfig holds the on-disk full-text index location.
type IndexConfig struct {
	Path string
}

// CatalogConfig holds the location of the POR catalog consumed by
// cmd/por-indexer.
type CatalogConfig struct {
	Path string
}

// PostgresConfig holds the enricher's secondary relational store
// connection configuration.
type PostgresConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	DBName      string
	SSLMode     string
	SSLCert     string
	SSLKey      string
	SSLRootCert string
}

// Neo4jConfig holds the city⇄POR association graph connection
// configuration.
type Neo4jConfig struct {
	URI      string
	User     string
	Password string
}

// RedisConfig holds the optional result/co-match cache connection
// configuration.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// SchedulerConfig holds the optional periodic-reindex job configuration
// (porsched), teacher's worker/scheduler.go shape reduced to one job.
type SchedulerConfig struct {
	Enabled        bool
	CronExpression string
	LockKey        string
	LockTTL        time.Duration
}

// Load loads configuration from environment variables, falling back to
// defaults suitable for local development.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	minWordLength, _ := strconv.Atoi(getEnv("MATCHER_MIN_WORD_LENGTH", "3"))
	if minWordLength <= 0 {
		minWordLength = 3
	}
	coMatchFloor, _ := strconv.ParseFloat(getEnv("MATCHER_CO_MATCH_FLOOR", "35"), 64)
	candidateCap, _ := strconv.Atoi(getEnv("MATCHER_CANDIDATE_CAP", "30"))
	if candidateCap <= 0 {
		candidateCap = 30
	}

	postgresEnabled, _ := strconv.ParseBool(getEnv("POSTGRES_ENABLED", "true"))
	neo4jEnabled, _ := strconv.ParseBool(getEnv("NEO4J_ENABLED", "true"))
	cacheEnabled, _ := strconv.ParseBool(getEnv("CACHE_ENABLED", "false"))

	schedulerEnabled, _ := strconv.ParseBool(getEnv("SCHEDULER_ENABLED", "false"))
	lockTTL, err := time.ParseDuration(getEnv("SCHEDULER_LOCK_TTL", "30s"))
	if err != nil {
		lockTTL = 30 * time.Second
	}

	return &Config{
		Environment:  getEnv("ENVIRONMENT", "development"),
		HTTPBindAddr: getEnv("HTTP_BIND_ADDR", ""),
		Port:         getEnv("PORT", "8080"),
		APIEnabled:   mustBool(getEnv("API_ENABLED", "true")),

		LoggingConfig: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		MatcherConfig: MatcherConfig{
			MinWordLength: minWordLength,
			CoMatchFloor:  coMatchFloor,
			CandidateCap:  candidateCap,
		},
		IndexConfig: IndexConfig{
			Path: getEnv("INDEX_PATH", "./data/por.bleve"),
		},
		CatalogConfig: CatalogConfig{
			Path: getEnv("CATALOG_PATH", "./data/por.csv"),
		},
		PostgresConfig: PostgresConfig{
			Host:        getEnv("DB_HOST", "postgres"),
			Port:        getEnv("DB_PORT", "5432"),
			User:        getEnv("DB_USER", "por"),
			Password:    getEnv("DB_PASSWORD", ""),
			DBName:      getEnv("DB_NAME", "por"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			SSLCert:     getEnv("DB_SSL_CERT", ""),
			SSLKey:      getEnv("DB_SSL_KEY", ""),
			SSLRootCert: getEnv("DB_SSL_ROOT_CERT", ""),
		},
		Neo4jConfig: Neo4jConfig{
			URI:      getEnv("NEO4J_URI", "bolt://neo4j:7687"),
			User:     getEnv("NEO4J_USER", "neo4j"),
			Password: getEnv("NEO4J_PASSWORD", ""),
		},
		RedisConfig: RedisConfig{
			Host:     getEnv("REDIS_HOST", "redis"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       0,
		},
		SchedulerConfig: SchedulerConfig{
			Enabled:        schedulerEnabled,
			CronExpression: getEnv("SCHEDULER_CRON", "0 3 * * *"),
			LockKey:        getEnv("SCHEDULER_LOCK_KEY", "por-search:reindex-lock"),
			LockTTL:        lockTTL,
		},

		PostgresEnabled: postgresEnabled,
		Neo4jEnabled:    neo4jEnabled,
		CacheEnabled:    cacheEnabled,
	}, nil
}

// TestConfig returns a default configuration for tests, pointing at
// localhost backends rather than the container-network hostnames Load
// defaults to.
func TestConfig() *Config {
	return &Config{
		Environment: "test",
		MatcherConfig: MatcherConfig{
			MinWordLength: 3,
			CoMatchFloor:  35,
			CandidateCap:  30,
		},
		IndexConfig: IndexConfig{Path: "./testdata/por.bleve"},
		CatalogConfig: CatalogConfig{Path: "./testdata/por.csv"},
		PostgresConfig: PostgresConfig{
			Host: "localhost", Port: "5432", User: "por", DBName: "por_test", SSLMode: "disable",
		},
		Neo4jConfig: Neo4jConfig{URI: "bolt://localhost:7687", User: "neo4j"},
		RedisConfig: RedisConfig{Host: "localhost", Port: "6379"},
	}
}

func mustBool(s string) bool {
	v, _ := strconv.ParseBool(s)
	return v
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if len(strings.TrimSpace(value)) == 0 {
		return defaultValue
	}
	return strings.TrimSpace(value)
}
