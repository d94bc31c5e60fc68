// Command por-indexer builds (or rebuilds) the full-text index from a POR
// catalog file, the way teacher's worker binaries are thin wrappers around
// a single package operation. It is the offline counterpart to porapi's
// POST /reindex: the same porindex.Build path, run once and exited.
package main

import (
	"os"

	"github.com/gilby125/por-search/config"
	"github.com/gilby125/por-search/pkg/logger"
	"github.com/gilby125/por-search/porcatalog"
	"github.com/gilby125/por-search/porindex"
	"github.com/gilby125/por-search/tokenize"
	"github.com/gilby125/por-search/transliterate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger.Init(logger.Config{Level: cfg.LoggingConfig.Level, Format: cfg.LoggingConfig.Format})
	log := logger.WithField("component", "por-indexer")

	catalogPath := cfg.CatalogConfig.Path
	if len(os.Args) > 1 {
		catalogPath = os.Args[1]
	}

	log.Info("reading catalog", "path", catalogPath)
	f, err := os.Open(catalogPath)
	if err != nil {
		log.Fatal(err, "failed to open catalog")
	}
	defer f.Close()

	rows, skipped, err := porcatalog.NewReader(f).ReadAll()
	if err != nil {
		log.Fatal(err, "failed to read catalog")
	}
	if skipped > 0 {
		log.Warn("skipped malformed catalog rows", "count", skipped)
	}

	tr, err := transliterate.New()
	if err != nil {
		log.Fatal(err, "failed to initialize transliterator")
	}
	filter := tokenize.NewFilter(cfg.MatcherConfig.MinWordLength)

	log.Info("building index", "path", cfg.IndexConfig.Path, "rows", len(rows))
	count, err := porindex.Build(cfg.IndexConfig.Path, rows, filter, tr, log)
	if err != nil {
		log.Fatal(err, "failed to build index")
	}

	log.Info("index build complete", "documents", count)
}
