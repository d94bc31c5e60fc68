// Package enricher resolves the optional Postgres-backed secondary data
// (spec.md §4.11) a matched point of reference carries beyond the search
// index's own payload: the city details attached to a transport POR. It
// follows teacher's db/postgres.go shape, narrowed to the one query this
// domain needs: a pgxpool-backed connection, a Querier contract for
// testability without a live database, and pgx.ErrNoRows mapped to "no
// enrichment row" rather than surfaced as a failure.
package enricher

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gilby125/por-search/config"
	"github.com/gilby125/por-search/por"
	"github.com/gilby125/por-search/porerr"
)

// Querier is the narrow pgx surface Enricher needs. *pgxpool.Pool satisfies
// it directly; tests provide a fake.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Enricher implements interpreter.Enricher against a Postgres secondary
// store.
type Enricher struct {
	db Querier
}

// New builds an Enricher over db.
func New(db Querier) *Enricher {
	return &Enricher{db: db}
}

// ConnString builds a lib/pq-style keyword/value connection string from
// cfg, mirroring teacher's db.BuildPostgresConnString.
func ConnString(cfg config.PostgresConfig) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s sslcert=%s sslkey=%s sslrootcert=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
		cfg.SSLCert, cfg.SSLKey, cfg.SSLRootCert,
	)
}

// Open dials a pgxpool against cfg and verifies the connection with a ping,
// the way teacher's NewPostgresDB does for its lib/pq connection.
func Open(ctx context.Context, cfg config.PostgresConfig) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, ConnString(cfg))
	if err != nil {
		return nil, porerr.Wrap(porerr.KindBackendInit, "connect enricher postgres", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, porerr.Wrap(porerr.KindBackendInit, "ping enricher postgres", err)
	}
	return pool, nil
}

// CityDetails implements interpreter.Enricher: it resolves the city a
// transport POR belongs to, along with that city's own summary fields. Most
// PORs carry exactly one associated city, so a single row is expected; an
// absent row is not an error, since enrichment is optional decoration on
// top of an already-complete match.
func (e *Enricher) CityDetails(ctx context.Context, key por.Key) ([]por.CityDetail, error) {
	var d por.CityDetail
	err := e.db.QueryRow(ctx,
		`SELECT city_iata_code, city_name, country_code, time_zone
		FROM city_details
		WHERE por_iata_code = $1 AND por_icao_code = $2 AND por_geonames_id = $3`,
		key.IATACode, key.ICAOCode, key.GeonamesID,
	).Scan(&d.CityIATACode, &d.CityName, &d.CountryCode, &d.TimeZone)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, porerr.Wrap(porerr.KindBackendState, "query city details", err)
	}

	// ServedBy (the reverse list of transport PORs serving this city) is
	// left empty: that list lives in the city⇄transport graph (porgraph),
	// which this package does not query.
	return []por.CityDetail{d}, nil
}
