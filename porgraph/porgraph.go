// Package porgraph maintains the city⇄transport-POR association graph in
// Neo4j: which airports, train stations, and other transport PORs serve
// which city. It is grounded on teacher's db/neo4j.go driver-wrapping
// style (neo4j.Driver, session-per-call, WriteTransaction/ReadTransaction),
// adapted from flight/airport/route nodes to the city/POR domain.
//
// AssociatePOR writes an association and CityPORs reads the reverse
// direction (every transport POR serving a city). Neither porindex's build
// step nor the enricher calls them; the service itself only opens the graph
// for its health check.
package porgraph

import (
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/gilby125/por-search/config"
	"github.com/gilby125/por-search/por"
	"github.com/gilby125/por-search/porerr"
)

// Graph wraps a Neo4j driver scoped to the city/POR association graph.
type Graph struct {
	driver neo4j.Driver
}

// New dials Neo4j at cfg.URI and verifies connectivity, mirroring teacher's
// NewNeo4jDB.
func New(cfg config.Neo4jConfig) (*Graph, error) {
	uri := strings.TrimSpace(cfg.URI)
	driver, err := neo4j.NewDriver(uri, neo4j.BasicAuth(cfg.User, cfg.Password, ""))
	if err != nil {
		return nil, porerr.Wrap(porerr.KindBackendInit, "connect porgraph neo4j", err)
	}
	if err := driver.VerifyConnectivity(); err != nil {
		return nil, porerr.Wrap(porerr.KindBackendInit, "verify porgraph neo4j connectivity", err)
	}
	return &Graph{driver: driver}, nil
}

// Close closes the underlying driver.
func (g *Graph) Close() error {
	return g.driver.Close()
}

// Driver exposes the underlying neo4j.Driver for health checks, the one
// caller outside this package that needs it directly.
func (g *Graph) Driver() neo4j.Driver {
	return g.driver
}

// InitSchema creates the uniqueness constraints the association graph
// relies on, mirroring teacher's InitSchema.
func (g *Graph) InitSchema() error {
	session := g.driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	if _, err := session.Run(
		"CREATE CONSTRAINT city_iata IF NOT EXISTS FOR (c:City) REQUIRE c.iataCode IS UNIQUE", nil,
	); err != nil {
		return porerr.Wrap(porerr.KindBackendInit, "create city constraint", err)
	}
	if _, err := session.Run(
		"CREATE CONSTRAINT por_key IF NOT EXISTS FOR (p:POR) REQUIRE p.key IS UNIQUE", nil,
	); err != nil {
		return porerr.Wrap(porerr.KindBackendInit, "create por constraint", err)
	}
	return nil
}

// AssociatePOR records that porKey is served by cityIATA, creating both
// nodes if needed, so the association can be read back via CityPORs.
func (g *Graph) AssociatePOR(cityIATA, cityName string, porKey por.Key) error {
	session := g.driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	_, err := session.WriteTransaction(func(tx neo4j.Transaction) (interface{}, error) {
		_, err := tx.Run(
			"MERGE (c:City {iataCode: $cityIATA}) "+
				"ON CREATE SET c.name = $cityName "+
				"ON MATCH SET c.name = $cityName "+
				"MERGE (p:POR {key: $porKey}) "+
				"ON CREATE SET p.iataCode = $porIATA, p.icaoCode = $porICAO, p.geonamesId = $porGeonames "+
				"MERGE (p)-[:SERVES]->(c)",
			map[string]interface{}{
				"cityIATA":    cityIATA,
				"cityName":    cityName,
				"porKey":      porKey.String(),
				"porIATA":     porKey.IATACode,
				"porICAO":     porKey.ICAOCode,
				"porGeonames": int64(porKey.GeonamesID),
			},
		)
		return nil, err
	})
	if err != nil {
		return porerr.Wrap(porerr.KindBackendState, fmt.Sprintf("associate POR %s with city %s", porKey, cityIATA), err)
	}
	return nil
}

// CityPORs returns every transport POR key serving cityIATA, the reverse
// direction of AssociatePOR.
func (g *Graph) CityPORs(cityIATA string) ([]por.Key, error) {
	session := g.driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	res, err := session.ReadTransaction(func(tx neo4j.Transaction) (interface{}, error) {
		result, err := tx.Run(
			"MATCH (p:POR)-[:SERVES]->(c:City {iataCode: $cityIATA}) "+
				"RETURN p.iataCode, p.icaoCode, p.geonamesId",
			map[string]interface{}{"cityIATA": cityIATA},
		)
		if err != nil {
			return nil, err
		}

		var keys []por.Key
		for result.Next() {
			rec := result.Record()
			iata, _ := rec.Get("p.iataCode")
			icao, _ := rec.Get("p.icaoCode")
			geonames, _ := rec.Get("p.geonamesId")
			keys = append(keys, por.Key{
				IATACode:   toString(iata),
				ICAOCode:   toString(icao),
				GeonamesID: uint32(toInt64(geonames)),
			})
		}
		return keys, result.Err()
	})
	if err != nil {
		return nil, porerr.Wrap(porerr.KindBackendState, fmt.Sprintf("query city PORs for %s", cityIATA), err)
	}
	return res.([]por.Key), nil
}

func toString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func toInt64(v interface{}) int64 {
	i, _ := v.(int64)
	return i
}
