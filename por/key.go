package por

import "fmt"

// Key is the unique identifier of a POR document: the IATA code alone is
// not unique (a city and its airport can share one), so the triple of
// IATA code, ICAO code, and geonames id is what the index is keyed on.
type Key struct {
	IATACode   string
	ICAOCode   string
	GeonamesID uint32
}

// String renders the key as IATA-ICAO-geonames, the form porindex uses as
// the document id.
func (k Key) String() string {
	return fmt.Sprintf("%s-%s-%d", k.IATACode, k.ICAOCode, k.GeonamesID)
}

// IsZero reports whether k carries no identifying information at all.
func (k Key) IsZero() bool {
	return k.IATACode == "" && k.ICAOCode == "" && k.GeonamesID == 0
}
