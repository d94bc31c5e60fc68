package por

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeLabelRoundTrip(t *testing.T) {
	types := []Type{CityAirport, CityHeliport, CityRailStation, CityBusStation,
		CityFerryPort, City, Airport, Heliport, RailStation, BusStation, FerryPort, Offline}
	for _, typ := range types {
		assert.Equal(t, typ, ParseType(typ.Label()), "label round-trip for %v", typ)
		assert.Equal(t, typ, ParseType(typ.String()), "string round-trip for %v", typ)
	}
}

func TestIsCombined(t *testing.T) {
	assert.True(t, CityAirport.IsCombined())
	assert.False(t, Airport.IsCombined())
	assert.False(t, City.IsCombined())
}

func TestParseTypeUnknownDefaultsOffline(t *testing.T) {
	assert.Equal(t, Offline, ParseType("bogus"))
}
