package por

// Type is the tagged enumeration of point-of-reference kinds a catalog row
// can represent. Combined CTY_* variants stand for a city and one of its
// transport POR sharing a single document (e.g. a city whose only airport
// carries the city's own IATA code).
type Type uint8

const (
	CityAirport Type = iota
	CityHeliport
	CityRailStation
	CityBusStation
	CityFerryPort
	City
	Airport
	Heliport
	RailStation
	BusStation
	FerryPort
	Offline
)

// Label returns the external single- (or, for combined types, double-)
// character code used in Location output and in log fields, mirroring the
// original implementation's IATAType labels.
func (t Type) Label() string {
	switch t {
	case CityAirport:
		return "CA"
	case CityHeliport:
		return "CH"
	case CityRailStation:
		return "CR"
	case CityBusStation:
		return "CB"
	case CityFerryPort:
		return "CF"
	case City:
		return "C"
	case Airport:
		return "A"
	case Heliport:
		return "H"
	case RailStation:
		return "R"
	case BusStation:
		return "B"
	case FerryPort:
		return "F"
	case Offline:
		return "O"
	default:
		return "O"
	}
}

// ParseType parses the external iata_type column (e.g. "CTY_AIRP", "AIRP",
// "A", "CA") back into a Type, accepting both the original's long form and
// its own Label/String output so round-tripping through a payload is exact.
// Unrecognized input returns Offline, the type's zero-risk default.
func ParseType(s string) Type {
	switch s {
	case "CTY_AIRP", "CA":
		return CityAirport
	case "CTY_HPT", "CH":
		return CityHeliport
	case "CTY_RSTN", "CR":
		return CityRailStation
	case "CTY_BSTN", "CB":
		return CityBusStation
	case "CTY_FERRY", "CF":
		return CityFerryPort
	case "CITY", "C":
		return City
	case "AIRP", "A":
		return Airport
	case "HPT", "H":
		return Heliport
	case "RSTN", "R":
		return RailStation
	case "BSTN", "B":
		return BusStation
	case "FERRY", "F":
		return FerryPort
	default:
		return Offline
	}
}

// IsCombined reports whether t bundles a city together with one transport
// POR in a single document.
func (t Type) IsCombined() bool {
	switch t {
	case CityAirport, CityHeliport, CityRailStation, CityBusStation, CityFerryPort:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer for diagnostics.
func (t Type) String() string {
	switch t {
	case CityAirport:
		return "CTY_AIRP"
	case CityHeliport:
		return "CTY_HPT"
	case CityRailStation:
		return "CTY_RSTN"
	case CityBusStation:
		return "CTY_BSTN"
	case CityFerryPort:
		return "CTY_FERRY"
	case City:
		return "CITY"
	case Airport:
		return "AIRP"
	case Heliport:
		return "HPT"
	case RailStation:
		return "RSTN"
	case BusStation:
		return "BSTN"
	case FerryPort:
		return "FERRY"
	case Offline:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}
