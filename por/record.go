// Package por holds the point-of-reference data model shared by the
// indexer, matcher, scorer, and request interpreter: the POR key and type,
// the full catalog record, the name matrix, and the flattened Location
// output record.
package por

import (
	"sort"
	"time"
)

// NameMatrix maps a short locale code ("en", "ru", "zh_CN", ...) to an
// ordered list of alternate names in that language. Insertion order within
// a language is preserved; callers must append rather than re-sort.
type NameMatrix map[string][]string

// Add appends name to the list for lang, creating the list if needed.
func (m NameMatrix) Add(lang, name string) {
	m[lang] = append(m[lang], name)
}

// Languages returns the matrix's language codes in a stable, sorted order
// so that index building is deterministic across runs.
func (m NameMatrix) Languages() []string {
	langs := make([]string, 0, len(m))
	for l := range m {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	return langs
}

// CityDetail is a city-level summary attached to a transport POR's
// "associated city details" list, restored from the original
// implementation's CityDetails (spec.md leaves its shape unspecified).
type CityDetail struct {
	CityIATACode string
	CityName     string
	CountryCode  string
	TimeZone     string
	ServedBy     []Key
}

// Record is the full POR catalog entry, the attributes required by the
// search core out of the external CSV schema (see porcatalog).
type Record struct {
	Key Key

	Name      string // UTF-8 primary name
	ASCIIName string // ASCII transliteration of Name

	FAACode     string
	CityIATA    string
	StateCode   string
	CountryCode string
	AltCountry  string
	RegionCode  string
	Continent   string

	Latitude  float64
	Longitude float64

	FeatureClass string
	FeatureCode  string

	Admin1Code string
	Admin2Code string
	Admin3Code string
	Admin4Code string

	Population uint64
	Elevation  int
	Gtopo30    int

	TimeZone      string
	GMTOffset     float64
	DSTOffset     float64
	RawGMTOffset  float64
	ModDate       time.Time
	HasGeonamesID bool
	IsAirport     bool
	IsCommercial  bool

	WikiLink string

	// PageRank is a percentage in (0,100]. A zero value is stored as read;
	// the 0.10 default is applied by EffectivePageRank and at scoring time
	// by score.Board.SetPageRank.
	PageRank float64

	// EnvelopeID is 0 when the record is currently valid, non-zero when it
	// is historically valid only.
	EnvelopeID uint32

	Type Type

	Names NameMatrix

	CityDetails []CityDetail
}

// IsValid reports whether the record is currently valid (envelope id zero).
func (r *Record) IsValid() bool {
	return r.EnvelopeID == 0
}

// EffectivePageRank returns the record's PageRank, defaulting to the
// spec-mandated 0.10 for records that never received one.
func (r *Record) EffectivePageRank() float64 {
	if r.PageRank <= 0 {
		return 0.10
	}
	return r.PageRank
}
