// Package porcatalog defines the external POR catalog row schema consumed
// by the indexer, plus a reference CSV reader satisfying it. The parser
// internals of a production-grade catalog loader are out of scope; this
// package gives the schema a concrete shape and one reader good enough to
// drive the indexer and its tests.
package porcatalog

import "time"

// AltName is one entry of a row's alt_name_section: a language-tagged
// alternate name with an optional short form and free-text comment.
type AltName struct {
	Language  string
	Name      string
	ShortName string
	Comment   string
}

// Row is a single POR catalog record as produced by the external parser,
// carrying exactly the fields spec.md §6.1 lists, in that order.
type Row struct {
	IATACode    string
	ICAOCode    string
	FAACode     string
	GeonamesID  uint32
	EnvelopeID  uint32
	Name        string
	ASCIIName   string
	Latitude    float64
	Longitude   float64
	FeatureClass string
	FeatureCode  string
	PageRank    float64
	DateFrom    time.Time
	DateUntil   time.Time
	CommentFlag bool

	CountryCode   string
	CountryName   string
	ContinentName string

	Admin1Code      string
	Admin1NameUTF   string
	Admin1NameASCII string
	Admin2Code      string
	Admin2NameUTF   string
	Admin2NameASCII string
	Admin3Code      string
	Admin4Code      string

	Population uint64
	Elevation  int
	Gtopo30    int

	TimeZone  string
	GMTOffset float64
	DSTOffset float64
	RawOffset float64

	ModificationDate time.Time

	CityCodeList   []string
	CityNameList   []string
	CityDetailList []string
	TvlPorList     []string

	IATAType string
	WikiLink string

	AltNameSection []AltName
}
