// Package porindex builds and opens the full-text index: one document per
// POR record, backed by github.com/blevesearch/bleve/v2 (see DESIGN.md for
// why bleve was chosen as the engine satisfying spec.md §4.6/§6.3's
// engine-agnostic contract).
package porindex

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/gilby125/por-search/por"
	"github.com/gilby125/por-search/porcatalog"
)

// fieldTerms holds every analyzed, searchable term for a document: codes,
// geographic qualifiers, and every word-combination expansion of every
// name. Not stored; query-only.
const fieldTerms = "terms"

// fieldSpelling holds the subset of terms eligible for spelling-dictionary
// lookup (whole normalized names and their word-combination expansions, not
// bare codes). Not stored; query-only.
const fieldSpelling = "spelling"

// fieldPayload holds the document's full parseable payload string. Stored,
// not analyzed: retrieved verbatim, never matched against.
const fieldPayload = "payload"

// fieldCode holds the bare IATA/ICAO code terms, lowercased to match
// normalized query tokens and keyword-analyzed (exact match only), for the
// RequestInterpreter fast path of spec §4.10 step 4.
const fieldCode = "code"

// indexDoc is the shape indexed for each POR record. bleve reads its fields
// by reflection and names them after their json tags, which match the field
// constants above.
type indexDoc struct {
	Terms    string   `json:"terms"`
	Spelling string   `json:"spelling"`
	Payload  string   `json:"payload"`
	Code     []string `json:"code"`
}

// toIndexable renders rec and its raw word-combination term lists into the
// flat document bleve indexes.
func toIndexable(rec por.Record, terms, spelling []string) indexDoc {
	var codes []string
	for _, c := range []string{rec.Key.IATACode, rec.Key.ICAOCode} {
		if c != "" {
			codes = append(codes, strings.ToLower(c))
		}
	}
	return indexDoc{
		Terms:    strings.Join(terms, " "),
		Spelling: strings.Join(spelling, " "),
		Payload:  EncodePayload(rec),
		Code:     codes,
	}
}

// payloadRemainder carries the Record fields listed below, beside the five
// leading payload tokens (iata_code icao_code geonames_id envelope_id
// page_rank). The admin codes, population, elevation, gtopo30, the three
// GMT offsets, the modification date and the name matrix are not carried.
type payloadRemainder struct {
	Name          string          `json:"name"`
	ASCIIName     string          `json:"ascii_name"`
	FAACode       string          `json:"faa_code"`
	CityIATA      string          `json:"city_iata"`
	StateCode     string          `json:"state_code"`
	CountryCode   string          `json:"country_code"`
	AltCountry    string          `json:"alt_country"`
	RegionCode    string          `json:"region_code"`
	Continent     string          `json:"continent"`
	Latitude      float64         `json:"lat"`
	Longitude     float64         `json:"lon"`
	FeatureClass  string          `json:"feature_class"`
	FeatureCode   string          `json:"feature_code"`
	TimeZone      string          `json:"tz"`
	HasGeonamesID bool            `json:"has_geonames_id"`
	IsAirport     bool            `json:"is_airport"`
	IsCommercial  bool            `json:"is_commercial"`
	WikiLink      string          `json:"wiki_link"`
	Type          por.Type        `json:"type"`
	CityDetails   []por.CityDetail `json:"city_details,omitempty"`
}

// EncodePayload renders rec into the document payload string: a single
// string whose leading tokens are iata_code, icao_code, geonames_id,
// envelope_id, page_rank (unit-separator delimited to tolerate names and
// codes containing spaces), followed by a JSON-encoded remainder.
func EncodePayload(rec por.Record) string {
	rest := payloadRemainder{
		Name: rec.Name, ASCIIName: rec.ASCIIName, FAACode: rec.FAACode,
		CityIATA: rec.CityIATA, StateCode: rec.StateCode, CountryCode: rec.CountryCode,
		AltCountry: rec.AltCountry, RegionCode: rec.RegionCode, Continent: rec.Continent,
		Latitude: rec.Latitude, Longitude: rec.Longitude,
		FeatureClass: rec.FeatureClass, FeatureCode: rec.FeatureCode,
		TimeZone: rec.TimeZone, HasGeonamesID: rec.HasGeonamesID,
		IsAirport: rec.IsAirport, IsCommercial: rec.IsCommercial,
		WikiLink: rec.WikiLink, Type: rec.Type, CityDetails: rec.CityDetails,
	}
	encoded, _ := json.Marshal(rest)

	const sep = "\x1f"
	return strings.Join([]string{
		rec.Key.IATACode,
		rec.Key.ICAOCode,
		strconv.FormatUint(uint64(rec.Key.GeonamesID), 10),
		strconv.FormatUint(uint64(rec.EnvelopeID), 10),
		strconv.FormatFloat(rec.PageRank, 'f', -1, 64),
		string(encoded),
	}, sep)
}

// DecodePayload parses a payload string produced by EncodePayload back into
// a por.Record, in one pass. Only the fields EncodePayload writes are
// filled; the others (see payloadRemainder) are left at their zero values.
func DecodePayload(payload string) (por.Record, error) {
	parts := strings.SplitN(payload, "\x1f", 6)
	if len(parts) != 6 {
		return por.Record{}, fmt.Errorf("porindex: malformed payload: expected 6 fields, got %d", len(parts))
	}

	geonamesID, err := strconv.ParseUint(parts[2], 10, 32)
	if err != nil {
		return por.Record{}, fmt.Errorf("porindex: malformed geonames_id: %w", err)
	}
	envelopeID, err := strconv.ParseUint(parts[3], 10, 32)
	if err != nil {
		return por.Record{}, fmt.Errorf("porindex: malformed envelope_id: %w", err)
	}
	pageRank, err := strconv.ParseFloat(parts[4], 64)
	if err != nil {
		return por.Record{}, fmt.Errorf("porindex: malformed page_rank: %w", err)
	}

	var rest payloadRemainder
	if err := json.Unmarshal([]byte(parts[5]), &rest); err != nil {
		return por.Record{}, fmt.Errorf("porindex: malformed payload remainder: %w", err)
	}

	return por.Record{
		Key: por.Key{
			IATACode:   parts[0],
			ICAOCode:   parts[1],
			GeonamesID: uint32(geonamesID),
		},
		Name: rest.Name, ASCIIName: rest.ASCIIName, FAACode: rest.FAACode,
		CityIATA: rest.CityIATA, StateCode: rest.StateCode, CountryCode: rest.CountryCode,
		AltCountry: rest.AltCountry, RegionCode: rest.RegionCode, Continent: rest.Continent,
		Latitude: rest.Latitude, Longitude: rest.Longitude,
		FeatureClass: rest.FeatureClass, FeatureCode: rest.FeatureCode,
		TimeZone: rest.TimeZone, HasGeonamesID: rest.HasGeonamesID,
		IsAirport: rest.IsAirport, IsCommercial: rest.IsCommercial,
		WikiLink: rest.WikiLink, Type: rest.Type, CityDetails: rest.CityDetails,
		PageRank:   pageRank,
		EnvelopeID: uint32(envelopeID),
	}, nil
}

// FromRow converts a catalog row into its canonical Record shape, the one
// place the external schema meets the internal domain model.
func FromRow(row porcatalog.Row) por.Record {
	rec := por.Record{
		Key: por.Key{
			IATACode:   row.IATACode,
			ICAOCode:   row.ICAOCode,
			GeonamesID: row.GeonamesID,
		},
		Name:          row.Name,
		ASCIIName:     row.ASCIIName,
		FAACode:       row.FAACode,
		StateCode:     row.Admin1Code,
		CountryCode:   row.CountryCode,
		RegionCode:    row.ContinentName,
		Continent:     row.ContinentName,
		Latitude:      row.Latitude,
		Longitude:     row.Longitude,
		FeatureClass:  row.FeatureClass,
		FeatureCode:   row.FeatureCode,
		Admin1Code:    row.Admin1Code,
		Admin2Code:    row.Admin2Code,
		Admin3Code:    row.Admin3Code,
		Admin4Code:    row.Admin4Code,
		Population:    row.Population,
		Elevation:     row.Elevation,
		Gtopo30:       row.Gtopo30,
		TimeZone:      row.TimeZone,
		GMTOffset:     row.GMTOffset,
		DSTOffset:     row.DSTOffset,
		RawGMTOffset:  row.RawOffset,
		ModDate:       row.ModificationDate,
		HasGeonamesID: row.GeonamesID != 0,
		IsAirport:     row.FeatureCode == "AIRP",
		WikiLink:      row.WikiLink,
		PageRank:      row.PageRank,
		EnvelopeID:    row.EnvelopeID,
		Type:          por.ParseType(row.IATAType),
		Names:         por.NameMatrix{},
	}
	if len(row.CityCodeList) > 0 {
		rec.CityIATA = row.CityCodeList[0]
	}
	for _, alt := range row.AltNameSection {
		rec.Names.Add(alt.Language, alt.Name)
	}
	return rec
}
