package porapi

import "github.com/gilby125/por-search/por"

// locationView is the external JSON rendering of a por.Location: the spec
// explicitly leaves wire serialization out of the core's scope (spec.md §1
// non-goals), so this shape lives in porapi, not por.
type locationView struct {
	IATACode   string `json:"iata_code"`
	ICAOCode   string `json:"icao_code"`
	GeonamesID uint32 `json:"geonames_id"`
	Type       string `json:"type"`

	Name      string `json:"name"`
	ASCIIName string `json:"ascii_name"`

	CityIATA    string `json:"city_iata,omitempty"`
	StateCode   string `json:"state_code,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
	RegionCode  string `json:"region_code,omitempty"`
	Continent   string `json:"continent,omitempty"`

	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	TimeZone string `json:"time_zone,omitempty"`

	PageRank   float64 `json:"page_rank"`
	EnvelopeID uint32  `json:"envelope_id"`

	WikiLink string `json:"wiki_link,omitempty"`

	OriginalKeywords      string `json:"original_keywords,omitempty"`
	CorrectedKeywords     string `json:"corrected_keywords,omitempty"`
	MatchingPercentage    float64 `json:"matching_percentage"`
	EditDistance          int     `json:"edit_distance"`
	AllowableEditDistance int     `json:"allowable_edit_distance"`

	Extra     []locationView `json:"extra,omitempty"`
	Alternate []locationView `json:"alternate,omitempty"`
}

func toLocationView(loc por.Location) locationView {
	v := locationView{
		IATACode:              loc.Key.IATACode,
		ICAOCode:              loc.Key.ICAOCode,
		GeonamesID:            loc.Key.GeonamesID,
		Type:                  loc.Type.Label(),
		Name:                  loc.Name,
		ASCIIName:             loc.ASCIIName,
		CityIATA:              loc.CityIATA,
		StateCode:             loc.StateCode,
		CountryCode:           loc.CountryCode,
		RegionCode:            loc.RegionCode,
		Continent:             loc.Continent,
		Latitude:              loc.Latitude,
		Longitude:             loc.Longitude,
		TimeZone:              loc.TimeZone,
		PageRank:              loc.PageRank,
		EnvelopeID:            loc.EnvelopeID,
		WikiLink:              loc.WikiLink,
		OriginalKeywords:      loc.OriginalKeywords,
		CorrectedKeywords:     loc.CorrectedKeywords,
		MatchingPercentage:    loc.MatchingPercentage,
		EditDistance:          loc.EditDistance,
		AllowableEditDistance: loc.AllowableEditDistance,
	}
	for _, e := range loc.Extra {
		v.Extra = append(v.Extra, toLocationView(e))
	}
	for _, a := range loc.Alternate {
		v.Alternate = append(v.Alternate, toLocationView(a))
	}
	return v
}

func toLocationViews(locs []por.Location) []locationView {
	out := make([]locationView, 0, len(locs))
	for _, loc := range locs {
		out = append(out, toLocationView(loc))
	}
	return out
}
