package porcatalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gilby125/por-search/porerr"
)

// dateLayout matches the original reference data's YYYY-MM-DD columns.
const dateLayout = "2006-01-02"

// Reader parses the POR catalog's caret-delimited reference format (the
// shape of the OpenTrep project's por.csv/por_optd.csv), one Row per
// record. A malformed row is a recoverable Parse error: Next returns it as
// a porerr.KindParse error, and ReadAll skips the row and counts it so the
// caller can log the count and continue, per spec §7.
type Reader struct {
	csv *csv.Reader
	src io.Reader
}

// NewReader wraps r, a caret (^) delimited catalog stream.
func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.Comma = '^'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return &Reader{csv: cr, src: r}
}

// expectedColumns is the minimum column count a row must carry to be
// considered well-formed; short rows are rejected as Parse errors.
const expectedColumns = 30

// Next returns the next well-formed Row, or io.EOF when the stream is
// exhausted. A malformed row returns a porerr.KindParse error; callers
// should log and continue rather than abort the build.
func (r *Reader) Next() (Row, error) {
	fields, err := r.csv.Read()
	if err == io.EOF {
		return Row{}, io.EOF
	}
	if err != nil {
		return Row{}, porerr.Wrap(porerr.KindParse, "read catalog row", err)
	}
	if len(fields) < expectedColumns {
		return Row{}, porerr.Wrap(porerr.KindParse, "read catalog row",
			fmt.Errorf("expected at least %d columns, got %d", expectedColumns, len(fields)))
	}
	return parseRow(fields)
}

// ReadAll consumes the remaining stream, returning every well-formed Row and
// the count of rows skipped for being malformed.
func (r *Reader) ReadAll() (rows []Row, skipped int, err error) {
	for {
		row, rerr := r.Next()
		if rerr == io.EOF {
			return rows, skipped, nil
		}
		if rerr != nil {
			skipped++
			continue
		}
		rows = append(rows, row)
	}
}

func parseRow(f []string) (Row, error) {
	get := func(i int) string {
		if i < len(f) {
			return f[i]
		}
		return ""
	}

	geonamesID, _ := strconv.ParseUint(get(3), 10, 32)
	envelopeID, _ := strconv.ParseUint(get(4), 10, 32)
	lat, _ := strconv.ParseFloat(get(7), 64)
	lon, _ := strconv.ParseFloat(get(8), 64)
	pageRank, _ := strconv.ParseFloat(get(11), 64)
	dateFrom, _ := time.Parse(dateLayout, get(12))
	dateUntil, _ := time.Parse(dateLayout, get(13))
	population, _ := strconv.ParseUint(get(23), 10, 64)
	elevation, _ := strconv.Atoi(get(24))
	gtopo30, _ := strconv.Atoi(get(25))
	gmtOffset, _ := strconv.ParseFloat(get(28), 64)
	dstOffset, _ := strconv.ParseFloat(get(29), 64)

	row := Row{
		IATACode:      get(0),
		ICAOCode:      get(1),
		FAACode:       get(2),
		GeonamesID:    uint32(geonamesID),
		EnvelopeID:    uint32(envelopeID),
		Name:          get(5),
		ASCIIName:     get(6),
		Latitude:      lat,
		Longitude:     lon,
		FeatureClass:  get(9),
		FeatureCode:   get(10),
		PageRank:      pageRank,
		DateFrom:      dateFrom,
		DateUntil:     dateUntil,
		CommentFlag:   get(14) == "1",
		CountryCode:   get(15),
		CountryName:   get(16),
		ContinentName: get(17),
		Admin1Code:    get(18),
		Population:    population,
		Elevation:     elevation,
		Gtopo30:       gtopo30,
		TimeZone:      get(26),
		GMTOffset:     gmtOffset,
		DSTOffset:     dstOffset,
	}

	if cities := get(19); cities != "" {
		row.CityCodeList = strings.Split(cities, ",")
	}
	if wiki := get(20); wiki != "" {
		row.WikiLink = wiki
	}
	if iataType := get(21); iataType != "" {
		row.IATAType = iataType
	}

	return row, nil
}
