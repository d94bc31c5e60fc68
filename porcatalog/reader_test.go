package porcatalog

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLine(iata string) string {
	fields := []string{
		iata, "K" + iata, "", "1234567", "0",
		"Sample Airport", "Sample Airport", "37.5", "-122.1",
		"S", "AIRP", "0.85", "2000-01-01", "2099-12-31", "0",
		"US", "United States", "North America", "CA",
		"", "", "", "", "", "", "",
		"50000", "10", "20", "America/Los_Angeles", "-8", "-7",
	}
	return strings.Join(fields, "^")
}

func TestReaderNextParsesRow(t *testing.T) {
	r := NewReader(strings.NewReader(sampleLine("SFO") + "\n"))
	row, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "SFO", row.IATACode)
	assert.Equal(t, uint32(1234567), row.GeonamesID)
	assert.InDelta(t, 0.85, row.PageRank, 0.0001)
	assert.Equal(t, "US", row.CountryCode)
}

func TestReaderNextEOF(t *testing.T) {
	r := NewReader(strings.NewReader(""))
	_, err := r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReaderReadAllSkipsMalformed(t *testing.T) {
	data := sampleLine("SFO") + "\n" + "too^short^row\n" + sampleLine("NCE") + "\n"
	r := NewReader(strings.NewReader(data))
	rows, skipped, err := r.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	require.Len(t, rows, 2)
	assert.Equal(t, "SFO", rows[0].IATACode)
	assert.Equal(t, "NCE", rows[1].IATACode)
}
